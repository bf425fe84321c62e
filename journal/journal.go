package journal

import (
	"context"
	"log/slog"

	"telegram-article-digest-bot/config"

	"github.com/getsentry/sentry-go"
)

type rowAppender interface {
	Append(ctx context.Context, rec Record) error
}

type backupWriter interface {
	Write(rec Record) error
}

// Journal persists a record to the spreadsheet and mirrors it to the local
// backup log. The spreadsheet is authoritative: its failure aborts the call,
// a backup failure is only logged.
type Journal struct {
	sheet  rowAppender
	backup backupWriter
}

func New(cfg config.SheetsConfig) *Journal {
	return &Journal{
		sheet:  NewSheetSink(cfg),
		backup: NewBackupWriter(cfg.BackupDir),
	}
}

func (j *Journal) Persist(ctx context.Context, rec Record) error {
	if err := j.sheet.Append(ctx, rec); err != nil {
		return err
	}

	if err := j.backup.Write(rec); err != nil {
		slog.Warn("journal: backup write failed, record is in the spreadsheet only", "error", err)
		sentry.CaptureException(err)
	}

	return nil
}
