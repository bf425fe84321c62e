package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"telegram-article-digest-bot/llm"
)

// BackupWriter mirrors every record to a daily newline-delimited JSON file.
// It is a write-only audit trail, never read back by this program.
type BackupWriter struct {
	dir string
}

func NewBackupWriter(dir string) *BackupWriter {
	return &BackupWriter{dir: dir}
}

type backupEntry struct {
	Timestamp string       `json:"timestamp"`
	Analysis  llm.Analysis `json:"analysis"`
	URL       string       `json:"url"`
}

// Write appends one JSON line to the current day's file. The file is opened
// in append mode per write so concurrent pipeline runs interleave whole
// lines, not bytes.
func (w *BackupWriter) Write(rec Record) error {
	name := filepath.Join(w.dir, "backup_"+time.Now().Format("20060102")+".json")

	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open backup file %s: %w", name, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)

	entry := backupEntry{
		Timestamp: rec.Timestamp,
		Analysis: llm.Analysis{
			Subject: rec.Subject,
			Title:   rec.Title,
			Summary: rec.Summary,
		},
		URL: rec.URL,
	}

	if err := enc.Encode(entry); err != nil {
		return fmt.Errorf("cannot write backup entry: %w", err)
	}

	return nil
}
