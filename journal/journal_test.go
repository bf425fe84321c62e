package journal

import (
	"context"
	"errors"
	"testing"
)

type stubAppender struct {
	err   error
	calls int
}

func (s *stubAppender) Append(_ context.Context, _ Record) error {
	s.calls++
	return s.err
}

type stubBackup struct {
	err   error
	calls int
}

func (s *stubBackup) Write(_ Record) error {
	s.calls++
	return s.err
}

func TestPersistBackupFailureIsNotFatal(t *testing.T) {
	sheet := &stubAppender{}
	backup := &stubBackup{err: errors.New("disk full")}
	j := &Journal{sheet: sheet, backup: backup}

	if err := j.Persist(context.Background(), testRecord("https://example.com/a")); err != nil {
		t.Fatalf("backup failure must not fail the persist call, got %v", err)
	}
	if sheet.calls != 1 || backup.calls != 1 {
		t.Fatalf("expected both sinks to be called, got sheet=%d backup=%d", sheet.calls, backup.calls)
	}
}

func TestPersistSheetFailureSkipsBackup(t *testing.T) {
	sheet := &stubAppender{err: errors.Join(ErrPersistence, errors.New("api down"))}
	backup := &stubBackup{}
	j := &Journal{sheet: sheet, backup: backup}

	err := j.Persist(context.Background(), testRecord("https://example.com/a"))
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if backup.calls != 0 {
		t.Fatalf("backup must not be written when the spreadsheet append fails, got %d calls", backup.calls)
	}
}
