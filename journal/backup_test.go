package journal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestBackupWriteAppendsJSONLines(t *testing.T) {
	dir := t.TempDir()
	w := NewBackupWriter(dir)

	records := []Record{
		{Subject: "tech", Title: "First", Summary: "one", URL: "https://example.com/1", Timestamp: "2026-08-31 10:00:00"},
		{Subject: "sports", Title: "Second", Summary: "two", URL: "https://example.com/2", Timestamp: "2026-08-31 10:00:05"},
	}

	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			t.Fatalf("backup write failed: %v", err)
		}
	}

	name := filepath.Join(dir, "backup_"+time.Now().Format("20060102")+".json")
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("cannot read backup file: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	for i, line := range lines {
		var entry backupEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", i, err)
		}
		if entry.URL != records[i].URL {
			t.Errorf("line %d: expected url %q, got %q", i, records[i].URL, entry.URL)
		}
		if entry.Analysis.Subject != records[i].Subject {
			t.Errorf("line %d: expected subject %q, got %q", i, records[i].Subject, entry.Analysis.Subject)
		}
	}
}

func TestBackupWritePreservesNonASCII(t *testing.T) {
	dir := t.TempDir()
	w := NewBackupWriter(dir)

	rec := Record{Subject: "chính trị", Title: "Tiêu đề", Summary: "tóm tắt", URL: "https://example.com/vn", Timestamp: "2026-08-31 10:00:00"}
	if err := w.Write(rec); err != nil {
		t.Fatalf("backup write failed: %v", err)
	}

	name := filepath.Join(dir, "backup_"+time.Now().Format("20060102")+".json")
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("cannot read backup file: %v", err)
	}

	if !strings.Contains(string(data), "chính trị") {
		t.Fatalf("non-ASCII content was escaped: %s", data)
	}
}
