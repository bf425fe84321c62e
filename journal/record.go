package journal

import (
	"time"

	"telegram-article-digest-bot/llm"
)

const timestampLayout = "2006-01-02 15:04:05"

// Record is the normalized tuple persisted to the spreadsheet and the backup
// log. Immutable once constructed, created exactly once per pipeline run.
type Record struct {
	Subject   string
	Title     string
	Summary   string
	URL       string
	Timestamp string
}

// NewRecord stamps an analysis with the current local time. The URL is kept
// verbatim as the user supplied it.
func NewRecord(analysis llm.Analysis, url string) Record {
	return Record{
		Subject:   analysis.Subject,
		Title:     analysis.Title,
		Summary:   analysis.Summary,
		URL:       url,
		Timestamp: time.Now().Format(timestampLayout),
	}
}
