package stats

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
)

type Stats struct {
	mu sync.Mutex

	RunningSince time.Time

	GroupRequests   uint64
	PrivateRequests uint64

	ArticlesProcessed   uint64
	InvalidURLMessages  uint64
	ExtractionFailures  uint64
	AnalysisFailures    uint64
	PersistenceFailures uint64
}

func NewStats() *Stats {
	return &Stats{
		RunningSince: time.Now(),
	}
}

func (s *Stats) MarshalJSON() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return json.Marshal(struct {
		Uptime string `json:"uptime"`

		GroupRequests   uint64 `json:"group_requests"`
		PrivateRequests uint64 `json:"private_requests"`

		ArticlesProcessed   uint64 `json:"articles_processed"`
		InvalidURLMessages  uint64 `json:"invalid_url_messages"`
		ExtractionFailures  uint64 `json:"extraction_failures"`
		AnalysisFailures    uint64 `json:"analysis_failures"`
		PersistenceFailures uint64 `json:"persistence_failures"`
	}{
		Uptime: time.Since(s.RunningSince).String(),

		GroupRequests:   s.GroupRequests,
		PrivateRequests: s.PrivateRequests,

		ArticlesProcessed:   s.ArticlesProcessed,
		InvalidURLMessages:  s.InvalidURLMessages,
		ExtractionFailures:  s.ExtractionFailures,
		AnalysisFailures:    s.AnalysisFailures,
		PersistenceFailures: s.PersistenceFailures,
	})
}

func (s *Stats) String() string {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		sentry.CaptureException(err)

		return "{\"error\": \"cannot serialize stats\"}"
	}

	return string(data)
}

func (s *Stats) GroupRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GroupRequests++
}

func (s *Stats) PrivateRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PrivateRequests++
}

func (s *Stats) ArticleProcessed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ArticlesProcessed++
}

func (s *Stats) InvalidURLMessage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.InvalidURLMessages++
}

func (s *Stats) ExtractionFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ExtractionFailures++
}

func (s *Stats) AnalysisFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AnalysisFailures++
}

func (s *Stats) PersistenceFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PersistenceFailures++
}
