package headline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func serve(t *testing.T, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestResolvePrefersClassedHeading(t *testing.T) {
	srv := serve(t, `<html><body>
		<h2>Site navigation</h2>
		<h1 class="article-title">The Real   Headline</h1>
	</body></html>`)

	r := NewResolver(5 * time.Second)

	got := r.Resolve(context.Background(), srv.URL)
	if got != "The Real Headline" {
		t.Fatalf("expected classed headline, got %q", got)
	}
}

func TestResolveFallsBackToAnyHeading(t *testing.T) {
	srv := serve(t, `<html><body><h2>Plain Heading</h2></body></html>`)

	r := NewResolver(5 * time.Second)

	got := r.Resolve(context.Background(), srv.URL)
	if got != "Plain Heading" {
		t.Fatalf("expected plain heading, got %q", got)
	}
}

func TestResolveFallsBackToOpenGraph(t *testing.T) {
	srv := serve(t, `<html><head>
		<meta property="og:title" content="OG Headline" />
	</head><body><p>no headings here</p></body></html>`)

	r := NewResolver(5 * time.Second)

	got := r.Resolve(context.Background(), srv.URL)
	if got != "OG Headline" {
		t.Fatalf("expected og:title, got %q", got)
	}
}

func TestResolveReturnsSentinelWhenNothingMatches(t *testing.T) {
	srv := serve(t, `<html><body><p>just text</p></body></html>`)

	r := NewResolver(5 * time.Second)

	got := r.Resolve(context.Background(), srv.URL)
	if got != NoTitle {
		t.Fatalf("expected sentinel, got %q", got)
	}
}

func TestResolveReturnsSentinelOnFetchError(t *testing.T) {
	srv := serve(t, "")
	url := srv.URL
	srv.Close()

	r := NewResolver(time.Second)

	got := r.Resolve(context.Background(), url)
	if got != NoTitle {
		t.Fatalf("expected sentinel on fetch error, got %q", got)
	}
}
