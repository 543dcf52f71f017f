package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>  Photosynthesis Basics  </title>
  <style>body { color: red; }</style>
  <script>console.log("tracking")</script>
</head>
<body>
  <nav><a href="/">Home</a><a href="/about">About</a></nav>
  <h1>Photosynthesis</h1>
  <p>Plants convert light into chemical energy.</p>
  <div>The reaction happens in chloroplasts.</div>
  <noscript>Enable JavaScript.</noscript>
  <footer>Copyright 2026</footer>
</body>
</html>`

func TestFetchPageExtractsTitleAndText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "studyhall/1.0" {
			t.Errorf("User-Agent = %q", got)
		}
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	page, err := FetchPage(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}

	if page.Title != "Photosynthesis Basics" {
		t.Errorf("Title = %q", page.Title)
	}
	for _, want := range []string{
		"Photosynthesis",
		"Plants convert light into chemical energy.",
		"The reaction happens in chloroplasts.",
	} {
		if !strings.Contains(page.Text, want) {
			t.Errorf("text missing %q:\n%s", want, page.Text)
		}
	}
	// Script, style, nav, noscript, and footer subtrees are dropped.
	for _, banned := range []string{"tracking", "color: red", "About", "Enable JavaScript", "Copyright"} {
		if strings.Contains(page.Text, banned) {
			t.Errorf("text contains skipped content %q:\n%s", banned, page.Text)
		}
	}
}

func TestFetchPageNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := FetchPage(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404 response, got nil")
	}
}

func TestFetchPageRejectsEmptyPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><script>only();</script></head><body></body></html>`))
	}))
	defer srv.Close()

	if _, err := FetchPage(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for a page with no readable text, got nil")
	}
}

func TestFetchPageCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FetchPage(ctx, srv.URL); err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
}
