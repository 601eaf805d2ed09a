package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func rssFeed(title string, entries ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<?xml version="1.0"?><rss version="2.0"><channel><title>%s</title>`, title)
	for i, entry := range entries {
		pub := time.Now().Add(-time.Duration(i) * time.Hour).Format(time.RFC1123Z)
		fmt.Fprintf(&b, `<item><title>%s</title><link>https://example.com/%d</link><guid>item-%d</guid><pubDate>%s</pubDate></item>`,
			entry, i, i, pub)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

func TestHeadlines(t *testing.T) {
	t.Run("from_configured_feed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/rss+xml")
			fmt.Fprint(w, rssFeed("Test Wire", "Markets rally", "Fed holds rates"))
		}))
		defer server.Close()

		svc := NewNewsService([]string{server.URL})
		items := svc.Headlines(context.Background(), "")

		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		if items[0].Title != "Markets rally" {
			t.Errorf("expected newest item first, got %q", items[0].Title)
		}
		if items[0].Source != "Test Wire" {
			t.Errorf("expected source Test Wire, got %q", items[0].Source)
		}
	})

	t.Run("failed_feed_falls_back_to_synthesized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		svc := NewNewsService([]string{server.URL})
		items := svc.Headlines(context.Background(), "")

		if len(items) != 20 {
			t.Fatalf("expected 20 synthesized items, got %d", len(items))
		}
	})

	t.Run("no_feeds_synthesizes_20", func(t *testing.T) {
		svc := NewNewsService(nil)
		items := svc.Headlines(context.Background(), "")

		if len(items) != 20 {
			t.Fatalf("expected 20 items, got %d", len(items))
		}
		for _, item := range items {
			if item.Title == "" || item.Source == "" || item.PublishedAt == "" {
				t.Fatalf("incomplete item: %+v", item)
			}
		}
	})

	t.Run("symbol_items_lead", func(t *testing.T) {
		svc := NewNewsService(nil)
		items := svc.Headlines(context.Background(), "AAPL")

		if len(items) != 20 {
			t.Fatalf("expected 20 items, got %d", len(items))
		}
		if !strings.Contains(items[0].Title, "AAPL") || !strings.Contains(items[1].Title, "AAPL") {
			t.Errorf("expected AAPL items leading, got %q, %q", items[0].Title, items[1].Title)
		}
	})

	t.Run("caps_at_20", func(t *testing.T) {
		var entries []string
		for i := 0; i < 30; i++ {
			entries = append(entries, fmt.Sprintf("Headline %d", i))
		}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, rssFeed("Busy Wire", entries...))
		}))
		defer server.Close()

		svc := NewNewsService([]string{server.URL})
		items := svc.Headlines(context.Background(), "")

		if len(items) != 20 {
			t.Fatalf("expected cap at 20, got %d", len(items))
		}
	})
}
