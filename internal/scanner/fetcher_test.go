package scanner

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/offlist/offlist/internal/model"
)

// TestFetchStatusClassification tests that response statuses map to
// the right fetch error kinds.
func TestFetchStatusClassification(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>Jane Doe</body></html>"))
	})
	mux.HandleFunc("/blocked", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	f := NewFetcher("test-agent", 1<<20)

	tests := []struct {
		name       string
		path       string
		wantKind   model.FetchError
		wantDetail string
	}{
		{name: "blocked", path: "/blocked", wantKind: model.FetchBlocked, wantDetail: "access blocked"},
		{name: "not found", path: "/missing", wantKind: model.FetchNotFound},
		{name: "server error", path: "/broken", wantKind: model.FetchHTTPError, wantDetail: "HTTP 503"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := f.Fetch(context.Background(), srv.URL+tt.path)
			var failure *FetchFailure
			if !errors.As(err, &failure) {
				t.Fatalf("expected FetchFailure, got %v", err)
			}
			if failure.Kind != tt.wantKind {
				t.Errorf("kind: got %q, want %q", failure.Kind, tt.wantKind)
			}
			if failure.Detail != tt.wantDetail {
				t.Errorf("detail: got %q, want %q", failure.Detail, tt.wantDetail)
			}
		})
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		page, err := f.Fetch(context.Background(), srv.URL+"/ok")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(page.Text, "Jane Doe") {
			t.Errorf("visible text missing content: %q", page.Text)
		}
	})
}

// TestFetchFollowsRedirects tests that the page reports the final URL.
func TestFetchFollowsRedirects(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/profile", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>profile page</body></html>"))
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/profile", http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	f := NewFetcher("test-agent", 1<<20)
	page, err := f.Fetch(context.Background(), srv.URL+"/search")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.URL != srv.URL+"/profile" {
		t.Errorf("resolved URL: got %q, want %q", page.URL, srv.URL+"/profile")
	}
}

// TestFetchTimeout tests the timeout classification.
func TestFetchTimeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	t.Cleanup(srv.Close)

	f := NewFetcher("test-agent", 1<<20)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := f.Fetch(ctx, srv.URL)
	var failure *FetchFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected FetchFailure, got %v", err)
	}
	if failure.Kind != model.FetchTimeout {
		t.Errorf("kind: got %q, want %q", failure.Kind, model.FetchTimeout)
	}
}

// TestFetchBodyCap tests the read limit.
func TestFetchBodyCap(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("a", 4096)))
	}))
	t.Cleanup(srv.Close)

	f := NewFetcher("test-agent", 128)
	page, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Body) != 128 {
		t.Errorf("body length: got %d, want 128", len(page.Body))
	}
}

// TestFetchSendsBrowserHeaders tests that requests carry the browser
// header set.
func TestFetchSendsBrowserHeaders(t *testing.T) {
	t.Parallel()

	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	t.Cleanup(srv.Close)

	f := NewFetcher("custom-agent", 1<<20)
	if _, err := f.Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ua := got.Get("User-Agent"); ua != "custom-agent" {
		t.Errorf("User-Agent: got %q", ua)
	}
	if got.Get("Accept-Language") == "" || got.Get("DNT") == "" {
		t.Errorf("browser headers missing: %v", got)
	}
}

// TestVisibleText tests HTML text extraction.
func TestVisibleText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips markup and collapses whitespace",
			in:   "<html><body><h1>Jane   Doe</h1>\n<p>Austin, TX</p></body></html>",
			want: "Jane Doe Austin, TX",
		},
		{
			name: "skips script and style",
			in:   "<html><head><style>.x{color:red}</style><script>var jane=1;</script></head><body>visible</body></html>",
			want: "visible",
		},
		{
			name: "plain text passes through",
			in:   "just text",
			want: "just text",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := VisibleText(tt.in); got != tt.want {
				t.Errorf("VisibleText: got %q, want %q", got, tt.want)
			}
		})
	}
}
