package mail

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestHTTPMailerSend tests the request shape and response handling.
func TestHTTPMailerSend(t *testing.T) {
	t.Parallel()

	t.Run("successful send", func(t *testing.T) {
		t.Parallel()

		var (
			gotAuth string
			gotBody map[string]any
		)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("bad request body: %v", err)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"email_123"}`))
		}))
		t.Cleanup(srv.Close)

		m := NewHTTPMailer("re_testkey", "Offlist <optout@example.com>", WithEndpoint(srv.URL))
		id, err := m.Send(context.Background(), Message{
			To:      "privacy@broker.example",
			ReplyTo: "jane@x.com",
			Subject: "Data Removal Request - Jane Doe",
			Text:    "please remove",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != "email_123" {
			t.Errorf("id: got %q", id)
		}
		if gotAuth != "Bearer re_testkey" {
			t.Errorf("auth header: got %q", gotAuth)
		}
		if gotBody["from"] != "Offlist <optout@example.com>" {
			t.Errorf("from: got %v", gotBody["from"])
		}
		if gotBody["reply_to"] != "jane@x.com" {
			t.Errorf("reply_to: got %v", gotBody["reply_to"])
		}
		to, ok := gotBody["to"].([]any)
		if !ok || len(to) != 1 || to[0] != "privacy@broker.example" {
			t.Errorf("to: got %v", gotBody["to"])
		}
	})

	t.Run("API error surfaces", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"message":"invalid from"}`))
		}))
		t.Cleanup(srv.Close)

		m := NewHTTPMailer("re_testkey", "bad", WithEndpoint(srv.URL))
		if _, err := m.Send(context.Background(), Message{To: "a@b.c"}); err == nil {
			t.Error("expected error for non-2xx response")
		}
	})

	t.Run("missing key short-circuits", func(t *testing.T) {
		t.Parallel()

		m := NewHTTPMailer("", "from@example.com")
		_, err := m.Send(context.Background(), Message{To: "a@b.c"})
		if !errors.Is(err, ErrNotConfigured) {
			t.Errorf("expected ErrNotConfigured, got %v", err)
		}
	})
}

// TestLogMailer tests the fallback transport.
func TestLogMailer(t *testing.T) {
	t.Parallel()

	m := NewLogMailer(slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := m.Send(context.Background(), Message{To: "a@b.c", Subject: "s"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}
