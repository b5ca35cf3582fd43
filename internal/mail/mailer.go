package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultEndpoint is the Resend email API.
const DefaultEndpoint = "https://api.resend.com/emails"

// ErrNotConfigured is returned by Send when the transport has no API
// key. Callers route the request to manual handling.
var ErrNotConfigured = errors.New("mail transport not configured")

// Message is one outbound email.
type Message struct {
	To      string `json:"-"`
	ReplyTo string `json:"reply_to,omitempty"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Mailer sends email. Success means the transport accepted the
// message; delivery confirmation is out of scope.
type Mailer interface {
	// Send delivers msg. The returned id identifies the send with the
	// provider, when one is available.
	Send(ctx context.Context, msg Message) (id string, err error)
}

// HTTPMailer sends through a Resend-style JSON API: POST with a
// bearer key, 2xx means accepted.
type HTTPMailer struct {
	client   *http.Client
	endpoint string
	apiKey   string
	from     string
}

// HTTPMailerOption configures an HTTPMailer.
type HTTPMailerOption func(*HTTPMailer)

// WithEndpoint overrides the API URL. Used in tests.
func WithEndpoint(endpoint string) HTTPMailerOption {
	return func(m *HTTPMailer) {
		m.endpoint = endpoint
	}
}

// WithClient replaces the default HTTP client.
func WithClient(client *http.Client) HTTPMailerOption {
	return func(m *HTTPMailer) {
		m.client = client
	}
}

// NewHTTPMailer creates a mailer sending from the given address.
func NewHTTPMailer(apiKey, from string, opts ...HTTPMailerOption) *HTTPMailer {
	m := &HTTPMailer{
		client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: DefaultEndpoint,
		apiKey:   apiKey,
		from:     from,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Send implements Mailer.
func (m *HTTPMailer) Send(ctx context.Context, msg Message) (string, error) {
	if m.apiKey == "" {
		return "", ErrNotConfigured
	}

	payload := struct {
		From    string   `json:"from"`
		To      []string `json:"to"`
		ReplyTo string   `json:"reply_to,omitempty"`
		Subject string   `json:"subject"`
		Text    string   `json:"text"`
	}{
		From:    m.from,
		To:      []string{msg.To},
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Text:    msg.Text,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("email API returned %d: %s", resp.StatusCode, snippet)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		// The send was accepted; a malformed id response is not worth
		// failing the opt-out over.
		return "", nil
	}
	return result.ID, nil
}

// LogMailer records sends instead of delivering them. It always
// returns ErrNotConfigured so the executor falls back to manual
// instructions while the operator still sees what would have gone out.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a logging fallback mailer.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send implements Mailer.
func (m *LogMailer) Send(_ context.Context, msg Message) (string, error) {
	m.logger.Info("email suppressed: no mail transport configured",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return "", ErrNotConfigured
}
