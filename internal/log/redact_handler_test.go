package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestRedactHandler_SensitiveKeys tests that PII attribute keys are masked.
func TestRedactHandler_SensitiveKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		value    string
		wantMask bool
	}{
		{name: "email key is masked", key: "email", value: "jane@example.com", wantMask: true},
		{name: "Email key (mixed case) is masked", key: "Email", value: "jane@example.com", wantMask: true},
		{name: "phone key is masked", key: "phone", value: "555-123-4567", wantMask: true},
		{name: "date_of_birth key is masked", key: "date_of_birth", value: "1984-03-12", wantMask: true},
		{name: "street key is masked", key: "street", value: "123 Main St", wantMask: true},
		{name: "api_key key is masked", key: "api_key", value: "re_abc123", wantMask: true},
		{name: "reply_to key is masked", key: "reply_to", value: "jane@example.com", wantMask: true},
		{name: "source key passes through", key: "source", value: "Spokeo", wantMask: false},
		{name: "url key passes through", key: "url", value: "https://example.com/jane-doe", wantMask: false},
		{name: "broker_key passes through", key: "broker_key", value: "spokeo", wantMask: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(NewRedactHandler(slog.NewTextHandler(&buf, nil)))

			logger.Info("test", tt.key, tt.value)

			out := buf.String()
			if tt.wantMask {
				if strings.Contains(out, tt.value) {
					t.Errorf("expected value %q to be masked, got: %s", tt.value, out)
				}
				if !strings.Contains(out, MaskValue) {
					t.Errorf("expected mask marker in output, got: %s", out)
				}
			} else {
				if !strings.Contains(out, tt.value) {
					t.Errorf("expected value %q to pass through, got: %s", tt.value, out)
				}
			}
		})
	}
}

// TestRedactHandler_SensitiveValues tests masking by value pattern.
func TestRedactHandler_SensitiveValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{name: "bare email address", value: "john.smith@corp.example"},
		{name: "formatted phone number", value: "(415) 555-0173"},
		{name: "dashed phone number", value: "415-555-0173"},
		{name: "bearer token", value: "Bearer abc.def.ghi"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(NewRedactHandler(slog.NewTextHandler(&buf, nil)))

			// "detail" is not a sensitive key; masking must come from
			// the value pattern.
			logger.Info("test", "detail", tt.value)

			if strings.Contains(buf.String(), tt.value) {
				t.Errorf("expected value %q to be masked, got: %s", tt.value, buf.String())
			}
		})
	}
}

// TestRedactHandler_Groups tests that group attributes are masked too.
func TestRedactHandler_Groups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewRedactHandler(slog.NewTextHandler(&buf, nil)))

	logger.Info("test", slog.Group("profile",
		slog.String("email", "jane@example.com"),
		slog.String("city", "Austin"),
	))

	out := buf.String()
	if strings.Contains(out, "jane@example.com") {
		t.Errorf("expected grouped email to be masked, got: %s", out)
	}
	if !strings.Contains(out, "Austin") {
		t.Errorf("expected city to pass through, got: %s", out)
	}
}

// TestNewLogger_Level tests the verbose flag's level selection.
func TestNewLogger_Level(t *testing.T) {
	t.Parallel()

	t.Run("quiet logger drops info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)
		logger.Info("should not appear")
		if buf.Len() != 0 {
			t.Errorf("expected no output at info level, got: %s", buf.String())
		}
	})

	t.Run("verbose logger keeps debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)
		logger.Debug("visible")
		if !strings.Contains(buf.String(), "visible") {
			t.Errorf("expected debug output, got: %s", buf.String())
		}
	})
}
