package optout

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/offlist/offlist/internal/mail"
	"github.com/offlist/offlist/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func janeProfile() *model.Profile {
	return &model.Profile{
		FirstName: "Jane",
		LastName:  "Doe",
		Emails:    []string{"jane@x.com"},
	}
}

func fastExecutor(m mail.Mailer, opts ...ExecutorOption) *Executor {
	base := []ExecutorOption{WithSendInterval(time.Millisecond)}
	return NewExecutor(m, testLogger(), append(base, opts...)...)
}

// TestExecuteEmail tests the email path end to end against a fake
// mail API.
func TestExecuteEmail(t *testing.T) {
	t.Parallel()

	var gotSubject string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if strings.Contains(string(body), "Data Removal Request - Jane Doe") {
			gotSubject = "Data Removal Request - Jane Doe"
		}
		w.Write([]byte(`{"id":"email_42"}`))
	}))
	t.Cleanup(srv.Close)

	mailer := mail.NewHTTPMailer("re_testkey", "optout@example.com", mail.WithEndpoint(srv.URL))
	e := fastExecutor(mailer)

	conf := model.OptOut{
		Method:      model.MethodEmail,
		Email:       "privacy@whitepages.com",
		Subject:     "Data Removal Request",
		CanAutomate: true,
	}
	out := e.Execute(context.Background(), conf, janeProfile(), "WhitePages", "")

	if !out.Success {
		t.Fatalf("expected success: %+v", out)
	}
	if out.Method != model.MethodAutoEmail {
		t.Errorf("method: got %q", out.Method)
	}
	if out.SentTo != "privacy@whitepages.com" {
		t.Errorf("sent to: got %q", out.SentTo)
	}
	if out.Confirmation != "email_42" {
		t.Errorf("confirmation: got %q", out.Confirmation)
	}
	if gotSubject == "" {
		t.Error("subject should carry the profile name")
	}
}

// TestExecuteEmailUnconfigured tests degradation to manual when no
// transport is configured.
func TestExecuteEmailUnconfigured(t *testing.T) {
	t.Parallel()

	e := fastExecutor(mail.NewLogMailer(testLogger()))

	conf := model.OptOut{
		Method:      model.MethodEmail,
		Email:       "privacy@nuwber.com",
		CanAutomate: true,
	}
	out := e.Execute(context.Background(), conf, janeProfile(), "Nuwber", "")

	if out.Success {
		t.Fatalf("expected failure: %+v", out)
	}
	if out.Method != model.MethodManualAction {
		t.Errorf("method: got %q, want manual", out.Method)
	}
	if out.Instructions == "" {
		t.Error("manual fallback needs instructions")
	}
}

// TestExecuteForm tests the form path.
func TestExecuteForm(t *testing.T) {
	t.Parallel()

	t.Run("2xx is success with substituted fields", func(t *testing.T) {
		t.Parallel()

		var gotForm map[string][]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				t.Errorf("bad form: %v", err)
			}
			gotForm = r.PostForm
			w.WriteHeader(http.StatusAccepted)
		}))
		t.Cleanup(srv.Close)

		e := fastExecutor(mail.NewLogMailer(testLogger()))
		conf := model.OptOut{
			Method:   model.MethodForm,
			URL:      "https://broker.example/optout",
			Endpoint: srv.URL,
			Fields: map[string]string{
				"url":   "{profile_url}",
				"email": "{user_email}",
				"name":  "{user_name}",
			},
			CanAutomate: true,
		}

		out := e.Execute(context.Background(), conf, janeProfile(), "Spokeo", "https://broker.example/jane")
		if !out.Success || out.Method != model.MethodAutoForm {
			t.Fatalf("unexpected outcome: %+v", out)
		}
		if got := gotForm["url"]; len(got) != 1 || got[0] != "https://broker.example/jane" {
			t.Errorf("url field: %v", gotForm["url"])
		}
		if got := gotForm["email"]; len(got) != 1 || got[0] != "jane@x.com" {
			t.Errorf("email field: %v", gotForm["email"])
		}
		if got := gotForm["name"]; len(got) != 1 || got[0] != "Jane Doe" {
			t.Errorf("name field: %v", gotForm["name"])
		}
	})

	t.Run("non-2xx falls back to manual with URL", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		t.Cleanup(srv.Close)

		e := fastExecutor(mail.NewLogMailer(testLogger()))
		conf := model.OptOut{
			Method:      model.MethodForm,
			URL:         "https://broker.example/optout",
			Endpoint:    srv.URL,
			CanAutomate: true,
		}

		out := e.Execute(context.Background(), conf, janeProfile(), "Spokeo", "")
		if out.Success {
			t.Fatalf("expected failure: %+v", out)
		}
		if out.Method != model.MethodManualAction {
			t.Errorf("method: got %q", out.Method)
		}
		if out.FallbackURL != "https://broker.example/optout" {
			t.Errorf("fallback URL: got %q", out.FallbackURL)
		}
		if out.Err == "" {
			t.Error("outcome should record the HTTP status")
		}
	})

	t.Run("missing endpoint goes manual", func(t *testing.T) {
		t.Parallel()

		e := fastExecutor(mail.NewLogMailer(testLogger()))
		conf := model.OptOut{
			Method:      model.MethodForm,
			URL:         "https://thatsthem.com/optout",
			CanAutomate: true,
		}

		out := e.Execute(context.Background(), conf, janeProfile(), "ThatsThem", "")
		if out.Success || out.Method != model.MethodManualAction {
			t.Fatalf("unexpected outcome: %+v", out)
		}
		if out.FallbackURL != "https://thatsthem.com/optout" {
			t.Errorf("fallback URL: got %q", out.FallbackURL)
		}
	})
}

// TestExecuteManual tests manual descriptors and the CAPTCHA message.
func TestExecuteManual(t *testing.T) {
	t.Parallel()

	e := fastExecutor(mail.NewLogMailer(testLogger()))

	out := e.Execute(context.Background(), model.OptOut{Method: model.MethodManual}, janeProfile(), "Unknown Site", "")
	if out.Success || out.Method != model.MethodManualAction {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if out.Instructions == "" {
		t.Error("manual outcome needs instructions")
	}

	captcha := e.Execute(context.Background(), model.OptOut{
		Method:      model.MethodManual,
		Captcha:     true,
		CanAutomate: false,
	}, janeProfile(), "CaptchaSite", "")
	if !strings.Contains(captcha.Message, "CAPTCHA") {
		t.Errorf("captcha message: %q", captcha.Message)
	}
}
