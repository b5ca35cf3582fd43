package optout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/offlist/offlist/internal/mail"
	"github.com/offlist/offlist/internal/model"
)

// Outcome is the uniform result of one opt-out attempt. Callers branch
// on Success and Method; they never see an error from Execute.
type Outcome struct {
	Success bool

	// Method is how the request was (or must be) delivered.
	Method model.RequestMethod

	// Message is a human-readable summary for logs and the request
	// record.
	Message string

	// SentTo is the email address the letter went to, when applicable.
	SentTo string

	// Confirmation is the transport's send identifier, when one exists.
	Confirmation string

	// FallbackURL points at the source's manual opt-out page when
	// automation failed or is unavailable.
	FallbackURL string

	// Instructions carry the manual steps when the user must act.
	Instructions string

	// Err records the underlying failure, empty on success.
	Err string
}

// Executor delivers opt-out requests. Sends are paced through a shared
// limiter so a batch does not trip provider throttling.
type Executor struct {
	mailer  mail.Mailer
	client  *http.Client
	logger  *slog.Logger
	limiter *rate.Limiter
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithHTTPClient replaces the form submission client.
func WithHTTPClient(client *http.Client) ExecutorOption {
	return func(e *Executor) {
		e.client = client
	}
}

// WithSendInterval sets the pacing between successive submissions.
func WithSendInterval(interval time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
}

// NewExecutor creates an executor sending mail through the given
// transport.
func NewExecutor(mailer mail.Mailer, logger *slog.Logger, opts ...ExecutorOption) *Executor {
	e := &Executor{
		mailer:  mailer,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute delivers one opt-out request per the descriptor. All failure
// modes are contained in the Outcome; the only error path out is
// context cancellation, reported as a failed outcome too.
func (e *Executor) Execute(ctx context.Context, conf model.OptOut, profile *model.Profile, sourceName, profileURL string) Outcome {
	if err := e.limiter.Wait(ctx); err != nil {
		return Outcome{
			Method:  model.MethodManualAction,
			Message: "opt-out cancelled before submission",
			Err:     err.Error(),
		}
	}

	if conf.Method == model.MethodManual || !conf.CanAutomate {
		return e.manualOutcome(conf, sourceName)
	}

	switch conf.Method {
	case model.MethodEmail:
		return e.executeEmail(ctx, conf, profile, sourceName, profileURL)
	case model.MethodForm:
		return e.executeForm(ctx, conf, profile, sourceName, profileURL)
	default:
		return e.manualOutcome(conf, sourceName)
	}
}

// executeEmail renders the removal letter and sends it with reply-to
// set to the user, so broker confirmations reach them directly.
func (e *Executor) executeEmail(ctx context.Context, conf model.OptOut, profile *model.Profile, sourceName, profileURL string) Outcome {
	letter, err := RenderLetter(profile, sourceName, profileURL)
	if err != nil {
		return Outcome{
			Method:       model.MethodManualAction,
			Message:      fmt.Sprintf("could not prepare opt-out letter for %s", sourceName),
			FallbackURL:  conf.URL,
			Instructions: ManualInstructions,
			Err:          err.Error(),
		}
	}

	subject := conf.Subject
	if subject == "" {
		subject = "Opt-Out Request"
	}
	subject = subject + " - " + profile.FullName()

	id, err := e.mailer.Send(ctx, mail.Message{
		To:      conf.Email,
		ReplyTo: profile.PrimaryEmail(),
		Subject: subject,
		Text:    letter,
	})
	if err != nil {
		msg := fmt.Sprintf("failed to send opt-out email to %s", sourceName)
		if errors.Is(err, mail.ErrNotConfigured) {
			msg = "email service not configured; manual removal required"
		}
		e.logger.Warn("opt-out email failed", "source", sourceName, "error", err)
		return Outcome{
			Method:       model.MethodManualAction,
			Message:      msg,
			FallbackURL:  conf.URL,
			Instructions: ManualInstructions,
			Err:          err.Error(),
		}
	}

	e.logger.Info("opt-out email sent", "source", sourceName, "confirmation", id)
	return Outcome{
		Success:      true,
		Method:       model.MethodAutoEmail,
		Message:      fmt.Sprintf("opt-out email sent to %s (%s)", sourceName, conf.Email),
		SentTo:       conf.Email,
		Confirmation: id,
	}
}

// executeForm substitutes profile values into the field templates and
// posts them. 2xx is success; everything else falls back to manual
// with the source's opt-out page.
func (e *Executor) executeForm(ctx context.Context, conf model.OptOut, profile *model.Profile, sourceName, profileURL string) Outcome {
	if conf.Endpoint == "" {
		return Outcome{
			Method:       model.MethodManualAction,
			Message:      fmt.Sprintf("form submission not configured for %s; complete it manually", sourceName),
			FallbackURL:  conf.URL,
			Instructions: ManualInstructions,
		}
	}

	form := url.Values{}
	replacer := strings.NewReplacer(
		"{profile_url}", profileURL,
		"{user_email}", profile.PrimaryEmail(),
		"{user_name}", profile.FullName(),
		"{first_name}", profile.FirstName,
		"{last_name}", profile.LastName,
	)
	for key, tmpl := range conf.Fields {
		form.Set(key, replacer.Replace(tmpl))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, conf.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Outcome{
			Method:       model.MethodManualAction,
			Message:      fmt.Sprintf("form submission failed for %s; complete it manually", sourceName),
			FallbackURL:  conf.URL,
			Instructions: ManualInstructions,
			Err:          err.Error(),
		}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json, text/html, */*")

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Warn("opt-out form failed", "source", sourceName, "error", err)
		return Outcome{
			Method:       model.MethodManualAction,
			Message:      fmt.Sprintf("form submission failed for %s; complete it manually", sourceName),
			FallbackURL:  conf.URL,
			Instructions: ManualInstructions,
			Err:          err.Error(),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		e.logger.Info("opt-out form submitted", "source", sourceName, "status", resp.StatusCode)
		return Outcome{
			Success: true,
			Method:  model.MethodAutoForm,
			Message: fmt.Sprintf("opt-out request submitted to %s", sourceName),
		}
	}

	return Outcome{
		Method:       model.MethodManualAction,
		Message:      fmt.Sprintf("form submission returned HTTP %d; complete it manually", resp.StatusCode),
		FallbackURL:  conf.URL,
		Instructions: ManualInstructions,
		Err:          fmt.Sprintf("HTTP %d", resp.StatusCode),
	}
}

// manualOutcome routes a request to the user with whatever guidance
// the descriptor carries.
func (e *Executor) manualOutcome(conf model.OptOut, sourceName string) Outcome {
	instructions := conf.Instructions
	if instructions == "" {
		instructions = ManualInstructions
	}
	msg := fmt.Sprintf("no automated opt-out available for %s; manual removal required", sourceName)
	if conf.Captcha {
		msg = fmt.Sprintf("%s requires a CAPTCHA; manual removal required", sourceName)
	}
	return Outcome{
		Method:       model.MethodManualAction,
		Message:      msg,
		FallbackURL:  conf.URL,
		Instructions: instructions,
	}
}
