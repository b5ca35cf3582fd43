package optout

import (
	"testing"

	"github.com/offlist/offlist/internal/model"
)

// TestResolveFuzzyMatching tests that name variants land on the same
// descriptor.
func TestResolveFuzzyMatching(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	canonical := r.Resolve("spokeo")
	if canonical.Method != model.MethodForm || canonical.URL != "https://www.spokeo.com/optout" {
		t.Fatalf("unexpected canonical descriptor: %+v", canonical)
	}

	for _, name := range []string{"Spokeo", "Spokeo Alt", "SPOKEO.COM", "www.spokeo.com"} {
		got := r.Resolve(name)
		if got.URL != canonical.URL || got.Method != canonical.Method {
			t.Errorf("Resolve(%q) = %+v, want the spokeo descriptor", name, got)
		}
	}
}

// TestResolveUnknown tests the manual fallback.
func TestResolveUnknown(t *testing.T) {
	t.Parallel()

	got := NewResolver().Resolve("Totally Unknown Site")
	if got.Method != model.MethodManual {
		t.Errorf("method: got %q, want manual", got.Method)
	}
	if got.CanAutomate {
		t.Error("manual fallback must not be automatable")
	}
	if got.Instructions == "" {
		t.Error("manual fallback needs instructions")
	}
}

// TestResolveNoiseStripping tests the second-pass token stripping.
func TestResolveNoiseStripping(t *testing.T) {
	t.Parallel()

	r := NewResolver()

	// "peoplesearchfree" matches no key directly; stripping "search"
	// and "free" leaves "people", which lands on the first registered
	// key containing it.
	got := r.Resolve("PeopleSearchFree")
	if got.Method != model.MethodForm || got.Endpoint != "https://www.truepeoplesearch.com/api/removal" {
		t.Errorf("expected the truepeoplesearch descriptor, got %+v", got)
	}
}

// TestResolveMethods tests representative method assignments.
func TestResolveMethods(t *testing.T) {
	t.Parallel()

	r := NewResolver()

	tests := []struct {
		name       string
		wantMethod model.OptOutMethod
		wantTarget string
	}{
		{name: "TruePeopleSearch", wantMethod: model.MethodForm, wantTarget: "https://www.truepeoplesearch.com/api/removal"},
		{name: "BeenVerified", wantMethod: model.MethodEmail, wantTarget: "privacy@beenverified.com"},
		{name: "Radaris", wantMethod: model.MethodEmail, wantTarget: "privacy@radaris.com"},
		{name: "FamilyTreeNow", wantMethod: model.MethodEmail, wantTarget: "privacy@familytreenow.com"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := r.Resolve(tt.name)
			if got.Method != tt.wantMethod {
				t.Errorf("method: got %q, want %q", got.Method, tt.wantMethod)
			}
			target := got.Email
			if tt.wantMethod == model.MethodForm {
				target = got.Endpoint
			}
			if target != tt.wantTarget {
				t.Errorf("target: got %q, want %q", target, tt.wantTarget)
			}
		})
	}
}

// TestResolveCaptchaRouting tests that CAPTCHA-gated sources go
// straight to manual.
func TestResolveCaptchaRouting(t *testing.T) {
	t.Parallel()

	r := NewResolver(WithMethod("captchasite", model.OptOut{
		Method:      model.MethodForm,
		URL:         "https://captchasite.example/optout",
		Endpoint:    "https://captchasite.example/api",
		Captcha:     true,
		CanAutomate: true,
	}))

	got := r.Resolve("CaptchaSite")
	if got.Method != model.MethodManual {
		t.Errorf("method: got %q, want manual", got.Method)
	}
	if got.URL != "https://captchasite.example/optout" {
		t.Errorf("fallback URL lost: %+v", got)
	}
	if !got.Captcha {
		t.Error("captcha flag should survive routing")
	}
}

// TestResolveSource tests that embedded source configuration wins over
// the name table.
func TestResolveSource(t *testing.T) {
	t.Parallel()

	r := NewResolver()

	src := model.Source{
		Name: "Spokeo",
		OptOut: model.OptOut{
			Method:      model.MethodEmail,
			Email:       "privacy@spokeo.example",
			CanAutomate: true,
		},
	}
	if got := r.ResolveSource(&src); got.Email != "privacy@spokeo.example" {
		t.Errorf("embedded config should win: %+v", got)
	}

	unnamed := model.Source{Name: "BeenVerified"}
	if got := r.ResolveSource(&unnamed); got.Email != "privacy@beenverified.com" {
		t.Errorf("name table fallback broken: %+v", got)
	}
}

// TestResolveFirstRegisteredWins tests the tie-break for ambiguous
// names.
func TestResolveFirstRegisteredWins(t *testing.T) {
	t.Parallel()

	// "peoplefinder" precedes any custom registration sharing the
	// token, so an ambiguous name must hit the builtin entry.
	r := NewResolver(WithMethod("peoplefinderpro", model.OptOut{
		Method:      model.MethodEmail,
		Email:       "privacy@peoplefinderpro.example",
		CanAutomate: true,
	}))

	if got := r.Resolve("PeopleFinder Pro"); got.Email != "privacy@peoplefinder.com" {
		t.Errorf("first registered key should win: %+v", got)
	}
}
