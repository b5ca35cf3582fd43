package optout

import (
	"strings"
	"testing"

	"github.com/offlist/offlist/internal/model"
)

// TestRenderLetter tests the removal letter content.
func TestRenderLetter(t *testing.T) {
	t.Parallel()

	profile := model.Profile{
		FirstName:   "Jane",
		LastName:    "Doe",
		Emails:      []string{"jane@x.com"},
		Phones:      []string{"(512) 555-0147", "512-555-0199", "512-555-0200", "512-555-0300"},
		DateOfBirth: "1984-03-12",
		Addrs: []model.Address{
			{Street: "100 Main St", City: "Austin", State: "TX", Zip: "78701"},
		},
	}

	letter, err := RenderLetter(&profile, "Spokeo", "https://www.spokeo.com/jane-doe/p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"First Name: Jane",
		"Last Name: Doe",
		"Email: jane@x.com",
		"Date of Birth: 1984-03-12",
		"(512) 555-0147",
		"100 Main St, Austin, TX 78701",
		"Profile URL found on your site: https://www.spokeo.com/jane-doe/p1",
		"California Consumer Privacy Act",
		"Reference ID: SPOKEO-",
	} {
		if !strings.Contains(letter, want) {
			t.Errorf("letter missing %q", want)
		}
	}

	// The fourth phone number is beyond the cap.
	if strings.Contains(letter, "512-555-0300") {
		t.Error("letter should embed at most three phone numbers")
	}
}

// TestRenderLetterSparseProfile tests that optional sections vanish.
func TestRenderLetterSparseProfile(t *testing.T) {
	t.Parallel()

	profile := model.Profile{FirstName: "Jane", LastName: "Doe", Emails: []string{"jane@x.com"}}

	letter, err := RenderLetter(&profile, "Nuwber", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, absent := range []string{"Date of Birth", "Phone Number", "Addresses associated", "Profile URL"} {
		if strings.Contains(letter, absent) {
			t.Errorf("letter should omit %q for a sparse profile", absent)
		}
	}
}

// TestReferenceID tests determinism and shape.
func TestReferenceID(t *testing.T) {
	t.Parallel()

	a := ReferenceID("Spokeo", "jane@x.com")
	b := ReferenceID("Spokeo", "jane@x.com")
	if a != b {
		t.Errorf("reference ID not deterministic: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "SPOKEO-") || len(a) != len("SPOKEO-")+5 {
		t.Errorf("unexpected shape: %q", a)
	}

	if c := ReferenceID("Spokeo", "other@x.com"); c == a {
		t.Errorf("different emails should differ: %q", c)
	}
}
