package model

import "testing"

// TestProfileFullName tests name assembly.
func TestProfileFullName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile Profile
		want    string
	}{
		{
			name:    "first and last",
			profile: Profile{FirstName: "Jane", LastName: "Doe"},
			want:    "Jane Doe",
		},
		{
			name:    "whitespace trimmed",
			profile: Profile{FirstName: " Jane ", LastName: " Doe "},
			want:    "Jane Doe",
		},
		{
			name:    "last name only",
			profile: Profile{LastName: "Doe"},
			want:    "Doe",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.profile.FullName(); got != tt.want {
				t.Errorf("FullName() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestProfileAccessors tests the primary-value helpers.
func TestProfileAccessors(t *testing.T) {
	t.Parallel()

	t.Run("empty profile", func(t *testing.T) {
		t.Parallel()
		var p Profile
		if got := p.PrimaryEmail(); got != "" {
			t.Errorf("expected empty email, got %q", got)
		}
		if got := p.PrimaryAddress(); got != nil {
			t.Errorf("expected nil address, got %+v", got)
		}
		if p.City() != "" || p.State() != "" {
			t.Error("expected empty city and state")
		}
	})

	t.Run("populated profile", func(t *testing.T) {
		t.Parallel()
		p := Profile{
			Emails: []string{"jane@example.com", "alt@example.com"},
			Addrs: []Address{
				{City: "Austin", State: "TX"},
				{City: "Dallas", State: "TX"},
			},
		}
		if got := p.PrimaryEmail(); got != "jane@example.com" {
			t.Errorf("expected first email, got %q", got)
		}
		if got := p.City(); got != "Austin" {
			t.Errorf("expected primary city, got %q", got)
		}
		if got := p.State(); got != "TX" {
			t.Errorf("expected primary state, got %q", got)
		}
	})
}
