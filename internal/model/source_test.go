package model

import "testing"

// TestValidateTemplate tests URL template validation.
func TestValidateTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		wantErr  bool
	}{
		{
			name:     "all known placeholders",
			template: "https://example.com/{first_name}-{last_name}/{city}/{state}",
			wantErr:  false,
		},
		{
			name:     "no placeholders",
			template: "https://example.com/search",
			wantErr:  false,
		},
		{
			name:     "unknown placeholder",
			template: "https://example.com/{full_name}",
			wantErr:  true,
		},
		{
			name:     "empty template",
			template: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src := Source{Name: "Test", URLTemplate: tt.template}
			err := src.ValidateTemplate()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTemplate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestBuildURL tests template expansion.
func TestBuildURL(t *testing.T) {
	t.Parallel()

	src := Source{
		URLTemplate: "https://example.com/{first_name}-{last_name}/{city}-{state}",
	}

	got := src.BuildURL("jane", "doe", "austin", "tx")
	want := "https://example.com/jane-doe/austin-tx"
	if got != want {
		t.Errorf("BuildURL() = %q, want %q", got, want)
	}
}

// TestSourceIdentity tests the exposure dedup key.
func TestSourceIdentity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source Source
		want   string
	}{
		{
			name:   "catalog broker uses ID",
			source: Source{ID: 7, Name: "Spokeo"},
			want:   "broker:7",
		},
		{
			name:   "static source uses normalized name",
			source: Source{Name: "True People Search"},
			want:   "true_people_search",
		},
		{
			name:   "extra whitespace collapses",
			source: Source{Name: "  City   Gazette "},
			want:   "city_gazette",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.source.Identity(); got != tt.want {
				t.Errorf("Identity() = %q, want %q", got, tt.want)
			}
		})
	}
}
