package main

import (
	"strings"
	"testing"
)

// TestNewOptOutCmd tests the optout command group creation.
func TestNewOptOutCmd(t *testing.T) {
	t.Parallel()

	cmd := NewOptOutCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "optout" {
			t.Errorf("expected use 'optout', got %q", cmd.Use)
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		want := map[string]bool{
			"file":     false,
			"list":     false,
			"complete": false,
			"fail":     false,
			"verify":   false,
		}
		for _, sub := range cmd.Commands() {
			if _, ok := want[sub.Name()]; ok {
				want[sub.Name()] = true
			}
		}
		for name, found := range want {
			if !found {
				t.Errorf("expected %s subcommand", name)
			}
		}
	})

	t.Run("has config flag", func(t *testing.T) {
		t.Parallel()
		if cmd.PersistentFlags().Lookup("config") == nil {
			t.Error("expected persistent config flag")
		}
	})

	t.Run("file has all flag", func(t *testing.T) {
		t.Parallel()
		fileCmd, _, err := cmd.Find([]string{"file"})
		if err != nil {
			t.Fatal(err)
		}
		if fileCmd.Flags().Lookup("all") == nil {
			t.Error("expected all flag on file subcommand")
		}
	})

	t.Run("fail has note flag", func(t *testing.T) {
		t.Parallel()
		failCmd, _, err := cmd.Find([]string{"fail"})
		if err != nil {
			t.Fatal(err)
		}
		if failCmd.Flags().Lookup("note") == nil {
			t.Error("expected note flag on fail subcommand")
		}
	})
}

// TestIndent tests line prefixing for manual instructions.
func TestIndent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		prefix string
		want   string
	}{
		{
			name:   "single line",
			input:  "visit the site",
			prefix: "  ",
			want:   "  visit the site",
		},
		{
			name:   "multiple lines",
			input:  "step one\nstep two",
			prefix: "> ",
			want:   "> step one\n> step two",
		},
		{
			name:   "trailing newline trimmed",
			input:  "step one\n",
			prefix: "  ",
			want:   "  step one",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := indent(tt.input, tt.prefix); got != tt.want {
				t.Errorf("indent() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestTruncate tests fixed-width table truncation.
func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := truncate("short", 24); got != "short" {
		t.Errorf("expected unchanged string, got %q", got)
	}

	got := truncate("a very long source name that overflows", 24)
	if len(got) != 24 {
		t.Errorf("expected length 24, got %d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
}
