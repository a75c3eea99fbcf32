package main

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func TestParseIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1", 0, false},
		{"8", 7, false},
		{"0", 0, true},
		{"-2", 0, true},
		{"first", 0, true},
	}
	for _, tt := range tests {
		got, err := parseIndex(tt.in)
		if tt.wantErr {
			if !errors.Is(err, errIndex) {
				t.Errorf("parseIndex(%q) error = %v, want errIndex", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("parseIndex(%q) = %d, %v, want %d", tt.in, got, err, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"today", "2025-03-10", false},
		{"2025-12-31", "2025-12-31", false},
		{"31/12/2025", "", true},
		{"2025-02-30", "", true},
	}
	for _, tt := range tests {
		got, err := parseDate(tt.in, now)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseAssignments(t *testing.T) {
	t.Parallel()

	fields, order, err := parseAssignments([]string{
		"b1Data=032022",
		"p1e1=128",
		"note=  keep spacing ",
		"b1Costr= Hoppecke ",
		"b1Data=04/2023",
	})
	if err != nil {
		t.Fatalf("parseAssignments() error = %v", err)
	}

	want := map[string]string{
		"b1Data":  "04/2023",
		"p1e1":    "1.28",
		"note":    "  keep spacing ",
		"b1Costr": "Hoppecke",
	}
	for key, value := range want {
		if fields[key] != value {
			t.Errorf("fields[%q] = %q, want %q", key, fields[key], value)
		}
	}
	if len(order) != 4 || order[0] != "b1Data" {
		t.Errorf("order = %v, want four keys starting with b1Data", order)
	}

	if _, _, err := parseAssignments([]string{"b1Data"}); err == nil {
		t.Error("expected error for an argument without '='")
	}
	if _, _, err := parseAssignments([]string{"=value"}); err == nil {
		t.Error("expected error for an empty key")
	}
}

func TestChangedString(t *testing.T) {
	t.Parallel()

	newCmd := func(args ...string) *cobra.Command {
		cmd := &cobra.Command{Use: "edit"}
		cmd.Flags().String("name", "", "")
		cmd.Flags().Int("count", 0, "")
		if err := cmd.Flags().Parse(args); err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		return cmd
	}

	t.Run("given", func(t *testing.T) {
		t.Parallel()

		v, ok, err := changedString(newCmd("--name", "Rossi"), "name")
		if err != nil || !ok || v != "Rossi" {
			t.Errorf("got %q %v %v", v, ok, err)
		}
	})

	t.Run("given empty", func(t *testing.T) {
		t.Parallel()

		v, ok, err := changedString(newCmd("--name="), "name")
		if err != nil || !ok || v != "" {
			t.Errorf("got %q %v %v", v, ok, err)
		}
	})

	t.Run("not given", func(t *testing.T) {
		t.Parallel()

		v, ok, err := changedString(newCmd(), "name")
		if err != nil || ok || v != "" {
			t.Errorf("got %q %v %v", v, ok, err)
		}
	})

	t.Run("lookup error is returned", func(t *testing.T) {
		t.Parallel()

		if _, ok, err := changedString(newCmd("--count", "3"), "count"); err == nil || ok {
			t.Errorf("expected type mismatch error, got ok=%v err=%v", ok, err)
		}
	})
}
