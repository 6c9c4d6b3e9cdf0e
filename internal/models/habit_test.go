package models

import (
	"strings"
	"testing"
)

func TestParseTheme(t *testing.T) {
	cases := []struct {
		input   string
		want    Theme
		wantErr bool
	}{
		{"red", ThemeRed, false},
		{"Blue", ThemeBlue, false},
		{" GREEN ", ThemeGreen, false},
		{"purple", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := ParseTheme(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTheme(%q) should fail", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTheme(%q): %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTheme(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestValidTheme(t *testing.T) {
	for _, theme := range []Theme{ThemeRed, ThemeBlue, ThemeGreen} {
		if !ValidTheme(theme) {
			t.Errorf("ValidTheme(%q) = false", theme)
		}
	}
	if ValidTheme("orange") {
		t.Error("ValidTheme(orange) = true")
	}
	if ValidTheme("") {
		t.Error("ValidTheme of empty string = true")
	}
}

func TestValidateName(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"single char", "a", false},
		{"normal name", "Morning Run", false},
		{"max length", strings.Repeat("x", MaxNameLength), false},
		{"accented", "Méditation quotidienne", false},
		{"cjk at max length", strings.Repeat("習", MaxNameLength), false},
		{"emoji", "🏃 Morning Run", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("x", MaxNameLength+1), true},
		{"cjk too long", strings.Repeat("習", MaxNameLength+1), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateName(tc.input)
			if tc.wantErr && err == nil {
				t.Errorf("ValidateName(%q) should fail", tc.input)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("ValidateName(%q): %v", tc.input, err)
			}
		})
	}
}

func TestCompletedCount(t *testing.T) {
	habit := Habit{Completions: map[string]bool{
		"2024-06-01": true,
		"2024-06-02": false,
		"2024-06-03": true,
	}}
	if got := habit.CompletedCount(); got != 2 {
		t.Errorf("CompletedCount = %d, want 2", got)
	}
	if (Habit{}).CompletedCount() != 0 {
		t.Error("CompletedCount on nil map should be 0")
	}
}

func TestCompletedOn(t *testing.T) {
	habit := Habit{Completions: map[string]bool{"2024-06-01": true}}
	if !habit.CompletedOn("2024-06-01") {
		t.Error("CompletedOn marked day = false")
	}
	if habit.CompletedOn("2024-06-02") {
		t.Error("CompletedOn absent day = true")
	}
	if (Habit{}).CompletedOn("2024-06-01") {
		t.Error("CompletedOn with nil map = true")
	}
}
