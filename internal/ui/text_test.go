package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatterWithColor(t *testing.T) {
	// NO_COLOR disables color whatever its value, so it must be unset.
	if v, ok := os.LookupEnv("NO_COLOR"); ok {
		os.Unsetenv("NO_COLOR")
		t.Cleanup(func() { os.Setenv("NO_COLOR", v) })
	}
	originalNoColor := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = originalNoColor })

	result := Code.Sprint("keyseal decrypt")
	if strings.Contains(result, "`") {
		t.Errorf("Code.Sprint should not contain backticks when color is enabled, got: %s", result)
	}
	if !strings.Contains(result, "\x1b[") {
		t.Errorf("Code.Sprint should contain ANSI escape codes when color is enabled, got: %s", result)
	}
}

func TestFormatterWithNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name      string
		formatter Formatter
		input     string
		want      string
	}{
		{"Code adds backticks", Code, "keyseal encrypt", "`keyseal encrypt`"},
		{"Path has no decoration", Path, "plantid_key.enc", "plantid_key.enc"},
		{"Flag has no decoration", Flag, "--stdin", "--stdin"},
		{"Success has no decoration", Success, "✓", "✓"},
		{"Error has no decoration", Error, "✗", "✗"},
		{"Warning has no decoration", Warning, "⚠", "⚠"},
		{"Info has no decoration", Info, "→", "→"},
		{"Highlight adds quotes", Highlight, "PLANT_ID_PASSPHRASE", "'PLANT_ID_PASSPHRASE'"},
		{"Muted adds parentheses", Muted, "legacy", "(legacy)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.formatter.Sprint(tt.input); got != tt.want {
				t.Errorf("%s.Sprint(%q) = %q, want %q", tt.name, tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatterSprintf(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if got, want := Code.Sprintf("keyseal %s", "inspect"), "`keyseal inspect`"; got != want {
		t.Errorf("Code.Sprintf() = %q, want %q", got, want)
	}
}

func TestStatusLines(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := map[string]string{
		SuccessLine("done"): "✓ done",
		ErrorLine("failed"): "✗ failed",
		WarningLine("care"): "⚠ care",
		HintLine("next"):    "→ next",
	}
	for got, want := range tests {
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestEnsureNewline(t *testing.T) {
	for in, want := range map[string]string{"": "\n", "a": "a\n", "a\n": "a\n"} {
		if got := EnsureNewline(in); got != want {
			t.Errorf("EnsureNewline(%q) = %q, want %q", in, got, want)
		}
	}
}
