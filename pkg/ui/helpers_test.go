package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		maxWidth int
		suffix   string
		want     string
	}{
		{"fits", "hello", 10, "…", "hello"},
		{"exact fit", "hello", 5, "…", "hello"},
		{"truncated", "hello world", 8, "…", "hello w…"},
		{"zero width", "hello", 0, "…", ""},
		{"negative width", "hello", -3, "…", ""},
		{"wide runes", "日本語のテキスト", 6, "…", "日本…"},
		{"suffix wider than budget", "hello world", 1, "...", "."},
		{"empty string", "", 5, "…", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.maxWidth, tt.suffix); got != tt.want {
				t.Errorf("truncate(%q, %d, %q) = %q, want %q", tt.in, tt.maxWidth, tt.suffix, got, tt.want)
			}
		})
	}
}
