package utils

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"long string cut with ellipsis", "hello world", 5, "hello..."},
		{"zero max disables truncation", "x", 0, "x"},
		{"exact length unchanged", "abc", 3, "abc"},
		{"multi-byte rune not split", "日本語テキスト", 4, "日..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}
