package text

import (
	"reflect"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{"fits", "one two", 10, []string{"one two"}},
		{"breaks", "one two three", 8, []string{"one two", "three"}},
		{"collapses spaces", "  one   two ", 10, []string{"one two"}},
		{"empty", "", 10, []string{""}},
		{"long word", "abcdefghijkl", 6, []string{"abcde…"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Wrap(tt.in, tt.width); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestTruncateAndPad(t *testing.T) {
	if got := Truncate("hello world", 5); got != "hell…" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("hi", 5); got != "hi" {
		t.Errorf("Truncate short = %q", got)
	}
	if got := PadRight("ab", 4); got != "ab  " {
		t.Errorf("PadRight = %q", got)
	}
	if got := Width("ab"); got != 2 {
		t.Errorf("Width = %d", got)
	}
}
