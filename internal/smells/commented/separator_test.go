package commented

import (
	"strings"
	"testing"
)

func TestIsSeparator(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{strings.Repeat("-", 20), true},
		{"///////////////////////////", true},
		{"*****", true},
		{"/*-*/-*/", true},
		{"---------- Section ----------", false},
		{"key | value", false},
		{"int x = 1;", false},
		{"", false},
		{"-", true},
		{strings.Repeat("-", 19) + "a", true},
		{"---------a", true},
		{"--------ab", false},
	}

	for _, tc := range cases {
		if got := IsSeparator(tc.line, DefaultSeparatorRatio); got != tc.want {
			t.Fatalf("IsSeparator(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestIsSeparator_Threshold(t *testing.T) {
	line := "----ab" // 4 of 6
	if IsSeparator(line, 0.9) {
		t.Fatalf("Expected %q not to be a separator at 0.9", line)
	}
	if !IsSeparator(line, 0.5) {
		t.Fatalf("Expected %q to be a separator at 0.5", line)
	}
	if !IsSeparator("--ab", 0.5) {
		t.Fatalf("Expected a ratio equal to the threshold to count as a separator")
	}
}
