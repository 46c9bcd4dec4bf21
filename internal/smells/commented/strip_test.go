package commented

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStripComment(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"line", "// int y = 20", []string{"int y = 20"}},
		{"line no space", "//x = 1;", []string{"x = 1;"}},
		{"empty line comment", "//", nil},
		{"block single line", "/* return 0; */", []string{"return 0;"}},
		{"empty block", "/**/", nil},
		{
			"block multi line",
			"/*\n  int z = 5, x;\n\n  int y = 20;\n*/",
			[]string{"int z = 5, x;", "int y = 20;"},
		},
		{
			"block with gutter",
			"/**\n * Returns the size.\n * x = y;\n */",
			[]string{"*", "Returns the size.", "x = y;"},
		},
		{
			"tab after gutter",
			"/*\n *\tfoo = bar;\n */",
			[]string{"foo = bar;"},
		},
		{
			"bare gutter line",
			"/*\n * a = 1;\n *\n * b = 2;\n */",
			[]string{"a = 1;", "b = 2;"},
		},
		{
			"dereference is not a gutter",
			"/*\n *p = 0;\n*/",
			[]string{"*p = 0;"},
		},
		{"unterminated block", "/* a = b", []string{"a = b"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := stripComment(tc.raw)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("stripComment(%q) mismatch (-want +got):\n%s", tc.raw, diff)
			}
		})
	}
}
