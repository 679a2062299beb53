package postgres

import "testing"

func TestEscapeLikePattern(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Riga", "Riga"},
		{"percent", "%", `\%`},
		{"underscore", "New_York", `New\_York`},
		{"backslash first", `a\%b`, `a\\\%b`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := escapeLikePattern(&tc.in)
			if got == nil || *got != tc.want {
				t.Fatalf("escapeLikePattern(%q) = %v, want %q", tc.in, got, tc.want)
			}
		})
	}

	if escapeLikePattern(nil) != nil {
		t.Fatalf("nil input must stay nil so the filter is skipped")
	}
}
