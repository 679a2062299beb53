package discover

import (
	"errors"
	"testing"
)

func TestParseFilters(t *testing.T) {
	cases := []struct {
		name    string
		raw     RawFilters
		wantErr bool
		check   func(t *testing.T, f Filters)
	}{
		{
			name: "empty raw means unfiltered",
			raw:  RawFilters{},
			check: func(t *testing.T, f Filters) {
				if f.Gender != nil || f.Status != nil || f.City != nil || f.MinAge != nil || f.MaxAge != nil {
					t.Fatalf("expected all dimensions nil: %+v", f)
				}
			},
		},
		{
			name: "full valid set",
			raw:  RawFilters{Gender: "F", Status: "search", City: "Berlin", MinAge: "25", MaxAge: "35"},
			check: func(t *testing.T, f Filters) {
				if f.Gender == nil || *f.Gender != "F" {
					t.Fatalf("gender not parsed: %+v", f)
				}
				if f.MinAge == nil || *f.MinAge != 25 || f.MaxAge == nil || *f.MaxAge != 35 {
					t.Fatalf("ages not parsed: %+v", f)
				}
			},
		},
		{
			name: "whitespace is trimmed",
			raw:  RawFilters{City: "  Oslo  ", MinAge: " 30 "},
			check: func(t *testing.T, f Filters) {
				if f.City == nil || *f.City != "Oslo" {
					t.Fatalf("city not trimmed: %+v", f)
				}
				if f.MinAge == nil || *f.MinAge != 30 {
					t.Fatalf("age not trimmed: %+v", f)
				}
			},
		},
		{name: "malformed min age", raw: RawFilters{MinAge: "abc"}, wantErr: true},
		{name: "malformed max age", raw: RawFilters{MaxAge: "12.5"}, wantErr: true},
		{name: "negative age", raw: RawFilters{MinAge: "-1"}, wantErr: true},
		{name: "inverted range", raw: RawFilters{MinAge: "40", MaxAge: "30"}, wantErr: true},
		{name: "unknown gender", raw: RawFilters{Gender: "X"}, wantErr: true},
		{name: "unknown status", raw: RawFilters{Status: "single"}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := ParseFilters(tc.raw)
			if tc.wantErr {
				if !errors.Is(err, ErrBadFilter) {
					t.Fatalf("want ErrBadFilter, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if tc.check != nil {
				tc.check(t, f)
			}
		})
	}
}
