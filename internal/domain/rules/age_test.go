package rules

import (
	"testing"
	"time"
)

func TestAgeAtDayOfYearCorrection(t *testing.T) {
	cases := []struct {
		name  string
		birth time.Time
		at    time.Time
		want  int
	}{
		{
			name:  "birthday_already_passed",
			birth: time.Date(2000, time.March, 10, 0, 0, 0, 0, time.UTC),
			at:    time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			want:  25,
		},
		{
			name:  "birthday_not_yet_this_year",
			birth: time.Date(2000, time.September, 10, 0, 0, 0, 0, time.UTC),
			at:    time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			want:  24,
		},
		{
			name:  "same_month_day_before",
			birth: time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC),
			at:    time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC),
			want:  24,
		},
		{
			name:  "exact_birthday",
			birth: time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC),
			at:    time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
			want:  25,
		},
		{
			name:  "zero_birth_date",
			birth: time.Time{},
			at:    time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AgeAt(tc.birth, tc.at); got != tc.want {
				t.Fatalf("unexpected age: got %d want %d", got, tc.want)
			}
		})
	}
}

func TestIsAdultAt(t *testing.T) {
	at := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	if !IsAdultAt(time.Date(2007, time.May, 31, 0, 0, 0, 0, time.UTC), at) {
		t.Fatal("expected 18th birthday yesterday to count as adult")
	}
	if IsAdultAt(time.Date(2007, time.June, 2, 0, 0, 0, 0, time.UTC), at) {
		t.Fatal("expected 18th birthday tomorrow to not count as adult")
	}
	if IsAdultAt(time.Time{}, at) {
		t.Fatal("expected zero birth date to not count as adult")
	}
}
