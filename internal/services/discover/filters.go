package discover

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Kaifateg/RelateHub/internal/domain/enums"
)

var ErrBadFilter = errors.New("bad discover filter")

// RawFilters is the query surface as it arrives from the transport layer,
// before any interpretation.
type RawFilters struct {
	Gender string
	Status string
	City   string
	MinAge string
	MaxAge string
}

// Filters is the typed, validated form. Nil means the dimension is not
// filtered.
type Filters struct {
	Gender *string
	Status *string
	City   *string
	MinAge *int
	MaxAge *int
}

// ParseFilters interprets the raw query eagerly: a malformed age or an
// unknown gender/status value fails the whole request up front instead of
// silently returning an empty page.
func ParseFilters(raw RawFilters) (Filters, error) {
	var f Filters

	if v := strings.TrimSpace(raw.Gender); v != "" {
		if !enums.Gender(v).Valid() {
			return Filters{}, ErrBadFilter
		}
		f.Gender = &v
	}

	if v := strings.TrimSpace(raw.Status); v != "" {
		if !enums.ProfileStatus(v).Valid() {
			return Filters{}, ErrBadFilter
		}
		f.Status = &v
	}

	if v := strings.TrimSpace(raw.City); v != "" {
		f.City = &v
	}

	minAge, err := parseAge(raw.MinAge)
	if err != nil {
		return Filters{}, err
	}
	f.MinAge = minAge

	maxAge, err := parseAge(raw.MaxAge)
	if err != nil {
		return Filters{}, err
	}
	f.MaxAge = maxAge

	if f.MinAge != nil && f.MaxAge != nil && *f.MinAge > *f.MaxAge {
		return Filters{}, ErrBadFilter
	}

	return f, nil
}

func parseAge(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	age, err := strconv.Atoi(raw)
	if err != nil || age < 0 {
		return nil, ErrBadFilter
	}
	return &age, nil
}
