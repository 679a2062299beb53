package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Kaifateg/RelateHub/internal/domain/enums"
	"github.com/Kaifateg/RelateHub/internal/domain/rules"
	"github.com/Kaifateg/RelateHub/internal/pkg/validate"
	pgrepo "github.com/Kaifateg/RelateHub/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrUnderAge   = errors.New("profile owner must be an adult")
	ErrNotFound   = errors.New("profile not found")
)

type ProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (pgrepo.ProfileRecord, error)
	Upsert(ctx context.Context, rec pgrepo.ProfileRecord) (pgrepo.ProfileRecord, error)
}

type Profile struct {
	UserID     int64
	FirstName  string
	LastName   string
	MiddleName string
	Gender     enums.Gender
	BirthDate  time.Time
	Age        int
	City       string
	Bio        string
	Status     enums.ProfileStatus
	IsPrivate  bool
	LikesCount int
	UpdatedAt  time.Time
}

type UpdateInput struct {
	FirstName  string
	LastName   string
	MiddleName string
	Gender     string
	BirthDate  time.Time
	City       string
	Bio        string
	Status     string
	IsPrivate  bool
}

type Service struct {
	store ProfileStore
	now   func() time.Time
}

func NewService(store ProfileStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// Get returns the profile as seen by viewerID. A private profile shown to
// anyone but its owner has the last name withheld.
func (s *Service) Get(ctx context.Context, ownerID, viewerID int64) (Profile, error) {
	if ownerID <= 0 || viewerID <= 0 {
		return Profile{}, ErrValidation
	}
	if s.store == nil {
		return Profile{}, fmt.Errorf("profile store is not configured")
	}

	rec, err := s.store.GetByUserID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}

	profile := toProfile(rec, s.now().UTC())
	if rec.IsPrivate && viewerID != ownerID {
		profile.LastName = ""
	}
	return profile, nil
}

// Update validates and writes the caller's own profile. Birth dates younger
// than the adulthood threshold are rejected outright.
func (s *Service) Update(ctx context.Context, userID int64, in UpdateInput) (Profile, error) {
	if userID <= 0 {
		return Profile{}, ErrValidation
	}
	if s.store == nil {
		return Profile{}, fmt.Errorf("profile store is not configured")
	}

	now := s.now().UTC()

	if !validate.Required(in.FirstName) {
		return Profile{}, ErrValidation
	}
	if !enums.Gender(in.Gender).Valid() {
		return Profile{}, ErrValidation
	}
	if !enums.ProfileStatus(in.Status).Valid() {
		return Profile{}, ErrValidation
	}
	if in.BirthDate.IsZero() || in.BirthDate.After(now) {
		return Profile{}, ErrValidation
	}
	if !rules.IsAdultAt(in.BirthDate, now) {
		return Profile{}, ErrUnderAge
	}

	rec, err := s.store.Upsert(ctx, pgrepo.ProfileRecord{
		UserID:     userID,
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		MiddleName: strings.TrimSpace(in.MiddleName),
		Gender:     in.Gender,
		BirthDate:  in.BirthDate,
		City:       strings.TrimSpace(in.City),
		Bio:        strings.TrimSpace(in.Bio),
		Status:     in.Status,
		IsPrivate:  in.IsPrivate,
	})
	if err != nil {
		return Profile{}, fmt.Errorf("save profile: %w", err)
	}

	return toProfile(rec, now), nil
}

func toProfile(rec pgrepo.ProfileRecord, now time.Time) Profile {
	return Profile{
		UserID:     rec.UserID,
		FirstName:  rec.FirstName,
		LastName:   rec.LastName,
		MiddleName: rec.MiddleName,
		Gender:     enums.Gender(rec.Gender),
		BirthDate:  rec.BirthDate,
		Age:        rules.AgeAt(rec.BirthDate, now),
		City:       rec.City,
		Bio:        rec.Bio,
		Status:     enums.ProfileStatus(rec.Status),
		IsPrivate:  rec.IsPrivate,
		LikesCount: rec.LikesCount,
		UpdatedAt:  rec.UpdatedAt,
	}
}
