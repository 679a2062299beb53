package profiles

import (
	"context"
	"errors"
	"testing"
	"time"

	pgrepo "github.com/Kaifateg/RelateHub/internal/repo/postgres"
)

type profileStoreStub struct {
	byUser map[int64]pgrepo.ProfileRecord
}

func newProfileStoreStub() *profileStoreStub {
	return &profileStoreStub{byUser: map[int64]pgrepo.ProfileRecord{}}
}

func (s *profileStoreStub) GetByUserID(_ context.Context, userID int64) (pgrepo.ProfileRecord, error) {
	rec, ok := s.byUser[userID]
	if !ok {
		return pgrepo.ProfileRecord{}, pgrepo.ErrProfileNotFound
	}
	return rec, nil
}

func (s *profileStoreStub) Upsert(_ context.Context, rec pgrepo.ProfileRecord) (pgrepo.ProfileRecord, error) {
	if existing, ok := s.byUser[rec.UserID]; ok {
		rec.LikesCount = existing.LikesCount
	}
	s.byUser[rec.UserID] = rec
	return rec, nil
}

func validInput() UpdateInput {
	return UpdateInput{
		FirstName: "Dana",
		LastName:  "Keller",
		Gender:    "F",
		BirthDate: time.Date(1994, 6, 15, 0, 0, 0, 0, time.UTC),
		City:      "Hamburg",
		Status:    "search",
	}
}

func TestUpdateRejectsUnderage(t *testing.T) {
	store := newProfileStoreStub()
	svc := NewService(store)
	svc.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }

	in := validInput()
	in.BirthDate = time.Date(2008, 6, 15, 0, 0, 0, 0, time.UTC) // turns 18 two weeks later

	if _, err := svc.Update(context.Background(), 1, in); !errors.Is(err, ErrUnderAge) {
		t.Fatalf("want ErrUnderAge, got %v", err)
	}

	in.BirthDate = time.Date(2008, 5, 15, 0, 0, 0, 0, time.UTC) // already 18
	if _, err := svc.Update(context.Background(), 1, in); err != nil {
		t.Fatalf("adult birth date rejected: %v", err)
	}
}

func TestUpdateValidation(t *testing.T) {
	svc := NewService(newProfileStoreStub())

	cases := []struct {
		name   string
		mutate func(in *UpdateInput)
	}{
		{"blank first name", func(in *UpdateInput) { in.FirstName = "  " }},
		{"unknown gender", func(in *UpdateInput) { in.Gender = "X" }},
		{"unknown status", func(in *UpdateInput) { in.Status = "partying" }},
		{"zero birth date", func(in *UpdateInput) { in.BirthDate = time.Time{} }},
		{"future birth date", func(in *UpdateInput) { in.BirthDate = time.Now().AddDate(1, 0, 0) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			if _, err := svc.Update(context.Background(), 1, in); !errors.Is(err, ErrValidation) {
				t.Fatalf("want ErrValidation, got %v", err)
			}
		})
	}
}

func TestGetMasksPrivateLastName(t *testing.T) {
	store := newProfileStoreStub()
	store.byUser[1] = pgrepo.ProfileRecord{
		UserID:    1,
		FirstName: "Dana",
		LastName:  "Keller",
		Gender:    "F",
		BirthDate: time.Date(1994, 6, 15, 0, 0, 0, 0, time.UTC),
		Status:    "search",
		IsPrivate: true,
	}
	svc := NewService(store)
	ctx := context.Background()

	own, err := svc.Get(ctx, 1, 1)
	if err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if own.LastName != "Keller" {
		t.Fatalf("owner must see own last name, got %q", own.LastName)
	}

	other, err := svc.Get(ctx, 1, 2)
	if err != nil {
		t.Fatalf("viewer get: %v", err)
	}
	if other.LastName != "" {
		t.Fatalf("private last name must be masked, got %q", other.LastName)
	}
}

func TestGetExposesLikesCounter(t *testing.T) {
	store := newProfileStoreStub()
	store.byUser[3] = pgrepo.ProfileRecord{
		UserID:     3,
		FirstName:  "Remi",
		Gender:     "O",
		BirthDate:  time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC),
		Status:     "busy",
		LikesCount: 17,
	}
	svc := NewService(store)

	profile, err := svc.Get(context.Background(), 3, 3)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if profile.LikesCount != 17 {
		t.Fatalf("likes counter lost: %d", profile.LikesCount)
	}
	if profile.Age <= 0 {
		t.Fatalf("age must be derived from the birth date")
	}
}
