package discover

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgrepo "github.com/Kaifateg/RelateHub/internal/repo/postgres"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var ErrValidation = errors.New("validation error")

type CandidateStore interface {
	ListCandidates(ctx context.Context, q pgrepo.DiscoverQuery) ([]pgrepo.DiscoverCandidate, error)
}

type Candidate struct {
	UserID     int64
	FirstName  string
	Gender     string
	Age        int
	City       string
	Status     string
	LikesCount int
	JoinedAt   time.Time
}

type Page struct {
	Limit  int
	Offset int
}

type Service struct {
	store CandidateStore
	now   func() time.Time
}

func NewService(store CandidateStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// List returns the viewer's discoverable pool: profiles the viewer has not
// swiped yet, excluding the viewer, inactive accounts and staff, newest
// joined first.
func (s *Service) List(ctx context.Context, viewerID int64, filters Filters, page Page) ([]Candidate, error) {
	if viewerID <= 0 {
		return nil, ErrValidation
	}
	if s.store == nil {
		return nil, fmt.Errorf("candidate store is not configured")
	}

	limit := page.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := page.Offset
	if offset < 0 {
		offset = 0
	}

	records, err := s.store.ListCandidates(ctx, pgrepo.DiscoverQuery{
		ViewerUserID: viewerID,
		Gender:       filters.Gender,
		Status:       filters.Status,
		City:         filters.City,
		MinAge:       filters.MinAge,
		MaxAge:       filters.MaxAge,
		Limit:        limit,
		Offset:       offset,
		Now:          s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("list discover candidates: %w", err)
	}

	candidates := make([]Candidate, 0, len(records))
	for _, rec := range records {
		candidates = append(candidates, Candidate{
			UserID:     rec.UserID,
			FirstName:  rec.FirstName,
			Gender:     rec.Gender,
			Age:        rec.Age,
			City:       rec.City,
			Status:     rec.Status,
			LikesCount: rec.LikesCount,
			JoinedAt:   rec.JoinedAt,
		})
	}
	return candidates, nil
}
