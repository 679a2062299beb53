package discover

import (
	"context"
	"errors"
	"testing"

	pgrepo "github.com/Kaifateg/RelateHub/internal/repo/postgres"
)

type candidateStoreStub struct {
	lastQuery pgrepo.DiscoverQuery
	records   []pgrepo.DiscoverCandidate
}

func (s *candidateStoreStub) ListCandidates(_ context.Context, q pgrepo.DiscoverQuery) ([]pgrepo.DiscoverCandidate, error) {
	s.lastQuery = q
	return s.records, nil
}

func TestListClampsPagination(t *testing.T) {
	store := &candidateStoreStub{}
	svc := NewService(store)
	ctx := context.Background()

	if _, err := svc.List(ctx, 1, Filters{}, Page{}); err != nil {
		t.Fatalf("list with defaults: %v", err)
	}
	if store.lastQuery.Limit != defaultPageSize || store.lastQuery.Offset != 0 {
		t.Fatalf("default page not applied: %+v", store.lastQuery)
	}

	if _, err := svc.List(ctx, 1, Filters{}, Page{Limit: 10_000, Offset: -3}); err != nil {
		t.Fatalf("list with wild page: %v", err)
	}
	if store.lastQuery.Limit != maxPageSize || store.lastQuery.Offset != 0 {
		t.Fatalf("page not clamped: %+v", store.lastQuery)
	}
}

func TestListPassesFiltersThrough(t *testing.T) {
	store := &candidateStoreStub{records: []pgrepo.DiscoverCandidate{
		{UserID: 2, FirstName: "Nora", Age: 27, City: "Berlin"},
	}}
	svc := NewService(store)

	filters, err := ParseFilters(RawFilters{Gender: "F", City: "Berlin", MinAge: "25", MaxAge: "35"})
	if err != nil {
		t.Fatalf("parse filters: %v", err)
	}

	candidates, err := svc.List(context.Background(), 1, filters, Page{Limit: 20})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(candidates) != 1 || candidates[0].UserID != 2 {
		t.Fatalf("unexpected candidates: %+v", candidates)
	}

	q := store.lastQuery
	if q.ViewerUserID != 1 || q.Gender == nil || *q.Gender != "F" || q.MinAge == nil || *q.MinAge != 25 {
		t.Fatalf("filters not passed through: %+v", q)
	}
	if q.Now.IsZero() {
		t.Fatalf("query must carry the evaluation time")
	}
}

func TestListRejectsBadViewer(t *testing.T) {
	svc := NewService(&candidateStoreStub{})

	if _, err := svc.List(context.Background(), 0, Filters{}, Page{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}
