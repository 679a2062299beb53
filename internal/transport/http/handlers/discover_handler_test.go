package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pgrepo "github.com/Kaifateg/RelateHub/internal/repo/postgres"
	authsvc "github.com/Kaifateg/RelateHub/internal/services/auth"
	discoversvc "github.com/Kaifateg/RelateHub/internal/services/discover"
)

type candidateStoreStub struct {
	candidates []pgrepo.DiscoverCandidate
	lastQuery  pgrepo.DiscoverQuery
}

func (s *candidateStoreStub) ListCandidates(ctx context.Context, q pgrepo.DiscoverQuery) ([]pgrepo.DiscoverCandidate, error) {
	s.lastQuery = q
	return s.candidates, nil
}

func performDiscoverRequest(t *testing.T, h *DiscoverHandler, rawQuery string, withIdentity bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/v1/discover?"+rawQuery, nil)
	if withIdentity {
		req = req.WithContext(authsvc.WithIdentity(context.Background(), authsvc.Identity{
			UserID: 301,
			SID:    "sid-301",
			Role:   "user",
		}))
	}
	rr := httptest.NewRecorder()
	h.List(rr, req)
	return rr
}

func TestDiscoverHandlerRejectsMalformedFilters(t *testing.T) {
	h := NewDiscoverHandler(discoversvc.NewService(&candidateStoreStub{}))

	cases := []string{
		"gender=X",
		"status=single",
		"min_age=abc",
		"min_age=40&max_age=20",
	}
	for _, query := range cases {
		t.Run(query, func(t *testing.T) {
			resp := performDiscoverRequest(t, h, query, true)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("unexpected status: got %d want %d", resp.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestDiscoverHandlerListsCandidates(t *testing.T) {
	store := &candidateStoreStub{candidates: []pgrepo.DiscoverCandidate{
		{UserID: 9, FirstName: "Dana", Gender: "F", Age: 27, City: "Lisbon", Status: "search", LikesCount: 3, JoinedAt: time.Now().UTC()},
	}}
	h := NewDiscoverHandler(discoversvc.NewService(store))

	resp := performDiscoverRequest(t, h, "gender=F&city=Lisbon&min_age=21&max_age=35", true)
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", resp.Code, http.StatusOK)
	}

	var payload struct {
		Candidates []struct {
			UserID    int64  `json:"user_id"`
			FirstName string `json:"first_name"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Candidates) != 1 || payload.Candidates[0].UserID != 9 || payload.Candidates[0].FirstName != "Dana" {
		t.Fatalf("unexpected candidates payload: %+v", payload.Candidates)
	}

	if store.lastQuery.ViewerUserID != 301 {
		t.Fatalf("unexpected viewer id in query: got %d want 301", store.lastQuery.ViewerUserID)
	}
	if store.lastQuery.Gender == nil || *store.lastQuery.Gender != "F" {
		t.Fatalf("gender filter not passed through: %+v", store.lastQuery.Gender)
	}
}

func TestDiscoverHandlerRequiresIdentity(t *testing.T) {
	h := NewDiscoverHandler(discoversvc.NewService(&candidateStoreStub{}))

	resp := performDiscoverRequest(t, h, "", false)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", resp.Code, http.StatusUnauthorized)
	}
}
