package handlers

import (
	"errors"
	"net/http"
	"strconv"

	authsvc "github.com/Kaifateg/RelateHub/internal/services/auth"
	discoversvc "github.com/Kaifateg/RelateHub/internal/services/discover"
	"github.com/Kaifateg/RelateHub/internal/transport/http/dto"
	httperrors "github.com/Kaifateg/RelateHub/internal/transport/http/errors"
)

type DiscoverHandler struct {
	service *discoversvc.Service
}

func NewDiscoverHandler(service *discoversvc.Service) *DiscoverHandler {
	return &DiscoverHandler{service: service}
}

func (h *DiscoverHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "DISCOVER_SERVICE_UNAVAILABLE", "discover service is unavailable")
		return
	}

	query := r.URL.Query()
	filters, err := discoversvc.ParseFilters(discoversvc.RawFilters{
		Gender: query.Get("gender"),
		Status: query.Get("status"),
		City:   query.Get("city"),
		MinAge: query.Get("min_age"),
		MaxAge: query.Get("max_age"),
	})
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "malformed discover filters")
		return
	}

	page := discoversvc.Page{
		Limit:  intQueryParam(query.Get("limit")),
		Offset: intQueryParam(query.Get("offset")),
	}

	candidates, err := h.service.List(r.Context(), identity.UserID, filters, page)
	if err != nil {
		switch {
		case errors.Is(err, discoversvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid discover request")
		default:
			writeInternal(w, "INTERNAL_ERROR", "internal server error")
		}
		return
	}

	payload := dto.DiscoverListResponse{
		Candidates: make([]dto.DiscoverCandidateResponse, 0, len(candidates)),
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	for _, c := range candidates {
		payload.Candidates = append(payload.Candidates, dto.DiscoverCandidateResponse{
			UserID:     c.UserID,
			FirstName:  c.FirstName,
			Gender:     c.Gender,
			Age:        c.Age,
			City:       c.City,
			Status:     c.Status,
			LikesCount: c.LikesCount,
			JoinedAt:   c.JoinedAt,
		})
	}
	httperrors.Write(w, http.StatusOK, payload)
}

func intQueryParam(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
