package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/Kaifateg/RelateHub/internal/services/auth"
	swipesvc "github.com/Kaifateg/RelateHub/internal/services/swipes"
	"github.com/Kaifateg/RelateHub/internal/transport/http/dto"
	httperrors "github.com/Kaifateg/RelateHub/internal/transport/http/errors"
)

type SwipeHandler struct {
	service *swipesvc.Service
}

func NewSwipeHandler(service *swipesvc.Service) *SwipeHandler {
	return &SwipeHandler{service: service}
}

func (h *SwipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "SWIPE_SERVICE_UNAVAILABLE", "swipe service is unavailable")
		return
	}

	var req dto.SwipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if req.TargetID <= 0 || req.IsLike == nil {
		writeBadRequest(w, "VALIDATION_ERROR", "target_id and is_like are required")
		return
	}

	result, err := h.service.Record(r.Context(), identity.UserID, req.TargetID, *req.IsLike)
	if err != nil {
		switch {
		case errors.Is(err, swipesvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid swipe request")
		case errors.Is(err, swipesvc.ErrSelfSwipe):
			writeBadRequest(w, "SELF_SWIPE", "swiping yourself is not allowed")
		case errors.Is(err, swipesvc.ErrDuplicateSwipe):
			writeConflict(w, "ALREADY_SWIPED", "target was already swiped")
		case errors.Is(err, swipesvc.ErrTooFast):
			retryAfter := int64(1)
			if tf, ok := swipesvc.IsTooFast(err); ok {
				retryAfter = tf.RetryAfter()
			}
			httperrors.Write(w, http.StatusTooManyRequests, httperrors.RateLimitError{
				Code:          "TOO_FAST",
				Message:       "swipe rate limit exceeded",
				RetryAfterSec: retryAfter,
			})
		default:
			writeInternal(w, "INTERNAL_ERROR", "internal server error")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.SwipeResponse{
		ID:        result.Swipe.ID,
		TargetID:  result.Swipe.SwipedUserID,
		IsLike:    result.Swipe.IsLike,
		Matched:   result.Matched,
		CreatedAt: result.Swipe.CreatedAt,
	})
}
