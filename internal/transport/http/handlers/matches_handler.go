package handlers

import (
	"context"
	"errors"
	"net/http"

	authsvc "github.com/Kaifateg/RelateHub/internal/services/auth"
	matchessvc "github.com/Kaifateg/RelateHub/internal/services/matches"
	swipesvc "github.com/Kaifateg/RelateHub/internal/services/swipes"
	"github.com/Kaifateg/RelateHub/internal/transport/http/dto"
	httperrors "github.com/Kaifateg/RelateHub/internal/transport/http/errors"
)

type MatchesHandler struct {
	matches *matchessvc.Service
	swipes  *swipesvc.Service
}

func NewMatchesHandler(matches *matchessvc.Service, swipes *swipesvc.Service) *MatchesHandler {
	return &MatchesHandler{matches: matches, swipes: swipes}
}

func (h *MatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.matches == nil {
		writeInternal(w, "MATCH_SERVICE_UNAVAILABLE", "match service is unavailable")
		return
	}

	matches, err := h.matches.For(r.Context(), identity.UserID)
	if err != nil {
		handleMatchError(w, err)
		return
	}

	payload := dto.MatchListResponse{Matches: make([]dto.MatchResponse, 0, len(matches))}
	for _, m := range matches {
		payload.Matches = append(payload.Matches, dto.MatchResponse{
			UserID:    m.UserID,
			Email:     m.Email,
			FirstName: m.FirstName,
			Age:       m.Age,
			City:      m.City,
			MatchedAt: m.MatchedAt,
		})
	}
	httperrors.Write(w, http.StatusOK, payload)
}

func (h *MatchesHandler) Liked(w http.ResponseWriter, r *http.Request) {
	h.writeIDList(w, r, func(ctx context.Context, userID int64) ([]int64, error) {
		return h.swipes.LikesGiven(ctx, userID)
	})
}

func (h *MatchesHandler) Disliked(w http.ResponseWriter, r *http.Request) {
	h.writeIDList(w, r, func(ctx context.Context, userID int64) ([]int64, error) {
		return h.swipes.DislikesGiven(ctx, userID)
	})
}

func (h *MatchesHandler) History(w http.ResponseWriter, r *http.Request) {
	h.writeIDList(w, r, func(ctx context.Context, userID int64) ([]int64, error) {
		return h.swipes.History(ctx, userID)
	})
}

func (h *MatchesHandler) Likers(w http.ResponseWriter, r *http.Request) {
	h.writeIDList(w, r, func(ctx context.Context, userID int64) ([]int64, error) {
		return h.swipes.LikesReceived(ctx, userID)
	})
}

func (h *MatchesHandler) Invite(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.matches == nil {
		writeInternal(w, "MATCH_SERVICE_UNAVAILABLE", "match service is unavailable")
		return
	}

	var req dto.MatchActionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if req.ReceiverID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "receiver_id is required")
		return
	}

	action, err := h.matches.SendAction(r.Context(), identity.UserID, req.ReceiverID)
	if err != nil {
		switch {
		case errors.Is(err, matchessvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid invite request")
		case errors.Is(err, matchessvc.ErrSelfAction):
			writeBadRequest(w, "SELF_INVITE", "inviting yourself is not allowed")
		case errors.Is(err, matchessvc.ErrDuplicateAction):
			writeConflict(w, "ALREADY_INVITED", "invite was already sent")
		default:
			writeInternal(w, "INTERNAL_ERROR", "internal server error")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.MatchActionResponse{
		ID:         action.ID,
		SenderID:   action.SenderID,
		ReceiverID: action.ReceiverID,
		SentAt:     action.SentAt,
	})
}

func (h *MatchesHandler) Invites(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.matches == nil {
		writeInternal(w, "MATCH_SERVICE_UNAVAILABLE", "match service is unavailable")
		return
	}

	actions, err := h.matches.ListActions(r.Context(), identity.UserID)
	if err != nil {
		handleMatchError(w, err)
		return
	}

	payload := dto.MatchActionListResponse{Actions: make([]dto.MatchActionResponse, 0, len(actions))}
	for _, a := range actions {
		payload.Actions = append(payload.Actions, dto.MatchActionResponse{
			ID:         a.ID,
			SenderID:   a.SenderID,
			ReceiverID: a.ReceiverID,
			SentAt:     a.SentAt,
		})
	}
	httperrors.Write(w, http.StatusOK, payload)
}

func (h *MatchesHandler) writeIDList(w http.ResponseWriter, r *http.Request, list func(context.Context, int64) ([]int64, error)) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.swipes == nil {
		writeInternal(w, "SWIPE_SERVICE_UNAVAILABLE", "swipe service is unavailable")
		return
	}

	ids, err := list(r.Context(), identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, swipesvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid request")
		default:
			writeInternal(w, "INTERNAL_ERROR", "internal server error")
		}
		return
	}

	if ids == nil {
		ids = []int64{}
	}
	httperrors.Write(w, http.StatusOK, dto.UserIDListResponse{UserIDs: ids})
}

func handleMatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, matchessvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
