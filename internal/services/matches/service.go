package matches

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	pgrepo "github.com/Kaifateg/RelateHub/internal/repo/postgres"
)

const defaultListLimit = 100

var (
	ErrValidation      = errors.New("validation error")
	ErrSelfAction      = errors.New("self match action is not allowed")
	ErrDuplicateAction = errors.New("match action already sent")
)

type LikeStore interface {
	LikeExists(ctx context.Context, fromUserID, toUserID int64) (bool, error)
	ListMutualMatches(ctx context.Context, userID int64) ([]pgrepo.MutualMatchRecord, error)
}

type ActionStore interface {
	Create(ctx context.Context, tx pgx.Tx, senderID, receiverID int64, now time.Time) (pgrepo.MatchActionRecord, error)
	ListBySender(ctx context.Context, senderID int64, limit int) ([]pgrepo.MatchActionRecord, error)
}

type Match struct {
	UserID    int64
	Email     string
	FirstName string
	Age       int
	City      string
	MatchedAt time.Time
}

type Action struct {
	ID         int64
	SenderID   int64
	ReceiverID int64
	SentAt     time.Time
}

type Service struct {
	pool    *pgxpool.Pool
	likes   LikeStore
	actions ActionStore
	now     func() time.Time
}

type Dependencies struct {
	Pool    *pgxpool.Pool
	Likes   LikeStore
	Actions ActionStore
}

func NewService(deps Dependencies) *Service {
	return &Service{
		pool:    deps.Pool,
		likes:   deps.Likes,
		actions: deps.Actions,
		now:     time.Now,
	}
}

// Exists reports whether two users form a mutual match: a like in each
// direction. Two existence lookups, no scan.
func (s *Service) Exists(ctx context.Context, userA, userB int64) (bool, error) {
	if userA <= 0 || userB <= 0 || userA == userB {
		return false, ErrValidation
	}
	if s.likes == nil {
		return false, fmt.Errorf("like store is not configured")
	}

	forward, err := s.likes.LikeExists(ctx, userA, userB)
	if err != nil {
		return false, fmt.Errorf("check forward like: %w", err)
	}
	if !forward {
		return false, nil
	}

	backward, err := s.likes.LikeExists(ctx, userB, userA)
	if err != nil {
		return false, fmt.Errorf("check backward like: %w", err)
	}
	return backward, nil
}

// For resolves every mutual match of the user in a single pass over the
// ledger. A user appears here exactly when Exists would report true for the
// pair.
func (s *Service) For(ctx context.Context, userID int64) ([]Match, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	if s.likes == nil {
		return nil, fmt.Errorf("like store is not configured")
	}

	records, err := s.likes.ListMutualMatches(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list mutual matches: %w", err)
	}

	matches := make([]Match, 0, len(records))
	for _, rec := range records {
		matches = append(matches, Match{
			UserID:    rec.UserID,
			Email:     rec.Email,
			FirstName: rec.FirstName,
			Age:       rec.Age,
			City:      rec.City,
			MatchedAt: rec.MatchedAt,
		})
	}
	return matches, nil
}

// SendAction records a one-shot invitation event toward another user. The
// ordered pair is unique in storage; repeats surface as ErrDuplicateAction.
func (s *Service) SendAction(ctx context.Context, senderID, receiverID int64) (Action, error) {
	if senderID <= 0 || receiverID <= 0 {
		return Action{}, ErrValidation
	}
	if senderID == receiverID {
		return Action{}, ErrSelfAction
	}
	if s.pool == nil || s.actions == nil {
		return Action{}, fmt.Errorf("match action dependencies are not configured")
	}

	now := s.now().UTC()

	var record pgrepo.MatchActionRecord
	if err := pgrepo.WithTx(ctx, s.pool, func(txCtx context.Context, tx pgx.Tx) error {
		created, err := s.actions.Create(txCtx, tx, senderID, receiverID, now)
		if err != nil {
			if errors.Is(err, pgrepo.ErrDuplicateMatchAction) {
				return ErrDuplicateAction
			}
			return err
		}
		record = created
		return nil
	}); err != nil {
		return Action{}, err
	}

	return Action{
		ID:         record.ID,
		SenderID:   record.SenderID,
		ReceiverID: record.ReceiverID,
		SentAt:     record.SentAt,
	}, nil
}

func (s *Service) ListActions(ctx context.Context, senderID int64) ([]Action, error) {
	if senderID <= 0 {
		return nil, ErrValidation
	}
	if s.actions == nil {
		return nil, fmt.Errorf("action store is not configured")
	}

	records, err := s.actions.ListBySender(ctx, senderID, defaultListLimit)
	if err != nil {
		return nil, fmt.Errorf("list match actions: %w", err)
	}

	actions := make([]Action, 0, len(records))
	for _, rec := range records {
		actions = append(actions, Action{
			ID:         rec.ID,
			SenderID:   rec.SenderID,
			ReceiverID: rec.ReceiverID,
			SentAt:     rec.SentAt,
		})
	}
	return actions, nil
}
