package swipes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	pgrepo "github.com/Kaifateg/RelateHub/internal/repo/postgres"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrSelfSwipe      = errors.New("self swipe is not allowed")
	ErrDuplicateSwipe = errors.New("target already swiped")
	ErrTooFast        = errors.New("swipe rate limit exceeded")
)

// TooFastError carries the limiter window hint alongside ErrTooFast.
type TooFastError struct {
	RetryAfterSec int64
}

func (e TooFastError) Error() string {
	return ErrTooFast.Error()
}

func (e TooFastError) Is(target error) bool {
	return target == ErrTooFast
}

func (e TooFastError) RetryAfter() int64 {
	if e.RetryAfterSec <= 0 {
		return 1
	}
	return e.RetryAfterSec
}

func IsTooFast(err error) (*TooFastError, bool) {
	var tf TooFastError
	if errors.As(err, &tf) {
		return &tf, true
	}
	return nil, false
}

type SwipeStore interface {
	Create(ctx context.Context, tx pgx.Tx, swiperID, swipedUserID int64, isLike bool, now time.Time) (pgrepo.SwipeRecord, error)
	LikeExists(ctx context.Context, fromUserID, toUserID int64) (bool, error)
	ListSwipedUserIDs(ctx context.Context, swiperID int64, isLike *bool) ([]int64, error)
	ListLikerUserIDs(ctx context.Context, userID int64) ([]int64, error)
}

type ProfileCounterStore interface {
	IncrementLikesCount(ctx context.Context, tx pgx.Tx, userID int64) error
}

type RateLimiter interface {
	AllowSwipe(ctx context.Context, userID int64) (int64, bool, error)
}

type SwipeResult struct {
	Swipe   pgrepo.SwipeRecord
	Matched bool
}

type Service struct {
	pool        *pgxpool.Pool
	swipeStore  SwipeStore
	profiles    ProfileCounterStore
	rateLimiter RateLimiter
	now         func() time.Time
	withTx      func(ctx context.Context, pool *pgxpool.Pool, fn func(context.Context, pgx.Tx) error) error
}

type Dependencies struct {
	Pool        *pgxpool.Pool
	SwipeStore  SwipeStore
	Profiles    ProfileCounterStore
	RateLimiter RateLimiter
}

func NewService(deps Dependencies) *Service {
	return &Service{
		pool:        deps.Pool,
		swipeStore:  deps.SwipeStore,
		profiles:    deps.Profiles,
		rateLimiter: deps.RateLimiter,
		now:         time.Now,
		withTx:      pgrepo.WithTx,
	}
}

// Record appends one directed swipe. The pair uniqueness lives in storage, so
// a repeat swipe against the same target comes back as ErrDuplicateSwipe no
// matter how the calls interleave. A like also bumps the target's received
// likes counter inside the same transaction.
func (s *Service) Record(ctx context.Context, swiperID, targetID int64, isLike bool) (SwipeResult, error) {
	if swiperID <= 0 || targetID <= 0 {
		return SwipeResult{}, ErrValidation
	}
	if swiperID == targetID {
		return SwipeResult{}, ErrSelfSwipe
	}
	if s.rateLimiter != nil {
		if retryAfter, allowed, err := s.rateLimiter.AllowSwipe(ctx, swiperID); err != nil {
			return SwipeResult{}, fmt.Errorf("apply swipe rate limiter: %w", err)
		} else if !allowed {
			return SwipeResult{}, TooFastError{RetryAfterSec: retryAfter}
		}
	}

	if s.swipeStore == nil || s.profiles == nil {
		return SwipeResult{}, fmt.Errorf("swipe dependencies are not configured")
	}

	now := s.now().UTC()

	var record pgrepo.SwipeRecord
	if err := s.withTx(ctx, s.pool, func(txCtx context.Context, tx pgx.Tx) error {
		created, err := s.swipeStore.Create(txCtx, tx, swiperID, targetID, isLike, now)
		if err != nil {
			if errors.Is(err, pgrepo.ErrDuplicateSwipe) {
				return ErrDuplicateSwipe
			}
			return err
		}
		record = created

		if isLike {
			if err := s.profiles.IncrementLikesCount(txCtx, tx, targetID); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return SwipeResult{}, err
	}

	matched := false
	if isLike {
		reverse, err := s.swipeStore.LikeExists(ctx, targetID, swiperID)
		if err != nil {
			return SwipeResult{}, fmt.Errorf("check reverse like: %w", err)
		}
		matched = reverse
	}

	return SwipeResult{Swipe: record, Matched: matched}, nil
}

func (s *Service) LikesGiven(ctx context.Context, userID int64) ([]int64, error) {
	return s.swipedIDs(ctx, userID, boolPtr(true))
}

func (s *Service) DislikesGiven(ctx context.Context, userID int64) ([]int64, error) {
	return s.swipedIDs(ctx, userID, boolPtr(false))
}

func (s *Service) History(ctx context.Context, userID int64) ([]int64, error) {
	return s.swipedIDs(ctx, userID, nil)
}

func (s *Service) LikesReceived(ctx context.Context, userID int64) ([]int64, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	if s.swipeStore == nil {
		return nil, fmt.Errorf("swipe store is not configured")
	}

	ids, err := s.swipeStore.ListLikerUserIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list likers: %w", err)
	}
	return ids, nil
}

func (s *Service) swipedIDs(ctx context.Context, userID int64, isLike *bool) ([]int64, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	if s.swipeStore == nil {
		return nil, fmt.Errorf("swipe store is not configured")
	}

	ids, err := s.swipeStore.ListSwipedUserIDs(ctx, userID, isLike)
	if err != nil {
		return nil, fmt.Errorf("list swiped users: %w", err)
	}
	return ids, nil
}

func boolPtr(v bool) *bool {
	return &v
}
