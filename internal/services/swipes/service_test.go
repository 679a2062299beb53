package swipes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	pgrepo "github.com/Kaifateg/RelateHub/internal/repo/postgres"
)

type swipeStoreStub struct {
	likers      []int64
	likes       []int64
	dislikes    []int64
	lastIsNil   bool
	reverseLike bool
	created     []pgrepo.SwipeRecord
}

func (s *swipeStoreStub) Create(_ context.Context, _ pgx.Tx, swiperID, swipedUserID int64, isLike bool, now time.Time) (pgrepo.SwipeRecord, error) {
	record := pgrepo.SwipeRecord{
		ID:           int64(len(s.created) + 1),
		SwiperID:     swiperID,
		SwipedUserID: swipedUserID,
		IsLike:       isLike,
		CreatedAt:    now,
	}
	s.created = append(s.created, record)
	return record, nil
}

func (s *swipeStoreStub) LikeExists(context.Context, int64, int64) (bool, error) {
	return s.reverseLike, nil
}

func (s *swipeStoreStub) ListSwipedUserIDs(_ context.Context, _ int64, isLike *bool) ([]int64, error) {
	if isLike == nil {
		s.lastIsNil = true
		return append(append([]int64{}, s.likes...), s.dislikes...), nil
	}
	if *isLike {
		return s.likes, nil
	}
	return s.dislikes, nil
}

func (s *swipeStoreStub) ListLikerUserIDs(context.Context, int64) ([]int64, error) {
	return s.likers, nil
}

type counterStub struct {
	increments []int64
}

func (c *counterStub) IncrementLikesCount(_ context.Context, _ pgx.Tx, userID int64) error {
	c.increments = append(c.increments, userID)
	return nil
}

func newRecordService(store SwipeStore, counter ProfileCounterStore) *Service {
	svc := NewService(Dependencies{SwipeStore: store, Profiles: counter})
	svc.withTx = func(ctx context.Context, _ *pgxpool.Pool, fn func(context.Context, pgx.Tx) error) error {
		return fn(ctx, nil)
	}
	return svc
}

func TestRecordRejectsSelfSwipe(t *testing.T) {
	svc := NewService(Dependencies{SwipeStore: &swipeStoreStub{}, Profiles: &counterStub{}})

	if _, err := svc.Record(context.Background(), 7, 7, true); !errors.Is(err, ErrSelfSwipe) {
		t.Fatalf("want ErrSelfSwipe, got %v", err)
	}
}

func TestRecordRejectsBadIDs(t *testing.T) {
	svc := NewService(Dependencies{SwipeStore: &swipeStoreStub{}, Profiles: &counterStub{}})

	cases := []struct {
		name     string
		swiperID int64
		targetID int64
	}{
		{"zero swiper", 0, 5},
		{"negative target", 5, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Record(context.Background(), tc.swiperID, tc.targetID, true); !errors.Is(err, ErrValidation) {
				t.Fatalf("want ErrValidation, got %v", err)
			}
		})
	}
}

func TestRecordLikeBumpsTargetCounter(t *testing.T) {
	store := &swipeStoreStub{reverseLike: true}
	counter := &counterStub{}
	svc := newRecordService(store, counter)

	res, err := svc.Record(context.Background(), 1, 2, true)
	if err != nil {
		t.Fatalf("record like: %v", err)
	}
	if !res.Matched {
		t.Fatalf("reverse like present, want Matched")
	}
	if len(store.created) != 1 || !store.created[0].IsLike {
		t.Fatalf("created swipes = %+v, want one like", store.created)
	}
	if len(counter.increments) != 1 || counter.increments[0] != 2 {
		t.Fatalf("counter increments = %v, want exactly one for user 2", counter.increments)
	}
}

func TestRecordDislikeSkipsCounter(t *testing.T) {
	store := &swipeStoreStub{reverseLike: true}
	counter := &counterStub{}
	svc := newRecordService(store, counter)

	res, err := svc.Record(context.Background(), 1, 2, false)
	if err != nil {
		t.Fatalf("record dislike: %v", err)
	}
	if res.Matched {
		t.Fatalf("dislike must never match")
	}
	if len(counter.increments) != 0 {
		t.Fatalf("counter increments = %v, want none", counter.increments)
	}
}

func TestSwipeListings(t *testing.T) {
	store := &swipeStoreStub{
		likes:    []int64{2, 3},
		dislikes: []int64{4},
		likers:   []int64{9},
	}
	svc := NewService(Dependencies{SwipeStore: store, Profiles: &counterStub{}})
	ctx := context.Background()

	likes, err := svc.LikesGiven(ctx, 1)
	if err != nil || len(likes) != 2 {
		t.Fatalf("likes given = %v, err = %v", likes, err)
	}

	dislikes, err := svc.DislikesGiven(ctx, 1)
	if err != nil || len(dislikes) != 1 || dislikes[0] != 4 {
		t.Fatalf("dislikes given = %v, err = %v", dislikes, err)
	}

	history, err := svc.History(ctx, 1)
	if err != nil || len(history) != 3 {
		t.Fatalf("history = %v, err = %v", history, err)
	}
	if !store.lastIsNil {
		t.Fatalf("history must not filter by outcome")
	}

	likers, err := svc.LikesReceived(ctx, 1)
	if err != nil || len(likers) != 1 || likers[0] != 9 {
		t.Fatalf("likes received = %v, err = %v", likers, err)
	}
}
