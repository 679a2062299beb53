package contacts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kaifateg/RelateHub/internal/domain/enums"
	pgrepo "github.com/Kaifateg/RelateHub/internal/repo/postgres"
)

const defaultListLimit = 100

var (
	ErrValidation       = errors.New("validation error")
	ErrSelfRequest      = errors.New("contact request to self is not allowed")
	ErrNoMatch          = errors.New("no mutual match between users")
	ErrDuplicateRequest = errors.New("contact request already exists")
	ErrAlreadyProcessed = errors.New("contact request already processed")
	ErrForbidden        = errors.New("actor is not allowed to respond")
	ErrNotFound         = errors.New("contact request not found")
)

type RequestStore interface {
	Create(ctx context.Context, tx pgx.Tx, senderID, receiverID int64, now time.Time) (pgrepo.ContactRequestRecord, error)
	ActiveExistsBetween(ctx context.Context, tx pgx.Tx, userA, userB int64) (bool, error)
	GetVisible(ctx context.Context, requestID, viewerID int64) (pgrepo.ContactRequestRecord, error)
	ListForUser(ctx context.Context, userID int64, limit int) ([]pgrepo.ContactRequestRecord, error)
	Transition(ctx context.Context, tx pgx.Tx, requestID int64, toStatus string, senderEmail, receiverEmail string, now time.Time) (pgrepo.ContactRequestRecord, error)
}

type MatchChecker interface {
	Exists(ctx context.Context, userA, userB int64) (bool, error)
}

type ContactEmailStore interface {
	GetContactEmails(ctx context.Context, tx pgx.Tx, senderID, receiverID int64) (string, string, error)
}

type Request struct {
	ID                   int64
	SenderID             int64
	ReceiverID           int64
	Status               enums.RequestStatus
	SentAt               time.Time
	RespondedAt          *time.Time
	SenderContactEmail   string
	ReceiverContactEmail string
}

type Service struct {
	pool     *pgxpool.Pool
	requests RequestStore
	matches  MatchChecker
	emails   ContactEmailStore
	now      func() time.Time
}

type Dependencies struct {
	Pool     *pgxpool.Pool
	Requests RequestStore
	Matches  MatchChecker
	Emails   ContactEmailStore
}

func NewService(deps Dependencies) *Service {
	return &Service{
		pool:     deps.Pool,
		requests: deps.Requests,
		matches:  deps.Matches,
		emails:   deps.Emails,
		now:      time.Now,
	}
}

// Create opens a contact request toward a matched user. The mutual-match gate
// is checked first; then, inside the transaction, the unordered pair must
// have no live request in either direction. Declined requests do not count:
// a fresh request after a decline is allowed.
func (s *Service) Create(ctx context.Context, senderID, receiverID int64) (Request, error) {
	if senderID <= 0 || receiverID <= 0 {
		return Request{}, ErrValidation
	}
	if senderID == receiverID {
		return Request{}, ErrSelfRequest
	}
	if s.requests == nil || s.matches == nil {
		return Request{}, fmt.Errorf("contact request dependencies are not configured")
	}

	matched, err := s.matches.Exists(ctx, senderID, receiverID)
	if err != nil {
		return Request{}, fmt.Errorf("check mutual match: %w", err)
	}
	if !matched {
		return Request{}, ErrNoMatch
	}
	if s.pool == nil {
		return Request{}, fmt.Errorf("contact request dependencies are not configured")
	}

	now := s.now().UTC()

	var record pgrepo.ContactRequestRecord
	if err := pgrepo.WithTx(ctx, s.pool, func(txCtx context.Context, tx pgx.Tx) error {
		exists, err := s.requests.ActiveExistsBetween(txCtx, tx, senderID, receiverID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateRequest
		}

		created, err := s.requests.Create(txCtx, tx, senderID, receiverID, now)
		if err != nil {
			if errors.Is(err, pgrepo.ErrDuplicateRequest) {
				return ErrDuplicateRequest
			}
			return err
		}
		record = created
		return nil
	}); err != nil {
		return Request{}, err
	}

	return toRequest(record), nil
}

func (s *Service) Accept(ctx context.Context, requestID, actorID int64) (Request, error) {
	return s.respond(ctx, requestID, actorID, enums.RequestStatusAccepted)
}

func (s *Service) Decline(ctx context.Context, requestID, actorID int64) (Request, error) {
	return s.respond(ctx, requestID, actorID, enums.RequestStatusDeclined)
}

// respond performs the one-time sent -> terminal transition. The status check
// rides on the UPDATE itself, so of two racing responders exactly one wins
// and the other observes ErrAlreadyProcessed. Contact emails are read and
// frozen onto the row only when accepting.
func (s *Service) respond(ctx context.Context, requestID, actorID int64, to enums.RequestStatus) (Request, error) {
	if requestID <= 0 || actorID <= 0 {
		return Request{}, ErrValidation
	}
	if s.requests == nil || s.emails == nil {
		return Request{}, fmt.Errorf("contact request dependencies are not configured")
	}

	current, err := s.requests.GetVisible(ctx, requestID, actorID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrRequestNotFound) {
			return Request{}, ErrNotFound
		}
		return Request{}, fmt.Errorf("load contact request: %w", err)
	}
	if current.ReceiverID != actorID {
		return Request{}, ErrForbidden
	}
	if enums.RequestStatus(current.Status).Terminal() {
		return Request{}, ErrAlreadyProcessed
	}
	if s.pool == nil {
		return Request{}, fmt.Errorf("contact request dependencies are not configured")
	}

	now := s.now().UTC()

	var record pgrepo.ContactRequestRecord
	if err := pgrepo.WithTx(ctx, s.pool, func(txCtx context.Context, tx pgx.Tx) error {
		senderEmail, receiverEmail := "", ""
		if to == enums.RequestStatusAccepted {
			senderEmail, receiverEmail, err = s.emails.GetContactEmails(txCtx, tx, current.SenderID, current.ReceiverID)
			if err != nil {
				return fmt.Errorf("load contact emails: %w", err)
			}
		}

		updated, err := s.requests.Transition(txCtx, tx, requestID, string(to), senderEmail, receiverEmail, now)
		if err != nil {
			if errors.Is(err, pgrepo.ErrRequestNotPending) {
				return ErrAlreadyProcessed
			}
			return err
		}
		record = updated
		return nil
	}); err != nil {
		return Request{}, err
	}

	return toRequest(record), nil
}

// Get returns the request as seen by the viewer. Non-participants get
// ErrNotFound, never ErrForbidden: the record's existence is not disclosed.
func (s *Service) Get(ctx context.Context, requestID, viewerID int64) (Request, error) {
	if requestID <= 0 || viewerID <= 0 {
		return Request{}, ErrValidation
	}
	if s.requests == nil {
		return Request{}, fmt.Errorf("request store is not configured")
	}

	record, err := s.requests.GetVisible(ctx, requestID, viewerID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrRequestNotFound) {
			return Request{}, ErrNotFound
		}
		return Request{}, fmt.Errorf("load contact request: %w", err)
	}
	return toRequest(record), nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]Request, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	if s.requests == nil {
		return nil, fmt.Errorf("request store is not configured")
	}

	records, err := s.requests.ListForUser(ctx, userID, defaultListLimit)
	if err != nil {
		return nil, fmt.Errorf("list contact requests: %w", err)
	}

	requests := make([]Request, 0, len(records))
	for _, rec := range records {
		requests = append(requests, toRequest(rec))
	}
	return requests, nil
}

func toRequest(rec pgrepo.ContactRequestRecord) Request {
	return Request{
		ID:                   rec.ID,
		SenderID:             rec.SenderID,
		ReceiverID:           rec.ReceiverID,
		Status:               enums.RequestStatus(rec.Status),
		SentAt:               rec.SentAt,
		RespondedAt:          rec.RespondedAt,
		SenderContactEmail:   rec.SenderContactEmail,
		ReceiverContactEmail: rec.ReceiverContactEmail,
	}
}
