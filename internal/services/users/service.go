package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	pgrepo "github.com/Kaifateg/RelateHub/internal/repo/postgres"
	"github.com/Kaifateg/RelateHub/internal/pkg/validate"
)

const minPasswordLength = 8

var (
	ErrValidation = errors.New("validation error")
	ErrEmailTaken = errors.New("email already registered")
	ErrNotFound   = errors.New("user not found")
)

type UserStore interface {
	Create(ctx context.Context, email, passwordHash string) (pgrepo.UserRecord, error)
	FindByID(ctx context.Context, userID int64) (pgrepo.UserRecord, error)
}

type Account struct {
	ID       int64
	Email    string
	IsActive bool
}

type Service struct {
	store      UserStore
	bcryptCost int
}

func NewService(store UserStore, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &Service{
		store:      store,
		bcryptCost: bcryptCost,
	}
}

func (s *Service) Register(ctx context.Context, email, password string) (Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validate.Email(email) {
		return Account{}, ErrValidation
	}
	if len(password) < minPasswordLength {
		return Account{}, ErrValidation
	}
	if s.store == nil {
		return Account{}, fmt.Errorf("user store is not configured")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return Account{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.Create(ctx, email, string(hash))
	if err != nil {
		if errors.Is(err, pgrepo.ErrDuplicateEmail) {
			return Account{}, ErrEmailTaken
		}
		return Account{}, fmt.Errorf("create user: %w", err)
	}

	return Account{
		ID:       user.ID,
		Email:    user.Email,
		IsActive: user.IsActive,
	}, nil
}

func (s *Service) Get(ctx context.Context, userID int64) (Account, error) {
	if userID <= 0 {
		return Account{}, ErrValidation
	}
	if s.store == nil {
		return Account{}, fmt.Errorf("user store is not configured")
	}

	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return Account{}, ErrNotFound
		}
		return Account{}, fmt.Errorf("find user: %w", err)
	}

	return Account{
		ID:       user.ID,
		Email:    user.Email,
		IsActive: user.IsActive,
	}, nil
}
