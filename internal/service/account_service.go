package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/util"
)

// ErrUsernameTaken reports that registration failed because the username is
// already in use, whether found up front or lost in an insert race.
var ErrUsernameTaken = errors.New("account already exists")

// AccountStore is the persistence surface the account service needs.
type AccountStore interface {
	Insert(ctx context.Context, a *model.Account) error
	FindByUsername(ctx context.Context, username string) (*model.Account, error)
}

type AccountService struct {
	accounts AccountStore
	logger   *zap.Logger
}

func NewAccountService(accounts AccountStore, logger *zap.Logger) *AccountService {
	return &AccountService{accounts: accounts, logger: logger}
}

// Register creates a new account with a bcrypt-hashed password and returns it.
func (s *AccountService) Register(ctx context.Context, username, password string) (*model.Account, error) {
	existing, err := s.accounts.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	a := &model.Account{
		Username:     username,
		PasswordHash: hash,
	}

	if err := s.accounts.Insert(ctx, a); err != nil {
		// Two registrations racing on the same username: the loser gets the
		// same answer as an up-front duplicate.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.logger.Info("Account registered",
		zap.Int("account_id", a.ID),
		zap.String("username", a.Username),
	)
	return a, nil
}

// FindByUsername returns the account with the given username, or
// repository.ErrNotFound.
func (s *AccountService) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	return s.accounts.FindByUsername(ctx, username)
}

// Exists reports whether an account with the given username exists.
func (s *AccountService) Exists(ctx context.Context, username string) (bool, error) {
	_, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// VerifyCredentials reports whether an account with the given username exists
// and the password matches its stored hash. Unknown usernames and wrong
// passwords are indistinguishable to the caller.
func (s *AccountService) VerifyCredentials(ctx context.Context, username, password string) (bool, error) {
	a, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return util.CheckPassword(password, a.PasswordHash), nil
}

// IDOf resolves a username to its account id, or repository.ErrNotFound.
func (s *AccountService) IDOf(ctx context.Context, username string) (int, error) {
	a, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	return a.ID, nil
}
