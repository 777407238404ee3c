package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"taskboard/internal/model"
)

type AccountRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewAccountRepository(db *pgxpool.Pool, logger *zap.Logger) *AccountRepository {
	return &AccountRepository{db: db, logger: logger}
}

// Insert creates a new account row. Returns ErrDuplicate if the username is
// already taken, so registration races surface as an ordinary duplicate.
func (r *AccountRepository) Insert(ctx context.Context, a *model.Account) error {
	query := `
        INSERT INTO account (username, password_hash, created_at)
        VALUES ($1, $2, NOW())
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, a.Username, a.PasswordHash).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("Account insert hit unique constraint",
				zap.String("username", a.Username),
			)
			return ErrDuplicate
		}
		r.logger.Error("Failed to insert account",
			zap.Error(err),
			zap.String("username", a.Username),
		)
		return err
	}
	r.logger.Info("Account inserted successfully",
		zap.Int("account_id", a.ID),
		zap.String("username", a.Username),
	)
	return nil
}

// FindByUsername returns the account with the given username, or ErrNotFound.
func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	query := `
        SELECT id, username, password_hash, created_at
        FROM account
        WHERE username = $1
    `
	var a model.Account
	err := r.db.QueryRow(ctx, query, username).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("Failed to query account",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, err
	}
	return &a, nil
}
