// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"fxwallet/internal/domain"
	"fxwallet/internal/repository"
	"fxwallet/internal/util"
)

const pqUniqueViolation = "23505"

// UserRepository implements repository.UserRepository for PostgreSQL.
type UserRepository struct{}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &UserRepository{}
}

// CreateUser inserts a new user using the provided DBExecutor.
func (r *UserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := `INSERT INTO users (id, email, password_hash, balance, created_at)
              VALUES ($1, $2, $3, $4, $5)`
	_, err := q.ExecContext(ctx, query, user.ID, user.Email, user.PasswordHash, user.Balance, user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return fmt.Errorf("%w: %s", util.ErrDuplicateEmail, user.Email)
		}
		return fmt.Errorf("create user: %w: %v", util.ErrStoreUnavailable, err)
	}
	return nil
}

// GetUserByID retrieves a user by their ID using the provided DBExecutor.
func (r *UserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, email, password_hash, balance, created_at FROM users WHERE id = $1`
	err := q.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("get user by ID %s: %w: %v", id, util.ErrStoreUnavailable, err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email using the provided DBExecutor.
func (r *UserRepository) GetUserByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, email, password_hash, balance, created_at FROM users WHERE email = $1`
	err := q.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("get user by email %q: %w: %v", email, util.ErrStoreUnavailable, err)
	}
	return &user, nil
}

// AddToBalance credits amount to the user's cash balance.
func (r *UserRepository) AddToBalance(ctx context.Context, q repository.DBExecutor, id uuid.UUID, amount decimal.Decimal) error {
	query := `UPDATE users SET balance = balance + $1 WHERE id = $2`
	result, err := q.ExecContext(ctx, query, amount, id)
	if err != nil {
		return fmt.Errorf("update user balance for %s: %w: %v", id, util.ErrStoreUnavailable, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for user %s: %w: %v", id, util.ErrStoreUnavailable, err)
	}
	if rowsAffected == 0 {
		return util.ErrUserNotFound
	}
	return nil
}
