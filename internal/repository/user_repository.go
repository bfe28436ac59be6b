package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"workspace-service/internal/domain"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByAuthID resolves a caller credential to the user row it belongs to.
func (r *UserRepository) GetByAuthID(ctx context.Context, authID uuid.UUID) (*domain.User, error) {
	query := `SELECT id, auth_id, name, email, created_at FROM users WHERE auth_id = $1`

	var user domain.User
	err := r.db.GetContext(ctx, &user, query, authID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by auth id: %w", err)
	}

	return &user, nil
}
