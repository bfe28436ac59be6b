package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"workspace-service/internal/domain"
)

type GroupRepository struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(ctx context.Context, title string) (*domain.Group, error) {
	query := `INSERT INTO groups (id, title) VALUES ($1, $2) RETURNING id, title`

	var group domain.Group
	if err := r.db.GetContext(ctx, &group, query, uuid.New(), title); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return &group, nil
}

func (r *GroupRepository) Members(ctx context.Context, groupID uuid.UUID) ([]domain.User, error) {
	query := `
        SELECT u.id, u.auth_id, u.name, u.email, u.created_at
        FROM users u
        JOIN group_members m ON m.user_id = u.id
        WHERE m.group_id = $1
        ORDER BY u.name`

	var users []domain.User
	if err := r.db.SelectContext(ctx, &users, query, groupID); err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}

	return users, nil
}
