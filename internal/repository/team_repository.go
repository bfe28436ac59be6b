package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"workspace-service/internal/domain"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, title string) (*domain.Team, error) {
	query := `INSERT INTO teams (id, title) VALUES ($1, $2) RETURNING id, title`

	var team domain.Team
	if err := r.db.GetContext(ctx, &team, query, uuid.New(), title); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return &team, nil
}

func (r *TeamRepository) Members(ctx context.Context, teamID uuid.UUID) ([]domain.User, error) {
	query := `
        SELECT u.id, u.auth_id, u.name, u.email, u.created_at
        FROM users u
        JOIN team_members m ON m.user_id = u.id
        WHERE m.team_id = $1
        ORDER BY u.name`

	var users []domain.User
	if err := r.db.SelectContext(ctx, &users, query, teamID); err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}

	return users, nil
}

// MembersDifference returns users that are members of teamA but not of teamB.
func (r *TeamRepository) MembersDifference(ctx context.Context, teamA, teamB uuid.UUID) ([]domain.User, error) {
	query := `
        SELECT u.id, u.auth_id, u.name, u.email, u.created_at
        FROM users u
        JOIN team_members a ON a.user_id = u.id AND a.team_id = $1
        LEFT JOIN team_members b ON b.user_id = u.id AND b.team_id = $2
        WHERE b.user_id IS NULL
        ORDER BY u.name`

	var users []domain.User
	if err := r.db.SelectContext(ctx, &users, query, teamA, teamB); err != nil {
		return nil, fmt.Errorf("failed to get team members difference: %w", err)
	}

	return users, nil
}

func (r *TeamRepository) IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, teamID, userID); err != nil {
		return false, fmt.Errorf("failed to check team membership: %w", err)
	}

	return exists, nil
}

func (r *TeamRepository) AddMember(ctx context.Context, teamID, userID uuid.UUID) error {
	query := `
        INSERT INTO team_members (team_id, user_id)
        VALUES ($1, $2)
        ON CONFLICT (team_id, user_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, teamID, userID); err != nil {
		return fmt.Errorf("failed to add team member: %w", err)
	}

	return nil
}

func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	query := `DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, teamID, userID); err != nil {
		return fmt.Errorf("failed to remove team member: %w", err)
	}

	return nil
}
