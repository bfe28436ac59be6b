package ports

import (
	"context"

	"github.com/google/uuid"

	"workspace-service/internal/domain"
)

type TeamRepository interface {
	Create(ctx context.Context, title string) (*domain.Team, error)
	Members(ctx context.Context, teamID uuid.UUID) ([]domain.User, error)
	MembersDifference(ctx context.Context, teamA, teamB uuid.UUID) ([]domain.User, error)
	IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	AddMember(ctx context.Context, teamID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error
}

type GroupRepository interface {
	Create(ctx context.Context, title string) (*domain.Group, error)
	Members(ctx context.Context, groupID uuid.UUID) ([]domain.User, error)
}
