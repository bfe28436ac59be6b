package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"workspace-service/internal/domain"
	"workspace-service/internal/ports"
)

type TeamService struct {
	teamRepo ports.TeamRepository
}

func NewTeamService(teamRepo ports.TeamRepository) *TeamService {
	return &TeamService{teamRepo: teamRepo}
}

func (s *TeamService) CreateTeam(ctx context.Context, title string) (*domain.Team, error) {
	if title == "" {
		return nil, fmt.Errorf("team title is required")
	}
	return s.teamRepo.Create(ctx, title)
}

func (s *TeamService) Members(ctx context.Context, teamID uuid.UUID) ([]domain.User, error) {
	return s.teamRepo.Members(ctx, teamID)
}

// MembersDifference lists members of teamA that are not members of teamB.
func (s *TeamService) MembersDifference(ctx context.Context, teamA, teamB uuid.UUID) ([]domain.User, error) {
	return s.teamRepo.MembersDifference(ctx, teamA, teamB)
}

func (s *TeamService) IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	return s.teamRepo.IsMember(ctx, teamID, userID)
}

func (s *TeamService) AddMember(ctx context.Context, teamID, userID uuid.UUID) error {
	return s.teamRepo.AddMember(ctx, teamID, userID)
}

func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	return s.teamRepo.RemoveMember(ctx, teamID, userID)
}
