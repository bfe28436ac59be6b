package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"workspace-service/internal/domain"
	"workspace-service/internal/ports"
)

type GroupService struct {
	groupRepo ports.GroupRepository
}

func NewGroupService(groupRepo ports.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

func (s *GroupService) CreateGroup(ctx context.Context, title string) (*domain.Group, error) {
	if title == "" {
		return nil, fmt.Errorf("group title is required")
	}
	return s.groupRepo.Create(ctx, title)
}

func (s *GroupService) Members(ctx context.Context, groupID uuid.UUID) ([]domain.User, error) {
	return s.groupRepo.Members(ctx, groupID)
}
