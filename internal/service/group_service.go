package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meetsync/meetsync/internal/model"
	"github.com/meetsync/meetsync/internal/repository"
)

// GroupService manages groups, membership and per-group roles. Management
// operations require the acting user to be a group admin; the creator is
// the first admin.
type GroupService struct {
	groups repository.GroupRepository
	logger *zap.Logger
}

func NewGroupService(groups repository.GroupRepository, logger *zap.Logger) *GroupService {
	return &GroupService{groups: groups, logger: logger}
}

// Create creates a group with the creator as its first admin member.
func (s *GroupService) Create(ctx context.Context, name, description, creatorID string) (*model.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrValidation)
	}

	group := &model.Group{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedBy:   creatorID,
		Members:     []model.GroupMember{{UserID: creatorID, Role: model.GroupRoleAdmin}},
	}

	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}

	s.logger.Info("Group created",
		zap.String("group_id", group.ID),
		zap.String("created_by", creatorID),
	)

	return group, nil
}

// GetByID fetches a group the acting user belongs to.
func (s *GroupService) GetByID(ctx context.Context, id, actorID string) (*model.Group, error) {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrNotFound
	}
	if !isMember(group, actorID) {
		return nil, ErrNotOwner
	}
	return group, nil
}

// ListForUser returns the groups the user belongs to.
func (s *GroupService) ListForUser(ctx context.Context, userID string) ([]*model.Group, error) {
	return s.groups.ListForUser(ctx, userID)
}

// Update renames a group; admin only.
func (s *GroupService) Update(ctx context.Context, id, name, description, actorID string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: group name is required", ErrValidation)
	}
	if err := s.requireAdmin(ctx, id, actorID); err != nil {
		return err
	}
	return s.groups.Update(ctx, id, name, description)
}

// Delete removes a group; admin only.
func (s *GroupService) Delete(ctx context.Context, id, actorID string) error {
	if err := s.requireAdmin(ctx, id, actorID); err != nil {
		return err
	}

	if err := s.groups.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Group deleted",
		zap.String("group_id", id),
		zap.String("actor_id", actorID),
	)

	return nil
}

// AddMember adds a user to a group as a plain member; admin only.
func (s *GroupService) AddMember(ctx context.Context, groupID, userID, actorID string) error {
	if err := s.requireAdmin(ctx, groupID, actorID); err != nil {
		return err
	}
	return s.groups.AddMember(ctx, groupID, userID, model.GroupRoleMember)
}

// RemoveMember removes a user from a group. Admins may remove anyone;
// members may remove themselves.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, userID, actorID string) error {
	if userID != actorID {
		if err := s.requireAdmin(ctx, groupID, actorID); err != nil {
			return err
		}
	}
	return s.groups.RemoveMember(ctx, groupID, userID)
}

// SetMemberRole changes a member's role; admin only.
func (s *GroupService) SetMemberRole(ctx context.Context, groupID, userID, role, actorID string) error {
	if role != model.GroupRoleMember && role != model.GroupRoleAdmin {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if err := s.requireAdmin(ctx, groupID, actorID); err != nil {
		return err
	}
	return s.groups.SetMemberRole(ctx, groupID, userID, role)
}

func (s *GroupService) requireAdmin(ctx context.Context, groupID, actorID string) error {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrNotFound
	}
	for _, member := range group.Members {
		if member.UserID == actorID && member.Role == model.GroupRoleAdmin {
			return nil
		}
	}
	return ErrNotOwner
}

func isMember(group *model.Group, userID string) bool {
	for _, member := range group.Members {
		if member.UserID == userID {
			return true
		}
	}
	return false
}
