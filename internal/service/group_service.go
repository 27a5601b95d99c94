package service

import (
	"context"
	"strings"

	"itemhub/internal/domain"
	"itemhub/internal/repository"
)

const maxGroupNameLen = 100

// GroupService manages permission groups.
type GroupService interface {
	List(ctx context.Context, params repository.ListParams) ([]domain.Group, error)
	Create(ctx context.Context, name string) (*domain.Group, error)
	Get(ctx context.Context, id int64) (*domain.Group, error)
	Update(ctx context.Context, id int64, patch domain.GroupPatch) (*domain.Group, error)
	// Delete removes the group; its members become ungrouped.
	Delete(ctx context.Context, id int64) error
}

type groupService struct {
	groups repository.GroupRepository
}

func NewGroupService(groups repository.GroupRepository) GroupService {
	return &groupService{groups: groups}
}

func (s *groupService) List(ctx context.Context, params repository.ListParams) ([]domain.Group, error) {
	groups, err := s.groups.List(ctx, params)
	if err != nil {
		return nil, domain.Operation("Error fetching group list.", err)
	}
	for i := range groups {
		sanitizeMembers(&groups[i])
	}
	return groups, nil
}

func (s *groupService) Create(ctx context.Context, name string) (*domain.Group, error) {
	name, err := validGroupName(name)
	if err != nil {
		return nil, err
	}
	groupSlug, err := uniqueSlug(ctx, name, s.groups.SlugExists)
	if err != nil {
		return nil, domain.Operation("Error creating group.", err)
	}
	group := &domain.Group{Name: name, Slug: groupSlug}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, domain.Operation("Error creating group.", err)
	}
	return group, nil
}

func (s *groupService) Get(ctx context.Context, id int64) (*domain.Group, error) {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Group", "Error fetching group.")
	}
	sanitizeMembers(group)
	return group, nil
}

func (s *groupService) Update(ctx context.Context, id int64, patch domain.GroupPatch) (*domain.Group, error) {
	if patch.Name != nil {
		name, err := validGroupName(*patch.Name)
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	group, err := s.groups.Update(ctx, id, patch)
	if err != nil {
		return nil, storeError(err, "Group", "Error updating group.")
	}
	sanitizeMembers(group)
	return group, nil
}

func (s *groupService) Delete(ctx context.Context, id int64) error {
	if err := s.groups.Delete(ctx, id); err != nil {
		return storeError(err, "Group", "Error deleting group.")
	}
	return nil
}

func validGroupName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.Invalid("Group name is required.")
	}
	if len(name) > maxGroupNameLen {
		return "", domain.Invalid("Group name must be at most %d characters.", maxGroupNameLen)
	}
	return name, nil
}

func sanitizeMembers(group *domain.Group) {
	for i := range group.Users {
		group.Users[i].PasswordHash = ""
	}
}
