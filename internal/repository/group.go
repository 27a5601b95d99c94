package repository

import (
	"context"

	"itemhub/internal/domain"
)

// GroupRepository defines persistence operations for permission groups.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	GetByID(ctx context.Context, id int64) (*domain.Group, error)
	GetByName(ctx context.Context, name string) (*domain.Group, error)
	List(ctx context.Context, params ListParams) ([]domain.Group, error)
	Update(ctx context.Context, id int64, patch domain.GroupPatch) (*domain.Group, error)
	Delete(ctx context.Context, id int64) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}
