package repository

import (
	"context"

	"itemhub/internal/domain"
)

// ItemRepository exposes persistence operations for items.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	List(ctx context.Context, params ListParams) ([]domain.Item, error)
	Update(ctx context.Context, id int64, patch domain.ItemPatch) (*domain.Item, error)
	Delete(ctx context.Context, id int64) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}
