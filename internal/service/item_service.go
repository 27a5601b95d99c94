package service

import (
	"context"
	"strings"

	"itemhub/internal/domain"
	"itemhub/internal/repository"
)

const (
	maxItemNameLen        = 200
	maxItemDescriptionLen = 1000
)

// NewItem is the input for creating an item. Nil Price and Tax take the
// defaults (0 and domain.DefaultTax).
type NewItem struct {
	Name        string
	Description *string
	Price       *float64
	Tax         *float64
}

// ItemService manages items. It also answers ownership lookups for the
// authorizer.
type ItemService interface {
	OwnerLookup
	List(ctx context.Context, params repository.ListParams) ([]domain.Item, error)
	// Create stores a new item owned by owner.
	Create(ctx context.Context, owner *domain.User, in NewItem) (*domain.Item, error)
	Get(ctx context.Context, id int64) (*domain.Item, error)
	Update(ctx context.Context, id int64, patch domain.ItemPatch) (*domain.Item, error)
	Delete(ctx context.Context, id int64) error
}

type itemService struct {
	items repository.ItemRepository
}

func NewItemService(items repository.ItemRepository) ItemService {
	return &itemService{items: items}
}

func (s *itemService) OwnerOf(ctx context.Context, id int64) (*int64, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return item.OwnerID, nil
}

func (s *itemService) List(ctx context.Context, params repository.ListParams) ([]domain.Item, error) {
	items, err := s.items.List(ctx, params)
	if err != nil {
		return nil, domain.Operation("Error fetching item list.", err)
	}
	for i := range items {
		items[i].Owner = items[i].Owner.Sanitized()
	}
	return items, nil
}

func (s *itemService) Create(ctx context.Context, owner *domain.User, in NewItem) (*domain.Item, error) {
	name, err := validItemName(in.Name)
	if err != nil {
		return nil, err
	}
	if err := validDescription(in.Description); err != nil {
		return nil, err
	}

	item := &domain.Item{
		Name:        name,
		Description: in.Description,
		Tax:         domain.DefaultTax,
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.Tax != nil {
		item.Tax = *in.Tax
	}
	if owner != nil {
		ownerID := owner.ID
		item.OwnerID = &ownerID
	}

	item.Slug, err = uniqueSlug(ctx, name, s.items.SlugExists)
	if err != nil {
		return nil, domain.Operation("Error creating item.", err)
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, domain.Operation("Error creating item.", err)
	}
	return s.Get(ctx, item.ID)
}

func (s *itemService) Get(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Item", "Error fetching item.")
	}
	item.Owner = item.Owner.Sanitized()
	return item, nil
}

func (s *itemService) Update(ctx context.Context, id int64, patch domain.ItemPatch) (*domain.Item, error) {
	if patch.Name != nil {
		name, err := validItemName(*patch.Name)
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if err := validDescription(patch.Description.Value); err != nil {
		return nil, err
	}
	item, err := s.items.Update(ctx, id, patch)
	if err != nil {
		return nil, storeError(err, "Item", "Error updating item.")
	}
	item.Owner = item.Owner.Sanitized()
	return item, nil
}

func (s *itemService) Delete(ctx context.Context, id int64) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return storeError(err, "Item", "Error deleting item.")
	}
	return nil
}

func validItemName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.Invalid("Item name is required.")
	}
	if len(name) > maxItemNameLen {
		return "", domain.Invalid("Item name must be at most %d characters.", maxItemNameLen)
	}
	return name, nil
}

func validDescription(description *string) error {
	if description != nil && len(*description) > maxItemDescriptionLen {
		return domain.Invalid("Description must be at most %d characters.", maxItemDescriptionLen)
	}
	return nil
}
