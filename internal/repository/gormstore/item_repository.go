package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"itemhub/internal/domain"
	"itemhub/internal/repository"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) repository.ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) error {
	row := itemModel{
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Tax:         item.Tax,
		OwnerID:     item.OwnerID,
		Slug:        item.Slug,
	}
	if err := r.db.WithContext(ctx).Omit("Owner").Create(&row).Error; err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	item.ID = row.ID
	item.CreatedAt = row.CreatedAt
	item.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	var row itemModel
	if err := r.db.WithContext(ctx).Preload("Owner").First(&row, id).Error; err != nil {
		return nil, notFound(err, "get item")
	}
	return itemFromModel(&row), nil
}

func (r *ItemRepository) List(ctx context.Context, params repository.ListParams) ([]domain.Item, error) {
	var rows []itemModel
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Scopes(paginate("name", params)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	items := make([]domain.Item, len(rows))
	for i := range rows {
		items[i] = *itemFromModel(&rows[i])
	}
	return items, nil
}

func (r *ItemRepository) Update(ctx context.Context, id int64, patch domain.ItemPatch) (*domain.Item, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row itemModel
		if err := tx.First(&row, id).Error; err != nil {
			return notFound(err, "get item")
		}
		columns := itemColumns(patch)
		if len(columns) == 0 {
			return nil
		}
		if err := tx.Model(&row).Updates(columns).Error; err != nil {
			return fmt.Errorf("update item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&itemModel{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete item: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *ItemRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return slugExists(r.db.WithContext(ctx), &itemModel{}, slug)
}

func itemColumns(p domain.ItemPatch) map[string]any {
	columns := make(map[string]any)
	if p.Name != nil {
		columns["name"] = *p.Name
	}
	if p.Description.Set {
		columns["description"] = nullable(p.Description)
	}
	if p.Price != nil {
		columns["price"] = *p.Price
	}
	if p.Tax != nil {
		columns["tax"] = *p.Tax
	}
	return columns
}
