package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"itemhub/internal/domain"
	"itemhub/internal/repository"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) repository.GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(ctx context.Context, group *domain.Group) error {
	row := groupModel{Name: group.Name, Slug: group.Slug}
	if err := r.db.WithContext(ctx).Omit("Users").Create(&row).Error; err != nil {
		return fmt.Errorf("insert group: %w", err)
	}
	group.ID = row.ID
	group.CreatedAt = row.CreatedAt
	group.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	var row groupModel
	if err := r.db.WithContext(ctx).Preload("Users", byID).First(&row, id).Error; err != nil {
		return nil, notFound(err, "get group")
	}
	return groupFromModel(&row), nil
}

func (r *GroupRepository) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	var row groupModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id").First(&row).Error; err != nil {
		return nil, notFound(err, "get group by name")
	}
	return groupFromModel(&row), nil
}

func (r *GroupRepository) List(ctx context.Context, params repository.ListParams) ([]domain.Group, error) {
	var rows []groupModel
	err := r.db.WithContext(ctx).
		Preload("Users", byID).
		Scopes(paginate("name", params)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	groups := make([]domain.Group, len(rows))
	for i := range rows {
		groups[i] = *groupFromModel(&rows[i])
	}
	return groups, nil
}

func (r *GroupRepository) Update(ctx context.Context, id int64, patch domain.GroupPatch) (*domain.Group, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row groupModel
		if err := tx.First(&row, id).Error; err != nil {
			return notFound(err, "get group")
		}
		if patch.Name == nil {
			return nil
		}
		if err := tx.Model(&row).Update("name", *patch.Name).Error; err != nil {
			return fmt.Errorf("update group: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *GroupRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&userModel{}).Where("group_id = ?", id).Update("group_id", nil).Error; err != nil {
			return fmt.Errorf("release group members: %w", err)
		}
		res := tx.Delete(&groupModel{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete group: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("delete group: %w", domain.ErrNotFound)
		}
		return nil
	})
}

func (r *GroupRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return slugExists(r.db.WithContext(ctx), &groupModel{}, slug)
}
