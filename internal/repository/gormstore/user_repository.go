package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"itemhub/internal/domain"
	"itemhub/internal/repository"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	row := userModel{
		Username:       user.Username,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Disabled:       user.Disabled,
		HashedPassword: user.PasswordHash,
		GroupID:        user.GroupID,
		Slug:           user.Slug,
	}
	if err := r.db.WithContext(ctx).Omit("Group", "Items").Create(&row).Error; err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = row.ID
	user.CreatedAt = row.CreatedAt
	user.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Preload("Group").
		Preload("Items", byID).
		First(&row, id).Error
	if err != nil {
		return nil, notFound(err, "get user")
	}
	return userFromModel(&row), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Preload("Group").
		Where("username = ?", username).
		First(&row).Error
	if err != nil {
		return nil, notFound(err, "get user by username")
	}
	return userFromModel(&row), nil
}

func (r *UserRepository) List(ctx context.Context, params repository.ListParams) ([]domain.User, error) {
	var rows []userModel
	err := r.db.WithContext(ctx).
		Preload("Group").
		Preload("Items", byID).
		Scopes(paginate("first_name", params)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]domain.User, len(rows))
	for i := range rows {
		users[i] = *userFromModel(&rows[i])
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row userModel
		if err := tx.First(&row, id).Error; err != nil {
			return notFound(err, "get user")
		}
		columns := userColumns(patch)
		if len(columns) == 0 {
			return nil
		}
		if err := tx.Model(&row).Updates(columns).Error; err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&itemModel{}).Where("owner_id = ?", id).Update("owner_id", nil).Error; err != nil {
			return fmt.Errorf("release owned items: %w", err)
		}
		res := tx.Delete(&userModel{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("delete user: %w", domain.ErrNotFound)
		}
		return nil
	})
}

func (r *UserRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return slugExists(r.db.WithContext(ctx), &userModel{}, slug)
}

func userColumns(p domain.UserPatch) map[string]any {
	columns := make(map[string]any)
	if p.Username != nil {
		columns["username"] = *p.Username
	}
	if p.Email != nil {
		columns["email"] = *p.Email
	}
	if p.FirstName.Set {
		columns["first_name"] = nullable(p.FirstName)
	}
	if p.LastName.Set {
		columns["last_name"] = nullable(p.LastName)
	}
	if p.Disabled != nil {
		columns["disabled"] = *p.Disabled
	}
	if p.PasswordHash != nil {
		columns["hashed_password"] = *p.PasswordHash
	}
	if p.GroupID.Set {
		columns["group_id"] = nullable(p.GroupID)
	}
	return columns
}
