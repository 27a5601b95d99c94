package gormstore

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"itemhub/internal/domain"
	"itemhub/internal/repository"
)

// notFound maps gorm's sentinel onto the domain one.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// paginate applies a case-insensitive substring filter on column plus a
// stable id order. The filter matches literally on sqlite and postgres alike.
func paginate(column string, params repository.ListParams) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params.Filter != "" {
			pattern := "%" + likeEscaper.Replace(params.Filter) + "%"
			db = db.Where("LOWER("+column+") LIKE LOWER(?) ESCAPE '\\'", pattern)
		}
		return db.Order("id").Offset(params.Offset).Limit(params.Limit)
	}
}

// nullable turns an Optional into a column value, nil meaning SQL NULL.
func nullable[T any](o domain.Optional[T]) any {
	if o.Value == nil {
		return nil
	}
	return *o.Value
}

func byID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

func slugExists(db *gorm.DB, model any, slug string) (bool, error) {
	var count int64
	if err := db.Model(model).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count slug: %w", err)
	}
	return count > 0, nil
}
