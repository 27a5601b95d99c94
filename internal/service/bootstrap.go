package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"itemhub/internal/auth"
	"itemhub/internal/domain"
	"itemhub/internal/repository"
)

// AdminAccount is the optional administrator created by Seed.
type AdminAccount struct {
	Username string
	Password string
	Email    string
}

// Seed creates the default groups and, when account has a username and
// password, an Administrator user. Existing rows are left alone, so it is
// safe to run on every start.
func Seed(ctx context.Context, groups repository.GroupRepository, users repository.UserRepository, account AdminAccount, logger *logrus.Logger) error {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	byName := make(map[string]*domain.Group, len(domain.DefaultGroups))
	for _, name := range domain.DefaultGroups {
		group, err := groups.GetByName(ctx, name)
		if errors.Is(err, domain.ErrNotFound) {
			groupSlug, slugErr := uniqueSlug(ctx, name, groups.SlugExists)
			if slugErr != nil {
				return fmt.Errorf("seed group %s: %w", name, slugErr)
			}
			group = &domain.Group{Name: name, Slug: groupSlug}
			if err := groups.Create(ctx, group); err != nil {
				return fmt.Errorf("seed group %s: %w", name, err)
			}
			logger.WithField("group", name).Info("created group")
		} else if err != nil {
			return fmt.Errorf("seed group %s: %w", name, err)
		}
		byName[name] = group
	}

	if account.Username == "" || account.Password == "" {
		return nil
	}

	_, err := users.GetByUsername(ctx, account.Username)
	if err == nil {
		logger.WithField("username", account.Username).Debug("admin user already present")
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("seed admin: %w", err)
	}

	hash, err := auth.HashPassword(account.Password)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	userSlug, err := uniqueSlug(ctx, account.Username, users.SlugExists)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	adminGroup := byName[domain.GroupAdministrator].ID
	admin := &domain.User{
		Username:     account.Username,
		Email:        account.Email,
		PasswordHash: hash,
		GroupID:      &adminGroup,
		Slug:         userSlug,
	}
	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	logger.WithField("username", admin.Username).Info("created administrator")
	return nil
}
