package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"itemhub/internal/auth"
	"itemhub/internal/domain"
	"itemhub/internal/repository"
	"itemhub/internal/repository/gormstore"
)

type testStore struct {
	users  repository.UserRepository
	groups repository.GroupRepository
	items  repository.ItemRepository
}

func newTestStore(t *testing.T) testStore {
	t.Helper()
	db, err := gormstore.Open(gormstore.Config{Driver: gormstore.DriverSQLite, Path: gormstore.MemoryPath}, nil)
	require.NoError(t, err)
	require.NoError(t, gormstore.Migrate(db))
	t.Cleanup(func() { _ = gormstore.Close(db) })

	return testStore{
		users:  gormstore.NewUserRepository(db),
		groups: gormstore.NewGroupRepository(db),
		items:  gormstore.NewItemRepository(db),
	}
}

func newTestIssuer(t *testing.T) *auth.Issuer {
	t.Helper()
	issuer, err := auth.NewIssuer(auth.IssuerConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
	})
	require.NoError(t, err)
	return issuer
}

// seedUser stores a user with the given password, placing it in group when
// group is not empty.
func seedUser(t *testing.T, s testStore, username, password, group string, disabled bool) *domain.User {
	t.Helper()
	ctx := context.Background()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Disabled:     disabled,
		Slug:         username,
	}
	if group != "" {
		g, err := s.groups.GetByName(ctx, group)
		if err != nil {
			g = &domain.Group{Name: group, Slug: group}
			require.NoError(t, s.groups.Create(ctx, g))
		}
		user.GroupID = &g.ID
	}
	require.NoError(t, s.users.Create(ctx, user))

	stored, err := s.users.GetByUsername(ctx, username)
	require.NoError(t, err)
	return stored
}

func ptr[T any](v T) *T { return &v }
