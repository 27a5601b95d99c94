package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itemhub/internal/auth"
	"itemhub/internal/domain"
	"itemhub/internal/repository"
)

func TestItemService_CreateDefaultsAndOwner(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	owner := seedUser(t, store, "alice", "wonderland", domain.GroupStandard, false)
	svc := NewItemService(store.items)

	item, err := svc.Create(ctx, owner, NewItem{Name: "  Widget "})
	require.NoError(t, err)

	assert.Equal(t, "Widget", item.Name)
	assert.Equal(t, 0.0, item.Price)
	assert.Equal(t, domain.DefaultTax, item.Tax)
	assert.Equal(t, "widget", item.Slug)
	require.NotNil(t, item.OwnerID)
	assert.Equal(t, owner.ID, *item.OwnerID)
	require.NotNil(t, item.Owner)
	assert.Empty(t, item.Owner.PasswordHash)

	ownerID, err := svc.OwnerOf(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, *ownerID)
}

func TestItemService_SlugCollisionGetsSuffix(t *testing.T) {
	ctx := context.Background()
	svc := NewItemService(newTestStore(t).items)

	first, err := svc.Create(ctx, nil, NewItem{Name: "Widget", Price: ptr(10.0)})
	require.NoError(t, err)
	second, err := svc.Create(ctx, nil, NewItem{Name: "Widget", Price: ptr(10.0)})
	require.NoError(t, err)

	assert.Equal(t, "widget", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Regexp(t, `^widget-[0-9a-f]{8}$`, second.Slug)
}

func TestItemService_PartialUpdateKeepsOtherFields(t *testing.T) {
	ctx := context.Background()
	svc := NewItemService(newTestStore(t).items)

	item, err := svc.Create(ctx, nil, NewItem{
		Name:        "Lamp",
		Description: ptr("desk lamp"),
		Price:       ptr(25.0),
		Tax:         ptr(5.0),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, item.ID, domain.ItemPatch{Price: ptr(30.0)})
	require.NoError(t, err)

	assert.Equal(t, 30.0, updated.Price)
	assert.Equal(t, "Lamp", updated.Name)
	assert.Equal(t, 5.0, updated.Tax)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "desk lamp", *updated.Description)
}

func TestItemService_NullDescriptionClears(t *testing.T) {
	ctx := context.Background()
	svc := NewItemService(newTestStore(t).items)

	item, err := svc.Create(ctx, nil, NewItem{Name: "Lamp", Description: ptr("desk lamp")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, item.ID, domain.ItemPatch{Description: domain.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, updated.Description)
	assert.Equal(t, "Lamp", updated.Name)
}

func TestItemService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewItemService(newTestStore(t).items)

	var vErr *domain.ValidationError
	_, err := svc.Create(ctx, nil, NewItem{Name: "   "})
	assert.ErrorAs(t, err, &vErr)

	long := make([]byte, maxItemDescriptionLen+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = svc.Create(ctx, nil, NewItem{Name: "Ok", Description: ptr(string(long))})
	assert.ErrorAs(t, err, &vErr)
}

func TestItemService_MissingItem(t *testing.T) {
	ctx := context.Background()
	svc := NewItemService(newTestStore(t).items)

	_, err := svc.Get(ctx, 404)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Item not found.", err.Error())

	_, err = svc.Update(ctx, 404, domain.ItemPatch{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 404), domain.ErrNotFound)

	_, err = svc.OwnerOf(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemService_ListPagination(t *testing.T) {
	ctx := context.Background()
	svc := NewItemService(newTestStore(t).items)

	for i := 1; i <= 15; i++ {
		_, err := svc.Create(ctx, nil, NewItem{Name: fmt.Sprintf("Item #%d", i)})
		require.NoError(t, err)
	}

	first, err := svc.List(ctx, repository.ListParams{Limit: 10})
	require.NoError(t, err)
	second, err := svc.List(ctx, repository.ListParams{Limit: 10, Offset: 10})
	require.NoError(t, err)

	assert.Len(t, first, 10)
	assert.Len(t, second, 5)
	assert.Equal(t, "Item #11", second[0].Name)
}

func TestItemService_OwnershipThroughStore(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := seedUser(t, store, "alice", "wonderland", domain.GroupStandard, false)
	bob := seedUser(t, store, "bob", "builder1", domain.GroupStandard, false)
	admin := seedUser(t, store, "root", "toor-toor", domain.GroupAdministrator, false)
	items := NewItemService(store.items)

	item, err := items.Create(ctx, alice, NewItem{Name: "Widget"})
	require.NoError(t, err)

	policy := Policy{AllowedRoles: []string{domain.GroupAdministrator}, RequireOwnership: true, Owners: items}
	assert.NoError(t, Authorize(ctx, alice, &item.ID, policy))
	assert.NoError(t, Authorize(ctx, admin, &item.ID, policy))
	assert.ErrorIs(t, Authorize(ctx, bob, &item.ID, policy), domain.ErrForbidden)

	// Once the owner is gone the item is ownerless.
	require.NoError(t, store.users.Delete(ctx, alice.ID))
	assert.ErrorIs(t, Authorize(ctx, alice, &item.ID, policy), domain.ErrForbidden)
}

func TestUserService_CreateHashesAndSlugs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	group := &domain.Group{Name: domain.GroupModerator, Slug: "moderator"}
	require.NoError(t, store.groups.Create(ctx, group))
	svc := NewUserService(store.users, store.groups)

	user, err := svc.Create(ctx, NewUser{
		Username:  "Jane Doe",
		Email:     "jane@example.com",
		Password:  "hunter22",
		FirstName: ptr("Jane"),
		LastName:  ptr("Doe"),
		GroupID:   &group.ID,
	})
	require.NoError(t, err)

	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, "jane-doe", user.Slug)
	assert.Equal(t, "Jane Doe", user.FullName())
	assert.Equal(t, domain.GroupModerator, user.GroupName())

	stored, err := store.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	ok, err := auth.CheckPassword(stored.PasswordHash, "hunter22")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserService_CreateRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedUser(t, store, "taken", "password1", "", false)
	svc := NewUserService(store.users, store.groups)

	cases := map[string]NewUser{
		"duplicate username": {Username: "taken", Password: "x"},
		"missing username":   {Username: " ", Password: "x"},
		"missing password":   {Username: "fresh"},
		"unknown group":      {Username: "fresh", Password: "x", GroupID: ptr(int64(999))},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, in)
			var vErr *domain.ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestUserService_UpdateRehashesPassword(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	user := seedUser(t, store, "alice", "old-password", "", false)
	svc := NewUserService(store.users, store.groups)

	updated, err := svc.Update(ctx, user.ID, UserChanges{Password: ptr("new-password"), FirstName: domain.Some("Alice")})
	require.NoError(t, err)
	assert.Empty(t, updated.PasswordHash)
	require.NotNil(t, updated.FirstName)
	assert.Equal(t, "Alice", *updated.FirstName)
	assert.Equal(t, "alice@example.com", updated.Email)

	authSvc := NewAuthService(store.users, newTestIssuer(t))
	_, err = authSvc.Authenticate(ctx, "alice", "old-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = authSvc.Authenticate(ctx, "alice", "new-password")
	assert.NoError(t, err)
}

func TestUserService_UpdateNullLeavesGroup(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	user := seedUser(t, store, "alice", "password1", domain.GroupStandard, false)
	require.NotNil(t, user.GroupID)
	svc := NewUserService(store.users, store.groups)

	updated, err := svc.Update(ctx, user.ID, UserChanges{
		FirstName: domain.Some("Alice"),
		GroupID:   domain.Null[int64](),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.GroupID)
	require.NotNil(t, updated.FirstName)
	assert.Equal(t, "Alice", *updated.FirstName)

	updated, err = svc.Update(ctx, user.ID, UserChanges{FirstName: domain.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, updated.FirstName)

	_, err = svc.Update(ctx, user.ID, UserChanges{GroupID: domain.Some(int64(999))})
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestUserService_UpdateUsernameConflict(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := seedUser(t, store, "alice", "password1", "", false)
	seedUser(t, store, "bob", "password1", "", false)
	svc := NewUserService(store.users, store.groups)

	_, err := svc.Update(ctx, alice.ID, UserChanges{Username: ptr("bob")})
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)

	same, err := svc.Update(ctx, alice.ID, UserChanges{Username: ptr("alice")})
	require.NoError(t, err)
	assert.Equal(t, "alice", same.Username)
}

func TestUserService_MeAndMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := seedUser(t, store, "alice", "password1", domain.GroupStandard, false)
	svc := NewUserService(store.users, store.groups)

	me, err := svc.Me(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, me.ID)
	assert.Equal(t, domain.GroupStandard, me.GroupName())

	_, err = svc.Get(ctx, 999)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "User not found.", err.Error())
	assert.ErrorIs(t, svc.Delete(ctx, 999), domain.ErrNotFound)
}

func TestGroupService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewGroupService(store.groups)

	group, err := svc.Create(ctx, "Power Users")
	require.NoError(t, err)
	assert.Equal(t, "power-users", group.Slug)

	member := seedUser(t, store, "alice", "password1", "Power Users", false)
	fetched, err := svc.Get(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Users, 1)
	assert.Empty(t, fetched.Users[0].PasswordHash)

	renamed, err := svc.Update(ctx, group.ID, domain.GroupPatch{Name: ptr("Experts")})
	require.NoError(t, err)
	assert.Equal(t, "Experts", renamed.Name)
	assert.Equal(t, "power-users", renamed.Slug)

	_, err = svc.Update(ctx, group.ID, domain.GroupPatch{Name: ptr("")})
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)

	require.NoError(t, svc.Delete(ctx, group.ID))
	orphan, err := store.users.GetByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.GroupID)

	_, err = svc.Get(ctx, group.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGroupService_ListFilter(t *testing.T) {
	ctx := context.Background()
	svc := NewGroupService(newTestStore(t).groups)

	for _, name := range domain.DefaultGroups {
		_, err := svc.Create(ctx, name)
		require.NoError(t, err)
	}

	got, err := svc.List(ctx, repository.ListParams{Limit: 10, Filter: "Mod"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.GroupModerator, got[0].Name)
}

func TestSeed_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	account := AdminAccount{Username: "admin", Password: "change-me", Email: "admin@example.com"}

	require.NoError(t, Seed(ctx, store.groups, store.users, account, nil))
	require.NoError(t, Seed(ctx, store.groups, store.users, account, nil))

	groups, err := store.groups.List(ctx, repository.ListParams{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, groups, len(domain.DefaultGroups))

	admin, err := store.users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.GroupAdministrator, admin.GroupName())
}

func TestSeed_WithoutAccountOnlyCreatesGroups(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, Seed(ctx, store.groups, store.users, AdminAccount{}, nil))

	users, err := store.users.List(ctx, repository.ListParams{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUniqueSlug(t *testing.T) {
	ctx := context.Background()
	taken := map[string]bool{"hello-world": true}
	exists := func(_ context.Context, s string) (bool, error) { return taken[s], nil }

	free, err := uniqueSlug(ctx, "Brand New", exists)
	require.NoError(t, err)
	assert.Equal(t, "brand-new", free)

	suffixed, err := uniqueSlug(ctx, "Hello, World!", exists)
	require.NoError(t, err)
	assert.Regexp(t, `^hello-world-[0-9a-f]{8}$`, suffixed)

	bare, err := uniqueSlug(ctx, "!!!", exists)
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f]{8}$`, bare)

	_, err = uniqueSlug(ctx, "x", func(context.Context, string) (bool, error) {
		return false, assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}
