package service

import (
	"context"
	"errors"
	"strings"

	"itemhub/internal/auth"
	"itemhub/internal/domain"
	"itemhub/internal/repository"
)

const (
	maxUsernameLen = 100
	maxEmailLen    = 200
)

// NewUser is the input for creating an account.
type NewUser struct {
	Username  string
	Email     string
	Password  string
	FirstName *string
	LastName  *string
	Disabled  bool
	GroupID   *int64
}

// UserChanges is a partial update. Password is stored hashed. A null
// GroupID takes the user out of its group.
type UserChanges struct {
	Username  *string
	Email     *string
	Password  *string
	FirstName domain.Optional[string]
	LastName  domain.Optional[string]
	Disabled  *bool
	GroupID   domain.Optional[int64]
}

// UserService describes user lifecycle operations. Every returned user has
// its password hash stripped.
type UserService interface {
	List(ctx context.Context, params repository.ListParams) ([]domain.User, error)
	Create(ctx context.Context, in NewUser) (*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	// Me reloads the caller with group and items.
	Me(ctx context.Context, caller *domain.User) (*domain.User, error)
	Update(ctx context.Context, id int64, changes UserChanges) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	users  repository.UserRepository
	groups repository.GroupRepository
}

func NewUserService(users repository.UserRepository, groups repository.GroupRepository) UserService {
	return &userService{
		users:  users,
		groups: groups,
	}
}

func (s *userService) List(ctx context.Context, params repository.ListParams) ([]domain.User, error) {
	users, err := s.users.List(ctx, params)
	if err != nil {
		return nil, domain.Operation("Error fetching user list.", err)
	}
	for i := range users {
		users[i] = *users[i].Sanitized()
	}
	return users, nil
}

func (s *userService) Create(ctx context.Context, in NewUser) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if in.Username == "" {
		return nil, domain.Invalid("Username is required.")
	}
	if len(in.Username) > maxUsernameLen {
		return nil, domain.Invalid("Username must be at most %d characters.", maxUsernameLen)
	}
	if len(in.Email) > maxEmailLen {
		return nil, domain.Invalid("Email must be at most %d characters.", maxEmailLen)
	}
	if in.Password == "" {
		return nil, domain.Invalid("Password is required.")
	}
	if err := s.checkUsernameFree(ctx, in.Username); err != nil {
		return nil, err
	}
	if err := s.checkGroup(ctx, in.GroupID); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, domain.Operation("Error creating user.", err)
	}
	userSlug, err := uniqueSlug(ctx, in.Username, s.users.SlugExists)
	if err != nil {
		return nil, domain.Operation("Error creating user.", err)
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Disabled:     in.Disabled,
		PasswordHash: hash,
		GroupID:      in.GroupID,
		Slug:         userSlug,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, domain.Operation("Error creating user.", err)
	}
	return s.Get(ctx, user.ID)
}

func (s *userService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "User", "Error fetching user.")
	}
	return user.Sanitized(), nil
}

func (s *userService) Me(ctx context.Context, caller *domain.User) (*domain.User, error) {
	if caller == nil {
		return nil, domain.ErrInvalidToken
	}
	return s.Get(ctx, caller.ID)
}

func (s *userService) Update(ctx context.Context, id int64, changes UserChanges) (*domain.User, error) {
	patch := domain.UserPatch{
		Email:     changes.Email,
		FirstName: changes.FirstName,
		LastName:  changes.LastName,
		Disabled:  changes.Disabled,
		GroupID:   changes.GroupID,
	}

	if changes.Username != nil {
		username := strings.TrimSpace(*changes.Username)
		if username == "" {
			return nil, domain.Invalid("Username is required.")
		}
		if len(username) > maxUsernameLen {
			return nil, domain.Invalid("Username must be at most %d characters.", maxUsernameLen)
		}
		current, err := s.users.GetByUsername(ctx, username)
		switch {
		case err == nil && current.ID != id:
			return nil, domain.Invalid("Username already registered.")
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return nil, domain.Operation("Error updating user.", err)
		}
		patch.Username = &username
	}
	if changes.Email != nil && len(*changes.Email) > maxEmailLen {
		return nil, domain.Invalid("Email must be at most %d characters.", maxEmailLen)
	}
	if err := s.checkGroup(ctx, changes.GroupID.Value); err != nil {
		return nil, err
	}
	if changes.Password != nil {
		if *changes.Password == "" {
			return nil, domain.Invalid("Password is required.")
		}
		hash, err := auth.HashPassword(*changes.Password)
		if err != nil {
			return nil, domain.Operation("Error updating user.", err)
		}
		patch.PasswordHash = &hash
	}

	user, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return nil, storeError(err, "User", "Error updating user.")
	}
	return user.Sanitized(), nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return storeError(err, "User", "Error deleting user.")
	}
	return nil
}

func (s *userService) checkUsernameFree(ctx context.Context, username string) error {
	_, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return domain.Invalid("Username already registered.")
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return domain.Operation("Error creating user.", err)
	}
}

func (s *userService) checkGroup(ctx context.Context, groupID *int64) error {
	if groupID == nil {
		return nil
	}
	if _, err := s.groups.GetByID(ctx, *groupID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Invalid("Group %d does not exist.", *groupID)
		}
		return domain.Operation("Error fetching group.", err)
	}
	return nil
}
