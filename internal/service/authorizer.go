package service

import (
	"context"
	"errors"
	"slices"

	"itemhub/internal/domain"
)

// OwnerLookup reports who owns the record with the given id. A missing
// record is reported with an error matching domain.ErrNotFound; a record
// without an owner returns a nil id.
type OwnerLookup interface {
	OwnerOf(ctx context.Context, id int64) (*int64, error)
}

// Policy describes who may reach a route.
//
// Access is granted when either check passes:
//   - role: AllowedRoles is empty, or the user's group is listed;
//   - ownership: RequireOwnership is false, or the target exists and is
//     owned by the user.
//
// A resource without an Owners lookup has no owner, so its ownership check
// only passes when RequireOwnership is false.
type Policy struct {
	AllowedRoles     []string
	RequireOwnership bool
	Owners           OwnerLookup
}

// Authorize applies policy to user and the optional target id. Denials are
// ErrForbidden whether the target is missing or owned by someone else.
func Authorize(ctx context.Context, user *domain.User, targetID *int64, policy Policy) error {
	if user == nil {
		return domain.ErrForbidden
	}
	if len(policy.AllowedRoles) == 0 || slices.Contains(policy.AllowedRoles, user.GroupName()) {
		return nil
	}
	if !policy.RequireOwnership {
		return nil
	}
	if targetID == nil || policy.Owners == nil {
		return domain.ErrForbidden
	}

	owner, err := policy.Owners.OwnerOf(ctx, *targetID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.ErrForbidden
	case err != nil:
		return domain.Operation("Error fetching object.", err)
	case owner != nil && *owner == user.ID:
		return nil
	default:
		return domain.ErrForbidden
	}
}
