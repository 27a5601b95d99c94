package domain

import "time"

// Names of the groups created by the bootstrap seed.
const (
	GroupStandard      = "Standard"
	GroupModerator     = "Moderator"
	GroupAdministrator = "Administrator"
)

// DefaultGroups is the seed set, in creation order.
var DefaultGroups = []string{GroupStandard, GroupModerator, GroupAdministrator}

// Group is a permission group; a user's group name is its role.
type Group struct {
	ID        int64
	Name      string
	Slug      string
	Users     []User
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GroupPatch lists the group fields an update may touch.
type GroupPatch struct {
	Name *string
}
