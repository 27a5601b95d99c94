package domain

import (
	"strings"
	"time"
)

// User represents an authenticated user of the system.
type User struct {
	ID           int64
	Username     string
	Email        string
	FirstName    *string
	LastName     *string
	Disabled     bool
	PasswordHash string
	GroupID      *int64
	Group        *Group
	Slug         string
	Items        []Item
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name, either of which may be missing.
func (u *User) FullName() string {
	var first, last string
	if u.FirstName != nil {
		first = *u.FirstName
	}
	if u.LastName != nil {
		last = *u.LastName
	}
	return strings.Join([]string{first, last}, " ")
}

// GroupName returns the name of the user's group, or "" when ungrouped.
func (u *User) GroupName() string {
	if u == nil || u.Group == nil {
		return ""
	}
	return u.Group.Name
}

// Sanitized returns a copy without credential material.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	safe := *u
	safe.PasswordHash = ""
	return &safe
}

// UserPatch lists the user fields an update may touch. Nil pointers and
// unset Optionals mean "leave as is"; a null Optional clears the column.
type UserPatch struct {
	Username     *string
	Email        *string
	FirstName    Optional[string]
	LastName     Optional[string]
	Disabled     *bool
	PasswordHash *string
	GroupID      Optional[int64]
}
