package http

import (
	"time"

	"itemhub/internal/domain"
)

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// SafeUserResponse is the public view of a user. It never carries the
// password hash.
type SafeUserResponse struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	FullName  string  `json:"full_name"`
	Disabled  bool    `json:"disabled"`
	GroupID   *int64  `json:"group_id"`
	Slug      string  `json:"slug"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type GroupSummaryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ItemSummaryResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Tax         float64 `json:"tax"`
	OwnerID     *int64  `json:"owner_id"`
	Slug        string  `json:"slug"`
}

type UserResponse struct {
	SafeUserResponse
	Group *GroupSummaryResponse `json:"group"`
	Items []ItemSummaryResponse `json:"items"`
}

type GroupResponse struct {
	GroupSummaryResponse
	Users []SafeUserResponse `json:"users"`
}

type ItemResponse struct {
	ItemSummaryResponse
	Owner     *SafeUserResponse `json:"owner"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}

func safeUserToResponse(u domain.User) SafeUserResponse {
	return SafeUserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Disabled:  u.Disabled,
		GroupID:   u.GroupID,
		Slug:      u.Slug,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

func userToResponse(u domain.User) UserResponse {
	resp := UserResponse{
		SafeUserResponse: safeUserToResponse(u),
		Items:            make([]ItemSummaryResponse, len(u.Items)),
	}
	if u.Group != nil {
		resp.Group = &GroupSummaryResponse{ID: u.Group.ID, Name: u.Group.Name, Slug: u.Group.Slug}
	}
	for i := range u.Items {
		resp.Items[i] = itemSummary(u.Items[i])
	}
	return resp
}

func groupToResponse(g domain.Group) GroupResponse {
	resp := GroupResponse{
		GroupSummaryResponse: GroupSummaryResponse{ID: g.ID, Name: g.Name, Slug: g.Slug},
		Users:                make([]SafeUserResponse, len(g.Users)),
	}
	for i := range g.Users {
		resp.Users[i] = safeUserToResponse(g.Users[i])
	}
	return resp
}

func itemSummary(it domain.Item) ItemSummaryResponse {
	return ItemSummaryResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price,
		Tax:         it.Tax,
		OwnerID:     it.OwnerID,
		Slug:        it.Slug,
	}
}

func itemToResponse(it domain.Item) ItemResponse {
	resp := ItemResponse{
		ItemSummaryResponse: itemSummary(it),
		CreatedAt:           it.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           it.UpdatedAt.Format(time.RFC3339),
	}
	if it.Owner != nil {
		owner := safeUserToResponse(*it.Owner)
		resp.Owner = &owner
	}
	return resp
}
