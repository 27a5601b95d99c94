package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"itemhub/internal/domain"
	"itemhub/internal/service"
)

type createUserRequest struct {
	Username  string  `json:"username" binding:"required,max=100"`
	Email     string  `json:"email" binding:"max=200"`
	Password  string  `json:"password" binding:"required"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Disabled  bool    `json:"disabled"`
	GroupID   *int64  `json:"group_id"`
}

// Null clears first_name, last_name and group_id. The other fields reject it.
type updateUserRequest struct {
	Username  domain.Optional[string] `json:"username"`
	Email     domain.Optional[string] `json:"email"`
	Password  domain.Optional[string] `json:"password"`
	FirstName domain.Optional[string] `json:"first_name"`
	LastName  domain.Optional[string] `json:"last_name"`
	Disabled  domain.Optional[bool]   `json:"disabled"`
	GroupID   domain.Optional[int64]  `json:"group_id"`
}

func (h *Handler) listUsers(c *gin.Context) {
	params, ok := bindList(c, byFirstName)
	if !ok {
		return
	}
	users, err := h.users.List(c.Request.Context(), params)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.Create(c.Request.Context(), service.NewUser{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Disabled:  req.Disabled,
		GroupID:   req.GroupID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userToResponse(*user))
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.users.Me(c.Request.Context(), currentUser(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) updateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	err := rejectNull(
		nullField{"username", req.Username},
		nullField{"email", req.Email},
		nullField{"password", req.Password},
		nullField{"disabled", req.Disabled},
	)
	if err != nil {
		h.respondError(c, err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, service.UserChanges{
		Username:  req.Username.Value,
		Email:     req.Email.Value,
		Password:  req.Password.Value,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Disabled:  req.Disabled.Value,
		GroupID:   req.GroupID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deletedResponse{Deleted: true})
}
