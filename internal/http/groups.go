package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"itemhub/internal/domain"
)

type createGroupRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type updateGroupRequest struct {
	Name domain.Optional[string] `json:"name"`
}

func (h *Handler) listGroups(c *gin.Context) {
	params, ok := bindList(c, byName)
	if !ok {
		return
	}
	groups, err := h.groups.List(c.Request.Context(), params)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]GroupResponse, len(groups))
	for i := range groups {
		resp[i] = groupToResponse(groups[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createGroup(c *gin.Context) {
	var req createGroupRequest
	if !bindJSON(c, &req) {
		return
	}
	group, err := h.groups.Create(c.Request.Context(), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, groupToResponse(*group))
}

func (h *Handler) getGroup(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	group, err := h.groups.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groupToResponse(*group))
}

func (h *Handler) updateGroup(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateGroupRequest
	if !bindJSON(c, &req) {
		return
	}
	patch, err := groupPatch(req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	group, err := h.groups.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groupToResponse(*group))
}

func (h *Handler) deleteGroup(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.groups.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deletedResponse{Deleted: true})
}

func groupPatch(req updateGroupRequest) (domain.GroupPatch, error) {
	if err := rejectNull(nullField{"name", req.Name}); err != nil {
		return domain.GroupPatch{}, err
	}
	return domain.GroupPatch{Name: req.Name.Value}, nil
}
