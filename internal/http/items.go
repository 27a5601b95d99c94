package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"itemhub/internal/domain"
	"itemhub/internal/service"
)

type createItemRequest struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Description *string  `json:"description" binding:"omitempty,max=1000"`
	Price       *float64 `json:"price"`
	Tax         *float64 `json:"tax"`
}

// Lengths of update fields are checked by the item service.
type updateItemRequest struct {
	Name        domain.Optional[string]  `json:"name"`
	Description domain.Optional[string]  `json:"description"`
	Price       domain.Optional[float64] `json:"price"`
	Tax         domain.Optional[float64] `json:"tax"`
}

func (h *Handler) listItems(c *gin.Context) {
	params, ok := bindList(c, byName)
	if !ok {
		return
	}
	items, err := h.items.List(c.Request.Context(), params)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]ItemResponse, len(items))
	for i := range items {
		resp[i] = itemToResponse(items[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createItem(c *gin.Context) {
	var req createItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.items.Create(c.Request.Context(), currentUser(c), service.NewItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Tax:         req.Tax,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, itemToResponse(*item))
}

func (h *Handler) getItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.items.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemToResponse(*item))
}

func (h *Handler) updateItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateItemRequest
	if !bindJSON(c, &req) {
		return
	}
	patch, err := itemPatch(req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	item, err := h.items.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemToResponse(*item))
}

func (h *Handler) deleteItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.items.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deletedResponse{Deleted: true})
}

// itemPatch turns the body into a patch. Only the description can be
// cleared with null.
func itemPatch(req updateItemRequest) (domain.ItemPatch, error) {
	err := rejectNull(
		nullField{"name", req.Name},
		nullField{"price", req.Price},
		nullField{"tax", req.Tax},
	)
	if err != nil {
		return domain.ItemPatch{}, err
	}
	return domain.ItemPatch{
		Name:        req.Name.Value,
		Description: req.Description,
		Price:       req.Price.Value,
		Tax:         req.Tax.Value,
	}, nil
}
