package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"itemhub/internal/domain"
	"itemhub/internal/repository"
)

const (
	defaultLimit = 10
	minLimit     = 10
	maxLimit     = 100
	maxFilterLen = 50
)

type listQuery struct {
	Limit     int    `form:"limit,default=10" binding:"min=10,max=100"`
	Offset    int    `form:"offset,default=0" binding:"min=0"`
	Name      string `form:"name" binding:"max=50"`
	FirstName string `form:"first_name" binding:"max=50"`
}

// bindList reads the pagination parameters. filter picks which query
// parameter is the resource's search field.
func bindList(c *gin.Context, filter func(listQuery) string) (repository.ListParams, bool) {
	q := listQuery{Limit: defaultLimit}
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithDetail(c, http.StatusBadRequest, fmt.Sprintf(
			"Invalid list parameters: limit must be in [%d, %d], offset must be >= 0 and filters at most %d characters.",
			minLimit, maxLimit, maxFilterLen))
		return repository.ListParams{}, false
	}
	return repository.ListParams{
		Limit:  q.Limit,
		Offset: q.Offset,
		Filter: filter(q),
	}, true
}

func byName(q listQuery) string      { return q.Name }
func byFirstName(q listQuery) string { return q.FirstName }

// pathID parses the :id route parameter, answering 400 when it is not a
// positive integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortWithDetail(c, http.StatusBadRequest, "Invalid id.")
		return 0, false
	}
	return id, true
}

// nullField names a field of an update body whose column cannot be cleared.
type nullField struct {
	name  string
	value interface{ IsNull() bool }
}

// rejectNull fails on the first field that was sent as an explicit null.
func rejectNull(fields ...nullField) error {
	for _, f := range fields {
		if f.value.IsNull() {
			return domain.Invalid("%s may not be null.", f.name)
		}
	}
	return nil
}
