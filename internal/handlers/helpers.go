package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-tracker/internal/constants"
	apierrors "github.com/yukikurage/todo-tracker/internal/errors"
	"github.com/yukikurage/todo-tracker/internal/utils"
)

const headerTotalCount = "X-Total-Count"

// parseIDParam reads a positive numeric path parameter, answering 400 otherwise.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// listPage reads the optional page and per_page query parameters of a JSON
// list. Without page the whole collection is returned.
func listPage(c *gin.Context) (page, perPage int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 0, 0
	}
	perPage, err = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(constants.DefaultPageSize)))
	if err != nil || perPage < constants.MinPageSize || perPage > constants.MaxPageSize {
		perPage = constants.DefaultPageSize
	}
	return page, perPage
}

// respondList writes a JSON array with the total count header.
func respondList(c *gin.Context, items interface{}, total int64) {
	c.Header(headerTotalCount, strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, items)
}

// noContent answers 204 with an empty body.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
	c.Writer.WriteHeaderNow()
}

// bindError answers 400 for a body that failed binding.
func bindError(c *gin.Context, err error) {
	apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
}

// parseDueDate parses an optional due date field, answering 400 when it is malformed.
func parseDueDate(c *gin.Context, value *string) (*time.Time, bool) {
	if value == nil {
		return nil, true
	}
	due, err := utils.ParseDueDate(*value)
	if err != nil {
		apierrors.BadRequest(c, "Invalid due_date")
		return nil, false
	}
	return due, true
}
