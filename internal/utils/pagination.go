package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-tracker/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse represents the pagination metadata in responses
type PaginationResponse struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// HasPrev reports whether a previous page exists.
func (p PaginationResponse) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a next page exists.
func (p PaginationResponse) HasNext() bool {
	return p.Page < p.TotalPages
}

// PrevPage returns the previous page number.
func (p PaginationResponse) PrevPage() int {
	return p.Page - 1
}

// NextPage returns the next page number.
func (p PaginationResponse) NextPage() int {
	return p.Page + 1
}

// NewPaginationParams builds parameters for a page of perPage items
func NewPaginationParams(page, perPage int) PaginationParams {
	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if perPage < constants.MinPageSize || perPage > constants.MaxPageSize {
		perPage = constants.DefaultPageSize
	}
	return PaginationParams{
		Page:   page,
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	}
}

// GetPaginationParams reads the page number from the request and uses perPage
// as the page size
func GetPaginationParams(c *gin.Context, perPage int) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	return NewPaginationParams(page, perPage)
}

// NewPaginationResponse computes the metadata for a page
func NewPaginationResponse(params PaginationParams, total int64) PaginationResponse {
	totalPages := 0
	if params.Limit > 0 {
		totalPages = int(total) / params.Limit
		if int(total)%params.Limit > 0 {
			totalPages++
		}
	}
	return PaginationResponse{
		Page:       params.Page,
		PerPage:    params.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// IsAllowedPageSize reports whether n is one of the selectable page sizes
func IsAllowedPageSize(n int) bool {
	for _, size := range constants.AllowedPageSizes {
		if size == n {
			return true
		}
	}
	return false
}
