package handler

import (
	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/clubgate/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// bindFilter binds common pagination/ordering query parameters plus the
// given domain-specific filter keys into a repository filter.
func bindFilter(c *gin.Context, filterKeys ...string) (shared.Filter, error) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		return shared.Filter{}, err
	}

	filter := shared.DefaultFilter()
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	filter.Search = req.Search
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}

	for _, key := range filterKeys {
		if value := c.Query(key); value != "" {
			filter.Filters[key] = value
		}
	}

	return filter, nil
}

// parseIDParam parses the :id path parameter as a UUID.
func parseIDParam(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}
