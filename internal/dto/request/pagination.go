package request

import (
	"net/url"

	"tour-booking/pkg/utils"
)

// PaginatedRequest carries page and limit from the query string. Out of
// range values are clamped, never rejected.
type PaginatedRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// NewPaginatedRequest reads page and limit from query, applying defaults
// and bounds.
func NewPaginatedRequest(query url.Values) PaginatedRequest {
	page, limit := utils.ClampPage(
		utils.ParseInt(query.Get("page"), utils.DefaultPage),
		utils.ParseInt(query.Get("limit"), utils.DefaultLimit),
	)
	return PaginatedRequest{Page: page, Limit: limit}
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.Limit)
}
