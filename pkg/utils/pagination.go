package utils

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100

	// MaxPage keeps (page-1)*limit inside int for every allowed limit.
	MaxPage = math.MaxInt / MaxLimit
)

type PageMeta struct {
	Page  int
	Limit int
	Total int64
	Pages int
}

// ClampPage returns page and limit forced into bounds: 1 <= page <= MaxPage,
// 1 <= limit <= 100.
func ClampPage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

func CalculateOffset(page, perPage int) int {
	if page < 1 || perPage < 1 {
		return 0
	}
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}

func NewPageMeta(page, limit int, total int64) PageMeta {
	return PageMeta{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: CalculateTotalPages(total, limit),
	}
}
