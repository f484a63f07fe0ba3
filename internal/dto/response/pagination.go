package response

import "tour-booking/pkg/utils"

// PaginatedResponse is one page of items plus the metadata of the whole
// result set.
type PaginatedResponse[T any] struct {
	Data       []T
	Pagination utils.PageMeta
}

func NewPaginatedResponse[T any](data []T, page, limit int, total int64) *PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}
	return &PaginatedResponse[T]{
		Data:       data,
		Pagination: utils.NewPageMeta(page, limit, total),
	}
}
