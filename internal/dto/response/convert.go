package response

import (
	"tour-booking/internal/data/entity"
)

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func idPtr(id *entity.ID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
