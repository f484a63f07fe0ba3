package entity

import (
	"strings"
	"time"

	"tour-booking/pkg/apperror"
	"tour-booking/pkg/utils"
)

// ID is a document id or a reference to one. It is always a uuid string.
type ID string

func NewID() ID {
	return ID(utils.GenerateID())
}

// ParseID validates a raw id from a path or a body field. what names the
// referenced entity in the error message.
func ParseID(raw, what string) (ID, error) {
	raw = strings.TrimSpace(raw)
	if !utils.IsValidID(raw) {
		return "", apperror.Validation("Invalid %s ID format", what)
	}
	return ID(raw), nil
}

// ParseOptionalID returns nil for an empty reference.
func ParseOptionalID(raw *string, what string) (*ID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := ParseID(*raw, what)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (id ID) String() string {
	return string(id)
}

type Base struct {
	ID        ID        `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// NewBase stamps a fresh id and creation time. Times are truncated to
// milliseconds, the precision every backend stores.
func NewBase() Base {
	now := Now()
	return Base{
		ID:        NewID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *Base) Touch() {
	b.UpdatedAt = Now()
}

func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
