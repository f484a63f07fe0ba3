package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgWhere_BuildsPositionalConditions(t *testing.T) {
	where := guideWhere(GuideFilter{
		GroupType: "domestic",
		Language:  "English",
		Search:    "50%_off",
	})

	assert.Equal(t,
		"doc->>'group_type' = $1 AND doc->'languages' ? $2 AND "+
			"(doc->>'name' ILIKE $3 OR doc->>'phone' ILIKE $3 OR doc->>'email' ILIKE $3)",
		where.sql(),
	)
	assert.Equal(t, []any{"domestic", "English", `%50\%\_off%`}, where.args)
}

func TestPgWhere_EmptyMatchesEverything(t *testing.T) {
	assert.Equal(t, "TRUE", tourWhere(TourFilter{}).sql())
}

func TestPgWriteErr_MapsUniqueViolation(t *testing.T) {
	assert.ErrorIs(t, pgWriteErr(&pgconn.PgError{Code: "23505"}), ErrDuplicate)

	other := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, error(other), pgWriteErr(other))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, pgWriteErr(plain))
}
