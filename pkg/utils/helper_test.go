package utils

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"blank", "  \n ", []string{}},
		{"comma separated", "Vietravel, Saigontourist ,,", []string{"Vietravel", "Saigontourist"}},
		{"newline wins over comma", "No refunds, no exceptions\n  Bring ID  \n\n", []string{"No refunds, no exceptions", "Bring ID"}},
		{"single entry", " Hotel ", []string{"Hotel"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, NormalizeList(tt.input)); diff != "" {
				t.Errorf("NormalizeList(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestNormalizeList_Idempotent(t *testing.T) {
	inputs := []string{
		"a, b , c",
		"line one, with comma\nline two\n\n  line three ",
		" x ",
		",,,",
	}

	for _, in := range inputs {
		once := NormalizeList(in)

		assert.Equal(t, once, NormalizeStrings(once), "normalizing a normalized list")
		assert.Equal(t, once, NormalizeList(strings.Join(once, "\n")), "normalizing the joined list")
	}
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 20, ParseInt("", 20))
	assert.Equal(t, 20, ParseInt("abc", 20))
	assert.Equal(t, 0, ParseInt("0", 20))
	assert.Equal(t, 7, ParseInt(" 7 ", 20))
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 1},
		{-3, 500, 1, 100},
		{2, 10, 2, 10},
		{1, 100, 1, 100},
		{math.MaxInt, 20, MaxPage, 20},
	}

	for _, tt := range tests {
		page, limit := ClampPage(tt.page, tt.limit)
		assert.Equal(t, tt.wantPage, page)
		assert.Equal(t, tt.wantLimit, limit)
	}
}

func TestPageMeta(t *testing.T) {
	meta := NewPageMeta(2, 10, 25)
	assert.Equal(t, 3, meta.Pages)
	assert.Equal(t, 10, CalculateOffset(2, 10))

	assert.Equal(t, 0, NewPageMeta(1, 20, 0).Pages)
	assert.Equal(t, 1, CalculateTotalPages(20, 20))

	page, limit := ClampPage(math.MaxInt, MaxLimit)
	assert.GreaterOrEqual(t, CalculateOffset(page, limit), 0)
	assert.Equal(t, math.MaxInt, CalculateOffset(math.MaxInt, 50))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1990-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), d)

	ts, err := ParseDate("2026-03-01T08:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 8, ts.Hour())

	_, err = ParseDate("01/01/1990")
	assert.Error(t, err)
}
