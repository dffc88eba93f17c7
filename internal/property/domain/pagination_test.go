package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name        string
		page, limit string
		want        Pagination
	}{
		{"defaults", "", "", Pagination{Page: 1, Limit: 10}},
		{"explicit", "3", "25", Pagination{Page: 3, Limit: 25}},
		{"non numeric", "abc", "x", Pagination{Page: 1, Limit: 10}},
		{"zero and negative", "0", "-4", Pagination{Page: 1, Limit: 10}},
		{"oversized limit", "1", "5000", Pagination{Page: 1, Limit: MaxLimit}},
		{"max int page", "9223372036854775807", "10", Pagination{Page: MaxPage, Limit: 10}},
		{"page beyond int64", "99999999999999999999", "10", Pagination{Page: 1, Limit: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePagination(tt.page, tt.limit))
		})
	}
}

func TestPagination_PagesAndSkip(t *testing.T) {
	p := Pagination{Page: 3, Limit: 10}
	assert.Equal(t, int64(20), p.Skip())
	assert.Equal(t, 0, p.Pages(0))
	assert.Equal(t, 1, p.Pages(10))
	assert.Equal(t, 2, p.Pages(11))
	assert.Equal(t, 3, p.Pages(25))
}

func TestPagination_SkipNeverNegative(t *testing.T) {
	p := ParsePagination("9223372036854775807", "9223372036854775807")
	assert.Equal(t, int64(MaxPage-1)*MaxLimit, p.Skip())
	assert.Positive(t, p.Skip())

	huge := Pagination{Page: math.MaxInt, Limit: math.MaxInt}.Normalize()
	assert.Positive(t, huge.Skip())
}

func TestNewPage_NilItemsBecomeEmpty(t *testing.T) {
	page := NewPage[*Property](nil, 0, Pagination{Page: 1, Limit: 10})
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Pages)
}
