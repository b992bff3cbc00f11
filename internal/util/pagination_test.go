package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		page, size    int
		offset, limit int
	}{
		{name: "defaults", page: 0, size: 0, offset: 0, limit: 10},
		{name: "first page", page: 1, size: 20, offset: 0, limit: 20},
		{name: "third page", page: 3, size: 5, offset: 10, limit: 5},
		{name: "size capped", page: 1, size: 500, offset: 0, limit: 10},
		{name: "negative page", page: -2, size: 10, offset: 0, limit: 10},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			offset, limit := Window(tt.page, tt.size)
			assert.Equal(t, tt.offset, offset)
			assert.Equal(t, tt.limit, limit)
		})
	}
}

func TestNewPaginationResponse(t *testing.T) {
	t.Parallel()

	res := NewPaginationResponse([]int{1, 2, 3}, 23, 2, 10)
	assert.Equal(t, []int{1, 2, 3}, res.Content)
	assert.Equal(t, int64(23), res.Pagination.Total)
	assert.Equal(t, 10, res.Pagination.Limit)
	assert.Equal(t, 2, res.Pagination.Page)
	assert.Equal(t, 3, res.Pagination.Pages)
}
