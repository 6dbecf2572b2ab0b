package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 20, 0, 20},
		{"second page", 2, 20, 20, 20},
		{"custom size", 3, 10, 20, 10},
		{"zero page falls back", 0, 10, 0, 10},
		{"zero size falls back", 1, 0, 0, DefaultPageSize},
		{"oversize falls back", 1, 500, 0, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 20)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 20, info.PageSize)
	assert.Equal(t, int64(45), info.TotalItems)

	empty := NewPaginationInfo(0, 1, 20)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Equal(t, int64(0), empty.TotalItems)

	// Requesting past the end clamps to the last page.
	clamped := NewPaginationInfo(10, 9, 20)
	assert.Equal(t, 1, clamped.CurrentPage)
}
