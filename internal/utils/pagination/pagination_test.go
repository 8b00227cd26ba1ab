package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"defaults", 0, 0, 1, 10},
		{"negative page", -3, 25, 1, 25},
		{"limit clamped", 2, 500, 2, 100},
		{"passthrough", 3, 10, 3, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := Normalize(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int64
		want  Page
	}{
		{
			name: "last page", page: 3, limit: 10, total: 23,
			want: Page{Page: 3, Limit: 10, Total: 23, TotalPages: 3, HasNext: false, HasPrev: true},
		},
		{
			name: "first of many", page: 1, limit: 10, total: 23,
			want: Page{Page: 1, Limit: 10, Total: 23, TotalPages: 3, HasNext: true, HasPrev: false},
		},
		{
			name: "exact multiple", page: 2, limit: 10, total: 20,
			want: Page{Page: 2, Limit: 10, Total: 20, TotalPages: 2, HasNext: false, HasPrev: true},
		},
		{
			name: "empty collection", page: 1, limit: 10, total: 0,
			want: Page{Page: 1, Limit: 10, Total: 0, TotalPages: 0, HasNext: false, HasPrev: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.page, tt.limit, tt.total))
		})
	}
}

func TestSkip(t *testing.T) {
	assert.Equal(t, 0, Skip(1, 10))
	assert.Equal(t, 20, Skip(3, 10))
}
