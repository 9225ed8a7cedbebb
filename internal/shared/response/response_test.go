package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name      string
		page      int
		limit     int
		total     int64
		wantPages int
	}{
		{"整除", 1, 10, 30, 3},
		{"有余数", 2, 10, 25, 3},
		{"不足一页", 1, 10, 5, 1},
		{"空结果", 1, 10, 0, 0},
		{"limit为零", 1, 0, 10, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.page, tc.limit, tc.total)
			assert.Equal(t, tc.wantPages, p.TotalPages)
			assert.Equal(t, tc.page, p.Page)
			assert.Equal(t, tc.total, p.Total)
		})
	}
}
