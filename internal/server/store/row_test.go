package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRowLooseConversions(t *testing.T) {
	row := Row{
		"name":   "产品",
		"id":     int64(42),
		"price":  "1999.90",
		"rate":   float64(0.5),
		"absent": nil,
	}

	assert.Equal(t, "产品", row.String("name"))
	assert.Equal(t, "42", row.String("id"), "整数列应可按字符串取出")
	assert.Equal(t, "", row.String("absent"), "NULL应返回空串")
	assert.Equal(t, "", row.String("missing"), "不存在的列应返回空串")

	assert.Equal(t, int64(42), row.Int64("id"))
	assert.Equal(t, uint(42), row.Uint("id"))
	assert.Equal(t, int64(0), row.Int64("missing"))

	assert.Equal(t, 0.5, row.Float64("rate"))

	want := decimal.RequireFromString("1999.90")
	assert.True(t, want.Equal(row.Decimal("price")), "金额文本应精确解析")
	assert.True(t, decimal.Zero.Equal(row.Decimal("missing")))
}

func TestRowTimeParsing(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	// 驱动直接返回 time.Time
	assert.Equal(t, now, Row{"t": now}.Time("t"))

	// SQLite的DATETIME默认值为文本
	parsed := Row{"t": "2025-06-01 12:30:00"}.Time("t")
	assert.Equal(t, now, parsed)

	parsed = Row{"t": "2025-06-01T12:30:00Z"}.Time("t")
	assert.Equal(t, now, parsed)

	assert.True(t, Row{"t": "乱码"}.Time("t").IsZero(), "无法解析时应返回零值")
	assert.True(t, Row{}.Time("missing").IsZero())
}
