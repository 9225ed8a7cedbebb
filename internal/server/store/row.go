package store

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Row 单行结果：列名到值的映射。
// 不同驱动返回的具体类型不一致（int64/float64/string/time.Time），
// 下列取值方法做宽松转换，仓储层据此还原实体字段。
type Row map[string]any

// String 取字符串列，NULL返回空串
func (r Row) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Int64 取整数列
func (r Row) Int64(key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

// Uint 取无符号整数列（自增主键）
func (r Row) Uint(key string) uint {
	return uint(r.Int64(key))
}

// Float64 取浮点列
func (r Row) Float64(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

// Decimal 取定点数列（金额）
func (r Row) Decimal(key string) decimal.Decimal {
	switch v := r[key].(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		return decimal.NewFromFloat(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		return decimal.Zero
	}
}

// 时间列的候选格式：MySQL(parseTime)和Postgres返回time.Time，
// SQLite的DATETIME默认值以文本返回
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02",
}

// Time 取时间列，无法解析时返回零值
func (r Row) Time(key string) time.Time {
	switch v := r[key].(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
		return time.Time{}
	default:
		return time.Time{}
	}
}
