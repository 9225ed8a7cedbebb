package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberPlaceholders(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "无占位符",
			query: `SELECT * FROM products`,
			want:  `SELECT * FROM products`,
		},
		{
			name:  "多个占位符按序编号",
			query: `INSERT INTO products (name, category) VALUES (?, ?)`,
			want:  `INSERT INTO products (name, category) VALUES ($1, $2)`,
		},
		{
			name:  "字符串字面量内的问号不改写",
			query: `SELECT * FROM news WHERE title = '什么?' AND author = ?`,
			want:  `SELECT * FROM news WHERE title = '什么?' AND author = $1`,
		},
		{
			name:  "字面量内成对引号转义",
			query: `UPDATE site_config SET company_name = 'It''s ok?' WHERE id = ?`,
			want:  `UPDATE site_config SET company_name = 'It''s ok?' WHERE id = $1`,
		},
		{
			name:  "超过九个占位符",
			query: `INSERT INTO t VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			want:  `INSERT INTO t VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, numberPlaceholders(tc.query))
		})
	}
}
