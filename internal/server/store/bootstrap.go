package store

import (
	"context"
	"fmt"

	"tech-site/internal/shared/utils"
)

// 默认管理员账户（用户名 admin / 密码 admin123，入库前哈希）
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// 各后端的建表语句：自增主键语法、文本类型、时间戳默认值按方言区分
var schemas = map[Kind][]string{
	KindMySQL: {
		`CREATE TABLE IF NOT EXISTS products (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			category VARCHAR(100),
			image_url VARCHAR(255),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS news (
			id INT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			content TEXT,
			author VARCHAR(100),
			image_url VARCHAR(255),
			views INT DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS contact_messages (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(20),
			message TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS admins (
			id INT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(50) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			phone VARCHAR(20) UNIQUE NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS goods (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			price DECIMAL(10, 2) NOT NULL,
			currency VARCHAR(10) NOT NULL DEFAULT 'CNY',
			description TEXT,
			category VARCHAR(100),
			image_url VARCHAR(255),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS site_config (
			id INT AUTO_INCREMENT PRIMARY KEY,
			company_name VARCHAR(255) NOT NULL,
			site_url VARCHAR(255) NOT NULL,
			icp_number VARCHAR(100),
			police_number VARCHAR(100),
			copyright_info TEXT,
			company_description TEXT,
			seo_keywords TEXT,
			site_title VARCHAR(255) NOT NULL,
			friend_links JSON,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			description TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)`,
	},
	KindPostgres: {
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			category VARCHAR(100),
			image_url VARCHAR(255),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS news (
			id SERIAL PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			content TEXT,
			author VARCHAR(100),
			image_url VARCHAR(255),
			views INT DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS contact_messages (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(20),
			message TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS admins (
			id SERIAL PRIMARY KEY,
			username VARCHAR(50) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			phone VARCHAR(20) UNIQUE NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS goods (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			price DECIMAL(10, 2) NOT NULL,
			currency VARCHAR(10) NOT NULL DEFAULT 'CNY',
			description TEXT,
			category VARCHAR(100),
			image_url VARCHAR(255),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS site_config (
			id SERIAL PRIMARY KEY,
			company_name VARCHAR(255) NOT NULL,
			site_url VARCHAR(255) NOT NULL,
			icp_number VARCHAR(100),
			police_number VARCHAR(100),
			copyright_info TEXT,
			company_description TEXT,
			seo_keywords TEXT,
			site_title VARCHAR(255) NOT NULL,
			friend_links JSON,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			description TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	},
	KindSQLite: {
		`CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT,
			category TEXT,
			image_url TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS news (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			content TEXT,
			author TEXT,
			image_url TEXT,
			views INTEGER DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS contact_messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT,
			message TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS admins (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			phone TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS goods (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			price REAL NOT NULL,
			currency TEXT NOT NULL DEFAULT 'CNY',
			description TEXT,
			category TEXT,
			image_url TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS site_config (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company_name TEXT NOT NULL,
			site_url TEXT NOT NULL,
			icp_number TEXT,
			police_number TEXT,
			copyright_info TEXT,
			company_description TEXT,
			seo_keywords TEXT,
			site_title TEXT NOT NULL,
			friend_links TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	},
}

// 默认管理员插入语句：唯一约束兜底，重复执行不产生第二行
var adminInsert = map[Kind]string{
	KindMySQL:    `INSERT IGNORE INTO admins (username, password) VALUES (?, ?)`,
	KindPostgres: `INSERT INTO admins (username, password) VALUES (?, ?) ON CONFLICT (username) DO NOTHING`,
	KindSQLite:   `INSERT OR IGNORE INTO admins (username, password) VALUES (?, ?)`,
}

// Bootstrap 幂等地建立全部表结构并写入默认数据，
// 服务启动和独立维护入口都可以重复调用。
func Bootstrap(ctx context.Context, st Executor, kind Kind) error {
	stmts, ok := schemas[kind]
	if !ok {
		return fmt.Errorf("不支持的数据库类型: %q", kind)
	}

	for _, stmt := range stmts {
		if _, err := st.Execute(ctx, stmt); err != nil {
			return fmt.Errorf("建表失败: %w", err)
		}
	}

	if err := initDefaultAdmin(ctx, st, kind); err != nil {
		return fmt.Errorf("初始化默认管理员失败: %w", err)
	}
	if err := initDefaultSiteConfig(ctx, st); err != nil {
		return fmt.Errorf("初始化默认网站配置失败: %w", err)
	}
	return nil
}

// initDefaultAdmin 创建默认管理员，已存在则跳过
func initDefaultAdmin(ctx context.Context, st Executor, kind Kind) error {
	hashed, err := utils.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("密码哈希失败: %w", err)
	}

	_, err = st.Execute(ctx, adminInsert[kind], DefaultAdminUsername, hashed)
	return err
}

// initDefaultSiteConfig 单例表没有唯一约束可依赖，用存在性检查保证幂等
func initDefaultSiteConfig(ctx context.Context, st Executor) error {
	res, err := st.Execute(ctx, `SELECT COUNT(*) AS total FROM site_config`)
	if err != nil {
		return err
	}
	if len(res.Rows) > 0 && res.Rows[0].Int64("total") > 0 {
		return nil
	}

	_, err = st.Execute(ctx,
		`INSERT INTO site_config (company_name, site_url, site_title) VALUES (?, ?, ?)`,
		"默认公司名称", "https://www.example.com", "默认网站标题")
	return err
}
