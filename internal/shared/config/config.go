package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ServerConfig 服务端配置
type ServerConfig struct {
	App struct {
		Name         string        `yaml:"name"`
		Mode         string        `yaml:"mode"`
		Listen       string        `yaml:"listen"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		IdleTimeout  time.Duration `yaml:"idle_timeout"`
		StaticDir    string        `yaml:"static_dir"`
		IsDocker     bool          `yaml:"is_docker"`
	} `yaml:"app"`

	Database struct {
		Type string `yaml:"type"`

		MySQL struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			User     string `yaml:"user"`
			Password string `yaml:"password"`
			Name     string `yaml:"name"`
			MaxConns int    `yaml:"max_conns"`
		} `yaml:"mysql"`

		Postgres struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			User     string `yaml:"user"`
			Password string `yaml:"password"`
			Name     string `yaml:"name"`
			MaxConns int    `yaml:"max_conns"`
		} `yaml:"postgres"`

		SQLite struct {
			Path        string `yaml:"path"`
			BackupDir   string `yaml:"backup_dir"`
			BackupEvery string `yaml:"backup_every"` // cron表达式，空则不启用定时快照
		} `yaml:"sqlite"`
	} `yaml:"database"`

	Auth struct {
		JWTSecret   string        `yaml:"jwt_secret"`
		TokenExpiry time.Duration `yaml:"token_expiry"`
	} `yaml:"auth"`

	Log struct {
		Level string `yaml:"level"`
		Dir   string `yaml:"dir"`
	} `yaml:"log"`
}

// findConfigFile 智能查找配置文件
func findConfigFile(filename string) (string, error) {
	candidates := []string{
		filename,
		filepath.Join("configs", filename),
		filepath.Join("..", filename),
		filepath.Join("..", "configs", filename),
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			abs, err := filepath.Abs(candidate)
			if err != nil {
				return candidate, nil
			}
			return abs, nil
		}
	}

	return "", fmt.Errorf("配置文件 %s 未找到，已搜索路径: %v", filename, candidates)
}

// LoadServerConfig 加载服务端配置：默认值 -> 配置文件 -> 环境变量
func LoadServerConfig(configPath string) (*ServerConfig, error) {
	// 加载 .env（不存在则忽略）
	_ = godotenv.Load()

	config := &ServerConfig{}

	// 设置默认值
	config.App.Name = "Tech Site API"
	config.App.Mode = "release"
	config.App.Listen = ":3001"
	config.App.ReadTimeout = 15 * time.Second
	config.App.WriteTimeout = 15 * time.Second
	config.App.IdleTimeout = 60 * time.Second
	config.App.StaticDir = "dist"
	config.Database.Type = "sqlite"
	config.Database.MySQL.Host = "localhost"
	config.Database.MySQL.Port = 3306
	config.Database.MySQL.User = "root"
	config.Database.MySQL.Name = "tech_company"
	config.Database.MySQL.MaxConns = 10
	config.Database.Postgres.Host = "localhost"
	config.Database.Postgres.Port = 5432
	config.Database.Postgres.User = "postgres"
	config.Database.Postgres.Name = "tech_company"
	config.Database.Postgres.MaxConns = 10
	config.Database.SQLite.Path = "data/database.db"
	config.Database.SQLite.BackupDir = "data/backups"
	config.Auth.TokenExpiry = 24 * time.Hour
	config.Log.Level = "info"
	config.Log.Dir = "logs"

	if configPath != "" {
		if actualPath, err := findConfigFile(configPath); err == nil {
			data, err := os.ReadFile(actualPath)
			if err != nil {
				return nil, fmt.Errorf("读取配置文件失败: %w", err)
			}
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("解析配置文件失败: %w", err)
			}
		}
	}

	// 环境变量覆盖（与原有部署保持一致的变量名）
	applyEnvOverrides(config)

	// 验证必需配置
	if config.Auth.JWTSecret == "" {
		if config.App.Mode == "debug" || config.App.Mode == "test" {
			config.Auth.JWTSecret = "dev-secret-key"
		} else {
			return nil, fmt.Errorf("auth.jwt_secret 不能为空，请通过配置文件或 JWT_SECRET 环境变量设置")
		}
	}

	return config, nil
}

// applyEnvOverrides 环境变量覆盖配置
func applyEnvOverrides(config *ServerConfig) {
	if v := os.Getenv("PORT"); v != "" {
		config.App.Listen = ":" + v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		config.App.Mode = v
	}
	if v := os.Getenv("IS_DOCKER"); v != "" {
		config.App.IsDocker = v == "1" || v == "true"
	}

	if v := os.Getenv("DB_TYPE"); v != "" {
		config.Database.Type = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		config.Database.MySQL.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Database.MySQL.Port = port
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		config.Database.MySQL.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		config.Database.MySQL.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		config.Database.MySQL.Name = v
	}

	if v := os.Getenv("POSTGRES_HOST"); v != "" {
		config.Database.Postgres.Host = v
	}
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Database.Postgres.Port = port
		}
	}
	if v := os.Getenv("POSTGRES_USER"); v != "" {
		config.Database.Postgres.User = v
	}
	if v := os.Getenv("POSTGRES_PASSWORD"); v != "" {
		config.Database.Postgres.Password = v
	}
	if v := os.Getenv("POSTGRES_DB"); v != "" {
		config.Database.Postgres.Name = v
	}

	if v := os.Getenv("SQLITE_PATH"); v != "" {
		config.Database.SQLite.Path = v
	}

	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
}
