package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Token
	SecretKey string
	JWTExpire time.Duration

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Server
	ServerPort string
	AppEnv     string

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.SecretKey = os.Getenv("SECRET_KEY")
	if cfg.SecretKey == "" {
		missing = append(missing, "SECRET_KEY")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.JWTExpire = time.Duration(getEnvInt("JWT_EXPIRE_HOURS", 24)) * time.Hour
	cfg.DBHost = getEnvString("DB_HOST", "localhost")
	cfg.DBPort = getEnvString("DB_PORT", "5432")
	cfg.DBUser = getEnvString("DB_USER", "ecofinds")
	cfg.DBPassword = getEnvString("DB_PASSWORD", "")
	cfg.DBName = getEnvString("DB_NAME", "ecofinds")
	cfg.DBSSLMode = getEnvString("DB_SSLMODE", "disable")
	cfg.ServerPort = getEnvString("PORT", "8080")
	cfg.AppEnv = getEnvString("APP_ENV", "development")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

// DatabaseURL はlib/pq用のPostgres接続URLを組み立てる。
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   c.DBHost + ":" + c.DBPort,
		Path:   "/" + c.DBName,
	}
	if c.DBPassword != "" {
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	} else {
		u.User = url.User(c.DBUser)
	}
	q := url.Values{}
	q.Set("sslmode", c.DBSSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// IsProduction は本番モードで動作しているかを返す。
// 本番モードではエラーレスポンスのdetailを抑制する。
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}
