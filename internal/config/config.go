package config

import (
	"os"
	"time"
)

type Config struct {
	HTTPAddr  string
	MySQLDSN  string
	RedisAddr string
	JWTSecret string
	TokenTTL  time.Duration
}

// Load reads configuration from the environment, falling back to local
// development defaults.
func Load() Config {
	return Config{
		HTTPAddr:  getenv("HTTP_ADDR", ":8080"),
		MySQLDSN:  getenv("MYSQL_DSN", "root:root@tcp(localhost:3306)/trichyfresh?parseTime=true"),
		RedisAddr: getenv("REDIS_ADDR", "localhost:6379"),
		JWTSecret: getenv("JWT_SECRET", "secretkey"),
		TokenTTL:  time.Hour,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
