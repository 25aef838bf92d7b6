package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ProjectName   string
	Port          string
	DatabaseURL   string
	RedisAddr     string
	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string
	AdminPassword string
}

// Load reads configuration from the environment. Every value has a default
// except DATABASE_URL, which the caller must check before connecting.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PROJECT_NAME", "blog-api")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("JWT_SECRET", "super-secret-key")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("ADMIN_USERNAME", "")
	v.SetDefault("ADMIN_PASSWORD", "")

	return &Config{
		ProjectName:   v.GetString("PROJECT_NAME"),
		Port:          v.GetString("PORT"),
		DatabaseURL:   v.GetString("DATABASE_URL"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		TokenTTL:      v.GetDuration("TOKEN_TTL"),
		AdminUsername: v.GetString("ADMIN_USERNAME"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
	}
}
