package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Config holds every setting the service reads at startup.
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	ServerPort  string `mapstructure:"SERVER_PORT"`

	// Database
	DBPath string `mapstructure:"DB_PATH"`

	// Attendance rules
	Timezone         string        `mapstructure:"TIMEZONE"`
	ActivityDuration time.Duration `mapstructure:"ACTIVITY_DURATION"`

	// Sessions
	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	SessionTTL    time.Duration `mapstructure:"SESSION_TTL"`
	AdminPassword string        `mapstructure:"ADMIN_PASSWORD"`

	// Redis is optional; sessions stay in memory when RedisHost is empty.
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	StaticDir string `mapstructure:"STATIC_DIR"`
	LogDir    string `mapstructure:"LOG_DIR"`
}

var defaults = map[string]any{
	"ENVIRONMENT":       "development",
	"SERVER_PORT":       "3000",
	"DB_PATH":           "attendance.db",
	"TIMEZONE":          "America/Sao_Paulo",
	"ACTIVITY_DURATION": "75m",
	"JWT_SECRET":        "",
	"SESSION_TTL":       "12h",
	"ADMIN_PASSWORD":    "",
	"REDIS_HOST":        "",
	"REDIS_PORT":        "6379",
	"REDIS_PASSWORD":    "",
	"REDIS_DB":          0,
	"STATIC_DIR":        "public",
	"LOG_DIR":           "logs",
}

// LoadConfig reads an optional .env file under path, then the environment.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		// a missing .env file is fine, the environment is enough
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("decode config: %w", err)
	}
	return config, config.Validate()
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.ActivityDuration <= 0 {
		return fmt.Errorf("ACTIVITY_DURATION must be positive, got %s", c.ActivityDuration)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.IsProduction() && strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required in production")
	}
	return nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Location returns the civil time zone every timestamp is compared in.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return nil, errors.New("TIMEZONE must not be empty")
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// UsesRedis reports whether sessions should be kept in Redis.
func (c *Config) UsesRedis() bool {
	return c.RedisHost != ""
}

// GetRedisConnString returns the host:port address of the Redis server.
func (c *Config) GetRedisConnString() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
