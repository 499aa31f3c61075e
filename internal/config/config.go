// Package config loads service configuration from the environment (and an
// optional config.yaml). Provider credentials live here and are handed to
// the adapters at construction, so "not configured" is an explicit input
// rather than ambient state read at call time.
package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	CacheEnabled  bool          `mapstructure:"CACHE_ENABLED"`
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`

	SearchTimeout time.Duration `mapstructure:"SEARCH_TIMEOUT"`

	AmadeusClientID     string `mapstructure:"AMADEUS_CLIENT_ID"`
	AmadeusClientSecret string `mapstructure:"AMADEUS_CLIENT_SECRET"`
	AmadeusBaseURL      string `mapstructure:"AMADEUS_BASE_URL"`
	RapidAPIKey         string `mapstructure:"RAPIDAPI_KEY"`
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func Load() (Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("CACHE_ENABLED", true)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL", "5m")
	viper.SetDefault("SEARCH_TIMEOUT", "20s")
	viper.SetDefault("AMADEUS_CLIENT_ID", "")
	viper.SetDefault("AMADEUS_CLIENT_SECRET", "")
	viper.SetDefault("AMADEUS_BASE_URL", "")
	viper.SetDefault("RAPIDAPI_KEY", "")

	// A missing config file is fine; the environment covers everything.
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
