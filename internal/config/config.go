package config

import "github.com/spf13/viper"

type Config struct {
	ServerPort      string `mapstructure:"SERVER_PORT"`
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	GeminiAPIKey    string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel     string `mapstructure:"GEMINI_MODEL"`
	GeminiBaseURL   string `mapstructure:"GEMINI_BASE_URL"`
	TrackingEnabled bool   `mapstructure:"TRACKING_ENABLED"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
	viper.SetDefault("TRACKING_ENABLED", true)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
