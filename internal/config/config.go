package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server  Server  `mapstructure:"server"`
	Session Session `mapstructure:"session"`
	Screens Screens `mapstructure:"screens"`
	Logger  Logger  `mapstructure:"logger"`
}

// Server holds the configuration for the trading-bot backend.
type Server struct {
	BaseURL        string  `mapstructure:"base_url"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Session holds the configuration for the local session database.
type Session struct {
	DSN string `mapstructure:"dsn"`
}

// Screens holds the configuration for the screen layer.
type Screens struct {
	// PollInterval is the dashboard state refresh interval in seconds.
	PollInterval int `mapstructure:"poll_interval"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or yaml, json

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("server.base_url", "http://localhost:8000")
	viper.SetDefault("server.rate_limit", 10) // requests per second
	viper.SetDefault("server.rate_limit_burst", 5)
	viper.SetDefault("session.dsn", "session.db")
	viper.SetDefault("screens.poll_interval", 10)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
