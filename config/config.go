// Package config loads server configuration from the environment.
//
// Precedence, lowest to highest: defaults set here, a .env file if one is
// present, then real environment variables. Everything has a default - the
// server starts with no configuration at all.
package config

import (
	"github.com/spf13/viper"
)

// Config holds the full server configuration.
//
// ENV equivalent:
//
//	SERVER_PORT=8080
//	DB_PATH=leave.db
//	LOG_LEVEL=info
//	LOG_PRETTY=false
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// DBConfig holds the sqlite database location. Use ":memory:" for an
// in-memory database.
type DBConfig struct {
	Path string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load reads configuration from the environment with defaults applied.
func Load() Config {
	v := viper.New()
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DB_PATH", "leave.db")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // .env is optional
	v.AutomaticEnv()

	return Config{
		Server: ServerConfig{Port: v.GetString("SERVER_PORT")},
		DB:     DBConfig{Path: v.GetString("DB_PATH")},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Pretty: v.GetBool("LOG_PRETTY"),
		},
	}
}
