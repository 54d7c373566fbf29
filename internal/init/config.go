package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// HTTP server
	ServerAddr string

	// SQLite store
	DBPath        string
	DBBusyTimeout time.Duration
}

var cfg *Config

// Init loads the config using Viper and returns it
func Init() *Config {
	viper.SetDefault("SERVER_ADDR", "127.0.0.1:8001")
	viper.SetDefault("DB_PATH", "social_network.db")
	viper.SetDefault("DB_BUSY_TIMEOUT", "5s")

	// Load env variables
	viper.AutomaticEnv()

	// Optional config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	_ = viper.ReadInConfig() // ignore error if no file

	cfg = &Config{
		ServerAddr:    viper.GetString("SERVER_ADDR"),
		DBPath:        viper.GetString("DB_PATH"),
		DBBusyTimeout: parseDuration(viper.GetString("DB_BUSY_TIMEOUT"), 5*time.Second),
	}

	return cfg
}

func parseDuration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}

// Get returns the loaded config instance
func Get() *Config {
	if cfg == nil {
		return Init()
	}
	return cfg
}
