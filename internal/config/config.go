// Package config loads environment-driven settings for the memgram CLI.
// The library itself takes a plain mengram.Config; only the CLI surround
// reads the environment.
package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	APIKey    string        // MENGRAM_API_KEY, required for every command
	BaseURL   string        // MENGRAM_BASE_URL
	UserID    string        // MENGRAM_USER_ID, default scoping identifier
	Timeout   time.Duration // MENGRAM_TIMEOUT, per-request deadline
	ChunkSize int           // MENGRAM_CHUNK_SIZE, import chunk budget in chars
	StatePath string        // MENGRAM_STATE_PATH, resumable import state file
	LogLevel  string        // LOG_LEVEL
}

func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("mengram_base_url", "https://api.mengram.io")
	v.SetDefault("mengram_user_id", "default")
	v.SetDefault("mengram_timeout", "30s")
	v.SetDefault("mengram_chunk_size", 8000)
	v.SetDefault("mengram_state_path", "")
	v.SetDefault("log_level", "info")

	return Config{
		APIKey:    v.GetString("MENGRAM_API_KEY"),
		BaseURL:   v.GetString("MENGRAM_BASE_URL"),
		UserID:    v.GetString("MENGRAM_USER_ID"),
		Timeout:   v.GetDuration("MENGRAM_TIMEOUT"),
		ChunkSize: v.GetInt("MENGRAM_CHUNK_SIZE"),
		StatePath: v.GetString("MENGRAM_STATE_PATH"),
		LogLevel:  v.GetString("LOG_LEVEL"),
	}
}
