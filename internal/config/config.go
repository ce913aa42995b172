package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates every setting for the service.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Lexicon LexiconConfig
	Chat    ChatConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		Storage: StorageConfig{
			Path: getEnvOrDefault("SOLACE_DB_PATH", "solace.db"),
		},
		Lexicon: LexiconConfig{
			Path: strings.TrimSpace(os.Getenv("SOLACE_LEXICON_PATH")),
		},
		Chat: chat,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// StorageConfig locates the SQLite mood database.
type StorageConfig struct {
	Path string
}

// LexiconConfig optionally points at an operator-supplied lexicon file; empty
// means the compiled-in tables.
type LexiconConfig struct {
	Path string
}

// ChatConfig holds dialogue-engine settings.
type ChatConfig struct {
	// MoodLimit caps how many mood points the read-back returns.
	MoodLimit int
}

func loadChatConfig() (ChatConfig, error) {
	moodLimit := 20
	if override, err := parseOptionalIntEnv("SOLACE_MOOD_LIMIT"); err != nil {
		return ChatConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return ChatConfig{}, fmt.Errorf("SOLACE_MOOD_LIMIT must be positive, got %d", *override)
		}
		moodLimit = *override
	}

	return ChatConfig{MoodLimit: moodLimit}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
