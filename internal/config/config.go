// /internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

type Config struct {
	AIProvider    string  `env:"AI_PROVIDER" envDefault:"mock"`
	AIModel       string  `env:"AI_MODEL" envDefault:"openai"`
	AIBaseURL     string  `env:"AI_BASE_URL" envDefault:"https://text.pollinations.ai/openai"`
	AIAPIKey      string  `env:"AI_API_KEY"`
	AIMaxTokens   int     `env:"AI_MAX_TOKENS" envDefault:"1000"`
	AITemperature float64 `env:"AI_TEMPERATURE" envDefault:"0.7"`

	DataDir     string `env:"DATA_DIR" envDefault:"data"`
	StoragePath string `env:"STORAGE_PATH" envDefault:"middleware_memory.xlsx"`
	LogFile     string `env:"LOG_FILE" envDefault:"middlemind.log"`

	MockSeed int64 `env:"MOCK_SEED" envDefault:"0"`
	Debug    bool  `env:"DEBUG" envDefault:"false"`
}

func New() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	// Bare filenames land in the data dir; explicit paths are kept as-is.
	if filepath.Dir(cfg.StoragePath) == "." {
		cfg.StoragePath = filepath.Join(cfg.DataDir, cfg.StoragePath)
	}
	if filepath.Dir(cfg.LogFile) == "." {
		cfg.LogFile = filepath.Join(cfg.DataDir, cfg.LogFile)
	}

	return &cfg, nil
}
