package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.yaml"

type Config struct {
	Log     Log     `yaml:"log"`
	Storage Storage `yaml:"storage"`
	Chat    Chat    `yaml:"chat"`
}

type Storage struct {
	// Intent database file, relative paths are resolved against the executable directory
	IntentsPath string `yaml:"intents_path" env:"TINYBOT_INTENTS_PATH" example:"intents.json" validate:"required"`
	// Conversation log file
	HistoryPath string `yaml:"history_path" env:"TINYBOT_HISTORY_PATH" example:"history.log" validate:"required"`
}

type Chat struct {
	// Number of log lines shown by /history
	HistoryLines int `yaml:"history_lines" env:"TINYBOT_HISTORY_LINES" example:"20" validate:"gte=1"`
	// Seed for response selection, 0 means seeded from the clock
	RandomSeed uint64 `yaml:"random_seed" env:"TINYBOT_RANDOM_SEED" example:"42"`
}

type Log struct {
	// Minimum level of diagnostic logs written to stderr
	Level string `yaml:"level" env:"TINYBOT_LOG_LEVEL" example:"warn" validate:"oneof=debug info warn error"`
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" env:"TINYBOT_TELEGRAM_TOKEN" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" env:"TINYBOT_TELEGRAM_CHAT_ID" example:"1001234567890" validate:"required_with=Token"`
}

func defaults() Config {
	return Config{
		Log: Log{
			Level: "warn",
		},
		Storage: Storage{
			IntentsPath: "intents.json",
			HistoryPath: "history.log",
		},
		Chat: Chat{
			HistoryLines: 20,
		},
	}
}

// Load builds the config from defaults, the optional YAML file at path,
// an optional .env file and TINYBOT_* environment variables, in that order.
func Load(path string) (*Config, error) {
	result := defaults()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, oops.In("config").With("path", path).Errorf("failed to read config file: %w", err)
	default:
		if err = yaml.Unmarshal(data, &result); err != nil {
			return nil, oops.In("config").With("path", path).Errorf("failed to parse YAML config: %w", err)
		}
	}

	if err = godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, oops.In("config").Errorf("failed to load .env file: %w", err)
	}

	if err = env.Parse(&result); err != nil {
		return nil, oops.In("config").Errorf("failed to parse environment: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err = validate.Struct(result); err != nil {
		return nil, oops.In("config").Errorf("failed to validate config: %w", err)
	}

	baseDir := executableDir()
	result.Storage.IntentsPath = resolve(baseDir, result.Storage.IntentsPath)
	result.Storage.HistoryPath = resolve(baseDir, result.Storage.HistoryPath)

	return &result, nil
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}

	return filepath.Dir(exe)
}

func resolve(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(baseDir, path)
}
