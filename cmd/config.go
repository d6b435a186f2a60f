package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"printfloor"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	StorefrontURL       string        `env:"STOREFRONT_URL,required"`
	DesignToolURL       string        `env:"DESIGN_TOOL_URL,required"`
	MarketingURL        string        `env:"MARKETING_URL,required"`
	CollaboratorTimeout time.Duration `env:"COLLABORATOR_TIMEOUT" envDefault:"10s"`

	InkWarningThreshold int           `env:"INK_WARNING_THRESHOLD" envDefault:"15"`
	BoardPurgeWindow    time.Duration `env:"BOARD_PURGE_WINDOW" envDefault:"24h"`
	StorageSlots        []string      `env:"STORAGE_SLOTS" envSeparator:"," envDefault:"A1,A2,A3,B1,B2,B3"`
	EventBufferSize     int           `env:"EVENT_BUFFER_SIZE" envDefault:"64"`

	DelayScanSchedule  string `env:"DELAY_SCAN_SCHEDULE" envDefault:"0 * * * * *"`
	QueueDepthSchedule string `env:"QUEUE_DEPTH_SCHEDULE" envDefault:"*/15 * * * * *"`

	OTelEndpoint string `env:"OTEL_ENDPOINT"`
	ServiceName  string `env:"SERVICE_NAME" envDefault:"printfloor"`
}

// LoadConfig reads envFile into the process environment, when it exists, and
// decodes the environment into a Config. Variables already set win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DSN is the postgres connection string for the configured database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
