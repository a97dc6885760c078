package config

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Source and target reference systems of the reprojection stage.
const (
	SourceCRS = "EPSG:3826"
	TargetCRS = "EPSG:4326"
)

// Config holds all application configuration. Every field has a default so
// the pipeline runs without any environment; variables only override.
type Config struct {
	PassengerCSV string `envconfig:"PASSENGER_CSV" default:"tra_passenger.csv" validate:"required"`
	PointCSV     string `envconfig:"POINT_CSV" default:"tra_point.csv" validate:"required"`

	CSVOutputPath  string `envconfig:"CSV_OUTPUT_PATH" default:"tra_data.csv" validate:"required"`
	JSONOutputPath string `envconfig:"JSON_OUTPUT_PATH" default:"tra_data.json" validate:"required"`
	XLSXOutputPath string `envconfig:"XLSX_OUTPUT_PATH"`
	CSVBOM         bool   `envconfig:"CSV_BOM" default:"false"`

	JoinKey        string `envconfig:"JOIN_KEY" default:"Name" validate:"required"`
	PointField     string `envconfig:"POINT_FIELD" default:"Point" validate:"required"`
	RidershipField string `envconfig:"RIDERSHIP_FIELD" default:"Daily"`
	SortByKey      bool   `envconfig:"SORT_BY_KEY" default:"true"`
	InferNumeric   bool   `envconfig:"INFER_NUMERIC" default:"true"`
	CSVDelimiter   string `envconfig:"CSV_DELIMITER" default:"," validate:"len=1"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	PostgresEnabled  bool          `envconfig:"POSTGRES_ENABLED" default:"false"`
	PostgresHost     string        `envconfig:"POSTGRES_HOST" default:"localhost" validate:"required_if=PostgresEnabled true"`
	PostgresPort     string        `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string        `envconfig:"POSTGRES_USER" default:"tra"`
	PostgresPassword string        `envconfig:"POSTGRES_PASSWORD" default:"tra123"`
	PostgresDB       string        `envconfig:"POSTGRES_DB" default:"tra_db"`
	PostgresSSLMode  string        `envconfig:"POSTGRES_SSLMODE" default:"disable"`
	PostgresTimeout  time.Duration `envconfig:"POSTGRES_TIMEOUT" default:"30s"`
	MaxRetries       int           `envconfig:"MAX_RETRIES" default:"5" validate:"min=1"`
}

// Load reads the .env file, populates a Config from the environment and
// validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv populates and validates a Config from the process environment only.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

// Delimiter returns the configured field separator as a rune.
func (c *Config) Delimiter() rune {
	for _, r := range c.CSVDelimiter {
		return r
	}
	return ','
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}
