package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"dating-backend/internal/models"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Matcher MatcherConfig `yaml:"matcher"`
	Dates   DatesConfig   `yaml:"dates"`
	Redis   RedisConfig   `yaml:"redis"`
	JWT     JWTConfig     `yaml:"jwt"`
	AWS     AWSConfig     `yaml:"aws"`
	APNS    APNSConfig    `yaml:"apns"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"` // console or json
}

// StorageConfig selects and configures the persistent store
type StorageConfig struct {
	Driver   string         `yaml:"driver" env:"STORAGE_DRIVER"`
	Postgres DatabaseConfig `yaml:"postgres"`
	Mongo    MongoConfig    `yaml:"mongo"`
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE"`
}

// MongoConfig holds MongoDB configuration
type MongoConfig struct {
	URI      string `yaml:"uri" env:"MONGO_URI"`
	Database string `yaml:"database" env:"MONGO_DATABASE"`
}

// MatcherConfig holds matching engine configuration
type MatcherConfig struct {
	Interval          time.Duration `yaml:"interval" env:"MATCHER_INTERVAL"`
	PairsPerCycle     int           `yaml:"pairs_per_cycle" env:"MATCHER_PAIRS_PER_CYCLE"`
	SkipExistingPairs bool          `yaml:"skip_existing_pairs" env:"MATCHER_SKIP_EXISTING_PAIRS"`
	LockTTL           time.Duration `yaml:"lock_ttl" env:"MATCHER_LOCK_TTL"`
}

// DatesConfig holds suggestion lifecycle configuration
type DatesConfig struct {
	TransitionPolicy string `yaml:"transition_policy" env:"DATES_TRANSITION_POLICY"`
}

// RedisConfig holds Redis configuration. An empty Addr disables the matcher lock.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET"`
	TTL    time.Duration `yaml:"ttl" env:"JWT_TTL"`
}

// AWSConfig holds AWS configuration. An empty S3Bucket disables photo uploads.
type AWSConfig struct {
	Region     string        `yaml:"region" env:"AWS_REGION"`
	S3Bucket   string        `yaml:"s3_bucket" env:"AWS_S3_BUCKET"`
	AccessKey  string        `yaml:"access_key" env:"AWS_ACCESS_KEY_ID"`
	SecretKey  string        `yaml:"secret_key" env:"AWS_SECRET_ACCESS_KEY"`
	Endpoint   string        `yaml:"endpoint" env:"AWS_S3_ENDPOINT"`     // S3-compatible storage
	PublicURL  string        `yaml:"public_url" env:"AWS_S3_PUBLIC_URL"` // base for stored photo URLs
	PresignTTL time.Duration `yaml:"presign_ttl" env:"AWS_PRESIGN_TTL"`
}

// APNSConfig holds Apple push configuration. An empty KeyFile disables push.
type APNSConfig struct {
	KeyFile    string `yaml:"key_file" env:"APNS_KEY_FILE"`
	KeyID      string `yaml:"key_id" env:"APNS_KEY_ID"`
	TeamID     string `yaml:"team_id" env:"APNS_TEAM_ID"`
	Topic      string `yaml:"topic" env:"APNS_TOPIC"`
	Production bool   `yaml:"production" env:"APNS_PRODUCTION"`
}

// Load reads configuration from a YAML file, applies environment overrides
// and defaults, and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverMemory
	}
	if c.Storage.Postgres.Port == 0 {
		c.Storage.Postgres.Port = 5432
	}
	if c.Storage.Postgres.SSLMode == "" {
		c.Storage.Postgres.SSLMode = "disable"
	}
	if c.Storage.Mongo.Database == "" {
		c.Storage.Mongo.Database = "dating"
	}
	if c.Matcher.Interval == 0 {
		c.Matcher.Interval = time.Hour
	}
	if c.Matcher.PairsPerCycle == 0 {
		c.Matcher.PairsPerCycle = 1
	}
	if c.Matcher.LockTTL == 0 {
		c.Matcher.LockTTL = 5 * time.Minute
	}
	if c.Dates.TransitionPolicy == "" {
		c.Dates.TransitionPolicy = string(models.PolicyIdempotent)
	}
	if c.JWT.TTL == 0 {
		c.JWT.TTL = 30 * 24 * time.Hour
	}
	if c.AWS.Region == "" {
		c.AWS.Region = "us-east-1"
	}
	if c.AWS.PresignTTL == 0 {
		c.AWS.PresignTTL = 5 * time.Minute
	}
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Storage.Postgres.Host == "" {
			errs = append(errs, fmt.Errorf("database host is required"))
		}
		if c.Storage.Postgres.User == "" {
			errs = append(errs, fmt.Errorf("database user is required"))
		}
		if c.Storage.Postgres.DBName == "" {
			errs = append(errs, fmt.Errorf("database name is required"))
		}
	case DriverMongo:
		if c.Storage.Mongo.URI == "" {
			errs = append(errs, fmt.Errorf("mongo uri is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}

	if c.Matcher.Interval < 0 {
		errs = append(errs, fmt.Errorf("matcher interval must be positive"))
	}
	if c.Matcher.PairsPerCycle < 0 {
		errs = append(errs, fmt.Errorf("matcher pairs_per_cycle must be positive"))
	}
	if _, err := models.ParseTransitionPolicy(c.Dates.TransitionPolicy); err != nil {
		errs = append(errs, err)
	}
	if len(c.JWT.Secret) < 32 {
		errs = append(errs, fmt.Errorf("JWT secret must be at least 32 characters"))
	}
	if c.APNS.KeyFile != "" && (c.APNS.KeyID == "" || c.APNS.TeamID == "" || c.APNS.Topic == "") {
		errs = append(errs, fmt.Errorf("apns key_id, team_id and topic are required with key_file"))
	}

	return errors.Join(errs...)
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Addr returns the listen address of the HTTP server
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
