package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Ramsey-B/babyshop/db"
	"github.com/Ramsey-B/babyshop/pkg/database"
	"github.com/Ramsey-B/babyshop/pkg/events"
	"github.com/Ramsey-B/babyshop/pkg/tracing"
)

// Config is read from the environment. Every key maps to the upper-cased
// environment variable of the same name, e.g. db_driver -> DB_DRIVER.
type Config struct {
	AppName                       string        `mapstructure:"app_name"`
	Version                       string        `mapstructure:"app_version"`
	Port                          int           `mapstructure:"port"`
	LogLevel                      string        `mapstructure:"log_level"`
	PrettyLogs                    bool          `mapstructure:"pretty_logs"`
	HttpServerWriteTimeoutSeconds int           `mapstructure:"http_server_write_timeout_seconds"`
	HttpServerReadTimeoutSeconds  int           `mapstructure:"http_server_read_timeout_seconds"`
	HttpServerIdleTimeoutSeconds  int           `mapstructure:"http_server_idle_timeout_seconds"`
	ShutdownTimeout               time.Duration `mapstructure:"http_server_shutdown_timeout"`
	AllowOrigins                  []string      `mapstructure:"http_server_allow_origins"`
	StartupMaxAttempts            int           `mapstructure:"startup_max_attempts"`

	DatabaseDriver                string        `mapstructure:"db_driver"`
	DatabaseHost                  string        `mapstructure:"db_host"`
	DatabasePort                  string        `mapstructure:"db_port"`
	DatabaseUserName              string        `mapstructure:"db_user_name"`
	DatabasePassword              string        `mapstructure:"db_password"`
	DatabaseName                  string        `mapstructure:"db_name"`
	DatabaseSSLMode               string        `mapstructure:"db_ssl_mode"`
	DatabasePath                  string        `mapstructure:"db_path"`
	DatabaseMaxOpenConns          int           `mapstructure:"db_max_open_conns"`
	DatabaseMaxIdleConns          int           `mapstructure:"db_max_idle_conns"`
	DatabaseConnMaxLifetime       time.Duration `mapstructure:"db_conn_max_lifetime"`
	DatabaseMigrationFolderPath   string        `mapstructure:"db_migration_folder_path"`
	DatabaseMigrationVersion      uint          `mapstructure:"db_migration_version"`
	DatabaseMigrationForce        int           `mapstructure:"db_migration_force"`
	DatabaseMigrationAutoRollback bool          `mapstructure:"db_migration_auto_rollback"`

	AuthEnabled   bool   `mapstructure:"auth_enabled"`
	AuthIssuerURL string `mapstructure:"auth_issuer_url"`
	AuthClientID  string `mapstructure:"auth_client_id"`

	KafkaEnabled      bool          `mapstructure:"kafka_enabled"`
	KafkaBrokers      []string      `mapstructure:"kafka_brokers"`
	KafkaTopic        string        `mapstructure:"kafka_topic"`
	KafkaBatchSize    int           `mapstructure:"kafka_batch_size"`
	KafkaBatchTimeout time.Duration `mapstructure:"kafka_batch_timeout"`
	KafkaRequiredAcks int           `mapstructure:"kafka_required_acks"`
	KafkaCompression  string        `mapstructure:"kafka_compression"`

	TracingEndpoint   string  `mapstructure:"otel_exporter_otlp_endpoint"`
	TracingProtocol   string  `mapstructure:"otel_exporter_otlp_protocol"`
	TracingInsecure   bool    `mapstructure:"otel_exporter_otlp_insecure"`
	TracingSampleRate float64 `mapstructure:"otel_sample_rate"`
}

func defaults() map[string]any {
	return map[string]any{
		"app_name":                          "babyshop-api",
		"app_version":                       "dev",
		"port":                              8080,
		"log_level":                         "info",
		"pretty_logs":                       false,
		"http_server_write_timeout_seconds": 10,
		"http_server_read_timeout_seconds":  10,
		"http_server_idle_timeout_seconds":  60,
		"http_server_shutdown_timeout":      "15s",
		"http_server_allow_origins":         "*",
		"startup_max_attempts":              5,

		"db_driver":                  database.DriverPostgres,
		"db_host":                    "localhost",
		"db_port":                    "5432",
		"db_user_name":               "babyshop",
		"db_password":                "",
		"db_name":                    "babyshop",
		"db_ssl_mode":                "disable",
		"db_path":                    "babyshop.db",
		"db_max_open_conns":          25,
		"db_max_idle_conns":          10,
		"db_conn_max_lifetime":       "5m",
		"db_migration_folder_path":   "",
		"db_migration_version":       0,
		"db_migration_force":         0,
		"db_migration_auto_rollback": true,

		"auth_enabled":    false,
		"auth_issuer_url": "",
		"auth_client_id":  "",

		"kafka_enabled":       false,
		"kafka_brokers":       "localhost:9092",
		"kafka_topic":         events.DefaultTopic,
		"kafka_batch_size":    100,
		"kafka_batch_timeout": "50ms",
		"kafka_required_acks": 1,
		"kafka_compression":   "snappy",

		"otel_exporter_otlp_endpoint": "",
		"otel_exporter_otlp_protocol": "http",
		"otel_exporter_otlp_insecure": true,
		"otel_sample_rate":            1.0,
	}
}

// Load reads the configuration from the environment, after loading the given
// .env files (missing files are ignored; variables already set win).
func Load(envFiles ...string) (*Config, error) {
	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}

	v := viper.New()
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects combinations that cannot start
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case database.DriverPostgres, database.DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DatabaseDriver)
	}
	if c.AuthEnabled && (c.AuthIssuerURL == "" || c.AuthClientID == "") {
		return fmt.Errorf("AUTH_ISSUER_URL and AUTH_CLIENT_ID are required when AUTH_ENABLED is set")
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}
	return nil
}

// Database returns the connection settings
func (c *Config) Database() database.Config {
	return database.Config{
		Driver:          c.DatabaseDriver,
		Host:            c.DatabaseHost,
		Port:            c.DatabasePort,
		User:            c.DatabaseUserName,
		Password:        c.DatabasePassword,
		Name:            c.DatabaseName,
		SSLMode:         c.DatabaseSSLMode,
		Path:            c.DatabasePath,
		MaxOpenConns:    c.DatabaseMaxOpenConns,
		MaxIdleConns:    c.DatabaseMaxIdleConns,
		ConnMaxLifetime: c.DatabaseConnMaxLifetime,
	}
}

// Migration returns the migration settings. An empty folder path uses the
// migrations embedded in the binary.
func (c *Config) Migration() *database.MigrationConfig {
	return &database.MigrationConfig{
		MigrationFolderPath: c.DatabaseMigrationFolderPath,
		Embedded:            db.Migrations,
		Version:             c.DatabaseMigrationVersion,
		Force:               c.DatabaseMigrationForce,
		AutoRollback:        c.DatabaseMigrationAutoRollback,
	}
}

// Producer returns the Kafka producer settings
func (c *Config) Producer() events.ProducerConfig {
	return events.ProducerConfig{
		Brokers:      c.KafkaBrokers,
		Topic:        c.KafkaTopic,
		BatchSize:    c.KafkaBatchSize,
		BatchTimeout: c.KafkaBatchTimeout,
		RequiredAcks: c.KafkaRequiredAcks,
		WriteTimeout: 10 * time.Second,
		Compression:  c.KafkaCompression,
	}
}

// Tracing returns the tracer provider settings
func (c *Config) Tracing() tracing.Config {
	return tracing.Config{
		ServiceName: c.AppName,
		Endpoint:    c.TracingEndpoint,
		Protocol:    c.TracingProtocol,
		Insecure:    c.TracingInsecure,
		SampleRate:  c.TracingSampleRate,
	}
}
