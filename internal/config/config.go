package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	CORS    CORSConfig
	Vision  VisionConfig
	OCR     OCRConfig
	Ledger  LedgerConfig
	Storage StorageConfig
	Queue   QueueConfig
	Alert   AlertConfig
	Auth    AuthConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings for the valet polling routes.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// VisionConfig holds settings for the remote vision extractor.
type VisionConfig struct {
	Provider    string `mapstructure:"provider"` // "gemini" or "none" (local-only)
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// OCRConfig holds settings for the local Tesseract fallback.
type OCRConfig struct {
	Enabled   bool     `mapstructure:"enabled"`
	Languages []string `mapstructure:"languages"`
	MaxDim    int      `mapstructure:"max_dim"`
}

// LedgerConfig selects and configures the parcel ledger backend.
type LedgerConfig struct {
	Backend   string `mapstructure:"backend"` // "xlsx" or "postgres"
	XLSXPath  string `mapstructure:"xlsx_path"`
	SheetName string `mapstructure:"sheet_name"`
	DB        DBConfig
}

// DBConfig holds PostgreSQL connection settings for the postgres ledger.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// StorageConfig selects and configures the image archive backend.
type StorageConfig struct {
	Backend       string `mapstructure:"backend"` // "local" or "s3"
	LocalDir      string `mapstructure:"local_dir"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	S3            S3Config
}

// S3Config holds AWS S3 settings for the image archive.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// QueueConfig holds valet queue and stale-alert worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	StaleAfterMins   int `mapstructure:"stale_after_mins"`
}

// AlertConfig holds manual-review alert delivery settings.
type AlertConfig struct {
	Provider    string `mapstructure:"provider"` // "noop" or "ses"
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	ToAddress   string `mapstructure:"to_address"`
}

// AuthConfig holds the operator PIN and JWT settings.
type AuthConfig struct {
	PINHash     string        `mapstructure:"pin_hash"`
	Secret      string        `mapstructure:"secret"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
	Issuer      string        `mapstructure:"issuer"`
}

// Load reads configuration from environment variables with the
// PARCELVISION_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PARCELVISION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":5002")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults: the valet browser script origin plus localhost dev
	v.SetDefault("cors.allowed_origins", "https://my.1valetbas.com,http://localhost:3000,http://127.0.0.1:3000")

	// Vision defaults
	v.SetDefault("vision.provider", "gemini")
	v.SetDefault("vision.api_key", "")
	v.SetDefault("vision.model", "gemini-2.5-flash-lite")
	v.SetDefault("vision.timeout_secs", 30)

	// OCR defaults
	v.SetDefault("ocr.enabled", true)
	v.SetDefault("ocr.languages", "eng")
	v.SetDefault("ocr.max_dim", 1600)

	// Ledger defaults
	v.SetDefault("ledger.backend", "xlsx")
	v.SetDefault("ledger.xlsx_path", "data/packages.xlsx")
	v.SetDefault("ledger.sheet_name", "PACKAGES")
	v.SetDefault("ledger.db.host", "localhost")
	v.SetDefault("ledger.db.port", 5432)
	v.SetDefault("ledger.db.user", "parcelvision")
	v.SetDefault("ledger.db.password", "parcelvision_secret")
	v.SetDefault("ledger.db.name", "parcelvision_db")
	v.SetDefault("ledger.db.sslmode", "disable")
	v.SetDefault("ledger.db.max_open", 25)
	v.SetDefault("ledger.db.max_idle", 10)

	// Storage defaults
	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.local_dir", "uploads")
	v.SetDefault("storage.max_file_size_mb", 20)
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.bucket", "parcelvision-uploads")
	v.SetDefault("storage.s3.endpoint", "")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 60)
	v.SetDefault("queue.stale_after_mins", 30)

	// Alert defaults
	v.SetDefault("alert.provider", "noop")
	v.SetDefault("alert.region", "us-east-1")
	v.SetDefault("alert.from_address", "noreply@parcelvision.local")
	v.SetDefault("alert.from_name", "ParcelVision")
	v.SetDefault("alert.to_address", "frontdesk@parcelvision.local")

	// Auth defaults
	v.SetDefault("auth.pin_hash", "")
	v.SetDefault("auth.secret", "change-me-in-production")
	v.SetDefault("auth.token_expiry", "12h")
	v.SetDefault("auth.issuer", "parcelvision")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "PARCELVISION_SERVER_PORT",
		"server.read_timeout":      "PARCELVISION_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "PARCELVISION_SERVER_WRITE_TIMEOUT",
		"server.environment":       "PARCELVISION_SERVER_ENVIRONMENT",
		"log.level":                "PARCELVISION_LOG_LEVEL",
		"log.format":               "PARCELVISION_LOG_FORMAT",
		"cors.allowed_origins":     "PARCELVISION_CORS_ALLOWED_ORIGINS",
		"vision.provider":          "PARCELVISION_VISION_PROVIDER",
		"vision.api_key":           "PARCELVISION_VISION_API_KEY",
		"vision.model":             "PARCELVISION_VISION_MODEL",
		"vision.timeout_secs":      "PARCELVISION_VISION_TIMEOUT_SECS",
		"ocr.enabled":              "PARCELVISION_OCR_ENABLED",
		"ocr.languages":            "PARCELVISION_OCR_LANGUAGES",
		"ocr.max_dim":              "PARCELVISION_OCR_MAX_DIM",
		"ledger.backend":           "PARCELVISION_LEDGER_BACKEND",
		"ledger.xlsx_path":         "PARCELVISION_LEDGER_XLSX_PATH",
		"ledger.sheet_name":        "PARCELVISION_LEDGER_SHEET_NAME",
		"ledger.db.host":           "PARCELVISION_LEDGER_DB_HOST",
		"ledger.db.port":           "PARCELVISION_LEDGER_DB_PORT",
		"ledger.db.user":           "PARCELVISION_LEDGER_DB_USER",
		"ledger.db.password":       "PARCELVISION_LEDGER_DB_PASSWORD",
		"ledger.db.name":           "PARCELVISION_LEDGER_DB_NAME",
		"ledger.db.sslmode":        "PARCELVISION_LEDGER_DB_SSLMODE",
		"ledger.db.max_open":       "PARCELVISION_LEDGER_DB_MAX_OPEN",
		"ledger.db.max_idle":       "PARCELVISION_LEDGER_DB_MAX_IDLE",
		"storage.backend":          "PARCELVISION_STORAGE_BACKEND",
		"storage.local_dir":        "PARCELVISION_STORAGE_LOCAL_DIR",
		"storage.max_file_size_mb": "PARCELVISION_STORAGE_MAX_FILE_SIZE_MB",
		"storage.s3.region":        "PARCELVISION_STORAGE_S3_REGION",
		"storage.s3.bucket":        "PARCELVISION_STORAGE_S3_BUCKET",
		"storage.s3.endpoint":      "PARCELVISION_STORAGE_S3_ENDPOINT",
		"storage.s3.access_key":    "PARCELVISION_STORAGE_S3_ACCESS_KEY",
		"storage.s3.secret_key":    "PARCELVISION_STORAGE_S3_SECRET_KEY",
		"queue.poll_interval_secs": "PARCELVISION_QUEUE_POLL_INTERVAL_SECS",
		"queue.stale_after_mins":   "PARCELVISION_QUEUE_STALE_AFTER_MINS",
		"alert.provider":           "PARCELVISION_ALERT_PROVIDER",
		"alert.region":             "PARCELVISION_ALERT_REGION",
		"alert.from_address":       "PARCELVISION_ALERT_FROM_ADDRESS",
		"alert.from_name":          "PARCELVISION_ALERT_FROM_NAME",
		"alert.to_address":         "PARCELVISION_ALERT_TO_ADDRESS",
		"auth.pin_hash":            "PARCELVISION_AUTH_PIN_HASH",
		"auth.secret":              "PARCELVISION_AUTH_SECRET",
		"auth.token_expiry":        "PARCELVISION_AUTH_TOKEN_EXPIRY",
		"auth.issuer":              "PARCELVISION_AUTH_ISSUER",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if
	// PARCELVISION_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PARCELVISION_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitTrimmed(v.GetString("cors.allowed_origins")),
	}
	cfg.Vision = VisionConfig{
		Provider:    v.GetString("vision.provider"),
		APIKey:      v.GetString("vision.api_key"),
		Model:       v.GetString("vision.model"),
		TimeoutSecs: v.GetInt("vision.timeout_secs"),
	}
	cfg.OCR = OCRConfig{
		Enabled:   v.GetBool("ocr.enabled"),
		Languages: splitTrimmed(v.GetString("ocr.languages")),
		MaxDim:    v.GetInt("ocr.max_dim"),
	}
	cfg.Ledger = LedgerConfig{
		Backend:   v.GetString("ledger.backend"),
		XLSXPath:  v.GetString("ledger.xlsx_path"),
		SheetName: v.GetString("ledger.sheet_name"),
		DB: DBConfig{
			Host:     v.GetString("ledger.db.host"),
			Port:     v.GetInt("ledger.db.port"),
			User:     v.GetString("ledger.db.user"),
			Password: v.GetString("ledger.db.password"),
			Name:     v.GetString("ledger.db.name"),
			SSLMode:  v.GetString("ledger.db.sslmode"),
			MaxOpen:  v.GetInt("ledger.db.max_open"),
			MaxIdle:  v.GetInt("ledger.db.max_idle"),
		},
	}
	cfg.Storage = StorageConfig{
		Backend:       v.GetString("storage.backend"),
		LocalDir:      v.GetString("storage.local_dir"),
		MaxFileSizeMB: v.GetInt64("storage.max_file_size_mb"),
		S3: S3Config{
			Region:    v.GetString("storage.s3.region"),
			Bucket:    v.GetString("storage.s3.bucket"),
			Endpoint:  v.GetString("storage.s3.endpoint"),
			AccessKey: v.GetString("storage.s3.access_key"),
			SecretKey: v.GetString("storage.s3.secret_key"),
		},
	}
	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		StaleAfterMins:   v.GetInt("queue.stale_after_mins"),
	}
	cfg.Alert = AlertConfig{
		Provider:    v.GetString("alert.provider"),
		Region:      v.GetString("alert.region"),
		FromAddress: v.GetString("alert.from_address"),
		FromName:    v.GetString("alert.from_name"),
		ToAddress:   v.GetString("alert.to_address"),
	}
	cfg.Auth = AuthConfig{
		PINHash:     v.GetString("auth.pin_hash"),
		Secret:      v.GetString("auth.secret"),
		TokenExpiry: v.GetDuration("auth.token_expiry"),
		Issuer:      v.GetString("auth.issuer"),
	}

	return cfg, nil
}

func splitTrimmed(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
