package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.yaml"

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Minio    MinioConfig    `yaml:"minio"`
	Geocoder GeocoderConfig `yaml:"geocoder"`
	Import   ImportConfig   `yaml:"import"`
	Auth     AuthConfig     `yaml:"auth"`
}

type ServerConfig struct {
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type DatabaseConfig struct {
	Host        string `yaml:"host"`
	User        string `yaml:"user"`
	Password    string `yaml:"password"`
	Name        string `yaml:"name"`
	Port        string `yaml:"port"`
	SSLMode     string `yaml:"ssl_mode"`
	MaxRetries  int    `yaml:"max_retries"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

type RedisConfig struct {
	Addr string `yaml:"addr"`
}

type KafkaConfig struct {
	Broker         string        `yaml:"broker"`
	PollInterval   time.Duration `yaml:"poll_interval"`
	LoginInfoTopic string        `yaml:"login_info_topic"`
	LoginURL       string        `yaml:"login_url"`
}

type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type GeocoderConfig struct {
	BaseURL   string        `yaml:"base_url"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
}

// ImportConfig holds the extraction and persistence tunables of the import pipeline.
type ImportConfig struct {
	MaxSectionSpan          int           `yaml:"max_section_span"`
	AddressWindow           int           `yaml:"address_window"`
	PhoneWindow             int           `yaml:"phone_window"`
	EmailWindow             int           `yaml:"email_window"`
	LocationWindow          int           `yaml:"location_window"`
	RetryAttempts           int           `yaml:"retry_attempts"`
	RetryInitialBackoff     time.Duration `yaml:"retry_initial_backoff"`
	DeleteSourceAfterImport bool          `yaml:"delete_source_after_import"`
	MaxUploadBytes          int64         `yaml:"max_upload_bytes"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "3000",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Host:       "localhost",
			Port:       "5432",
			SSLMode:    "disable",
			MaxRetries: 5,
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Kafka: KafkaConfig{
			PollInterval:   3 * time.Second,
			LoginInfoTopic: "customer.login_issued",
		},
		Geocoder: GeocoderConfig{
			BaseURL:   "https://nominatim.openstreetmap.org",
			UserAgent: "basms-contract-import/1.0",
			Timeout:   10 * time.Second,
			CacheTTL:  30 * 24 * time.Hour,
		},
		Import: DefaultImport(),
	}
}

func DefaultImport() ImportConfig {
	return ImportConfig{
		MaxSectionSpan:      5000,
		AddressWindow:       800,
		PhoneWindow:         600,
		EmailWindow:         1000,
		LocationWindow:      3000,
		RetryAttempts:       5,
		RetryInitialBackoff: 100 * time.Millisecond,
		MaxUploadBytes:      20 << 20,
	}
}

// Load reads the YAML file at path on top of the defaults and then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)
	fillImportDefaults(&cfg.Import)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv resolves the path from CONFIG_PATH.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}
	return Load(path)
}

func (c *Config) Validate() error {
	if c.Import.RetryAttempts < 1 {
		return fmt.Errorf("import.retry_attempts must be >= 1, got %d", c.Import.RetryAttempts)
	}
	if c.Import.MaxSectionSpan < 1 {
		return fmt.Errorf("import.max_section_span must be positive")
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Port, "PORT")

	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.SSLMode, "DB_SSLMODE")
	setBool(&cfg.Database.AutoMigrate, "DB_AUTO_MIGRATE")

	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Kafka.Broker, "KAFKA_BROKER")
	setString(&cfg.Kafka.LoginURL, "LOGIN_URL")

	setString(&cfg.Minio.Endpoint, "MINIO_ENDPOINT")
	setString(&cfg.Minio.AccessKey, "MINIO_ACCESS_KEY")
	setString(&cfg.Minio.SecretKey, "MINIO_SECRET_KEY")
	setString(&cfg.Minio.Bucket, "MINIO_BUCKET")
	setBool(&cfg.Minio.UseSSL, "MINIO_USE_SSL")

	setString(&cfg.Geocoder.BaseURL, "GEOCODER_URL")
	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")

	setBool(&cfg.Import.DeleteSourceAfterImport, "IMPORT_DELETE_SOURCE")
}

func fillImportDefaults(c *ImportConfig) {
	d := DefaultImport()
	if c.MaxSectionSpan == 0 {
		c.MaxSectionSpan = d.MaxSectionSpan
	}
	if c.AddressWindow == 0 {
		c.AddressWindow = d.AddressWindow
	}
	if c.PhoneWindow == 0 {
		c.PhoneWindow = d.PhoneWindow
	}
	if c.EmailWindow == 0 {
		c.EmailWindow = d.EmailWindow
	}
	if c.LocationWindow == 0 {
		c.LocationWindow = d.LocationWindow
	}
	if c.RetryInitialBackoff == 0 {
		c.RetryInitialBackoff = d.RetryInitialBackoff
	}
	if c.MaxUploadBytes == 0 {
		c.MaxUploadBytes = d.MaxUploadBytes
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
