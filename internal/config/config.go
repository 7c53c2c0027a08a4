package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	NATS      NATSConfig      `mapstructure:"nats"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Detection DetectionConfig `mapstructure:"detection"`
	Admin     AdminConfig     `mapstructure:"admin"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
	Debug       bool   `mapstructure:"debug"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	GRPCPort        int           `mapstructure:"grpc_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
}

// DatabaseConfig selects the feedback store. Driver is "postgres" or "sqlite".
type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	SQLitePath      string        `mapstructure:"sqlite_path"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type RedisConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
	TLS       bool   `mapstructure:"tls"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type NATSConfig struct {
	Enabled    bool               `mapstructure:"enabled"`
	URL        string             `mapstructure:"url"`
	StreamName string             `mapstructure:"stream_name"`
	Subjects   NATSSubjectsConfig `mapstructure:"subjects"`
}

type NATSSubjectsConfig struct {
	AnalysisCompleted string `mapstructure:"analysis_completed"`
	FeedbackSubmitted string `mapstructure:"feedback_submitted"`
	ContentReported   string `mapstructure:"content_reported"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
	RequestsPerHour   int  `mapstructure:"requests_per_hour"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
}

// DetectionConfig tunes the scoring engine and the limits enforced in front of it.
type DetectionConfig struct {
	KeywordWeight      float64       `mapstructure:"keyword_weight"`
	PatternWeight      float64       `mapstructure:"pattern_weight"`
	DetectionThreshold float64       `mapstructure:"detection_threshold"`
	MaskSensitive      bool          `mapstructure:"mask_sensitive"`
	MinContentLength   int           `mapstructure:"min_content_length"`
	MaxContentLength   int           `mapstructure:"max_content_length"`
	MaxBulkItems       int           `mapstructure:"max_bulk_items"`
	LookalikeCheck     bool          `mapstructure:"lookalike_check"`
	PhoneRegion        string        `mapstructure:"phone_region"`
	CacheTTL           time.Duration `mapstructure:"cache_ttl"`
}

type AdminConfig struct {
	Token string `mapstructure:"token"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "truthlens")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8000)
	v.SetDefault("server.grpc_port", 9090)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "truthlens")
	v.SetDefault("database.dbname", "truthlens")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.sqlite_path", "truthlens.db")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.key_prefix", "truthlens:")

	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.stream_name", "TRUTHLENS")
	v.SetDefault("nats.subjects.analysis_completed", "analysis.completed")
	v.SetDefault("nats.subjects.feedback_submitted", "feedback.submitted")
	v.SetDefault("nats.subjects.content_reported", "feedback.reported")

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Admin-Token"})
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests_per_minute", 60)
	v.SetDefault("ratelimit.requests_per_hour", 1000)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.time_format", time.RFC3339)

	v.SetDefault("detection.keyword_weight", 0.3)
	v.SetDefault("detection.pattern_weight", 0.5)
	v.SetDefault("detection.detection_threshold", 0.2)
	v.SetDefault("detection.mask_sensitive", true)
	v.SetDefault("detection.min_content_length", 5)
	v.SetDefault("detection.max_content_length", 10000)
	v.SetDefault("detection.max_bulk_items", 10)
	v.SetDefault("detection.lookalike_check", false)
	v.SetDefault("detection.phone_region", "IN")
	v.SetDefault("detection.cache_ttl", 10*time.Minute)
}

// Load reads configuration from defaults, an optional file and environment variables.
// A .env file in the working directory is loaded into the environment first.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/truthlens")
	}

	v.SetEnvPrefix("TRUTHLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Nested keys are not picked up by AutomaticEnv during Unmarshal
	v.BindEnv("app.environment", "TRUTHLENS_APP_ENVIRONMENT")
	v.BindEnv("redis.enabled", "TRUTHLENS_REDIS_ENABLED")
	v.BindEnv("redis.host", "TRUTHLENS_REDIS_HOST")
	v.BindEnv("redis.port", "TRUTHLENS_REDIS_PORT")
	v.BindEnv("redis.password", "TRUTHLENS_REDIS_PASSWORD")
	v.BindEnv("redis.tls", "TRUTHLENS_REDIS_TLS")
	v.BindEnv("database.enabled", "TRUTHLENS_DATABASE_ENABLED")
	v.BindEnv("database.driver", "TRUTHLENS_DATABASE_DRIVER")
	v.BindEnv("database.host", "TRUTHLENS_DATABASE_HOST")
	v.BindEnv("database.port", "TRUTHLENS_DATABASE_PORT")
	v.BindEnv("database.user", "TRUTHLENS_DATABASE_USER")
	v.BindEnv("database.password", "TRUTHLENS_DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "TRUTHLENS_DATABASE_DBNAME")
	v.BindEnv("database.sslmode", "TRUTHLENS_DATABASE_SSLMODE")
	v.BindEnv("database.sqlite_path", "TRUTHLENS_DATABASE_SQLITE_PATH")
	v.BindEnv("nats.enabled", "TRUTHLENS_NATS_ENABLED")
	v.BindEnv("nats.url", "TRUTHLENS_NATS_URL")
	v.BindEnv("admin.token", "TRUTHLENS_ADMIN_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the engine cannot work with
func (c *Config) Validate() error {
	d := c.Detection
	if d.KeywordWeight < 0 || d.PatternWeight < 0 || d.DetectionThreshold < 0 {
		return fmt.Errorf("invalid detection config: weights and threshold must be non-negative")
	}
	if d.MinContentLength < 1 {
		return fmt.Errorf("invalid detection config: min_content_length must be positive")
	}
	if d.MaxContentLength < d.MinContentLength {
		return fmt.Errorf("invalid detection config: max_content_length below min_content_length")
	}
	if d.MaxBulkItems < 1 {
		return fmt.Errorf("invalid detection config: max_bulk_items must be positive")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("invalid database driver %q", c.Database.Driver)
	}
	return nil
}

// IsProduction reports whether the app runs in the production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
