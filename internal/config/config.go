package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/turtacn/metricsvc/pkg/constants"
	"github.com/turtacn/metricsvc/pkg/errors"
)

// Config holds the application's configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Store      StoreConfig      `mapstructure:"store"`
	Exporter   ExporterConfig   `mapstructure:"exporter"`
	Log        LogConfig        `mapstructure:"log"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// Addr returns the HTTP bind address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type StoreConfig struct {
	Backend constants.StoreBackend `mapstructure:"backend"`
	Redis   RedisConfig            `mapstructure:"redis"`
}

type RedisConfig struct {
	Address      string        `mapstructure:"address"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	Key          string        `mapstructure:"key"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// ExporterConfig drives the Prometheus exporter process.
type ExporterConfig struct {
	TargetURL      string        `mapstructure:"target_url"`
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	ScrapeInterval time.Duration `mapstructure:"scrape_interval"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// Addr returns the exporter bind address.
func (e ExporterConfig) Addr() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	ServiceName    string  `mapstructure:"service_name"`
	SamplingRate   float64 `mapstructure:"sampling_rate"`
}

type MonitoringConfig struct {
	PprofEnabled      bool   `mapstructure:"pprof_enabled"`
	PrometheusEnabled bool   `mapstructure:"prometheus_enabled"`
	PrometheusPath    string `mapstructure:"prometheus_path"`
	HealthEnabled     bool   `mapstructure:"health_enabled"`
}

// Validate checks for essential configuration values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.ErrInvalidConfig.WithMessage("server.port out of range: %d", c.Server.Port)
	}
	if c.Exporter.Port <= 0 || c.Exporter.Port > 65535 {
		return errors.ErrInvalidConfig.WithMessage("exporter.port out of range: %d", c.Exporter.Port)
	}
	switch c.Store.Backend {
	case constants.StoreBackendMemory:
	case constants.StoreBackendRedis:
		if c.Store.Redis.Address == "" {
			return errors.ErrInvalidConfig.WithMessage("store.redis.address is required for the redis backend")
		}
	default:
		return errors.ErrInvalidConfig.WithMessage("unknown store.backend %q", c.Store.Backend)
	}
	if c.Exporter.ScrapeInterval <= 0 {
		return errors.ErrInvalidConfig.WithMessage("exporter.scrape_interval must be positive")
	}
	if c.Exporter.Timeout <= 0 {
		return errors.ErrInvalidConfig.WithMessage("exporter.timeout must be positive")
	}
	if _, err := url.ParseRequestURI(c.Exporter.TargetURL); err != nil {
		return errors.ErrInvalidConfig.WithMessage("exporter.target_url is not a valid URL").WithError(err)
	}
	if c.Tracing.Enabled && c.Tracing.JaegerEndpoint == "" {
		return errors.ErrInvalidConfig.WithMessage("tracing.jaeger_endpoint is required when tracing is enabled")
	}
	return nil
}
