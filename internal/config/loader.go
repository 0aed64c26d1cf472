package config

import (
	"context"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"github.com/turtacn/metricsvc/pkg/constants"
	"github.com/turtacn/metricsvc/pkg/errors"
	"github.com/turtacn/metricsvc/pkg/logger"
)

// EnvPrefix is prepended to every environment override, e.g. METRICSVC_SERVER_PORT.
const EnvPrefix = "METRICSVC"

// Loader reads configuration from file, environment variables and defaults.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader. An empty configFile searches the default paths.
func NewLoader(configFile string) *Loader {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/metricsvc/")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The exporter historically read its target from MAIN_APP_URL.
	_ = v.BindEnv("exporter.target_url", EnvPrefix+"_EXPORTER_TARGET_URL", "MAIN_APP_URL")

	return &Loader{v: v}
}

// LoadConfig loads the configuration from file, environment variables, and defaults.
func LoadConfig(configFile string) (*Config, error) {
	return NewLoader(configFile).Load()
}

// Load reads the config file (if any) and unmarshals the merged result.
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.ErrInvalidConfig.WithMessage("failed to read config file").WithError(err)
		}
	}
	return l.unmarshal()
}

func (l *Loader) unmarshal() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config").WithError(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ConfigFileUsed reports the file the loader read, empty if none.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Watch re-reads the config file on change and hands valid results to onChange.
// It is a no-op when no config file was found.
func (l *Loader) Watch(log logger.Logger, onChange func(*Config)) {
	if l.v.ConfigFileUsed() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := l.unmarshal()
		if err != nil {
			log.Error(context.Background(), "Ignoring invalid config change", err, logger.Fields{"file": e.Name})
			return
		}
		log.Info(context.Background(), "Config reloaded", logger.Fields{"file": e.Name})
		onChange(cfg)
	})
	l.v.WatchConfig()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", constants.DefaultHTTPHost)
	v.SetDefault("server.port", constants.DefaultHTTPPort)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.read_timeout", constants.DefaultReadTimeout)
	v.SetDefault("server.write_timeout", constants.DefaultWriteTimeout)
	v.SetDefault("server.idle_timeout", constants.DefaultIdleTimeout)
	v.SetDefault("server.shutdown_timeout", constants.DefaultShutdownTimeout)
	v.SetDefault("server.allowed_origins", []string{})

	v.SetDefault("store.backend", string(constants.StoreBackendMemory))
	v.SetDefault("store.redis.address", "127.0.0.1:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.key", constants.DefaultRedisCounterKey)
	v.SetDefault("store.redis.pool_size", 10)
	v.SetDefault("store.redis.min_idle_conns", 2)
	v.SetDefault("store.redis.dial_timeout", "5s")
	v.SetDefault("store.redis.read_timeout", "3s")
	v.SetDefault("store.redis.write_timeout", "3s")

	v.SetDefault("exporter.target_url", constants.DefaultExporterTargetURL)
	v.SetDefault("exporter.host", constants.DefaultHTTPHost)
	v.SetDefault("exporter.port", constants.DefaultExporterPort)
	v.SetDefault("exporter.scrape_interval", constants.DefaultScrapeInterval)
	v.SetDefault("exporter.timeout", constants.DefaultScrapeTimeout)

	v.SetDefault("log.level", string(constants.LogLevelInfo))
	v.SetDefault("log.format", "json")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.jaeger_endpoint", "")
	v.SetDefault("tracing.service_name", constants.ServiceName)
	v.SetDefault("tracing.sampling_rate", 1.0)

	v.SetDefault("monitoring.pprof_enabled", false)
	v.SetDefault("monitoring.prometheus_enabled", false)
	v.SetDefault("monitoring.prometheus_path", constants.DefaultPrometheusPath)
	v.SetDefault("monitoring.health_enabled", false)
}
