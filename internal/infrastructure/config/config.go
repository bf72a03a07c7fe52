package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/rollerweb/roller/internal/shared/config"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Auth      sharedConfig.AuthConfig      `mapstructure:"auth"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	Weblogger sharedConfig.WebloggerConfig `mapstructure:"weblogger"`
	Planet    sharedConfig.PlanetConfig    `mapstructure:"planet"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml (or configPath when set) and ROLLER_* environment
// variables. A missing config file is not an error; defaults and env still apply.
func Load(env string, configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("ROLLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !asNotFound(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the most recently loaded configuration, or nil before Load.
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func asNotFound(err error, target *viper.ConfigFileNotFoundError) bool {
	nf, ok := err.(viper.ConfigFileNotFoundError)
	if ok {
		*target = nf
	}
	return ok
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.timezone", "UTC")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:8080"})

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/roller.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "roller")
	v.SetDefault("database.password", "roller")
	v.SetDefault("database.database", "roller")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	v.SetDefault("auth.method", "db")
	v.SetDefault("auth.external_auth_value", "<externalAuth>")
	v.SetDefault("auth.attributes.screenname", "screenname")
	v.SetDefault("auth.attributes.uid", "uid")
	v.SetDefault("auth.attributes.name", "cn")
	v.SetDefault("auth.attributes.email", "mail")
	v.SetDefault("auth.attributes.locale", "locale")
	v.SetDefault("auth.attributes.timezone", "timezone")
	v.SetDefault("auth.password.bcrypt_cost", 12)
	v.SetDefault("auth.jwt.secret", "change-me-in-production")
	v.SetDefault("auth.jwt.access_exp_minutes", 30)
	v.SetDefault("auth.jwt.refresh_exp_days", 7)

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Weblogger defaults
	v.SetDefault("weblogger.enable_atompub", true)
	v.SetDefault("weblogger.uploads_types_allowed", "image/*, video/*, audio/*, application/pdf, txt, zip")
	v.SetDefault("weblogger.admins_untrusted", false)
	v.SetDefault("weblogger.default_locale", "en_US")
	v.SetDefault("weblogger.search_page_size", 10)
	v.SetDefault("weblogger.search_rate_limit", 60)

	// Planet defaults
	v.SetDefault("planet.enabled", false)
	v.SetDefault("planet.title", "Roller Planet")
	v.SetDefault("planet.main_page", "planet.html")
	v.SetDefault("planet.template_dir", "./templates/planet")
	v.SetDefault("planet.output_dir", "./data/planet")
	v.SetDefault("planet.refresh_interval_minutes", 60)
	v.SetDefault("planet.generate_interval_minutes", 30)
	v.SetDefault("planet.entries_per_group", 30)
	v.SetDefault("planet.max_age_days", 0)
	v.SetDefault("planet.fetch_concurrency", 4)
	v.SetDefault("planet.fetch_timeout_seconds", 20)
}
