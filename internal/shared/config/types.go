package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Mode     string `mapstructure:"mode"`
	BaseURL  string `mapstructure:"base_url"`
	Timezone string `mapstructure:"timezone"`
	// AllowedOrigins lists CORS origins; "*" allows any.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig selects the gorm dialector by Driver ("mysql" or "sqlite").
// For sqlite only Path is used.
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	Path            string `mapstructure:"path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type PasswordConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
	RefreshExpDays   int    `mapstructure:"refresh_exp_days"`
}

// AttributeConfig names the directory or SSO attributes that carry user details.
type AttributeConfig struct {
	ScreenName string `mapstructure:"screenname"`
	UID        string `mapstructure:"uid"`
	Name       string `mapstructure:"name"`
	Email      string `mapstructure:"email"`
	Locale     string `mapstructure:"locale"`
	Timezone   string `mapstructure:"timezone"`
}

type AuthConfig struct {
	// Method is one of "db", "ldap" or "sso".
	Method            string          `mapstructure:"method"`
	ExternalAuthValue string          `mapstructure:"external_auth_value"`
	Attributes        AttributeConfig `mapstructure:"attributes"`
	Password          PasswordConfig  `mapstructure:"password"`
	JWT               JWTConfig       `mapstructure:"jwt"`
}

// UsesExternalAuth reports whether users are authenticated outside the local user table.
func (a *AuthConfig) UsesExternalAuth() bool {
	return a.Method == "ldap" || a.Method == "sso"
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type WebloggerConfig struct {
	EnableAtomPub       bool   `mapstructure:"enable_atompub"`
	UploadsTypesAllowed string `mapstructure:"uploads_types_allowed"`
	AdminsUntrusted     bool   `mapstructure:"admins_untrusted"`
	DefaultLocale       string `mapstructure:"default_locale"`
	SearchPageSize      int    `mapstructure:"search_page_size"`
	SearchRateLimit     int    `mapstructure:"search_rate_limit"`
}

type PlanetGroupConfig struct {
	Handle        string   `mapstructure:"handle"`
	Title         string   `mapstructure:"title"`
	Subscriptions []string `mapstructure:"subscriptions"`
}

type PlanetConfig struct {
	Enabled             bool                `mapstructure:"enabled"`
	Title               string              `mapstructure:"title"`
	MainPage            string              `mapstructure:"main_page"`
	TemplateDir         string              `mapstructure:"template_dir"`
	OutputDir           string              `mapstructure:"output_dir"`
	RefreshIntervalMin  int                 `mapstructure:"refresh_interval_minutes"`
	GenerateIntervalMin int                 `mapstructure:"generate_interval_minutes"`
	EntriesPerGroup     int                 `mapstructure:"entries_per_group"`
	MaxAgeDays          int                 `mapstructure:"max_age_days"`
	FetchConcurrency    int                 `mapstructure:"fetch_concurrency"`
	FetchTimeoutSeconds int                 `mapstructure:"fetch_timeout_seconds"`
	Groups              []PlanetGroupConfig `mapstructure:"groups"`
}

func (p *PlanetConfig) RefreshInterval() time.Duration {
	return time.Duration(p.RefreshIntervalMin) * time.Minute
}

func (p *PlanetConfig) GenerateInterval() time.Duration {
	return time.Duration(p.GenerateIntervalMin) * time.Minute
}

// MaxAge limits generated pages to recent entries. Zero keeps everything.
func (p *PlanetConfig) MaxAge() time.Duration {
	return time.Duration(p.MaxAgeDays) * 24 * time.Hour
}

func (p *PlanetConfig) FetchTimeout() time.Duration {
	return time.Duration(p.FetchTimeoutSeconds) * time.Second
}
