package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        AppConfig
	Log        LogConfig
	HTTP       HTTPConfig
	ERP        ERPConfig
	Tiendanube TiendanubeConfig
	Labels     LabelsConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// ERPConfig holds the SOAP export service connection settings
type ERPConfig struct {
	EndpointURL   string
	Username      string
	Password      string
	Company       string
	WebService    string
	TokenValidity time.Duration
	ExportTimeout time.Duration
}

// TiendanubeConfig holds the store API settings for order enrichment
type TiendanubeConfig struct {
	APIBaseURL     string
	StoreID        string
	AccessToken    string
	UserAgent      string
	TimeoutSeconds int
}

// LabelsConfig holds label rendering settings
type LabelsConfig struct {
	// TemplatePath overrides the embedded ZPL template when set
	TemplatePath string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with DISPATCH_ prefix (e.g., DISPATCH_ERP_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("DISPATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		ERP: ERPConfig{
			EndpointURL:   v.GetString("erp.endpoint_url"),
			Username:      v.GetString("erp.username"),
			Password:      v.GetString("erp.password"),
			Company:       v.GetString("erp.company"),
			WebService:    v.GetString("erp.web_service"),
			TokenValidity: v.GetDuration("erp.token_validity"),
			ExportTimeout: v.GetDuration("erp.export_timeout"),
		},
		Tiendanube: TiendanubeConfig{
			APIBaseURL:     v.GetString("tiendanube.api_base_url"),
			StoreID:        v.GetString("tiendanube.store_id"),
			AccessToken:    v.GetString("tiendanube.access_token"),
			UserAgent:      v.GetString("tiendanube.user_agent"),
			TimeoutSeconds: v.GetInt("tiendanube.timeout_seconds"),
		},
		Labels: LabelsConfig{
			TemplatePath: v.GetString("labels.template_path"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "dispatch-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		// Label runs wait on the upstream export, which can take minutes.
		cfg.HTTP.WriteTimeout = 5 * time.Minute
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20
	}
	if len(cfg.HTTP.CORSAllowOrigins) == 0 {
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	}
	if cfg.ERP.WebService == "" {
		cfg.ERP.WebService = "wsExportDataById"
	}
	if cfg.ERP.TokenValidity == 0 {
		cfg.ERP.TokenValidity = 55 * time.Minute
	}
	if cfg.ERP.ExportTimeout == 0 {
		cfg.ERP.ExportTimeout = 2 * time.Minute
	}
	if cfg.Tiendanube.APIBaseURL == "" {
		cfg.Tiendanube.APIBaseURL = "https://api.tiendanube.com/v1"
	}
	if cfg.Tiendanube.TimeoutSeconds == 0 {
		cfg.Tiendanube.TimeoutSeconds = 10
	}
}

func (c *Config) validate() error {
	if c.ERP.TokenValidity <= 0 {
		return fmt.Errorf("erp.token_validity must be positive")
	}
	if c.ERP.ExportTimeout <= 0 {
		return fmt.Errorf("erp.export_timeout must be positive")
	}

	// Production-specific validations
	if c.App.Env == "production" {
		if c.ERP.EndpointURL == "" {
			return fmt.Errorf("erp.endpoint_url is required in production")
		}
		if c.ERP.Username == "" || c.ERP.Password == "" {
			return fmt.Errorf("erp.username and erp.password are required in production")
		}
		if c.Tiendanube.StoreID == "" || c.Tiendanube.AccessToken == "" {
			return fmt.Errorf("tiendanube.store_id and tiendanube.access_token are required in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}
