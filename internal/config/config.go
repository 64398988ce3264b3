package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"greenhalal/backend/internal/ai"
)

// Config holds the full application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Reference ReferenceConfig `mapstructure:"reference"`
	AI        AIConfig        `mapstructure:"ai"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StoreConfig configures the reference-table database.
type StoreConfig struct {
	Path   string `mapstructure:"path"`
	Silent bool   `mapstructure:"silent"`
}

// ReferenceConfig points at an optional YAML file imported into the store at startup.
type ReferenceConfig struct {
	Path string `mapstructure:"path"`
}

// AIConfig configures the narrative explainer.
type AIConfig struct {
	Disabled    bool    `mapstructure:"disabled"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	BaseURL     string  `mapstructure:"base_url"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// LogConfig configures logrus.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Client converts the section into the explainer client configuration.
func (c AIConfig) Client() ai.Config {
	return ai.Config{
		APIKey:      c.APIKey,
		Model:       c.Model,
		BaseURL:     c.BaseURL,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
	}
}

// envAliases keeps the plain variable names used by existing deployments working.
var envAliases = map[string][]string{
	"server.port":    {"GREENHALAL_SERVER_PORT", "PORT"},
	"store.path":     {"GREENHALAL_STORE_PATH", "GREENHALAL_DB_PATH"},
	"ai.disabled":    {"GREENHALAL_AI_DISABLED", "DISABLE_AI"},
	"ai.api_key":     {"GREENHALAL_AI_API_KEY", "OPENAI_API_KEY"},
	"ai.model":       {"GREENHALAL_AI_MODEL", "OPENAI_MODEL"},
	"ai.base_url":    {"GREENHALAL_AI_BASE_URL", "OPENAI_BASE_URL"},
	"ai.max_tokens":  {"GREENHALAL_AI_MAX_TOKENS", "OPENAI_MAX_TOKENS"},
	"ai.temperature": {"GREENHALAL_AI_TEMPERATURE", "OPENAI_TEMPERATURE"},
}

// Load reads greenhalal.yaml (optional), .env (optional) and the environment.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, eris.Wrap(err, "config: load .env")
		}
	}

	v := viper.New()

	v.SetConfigName("greenhalal")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if path := strings.TrimSpace(os.Getenv("GREENHALAL_CONFIG")); path != "" {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("GREENHALAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envAliases {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, eris.Wrapf(err, "config: bind env %s", key)
		}
	}

	v.SetDefault("server.port", "2000")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:1000", "http://127.0.0.1:1000"})
	v.SetDefault("store.path", "data/greenhalal.db")
	v.SetDefault("store.silent", true)
	v.SetDefault("reference.path", "")
	v.SetDefault("ai.disabled", false)
	v.SetDefault("ai.model", "gpt-4.1-mini")
	v.SetDefault("ai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.temperature", 0.2)
	v.SetDefault("ai.max_tokens", 600)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Port) == "" {
		return eris.New("config: server.port is required")
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		return eris.New("config: store.path is required")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return eris.Wrapf(err, "config: log.level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return eris.Errorf("config: log.format %q must be text or json", c.Log.Format)
	}
	return nil
}

// InitLogger applies the log section to the standard logrus logger.
func InitLogger(cfg LogConfig) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrapf(err, "parse log level %q", cfg.Level)
	}
	logrus.SetLevel(level)
	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}
