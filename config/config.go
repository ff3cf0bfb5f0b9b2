package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service.
type Config struct {
	General GeneralConfig `mapstructure:"general"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Storage StorageConfig `mapstructure:"storage"`
}

// GeneralConfig contains server-wide settings.
type GeneralConfig struct {
	Listen     string `mapstructure:"listen"`
	Debug      bool   `mapstructure:"debug"`
	JWTSecret  string `mapstructure:"jwt_secret"`
	CORSOrigin string `mapstructure:"cors_origin"`
}

// LLMConfig configures the chat-completion provider used for summarization.
// An empty APIKey selects the deterministic mock provider.
type LLMConfig struct {
	Provider    string        `mapstructure:"provider"` // grok, openai
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Normalize applies provider defaults for unset values.
func (l LLMConfig) Normalize() LLMConfig {
	if l.Provider == "" {
		l.Provider = "grok"
	}
	if l.Model == "" {
		switch l.Provider {
		case "openai":
			l.Model = "gpt-4o-mini"
		default:
			l.Model = "grok-2-latest"
		}
	}
	if l.Temperature == 0 {
		l.Temperature = 0.3
	}
	if l.MaxTokens == 0 {
		l.MaxTokens = 400
	}
	if l.Timeout <= 0 {
		l.Timeout = 20 * time.Second
	}
	return l
}

func (l LLMConfig) Validate() error {
	switch l.Provider {
	case "grok", "openai":
		return nil
	default:
		return fmt.Errorf("llm.provider must be grok or openai, got %q", l.Provider)
	}
}

// FetchConfig bounds the content fetcher.
type FetchConfig struct {
	MaxChars int           `mapstructure:"max_chars"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func (f FetchConfig) Normalize() FetchConfig {
	if f.MaxChars <= 0 {
		f.MaxChars = 8000
	}
	if f.Timeout <= 0 {
		f.Timeout = 15 * time.Second
	}
	return f
}

// StorageConfig contains storage and persistence settings.
type StorageConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// PostgresConfig contains Postgres connection settings. When neither URL nor
// Host is set the service runs on the in-memory store.
type PostgresConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// Configured reports whether a Postgres backend was requested at all.
func (p PostgresConfig) Configured() bool {
	return strings.TrimSpace(p.URL) != "" || strings.TrimSpace(p.Host) != ""
}

// DSN builds a connection string from the individual fields unless URL is set.
func (p PostgresConfig) DSN() (string, error) {
	if strings.TrimSpace(p.URL) != "" {
		return p.URL, nil
	}
	if p.Host == "" || p.DBName == "" {
		return "", fmt.Errorf("postgres not configured (storage.postgres.host/dbname or url)")
	}
	port := p.Port
	if port == "" {
		port = "5432"
	}
	ssl := p.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", p.User, p.Password, p.Host, port, p.DBName, ssl), nil
}

// RedisConfig contains the optional ingest-key cache settings.
type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Configured reports whether the cache should be wired up.
func (r RedisConfig) Configured() bool { return strings.TrimSpace(r.Host) != "" }

func (r RedisConfig) Addr() string {
	port := r.Port
	if port == "" {
		port = "6379"
	}
	return fmt.Sprintf("%s:%s", r.Host, port)
}

// LoadConfig loads config from file and LINKBRIEF_* environment variables.
func LoadConfig(path string) *Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")

	v.SetDefault("general.listen", ":8080")
	v.SetDefault("general.cors_origin", "*")
	v.SetDefault("fetch.max_chars", 8000)
	v.SetDefault("llm.provider", "grok")

	if path == "" {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		v.AddConfigPath(exeDir)
		v.AddConfigPath(filepath.Join(exeDir, "..", "config"))
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("LINKBRIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only surfaces keys that already exist in defaults or the
	// config file, so every key is bound explicitly; env vars alone are then
	// enough to run.
	for _, key := range []string{
		"general.listen", "general.debug", "general.jwt_secret", "general.cors_origin",
		"llm.provider", "llm.api_key", "llm.base_url", "llm.model",
		"llm.temperature", "llm.max_tokens", "llm.timeout",
		"fetch.max_chars", "fetch.timeout",
		"storage.postgres.url", "storage.postgres.host", "storage.postgres.port",
		"storage.postgres.user", "storage.postgres.password",
		"storage.postgres.dbname", "storage.postgres.sslmode",
		"storage.redis.host", "storage.redis.port", "storage.redis.password",
		"storage.redis.db", "storage.redis.ttl",
	} {
		_ = v.BindEnv(key)
	}

	// Config file is optional.
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
	cfg.LLM = cfg.LLM.Normalize()
	cfg.Fetch = cfg.Fetch.Normalize()

	if err := cfg.LLM.Validate(); err != nil {
		panic(err)
	}
	return &cfg
}
