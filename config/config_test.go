package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{
  "general": {"listen": ":9090", "jwt_secret": "secret"},
  "llm": {"provider": "openai", "api_key": "sk-test"},
  "storage": {"postgres": {"host": "db", "user": "app", "password": "pw", "dbname": "links"}}
}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfig(path)
	if cfg.General.Listen != ":9090" || cfg.General.JWTSecret != "secret" {
		t.Fatalf("general: %+v", cfg.General)
	}
	if cfg.LLM.Provider != "openai" || cfg.LLM.Model != "gpt-4o-mini" {
		t.Fatalf("llm defaults not applied: %+v", cfg.LLM)
	}
	if cfg.LLM.Temperature != 0.3 || cfg.LLM.MaxTokens != 400 || cfg.LLM.Timeout != 20*time.Second {
		t.Fatalf("llm defaults not applied: %+v", cfg.LLM)
	}
	if cfg.Fetch.MaxChars != 8000 || cfg.Fetch.Timeout != 15*time.Second {
		t.Fatalf("fetch defaults not applied: %+v", cfg.Fetch)
	}
	if !cfg.Storage.Postgres.Configured() {
		t.Fatal("postgres should be configured")
	}
	dsn, err := cfg.Storage.Postgres.DSN()
	if err != nil {
		t.Fatalf("DSN: %v", err)
	}
	if dsn != "postgres://app:pw@db:5432/links?sslmode=disable" {
		t.Fatalf("dsn = %s", dsn)
	}
}

func TestLoadConfigEnvOnly(t *testing.T) {
	t.Setenv("LINKBRIEF_GENERAL_JWT_SECRET", "env-secret")
	t.Setenv("LINKBRIEF_LLM_API_KEY", "sk-env")
	t.Setenv("LINKBRIEF_STORAGE_POSTGRES_URL", "postgres://env@db/links")

	// No config file at this path; env vars alone must carry the settings.
	cfg := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	if cfg.General.JWTSecret != "env-secret" {
		t.Fatalf("jwt_secret = %q, want env value", cfg.General.JWTSecret)
	}
	if cfg.LLM.APIKey != "sk-env" {
		t.Fatalf("api_key = %q, want env value", cfg.LLM.APIKey)
	}
	if !cfg.Storage.Postgres.Configured() {
		t.Fatal("postgres url from env not picked up")
	}
}

func TestLLMNormalizePerProvider(t *testing.T) {
	t.Parallel()
	if got := (LLMConfig{}).Normalize(); got.Provider != "grok" || got.Model != "grok-2-latest" {
		t.Fatalf("grok defaults: %+v", got)
	}
	if got := (LLMConfig{Provider: "openai"}).Normalize(); got.Model != "gpt-4o-mini" {
		t.Fatalf("openai defaults: %+v", got)
	}
	if err := (LLMConfig{Provider: "grok"}).Validate(); err != nil {
		t.Fatalf("grok should validate: %v", err)
	}
	if err := (LLMConfig{Provider: "llama"}).Validate(); err == nil {
		t.Fatal("unknown provider should fail validation")
	}
}

func TestPostgresDSNPrefersURL(t *testing.T) {
	t.Parallel()
	p := PostgresConfig{URL: "postgres://x@y/z", Host: "ignored"}
	dsn, err := p.DSN()
	if err != nil || dsn != "postgres://x@y/z" {
		t.Fatalf("DSN = %q, %v", dsn, err)
	}
	if _, err := (PostgresConfig{Host: "db"}).DSN(); err == nil {
		t.Fatal("missing dbname should error")
	}
	if (PostgresConfig{}).Configured() {
		t.Fatal("empty config must not report configured")
	}
}

func TestRedisAddr(t *testing.T) {
	t.Parallel()
	if got := (RedisConfig{Host: "cache"}).Addr(); got != "cache:6379" {
		t.Fatalf("Addr = %s", got)
	}
	if got := (RedisConfig{Host: "cache", Port: "7000"}).Addr(); got != "cache:7000" {
		t.Fatalf("Addr = %s", got)
	}
	if (RedisConfig{}).Configured() {
		t.Fatal("empty redis config must not report configured")
	}
}
