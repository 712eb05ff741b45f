package config

import (
	"os"
	"strings"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected read timeout 10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Store.RootPath != "data/store" {
		t.Errorf("expected default store root, got %q", cfg.Store.RootPath)
	}
	if cfg.Tenancy.DefaultTenant != "default" {
		t.Errorf("expected default tenant, got %q", cfg.Tenancy.DefaultTenant)
	}
	if cfg.Ingest.MaxChunkChars != 1200 {
		t.Errorf("expected chunk chars 1200, got %d", cfg.Ingest.MaxChunkChars)
	}
	if cfg.Query.DefaultResults != 5 || cfg.Query.MaxResults != 20 {
		t.Errorf("unexpected query defaults: %+v", cfg.Query)
	}
}

func TestValidate_PortRange(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for port 0")
	}

	cfg.HTTP.Port = 8080
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_QueryLimits(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	cfg.HTTP.Port = 8080
	cfg.Query.DefaultResults = 100
	cfg.Query.MaxResults = 10

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when default_results exceeds max_results")
	}
}

func TestValidate_BudgetAction(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	cfg.HTTP.Port = 8080
	cfg.Embedding.Providers = map[string]ProviderConfig{
		"nebius": {Budget: BudgetConfig{Action: "explode"}},
	}

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "budget.action") {
		t.Fatalf("expected budget action error, got %v", err)
	}
}

func TestValidate_VectorizerProviderReference(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	cfg.HTTP.Port = 8080
	cfg.Embedding.Providers = map[string]ProviderConfig{"nebius": {}}
	cfg.Embedding.Vectorizers = map[string]VectorizerConfig{
		"query": {Provider: "missing", Model: "m"},
	}

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "unknown provider") {
		t.Fatalf("expected unknown provider error, got %v", err)
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("RAGDEX_TEST_VAR", "secret123")
	defer os.Unsetenv("RAGDEX_TEST_VAR")

	in := []byte("api_key: ${RAGDEX_TEST_VAR}\nport: ${RAGDEX_MISSING:-8080}\n")
	out := string(expandEnvVars(in))

	if !strings.Contains(out, "secret123") {
		t.Errorf("env var not substituted: %s", out)
	}
	if !strings.Contains(out, "8080") {
		t.Errorf("default not applied: %s", out)
	}
}

func TestExpandEnvVars_EmptyWithoutDefault(t *testing.T) {
	out := string(expandEnvVars([]byte("key: ${RAGDEX_DEFINITELY_UNSET}")))
	if out != "key: " {
		t.Errorf("expected empty substitution, got %q", out)
	}
}

func TestGetEnv(t *testing.T) {
	os.Unsetenv("ENV")
	if env := GetEnv(); env != "local" {
		t.Errorf("expected local default, got %q", env)
	}

	os.Setenv("ENV", "prod")
	defer os.Unsetenv("ENV")
	if env := GetEnv(); env != "prod" {
		t.Errorf("expected prod, got %q", env)
	}
}
