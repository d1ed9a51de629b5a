package common

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("BRIDGEPLANS_LLM_API_KEY", "")
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Profile != DefaultProfileName {
		t.Fatalf("profile = %q, want %q", cfg.Profile, DefaultProfileName)
	}
	p, err := cfg.ActiveProfile()
	if err != nil {
		t.Fatalf("ActiveProfile() error = %v", err)
	}
	want := []int{2550, 1650, 5100, 3300}
	if len(p.Region) != 4 {
		t.Fatalf("region = %v, want %v", p.Region, want)
	}
	for i := range want {
		if p.Region[i] != want[i] {
			t.Fatalf("region = %v, want %v", p.Region, want)
		}
	}
	if p.DPI != 300 || p.MinTextChars != 20 || p.TextBackend != BackendPdftotext {
		t.Fatalf("unexpected profile defaults: %+v", p)
	}
	if cfg.LLM.Timeout != 60*time.Second {
		t.Fatalf("timeout = %v, want 60s", cfg.LLM.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	body := `profile: half-size
profiles:
  half-size:
    region: [1275, 825, 2550, 1650]
    dpi: 150
    text_backend: native
llm:
  model: gpt-4o
  timeout: 15s
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("OPENAI_API_KEY", "sk-from-openai-env")
	t.Setenv("BRIDGEPLANS_LLM_API_KEY", "")
	t.Setenv("BRIDGEPLANS_OCR_LANG", "deu")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	p, err := cfg.ActiveProfile()
	if err != nil {
		t.Fatalf("ActiveProfile() error = %v", err)
	}
	if p.DPI != 150 || p.TextBackend != BackendNative || p.MinTextChars != 20 {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if cfg.LLM.Model != "gpt-4o" || cfg.LLM.Timeout != 15*time.Second {
		t.Fatalf("unexpected llm config: %+v", cfg.LLM)
	}
	if cfg.LLM.APIKey != "sk-from-openai-env" {
		t.Fatalf("api key = %q, want OPENAI_API_KEY fallback", cfg.LLM.APIKey)
	}
	if cfg.OCR.Lang != "deu" {
		t.Fatalf("ocr lang = %q, want env override", cfg.OCR.Lang)
	}
	if err := cfg.ValidateLLM(); err != nil {
		t.Fatalf("ValidateLLM() error = %v", err)
	}
}

func TestValidateRejectsBadProfiles(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "inverted region",
			mutate:  func(c *Config) { c.Profiles[DefaultProfileName] = TemplateProfile{Region: []int{100, 0, 50, 10}, DPI: 300} },
			wantMsg: "right must be greater than left",
		},
		{
			name:    "negative region",
			mutate:  func(c *Config) { c.Profiles[DefaultProfileName] = TemplateProfile{Region: []int{-1, 0, 50, 10}, DPI: 300} },
			wantMsg: "must not be negative",
		},
		{
			name:    "short region",
			mutate:  func(c *Config) { c.Profiles[DefaultProfileName] = TemplateProfile{Region: []int{1, 2, 3}, DPI: 300} },
			wantMsg: "exactly four values",
		},
		{
			name:    "unknown profile",
			mutate:  func(c *Config) { c.Profile = "missing" },
			wantMsg: "must name one of",
		},
		{
			name:    "unknown engine",
			mutate:  func(c *Config) { c.OCR.Engine = "paddle" },
			wantMsg: "must be one of",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Validate() error = nil, want %q", tt.wantMsg)
			}
			if !errors.Is(err, ErrConfig) {
				t.Fatalf("Validate() error = %v, want ErrConfig", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("Validate() error = %v, want substring %q", err, tt.wantMsg)
			}
		})
	}
}

func TestValidateLLMRequiresKey(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ValidateLLM()
	if err == nil || !IsFatal(err) {
		t.Fatalf("ValidateLLM() error = %v, want fatal config error", err)
	}
	cfg.LLM.APIKey = "sk-test"
	if err := cfg.ValidateLLM(); err != nil {
		t.Fatalf("ValidateLLM() error = %v", err)
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridgeplans.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("BRIDGEPLANS_LLM_API_KEY", "")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.LLM.Timeout != 60*time.Second {
		t.Fatalf("timeout = %v, want 60s", cfg.LLM.Timeout)
	}
}

func TestRedactedMasksKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLM.APIKey = "sk-secret"
	out, err := cfg.Redacted().YAML()
	if err != nil {
		t.Fatalf("YAML() error = %v", err)
	}
	if strings.Contains(string(out), "sk-secret") {
		t.Fatalf("redacted config leaks key:\n%s", out)
	}
	if cfg.LLM.APIKey != "sk-secret" {
		t.Fatalf("Redacted() modified the original config")
	}
}
