package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tasky/internal/config"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("TASKY_API_URL", "")
	t.Setenv("TASKY_TIMEOUT", "")
	dir := t.TempDir()

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.Dir != dir {
		t.Errorf("Dir = %q, want %q", cfg.Dir, dir)
	}
	if cfg.APIURL != config.DefaultAPIURL {
		t.Errorf("APIURL = %q, want %q", cfg.APIURL, config.DefaultAPIURL)
	}
	if cfg.Timeout != config.DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, config.DefaultTimeout)
	}
	if cfg.TokenPath() != filepath.Join(dir, "token.json") {
		t.Errorf("TokenPath = %q", cfg.TokenPath())
	}
}

func TestNew_SettingsFile(t *testing.T) {
	t.Setenv("TASKY_API_URL", "")
	t.Setenv("TASKY_TIMEOUT", "")
	dir := t.TempDir()
	yaml := "api_url: https://tasks.example.com/api/\ntimeout: 3s\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.APIURL != "https://tasks.example.com/api" {
		t.Errorf("APIURL = %q, want trailing slash trimmed", cfg.APIURL)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", cfg.Timeout)
	}
}

func TestNew_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api_url: http://file\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TASKY_API_URL", "http://env:9000/api")
	t.Setenv("TASKY_TIMEOUT", "")

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.APIURL != "http://env:9000/api" {
		t.Errorf("APIURL = %q, want env value", cfg.APIURL)
	}
}

func TestNew_InvalidSettingsFile(t *testing.T) {
	t.Setenv("TASKY_API_URL", "")
	t.Setenv("TASKY_TIMEOUT", "")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api_url: [unclosed\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.New(dir); err == nil {
		t.Error("expected error for malformed config.yaml")
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := config.DefaultConfigDir(); got != filepath.Join("/tmp/xdg", "tasky") {
		t.Errorf("DefaultConfigDir() = %q", got)
	}
}

func TestFallbacks(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	if cfg.BaseURL() != config.DefaultAPIURL {
		t.Errorf("BaseURL() = %q", cfg.BaseURL())
	}
	if cfg.RequestTimeout() != config.DefaultTimeout {
		t.Errorf("RequestTimeout() = %v", cfg.RequestTimeout())
	}
}

func TestNew_RateLimitAndDebug(t *testing.T) {
	t.Setenv("TASKY_API_URL", "")
	t.Setenv("TASKY_TIMEOUT", "")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("rate_limit: 2.5\ndebug: true\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.RateLimit != 2.5 {
		t.Errorf("RateLimit = %v, want 2.5", cfg.RateLimit)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}

	t.Setenv("TASKY_RATE_LIMIT", "-1")
	if _, err := config.New(dir); err == nil {
		t.Error("expected error for negative rate_limit")
	}
}

func TestNew_Timeout(t *testing.T) {
	t.Setenv("TASKY_API_URL", "")
	tests := []struct {
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{"30", 30 * time.Second, false},
		{"1.5", 1500 * time.Millisecond, false},
		{"250ms", 250 * time.Millisecond, false},
		{"2m", 2 * time.Minute, false},
		{"30ns", 0, true},
		{"0", 0, true},
		{"-5s", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Setenv("TASKY_TIMEOUT", tt.raw)
			cfg, err := config.New(t.TempDir())
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got timeout %v", cfg.Timeout)
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if cfg.Timeout != tt.want {
				t.Errorf("Timeout = %v, want %v", cfg.Timeout, tt.want)
			}
		})
	}
}

func TestNew_DotEnvInConfigDir(t *testing.T) {
	t.Setenv("TASKY_API_URL", "")
	t.Setenv("TASKY_TIMEOUT", "")
	// Unset for the test; t.Setenv restores the original value afterwards.
	t.Setenv("TASKY_RATE_LIMIT", "")
	os.Unsetenv("TASKY_RATE_LIMIT")

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TASKY_RATE_LIMIT=4\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.RateLimit != 4 {
		t.Errorf("RateLimit = %v, want 4 from config dir .env", cfg.RateLimit)
	}
}
