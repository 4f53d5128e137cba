package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/ironsheep/screen-translator/internal/errors"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `{"BaiduTranslate": {"AppId": "2024001", "SecretKey": "s3cr3t"}}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Credentials.AppID != "2024001" || cfg.Credentials.SecretKey != "s3cr3t" {
		t.Errorf("credentials: got %+v", cfg.Credentials)
	}
	if cfg.SourceLang != "en" || cfg.TargetLang != "zh" {
		t.Errorf("languages: got %s -> %s, want en -> zh", cfg.SourceLang, cfg.TargetLang)
	}
	if cfg.HTTPTimeout != 0 {
		t.Errorf("HTTPTimeout: got %v, want 0", cfg.HTTPTimeout)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"malformed json", `{"BaiduTranslate": `},
		{"missing section", `{"Other": {}}`},
		{"placeholder app id", `{"BaiduTranslate": {"AppId": "YOUR_APP_ID", "SecretKey": "x"}}`},
		{"placeholder secret", `{"BaiduTranslate": {"AppId": "1", "SecretKey": "YOUR_SECRET_KEY"}}`},
		{"empty app id", `{"BaiduTranslate": {"AppId": "", "SecretKey": "x"}}`},
		{"empty secret", `{"BaiduTranslate": {"AppId": "1"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.contents)
			_, err := Load(path)
			if !apperrors.Is(err, apperrors.ErrorConfigInvalid) {
				t.Errorf("got %v, want CONFIG_INVALID", err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !apperrors.Is(err, apperrors.ErrorConfigInvalid) {
		t.Errorf("got %v, want CONFIG_INVALID", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SCREEN_TRANSLATOR_TO", "jp")
	t.Setenv("SCREEN_TRANSLATOR_PHONETIC_CONCURRENCY", "8")
	t.Setenv("SCREEN_TRANSLATOR_HTTP_TIMEOUT", "15s")
	t.Setenv("SCREEN_TRANSLATOR_DICTIONARY_URL", "http://localhost:9999/entries")

	path := writeConfig(t, `{"BaiduTranslate": {"AppId": "a", "SecretKey": "b"}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.TargetLang != "jp" {
		t.Errorf("TargetLang: got %s, want jp", cfg.TargetLang)
	}
	if cfg.PhoneticConcurrency != 8 {
		t.Errorf("PhoneticConcurrency: got %d, want 8", cfg.PhoneticConcurrency)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("HTTPTimeout: got %v, want 15s", cfg.HTTPTimeout)
	}
	if cfg.DictionaryURL != "http://localhost:9999/entries" {
		t.Errorf("DictionaryURL: got %s", cfg.DictionaryURL)
	}
}

func TestLoad_BadEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("SCREEN_TRANSLATOR_PHONETIC_CONCURRENCY", "lots")

	path := writeConfig(t, `{"BaiduTranslate": {"AppId": "a", "SecretKey": "b"}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PhoneticConcurrency != 4 {
		t.Errorf("PhoneticConcurrency: got %d, want default 4", cfg.PhoneticConcurrency)
	}
}

func TestValidate_Concurrency(t *testing.T) {
	cfg := Defaults()
	cfg.Credentials = Credentials{AppID: "a", SecretKey: "b"}
	cfg.PhoneticConcurrency = 0

	if err := cfg.Validate(); !apperrors.Is(err, apperrors.ErrorConfigInvalid) {
		t.Errorf("got %v, want CONFIG_INVALID", err)
	}
}

func TestEnsureFile_CreatesPlaceholderConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	created, err := EnsureFile(path)
	if err != nil {
		t.Fatalf("EnsureFile failed: %v", err)
	}
	if !created {
		t.Error("expected a new file to be created")
	}

	// The template parses but its placeholders are rejected.
	_, err = Load(path)
	if !apperrors.Is(err, apperrors.ErrorConfigInvalid) {
		t.Errorf("Load of template: got %v, want CONFIG_INVALID", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("template should parse: %v", err)
	}
	if cfg.Credentials.AppID != PlaceholderAppID || cfg.Credentials.SecretKey != PlaceholderSecretKey {
		t.Errorf("template credentials: got %+v", cfg.Credentials)
	}
}

func TestEnsureFile_KeepsExistingConfig(t *testing.T) {
	contents := `{"BaiduTranslate": {"AppId": "2024001", "SecretKey": "s3cr3t"}}`
	path := writeConfig(t, contents)

	created, err := EnsureFile(path)
	if err != nil {
		t.Fatalf("EnsureFile failed: %v", err)
	}
	if created {
		t.Error("existing config must not be replaced")
	}

	data, _ := os.ReadFile(path)
	if string(data) != contents {
		t.Errorf("config was modified: %s", data)
	}
}

func TestPath(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	if got := Path(); got != DefaultConfigPath {
		t.Errorf("Path: got %q, want %q", got, DefaultConfigPath)
	}

	t.Setenv(ConfigPathEnvVar, "/etc/screen-translator.json")
	if got := Path(); got != "/etc/screen-translator.json" {
		t.Errorf("Path: got %q", got)
	}
}
