/**
 * Configuration for screen-translator
 *
 * Credentials come from the JSON config file; everything else has a default and can be
 * overridden from the environment (optionally seeded from a .env file).
 */

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	apperrors "github.com/ironsheep/screen-translator/internal/errors"
	"github.com/ironsheep/screen-translator/internal/logging"
)

// Placeholder values written into freshly created config files.
const (
	PlaceholderAppID     = "YOUR_APP_ID"
	PlaceholderSecretKey = "YOUR_SECRET_KEY"
)

// ConfigPathEnvVar selects the config file; DefaultConfigPath is used when it is unset.
const (
	ConfigPathEnvVar  = "SCREEN_TRANSLATOR_CONFIG"
	DefaultConfigPath = "config.json"
)

// Default endpoints and languages.
const (
	DefaultTranslateURL  = "https://fanyi-api.baidu.com/api/trans/vip/translate"
	DefaultDictionaryURL = "https://api.dictionaryapi.dev/api/v2/entries/en"
	DefaultSourceLang    = "en"
	DefaultTargetLang    = "zh"
	DefaultOCRLanguage   = "eng"
)

// Credentials authenticate requests to the translation API.
// They are loaded once at startup and never mutated.
type Credentials struct {
	AppID     string `json:"AppId"`
	SecretKey string `json:"SecretKey"`
}

// Validate rejects empty or placeholder credentials.
func (c Credentials) Validate() error {
	if c.AppID == "" || c.AppID == PlaceholderAppID {
		return apperrors.NewConfigInvalidError("AppId is missing or still the placeholder value", nil)
	}
	if c.SecretKey == "" || c.SecretKey == PlaceholderSecretKey {
		return apperrors.NewConfigInvalidError("SecretKey is missing or still the placeholder value", nil)
	}
	return nil
}

// fileSchema is the on-disk config file layout.
type fileSchema struct {
	BaiduTranslate *Credentials `json:"BaiduTranslate"`
}

// Config holds the process configuration
type Config struct {
	Credentials Credentials

	// Remote services
	TranslateURL  string
	DictionaryURL string
	SourceLang    string
	TargetLang    string

	// HTTPTimeout of 0 leaves the Go default (no client timeout).
	HTTPTimeout time.Duration

	// PhoneticConcurrency bounds concurrent dictionary lookups per batch.
	PhoneticConcurrency int

	// OCR
	OCRLanguage    string
	TessdataPrefix string

	// OCRMinHeight is the height small captures are upscaled to before OCR.
	OCRMinHeight int

	LogLevel string
}

// Load reads the JSON config file at path and applies environment overrides.
//
// A .env file in the working directory is loaded first if present. Missing or malformed
// files and invalid credentials are reported as CONFIG_INVALID errors.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewConfigInvalidError(fmt.Sprintf("failed to read config file %s", path), err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Path returns the config file path from the environment, or DefaultConfigPath.
func Path() string {
	return getEnvOrDefault(ConfigPathEnvVar, DefaultConfigPath)
}

// EnsureFile writes a config file holding placeholder credentials if none exists at path.
// It reports whether a file was created; the placeholders still fail validation, so
// the user has to edit the file before the first translation.
func EnsureFile(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat config file: %w", err)
	}

	template := fileSchema{BaiduTranslate: &Credentials{
		AppID:     PlaceholderAppID,
		SecretKey: PlaceholderSecretKey,
	}}
	data, err := json.MarshalIndent(template, "", "  ")
	if err != nil {
		return false, fmt.Errorf("failed to encode config template: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}

// Parse decodes config file contents into a Config populated with defaults.
// Environment overrides are not applied.
func Parse(data []byte) (*Config, error) {
	var schema fileSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, apperrors.NewConfigInvalidError("config file is not valid JSON", err)
	}
	if schema.BaiduTranslate == nil {
		return nil, apperrors.NewConfigInvalidError("config file has no BaiduTranslate section", nil)
	}

	cfg := Defaults()
	cfg.Credentials = *schema.BaiduTranslate
	return cfg, nil
}

// Defaults returns a Config with every non-credential field set to its default.
func Defaults() *Config {
	return &Config{
		TranslateURL:        DefaultTranslateURL,
		DictionaryURL:       DefaultDictionaryURL,
		SourceLang:          DefaultSourceLang,
		TargetLang:          DefaultTargetLang,
		PhoneticConcurrency: 4,
		OCRLanguage:         DefaultOCRLanguage,
		OCRMinHeight:        64,
		LogLevel:            "info",
	}
}

func (c *Config) applyEnv() {
	c.TranslateURL = getEnvOrDefault("SCREEN_TRANSLATOR_TRANSLATE_URL", c.TranslateURL)
	c.DictionaryURL = getEnvOrDefault("SCREEN_TRANSLATOR_DICTIONARY_URL", c.DictionaryURL)
	c.SourceLang = getEnvOrDefault("SCREEN_TRANSLATOR_FROM", c.SourceLang)
	c.TargetLang = getEnvOrDefault("SCREEN_TRANSLATOR_TO", c.TargetLang)
	c.OCRLanguage = getEnvOrDefault("SCREEN_TRANSLATOR_OCR_LANGUAGE", c.OCRLanguage)
	c.TessdataPrefix = getEnvOrDefault("SCREEN_TRANSLATOR_TESSDATA_PREFIX", c.TessdataPrefix)
	c.LogLevel = getEnvOrDefault(logging.LevelEnvVar, c.LogLevel)
	c.PhoneticConcurrency = getEnvAsIntOrDefault("SCREEN_TRANSLATOR_PHONETIC_CONCURRENCY", c.PhoneticConcurrency)
	c.OCRMinHeight = getEnvAsIntOrDefault("SCREEN_TRANSLATOR_OCR_MIN_HEIGHT", c.OCRMinHeight)
	c.HTTPTimeout = getEnvAsDurationOrDefault("SCREEN_TRANSLATOR_HTTP_TIMEOUT", c.HTTPTimeout)
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if err := c.Credentials.Validate(); err != nil {
		return err
	}

	if c.TranslateURL == "" {
		return apperrors.NewConfigInvalidError("translate URL is required", nil)
	}

	if c.DictionaryURL == "" {
		return apperrors.NewConfigInvalidError("dictionary URL is required", nil)
	}

	if c.SourceLang == "" || c.TargetLang == "" {
		return apperrors.NewConfigInvalidError("source and target languages are required", nil)
	}

	if c.PhoneticConcurrency < 1 || c.PhoneticConcurrency > 64 {
		return apperrors.NewConfigInvalidError(
			fmt.Sprintf("phonetic concurrency must be between 1 and 64, got %d", c.PhoneticConcurrency), nil)
	}

	if c.HTTPTimeout < 0 {
		return apperrors.NewConfigInvalidError("HTTP timeout must not be negative", nil)
	}

	return nil
}

// getEnvOrDefault gets environment variable or returns default
func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault gets environment variable as int or returns default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsDurationOrDefault parses a Go duration string ("30s") or returns default
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
