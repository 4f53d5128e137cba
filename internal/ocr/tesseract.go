package ocr

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"

	apperrors "github.com/ironsheep/screen-translator/internal/errors"
	"github.com/ironsheep/screen-translator/internal/imaging"
	"github.com/ironsheep/screen-translator/internal/logging"
)

// DefaultLanguage is the Tesseract language used when none is configured.
const DefaultLanguage = "eng"

// Tesseract recognizes text in captured regions with a fixed language.
//
// A fresh gosseract client is created for every call, so a Tesseract is safe for
// concurrent use even though the underlying TessBaseAPI is not.
type Tesseract struct {
	language       string
	tessdataPrefix string
	prepare        imaging.PrepareOptions
	logger         *logging.Logger
}

// Option configures a Tesseract engine.
type Option func(*Tesseract)

// WithTessdataPrefix points the engine at a tessdata directory other than the
// installation default.
func WithTessdataPrefix(prefix string) Option {
	return func(t *Tesseract) { t.tessdataPrefix = prefix }
}

// WithPrepareOptions overrides the preprocessing applied before recognition.
func WithPrepareOptions(opts imaging.PrepareOptions) Option {
	return func(t *Tesseract) { t.prepare = opts }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(t *Tesseract) { t.logger = l }
}

// NewTesseract creates an engine for language. An empty language means DefaultLanguage.
// The language cannot be changed after construction.
func NewTesseract(language string, opts ...Option) *Tesseract {
	if language == "" {
		language = DefaultLanguage
	}
	t := &Tesseract{
		language: language,
		prepare:  imaging.DefaultPrepareOptions(),
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Language returns the engine's recognition language.
func (t *Tesseract) Language() string {
	return t.language
}

// Recognize performs OCR on img and returns the trimmed text.
//
// Parameters:
//   - ctx: Checked before the engine starts. Tesseract itself cannot be interrupted,
//     so a recognition already running completes.
//   - img: The captured region, in any image.Image representation.
//
// Returns:
//   - string: The recognized text with leading and trailing whitespace removed. May be
//     empty when the region holds no legible text.
//   - error: An OCR_FAILED *errors.Error when the engine cannot be initialized (for
//     example, missing language data) or recognition fails.
//
// # Preprocessing
//
// The region is passed through imaging.PrepareForOCR and PNG-encoded in memory; no
// temporary files are written.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", apperrors.NewOCRFailedError(err)
	}
	if img == nil || img.Bounds().Empty() {
		return "", apperrors.NewOCRFailedError(fmt.Errorf("empty image"))
	}

	prepared := imaging.PrepareForOCR(img, t.prepare)
	data, err := imaging.EncodePNG(prepared)
	if err != nil {
		return "", apperrors.NewOCRFailedError(err)
	}

	text, err := t.recognizeBytes(data)
	if err != nil {
		t.logger.Warn("OCR failed", "language", t.language, "error", err)
		return "", apperrors.NewOCRFailedError(err)
	}

	text = strings.TrimSpace(text)
	t.logger.Debug("OCR complete", "chars", len(text))
	return text, nil
}

func (t *Tesseract) recognizeBytes(data []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if t.tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.tessdataPrefix); err != nil {
			return "", fmt.Errorf("failed to set tessdata prefix: %w", err)
		}
	}

	if err := client.SetLanguage(t.language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return text, nil
}

// Info describes the OCR engine installation.
type Info struct {
	// Version is the linked Tesseract library version.
	Version string `json:"version"`

	// Language is the configured recognition language.
	Language string `json:"language"`

	// TessdataPrefix is the configured tessdata directory, empty for the default.
	TessdataPrefix string `json:"tessdata_prefix,omitempty"`

	// Languages lists the language data files found in the default tessdata directory.
	Languages []string `json:"languages"`

	// Available reports whether data for Language was found. It is always true when a
	// custom TessdataPrefix is set, since only the default directory is scanned.
	Available bool `json:"available"`
}

// Info reports the engine version and whether the configured language is installed.
func (t *Tesseract) Info() Info {
	info := Info{
		Version:        gosseract.Version(),
		Language:       t.language,
		TessdataPrefix: t.tessdataPrefix,
		Languages:      []string{},
	}

	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		t.logger.Warn("Failed to list tessdata languages", "error", err)
	}
	if langs != nil {
		info.Languages = langs
	}

	info.Available = t.tessdataPrefix != "" || containsLanguage(info.Languages, t.language)
	return info
}

// containsLanguage reports whether every "+"-joined component of language is in langs.
func containsLanguage(langs []string, language string) bool {
	for _, want := range strings.Split(language, "+") {
		found := false
		for _, l := range langs {
			if l == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
