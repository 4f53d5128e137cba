package pipeline

import (
	"context"
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/screen-translator/internal/config"
	apperrors "github.com/ironsheep/screen-translator/internal/errors"
	"github.com/ironsheep/screen-translator/internal/logging"
	"github.com/ironsheep/screen-translator/internal/phonetic"
	"github.com/ironsheep/screen-translator/internal/textnorm"
	"github.com/ironsheep/screen-translator/internal/translate"
)

// Recognizer extracts text from a captured region.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// Translator translates filtered text.
type Translator interface {
	Translate(ctx context.Context, text, from, to string, creds config.Credentials) (*translate.Result, error)
}

// PhoneticLookup transcribes a batch of words, returning one entry per word in input order.
type PhoneticLookup interface {
	LookupAll(ctx context.Context, words []string) []phonetic.Entry
}

// Pipeline runs captured regions through OCR, filtering, translation and phonetic lookup.
// A Pipeline holds no per-capture state and may be shared between sessions.
type Pipeline struct {
	ocr        Recognizer
	translator Translator
	phonetics  PhoneticLookup
	from, to   string
	logger     *logging.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLanguages sets the translation source and target languages.
func WithLanguages(from, to string) Option {
	return func(p *Pipeline) {
		p.from = from
		p.to = to
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New creates a pipeline. Languages default to English to Chinese.
func New(ocr Recognizer, translator Translator, phonetics PhoneticLookup, opts ...Option) *Pipeline {
	p := &Pipeline{
		ocr:        ocr,
		translator: translator,
		phonetics:  phonetics,
		from:       config.DefaultSourceLang,
		to:         config.DefaultTargetLang,
		logger:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RunPreview runs OCR and Unicode normalization only, so the user can see what was read
// before committing to a translation. No remote calls are made.
func (p *Pipeline) RunPreview(ctx context.Context, img image.Image) (string, error) {
	text, err := p.ocr.Recognize(ctx, img)
	if err != nil {
		p.logFailure("Preview failed", err)
		return "", err
	}
	return textnorm.Normalize(text), nil
}

// RunFull runs the whole pipeline and always returns a Result; failures are reported in
// Result.Status and Result.Err rather than as a separate error.
//
// When the filtered text is empty the run ends with StatusEmptyText and neither remote
// service is contacted. Otherwise translation and the phonetic batch run concurrently.
// A translation failure fails the run; phonetic failures only produce sentinel entries.
func (p *Pipeline) RunFull(ctx context.Context, img image.Image, creds config.Credentials) *Result {
	raw, err := p.ocr.Recognize(ctx, img)
	if err != nil {
		p.logFailure("Capture failed", err)
		return &Result{Status: StatusFailed, Err: err}
	}

	res := &Result{OCRText: textnorm.Normalize(raw)}
	res.FilteredText = textnorm.ExtractLetters(res.OCRText)
	if res.FilteredText == "" {
		p.logger.Info("No translatable text", "ocr_chars", len(res.OCRText))
		res.Status = StatusEmptyText
		res.Err = apperrors.NewEmptyFilteredTextError()
		return res
	}

	words := textnorm.Words(res.FilteredText)

	var (
		g           errgroup.Group
		translation *translate.Result
		entries     []phonetic.Entry
	)
	g.Go(func() error {
		var err error
		translation, err = p.translator.Translate(ctx, res.FilteredText, p.from, p.to, creds)
		return err
	})
	g.Go(func() error {
		entries = p.phonetics.LookupAll(ctx, words)
		return nil
	})

	if err := g.Wait(); err != nil {
		p.logFailure("Capture failed", err)
		res.Status = StatusFailed
		res.Err = err
		return res
	}

	res.Status = StatusOK
	res.Translation = translation
	res.Phonetics = entries
	p.logger.Info("Capture translated", "words", len(words))
	return res
}

func (p *Pipeline) logFailure(msg string, err error) {
	p.logger.Error(msg,
		"stage", apperrors.StageOf(err),
		"code", apperrors.CodeOf(err),
		"error", err,
	)
}
