package pipeline

import (
	"fmt"
	"strings"

	apperrors "github.com/ironsheep/screen-translator/internal/errors"
	"github.com/ironsheep/screen-translator/internal/phonetic"
	"github.com/ironsheep/screen-translator/internal/translate"
)

// Status is the outcome of a full pipeline run.
type Status string

const (
	// StatusOK means the text was translated; phonetics may still hold sentinels.
	StatusOK Status = "ok"

	// StatusEmptyText means nothing translatable survived filtering. This is an
	// informational outcome, not a failure.
	StatusEmptyText Status = "empty_text"

	// StatusFailed means OCR or translation failed; Err says which.
	StatusFailed Status = "failed"
)

// Result is everything one capture produced. It is built once per run and handed to the
// caller; nothing in it is kept by the pipeline.
type Result struct {
	Status       Status            `json:"status"`
	OCRText      string            `json:"ocr_text,omitempty"`
	FilteredText string            `json:"filtered_text,omitempty"`
	Translation  *translate.Result `json:"translation,omitempty"`
	Phonetics    []phonetic.Entry  `json:"phonetics,omitempty"`
	Err          error             `json:"-"`
}

// Report lines shown to the user.
const (
	noTextMessage = "No valid English text detected."
	quotaURL      = "https://fanyi-api.baidu.com"
)

// Report renders the result as the text shown to the user.
//
// Successful runs list the recognized text, its translation, and one "word: transcription"
// line per word. Translation failures are followed by a checklist of likely causes; OCR
// failures are reported as-is.
func (r *Result) Report() string {
	var b strings.Builder

	switch r.Status {
	case StatusOK:
		b.WriteString("Source:\n")
		b.WriteString(r.OCRText)
		b.WriteString("\n\nTranslation:\n")
		if r.Translation != nil {
			b.WriteString(r.Translation.TranslatedText)
		}
		b.WriteString("\n\nPhonetics:\n")
		for i, e := range r.Phonetics {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "%s: %s", e.Word, e.Transcription)
		}

	case StatusEmptyText:
		b.WriteString(noTextMessage)

	default:
		b.WriteString("Error:\n")
		if r.Err != nil {
			b.WriteString(r.Err.Error())
		}
		if apperrors.StageOf(r.Err) != apperrors.StageOCR {
			b.WriteString("\nPossible causes:\n")
			b.WriteString("1. Network connection problem\n")
			fmt.Fprintf(&b, "2. Translation API quota exhausted; check your quota at %s\n", quotaURL)
			b.WriteString("3. Wrong AppId or SecretKey; check config.json")
		}
	}

	return b.String()
}
