// Package errors defines the structured error kinds produced by the capture pipeline.
//
// Every failure that crosses a component boundary is an *Error carrying an ErrorCode,
// the pipeline stage that produced it, and the wrapped cause. Callers branch on the code
// with Is rather than on message text.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode enum for structured error handling
type ErrorCode string

const (
	// Startup errors
	ErrorConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Selection outcomes
	ErrorSelectionCancelled ErrorCode = "SELECTION_CANCELLED"

	// Processing errors
	ErrorOCRFailed         ErrorCode = "OCR_FAILED"
	ErrorEmptyFilteredText ErrorCode = "EMPTY_FILTERED_TEXT"
	ErrorInvalidArgument   ErrorCode = "INVALID_ARGUMENT"
	ErrorBusy              ErrorCode = "BUSY"

	// Remote service errors
	ErrorTranslationFailed    ErrorCode = "TRANSLATION_FAILED"
	ErrorPhoneticLookupFailed ErrorCode = "PHONETIC_LOOKUP_FAILED"
)

// Stage names used in Error.Stage.
const (
	StageConfig    = "config"
	StageSelection = "selection"
	StageCapture   = "capture"
	StageOCR       = "ocr"
	StageNormalize = "normalize"
	StageTranslate = "translate"
	StagePhonetic  = "phonetic"
)

// Error represents a structured pipeline error
type Error struct {
	Code    ErrorCode
	Stage   string
	Message string

	// RemoteCode is the error code reported by a remote API, passed through verbatim.
	RemoteCode string

	Timestamp time.Time
	Details   map[string]interface{}
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether err (or anything it wraps) is an *Error with the given code.
func Is(err error, code ErrorCode) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf returns the code of the first *Error in err's chain, or "" if there is none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// StageOf returns the stage of the first *Error in err's chain, or "" if there is none.
func StageOf(err error) string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Stage
	}
	return ""
}

// Factory functions for common errors

func NewConfigInvalidError(message string, cause error) *Error {
	return &Error{
		Code:      ErrorConfigInvalid,
		Stage:     StageConfig,
		Message:   message,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

func NewSelectionCancelledError(reason string) *Error {
	return &Error{
		Code:      ErrorSelectionCancelled,
		Stage:     StageSelection,
		Message:   fmt.Sprintf("selection cancelled: %s", reason),
		Timestamp: time.Now(),
	}
}

func NewOCRFailedError(cause error) *Error {
	return &Error{
		Code:      ErrorOCRFailed,
		Stage:     StageOCR,
		Message:   "OCR failed",
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

func NewEmptyFilteredTextError() *Error {
	return &Error{
		Code:      ErrorEmptyFilteredText,
		Stage:     StageNormalize,
		Message:   "no valid text to translate",
		Timestamp: time.Now(),
	}
}

func NewInvalidArgumentError(stage, message string) *Error {
	return &Error{
		Code:      ErrorInvalidArgument,
		Stage:     stage,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func NewBusyError() *Error {
	return &Error{
		Code:      ErrorBusy,
		Stage:     StageCapture,
		Message:   "a capture is already being processed",
		Timestamp: time.Now(),
	}
}

func NewTranslationFailedError(message string, cause error) *Error {
	return &Error{
		Code:      ErrorTranslationFailed,
		Stage:     StageTranslate,
		Message:   message,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// NewRemoteTranslationError wraps an error_code/error_msg pair returned by the translation API.
func NewRemoteTranslationError(remoteCode, remoteMessage string) *Error {
	return &Error{
		Code:       ErrorTranslationFailed,
		Stage:      StageTranslate,
		Message:    fmt.Sprintf("remote error %s: %s", remoteCode, remoteMessage),
		RemoteCode: remoteCode,
		Timestamp:  time.Now(),
		Details: map[string]interface{}{
			"error_msg": remoteMessage,
		},
	}
}

func NewPhoneticLookupFailedError(word string, cause error) *Error {
	return &Error{
		Code:      ErrorPhoneticLookupFailed,
		Stage:     StagePhonetic,
		Message:   fmt.Sprintf("phonetic lookup failed for %q", word),
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"word": word,
		},
		Cause: cause,
	}
}

// ToMap converts the error to a map for structured output
func (e *Error) ToMap() map[string]interface{} {
	result := map[string]interface{}{
		"error_code": string(e.Code),
		"stage":      e.Stage,
		"message":    e.Message,
		"timestamp":  e.Timestamp,
	}

	if e.RemoteCode != "" {
		result["remote_code"] = e.RemoteCode
	}

	for k, v := range e.Details {
		result[k] = v
	}

	if e.Cause != nil {
		result["cause"] = e.Cause.Error()
	}

	return result
}
