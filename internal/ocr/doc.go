// Package ocr provides Optical Character Recognition (OCR) functionality using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2) behind a single
// operation, Recognize, which turns a captured screen region into plain text.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//   - Windows: Download from https://github.com/UB-Mannheim/tesseract/wiki
//
// Language data files are required for the configured language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// A non-standard tessdata directory can be selected with WithTessdataPrefix.
//
// # Engine Settings
//
// The language is fixed at construction ("eng" by default). Page segmentation and
// engine mode are left at Tesseract's defaults.
//
// # Error Handling
//
// Initialization failures (such as missing language data) and recognition failures are
// reported as OCR_FAILED errors from the internal/errors package. Recognition is never
// retried.
package ocr
