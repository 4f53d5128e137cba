package pipeline

import (
	"context"
	"image"
	"sync"

	"github.com/ironsheep/screen-translator/internal/config"
	apperrors "github.com/ironsheep/screen-translator/internal/errors"
	"github.com/ironsheep/screen-translator/internal/imaging"
	"github.com/ironsheep/screen-translator/internal/selection"
)

// CaptureRegion rasterizes a committed selection from screen.
// An empty rectangle is a cancelled selection and is never grabbed.
func CaptureRegion(screen imaging.Screen, r selection.Rect) (image.Image, error) {
	if r.Empty() {
		return nil, apperrors.NewSelectionCancelledError("empty selection")
	}

	img, err := screen.Grab(image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height))
	if err != nil {
		e := apperrors.NewInvalidArgumentError(apperrors.StageCapture, err.Error())
		e.Cause = err
		return nil, e
	}
	return img, nil
}

// Session owns the captured region and latest result of one capture flow.
//
// Capture replaces the region, Preview and Confirm run the pipeline on it. While a run is
// in flight, Capture and Confirm are rejected with a BUSY error.
type Session struct {
	pipeline *Pipeline
	creds    config.Credentials

	mu     sync.Mutex
	busy   bool
	region image.Image
	result *Result
}

// NewSession creates a session that translates with creds.
func NewSession(p *Pipeline, creds config.Credentials) *Session {
	return &Session{pipeline: p, creds: creds}
}

// Capture grabs r from screen and makes it the session's region, discarding the previous
// region and result.
func (s *Session) Capture(screen imaging.Screen, r selection.Rect) error {
	img, err := CaptureRegion(screen, r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return apperrors.NewBusyError()
	}
	s.region = img
	s.result = nil
	return nil
}

// Preview returns the normalized OCR text of the current region.
func (s *Session) Preview(ctx context.Context) (string, error) {
	img, err := s.acquire()
	if err != nil {
		return "", err
	}
	defer s.release(nil)

	return s.pipeline.RunPreview(ctx, img)
}

// Confirm runs the full pipeline on the current region and stores the result.
func (s *Session) Confirm(ctx context.Context) (*Result, error) {
	img, err := s.acquire()
	if err != nil {
		return nil, err
	}

	res := s.pipeline.RunFull(ctx, img, s.creds)
	s.release(res)
	return res, nil
}

// Result returns the result of the last Confirm, or nil.
func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Busy reports whether a run is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *Session) acquire() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return nil, apperrors.NewBusyError()
	}
	if s.region == nil {
		return nil, apperrors.NewInvalidArgumentError(apperrors.StageCapture, "no region captured")
	}
	s.busy = true
	return s.region, nil
}

// release ends a run; a non-nil res replaces the stored result.
func (s *Session) release(res *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.busy = false
	if res != nil {
		s.result = res
	}
}
