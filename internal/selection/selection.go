package selection

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/ironsheep/screen-translator/internal/errors"
)

// Rect is a selection rectangle in screen coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether the rectangle has no area. Empty rectangles are never captured.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Point is a pointer position in screen coordinates.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// State is a selection controller state.
type State int

const (
	StateIdle State = iota
	StateSelecting
	StateCommitted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelecting:
		return "selecting"
	case StateCommitted:
		return "committed"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Controller turns pointer events into a selection rectangle.
//
// A Controller serves exactly one gesture: once it reaches StateCommitted or
// StateCancelled every further event is ignored. Create a new one per capture.
type Controller struct {
	state  State
	anchor Point
	rect   Rect

	// OnRedraw, if set, is called with the candidate rectangle after every move.
	OnRedraw func(Rect)
}

// NewController returns a controller in StateIdle.
func NewController() *Controller {
	return &Controller{state: StateIdle}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Rect returns the current candidate (or committed) rectangle.
func (c *Controller) Rect() Rect {
	return c.rect
}

// PointerDown starts a selection when the primary button is pressed in StateIdle.
func (c *Controller) PointerDown(b Button, p Point) {
	if c.state != StateIdle || b != ButtonPrimary {
		return
	}
	c.state = StateSelecting
	c.anchor = p
	c.rect = Rect{X: p.X, Y: p.Y}
}

// PointerMove updates the candidate rectangle while selecting.
func (c *Controller) PointerMove(p Point) {
	if c.state != StateSelecting {
		return
	}
	c.rect = boundingBox(c.anchor, p)
	if c.OnRedraw != nil {
		c.OnRedraw(c.rect)
	}
}

// PointerUp finishes the gesture on the candidate rectangle from the last move; the release
// position itself is not used. A rectangle with zero width or height cancels.
func (c *Controller) PointerUp(b Button, _ Point) {
	if c.state != StateSelecting || b != ButtonPrimary {
		return
	}
	if c.rect.Empty() {
		c.state = StateCancelled
		return
	}
	c.state = StateCommitted
}

// Cancel aborts a selection in progress. It has no effect in StateIdle or a terminal state.
func (c *Controller) Cancel() {
	if c.state != StateSelecting {
		return
	}
	c.state = StateCancelled
}

// Dismiss closes the overlay: any non-terminal state becomes StateCancelled.
func (c *Controller) Dismiss() {
	if c.state == StateIdle || c.state == StateSelecting {
		c.state = StateCancelled
	}
}

// Outcome returns the committed rectangle, or a SELECTION_CANCELLED error when the
// gesture was cancelled, produced no area, or has not finished.
func (c *Controller) Outcome() (Rect, error) {
	switch c.state {
	case StateCommitted:
		return c.rect, nil
	case StateCancelled:
		if c.rect.Empty() {
			return Rect{}, apperrors.NewSelectionCancelledError("empty selection")
		}
		return Rect{}, apperrors.NewSelectionCancelledError("cancelled by user")
	default:
		return Rect{}, apperrors.NewSelectionCancelledError(fmt.Sprintf("gesture incomplete (%s)", c.state))
	}
}

func boundingBox(a, b Point) Rect {
	return Rect{
		X:      min(a.X, b.X),
		Y:      min(a.Y, b.Y),
		Width:  abs(b.X - a.X),
		Height: abs(b.Y - a.Y),
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// EventKind is the type of an abstract pointer event.
type EventKind string

const (
	EventDown   EventKind = "down"
	EventMove   EventKind = "move"
	EventUp     EventKind = "up"
	EventCancel EventKind = "cancel"
)

// Event is one step of a recorded gesture.
type Event struct {
	Kind   EventKind `json:"kind"`
	X      int       `json:"x"`
	Y      int       `json:"y"`
	Button Button    `json:"button"`
}

// UnmarshalJSON rejects unknown event kinds.
func (e *Event) UnmarshalJSON(data []byte) error {
	type raw Event
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	switch r.Kind {
	case EventDown, EventMove, EventUp, EventCancel:
	default:
		return fmt.Errorf("unknown pointer event kind: %q", r.Kind)
	}
	*e = Event(r)
	return nil
}

// Replay drives a fresh controller through events and returns its outcome.
// A gesture that never commits yields a SELECTION_CANCELLED error.
func Replay(events []Event) (Rect, error) {
	c := NewController()
	for _, ev := range events {
		p := Point{X: ev.X, Y: ev.Y}
		switch ev.Kind {
		case EventDown:
			c.PointerDown(ev.Button, p)
		case EventMove:
			c.PointerMove(p)
		case EventUp:
			c.PointerUp(ev.Button, p)
		case EventCancel:
			c.Dismiss()
		}
	}
	return c.Outcome()
}
