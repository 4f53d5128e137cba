package selection

import (
	"encoding/json"
	"testing"

	apperrors "github.com/ironsheep/screen-translator/internal/errors"
)

func TestController_DragCommits(t *testing.T) {
	c := NewController()
	redraws := 0
	c.OnRedraw = func(Rect) { redraws++ }

	c.PointerDown(ButtonPrimary, Point{100, 80})
	if c.State() != StateSelecting {
		t.Fatalf("state after down: got %s, want selecting", c.State())
	}

	c.PointerMove(Point{150, 90})
	c.PointerMove(Point{40, 20})
	c.PointerUp(ButtonPrimary, Point{40, 20})

	if c.State() != StateCommitted {
		t.Fatalf("state after up: got %s, want committed", c.State())
	}
	if redraws != 2 {
		t.Errorf("redraws: got %d, want 2", redraws)
	}

	rect, err := c.Outcome()
	if err != nil {
		t.Fatalf("Outcome failed: %v", err)
	}
	want := Rect{X: 40, Y: 20, Width: 60, Height: 60}
	if rect != want {
		t.Errorf("rect: got %+v, want %+v", rect, want)
	}
}

func TestController_BoundingBox(t *testing.T) {
	tests := []struct {
		name   string
		anchor Point
		to     Point
		want   Rect
	}{
		{"down-right", Point{10, 10}, Point{30, 50}, Rect{10, 10, 20, 40}},
		{"up-left", Point{30, 50}, Point{10, 10}, Rect{10, 10, 20, 40}},
		{"up-right", Point{10, 50}, Point{30, 10}, Rect{10, 10, 20, 40}},
		{"down-left", Point{30, 10}, Point{10, 50}, Rect{10, 10, 20, 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			c.PointerDown(ButtonPrimary, tt.anchor)
			c.PointerMove(tt.to)
			if got := c.Rect(); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestController_ZeroAreaCancels(t *testing.T) {
	tests := []struct {
		name string
		up   Point
	}{
		{"click", Point{50, 50}},
		{"horizontal line", Point{90, 50}},
		{"vertical line", Point{50, 90}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			c.PointerDown(ButtonPrimary, Point{50, 50})
			c.PointerMove(tt.up)
			c.PointerUp(ButtonPrimary, tt.up)

			if c.State() != StateCancelled {
				t.Fatalf("state: got %s, want cancelled", c.State())
			}
			_, err := c.Outcome()
			if !apperrors.Is(err, apperrors.ErrorSelectionCancelled) {
				t.Errorf("Outcome: got %v, want SELECTION_CANCELLED", err)
			}
		})
	}
}

func TestController_IgnoresNonPrimaryButtons(t *testing.T) {
	c := NewController()
	c.PointerDown(ButtonSecondary, Point{0, 0})
	if c.State() != StateIdle {
		t.Fatalf("secondary press should not start selection, state=%s", c.State())
	}

	c.PointerDown(ButtonPrimary, Point{0, 0})
	c.PointerMove(Point{20, 20})
	c.PointerUp(ButtonSecondary, Point{20, 20})
	if c.State() != StateSelecting {
		t.Fatalf("secondary release should not finish selection, state=%s", c.State())
	}
}

func TestController_CancelWhileSelecting(t *testing.T) {
	c := NewController()
	c.PointerDown(ButtonPrimary, Point{0, 0})
	c.PointerMove(Point{20, 20})
	c.Cancel()

	if c.State() != StateCancelled {
		t.Fatalf("state: got %s, want cancelled", c.State())
	}

	// Terminal: further events are ignored
	c.PointerUp(ButtonPrimary, Point{40, 40})
	c.PointerDown(ButtonPrimary, Point{0, 0})
	if c.State() != StateCancelled {
		t.Errorf("terminal state changed to %s", c.State())
	}
}

func TestController_CancelInIdleIsNoop(t *testing.T) {
	c := NewController()
	c.Cancel()
	if c.State() != StateIdle {
		t.Errorf("state: got %s, want idle", c.State())
	}

	c.Dismiss()
	if c.State() != StateCancelled {
		t.Errorf("dismiss: got %s, want cancelled", c.State())
	}
}

func TestController_UpUsesLastMove(t *testing.T) {
	tests := []struct {
		name  string
		moves []Point
		up    Point
		want  State
		rect  Rect
	}{
		{"released back at anchor", []Point{{10, 10}}, Point{0, 0}, StateCommitted, Rect{0, 0, 10, 10}},
		{"released away without move", nil, Point{30, 30}, StateCancelled, Rect{}},
		{"released past last move", []Point{{10, 10}, {20, 5}}, Point{60, 60}, StateCommitted, Rect{0, 0, 20, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			c.PointerDown(ButtonPrimary, Point{0, 0})
			for _, m := range tt.moves {
				c.PointerMove(m)
			}
			c.PointerUp(ButtonPrimary, tt.up)

			if c.State() != tt.want {
				t.Fatalf("state: got %s, want %s", c.State(), tt.want)
			}
			if c.Rect() != tt.rect {
				t.Errorf("rect: got %+v, want %+v", c.Rect(), tt.rect)
			}
		})
	}
}

func TestController_CommittedIsTerminal(t *testing.T) {
	c := NewController()
	c.PointerDown(ButtonPrimary, Point{0, 0})
	c.PointerMove(Point{10, 10})
	c.PointerUp(ButtonPrimary, Point{10, 10})
	c.Cancel()
	c.Dismiss()

	if c.State() != StateCommitted {
		t.Errorf("state: got %s, want committed", c.State())
	}
}

func TestReplay(t *testing.T) {
	var events []Event
	data := `[
		{"kind": "down", "x": 5, "y": 5},
		{"kind": "move", "x": 25, "y": 15},
		{"kind": "up", "x": 25, "y": 15}
	]`
	if err := json.Unmarshal([]byte(data), &events); err != nil {
		t.Fatalf("failed to decode events: %v", err)
	}

	rect, err := Replay(events)
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	if rect != (Rect{X: 5, Y: 5, Width: 20, Height: 10}) {
		t.Errorf("rect: got %+v", rect)
	}
}

func TestReplay_Cancelled(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
	}{
		{"escape before press", []Event{{Kind: EventCancel}}},
		{"escape mid drag", []Event{
			{Kind: EventDown, X: 0, Y: 0},
			{Kind: EventMove, X: 10, Y: 10},
			{Kind: EventCancel},
			{Kind: EventUp, X: 10, Y: 10},
		}},
		{"never released", []Event{{Kind: EventDown}, {Kind: EventMove, X: 4, Y: 4}}},
		{"no events", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Replay(tt.events)
			if !apperrors.Is(err, apperrors.ErrorSelectionCancelled) {
				t.Errorf("got %v, want SELECTION_CANCELLED", err)
			}
		})
	}
}

func TestEvent_UnmarshalRejectsUnknownKind(t *testing.T) {
	var ev Event
	if err := json.Unmarshal([]byte(`{"kind":"wheel"}`), &ev); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestRect_Empty(t *testing.T) {
	tests := []struct {
		r    Rect
		want bool
	}{
		{Rect{0, 0, 0, 10}, true},
		{Rect{0, 0, 10, 0}, true},
		{Rect{0, 0, 0, 0}, true},
		{Rect{5, 5, 1, 1}, false},
	}
	for _, tt := range tests {
		if got := tt.r.Empty(); got != tt.want {
			t.Errorf("%+v.Empty(): got %v, want %v", tt.r, got, tt.want)
		}
	}
}
