// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Event types for viewer use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	DeltaX int // relative motion, or wheel steps
	DeltaY int
	Button uint8
}

// Input handles all input processing and tracks the drag state of the
// left mouse button.
type Input struct {
	events   []Event
	dragging bool
	dragX    float32
	dragY    float32
	wheel    float32

	// travel is how far the mouse moved since the button went down.
	travel int
	click  bool
	clickX int
	clickY int
}

// clickSlop is the movement in pixels below which a press and release
// count as a click rather than a drag.
const clickSlop = 4

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	var events []sdl.Event
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		events = append(events, event)
	}
	return i.Process(events)
}

// Process converts a batch of SDL events. It is split from Update so the
// translation can run without a video subsystem.
func (i *Input) Process(events []sdl.Event) bool {
	i.events = i.events[:0] // Clear previous events
	i.dragX, i.dragY, i.wheel = 0, 0, 0
	i.click = false

	for _, raw := range events {
		e, ok := translate(raw)
		if !ok {
			continue
		}
		i.events = append(i.events, e)

		switch e.Type {
		case EventQuit:
			return true
		case EventMouseDown:
			if e.Button == sdl.BUTTON_LEFT {
				i.dragging = true
				i.travel = 0
			}
		case EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT && i.dragging {
				i.dragging = false
				if i.travel <= clickSlop {
					i.click, i.clickX, i.clickY = true, e.MouseX, e.MouseY
				}
			}
		case EventMouseMove:
			if i.dragging {
				i.dragX += float32(e.DeltaX)
				i.dragY += float32(e.DeltaY)
				i.travel += abs(e.DeltaX) + abs(e.DeltaY)
			}
		case EventMouseWheel:
			i.wheel += float32(e.DeltaY)
		}
	}

	return false
}

func translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return Event{}, false
		}
		if e.Type == sdl.KEYDOWN {
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}, true
		} else if e.Type == sdl.KEYUP {
			return Event{Type: EventKeyUp, Key: e.Keysym.Scancode}, true
		}

	case *sdl.MouseMotionEvent:
		return Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			DeltaX: int(e.XRel),
			DeltaY: int(e.YRel),
		}, true

	case *sdl.MouseButtonEvent:
		typ := EventMouseDown
		if e.Type == sdl.MOUSEBUTTONUP {
			typ = EventMouseUp
		}
		return Event{
			Type:   typ,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			Button: e.Button,
		}, true

	case *sdl.MouseWheelEvent:
		dy := int(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			dy = -dy
		}
		return Event{Type: EventMouseWheel, DeltaX: int(e.X), DeltaY: dy}, true
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// Drag returns the mouse movement accumulated this frame while the left
// button was held.
func (i *Input) Drag() (dx, dy float32) {
	return i.dragX, i.dragY
}

// Wheel returns the scroll steps accumulated this frame; positive is away
// from the user.
func (i *Input) Wheel() float32 {
	return i.wheel
}

// Clicked reports a left click released this frame and where it happened.
func (i *Input) Clicked() (x, y int, ok bool) {
	return i.clickX, i.clickY, i.click
}

// Resized reports the last window size seen this frame.
func (i *Input) Resized() (width, height int, ok bool) {
	for _, e := range i.events {
		if e.Type == EventWindowResize {
			width, height, ok = e.Width, e.Height, true
		}
	}
	return width, height, ok
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
