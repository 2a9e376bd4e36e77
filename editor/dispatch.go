package editor

import (
	"github.com/gdamore/tcell/v2"
)

// EventKind is the kind of input event a Session reacts to.
type EventKind uint8

const (
	EventUnknown    EventKind = iota
	EventKeyRelease           // Any key but Enter, after the widget handled it
	EventReturn               // Enter; replaces the widget's newline
	EventResize
	EventScrollUp
	EventScrollDown
	EventPress   // Primary button went down
	EventRelease // Primary button went up
	EventPointer // Any other mouse event, like dragging
)

var eventKindNames = [...]string{
	EventUnknown:    "unknown",
	EventKeyRelease: "key-release",
	EventReturn:     "return",
	EventResize:     "resize",
	EventScrollUp:   "scroll-up",
	EventScrollDown: "scroll-down",
	EventPress:      "press",
	EventRelease:    "release",
	EventPointer:    "pointer",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// A Handler reacts to one event and reports whether it handled it.
type Handler func(event tcell.Event) bool

func (s *Session) defaultHandlers() map[EventKind]Handler {
	return map[EventKind]Handler{
		EventKeyRelease: func(ev tcell.Event) bool {
			handled := s.widget.HandleEvent(ev)
			s.KeyReleased()
			return handled
		},
		EventReturn: func(tcell.Event) bool {
			s.Return()
			s.KeyReleased()
			return true
		},
		EventResize: func(tcell.Event) bool {
			s.widget.ScrollToCursor()
			return true
		},
		EventScrollUp: func(tcell.Event) bool {
			s.ScrollUp()
			return true
		},
		EventScrollDown: func(tcell.Event) bool {
			s.ScrollDown()
			return true
		},
		EventPress: func(ev tcell.Event) bool {
			s.buttonDown = true
			s.widget.HandleEvent(ev) // Place the cursor
			s.PointerPressed()
			return true
		},
		EventRelease: func(ev tcell.Event) bool {
			s.buttonDown = false
			s.widget.HandleEvent(ev)
			s.PointerReleased()
			return true
		},
		EventPointer: func(ev tcell.Event) bool {
			return s.widget.HandleEvent(ev)
		},
	}
}

// SetHandler replaces the handler of an event kind. A nil handler removes it, so
// events of that kind go unhandled.
func (s *Session) SetHandler(kind EventKind, h Handler) {
	if h == nil {
		delete(s.handlers, kind)
		return
	}
	s.handlers[kind] = h
}

// classify maps a tcell event to its EventKind. Mouse button presses and releases
// are told apart by remembering whether the primary button was down.
func (s *Session) classify(event tcell.Event) EventKind {
	switch ev := event.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEnter {
			return EventReturn
		}
		return EventKeyRelease
	case *tcell.EventResize:
		return EventResize
	case *tcell.EventMouse:
		buttons := ev.Buttons()
		switch {
		case buttons&tcell.WheelUp != 0:
			return EventScrollUp
		case buttons&tcell.WheelDown != 0:
			return EventScrollDown
		case buttons&tcell.Button1 != 0 && !s.buttonDown:
			return EventPress
		case buttons&tcell.Button1 == 0 && s.buttonDown:
			return EventRelease
		}
		return EventPointer
	}
	return EventUnknown
}
