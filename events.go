package canvas

// EventKind identifies a raw input event delivered to an EventTarget.
type EventKind uint8

const (
	InputPointerDown EventKind = iota // mouse button pressed
	InputPointerMove                  // mouse moved
	InputPointerUp                    // mouse button released
	InputWheel                        // scroll wheel; DeltaY is set
	InputClick                        // press and release of the same button
	InputTouchStart                   // a contact touched down
	InputTouchMove                    // one or more contacts moved
	InputTouchEnd                     // a contact lifted
	InputTouchCancel                  // the platform aborted the touch sequence
	numEventKinds
)

var eventKindNames = [...]string{
	InputPointerDown: "pointerdown",
	InputPointerMove: "pointermove",
	InputPointerUp:   "pointerup",
	InputWheel:       "wheel",
	InputClick:       "click",
	InputTouchStart:  "touchstart",
	InputTouchMove:   "touchmove",
	InputTouchEnd:    "touchend",
	InputTouchCancel: "touchcancel",
}

func (k EventKind) String() string {
	if k < numEventKinds {
		return eventKindNames[k]
	}
	return "unknown"
}

// TouchPoint is one contact on a touch surface, in client coordinates.
type TouchPoint struct {
	ID               int
	ClientX, ClientY float64
}

// InputEvent is a raw pointer, wheel or touch event in client coordinates.
// For touch events Touches lists the contacts still on the surface after
// the event, so a touchend for the last finger carries none.
type InputEvent struct {
	Kind             EventKind
	ClientX, ClientY float64
	Button           MouseButton
	DeltaY           float64
	Touches          []TouchPoint
	Modifiers        KeyModifiers
}

// --- Event target ---

type listener struct {
	id      uint32
	fn      func(*InputEvent)
	removed bool
}

// EventTarget is a minimal listener registry standing in for an input
// surface. The director listens on two of them: the canvas element, for
// presses, wheel and hover, and the document, for the move and release
// events of a gesture in progress.
//
// Listeners added during Dispatch do not see the event being dispatched;
// listeners removed during Dispatch are not called afterwards.
type EventTarget struct {
	name      string
	listeners [numEventKinds][]*listener
	nextID    uint32
}

// NewEventTarget creates an empty target. The name only shows up in logs.
func NewEventTarget(name string) *EventTarget {
	return &EventTarget{name: name}
}

// Name returns the target's name.
func (t *EventTarget) Name() string {
	return t.name
}

// ListenerHandle removes a listener registered with Listen.
type ListenerHandle struct {
	target *EventTarget
	kind   EventKind
	l      *listener
}

// Listen registers fn for events of the given kind.
func (t *EventTarget) Listen(kind EventKind, fn func(*InputEvent)) ListenerHandle {
	t.nextID++
	l := &listener{id: t.nextID, fn: fn}
	t.listeners[kind] = append(t.listeners[kind], l)
	return ListenerHandle{target: t, kind: kind, l: l}
}

// Remove unregisters the listener. Removing twice is a no-op.
func (h ListenerHandle) Remove() {
	if h.target == nil || h.l == nil || h.l.removed {
		return
	}
	h.l.removed = true
	// Build a fresh slice so a Dispatch iterating the old one is unaffected.
	old := h.target.listeners[h.kind]
	next := make([]*listener, 0, len(old))
	for _, l := range old {
		if l != h.l {
			next = append(next, l)
		}
	}
	h.target.listeners[h.kind] = next
}

// Active reports whether the listener is still registered.
func (h ListenerHandle) Active() bool {
	return h.l != nil && !h.l.removed
}

// Dispatch delivers ev to every listener of its kind, in registration
// order. Returns the number of listeners called.
func (t *EventTarget) Dispatch(ev *InputEvent) int {
	if ev.Kind >= numEventKinds {
		return 0
	}
	n := 0
	for _, l := range t.listeners[ev.Kind] {
		if l.removed {
			continue
		}
		l.fn(ev)
		n++
	}
	return n
}

// ListenerCount returns the number of listeners for kind.
func (t *EventTarget) ListenerCount(kind EventKind) int {
	return len(t.listeners[kind])
}

// Len returns the number of listeners across all kinds.
func (t *EventTarget) Len() int {
	n := 0
	for _, ls := range t.listeners {
		n += len(ls)
	}
	return n
}

// --- Interaction events (ECS bridge) ---

// EventType identifies a kind of interaction event forwarded to an
// EntityStore.
type EventType uint8

const (
	EventSelect       EventType = iota // an entity became selected
	EventDeselect                      // the selected entity was released
	EventClick                         // click that did not drag
	EventTap                           // single-finger tap that did not drag or pinch
	EventFollowerDown                  // press on a handle
	EventFollowerUp                    // release of a handle drag
	EventFollowerDrag                  // handle moved; DeltaX/DeltaY set
	EventZoom                          // wheel or pinch changed the zoom; Zoom set
)

// EntityStore is the interface for optional ECS integration.
// When set on a Director, interaction events are forwarded to it.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge. EntityID is
// empty for events that do not concern an entity.
type InteractionEvent struct {
	Type      EventType
	EntityID  string
	X, Y      float64 // world position, when the event has one
	Button    MouseButton
	Modifiers KeyModifiers
	// Handle fields (EventFollowerDown, EventFollowerUp, EventFollowerDrag)
	Direction ResizeDirection
	DeltaX    float64
	DeltaY    float64
	// Zoom is the authoritative zoom after the change (EventZoom).
	Zoom float64
}
