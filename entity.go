package canvas

import "github.com/google/uuid"

// Box is an entity's size plus the inner padding its renderer uses.
type Box struct {
	Width, Height, Padding float64
}

// EditorState holds the interaction flags of an entity. The flags are
// independent; the scene keeps Selected and Hovered exclusive.
type EditorState struct {
	Hovered  bool
	Selected bool
	Editing  bool
	Dragging bool
	Resizing bool
}

// Extensions carries renderer-specific payload (colors, icons, ...) that the
// core never reads.
type Extensions map[string]any

// Entity is a selectable, positioned, resizable node on the canvas.
//
// Entities belong to the host's document store. The core keeps pointers to
// them and mutates Position, Box, ZIndex, State and Control in place.
type Entity struct {
	// Identity
	ID    string
	Kind  string
	Title string

	// Geometry (world space). Position is the top-left corner.
	Position Vec2
	Box      Box

	// ZIndex orders drawing (ascending) and hit testing (descending).
	ZIndex int

	State EditorState

	// Control owns the handles attached while the entity is selected.
	// Nil when the entity has no followers.
	Control *Control

	Ext Extensions
}

// NewEntity creates an entity with a fresh random ID.
func NewEntity(kind, title string, x, y, width, height float64) *Entity {
	return &Entity{
		ID:       uuid.NewString(),
		Kind:     kind,
		Title:    title,
		Position: Vec2{X: x, Y: y},
		Box:      Box{Width: width, Height: height},
	}
}

// Bounds returns the world-space box of the entity.
func (e *Entity) Bounds() Rect {
	return Rect{X: e.Position.X, Y: e.Position.Y, Width: e.Box.Width, Height: e.Box.Height}
}

// Z returns the entity's draw order.
func (e *Entity) Z() int {
	return e.ZIndex
}

// Followers returns the handles attached to e, or nil. The returned slice
// MUST NOT be appended to.
func (e *Entity) Followers() []Follower {
	if e.Control == nil {
		return nil
	}
	return e.Control.followers
}

// Contains reports whether the world point lies inside the entity box.
func (e *Entity) Contains(x, y float64) bool {
	return e.Bounds().Contains(x, y)
}
