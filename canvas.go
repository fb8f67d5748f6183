package canvas

import (
	"errors"
	"image/color"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// BackgroundColor is the default fill painted under the scene every frame.
var BackgroundColor = Color{R: 0.961, G: 0.961, B: 0.961, A: 1} // #f5f5f5

// toRGBA converts to a premultiplied color.RGBA for ebiten fills.
func (c Color) toRGBA() color.RGBA {
	a := clamp(c.A, 0, 1)
	return color.RGBA{
		R: uint8(clamp(c.R, 0, 1)*a*255 + 0.5),
		G: uint8(clamp(c.G, 0, 1)*a*255 + 0.5),
		B: uint8(clamp(c.B, 0, 1)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Size is a width/height pair in world units.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Renderable is anything handed to a RenderFunc: an *Entity or a *Follower.
// Hosts type-switch on the concrete value to pick a drawing routine.
type Renderable interface {
	Bounds() Rect
	Z() int
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

const (
	// MinZoom and MaxZoom bound every zoom change, whatever its source.
	MinZoom = 0.25
	MaxZoom = 6.0

	// SmoothingFactor is the per-tick blend used by the animation loop.
	SmoothingFactor = 0.2

	// VisibilityBuffer is the margin, in world units per axis, added around
	// the screen before culling.
	VisibilityBuffer = 140.0

	// MinBoxSize is the smallest width or height a resize can produce.
	MinBoxSize = 30.0

	// SelectedZIndex is the draw order forced on the selected entity.
	SelectedZIndex = 1 << 20

	defaultDragDeadZone = 4.0 // screen pixels
	wheelZoomBase       = 1.01
	wheelZoomRate       = 0.2
	pinchDamping        = 0.5
	dragScale           = 1.2
)

// ErrNoSurface is returned by New when the rendering surface is missing or
// has no area.
var ErrNoSurface = errors.New("canvas: rendering surface unavailable")
