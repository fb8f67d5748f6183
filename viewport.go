package canvas

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Viewport is the camera: the world point shown at the screen centre, the
// zoom level and the screen size in pixels.
//
// The director keeps two of them. The authoritative viewport is moved by
// gestures; the rendered one eases toward it every tick.
type Viewport struct {
	// Position is the world-space point mapped to the centre of the screen.
	Position Vec2
	// Zoom is the scale factor (1 = no zoom, >1 = zoom in). Keep it within
	// [MinZoom, MaxZoom]; SetZoom does that for you.
	Zoom float64
	// Width and Height are the screen size in pixels.
	Width, Height float64

	scrollTween *scrollAnim
}

// NewViewport creates a viewport looking at the world origin at zoom 1.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{Zoom: 1, Width: width, Height: height}
}

// Resize changes the screen size only. Position and zoom are kept.
func (v *Viewport) Resize(width, height float64) {
	v.Width = width
	v.Height = height
}

// SetZoom sets the zoom level, clamped to [MinZoom, MaxZoom].
func (v *Viewport) SetZoom(z float64) {
	v.Zoom = clampZoom(z)
}

// ZoomBy multiplies the zoom level by factor and clamps the result.
func (v *Viewport) ZoomBy(factor float64) {
	v.SetZoom(v.Zoom * factor)
}

// PanBy moves the camera by d world units and cancels any running ScrollTo.
func (v *Viewport) PanBy(d Vec2) {
	v.scrollTween = nil
	v.Position.AddAssign(d)
}

// ScrollTo animates the camera to the given world position over duration
// seconds. The tween is advanced by the director tick.
func (v *Viewport) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.OutCubic
	}
	v.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(v.Position.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(v.Position.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in flight.
func (v *Viewport) Scrolling() bool {
	return v.scrollTween != nil
}

// update advances the scroll tween by dt seconds.
func (v *Viewport) update(dt float32) {
	if v.scrollTween == nil {
		return
	}
	if !v.scrollTween.doneX {
		val, done := v.scrollTween.tweenX.Update(dt)
		v.Position.X = float64(val)
		v.scrollTween.doneX = done
	}
	if !v.scrollTween.doneY {
		val, done := v.scrollTween.tweenY.Update(dt)
		v.Position.Y = float64(val)
		v.scrollTween.doneY = done
	}
	if v.scrollTween.doneX && v.scrollTween.doneY {
		v.scrollTween = nil
	}
}

// matrix returns the world-to-screen affine matrix.
func (v *Viewport) matrix() [6]float64 {
	return viewMatrix(v.Position.X, v.Position.Y, v.Zoom, v.Width, v.Height)
}

// WorldToScreen converts world coordinates to screen coordinates.
func (v *Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return transformPoint(v.matrix(), wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (v *Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return transformPoint(invertAffine(v.matrix()), sx, sy)
}

// GeoM returns the world-to-screen transform for use with ebiten draw
// options. Concatenate it after any local transform.
func (v *Viewport) GeoM() ebiten.GeoM {
	m := v.matrix()
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// VisibleBounds returns the world-space rectangle covered by the screen.
func (v *Viewport) VisibleBounds() Rect {
	w := v.Width / v.Zoom
	h := v.Height / v.Zoom
	return Rect{
		X:      v.Position.X - w*0.5,
		Y:      v.Position.Y - h*0.5,
		Width:  w,
		Height: h,
	}
}

// Snapshot returns a copy of the viewport without animation state, safe to
// hand to callbacks that keep it.
func (v *Viewport) Snapshot() Viewport {
	return Viewport{Position: v.Position, Zoom: v.Zoom, Width: v.Width, Height: v.Height}
}
