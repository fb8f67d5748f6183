package canvas

import (
	"math"

	"go.uber.org/zap"
)

// GestureMode is the state of the pointer/touch gesture machine.
type GestureMode uint8

const (
	GestureIdle       GestureMode = iota // no press in progress
	GestureHandleDrag                    // dragging a follower of the selection
	GestureEntityPan                     // dragging the selected entity
	GestureCameraPan                     // dragging empty space
	GesturePinchZoom                     // two contacts down
)

var gestureNames = [...]string{
	GestureIdle:       "idle",
	GestureHandleDrag: "handle-drag",
	GestureEntityPan:  "entity-pan",
	GestureCameraPan:  "camera-pan",
	GesturePinchZoom:  "pinch-zoom",
}

func (m GestureMode) String() string {
	if int(m) < len(gestureNames) {
		return gestureNames[m]
	}
	return "unknown"
}

// gestureState tracks one gesture from press to release. Screen positions
// are canvas-local pixels.
type gestureState struct {
	mode GestureMode
	// resume is the press mode to return to when a pinch drops to one
	// contact.
	resume GestureMode

	follower *Follower
	touch    bool
	touchID  int

	start      Vec2 // screen position of the press
	startWorld Vec2
	last       Vec2 // screen position of the previous move
	travelled  bool // moved beyond the dead zone
	pinched    bool

	lastDistance float64
	lastCenter   Vec2

	// suppressClick carries the travelled flag of the finished press to the
	// click event that follows its release.
	suppressClick bool

	hoverFollower *Follower
}

// setMode switches the gesture mode and logs the transition.
func (d *Director) setMode(m GestureMode) {
	if d.gesture.mode == m {
		return
	}
	d.log.Debug("gesture", zap.Stringer("from", d.gesture.mode), zap.Stringer("to", m))
	d.gesture.mode = m
}

// --- Press / move / release ---

// beginPress hit-tests the press point: a follower of the selection first,
// then entities, then empty space. A press on empty space releases the
// selection before panning the camera.
func (d *Director) beginPress(sx, sy float64, mods KeyModifiers) {
	g := &d.gesture
	w := d.pool.Get(d.viewport.ScreenToWorld(sx, sy))
	defer d.pool.Put(w)

	g.start = Vec2{sx, sy}
	g.last = g.start
	g.startWorld = *w
	g.travelled = false
	g.pinched = false
	g.follower = nil

	if f := d.scene.FindFollowerAt(w.X, w.Y); f != nil {
		g.follower = f
		d.setMode(GestureHandleDrag)
		if d.cb.OnFollowerMouseDown != nil {
			d.cb.OnFollowerMouseDown(f, d.viewport)
		}
		d.emit(InteractionEvent{
			Type: EventFollowerDown, EntityID: f.owner, X: w.X, Y: w.Y,
			Direction: f.Direction, Modifiers: mods,
		})
		return
	}
	if e := d.scene.FindEntityAt(w.X, w.Y); e != nil {
		d.Select(e)
		d.setMode(GestureEntityPan)
		return
	}
	d.Select(nil)
	d.setMode(GestureCameraPan)
}

// movePress applies a pointer move to the active press mode.
func (d *Director) movePress(sx, sy float64) {
	g := &d.gesture
	cur := d.pool.Get(sx, sy)
	delta := d.pool.Get(g.last.X, g.last.Y)
	defer d.pool.Put(cur)
	defer d.pool.Put(delta)

	// previous - current, in world units
	delta.SubAssign(*cur).ScaleAssign(1 / d.viewport.Zoom)
	g.last = *cur
	if !g.travelled && cur.Distance(g.start) > d.deadZone {
		g.travelled = true
	}

	switch g.mode {
	case GestureHandleDrag:
		if d.cb.OnFollowerDrag != nil {
			d.cb.OnFollowerDrag(g.follower, delta.X, delta.Y, d.viewport)
		}
		d.emit(InteractionEvent{
			Type: EventFollowerDrag, EntityID: g.follower.owner,
			Direction: g.follower.Direction, DeltaX: delta.X, DeltaY: delta.Y,
		})
	case GestureEntityPan:
		if d.scene.selected != nil {
			d.anim.target.SubAssign(*delta)
		}
	case GestureCameraPan:
		d.viewport.PanBy(*delta)
	}
}

// endPress finishes the press and removes the document listeners.
func (d *Director) endPress() {
	g := &d.gesture
	if g.mode == GestureHandleDrag && g.follower != nil {
		f := g.follower
		if d.cb.OnFollowerMouseUp != nil {
			d.cb.OnFollowerMouseUp(f, d.viewport)
		}
		d.emit(InteractionEvent{Type: EventFollowerUp, EntityID: f.owner, Direction: f.Direction})
	}
	g.suppressClick = g.travelled
	d.resetGesture()
}

// resetGesture returns to idle and drops the transient listeners without
// firing callbacks.
func (d *Director) resetGesture() {
	for _, h := range d.docHandles {
		h.Remove()
	}
	d.docHandles = d.docHandles[:0]
	g := &d.gesture
	g.follower = nil
	g.touch = false
	g.lastDistance = 0
	d.setMode(GestureIdle)
}

// --- Mouse ---

func (d *Director) onPointerDown(ev *InputEvent) {
	if d.gesture.mode != GestureIdle {
		return
	}
	sx, sy := d.toCanvas(ev.ClientX, ev.ClientY)
	d.beginPress(sx, sy, ev.Modifiers)
	d.docHandles = append(d.docHandles,
		d.document.Listen(InputPointerMove, d.onPointerMove),
		d.document.Listen(InputPointerUp, d.onPointerUp),
	)
}

func (d *Director) onPointerMove(ev *InputEvent) {
	if d.gesture.touch {
		return
	}
	sx, sy := d.toCanvas(ev.ClientX, ev.ClientY)
	d.movePress(sx, sy)
}

func (d *Director) onPointerUp(ev *InputEvent) {
	if d.gesture.touch {
		return
	}
	d.endPress()
}

// onClick fires OnClick for left clicks whose press stayed within the dead
// zone.
func (d *Director) onClick(ev *InputEvent) {
	if ev.Button != MouseButtonLeft {
		return
	}
	if d.gesture.suppressClick {
		d.gesture.suppressClick = false
		return
	}
	sx, sy := d.toCanvas(ev.ClientX, ev.ClientY)
	wx, wy := d.viewport.ScreenToWorld(sx, sy)
	hit := d.scene.FindEntityAt(wx, wy)
	if d.cb.OnClick != nil {
		d.cb.OnClick(ClickEvent{
			X: wx, Y: wy, ScreenX: sx, ScreenY: sy,
			Entity: hit, Button: ev.Button, Modifiers: ev.Modifiers,
		}, d.viewport)
	}
	d.emit(InteractionEvent{Type: EventClick, EntityID: entityID(hit), X: wx, Y: wy, Button: ev.Button, Modifiers: ev.Modifiers})
}

// onHover tracks the hovered entity and follower while no gesture runs.
func (d *Director) onHover(ev *InputEvent) {
	if d.gesture.mode != GestureIdle {
		return
	}
	sx, sy := d.toCanvas(ev.ClientX, ev.ClientY)
	wx, wy := d.viewport.ScreenToWorld(sx, sy)

	// A replaced control leaves the previous handle dangling; drop it silently.
	if prev := d.gesture.hoverFollower; prev != nil && !prev.attached() {
		d.gesture.hoverFollower = nil
	}
	f := d.scene.FindFollowerAt(wx, wy)
	if prev := d.gesture.hoverFollower; f != prev {
		if prev != nil && d.cb.OnFollowerMouseOut != nil {
			d.cb.OnFollowerMouseOut(prev, d.viewport)
		}
		if f != nil && d.cb.OnFollowerMouseIn != nil {
			d.cb.OnFollowerMouseIn(f, d.viewport)
		}
		d.gesture.hoverFollower = f
	}
	d.scene.SetHovered(d.scene.FindEntityAt(wx, wy))
}

// --- Wheel ---

func (d *Director) onWheel(ev *InputEvent) {
	d.viewport.SetZoom(d.viewport.Zoom * math.Pow(wheelZoomBase, -ev.DeltaY*wheelZoomRate))
	d.emit(InteractionEvent{Type: EventZoom, Zoom: d.viewport.Zoom})
}

// --- Touch ---

// onTouchStart begins a press with one contact or a pinch with two. A
// contact landing during a live gesture can only turn it into a pinch; it
// never registers a second set of document listeners.
func (d *Director) onTouchStart(ev *InputEvent) {
	g := &d.gesture
	n := len(ev.Touches)
	if n == 0 {
		return
	}
	if g.mode != GestureIdle {
		if g.touch && n >= 2 && g.mode != GesturePinchZoom {
			g.resume = g.mode
			d.beginPinch(ev.Touches[0], ev.Touches[1])
		}
		return
	}

	g.touch = true
	if n >= 2 {
		// Two fingers at once: zoom the camera, leave the selection alone.
		t := ev.Touches[0]
		sx, sy := d.toCanvas(t.ClientX, t.ClientY)
		g.start = Vec2{sx, sy}
		g.startWorld.X, g.startWorld.Y = d.viewport.ScreenToWorld(sx, sy)
		g.travelled = false
		g.resume = GestureCameraPan
		d.beginPinch(ev.Touches[0], ev.Touches[1])
	} else {
		t := ev.Touches[0]
		g.touchID = t.ID
		sx, sy := d.toCanvas(t.ClientX, t.ClientY)
		d.beginPress(sx, sy, ev.Modifiers)
	}
	d.docHandles = append(d.docHandles,
		d.document.Listen(InputTouchMove, d.onTouchMove),
		d.document.Listen(InputTouchEnd, d.onTouchEnd),
		d.document.Listen(InputTouchCancel, d.onTouchEnd),
	)
}

func (d *Director) onTouchMove(ev *InputEvent) {
	g := &d.gesture
	if !g.touch || len(ev.Touches) == 0 {
		return
	}
	if g.mode == GesturePinchZoom {
		if len(ev.Touches) >= 2 {
			d.pinchMove(ev.Touches[0], ev.Touches[1])
		}
		return
	}
	t := d.primaryTouch(ev.Touches)
	sx, sy := d.toCanvas(t.ClientX, t.ClientY)
	d.movePress(sx, sy)
}

// onTouchEnd handles both touchend and touchcancel. Touches holds the
// contacts still down.
func (d *Director) onTouchEnd(ev *InputEvent) {
	g := &d.gesture
	if !g.touch {
		return
	}
	n := len(ev.Touches)

	if g.mode == GesturePinchZoom {
		switch {
		case n >= 2:
			d.beginPinch(ev.Touches[0], ev.Touches[1])
			return
		case n == 1:
			d.resumeFromPinch(ev.Touches[0])
			return
		}
		d.setMode(g.resume)
	} else if n > 0 {
		// Another finger lifted; keep following the remaining one.
		t := d.primaryTouch(ev.Touches)
		g.touchID = t.ID
		g.last.X, g.last.Y = d.toCanvas(t.ClientX, t.ClientY)
		return
	}

	tap := ev.Kind == InputTouchEnd && !g.travelled && !g.pinched
	start, startWorld := g.start, g.startWorld
	d.endPress()
	// Touch presses never produce a click event.
	g.suppressClick = false
	if tap {
		d.fireTap(start, startWorld, ev.Modifiers)
	}
}

func (d *Director) fireTap(screen, world Vec2, mods KeyModifiers) {
	hit := d.scene.FindEntityAt(world.X, world.Y)
	if d.cb.OnTap != nil {
		d.cb.OnTap(ClickEvent{
			X: world.X, Y: world.Y, ScreenX: screen.X, ScreenY: screen.Y,
			Entity: hit, Button: MouseButtonLeft, Modifiers: mods,
		}, d.viewport)
	}
	d.emit(InteractionEvent{Type: EventTap, EntityID: entityID(hit), X: world.X, Y: world.Y, Modifiers: mods})
}

// primaryTouch returns the contact that started the press, or the first one
// when it is gone.
func (d *Director) primaryTouch(ts []TouchPoint) TouchPoint {
	for _, t := range ts {
		if t.ID == d.gesture.touchID {
			return t
		}
	}
	return ts[0]
}

// --- Pinch ---

// beginPinch takes a fresh distance and centre baseline from two contacts.
func (d *Director) beginPinch(a, b TouchPoint) {
	g := &d.gesture
	ax, ay := d.toCanvas(a.ClientX, a.ClientY)
	bx, by := d.toCanvas(b.ClientX, b.ClientY)
	pa, pb := Vec2{ax, ay}, Vec2{bx, by}
	g.lastDistance = pa.Distance(pb)
	g.lastCenter = pa.Add(pb).Scale(0.5)
	g.pinched = true
	d.setMode(GesturePinchZoom)
}

// pinchMove zooms by the damped distance ratio, then shifts the camera by
// the centre movement so the zoom anchors at the fingers.
func (d *Director) pinchMove(a, b TouchPoint) {
	g := &d.gesture
	ax, ay := d.toCanvas(a.ClientX, a.ClientY)
	bx, by := d.toCanvas(b.ClientX, b.ClientY)
	pa := d.pool.Get(ax, ay)
	pb := d.pool.Get(bx, by)
	defer d.pool.Put(pa)
	defer d.pool.Put(pb)

	dist := pa.Distance(*pb)
	center := pa.Add(*pb).Scale(0.5)

	if g.lastDistance > 0 {
		adj := Lerp(1, dist/g.lastDistance, pinchDamping)
		d.viewport.SetZoom(d.viewport.Zoom * adj)
		d.emit(InteractionEvent{Type: EventZoom, Zoom: d.viewport.Zoom})
	}
	d.viewport.PanBy(g.lastCenter.Sub(center).Scale(1 / d.viewport.Zoom))

	g.lastDistance = dist
	g.lastCenter = center
}

// resumeFromPinch drops back to the press mode with t as the new baseline.
func (d *Director) resumeFromPinch(t TouchPoint) {
	g := &d.gesture
	g.touchID = t.ID
	g.last.X, g.last.Y = d.toCanvas(t.ClientX, t.ClientY)
	g.lastDistance = 0
	d.setMode(g.resume)
}

func entityID(e *Entity) string {
	if e == nil {
		return ""
	}
	return e.ID
}
