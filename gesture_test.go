package canvas

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func press(d *Director, x, y float64) {
	d.Deliver(InputEvent{Kind: InputPointerDown, ClientX: x, ClientY: y, Button: MouseButtonLeft})
}

func move(d *Director, x, y float64) {
	d.Deliver(InputEvent{Kind: InputPointerMove, ClientX: x, ClientY: y})
}

func release(d *Director, x, y float64) {
	d.Deliver(InputEvent{Kind: InputPointerUp, ClientX: x, ClientY: y, Button: MouseButtonLeft})
}

func click(d *Director, x, y float64, b MouseButton) {
	d.Deliver(InputEvent{Kind: InputClick, ClientX: x, ClientY: y, Button: b})
}

func touch(d *Director, kind EventKind, pts ...TouchPoint) {
	d.Deliver(InputEvent{Kind: kind, Touches: pts})
}

// centred returns an entity whose box is centred on the world origin, which
// sits at screen (400, 300) for the default test director.
func centred(id string) *Entity {
	return newTestEntity(id, -50, -50, 100, 100)
}

// --- Mouse ---

func TestCameraPanOnEmptySpace(t *testing.T) {
	d := newTestDirector(t, Options{})

	press(d, 400, 300)
	if d.Gesture() != GestureCameraPan {
		t.Fatalf("mode = %v, want camera-pan", d.Gesture())
	}
	if d.Document().Len() != 2 {
		t.Errorf("document listeners = %d, want 2", d.Document().Len())
	}

	move(d, 410, 300)
	move(d, 410, 320)
	if d.Viewport().Position != (Vec2{-10, -20}) {
		t.Errorf("camera = %v, want (-10,-20)", d.Viewport().Position)
	}

	release(d, 410, 320)
	if d.Gesture() != GestureIdle || d.Document().Len() != 0 {
		t.Errorf("after release: mode %v, document listeners %d", d.Gesture(), d.Document().Len())
	}
}

func TestCameraPanScalesWithZoom(t *testing.T) {
	d := newTestDirector(t, Options{})
	d.Viewport().SetZoom(2)

	press(d, 400, 300)
	move(d, 410, 300)
	release(d, 410, 300)
	if d.Viewport().Position != (Vec2{-5, 0}) {
		t.Errorf("camera = %v, want (-5,0)", d.Viewport().Position)
	}
}

func TestPressIgnoredDuringGesture(t *testing.T) {
	d := newTestDirector(t, Options{})
	press(d, 400, 300)
	press(d, 450, 300)
	if d.Document().Len() != 2 {
		t.Errorf("document listeners = %d, want 2", d.Document().Len())
	}
}

func TestEntityPanMovesTarget(t *testing.T) {
	e := centred("card")
	var selected []string
	d := newTestDirector(t, Options{
		Callbacks: Callbacks{OnSelect: func(e *Entity, _ *Viewport) { selected = append(selected, e.ID) }},
	}, e)

	press(d, 400, 300)
	if d.Gesture() != GestureEntityPan || d.Selected() != e {
		t.Fatalf("mode %v selected %v", d.Gesture(), d.Selected())
	}
	move(d, 420, 300)
	if d.SelectionTarget() != (Vec2{-30, -50}) {
		t.Errorf("target = %v, want (-30,-50)", d.SelectionTarget())
	}
	// The entity eases; it does not jump.
	if e.Position != (Vec2{-50, -50}) {
		t.Errorf("entity moved before tick: %v", e.Position)
	}
	d.Tick(0)
	if !approxEqual(e.Position.X, -46, epsilon) {
		t.Errorf("after tick X = %v, want -46", e.Position.X)
	}
	release(d, 420, 300)

	if diff := cmp.Diff([]string{"card"}, selected); diff != "" {
		t.Errorf("OnSelect (-want +got):\n%s", diff)
	}
	if d.Viewport().Position != (Vec2{}) {
		t.Errorf("camera moved during entity pan: %v", d.Viewport().Position)
	}
}

func TestHandleDragResizesOwner(t *testing.T) {
	e := newTestEntity("card", 0, 0, 100, 100)
	store := &recordingStore{}
	var d *Director
	var drags []Vec2
	var down, up int
	d = newTestDirector(t, Options{
		Store: store,
		Callbacks: Callbacks{
			OnFollowerMouseDown: func(f *Follower, _ *Viewport) {
				down++
				d.FollowerDragStart(f)
			},
			OnFollowerMouseUp: func(f *Follower, _ *Viewport) {
				up++
				d.FollowerDragStop(f)
			},
			OnFollowerDrag: func(f *Follower, dx, dy float64, _ *Viewport) {
				drags = append(drags, Vec2{dx, dy})
				d.ResizeFollower(f, dx, dy)
			},
		},
	}, e)
	d.Select(e)
	d.AttachResizeControl(e)

	// World (100, 100) is the bottom-right corner.
	press(d, 500, 400)
	if d.Gesture() != GestureHandleDrag {
		t.Fatalf("mode = %v, want handle-drag", d.Gesture())
	}
	if !e.State.Resizing {
		t.Error("owner not flagged as resizing")
	}
	move(d, 510, 410)
	release(d, 510, 410)

	if diff := cmp.Diff([]Vec2{{-10, -10}}, drags); diff != "" {
		t.Errorf("drag deltas (-want +got):\n%s", diff)
	}
	if e.Box.Width != 110 || e.Box.Height != 110 || e.Position != (Vec2{}) {
		t.Errorf("box %+v position %v", e.Box, e.Position)
	}
	if down != 1 || up != 1 || e.State.Resizing {
		t.Errorf("down %d up %d resizing %v", down, up, e.State.Resizing)
	}
	if d.Selected() != e {
		t.Error("handle press changed the selection")
	}
	want := []EventType{EventSelect, EventFollowerDown, EventFollowerDrag, EventFollowerUp}
	if diff := cmp.Diff(want, store.types()); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
	if ev := store.events[2]; ev.Direction != DirBottomRight || ev.EntityID != "card" {
		t.Errorf("drag event = %+v", ev)
	}
}

func TestStopAbandonsGesture(t *testing.T) {
	e := newTestEntity("card", 0, 0, 100, 100)
	ups := 0
	var d *Director
	d = newTestDirector(t, Options{
		Callbacks: Callbacks{
			OnFollowerMouseDown: func(f *Follower, _ *Viewport) { d.FollowerDragStart(f) },
			OnFollowerMouseUp:   func(*Follower, *Viewport) { ups++ },
		},
	}, e)
	d.Select(e)
	c := d.AttachResizeControl(e)
	br := handle(c, DirBottomRight)

	press(d, 500, 400)
	if d.Document().Len() == 0 {
		t.Fatal("no document listeners during drag")
	}
	if br.Box == (Size{12, 12}) || !e.State.Resizing {
		t.Fatalf("drag affordance not applied: box %v resizing %v", br.Box, e.State.Resizing)
	}
	d.Stop()
	if d.Document().Len() != 0 || d.Canvas().Len() != 0 {
		t.Errorf("listeners left: canvas %d document %d", d.Canvas().Len(), d.Document().Len())
	}
	if d.Gesture() != GestureIdle || ups != 0 {
		t.Errorf("mode %v, OnFollowerMouseUp fired %d times", d.Gesture(), ups)
	}
	if br.Box != (Size{12, 12}) {
		t.Errorf("handle box = %v, want 12x12 restored", br.Box)
	}
	if e.State.Resizing {
		t.Error("owner still flagged as resizing")
	}
}

func TestEmptyPressDeselects(t *testing.T) {
	e := centred("card")
	var deselected []string
	d := newTestDirector(t, Options{
		Callbacks: Callbacks{OnDeselect: func(e *Entity, _ *Viewport) { deselected = append(deselected, e.ID) }},
	}, e)

	press(d, 400, 300)
	release(d, 400, 300)
	d.AttachResizeControl(e)
	if d.Selected() != e || len(e.Followers()) != 8 {
		t.Fatalf("selected %v with %d handles", d.Selected(), len(e.Followers()))
	}

	press(d, 750, 50)
	if d.Gesture() != GestureCameraPan {
		t.Errorf("mode = %v, want camera-pan", d.Gesture())
	}
	if d.Selected() != nil {
		t.Errorf("Selected = %v, want nil", d.Selected())
	}
	if diff := cmp.Diff([]string{"card"}, deselected); diff != "" {
		t.Errorf("OnDeselect (-want +got):\n%s", diff)
	}
	if e.Followers() != nil || e.State.Selected || e.ZIndex != 0 {
		t.Errorf("entity not released: followers %d selected %v z %d", len(e.Followers()), e.State.Selected, e.ZIndex)
	}
	release(d, 750, 50)

	// A second empty press has nothing left to release.
	press(d, 750, 50)
	if len(deselected) != 1 {
		t.Errorf("OnDeselect fired %d times, want 1", len(deselected))
	}
}

func TestTwoFingerEmptyStartKeepsSelection(t *testing.T) {
	e := centred("card")
	d := newTestDirector(t, Options{}, e)
	d.Select(e)
	touch(d, InputTouchStart, TouchPoint{ID: 1, ClientX: 700, ClientY: 100}, TouchPoint{ID: 2, ClientX: 750, ClientY: 100})
	if d.Selected() != e {
		t.Error("pinch start released the selection")
	}
}

// --- Click ---

func TestClickWithinDeadZone(t *testing.T) {
	e := centred("card")
	var clicks []ClickEvent
	d := newTestDirector(t, Options{
		Callbacks: Callbacks{OnClick: func(ev ClickEvent, _ *Viewport) { clicks = append(clicks, ev) }},
	}, e)

	press(d, 400, 300)
	move(d, 403, 300)
	release(d, 403, 300)
	click(d, 403, 300, MouseButtonLeft)

	if len(clicks) != 1 {
		t.Fatalf("clicks = %d, want 1", len(clicks))
	}
	if clicks[0].Entity != e || clicks[0].ScreenX != 403 {
		t.Errorf("click = %+v", clicks[0])
	}
}

func TestClickSuppressedAfterDrag(t *testing.T) {
	clicks := 0
	d := newTestDirector(t, Options{
		Callbacks: Callbacks{OnClick: func(ClickEvent, *Viewport) { clicks++ }},
	})

	press(d, 400, 300)
	move(d, 405, 300)
	release(d, 405, 300)
	click(d, 405, 300, MouseButtonLeft)
	if clicks != 0 {
		t.Fatalf("click fired after a drag")
	}

	// The flag is consumed; the next clean press clicks again.
	press(d, 400, 300)
	release(d, 400, 300)
	click(d, 400, 300, MouseButtonLeft)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestClickCustomDeadZone(t *testing.T) {
	clicks := 0
	d := newTestDirector(t, Options{
		DragDeadZone: 10,
		Callbacks:    Callbacks{OnClick: func(ClickEvent, *Viewport) { clicks++ }},
	})
	press(d, 400, 300)
	move(d, 408, 300)
	release(d, 408, 300)
	click(d, 408, 300, MouseButtonLeft)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestClickIgnoresOtherButtons(t *testing.T) {
	clicks := 0
	d := newTestDirector(t, Options{
		Callbacks: Callbacks{OnClick: func(ClickEvent, *Viewport) { clicks++ }},
	})
	click(d, 400, 300, MouseButtonRight)
	click(d, 400, 300, MouseButtonMiddle)
	if clicks != 0 {
		t.Errorf("non-left clicks fired %d times", clicks)
	}
}

// --- Hover ---

func TestHoverFollowerInOut(t *testing.T) {
	e := newTestEntity("card", 0, 0, 100, 100)
	var log []string
	d := newTestDirector(t, Options{
		Callbacks: Callbacks{
			OnFollowerMouseIn:  func(f *Follower, _ *Viewport) { log = append(log, "in:"+f.Direction.String()) },
			OnFollowerMouseOut: func(f *Follower, _ *Viewport) { log = append(log, "out:"+f.Direction.String()) },
		},
	}, e)
	d.Select(e)
	d.AttachResizeControl(e)

	move(d, 500, 400) // bottom-right handle
	move(d, 501, 401) // same handle
	move(d, 450, 350) // inside the card
	move(d, 750, 300) // empty space

	want := []string{"in:bottom-right", "out:bottom-right"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("hover (-want +got):\n%s", diff)
	}
	if e.State.Hovered || d.Scene().Hovered() != nil {
		t.Error("hover not cleared over empty space")
	}
}

func TestHoverAfterControlReplaced(t *testing.T) {
	e := newTestEntity("card", 0, 0, 100, 100)
	var log []string
	d := newTestDirector(t, Options{
		Callbacks: Callbacks{
			OnFollowerMouseIn: func(f *Follower, _ *Viewport) { log = append(log, "in:"+f.Direction.String()) },
			OnFollowerMouseOut: func(f *Follower, _ *Viewport) {
				if !f.attached() {
					t.Errorf("mouse-out for a discarded %v handle", f.Direction)
				}
				log = append(log, "out:"+f.Direction.String())
			},
		},
	}, e)
	d.Select(e)
	d.AttachResizeControl(e)

	move(d, 500, 400)
	d.AttachResizeControl(e)
	move(d, 450, 350)
	move(d, 500, 400)
	move(d, 450, 350)

	want := []string{"in:bottom-right", "in:bottom-right", "out:bottom-right"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("hover (-want +got):\n%s", diff)
	}
}

func TestHoverTracksEntity(t *testing.T) {
	e := centred("card")
	d := newTestDirector(t, Options{}, e)
	move(d, 400, 300)
	if !e.State.Hovered {
		t.Fatal("entity not hovered")
	}
	// Hover is frozen while a gesture runs.
	press(d, 400, 300)
	move(d, 750, 300)
	if !e.State.Hovered {
		t.Error("hover changed during a gesture")
	}
}

// --- Wheel ---

func TestWheelZoom(t *testing.T) {
	store := &recordingStore{}
	d := newTestDirector(t, Options{Store: store})

	d.Deliver(InputEvent{Kind: InputWheel, ClientX: 400, ClientY: 300, DeltaY: -100})
	want := math.Pow(1.01, 20)
	if !approxEqual(d.Viewport().Zoom, want, 1e-9) {
		t.Errorf("zoom = %v, want %v", d.Viewport().Zoom, want)
	}
	if len(store.events) != 1 || store.events[0].Type != EventZoom {
		t.Errorf("events = %+v", store.events)
	}

	for i := 0; i < 100; i++ {
		d.Deliver(InputEvent{Kind: InputWheel, DeltaY: -1000})
	}
	if d.Viewport().Zoom != MaxZoom {
		t.Errorf("zoom = %v, want max", d.Viewport().Zoom)
	}
	for i := 0; i < 100; i++ {
		d.Deliver(InputEvent{Kind: InputWheel, DeltaY: 1000})
	}
	if d.Viewport().Zoom != MinZoom {
		t.Errorf("zoom = %v, want min", d.Viewport().Zoom)
	}
}

// --- Touch ---

func TestPinchZoom(t *testing.T) {
	d := newTestDirector(t, Options{})

	touch(d, InputTouchStart, TouchPoint{ID: 1, ClientX: 350, ClientY: 300}, TouchPoint{ID: 2, ClientX: 450, ClientY: 300})
	if d.Gesture() != GesturePinchZoom {
		t.Fatalf("mode = %v, want pinch-zoom", d.Gesture())
	}
	if d.Document().Len() != 3 {
		t.Errorf("document listeners = %d, want 3", d.Document().Len())
	}

	touch(d, InputTouchMove, TouchPoint{ID: 1, ClientX: 325, ClientY: 300}, TouchPoint{ID: 2, ClientX: 475, ClientY: 300})
	if !approxEqual(d.Viewport().Zoom, 1.25, epsilon) {
		t.Errorf("zoom = %v, want 1.25", d.Viewport().Zoom)
	}
	if d.Viewport().Position != (Vec2{}) {
		t.Errorf("symmetric pinch panned to %v", d.Viewport().Position)
	}

	// Lifting one finger resumes panning from the remaining one.
	touch(d, InputTouchEnd, TouchPoint{ID: 1, ClientX: 325, ClientY: 300})
	if d.Gesture() != GestureCameraPan {
		t.Fatalf("mode = %v, want camera-pan", d.Gesture())
	}
	touch(d, InputTouchMove, TouchPoint{ID: 1, ClientX: 350, ClientY: 300})
	if !approxEqual(d.Viewport().Position.X, -20, epsilon) {
		t.Errorf("camera X = %v, want -20", d.Viewport().Position.X)
	}

	touch(d, InputTouchEnd)
	if d.Gesture() != GestureIdle || d.Document().Len() != 0 {
		t.Errorf("after end: mode %v, document listeners %d", d.Gesture(), d.Document().Len())
	}
}

func TestPinchCentreMovePans(t *testing.T) {
	d := newTestDirector(t, Options{})
	touch(d, InputTouchStart, TouchPoint{ID: 1, ClientX: 350, ClientY: 300}, TouchPoint{ID: 2, ClientX: 450, ClientY: 300})
	touch(d, InputTouchMove, TouchPoint{ID: 1, ClientX: 360, ClientY: 300}, TouchPoint{ID: 2, ClientX: 460, ClientY: 300})
	if d.Viewport().Zoom != 1 {
		t.Errorf("zoom = %v, want 1", d.Viewport().Zoom)
	}
	if !approxEqual(d.Viewport().Position.X, -10, epsilon) {
		t.Errorf("camera X = %v, want -10", d.Viewport().Position.X)
	}
}

func TestSecondFingerDoesNotReRegister(t *testing.T) {
	e := centred("card")
	d := newTestDirector(t, Options{}, e)

	touch(d, InputTouchStart, TouchPoint{ID: 1, ClientX: 400, ClientY: 300})
	if d.Gesture() != GestureEntityPan {
		t.Fatalf("mode = %v, want entity-pan", d.Gesture())
	}
	touch(d, InputTouchStart, TouchPoint{ID: 1, ClientX: 400, ClientY: 300}, TouchPoint{ID: 2, ClientX: 500, ClientY: 300})
	if d.Gesture() != GesturePinchZoom {
		t.Fatalf("mode = %v, want pinch-zoom", d.Gesture())
	}
	if d.Document().Len() != 3 {
		t.Errorf("document listeners = %d, want 3", d.Document().Len())
	}
	// Back to one finger: the press mode resumes.
	touch(d, InputTouchEnd, TouchPoint{ID: 2, ClientX: 500, ClientY: 300})
	if d.Gesture() != GestureEntityPan {
		t.Errorf("mode = %v, want entity-pan", d.Gesture())
	}
}

func TestTwoFingerStartKeepsSelection(t *testing.T) {
	e := centred("card")
	d := newTestDirector(t, Options{}, e)
	touch(d, InputTouchStart, TouchPoint{ID: 1, ClientX: 400, ClientY: 300}, TouchPoint{ID: 2, ClientX: 410, ClientY: 300})
	if d.Selected() != nil {
		t.Error("two-finger start selected an entity")
	}
}

func TestTap(t *testing.T) {
	e := centred("card")
	var taps []ClickEvent
	clicks := 0
	d := newTestDirector(t, Options{
		Callbacks: Callbacks{
			OnTap:   func(ev ClickEvent, _ *Viewport) { taps = append(taps, ev) },
			OnClick: func(ClickEvent, *Viewport) { clicks++ },
		},
	}, e)

	touch(d, InputTouchStart, TouchPoint{ID: 1, ClientX: 400, ClientY: 300})
	touch(d, InputTouchEnd)

	if len(taps) != 1 {
		t.Fatalf("taps = %d, want 1", len(taps))
	}
	if taps[0].Entity != e || taps[0].X != 0 || taps[0].Y != 0 {
		t.Errorf("tap = %+v", taps[0])
	}
	if d.Gesture() != GestureIdle || d.Document().Len() != 0 {
		t.Errorf("mode %v document listeners %d", d.Gesture(), d.Document().Len())
	}
	// Touch presses leave no pending click suppression behind.
	press(d, 400, 300)
	release(d, 400, 300)
	click(d, 400, 300, MouseButtonLeft)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestNoTapAfterTravelOrCancel(t *testing.T) {
	taps := 0
	d := newTestDirector(t, Options{
		Callbacks: Callbacks{OnTap: func(ClickEvent, *Viewport) { taps++ }},
	})

	touch(d, InputTouchStart, TouchPoint{ID: 1, ClientX: 400, ClientY: 300})
	touch(d, InputTouchMove, TouchPoint{ID: 1, ClientX: 420, ClientY: 300})
	touch(d, InputTouchEnd)

	touch(d, InputTouchStart, TouchPoint{ID: 1, ClientX: 400, ClientY: 300})
	touch(d, InputTouchCancel)

	touch(d, InputTouchStart, TouchPoint{ID: 1, ClientX: 350, ClientY: 300}, TouchPoint{ID: 2, ClientX: 450, ClientY: 300})
	touch(d, InputTouchEnd)

	if taps != 0 {
		t.Errorf("taps = %d, want 0", taps)
	}
	if d.Document().Len() != 0 {
		t.Errorf("document listeners = %d", d.Document().Len())
	}
}

func TestTouchIgnoresMouseEvents(t *testing.T) {
	d := newTestDirector(t, Options{})
	touch(d, InputTouchStart, TouchPoint{ID: 1, ClientX: 400, ClientY: 300})
	// Mouse listeners are not registered for a touch press.
	release(d, 400, 300)
	if d.Gesture() != GestureCameraPan {
		t.Errorf("mouse release ended a touch gesture: %v", d.Gesture())
	}
}
