package canvas

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// FrameID identifies a frame request made to a Scheduler.
type FrameID uint64

// Scheduler runs a callback once on the next display frame. Hosts plug in
// whatever drives their frames; Run uses the Ebitengine game loop.
type Scheduler interface {
	RequestFrame(fn func(dt float64)) FrameID
	CancelFrame(id FrameID)
}

// RenderFunc draws one entity or follower. vp is the smoothed viewport the
// frame is drawn with; vp.GeoM() maps world to surface pixels.
type RenderFunc func(dst *ebiten.Image, vp *Viewport, r Renderable)

// ClickEvent is passed to OnClick and OnTap.
type ClickEvent struct {
	X, Y             float64 // world
	ScreenX, ScreenY float64 // canvas-local
	Entity           *Entity // entity under the point, or nil
	Button           MouseButton
	Modifiers        KeyModifiers
}

// Callbacks are the hooks a host installs on a Director. Any of them may be
// nil. vp is always the authoritative viewport; hosts may read and move it.
type Callbacks struct {
	OnClick    func(ev ClickEvent, vp *Viewport)
	OnTap      func(ev ClickEvent, vp *Viewport)
	OnSelect   func(e *Entity, vp *Viewport)
	OnDeselect func(e *Entity, vp *Viewport)

	OnFollowerMouseDown func(f *Follower, vp *Viewport)
	OnFollowerMouseUp   func(f *Follower, vp *Viewport)
	// OnFollowerDrag receives the pointer movement as previous minus current
	// position, in world units. Pass it straight to ResizeFollower.
	OnFollowerDrag     func(f *Follower, dx, dy float64, vp *Viewport)
	OnFollowerMouseIn  func(f *Follower, vp *Viewport)
	OnFollowerMouseOut func(f *Follower, vp *Viewport)
}

// Options configure a Director. The zero value is usable: no logging, no
// drawing beyond the background, manual ticking and private event targets.
type Options struct {
	// Logger receives lifecycle messages and, in debug mode, frame stats.
	// Defaults to zap.NewNop().
	Logger *zap.Logger

	Callbacks Callbacks
	Render    RenderFunc

	// Scheduler re-runs Tick every frame between Start and Stop. Without
	// one, the host calls Tick itself.
	Scheduler Scheduler

	// Bounds returns the canvas rectangle in client coordinates. Defaults
	// to the surface bounds at the client origin.
	Bounds func() Rect

	// Canvas and Document are the input surfaces listened on. Fresh targets
	// are created when nil; reach them with Canvas() and Document().
	Canvas   *EventTarget
	Document *EventTarget

	// DragDeadZone is how far, in screen pixels, a press may travel and
	// still count as a click or tap. Defaults to 4.
	DragDeadZone float64

	// Background fills the surface before drawing. The zero Color selects
	// BackgroundColor.
	Background Color

	Store EntityStore
}

// Director binds the scene, the two viewports, the animator and the gesture
// coordinator to one rendering surface.
//
// All methods must be called from the thread that drives Tick and
// dispatches input.
type Director struct {
	surface  *ebiten.Image
	scene    *Scene
	viewport *Viewport // authoritative
	anim     *animator

	cb     Callbacks
	render RenderFunc
	log    *zap.Logger
	store  EntityStore

	sched   Scheduler
	frame   FrameID
	running bool

	bounds        func() Rect
	canvas        *EventTarget
	document      *EventTarget
	canvasHandles []ListenerHandle
	docHandles    []ListenerHandle
	gesture       gestureState
	deadZone      float64
	pool          Vec2Pool

	background Color
	debug      bool
	frameCount uint64

	injectQueue     []InputEvent
	testRunner      *TestRunner
	screenshotQueue []string

	// ScreenshotDir is the directory screenshots are written to. Defaults
	// to "screenshots".
	ScreenshotDir string
}

// New creates a director drawing onto surface. The entities slice is
// adopted by the scene. Returns ErrNoSurface when surface is nil or has no
// area.
func New(surface *ebiten.Image, entities []*Entity, opts Options) (*Director, error) {
	if err := checkSurface(surface); err != nil {
		return nil, err
	}
	b := surface.Bounds()

	d := &Director{
		surface:       surface,
		scene:         NewScene(entities),
		viewport:      NewViewport(float64(b.Dx()), float64(b.Dy())),
		cb:            opts.Callbacks,
		render:        opts.Render,
		log:           opts.Logger,
		store:         opts.Store,
		sched:         opts.Scheduler,
		bounds:        opts.Bounds,
		canvas:        opts.Canvas,
		document:      opts.Document,
		deadZone:      opts.DragDeadZone,
		background:    opts.Background,
		ScreenshotDir: "screenshots",
	}
	if d.log == nil {
		d.log = zap.NewNop()
	}
	if d.canvas == nil {
		d.canvas = NewEventTarget("canvas")
	}
	if d.document == nil {
		d.document = NewEventTarget("document")
	}
	if d.deadZone <= 0 {
		d.deadZone = defaultDragDeadZone
	}
	if d.background == (Color{}) {
		d.background = BackgroundColor
	}
	d.anim = newAnimator(d.viewport)
	d.scene.onDeselect = d.handleDeselect
	d.scene.onSelect = d.handleSelect

	d.log.Debug("director created",
		zap.Int("entities", len(entities)),
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()))
	return d, nil
}

func checkSurface(surface *ebiten.Image) error {
	if surface == nil {
		return ErrNoSurface
	}
	if b := surface.Bounds(); b.Empty() {
		return fmt.Errorf("%w: empty bounds %v", ErrNoSurface, b)
	}
	return nil
}

// --- Lifecycle ---

// Start attaches the canvas listeners and, when a Scheduler is set, begins
// re-scheduling Tick. Calling Start on a running director does nothing.
func (d *Director) Start() {
	if d.running {
		return
	}
	d.running = true
	d.canvasHandles = append(d.canvasHandles[:0],
		d.canvas.Listen(InputPointerDown, d.onPointerDown),
		d.canvas.Listen(InputPointerMove, d.onHover),
		d.canvas.Listen(InputWheel, d.onWheel),
		d.canvas.Listen(InputClick, d.onClick),
		d.canvas.Listen(InputTouchStart, d.onTouchStart),
	)
	if d.sched != nil {
		d.frame = d.sched.RequestFrame(d.loop)
	}
	d.log.Info("director started", zap.Int("entities", d.scene.Len()))
}

// Stop cancels the pending frame and removes every listener the director
// registered, including those of a gesture in progress. The gesture is
// abandoned without firing callbacks; a handle being dragged gets its box
// back and its owner stops resizing.
func (d *Director) Stop() {
	if !d.running {
		return
	}
	d.running = false
	if d.sched != nil && d.frame != 0 {
		d.sched.CancelFrame(d.frame)
	}
	d.frame = 0
	for _, h := range d.canvasHandles {
		h.Remove()
	}
	d.canvasHandles = d.canvasHandles[:0]
	if g := &d.gesture; g.mode == GestureHandleDrag && g.follower != nil && g.follower.attached() {
		d.FollowerDragStop(g.follower)
	}
	d.resetGesture()
	if d.debug {
		d.debugCheckListeners()
	}
	d.log.Info("director stopped", zap.Uint64("frames", d.frameCount))
}

// Running reports whether the director is between Start and Stop.
func (d *Director) Running() bool {
	return d.running
}

// SetScheduler replaces the frame scheduler. Ignored while running.
func (d *Director) SetScheduler(s Scheduler) {
	if d.running {
		d.log.Warn("SetScheduler ignored while running")
		return
	}
	d.sched = s
}

func (d *Director) loop(dt float64) {
	d.frame = 0
	if !d.running {
		return
	}
	d.Tick(dt)
	if d.running && d.sched != nil {
		d.frame = d.sched.RequestFrame(d.loop)
	}
}

// Tick advances one frame: scripted input, camera scroll, smoothing, then
// drawing. dt is in seconds and only drives ScrollTo tweens; smoothing is
// per tick.
func (d *Director) Tick(dt float64) {
	var stats debugStats
	var t0 time.Time
	if d.debug {
		t0 = time.Now()
	}
	d.frameCount++

	if d.testRunner != nil {
		d.testRunner.step(d)
	}
	d.processInjectedInput()

	d.viewport.update(float32(dt))
	d.anim.step(d.viewport, d.scene.selected)

	if d.debug {
		stats.updateTime = time.Since(t0)
		t0 = time.Now()
	}

	d.draw(&stats)

	if d.debug {
		stats.drawTime = time.Since(t0)
		d.debugLog(stats)
	}
	d.flushScreenshots()
}

// --- Accessors ---

// Scene returns the scene.
func (d *Director) Scene() *Scene {
	return d.scene
}

// Viewport returns the authoritative viewport.
func (d *Director) Viewport() *Viewport {
	return d.viewport
}

// RenderedViewport returns a copy of the smoothed viewport of the last tick.
func (d *Director) RenderedViewport() Viewport {
	return d.anim.rendered
}

// Surface returns the rendering surface.
func (d *Director) Surface() *ebiten.Image {
	return d.surface
}

// Canvas returns the canvas event target.
func (d *Director) Canvas() *EventTarget {
	return d.canvas
}

// Document returns the document event target.
func (d *Director) Document() *EventTarget {
	return d.document
}

// Logger returns the director's logger.
func (d *Director) Logger() *zap.Logger {
	return d.log
}

// Gesture returns the current gesture mode.
func (d *Director) Gesture() GestureMode {
	return d.gesture.mode
}

// SetEntityStore sets the optional ECS bridge.
func (d *Director) SetEntityStore(store EntityStore) {
	d.store = store
}

// SetDragDeadZone sets the click/tap travel threshold in screen pixels.
func (d *Director) SetDragDeadZone(pixels float64) {
	d.deadZone = pixels
}

// ClientToWorld converts client coordinates to world coordinates through
// the canvas bounds and the authoritative viewport.
func (d *Director) ClientToWorld(cx, cy float64) (float64, float64) {
	sx, sy := d.toCanvas(cx, cy)
	return d.viewport.ScreenToWorld(sx, sy)
}

func (d *Director) toCanvas(cx, cy float64) (float64, float64) {
	if d.bounds == nil {
		return cx, cy
	}
	r := d.bounds()
	return cx - r.X, cy - r.Y
}

// --- Mutation entry points ---

// Select makes e the selected entity (nil deselects). The previous
// selection's OnDeselect fires before e's OnSelect. The animation target
// is reset to e's position even when e was already selected.
func (d *Director) Select(e *Entity) {
	if !d.scene.Select(e) && e != nil {
		d.anim.retarget(e.Position)
	}
}

// Deselect clears the selection.
func (d *Director) Deselect() {
	d.scene.Select(nil)
}

// Selected returns the selected entity, or nil.
func (d *Director) Selected() *Entity {
	return d.scene.selected
}

// SelectionTarget returns where the selected entity is easing to.
func (d *Director) SelectionTarget() Vec2 {
	return d.anim.target
}

// SetSelectionTarget sets where the selected entity eases to.
func (d *Director) SetSelectionTarget(p Vec2) {
	d.anim.retarget(p)
}

// MoveSelectedImmediate moves the selected entity and its target by
// (dx, dy) world units without animating. No-op without a selection.
func (d *Director) MoveSelectedImmediate(dx, dy float64) {
	sel := d.scene.selected
	if sel == nil {
		return
	}
	d.anim.jump(sel, Vec2{dx, dy})
}

// ResizeFollower resizes the owner of f by a handle drag of (dx, dy), as
// delivered to OnFollowerDrag. Position corrections move the selection
// immediately.
func (d *Director) ResizeFollower(f *Follower, dx, dy float64) {
	c := f.Control()
	if c == nil {
		return
	}
	owner := c.Entity()
	c.Resize(f, dx, dy, func(sx, sy float64) {
		if owner == d.scene.selected {
			d.MoveSelectedImmediate(sx, sy)
			return
		}
		owner.Position.AddAssign(Vec2{sx, sy})
	})
	c.Snap()
}

// FollowerDragStart applies the pressed look to f and flags its owner as
// resizing when f is a resize handle.
func (d *Director) FollowerDragStart(f *Follower) {
	c := f.Control()
	if c == nil {
		return
	}
	c.DragStart(f)
	if e := c.Entity(); e != nil && f.Kind == KindResize {
		e.State.Resizing = true
	}
}

// FollowerDragStop undoes FollowerDragStart.
func (d *Director) FollowerDragStop(f *Follower) {
	c := f.Control()
	if c == nil {
		return
	}
	c.DragStop(f)
	if e := c.Entity(); e != nil && f.Kind == KindResize {
		e.State.Resizing = false
	}
}

// AttachResizeControl gives e the eight resize handles and places them.
func (d *Director) AttachResizeControl(e *Entity) *Control {
	c := NewResizeControl(d.scene, e)
	c.Snap()
	return c
}

// FocusOn scrolls the authoritative camera to the centre of e over
// duration seconds. The rendered camera follows through the usual
// smoothing. Panning cancels the scroll.
func (d *Director) FocusOn(e *Entity, duration float32) {
	if e == nil {
		return
	}
	cx := e.Position.X + e.Box.Width/2
	cy := e.Position.Y + e.Box.Height/2
	if duration <= 0 {
		d.viewport.PanBy(Vec2{cx, cy}.Sub(d.viewport.Position))
		return
	}
	d.viewport.ScrollTo(cx, cy, duration, nil)
}

// Resize changes the screen size of both viewports.
func (d *Director) Resize(width, height float64) {
	d.viewport.Resize(width, height)
	d.anim.rendered.Resize(width, height)
}

// SetSurface swaps the rendering surface and resizes the viewports to it.
func (d *Director) SetSurface(surface *ebiten.Image) error {
	if err := checkSurface(surface); err != nil {
		return err
	}
	d.surface = surface
	b := surface.Bounds()
	d.Resize(float64(b.Dx()), float64(b.Dy()))
	return nil
}

// Add inserts an entity into the scene.
func (d *Director) Add(e *Entity) {
	d.scene.Add(e)
}

// Remove deletes an entity from the scene, deselecting it first.
func (d *Director) Remove(id string) *Entity {
	return d.scene.Remove(id)
}

// --- Selection hooks ---

func (d *Director) handleDeselect(e *Entity) {
	if d.gesture.hoverFollower != nil && d.gesture.hoverFollower.owner == e.ID {
		d.gesture.hoverFollower = nil
	}
	if d.cb.OnDeselect != nil {
		d.cb.OnDeselect(e, d.viewport)
	}
	d.emit(InteractionEvent{Type: EventDeselect, EntityID: e.ID, X: e.Position.X, Y: e.Position.Y})
}

func (d *Director) handleSelect(e *Entity) {
	d.anim.retarget(e.Position)
	if d.cb.OnSelect != nil {
		d.cb.OnSelect(e, d.viewport)
	}
	d.emit(InteractionEvent{Type: EventSelect, EntityID: e.ID, X: e.Position.X, Y: e.Position.Y})
}

func (d *Director) emit(ev InteractionEvent) {
	if d.store == nil {
		return
	}
	d.store.EmitEvent(ev)
}
