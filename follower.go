package canvas

// FollowerKind tags what a follower is for. Hosts pick a drawing routine
// from it.
type FollowerKind string

const (
	KindResize FollowerKind = "button:icon:resize" // resize handle
	KindAdd    FollowerKind = "button:icon:add"    // "add child" button
)

// ResizeDirection is the edge or corner a resize handle controls.
type ResizeDirection uint8

const (
	DirNone ResizeDirection = iota
	DirTopLeft
	DirTopRight
	DirBottomLeft
	DirBottomRight
	DirLeftCenter
	DirRightCenter
	DirTopCenter
	DirBottomCenter
)

var directionNames = [...]string{
	DirNone:         "none",
	DirTopLeft:      "top-left",
	DirTopRight:     "top-right",
	DirBottomLeft:   "bottom-left",
	DirBottomRight:  "bottom-right",
	DirLeftCenter:   "left-center",
	DirRightCenter:  "right-center",
	DirTopCenter:    "top-center",
	DirBottomCenter: "bottom-center",
}

func (d ResizeDirection) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// IsCorner reports whether d is one of the four corner directions.
func (d ResizeDirection) IsCorner() bool {
	return d >= DirTopLeft && d <= DirBottomRight
}

// resizeRule is one row of the resize table: box deltas and the position
// shift, each expressed as multipliers of the incoming (dx, dy).
type resizeRule struct {
	dw, dh         float64 // width += dw*dx, height += dh*dy
	shiftX, shiftY float64 // position += (shiftX*dx, shiftY*dy)
}

var resizeRules = [...]resizeRule{
	DirTopLeft:      {dw: 1, dh: 1, shiftX: -1, shiftY: -1},
	DirTopRight:     {dw: -1, dh: 1, shiftY: -1},
	DirBottomLeft:   {dw: 1, dh: -1, shiftX: -1},
	DirBottomRight:  {dw: -1, dh: -1},
	DirLeftCenter:   {dw: 1, shiftX: -1},
	DirRightCenter:  {dw: -1},
	DirTopCenter:    {dh: 1, shiftY: -1},
	DirBottomCenter: {dh: -1},
}

// Follower is a handle rigidly attached to a selected entity.
//
// Position is derived: the animation loop sets it to owner.Position+Offset
// every tick. Offset is recomputed by the owning Control whenever the owner
// box or the handle box changes.
type Follower struct {
	Kind      FollowerKind
	Direction ResizeDirection
	Offset    Vec2
	Position  Vec2
	Box       Size
	Payload   map[string]any

	zIndex int
	zSet   bool

	// owner is the owning entity's ID, resolved through scene on demand.
	owner   string
	scene   *Scene
	prevBox Size
}

// Bounds returns the world-space box of the follower.
func (f *Follower) Bounds() Rect {
	return Rect{X: f.Position.X, Y: f.Position.Y, Width: f.Box.Width, Height: f.Box.Height}
}

// Contains reports whether the world point lies inside the follower box.
func (f *Follower) Contains(x, y float64) bool {
	return f.Bounds().Contains(x, y)
}

// SetZIndex pins the follower's draw order.
func (f *Follower) SetZIndex(z int) {
	f.zIndex = z
	f.zSet = true
}

// Z returns the pinned draw order, or one above the owner.
func (f *Follower) Z() int {
	if f.zSet {
		return f.zIndex
	}
	if e := f.Owner(); e != nil {
		return e.ZIndex + 1
	}
	return 1
}

// OwnerID returns the ID of the entity this follower belongs to.
func (f *Follower) OwnerID() string {
	return f.owner
}

// Owner resolves the owning entity. Returns nil once the entity has left
// the scene.
func (f *Follower) Owner() *Entity {
	if f.scene == nil {
		return nil
	}
	return f.scene.Entity(f.owner)
}

// Control resolves the aggregate that owns f, or nil.
func (f *Follower) Control() *Control {
	e := f.Owner()
	if e == nil {
		return nil
	}
	return e.Control
}

// attached reports whether f still lives in its owner's current control.
// Replacing or growing a control's follower slice detaches old pointers.
func (f *Follower) attached() bool {
	c := f.Control()
	if c == nil {
		return false
	}
	for i := range c.followers {
		if &c.followers[i] == f {
			return true
		}
	}
	return false
}

// recalculate recomputes Offset from the owner's box.
// Corners straddle both edges; edge-centre handles straddle their edge and
// are centred along it.
func (f *Follower) recalculate(owner Box) {
	hw := f.Box.Width / 2
	hh := f.Box.Height / 2
	switch f.Direction {
	case DirTopLeft:
		f.Offset = Vec2{-hw, -hh}
	case DirTopRight:
		f.Offset = Vec2{owner.Width - hw, -hh}
	case DirBottomLeft:
		f.Offset = Vec2{-hw, owner.Height - hh}
	case DirBottomRight:
		f.Offset = Vec2{owner.Width - hw, owner.Height - hh}
	case DirLeftCenter:
		f.Offset = Vec2{-hw, owner.Height/2 - hh}
	case DirRightCenter:
		f.Offset = Vec2{owner.Width - hw, owner.Height/2 - hh}
	case DirTopCenter:
		f.Offset = Vec2{owner.Width/2 - hw, -hh}
	case DirBottomCenter:
		f.Offset = Vec2{owner.Width/2 - hw, owner.Height - hh}
	}
}

// --- Control ---

// Control is the aggregate owning the set of handles of one entity.
// Followers are stored by value; pointers returned by At stay valid until
// the control is discarded.
type Control struct {
	owner     string
	scene     *Scene
	followers []Follower
}

// NewControl creates an empty control for e and attaches it, replacing any
// previous one. Panics if e is nil.
func NewControl(scene *Scene, e *Entity) *Control {
	if e == nil {
		panic("canvas: cannot attach control to nil entity")
	}
	c := &Control{owner: e.ID, scene: scene}
	e.Control = c
	return c
}

// NewResizeControl attaches the eight resize handles to e: edge centres are
// 10x10, corners 12x12.
func NewResizeControl(scene *Scene, e *Entity) *Control {
	c := NewControl(scene, e)
	c.followers = make([]Follower, 0, 8)
	for _, d := range [...]ResizeDirection{DirLeftCenter, DirRightCenter, DirBottomCenter, DirTopCenter} {
		c.Add(Follower{Kind: KindResize, Direction: d, Box: Size{10, 10}})
	}
	for _, d := range [...]ResizeDirection{DirTopLeft, DirTopRight, DirBottomLeft, DirBottomRight} {
		c.Add(Follower{Kind: KindResize, Direction: d, Box: Size{12, 12}})
	}
	return c
}

// Add appends a follower, binds it to the control's entity and returns it.
// Callers place non-resize followers by setting Offset themselves.
func (c *Control) Add(f Follower) *Follower {
	f.owner = c.owner
	f.scene = c.scene
	f.prevBox = f.Box
	c.followers = append(c.followers, f)
	nf := &c.followers[len(c.followers)-1]
	if e := c.Entity(); e != nil && nf.Direction != DirNone {
		nf.recalculate(e.Box)
	}
	return nf
}

// EntityID returns the ID of the owning entity.
func (c *Control) EntityID() string {
	return c.owner
}

// Entity resolves the owning entity, or nil when it left the scene.
func (c *Control) Entity() *Entity {
	if c.scene == nil {
		return nil
	}
	return c.scene.Entity(c.owner)
}

// Len returns the number of followers.
func (c *Control) Len() int {
	return len(c.followers)
}

// At returns the i-th follower.
func (c *Control) At(i int) *Follower {
	return &c.followers[i]
}

// Followers returns the follower arena. The slice MUST NOT be appended to.
func (c *Control) Followers() []Follower {
	return c.followers
}

// Recalculate recomputes the offsets of every handle against the owner box.
func (c *Control) Recalculate() {
	e := c.Entity()
	if e == nil {
		return
	}
	for i := range c.followers {
		if c.followers[i].Direction != DirNone {
			c.followers[i].recalculate(e.Box)
		}
	}
}

// Snap places every follower at owner.Position + Offset.
func (c *Control) Snap() {
	e := c.Entity()
	if e == nil {
		return
	}
	for i := range c.followers {
		f := &c.followers[i]
		f.Position = e.Position.Add(f.Offset)
	}
}

// Resize applies a handle drag of (dx, dy) world units to the owning entity.
// dx and dy are "previous minus current" pointer positions, the convention
// used by follower drag callbacks. Width and height never drop below
// MinBoxSize; shift is called with the position correction even when the
// floor clamps, so the opposite edge stays put. All handles are recalculated
// afterwards.
func (c *Control) Resize(f *Follower, dx, dy float64, shift func(dx, dy float64)) {
	e := c.Entity()
	if e == nil || f == nil || f.Direction == DirNone || int(f.Direction) >= len(resizeRules) {
		return
	}
	r := resizeRules[f.Direction]
	e.Box.Width = max(e.Box.Width+r.dw*dx, MinBoxSize)
	e.Box.Height = max(e.Box.Height+r.dh*dy, MinBoxSize)
	if shift != nil {
		shift(r.shiftX*dx, r.shiftY*dy)
	}
	c.Recalculate()
}

// DragStart enlarges f by 1.2 as a pressed affordance. The exact box is
// kept for DragStop.
func (c *Control) DragStart(f *Follower) {
	f.prevBox = f.Box
	f.Box.Width *= dragScale
	f.Box.Height *= dragScale
	if e := c.Entity(); e != nil && f.Direction != DirNone {
		f.recalculate(e.Box)
	}
}

// DragStop restores the box saved by DragStart.
func (c *Control) DragStop(f *Follower) {
	f.Box = f.prevBox
	if e := c.Entity(); e != nil && f.Direction != DirNone {
		f.recalculate(e.Box)
	}
}
