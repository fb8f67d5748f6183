package canvas

// animator eases the rendered camera and the selected entity toward their
// targets. It never owns the targets: the authoritative viewport and the
// selection target are written by gestures and read here once per tick.
type animator struct {
	// rendered is the smoothed camera used for drawing.
	rendered Viewport
	// target is where the selected entity is heading. Gestures write it
	// directly; step moves the entity a fraction of the way.
	target Vec2
	factor float64
}

func newAnimator(vp *Viewport) *animator {
	return &animator{rendered: vp.Snapshot(), factor: SmoothingFactor}
}

// step runs the motion half of one tick:
//
//  1. rendered camera position and zoom move factor of the way toward auth
//  2. the selected entity moves factor of the way toward target
//  3. followers of the selection snap to owner.Position + Offset
//
// Screen size is copied, not eased.
func (a *animator) step(auth *Viewport, selected *Entity) {
	a.rendered.Width = auth.Width
	a.rendered.Height = auth.Height
	a.rendered.Position.LerpAssign(auth.Position, a.factor)
	a.rendered.Zoom = Lerp(a.rendered.Zoom, auth.Zoom, a.factor)

	if selected == nil {
		return
	}
	selected.Position.LerpAssign(a.target, a.factor)
	if selected.Control != nil {
		selected.Control.Snap()
	}
}

// retarget points the selection target at p without moving anything.
func (a *animator) retarget(p Vec2) {
	a.target = p
}

// jump moves both the selection target and the entity by d. Used for
// immediate moves that must not animate.
func (a *animator) jump(e *Entity, d Vec2) {
	a.target.AddAssign(d)
	e.Position = a.target
	if e.Control != nil {
		e.Control.Snap()
	}
}
