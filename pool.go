package canvas

import "math"

// Vec2Pool recycles *Vec2 scratch values created while handling input.
//
// A vector obtained from Get belongs to the caller until it is handed back
// with Put, and must not be touched afterwards. Borrow and release inside
// one synchronous handler; the pool is not safe for concurrent use.
type Vec2Pool struct {
	free []*Vec2

	// poison fills released vectors with NaN so a stale reference
	// produces obviously wrong coordinates. Enabled in debug mode.
	poison bool
}

// Get returns a recycled or new vector set to (x, y).
func (p *Vec2Pool) Get(x, y float64) *Vec2 {
	if n := len(p.free); n > 0 {
		v := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return v.Set(x, y)
	}
	return &Vec2{X: x, Y: y}
}

// Put returns v to the pool. Nil is ignored.
func (p *Vec2Pool) Put(v *Vec2) {
	if v == nil {
		return
	}
	if p.poison {
		v.Set(math.NaN(), math.NaN())
	}
	p.free = append(p.free, v)
}

// Len returns the number of idle vectors held by the pool.
func (p *Vec2Pool) Len() int {
	return len(p.free)
}
