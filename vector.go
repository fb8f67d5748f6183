package canvas

import "math"

// Vec2 is a 2D vector used for positions, offsets and deltas throughout the
// API.
//
// Value methods (Add, Sub, Lerp, ...) return a new vector and never touch the
// receiver. The *Assign methods mutate the receiver in place and return it so
// calls can be chained; after such a call every holder of that pointer sees
// the new value.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// AddScalar returns v with n added to both components.
func (v Vec2) AddScalar(n float64) Vec2 { return Vec2{v.X + n, v.Y + n} }

// SubScalar returns v with n subtracted from both components.
func (v Vec2) SubScalar(n float64) Vec2 { return Vec2{v.X - n, v.Y - n} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Distance returns the Euclidean distance between v and o.
func (v Vec2) Distance(o Vec2) float64 { return math.Hypot(v.X-o.X, v.Y-o.Y) }

// Lerp returns v blended toward o by t.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{Lerp(v.X, o.X, t), Lerp(v.Y, o.Y, t)}
}

// LerpRound is the integer variant of Lerp: the target is rounded before
// blending and the result is rounded after.
func (v Vec2) LerpRound(o Vec2, t float64) Vec2 {
	return Vec2{
		math.Round(Lerp(v.X, math.Round(o.X), t)),
		math.Round(Lerp(v.Y, math.Round(o.Y), t)),
	}
}

// Equal reports exact component equality.
func (v Vec2) Equal(o Vec2) bool { return v.X == o.X && v.Y == o.Y }

// --- In-place ---

// Set assigns both components.
func (v *Vec2) Set(x, y float64) *Vec2 {
	v.X, v.Y = x, y
	return v
}

// AddAssign adds o to v.
func (v *Vec2) AddAssign(o Vec2) *Vec2 {
	v.X += o.X
	v.Y += o.Y
	return v
}

// SubAssign subtracts o from v.
func (v *Vec2) SubAssign(o Vec2) *Vec2 {
	v.X -= o.X
	v.Y -= o.Y
	return v
}

// ScaleAssign multiplies v by s.
func (v *Vec2) ScaleAssign(s float64) *Vec2 {
	v.X *= s
	v.Y *= s
	return v
}

// AddScalarAssign adds n to both components.
func (v *Vec2) AddScalarAssign(n float64) *Vec2 {
	v.X += n
	v.Y += n
	return v
}

// SubScalarAssign subtracts n from both components.
func (v *Vec2) SubScalarAssign(n float64) *Vec2 {
	v.X -= n
	v.Y -= n
	return v
}

// NormalizeAssign scales v to unit length; the zero vector is left alone.
func (v *Vec2) NormalizeAssign() *Vec2 {
	*v = v.Normalize()
	return v
}

// LerpAssign moves v toward o by t.
func (v *Vec2) LerpAssign(o Vec2, t float64) *Vec2 {
	v.X = Lerp(v.X, o.X, t)
	v.Y = Lerp(v.Y, o.Y, t)
	return v
}

// LerpRoundAssign is the in-place form of LerpRound.
func (v *Vec2) LerpRoundAssign(o Vec2, t float64) *Vec2 {
	*v = v.LerpRound(o, t)
	return v
}
