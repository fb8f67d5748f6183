package canvas

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.2, 2},
		{1, 1.5, 0.5, 1.25},
		{-4, 4, 0.5, 0},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); !approxEqual(got, tt.want, epsilon) {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}

func TestVec2ValueMethodsDoNotMutate(t *testing.T) {
	v := Vec2{3, 4}
	_ = v.Add(Vec2{1, 1})
	_ = v.Sub(Vec2{1, 1})
	_ = v.Scale(2)
	_ = v.Normalize()
	_ = v.Lerp(Vec2{10, 10}, 0.5)
	if v != (Vec2{3, 4}) {
		t.Errorf("value methods mutated receiver: %v", v)
	}
}

func TestVec2Arithmetic(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Add(Vec2{1, 2}); got != (Vec2{4, 6}) {
		t.Errorf("Add = %v", got)
	}
	if got := v.Sub(Vec2{1, 2}); got != (Vec2{2, 2}) {
		t.Errorf("Sub = %v", got)
	}
	if got := v.Scale(0.5); got != (Vec2{1.5, 2}) {
		t.Errorf("Scale = %v", got)
	}
	if got := v.AddScalar(1); got != (Vec2{4, 5}) {
		t.Errorf("AddScalar = %v", got)
	}
	if got := v.SubScalar(1); got != (Vec2{2, 3}) {
		t.Errorf("SubScalar = %v", got)
	}
	if got := v.Dot(Vec2{2, 1}); got != 10 {
		t.Errorf("Dot = %v, want 10", got)
	}
	if got := v.Len(); got != 5 {
		t.Errorf("Len = %v, want 5", got)
	}
	if got := v.Distance(Vec2{0, 0}); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	n := v.Normalize()
	if !approxEqual(n.X, 0.6, epsilon) || !approxEqual(n.Y, 0.8, epsilon) {
		t.Errorf("Normalize = %v, want (0.6, 0.8)", n)
	}
	if z := (Vec2{}).Normalize(); z != (Vec2{}) {
		t.Errorf("Normalize(zero) = %v, want zero", z)
	}
	if !v.Equal(Vec2{3, 4}) || v.Equal(Vec2{3, 5}) {
		t.Error("Equal mismatch")
	}
}

func TestVec2LerpRound(t *testing.T) {
	v := Vec2{0, 0}
	got := v.LerpRound(Vec2{9.6, -9.6}, 0.5)
	// target rounds to (10, -10), halfway is (5, -5)
	if got != (Vec2{5, -5}) {
		t.Errorf("LerpRound = %v, want (5,-5)", got)
	}
}

func TestVec2InPlaceChaining(t *testing.T) {
	v := &Vec2{1, 1}
	alias := v
	r := v.AddAssign(Vec2{1, 1}).ScaleAssign(3).SubAssign(Vec2{1, 0})
	if r != v {
		t.Fatal("in-place methods must return the receiver")
	}
	if *alias != (Vec2{5, 6}) {
		t.Errorf("alias = %v, want (5,6)", *alias)
	}

	v.Set(0, 0).AddScalarAssign(2).SubScalarAssign(1)
	if *v != (Vec2{1, 1}) {
		t.Errorf("scalar assign = %v, want (1,1)", *v)
	}

	v.Set(0, 0).LerpAssign(Vec2{10, 20}, 0.2)
	if !approxEqual(v.X, 2, epsilon) || !approxEqual(v.Y, 4, epsilon) {
		t.Errorf("LerpAssign = %v, want (2,4)", *v)
	}

	v.Set(3, 4).NormalizeAssign()
	if !approxEqual(v.Len(), 1, epsilon) {
		t.Errorf("NormalizeAssign length = %v", v.Len())
	}

	v.Set(0, 0).LerpRoundAssign(Vec2{3, 3}, 0.5)
	if *v != (Vec2{2, 2}) {
		t.Errorf("LerpRoundAssign = %v, want (2,2)", *v)
	}
}
