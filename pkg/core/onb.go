package core

import "math"

// ONB is an orthonormal basis with W aligned to a given normal
type ONB struct {
	U, V, W Vec3
}

// NewONB builds a basis around n. The helper axis avoids near-parallel
// cross products when n is close to the X axis.
func NewONB(n Vec3) ONB {
	w := n.Normalize()
	a := NewVec3(1, 0, 0)
	if math.Abs(w.X) > 0.9 {
		a = NewVec3(0, 1, 0)
	}
	v := w.Cross(a).Normalize()
	u := w.Cross(v)
	return ONB{U: u, V: v, W: w}
}

// Transform maps a vector from basis-local coordinates to world space
func (o ONB) Transform(v Vec3) Vec3 {
	return o.U.Multiply(v.X).Add(o.V.Multiply(v.Y)).Add(o.W.Multiply(v.Z))
}
