package core

import "math"

// aabbMinimumSize is the smallest extent any axis of an AABB may have
const aabbMinimumSize = 0.0001

// AABB represents an axis-aligned bounding box as three axis intervals.
// Every constructor pads flat axes to at least aabbMinimumSize.
type AABB struct {
	X, Y, Z Interval
}

var (
	// EmptyAABB bounds nothing; a union with it is a no-op
	EmptyAABB = AABB{X: EmptyInterval, Y: EmptyInterval, Z: EmptyInterval}
	// UniverseAABB bounds everything; a union with it is UniverseAABB
	UniverseAABB = AABB{X: UniverseInterval, Y: UniverseInterval, Z: UniverseInterval}
)

// NewAABB creates a box from three axis intervals
func NewAABB(x, y, z Interval) AABB {
	box := AABB{X: x, Y: y, Z: z}
	box.padToMinimums()
	return box
}

// NewAABBFromPoints creates the box with the two points as opposite corners
func NewAABBFromPoints(a, b Vec3) AABB {
	box := AABB{
		X: orderedInterval(a.X, b.X),
		Y: orderedInterval(a.Y, b.Y),
		Z: orderedInterval(a.Z, b.Z),
	}
	box.padToMinimums()
	return box
}

// NewAABBUnion returns the tightest box enclosing both boxes
func NewAABBUnion(a, b AABB) AABB {
	box := AABB{
		X: NewIntervalUnion(a.X, b.X),
		Y: NewIntervalUnion(a.Y, b.Y),
		Z: NewIntervalUnion(a.Z, b.Z),
	}
	box.padToMinimums()
	return box
}

func orderedInterval(a, b float64) Interval {
	if a <= b {
		return Interval{Min: a, Max: b}
	}
	return Interval{Min: b, Max: a}
}

func (aabb *AABB) padToMinimums() {
	aabb.X = padInterval(aabb.X)
	aabb.Y = padInterval(aabb.Y)
	aabb.Z = padInterval(aabb.Z)
}

func padInterval(iv Interval) Interval {
	if iv.IsEmpty() || iv.Size() >= aabbMinimumSize {
		return iv
	}
	iv = iv.Expand(aabbMinimumSize)
	// Rounding in Expand can leave the size a few ulps short
	for iv.Size() < aabbMinimumSize {
		iv.Max = math.Nextafter(iv.Max, math.Inf(1))
	}
	return iv
}

// Axis returns the interval for axis 0 (X), 1 (Y) or 2 (Z)
func (aabb AABB) Axis(n int) Interval {
	switch n {
	case 0:
		return aabb.X
	case 1:
		return aabb.Y
	default:
		return aabb.Z
	}
}

// Hit tests if a ray overlaps this AABB within rayT using the slab method.
// An axis with a zero direction component behaves as an infinite inverse
// direction: the ray passes only if its origin lies inside that slab.
func (aabb AABB) Hit(ray Ray, rayT Interval) bool {
	tMin, tMax := rayT.Min, rayT.Max

	for axis := 0; axis < 3; axis++ {
		ax := aabb.Axis(axis)
		origin := ray.Origin.Index(axis)
		direction := ray.Direction.Index(axis)

		if direction == 0 {
			if !ax.Contains(origin) {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t0 := (ax.Min - origin) * invDirection
		t1 := (ax.Max - origin) * invDirection

		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}

		if tMax <= tMin {
			return false
		}
	}

	return true
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	x, y, z := aabb.X.Size(), aabb.Y.Size(), aabb.Z.Size()
	if x > y {
		if x > z {
			return 0
		}
		return 2
	}
	if y > z {
		return 1
	}
	return 2
}

// Translate returns the box shifted by offset
func (aabb AABB) Translate(offset Vec3) AABB {
	return AABB{
		X: aabb.X.Add(offset.X),
		Y: aabb.Y.Add(offset.Y),
		Z: aabb.Z.Add(offset.Z),
	}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return NewVec3(
		(aabb.X.Min+aabb.X.Max)*0.5,
		(aabb.Y.Min+aabb.Y.Max)*0.5,
		(aabb.Z.Min+aabb.Z.Max)*0.5,
	)
}

// Min returns the minimum corner
func (aabb AABB) Min() Vec3 {
	return NewVec3(aabb.X.Min, aabb.Y.Min, aabb.Z.Min)
}

// Max returns the maximum corner
func (aabb AABB) Max() Vec3 {
	return NewVec3(aabb.X.Max, aabb.Y.Max, aabb.Z.Max)
}

// IsEmpty reports whether any axis is empty
func (aabb AABB) IsEmpty() bool {
	return aabb.X.IsEmpty() || aabb.Y.IsEmpty() || aabb.Z.IsEmpty()
}
