package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// RandomInRange returns a random float64 in [min, max)
func RandomInRange(sampler Sampler, min, max float64) float64 {
	return min + (max-min)*sampler.Get1D()
}

// RandomUnitVector returns a uniformly distributed direction on the unit sphere
func RandomUnitVector(sampler Sampler) Vec3 {
	return SampleOnUnitSphere(sampler.Get2D())
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	x := r * math.Cos(phi)
	y := r * math.Sin(phi)
	return NewVec3(x, y, z)
}

// SampleCosineDirection returns a cosine-weighted direction about +Z in a local frame.
// Pair it with an ONB to orient it around a surface normal.
func SampleCosineDirection(sample Vec2) Vec3 {
	phi := 2.0 * math.Pi * sample.X
	r := math.Sqrt(sample.Y)

	x := math.Cos(phi) * r
	y := math.Sin(phi) * r
	z := math.Sqrt(1.0 - sample.Y)

	return NewVec3(x, y, z)
}

// SampleToSphere returns a direction about +Z, uniform over the cone subtended by a
// sphere of the given radius whose center lies distanceSquared away along +Z
func SampleToSphere(radius, distanceSquared float64, sample Vec2) Vec3 {
	z := 1 + sample.Y*(math.Sqrt(math.Max(0, 1-radius*radius/distanceSquared))-1)

	phi := 2 * math.Pi * sample.X
	sinTheta := math.Sqrt(math.Max(0, 1-z*z))
	x := math.Cos(phi) * sinTheta
	y := math.Sin(phi) * sinTheta

	return NewVec3(x, y, z)
}

// SamplePointInUnitDisk generates a random point in a unit disk using concentric mapping
// This avoids rejection sampling by mapping a square uniformly to a disk
func SamplePointInUnitDisk(sample Vec2) Vec3 {
	// Map sample to [-1,1]² and handle degeneracy at the origin
	uOffset := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if uOffset.X == 0 && uOffset.Y == 0 {
		return NewVec3(0, 0, 0)
	}

	var theta, r float64
	if math.Abs(uOffset.X) > math.Abs(uOffset.Y) {
		r = uOffset.X
		theta = math.Pi / 4 * (uOffset.Y / uOffset.X)
	} else {
		r = uOffset.Y
		theta = math.Pi/2 - math.Pi/4*(uOffset.X/uOffset.Y)
	}

	return NewVec3(r*math.Cos(theta), r*math.Sin(theta), 0)
}
