package texture

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

const perlinPointCount = 256

// Perlin generates gradient noise from random unit vectors and three permutation tables
type Perlin struct {
	randvec [perlinPointCount]core.Vec3
	permX   [perlinPointCount]int
	permY   [perlinPointCount]int
	permZ   [perlinPointCount]int
}

// NewPerlin builds the gradient and permutation tables from sampler
func NewPerlin(sampler core.Sampler) *Perlin {
	p := &Perlin{}
	for i := range p.randvec {
		p.randvec[i] = core.RandomUnitVector(sampler)
	}
	generatePerm(&p.permX, sampler)
	generatePerm(&p.permY, sampler)
	generatePerm(&p.permZ, sampler)
	return p
}

// generatePerm fills perm with a Fisher-Yates shuffle of 0..n-1
func generatePerm(perm *[perlinPointCount]int, sampler core.Sampler) {
	for i := range perm {
		perm[i] = i
	}
	for i := perlinPointCount - 1; i > 0; i-- {
		target := int(sampler.Get1D() * float64(i+1))
		perm[i], perm[target] = perm[target], perm[i]
	}
}

// Noise returns smoothed gradient noise in roughly [-1, 1] at p
func (n *Perlin) Noise(p core.Point3) float64 {
	u := p.X - math.Floor(p.X)
	v := p.Y - math.Floor(p.Y)
	w := p.Z - math.Floor(p.Z)

	i := int(math.Floor(p.X))
	j := int(math.Floor(p.Y))
	k := int(math.Floor(p.Z))

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c[di][dj][dk] = n.randvec[n.permX[(i+di)&255]^n.permY[(j+dj)&255]^n.permZ[(k+dk)&255]]
			}
		}
	}

	return perlinInterp(&c, u, v, w)
}

// Turbulence sums depth octaves of noise at doubling frequency and halving weight
func (n *Perlin) Turbulence(p core.Point3, depth int) float64 {
	accum := 0.0
	tempP := p
	weight := 1.0

	for i := 0; i < depth; i++ {
		accum += weight * n.Noise(tempP)
		weight *= 0.5
		tempP = tempP.Multiply(2)
	}

	return math.Abs(accum)
}

// perlinInterp blends the corner gradients with Hermite-smoothed trilinear weights
func perlinInterp(c *[2][2][2]core.Vec3, u, v, w float64) float64 {
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				fi, fj, fk := float64(i), float64(j), float64(k)
				weight := core.NewVec3(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[i][j][k].Dot(weight)
			}
		}
	}

	return accum
}

// NoiseTexture is a marble pattern driven by Perlin turbulence
type NoiseTexture struct {
	noise *Perlin
	Scale float64
}

// NewNoiseTexture creates a marble texture; scale sets the stripe frequency
func NewNoiseTexture(scale float64, sampler core.Sampler) *NoiseTexture {
	return &NoiseTexture{noise: NewPerlin(sampler), Scale: scale}
}

// Value returns 0.5*(1 + sin(scale*z + 10*turbulence)) as a gray level
func (t *NoiseTexture) Value(u, v float64, p core.Point3) core.Color {
	marble := math.Sin(t.Scale*p.Z + 10*t.noise.Turbulence(p, 7))
	return core.NewVec3(0.5, 0.5, 0.5).Multiply(1 + marble)
}
