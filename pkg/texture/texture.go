// Package texture provides spatially varying colors sampled by materials.
package texture

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Texture returns a color for surface coordinates (u, v) and the hit point p.
// UV is used for image textures, the point for procedural ones.
type Texture interface {
	Value(u, v float64, p core.Point3) core.Color
}

// SolidColor provides uniform color
type SolidColor struct {
	Albedo core.Color
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(albedo core.Color) *SolidColor {
	return &SolidColor{Albedo: albedo}
}

// NewSolidRGB creates a solid color texture from components
func NewSolidRGB(r, g, b float64) *SolidColor {
	return &SolidColor{Albedo: core.NewVec3(r, g, b)}
}

// Value returns the solid color regardless of UV or position
func (s *SolidColor) Value(u, v float64, p core.Point3) core.Color {
	return s.Albedo
}

// CheckerTexture alternates two textures on a 3D grid of cubes of side scale
type CheckerTexture struct {
	invScale float64
	Even     Texture
	Odd      Texture
}

// NewCheckerTexture creates a 3D checker pattern. A zero scale means unit cubes.
func NewCheckerTexture(scale float64, even, odd Texture) *CheckerTexture {
	invScale := 1.0
	if scale != 0 {
		invScale = 1.0 / scale
	}
	return &CheckerTexture{invScale: invScale, Even: even, Odd: odd}
}

// NewCheckerColors creates a checker pattern from two solid colors
func NewCheckerColors(scale float64, even, odd core.Color) *CheckerTexture {
	return NewCheckerTexture(scale, NewSolidColor(even), NewSolidColor(odd))
}

// Value selects Even or Odd by the parity of the floored cell coordinates
func (c *CheckerTexture) Value(u, v float64, p core.Point3) core.Color {
	x := int(math.Floor(c.invScale * p.X))
	y := int(math.Floor(c.invScale * p.Y))
	z := int(math.Floor(c.invScale * p.Z))

	if (x+y+z)%2 == 0 {
		return c.Even.Value(u, v, p)
	}
	return c.Odd.Value(u, v, p)
}
