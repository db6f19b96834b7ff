package gen

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// fieldOctaves stacks four noise octaves with halving amplitude and
// doubling frequency. Normalized to [0, 1].
const fieldOctaves = 4

// Fields samples the scalar fields that drive tile classification: height,
// moisture and urban density. Each field has its own noise stream derived
// from the world seed, so sampling is a pure function of (seed, x, y).
type Fields struct {
	height   opensimplex.Noise
	moisture opensimplex.Noise
	urban    opensimplex.Noise

	scale      float64
	coreX      float64
	coreY      float64
	coreRadius float64
}

// NewFields creates the field samplers for a world seed. The city core at
// (coreX, coreY) pulls urban density up within coreRadius cells.
func NewFields(seed int64, scale, coreX, coreY, coreRadius float64) *Fields {
	return &Fields{
		height:     opensimplex.NewNormalized(seed),
		moisture:   opensimplex.NewNormalized(seed + 1),
		urban:      opensimplex.NewNormalized(seed + 2),
		scale:      scale,
		coreX:      coreX,
		coreY:      coreY,
		coreRadius: coreRadius,
	}
}

// sample returns octave-stacked noise at a cell, in [0, 1].
func (f *Fields) sample(n opensimplex.Noise, x, y int) float64 {
	fx := float64(x) * f.scale
	fy := float64(y) * f.scale

	sum := 0.0
	norm := 0.0
	amp := 1.0
	freq := 1.0
	for range fieldOctaves {
		sum += amp * n.Eval2(fx*freq, fy*freq)
		norm += amp
		amp /= 2
		freq *= 2
	}
	return sum / norm
}

// Height returns the elevation field at a cell, in [0, 1].
func (f *Fields) Height(x, y int) float64 {
	return f.sample(f.height, x, y)
}

// Moisture returns the moisture field at a cell, in [0, 1].
func (f *Fields) Moisture(x, y int) float64 {
	return f.sample(f.moisture, x, y)
}

// UrbanDensity returns the urban density field at a cell, in [0, 1].
// Density blends noise with radial falloff from the city core: downtown
// saturates toward 1, the outskirts decay toward pure noise floor.
func (f *Fields) UrbanDensity(x, y int) float64 {
	n := f.sample(f.urban, x, y)

	dx := float64(x) - f.coreX
	dy := float64(y) - f.coreY
	dist := math.Sqrt(dx*dx + dy*dy)
	falloff := 0.0
	if f.coreRadius > 0 {
		falloff = math.Max(0, 1-dist/f.coreRadius)
	}

	u := 0.35*n + 0.65*falloff
	return math.Min(1, math.Max(0, u))
}
