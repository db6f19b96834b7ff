package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsInUnitRange(t *testing.T) {
	f := NewFields(11, 0.05, 24, 24, 24)

	for y := range 48 {
		for x := range 48 {
			for _, v := range []float64{f.Height(x, y), f.Moisture(x, y), f.UrbanDensity(x, y)} {
				require.True(t, v >= 0 && v <= 1, "field value %v at (%d,%d) outside [0,1]", v, x, y)
			}
		}
	}
}

func TestFieldsDeterministic(t *testing.T) {
	a := NewFields(7, 0.05, 16, 16, 24)
	b := NewFields(7, 0.05, 16, 16, 24)

	for i := range 100 {
		x, y := i%10-5, i/10-5
		assert.Equal(t, a.Height(x, y), b.Height(x, y))
		assert.Equal(t, a.Moisture(x, y), b.Moisture(x, y))
		assert.Equal(t, a.UrbanDensity(x, y), b.UrbanDensity(x, y))
	}
}

func TestFieldStreamsAreIndependent(t *testing.T) {
	f := NewFields(7, 0.05, 1000, 1000, 1)

	differ := 0
	for i := range 50 {
		if f.Height(i*3, i*5) != f.Moisture(i*3, i*5) {
			differ++
		}
	}
	assert.Greater(t, differ, 40, "height and moisture streams should not coincide")
}

func TestUrbanDensityFalloff(t *testing.T) {
	f := NewFields(3, 0.05, 32, 32, 16)

	core := f.UrbanDensity(32, 32)
	far := f.UrbanDensity(0, 0)

	assert.GreaterOrEqual(t, core, 0.65, "the core cell carries full radial weight")
	assert.LessOrEqual(t, far, 0.35, "outside the radius only the noise floor remains")
	assert.Greater(t, core, far)
}

func TestUrbanDensityZeroRadius(t *testing.T) {
	f := NewFields(3, 0.05, 0, 0, 0)

	assert.LessOrEqual(t, f.UrbanDensity(0, 0), 0.35)
}
