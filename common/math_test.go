package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.5, Clamp(9.0, -1.5, 1.5))
	assert.Equal(t, -1.5, Clamp(-9.0, -1.5, 1.5))
	assert.Equal(t, 0.25, Clamp(0.25, -1.5, 1.5))
	assert.Equal(t, 3, Clamp(7, 0, 3))
}

func TestDampDecaysGeometrically(t *testing.T) {
	v := 0.0
	for range 10 {
		v = Damp(v, 1, 0.1)
	}
	assert.InDelta(t, 1-math.Pow(0.9, 10), v, 1e-12)
}

func TestDampVec3(t *testing.T) {
	got := DampVec3(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, -10, 5}, 0.1)
	assert.InDelta(t, 1.0, got[0], 1e-12)
	assert.InDelta(t, -1.0, got[1], 1e-12)
	assert.InDelta(t, 0.5, got[2], 1e-12)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
