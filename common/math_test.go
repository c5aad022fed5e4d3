package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func assertMatrixInDelta(t *testing.T, want, got []float32) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], eps, "element %d", i)
	}
}

func TestIdentityMul(t *testing.T) {
	id := make([]float32, 16)
	Identity(id)

	m := make([]float32, 16)
	BuildModelMatrix(m, [3]float32{1, 2, 3}, [3]float32{0.3, 0.2, 0.1}, [3]float32{2, 2, 2})

	out := make([]float32, 16)
	Mul4(out, id, m)
	assertMatrixInDelta(t, m, out)

	Mul4(out, m, id)
	assertMatrixInDelta(t, m, out)
}

func TestMul4Aliasing(t *testing.T) {
	a := make([]float32, 16)
	BuildModelMatrix(a, [3]float32{1, 0, 0}, [3]float32{}, [3]float32{1, 1, 1})
	b := make([]float32, 16)
	BuildModelMatrix(b, [3]float32{0, 2, 0}, [3]float32{}, [3]float32{1, 1, 1})

	Mul4(a, a, b)
	assert.Equal(t, [3]float32{1, 2, 0}, TransformPoint(a, [3]float32{}))
}

func TestBuildModelMatrixEulerXYZ(t *testing.T) {
	// rotating +Y by 90 degrees about X lands on +Z
	m := make([]float32, 16)
	BuildModelMatrix(m, [3]float32{}, [3]float32{math32.Pi / 2, 0, 0}, [3]float32{1, 1, 1})
	p := TransformPoint(m, [3]float32{0, 1, 0})
	assert.InDelta(t, 0, p[0], eps)
	assert.InDelta(t, 0, p[1], eps)
	assert.InDelta(t, 1, p[2], eps)

	// Rx * Ry: Y is applied first, so +X -> -Z -> +Y under (90, 90, 0)
	BuildModelMatrix(m, [3]float32{}, [3]float32{math32.Pi / 2, math32.Pi / 2, 0}, [3]float32{1, 1, 1})
	p = TransformPoint(m, [3]float32{1, 0, 0})
	assert.InDelta(t, 0, p[0], eps)
	assert.InDelta(t, 1, p[1], eps)
	assert.InDelta(t, 0, p[2], eps)
}

func TestBuildModelMatrixTranslationScale(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, [3]float32{0, 0, -3}, [3]float32{}, [3]float32{1.5, 1.5, 1.5})
	p := TransformPoint(m, [3]float32{1, 1, 1})
	assert.InDelta(t, 1.5, p[0], eps)
	assert.InDelta(t, 1.5, p[1], eps)
	assert.InDelta(t, -1.5, p[2], eps)
}

func TestInvert4(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, [3]float32{4, -2, 7}, [3]float32{0.4, 1.1, -0.6}, [3]float32{2, 3, 0.5})

	inv := make([]float32, 16)
	require.True(t, Invert4(inv, m))

	out := make([]float32, 16)
	Mul4(out, m, inv)
	id := make([]float32, 16)
	Identity(id)
	assertMatrixInDelta(t, id, out)

	zero := make([]float32, 16)
	assert.False(t, Invert4(inv, zero))
}

func TestNormalMatrixUniformScale(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, [3]float32{3, 3, 3}, [3]float32{0, math32.Pi / 2, 0}, [3]float32{2, 2, 2})
	n := make([]float32, 16)
	NormalMatrix(n, m)

	// normals ignore translation and keep their direction
	got := Normalize3(TransformPoint(n, [3]float32{0, 0, 1}))
	assert.InDelta(t, 1, got[0], eps)
	assert.InDelta(t, 0, got[1], eps)
	assert.InDelta(t, 0, got[2], eps)
}

func TestPerspectiveDepthRange(t *testing.T) {
	p := make([]float32, 16)
	Perspective(p, 75*math32.Pi/180, 16.0/9.0, 0.1, 1000)

	project := func(z float32) float32 {
		clipZ := p[10]*z + p[14]
		clipW := p[11] * z
		return clipZ / clipW
	}
	assert.InDelta(t, 0, project(-0.1), eps)
	assert.InDelta(t, 1, project(-1000), 1e-4)
	assert.InDelta(t, 1/math32.Tan(75*math32.Pi/360)/(16.0/9.0), p[0], eps)
}

func TestLookAt(t *testing.T) {
	v := make([]float32, 16)
	LookAt(v, [3]float32{0, 0, 5}, [3]float32{}, [3]float32{0, 1, 0})

	// the target ends up straight ahead on -Z
	p := TransformPoint(v, [3]float32{})
	assert.InDelta(t, 0, p[0], eps)
	assert.InDelta(t, 0, p[1], eps)
	assert.InDelta(t, -5, p[2], eps)
}

func TestVectorHelpers(t *testing.T) {
	assert.Equal(t, [3]float32{0, 0, 1}, Cross3([3]float32{1, 0, 0}, [3]float32{0, 1, 0}))
	assert.Equal(t, float32(32), Dot3([3]float32{1, 2, 3}, [3]float32{4, 5, 6}))
	assert.InDelta(t, 5, Length3([3]float32{3, 4, 0}), eps)
	assert.Equal(t, [3]float32{}, Normalize3([3]float32{}))
}

func TestHexColor(t *testing.T) {
	white := HexColor(0xffffff)
	for _, ch := range white {
		assert.InDelta(t, 1, ch, eps)
	}
	assert.Equal(t, Color{0, 0, 0}, HexColor(0x000000))

	c := HexColor(0x00a2ff)
	assert.Equal(t, float32(0), c[0])
	assert.InDelta(t, 0.3613, c[1], 1e-3)
	assert.InDelta(t, 1, c[2], eps)

	assert.Equal(t, [4]float32{0.5, 0.5, 0.5, 0.1}, Color{1, 1, 1}.Scale(0.5).RGBA(0.1))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 0, 3, 4))
	assert.Equal(t, "", Coalesce[string]())
}
