package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/glowcube/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLightDefaults(t *testing.T) {
	l := NewLight(LightTypePoint)

	assert.Equal(t, LightTypePoint, l.Type())
	assert.Equal(t, common.Color{1, 1, 1}, l.Color())
	assert.Equal(t, float32(1), l.Intensity())
	assert.Equal(t, float32(20), l.Range())
	assert.True(t, l.Enabled())
	assert.False(t, l.CastsShadows())
}

func TestAmbientNeverCastsShadows(t *testing.T) {
	l := NewLight(LightTypeAmbient, WithCastsShadows(true))
	assert.False(t, l.CastsShadows())
	assert.Equal(t, "ambient", l.Type().String())
}

func TestRadiance(t *testing.T) {
	l := NewLight(LightTypePoint, WithColor(common.Color{0, 1, 1}), WithIntensity(2))
	assert.Equal(t, common.Color{0, 2, 2}, l.Radiance())

	l.SetIntensity(0.5)
	assert.Equal(t, common.Color{0, 0.5, 0.5}, l.Radiance())
}

func TestNewGPULightSet(t *testing.T) {
	lights := []Light{
		NewLight(LightTypeAmbient, WithColor(common.Color{0.1, 0.1, 0.1})),
		NewLight(LightTypePoint, WithPosition(5, 3, 5), WithCastsShadows(true)),
		NewLight(LightTypePoint, WithPosition(-5, -3, 5), WithCastsShadows(true)),
		NewLight(LightTypePoint, WithPosition(0, 0, 9), WithCastsShadows(true)),
		NewLight(LightTypePoint, WithEnabled(false)),
	}

	set, casters := NewGPULightSet(lights)

	assert.Equal(t, [3]float32{0.1, 0.1, 0.1}, set.Ambient)
	assert.Equal(t, uint32(3), set.PointCount)
	require.Len(t, casters, MaxShadowCasters)
	assert.Same(t, lights[1], casters[0])
	assert.Same(t, lights[2], casters[1])

	assert.Equal(t, int32(0), set.Points[0].ShadowLayer)
	assert.Equal(t, int32(FacesPerLight), set.Points[1].ShadowLayer)
	assert.Equal(t, int32(-1), set.Points[2].ShadowLayer)
	assert.Equal(t, [3]float32{-5, -3, 5}, set.Points[1].Position)
}

func TestGPULightSetMarshal(t *testing.T) {
	set, _ := NewGPULightSet([]Light{
		NewLight(LightTypePoint, WithPosition(1, 2, 3), WithRange(20)),
	})

	buf := set.Marshal()
	require.Len(t, buf, 144)
	assert.Equal(t, 144, set.Size())
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[12:16]))
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[20:24])))
	assert.Equal(t, float32(20), math.Float32frombits(binary.LittleEndian.Uint32(buf[28:32])))
	assert.Equal(t, int32(-1), int32(binary.LittleEndian.Uint32(buf[44:48])))
}

func TestGPUShadowSet(t *testing.T) {
	caster := NewLight(LightTypePoint, WithPosition(5, 3, 5), WithCastsShadows(true))
	set := NewGPUShadowSet([]Light{caster}, 512, DefaultShadowBias)

	assert.Equal(t, 784, set.Size())
	assert.Len(t, set.Marshal(), 784)
	assert.Equal(t, uint32(1), set.CasterCount)
	assert.InDelta(t, 1.0/512, set.TexelSize, 1e-9)
	assert.NotEqual(t, [16]float32{}, set.FaceVP[ShadowLayer(0, 5)])
	assert.Equal(t, [16]float32{}, set.FaceVP[ShadowLayer(1, 0)])

	faces := CubeFaceMatrices(caster.Position(), caster.Range())
	for face, m := range faces {
		assert.Equal(t, m, set.FaceVP[ShadowLayer(0, face)], "face %d", face)
	}
}

func TestShadowFaceMarshal(t *testing.T) {
	f := GPUShadowFace{}
	common.Identity(f.ViewProj[:])

	buf := f.Marshal()
	require.Len(t, buf, 64)
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[60:64])))
}

func TestShadowLayer(t *testing.T) {
	assert.Equal(t, 0, ShadowLayer(0, 0))
	assert.Equal(t, 5, ShadowLayer(0, 5))
	assert.Equal(t, 6, ShadowLayer(1, 0))
	assert.Equal(t, ShadowLayerCount-1, ShadowLayer(MaxShadowCasters-1, FacesPerLight-1))
}

func TestDominantFace(t *testing.T) {
	cases := []struct {
		dir  [3]float32
		face int
	}{
		{[3]float32{3, 1, -2}, 0},
		{[3]float32{-3, 1, 2}, 1},
		{[3]float32{0.5, 4, 1}, 2},
		{[3]float32{0.5, -4, 1}, 3},
		{[3]float32{1, 1, 2}, 4},
		{[3]float32{1, -1, -2}, 5},
	}
	for _, c := range cases {
		assert.Equal(t, c.face, DominantFace(c.dir), "dir %v", c.dir)
	}
}

// Every point inside a light's range must land inside the frustum of the face DominantFace
// picks for it, otherwise the fragment shader samples the wrong layer.
func TestCubeFacesCoverDominantDirections(t *testing.T) {
	lightPos := [3]float32{5, 3, 5}
	faces := CubeFaceMatrices(lightPos, 20)

	dirs := [][3]float32{
		{1, 0.2, -0.3}, {-1, 0.9, 0.9}, {0.1, 1, -0.5},
		{-0.7, -1, 0.2}, {0.3, -0.3, 1}, {0.99, 0.5, -1},
		{1, 1, 1}, {-8, -3, -5},
	}
	for _, d := range dirs {
		n := common.Normalize3(d)
		p := [3]float32{lightPos[0] + n[0]*4, lightPos[1] + n[1]*4, lightPos[2] + n[2]*4}
		m := faces[DominantFace(d)]

		clip := [4]float32{
			m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12],
			m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13],
			m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14],
			m[3]*p[0] + m[7]*p[1] + m[11]*p[2] + m[15],
		}
		require.Greater(t, clip[3], float32(0), "dir %v behind face", d)
		x, y, z := clip[0]/clip[3], clip[1]/clip[3], clip[2]/clip[3]
		assert.LessOrEqual(t, x, float32(1.0001), "dir %v", d)
		assert.GreaterOrEqual(t, x, float32(-1.0001), "dir %v", d)
		assert.LessOrEqual(t, y, float32(1.0001), "dir %v", d)
		assert.GreaterOrEqual(t, y, float32(-1.0001), "dir %v", d)
		assert.Greater(t, z, float32(0), "dir %v", d)
		assert.Less(t, z, float32(1), "dir %v", d)
	}
}
