package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/glowcube/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineKey(t *testing.T) {
	assert.Equal(t, PipelineLit, NewMaterial().PipelineKey())
	assert.Equal(t, PipelineLitTransparent, NewMaterial(WithOpacity(0.1)).PipelineKey())
	assert.Equal(t, PipelineLine, NewMaterial(WithKind(KindLine)).PipelineKey())
	assert.Equal(t, PipelinePoints, NewMaterial(WithKind(KindPoints), WithOpacity(0.8)).PipelineKey())
}

func TestGPUParamsStandard(t *testing.T) {
	m := NewMaterial(
		WithColor(common.Color{0, 0.36, 1}),
		WithMetalness(0.7),
		WithRoughness(0.2),
		WithEmissive(common.Color{0, 0.13, 0.6}, 0.4),
	)

	p := m.GPUParams(false)
	assert.Equal(t, [4]float32{0, 0.36, 1, 1}, p.Color)
	assert.Equal(t, [4]float32{0, 0.13, 0.6, 0.4}, p.Emissive)
	assert.Equal(t, [4]float32{0.7, 0.2, 1, 0}, p.Surface)

	m.SetEmissiveIntensity(0.47)
	assert.Equal(t, float32(0.47), m.GPUParams(true).Emissive[3])
	assert.Equal(t, float32(1), m.GPUParams(true).Surface[3])
}

func TestGPUParamsOpacityOnlyWhenTransparent(t *testing.T) {
	opaque := NewMaterial()
	opaque.SetOpacity(0.2)
	assert.Equal(t, float32(1), opaque.GPUParams(false).Color[3])

	plane := NewMaterial(WithColor(common.Color{}), WithOpacity(0.1))
	assert.True(t, plane.Transparent())
	assert.Equal(t, float32(0.1), plane.GPUParams(true).Color[3])
}

func TestPointsNeverReceiveShadow(t *testing.T) {
	m := NewMaterial(WithKind(KindPoints), WithPointSize(0.2))
	p := m.GPUParams(true)
	assert.Equal(t, float32(0.2), p.Surface[2])
	assert.Equal(t, float32(0), p.Surface[3])
}

func TestGPUMaterialParamsMarshal(t *testing.T) {
	p := GPUMaterialParams{Surface: [4]float32{0.7, 0.2, 0.1, 1}}

	buf := p.Marshal()
	require.Len(t, buf, 48)
	assert.Equal(t, 48, p.Size())
	assert.Equal(t, float32(0.2), math.Float32frombits(binary.LittleEndian.Uint32(buf[36:40])))
}
