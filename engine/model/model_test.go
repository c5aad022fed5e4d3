package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readVertex(data []byte, i int) GPUVertex {
	var v GPUVertex
	off := i * 24
	for k := range 3 {
		v.Position[k] = math.Float32frombits(binary.LittleEndian.Uint32(data[off+k*4:]))
		v.Normal[k] = math.Float32frombits(binary.LittleEndian.Uint32(data[off+12+k*4:]))
	}
	return v
}

func readIndices(data []byte) []uint32 {
	out := make([]uint32, len(data)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return out
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
}

func TestNewBoxMesh(t *testing.T) {
	m := NewBoxMesh(1.5)

	assert.Equal(t, TopologyTriangles, m.Topology())
	assert.Equal(t, 24, m.VertexCount())
	assert.Equal(t, 36, m.IndexCount())
	require.Len(t, m.VertexData(), 24*24)
	assert.InDelta(t, 0.75*math.Sqrt(3), m.BoundingRadius(), 1e-5)

	indices := readIndices(m.IndexData())
	for tri := 0; tri < len(indices); tri += 3 {
		a := readVertex(m.VertexData(), int(indices[tri]))
		b := readVertex(m.VertexData(), int(indices[tri+1]))
		c := readVertex(m.VertexData(), int(indices[tri+2]))

		// counter-clockwise seen from outside: the winding normal points along the face normal
		wn := cross(sub(b.Position, a.Position), sub(c.Position, a.Position))
		dot := wn[0]*a.Normal[0] + wn[1]*a.Normal[1] + wn[2]*a.Normal[2]
		assert.Greater(t, dot, float32(0), "triangle %d", tri/3)

		for _, v := range []GPUVertex{a, b, c} {
			for k := range 3 {
				assert.InDelta(t, 0.75, math.Abs(float64(v.Position[k])), 1e-6)
			}
		}
	}
}

func TestNewBoxEdgesMesh(t *testing.T) {
	m := NewBoxEdgesMesh(1.5)

	assert.Equal(t, TopologyLines, m.Topology())
	assert.Equal(t, 8, m.VertexCount())
	assert.Equal(t, 24, m.IndexCount())

	// every edge is axis aligned with length equal to the cube size
	indices := readIndices(m.IndexData())
	seen := make(map[[2]uint32]bool)
	for i := 0; i < len(indices); i += 2 {
		a := readVertex(m.VertexData(), int(indices[i]))
		b := readVertex(m.VertexData(), int(indices[i+1]))
		d := sub(b.Position, a.Position)
		axes := 0
		for _, c := range d {
			if c != 0 {
				axes++
				assert.InDelta(t, 1.5, math.Abs(float64(c)), 1e-6)
			}
		}
		assert.Equal(t, 1, axes)
		seen[[2]uint32{indices[i], indices[i+1]}] = true
	}
	assert.Len(t, seen, 12)
}

func TestNewPlaneMesh(t *testing.T) {
	m := NewPlaneMesh(20, 20)

	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 6, m.IndexCount())
	for i := range 4 {
		v := readVertex(m.VertexData(), i)
		assert.Equal(t, [3]float32{0, 0, 1}, v.Normal)
		assert.Equal(t, float32(0), v.Position[2])
		assert.Equal(t, float32(10), float32(math.Abs(float64(v.Position[0]))))
	}
}

func TestNewPointCloud(t *testing.T) {
	pts := [][3]float32{{1, 2, 3}, {-4, 0, 0}}
	m := NewPointCloud("stars", pts)

	assert.Equal(t, "stars", m.Name())
	assert.Equal(t, TopologyPoints, m.Topology())
	assert.Equal(t, 2*SpriteVertices, m.VertexCount())
	assert.Nil(t, m.VertexData())
	assert.Equal(t, 0, m.IndexCount())
	assert.InDelta(t, 4, m.BoundingRadius(), 1e-6)

	data := m.PointData()
	require.Len(t, data, 32)
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(data[8:12])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(data[12:16])))
	assert.Equal(t, float32(-4), math.Float32frombits(binary.LittleEndian.Uint32(data[16:20])))
}

func TestGPUTypeSizes(t *testing.T) {
	assert.Equal(t, 24, (&GPUVertex{}).Size())
	assert.Equal(t, 128, (&GPUModelData{}).Size())
	assert.Equal(t, 16, (&GPUSpritePoint{}).Size())
	assert.Len(t, (&GPUModelData{}).Marshal(), 128)
	assert.Nil(t, NewBoxMesh(1).PointData())
}
