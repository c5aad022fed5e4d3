package model

import (
	"github.com/chewxy/math32"
)

// boxFaces lists each face normal with two in-plane axes whose cross product is the normal,
// so the quads wind counter-clockwise seen from outside.
var boxFaces = [6]struct {
	normal, u, v [3]float32
}{
	{normal: [3]float32{1, 0, 0}, u: [3]float32{0, 0, -1}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{-1, 0, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, -1}},
	{normal: [3]float32{0, -1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}},
	{normal: [3]float32{0, 0, 1}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 0, -1}, u: [3]float32{-1, 0, 0}, v: [3]float32{0, 1, 0}},
}

// NewBoxMesh builds an axis-aligned cube centered on the origin with flat per-face normals.
// It has 24 vertices and 36 indices.
//
// Parameters:
//   - size: edge length
//
// Returns:
//   - Model: the cube
func NewBoxMesh(size float32) Model {
	h := size / 2
	vertices := make([]GPUVertex, 0, 24)
	indices := make([]uint32, 0, 36)

	for _, f := range boxFaces {
		base := uint32(len(vertices))
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			var p [3]float32
			for i := range p {
				p[i] = (f.normal[i] + c[0]*f.u[i] + c[1]*f.v[i]) * h
			}
			vertices = append(vertices, GPUVertex{Position: p, Normal: f.normal})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return NewModel(WithName("box"), WithMesh(TopologyTriangles, vertices, indices))
}

// NewBoxEdgesMesh builds the 12 edges of a cube as a line list over its 8 corners.
//
// Parameters:
//   - size: edge length
//
// Returns:
//   - Model: the edge lines
func NewBoxEdgesMesh(size float32) Model {
	h := size / 2
	vertices := make([]GPUVertex, 8)
	for i := range vertices {
		vertices[i].Position = [3]float32{
			sign(i&1 != 0) * h,
			sign(i&2 != 0) * h,
			sign(i&4 != 0) * h,
		}
	}

	// corners differing in exactly one bit share an edge
	indices := make([]uint32, 0, 24)
	for i := uint32(0); i < 8; i++ {
		for _, bit := range []uint32{1, 2, 4} {
			if i&bit == 0 {
				indices = append(indices, i, i|bit)
			}
		}
	}
	return NewModel(WithName("box_edges"), WithMesh(TopologyLines, vertices, indices))
}

// NewPlaneMesh builds a width x height rectangle in the XY plane facing +Z.
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//
// Returns:
//   - Model: the plane
func NewPlaneMesh(width, height float32) Model {
	w, h := width/2, height/2
	n := [3]float32{0, 0, 1}
	vertices := []GPUVertex{
		{Position: [3]float32{-w, -h, 0}, Normal: n},
		{Position: [3]float32{w, -h, 0}, Normal: n},
		{Position: [3]float32{w, h, 0}, Normal: n},
		{Position: [3]float32{-w, h, 0}, Normal: n},
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	return NewModel(WithName("plane"), WithMesh(TopologyTriangles, vertices, indices))
}

// NewPointCloud wraps positions as a point sprite model.
//
// Parameters:
//   - name: the model name
//   - points: model-space positions
//
// Returns:
//   - Model: the point cloud
func NewPointCloud(name string, points [][3]float32) Model {
	return NewModel(WithName(name), WithPoints(points))
}

func sign(positive bool) float32 {
	if positive {
		return 1
	}
	return -1
}

func length(v [3]float32) float32 {
	return math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}
