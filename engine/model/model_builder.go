package model

// ModelBuilderOption is a function that configures a model instance during construction.
type ModelBuilderOption func(*model)

// WithName sets the model identifier.
//
// Parameters:
//   - name: the model name
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMesh sets indexed geometry. The bounding radius is derived from the vertices.
//
// Parameters:
//   - topology: TopologyTriangles or TopologyLines
//   - vertices: the mesh vertices
//   - indices: the index list
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh
func WithMesh(topology Topology, vertices []GPUVertex, indices []uint32) ModelBuilderOption {
	return func(m *model) {
		m.topology = topology
		m.vertexData = MarshalVertices(vertices)
		m.indexData = MarshalIndices(indices)
		m.indexCount = len(indices)
		m.vertexCount = len(vertices)
		m.boundingRadius = 0
		for _, v := range vertices {
			m.boundingRadius = max(m.boundingRadius, length(v.Position))
		}
	}
}

// WithPoints sets a point cloud. Each point is drawn as SpriteVertices vertices.
//
// Parameters:
//   - points: model-space positions
//
// Returns:
//   - ModelBuilderOption: a function that applies the points
func WithPoints(points [][3]float32) ModelBuilderOption {
	return func(m *model) {
		m.topology = TopologyPoints
		m.points = points
		m.vertexData = nil
		m.indexData = nil
		m.indexCount = 0
		m.vertexCount = len(points) * SpriteVertices
		m.boundingRadius = 0
		for _, p := range points {
			m.boundingRadius = max(m.boundingRadius, length(p))
		}
	}
}
