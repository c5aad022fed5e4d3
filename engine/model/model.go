package model

// Topology is the primitive assembly a model is drawn with.
type Topology int

const (
	// TopologyTriangles draws an indexed triangle list.
	TopologyTriangles Topology = iota

	// TopologyLines draws an indexed line list.
	TopologyLines

	// TopologyPoints draws one camera-facing quad per point, pulled from a storage buffer.
	TopologyPoints
)

// SpriteVertices is the number of vertices drawn for each point sprite (two triangles).
const SpriteVertices = 6

// model is the implementation of the Model interface.
type model struct {
	name           string
	topology       Topology
	vertexData     []byte
	indexData      []byte
	indexCount     int
	vertexCount    int
	points         [][3]float32
	boundingRadius float32
}

// Model is CPU-side geometry ready for upload. Triangle and line models carry vertex and index
// data. Point models carry no vertex buffer; their positions go into a storage buffer and the
// vertex shader expands each one into a sprite.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Topology retrieves the primitive assembly.
	//
	// Returns:
	//   - Topology: triangles, lines or points
	Topology() Topology

	// VertexData retrieves the marshaled GPUVertex data, nil for point models.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData retrieves the marshaled uint32 index data, nil for point models.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount retrieves the number of indices.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// VertexCount retrieves the number of vertices a non-indexed draw must issue. For point
	// models this is SpriteVertices per point.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// Points retrieves the model-space positions of a point model.
	//
	// Returns:
	//   - [][3]float32: the positions, nil for meshes
	Points() [][3]float32

	// PointData retrieves the marshaled GPUSpritePoint storage buffer of a point model.
	//
	// Returns:
	//   - []byte: the storage data, nil for meshes
	PointData() []byte

	// BoundingRadius retrieves the distance from the model origin to its farthest vertex.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a Model from the provided options.
//
// Parameters:
//   - options: variadic list of ModelBuilderOption functions to configure the model
//
// Returns:
//   - Model: a new Model instance
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Topology() Topology {
	return m.topology
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) VertexCount() int {
	return m.vertexCount
}

func (m *model) Points() [][3]float32 {
	return m.points
}

func (m *model) PointData() []byte {
	if m.topology != TopologyPoints {
		return nil
	}
	return MarshalSpritePoints(m.points)
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}
