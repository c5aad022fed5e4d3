package shader

import (
	"fmt"
	"io/fs"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies which render stage a shader feeds.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex stage of a render pipeline.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment stage, paired with a vertex shader.
	ShaderTypeFragment
)

// String returns a short human readable name for the stage.
func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderType(%d)", int(t))
	}
}

// shader is the implementation of the Shader interface.
// It holds the pre-processed source and everything reflected from it.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexLayouts              map[int][]wgpu.VertexBufferLayout
	entryPoint                 string
	module                     *wgpu.ShaderModuleDescriptor

	pp PreProcessor
}

// Shader defines the interface for a pre-processed and reflected WGSL shader stage. It exposes
// the shader's key, final source, entry point, bind group layout descriptors, vertex buffer layouts,
// and the provider declarations the pre-processor collected from @glow annotations.
type Shader interface {
	// Key retrieves the unique identifier for this shader.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL source after pre-processing.
	//
	// Returns:
	//   - string: the final WGSL source
	Source() string

	// ShaderType retrieves the stage this shader was parsed for.
	//
	// Returns:
	//   - ShaderType: the shader stage
	ShaderType() ShaderType

	// EntryPoint retrieves the name of the stage's entry function.
	//
	// Returns:
	//   - string: the entry point, or "" if none was found
	EntryPoint() string

	// BindGroupLayoutDescriptor retrieves the reflected layout descriptor for a bind group.
	//
	// Parameters:
	//   - group: the bind group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, or an empty descriptor if the group is unused
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves all reflected layout descriptors keyed by group index.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the WGSL variable name bound at a group and binding.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name, or "" if nothing is bound there
	BindGroupVarName(group, binding int) string

	// BindGroupFromVarName looks up the binding index of a named variable within a group.
	//
	// Parameters:
	//   - group: the bind group index
	//   - varName: the WGSL variable name
	//
	// Returns:
	//   - int: the binding index, or -1 if not found
	//   - bool: whether the variable was found
	BindGroupFromVarName(group int, varName string) (int, bool)

	// BindGroupVarNames retrieves every reflected variable name keyed by group then binding.
	//
	// Returns:
	//   - map[int]map[int]string: variable names keyed by group and binding
	BindGroupVarNames() map[int]map[int]string

	// VertexLayout retrieves the vertex buffer layouts reflected for one vertex input struct.
	//
	// Parameters:
	//   - key: the sequential index of the vertex input struct
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts, or nil
	VertexLayout(key int) []wgpu.VertexBufferLayout

	// VertexLayouts retrieves all reflected vertex buffer layouts.
	//
	// Returns:
	//   - map[int][]wgpu.VertexBufferLayout: layouts keyed by sequential index
	VertexLayouts() map[int][]wgpu.VertexBufferLayout

	// Module retrieves a shader module descriptor ready for device.CreateShaderModule.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the module descriptor
	Module() *wgpu.ShaderModuleDescriptor

	// Declarations retrieves the @glow group and provider annotations found during pre-processing.
	//
	// Returns:
	//   - []Annotation: the declarations in source order
	Declarations() []Annotation

	// Providers retrieves the provider identity declared for each bind group.
	//
	// Returns:
	//   - map[int]AnnotationArg: provider identities keyed by group index
	Providers() map[int]AnnotationArg
}

var _ Shader = &shader{}

// NewShader pre-processes and reflects a WGSL source string for a single stage.
// Panics if the source is empty or fails pre-processing, since shaders are authored
// assets and a bad one is unrecoverable.
//
// Parameters:
//   - key: unique identifier for the shader
//   - shaderType: the stage the source is written for
//   - source: the raw WGSL source including @glow annotations
//
// Returns:
//   - Shader: the parsed shader
func NewShader(key string, shaderType ShaderType, source string) Shader {
	s, err := parseShader(key, shaderType, source)
	if err != nil {
		panic(fmt.Sprintf("shader: %s: %v", key, err))
	}
	return s
}

// LoadShader reads a WGSL file from fsys and parses it for the given stage.
//
// Parameters:
//   - key: unique identifier for the shader
//   - shaderType: the stage the source is written for
//   - fsys: the file system to read from, usually an embed.FS
//   - path: the path of the WGSL file within fsys
//
// Returns:
//   - Shader: the parsed shader
//   - error: if the file could not be read or pre-processed
func LoadShader(key string, shaderType ShaderType, fsys fs.FS, path string) (Shader, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("shader: failed to read %q: %w", path, err)
	}
	return parseShader(key, shaderType, string(data))
}

func parseShader(key string, shaderType ShaderType, source string) (*shader, error) {
	if source == "" {
		return nil, fmt.Errorf("empty source")
	}
	s := &shader{
		key:        key,
		shaderType: shaderType,
		pp:         NewPreProcessor(),
	}

	processed, err := s.pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("failed to pre-process source: %w", err)
	}
	s.source = processed
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	s.entryPoint = parseEntryPoint(s.source, s.shaderType)
	if s.entryPoint == "" {
		return nil, fmt.Errorf("no %s entry point found", shaderType)
	}

	s.vertexLayouts = make(map[int][]wgpu.VertexBufferLayout)
	visibility := wgpu.ShaderStageFragment
	if s.shaderType == ShaderTypeVertex {
		s.vertexLayouts = parseVertexLayouts(s.source)
		visibility = wgpu.ShaderStageVertex
	}
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(s.source, visibility)
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	if s.bindingVarNames[group] == nil {
		return ""
	}
	return s.bindingVarNames[group][binding]
}

func (s *shader) BindGroupFromVarName(group int, varName string) (int, bool) {
	for binding, name := range s.bindingVarNames[group] {
		if name == varName {
			return binding, true
		}
	}
	return -1, false
}

func (s *shader) BindGroupVarNames() map[int]map[int]string {
	return s.bindingVarNames
}

func (s *shader) VertexLayout(key int) []wgpu.VertexBufferLayout {
	return s.vertexLayouts[key]
}

func (s *shader) VertexLayouts() map[int][]wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) Declarations() []Annotation {
	return s.pp.Declarations()
}

func (s *shader) Providers() map[int]AnnotationArg {
	out := make(map[int]AnnotationArg)
	for _, d := range s.pp.Declarations() {
		if d.Type != AnnotationTypeProvider || d.Group == nil {
			continue
		}
		if _, exists := out[*d.Group]; !exists {
			out[*d.Group] = d.Args[0]
		}
	}
	return out
}
