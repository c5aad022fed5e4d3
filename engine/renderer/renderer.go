package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/glowcube/common"
	"github.com/Carmen-Shannon/glowcube/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/glowcube/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/glowcube/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	width, height int

	// pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	pendingClearColor    *common.Color
}

// Renderer is the high-level rendering API the scene draws through. It caches pipelines by key,
// creates the GPU resources providers need, and brackets the shadow and main passes of a frame.
// The backend implementation is selected at construction.
type Renderer interface {
	// Pipeline retrieves a cached pipeline.
	//
	// Parameters:
	//   - key: the pipeline key
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline or nil
	Pipeline(key string) pipeline.Pipeline

	// Pipelines retrieves the entire pipeline cache.
	//
	// Returns:
	//   - map[string]pipeline.Pipeline: pipelines keyed by PipelineKey
	Pipelines() map[string]pipeline.Pipeline

	// RegisterPipelines creates the GPU objects for each pipeline according to its type and caches
	// it by key. Keys already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the pipelines to register
	//
	// Returns:
	//   - error: the first creation failure
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize reconfigures the surface. Zero sizes and a repeat of the current size are ignored.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// Size returns the current surface size.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	Size() (int, int)

	// SetPresentMode changes the present mode. It takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: VSync or Uncapped
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the main pass background.
	//
	// Parameters:
	//   - c: a linear color
	SetClearColor(c common.Color)

	// InitMeshBuffers uploads mesh data onto a provider.
	//
	// Parameters:
	//   - provider: receives the vertex and index buffers
	//   - vertexData: raw vertex bytes, may be empty
	//   - indexData: raw index bytes, may be empty
	//   - indexCount: number of indices
	//
	// Returns:
	//   - error: if a buffer could not be created
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup builds a provider's bind group against one group of a cached pipeline, so
	// the result can be bound to that pipeline and to any pipeline with an identical group.
	// Buffers missing on the provider are created at the reflected size or the provider's
	// BufferSize override.
	//
	// Parameters:
	//   - provider: the provider to fill
	//   - pipelineKey: the cached pipeline whose layout is used
	//   - group: the group index within that pipeline
	//
	// Returns:
	//   - error: if the pipeline or group is unknown or a resource could not be created
	InitBindGroup(provider bind_group_provider.BindGroupProvider, pipelineKey string, group int) error

	// InitSampler creates a sampler on a provider. Must precede InitBindGroup for sampler bindings.
	//
	// Parameters:
	//   - provider: receives the sampler
	//   - bindingKey: the sampler's binding
	//   - samplerStagingData: sampler settings
	//
	// Returns:
	//   - error: if the sampler could not be created
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffers queues buffer writes.
	//
	// Parameters:
	//   - writes: the writes to queue
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// CreateShadowDepthArray creates the point light shadow target.
	//
	// Parameters:
	//   - size: texels per side of each layer
	//   - layers: number of layers
	//
	// Returns:
	//   - *ShadowDepthArray: the texture and its views
	//   - error: if creation fails
	CreateShadowDepthArray(size, layers int) (*ShadowDepthArray, error)


	// BeginFrame acquires the swapchain texture and begins the main pass.
	//
	// Returns:
	//   - error: if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawCall draws a mesh in the main pass with a cached pipeline.
	//
	// Parameters:
	//   - pipelineKey: the cached render pipeline
	//   - meshProvider: holds the vertex and index buffers
	//   - instanceCount: number of instances
	//   - bindGroups: providers for groups 0..n-1
	//
	// Returns:
	//   - error: if the pipeline is not cached
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends and submits the main pass.
	EndFrame()

	// Present displays the frame.
	Present()

	// BeginShadowFrame begins the encoder for this frame's shadow passes.
	//
	// Returns:
	//   - error: if the encoder could not be created
	BeginShadowFrame() error

	// BeginShadowPass begins a depth-only pass into one shadow layer.
	//
	// Parameters:
	//   - depthView: the layer view
	BeginShadowPass(depthView *wgpu.TextureView)

	// ShadowDrawCall draws a mesh in the current shadow pass.
	//
	// Parameters:
	//   - pipelineKey: the cached shadow pipeline
	//   - meshProvider: holds the vertex and index buffers
	//   - instanceCount: number of instances
	//   - bindGroups: providers for groups 0..n-1
	//
	// Returns:
	//   - error: if the pipeline is not cached
	ShadowDrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndShadowPass ends the current shadow pass.
	EndShadowPass()

	// EndShadowFrame submits the shadow passes.
	EndShadowFrame()

	// Release frees every cached pipeline and the backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing into the given window's surface.
// Panics if no adapter or device is available.
//
// Parameters:
//   - backendType: the rendering backend to use
//   - win: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the configured renderer
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
	}

	// options first so forceFallbackAdapter is known before the adapter request
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if r.pendingClearColor != nil {
		r.backend.SetClearColor(*r.pendingClearColor)
	}

	r.width, r.height = win.Width(), win.Height()
	r.backend.ConfigureSurface(r.width, r.height)
	return r
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if width <= 0 || height <= 0 || (width == r.width && height == r.height) {
		return
	}
	r.width, r.height = width, height
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(c common.Color) {
	r.backend.SetClearColor(c)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		switch p.Type() {
		case pipeline.PipelineTypeShadow:
			if err := r.backend.RegisterShadowPipeline(p); err != nil {
				return err
			}
		case pipeline.PipelineTypeRender:
			if err := r.backend.RegisterRenderPipeline(p); err != nil {
				return err
			}
		default:
			return fmt.Errorf("pipeline %q has unknown type %d", key, p.Type())
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, pipelineKey string, group int) error {
	p := r.Pipeline(pipelineKey)
	if p == nil {
		return fmt.Errorf("pipeline %q not found in cache", pipelineKey)
	}
	desc, ok := p.BindGroupLayoutDescriptor(group)
	if !ok {
		return fmt.Errorf("pipeline %q has no bind group %d", pipelineKey, group)
	}
	return r.backend.InitBindGroup(provider, desc, p.BindGroupLayout(group))
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return r.backend.InitSampler(provider, bindingKey, samplerStagingData)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) CreateShadowDepthArray(size, layers int) (*ShadowDepthArray, error) {
	return r.backend.CreateShadowDepthArray(size, layers)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	p := r.Pipeline(pipelineKey)
	if p == nil {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}
	r.backend.DrawCall(p, meshProvider, instanceCount, bindGroups)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) BeginShadowFrame() error {
	return r.backend.BeginShadowFrame()
}

func (r *renderer) BeginShadowPass(depthView *wgpu.TextureView) {
	r.backend.BeginShadowPass(depthView)
}

func (r *renderer) ShadowDrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	p := r.Pipeline(pipelineKey)
	if p == nil {
		return fmt.Errorf("shadow pipeline %q not found in cache", pipelineKey)
	}
	r.backend.ShadowDrawCall(p, meshProvider, instanceCount, bindGroups)
	return nil
}

func (r *renderer) EndShadowPass() {
	r.backend.EndShadowPass()
}

func (r *renderer) EndShadowFrame() {
	r.backend.EndShadowFrame()
}

func (r *renderer) Release() {
	r.mu.Lock()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.mu.Unlock()

	r.backend.Release()
}
