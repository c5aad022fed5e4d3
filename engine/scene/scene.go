package scene

import (
	"fmt"
	"log"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/glowcube/common"
	"github.com/Carmen-Shannon/glowcube/engine/camera"
	"github.com/Carmen-Shannon/glowcube/engine/game_object"
	"github.com/Carmen-Shannon/glowcube/engine/light"
	"github.com/Carmen-Shannon/glowcube/engine/model"
	"github.com/Carmen-Shannon/glowcube/engine/renderer"
	"github.com/Carmen-Shannon/glowcube/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/glowcube/engine/renderer/material"
)

// Scene owns a tree of GameObjects, the lights that illuminate them and the camera they are
// viewed through. Each frame PrepareFrame uploads transforms and lighting, PrepareShadows
// renders the point light cube maps and DrawCalls records the main pass.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// Add inserts obj as a root node and uploads its geometry. The object must carry a Model
	// and a Material.
	//
	// Parameters:
	//   - obj: the object to add
	//
	// Returns:
	//   - uint64: the ID assigned to the object
	//   - error: error if the object is incomplete or its GPU resources could not be created
	Add(obj game_object.GameObject) (uint64, error)

	// AddChild inserts obj under the node with ID parentID. The child's transform is relative
	// to its parent.
	//
	// Parameters:
	//   - parentID: the ID returned when the parent was added
	//   - obj: the object to add
	//
	// Returns:
	//   - uint64: the ID assigned to the object
	//   - error: error if the parent is unknown or GPU resources could not be created
	AddChild(parentID uint64, obj game_object.GameObject) (uint64, error)

	// Get returns the object with the given ID, or nil.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Count returns the number of objects in the scene.
	//
	// Returns:
	//   - int: object count
	Count() int

	// AddLight adds a light. Point lights beyond light.MaxPointLights are ignored when packing.
	//
	// Parameters:
	//   - l: the light
	AddLight(l light.Light)

	// Lights returns a copy of the scene's lights.
	//
	// Returns:
	//   - []light.Light: the lights
	Lights() []light.Light

	// AmbientColor returns the ambient term added on top of any ambient lights.
	//
	// Returns:
	//   - common.Color: linear RGB
	AmbientColor() common.Color

	// SetAmbientColor sets the ambient term added on top of any ambient lights.
	//
	// Parameters:
	//   - c: linear RGB
	SetAmbientColor(c common.Color)

	// Background returns the clear color of the main pass.
	//
	// Returns:
	//   - common.Color: linear RGB
	Background() common.Color

	// SetBackground sets the clear color of the main pass.
	//
	// Parameters:
	//   - c: linear RGB
	SetBackground(c common.Color)

	// Resize updates the camera aspect and the render surface. Zero sizes are ignored.
	//
	// Parameters:
	//   - width, height: framebuffer size in pixels
	Resize(width, height int)

	// PrepareFrame uploads the camera, light, shadow and per-object uniforms for this frame.
	PrepareFrame()

	// PrepareShadows renders every active shadow layer. Must run after PrepareFrame and before
	// the main pass begins.
	PrepareShadows()

	// DrawCalls records the main pass: opaque surfaces, lines, transparent surfaces back to
	// front, then point sprites.
	//
	// Returns:
	//   - error: error if a draw call failed
	DrawCalls() error

	// Release frees every GPU resource the scene created and stops its workers.
	Release()
}

// objectResources holds the GPU state of one node.
type objectResources struct {
	object bind_group_provider.BindGroupProvider
	// shadow is nil for nodes that can never be drawn into a shadow layer
	shadow bind_group_provider.BindGroupProvider
}

// nodeFrame is the CPU side of one node's uniforms, filled in parallel each frame.
type nodeFrame struct {
	enabled  bool
	world    [16]float32
	modelBuf []byte
	matBuf   []byte
}

type scene struct {
	mu *sync.RWMutex

	name string
	cam  camera.Camera
	r    renderer.Renderer

	g         graph
	resources []objectResources
	ids       map[uint64]int
	nextID    uint64

	lights     []light.Light
	ambient    common.Color
	background common.Color

	lightsBGP    bind_group_provider.BindGroupProvider
	faceBGPs     [shadowLayerCount]bind_group_provider.BindGroupProvider
	shadowArray  *renderer.ShadowDepthArray
	shadowSize   int
	shadowBias   float32
	activeLayers int

	// set while shadow frames keep failing, so the failure is logged once
	shadowFailing atomic.Bool

	// Reused every frame.
	frames     []nodeFrame
	writePool  []bind_group_provider.BufferWrite
	drawItems  []drawItem
	bindGroups []bind_group_provider.BindGroupProvider

	computePool    worker.DynamicWorkerPool
	computeWorkers int
}

var _ Scene = &scene{}

// drawRanks is the main pass order by pipeline key.
var drawRanks = map[string]int{
	material.PipelineLit:            0,
	material.PipelineLine:           1,
	material.PipelineLitTransparent: 2,
	material.PipelinePoints:         3,
}

// sortedPasses are drawn back to front.
var sortedPasses = map[string]bool{
	material.PipelineLitTransparent: true,
}

// NewScene creates a Scene, registers its pipelines with the renderer and allocates the
// camera, light and shadow resources. Panics if cam or r is nil or if any GPU resource
// cannot be created.
//
// Parameters:
//   - name: the scene identifier
//   - cam: the camera (must not be nil)
//   - r: the renderer (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:             &sync.RWMutex{},
		name:           name,
		cam:            cam,
		r:              r,
		ids:            make(map[uint64]int),
		nextID:         1,
		shadowSize:     light.DefaultShadowMapSize,
		shadowBias:     light.DefaultShadowBias,
		computeWorkers: max(runtime.NumCPU()-1, 1),
		bindGroups:     make([]bind_group_provider.BindGroupProvider, 0, 3),
	}

	for _, option := range options {
		option(s)
	}

	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)

	if err := s.init(); err != nil {
		panic(fmt.Sprintf("scene: %v", err))
	}
	r.SetClearColor(s.background)

	return s
}

// init registers the pipelines and creates the scene-wide bind groups.
func (s *scene) init() error {
	pipelines, err := newPipelines()
	if err != nil {
		return err
	}
	if err := s.r.RegisterPipelines(pipelines...); err != nil {
		return fmt.Errorf("failed to register pipelines: %w", err)
	}

	if err := s.r.InitBindGroup(s.cam.BindGroupProvider(), material.PipelineLit, cameraGroup); err != nil {
		return fmt.Errorf("failed to init camera bind group: %w", err)
	}

	s.shadowArray, err = s.r.CreateShadowDepthArray(s.shadowSize, shadowLayerCount)
	if err != nil {
		return err
	}

	s.lightsBGP = bind_group_provider.NewBindGroupProvider(s.name + "_lights")
	s.lightsBGP.ShareTextureView(bindingShadowMap, s.shadowArray.View)
	if err := s.r.InitSampler(s.lightsBGP, bindingShadowCmp, shadowSampler); err != nil {
		return fmt.Errorf("failed to create shadow comparison sampler: %w", err)
	}
	if err := s.r.InitBindGroup(s.lightsBGP, material.PipelineLit, lightsGroup); err != nil {
		return fmt.Errorf("failed to init lights bind group: %w", err)
	}

	for layer := range s.faceBGPs {
		bgp := bind_group_provider.NewBindGroupProvider(s.name + "_shadow_face_" + strconv.Itoa(layer))
		if err := s.r.InitBindGroup(bgp, material.PipelineShadow, shadowFaceGroup); err != nil {
			return fmt.Errorf("failed to init shadow face %d bind group: %w", layer, err)
		}
		s.faceBGPs[layer] = bgp
	}
	return nil
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) Add(obj game_object.GameObject) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(noParent, obj)
}

func (s *scene) AddChild(parentID uint64, obj game_object.GameObject) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent, ok := s.ids[parentID]
	if !ok {
		return 0, fmt.Errorf("scene %q has no object with ID %d", s.name, parentID)
	}
	return s.insert(parent, obj)
}

// insert creates the node's GPU resources and links it into the graph. Caller holds s.mu.
func (s *scene) insert(parent int, obj game_object.GameObject) (uint64, error) {
	if obj == nil {
		return 0, fmt.Errorf("scene %q: cannot add a nil object", s.name)
	}
	mdl, mat := obj.Model(), obj.Material()
	if mdl == nil || mat == nil {
		return 0, fmt.Errorf("scene %q: object %q needs both a model and a material", s.name, obj.Name())
	}

	id := s.nextID
	res, err := s.initResources(id, obj)
	if err != nil {
		return 0, fmt.Errorf("scene %q: object %q: %w", s.name, obj.Name(), err)
	}

	var index int
	if parent == noParent {
		index = s.g.add(obj)
	} else if index, err = s.g.addChild(parent, obj); err != nil {
		res.release()
		return 0, err
	}

	s.nextID++
	obj.SetID(id)
	s.ids[id] = index
	s.resources = append(s.resources, res)
	s.frames = append(s.frames, nodeFrame{})
	return id, nil
}

// initResources uploads the mesh and creates the object and shadow bind groups.
func (s *scene) initResources(id uint64, obj game_object.GameObject) (objectResources, error) {
	mdl, mat := obj.Model(), obj.Material()
	label := s.name + "_" + common.Coalesce(obj.Name(), mdl.Name(), "object") + "_" + strconv.FormatUint(id, 10)

	var res objectResources
	res.object = bind_group_provider.NewBindGroupProvider(label,
		bind_group_provider.WithVertexCount(mdl.VertexCount()),
	)
	if err := s.r.InitMeshBuffers(res.object, mdl.VertexData(), mdl.IndexData(), mdl.IndexCount()); err != nil {
		res.release()
		return res, fmt.Errorf("failed to upload mesh: %w", err)
	}

	pointData := mdl.PointData()
	if mdl.Topology() == model.TopologyPoints {
		if len(pointData) == 0 {
			res.release()
			return res, fmt.Errorf("point cloud has no points")
		}
		res.object.SetBufferSize(bindingPoints, uint64(len(pointData)))
	}
	if err := s.r.InitBindGroup(res.object, mat.PipelineKey(), objectGroup); err != nil {
		res.release()
		return res, err
	}
	if len(pointData) > 0 {
		s.r.WriteBuffers([]bind_group_provider.BufferWrite{
			{Provider: res.object, Binding: bindingPoints, Data: pointData},
		})
	}

	if mdl.Topology() == model.TopologyTriangles {
		res.shadow = bind_group_provider.NewBindGroupProvider(label+"_shadow",
			bind_group_provider.WithSharedBuffer(bindingModel, res.object.Buffer(bindingModel)),
		)
		if err := s.r.InitBindGroup(res.shadow, material.PipelineShadow, shadowObjectGroup); err != nil {
			res.release()
			return res, err
		}
	}
	return res, nil
}

func (r objectResources) release() {
	if r.shadow != nil {
		r.shadow.Release()
	}
	if r.object != nil {
		r.object.Release()
	}
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.ids[id]; ok {
		return s.g.object(i)
	}
	return nil
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.g.len()
}

func (s *scene) AddLight(l light.Light) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) AmbientColor() common.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ambient
}

func (s *scene) SetAmbientColor(c common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ambient = c
}

func (s *scene) Background() common.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *scene) SetBackground(c common.Color) {
	s.mu.Lock()
	s.background = c
	s.mu.Unlock()
	s.r.SetClearColor(c)
}

func (s *scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.cam.SetViewport(width, height)
	s.r.Resize(width, height)
}

func (s *scene) PrepareFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()

	writes := s.writePool[:0]

	camUniform := s.cam.GPUUniform()
	writes = append(writes, bind_group_provider.BufferWrite{
		Provider: s.cam.BindGroupProvider(),
		Binding:  0,
		Data:     camUniform.Marshal(),
	})

	lightSet, casters := light.NewGPULightSet(s.lights)
	lightSet.Ambient[0] += s.ambient[0]
	lightSet.Ambient[1] += s.ambient[1]
	lightSet.Ambient[2] += s.ambient[2]
	shadowSet := light.NewGPUShadowSet(casters, s.shadowSize, s.shadowBias)
	writes = append(writes,
		bind_group_provider.BufferWrite{Provider: s.lightsBGP, Binding: bindingLightSet, Data: lightSet.Marshal()},
		bind_group_provider.BufferWrite{Provider: s.lightsBGP, Binding: bindingShadowSet, Data: shadowSet.Marshal()},
	)
	s.activeLayers = int(shadowSet.CasterCount) * light.FacesPerLight
	for layer := range s.activeLayers {
		face := light.GPUShadowFace{ViewProj: shadowSet.FaceVP[layer]}
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: s.faceBGPs[layer],
			Binding:  0,
			Data:     face.Marshal(),
		})
	}

	// Per-node uniforms are independent, so they are built on the compute pool. The pool's
	// workers outlive the frame, so a WaitGroup is the per-frame barrier.
	var wg sync.WaitGroup
	for i := range s.g.len() {
		wg.Add(1)
		s.computePool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				s.frames[i] = buildNodeFrame(&s.g, i, s.frames[i])
				return nil, nil
			},
		})
	}
	wg.Wait()

	for i, f := range s.frames {
		if !f.enabled {
			continue
		}
		writes = append(writes,
			bind_group_provider.BufferWrite{Provider: s.resources[i].object, Binding: bindingModel, Data: f.modelBuf},
			bind_group_provider.BufferWrite{Provider: s.resources[i].object, Binding: bindingMaterial, Data: f.matBuf},
		)
	}

	s.writePool = writes
	s.r.WriteBuffers(writes)
}

// buildNodeFrame computes node i's world transform and serialized uniforms. Only node i's
// own slot is written, so calls for different nodes may run concurrently.
func buildNodeFrame(g *graph, i int, prev nodeFrame) nodeFrame {
	f := nodeFrame{modelBuf: prev.modelBuf[:0], matBuf: prev.matBuf[:0]}
	if f.enabled = g.enabled(i); !f.enabled {
		return f
	}

	obj := g.object(i)
	f.world = g.worldMatrix(i)
	data := model.GPUModelData{Model: f.world}
	common.NormalMatrix(data.Normal[:], f.world[:])
	params := obj.Material().GPUParams(obj.ReceivesShadow())

	f.modelBuf = append(f.modelBuf, data.Marshal()...)
	f.matBuf = append(f.matBuf, params.Marshal()...)
	return f
}

func (s *scene) PrepareShadows() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.activeLayers == 0 {
		return
	}

	if err := s.r.BeginShadowFrame(); err != nil {
		if !s.shadowFailing.Swap(true) {
			log.Printf("[Scene] %s: shadow frames skipped: %v", s.name, err)
		}
		return
	}
	if s.shadowFailing.Swap(false) {
		log.Printf("[Scene] %s: shadow frames resumed", s.name)
	}
	for layer := range s.activeLayers {
		s.r.BeginShadowPass(s.shadowArray.Layers[layer])
		for i, res := range s.resources {
			if res.shadow == nil || !s.frames[i].enabled || !s.g.object(i).CastsShadow() {
				continue
			}
			bindGroups := []bind_group_provider.BindGroupProvider{s.faceBGPs[layer], res.shadow}
			if err := s.r.ShadowDrawCall(material.PipelineShadow, res.object, 1, bindGroups); err != nil {
				log.Printf("[Scene] %s: shadow draw of %q failed: %v", s.name, s.g.object(i).Name(), err)
			}
		}
		s.r.EndShadowPass()
	}
	s.r.EndShadowFrame()
}

func (s *scene) DrawCalls() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	eye := s.cam.Position()
	items := s.drawItems[:0]
	for i, f := range s.frames {
		if !f.enabled {
			continue
		}
		items = append(items, drawItem{
			index:       i,
			pipelineKey: s.g.object(i).Material().PipelineKey(),
			distance:    common.Length3(common.Sub3([3]float32{f.world[12], f.world[13], f.world[14]}, eye)),
		})
	}
	sortDrawItems(items, drawRanks, sortedPasses)
	s.drawItems = items

	camBGP := s.cam.BindGroupProvider()
	for _, item := range items {
		obj := s.resources[item.index].object
		bindGroups := append(s.bindGroups[:0], camBGP, obj)
		if item.pipelineKey == material.PipelineLit || item.pipelineKey == material.PipelineLitTransparent {
			bindGroups = append(bindGroups, s.lightsBGP)
		}
		s.bindGroups = bindGroups

		if err := s.r.DrawCall(item.pipelineKey, obj, 1, bindGroups); err != nil {
			return fmt.Errorf("draw call failed for %q in scene %q: %w", s.g.object(item.index).Name(), s.name, err)
		}
	}
	return nil
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.computePool.Stop()
	for _, res := range s.resources {
		res.release()
	}
	s.resources = nil
	for i, bgp := range s.faceBGPs {
		if bgp != nil {
			bgp.Release()
			s.faceBGPs[i] = nil
		}
	}
	if s.lightsBGP != nil {
		s.lightsBGP.Release()
		s.lightsBGP = nil
	}
	if s.shadowArray != nil {
		s.shadowArray.Release()
		s.shadowArray = nil
	}
}
