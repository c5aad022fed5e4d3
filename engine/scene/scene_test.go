package scene

import (
	"bytes"
	"encoding/binary"
	"errors"
	"log"
	"math"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/glowcube/common"
	"github.com/Carmen-Shannon/glowcube/engine/camera"
	"github.com/Carmen-Shannon/glowcube/engine/game_object"
	"github.com/Carmen-Shannon/glowcube/engine/model"
	"github.com/Carmen-Shannon/glowcube/engine/renderer"
	"github.com/Carmen-Shannon/glowcube/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/glowcube/engine/renderer/material"
	"github.com/Carmen-Shannon/glowcube/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/glowcube/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFloats(buf []byte, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out
}

func TestGraphAddChild(t *testing.T) {
	var g graph
	root := g.add(game_object.NewGameObject(game_object.WithName("cube")))
	child, err := g.addChild(root, game_object.NewGameObject(game_object.WithName("edges")))
	require.NoError(t, err)

	assert.Equal(t, 2, g.len())
	assert.Equal(t, noParent, g.parent(root))
	assert.Equal(t, root, g.parent(child))
	assert.Equal(t, "edges", g.object(child).Name())

	_, err = g.addChild(5, game_object.NewGameObject())
	assert.Error(t, err)
	_, err = g.addChild(-1, game_object.NewGameObject())
	assert.Error(t, err)
	assert.Equal(t, 2, g.len())
}

func TestGraphWorldMatrixFollowsParent(t *testing.T) {
	var g graph
	parent := game_object.NewGameObject(game_object.WithPosition(0, 0, -3), game_object.WithScale(2, 2, 2))
	root := g.add(parent)
	child, err := g.addChild(root, game_object.NewGameObject(game_object.WithPosition(1, 0, 0)))
	require.NoError(t, err)

	w := g.worldMatrix(child)
	p := common.TransformPoint(w[:], [3]float32{})
	assert.InDelta(t, 2, p[0], 1e-5)
	assert.InDelta(t, 0, p[1], 1e-5)
	assert.InDelta(t, -3, p[2], 1e-5)

	// Rotating the parent carries the child with it.
	parent.SetRotation(0, math.Pi/2, 0)
	w = g.worldMatrix(child)
	p = common.TransformPoint(w[:], [3]float32{})
	assert.InDelta(t, 0, p[0], 1e-5)
	assert.InDelta(t, -5, p[2], 1e-5)
}

func TestGraphEnabledInherits(t *testing.T) {
	var g graph
	parent := game_object.NewGameObject()
	root := g.add(parent)
	child, err := g.addChild(root, game_object.NewGameObject())
	require.NoError(t, err)

	assert.True(t, g.enabled(child))
	parent.SetEnabled(false)
	assert.False(t, g.enabled(root))
	assert.False(t, g.enabled(child))
}

func TestSortDrawItems(t *testing.T) {
	items := []drawItem{
		{index: 0, pipelineKey: material.PipelinePoints},
		{index: 1, pipelineKey: material.PipelineLitTransparent, distance: 2},
		{index: 2, pipelineKey: material.PipelineLine},
		{index: 3, pipelineKey: material.PipelineLit, distance: 9},
		{index: 4, pipelineKey: material.PipelineLitTransparent, distance: 8},
		{index: 5, pipelineKey: material.PipelineLit, distance: 1},
		{index: 6, pipelineKey: material.PipelinePoints},
	}
	sortDrawItems(items, drawRanks, sortedPasses)

	var order []int
	for _, it := range items {
		order = append(order, it.index)
	}
	// opaque in insertion order, lines, transparent far to near, points in insertion order
	assert.Equal(t, []int{3, 5, 2, 4, 1, 0, 6}, order)
}

func TestNewPipelines(t *testing.T) {
	pipelines, err := newPipelines()
	require.NoError(t, err)

	byKey := make(map[string]pipeline.Pipeline)
	for _, p := range pipelines {
		byKey[p.PipelineKey()] = p
	}
	require.Len(t, byKey, 5)

	lit := byKey[material.PipelineLit]
	require.NotNil(t, lit)
	assert.True(t, lit.DepthWriteEnabled())
	assert.False(t, lit.BlendEnabled())

	transparent := byKey[material.PipelineLitTransparent]
	require.NotNil(t, transparent)
	assert.True(t, transparent.BlendEnabled())
	assert.False(t, transparent.DepthWriteEnabled())

	shadow := byKey[material.PipelineShadow]
	require.NotNil(t, shadow)
	assert.Equal(t, pipeline.PipelineTypeShadow, shadow.Type())
	assert.Nil(t, shadow.Shader(shader.ShaderTypeFragment))
	assert.Equal(t, shadowDepthBias, shadow.DepthBias())

	// The lights group carries the light set, shadow set, depth array and comparison sampler.
	desc, ok := lit.BindGroupLayoutDescriptor(lightsGroup)
	require.True(t, ok)
	assert.Len(t, desc.Entries, 4)

	// Every main pipeline declares the same camera layout so one bind group serves all of them.
	camDesc, ok := lit.BindGroupLayoutDescriptor(cameraGroup)
	require.True(t, ok)
	for _, key := range []string{material.PipelineLine, material.PipelinePoints, material.PipelineLitTransparent} {
		other, ok := byKey[key].BindGroupLayoutDescriptor(cameraGroup)
		require.True(t, ok, key)
		assert.Equal(t, camDesc.Entries, other.Entries, key)
	}

	points, ok := byKey[material.PipelinePoints].BindGroupLayoutDescriptor(objectGroup)
	require.True(t, ok)
	assert.Len(t, points.Entries, 3)
}

func TestBuildNodeFrame(t *testing.T) {
	var g graph
	mat := material.NewMaterial(material.WithColor(common.Color{1, 0, 0}))
	obj := game_object.NewGameObject(
		game_object.WithModel(model.NewBoxMesh(1)),
		game_object.WithMaterial(mat),
		game_object.WithPosition(1, 2, 3),
		game_object.WithReceivesShadow(true),
	)
	i := g.add(obj)

	f := buildNodeFrame(&g, i, nodeFrame{})
	require.True(t, f.enabled)
	assert.Len(t, f.modelBuf, 128)
	assert.Len(t, f.matBuf, 48)
	assert.Equal(t, []float32{1, 2, 3}, readFloats(f.modelBuf[48:], 3))
	assert.Equal(t, float32(1), readFloats(f.matBuf, 12)[11])

	obj.SetEnabled(false)
	f = buildNodeFrame(&g, i, f)
	assert.False(t, f.enabled)
	assert.Empty(t, f.modelBuf)
}

type samplerCall struct {
	label   string
	binding int
	data    common.SamplerStagingData
}

// recordingRenderer records the GPU setup a scene performs without a device.
type recordingRenderer struct {
	renderer.Renderer
	pipelines    []string
	bindGroups   []string
	samplers     []samplerCall
	clearColor   common.Color
	shadowErr    error
	shadowBegin  int
	shadowPasses int
}

func (r *recordingRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		r.pipelines = append(r.pipelines, p.PipelineKey())
	}
	return nil
}

func (r *recordingRenderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, pipelineKey string, group int) error {
	r.bindGroups = append(r.bindGroups, provider.Label())
	return nil
}

func (r *recordingRenderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, data common.SamplerStagingData) error {
	r.samplers = append(r.samplers, samplerCall{label: provider.Label(), binding: bindingKey, data: data})
	return nil
}

func (r *recordingRenderer) CreateShadowDepthArray(size, layers int) (*renderer.ShadowDepthArray, error) {
	return &renderer.ShadowDepthArray{Layers: make([]*wgpu.TextureView, layers), Size: size}, nil
}

func (r *recordingRenderer) SetClearColor(c common.Color) { r.clearColor = c }

func (r *recordingRenderer) BeginShadowFrame() error {
	r.shadowBegin++
	return r.shadowErr
}

func (r *recordingRenderer) BeginShadowPass(*wgpu.TextureView) { r.shadowPasses++ }
func (r *recordingRenderer) EndShadowPass()                    {}
func (r *recordingRenderer) EndShadowFrame()                   {}

func newRecordingScene(t *testing.T, r *recordingRenderer, options ...SceneBuilderOption) *scene {
	t.Helper()
	s := NewScene("test", camera.NewCamera(), r, options...).(*scene)
	t.Cleanup(s.Release)
	return s
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev, flags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prev)
		log.SetFlags(flags)
	})
	return &buf
}

func TestNewSceneCreatesComparisonSampler(t *testing.T) {
	r := &recordingRenderer{}
	newRecordingScene(t, r)

	require.Len(t, r.samplers, 1)
	assert.Equal(t, "test_lights", r.samplers[0].label)
	assert.Equal(t, bindingShadowCmp, r.samplers[0].binding)
	assert.Equal(t, wgpu.CompareFunctionLessEqual, r.samplers[0].data.Compare)

	assert.Len(t, r.pipelines, 5)
	// camera, lights, then one per shadow layer
	assert.Len(t, r.bindGroups, 2+shadowLayerCount)
	assert.Equal(t, "test_lights", r.bindGroups[1])
}

func TestNewSceneOptions(t *testing.T) {
	r := &recordingRenderer{}
	bg := common.Color{0.1, 0.2, 0.3}
	s := newRecordingScene(t, r,
		WithComputeWorkers(0),
		WithShadowMapSize(256),
		WithShadowBias(0.01),
		WithAmbientColor(common.Color{0.5, 0.5, 0.5}),
		WithBackground(bg),
	)

	assert.Equal(t, 1, s.computeWorkers)
	assert.Equal(t, 256, s.shadowSize)
	assert.Equal(t, float32(0.01), s.shadowBias)
	assert.Equal(t, common.Color{0.5, 0.5, 0.5}, s.AmbientColor())
	assert.Equal(t, bg, r.clearColor)
}

func TestPrepareShadowsLogsFailureOnce(t *testing.T) {
	r := &recordingRenderer{shadowErr: errors.New("device lost")}
	s := newRecordingScene(t, r)
	s.activeLayers = 6
	out := captureLog(t)

	for range 3 {
		s.PrepareShadows()
	}
	assert.Equal(t, 3, r.shadowBegin)
	assert.Zero(t, r.shadowPasses)
	assert.Equal(t, 1, strings.Count(out.String(), "shadow frames skipped"))

	r.shadowErr = nil
	s.PrepareShadows()
	s.PrepareShadows()
	assert.Equal(t, 12, r.shadowPasses)
	assert.Equal(t, 1, strings.Count(out.String(), "shadow frames resumed"))

	r.shadowErr = errors.New("device lost")
	s.PrepareShadows()
	assert.Equal(t, 2, strings.Count(out.String(), "shadow frames skipped"))
}
