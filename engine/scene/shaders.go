package scene

import (
	"embed"
	"fmt"

	"github.com/Carmen-Shannon/glowcube/common"
	"github.com/Carmen-Shannon/glowcube/engine/light"
	"github.com/Carmen-Shannon/glowcube/engine/renderer/material"
	"github.com/Carmen-Shannon/glowcube/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/glowcube/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed shaders/*.wgsl
var shaderFS embed.FS

// Bind group indices shared by the main pipelines.
const (
	cameraGroup = 0
	objectGroup = 1
	lightsGroup = 2
)

// Bindings inside the object and lights groups.
const (
	bindingModel     = 0
	bindingMaterial  = 1
	bindingPoints    = 2
	bindingLightSet  = 0
	bindingShadowSet = 1
	bindingShadowMap = 2
	bindingShadowCmp = 3
)

// shadowSampler filters the shadow array with a depth comparison for PCF.
var shadowSampler = common.SamplerStagingData{Compare: wgpu.CompareFunctionLessEqual}

// Bind groups of the shadow pipeline.
const (
	shadowFaceGroup   = 0
	shadowObjectGroup = 1
)

// shadowDepthBias is the constant hardware bias applied when rendering shadow layers.
const (
	shadowDepthBias      int32   = 2
	shadowDepthBiasSlope float32 = 1.5
)

func loadShader(key string, shaderType shader.ShaderType, path string) (shader.Shader, error) {
	return shader.LoadShader(key, shaderType, shaderFS, "shaders/"+path)
}

// newPipelines builds every pipeline the scene draws with, keyed by the material pipeline keys.
// Nothing here touches the GPU; the renderer creates the GPU objects on registration.
func newPipelines() ([]pipeline.Pipeline, error) {
	type stages struct{ vert, frag string }
	files := map[string]stages{
		"lit":    {"lit.vert.wgsl", "lit.frag.wgsl"},
		"line":   {"line.vert.wgsl", "unlit.frag.wgsl"},
		"points": {"points.vert.wgsl", "points.frag.wgsl"},
		"shadow": {"shadow.vert.wgsl", ""},
	}

	loaded := make(map[string][2]shader.Shader, len(files))
	for name, f := range files {
		var pair [2]shader.Shader
		var err error
		if pair[0], err = loadShader(name+".vert", shader.ShaderTypeVertex, f.vert); err != nil {
			return nil, err
		}
		if f.frag != "" {
			if pair[1], err = loadShader(name+".frag", shader.ShaderTypeFragment, f.frag); err != nil {
				return nil, err
			}
		}
		loaded[name] = pair
	}

	lit, line, points, shadow := loaded["lit"], loaded["line"], loaded["points"], loaded["shadow"]
	pipelines := []pipeline.Pipeline{
		pipeline.NewPipeline(material.PipelineLit, pipeline.PipelineTypeRender,
			pipeline.WithVertexShader(lit[0]),
			pipeline.WithFragmentShader(lit[1]),
			pipeline.WithCullMode(wgpu.CullModeBack),
		),
		pipeline.NewPipeline(material.PipelineLitTransparent, pipeline.PipelineTypeRender,
			pipeline.WithVertexShader(lit[0]),
			pipeline.WithFragmentShader(lit[1]),
			pipeline.WithCullMode(wgpu.CullModeNone),
			pipeline.WithTransparent(),
		),
		pipeline.NewPipeline(material.PipelineLine, pipeline.PipelineTypeRender,
			pipeline.WithVertexShader(line[0]),
			pipeline.WithFragmentShader(line[1]),
			pipeline.WithTopology(wgpu.PrimitiveTopologyLineList),
		),
		pipeline.NewPipeline(material.PipelinePoints, pipeline.PipelineTypeRender,
			pipeline.WithVertexShader(points[0]),
			pipeline.WithFragmentShader(points[1]),
			pipeline.WithTransparent(),
		),
		pipeline.NewPipeline(material.PipelineShadow, pipeline.PipelineTypeShadow,
			pipeline.WithVertexShader(shadow[0]),
			pipeline.WithCullMode(wgpu.CullModeNone),
			pipeline.WithDepthBias(shadowDepthBias, shadowDepthBiasSlope),
		),
	}

	for _, p := range pipelines {
		if err := checkProviders(p); err != nil {
			return nil, err
		}
	}
	return pipelines, nil
}

// checkProviders verifies that the groups the scene binds by index are fed by the expected
// provider identities.
func checkProviders(p pipeline.Pipeline) error {
	want := map[int]shader.AnnotationArg{
		cameraGroup: shader.AnnotationArgCamera,
		objectGroup: shader.AnnotationArgObject,
	}
	switch p.PipelineKey() {
	case material.PipelineLit, material.PipelineLitTransparent:
		want[lightsGroup] = shader.AnnotationArgLights
	case material.PipelineShadow:
		want = map[int]shader.AnnotationArg{
			shadowFaceGroup:   shader.AnnotationArgShadowFace,
			shadowObjectGroup: shader.AnnotationArgObject,
		}
	}

	got := p.Providers()
	for group, identity := range want {
		if got[group] != identity {
			return fmt.Errorf("pipeline %q: group %d is fed by %q, want %q", p.PipelineKey(), group, got[group], identity)
		}
	}
	if len(got) != len(want) {
		return fmt.Errorf("pipeline %q declares %d provider groups, want %d", p.PipelineKey(), len(got), len(want))
	}
	return nil
}

// shadowLayerCount is the number of shadow passes rendered per frame at most.
const shadowLayerCount = light.ShadowLayerCount
