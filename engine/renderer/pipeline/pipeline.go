package pipeline

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-transform/engine/shading"
)

const (
	// VertexStride is the byte size of one vertex: position then normal, three float32 each.
	VertexStride = 24
	// VertexEntryPoint and FragmentEntryPoint name the stage functions every stock shader defines.
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the underlying WebGPU render pipeline and the state it is created from.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string
	mode        shading.Mode

	renderPipeline *wgpu.RenderPipeline

	// The following properties are used to configure the pipeline during creation and can be toggled/set with the builder options.

	depthTestEnabled  bool
	depthWriteEnabled bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
}

// Pipeline describes one GPU render pipeline: the stock shader it runs, primitive topology,
// and depth, cull and colour-write state.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Mode returns the shading mode whose shader the pipeline runs.
	//
	// Returns:
	//   - shading.Mode: the shading mode
	Mode() shading.Mode

	// Source returns the complete WGSL module for the pipeline's shading mode.
	//
	// Returns:
	//   - string: WGSL source
	//   - error: non-nil for an unknown mode
	Source() (string, error)

	// VertexLayout returns the vertex buffer layout shared by every batch.
	//
	// Returns:
	//   - wgpu.VertexBufferLayout: position at location 0, normal at location 1
	VertexLayout() wgpu.VertexBufferLayout

	// Pipeline returns the created render pipeline, or nil before registration.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the render pipeline or nil
	Pipeline() *wgpu.RenderPipeline

	// DepthTestEnabled returns whether depth testing is enabled for this pipeline.
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether depth writing is enabled for this pipeline.
	DepthWriteEnabled() bool

	// CullMode returns the cull mode configured for this pipeline.
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	WriteMask() wgpu.ColorWriteMask

	// SetRenderPipeline sets the render pipeline
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)
}

var _ Pipeline = &pipeline{}

// Key builds the cache key for a shading mode and topology pair.
//
// Parameters:
//   - mode: the shading mode
//   - topology: the primitive topology
//
// Returns:
//   - string: the pipeline key
func Key(mode shading.Mode, topology wgpu.PrimitiveTopology) string {
	return fmt.Sprintf("%s/%d", mode, topology)
}

// NewPipeline creates a Pipeline for a shading mode. The key is derived from the mode and the
// configured topology, which defaults to triangle lists with depth testing and writing enabled.
//
// Parameters:
//   - mode: the shading mode to render with
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(mode shading.Mode, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		mode:              mode,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.pipelineKey = Key(p.mode, p.topology)
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Mode() shading.Mode {
	return p.mode
}

func (p *pipeline) Source() (string, error) {
	return p.mode.Source()
}

func (p *pipeline) VertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: VertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		},
	}
}

func (p *pipeline) Pipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}
