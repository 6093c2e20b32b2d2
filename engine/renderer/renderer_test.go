package renderer

import (
	"errors"
	"sync"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-transform/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-transform/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-transform/engine/shading"
)

type recordedDraw struct {
	pipelineKey string
	batch       string
	slot        string
}

// fakeBackend records renderer traffic without touching a GPU.
type fakeBackend struct {
	sizes       [][2]int
	presentMode PresentMode
	pipelines   []string
	slots       int
	writes      []bind_group_provider.BufferWrite
	draws       []recordedDraw
	frames      int
	presented   int
	released    bool

	beginErr    error
	pipelineErr error
}

var _ RendererBackend = &fakeBackend{}

func (f *fakeBackend) Device() *wgpu.Device { return nil }
func (f *fakeBackend) Queue() *wgpu.Queue   { return nil }

func (f *fakeBackend) ConfigureSurface(width, height int) error {
	f.sizes = append(f.sizes, [2]int{width, height})
	return nil
}

func (f *fakeBackend) SetPresentMode(mode PresentMode) { f.presentMode = mode }

func (f *fakeBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	if f.pipelineErr != nil {
		return f.pipelineErr
	}
	f.pipelines = append(f.pipelines, p.PipelineKey())
	return nil
}

func (f *fakeBackend) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, _, _ []byte, indexCount int) error {
	provider.SetIndexCount(indexCount)
	return nil
}

func (f *fakeBackend) InitUniformSlot(bind_group_provider.BindGroupProvider) error {
	f.slots++
	return nil
}

func (f *fakeBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	f.writes = append(f.writes, writes...)
}

func (f *fakeBackend) BeginFrame() error {
	if f.beginErr != nil {
		return f.beginErr
	}
	f.frames++
	return nil
}

func (f *fakeBackend) DrawCall(p pipeline.Pipeline, mesh, uniform bind_group_provider.BindGroupProvider) {
	f.draws = append(f.draws, recordedDraw{pipelineKey: p.PipelineKey(), batch: mesh.Label(), slot: uniform.Label()})
}

func (f *fakeBackend) EndFrame() {}
func (f *fakeBackend) Present()  { f.presented++ }
func (f *fakeBackend) Release()  { f.released = true }

func newTestRenderer(t *testing.T, backend *fakeBackend, options ...RendererBuilderOption) *renderer {
	t.Helper()
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		batches:       make(map[string]batch),
		backend:       backend,
	}
	for _, opt := range options {
		opt(r)
	}
	require.NoError(t, r.start(800, 600))
	return r
}

// triangle is one vertex-normal triangle facing +Z.
var (
	triangleVertices = []float32{
		0, 0, 0, 0, 0, 1,
		1, 0, 0, 0, 0, 1,
		0, 1, 0, 0, 0, 1,
	}
	triangleIndices = []uint32{0, 1, 2}
)

func TestValidateBatch(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		indices  []uint32
		topology Topology
		wantErr  bool
	}{
		{"triangle", triangleVertices, triangleIndices, TopologyTriangles, false},
		{"line", triangleVertices, []uint32{0, 1, 1, 2}, TopologyLines, false},
		{"no vertices", nil, triangleIndices, TopologyTriangles, true},
		{"partial vertex", triangleVertices[:10], triangleIndices, TopologyTriangles, true},
		{"no indices", triangleVertices, nil, TopologyTriangles, true},
		{"partial triangle", triangleVertices, []uint32{0, 1}, TopologyTriangles, true},
		{"partial line", triangleVertices, []uint32{0, 1, 2}, TopologyLines, true},
		{"index out of range", triangleVertices, []uint32{0, 1, 3}, TopologyTriangles, true},
		{"unknown topology", triangleVertices, triangleIndices, Topology(9), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBatch(tt.vertices, tt.indices, tt.topology)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBatch)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTopology(t *testing.T) {
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, TopologyTriangles.primitive())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, TopologyLines.primitive())
	assert.Equal(t, "lines", TopologyLines.String())
	assert.Equal(t, "topology(7)", Topology(7).String())
}

func TestStartConfiguresSurfaceAndPendingPipelines(t *testing.T) {
	backend := &fakeBackend{}
	custom := pipeline.NewPipeline(shading.Flat, pipeline.WithCullMode(wgpu.CullModeBack))
	r := newTestRenderer(t, backend, WithPresentMode(PresentModeVSync), WithPipeline(custom))

	assert.Equal(t, [][2]int{{800, 600}}, backend.sizes)
	assert.Equal(t, PresentModeVSync, backend.presentMode)
	assert.Equal(t, []string{custom.PipelineKey()}, backend.pipelines)
	assert.Same(t, custom, r.Pipeline(custom.PipelineKey()))
}

func TestResizeIgnoresMinimizedWindow(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend)

	require.NoError(t, r.Resize(0, 0))
	require.NoError(t, r.Resize(1024, 512))
	assert.Equal(t, [][2]int{{800, 600}, {1024, 512}}, backend.sizes)
}

func TestRegisterBatch(t *testing.T) {
	r := newTestRenderer(t, &fakeBackend{})

	require.NoError(t, r.RegisterBatch("tri", triangleVertices, triangleIndices, TopologyTriangles))
	assert.True(t, r.HasBatch("tri"))
	assert.Equal(t, 3, r.batches["tri"].mesh.IndexCount())

	err := r.RegisterBatch("bad", triangleVertices, []uint32{5, 0, 1}, TopologyTriangles)
	assert.ErrorIs(t, err, ErrInvalidBatch)
	assert.False(t, r.HasBatch("bad"))
}

func TestDrawOutsideFrame(t *testing.T) {
	r := newTestRenderer(t, &fakeBackend{})
	require.NoError(t, r.RegisterBatch("tri", triangleVertices, triangleIndices, TopologyTriangles))

	err := r.Draw(shading.DrawCommand{Batch: "tri"})
	assert.ErrorIs(t, err, ErrFrameNotStarted)
}

func TestDrawUnknownBatch(t *testing.T) {
	r := newTestRenderer(t, &fakeBackend{})
	require.NoError(t, r.BeginFrame())

	err := r.Draw(shading.DrawCommand{Batch: "missing"})
	assert.ErrorIs(t, err, ErrUnknownBatch)
}

func TestDrawCreatesPipelinesLazily(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend)
	require.NoError(t, r.RegisterBatch("tri", triangleVertices, triangleIndices, TopologyTriangles))
	require.NoError(t, r.RegisterBatch("grid", triangleVertices, []uint32{0, 1, 1, 2}, TopologyLines))

	require.NoError(t, r.BeginFrame())
	require.NoError(t, r.Draw(shading.DrawCommand{Batch: "tri", Mode: shading.PointLightDiffuse}))
	require.NoError(t, r.Draw(shading.DrawCommand{Batch: "tri", Mode: shading.PointLightDiffuse}))
	require.NoError(t, r.Draw(shading.DrawCommand{Batch: "grid", Mode: shading.Flat}))
	r.EndFrame()

	assert.Equal(t, []string{
		pipeline.Key(shading.PointLightDiffuse, wgpu.PrimitiveTopologyTriangleList),
		pipeline.Key(shading.Flat, wgpu.PrimitiveTopologyLineList),
	}, backend.pipelines)
	require.Len(t, backend.draws, 3)
	assert.Equal(t, "grid", backend.draws[2].batch)
	assert.Len(t, r.Pipelines(), 2)
}

func TestUniformSlotsAreReusedAcrossFrames(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend)
	require.NoError(t, r.RegisterBatch("tri", triangleVertices, triangleIndices, TopologyTriangles))

	var u shading.TransformUniform
	u.Color = [4]float32{1, 0.5, 0.25, 1}
	cmd := shading.DrawCommand{Batch: "tri", Mode: shading.Flat, Uniform: u}

	require.NoError(t, r.BeginFrame())
	for range 3 {
		require.NoError(t, r.Draw(cmd))
	}
	assert.Equal(t, 3, r.DrawCount())
	r.EndFrame()
	r.Present()

	require.NoError(t, r.BeginFrame())
	require.NoError(t, r.Draw(cmd))
	assert.Equal(t, 1, r.DrawCount())
	r.EndFrame()

	assert.Equal(t, 3, backend.slots)
	assert.Equal(t, backend.draws[0].slot, backend.draws[3].slot)
	assert.NotEqual(t, backend.draws[0].slot, backend.draws[1].slot)

	require.Len(t, backend.writes, 4)
	assert.Equal(t, u.Marshal(), backend.writes[0].Data)
	assert.Equal(t, uniformBinding, backend.writes[0].Binding)
	assert.Equal(t, 1, backend.presented)
}

func TestBeginFrameError(t *testing.T) {
	backend := &fakeBackend{beginErr: errors.New("surface lost")}
	r := newTestRenderer(t, backend)
	require.NoError(t, r.RegisterBatch("tri", triangleVertices, triangleIndices, TopologyTriangles))

	assert.Error(t, r.BeginFrame())
	assert.ErrorIs(t, r.Draw(shading.DrawCommand{Batch: "tri"}), ErrFrameNotStarted)
}

func TestPipelineErrorPropagates(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend)
	require.NoError(t, r.RegisterBatch("tri", triangleVertices, triangleIndices, TopologyTriangles))
	backend.pipelineErr = errors.New("shader compile failed")

	require.NoError(t, r.BeginFrame())
	err := r.Draw(shading.DrawCommand{Batch: "tri"})
	assert.ErrorIs(t, err, backend.pipelineErr)
	assert.Empty(t, backend.draws)
}

func TestRelease(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend)
	require.NoError(t, r.RegisterBatch("tri", triangleVertices, triangleIndices, TopologyTriangles))

	r.Release()
	assert.True(t, backend.released)
	assert.False(t, r.HasBatch("tri"))
	assert.Empty(t, r.Pipelines())
}
