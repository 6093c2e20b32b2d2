package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-transform/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-transform/engine/shading"
	"github.com/Carmen-Shannon/oxy-transform/engine/window"
)

// ErrFrameNotStarted is returned by Draw outside a BeginFrame/EndFrame pair.
var ErrFrameNotStarted = errors.New("draw outside of frame")

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline
	batches       map[string]batch

	// slots are per-draw transform uniform buffers, reused from the start each frame.
	slots      []bind_group_provider.BindGroupProvider
	slotCursor int
	inFrame    bool

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	pendingPipelines     []pipeline.Pipeline
}

// Renderer turns scene draw commands into GPU work.
//
// Meshes are registered once as named batches of interleaved position/normal vertices. Each Draw
// uploads the command's transform uniform into its own uniform slot and encodes an indexed draw
// with the pipeline for the command's shading mode and the batch's topology. Pipelines are created
// on first use and cached by key.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// Pipelines retrieves a copy of the pipeline cache.
	//
	// Returns:
	//   - map[string]pipeline.Pipeline: a map of pipeline keys to their corresponding Pipeline objects
	Pipelines() map[string]pipeline.Pipeline

	// RegisterPipelines creates the GPU objects for one or more pipelines and caches them by PipelineKey.
	// Pipelines whose keys are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize configures the underlying backend to handle a new surface size.
	// Zero or negative sizes (a minimized window) are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface attachments could not be recreated
	Resize(width, height int) error

	// SetPresentMode sets the surface present mode; it takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// RegisterBatch uploads a mesh under a name. Vertices are interleaved position xyz and normal xyz.
	// Registering an existing name replaces the previous mesh.
	//
	// Parameters:
	//   - name: the batch name draw commands refer to
	//   - vertices: interleaved vertex data, six floats per vertex
	//   - indices: vertex indices, a whole number of primitives for the topology
	//   - topology: how indices assemble into primitives
	//
	// Returns:
	//   - error: ErrInvalidBatch for malformed data, or a GPU allocation error
	RegisterBatch(name string, vertices []float32, indices []uint32, topology Topology) error

	// HasBatch reports whether a batch with the given name is registered.
	HasBatch(name string) bool

	// BeginFrame acquires the next surface texture and begins the main render pass.
	//
	// Returns:
	//   - error: an error if the surface texture could not be acquired
	BeginFrame() error

	// Draw encodes one draw command into the current frame.
	//
	// Parameters:
	//   - cmd: the batch, shading mode and transform uniform for the draw
	//
	// Returns:
	//   - error: ErrFrameNotStarted, ErrUnknownBatch, or a GPU error
	Draw(cmd shading.DrawCommand) error

	// DrawCount returns the number of draws encoded since the last BeginFrame.
	DrawCount() int

	// EndFrame ends the render pass and submits the frame's commands.
	EndFrame()

	// Present presents the frame to the surface.
	Present()

	// Release frees every batch, uniform slot, pipeline and backend object.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing to a window's surface.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - win: the window whose surface is rendered to
//   - options: functional options applied before the backend is created
//
// Returns:
//   - Renderer: the created renderer
//   - error: an error if the adapter, device or surface could not be set up
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		batches:       make(map[string]batch),
		backendType:   backendType,
	}

	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x // default
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	if err := r.start(win.Width(), win.Height()); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("renderer: %w", err)
	}
	return r, nil
}

// start applies pending configuration to a freshly created backend.
func (r *renderer) start(width, height int) error {
	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return err
	}
	pending := r.pendingPipelines
	r.pendingPipelines = nil
	return r.RegisterPipelines(pending...)
}

func (r *renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]pipeline.Pipeline, len(r.pipelineCache))
	for k, p := range r.pipelineCache {
		out[k] = p
	}
	return out
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		if err := r.registerPipeline(p); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) registerPipeline(p pipeline.Pipeline) error {
	key := p.PipelineKey()
	if _, exists := r.pipelineCache[key]; exists {
		return nil
	}
	if err := r.backend.RegisterRenderPipeline(p); err != nil {
		return fmt.Errorf("register pipeline %q: %w", key, err)
	}
	r.pipelineCache[key] = p
	return nil
}

// pipelineFor returns the cached pipeline for a mode and topology, creating it on first use.
func (r *renderer) pipelineFor(mode shading.Mode, topology Topology) (pipeline.Pipeline, error) {
	key := pipeline.Key(mode, topology.primitive())
	if p, ok := r.pipelineCache[key]; ok {
		return p, nil
	}
	p := pipeline.NewPipeline(mode, pipeline.WithTopology(topology.primitive()))
	if err := r.registerPipeline(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *renderer) RegisterBatch(name string, vertices []float32, indices []uint32, topology Topology) error {
	if err := validateBatch(vertices, indices, topology); err != nil {
		return fmt.Errorf("batch %q: %w", name, err)
	}

	mesh := bind_group_provider.NewBindGroupProvider(name)
	if err := r.backend.InitMeshBuffers(mesh, common.SliceToBytes(vertices), common.SliceToBytes(indices), len(indices)); err != nil {
		mesh.Release()
		return fmt.Errorf("batch %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.batches[name]; ok {
		old.mesh.Release()
	}
	r.batches[name] = batch{topology: topology, mesh: mesh}
	return nil
}

func (r *renderer) HasBatch(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.batches[name]
	return ok
}

func (r *renderer) BeginFrame() error {
	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	r.mu.Lock()
	r.slotCursor = 0
	r.inFrame = true
	r.mu.Unlock()
	return nil
}

func (r *renderer) Draw(cmd shading.DrawCommand) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inFrame {
		return ErrFrameNotStarted
	}
	b, ok := r.batches[cmd.Batch]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBatch, cmd.Batch)
	}
	p, err := r.pipelineFor(cmd.Mode, b.topology)
	if err != nil {
		return err
	}
	slot, err := r.nextSlot()
	if err != nil {
		return err
	}

	r.backend.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: slot,
		Binding:  uniformBinding,
		Data:     cmd.Uniform.Marshal(),
	}})
	r.backend.DrawCall(p, b.mesh, slot)
	return nil
}

// nextSlot hands out the next uniform slot, growing the pool when a frame draws more than ever before.
func (r *renderer) nextSlot() (bind_group_provider.BindGroupProvider, error) {
	if r.slotCursor == len(r.slots) {
		slot := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("Transform Uniform %d", len(r.slots)))
		if err := r.backend.InitUniformSlot(slot); err != nil {
			slot.Release()
			return nil, fmt.Errorf("uniform slot: %w", err)
		}
		r.slots = append(r.slots, slot)
	}
	slot := r.slots[r.slotCursor]
	r.slotCursor++
	return slot, nil
}

func (r *renderer) DrawCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slotCursor
}

func (r *renderer) EndFrame() {
	r.mu.Lock()
	r.inFrame = false
	r.mu.Unlock()
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, b := range r.batches {
		b.mesh.Release()
		delete(r.batches, name)
	}
	for _, slot := range r.slots {
		slot.Release()
	}
	r.slots = nil
	r.slotCursor = 0
	for key, p := range r.pipelineCache {
		if rp := p.Pipeline(); rp != nil {
			rp.Release()
		}
		delete(r.pipelineCache, key)
	}
	r.backend.Release()
}
