package renderer

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-transform/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-transform/engine/renderer/pipeline"
)

var (
	// ErrInvalidBatch is returned by RegisterBatch for malformed vertex or index data.
	ErrInvalidBatch = errors.New("invalid batch")
	// ErrUnknownBatch is returned by Draw for a batch name that was never registered.
	ErrUnknownBatch = errors.New("unknown batch")
)

// floatsPerVertex is position xyz followed by normal xyz.
const floatsPerVertex = pipeline.VertexStride / 4

// Topology selects how a batch's indices assemble into primitives.
type Topology int

const (
	// TopologyTriangles draws every three indices as a triangle.
	TopologyTriangles Topology = iota
	// TopologyLines draws every two indices as a line segment.
	TopologyLines
)

func (t Topology) String() string {
	switch t {
	case TopologyTriangles:
		return "triangles"
	case TopologyLines:
		return "lines"
	default:
		return fmt.Sprintf("topology(%d)", int(t))
	}
}

func (t Topology) primitive() wgpu.PrimitiveTopology {
	if t == TopologyLines {
		return wgpu.PrimitiveTopologyLineList
	}
	return wgpu.PrimitiveTopologyTriangleList
}

func (t Topology) indicesPerPrimitive() int {
	if t == TopologyLines {
		return 2
	}
	return 3
}

// validateBatch checks interleaved vertex data and its index list before upload.
func validateBatch(vertices []float32, indices []uint32, topology Topology) error {
	if topology != TopologyTriangles && topology != TopologyLines {
		return fmt.Errorf("%w: %s", ErrInvalidBatch, topology)
	}
	if len(vertices) == 0 || len(vertices)%floatsPerVertex != 0 {
		return fmt.Errorf("%w: %d floats is not a whole number of %d-float vertices", ErrInvalidBatch, len(vertices), floatsPerVertex)
	}
	if len(indices) == 0 || len(indices)%topology.indicesPerPrimitive() != 0 {
		return fmt.Errorf("%w: %d indices do not form whole %s", ErrInvalidBatch, len(indices), topology)
	}
	count := uint32(len(vertices) / floatsPerVertex)
	for i, idx := range indices {
		if idx >= count {
			return fmt.Errorf("%w: index %d at position %d exceeds vertex count %d", ErrInvalidBatch, idx, i, count)
		}
	}
	return nil
}

// batch is a registered mesh and the topology it is drawn with.
type batch struct {
	topology Topology
	mesh     bind_group_provider.BindGroupProvider
}
