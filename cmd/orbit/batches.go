package main

import (
	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-transform/engine/renderer"
)

const (
	batchCube   = "cube"
	batchSphere = "sphere"
	batchGrid   = "grid"
)

// mesh is interleaved position xyz and normal xyz with its index list.
type mesh struct {
	vertices []float32
	indices  []uint32
	topology renderer.Topology
}

func (m *mesh) vertex(px, py, pz, nx, ny, nz float32) uint32 {
	idx := uint32(len(m.vertices) / 6)
	m.vertices = append(m.vertices, px, py, pz, nx, ny, nz)
	return idx
}

// cubeMesh builds a unit cube centred on the origin with one normal per face.
func cubeMesh() mesh {
	faces := []struct {
		positions [4][3]float32
		normal    [3]float32
	}{
		{[4][3]float32{{0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}, {0.5, -0.5, 0.5}}, [3]float32{1, 0, 0}},
		{[4][3]float32{{-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}, {-0.5, -0.5, -0.5}}, [3]float32{-1, 0, 0}},
		{[4][3]float32{{-0.5, 0.5, -0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}}, [3]float32{0, 1, 0}},
		{[4][3]float32{{-0.5, -0.5, 0.5}, {-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}}, [3]float32{0, -1, 0}},
		{[4][3]float32{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}, [3]float32{0, 0, 1}},
		{[4][3]float32{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}, [3]float32{0, 0, -1}},
	}

	m := mesh{topology: renderer.TopologyTriangles}
	for _, face := range faces {
		var idx [4]uint32
		for i, p := range face.positions {
			idx[i] = m.vertex(p[0], p[1], p[2], face.normal[0], face.normal[1], face.normal[2])
		}
		m.indices = append(m.indices,
			idx[0], idx[1], idx[2],
			idx[0], idx[2], idx[3],
		)
	}
	return m
}

// sphereMesh builds a unit-radius latitude/longitude sphere. Normals equal positions.
func sphereMesh(stacks, slices int) mesh {
	stacks = max(stacks, 2)
	slices = max(slices, 3)

	m := mesh{topology: renderer.TopologyTriangles}
	for i := 0; i <= stacks; i++ {
		phi := math32.Pi * float32(i) / float32(stacks)
		y, ring := math32.Cos(phi), math32.Sin(phi)
		for j := 0; j <= slices; j++ {
			theta := 2 * math32.Pi * float32(j) / float32(slices)
			x, z := ring*math32.Sin(theta), ring*math32.Cos(theta)
			m.vertex(x, y, z, x, y, z)
		}
	}

	row := uint32(slices + 1)
	for i := range uint32(stacks) {
		for j := range uint32(slices) {
			a := i*row + j
			b := a + row
			m.indices = append(m.indices,
				a, b, a+1,
				a+1, b, b+1,
			)
		}
	}
	return m
}

// gridMesh builds a square line grid on the XZ plane with the given half-extent and spacing.
func gridMesh(halfExtent, spacing float32) mesh {
	m := mesh{topology: renderer.TopologyLines}
	steps := int(halfExtent / spacing)
	for i := -steps; i <= steps; i++ {
		c := float32(i) * spacing
		m.indices = append(m.indices,
			m.vertex(c, 0, -halfExtent, 0, 1, 0), m.vertex(c, 0, halfExtent, 0, 1, 0),
			m.vertex(-halfExtent, 0, c, 0, 1, 0), m.vertex(halfExtent, 0, c, 0, 1, 0),
		)
	}
	return m
}

// registerBatches uploads every mesh the orbit scene draws.
func registerBatches(r renderer.Renderer) error {
	meshes := map[string]mesh{
		batchCube:   cubeMesh(),
		batchSphere: sphereMesh(16, 24),
		batchGrid:   gridMesh(10, 1),
	}
	for name, m := range meshes {
		if err := r.RegisterBatch(name, m.vertices, m.indices, m.topology); err != nil {
			return err
		}
	}
	return nil
}
