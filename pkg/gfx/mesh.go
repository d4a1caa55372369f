// pkg/gfx/mesh.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gfx

import (
	"fmt"
	"slices"
)

// Mode is a primitive topology.
type Mode int

const (
	ModePoints Mode = iota
	ModeLines
	ModeLineStrip
	ModeLineLoop
	ModeTriangles
	ModeTriangleStrip
	ModeTriangleFan
)

func (m Mode) String() string {
	return enumString(int(m), "Mode", []string{"Points", "Lines", "LineStrip", "LineLoop", "Triangles",
		"TriangleStrip", "TriangleFan"})
}

// Primitives returns the number of primitives drawn from n elements.
func (m Mode) Primitives(n int) int {
	switch m {
	case ModePoints:
		return n
	case ModeLines:
		return n / 2
	case ModeLineStrip:
		return max(0, n-1)
	case ModeLineLoop:
		return n
	case ModeTriangles:
		return n / 3
	case ModeTriangleStrip, ModeTriangleFan:
		return max(0, n-2)
	default:
		panic(fmt.Sprintf("gfx: unhandled mode %d", m))
	}
}

type Mesh struct {
	Mode      Mode
	PointSize float32
	LineWidth float32
	// LODLevels are alternate index buffers; when present they are used
	// instead of the BufferIndex buffer.
	LODLevels []*VertexBuffer

	buffers []*VertexBuffer
}

func NewMesh(mode Mode) *Mesh {
	return &Mesh{Mode: mode, PointSize: 1, LineWidth: 1}
}

// SetBuffer adds vb to the mesh, replacing any existing buffer of the
// same type.
func (m *Mesh) SetBuffer(vb *VertexBuffer) {
	if i := slices.IndexFunc(m.buffers, func(b *VertexBuffer) bool { return b.Type == vb.Type }); i != -1 {
		m.buffers[i] = vb
	} else {
		m.buffers = append(m.buffers, vb)
	}
}

func (m *Mesh) ClearBuffer(t BufferType) {
	m.buffers = slices.DeleteFunc(m.buffers, func(b *VertexBuffer) bool { return b.Type == t })
}

// Buffer returns the buffer of the given type or nil.
func (m *Mesh) Buffer(t BufferType) *VertexBuffer {
	for _, b := range m.buffers {
		if b.Type == t {
			return b
		}
	}
	return nil
}

// Buffers returns the mesh's buffers in the order they were added.
func (m *Mesh) Buffers() []*VertexBuffer { return m.buffers }

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	pos := m.Buffer(BufferPosition)
	if pos == nil {
		return 0
	}
	if pos.Stride != 0 {
		if il := m.Buffer(BufferInterleavedData); il != nil {
			return len(il.Data()) / pos.Stride
		}
		return 0
	}
	return pos.NumElements()
}

// IndexBuffer returns the index buffer to use for the given level of
// detail or nil for non-indexed meshes.
func (m *Mesh) IndexBuffer(lod int) *VertexBuffer {
	if len(m.LODLevels) > 0 {
		return m.LODLevels[lod]
	}
	return m.Buffer(BufferIndex)
}

func (m *Mesh) String() string {
	return fmt.Sprintf("Mesh[%s vertices=%d buffers=%d lods=%d]", m.Mode, m.VertexCount(), len(m.buffers),
		len(m.LODLevels))
}
