// pkg/renderer/draw.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"fmt"
	"slices"

	"github.com/mmp/glstate/pkg/caps"
	"github.com/mmp/glstate/pkg/device/glenum"
	"github.com/mmp/glstate/pkg/gfx"
	"github.com/mmp/glstate/pkg/util"
)

// boundAttrib records an attribute slot enabled for the current draw.
type boundAttrib struct {
	loc     uint32
	divisor uint32
}

// RenderMesh draws the mesh with the current shader, render state, and
// textures. lod selects one of the mesh's LOD index buffers if it has
// any. If instanceCount is greater than one the mesh is drawn instanced,
// which requires the MeshInstancing capability; instanceData, if non-nil,
// supplies per-instance attributes.
//
// After the draw, the vertex attributes that were enabled for it are
// disabled and the texture units used since the last draw are unbound.
func (r *Renderer) RenderMesh(mesh *gfx.Mesh, lod int, instanceCount int, instanceData *gfx.VertexBuffer) error {
	vertexCount := mesh.VertexCount()
	if vertexCount == 0 {
		return nil
	}
	instanced := instanceCount > 1
	perInstance := slices.ContainsFunc(mesh.Buffers(), func(vb *gfx.VertexBuffer) bool { return vb.InstanceSpan > 0 })
	if instanced || perInstance || instanceData != nil {
		if err := r.caps.Require(caps.MeshInstancing, mesh.String()); err != nil {
			r.lg.Warnf("%s: %v", mesh, err)
			return err
		}
	}
	if r.shader == nil || !r.shader.Allocated() {
		panic(fmt.Sprintf("renderer: %s: draw without a bound shader", mesh))
	}

	if r.ff != nil && r.ctx.enabled[glenum.POINT_SPRITE] == on && mesh.Mode != gfx.ModePoints {
		r.applyPointSprite(false)
	}
	r.ctx.setPointSize(mesh.PointSize)
	r.ctx.setLineWidth(mesh.LineWidth)

	if r.va != nil {
		// Core profiles can't draw without a vertex array object; all
		// attribute state lives in the renderer's default one.
		r.ctx.bindVertexArray(r.defaultVAO)
	}

	indices := mesh.IndexBuffer(lod)
	if indices != nil {
		if indices.Type != gfx.BufferIndex {
			panic(fmt.Sprintf("renderer: %s: %s used as an index buffer", mesh, indices))
		}
		if !indices.Allocated() || indices.IsUpdateNeeded() {
			if err := r.UpdateBufferData(indices); err != nil {
				return err
			}
		}
	}

	interleaved := mesh.Buffer(gfx.BufferInterleavedData)
	if interleaved != nil && (!interleaved.Allocated() || interleaved.IsUpdateNeeded()) {
		if err := r.UpdateBufferData(interleaved); err != nil {
			return err
		}
	}

	r.drawAttribs = r.drawAttribs[:0]
	for _, vb := range mesh.Buffers() {
		switch vb.Type {
		case gfx.BufferIndex, gfx.BufferInterleavedData:
			continue
		}
		if vb.Stride != 0 {
			if interleaved == nil {
				panic(fmt.Sprintf("renderer: %s: %s is interleaved but the mesh has no interleaved data", mesh, vb))
			}
			r.setVertexAttrib(vb, interleaved)
		} else {
			r.setVertexAttrib(vb, nil)
		}
	}
	if instanceData != nil {
		r.setVertexAttrib(instanceData, nil)
	}

	mode := translateMode(mesh.Mode)
	instances := max(1, instanceCount)
	elements := vertexCount
	if indices != nil {
		r.ctx.bindBuffer(glenum.ELEMENT_ARRAY_BUFFER, indices.GLName())
		elements = indices.NumElements()
		xtype := translateFormat(indices.Format)
		if instanced {
			r.dev.DrawElementsInstanced(mode, int32(elements), xtype, 0, int32(instances))
		} else {
			r.dev.DrawRangeElements(mode, 0, uint32(vertexCount-1), int32(elements), xtype, 0)
		}
	} else if instanced {
		r.dev.DrawArraysInstanced(mode, 0, int32(vertexCount), int32(instances))
	} else {
		r.dev.DrawArrays(mode, 0, int32(vertexCount))
	}

	r.stats.DrawCalls++
	r.stats.Vertices += vertexCount * instances
	r.stats.Triangles += mesh.Mode.Primitives(elements) * instances

	r.clearVertexAttribs()
	r.ctx.unbindTouchedUnits()
	return nil
}

// attribSlots returns the number of attribute slots a buffer with the
// given number of components occupies and the components per slot.
// Matrices take one slot per column.
func attribSlots(components int) (int, int) {
	switch {
	case components <= 4:
		return 1, components
	case components == 9:
		return 3, 3
	case components == 16:
		return 4, 4
	default:
		panic(fmt.Sprintf("renderer: %d component vertex attributes aren't supported", components))
	}
}

// setVertexAttrib points the shader's attribute for vb's type at its
// data. If il is non-nil, vb only describes the layout and the data comes
// from the interleaved buffer il. Attributes that the shader doesn't use
// are skipped.
func (r *Renderer) setVertexAttrib(vb, il *gfx.VertexBuffer) {
	if vb.Type == gfx.BufferIndex {
		panic("renderer: index buffers can't be bound as vertex attributes")
	}

	attr := r.shader.Attribute(vb.Type)
	if attr.Location() == gfx.LocUnknown {
		loc := r.dev.GetAttribLocation(r.shader.GLName(), attr.Name)
		attr.SetLocation(util.Select[int32](loc < 0, gfx.LocNotFound, loc))
	}
	if attr.Location() == gfx.LocNotFound {
		return
	}
	loc := uint32(attr.Location())

	src := vb
	if il != nil {
		src = il
	} else if !vb.Allocated() || vb.IsUpdateNeeded() {
		// Only index buffers can fail to upload.
		_ = r.UpdateBufferData(vb)
	}
	r.ctx.bindBuffer(glenum.ARRAY_BUFFER, src.GLName())

	divisor := uint32(vb.InstanceSpan)
	if vb.Type == gfx.BufferInstanceData && divisor == 0 {
		divisor = 1
	}

	slots, size := attribSlots(vb.Components)
	stride := vb.Stride
	if stride == 0 && slots > 1 {
		stride = vb.ElementSize()
	}
	xtype := translateFormat(vb.Format)
	for i := range slots {
		slot := loc + uint32(i)
		r.ctx.enableAttrib(slot)
		r.ctx.setAttribPointer(slot, attribPointer{
			buffer:     src.GLName(),
			size:       int32(size),
			xtype:      xtype,
			normalized: vb.Normalized,
			stride:     int32(stride),
			offset:     vb.Offset + i*size*vb.Format.Size(),
		})
		if r.caps.Has(caps.MeshInstancing) {
			r.ctx.setAttribDivisor(slot, divisor)
		} else if divisor != 0 {
			panic(fmt.Sprintf("renderer: %s: instanced attribute without instancing support", vb))
		}
		r.drawAttribs = append(r.drawAttribs, boundAttrib{loc: slot, divisor: divisor})
	}
}

// clearVertexAttribs disables the attribute slots enabled for the last
// draw and returns their divisors to zero.
func (r *Renderer) clearVertexAttribs() {
	for _, a := range r.drawAttribs {
		if a.divisor != 0 {
			r.ctx.setAttribDivisor(a.loc, 0)
		}
		r.ctx.disableAttrib(a.loc)
	}
	r.drawAttribs = r.drawAttribs[:0]
}
