// pkg/gfx/buffer.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gfx

import (
	"fmt"
	"unsafe"
)

// BufferType identifies what a VertexBuffer holds. Attribute buffers are
// bound to the shader attribute named "in" followed by the type's name,
// e.g. inPosition.
type BufferType int

const (
	BufferPosition BufferType = iota
	BufferNormal
	BufferTexCoord
	BufferTexCoord2
	BufferColor
	BufferTangent
	BufferBinormal
	BufferSize
	BufferBoneWeight
	BufferBoneIndex
	// BufferIndex holds the element indices for indexed draws.
	BufferIndex
	// BufferInterleavedData holds the data for all attribute buffers that
	// have a non-zero stride; those buffers only carry the layout.
	BufferInterleavedData
	// BufferInstanceData holds per-instance transforms.
	BufferInstanceData
	NumBufferTypes
)

func (t BufferType) String() string {
	return enumString(int(t), "BufferType", []string{"Position", "Normal", "TexCoord", "TexCoord2",
		"Color", "Tangent", "Binormal", "Size", "BoneWeight", "BoneIndex", "Index", "InterleavedData",
		"InstanceData"})
}

// AttributeName returns the name of the shader attribute the buffer is
// bound to.
func (t BufferType) AttributeName() string {
	return "in" + t.String()
}

type ComponentFormat int

const (
	ComponentHalf ComponentFormat = iota
	ComponentFloat
	ComponentDouble
	ComponentByte
	ComponentUnsignedByte
	ComponentShort
	ComponentUnsignedShort
	ComponentInt
	ComponentUnsignedInt
)

var componentSizes = [...]int{2, 4, 8, 1, 1, 2, 2, 4, 4}

func (f ComponentFormat) Size() int {
	if f < 0 || int(f) >= len(componentSizes) {
		panic(fmt.Sprintf("gfx: invalid component format %d", f))
	}
	return componentSizes[f]
}

func (f ComponentFormat) String() string {
	return enumString(int(f), "ComponentFormat", []string{"Half", "Float", "Double", "Byte",
		"UnsignedByte", "Short", "UnsignedShort", "Int", "UnsignedInt"})
}

type Usage int

const (
	UsageStatic Usage = iota
	UsageDynamic
	UsageStream
)

func (u Usage) String() string {
	return enumString(int(u), "Usage", []string{"Static", "Dynamic", "Stream"})
}

// VertexBuffer holds one vertex attribute's data, or the indices of a
// mesh.
type VertexBuffer struct {
	Handle

	Type       BufferType
	Format     ComponentFormat
	Usage      Usage
	Components int
	Normalized bool
	// Offset and Stride are in bytes. A non-zero stride means the data
	// lives in the mesh's interleaved buffer.
	Offset int
	Stride int
	// InstanceSpan is the attribute divisor for instanced data: 0 for
	// per-vertex data, otherwise the number of instances that share each
	// element.
	InstanceSpan int

	// UploadedSize is the size of the native buffer's storage; it is
	// maintained by the renderer.
	UploadedSize int

	data []byte
}

func NewVertexBuffer(t BufferType, usage Usage, components int, format ComponentFormat) *VertexBuffer {
	if components < 1 || components > 16 {
		panic(fmt.Sprintf("gfx: %d components: must be between 1 and 16", components))
	}
	return &VertexBuffer{
		Type:       t,
		Format:     format,
		Usage:      usage,
		Components: components,
	}
}

// NewIndexBuffer returns an index buffer; format must be one of the
// unsigned integer formats.
func NewIndexBuffer(usage Usage, format ComponentFormat) *VertexBuffer {
	switch format {
	case ComponentUnsignedByte, ComponentUnsignedShort, ComponentUnsignedInt:
	default:
		panic(fmt.Sprintf("gfx: %s: invalid index buffer format", format))
	}
	return NewVertexBuffer(BufferIndex, usage, 1, format)
}

func (vb *VertexBuffer) Data() []byte { return vb.data }

// SetData replaces the buffer's contents.
func (vb *VertexBuffer) SetData(b []byte) {
	vb.data = b
	vb.SetUpdateNeeded()
}

func asBytes[T any](v []T) []byte {
	if len(v) == 0 {
		return nil
	}
	var t T
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*int(unsafe.Sizeof(t)))
}

// SetFloats copies the given values into the buffer, which must have
// ComponentFloat components.
func (vb *VertexBuffer) SetFloats(f []float32) {
	vb.checkFormat(ComponentFloat)
	vb.SetData(append([]byte(nil), asBytes(f)...))
}

func (vb *VertexBuffer) SetUint16s(v []uint16) {
	vb.checkFormat(ComponentUnsignedShort)
	vb.SetData(append([]byte(nil), asBytes(v)...))
}

func (vb *VertexBuffer) SetUint32s(v []uint32) {
	vb.checkFormat(ComponentUnsignedInt)
	vb.SetData(append([]byte(nil), asBytes(v)...))
}

func (vb *VertexBuffer) checkFormat(f ComponentFormat) {
	if vb.Format != f {
		panic(fmt.Sprintf("gfx: %s buffer has %s components, not %s", vb.Type, vb.Format, f))
	}
}

// ElementSize returns the size in bytes of one element.
func (vb *VertexBuffer) ElementSize() int {
	return vb.Components * vb.Format.Size()
}

// NumElements returns the number of elements stored in the buffer's own
// data.
func (vb *VertexBuffer) NumElements() int {
	return len(vb.data) / vb.ElementSize()
}

func (vb *VertexBuffer) String() string {
	return fmt.Sprintf("VertexBuffer[%s %dx%s %s elements=%d %s]", vb.Type, vb.Components, vb.Format,
		vb.Usage, vb.NumElements(), vb.Handle)
}
