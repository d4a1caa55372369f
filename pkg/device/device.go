// pkg/device/device.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package device defines the native graphics device that the renderer
// drives. The methods mirror the OpenGL entry points closely, using Go
// slices and strings in place of pointers. There are bindings for legacy
// (2.1) and core (3.3) OpenGL contexts as well as a recording device in
// package trace that is used in tests and for capturing traces.
//
// All methods must be called from the goroutine that owns the context.
package device

import (
	"github.com/mmp/glstate/pkg/caps"

	"github.com/go-gl/mathgl/mgl32"
)

type Device interface {
	caps.Prober

	GetError() uint32

	Enable(cap uint32)
	Disable(cap uint32)
	DepthFunc(fn uint32)
	DepthMask(flag bool)
	ColorMask(r, g, b, a bool)
	PolygonMode(face, mode uint32)
	PolygonOffset(factor, units float32)
	CullFace(mode uint32)
	BlendEquationSeparate(modeRGB, modeAlpha uint32)
	BlendFunc(sfactor, dfactor uint32)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32)
	StencilOpSeparate(face, sfail, dpfail, dppass uint32)
	StencilFuncSeparate(face, fn uint32, ref int32, mask uint32)
	Viewport(x, y, w, h int32)
	Scissor(x, y, w, h int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	LineWidth(w float32)
	PointSize(s float32)

	GenTexture() uint32
	DeleteTexture(tex uint32)
	ActiveTexture(unit uint32)
	BindTexture(target, tex uint32)
	TexParameteri(target, pname uint32, param int32)
	TexParameterf(target, pname uint32, param float32)
	PixelStorei(pname uint32, param int32)
	TexImage2D(target uint32, level, internalFormat, w, h int32, format, xtype uint32, pixels []byte)
	TexImage3D(target uint32, level, internalFormat, w, h, d int32, format, xtype uint32, pixels []byte)
	TexSubImage3D(target uint32, level, x, y, z, w, h, d int32, format, xtype uint32, pixels []byte)
	CompressedTexImage2D(target uint32, level int32, internalFormat uint32, w, h int32, data []byte)
	CompressedTexImage3D(target uint32, level int32, internalFormat uint32, w, h, d int32, data []byte)
	TexImage2DMultisample(target uint32, samples int32, internalFormat uint32, w, h int32, fixedLocations bool)
	GenerateMipmap(target uint32)

	GenBuffer() uint32
	DeleteBuffer(buf uint32)
	BindBuffer(target, buf uint32)
	BufferData(target uint32, data []byte, usage uint32)
	BufferSubData(target uint32, offset int, data []byte)

	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)
	VertexAttribDivisor(index, divisor uint32)

	DrawArrays(mode uint32, first, count int32)
	DrawArraysInstanced(mode uint32, first, count, instances int32)
	DrawElements(mode uint32, count int32, xtype uint32, offset int)
	DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instances int32)
	DrawRangeElements(mode, start, end uint32, count int32, xtype uint32, offset int)

	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	GetShaderiv(shader, pname uint32) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	BindFragDataLocation(program, color uint32, name string)
	LinkProgram(program uint32)
	GetProgramiv(program, pname uint32) int32
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	GetUniformLocation(program uint32, name string) int32
	GetAttribLocation(program uint32, name string) int32

	Uniform1i(loc, v int32)
	Uniform1f(loc int32, v float32)
	Uniform1fv(loc int32, v []float32)
	Uniform2fv(loc int32, v []float32)
	Uniform3fv(loc int32, v []float32)
	Uniform4fv(loc int32, v []float32)
	Uniform1iv(loc int32, v []int32)
	UniformMatrix3fv(loc int32, v []float32)
	UniformMatrix4fv(loc int32, v []float32)

	GenFramebuffer() uint32
	DeleteFramebuffer(fb uint32)
	BindFramebuffer(target, fb uint32)
	GenRenderbuffer() uint32
	DeleteRenderbuffer(rb uint32)
	BindRenderbuffer(rb uint32)
	RenderbufferStorage(internalFormat uint32, w, h int32)
	RenderbufferStorageMultisample(samples int32, internalFormat uint32, w, h int32)
	FramebufferTexture2D(target, attachment, textarget, tex uint32, level int32)
	FramebufferTextureLayer(target, attachment, tex uint32, level, layer int32)
	FramebufferRenderbuffer(target, attachment, rb uint32)
	CheckFramebufferStatus(target uint32) uint32
	DrawBuffer(buf uint32)
	DrawBuffers(bufs []uint32)
	ReadBuffer(buf uint32)
	BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32)
	ReadPixels(x, y, w, h int32, format, xtype uint32, pixels []byte)
}

// VertexArrays is implemented by devices that support vertex array
// objects; core profile contexts require one to be bound to draw.
type VertexArrays interface {
	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
}

// FixedFunction is implemented by devices that provide the legacy
// fixed-function transform and lighting pipeline.
type FixedFunction interface {
	MatrixMode(mode uint32)
	LoadMatrixf(m mgl32.Mat4)
	Lightfv(light, pname uint32, v mgl32.Vec4)
	Lightf(light, pname uint32, v float32)
	LightModelfv(pname uint32, v mgl32.Vec4)
	Materialfv(face, pname uint32, v mgl32.Vec4)
	Materialf(face, pname uint32, v float32)
	ColorMaterial(face, mode uint32)
	Color4f(r, g, b, a float32)
	AlphaFunc(fn uint32, ref float32)
	TexEnvi(target, pname uint32, param int32)
	ShadeModel(mode uint32)
}
