// pkg/device/gl21/gl21.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package gl21 implements device.Device, device.FixedFunction, and
// (where the driver supports it) device.VertexArrays on top of an OpenGL
// 2.1 context. Framebuffer objects, instancing, and multisample textures
// are reached through the ARB extensions, which the capability registry
// checks before the renderer uses them.
package gl21

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/mmp/glstate/pkg/device"
	"github.com/mmp/glstate/pkg/log"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	_ device.Device        = (*Device)(nil)
	_ device.FixedFunction = (*Device)(nil)
	_ device.VertexArrays  = (*Device)(nil)
)

type Device struct {
	lg *log.Logger
}

// New initializes the OpenGL function pointers for the current context,
// which must already have been made current on the calling thread.
func New(lg *log.Logger) (*Device, error) {
	lg.Info("Starting OpenGL 2.1 device initialization")
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	d := &Device{lg: lg}
	lg.Infof("OpenGL vendor %s renderer %s version %s", d.GetString(gl.VENDOR), d.GetString(gl.RENDERER),
		d.GetString(gl.VERSION))
	return d, nil
}

func ptr[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Pointer(&s[0])
}

func cstr(s string) *uint8 {
	return gl.Str(s + "\x00")
}

///////////////////////////////////////////////////////////////////////////
// caps.Prober

func (d *Device) GetString(name uint32) string { return gl.GoStr(gl.GetString(name)) }

func (d *Device) GetInteger(pname uint32) int32 {
	var v int32
	gl.GetIntegerv(pname, &v)
	return v
}

func (d *Device) GetFloat(pname uint32) float32 {
	var v float32
	gl.GetFloatv(pname, &v)
	return v
}

func (d *Device) Extensions() []string { return strings.Fields(d.GetString(gl.EXTENSIONS)) }

func (d *Device) CoreProfile() bool { return false }

///////////////////////////////////////////////////////////////////////////
// Fixed state

func (d *Device) GetError() uint32                    { return gl.GetError() }
func (d *Device) Enable(c uint32)                     { gl.Enable(c) }
func (d *Device) Disable(c uint32)                    { gl.Disable(c) }
func (d *Device) DepthFunc(fn uint32)                 { gl.DepthFunc(fn) }
func (d *Device) DepthMask(flag bool)                 { gl.DepthMask(flag) }
func (d *Device) ColorMask(r, g, b, a bool)           { gl.ColorMask(r, g, b, a) }
func (d *Device) PolygonMode(face, mode uint32)       { gl.PolygonMode(face, mode) }
func (d *Device) PolygonOffset(factor, units float32) { gl.PolygonOffset(factor, units) }
func (d *Device) CullFace(mode uint32)                { gl.CullFace(mode) }
func (d *Device) BlendEquationSeparate(modeRGB, modeAlpha uint32) {
	gl.BlendEquationSeparate(modeRGB, modeAlpha)
}
func (d *Device) BlendFunc(sfactor, dfactor uint32) { gl.BlendFunc(sfactor, dfactor) }
func (d *Device) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	gl.BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha)
}
func (d *Device) StencilOpSeparate(face, sfail, dpfail, dppass uint32) {
	gl.StencilOpSeparate(face, sfail, dpfail, dppass)
}
func (d *Device) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	gl.StencilFuncSeparate(face, fn, ref, mask)
}
func (d *Device) Viewport(x, y, w, h int32)     { gl.Viewport(x, y, w, h) }
func (d *Device) Scissor(x, y, w, h int32)      { gl.Scissor(x, y, w, h) }
func (d *Device) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }
func (d *Device) Clear(mask uint32)             { gl.Clear(mask) }
func (d *Device) LineWidth(w float32)           { gl.LineWidth(w) }
func (d *Device) PointSize(s float32)           { gl.PointSize(s) }

///////////////////////////////////////////////////////////////////////////
// Textures

func (d *Device) GenTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	return tex
}

func (d *Device) DeleteTexture(tex uint32)                        { gl.DeleteTextures(1, &tex) }
func (d *Device) ActiveTexture(unit uint32)                       { gl.ActiveTexture(unit) }
func (d *Device) BindTexture(target, tex uint32)                  { gl.BindTexture(target, tex) }
func (d *Device) TexParameteri(target, pname uint32, param int32) { gl.TexParameteri(target, pname, param) }
func (d *Device) TexParameterf(target, pname uint32, param float32) {
	gl.TexParameterf(target, pname, param)
}
func (d *Device) PixelStorei(pname uint32, param int32) { gl.PixelStorei(pname, param) }

func (d *Device) TexImage2D(target uint32, level, internalFormat, w, h int32, format, xtype uint32, pixels []byte) {
	gl.TexImage2D(target, level, internalFormat, w, h, 0, format, xtype, ptr(pixels))
}

func (d *Device) TexImage3D(target uint32, level, internalFormat, w, h, depth int32, format, xtype uint32, pixels []byte) {
	gl.TexImage3D(target, level, internalFormat, w, h, depth, 0, format, xtype, ptr(pixels))
}

func (d *Device) TexSubImage3D(target uint32, level, x, y, z, w, h, depth int32, format, xtype uint32, pixels []byte) {
	gl.TexSubImage3D(target, level, x, y, z, w, h, depth, format, xtype, ptr(pixels))
}

func (d *Device) CompressedTexImage2D(target uint32, level int32, internalFormat uint32, w, h int32, data []byte) {
	gl.CompressedTexImage2D(target, level, internalFormat, w, h, 0, int32(len(data)), ptr(data))
}

func (d *Device) CompressedTexImage3D(target uint32, level int32, internalFormat uint32, w, h, depth int32, data []byte) {
	gl.CompressedTexImage3D(target, level, internalFormat, w, h, depth, 0, int32(len(data)), ptr(data))
}

func (d *Device) TexImage2DMultisample(target uint32, samples int32, internalFormat uint32, w, h int32, fixed bool) {
	gl.TexImage2DMultisample(target, samples, internalFormat, w, h, fixed)
}

func (d *Device) GenerateMipmap(target uint32) { gl.GenerateMipmap(target) }

///////////////////////////////////////////////////////////////////////////
// Buffers and vertex attributes

func (d *Device) GenBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (d *Device) DeleteBuffer(buf uint32)       { gl.DeleteBuffers(1, &buf) }
func (d *Device) BindBuffer(target, buf uint32) { gl.BindBuffer(target, buf) }

func (d *Device) BufferData(target uint32, data []byte, usage uint32) {
	gl.BufferData(target, len(data), ptr(data), usage)
}

func (d *Device) BufferSubData(target uint32, offset int, data []byte) {
	gl.BufferSubData(target, offset, len(data), ptr(data))
}

func (d *Device) EnableVertexAttribArray(index uint32)  { gl.EnableVertexAttribArray(index) }
func (d *Device) DisableVertexAttribArray(index uint32) { gl.DisableVertexAttribArray(index) }

func (d *Device) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, xtype, normalized, stride, gl.PtrOffset(offset))
}

func (d *Device) VertexAttribDivisor(index, divisor uint32) { gl.VertexAttribDivisorARB(index, divisor) }

///////////////////////////////////////////////////////////////////////////
// Draws

func (d *Device) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }

func (d *Device) DrawArraysInstanced(mode uint32, first, count, instances int32) {
	gl.DrawArraysInstancedARB(mode, first, count, instances)
}

func (d *Device) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	gl.DrawElements(mode, count, xtype, gl.PtrOffset(offset))
}

func (d *Device) DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instances int32) {
	gl.DrawElementsInstancedARB(mode, count, xtype, gl.PtrOffset(offset), instances)
}

func (d *Device) DrawRangeElements(mode, start, end uint32, count int32, xtype uint32, offset int) {
	gl.DrawRangeElements(mode, start, end, count, xtype, gl.PtrOffset(offset))
}

///////////////////////////////////////////////////////////////////////////
// Shaders

func (d *Device) CreateShader(xtype uint32) uint32 { return gl.CreateShader(xtype) }

func (d *Device) ShaderSource(shader uint32, src string) {
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (d *Device) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (d *Device) GetShaderiv(shader, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (d *Device) GetShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Device) DeleteShader(shader uint32)          { gl.DeleteShader(shader) }
func (d *Device) CreateProgram() uint32               { return gl.CreateProgram() }
func (d *Device) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (d *Device) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }
func (d *Device) LinkProgram(program uint32)          { gl.LinkProgram(program) }
func (d *Device) UseProgram(program uint32)           { gl.UseProgram(program) }
func (d *Device) DeleteProgram(program uint32)        { gl.DeleteProgram(program) }

// BindFragDataLocation is a no-op: GLSL 1.x fragment shaders write
// gl_FragColor.
func (d *Device) BindFragDataLocation(program, color uint32, name string) {}

func (d *Device) GetProgramiv(program, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (d *Device) GetProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Device) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, cstr(name))
}

func (d *Device) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, cstr(name))
}

func (d *Device) Uniform1i(loc, v int32)         { gl.Uniform1i(loc, v) }
func (d *Device) Uniform1f(loc int32, v float32) { gl.Uniform1f(loc, v) }
func (d *Device) Uniform1fv(loc int32, v []float32) {
	if len(v) > 0 {
		gl.Uniform1fv(loc, int32(len(v)), &v[0])
	}
}

func (d *Device) Uniform2fv(loc int32, v []float32) {
	if len(v) >= 2 {
		gl.Uniform2fv(loc, int32(len(v)/2), &v[0])
	}
}

func (d *Device) Uniform3fv(loc int32, v []float32) {
	if len(v) >= 3 {
		gl.Uniform3fv(loc, int32(len(v)/3), &v[0])
	}
}

func (d *Device) Uniform4fv(loc int32, v []float32) {
	if len(v) >= 4 {
		gl.Uniform4fv(loc, int32(len(v)/4), &v[0])
	}
}

func (d *Device) Uniform1iv(loc int32, v []int32) {
	if len(v) > 0 {
		gl.Uniform1iv(loc, int32(len(v)), &v[0])
	}
}

func (d *Device) UniformMatrix3fv(loc int32, v []float32) {
	if len(v) >= 9 {
		gl.UniformMatrix3fv(loc, int32(len(v)/9), false, &v[0])
	}
}

func (d *Device) UniformMatrix4fv(loc int32, v []float32) {
	if len(v) >= 16 {
		gl.UniformMatrix4fv(loc, int32(len(v)/16), false, &v[0])
	}
}

///////////////////////////////////////////////////////////////////////////
// Framebuffers

func (d *Device) GenFramebuffer() uint32 {
	var fb uint32
	gl.GenFramebuffers(1, &fb)
	return fb
}

func (d *Device) DeleteFramebuffer(fb uint32)       { gl.DeleteFramebuffers(1, &fb) }
func (d *Device) BindFramebuffer(target, fb uint32) { gl.BindFramebuffer(target, fb) }

func (d *Device) GenRenderbuffer() uint32 {
	var rb uint32
	gl.GenRenderbuffers(1, &rb)
	return rb
}

func (d *Device) DeleteRenderbuffer(rb uint32) { gl.DeleteRenderbuffers(1, &rb) }
func (d *Device) BindRenderbuffer(rb uint32)   { gl.BindRenderbuffer(gl.RENDERBUFFER, rb) }

func (d *Device) RenderbufferStorage(internalFormat uint32, w, h int32) {
	gl.RenderbufferStorage(gl.RENDERBUFFER, internalFormat, w, h)
}

func (d *Device) RenderbufferStorageMultisample(samples int32, internalFormat uint32, w, h int32) {
	gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, samples, internalFormat, w, h)
}

func (d *Device) FramebufferTexture2D(target, attachment, textarget, tex uint32, level int32) {
	gl.FramebufferTexture2D(target, attachment, textarget, tex, level)
}

func (d *Device) FramebufferTextureLayer(target, attachment, tex uint32, level, layer int32) {
	gl.FramebufferTextureLayer(target, attachment, tex, level, layer)
}

func (d *Device) FramebufferRenderbuffer(target, attachment, rb uint32) {
	gl.FramebufferRenderbuffer(target, attachment, gl.RENDERBUFFER, rb)
}

func (d *Device) CheckFramebufferStatus(target uint32) uint32 { return gl.CheckFramebufferStatus(target) }

func (d *Device) DrawBuffer(buf uint32) { gl.DrawBuffer(buf) }

func (d *Device) DrawBuffers(bufs []uint32) { gl.DrawBuffers(int32(len(bufs)), &bufs[0]) }

func (d *Device) ReadBuffer(buf uint32) { gl.ReadBuffer(buf) }

func (d *Device) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32) {
	gl.BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1, mask, filter)
}

func (d *Device) ReadPixels(x, y, w, h int32, format, xtype uint32, pixels []byte) {
	gl.ReadPixels(x, y, w, h, format, xtype, ptr(pixels))
}

///////////////////////////////////////////////////////////////////////////
// device.FixedFunction

func (d *Device) MatrixMode(mode uint32)   { gl.MatrixMode(mode) }
func (d *Device) LoadMatrixf(m mgl32.Mat4) { gl.LoadMatrixf(&m[0]) }

func (d *Device) Lightfv(light, pname uint32, v mgl32.Vec4)   { gl.Lightfv(light, pname, &v[0]) }
func (d *Device) Lightf(light, pname uint32, v float32)       { gl.Lightf(light, pname, v) }
func (d *Device) LightModelfv(pname uint32, v mgl32.Vec4)     { gl.LightModelfv(pname, &v[0]) }
func (d *Device) Materialfv(face, pname uint32, v mgl32.Vec4) { gl.Materialfv(face, pname, &v[0]) }
func (d *Device) Materialf(face, pname uint32, v float32)     { gl.Materialf(face, pname, v) }
func (d *Device) ColorMaterial(face, mode uint32)             { gl.ColorMaterial(face, mode) }
func (d *Device) Color4f(r, g, b, a float32)                  { gl.Color4f(r, g, b, a) }
func (d *Device) AlphaFunc(fn uint32, ref float32)            { gl.AlphaFunc(fn, ref) }
func (d *Device) TexEnvi(target, pname uint32, param int32)   { gl.TexEnvi(target, pname, param) }
func (d *Device) ShadeModel(mode uint32)                      { gl.ShadeModel(mode) }

///////////////////////////////////////////////////////////////////////////
// device.VertexArrays, through GL_ARB_vertex_array_object

func (d *Device) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *Device) BindVertexArray(vao uint32)   { gl.BindVertexArray(vao) }
func (d *Device) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }
