// pkg/trace/recorder.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package trace provides a device that records the calls made to it
// rather than issuing them to a GPU. It answers capability queries from a
// caps.Profile and emulates enough of the driver (object names, shader
// compilation and linking, attribute and uniform locations) for the
// renderer to run against it unmodified.
package trace

import (
	"fmt"
	"strings"

	"github.com/mmp/glstate/pkg/caps"
	"github.com/mmp/glstate/pkg/device"
	"github.com/mmp/glstate/pkg/device/glenum"
	"github.com/mmp/glstate/pkg/log"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	_ device.Device        = (*Recorder)(nil)
	_ device.FixedFunction = (*Recorder)(nil)
	_ device.VertexArrays  = (*Recorder)(nil)
)

type objectKind int

const (
	kindTexture objectKind = iota
	kindBuffer
	kindShader
	kindFramebuffer
	kindRenderbuffer
	kindVertexArray
	numObjectKinds
)

type shaderState struct {
	xtype    uint32
	source   string
	compiled bool
	log      string
}

type programState struct {
	shaders  []uint32
	linked   bool
	log      string
	uniforms map[string]int32
	attribs  map[string]int32
}

// Recorder is a device.Device that records every state-changing call,
// object allocation, and location lookup. Status queries (GetError,
// GetShaderiv and the like) are answered but not recorded.
type Recorder struct {
	caps.Profile

	// Missing holds uniform and attribute names that resolve to -1, as
	// the driver does for variables the compiler optimized away.
	Missing map[string]bool
	// FramebufferStatus is returned by CheckFramebufferStatus.
	FramebufferStatus uint32
	// Errors are returned by GetError, one per call, before NO_ERROR.
	Errors []uint32

	cb         CommandBuffer
	names      [numObjectKinds]uint32
	shaders    map[uint32]*shaderState
	programs   map[uint32]*programState
	clearColor [4]float32
	lg         *log.Logger
}

func NewRecorder(p caps.Profile, lg *log.Logger) *Recorder {
	return &Recorder{
		Profile:           p,
		Missing:           make(map[string]bool),
		FramebufferStatus: glenum.FRAMEBUFFER_COMPLETE,
		shaders:           make(map[uint32]*shaderState),
		programs:          make(map[uint32]*programState),
		lg:                lg,
	}
}

// Calls returns all of the calls recorded so far.
func (r *Recorder) Calls() []Call { return r.cb.Decode(0) }

// Mark returns a position in the recording that can later be passed to
// CallsSince.
func (r *Recorder) Mark() int { return len(r.cb.Buf) }

func (r *Recorder) CallsSince(mark int) []Call { return r.cb.Decode(mark) }

// Count returns the number of recorded calls to op.
func (r *Recorder) Count(op Op) int {
	return len(Filter(r.Calls(), op))
}

// Discard drops the recorded calls; emulated driver state is kept.
func (r *Recorder) Discard() { r.cb.Reset() }

// Trace returns a copy of the recording along with the device profile.
func (r *Recorder) Trace() *Trace {
	return &Trace{
		Version: TraceVersion,
		Profile: r.Profile,
		Buf:     append([]uint32(nil), r.cb.Buf...),
	}
}

func (r *Recorder) gen(kind objectKind) uint32 {
	r.names[kind]++
	return r.names[kind]
}

// offset converts a byte offset to a 32-bit argument.
func (r *Recorder) offset(o int) uint32 {
	if o != int(uint32(o)) {
		r.lg.Errorf("%d: attempting to record non-32-bit offset", o)
	}
	return uint32(o)
}

func (r *Recorder) GetError() uint32 {
	if len(r.Errors) == 0 {
		return glenum.NO_ERROR
	}
	e := r.Errors[0]
	r.Errors = r.Errors[1:]
	return e
}

///////////////////////////////////////////////////////////////////////////
// Fixed state

func (r *Recorder) Enable(c uint32)      { r.cb.add(OpEnable, nil, c) }
func (r *Recorder) Disable(c uint32)     { r.cb.add(OpDisable, nil, c) }
func (r *Recorder) DepthFunc(fn uint32)  { r.cb.add(OpDepthFunc, nil, fn) }
func (r *Recorder) DepthMask(flag bool)  { r.cb.add(OpDepthMask, nil, bbits(flag)) }
func (r *Recorder) CullFace(mode uint32) { r.cb.add(OpCullFace, nil, mode) }
func (r *Recorder) Clear(mask uint32)    { r.cb.add(OpClear, nil, mask) }
func (r *Recorder) LineWidth(w float32)  { r.cb.add(OpLineWidth, nil, fbits(w)) }
func (r *Recorder) PointSize(s float32)  { r.cb.add(OpPointSize, nil, fbits(s)) }

func (r *Recorder) ColorMask(red, g, b, a bool) {
	r.cb.add(OpColorMask, nil, bbits(red), bbits(g), bbits(b), bbits(a))
}

func (r *Recorder) PolygonMode(face, mode uint32) { r.cb.add(OpPolygonMode, nil, face, mode) }

func (r *Recorder) PolygonOffset(factor, units float32) {
	r.cb.add(OpPolygonOffset, nil, fbits(factor), fbits(units))
}

func (r *Recorder) BlendEquationSeparate(modeRGB, modeAlpha uint32) {
	r.cb.add(OpBlendEquationSeparate, nil, modeRGB, modeAlpha)
}

func (r *Recorder) BlendFunc(sfactor, dfactor uint32) { r.cb.add(OpBlendFunc, nil, sfactor, dfactor) }

func (r *Recorder) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	r.cb.add(OpBlendFuncSeparate, nil, srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (r *Recorder) StencilOpSeparate(face, sfail, dpfail, dppass uint32) {
	r.cb.add(OpStencilOpSeparate, nil, face, sfail, dpfail, dppass)
}

func (r *Recorder) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	r.cb.add(OpStencilFuncSeparate, nil, face, fn, ibits(ref), mask)
}

func (r *Recorder) Viewport(x, y, w, h int32) {
	r.cb.add(OpViewport, nil, ibits(x), ibits(y), ibits(w), ibits(h))
}

func (r *Recorder) Scissor(x, y, w, h int32) {
	r.cb.add(OpScissor, nil, ibits(x), ibits(y), ibits(w), ibits(h))
}

func (r *Recorder) ClearColor(red, g, b, a float32) {
	r.clearColor = [4]float32{red, g, b, a}
	r.cb.add(OpClearColor, nil, floatArgs(nil, red, g, b, a)...)
}

///////////////////////////////////////////////////////////////////////////
// Textures

func (r *Recorder) GenTexture() uint32 {
	tex := r.gen(kindTexture)
	r.cb.add(OpGenTexture, nil, tex)
	return tex
}

func (r *Recorder) DeleteTexture(tex uint32)          { r.cb.add(OpDeleteTexture, nil, tex) }
func (r *Recorder) ActiveTexture(unit uint32)         { r.cb.add(OpActiveTexture, nil, unit) }
func (r *Recorder) BindTexture(target, tex uint32)    { r.cb.add(OpBindTexture, nil, target, tex) }
func (r *Recorder) GenerateMipmap(target uint32)      { r.cb.add(OpGenerateMipmap, nil, target) }
func (r *Recorder) PixelStorei(pname uint32, p int32) { r.cb.add(OpPixelStorei, nil, pname, ibits(p)) }

func (r *Recorder) TexParameteri(target, pname uint32, param int32) {
	r.cb.add(OpTexParameteri, nil, target, pname, ibits(param))
}

func (r *Recorder) TexParameterf(target, pname uint32, param float32) {
	r.cb.add(OpTexParameterf, nil, target, pname, fbits(param))
}

func (r *Recorder) TexImage2D(target uint32, level, internalFormat, w, h int32, format, xtype uint32, pixels []byte) {
	r.cb.add(OpTexImage2D, pixels, target, ibits(level), ibits(internalFormat), ibits(w), ibits(h), format, xtype)
}

func (r *Recorder) TexImage3D(target uint32, level, internalFormat, w, h, d int32, format, xtype uint32, pixels []byte) {
	r.cb.add(OpTexImage3D, pixels, target, ibits(level), ibits(internalFormat), ibits(w), ibits(h), ibits(d),
		format, xtype)
}

func (r *Recorder) TexSubImage3D(target uint32, level, x, y, z, w, h, d int32, format, xtype uint32, pixels []byte) {
	r.cb.add(OpTexSubImage3D, pixels, target, ibits(level), ibits(x), ibits(y), ibits(z), ibits(w), ibits(h),
		ibits(d), format, xtype)
}

func (r *Recorder) CompressedTexImage2D(target uint32, level int32, internalFormat uint32, w, h int32, data []byte) {
	r.cb.add(OpCompressedTexImage2D, data, target, ibits(level), internalFormat, ibits(w), ibits(h))
}

func (r *Recorder) CompressedTexImage3D(target uint32, level int32, internalFormat uint32, w, h, d int32, data []byte) {
	r.cb.add(OpCompressedTexImage3D, data, target, ibits(level), internalFormat, ibits(w), ibits(h), ibits(d))
}

func (r *Recorder) TexImage2DMultisample(target uint32, samples int32, internalFormat uint32, w, h int32,
	fixedLocations bool) {
	r.cb.add(OpTexImage2DMultisample, nil, target, ibits(samples), internalFormat, ibits(w), ibits(h),
		bbits(fixedLocations))
}

///////////////////////////////////////////////////////////////////////////
// Buffers and vertex attributes

func (r *Recorder) GenBuffer() uint32 {
	buf := r.gen(kindBuffer)
	r.cb.add(OpGenBuffer, nil, buf)
	return buf
}

func (r *Recorder) DeleteBuffer(buf uint32)               { r.cb.add(OpDeleteBuffer, nil, buf) }
func (r *Recorder) BindBuffer(target, buf uint32)         { r.cb.add(OpBindBuffer, nil, target, buf) }
func (r *Recorder) EnableVertexAttribArray(index uint32)  { r.cb.add(OpEnableVertexAttribArray, nil, index) }
func (r *Recorder) DisableVertexAttribArray(index uint32) { r.cb.add(OpDisableVertexAttribArray, nil, index) }
func (r *Recorder) VertexAttribDivisor(index, div uint32) { r.cb.add(OpVertexAttribDivisor, nil, index, div) }

func (r *Recorder) BufferData(target uint32, data []byte, usage uint32) {
	r.cb.add(OpBufferData, data, target, usage)
}

func (r *Recorder) BufferSubData(target uint32, offset int, data []byte) {
	r.cb.add(OpBufferSubData, data, target, r.offset(offset))
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32,
	offset int) {
	r.cb.add(OpVertexAttribPointer, nil, index, ibits(size), xtype, bbits(normalized), ibits(stride),
		r.offset(offset))
}

///////////////////////////////////////////////////////////////////////////
// Drawing

func (r *Recorder) DrawArrays(mode uint32, first, count int32) {
	r.cb.add(OpDrawArrays, nil, mode, ibits(first), ibits(count))
}

func (r *Recorder) DrawArraysInstanced(mode uint32, first, count, instances int32) {
	r.cb.add(OpDrawArraysInstanced, nil, mode, ibits(first), ibits(count), ibits(instances))
}

func (r *Recorder) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	r.cb.add(OpDrawElements, nil, mode, ibits(count), xtype, r.offset(offset))
}

func (r *Recorder) DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instances int32) {
	r.cb.add(OpDrawElementsInstanced, nil, mode, ibits(count), xtype, r.offset(offset), ibits(instances))
}

func (r *Recorder) DrawRangeElements(mode, start, end uint32, count int32, xtype uint32, offset int) {
	r.cb.add(OpDrawRangeElements, nil, mode, start, end, ibits(count), xtype, r.offset(offset))
}

///////////////////////////////////////////////////////////////////////////
// Shaders

func (r *Recorder) CreateShader(xtype uint32) uint32 {
	s := r.gen(kindShader)
	r.shaders[s] = &shaderState{xtype: xtype}
	r.cb.add(OpCreateShader, nil, xtype, s)
	return s
}

func (r *Recorder) ShaderSource(shader uint32, src string) {
	if s, ok := r.shaders[shader]; ok {
		s.source = src
	}
	r.cb.add(OpShaderSource, []byte(src), shader)
}

// CompileShader fails if the source contains an #error directive.
func (r *Recorder) CompileShader(shader uint32) {
	r.cb.add(OpCompileShader, nil, shader)

	s, ok := r.shaders[shader]
	if !ok {
		r.Errors = append(r.Errors, glenum.INVALID_VALUE)
		return
	}
	s.compiled, s.log = true, ""
	for i, line := range strings.Split(s.source, "\n") {
		if msg, ok := strings.CutPrefix(strings.TrimSpace(line), "#error"); ok {
			s.compiled = false
			s.log = fmt.Sprintf("ERROR: 0:%d: '#error' :%s\n", i+1, msg)
			return
		}
	}
}

func (r *Recorder) GetShaderiv(shader, pname uint32) int32 {
	s, ok := r.shaders[shader]
	if !ok {
		return 0
	}
	switch pname {
	case glenum.COMPILE_STATUS:
		return int32(bbits(s.compiled))
	case glenum.INFO_LOG_LENGTH:
		return logLength(s.log)
	default:
		return 0
	}
}

func (r *Recorder) GetShaderInfoLog(shader uint32) string {
	if s, ok := r.shaders[shader]; ok {
		return s.log
	}
	return ""
}

func (r *Recorder) DeleteShader(shader uint32) {
	delete(r.shaders, shader)
	r.cb.add(OpDeleteShader, nil, shader)
}

// Programs and shaders share a name space, as they do in GL.
func (r *Recorder) CreateProgram() uint32 {
	p := r.gen(kindShader)
	r.programs[p] = &programState{}
	r.cb.add(OpCreateProgram, nil, p)
	return p
}

func (r *Recorder) AttachShader(program, shader uint32) {
	if p, ok := r.programs[program]; ok {
		p.shaders = append(p.shaders, shader)
	}
	r.cb.add(OpAttachShader, nil, program, shader)
}

func (r *Recorder) DetachShader(program, shader uint32) {
	if p, ok := r.programs[program]; ok {
		for i, s := range p.shaders {
			if s == shader {
				p.shaders = append(p.shaders[:i], p.shaders[i+1:]...)
				break
			}
		}
	}
	r.cb.add(OpDetachShader, nil, program, shader)
}

func (r *Recorder) BindFragDataLocation(program, color uint32, name string) {
	r.cb.add(OpBindFragDataLocation, []byte(name), program, color)
}

// LinkProgram fails if no shaders are attached or if any of them failed
// to compile. Linking forgets previously assigned locations.
func (r *Recorder) LinkProgram(program uint32) {
	r.cb.add(OpLinkProgram, nil, program)

	p, ok := r.programs[program]
	if !ok {
		r.Errors = append(r.Errors, glenum.INVALID_VALUE)
		return
	}
	p.uniforms = make(map[string]int32)
	p.attribs = make(map[string]int32)
	p.linked, p.log = true, ""
	if len(p.shaders) == 0 {
		p.linked, p.log = false, "ERROR: no shaders attached\n"
	}
	for _, sh := range p.shaders {
		if s, ok := r.shaders[sh]; !ok || !s.compiled {
			p.linked = false
			p.log = "ERROR: one or more attached shaders not successfully compiled\n"
			break
		}
	}
}

func (r *Recorder) GetProgramiv(program, pname uint32) int32 {
	p, ok := r.programs[program]
	if !ok {
		return 0
	}
	switch pname {
	case glenum.LINK_STATUS:
		return int32(bbits(p.linked))
	case glenum.INFO_LOG_LENGTH:
		return logLength(p.log)
	default:
		return 0
	}
}

func (r *Recorder) GetProgramInfoLog(program uint32) string {
	if p, ok := r.programs[program]; ok {
		return p.log
	}
	return ""
}

func (r *Recorder) UseProgram(program uint32) { r.cb.add(OpUseProgram, nil, program) }

func (r *Recorder) DeleteProgram(program uint32) {
	delete(r.programs, program)
	r.cb.add(OpDeleteProgram, nil, program)
}

func (r *Recorder) GetUniformLocation(program uint32, name string) int32 {
	r.cb.add(OpGetUniformLocation, []byte(name), program)
	if p, ok := r.programs[program]; ok && p.linked {
		return r.location(p.uniforms, name)
	}
	return -1
}

func (r *Recorder) GetAttribLocation(program uint32, name string) int32 {
	r.cb.add(OpGetAttribLocation, []byte(name), program)
	if p, ok := r.programs[program]; ok && p.linked {
		return r.location(p.attribs, name)
	}
	return -1
}

// location assigns locations sequentially in the order names are first
// looked up.
func (r *Recorder) location(m map[string]int32, name string) int32 {
	if r.Missing[name] {
		return -1
	}
	if loc, ok := m[name]; ok {
		return loc
	}
	loc := int32(len(m))
	m[name] = loc
	return loc
}

func logLength(s string) int32 {
	if s == "" {
		return 0
	}
	return int32(len(s) + 1)
}

///////////////////////////////////////////////////////////////////////////
// Uniforms

func (r *Recorder) Uniform1i(loc, v int32)         { r.cb.add(OpUniform1i, nil, ibits(loc), ibits(v)) }
func (r *Recorder) Uniform1f(loc int32, v float32) { r.cb.add(OpUniform1f, nil, ibits(loc), fbits(v)) }

func (r *Recorder) Uniform1fv(loc int32, v []float32) {
	r.cb.add(OpUniform1fv, nil, floatArgs([]uint32{ibits(loc)}, v...)...)
}

func (r *Recorder) Uniform2fv(loc int32, v []float32) {
	r.cb.add(OpUniform2fv, nil, floatArgs([]uint32{ibits(loc)}, v...)...)
}

func (r *Recorder) Uniform3fv(loc int32, v []float32) {
	r.cb.add(OpUniform3fv, nil, floatArgs([]uint32{ibits(loc)}, v...)...)
}

func (r *Recorder) Uniform4fv(loc int32, v []float32) {
	r.cb.add(OpUniform4fv, nil, floatArgs([]uint32{ibits(loc)}, v...)...)
}

func (r *Recorder) Uniform1iv(loc int32, v []int32) {
	args := []uint32{ibits(loc)}
	for _, i := range v {
		args = append(args, ibits(i))
	}
	r.cb.add(OpUniform1iv, nil, args...)
}

func (r *Recorder) UniformMatrix3fv(loc int32, v []float32) {
	r.cb.add(OpUniformMatrix3fv, nil, floatArgs([]uint32{ibits(loc)}, v...)...)
}

func (r *Recorder) UniformMatrix4fv(loc int32, v []float32) {
	r.cb.add(OpUniformMatrix4fv, nil, floatArgs([]uint32{ibits(loc)}, v...)...)
}

///////////////////////////////////////////////////////////////////////////
// Framebuffers

func (r *Recorder) GenFramebuffer() uint32 {
	fb := r.gen(kindFramebuffer)
	r.cb.add(OpGenFramebuffer, nil, fb)
	return fb
}

func (r *Recorder) GenRenderbuffer() uint32 {
	rb := r.gen(kindRenderbuffer)
	r.cb.add(OpGenRenderbuffer, nil, rb)
	return rb
}

func (r *Recorder) DeleteFramebuffer(fb uint32)       { r.cb.add(OpDeleteFramebuffer, nil, fb) }
func (r *Recorder) BindFramebuffer(target, fb uint32) { r.cb.add(OpBindFramebuffer, nil, target, fb) }
func (r *Recorder) DeleteRenderbuffer(rb uint32)      { r.cb.add(OpDeleteRenderbuffer, nil, rb) }
func (r *Recorder) BindRenderbuffer(rb uint32)        { r.cb.add(OpBindRenderbuffer, nil, rb) }
func (r *Recorder) DrawBuffer(buf uint32)             { r.cb.add(OpDrawBuffer, nil, buf) }
func (r *Recorder) DrawBuffers(bufs []uint32)         { r.cb.add(OpDrawBuffers, nil, bufs...) }
func (r *Recorder) ReadBuffer(buf uint32)             { r.cb.add(OpReadBuffer, nil, buf) }

func (r *Recorder) RenderbufferStorage(internalFormat uint32, w, h int32) {
	r.cb.add(OpRenderbufferStorage, nil, internalFormat, ibits(w), ibits(h))
}

func (r *Recorder) RenderbufferStorageMultisample(samples int32, internalFormat uint32, w, h int32) {
	r.cb.add(OpRenderbufferStorageMultisample, nil, ibits(samples), internalFormat, ibits(w), ibits(h))
}

func (r *Recorder) FramebufferTexture2D(target, attachment, textarget, tex uint32, level int32) {
	r.cb.add(OpFramebufferTexture2D, nil, target, attachment, textarget, tex, ibits(level))
}

func (r *Recorder) FramebufferTextureLayer(target, attachment, tex uint32, level, layer int32) {
	r.cb.add(OpFramebufferTextureLayer, nil, target, attachment, tex, ibits(level), ibits(layer))
}

func (r *Recorder) FramebufferRenderbuffer(target, attachment, rb uint32) {
	r.cb.add(OpFramebufferRenderbuffer, nil, target, attachment, rb)
}

func (r *Recorder) CheckFramebufferStatus(target uint32) uint32 {
	r.cb.add(OpCheckFramebufferStatus, nil, target)
	return r.FramebufferStatus
}

func (r *Recorder) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32) {
	r.cb.add(OpBlitFramebuffer, nil, ibits(srcX0), ibits(srcY0), ibits(srcX1), ibits(srcY1), ibits(dstX0),
		ibits(dstY0), ibits(dstX1), ibits(dstY1), mask, filter)
}

// ReadPixels fills pixels with the most recent clear color.
func (r *Recorder) ReadPixels(x, y, w, h int32, format, xtype uint32, pixels []byte) {
	r.cb.add(OpReadPixels, nil, ibits(x), ibits(y), ibits(w), ibits(h), format, xtype)

	if xtype != glenum.UNSIGNED_BYTE {
		clear(pixels)
		return
	}
	var px []byte
	switch format {
	case glenum.RGBA:
		px = []byte{unorm(r.clearColor[0]), unorm(r.clearColor[1]), unorm(r.clearColor[2]), unorm(r.clearColor[3])}
	case glenum.BGRA:
		px = []byte{unorm(r.clearColor[2]), unorm(r.clearColor[1]), unorm(r.clearColor[0]), unorm(r.clearColor[3])}
	case glenum.RGB:
		px = []byte{unorm(r.clearColor[0]), unorm(r.clearColor[1]), unorm(r.clearColor[2])}
	default:
		clear(pixels)
		return
	}
	for i := range pixels {
		pixels[i] = px[i%len(px)]
	}
}

func unorm(f float32) byte {
	return byte(min(max(f, 0), 1)*255 + 0.5)
}

///////////////////////////////////////////////////////////////////////////
// Vertex array objects

func (r *Recorder) GenVertexArray() uint32 {
	vao := r.gen(kindVertexArray)
	r.cb.add(OpGenVertexArray, nil, vao)
	return vao
}

func (r *Recorder) BindVertexArray(vao uint32)   { r.cb.add(OpBindVertexArray, nil, vao) }
func (r *Recorder) DeleteVertexArray(vao uint32) { r.cb.add(OpDeleteVertexArray, nil, vao) }

///////////////////////////////////////////////////////////////////////////
// Fixed-function pipeline

func (r *Recorder) MatrixMode(mode uint32)          { r.cb.add(OpMatrixMode, nil, mode) }
func (r *Recorder) LoadMatrixf(m mgl32.Mat4)        { r.cb.add(OpLoadMatrixf, nil, floatArgs(nil, m[:]...)...) }
func (r *Recorder) ColorMaterial(face, mode uint32) { r.cb.add(OpColorMaterial, nil, face, mode) }
func (r *Recorder) ShadeModel(mode uint32)          { r.cb.add(OpShadeModel, nil, mode) }

func (r *Recorder) Lightfv(light, pname uint32, v mgl32.Vec4) {
	r.cb.add(OpLightfv, nil, floatArgs([]uint32{light, pname}, v[:]...)...)
}

func (r *Recorder) Lightf(light, pname uint32, v float32) {
	r.cb.add(OpLightf, nil, light, pname, fbits(v))
}

func (r *Recorder) LightModelfv(pname uint32, v mgl32.Vec4) {
	r.cb.add(OpLightModelfv, nil, floatArgs([]uint32{pname}, v[:]...)...)
}

func (r *Recorder) Materialfv(face, pname uint32, v mgl32.Vec4) {
	r.cb.add(OpMaterialfv, nil, floatArgs([]uint32{face, pname}, v[:]...)...)
}

func (r *Recorder) Materialf(face, pname uint32, v float32) {
	r.cb.add(OpMaterialf, nil, face, pname, fbits(v))
}

func (r *Recorder) Color4f(red, g, b, a float32) {
	r.cb.add(OpColor4f, nil, floatArgs(nil, red, g, b, a)...)
}

func (r *Recorder) AlphaFunc(fn uint32, ref float32) { r.cb.add(OpAlphaFunc, nil, fn, fbits(ref)) }

func (r *Recorder) TexEnvi(target, pname uint32, param int32) {
	r.cb.add(OpTexEnvi, nil, target, pname, ibits(param))
}
