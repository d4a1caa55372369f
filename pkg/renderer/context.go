// pkg/renderer/context.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	gomath "math"

	"github.com/mmp/glstate/pkg/device"
	"github.com/mmp/glstate/pkg/device/glenum"
	"github.com/mmp/glstate/pkg/util"

	"github.com/go-gl/mathgl/mgl32"
)

// tristate is a cached boolean that may be unknown, as it is after
// Reset.
type tristate int8

const (
	unknown tristate = iota
	off
	on
)

func tri(b bool) tristate { return util.Select(b, on, off) }

// Sentinels for cached values that don't match any real device state.
const (
	unknownID   = ^uint32(0)
	unknownEnum = ^uint32(0)
)

var unknownFloat = float32(gomath.NaN())

type rect struct {
	x, y, w, h int32
}

var unknownRect = rect{-1, -1, -1, -1}

type boundTexture struct {
	target, tex uint32
}

type attribPointer struct {
	buffer     uint32
	size       int32
	xtype      uint32
	normalized bool
	stride     int32
	offset     int
}

type attribSlot struct {
	enabled tristate
	divisor uint32
	pointer attribPointer
}

type stencilFace struct {
	sfail, dpfail, dppass, fn uint32
}

type stencilState struct {
	enabled     bool
	front, back stencilFace
}

// Context is the renderer's record of the state of the native device.
// Every state-changing call goes through one of its methods, which
// compare the request against the cached value and only issue the native
// call if they differ. After Reset, every value is unknown and the next
// request for each is issued unconditionally.
//
// Values that are stored per framebuffer object by the device (draw and
// read buffers) are cached per framebuffer name.
type Context struct {
	dev device.Device
	ff  device.FixedFunction // nil on the modern tier
	va  device.VertexArrays  // nil if vertex array objects aren't used

	enabled map[uint32]tristate

	depthFunc     uint32
	depthMask     tristate
	colorMask     tristate
	polygonMode   uint32
	offsetFactor  float32
	offsetUnits   float32
	cullFace      uint32
	blendEquation [2]uint32
	blendFactors  [4]uint32
	alphaFunc     uint32
	alphaRef      float32
	stencil       stencilState
	stencilKnown  bool
	lineWidth     float32
	pointSize     float32
	viewport      rect
	scissor       rect
	clearColor    [4]float32
	matrixMode    uint32

	activeUnit    uint32
	textures      []boundTexture
	touchedUnits  []bool
	arrayBuffer   uint32
	elementBuffer uint32
	program       uint32
	drawFB        uint32
	readFB        uint32
	renderbuffer  uint32
	vao           uint32
	attribs       []attribSlot
	drawBuffers   map[uint32]uint32
	readBuffers   map[uint32]uint32
}

// NewContext returns a Context for the given device; the number of
// texture units and attribute slots it tracks are given by the device
// limits. Its state starts out unknown.
func NewContext(dev device.Device, ff device.FixedFunction, va device.VertexArrays, units, attribs int) *Context {
	c := &Context{
		dev:          dev,
		ff:           ff,
		va:           va,
		textures:     make([]boundTexture, max(1, units)),
		touchedUnits: make([]bool, max(1, units)),
		attribs:      make([]attribSlot, max(1, attribs)),
	}
	c.Reset()
	return c
}

// Reset forgets everything known about the device's state.
func (c *Context) Reset() {
	c.enabled = make(map[uint32]tristate)

	c.depthFunc = unknownEnum
	c.depthMask = unknown
	c.colorMask = unknown
	c.polygonMode = unknownEnum
	c.offsetFactor, c.offsetUnits = unknownFloat, unknownFloat
	c.cullFace = unknownEnum
	c.blendEquation = [2]uint32{unknownEnum, unknownEnum}
	c.blendFactors = [4]uint32{unknownEnum, unknownEnum, unknownEnum, unknownEnum}
	c.alphaFunc, c.alphaRef = unknownEnum, unknownFloat
	c.stencil, c.stencilKnown = stencilState{}, false
	c.lineWidth, c.pointSize = unknownFloat, unknownFloat
	c.viewport, c.scissor = unknownRect, unknownRect
	c.clearColor = [4]float32{unknownFloat, unknownFloat, unknownFloat, unknownFloat}
	c.matrixMode = unknownEnum

	c.activeUnit = unknownEnum
	for i := range c.textures {
		c.textures[i] = boundTexture{target: unknownEnum, tex: unknownID}
		c.touchedUnits[i] = false
	}
	c.arrayBuffer, c.elementBuffer = unknownID, unknownID
	c.program = unknownID
	c.drawFB, c.readFB = unknownID, unknownID
	c.renderbuffer = unknownID
	c.vao = unknownID
	for i := range c.attribs {
		c.attribs[i] = attribSlot{enabled: unknown, divisor: unknownEnum, pointer: attribPointer{buffer: unknownID}}
	}
	c.drawBuffers = make(map[uint32]uint32)
	c.readBuffers = make(map[uint32]uint32)
}

///////////////////////////////////////////////////////////////////////////
// Toggles

// enable sets the given capability on or off, returning true if a native
// call was issued.
func (c *Context) enable(capability uint32, b bool) bool {
	if c.enabled[capability] == tri(b) {
		return false
	}
	if b {
		c.dev.Enable(capability)
	} else {
		c.dev.Disable(capability)
	}
	c.enabled[capability] = tri(b)
	return true
}

func (c *Context) setDepthFunc(fn uint32) {
	if c.depthFunc != fn {
		c.dev.DepthFunc(fn)
		c.depthFunc = fn
	}
}

func (c *Context) setDepthMask(b bool) {
	if c.depthMask != tri(b) {
		c.dev.DepthMask(b)
		c.depthMask = tri(b)
	}
}

func (c *Context) setColorMask(b bool) {
	if c.colorMask != tri(b) {
		c.dev.ColorMask(b, b, b, b)
		c.colorMask = tri(b)
	}
}

func (c *Context) setPolygonMode(mode uint32) {
	if c.polygonMode != mode {
		c.dev.PolygonMode(glenum.FRONT_AND_BACK, mode)
		c.polygonMode = mode
	}
}

// setPolygonOffset enables or disables polygon offset. The factor and
// units are always issued when it is first enabled; disabling zeroes
// them in the cache.
func (c *Context) setPolygonOffset(enabled bool, factor, units float32) {
	if !enabled {
		c.enable(glenum.POLYGON_OFFSET_FILL, false)
		c.offsetFactor, c.offsetUnits = 0, 0
		return
	}
	if c.enable(glenum.POLYGON_OFFSET_FILL, true) || c.offsetFactor != factor || c.offsetUnits != units {
		c.dev.PolygonOffset(factor, units)
		c.offsetFactor, c.offsetUnits = factor, units
	}
}

func (c *Context) setCullFace(face uint32) {
	if c.cullFace != face {
		c.dev.CullFace(face)
		c.cullFace = face
	}
}

func (c *Context) setBlendEquation(rgb, alpha uint32) {
	if c.blendEquation != [2]uint32{rgb, alpha} {
		c.dev.BlendEquationSeparate(rgb, alpha)
		c.blendEquation = [2]uint32{rgb, alpha}
	}
}

func (c *Context) setBlendFunc(src, dst uint32) {
	if c.blendFactors != [4]uint32{src, dst, src, dst} {
		c.dev.BlendFunc(src, dst)
		c.blendFactors = [4]uint32{src, dst, src, dst}
	}
}

func (c *Context) setBlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	f := [4]uint32{srcRGB, dstRGB, srcAlpha, dstAlpha}
	if c.blendFactors != f {
		c.dev.BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha)
		c.blendFactors = f
	}
}

func (c *Context) setAlphaFunc(fn uint32, ref float32) {
	if c.alphaFunc != fn || c.alphaRef != ref {
		c.ff.AlphaFunc(fn, ref)
		c.alphaFunc, c.alphaRef = fn, ref
	}
}

// setStencil applies the stencil configuration as a unit: if anything
// differs, the toggle and both faces' operations and functions are all
// issued.
func (c *Context) setStencil(s stencilState) {
	if !s.enabled {
		s.front, s.back = stencilFace{}, stencilFace{}
	}
	if c.stencilKnown && c.stencil == s {
		return
	}
	if !s.enabled {
		c.enable(glenum.STENCIL_TEST, false)
	} else {
		c.dev.Enable(glenum.STENCIL_TEST)
		c.enabled[glenum.STENCIL_TEST] = on
		c.dev.StencilOpSeparate(glenum.FRONT, s.front.sfail, s.front.dpfail, s.front.dppass)
		c.dev.StencilOpSeparate(glenum.BACK, s.back.sfail, s.back.dpfail, s.back.dppass)
		c.dev.StencilFuncSeparate(glenum.FRONT, s.front.fn, 0, ^uint32(0))
		c.dev.StencilFuncSeparate(glenum.BACK, s.back.fn, 0, ^uint32(0))
	}
	c.stencil, c.stencilKnown = s, true
}

func (c *Context) setLineWidth(w float32) {
	if c.lineWidth != w {
		c.dev.LineWidth(w)
		c.lineWidth = w
	}
}

func (c *Context) setPointSize(s float32) {
	if c.pointSize != s {
		c.dev.PointSize(s)
		c.pointSize = s
	}
}

func (c *Context) setViewport(x, y, w, h int32) {
	if r := (rect{x, y, w, h}); c.viewport != r {
		c.dev.Viewport(x, y, w, h)
		c.viewport = r
	}
}

func (c *Context) setScissor(x, y, w, h int32) {
	if r := (rect{x, y, w, h}); c.scissor != r {
		c.dev.Scissor(x, y, w, h)
		c.scissor = r
	}
}

func (c *Context) setClearColor(r, g, b, a float32) {
	if cc := [4]float32{r, g, b, a}; c.clearColor != cc {
		c.dev.ClearColor(r, g, b, a)
		c.clearColor = cc
	}
}

///////////////////////////////////////////////////////////////////////////
// Fixed-function matrices

func (c *Context) setMatrixMode(mode uint32) {
	if c.matrixMode != mode {
		c.ff.MatrixMode(mode)
		c.matrixMode = mode
	}
}

// loadMatrix loads m into the given matrix stack. The matrices
// themselves aren't cached; they are recomputed for every object.
func (c *Context) loadMatrix(mode uint32, m mgl32.Mat4) {
	c.setMatrixMode(mode)
	c.ff.LoadMatrixf(m)
}

///////////////////////////////////////////////////////////////////////////
// Bindings

func (c *Context) setActiveUnit(unit uint32) {
	if c.activeUnit != unit {
		c.dev.ActiveTexture(glenum.TEXTURE0 + unit)
		c.activeUnit = unit
	}
}

// bindTexture binds tex to the given unit, first selecting the unit if
// the binding has to change. It returns true if the binding changed.
func (c *Context) bindTexture(unit, target, tex uint32) bool {
	if int(unit) >= len(c.textures) {
		panic("renderer: texture unit out of range")
	}
	c.touchedUnits[unit] = true
	if c.textures[unit] == (boundTexture{target: target, tex: tex}) {
		return false
	}
	c.setActiveUnit(unit)
	c.dev.BindTexture(target, tex)
	c.textures[unit] = boundTexture{target: target, tex: tex}
	return true
}

// textureOnUnit returns the texture bound to the given unit, or 0 if
// none is or it is unknown.
func (c *Context) textureOnUnit(unit uint32) uint32 {
	if t := c.textures[unit].tex; t != unknownID {
		return t
	}
	return 0
}

// unbindTouchedUnits unbinds the textures on all of the units that have
// been bound since the last call.
func (c *Context) unbindTouchedUnits() {
	for i, touched := range c.touchedUnits {
		if !touched {
			continue
		}
		if bt := c.textures[i]; bt.tex != 0 && bt.tex != unknownID {
			c.setActiveUnit(uint32(i))
			c.dev.BindTexture(bt.target, 0)
			c.textures[i].tex = 0
		}
		c.touchedUnits[i] = false
	}
}

// textureDeleted updates the cache after a texture is deleted, which
// unbinds it from every unit.
func (c *Context) textureDeleted(tex uint32) {
	for i := range c.textures {
		if c.textures[i].tex == tex {
			c.textures[i].tex = 0
		}
	}
}

func (c *Context) bindBuffer(target, buf uint32) {
	p := util.Select(target == glenum.ELEMENT_ARRAY_BUFFER, &c.elementBuffer, &c.arrayBuffer)
	if *p != buf {
		c.dev.BindBuffer(target, buf)
		*p = buf
	}
}

func (c *Context) bufferDeleted(buf uint32) {
	if c.arrayBuffer == buf {
		c.arrayBuffer = 0
	}
	if c.elementBuffer == buf {
		c.elementBuffer = 0
	}
	for i := range c.attribs {
		if c.attribs[i].pointer.buffer == buf {
			c.attribs[i].pointer = attribPointer{buffer: unknownID}
		}
	}
}

func (c *Context) useProgram(prog uint32) bool {
	if c.program == prog {
		return false
	}
	c.dev.UseProgram(prog)
	c.program = prog
	return true
}

// programDeleted updates the cache after a program is deleted. A deleted
// program stays current until another is used, but its name may be
// reused, so the binding becomes unknown.
func (c *Context) programDeleted(prog uint32) {
	if c.program == prog {
		c.program = unknownID
	}
}

// bindFramebuffer binds fb to the given target; FRAMEBUFFER binds both
// the draw and read targets.
func (c *Context) bindFramebuffer(target, fb uint32) bool {
	switch target {
	case glenum.FRAMEBUFFER:
		if c.drawFB == fb && c.readFB == fb {
			return false
		}
		c.drawFB, c.readFB = fb, fb
	case glenum.DRAW_FRAMEBUFFER:
		if c.drawFB == fb {
			return false
		}
		c.drawFB = fb
	case glenum.READ_FRAMEBUFFER:
		if c.readFB == fb {
			return false
		}
		c.readFB = fb
	default:
		panic("renderer: invalid framebuffer target")
	}
	c.dev.BindFramebuffer(target, fb)
	return true
}

func (c *Context) framebufferDeleted(fb uint32) {
	if c.drawFB == fb {
		c.drawFB = 0
	}
	if c.readFB == fb {
		c.readFB = 0
	}
	delete(c.drawBuffers, fb)
	delete(c.readBuffers, fb)
}

func (c *Context) bindRenderbuffer(rb uint32) {
	if c.renderbuffer != rb {
		c.dev.BindRenderbuffer(rb)
		c.renderbuffer = rb
	}
}

func (c *Context) renderbufferDeleted(rb uint32) {
	if c.renderbuffer == rb {
		c.renderbuffer = 0
	}
}

// setDrawBuffer sets the draw buffer of the framebuffer bound to the draw
// target.
func (c *Context) setDrawBuffer(buf uint32) {
	if b, ok := c.drawBuffers[c.drawFB]; !ok || b != buf {
		c.dev.DrawBuffer(buf)
		c.drawBuffers[c.drawFB] = buf
	}
}

// setDrawBuffers selects multiple render targets; it is cached as a
// sentinel value since the device only reports the first buffer.
func (c *Context) setDrawBuffers(bufs []uint32) {
	key := mrtDrawBuffers + uint32(len(bufs))
	if b, ok := c.drawBuffers[c.drawFB]; !ok || b != key {
		c.dev.DrawBuffers(bufs)
		c.drawBuffers[c.drawFB] = key
	}
}

// mrtDrawBuffers is added to the number of draw buffers to make the
// cached value for an MRT configuration.
const mrtDrawBuffers = 0x80000000

func (c *Context) setReadBuffer(buf uint32) {
	if b, ok := c.readBuffers[c.readFB]; !ok || b != buf {
		c.dev.ReadBuffer(buf)
		c.readBuffers[c.readFB] = buf
	}
}

func (c *Context) bindVertexArray(vao uint32) {
	if c.vao != vao {
		c.va.BindVertexArray(vao)
		c.vao = vao
	}
}

///////////////////////////////////////////////////////////////////////////
// Vertex attributes

func (c *Context) slot(loc uint32) *attribSlot {
	if int(loc) >= len(c.attribs) {
		panic("renderer: vertex attribute location out of range")
	}
	return &c.attribs[loc]
}

func (c *Context) enableAttrib(loc uint32) {
	if s := c.slot(loc); s.enabled != on {
		c.dev.EnableVertexAttribArray(loc)
		s.enabled = on
	}
}

func (c *Context) disableAttrib(loc uint32) {
	if s := c.slot(loc); s.enabled != off {
		c.dev.DisableVertexAttribArray(loc)
		s.enabled = off
	}
}

// setAttribPointer points the slot at the buffer currently bound to
// ARRAY_BUFFER.
func (c *Context) setAttribPointer(loc uint32, p attribPointer) {
	if s := c.slot(loc); s.pointer != p {
		c.dev.VertexAttribPointer(loc, p.size, p.xtype, p.normalized, p.stride, p.offset)
		s.pointer = p
	}
}

func (c *Context) setAttribDivisor(loc, divisor uint32) {
	if s := c.slot(loc); s.divisor != divisor {
		c.dev.VertexAttribDivisor(loc, divisor)
		s.divisor = divisor
	}
}
