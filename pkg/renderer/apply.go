// pkg/renderer/apply.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"github.com/mmp/glstate/pkg/device/glenum"
	"github.com/mmp/glstate/pkg/gfx"
	"github.com/mmp/glstate/pkg/util"

	"github.com/go-gl/mathgl/mgl32"
)

// ApplyRenderState brings the device's state in line with rs, issuing
// only the calls needed for the fields that differ from the current
// state. All of the fields of rs are applied, regardless of its Apply
// flags; layered states should be combined with gfx.Merge first.
//
// The order in which the groups are applied matters to some drivers and
// must be preserved.
func (r *Renderer) ApplyRenderState(rs *gfx.RenderState) {
	c := r.ctx

	c.setPolygonMode(util.Select[uint32](rs.Wireframe, glenum.LINE, glenum.FILL))

	c.enable(glenum.DEPTH_TEST, rs.DepthTest)
	if rs.DepthTest {
		c.setDepthFunc(translateTestFunc(rs.DepthFunc))
	}

	if r.ff != nil {
		c.enable(glenum.ALPHA_TEST, rs.AlphaTest)
		if rs.AlphaTest {
			c.setAlphaFunc(translateTestFunc(rs.AlphaFunc), rs.AlphaFallOff)
		}
	}

	c.setDepthMask(rs.DepthWrite)
	c.setColorMask(rs.ColorWrite)

	r.applyPointSprite(rs.PointSprite)

	c.setPolygonOffset(rs.PolyOffset.Enabled, rs.PolyOffset.Factor, rs.PolyOffset.Units)

	// The toggle only changes when culling turns on or off; the face is
	// set whenever it changes.
	face, cull := translateCullFace(rs.CullMode)
	c.enable(glenum.CULL_FACE, cull)
	if cull {
		c.setCullFace(face)
	}

	r.applyBlend(&rs.Blend)

	c.setStencil(translateStencil(&rs.Stencil))

	if rs.LineWidth > 0 {
		c.setLineWidth(rs.LineWidth)
	}
}

func (r *Renderer) applyPointSprite(enabled bool) {
	c := r.ctx
	if r.ff == nil {
		// Point sprites are always on in core profiles; only the size
		// source is configurable.
		c.enable(glenum.PROGRAM_POINT_SIZE, enabled)
		return
	}

	if c.enabled[glenum.POINT_SPRITE] == tri(enabled) {
		return
	}
	// Coordinate replacement is texture unit state.
	if c.textureOnUnit(0) != 0 {
		c.setActiveUnit(0)
	}
	c.enable(glenum.POINT_SPRITE, enabled)
	if enabled {
		r.ff.TexEnvi(glenum.POINT_SPRITE, glenum.COORD_REPLACE, glenum.TRUE)
	}
	c.enable(glenum.PROGRAM_POINT_SIZE, enabled)
}

// applyBlend enables or disables blending before setting the equation and
// factors.
func (r *Renderer) applyBlend(b *gfx.Blend) {
	c := r.ctx
	if b.Mode == gfx.BlendOff {
		c.enable(glenum.BLEND, false)
		return
	}
	c.enable(glenum.BLEND, true)

	rgb := translateBlendEquation(b.Equation)
	c.setBlendEquation(rgb, translateBlendEquationAlpha(b.EquationAlpha, rgb))

	if b.Mode == gfx.BlendCustom {
		c.setBlendFuncSeparate(translateBlendFactor(b.SrcRGB), translateBlendFactor(b.DstRGB),
			translateBlendFactor(b.SrcAlpha), translateBlendFactor(b.DstAlpha))
	} else {
		c.setBlendFunc(blendFactors(b.Mode))
	}
}

func translateStencil(s *gfx.Stencil) stencilState {
	if !s.Enabled {
		return stencilState{}
	}
	face := func(f gfx.StencilFace) stencilFace {
		return stencilFace{
			sfail:  translateStencilOp(f.StencilFail),
			dpfail: translateStencilOp(f.DepthFail),
			dppass: translateStencilOp(f.DepthPass),
			fn:     translateTestFunc(f.Func),
		}
	}
	return stencilState{enabled: true, front: face(s.Front), back: face(s.Back)}
}

///////////////////////////////////////////////////////////////////////////
// Viewport, scissor, and clearing

// SetViewPort sets the region of the framebuffer that is drawn to.
func (r *Renderer) SetViewPort(x, y, width, height int) {
	r.viewport = [4]int{x, y, width, height}
	r.ctx.setViewport(int32(x), int32(y), int32(width), int32(height))
}

// SetClipRect enables the scissor test with the given rectangle.
func (r *Renderer) SetClipRect(x, y, width, height int) {
	r.ctx.enable(glenum.SCISSOR_TEST, true)
	r.ctx.setScissor(int32(x), int32(y), int32(width), int32(height))
}

func (r *Renderer) ClearClipRect() {
	r.ctx.enable(glenum.SCISSOR_TEST, false)
}

func (r *Renderer) SetBackgroundColor(c mgl32.Vec4) {
	r.ctx.setClearColor(c[0], c[1], c[2], c[3])
}

// Clear clears the requested buffers of the current framebuffer. Color
// and depth writes are enabled first if necessary, since they mask
// clearing too.
func (r *Renderer) Clear(color, depth, stencil bool) {
	var bits uint32
	if color {
		r.ctx.setColorMask(true)
		bits |= glenum.COLOR_BUFFER_BIT
	}
	if depth {
		r.ctx.setDepthMask(true)
		bits |= glenum.DEPTH_BUFFER_BIT
	}
	if stencil {
		bits |= glenum.STENCIL_BUFFER_BIT
	}
	if bits != 0 {
		r.dev.Clear(bits)
	}
}
