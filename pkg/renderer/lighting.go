// pkg/renderer/lighting.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"github.com/mmp/glstate/pkg/caps"
	"github.com/mmp/glstate/pkg/device/glenum"
	"github.com/mmp/glstate/pkg/gfx"
	"github.com/mmp/glstate/pkg/math"

	"github.com/go-gl/mathgl/mgl32"
)

// maxLights returns the number of fixed-function light registers that
// are used.
func (r *Renderer) maxLights() int {
	n := r.caps.Limit(caps.MaxLights)
	if r.cfg.MaxLights > 0 {
		n = min(n, r.cfg.MaxLights)
	}
	return n
}

// SetFixedFuncBindings sets the material used by the fixed-function
// pipeline; it takes effect at the next SetLighting call.
func (r *Renderer) SetFixedFuncBindings(b gfx.FixedFuncBindings) {
	r.bindings = b
}

// SetWorldMatrix sets the object-to-world transformation. With the
// fixed-function pipeline, the modelview matrix is loaded immediately.
func (r *Renderer) SetWorldMatrix(world mgl32.Mat4) {
	r.world = world
	if r.ff != nil {
		r.ctx.loadMatrix(glenum.MODELVIEW, r.view.Mul4(r.world))
	}
}

// SetViewProjectionMatrices sets the camera's view and projection
// matrices; with the fixed-function pipeline, the projection matrix is
// loaded immediately.
func (r *Renderer) SetViewProjectionMatrices(view, proj mgl32.Mat4) {
	r.view, r.proj = view, proj
	if r.ff != nil {
		r.ctx.loadMatrix(glenum.PROJECTION, proj)
	}
}

// SetLighting configures the fixed-function lights for the next draw.
// Ambient lights are summed into the global ambient term; the remaining
// lights are assigned to light registers in order, and any beyond the
// number of registers are ignored. Registers that were used for the
// previous call but not this one are disabled. An empty list disables
// lighting, in which case the bindings' Color is used for drawing.
//
// With shader-based rendering, lights are passed to shaders as uniforms
// and SetLighting does nothing.
func (r *Renderer) SetLighting(lights gfx.LightList) error {
	if r.ff == nil {
		return nil
	}
	c := r.ctx

	if len(lights) == 0 {
		c.enable(glenum.LIGHTING, false)
		col := r.bindings.Color
		r.ff.Color4f(col[0], col[1], col[2], col[3])
		c.loadMatrix(glenum.MODELVIEW, r.view.Mul4(r.world))
		return nil
	}

	ambient, rest := lights.Split()
	if n := r.maxLights(); len(rest) > n {
		r.lg.Debugf("%d lights; using the first %d", len(rest), n)
		rest = rest[:n]
	}

	r.applyMaterial()
	c.enable(glenum.LIGHTING, true)
	r.ff.LightModelfv(glenum.LIGHT_MODEL_AMBIENT, mgl32.Vec4{ambient[0], ambient[1], ambient[2], 1})

	// Light positions are given in world space and are transformed by the
	// modelview matrix when they are set.
	c.loadMatrix(glenum.MODELVIEW, r.view)

	for i, l := range rest {
		light := glenum.LIGHT0 + uint32(i)
		c.enable(light, true)
		r.ff.Lightfv(light, glenum.DIFFUSE, l.Color)
		r.ff.Lightfv(light, glenum.SPECULAR, l.Color)

		switch l.Type {
		case gfx.LightDirectional:
			dir := l.Direction.Mul(-1)
			if dir.Len() > 0 {
				dir = dir.Normalize()
			}
			r.ff.Lightfv(light, glenum.POSITION, dir.Vec4(0))
			r.ff.Lightf(light, glenum.SPOT_CUTOFF, 180)

		case gfx.LightPoint:
			r.ff.Lightfv(light, glenum.POSITION, l.Position.Vec4(1))
			r.ff.Lightf(light, glenum.SPOT_CUTOFF, 180)
			// This is a rougher falloff than the shader lighting model
			// uses.
			inv := l.InvRadius()
			r.ff.Lightf(light, glenum.CONSTANT_ATTENUATION, 1)
			r.ff.Lightf(light, glenum.LINEAR_ATTENUATION, 2*inv)
			r.ff.Lightf(light, glenum.QUADRATIC_ATTENUATION, inv*inv)

		case gfx.LightSpot:
			r.ff.Lightfv(light, glenum.POSITION, l.Position.Vec4(1))
			r.ff.Lightfv(light, glenum.SPOT_DIRECTION, l.Direction.Vec4(0))

			var exponent float32
			if l.OuterAngle > 0 {
				exponent = (1 - l.InnerAngle/l.OuterAngle) * 128
			}
			r.ff.Lightf(light, glenum.SPOT_CUTOFF, math.Degrees(l.OuterAngle))
			r.ff.Lightf(light, glenum.SPOT_EXPONENT, exponent)
			r.ff.Lightf(light, glenum.LINEAR_ATTENUATION, l.InvSpotRange())

		default:
			panic(unhandled("light type", l.Type))
		}
	}

	for i := len(rest); i < r.lightsSet; i++ {
		c.enable(glenum.LIGHT0+uint32(i), false)
	}
	r.lightsSet = len(rest)

	c.loadMatrix(glenum.MODELVIEW, r.view.Mul4(r.world))
	return nil
}

// applyMaterial sets the fixed-function material from the current
// bindings.
func (r *Renderer) applyMaterial() {
	b := &r.bindings
	r.ff.Materialf(glenum.FRONT_AND_BACK, glenum.SHININESS, math.Clamp(b.Shininess, 0, 128))
	r.ff.Materialfv(glenum.FRONT_AND_BACK, glenum.AMBIENT, b.Ambient)
	r.ff.Materialfv(glenum.FRONT_AND_BACK, glenum.DIFFUSE, b.Diffuse)
	r.ff.Materialfv(glenum.FRONT_AND_BACK, glenum.SPECULAR, b.Specular)

	if r.ctx.enable(glenum.COLOR_MATERIAL, b.UseVertexColor) && b.UseVertexColor {
		r.ff.ColorMaterial(glenum.FRONT_AND_BACK, glenum.AMBIENT_AND_DIFFUSE)
	}
}
