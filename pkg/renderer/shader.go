// pkg/renderer/shader.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/mmp/glstate/pkg/caps"
	"github.com/mmp/glstate/pkg/device/glenum"
	"github.com/mmp/glstate/pkg/gfx"
	"github.com/mmp/glstate/pkg/util"

	"github.com/go-gl/mathgl/mgl32"
)

// ShaderError is returned when a shader stage fails to compile or a
// program fails to link. Stage is "link" for link failures.
type ShaderError struct {
	Stage string
	Name  string
	Log   string
}

func (e *ShaderError) Error() string {
	return fmt.Sprintf("%s: %s failed: %s", e.Name, e.Stage, strings.TrimSpace(e.Log))
}

var ErrShaderUnusable = errors.New("shader previously failed to build")

// versionHeader returns the #version directive for the given shader
// language, which must be of the form "GLSL" followed by the version
// number, e.g. "GLSL330".
func versionHeader(language string) (string, caps.Cap, error) {
	v, err := strconv.Atoi(strings.TrimPrefix(language, "GLSL"))
	if !strings.HasPrefix(language, "GLSL") || err != nil {
		return "", 0, fmt.Errorf("%q: unknown shader language", language)
	}
	c, err := caps.ParseCap(language)
	if err != nil {
		return "", 0, err
	}

	switch {
	case v == 100:
		// GLSL 1.00 is the ES dialect; desktop GL compiles it as 1.10.
		return "#version 110\n", c, nil
	case v >= 150:
		return fmt.Sprintf("#version %d core\n", v), c, nil
	default:
		return fmt.Sprintf("#version %d\n", v), c, nil
	}
}

// SetShader makes s the current program, building it first if it is new
// or if any of its sources have changed, and then sends any uniforms
// whose values have changed.
func (r *Renderer) SetShader(s *gfx.Shader) error {
	if s == nil {
		panic("renderer: SetShader called with nil shader")
	}
	if s.Unusable() && !r.shaderChanged(s) {
		// Don't leave the previous program in place for the caller's
		// draws.
		r.shader = nil
		return ErrShaderUnusable
	}

	if !s.Allocated() || r.shaderChanged(s) {
		if err := r.updateShaderData(s); err != nil {
			r.shader = nil
			return err
		}
	}

	if r.ctx.useProgram(s.GLName()) {
		r.stats.ShaderSwitches++
	}
	r.shader = s
	r.updateShaderUniforms(s)
	return nil
}

func (r *Renderer) shaderChanged(s *gfx.Shader) bool {
	return s.IsUpdateNeeded() || slices.ContainsFunc(s.Sources, func(src *gfx.ShaderSource) bool {
		return src.IsUpdateNeeded()
	})
}

// compileSource compiles src, allocating its native object if needed.
func (r *Renderer) compileSource(src *gfx.ShaderSource) error {
	header, c, err := versionHeader(src.Language)
	if err == nil {
		err = r.caps.Require(c, src.Name)
	}
	if err != nil {
		src.SetUnusable(true)
		src.ClearUpdateNeeded()
		return err
	}

	if !src.Allocated() {
		src.SetID(r.dev.CreateShader(translateShaderStage(src.Stage)))
		r.objects.track(kindShaderSource, src.GLName(), src)
	}

	var sb strings.Builder
	sb.WriteString(header)
	if src.Defines != "" {
		sb.WriteString(src.Defines)
		if !strings.HasSuffix(src.Defines, "\n") {
			sb.WriteByte('\n')
		}
	}
	sb.WriteString(src.Source)

	r.dev.ShaderSource(src.GLName(), sb.String())
	r.dev.CompileShader(src.GLName())
	src.ClearUpdateNeeded()
	if r.dev.GetShaderiv(src.GLName(), glenum.COMPILE_STATUS) == glenum.FALSE {
		src.SetUnusable(true)
		return &ShaderError{Stage: src.Stage.String(), Name: src.Name, Log: r.dev.GetShaderInfoLog(src.GLName())}
	}
	if infoLog := r.dev.GetShaderInfoLog(src.GLName()); strings.TrimSpace(infoLog) != "" {
		r.lg.Debugf("%s: compile log: %s", src.Name, infoLog)
	}

	src.SetUnusable(false)
	return nil
}

// updateShaderData compiles any of the shader's sources that have changed
// and links the program. If anything fails, the program is released and
// the shader is marked unusable until it or one of its sources changes.
func (r *Renderer) updateShaderData(s *gfx.Shader) error {
	fail := func(err error) error {
		r.lg.Warnf("%s: %v", s, err)
		if s.Allocated() {
			r.deleteNative(kindShader, s.GLName())
			s.ResetID()
		}
		// The shader is rebuilt once it or one of its sources changes.
		s.SetUnusable(true)
		s.ClearUpdateNeeded()
		return err
	}

	if len(s.Sources) == 0 {
		return fail(fmt.Errorf("%s: no sources", s.Name))
	}
	for _, src := range s.Sources {
		if !src.Allocated() || src.IsUpdateNeeded() || src.Unusable() {
			if err := r.compileSource(src); err != nil {
				return fail(err)
			}
		}
	}

	relink := s.Allocated()
	if !relink {
		s.SetID(r.dev.CreateProgram())
		r.objects.track(kindShader, s.GLName(), s)
		r.stats.ShadersCreated++
	}
	prog := s.GLName()

	attached := r.attached[prog]
	for _, src := range s.Sources {
		if !slices.Contains(attached, src.GLName()) {
			r.dev.AttachShader(prog, src.GLName())
			attached = append(attached, src.GLName())
		}
	}
	r.attached[prog] = attached

	if r.ff == nil {
		// Core profiles have no gl_FragColor; fragment outputs are bound
		// by name.
		r.dev.BindFragDataLocation(prog, 0, "outFragColor")
		for i := range r.caps.Limit(caps.MaxMRTAttachments) {
			r.dev.BindFragDataLocation(prog, uint32(i), fmt.Sprintf("outFragData[%d]", i))
		}
	}

	r.dev.LinkProgram(prog)
	if r.dev.GetProgramiv(prog, glenum.LINK_STATUS) == glenum.FALSE {
		return fail(&ShaderError{Stage: "link", Name: s.Name, Log: r.dev.GetProgramInfoLog(prog)})
	}

	if relink {
		// Locations may have moved.
		s.ResetLocations()
	}
	s.SetUnusable(false)
	s.ClearUpdateNeeded()
	return nil
}

func (r *Renderer) uniformLocation(s *gfx.Shader, u *gfx.Uniform) int32 {
	if u.Location() == gfx.LocUnknown {
		loc := r.dev.GetUniformLocation(s.GLName(), u.Name)
		u.SetLocation(util.Select[int32](loc < 0, gfx.LocNotFound, loc))
	}
	return u.Location()
}

// updateShaderUniforms sends the values of the shader's uniforms that
// have changed; the program must be current. Uniforms the program doesn't
// use are skipped.
func (r *Renderer) updateShaderUniforms(s *gfx.Shader) {
	for _, u := range s.Uniforms() {
		if !u.IsUpdateNeeded() {
			continue
		}
		if loc := r.uniformLocation(s, u); loc != gfx.LocNotFound {
			r.setUniform(loc, u)
			r.stats.UniformSets++
		}
		u.ClearUpdateNeeded()
	}
}

func (r *Renderer) setUniform(loc int32, u *gfx.Uniform) {
	switch u.Type {
	case gfx.VarFloat:
		r.dev.Uniform1f(loc, u.Value().(float32))
	case gfx.VarVector2:
		v := u.Value().(mgl32.Vec2)
		r.dev.Uniform2fv(loc, v[:])
	case gfx.VarVector3:
		v := u.Value().(mgl32.Vec3)
		r.dev.Uniform3fv(loc, v[:])
	case gfx.VarVector4:
		v := u.Value().(mgl32.Vec4)
		r.dev.Uniform4fv(loc, v[:])
	case gfx.VarMatrix3:
		m := u.Value().(mgl32.Mat3)
		r.dev.UniformMatrix3fv(loc, m[:])
	case gfx.VarMatrix4:
		m := u.Value().(mgl32.Mat4)
		r.dev.UniformMatrix4fv(loc, m[:])
	case gfx.VarInt, gfx.VarTexture:
		r.dev.Uniform1i(loc, u.Value().(int32))
	case gfx.VarBoolean:
		r.dev.Uniform1i(loc, util.Select[int32](u.Value().(bool), 1, 0))
	case gfx.VarFloatArray:
		// Empty arrays have nothing to send.
		if v := u.Value().([]float32); len(v) > 0 {
			r.dev.Uniform1fv(loc, v)
		}
	case gfx.VarIntArray:
		if v := u.Value().([]int32); len(v) > 0 {
			r.dev.Uniform1iv(loc, v)
		}
	default:
		panic(unhandled("uniform type", u.Type))
	}
}

// DeleteShader deletes the shader's native program; its sources are left
// intact so that they may be shared with other shaders.
func (r *Renderer) DeleteShader(s *gfx.Shader) {
	if !s.Allocated() {
		return
	}
	if r.shader == s {
		r.shader = nil
	}
	r.deleteNative(kindShader, s.GLName())
	s.ResetID()
}

func (r *Renderer) DeleteShaderSource(src *gfx.ShaderSource) {
	if !src.Allocated() {
		return
	}
	r.deleteNative(kindShaderSource, src.GLName())
	src.ResetID()
}
