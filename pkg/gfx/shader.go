// pkg/gfx/shader.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gfx

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

type Stage int

const (
	StageVertex Stage = iota
	StageFragment
	StageGeometry
)

func (s Stage) String() string {
	return enumString(int(s), "Stage", []string{"Vertex", "Fragment", "Geometry"})
}

// Location sentinels for uniforms and attributes.
const (
	LocUnknown  = -2 // not yet looked up
	LocNotFound = -1 // looked up; the program doesn't use it
)

// ShaderSource is the source for a single shader stage.
type ShaderSource struct {
	Handle

	Stage Stage
	Name  string
	// Language is e.g. "GLSL110" or "GLSL330"; the matching #version
	// directive is prepended to the source when it is compiled.
	Language string
	Defines  string
	Source   string
}

func NewShaderSource(stage Stage, name, language, source string) *ShaderSource {
	return &ShaderSource{Stage: stage, Name: name, Language: language, Source: source}
}

func (s *ShaderSource) SetSource(src string) {
	s.Source = src
	s.SetUpdateNeeded()
}

func (s *ShaderSource) SetDefines(d string) {
	s.Defines = d
	s.SetUpdateNeeded()
}

type VarType int

const (
	VarFloat VarType = iota
	VarVector2
	VarVector3
	VarVector4
	VarMatrix3
	VarMatrix4
	VarInt
	VarBoolean
	VarFloatArray
	VarIntArray
	VarTexture // int texture unit
)

func (v VarType) String() string {
	return enumString(int(v), "VarType", []string{"Float", "Vector2", "Vector3", "Vector4", "Matrix3",
		"Matrix4", "Int", "Boolean", "FloatArray", "IntArray", "Texture"})
}

// Uniform is a named shader parameter and its cached location.
type Uniform struct {
	Name     string
	Type     VarType
	value    any
	location int32
	dirty    bool
}

func newUniform(name string) *Uniform {
	return &Uniform{Name: name, location: LocUnknown}
}

func (u *Uniform) Location() int32 { return u.location }

func (u *Uniform) SetLocation(l int32) { u.location = l }

func (u *Uniform) Value() any { return u.value }

// SetValue sets the uniform's value; the value's Go type must match t.
// Unchanged scalar values don't cause the uniform to be resent.
func (u *Uniform) SetValue(t VarType, v any) {
	if !checkVarType(t, v) {
		panic(fmt.Sprintf("gfx: uniform %q: %T is not a valid %s value", u.Name, v, t))
	}
	if u.value != nil && u.Type == t && !u.dirty {
		switch v.(type) {
		case []float32, []int32:
		default:
			if u.value == v {
				return
			}
		}
	}
	u.Type = t
	u.value = v
	u.dirty = true
}

func checkVarType(t VarType, v any) bool {
	switch t {
	case VarFloat:
		_, ok := v.(float32)
		return ok
	case VarVector2:
		_, ok := v.(mgl32.Vec2)
		return ok
	case VarVector3:
		_, ok := v.(mgl32.Vec3)
		return ok
	case VarVector4:
		_, ok := v.(mgl32.Vec4)
		return ok
	case VarMatrix3:
		_, ok := v.(mgl32.Mat3)
		return ok
	case VarMatrix4:
		_, ok := v.(mgl32.Mat4)
		return ok
	case VarInt, VarTexture:
		_, ok := v.(int32)
		return ok
	case VarBoolean:
		_, ok := v.(bool)
		return ok
	case VarFloatArray:
		_, ok := v.([]float32)
		return ok
	case VarIntArray:
		_, ok := v.([]int32)
		return ok
	default:
		return false
	}
}

func (u *Uniform) IsUpdateNeeded() bool { return u.dirty }
func (u *Uniform) ClearUpdateNeeded()   { u.dirty = false }

// Attribute is a vertex attribute input of a shader program.
type Attribute struct {
	Name     string
	location int32
}

func (a *Attribute) Location() int32     { return a.location }
func (a *Attribute) SetLocation(l int32) { a.location = l }

// Shader is a linked program made from one or more sources.
type Shader struct {
	Handle

	Name    string
	Sources []*ShaderSource

	uniforms   []*Uniform
	attributes [NumBufferTypes]*Attribute
}

func NewShader(name string, sources ...*ShaderSource) *Shader {
	return &Shader{Name: name, Sources: sources}
}

// AddSource adds a stage to the program, which must then be relinked.
func (s *Shader) AddSource(src *ShaderSource) {
	s.Sources = append(s.Sources, src)
	s.SetUpdateNeeded()
}

// Uniform returns the named uniform, creating it if necessary.
func (s *Shader) Uniform(name string) *Uniform {
	if i := slices.IndexFunc(s.uniforms, func(u *Uniform) bool { return u.Name == name }); i != -1 {
		return s.uniforms[i]
	}
	u := newUniform(name)
	s.uniforms = append(s.uniforms, u)
	return u
}

// SetUniform is a shorthand for s.Uniform(name).SetValue(t, v).
func (s *Shader) SetUniform(name string, t VarType, v any) {
	s.Uniform(name).SetValue(t, v)
}

// Uniforms returns the shader's uniforms in the order they were created.
func (s *Shader) Uniforms() []*Uniform { return s.uniforms }

// Attribute returns the attribute for the given buffer type.
func (s *Shader) Attribute(t BufferType) *Attribute {
	if s.attributes[t] == nil {
		s.attributes[t] = &Attribute{Name: t.AttributeName(), location: LocUnknown}
	}
	return s.attributes[t]
}

// ResetLocations forgets all resolved locations; it is called after the
// program is relinked since locations may have changed. Uniform values
// must then be resent.
func (s *Shader) ResetLocations() {
	for _, u := range s.uniforms {
		u.location = LocUnknown
		if u.value != nil {
			u.dirty = true
		}
	}
	for _, a := range s.attributes {
		if a != nil {
			a.location = LocUnknown
		}
	}
}

func (s *Shader) String() string {
	return fmt.Sprintf("Shader[%q sources=%d uniforms=%d %s]", s.Name, len(s.Sources), len(s.uniforms), s.Handle)
}
