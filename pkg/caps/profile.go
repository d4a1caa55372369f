// pkg/caps/profile.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package caps

import (
	"fmt"
	"maps"

	"github.com/mmp/glstate/pkg/device/glenum"
	"github.com/mmp/glstate/pkg/log"
	"github.com/mmp/glstate/pkg/util"
)

// Profile is a canned description of a device: it answers the same
// queries as a real context. Profiles stand in for hardware in tests and
// are stored alongside recorded traces.
type Profile struct {
	Name        string             `json:"name" msgpack:"name"`
	Version     string             `json:"version" msgpack:"version"`
	GLSLVersion string             `json:"glsl_version" msgpack:"glsl_version"`
	Vendor      string             `json:"vendor" msgpack:"vendor"`
	Renderer    string             `json:"renderer" msgpack:"renderer"`
	Core        bool               `json:"core" msgpack:"core"`
	Exts        []string           `json:"extensions" msgpack:"extensions"`
	Integers    map[uint32]int32   `json:"integers" msgpack:"integers"`
	Floats      map[uint32]float32 `json:"floats" msgpack:"floats"`
}

func (p Profile) GetString(name uint32) string {
	switch name {
	case glenum.VERSION:
		return p.Version
	case glenum.SHADING_LANGUAGE_VERSION:
		return p.GLSLVersion
	case glenum.VENDOR:
		return p.Vendor
	case glenum.RENDERER:
		return p.Renderer
	default:
		return ""
	}
}

func (p Profile) GetInteger(pname uint32) int32 { return p.Integers[pname] }
func (p Profile) GetFloat(pname uint32) float32 { return p.Floats[pname] }
func (p Profile) Extensions() []string          { return p.Exts }
func (p Profile) CoreProfile() bool             { return p.Core }

// FromProfile returns the Registry for the given profile.
func FromProfile(p Profile, lg *log.Logger) (*Registry, error) {
	return Load(p, lg)
}

var legacyLimits = map[uint32]int32{
	glenum.MAX_TEXTURE_SIZE:          2048,
	glenum.MAX_CUBE_MAP_TEXTURE_SIZE: 2048,
	glenum.MAX_3D_TEXTURE_SIZE:       256,
	glenum.MAX_VERTEX_ATTRIBS:        16,
	glenum.MAX_TEXTURE_IMAGE_UNITS:   8,
	glenum.MAX_DRAW_BUFFERS:          1,
	glenum.MAX_LIGHTS:                8,
}

var profiles = map[string]Profile{
	// A bare 2.1 driver: no NPOT textures, no framebuffer objects, no
	// instancing.
	"gl21-minimal": {
		Name:        "gl21-minimal",
		Version:     "2.1 Generic",
		GLSLVersion: "1.20",
		Vendor:      "glstate",
		Renderer:    "minimal 2.1",
		Integers:    legacyLimits,
	},
	"gl21": {
		Name:        "gl21",
		Version:     "2.1 Generic",
		GLSLVersion: "1.20",
		Vendor:      "glstate",
		Renderer:    "2.1 with extensions",
		Exts: []string{
			"GL_ARB_draw_buffers",
			"GL_ARB_draw_instanced",
			"GL_ARB_framebuffer_object",
			"GL_ARB_instanced_arrays",
			"GL_ARB_texture_float",
			"GL_ARB_texture_non_power_of_two",
			"GL_EXT_packed_depth_stencil",
			"GL_EXT_texture_array",
			"GL_EXT_texture_compression_s3tc",
			"GL_EXT_texture_filter_anisotropic",
		},
		Integers: merge(legacyLimits, map[uint32]int32{
			glenum.MAX_DRAW_BUFFERS:         4,
			glenum.MAX_RENDERBUFFER_SIZE:    4096,
			glenum.MAX_COLOR_ATTACHMENTS:    4,
			glenum.MAX_SAMPLES:              4,
			glenum.MAX_ARRAY_TEXTURE_LAYERS: 256,
			glenum.MAX_TEXTURE_SIZE:         4096,
		}),
		Floats: map[uint32]float32{glenum.MAX_TEXTURE_MAX_ANISOTROPY_EXT: 16},
	},
	"gl33": {
		Name:        "gl33",
		Version:     "3.3.0 Core Profile",
		GLSLVersion: "3.30",
		Vendor:      "glstate",
		Renderer:    "3.3 core",
		Core:        true,
		Exts: []string{
			"GL_EXT_texture_compression_s3tc",
			"GL_EXT_texture_filter_anisotropic",
		},
		Integers: map[uint32]int32{
			glenum.MAX_TEXTURE_SIZE:          16384,
			glenum.MAX_CUBE_MAP_TEXTURE_SIZE: 16384,
			glenum.MAX_3D_TEXTURE_SIZE:       2048,
			glenum.MAX_VERTEX_ATTRIBS:        16,
			glenum.MAX_TEXTURE_IMAGE_UNITS:   16,
			glenum.MAX_DRAW_BUFFERS:          8,
			glenum.MAX_RENDERBUFFER_SIZE:     16384,
			glenum.MAX_COLOR_ATTACHMENTS:     8,
			glenum.MAX_SAMPLES:               8,
			glenum.MAX_COLOR_TEXTURE_SAMPLES: 8,
			glenum.MAX_DEPTH_TEXTURE_SAMPLES: 8,
			glenum.MAX_ARRAY_TEXTURE_LAYERS:  2048,
		},
		Floats: map[uint32]float32{glenum.MAX_TEXTURE_MAX_ANISOTROPY_EXT: 16},
	},
}

func merge(a, b map[uint32]int32) map[uint32]int32 {
	m := maps.Clone(a)
	maps.Copy(m, b)
	return m
}

// LookupProfile returns the named built-in profile.
func LookupProfile(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%s: unknown profile; available: %v", name, ProfileNames())
	}
	// Return a copy so callers can modify the limits.
	p.Integers = maps.Clone(p.Integers)
	p.Floats = maps.Clone(p.Floats)
	return p, nil
}

func ProfileNames() []string {
	return util.SortedMapKeys(profiles)
}
