// pkg/caps/caps.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package caps enumerates the optional features of an OpenGL device and
// driver. A Registry is built once when a renderer is initialized and is
// immutable afterward; the renderer and asset code consult it to choose
// fallbacks or to reject requests the device can't satisfy.
package caps

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/mmp/glstate/pkg/device/glenum"
	"github.com/mmp/glstate/pkg/log"

	"github.com/brunoga/deep"
)

type Cap int

const (
	OpenGL20 Cap = iota
	OpenGL21
	OpenGL30
	OpenGL31
	OpenGL32
	OpenGL33
	GLSL100
	GLSL110
	GLSL120
	GLSL130
	GLSL140
	GLSL150
	GLSL330
	FixedFunction
	MeshInstancing
	IntegerIndexBuffer
	FloatTexture
	DepthTexture
	PackedDepthStencilBuffer
	FloatColorBuffer
	FloatDepthBuffer
	TextureCompressionS3TC
	TextureCompressionETC1
	TextureCompressionETC2
	VertexBufferArray
	NonPowerOfTwoTextures
	TextureArray
	TextureFilterAnisotropic
	FrameBuffer
	FrameBufferBlit
	FrameBufferMultisample
	TextureMultisample
	FrameBufferMRT
	Multisample
	Srgb
	SeamlessCubemap
	NumCaps
)

var capNames = [...]string{
	"OpenGL20", "OpenGL21", "OpenGL30", "OpenGL31", "OpenGL32", "OpenGL33",
	"GLSL100", "GLSL110", "GLSL120", "GLSL130", "GLSL140", "GLSL150", "GLSL330",
	"FixedFunction", "MeshInstancing", "IntegerIndexBuffer", "FloatTexture",
	"DepthTexture", "PackedDepthStencilBuffer", "FloatColorBuffer",
	"FloatDepthBuffer", "TextureCompressionS3TC", "TextureCompressionETC1",
	"TextureCompressionETC2", "VertexBufferArray", "NonPowerOfTwoTextures",
	"TextureArray", "TextureFilterAnisotropic", "FrameBuffer", "FrameBufferBlit",
	"FrameBufferMultisample", "TextureMultisample", "FrameBufferMRT",
	"Multisample", "Srgb", "SeamlessCubemap",
}

func (c Cap) String() string {
	if c < 0 || c >= NumCaps {
		return fmt.Sprintf("Cap(%d)", int(c))
	}
	return capNames[c]
}

// ParseCap returns the Cap with the given name.
func ParseCap(s string) (Cap, error) {
	if i := slices.Index(capNames[:], s); i != -1 {
		return Cap(i), nil
	}
	return 0, fmt.Errorf("%s: unknown capability", s)
}

type Limit int

const (
	MaxTextureSize Limit = iota
	MaxCubeMapSize
	Max3DTextureSize
	MaxArrayTextureLayers
	MaxRenderBufferSize
	MaxFBOSamples
	MaxColorTextureSamples
	MaxDepthTextureSamples
	MaxFBOAttachments
	MaxMRTAttachments
	MaxVertexAttribs
	MaxTextureUnits
	MaxLights
	NumLimits
)

var limitNames = [...]string{
	"MaxTextureSize", "MaxCubeMapSize", "Max3DTextureSize", "MaxArrayTextureLayers",
	"MaxRenderBufferSize", "MaxFBOSamples", "MaxColorTextureSamples",
	"MaxDepthTextureSamples", "MaxFBOAttachments", "MaxMRTAttachments",
	"MaxVertexAttribs", "MaxTextureUnits", "MaxLights",
}

func (l Limit) String() string {
	if l < 0 || l >= NumLimits {
		return fmt.Sprintf("Limit(%d)", int(l))
	}
	return limitNames[l]
}

// CapabilityError is returned when an operation requires a capability
// that the device doesn't provide and there's no fallback.
type CapabilityError struct {
	Cap Cap
	Op  string
}

func (e *CapabilityError) Error() string {
	if e.Op == "" {
		return "missing capability " + e.Cap.String()
	}
	return e.Op + ": missing capability " + e.Cap.String()
}

// Prober is the subset of the native device that is used to discover its
// capabilities.
type Prober interface {
	GetString(name uint32) string
	GetInteger(pname uint32) int32
	GetFloat(pname uint32) float32
	Extensions() []string
}

// Set is a plain-data description of a device's capabilities.
type Set struct {
	Version       int // major*10 + minor, e.g. 21 or 33
	GLSLVersion   int // e.g. 120 or 330
	Vendor        string
	Renderer      string
	Caps          map[Cap]bool
	Limits        map[Limit]int
	MaxAnisotropy float32
	Extensions    []string
}

// Registry provides read-only access to a device's capabilities.
type Registry struct {
	set Set
}

// Load queries the device once and returns the resulting Registry.
func Load(p Prober, lg *log.Logger) (*Registry, error) {
	version := p.GetString(glenum.VERSION)
	glslVersion := p.GetString(glenum.SHADING_LANGUAGE_VERSION)

	v, err := parseVersion(version)
	if err != nil {
		return nil, err
	}
	if v < 20 {
		return nil, fmt.Errorf("%s: OpenGL 2.0 or later is required", version)
	}
	glsl, err := parseVersion(glslVersion)
	if err != nil {
		return nil, fmt.Errorf("shading language: %w", err)
	}
	glsl *= 10 // "1.20" -> 12 -> 120

	s := Set{
		Version:     v,
		GLSLVersion: glsl,
		Vendor:      p.GetString(glenum.VENDOR),
		Renderer:    p.GetString(glenum.RENDERER),
		Caps:        make(map[Cap]bool),
		Limits:      make(map[Limit]int),
		Extensions:  slices.Sorted(slices.Values(p.Extensions())),
	}

	has := func(ext string) bool {
		_, ok := slices.BinarySearch(s.Extensions, ext)
		return ok
	}
	set := func(c Cap, b bool) {
		if b {
			s.Caps[c] = true
		}
	}

	set(OpenGL20, v >= 20)
	set(OpenGL21, v >= 21)
	set(OpenGL30, v >= 30)
	set(OpenGL31, v >= 31)
	set(OpenGL32, v >= 32)
	set(OpenGL33, v >= 33)
	for _, g := range []struct {
		c Cap
		v int
	}{{GLSL100, 100}, {GLSL110, 110}, {GLSL120, 120}, {GLSL130, 130}, {GLSL140, 140}, {GLSL150, 150}, {GLSL330, 330}} {
		set(g.c, glsl >= g.v)
	}

	core := false
	if c, ok := p.(interface{ CoreProfile() bool }); ok {
		core = c.CoreProfile()
	}
	set(FixedFunction, !core)

	set(MeshInstancing, v >= 33 || (has("GL_ARB_draw_instanced") && has("GL_ARB_instanced_arrays")))
	// Desktop GL always accepts 32-bit indices.
	set(IntegerIndexBuffer, true)
	set(DepthTexture, true)
	set(Multisample, true)
	set(FloatTexture, v >= 30 || has("GL_ARB_texture_float"))
	set(FloatColorBuffer, v >= 30 || has("GL_ARB_color_buffer_float"))
	set(FloatDepthBuffer, v >= 30 || has("GL_ARB_depth_buffer_float"))
	set(PackedDepthStencilBuffer, v >= 30 || has("GL_EXT_packed_depth_stencil"))
	set(TextureCompressionS3TC, has("GL_EXT_texture_compression_s3tc"))
	set(TextureCompressionETC1, has("GL_OES_compressed_ETC1_RGB8_texture"))
	set(TextureCompressionETC2, v >= 43 || has("GL_ARB_ES3_compatibility"))
	set(VertexBufferArray, v >= 30 || has("GL_ARB_vertex_array_object"))
	set(NonPowerOfTwoTextures, v >= 30 || has("GL_ARB_texture_non_power_of_two"))
	set(TextureArray, v >= 30 || has("GL_EXT_texture_array"))
	set(TextureFilterAnisotropic, v >= 46 || has("GL_EXT_texture_filter_anisotropic") ||
		has("GL_ARB_texture_filter_anisotropic"))
	set(FrameBuffer, v >= 30 || has("GL_ARB_framebuffer_object") || has("GL_EXT_framebuffer_object"))
	set(FrameBufferBlit, s.Caps[FrameBuffer] && (v >= 30 || has("GL_ARB_framebuffer_object") ||
		has("GL_EXT_framebuffer_blit")))
	set(FrameBufferMultisample, s.Caps[FrameBuffer] && (v >= 30 || has("GL_ARB_framebuffer_object") ||
		has("GL_EXT_framebuffer_multisample")))
	set(TextureMultisample, v >= 32 || has("GL_ARB_texture_multisample"))
	set(Srgb, v >= 30 || (has("GL_EXT_texture_sRGB") && has("GL_EXT_framebuffer_sRGB")))
	set(SeamlessCubemap, v >= 32 || has("GL_ARB_seamless_cube_map"))

	limit := func(l Limit, pname uint32) {
		s.Limits[l] = int(p.GetInteger(pname))
	}
	limit(MaxTextureSize, glenum.MAX_TEXTURE_SIZE)
	limit(MaxCubeMapSize, glenum.MAX_CUBE_MAP_TEXTURE_SIZE)
	limit(Max3DTextureSize, glenum.MAX_3D_TEXTURE_SIZE)
	limit(MaxVertexAttribs, glenum.MAX_VERTEX_ATTRIBS)
	limit(MaxTextureUnits, glenum.MAX_TEXTURE_IMAGE_UNITS)
	limit(MaxMRTAttachments, glenum.MAX_DRAW_BUFFERS)
	if s.Caps[TextureArray] {
		limit(MaxArrayTextureLayers, glenum.MAX_ARRAY_TEXTURE_LAYERS)
	}
	if s.Caps[FixedFunction] {
		limit(MaxLights, glenum.MAX_LIGHTS)
	}
	if s.Caps[FrameBuffer] {
		limit(MaxRenderBufferSize, glenum.MAX_RENDERBUFFER_SIZE)
		limit(MaxFBOAttachments, glenum.MAX_COLOR_ATTACHMENTS)
	}
	if s.Caps[FrameBufferMultisample] {
		limit(MaxFBOSamples, glenum.MAX_SAMPLES)
	}
	if s.Caps[TextureMultisample] {
		limit(MaxColorTextureSamples, glenum.MAX_COLOR_TEXTURE_SAMPLES)
		limit(MaxDepthTextureSamples, glenum.MAX_DEPTH_TEXTURE_SAMPLES)
	}
	set(FrameBufferMRT, s.Caps[FrameBuffer] && s.Limits[MaxMRTAttachments] > 1)
	if s.Caps[TextureFilterAnisotropic] {
		s.MaxAnisotropy = p.GetFloat(glenum.MAX_TEXTURE_MAX_ANISOTROPY_EXT)
	}

	r := &Registry{set: s}
	lg.Info("device capabilities", slog.Any("caps", r))
	return r, nil
}

// parseVersion extracts the leading "major.minor" from an OpenGL version
// string such as "3.3.0 NVIDIA 535.54" or "2.1 Mesa 23.0.4" and returns
// it as major*10+minor.
func parseVersion(s string) (int, error) {
	if strings.HasPrefix(s, "OpenGL ES") {
		return 0, fmt.Errorf("%q: OpenGL ES is not supported", s)
	}
	var major, minor int
	if _, err := fmt.Sscanf(s, "%d.%d", &major, &minor); err != nil {
		return 0, fmt.Errorf("%q: unable to parse version: %w", s, err)
	}
	for minor >= 10 {
		// GLSL versions are "1.20", "3.30", ...
		minor /= 10
	}
	return 10*major + minor, nil
}

func (r *Registry) Has(c Cap) bool {
	return r.set.Caps[c]
}

// Require returns a *CapabilityError if the capability is missing.
func (r *Registry) Require(c Cap, op string) error {
	if !r.Has(c) {
		return &CapabilityError{Cap: c, Op: op}
	}
	return nil
}

func (r *Registry) Limit(l Limit) int {
	return r.set.Limits[l]
}

func (r *Registry) MaxAnisotropy() float32 {
	return r.set.MaxAnisotropy
}

func (r *Registry) Version() int     { return r.set.Version }
func (r *Registry) GLSLVersion() int { return r.set.GLSLVersion }

func (r *Registry) HasExtension(ext string) bool {
	_, ok := slices.BinarySearch(r.set.Extensions, ext)
	return ok
}

// Snapshot returns a copy of the capability set that the caller is free
// to modify.
func (r *Registry) Snapshot() Set {
	return deep.MustCopy(r.set)
}

// Without returns a copy of the registry in which the given capabilities
// are missing; it is used to force fallback paths.
func (r *Registry) Without(cs ...Cap) *Registry {
	s := r.Snapshot()
	for _, c := range cs {
		delete(s.Caps, c)
	}
	return &Registry{set: s}
}

// Caps returns the available capabilities in enumeration order.
func (r *Registry) Caps() []Cap {
	var c []Cap
	for i := range NumCaps {
		if r.set.Caps[i] {
			c = append(c, i)
		}
	}
	return c
}

func (r *Registry) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "OpenGL %d.%d GLSL %d (%s / %s):", r.set.Version/10, r.set.Version%10,
		r.set.GLSLVersion, r.set.Vendor, r.set.Renderer)
	for _, c := range r.Caps() {
		sb.WriteString(" " + c.String())
	}
	return sb.String()
}

func (r *Registry) LogValue() slog.Value {
	var limits []slog.Attr
	for l := range NumLimits {
		limits = append(limits, slog.Int(l.String(), r.set.Limits[l]))
	}
	return slog.GroupValue(
		slog.Int("version", r.set.Version),
		slog.Int("glsl", r.set.GLSLVersion),
		slog.String("vendor", r.set.Vendor),
		slog.String("renderer", r.set.Renderer),
		slog.Any("caps", r.Caps()),
		slog.Attr{Key: "limits", Value: slog.GroupValue(limits...)},
		slog.Float64("max_anisotropy", float64(r.set.MaxAnisotropy)))
}
