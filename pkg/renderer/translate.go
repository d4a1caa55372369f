// pkg/renderer/translate.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"fmt"

	"github.com/mmp/glstate/pkg/caps"
	"github.com/mmp/glstate/pkg/device/glenum"
	"github.com/mmp/glstate/pkg/gfx"
	"github.com/mmp/glstate/pkg/util"
)

// The translate* functions map the portable enumerations to native
// constants. Every value of each enumeration must be handled; an
// unhandled value is a bug in the caller or a missing case here, so they
// panic rather than guessing.

func unhandled(what string, v fmt.Stringer) string {
	return fmt.Sprintf("renderer: unhandled %s %s", what, v)
}

func translateTestFunc(f gfx.TestFunction) uint32 {
	switch f {
	case gfx.TestNever:
		return glenum.NEVER
	case gfx.TestEqual:
		return glenum.EQUAL
	case gfx.TestLess:
		return glenum.LESS
	case gfx.TestLessOrEqual:
		return glenum.LEQUAL
	case gfx.TestGreater:
		return glenum.GREATER
	case gfx.TestGreaterOrEqual:
		return glenum.GEQUAL
	case gfx.TestNotEqual:
		return glenum.NOTEQUAL
	case gfx.TestAlways:
		return glenum.ALWAYS
	default:
		panic(unhandled("test function", f))
	}
}

func translateStencilOp(op gfx.StencilOperation) uint32 {
	switch op {
	case gfx.StencilKeep:
		return glenum.KEEP
	case gfx.StencilZero:
		return glenum.ZERO
	case gfx.StencilReplace:
		return glenum.REPLACE
	case gfx.StencilIncrement:
		return glenum.INCR
	case gfx.StencilIncrementWrap:
		return glenum.INCR_WRAP
	case gfx.StencilDecrement:
		return glenum.DECR
	case gfx.StencilDecrementWrap:
		return glenum.DECR_WRAP
	case gfx.StencilInvert:
		return glenum.INVERT
	default:
		panic(unhandled("stencil operation", op))
	}
}

func translateBlendFactor(f gfx.BlendFunc) uint32 {
	switch f {
	case gfx.FactorZero:
		return glenum.ZERO
	case gfx.FactorOne:
		return glenum.ONE
	case gfx.FactorSrcColor:
		return glenum.SRC_COLOR
	case gfx.FactorOneMinusSrcColor:
		return glenum.ONE_MINUS_SRC_COLOR
	case gfx.FactorDstColor:
		return glenum.DST_COLOR
	case gfx.FactorOneMinusDstColor:
		return glenum.ONE_MINUS_DST_COLOR
	case gfx.FactorSrcAlpha:
		return glenum.SRC_ALPHA
	case gfx.FactorOneMinusSrcAlpha:
		return glenum.ONE_MINUS_SRC_ALPHA
	case gfx.FactorDstAlpha:
		return glenum.DST_ALPHA
	case gfx.FactorOneMinusDstAlpha:
		return glenum.ONE_MINUS_DST_ALPHA
	case gfx.FactorSrcAlphaSaturate:
		return glenum.SRC_ALPHA_SATURATE
	default:
		panic(unhandled("blend factor", f))
	}
}

// blendFactors returns the source and destination factors for one of the
// canned blend modes.
func blendFactors(m gfx.BlendMode) (uint32, uint32) {
	switch m {
	case gfx.BlendAdditive:
		return glenum.ONE, glenum.ONE
	case gfx.BlendPremultAlpha:
		return glenum.ONE, glenum.ONE_MINUS_SRC_ALPHA
	case gfx.BlendAlphaAdditive:
		return glenum.SRC_ALPHA, glenum.ONE
	case gfx.BlendColor, gfx.BlendScreen:
		return glenum.ONE, glenum.ONE_MINUS_SRC_COLOR
	case gfx.BlendAlpha:
		return glenum.SRC_ALPHA, glenum.ONE_MINUS_SRC_ALPHA
	case gfx.BlendModulate:
		return glenum.DST_COLOR, glenum.ZERO
	case gfx.BlendModulateX2:
		return glenum.DST_COLOR, glenum.SRC_COLOR
	case gfx.BlendExclusion:
		return glenum.ONE_MINUS_DST_COLOR, glenum.ONE_MINUS_SRC_COLOR
	default:
		// BlendOff and BlendCustom don't have a canned pair.
		panic(unhandled("blend mode", m))
	}
}

func translateBlendEquation(e gfx.BlendEquation) uint32 {
	switch e {
	case gfx.EquationAdd:
		return glenum.FUNC_ADD
	case gfx.EquationSubtract:
		return glenum.FUNC_SUBTRACT
	case gfx.EquationReverseSubtract:
		return glenum.FUNC_REVERSE_SUBTRACT
	case gfx.EquationMin:
		return glenum.MIN
	case gfx.EquationMax:
		return glenum.MAX
	default:
		panic(unhandled("blend equation", e))
	}
}

// translateBlendEquationAlpha returns the alpha equation; rgb is the
// native color equation, which is used for AlphaEquationInheritColor.
func translateBlendEquationAlpha(e gfx.BlendEquationAlpha, rgb uint32) uint32 {
	switch e {
	case gfx.AlphaEquationInheritColor:
		return rgb
	case gfx.AlphaEquationAdd:
		return glenum.FUNC_ADD
	case gfx.AlphaEquationSubtract:
		return glenum.FUNC_SUBTRACT
	case gfx.AlphaEquationReverseSubtract:
		return glenum.FUNC_REVERSE_SUBTRACT
	case gfx.AlphaEquationMin:
		return glenum.MIN
	case gfx.AlphaEquationMax:
		return glenum.MAX
	default:
		panic(unhandled("alpha blend equation", e))
	}
}

// translateCullFace returns the face to cull and whether culling is
// enabled at all.
func translateCullFace(m gfx.FaceCullMode) (uint32, bool) {
	switch m {
	case gfx.CullOff:
		return 0, false
	case gfx.CullFront:
		return glenum.FRONT, true
	case gfx.CullBack:
		return glenum.BACK, true
	case gfx.CullFrontAndBack:
		return glenum.FRONT_AND_BACK, true
	default:
		panic(unhandled("cull mode", m))
	}
}

func translateMode(m gfx.Mode) uint32 {
	switch m {
	case gfx.ModePoints:
		return glenum.POINTS
	case gfx.ModeLines:
		return glenum.LINES
	case gfx.ModeLineStrip:
		return glenum.LINE_STRIP
	case gfx.ModeLineLoop:
		return glenum.LINE_LOOP
	case gfx.ModeTriangles:
		return glenum.TRIANGLES
	case gfx.ModeTriangleStrip:
		return glenum.TRIANGLE_STRIP
	case gfx.ModeTriangleFan:
		return glenum.TRIANGLE_FAN
	default:
		panic(unhandled("mesh mode", m))
	}
}

func translateFormat(f gfx.ComponentFormat) uint32 {
	switch f {
	case gfx.ComponentHalf:
		return glenum.HALF_FLOAT
	case gfx.ComponentFloat:
		return glenum.FLOAT
	case gfx.ComponentDouble:
		return glenum.DOUBLE
	case gfx.ComponentByte:
		return glenum.BYTE
	case gfx.ComponentUnsignedByte:
		return glenum.UNSIGNED_BYTE
	case gfx.ComponentShort:
		return glenum.SHORT
	case gfx.ComponentUnsignedShort:
		return glenum.UNSIGNED_SHORT
	case gfx.ComponentInt:
		return glenum.INT
	case gfx.ComponentUnsignedInt:
		return glenum.UNSIGNED_INT
	default:
		panic(unhandled("component format", f))
	}
}

func translateUsage(u gfx.Usage) uint32 {
	switch u {
	case gfx.UsageStatic:
		return glenum.STATIC_DRAW
	case gfx.UsageDynamic:
		return glenum.DYNAMIC_DRAW
	case gfx.UsageStream:
		return glenum.STREAM_DRAW
	default:
		panic(unhandled("usage", u))
	}
}

func translateWrap(w gfx.WrapMode) int32 {
	switch w {
	case gfx.WrapRepeat:
		return glenum.REPEAT
	case gfx.WrapMirroredRepeat:
		return glenum.MIRRORED_REPEAT
	case gfx.WrapEdgeClamp:
		return glenum.CLAMP_TO_EDGE
	case gfx.WrapBorderClamp:
		return glenum.CLAMP_TO_BORDER
	default:
		panic(unhandled("wrap mode", w))
	}
}

// translateMinFilter returns the minification filter; if the texture
// doesn't have mip levels, mipmapping filters fall back to the
// corresponding non-mipmapped filter.
func translateMinFilter(f gfx.MinFilter, haveMips bool) int32 {
	if !haveMips {
		switch f {
		case gfx.MinNearestNoMipMaps, gfx.MinNearestNearestMipMap, gfx.MinNearestLinearMipMap:
			return glenum.NEAREST
		case gfx.MinBilinearNoMipMaps, gfx.MinBilinearNearestMipMap, gfx.MinTrilinear:
			return glenum.LINEAR
		default:
			panic(unhandled("min filter", f))
		}
	}

	switch f {
	case gfx.MinNearestNoMipMaps:
		return glenum.NEAREST
	case gfx.MinBilinearNoMipMaps:
		return glenum.LINEAR
	case gfx.MinNearestNearestMipMap:
		return glenum.NEAREST_MIPMAP_NEAREST
	case gfx.MinBilinearNearestMipMap:
		return glenum.LINEAR_MIPMAP_NEAREST
	case gfx.MinNearestLinearMipMap:
		return glenum.NEAREST_MIPMAP_LINEAR
	case gfx.MinTrilinear:
		return glenum.LINEAR_MIPMAP_LINEAR
	default:
		panic(unhandled("min filter", f))
	}
}

func translateMagFilter(f gfx.MagFilter) int32 {
	switch f {
	case gfx.MagNearest:
		return glenum.NEAREST
	case gfx.MagBilinear:
		return glenum.LINEAR
	default:
		panic(unhandled("mag filter", f))
	}
}

func translateShadowCompare(m gfx.ShadowCompareMode) int32 {
	switch m {
	case gfx.ShadowCompareLessOrEqual:
		return glenum.LEQUAL
	case gfx.ShadowCompareGreaterOrEqual:
		return glenum.GEQUAL
	default:
		panic(unhandled("shadow compare mode", m))
	}
}

// translateTextureType returns the binding target for a texture; only 2D
// textures may be multisampled.
func translateTextureType(t gfx.TextureType, samples int) uint32 {
	switch t {
	case gfx.Texture2D:
		return util.Select[uint32](samples > 1, glenum.TEXTURE_2D_MULTISAMPLE, glenum.TEXTURE_2D)
	case gfx.Texture3D:
		return glenum.TEXTURE_3D
	case gfx.TextureArray:
		return glenum.TEXTURE_2D_ARRAY
	case gfx.TextureCubeMap:
		return glenum.TEXTURE_CUBE_MAP
	default:
		panic(unhandled("texture type", t))
	}
}

func translateShaderStage(s gfx.Stage) uint32 {
	switch s {
	case gfx.StageVertex:
		return glenum.VERTEX_SHADER
	case gfx.StageFragment:
		return glenum.FRAGMENT_SHADER
	case gfx.StageGeometry:
		return glenum.GEOMETRY_SHADER
	default:
		panic(unhandled("shader stage", s))
	}
}

///////////////////////////////////////////////////////////////////////////
// Image formats

// nativeFormat is the native description of a pixel format.
type nativeFormat struct {
	internal   uint32
	format     uint32
	xtype      uint32
	compressed bool
}

type formatEntry struct {
	legacy nativeFormat
	// core is used in core profile contexts if it is non-zero; the
	// luminance and alpha formats were removed there.
	core nativeFormat
	srgb uint32 // 0 if there is no sRGB variant
	// req is the capability needed to use the format; the zero value,
	// OpenGL20, is always present.
	req caps.Cap
}

func plain(internal, format, xtype uint32) nativeFormat {
	return nativeFormat{internal: internal, format: format, xtype: xtype}
}

func compressed(internal uint32) nativeFormat {
	return nativeFormat{internal: internal, compressed: true}
}

var imageFormats = [gfx.NumFormats]formatEntry{
	gfx.FormatAlpha8: {
		legacy: plain(glenum.ALPHA8, glenum.ALPHA, glenum.UNSIGNED_BYTE),
		core:   plain(glenum.R8, glenum.RED, glenum.UNSIGNED_BYTE),
	},
	gfx.FormatLuminance8: {
		legacy: plain(glenum.LUMINANCE8, glenum.LUMINANCE, glenum.UNSIGNED_BYTE),
		core:   plain(glenum.R8, glenum.RED, glenum.UNSIGNED_BYTE),
		srgb:   glenum.SLUMINANCE8,
	},
	gfx.FormatLuminance8Alpha8: {
		legacy: plain(glenum.LUMINANCE8_ALPHA8, glenum.LUMINANCE_ALPHA, glenum.UNSIGNED_BYTE),
		core:   plain(glenum.RG8, glenum.RG, glenum.UNSIGNED_BYTE),
		srgb:   glenum.SLUMINANCE8_ALPHA8,
	},
	gfx.FormatLuminance16F: {
		legacy: plain(glenum.LUMINANCE16F, glenum.LUMINANCE, glenum.HALF_FLOAT),
		core:   plain(glenum.R16F, glenum.RED, glenum.HALF_FLOAT),
		req:    caps.FloatTexture,
	},
	gfx.FormatLuminance32F: {
		legacy: plain(glenum.LUMINANCE32F, glenum.LUMINANCE, glenum.FLOAT),
		core:   plain(glenum.R32F, glenum.RED, glenum.FLOAT),
		req:    caps.FloatTexture,
	},
	gfx.FormatRGB8: {
		legacy: plain(glenum.RGB8, glenum.RGB, glenum.UNSIGNED_BYTE),
		srgb:   glenum.SRGB8,
	},
	gfx.FormatRGBA8: {
		legacy: plain(glenum.RGBA8, glenum.RGBA, glenum.UNSIGNED_BYTE),
		srgb:   glenum.SRGB8_ALPHA8,
	},
	gfx.FormatBGR8: {
		legacy: plain(glenum.RGB8, glenum.BGR, glenum.UNSIGNED_BYTE),
		srgb:   glenum.SRGB8,
	},
	gfx.FormatBGRA8: {
		legacy: plain(glenum.RGBA8, glenum.BGRA, glenum.UNSIGNED_BYTE),
		srgb:   glenum.SRGB8_ALPHA8,
	},
	gfx.FormatRGB565: {
		legacy: plain(glenum.RGB8, glenum.RGB, glenum.UNSIGNED_SHORT_5_6_5),
	},
	gfx.FormatRGB5A1: {
		legacy: plain(glenum.RGB5_A1, glenum.RGBA, glenum.UNSIGNED_SHORT_5_5_5_1),
	},
	gfx.FormatRGB16F: {
		legacy: plain(glenum.RGB16F, glenum.RGB, glenum.HALF_FLOAT),
		req:    caps.FloatTexture,
	},
	gfx.FormatRGB32F: {
		legacy: plain(glenum.RGB32F, glenum.RGB, glenum.FLOAT),
		req:    caps.FloatTexture,
	},
	gfx.FormatRGBA16F: {
		legacy: plain(glenum.RGBA16F, glenum.RGBA, glenum.HALF_FLOAT),
		req:    caps.FloatTexture,
	},
	gfx.FormatRGBA32F: {
		legacy: plain(glenum.RGBA32F, glenum.RGBA, glenum.FLOAT),
		req:    caps.FloatTexture,
	},
	gfx.FormatRGB111110F: {
		legacy: plain(glenum.R11F_G11F_B10F, glenum.RGB, glenum.UNSIGNED_INT_10F_11F_11F_REV),
		req:    caps.FloatTexture,
	},
	gfx.FormatDepth: {
		legacy: plain(glenum.DEPTH_COMPONENT, glenum.DEPTH_COMPONENT, glenum.UNSIGNED_BYTE),
		req:    caps.DepthTexture,
	},
	gfx.FormatDepth16: {
		legacy: plain(glenum.DEPTH_COMPONENT16, glenum.DEPTH_COMPONENT, glenum.UNSIGNED_SHORT),
		req:    caps.DepthTexture,
	},
	gfx.FormatDepth24: {
		legacy: plain(glenum.DEPTH_COMPONENT24, glenum.DEPTH_COMPONENT, glenum.UNSIGNED_INT),
		req:    caps.DepthTexture,
	},
	gfx.FormatDepth32F: {
		legacy: plain(glenum.DEPTH_COMPONENT32F, glenum.DEPTH_COMPONENT, glenum.FLOAT),
		req:    caps.FloatDepthBuffer,
	},
	gfx.FormatDepth24Stencil8: {
		legacy: plain(glenum.DEPTH24_STENCIL8, glenum.DEPTH_STENCIL, glenum.UNSIGNED_INT_24_8),
		req:    caps.PackedDepthStencilBuffer,
	},
	gfx.FormatDXT1: {
		legacy: compressed(glenum.COMPRESSED_RGB_S3TC_DXT1_EXT),
		srgb:   glenum.COMPRESSED_SRGB_S3TC_DXT1_EXT,
		req:    caps.TextureCompressionS3TC,
	},
	gfx.FormatDXT1A: {
		legacy: compressed(glenum.COMPRESSED_RGBA_S3TC_DXT1_EXT),
		srgb:   glenum.COMPRESSED_SRGB_ALPHA_S3TC_DXT1_EXT,
		req:    caps.TextureCompressionS3TC,
	},
	gfx.FormatDXT3: {
		legacy: compressed(glenum.COMPRESSED_RGBA_S3TC_DXT3_EXT),
		srgb:   glenum.COMPRESSED_SRGB_ALPHA_S3TC_DXT3_EXT,
		req:    caps.TextureCompressionS3TC,
	},
	gfx.FormatDXT5: {
		legacy: compressed(glenum.COMPRESSED_RGBA_S3TC_DXT5_EXT),
		srgb:   glenum.COMPRESSED_SRGB_ALPHA_S3TC_DXT5_EXT,
		req:    caps.TextureCompressionS3TC,
	},
	gfx.FormatETC1: {
		legacy: compressed(glenum.ETC1_RGB8_OES),
		req:    caps.TextureCompressionETC1,
	},
}

// imageFormat returns the native format for an image format in the
// given color space, or a *caps.CapabilityError if the device can't
// store it.
func imageFormat(f gfx.Format, cs gfx.ColorSpace, r *caps.Registry) (nativeFormat, error) {
	if f < 0 || f >= gfx.NumFormats {
		panic(unhandled("image format", f))
	}
	e := imageFormats[f]

	if f == gfx.FormatETC1 && !r.Has(caps.TextureCompressionETC1) && r.Has(caps.TextureCompressionETC2) {
		// ETC2 decoders accept ETC1 data.
		return compressed(glenum.COMPRESSED_RGB8_ETC2), nil
	}
	if !r.Has(e.req) {
		return nativeFormat{}, &caps.CapabilityError{Cap: e.req, Op: "image format " + f.String()}
	}

	nf := e.legacy
	// Core profiles have no luminance or alpha formats.
	if e.core != (nativeFormat{}) && !r.Has(caps.FixedFunction) {
		nf = e.core
	}
	if cs == gfx.ColorSpaceSRGB && e.srgb != 0 && nf == e.legacy {
		if !r.Has(caps.Srgb) {
			return nativeFormat{}, &caps.CapabilityError{Cap: caps.Srgb, Op: "image format " + f.String()}
		}
		nf.internal = e.srgb
	}
	return nf, nil
}
