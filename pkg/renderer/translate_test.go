// pkg/renderer/translate_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"errors"
	"testing"

	"github.com/mmp/glstate/pkg/caps"
	"github.com/mmp/glstate/pkg/device/glenum"
	"github.com/mmp/glstate/pkg/gfx"
)

func registry(t *testing.T, profile string) *caps.Registry {
	t.Helper()
	p, err := caps.LookupProfile(profile)
	if err != nil {
		t.Fatal(err)
	}
	r, err := caps.FromProfile(p, nil)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func expectPanic(t *testing.T, what string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected a panic", what)
		}
	}()
	f()
}

func TestTranslateEnums(t *testing.T) {
	for _, test := range []struct {
		got, expected uint32
	}{
		{translateTestFunc(gfx.TestLessOrEqual), glenum.LEQUAL},
		{translateTestFunc(gfx.TestNotEqual), glenum.NOTEQUAL},
		{translateStencilOp(gfx.StencilIncrementWrap), glenum.INCR_WRAP},
		{translateStencilOp(gfx.StencilInvert), glenum.INVERT},
		{translateBlendFactor(gfx.FactorOneMinusDstAlpha), glenum.ONE_MINUS_DST_ALPHA},
		{translateBlendEquation(gfx.EquationReverseSubtract), glenum.FUNC_REVERSE_SUBTRACT},
		{translateBlendEquationAlpha(gfx.AlphaEquationInheritColor, glenum.MAX), glenum.MAX},
		{translateBlendEquationAlpha(gfx.AlphaEquationMin, glenum.MAX), glenum.MIN},
		{translateMode(gfx.ModeTriangleFan), glenum.TRIANGLE_FAN},
		{translateFormat(gfx.ComponentHalf), glenum.HALF_FLOAT},
		{translateUsage(gfx.UsageStream), glenum.STREAM_DRAW},
		{translateTextureType(gfx.Texture2D, 4), glenum.TEXTURE_2D_MULTISAMPLE},
		{translateTextureType(gfx.TextureArray, 1), glenum.TEXTURE_2D_ARRAY},
		{translateShaderStage(gfx.StageGeometry), glenum.GEOMETRY_SHADER},
	} {
		if test.got != test.expected {
			t.Errorf("got 0x%x; expected 0x%x", test.got, test.expected)
		}
	}
}

func TestBlendFactors(t *testing.T) {
	for _, test := range []struct {
		mode     gfx.BlendMode
		src, dst uint32
	}{
		{gfx.BlendAdditive, glenum.ONE, glenum.ONE},
		{gfx.BlendPremultAlpha, glenum.ONE, glenum.ONE_MINUS_SRC_ALPHA},
		{gfx.BlendAlphaAdditive, glenum.SRC_ALPHA, glenum.ONE},
		{gfx.BlendColor, glenum.ONE, glenum.ONE_MINUS_SRC_COLOR},
		{gfx.BlendScreen, glenum.ONE, glenum.ONE_MINUS_SRC_COLOR},
		{gfx.BlendAlpha, glenum.SRC_ALPHA, glenum.ONE_MINUS_SRC_ALPHA},
		{gfx.BlendModulate, glenum.DST_COLOR, glenum.ZERO},
		{gfx.BlendModulateX2, glenum.DST_COLOR, glenum.SRC_COLOR},
		{gfx.BlendExclusion, glenum.ONE_MINUS_DST_COLOR, glenum.ONE_MINUS_SRC_COLOR},
	} {
		if src, dst := blendFactors(test.mode); src != test.src || dst != test.dst {
			t.Errorf("%s: got 0x%x, 0x%x; expected 0x%x, 0x%x", test.mode, src, dst, test.src, test.dst)
		}
	}

	expectPanic(t, "BlendOff", func() { blendFactors(gfx.BlendOff) })
	expectPanic(t, "BlendCustom", func() { blendFactors(gfx.BlendCustom) })
}

func TestTranslateCullFace(t *testing.T) {
	if _, on := translateCullFace(gfx.CullOff); on {
		t.Errorf("CullOff should disable culling")
	}
	if face, on := translateCullFace(gfx.CullFrontAndBack); !on || face != glenum.FRONT_AND_BACK {
		t.Errorf("got 0x%x, %v; expected FRONT_AND_BACK", face, on)
	}
}

func TestTranslateMinFilter(t *testing.T) {
	for _, test := range []struct {
		f        gfx.MinFilter
		mips     bool
		expected int32
	}{
		{gfx.MinTrilinear, true, glenum.LINEAR_MIPMAP_LINEAR},
		{gfx.MinTrilinear, false, glenum.LINEAR},
		{gfx.MinNearestLinearMipMap, true, glenum.NEAREST_MIPMAP_LINEAR},
		{gfx.MinNearestLinearMipMap, false, glenum.NEAREST},
		{gfx.MinBilinearNearestMipMap, false, glenum.LINEAR},
		{gfx.MinNearestNoMipMaps, true, glenum.NEAREST},
	} {
		if got := translateMinFilter(test.f, test.mips); got != test.expected {
			t.Errorf("%s (mips %v): got 0x%x; expected 0x%x", test.f, test.mips, got, test.expected)
		}
	}
}

func TestTranslatePanics(t *testing.T) {
	expectPanic(t, "test function", func() { translateTestFunc(gfx.TestFunction(42)) })
	expectPanic(t, "stencil op", func() { translateStencilOp(gfx.StencilOperation(-1)) })
	expectPanic(t, "mode", func() { translateMode(gfx.Mode(99)) })
	expectPanic(t, "wrap", func() { translateWrap(gfx.WrapMode(17)) })
	expectPanic(t, "shadow compare off", func() { translateShadowCompare(gfx.ShadowCompareOff) })
	expectPanic(t, "texture type", func() { translateTextureType(gfx.TextureType(9), 1) })
	expectPanic(t, "image format", func() { _, _ = imageFormat(gfx.NumFormats, gfx.ColorSpaceLinear, nil) })
}

func TestImageFormat(t *testing.T) {
	legacy, minimal, core := registry(t, "gl21"), registry(t, "gl21-minimal"), registry(t, "gl33")

	nf, err := imageFormat(gfx.FormatRGBA8, gfx.ColorSpaceSRGB, core)
	if err != nil || nf.internal != glenum.SRGB8_ALPHA8 || nf.format != glenum.RGBA {
		t.Errorf("got %+v, %v; expected SRGB8_ALPHA8", nf, err)
	}
	// Core profile formats have no sRGB variants.
	if nf, err := imageFormat(gfx.FormatLuminance8, gfx.ColorSpaceSRGB, core); err != nil || nf.internal != glenum.R8 {
		t.Errorf("got %+v, %v; expected R8", nf, err)
	}
	if nf, err := imageFormat(gfx.FormatLuminance8, gfx.ColorSpaceLinear, legacy); err != nil ||
		nf.internal != glenum.LUMINANCE8 || nf.format != glenum.LUMINANCE {
		t.Errorf("got %+v, %v; expected LUMINANCE8", nf, err)
	}

	var ce *caps.CapabilityError
	if _, err := imageFormat(gfx.FormatRGBA8, gfx.ColorSpaceSRGB, legacy); !errors.As(err, &ce) || ce.Cap != caps.Srgb {
		t.Errorf("got %v; expected missing Srgb", err)
	}
	if _, err := imageFormat(gfx.FormatRGBA16F, gfx.ColorSpaceLinear, minimal); !errors.As(err, &ce) ||
		ce.Cap != caps.FloatTexture {
		t.Errorf("got %v; expected missing FloatTexture", err)
	}
	if _, err := imageFormat(gfx.FormatETC1, gfx.ColorSpaceLinear, core); !errors.As(err, &ce) ||
		ce.Cap != caps.TextureCompressionETC1 {
		t.Errorf("got %v; expected missing TextureCompressionETC1", err)
	}
	if nf, err := imageFormat(gfx.FormatDXT5, gfx.ColorSpaceLinear, legacy); err != nil || !nf.compressed {
		t.Errorf("got %+v, %v; expected a compressed format", nf, err)
	}
}
