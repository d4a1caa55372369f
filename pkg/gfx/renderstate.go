// pkg/gfx/renderstate.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gfx

import (
	"fmt"
	"strings"
)

type TestFunction int

const (
	TestNever TestFunction = iota
	TestEqual
	TestLess
	TestLessOrEqual
	TestGreater
	TestGreaterOrEqual
	TestNotEqual
	TestAlways
)

func (f TestFunction) String() string {
	return enumString(int(f), "TestFunction", []string{"Never", "Equal", "Less", "LessOrEqual",
		"Greater", "GreaterOrEqual", "NotEqual", "Always"})
}

type FaceCullMode int

const (
	CullOff FaceCullMode = iota
	CullFront
	CullBack
	CullFrontAndBack
)

func (m FaceCullMode) String() string {
	return enumString(int(m), "FaceCullMode", []string{"Off", "Front", "Back", "FrontAndBack"})
}

// BlendMode selects one of the canned blend function pairs; BlendCustom
// uses the four factors in Blend.
type BlendMode int

const (
	BlendOff           BlendMode = iota
	BlendAdditive                // src + dst
	BlendPremultAlpha            // src + (1-srcA)*dst
	BlendAlphaAdditive           // srcA*src + dst
	BlendColor                   // src + (1-src)*dst
	BlendAlpha                   // srcA*src + (1-srcA)*dst
	BlendModulate                // src*dst
	BlendModulateX2              // 2*src*dst
	BlendScreen                  // 1 - (1-src)*(1-dst)
	BlendExclusion               // (1-dst)*src + (1-src)*dst
	BlendCustom
)

func (m BlendMode) String() string {
	return enumString(int(m), "BlendMode", []string{"Off", "Additive", "PremultAlpha", "AlphaAdditive",
		"Color", "Alpha", "Modulate", "ModulateX2", "Screen", "Exclusion", "Custom"})
}

type BlendFunc int

const (
	FactorZero BlendFunc = iota
	FactorOne
	FactorSrcColor
	FactorOneMinusSrcColor
	FactorDstColor
	FactorOneMinusDstColor
	FactorSrcAlpha
	FactorOneMinusSrcAlpha
	FactorDstAlpha
	FactorOneMinusDstAlpha
	FactorSrcAlphaSaturate
)

func (f BlendFunc) String() string {
	return enumString(int(f), "BlendFunc", []string{"Zero", "One", "SrcColor", "OneMinusSrcColor",
		"DstColor", "OneMinusDstColor", "SrcAlpha", "OneMinusSrcAlpha", "DstAlpha", "OneMinusDstAlpha",
		"SrcAlphaSaturate"})
}

type BlendEquation int

const (
	EquationAdd BlendEquation = iota
	EquationSubtract
	EquationReverseSubtract
	EquationMin
	EquationMax
)

func (e BlendEquation) String() string {
	return enumString(int(e), "BlendEquation", []string{"Add", "Subtract", "ReverseSubtract", "Min", "Max"})
}

// BlendEquationAlpha is the equation used for the alpha channel;
// AlphaEquationInheritColor uses the same equation as the color channels.
type BlendEquationAlpha int

const (
	AlphaEquationInheritColor BlendEquationAlpha = iota
	AlphaEquationAdd
	AlphaEquationSubtract
	AlphaEquationReverseSubtract
	AlphaEquationMin
	AlphaEquationMax
)

func (e BlendEquationAlpha) String() string {
	return enumString(int(e), "BlendEquationAlpha", []string{"InheritColor", "Add", "Subtract",
		"ReverseSubtract", "Min", "Max"})
}

type StencilOperation int

const (
	StencilKeep StencilOperation = iota
	StencilZero
	StencilReplace
	StencilIncrement
	StencilIncrementWrap
	StencilDecrement
	StencilDecrementWrap
	StencilInvert
)

func (op StencilOperation) String() string {
	return enumString(int(op), "StencilOperation", []string{"Keep", "Zero", "Replace", "Increment",
		"IncrementWrap", "Decrement", "DecrementWrap", "Invert"})
}

func enumString(v int, typ string, names []string) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("%s(%d)", typ, v)
	}
	return names[v]
}

// Blend groups the blend mode with the values that only matter when
// blending is enabled. They are merged and compared as a unit.
type Blend struct {
	Mode          BlendMode
	Equation      BlendEquation
	EquationAlpha BlendEquationAlpha
	// Custom factors; only used with BlendCustom.
	SrcRGB, DstRGB, SrcAlpha, DstAlpha BlendFunc
}

type PolyOffset struct {
	Enabled       bool
	Factor, Units float32
}

type StencilFace struct {
	StencilFail StencilOperation
	DepthFail   StencilOperation
	DepthPass   StencilOperation
	Func        TestFunction
}

// Stencil describes both faces' stencil configuration. It is always
// merged and applied as a single group.
type Stencil struct {
	Enabled     bool
	Front, Back StencilFace
}

// Field identifies a RenderState field (or field group) for the purposes
// of merging.
type Field uint32

const (
	FieldPointSprite Field = 1 << iota
	FieldWireframe
	FieldCullMode
	FieldDepthWrite
	FieldDepthTest
	FieldDepthFunc
	FieldColorWrite
	FieldBlend
	FieldAlphaTest
	FieldAlphaFunc
	FieldAlphaFallOff
	FieldPolyOffset
	FieldStencil
	FieldLineWidth

	AllFields = FieldLineWidth<<1 - 1
)

// RenderState is a portable description of the fixed-function state to
// use when drawing. Each field has a corresponding bit in Apply; when a
// RenderState is used as an override in Merge, only the fields whose bits
// are set replace the base state's values. The setters set the bit;
// assigning a field directly does not.
type RenderState struct {
	PointSprite  bool
	Wireframe    bool
	CullMode     FaceCullMode
	DepthWrite   bool
	DepthTest    bool
	DepthFunc    TestFunction
	ColorWrite   bool
	Blend        Blend
	AlphaTest    bool // legacy tier only
	AlphaFunc    TestFunction
	AlphaFallOff float32
	PolyOffset   PolyOffset
	Stencil      Stencil
	LineWidth    float32

	Apply Field
}

var defaultStencilFace = StencilFace{
	StencilFail: StencilKeep,
	DepthFail:   StencilKeep,
	DepthPass:   StencilKeep,
	Func:        TestAlways,
}

// NewRenderState returns the default state: back-face culling, depth test
// and depth writes enabled, blending off. Every field is marked to apply.
func NewRenderState() RenderState {
	return RenderState{
		CullMode:   CullBack,
		DepthWrite: true,
		DepthTest:  true,
		DepthFunc:  TestLessOrEqual,
		ColorWrite: true,
		Blend: Blend{
			Mode:          BlendOff,
			Equation:      EquationAdd,
			EquationAlpha: AlphaEquationInheritColor,
			SrcRGB:        FactorOne,
			DstRGB:        FactorOne,
			SrcAlpha:      FactorOne,
			DstAlpha:      FactorOne,
		},
		AlphaFunc: TestGreater,
		Stencil:   Stencil{Front: defaultStencilFace, Back: defaultStencilFace},
		LineWidth: 1,
		Apply:     AllFields,
	}
}

// AdditionalRenderState returns a state with default values and no fields
// marked to apply; it is the starting point for an override state.
func AdditionalRenderState() RenderState {
	rs := NewRenderState()
	rs.Apply = 0
	return rs
}

func (rs *RenderState) Applies(f Field) bool {
	return rs.Apply&f == f
}

func (rs *RenderState) SetPointSprite(b bool) {
	rs.PointSprite = b
	rs.Apply |= FieldPointSprite
}

func (rs *RenderState) SetWireframe(b bool) {
	rs.Wireframe = b
	rs.Apply |= FieldWireframe
}

func (rs *RenderState) SetCullMode(m FaceCullMode) {
	rs.CullMode = m
	rs.Apply |= FieldCullMode
}

func (rs *RenderState) SetDepthWrite(b bool) {
	rs.DepthWrite = b
	rs.Apply |= FieldDepthWrite
}

func (rs *RenderState) SetDepthTest(b bool) {
	rs.DepthTest = b
	rs.Apply |= FieldDepthTest
}

func (rs *RenderState) SetDepthFunc(f TestFunction) {
	rs.DepthFunc = f
	rs.Apply |= FieldDepthFunc
}

func (rs *RenderState) SetColorWrite(b bool) {
	rs.ColorWrite = b
	rs.Apply |= FieldColorWrite
}

// SetBlendMode sets one of the canned blend modes.
func (rs *RenderState) SetBlendMode(m BlendMode) {
	rs.Blend.Mode = m
	rs.Apply |= FieldBlend
}

// SetCustomBlendFactors selects BlendCustom with the given factors.
func (rs *RenderState) SetCustomBlendFactors(srcRGB, dstRGB, srcAlpha, dstAlpha BlendFunc) {
	rs.Blend.Mode = BlendCustom
	rs.Blend.SrcRGB, rs.Blend.DstRGB = srcRGB, dstRGB
	rs.Blend.SrcAlpha, rs.Blend.DstAlpha = srcAlpha, dstAlpha
	rs.Apply |= FieldBlend
}

func (rs *RenderState) SetBlendEquation(e BlendEquation, ea BlendEquationAlpha) {
	rs.Blend.Equation = e
	rs.Blend.EquationAlpha = ea
	rs.Apply |= FieldBlend
}

func (rs *RenderState) SetAlphaTest(b bool) {
	rs.AlphaTest = b
	rs.Apply |= FieldAlphaTest
}

func (rs *RenderState) SetAlphaFunc(f TestFunction) {
	rs.AlphaFunc = f
	rs.Apply |= FieldAlphaFunc
}

func (rs *RenderState) SetAlphaFallOff(v float32) {
	rs.AlphaFallOff = v
	rs.Apply |= FieldAlphaFallOff
}

// SetPolyOffset enables polygon offset with the given factor and units.
func (rs *RenderState) SetPolyOffset(factor, units float32) {
	rs.PolyOffset = PolyOffset{Enabled: true, Factor: factor, Units: units}
	rs.Apply |= FieldPolyOffset
}

func (rs *RenderState) DisablePolyOffset() {
	rs.PolyOffset = PolyOffset{}
	rs.Apply |= FieldPolyOffset
}

func (rs *RenderState) SetStencil(s Stencil) {
	rs.Stencil = s
	rs.Apply |= FieldStencil
}

func (rs *RenderState) SetLineWidth(w float32) {
	rs.LineWidth = w
	rs.Apply |= FieldLineWidth
}

// Merge returns the combination of base and additional: each field comes
// from additional if additional marks it to apply and from base
// otherwise. Polygon offset, stencil, and blend settings are merged as
// groups. All fields of the result are marked to apply.
func Merge(base, additional RenderState) RenderState {
	pick := func(f Field) bool { return additional.Apply&f != 0 }

	out := base
	if pick(FieldPointSprite) {
		out.PointSprite = additional.PointSprite
	}
	if pick(FieldWireframe) {
		out.Wireframe = additional.Wireframe
	}
	if pick(FieldCullMode) {
		out.CullMode = additional.CullMode
	}
	if pick(FieldDepthWrite) {
		out.DepthWrite = additional.DepthWrite
	}
	if pick(FieldDepthTest) {
		out.DepthTest = additional.DepthTest
	}
	if pick(FieldDepthFunc) {
		out.DepthFunc = additional.DepthFunc
	}
	if pick(FieldColorWrite) {
		out.ColorWrite = additional.ColorWrite
	}
	if pick(FieldBlend) {
		out.Blend = additional.Blend
	}
	if pick(FieldAlphaTest) {
		out.AlphaTest = additional.AlphaTest
	}
	if pick(FieldAlphaFunc) {
		out.AlphaFunc = additional.AlphaFunc
	}
	if pick(FieldAlphaFallOff) {
		out.AlphaFallOff = additional.AlphaFallOff
	}
	if pick(FieldPolyOffset) {
		out.PolyOffset = additional.PolyOffset
	}
	if pick(FieldStencil) {
		out.Stencil = additional.Stencil
	}
	if pick(FieldLineWidth) {
		out.LineWidth = additional.LineWidth
	}
	out.Apply = AllFields
	return out
}

func (rs RenderState) String() string {
	var sb strings.Builder
	sb.WriteString("RenderState[")
	field := func(f Field, name string, v any) {
		mark := ""
		if rs.Apply&f == 0 {
			mark = " (inherit)"
		}
		fmt.Fprintf(&sb, " %s=%v%s", name, v, mark)
	}
	field(FieldPointSprite, "pointSprite", rs.PointSprite)
	field(FieldWireframe, "wireframe", rs.Wireframe)
	field(FieldCullMode, "cull", rs.CullMode)
	field(FieldDepthWrite, "depthWrite", rs.DepthWrite)
	field(FieldDepthTest, "depthTest", rs.DepthTest)
	field(FieldDepthFunc, "depthFunc", rs.DepthFunc)
	field(FieldColorWrite, "colorWrite", rs.ColorWrite)
	field(FieldBlend, "blend", rs.Blend.Mode)
	if rs.Blend.Mode == BlendCustom {
		fmt.Fprintf(&sb, " factors=%s,%s,%s,%s", rs.Blend.SrcRGB, rs.Blend.DstRGB, rs.Blend.SrcAlpha,
			rs.Blend.DstAlpha)
	}
	field(FieldAlphaTest, "alphaTest", rs.AlphaTest)
	field(FieldPolyOffset, "polyOffset", rs.PolyOffset)
	field(FieldStencil, "stencil", rs.Stencil.Enabled)
	field(FieldLineWidth, "lineWidth", rs.LineWidth)
	sb.WriteString(" ]")
	return sb.String()
}
