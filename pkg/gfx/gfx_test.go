// pkg/gfx/gfx_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gfx

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestMergeExample(t *testing.T) {
	base := NewRenderState()
	base.SetCullMode(CullBack)
	base.SetBlendMode(BlendOff)

	override := AdditionalRenderState()
	override.SetCullMode(CullOff)
	// Assigned directly, so not marked to apply.
	override.Blend.Mode = BlendAdditive

	m := Merge(base, override)
	if m.CullMode != CullOff {
		t.Errorf("got cull %s; expected Off", m.CullMode)
	}
	if m.Blend.Mode != BlendOff {
		t.Errorf("got blend %s; expected Off", m.Blend.Mode)
	}
	if m.Apply != AllFields {
		t.Errorf("merged state should apply all fields; got %b", m.Apply)
	}
}

func TestMergeFieldByField(t *testing.T) {
	base := NewRenderState()
	base.SetLineWidth(3)
	base.SetPolyOffset(1, 2)

	o := AdditionalRenderState()
	o.SetDepthFunc(TestAlways)
	o.SetCustomBlendFactors(FactorSrcAlpha, FactorOne, FactorZero, FactorOne)
	o.SetStencil(Stencil{
		Enabled: true,
		Front:   StencilFace{StencilFail: StencilReplace, DepthFail: StencilKeep, DepthPass: StencilInvert, Func: TestEqual},
		Back:    defaultStencilFace,
	})
	// Not marked to apply: base's polygon offset must survive as a group.
	o.PolyOffset = PolyOffset{}

	m := Merge(base, o)
	if m.DepthFunc != TestAlways {
		t.Errorf("got depth func %s; expected Always", m.DepthFunc)
	}
	if m.DepthTest != base.DepthTest || m.DepthWrite != base.DepthWrite || m.CullMode != base.CullMode {
		t.Errorf("unapplied fields should come from base: %s", m)
	}
	if m.Blend.Mode != BlendCustom || m.Blend.SrcRGB != FactorSrcAlpha || m.Blend.DstAlpha != FactorOne {
		t.Errorf("custom blend factors not merged: %+v", m.Blend)
	}
	if m.PolyOffset != (PolyOffset{Enabled: true, Factor: 1, Units: 2}) {
		t.Errorf("got poly offset %+v; expected base's", m.PolyOffset)
	}
	if !m.Stencil.Enabled || m.Stencil.Front.DepthPass != StencilInvert {
		t.Errorf("stencil group not merged: %+v", m.Stencil)
	}
	if m.LineWidth != 3 {
		t.Errorf("got line width %f; expected 3", m.LineWidth)
	}

	// Merging with a state that applies everything yields that state.
	all := NewRenderState()
	all.SetWireframe(true)
	if Merge(m, all) != all {
		t.Errorf("merge with full state should equal the override")
	}
}

func TestRenderStateString(t *testing.T) {
	rs := AdditionalRenderState()
	rs.SetWireframe(true)
	s := rs.String()
	if !strings.Contains(s, "wireframe=true ") || !strings.Contains(s, "cull=Back (inherit)") {
		t.Errorf("unexpected string %q", s)
	}
	if BlendMode(42).String() != "BlendMode(42)" {
		t.Errorf("got %q for out of range blend mode", BlendMode(42).String())
	}
}

func TestHandleLifecycle(t *testing.T) {
	img := NewImage(FormatRGBA8, 4, 4, make([]byte, 64))
	if img.ID() != Unallocated || !img.IsUpdateNeeded() {
		t.Errorf("new image: got id %d dirty %v; expected unallocated and dirty", img.ID(), img.IsUpdateNeeded())
	}
	img.SetID(7)
	img.ClearUpdateNeeded()
	if img.ID() != 7 || img.IsUpdateNeeded() {
		t.Errorf("got %s; expected id 7 clean", img.Handle)
	}
	v := img.Version()
	img.SetData(make([]byte, 64))
	if !img.IsUpdateNeeded() || img.Version() != v+1 {
		t.Errorf("SetData should mark dirty and bump the version")
	}
	img.ResetID()
	if img.Allocated() {
		t.Errorf("ResetID should leave the handle unallocated")
	}

	var obj NativeObject = img
	if obj.NativeHandle() != &img.Handle {
		t.Errorf("NativeHandle should return the embedded handle")
	}
}

func TestFormatSizes(t *testing.T) {
	for _, test := range []struct {
		f    Format
		w, h int
		size int
	}{
		{FormatRGBA8, 16, 16, 1024},
		{FormatRGB8, 3, 3, 27},
		{FormatDXT1, 16, 16, 128},
		{FormatDXT5, 5, 5, 64},
		{FormatRGBA32F, 2, 2, 64},
	} {
		if s := test.f.DataSize(test.w, test.h); s != test.size {
			t.Errorf("%s %dx%d: got %d bytes; expected %d", test.f, test.w, test.h, s, test.size)
		}
	}
	if !FormatDepth24Stencil8.IsStencil() || !FormatDepth24Stencil8.IsDepth() || FormatRGBA8.IsDepth() {
		t.Errorf("depth/stencil classification is wrong")
	}
}

func TestImageMips(t *testing.T) {
	data := make([]byte, 16+4+1)
	data[16] = 1
	data[20] = 2
	img := NewImage(FormatAlpha8, 4, 4)
	img.SetMipData([]int{16, 4, 1}, data)
	if !img.HasMipmaps() {
		t.Errorf("expected mipmaps")
	}
	if m := img.Mip(0, 1); len(m) != 4 || m[0] != 1 {
		t.Errorf("got mip 1 %v; expected 4 bytes starting with 1", m)
	}
	if m := img.Mip(0, 2); len(m) != 1 || m[0] != 2 {
		t.Errorf("got mip 2 %v; expected [2]", m)
	}
	if w, h := img.MipDimensions(5); w != 1 || h != 1 {
		t.Errorf("got %dx%d; expected 1x1", w, h)
	}
}

func TestMeshCounts(t *testing.T) {
	m := NewMesh(ModeTriangles)
	if m.VertexCount() != 0 {
		t.Errorf("empty mesh: got %d vertices", m.VertexCount())
	}

	pos := NewVertexBuffer(BufferPosition, UsageStatic, 3, ComponentFloat)
	pos.SetFloats(make([]float32, 3*6))
	m.SetBuffer(pos)
	if m.VertexCount() != 6 {
		t.Errorf("got %d vertices; expected 6", m.VertexCount())
	}
	if m.IndexBuffer(0) != nil {
		t.Errorf("expected no index buffer")
	}

	// Interleaved: the position buffer only carries layout.
	il := NewVertexBuffer(BufferInterleavedData, UsageStatic, 1, ComponentFloat)
	il.SetFloats(make([]float32, 5*4))
	ipos := NewVertexBuffer(BufferPosition, UsageStatic, 3, ComponentFloat)
	ipos.Stride = 20
	m.SetBuffer(ipos)
	m.SetBuffer(il)
	if len(m.Buffers()) != 2 {
		t.Errorf("SetBuffer should replace buffers of the same type; got %d", len(m.Buffers()))
	}
	if m.VertexCount() != 4 {
		t.Errorf("got %d interleaved vertices; expected 4", m.VertexCount())
	}

	lod0 := NewIndexBuffer(UsageStatic, ComponentUnsignedShort)
	lod1 := NewIndexBuffer(UsageStatic, ComponentUnsignedShort)
	m.LODLevels = []*VertexBuffer{lod0, lod1}
	if m.IndexBuffer(1) != lod1 {
		t.Errorf("expected LOD 1 index buffer")
	}

	if ModeTriangleStrip.Primitives(5) != 3 || ModeLines.Primitives(5) != 2 || ModeTriangles.Primitives(6) != 2 {
		t.Errorf("primitive counts are wrong")
	}
}

func TestUniformDirty(t *testing.T) {
	s := NewShader("test")
	u := s.Uniform("m_Color")
	if u.Location() != LocUnknown {
		t.Errorf("got location %d; expected LocUnknown", u.Location())
	}
	u.SetValue(VarVector4, mgl32.Vec4{1, 0, 0, 1})
	if !u.IsUpdateNeeded() {
		t.Errorf("expected update needed after first set")
	}
	u.ClearUpdateNeeded()
	u.SetValue(VarVector4, mgl32.Vec4{1, 0, 0, 1})
	if u.IsUpdateNeeded() {
		t.Errorf("setting an unchanged value shouldn't require an update")
	}
	u.SetValue(VarFloatArray, []float32{1, 2})
	u.ClearUpdateNeeded()
	u.SetValue(VarFloatArray, []float32{1, 2})
	if !u.IsUpdateNeeded() {
		t.Errorf("arrays are always resent")
	}
	if s.Uniform("m_Color") != u || len(s.Uniforms()) != 1 {
		t.Errorf("Uniform should return the existing uniform")
	}

	u.SetLocation(3)
	u.ClearUpdateNeeded()
	s.Attribute(BufferPosition).SetLocation(0)
	s.ResetLocations()
	if u.Location() != LocUnknown || s.Attribute(BufferPosition).Location() != LocUnknown {
		t.Errorf("ResetLocations should forget resolved locations")
	}
	if !u.IsUpdateNeeded() {
		t.Errorf("ResetLocations should require values to be resent")
	}
	if s.Attribute(BufferTexCoord).Name != "inTexCoord" {
		t.Errorf("got attribute name %q; expected inTexCoord", s.Attribute(BufferTexCoord).Name)
	}
}

func TestUniformTypeCheck(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for mismatched uniform type")
		}
	}()
	NewShader("x").SetUniform("m_Float", VarFloat, 1.0) // float64, not float32
}

func TestLightSplit(t *testing.T) {
	ll := LightList{
		NewAmbientLight(mgl32.Vec4{0.1, 0.1, 0.1, 1}),
		NewPointLight(mgl32.Vec3{1, 2, 3}, 10, mgl32.Vec4{1, 1, 1, 1}),
		NewAmbientLight(mgl32.Vec4{0.2, 0.2, 0.2, 0}),
		NewDirectionalLight(mgl32.Vec3{0, -1, 0}, mgl32.Vec4{1, 1, 1, 1}),
	}
	amb, rest := ll.Split()
	if !amb.ApproxEqual(mgl32.Vec4{0.3, 0.3, 0.3, 1}) {
		t.Errorf("got ambient %v; expected 0.3s", amb)
	}
	if len(rest) != 2 || rest[0].Type != LightPoint || rest[1].Type != LightDirectional {
		t.Errorf("got %v; expected point then directional", rest)
	}
	if rest[0].InvRadius() != 0.1 {
		t.Errorf("got inverse radius %f; expected 0.1", rest[0].InvRadius())
	}
}

func TestFrameBufferAttachments(t *testing.T) {
	fb := NewFrameBuffer(64, 32, 0)
	if fb.Samples != 1 {
		t.Errorf("got %d samples; expected 1", fb.Samples)
	}
	fb.SetDepthBuffer(FormatDepth24Stencil8)
	if fb.DepthBuffer().Slot != SlotDepthStencil {
		t.Errorf("got slot %d; expected depth/stencil", fb.DepthBuffer().Slot)
	}
	fb.AddColorBuffer(FormatRGBA8)
	fb.AddColorTexture(NewTexture2D(NewImage(FormatRGBA16F, 64, 32)), -1)
	if len(fb.ColorBuffers()) != 2 || fb.ColorBuffer(1).Slot != 1 || fb.ColorBuffer(2) != nil {
		t.Errorf("unexpected color attachments: %v", fb.ColorBuffers())
	}

	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for mismatched attachment size")
		}
	}()
	fb.AddColorTexture(NewTexture2D(NewImage(FormatRGBA8, 16, 16)), -1)
}

func TestRenderStateApplies(t *testing.T) {
	rs := AdditionalRenderState()
	if rs.Applies(FieldAlphaFunc) {
		t.Errorf("additional state applies the alpha function")
	}
	rs.SetAlphaFunc(TestGreater)
	rs.SetLineWidth(2)
	if !rs.Applies(FieldAlphaFunc) || !rs.Applies(FieldAlphaFunc|FieldLineWidth) {
		t.Errorf("got apply mask %b; expected alpha func and line width", rs.Apply)
	}
	if rs.Applies(FieldAlphaFunc | FieldStencil) {
		t.Errorf("Applies should require every field in the mask")
	}

	// Assigning directly doesn't mark the field.
	rs.CullMode = CullFront
	if rs.Applies(FieldCullMode) {
		t.Errorf("direct assignment set the apply bit")
	}
}

func TestMeshClearBuffer(t *testing.T) {
	m := NewMesh(ModeTriangles)
	pos := NewVertexBuffer(BufferPosition, UsageStatic, 3, ComponentFloat)
	pos.SetFloats(make([]float32, 9))
	m.SetBuffer(pos)
	m.SetBuffer(NewVertexBuffer(BufferNormal, UsageStatic, 3, ComponentFloat))

	m.ClearBuffer(BufferNormal)
	if m.Buffer(BufferNormal) != nil || m.Buffer(BufferPosition) != pos {
		t.Errorf("got buffers %v; expected only the position buffer", m.Buffers())
	}
	// Clearing a missing buffer is fine.
	m.ClearBuffer(BufferTexCoord)
	if len(m.Buffers()) != 1 {
		t.Errorf("got %d buffers; expected 1", len(m.Buffers()))
	}
}

func TestFormatFloat(t *testing.T) {
	for f, float := range map[Format]bool{
		FormatRGB16F:     true,
		FormatRGB32F:     true,
		FormatLuminance8: false,
		FormatRGBA8:      false,
	} {
		if f.IsFloat() != float {
			t.Errorf("%s: got IsFloat %v; expected %v", f, f.IsFloat(), float)
		}
	}
}
