// pkg/renderer/texture_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"errors"
	"testing"

	"github.com/mmp/glstate/pkg/caps"
	"github.com/mmp/glstate/pkg/device/glenum"
	"github.com/mmp/glstate/pkg/gfx"
	"github.com/mmp/glstate/pkg/trace"
)

func rgbaImage(w, h int) *gfx.Image {
	data := make([]byte, 4*w*h)
	for i := range data {
		data[i] = byte(i)
	}
	return gfx.NewImage(gfx.FormatRGBA8, w, h, data)
}

func TestTextureUpload(t *testing.T) {
	r, rec := newTestRenderer(t, "gl33")
	img := rgbaImage(16, 8)
	tex := gfx.NewTexture2D(img)

	if err := r.SetTexture(2, tex); err != nil {
		t.Fatal(err)
	}
	if !img.Allocated() || img.IsUpdateNeeded() {
		t.Errorf("image should be allocated and clean after upload")
	}

	calls := rec.Calls()
	uploads := trace.Filter(calls, trace.OpTexImage2D)
	if len(uploads) != 1 {
		t.Fatalf("got %d TexImage2D calls; expected 1", len(uploads))
	}
	if !uploads[0].Is(trace.OpTexImage2D, glenum.TEXTURE_2D, 0, glenum.RGBA8, 16, 8, glenum.RGBA, glenum.UNSIGNED_BYTE) {
		t.Errorf("got %s; expected 16x8 RGBA8 upload", uploads[0])
	}
	if len(uploads[0].Data) != 16*8*4 {
		t.Errorf("got %d bytes uploaded; expected %d", len(uploads[0].Data), 16*8*4)
	}
	if !containsCall(calls, trace.OpActiveTexture, glenum.TEXTURE0+2) {
		t.Errorf("texture unit 2 was never selected")
	}
	if !containsCall(calls, trace.OpTexParameteri, glenum.TEXTURE_2D, glenum.TEXTURE_MAX_LEVEL, 0) {
		t.Errorf("expected the max level to be limited to the base level")
	}

	frame, _ := r.Statistics()
	if frame.TexturesCreated != 1 || frame.TextureBytes != 16*8*4 || frame.TextureSwitches != 0 {
		t.Errorf("unexpected statistics %s", frame.String())
	}

	// Binding it again issues nothing.
	m := rec.Mark()
	if err := r.SetTexture(2, tex); err != nil {
		t.Fatal(err)
	}
	if calls := rec.CallsSince(m); len(calls) != 0 {
		t.Errorf("got %v; expected no calls", calls)
	}

	// New data is uploaded into the same native texture.
	img.SetData(make([]byte, 16*8*4))
	m = rec.Mark()
	if err := r.SetTexture(2, tex); err != nil {
		t.Fatal(err)
	}
	calls = rec.CallsSince(m)
	if len(trace.Filter(calls, trace.OpGenTexture)) != 0 || len(trace.Filter(calls, trace.OpTexImage2D)) != 1 {
		t.Errorf("got %v; expected a single re-upload", calls)
	}
}

func TestTextureParams(t *testing.T) {
	r, rec := newTestRenderer(t, "gl33")
	tex := gfx.NewTexture2D(rgbaImage(4, 4))
	if err := r.SetTexture(0, tex); err != nil {
		t.Fatal(err)
	}

	calls := trace.Filter(rec.Calls(), trace.OpTexParameteri, trace.OpTexParameterf)
	for _, p := range []struct {
		pname, value uint32
	}{
		{glenum.TEXTURE_MIN_FILTER, glenum.LINEAR},
		{glenum.TEXTURE_MAG_FILTER, glenum.LINEAR},
		{glenum.TEXTURE_WRAP_S, glenum.CLAMP_TO_EDGE},
		{glenum.TEXTURE_WRAP_T, glenum.CLAMP_TO_EDGE},
		{glenum.TEXTURE_COMPARE_MODE, glenum.NONE},
	} {
		if !containsCall(calls, trace.OpTexParameteri, glenum.TEXTURE_2D, p.pname, p.value) {
			t.Errorf("expected parameter 0x%x = 0x%x in %v", p.pname, p.value, calls)
		}
	}
	if containsCall(calls, trace.OpTexParameteri, glenum.TEXTURE_2D, glenum.TEXTURE_WRAP_R) {
		t.Errorf("2D textures shouldn't set the R wrap mode")
	}
	aniso := trace.Filter(calls, trace.OpTexParameterf)
	if len(aniso) != 1 || aniso[0].Float(2) != 1 {
		t.Errorf("got %v; expected default anisotropy of 1", aniso)
	}

	// Only the changed parameters are sent.
	tex.SetWrap(gfx.WrapRepeat)
	tex.Anisotropy = 64
	m := rec.Mark()
	if err := r.SetTexture(0, tex); err != nil {
		t.Fatal(err)
	}
	calls = rec.CallsSince(m)
	expectCalls(t, calls, trace.OpTexParameterf, trace.OpTexParameteri, trace.OpTexParameteri)
	if len(calls) == 3 {
		if calls[0].Float(2) != 16 {
			t.Errorf("got anisotropy %g; expected it clamped to 16", calls[0].Float(2))
		}
		if !calls[1].Is(trace.OpTexParameteri, glenum.TEXTURE_2D, glenum.TEXTURE_WRAP_S, glenum.REPEAT) {
			t.Errorf("got %s; expected REPEAT wrap", calls[1])
		}
	}

	// A second texture sharing the image sees the cached parameters.
	other := gfx.NewTexture2D(tex.Image)
	other.MagFilter = gfx.MagNearest
	other.SetWrap(gfx.WrapRepeat)
	other.Anisotropy = 64
	m = rec.Mark()
	if err := r.SetTexture(0, other); err != nil {
		t.Fatal(err)
	}
	calls = rec.CallsSince(m)
	if len(calls) != 1 || !calls[0].Is(trace.OpTexParameteri, glenum.TEXTURE_2D, glenum.TEXTURE_MAG_FILTER, glenum.NEAREST) {
		t.Errorf("got %v; expected only the mag filter", calls)
	}
}

func TestTextureShadowCompare(t *testing.T) {
	r, rec := newTestRenderer(t, "gl21")
	img := gfx.NewImage(gfx.FormatDepth24, 64, 64)
	tex := gfx.NewTexture2D(img)
	tex.ShadowCompare = gfx.ShadowCompareLessOrEqual
	if err := r.SetTexture(0, tex); err != nil {
		t.Fatal(err)
	}

	calls := rec.Calls()
	if !containsCall(calls, trace.OpTexParameteri, glenum.TEXTURE_2D, glenum.DEPTH_TEXTURE_MODE, glenum.INTENSITY) {
		t.Errorf("expected the depth texture mode on the legacy tier")
	}
	if !containsCall(calls, trace.OpTexParameteri, glenum.TEXTURE_2D, glenum.TEXTURE_COMPARE_MODE,
		glenum.COMPARE_REF_TO_TEXTURE) {
		t.Errorf("expected comparison to be enabled")
	}
	if !containsCall(calls, trace.OpTexParameteri, glenum.TEXTURE_2D, glenum.TEXTURE_COMPARE_FUNC, glenum.LEQUAL) {
		t.Errorf("expected LEQUAL comparison")
	}
	// Storage-only uploads pass no data.
	if ups := trace.Filter(calls, trace.OpTexImage2D); len(ups) != 1 || len(ups[0].Data) != 0 {
		t.Errorf("got %v; expected a single storage allocation", ups)
	}
}

func TestTextureNPOT(t *testing.T) {
	// Resized to the next power of two on devices without NPOT support.
	r, rec := newTestRenderer(t, "gl21-minimal")
	img := rgbaImage(100, 60)
	if err := r.SetTexture(0, gfx.NewTexture2D(img)); err != nil {
		t.Fatal(err)
	}
	ups := trace.Filter(rec.Calls(), trace.OpTexImage2D)
	if len(ups) != 1 || ups[0].Int(3) != 128 || ups[0].Int(4) != 64 || len(ups[0].Data) != 128*64*4 {
		t.Errorf("got %v; expected a 128x64 upload", ups)
	}
	if img.Width != 100 || img.Height != 60 || len(img.Data[0]) != 100*60*4 {
		t.Errorf("the image itself shouldn't be resized")
	}

	// Uploaded as-is when NPOT textures are supported.
	r, rec = newTestRenderer(t, "gl21")
	if err := r.SetTexture(0, gfx.NewTexture2D(rgbaImage(100, 60))); err != nil {
		t.Fatal(err)
	}
	ups = trace.Filter(rec.Calls(), trace.OpTexImage2D)
	if len(ups) != 1 || ups[0].Int(3) != 100 || ups[0].Int(4) != 60 {
		t.Errorf("got %v; expected a 100x60 upload", ups)
	}

	// Without resizing there's no fallback.
	r, rec = newTestRenderer(t, "gl21-minimal", func(c *Config) { c.AllowNPOTResize = false })
	var ce *caps.CapabilityError
	img = rgbaImage(100, 60)
	if err := r.SetTexture(0, gfx.NewTexture2D(img)); !errors.As(err, &ce) || ce.Cap != caps.NonPowerOfTwoTextures {
		t.Errorf("got %v; expected missing NonPowerOfTwoTextures", err)
	}
	if img.Allocated() || rec.Count(trace.OpGenTexture) != 0 {
		t.Errorf("no texture should be allocated for a failed upload")
	}

	// Render targets have no data to resize.
	r, _ = newTestRenderer(t, "gl21-minimal")
	if err := r.SetTexture(0, gfx.NewTexture2D(gfx.NewImage(gfx.FormatRGBA8, 100, 60))); !errors.As(err, &ce) {
		t.Errorf("got %v; expected a capability error", err)
	}
}

func TestTextureLimits(t *testing.T) {
	r, rec := newTestRenderer(t, "gl21-minimal")

	big := gfx.NewImage(gfx.FormatRGBA8, 4096, 4096)
	if err := r.SetTexture(0, gfx.NewTexture2D(big)); !errors.Is(err, ErrTextureTooLarge) {
		t.Errorf("got %v; expected ErrTextureTooLarge", err)
	}

	var ce *caps.CapabilityError
	arr := gfx.NewImage(gfx.FormatRGBA8, 4, 4, make([]byte, 64), make([]byte, 64))
	if err := r.SetTexture(0, gfx.NewTextureArray(arr)); !errors.As(err, &ce) || ce.Cap != caps.TextureArray {
		t.Errorf("got %v; expected missing TextureArray", err)
	}

	float := gfx.NewImage(gfx.FormatRGBA16F, 4, 4)
	if err := r.SetTexture(0, gfx.NewTexture2D(float)); !errors.As(err, &ce) || ce.Cap != caps.FloatTexture {
		t.Errorf("got %v; expected missing FloatTexture", err)
	}

	if n := rec.Count(trace.OpGenTexture); n != 0 {
		t.Errorf("got %d textures allocated; expected 0", n)
	}
}

func TestTextureFormats(t *testing.T) {
	for _, test := range []struct {
		profile                 string
		format                  gfx.Format
		internal, fmt, datatype uint32
	}{
		{"gl21", gfx.FormatLuminance8, glenum.LUMINANCE8, glenum.LUMINANCE, glenum.UNSIGNED_BYTE},
		{"gl33", gfx.FormatLuminance8, glenum.R8, glenum.RED, glenum.UNSIGNED_BYTE},
		{"gl21", gfx.FormatAlpha8, glenum.ALPHA8, glenum.ALPHA, glenum.UNSIGNED_BYTE},
		{"gl33", gfx.FormatLuminance8Alpha8, glenum.RG8, glenum.RG, glenum.UNSIGNED_BYTE},
		{"gl33", gfx.FormatBGRA8, glenum.RGBA8, glenum.BGRA, glenum.UNSIGNED_BYTE},
		{"gl33", gfx.FormatRGBA16F, glenum.RGBA16F, glenum.RGBA, glenum.HALF_FLOAT},
		{"gl33", gfx.FormatDepth24Stencil8, glenum.DEPTH24_STENCIL8, glenum.DEPTH_STENCIL, glenum.UNSIGNED_INT_24_8},
	} {
		r, rec := newTestRenderer(t, test.profile)
		if err := r.SetTexture(0, gfx.NewTexture2D(gfx.NewImage(test.format, 4, 4))); err != nil {
			t.Errorf("%s %s: %v", test.profile, test.format, err)
			continue
		}
		ups := trace.Filter(rec.Calls(), trace.OpTexImage2D)
		if len(ups) != 1 || ups[0].Uint(2) != test.internal || ups[0].Uint(5) != test.fmt || ups[0].Uint(6) != test.datatype {
			t.Errorf("%s %s: got %v; expected internal 0x%x format 0x%x type 0x%x", test.profile, test.format,
				ups, test.internal, test.fmt, test.datatype)
		}
	}
}

func TestTextureCompressed(t *testing.T) {
	r, rec := newTestRenderer(t, "gl33")
	img := gfx.NewImage(gfx.FormatDXT5, 8, 8, make([]byte, 64))
	if err := r.SetTexture(0, gfx.NewTexture2D(img)); err != nil {
		t.Fatal(err)
	}
	ups := trace.Filter(rec.Calls(), trace.OpCompressedTexImage2D)
	if len(ups) != 1 || ups[0].Uint(2) != glenum.COMPRESSED_RGBA_S3TC_DXT5_EXT || len(ups[0].Data) != 64 {
		t.Errorf("got %v; expected a DXT5 upload", ups)
	}

	var ce *caps.CapabilityError
	r, _ = newTestRenderer(t, "gl21-minimal")
	if err := r.SetTexture(0, gfx.NewTexture2D(gfx.NewImage(gfx.FormatDXT5, 8, 8, make([]byte, 64)))); !errors.As(err, &ce) ||
		ce.Cap != caps.TextureCompressionS3TC {
		t.Errorf("got %v; expected missing TextureCompressionS3TC", err)
	}
}

func TestTextureCubeMap(t *testing.T) {
	r, rec := newTestRenderer(t, "gl33")
	var faces [][]byte
	for range 6 {
		faces = append(faces, make([]byte, 4*4*4))
	}
	tex := gfx.NewTextureCubeMap(gfx.NewImage(gfx.FormatRGBA8, 4, 4, faces...))
	if err := r.SetTexture(0, tex); err != nil {
		t.Fatal(err)
	}

	calls := rec.Calls()
	ups := trace.Filter(calls, trace.OpTexImage2D)
	if len(ups) != 6 {
		t.Fatalf("got %d face uploads; expected 6", len(ups))
	}
	for i, u := range ups {
		if u.Uint(0) != glenum.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i) {
			t.Errorf("face %d: got target 0x%x", i, u.Uint(0))
		}
	}
	if !containsCall(calls, trace.OpTexParameteri, glenum.TEXTURE_CUBE_MAP, glenum.TEXTURE_WRAP_R) {
		t.Errorf("cube maps should set the R wrap mode")
	}

	bad := gfx.NewTextureCubeMap(gfx.NewImage(gfx.FormatRGBA8, 4, 4, faces[:5]...))
	if err := r.SetTexture(0, bad); err == nil {
		t.Errorf("expected an error for a cube map with five faces")
	}
}

func TestTextureArray(t *testing.T) {
	r, rec := newTestRenderer(t, "gl33")
	img := gfx.NewImage(gfx.FormatRGBA8, 2, 2, make([]byte, 16), make([]byte, 16), make([]byte, 16))
	if err := r.SetTexture(0, gfx.NewTextureArray(img)); err != nil {
		t.Fatal(err)
	}
	calls := rec.Calls()
	if alloc := trace.Filter(calls, trace.OpTexImage3D); len(alloc) != 1 || alloc[0].Int(5) != 3 || len(alloc[0].Data) != 0 {
		t.Errorf("got %v; expected storage for 3 layers", alloc)
	}
	if subs := trace.Filter(calls, trace.OpTexSubImage3D); len(subs) != 3 || subs[2].Int(4) != 2 {
		t.Errorf("got %v; expected one sub-image per layer", subs)
	}
}

func TestTextureMipmaps(t *testing.T) {
	// Generated by the device when it can.
	r, rec := newTestRenderer(t, "gl33")
	img := rgbaImage(4, 4)
	tex := gfx.NewTexture2D(img)
	tex.SetMinFilter(gfx.MinTrilinear)
	if err := r.SetTexture(0, tex); err != nil {
		t.Fatal(err)
	}
	calls := rec.Calls()
	if rec.Count(trace.OpGenerateMipmap) != 1 || len(trace.Filter(calls, trace.OpTexImage2D)) != 1 {
		t.Errorf("expected one upload and GenerateMipmap")
	}
	if !img.MipsWereGenerated {
		t.Errorf("MipsWereGenerated should be set")
	}
	if !containsCall(calls, trace.OpTexParameteri, glenum.TEXTURE_2D, glenum.TEXTURE_MIN_FILTER, glenum.LINEAR_MIPMAP_LINEAR) {
		t.Errorf("expected a trilinear min filter")
	}

	// Generated on the CPU without framebuffer objects.
	r, rec = newTestRenderer(t, "gl21-minimal")
	img = rgbaImage(4, 4)
	tex = gfx.NewTexture2D(img)
	tex.SetMinFilter(gfx.MinTrilinear)
	if err := r.SetTexture(0, tex); err != nil {
		t.Fatal(err)
	}
	calls = rec.Calls()
	ups := trace.Filter(calls, trace.OpTexImage2D)
	if len(ups) != 3 {
		t.Fatalf("got %d uploads; expected 3 mip levels", len(ups))
	}
	for level, u := range ups {
		if u.Int(1) != int32(level) || u.Int(3) != int32(4>>level) || len(u.Data) != 4*(4>>level)*(4>>level) {
			t.Errorf("level %d: got %s", level, u)
		}
	}
	if !containsCall(calls, trace.OpTexParameteri, glenum.TEXTURE_2D, glenum.TEXTURE_MAX_LEVEL, 2) {
		t.Errorf("expected the max level to be 2")
	}
	if rec.Count(trace.OpGenerateMipmap) != 0 || !img.MipsWereGenerated {
		t.Errorf("expected CPU mip generation")
	}

	// Otherwise the legacy automatic generation is used.
	r, rec = newTestRenderer(t, "gl21-minimal", func(c *Config) { c.AllowCPUMipmaps = false })
	tex = gfx.NewTexture2D(rgbaImage(4, 4))
	tex.SetMinFilter(gfx.MinTrilinear)
	if err := r.SetTexture(0, tex); err != nil {
		t.Fatal(err)
	}
	if !containsCall(rec.Calls(), trace.OpTexParameteri, glenum.TEXTURE_2D, glenum.GENERATE_MIPMAP, glenum.TRUE) {
		t.Errorf("expected GENERATE_MIPMAP to be enabled")
	}
}

func TestTextureProvidedMipmaps(t *testing.T) {
	r, rec := newTestRenderer(t, "gl33")
	img := gfx.NewImage(gfx.FormatRGBA8, 2, 2)
	img.SetMipData([]int{16, 4}, make([]byte, 20))
	tex := gfx.NewTexture2D(img)
	tex.SetMinFilter(gfx.MinTrilinear)
	if err := r.SetTexture(0, tex); err != nil {
		t.Fatal(err)
	}
	if n := len(trace.Filter(rec.Calls(), trace.OpTexImage2D)); n != 2 {
		t.Errorf("got %d uploads; expected 2", n)
	}
	if rec.Count(trace.OpGenerateMipmap) != 0 || img.MipsWereGenerated {
		t.Errorf("provided mip levels shouldn't be generated")
	}
}

func TestTextureMultisample(t *testing.T) {
	r, rec := newTestRenderer(t, "gl33")
	img := gfx.NewImage(gfx.FormatRGBA8, 64, 64)
	img.Multisamples = 32
	if err := r.SetTexture(0, gfx.NewTexture2D(img)); err != nil {
		t.Fatal(err)
	}
	calls := trace.Filter(rec.Calls(), trace.OpTexImage2DMultisample)
	if len(calls) != 1 || !calls[0].Is(trace.OpTexImage2DMultisample, glenum.TEXTURE_2D_MULTISAMPLE, 8) {
		t.Errorf("got %v; expected 8 samples", calls)
	}
	if n := rec.Count(trace.OpTexParameteri); n != 0 {
		t.Errorf("got %d parameter calls; multisample textures have no sampler state", n)
	}

	var ce *caps.CapabilityError
	r, _ = newTestRenderer(t, "gl21")
	img = gfx.NewImage(gfx.FormatRGBA8, 64, 64)
	img.Multisamples = 4
	if err := r.SetTexture(0, gfx.NewTexture2D(img)); !errors.As(err, &ce) || ce.Cap != caps.TextureMultisample {
		t.Errorf("got %v; expected missing TextureMultisample", err)
	}
}

func TestDeleteImage(t *testing.T) {
	r, rec := newTestRenderer(t, "gl33")
	img := rgbaImage(4, 4)
	if err := r.SetTexture(0, gfx.NewTexture2D(img)); err != nil {
		t.Fatal(err)
	}
	name := img.GLName()

	r.DeleteImage(img)
	r.DeleteImage(img)
	if del := trace.Filter(rec.Calls(), trace.OpDeleteTexture); len(del) != 1 || del[0].Uint(0) != name {
		t.Errorf("got %v; expected a single DeleteTexture(%d)", del, name)
	}
	if img.Allocated() {
		t.Errorf("image should be unallocated")
	}

	// Uploading again allocates a new texture, which must be rebound even
	// if the device reuses the name.
	m := rec.Mark()
	if err := r.SetTexture(0, gfx.NewTexture2D(img)); err != nil {
		t.Fatal(err)
	}
	calls := rec.CallsSince(m)
	if len(trace.Filter(calls, trace.OpGenTexture)) != 1 || len(trace.Filter(calls, trace.OpBindTexture)) != 1 {
		t.Errorf("got %v; expected the image to be recreated and bound", calls)
	}
}
