// pkg/caps/caps_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package caps

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	for _, test := range []struct {
		s   string
		v   int
		err bool
	}{
		{"2.1 Mesa 23.0.4", 21, false},
		{"3.3.0 NVIDIA 535.54.03", 33, false},
		{"4.6.0 Core Profile", 46, false},
		{"1.20", 12, false},
		{"3.30 NVIDIA via Cg compiler", 33, false},
		{"1.00", 10, false},
		{"OpenGL ES 3.0", 0, true},
		{"garbage", 0, true},
	} {
		v, err := parseVersion(test.s)
		if (err != nil) != test.err {
			t.Errorf("%q: got error %v; expected error %v", test.s, err, test.err)
		}
		if v != test.v {
			t.Errorf("%q: got %d; expected %d", test.s, v, test.v)
		}
	}
}

func mustLoad(t *testing.T, name string) *Registry {
	t.Helper()
	p, err := LookupProfile(name)
	if err != nil {
		t.Fatal(err)
	}
	r, err := FromProfile(p, nil)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestProfiles(t *testing.T) {
	minimal := mustLoad(t, "gl21-minimal")
	for _, c := range []Cap{OpenGL20, OpenGL21, GLSL100, GLSL110, GLSL120, FixedFunction, IntegerIndexBuffer, DepthTexture} {
		if !minimal.Has(c) {
			t.Errorf("gl21-minimal: expected %s", c)
		}
	}
	for _, c := range []Cap{OpenGL30, GLSL130, NonPowerOfTwoTextures, MeshInstancing, FrameBuffer, FrameBufferMRT, VertexBufferArray} {
		if minimal.Has(c) {
			t.Errorf("gl21-minimal: unexpected %s", c)
		}
	}
	if minimal.Limit(MaxLights) != 8 {
		t.Errorf("gl21-minimal: got %d max lights; expected 8", minimal.Limit(MaxLights))
	}
	if minimal.Limit(MaxRenderBufferSize) != 0 {
		t.Errorf("gl21-minimal: render buffer size should not be queried without framebuffers")
	}

	ext := mustLoad(t, "gl21")
	for _, c := range []Cap{NonPowerOfTwoTextures, MeshInstancing, FrameBuffer, FrameBufferBlit, FrameBufferMRT, TextureArray, TextureFilterAnisotropic} {
		if !ext.Has(c) {
			t.Errorf("gl21: expected %s", c)
		}
	}
	if ext.MaxAnisotropy() != 16 {
		t.Errorf("gl21: got anisotropy %f; expected 16", ext.MaxAnisotropy())
	}

	core := mustLoad(t, "gl33")
	if core.Has(FixedFunction) {
		t.Errorf("gl33: core profile should not have fixed function")
	}
	for _, c := range []Cap{OpenGL33, GLSL330, MeshInstancing, VertexBufferArray, TextureMultisample, Srgb, SeamlessCubemap} {
		if !core.Has(c) {
			t.Errorf("gl33: expected %s", c)
		}
	}
	if core.Limit(MaxLights) != 0 {
		t.Errorf("gl33: got %d max lights; expected 0", core.Limit(MaxLights))
	}
}

func TestRequire(t *testing.T) {
	r := mustLoad(t, "gl21-minimal")
	err := r.Require(MeshInstancing, "draw")
	var ce *CapabilityError
	if !errors.As(err, &ce) {
		t.Fatalf("got %v; expected CapabilityError", err)
	}
	if ce.Cap != MeshInstancing {
		t.Errorf("got cap %s; expected MeshInstancing", ce.Cap)
	}
	if ce.Error() != "draw: missing capability MeshInstancing" {
		t.Errorf("unexpected error text %q", ce.Error())
	}
	if err := r.Require(OpenGL20, "draw"); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	r := mustLoad(t, "gl21")
	s := r.Snapshot()
	s.Caps[OpenGL33] = true
	s.Limits[MaxLights] = 1
	if r.Has(OpenGL33) || r.Limit(MaxLights) != 8 {
		t.Errorf("modifying a snapshot changed the registry")
	}
}

func TestRejectOld(t *testing.T) {
	p, _ := LookupProfile("gl21-minimal")
	p.Version = "1.5 Ancient"
	if _, err := FromProfile(p, nil); err == nil {
		t.Errorf("expected error for OpenGL 1.5")
	}
}

func TestParseCap(t *testing.T) {
	for c := range NumCaps {
		pc, err := ParseCap(c.String())
		if err != nil || pc != c {
			t.Errorf("%s: round trip gave %s, %v", c, pc, err)
		}
	}
	if _, err := ParseCap("Teleportation"); err == nil {
		t.Errorf("expected error for unknown capability")
	}
}

func TestReport(t *testing.T) {
	r := mustLoad(t, "gl33")
	var buf bytes.Buffer
	if err := r.WriteReport(&buf); err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("report isn't valid JSON: %v", err)
	}
	if m["version"] != "3.3" {
		t.Errorf("got version %v; expected 3.3", m["version"])
	}
	caps := m["caps"].(map[string]any)
	if caps["MeshInstancing"] != true || caps["FixedFunction"] != false {
		t.Errorf("unexpected caps in report: %v", caps)
	}
	// Keys should come out in enumeration order.
	if i, j := bytes.Index(buf.Bytes(), []byte(`"OpenGL20"`)), bytes.Index(buf.Bytes(), []byte(`"SeamlessCubemap"`)); i == -1 || j == -1 || i > j {
		t.Errorf("report keys are not in enumeration order")
	}
}

func TestHasExtension(t *testing.T) {
	r := mustLoad(t, "gl21")
	if !r.HasExtension("GL_ARB_texture_float") {
		t.Errorf("gl21: expected GL_ARB_texture_float")
	}
	if r.HasExtension("GL_ARB_texture_floa") {
		t.Errorf("gl21: prefix of an extension name matched")
	}
	if mustLoad(t, "gl21-minimal").HasExtension("GL_ARB_texture_float") {
		t.Errorf("gl21-minimal: unexpected GL_ARB_texture_float")
	}
}
