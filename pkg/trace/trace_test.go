// pkg/trace/trace_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mmp/glstate/pkg/caps"
	"github.com/mmp/glstate/pkg/device/glenum"

	"github.com/go-gl/mathgl/mgl32"
)

func newRecorder(t *testing.T) *Recorder {
	p, err := caps.LookupProfile("gl33")
	if err != nil {
		t.Fatal(err)
	}
	return NewRecorder(p, nil)
}

func TestEncodeDecode(t *testing.T) {
	r := newRecorder(t)
	r.Enable(glenum.DEPTH_TEST)
	r.PolygonOffset(1.5, -2)
	r.TexImage2D(glenum.TEXTURE_2D, 0, glenum.RGBA8, 1, 1, glenum.RGBA, glenum.UNSIGNED_BYTE, []byte{1, 2, 3, 4, 5})
	r.ColorMask(true, false, true, false)
	r.LoadMatrixf(mgl32.Ident4())

	calls := r.Calls()
	if len(calls) != 5 {
		t.Fatalf("got %d calls; expected 5", len(calls))
	}
	if !calls[0].Is(OpEnable, glenum.DEPTH_TEST) {
		t.Errorf("got %s; expected Enable(DEPTH_TEST)", calls[0])
	}
	if calls[1].Float(0) != 1.5 || calls[1].Float(1) != -2 {
		t.Errorf("got %s; expected PolygonOffset(1.5, -2)", calls[1])
	}
	if !bytes.Equal(calls[2].Data, []byte{1, 2, 3, 4, 5}) || calls[2].Int(3) != 1 {
		t.Errorf("got payload %v; expected 1..5", calls[2].Data)
	}
	if calls[3].Bool(0) != true || calls[3].Bool(1) != false {
		t.Errorf("got %s; expected ColorMask(1, 0, 1, 0)", calls[3])
	}
	if f := calls[4].Floats(0); len(f) != 16 || f[0] != 1 || f[1] != 0 || f[15] != 1 {
		t.Errorf("got matrix %v", f)
	}

	if s := calls[0].String(); s != "Enable(0x0b71)" {
		t.Errorf("got %q; expected Enable(0x0b71)", s)
	}
	if OpDrawElements.String() != "DrawElements" || Op(9999).String() != "Op(9999)" {
		t.Errorf("op names are wrong")
	}
}

func TestMarks(t *testing.T) {
	r := newRecorder(t)
	r.Enable(glenum.BLEND)
	m := r.Mark()
	r.BlendFunc(glenum.ONE, glenum.ONE)
	r.Disable(glenum.BLEND)

	since := r.CallsSince(m)
	if len(since) != 2 || since[0].Op != OpBlendFunc {
		t.Errorf("got %v; expected BlendFunc, Disable", since)
	}
	if r.Count(OpEnable) != 1 || r.Count(OpDrawArrays) != 0 {
		t.Errorf("unexpected counts")
	}
	if len(Filter(r.Calls(), OpEnable, OpDisable)) != 2 {
		t.Errorf("expected 2 enable/disable calls")
	}

	r.Discard()
	if len(r.Calls()) != 0 {
		t.Errorf("Discard should drop recorded calls")
	}
}

func TestNames(t *testing.T) {
	r := newRecorder(t)
	if a, b := r.GenTexture(), r.GenTexture(); a != 1 || b != 2 {
		t.Errorf("got texture names %d, %d; expected 1, 2", a, b)
	}
	if r.GenBuffer() != 1 {
		t.Errorf("buffer names should be independent of texture names")
	}
	if r.CreateShader(glenum.VERTEX_SHADER) == r.CreateProgram() {
		t.Errorf("shaders and programs should share a name space")
	}
}

func TestShaders(t *testing.T) {
	r := newRecorder(t)
	vs := r.CreateShader(glenum.VERTEX_SHADER)
	r.ShaderSource(vs, "void main() {}")
	r.CompileShader(vs)
	if r.GetShaderiv(vs, glenum.COMPILE_STATUS) != 1 {
		t.Errorf("expected vertex shader to compile")
	}

	fs := r.CreateShader(glenum.FRAGMENT_SHADER)
	r.ShaderSource(fs, "void main() {\n#error no\n}")
	r.CompileShader(fs)
	if r.GetShaderiv(fs, glenum.COMPILE_STATUS) != 0 {
		t.Errorf("expected #error to fail compilation")
	}
	if log := r.GetShaderInfoLog(fs); !strings.Contains(log, "0:2:") {
		t.Errorf("got log %q; expected line 2", log)
	}

	p := r.CreateProgram()
	r.AttachShader(p, vs)
	r.AttachShader(p, fs)
	r.LinkProgram(p)
	if r.GetProgramiv(p, glenum.LINK_STATUS) != 0 || r.GetProgramiv(p, glenum.INFO_LOG_LENGTH) == 0 {
		t.Errorf("expected link failure with a log")
	}
	if r.GetUniformLocation(p, "m_Color") != -1 {
		t.Errorf("unlinked programs have no uniforms")
	}

	r.DetachShader(p, fs)
	r.LinkProgram(p)
	if r.GetProgramiv(p, glenum.LINK_STATUS) != 1 {
		t.Errorf("expected link to succeed: %s", r.GetProgramInfoLog(p))
	}
	r.Missing["m_Unused"] = true
	if a, b := r.GetUniformLocation(p, "m_A"), r.GetUniformLocation(p, "m_B"); a != 0 || b != 1 {
		t.Errorf("got locations %d, %d; expected 0, 1", a, b)
	}
	if r.GetUniformLocation(p, "m_A") != 0 || r.GetUniformLocation(p, "m_Unused") != -1 {
		t.Errorf("unexpected location lookups")
	}
	if r.GetAttribLocation(p, "inPosition") != 0 {
		t.Errorf("attributes should be numbered separately from uniforms")
	}
	if n := r.Count(OpGetUniformLocation); n != 5 {
		t.Errorf("got %d uniform lookups; expected 5", n)
	}
}

func TestReadPixels(t *testing.T) {
	r := newRecorder(t)
	r.ClearColor(1, 0, 0.5, 1)
	px := make([]byte, 8)
	r.ReadPixels(0, 0, 2, 1, glenum.RGBA, glenum.UNSIGNED_BYTE, px)
	if !bytes.Equal(px, []byte{255, 0, 128, 255, 255, 0, 128, 255}) {
		t.Errorf("got %v; expected clear color", px)
	}

	r.Errors = []uint32{glenum.INVALID_ENUM}
	if r.GetError() != glenum.INVALID_ENUM || r.GetError() != glenum.NO_ERROR {
		t.Errorf("GetError should drain queued errors")
	}
}

func TestSaveLoad(t *testing.T) {
	r := newRecorder(t)
	r.Enable(glenum.CULL_FACE)
	r.CullFace(glenum.BACK)
	r.CullFace(glenum.FRONT)
	r.ShaderSource(1, "#version 330 core\n")

	var buf bytes.Buffer
	if err := r.Trace().Save(&buf); err != nil {
		t.Fatal(err)
	}
	tr, err := Load(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Profile.Name != "gl33" {
		t.Errorf("got profile %q; expected gl33", tr.Profile.Name)
	}
	calls := tr.Calls()
	if len(calls) != 4 || calls[3].Str() != "#version 330 core\n" {
		t.Errorf("got %v after round trip", calls)
	}

	h := tr.Histogram()
	if h[0] != (OpCount{Op: OpCullFace, Count: 2}) {
		t.Errorf("got %v; expected CullFace first", h)
	}
}

func TestParseOp(t *testing.T) {
	for op := range NumOps {
		if p, err := ParseOp(op.String()); err != nil || p != op {
			t.Errorf("%s: got %s, %v", op, p, err)
		}
	}
	if _, err := ParseOp("glDrawArrays"); err == nil {
		t.Errorf("expected an error for an unknown op")
	}
}
