// pkg/renderer/framebuffer_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"errors"
	"strings"
	"testing"

	"github.com/mmp/glstate/pkg/caps"
	"github.com/mmp/glstate/pkg/device/glenum"
	"github.com/mmp/glstate/pkg/gfx"
	"github.com/mmp/glstate/pkg/trace"

	"github.com/go-gl/mathgl/mgl32"
)

func newFrameBuffer(w, h, samples int) *gfx.FrameBuffer {
	fb := gfx.NewFrameBuffer(w, h, samples)
	fb.SetDepthBuffer(gfx.FormatDepth24)
	fb.AddColorBuffer(gfx.FormatRGBA8)
	return fb
}

func TestSetFrameBuffer(t *testing.T) {
	r, rec := newTestRenderer(t, "gl33")
	fb := newFrameBuffer(64, 32, 1)
	if err := r.SetFrameBuffer(fb); err != nil {
		t.Fatal(err)
	}

	calls := rec.Calls()
	expectCalls(t, calls,
		trace.OpGenFramebuffer, trace.OpBindFramebuffer,
		trace.OpGenRenderbuffer, trace.OpBindRenderbuffer, trace.OpRenderbufferStorage, trace.OpFramebufferRenderbuffer,
		trace.OpGenRenderbuffer, trace.OpBindRenderbuffer, trace.OpRenderbufferStorage, trace.OpFramebufferRenderbuffer,
		trace.OpCheckFramebufferStatus, trace.OpViewport, trace.OpDrawBuffer)
	if len(calls) == 13 {
		if !calls[5].Is(trace.OpFramebufferRenderbuffer, glenum.FRAMEBUFFER, glenum.DEPTH_ATTACHMENT) {
			t.Errorf("got %s; expected the depth buffer attached first", calls[5])
		}
		if !calls[9].Is(trace.OpFramebufferRenderbuffer, glenum.FRAMEBUFFER, glenum.COLOR_ATTACHMENT0) {
			t.Errorf("got %s; expected the color buffer in slot 0", calls[9])
		}
		if !calls[11].Is(trace.OpViewport, 0, 0, 64, 32) {
			t.Errorf("got %s; expected the viewport to cover the framebuffer", calls[11])
		}
	}

	frame, _ := r.Statistics()
	if frame.FrameBuffersCreated != 1 || frame.FrameBufferSwitches != 1 {
		t.Errorf("unexpected statistics %s", frame.String())
	}

	m := rec.Mark()
	if err := r.SetFrameBuffer(fb); err != nil {
		t.Fatal(err)
	}
	if calls := rec.CallsSince(m); len(calls) != 0 {
		t.Errorf("got %v; expected no calls when rebinding", calls)
	}

	m = rec.Mark()
	if err := r.SetFrameBuffer(nil); err != nil {
		t.Fatal(err)
	}
	calls = rec.CallsSince(m)
	expectCalls(t, calls, trace.OpBindFramebuffer, trace.OpDrawBuffer, trace.OpReadBuffer)
	if len(calls) == 3 && !calls[0].Is(trace.OpBindFramebuffer, glenum.FRAMEBUFFER, 0) {
		t.Errorf("got %s; expected the default framebuffer", calls[0])
	}
}

func TestFrameBufferMainOverride(t *testing.T) {
	r, rec := newTestRenderer(t, "gl33")
	main := newFrameBuffer(16, 16, 1)
	r.SetMainFrameBufferOverride(main)
	if err := r.SetFrameBuffer(nil); err != nil {
		t.Fatal(err)
	}
	if !containsCall(rec.Calls(), trace.OpBindFramebuffer, glenum.FRAMEBUFFER, main.GLName()) || !main.Allocated() {
		t.Errorf("override wasn't bound in place of the default framebuffer")
	}

	r.SetMainFrameBufferOverride(nil)
	m := rec.Mark()
	if err := r.SetFrameBuffer(nil); err != nil {
		t.Fatal(err)
	}
	if !containsCall(rec.CallsSince(m), trace.OpBindFramebuffer, glenum.FRAMEBUFFER, 0) {
		t.Errorf("default framebuffer wasn't restored")
	}
}

func TestFrameBufferMultisample(t *testing.T) {
	r, rec := newTestRenderer(t, "gl21")
	if err := r.SetFrameBuffer(newFrameBuffer(32, 32, 16)); err != nil {
		t.Fatal(err)
	}
	storage := trace.Filter(rec.Calls(), trace.OpRenderbufferStorageMultisample)
	if len(storage) != 2 {
		t.Fatalf("got %v; expected two multisampled renderbuffers", storage)
	}
	for _, c := range storage {
		if c.Int(0) != 4 {
			t.Errorf("got %d samples; expected the device limit 4", c.Int(0))
		}
	}
}

func TestFrameBufferErrors(t *testing.T) {
	var ce *caps.CapabilityError
	r, _ := newTestRenderer(t, "gl21-minimal")
	if err := r.SetFrameBuffer(newFrameBuffer(8, 8, 1)); !errors.As(err, &ce) || ce.Cap != caps.FrameBuffer {
		t.Errorf("got %v; expected missing FrameBuffer", err)
	}
	if err := r.CopyFrameBuffer(nil, nil, false); !errors.As(err, &ce) || ce.Cap != caps.FrameBufferBlit {
		t.Errorf("got %v; expected missing FrameBufferBlit", err)
	}

	r, _ = newTestRenderer(t, "gl21")
	if err := r.SetFrameBuffer(newFrameBuffer(8192, 16, 1)); !errors.Is(err, ErrRenderBufferTooLarge) {
		t.Errorf("got %v; expected ErrRenderBufferTooLarge", err)
	}

	fb := gfx.NewFrameBuffer(8, 8, 1)
	for range 5 {
		fb.AddColorBuffer(gfx.FormatRGBA8)
	}
	fb.MultiTarget = true
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic for an attachment slot beyond the device limit")
		}
	}()
	_ = r.SetFrameBuffer(fb)
}

func TestFrameBufferIncomplete(t *testing.T) {
	r, rec := newTestRenderer(t, "gl33")
	rec.FramebufferStatus = glenum.FRAMEBUFFER_UNSUPPORTED
	fb := newFrameBuffer(16, 16, 1)

	err := r.SetFrameBuffer(fb)
	var fe *FrameBufferError
	if !errors.As(err, &fe) || fe.Status != glenum.FRAMEBUFFER_UNSUPPORTED {
		t.Fatalf("got %v; expected an unsupported FrameBufferError", err)
	}
	if !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("%q: expected the status to be described", err.Error())
	}
	calls := rec.Calls()
	if last := calls[len(calls)-1]; !last.Is(trace.OpBindFramebuffer, glenum.FRAMEBUFFER, 0) {
		t.Errorf("got %s; expected the previous binding to be restored", last)
	}
	if !fb.IsUpdateNeeded() {
		t.Errorf("incomplete framebuffer should still need an update")
	}

	// The attachments are checked again on the next use.
	rec.FramebufferStatus = glenum.FRAMEBUFFER_COMPLETE
	m := rec.Mark()
	if err := r.SetFrameBuffer(fb); err != nil {
		t.Fatal(err)
	}
	calls = rec.CallsSince(m)
	if !containsCall(calls, trace.OpCheckFramebufferStatus) || containsCall(calls, trace.OpGenFramebuffer) {
		t.Errorf("got %v; expected the existing framebuffer to be checked again", calls)
	}
}

func TestFrameBufferMRT(t *testing.T) {
	r, rec := newTestRenderer(t, "gl33")
	fb := gfx.NewFrameBuffer(8, 8, 1)
	for range 3 {
		fb.AddColorBuffer(gfx.FormatRGBA16F)
	}
	fb.MultiTarget = true
	if err := r.SetFrameBuffer(fb); err != nil {
		t.Fatal(err)
	}
	bufs := trace.Filter(rec.Calls(), trace.OpDrawBuffers)
	if len(bufs) != 1 || !bufs[0].Is(trace.OpDrawBuffers, glenum.COLOR_ATTACHMENT0, glenum.COLOR_ATTACHMENT1,
		glenum.COLOR_ATTACHMENT2) || len(bufs[0].Args) != 3 {
		t.Errorf("got %v; expected three draw buffers", bufs)
	}

	// Switching to a single target selects it.
	fb.MultiTarget = false
	fb.TargetIndex = 2
	fb.SetUpdateNeeded()
	m := rec.Mark()
	if err := r.SetFrameBuffer(fb); err != nil {
		t.Fatal(err)
	}
	if !containsCall(rec.CallsSince(m), trace.OpDrawBuffer, glenum.COLOR_ATTACHMENT2) {
		t.Errorf("expected COLOR_ATTACHMENT2 to be selected")
	}
}

func TestRenderToTexture(t *testing.T) {
	r, rec := newTestRenderer(t, "gl33")
	tex := gfx.NewTexture2D(gfx.NewImage(gfx.FormatRGBA8, 32, 32))
	tex.SetMinFilter(gfx.MinTrilinear)
	fb := gfx.NewFrameBuffer(32, 32, 1)
	fb.SetColorTexture(tex)

	if err := r.SetFrameBuffer(fb); err != nil {
		t.Fatal(err)
	}
	calls := rec.Calls()
	if !containsCall(calls, trace.OpFramebufferTexture2D, glenum.FRAMEBUFFER, glenum.COLOR_ATTACHMENT0,
		glenum.TEXTURE_2D, tex.Image.GLName(), 0) {
		t.Errorf("got %v; expected the texture to be attached", calls)
	}
	if containsCall(calls, trace.OpGenRenderbuffer) {
		t.Errorf("texture attachments don't need renderbuffers")
	}

	// Leaving the framebuffer regenerates the texture's mip levels.
	m := rec.Mark()
	if err := r.SetFrameBuffer(nil); err != nil {
		t.Fatal(err)
	}
	if !containsCall(rec.CallsSince(m), trace.OpGenerateMipmap, glenum.TEXTURE_2D) {
		t.Errorf("mip levels weren't regenerated")
	}

	// Deleting the framebuffer leaves the texture alone.
	r.DeleteFrameBuffer(fb)
	if rec.Count(trace.OpDeleteTexture) != 0 || rec.Count(trace.OpDeleteFramebuffer) != 1 {
		t.Errorf("expected only the framebuffer to be deleted")
	}
	if !tex.Image.Allocated() {
		t.Errorf("attached texture was reset")
	}
}

func TestReadFrameBuffer(t *testing.T) {
	r, rec := newTestRenderer(t, "gl33")
	r.SetBackgroundColor(mgl32.Vec4{1, 0, 0.5, 1})
	fb := newFrameBuffer(2, 2, 1)

	buf := make([]byte, 16)
	if err := r.ReadFrameBuffer(fb, buf); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(buf); i += 4 {
		if px := buf[i : i+4]; px[0] != 255 || px[1] != 0 || px[2] != 128 || px[3] != 255 {
			t.Errorf("pixel %d: got %v; expected the clear color", i/4, px)
		}
	}
	calls := rec.Calls()
	if !containsCall(calls, trace.OpReadBuffer, glenum.COLOR_ATTACHMENT0) {
		t.Errorf("color attachment wasn't selected for reading")
	}
	if !containsCall(calls, trace.OpReadPixels, 0, 0, 2, 2, glenum.RGBA, glenum.UNSIGNED_BYTE) {
		t.Errorf("got %v; expected the framebuffer to be read", trace.Filter(calls, trace.OpReadPixels))
	}

	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic for a short buffer")
		}
	}()
	_ = r.ReadFrameBuffer(fb, make([]byte, 4))
}

func TestCopyFrameBuffer(t *testing.T) {
	r, rec := newTestRenderer(t, "gl33")
	r.SetViewPort(0, 0, 640, 480)
	src := newFrameBuffer(320, 240, 1)

	m := rec.Mark()
	if err := r.CopyFrameBuffer(src, nil, true); err != nil {
		t.Fatal(err)
	}
	calls := rec.CallsSince(m)
	// Creating src left it bound to both targets, so only the draw
	// target changes.
	if containsCall(calls, trace.OpBindFramebuffer, glenum.READ_FRAMEBUFFER) ||
		!containsCall(calls, trace.OpBindFramebuffer, glenum.DRAW_FRAMEBUFFER, 0) {
		t.Errorf("got %v; expected only the draw target to be rebound", calls)
	}
	if !containsCall(calls, trace.OpBlitFramebuffer, 0, 0, 320, 240, 0, 0, 640, 480,
		glenum.COLOR_BUFFER_BIT|glenum.DEPTH_BUFFER_BIT, glenum.NEAREST) {
		t.Errorf("got %v; expected a color and depth blit", trace.Filter(calls, trace.OpBlitFramebuffer))
	}
	if last := calls[len(calls)-1]; !last.Is(trace.OpBindFramebuffer, glenum.FRAMEBUFFER, 0) {
		t.Errorf("got %s; expected the default framebuffer to be rebound", last)
	}
}

func TestDeleteFrameBuffer(t *testing.T) {
	r, rec := newTestRenderer(t, "gl33")
	fb := newFrameBuffer(16, 16, 1)
	if err := r.SetFrameBuffer(fb); err != nil {
		t.Fatal(err)
	}

	r.DeleteFrameBuffer(fb)
	r.DeleteFrameBuffer(fb)
	if rec.Count(trace.OpDeleteRenderbuffer) != 2 || rec.Count(trace.OpDeleteFramebuffer) != 1 {
		t.Errorf("got %d renderbuffer and %d framebuffer deletions; expected 2 and 1",
			rec.Count(trace.OpDeleteRenderbuffer), rec.Count(trace.OpDeleteFramebuffer))
	}
	if fb.Allocated() || fb.DepthBuffer().Allocated() {
		t.Errorf("deleted framebuffer should be unallocated")
	}
	if r.fb != nil {
		t.Errorf("deleted framebuffer is still current")
	}
}

func TestFrameBufferAfterInvalidate(t *testing.T) {
	r, rec := newTestRenderer(t, "gl33")
	fb := newFrameBuffer(64, 32, 1)
	if err := r.SetFrameBuffer(fb); err != nil {
		t.Fatal(err)
	}

	r.InvalidateState()
	m := rec.Mark()
	if err := r.SetFrameBuffer(fb); err != nil {
		t.Fatal(err)
	}
	calls := rec.CallsSince(m)
	if !containsCall(calls, trace.OpBindFramebuffer, glenum.FRAMEBUFFER, fb.GLName()) {
		t.Errorf("got %v; expected the framebuffer to be bound again", calls)
	}
	if !containsCall(calls, trace.OpViewport, 0, 0, 64, 32) {
		t.Errorf("got %v; expected the viewport to be reset", calls)
	}

	// And now it's known again.
	m = rec.Mark()
	if err := r.SetFrameBuffer(fb); err != nil {
		t.Fatal(err)
	}
	if calls := rec.CallsSince(m); len(calls) != 0 {
		t.Errorf("got %v; expected no calls", calls)
	}
}
