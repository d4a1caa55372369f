// pkg/renderer/framebuffer.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"errors"
	"fmt"

	"github.com/mmp/glstate/pkg/caps"
	"github.com/mmp/glstate/pkg/device/glenum"
	"github.com/mmp/glstate/pkg/gfx"
)

var ErrRenderBufferTooLarge = errors.New("framebuffer exceeds the device's renderbuffer size limit")

// FrameBufferError is returned when a framebuffer is incomplete after its
// attachments have been updated.
type FrameBufferError struct {
	FrameBuffer string
	Status      uint32
}

var frameBufferStatusNames = map[uint32]string{
	glenum.FRAMEBUFFER_UNDEFINED:                     "undefined",
	glenum.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:         "incomplete attachment",
	glenum.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT: "missing attachment",
	glenum.FRAMEBUFFER_INCOMPLETE_DIMENSIONS_EXT:     "attachments have different dimensions",
	glenum.FRAMEBUFFER_INCOMPLETE_FORMATS_EXT:        "attachments have different formats",
	glenum.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:        "incomplete draw buffer",
	glenum.FRAMEBUFFER_INCOMPLETE_READ_BUFFER:        "incomplete read buffer",
	glenum.FRAMEBUFFER_UNSUPPORTED:                   "format combination unsupported",
	glenum.FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:        "inconsistent sample counts",
	glenum.FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS:      "incomplete layer targets",
}

func (e *FrameBufferError) Error() string {
	name, ok := frameBufferStatusNames[e.Status]
	if !ok {
		name = fmt.Sprintf("unknown status 0x%x", e.Status)
	}
	return fmt.Sprintf("%s: framebuffer incomplete: %s", e.FrameBuffer, name)
}

func (r *Renderer) attachmentPoint(slot int) uint32 {
	switch {
	case slot == gfx.SlotDepth:
		return glenum.DEPTH_ATTACHMENT
	case slot == gfx.SlotDepthStencil:
		return glenum.DEPTH_STENCIL_ATTACHMENT
	case slot >= 0 && slot < r.caps.Limit(caps.MaxFBOAttachments):
		return glenum.COLOR_ATTACHMENT0 + uint32(slot)
	default:
		panic(fmt.Sprintf("renderer: invalid framebuffer attachment slot %d", slot))
	}
}

// SetMainFrameBufferOverride sets a framebuffer that is used in place of
// the default framebuffer; SetFrameBuffer(nil) binds it instead. Passing
// nil restores the default framebuffer.
func (r *Renderer) SetMainFrameBufferOverride(fb *gfx.FrameBuffer) {
	r.mainFBOverride = fb
}

// SetFrameBuffer makes fb the render target, first creating or updating
// its attachments if needed. A nil fb selects the default framebuffer (or
// the main framebuffer override, if one is set). The viewport is reset to
// cover fb when it is bound.
func (r *Renderer) SetFrameBuffer(fb *gfx.FrameBuffer) error {
	if fb == nil && r.mainFBOverride != nil {
		fb = r.mainFBOverride
	}
	if r.fb == fb && (fb == nil || !fb.IsUpdateNeeded()) {
		return nil
	}

	r.generateTargetMips(r.fb)

	if fb == nil {
		if r.caps.Has(caps.FrameBuffer) && r.ctx.bindFramebuffer(glenum.FRAMEBUFFER, 0) {
			r.stats.FrameBufferSwitches++
		}
		r.ctx.setDrawBuffer(glenum.BACK)
		r.ctx.setReadBuffer(glenum.BACK)
		r.fb = nil
		return nil
	}

	if err := r.caps.Require(caps.FrameBuffer, fb.String()); err != nil {
		return err
	}
	if len(fb.ColorBuffers()) == 0 && fb.DepthBuffer() == nil {
		panic(fmt.Sprintf("renderer: %s has no color or depth buffers", fb))
	}

	if !fb.Allocated() || fb.IsUpdateNeeded() {
		if err := r.updateFrameBuffer(fb); err != nil {
			r.lg.Warnf("%s: %v", fb, err)
			r.ctx.bindFramebuffer(glenum.FRAMEBUFFER, r.currentFrameBufferName())
			return err
		}
	}

	if r.ctx.bindFramebuffer(glenum.FRAMEBUFFER, fb.GLName()) || r.fb != fb {
		r.stats.FrameBufferSwitches++
		r.SetViewPort(0, 0, fb.Width, fb.Height)
	}

	if err := r.selectDrawBuffers(fb); err != nil {
		return err
	}
	r.fb = fb
	return nil
}

func (r *Renderer) selectDrawBuffers(fb *gfx.FrameBuffer) error {
	colors := fb.ColorBuffers()
	switch {
	case len(colors) == 0:
		r.ctx.setDrawBuffer(glenum.NONE)
		r.ctx.setReadBuffer(glenum.NONE)

	case fb.MultiTarget:
		if err := r.caps.Require(caps.FrameBufferMRT, fb.String()); err != nil {
			return err
		}
		if limit := r.caps.Limit(caps.MaxMRTAttachments); len(colors) > limit {
			return fmt.Errorf("%s: %d render targets; device supports %d", fb, len(colors), limit)
		}
		bufs := make([]uint32, len(colors))
		for i, rb := range colors {
			bufs[i] = r.attachmentPoint(rb.Slot)
		}
		r.ctx.setDrawBuffers(bufs)

	default:
		rb := fb.ColorBuffer(fb.TargetIndex)
		if rb == nil {
			panic(fmt.Sprintf("renderer: %s: no color buffer %d", fb, fb.TargetIndex))
		}
		r.ctx.setDrawBuffer(r.attachmentPoint(rb.Slot))
	}
	return nil
}

// generateTargetMips regenerates the mip levels of fb's color textures
// that are sampled with mipmapping filters, since rendering only updated
// their base level.
func (r *Renderer) generateTargetMips(fb *gfx.FrameBuffer) {
	if fb == nil {
		return
	}
	for _, rb := range fb.ColorBuffers() {
		tex := rb.Texture
		if tex == nil || !tex.MinFilter.UsesMipMaps() || !tex.Image.Allocated() {
			continue
		}
		target := translateTextureType(tex.Type, tex.Image.Multisamples)
		r.ctx.bindTexture(0, target, tex.Image.GLName())
		r.ctx.setActiveUnit(0)
		r.dev.GenerateMipmap(target)
	}
}

// updateFrameBuffer allocates the framebuffer if needed and brings all
// of its attachments up to date.
func (r *Renderer) updateFrameBuffer(fb *gfx.FrameBuffer) error {
	if limit := r.caps.Limit(caps.MaxRenderBufferSize); fb.Width > limit || fb.Height > limit {
		return fmt.Errorf("%dx%d; limit %d: %w", fb.Width, fb.Height, limit, ErrRenderBufferTooLarge)
	}

	if !fb.Allocated() {
		fb.SetID(r.dev.GenFramebuffer())
		r.objects.track(kindFrameBuffer, fb.GLName(), fb)
		r.stats.FrameBuffersCreated++
	}
	r.ctx.bindFramebuffer(glenum.FRAMEBUFFER, fb.GLName())

	if rb := fb.DepthBuffer(); rb != nil {
		if err := r.updateAttachment(fb, rb); err != nil {
			return err
		}
	}
	for _, rb := range fb.ColorBuffers() {
		if err := r.updateAttachment(fb, rb); err != nil {
			return err
		}
	}

	if status := r.dev.CheckFramebufferStatus(glenum.FRAMEBUFFER); status != glenum.FRAMEBUFFER_COMPLETE {
		return &FrameBufferError{FrameBuffer: fb.String(), Status: status}
	}
	fb.ClearUpdateNeeded()
	return nil
}

func (r *Renderer) updateAttachment(fb *gfx.FrameBuffer, rb *gfx.RenderBuffer) error {
	if rb.Texture != nil {
		return r.updateRenderTexture(rb)
	}

	nf, err := imageFormat(rb.Format, gfx.ColorSpaceLinear, r.caps)
	if err != nil {
		return err
	}

	if !rb.Allocated() {
		rb.SetID(r.dev.GenRenderbuffer())
		r.objects.track(kindRenderBuffer, rb.GLName(), rb)
	}
	r.ctx.bindRenderbuffer(rb.GLName())

	if fb.Samples > 1 {
		if err := r.caps.Require(caps.FrameBufferMultisample, fb.String()); err != nil {
			return err
		}
		samples := fb.Samples
		if limit := r.caps.Limit(caps.MaxFBOSamples); samples > limit {
			r.lg.Infof("%s: clamping %d samples to device limit %d", fb, samples, limit)
			samples = max(1, limit)
		}
		r.dev.RenderbufferStorageMultisample(int32(samples), nf.internal, int32(fb.Width), int32(fb.Height))
	} else {
		r.dev.RenderbufferStorage(nf.internal, int32(fb.Width), int32(fb.Height))
	}

	r.dev.FramebufferRenderbuffer(glenum.FRAMEBUFFER, r.attachmentPoint(rb.Slot), rb.GLName())
	rb.ClearUpdateNeeded()
	return nil
}

// updateRenderTexture uploads the attachment's texture if needed and
// attaches it to the bound framebuffer.
func (r *Renderer) updateRenderTexture(rb *gfx.RenderBuffer) error {
	tex := rb.Texture
	img := tex.Image
	if !img.Allocated() || img.IsUpdateNeeded() {
		if err := r.SetTexture(0, tex); err != nil {
			return err
		}
	}

	st := r.textures[img.GLName()]
	attachment := r.attachmentPoint(rb.Slot)
	switch {
	case tex.Type == gfx.TextureCubeMap && rb.Face >= 0:
		r.dev.FramebufferTexture2D(glenum.FRAMEBUFFER, attachment,
			glenum.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(rb.Face), img.GLName(), 0)
	case tex.Type == gfx.Texture3D || tex.Type == gfx.TextureArray:
		r.dev.FramebufferTextureLayer(glenum.FRAMEBUFFER, attachment, img.GLName(), 0, int32(max(0, rb.Face)))
	case tex.Type == gfx.Texture2D:
		r.dev.FramebufferTexture2D(glenum.FRAMEBUFFER, attachment, st.target, img.GLName(), 0)
	default:
		panic(fmt.Sprintf("renderer: %s: cube map attachment requires a face", rb))
	}
	rb.ClearUpdateNeeded()
	return nil
}

// ReadFrameBuffer reads the RGBA pixels of the current viewport of fb
// into buf; a nil fb reads from the default framebuffer.
func (r *Renderer) ReadFrameBuffer(fb *gfx.FrameBuffer, buf []byte) error {
	vp := r.viewport
	if fb != nil {
		rb := fb.ColorBuffer(fb.TargetIndex)
		if rb == nil {
			panic(fmt.Sprintf("renderer: %s has no color buffer to read", fb))
		}
		if err := r.SetFrameBuffer(fb); err != nil {
			return err
		}
		r.ctx.setReadBuffer(r.attachmentPoint(rb.Slot))
		vp = r.viewport
	} else if err := r.SetFrameBuffer(nil); err != nil {
		return err
	}

	if n := 4 * vp[2] * vp[3]; len(buf) < n {
		panic(fmt.Sprintf("renderer: %d byte buffer too small for %dx%d RGBA pixels", len(buf), vp[2], vp[3]))
	}
	r.dev.ReadPixels(int32(vp[0]), int32(vp[1]), int32(vp[2]), int32(vp[3]), glenum.RGBA, glenum.UNSIGNED_BYTE, buf)
	return nil
}

// CopyFrameBuffer blits the color (and optionally depth) contents of src
// to dst; nil denotes the default framebuffer, whose extent is taken to
// be the current viewport. The current framebuffer binding is restored
// afterward.
func (r *Renderer) CopyFrameBuffer(src, dst *gfx.FrameBuffer, copyDepth bool) error {
	if err := r.caps.Require(caps.FrameBufferBlit, "CopyFrameBuffer"); err != nil {
		return err
	}

	extent := func(fb *gfx.FrameBuffer) (uint32, int32, int32, error) {
		if fb == nil {
			return 0, int32(r.viewport[2]), int32(r.viewport[3]), nil
		}
		if !fb.Allocated() || fb.IsUpdateNeeded() {
			if err := r.updateFrameBuffer(fb); err != nil {
				r.ctx.bindFramebuffer(glenum.FRAMEBUFFER, r.currentFrameBufferName())
				return 0, 0, 0, err
			}
		}
		return fb.GLName(), int32(fb.Width), int32(fb.Height), nil
	}
	srcName, srcW, srcH, err := extent(src)
	if err != nil {
		return err
	}
	dstName, dstW, dstH, err := extent(dst)
	if err != nil {
		return err
	}

	r.ctx.bindFramebuffer(glenum.READ_FRAMEBUFFER, srcName)
	r.ctx.bindFramebuffer(glenum.DRAW_FRAMEBUFFER, dstName)

	mask := uint32(glenum.COLOR_BUFFER_BIT)
	if copyDepth {
		mask |= glenum.DEPTH_BUFFER_BIT
	}
	r.dev.BlitFramebuffer(0, 0, srcW, srcH, 0, 0, dstW, dstH, mask, glenum.NEAREST)

	r.ctx.bindFramebuffer(glenum.FRAMEBUFFER, r.currentFrameBufferName())
	return nil
}

func (r *Renderer) currentFrameBufferName() uint32 {
	if r.fb == nil {
		return 0
	}
	return r.fb.GLName()
}

// DeleteFrameBuffer deletes the framebuffer and the renderbuffers that
// back its non-texture attachments. Attached textures are not deleted.
func (r *Renderer) DeleteFrameBuffer(fb *gfx.FrameBuffer) {
	if !fb.Allocated() {
		return
	}
	if r.fb == fb {
		r.fb = nil
	}

	rbs := fb.ColorBuffers()
	if d := fb.DepthBuffer(); d != nil {
		rbs = append([]*gfx.RenderBuffer{d}, rbs...)
	}
	for _, rb := range rbs {
		if rb.Texture == nil && rb.Allocated() {
			r.deleteNative(kindRenderBuffer, rb.GLName())
			rb.ResetID()
		}
	}

	r.deleteNative(kindFrameBuffer, fb.GLName())
	fb.ResetID()
}
