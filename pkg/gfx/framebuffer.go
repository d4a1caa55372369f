// pkg/gfx/framebuffer.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gfx

import "fmt"

// Attachment slots for RenderBuffers that aren't color attachments.
const (
	SlotDepth        = -100
	SlotDepthStencil = -101
)

// RenderBuffer is one attachment of a FrameBuffer. It is backed either by
// a texture or, if Texture is nil, by a native renderbuffer object whose
// name is stored in the embedded Handle.
type RenderBuffer struct {
	Handle

	Format  Format
	Texture *Texture
	Slot    int
	// Face selects the cube map face or array layer of Texture to render
	// to; -1 if not applicable.
	Face int
}

func (rb *RenderBuffer) String() string {
	if rb.Texture != nil {
		return fmt.Sprintf("RenderBuffer[slot=%d texture %v face=%d]", rb.Slot, rb.Texture.Image, rb.Face)
	}
	return fmt.Sprintf("RenderBuffer[slot=%d %s %s]", rb.Slot, rb.Format, rb.Handle)
}

// FrameBuffer is an offscreen render target with an optional depth
// attachment and zero or more color attachments.
type FrameBuffer struct {
	Handle

	Width, Height int
	Samples       int
	SRGB          bool
	// MultiTarget renders to all color attachments at once; otherwise
	// TargetIndex selects the single color attachment that is drawn to.
	MultiTarget bool
	TargetIndex int

	depth  *RenderBuffer
	colors []*RenderBuffer
}

func NewFrameBuffer(width, height, samples int) *FrameBuffer {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("gfx: %dx%d: invalid framebuffer size", width, height))
	}
	return &FrameBuffer{Width: width, Height: height, Samples: max(1, samples)}
}

func depthSlot(f Format) int {
	if f.IsStencil() {
		return SlotDepthStencil
	}
	return SlotDepth
}

// SetDepthBuffer attaches a depth renderbuffer of the given format.
func (fb *FrameBuffer) SetDepthBuffer(f Format) {
	if !f.IsDepth() {
		panic(fmt.Sprintf("gfx: %s is not a depth format", f))
	}
	fb.depth = &RenderBuffer{Format: f, Slot: depthSlot(f), Face: -1}
	fb.SetUpdateNeeded()
}

// SetDepthTexture attaches a depth texture.
func (fb *FrameBuffer) SetDepthTexture(t *Texture) {
	f := t.Image.Format
	if !f.IsDepth() {
		panic(fmt.Sprintf("gfx: %s is not a depth format", f))
	}
	fb.checkSize(t.Image)
	fb.depth = &RenderBuffer{Format: f, Texture: t, Slot: depthSlot(f), Face: -1}
	fb.SetUpdateNeeded()
}

// AddColorBuffer adds a color renderbuffer of the given format in the next
// color slot.
func (fb *FrameBuffer) AddColorBuffer(f Format) {
	if f.IsDepth() {
		panic(fmt.Sprintf("gfx: %s is a depth format", f))
	}
	fb.colors = append(fb.colors, &RenderBuffer{Format: f, Slot: len(fb.colors), Face: -1})
	fb.SetUpdateNeeded()
}

// AddColorTexture attaches a texture in the next color slot. face selects
// the cube face or array layer, or is -1.
func (fb *FrameBuffer) AddColorTexture(t *Texture, face int) {
	if t.Image.Format.IsDepth() {
		panic(fmt.Sprintf("gfx: %s is a depth format", t.Image.Format))
	}
	fb.checkSize(t.Image)
	fb.colors = append(fb.colors, &RenderBuffer{Format: t.Image.Format, Texture: t, Slot: len(fb.colors), Face: face})
	fb.SetUpdateNeeded()
}

// SetColorTexture replaces all color attachments with t.
func (fb *FrameBuffer) SetColorTexture(t *Texture) {
	fb.colors = nil
	fb.AddColorTexture(t, -1)
}

func (fb *FrameBuffer) checkSize(img *Image) {
	if img.Width != fb.Width || img.Height != fb.Height {
		panic(fmt.Sprintf("gfx: %dx%d attachment doesn't match %dx%d framebuffer", img.Width, img.Height,
			fb.Width, fb.Height))
	}
}

func (fb *FrameBuffer) DepthBuffer() *RenderBuffer { return fb.depth }

func (fb *FrameBuffer) ColorBuffers() []*RenderBuffer { return fb.colors }

func (fb *FrameBuffer) ColorBuffer(i int) *RenderBuffer {
	if i < 0 || i >= len(fb.colors) {
		return nil
	}
	return fb.colors[i]
}

func (fb *FrameBuffer) String() string {
	return fmt.Sprintf("FrameBuffer[%dx%d samples=%d colors=%d depth=%v %s]", fb.Width, fb.Height, fb.Samples,
		len(fb.colors), fb.depth != nil, fb.Handle)
}
