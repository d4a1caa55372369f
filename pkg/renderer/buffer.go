// pkg/renderer/buffer.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"github.com/mmp/glstate/pkg/caps"
	"github.com/mmp/glstate/pkg/device/glenum"
	"github.com/mmp/glstate/pkg/gfx"
	"github.com/mmp/glstate/pkg/util"
)

func bufferTarget(vb *gfx.VertexBuffer) uint32 {
	return util.Select[uint32](vb.Type == gfx.BufferIndex, glenum.ELEMENT_ARRAY_BUFFER, glenum.ARRAY_BUFFER)
}

// UpdateBufferData uploads the buffer's data, allocating the native
// buffer first if necessary. The storage is respecified when the data's
// size changes; otherwise the existing storage is overwritten in place.
func (r *Renderer) UpdateBufferData(vb *gfx.VertexBuffer) error {
	if vb.Type == gfx.BufferIndex && vb.Format == gfx.ComponentUnsignedInt {
		if err := r.caps.Require(caps.IntegerIndexBuffer, "32-bit index buffer"); err != nil {
			r.lg.Warnf("%s: %v", vb, err)
			return err
		}
	}

	created := false
	if !vb.Allocated() {
		vb.SetID(r.dev.GenBuffer())
		r.objects.track(kindBuffer, vb.GLName(), vb)
		r.stats.BuffersCreated++
		created = true
	}

	target := bufferTarget(vb)
	r.ctx.bindBuffer(target, vb.GLName())

	data := vb.Data()
	if created || vb.UploadedSize != len(data) {
		r.dev.BufferData(target, data, translateUsage(vb.Usage))
		vb.UploadedSize = len(data)
	} else if len(data) > 0 {
		r.dev.BufferSubData(target, 0, data)
	}
	r.stats.BufferBytes += len(data)

	vb.ClearUpdateNeeded()
	return nil
}

// DeleteBuffer deletes the buffer's native storage. It is a no-op if the
// buffer was never uploaded.
func (r *Renderer) DeleteBuffer(vb *gfx.VertexBuffer) {
	if !vb.Allocated() {
		return
	}
	r.deleteNative(kindBuffer, vb.GLName())
	vb.ResetID()
	vb.UploadedSize = 0
}
