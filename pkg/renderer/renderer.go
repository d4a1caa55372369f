// pkg/renderer/renderer.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package renderer translates portable descriptions of render state,
// textures, buffers, shaders, and framebuffers into native calls to a
// device.Device. It tracks the state of the device so that redundant
// calls aren't issued.
//
// A Renderer must only be used from the goroutine that owns the device's
// context.
package renderer

import (
	"fmt"
	"slices"

	"github.com/mmp/glstate/pkg/caps"
	"github.com/mmp/glstate/pkg/device"
	"github.com/mmp/glstate/pkg/device/glenum"
	"github.com/mmp/glstate/pkg/gfx"
	"github.com/mmp/glstate/pkg/log"
	"github.com/mmp/glstate/pkg/util"

	"github.com/go-gl/mathgl/mgl32"
)

type Renderer struct {
	dev  device.Device
	ff   device.FixedFunction // nil on the modern tier
	va   device.VertexArrays  // nil on the legacy tier
	caps *caps.Registry
	cfg  Config
	ctx  *Context
	lg   *log.Logger

	objects *objectManager
	mips    *mipCache

	stats, total Statistics
	history      *util.RingBuffer[Statistics]

	defaultVAO uint32

	shader         *gfx.Shader
	fb             *gfx.FrameBuffer
	mainFBOverride *gfx.FrameBuffer
	viewport       [4]int

	textures    map[uint32]*texState
	attached    map[uint32][]uint32 // program -> attached shader objects
	drawAttribs []boundAttrib

	lightsSet         int
	bindings          gfx.FixedFuncBindings
	world, view, proj mgl32.Mat4
}

// New queries the device's capabilities and returns a Renderer that
// drives it. The tier comes from cfg if it is set and otherwise from
// whether the device provides the fixed-function pipeline.
func New(dev device.Device, cfg Config, lg *log.Logger) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c, err := caps.Load(dev, lg)
	if err != nil {
		return nil, err
	}
	if disabled, _ := cfg.disabledCaps(); len(disabled) > 0 {
		lg.Info("disabling capabilities", "caps", disabled)
		c = c.Without(disabled...)
	}

	r := &Renderer{
		dev:      dev,
		caps:     c,
		cfg:      cfg,
		lg:       lg,
		objects:  newObjectManager(),
		mips:     newMipCache(cfg.MipCacheSize, cfg.mipCacheTTL()),
		history:  util.NewRingBuffer[Statistics](max(1, cfg.StatsHistory)),
		textures: make(map[uint32]*texState),
		attached: make(map[uint32][]uint32),
		bindings: gfx.DefaultFixedFuncBindings(),
		world:    mgl32.Ident4(),
		view:     mgl32.Ident4(),
		proj:     mgl32.Ident4(),
	}

	legacy := c.Has(caps.FixedFunction)
	switch cfg.Tier {
	case TierLegacy:
		if err := c.Require(caps.FixedFunction, "legacy tier"); err != nil {
			return nil, err
		}
	case TierModern:
		if err := c.Require(caps.OpenGL33, "modern tier"); err != nil {
			return nil, err
		}
		legacy = false
	}

	if legacy {
		ff, ok := dev.(device.FixedFunction)
		if !ok {
			return nil, fmt.Errorf("%T: device doesn't provide the fixed-function pipeline", dev)
		}
		r.ff = ff
	} else {
		va, ok := dev.(device.VertexArrays)
		if !ok {
			return nil, fmt.Errorf("%T: device doesn't provide vertex array objects", dev)
		}
		r.va = va
	}

	r.ctx = NewContext(dev, r.ff, r.va, c.Limit(caps.MaxTextureUnits), c.Limit(caps.MaxVertexAttribs))
	r.initialize()

	lg.Info("renderer initialized", "tier", util.Select(legacy, TierLegacy, TierModern),
		"version", c.Version(), "glsl", c.GLSLVersion())
	return r, nil
}

// initialize sets the device state that is fixed for the renderer's
// lifetime.
func (r *Renderer) initialize() {
	r.dev.PixelStorei(glenum.UNPACK_ALIGNMENT, 1)
	r.dev.PixelStorei(glenum.PACK_ALIGNMENT, 1)

	if r.caps.Has(caps.SeamlessCubemap) {
		r.ctx.enable(glenum.TEXTURE_CUBE_MAP_SEAMLESS, true)
	}
	if r.cfg.LinearPipeline {
		if r.caps.Has(caps.Srgb) {
			r.ctx.enable(glenum.FRAMEBUFFER_SRGB, true)
		} else {
			r.lg.Warn("linear pipeline requested but sRGB isn't supported")
		}
	}
	if r.ff != nil {
		r.ff.ShadeModel(glenum.SMOOTH)
	}

	r.lightsSet = r.maxLights()

	if r.va != nil {
		r.defaultVAO = r.va.GenVertexArray()
		r.ctx.bindVertexArray(r.defaultVAO)
	}
}

// InvalidateState forgets everything known about the device's state, so
// that the next operations issue all of their calls. It should be called
// after anything else has used the context.
func (r *Renderer) InvalidateState() {
	r.ctx.Reset()
	r.lightsSet = r.maxLights()
	r.drawAttribs = r.drawAttribs[:0]
	// The device's framebuffer binding is no longer known, so the next
	// SetFrameBuffer must bind even if it's given the same one.
	r.fb = nil

	if r.va != nil {
		if r.defaultVAO == 0 {
			r.defaultVAO = r.va.GenVertexArray()
		}
		r.ctx.bindVertexArray(r.defaultVAO)
	}
}

// Cleanup deletes all of the native objects the renderer created.
func (r *Renderer) Cleanup() {
	r.lg.Info("cleaning up", "objects", r.objects.Len())
	r.deleteAll()
	if r.va != nil && r.defaultVAO != 0 {
		r.va.DeleteVertexArray(r.defaultVAO)
		r.defaultVAO = 0
	}
	r.mips.Purge()
	r.shader, r.fb = nil, nil
}

// OnFrame finishes a frame: native objects of resources that have been
// garbage collected are deleted and the frame's statistics are recorded.
func (r *Renderer) OnFrame() {
	r.deleteUnused()

	r.total.Merge(r.stats)
	r.history.Add(r.stats)
	r.lg.Debug("frame", "stats", r.stats)
	r.stats = Statistics{}
}

func (r *Renderer) Caps() *caps.Registry { return r.caps }

// Statistics returns the statistics for the current frame and for all
// frames so far, not including the current one.
func (r *Renderer) Statistics() (frame, total Statistics) {
	return r.stats, r.total
}

// History returns the statistics of recent frames, oldest first.
func (r *Renderer) History() []Statistics {
	return slices.Collect(r.history.All())
}

// Legacy reports whether the fixed-function code paths are used.
func (r *Renderer) Legacy() bool { return r.ff != nil }
