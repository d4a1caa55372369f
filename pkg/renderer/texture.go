// pkg/renderer/texture.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"errors"
	"fmt"

	"github.com/mmp/glstate/pkg/caps"
	"github.com/mmp/glstate/pkg/device/glenum"
	"github.com/mmp/glstate/pkg/gfx"
	"github.com/mmp/glstate/pkg/math"
)

var ErrTextureTooLarge = errors.New("texture exceeds the device's size limit")

// texState records what was last uploaded to a native texture and the
// sampler parameters last set on it.
type texState struct {
	target        uint32
	width, height int
	levels        int
	samples       int

	paramsKnown bool
	minFilter   int32
	magFilter   int32
	wrap        [3]int32
	anisotropy  float32
	compare     gfx.ShadowCompareMode
}

func (r *Renderer) textureState(name, target uint32) *texState {
	st, ok := r.textures[name]
	if !ok || st.target != target {
		st = &texState{target: target}
		r.textures[name] = st
	}
	return st
}

// SetTexture binds tex to the given texture unit, first uploading its
// image if it is new or has changed.
func (r *Renderer) SetTexture(unit int, tex *gfx.Texture) error {
	if unit < 0 || unit >= len(r.ctx.textures) {
		panic(fmt.Sprintf("renderer: texture unit %d out of range; device has %d", unit, len(r.ctx.textures)))
	}
	img := tex.Image
	if img == nil {
		panic(fmt.Sprintf("renderer: %s has no image", tex))
	}

	if tex.MinFilter.UsesMipMaps() && !img.HasMipmaps() {
		img.NeedGeneratedMips = true
		if !img.MipsWereGenerated && img.Allocated() {
			img.SetUpdateNeeded()
		}
	}

	if !img.Allocated() || img.IsUpdateNeeded() {
		if err := r.updateTexImageData(img, tex.Type, uint32(unit)); err != nil {
			return err
		}
	}

	st := r.textures[img.GLName()]
	if r.ctx.bindTexture(uint32(unit), st.target, img.GLName()) {
		r.stats.TextureSwitches++
	}
	if st.samples <= 1 {
		r.setupTextureParams(uint32(unit), tex, st)
	}
	return nil
}

// setupTextureParams sets the texture's sampler parameters that differ
// from the ones last set on its image's native texture.
func (r *Renderer) setupTextureParams(unit uint32, tex *gfx.Texture, st *texState) {
	param := func(pname uint32, v int32) {
		// Parameters apply to the texture bound to the active unit.
		r.ctx.setActiveUnit(unit)
		r.dev.TexParameteri(st.target, pname, v)
	}

	haveMips := st.levels > 1 || tex.Image.MipsWereGenerated
	if minFilter := translateMinFilter(tex.MinFilter, haveMips); !st.paramsKnown || st.minFilter != minFilter {
		param(glenum.TEXTURE_MIN_FILTER, minFilter)
		st.minFilter = minFilter
	}
	if magFilter := translateMagFilter(tex.MagFilter); !st.paramsKnown || st.magFilter != magFilter {
		param(glenum.TEXTURE_MAG_FILTER, magFilter)
		st.magFilter = magFilter
	}

	if r.caps.Has(caps.TextureFilterAnisotropic) {
		aniso := float32(tex.Anisotropy)
		if aniso == 0 {
			aniso = float32(r.cfg.DefaultAnisotropy)
		}
		aniso = math.Clamp(aniso, 1, max(1, r.caps.MaxAnisotropy()))
		if !st.paramsKnown || st.anisotropy != aniso {
			r.ctx.setActiveUnit(unit)
			r.dev.TexParameterf(st.target, glenum.TEXTURE_MAX_ANISOTROPY_EXT, aniso)
			st.anisotropy = aniso
		}
	}

	wraps := []struct {
		pname uint32
		mode  gfx.WrapMode
	}{{glenum.TEXTURE_WRAP_S, tex.WrapS}, {glenum.TEXTURE_WRAP_T, tex.WrapT}}
	if tex.Type == gfx.Texture3D || tex.Type == gfx.TextureCubeMap {
		wraps = append(wraps, struct {
			pname uint32
			mode  gfx.WrapMode
		}{glenum.TEXTURE_WRAP_R, tex.WrapR})
	}
	for i, w := range wraps {
		if mode := translateWrap(w.mode); !st.paramsKnown || st.wrap[i] != mode {
			param(w.pname, mode)
			st.wrap[i] = mode
		}
	}

	if !st.paramsKnown || st.compare != tex.ShadowCompare {
		if tex.ShadowCompare == gfx.ShadowCompareOff {
			param(glenum.TEXTURE_COMPARE_MODE, glenum.NONE)
		} else {
			if r.ff != nil {
				param(glenum.DEPTH_TEXTURE_MODE, glenum.INTENSITY)
			}
			param(glenum.TEXTURE_COMPARE_MODE, glenum.COMPARE_REF_TO_TEXTURE)
			param(glenum.TEXTURE_COMPARE_FUNC, translateShadowCompare(tex.ShadowCompare))
		}
		st.compare = tex.ShadowCompare
	}

	st.paramsKnown = true
}

// pyramid is the pixel data to upload for a texture: the mip levels of
// each slice, all of which have the same base size.
type pyramid struct {
	width, height int
	// data is indexed by slice and then level; it is nil when only
	// storage is being allocated.
	data [][][]byte
}

func (p *pyramid) levels() int {
	if len(p.data) == 0 {
		return 1
	}
	return len(p.data[0])
}

func (p *pyramid) dims(level int) (int32, int32) {
	return int32(max(1, p.width>>level)), int32(max(1, p.height>>level))
}

func (p *pyramid) level(slice, level int) []byte {
	if slice >= len(p.data) {
		return nil
	}
	return p.data[slice][level]
}

// colorSpace returns the color space to upload img in; sRGB images are
// only stored as sRGB in the linear pipeline.
func (r *Renderer) colorSpace(img *gfx.Image) gfx.ColorSpace {
	if r.cfg.LinearPipeline {
		return img.ColorSpace
	}
	return gfx.ColorSpaceLinear
}

// updateTexImageData uploads the image's data, allocating the native
// texture first if necessary. The image's format and size are validated
// against the device's capabilities before anything is allocated.
func (r *Renderer) updateTexImageData(img *gfx.Image, typ gfx.TextureType, unit uint32) error {
	nf, err := imageFormat(img.Format, r.colorSpace(img), r.caps)
	if err != nil {
		r.lg.Warnf("%s: %v", img, err)
		return err
	}

	samples, err := r.textureSamples(img, typ)
	if err != nil {
		r.lg.Warnf("%s: %v", img, err)
		return err
	}

	p, generated, err := r.texturePyramid(img, typ, nf, samples)
	if err != nil {
		r.lg.Warnf("%s: %v", img, err)
		return err
	}

	if !img.Allocated() {
		img.SetID(r.dev.GenTexture())
		r.objects.track(kindTexture, img.GLName(), img)
		r.stats.TexturesCreated++
	}

	target := translateTextureType(typ, samples)
	r.ctx.bindTexture(unit, target, img.GLName())
	r.ctx.setActiveUnit(unit)
	st := r.textureState(img.GLName(), target)

	if samples > 1 {
		r.dev.TexImage2DMultisample(target, int32(samples), nf.internal, int32(p.width), int32(p.height), true)
	} else {
		// Mip levels that neither the image nor the CPU provided are
		// generated by the device.
		hwMips := img.NeedGeneratedMips && p.levels() == 1
		switch {
		case hwMips && !r.caps.Has(caps.FrameBuffer):
			r.dev.TexParameteri(target, glenum.GENERATE_MIPMAP, glenum.TRUE)
		case !hwMips:
			r.dev.TexParameteri(target, glenum.TEXTURE_MAX_LEVEL, int32(p.levels()-1))
		}

		r.stats.TextureBytes += r.uploadPyramid(target, typ, nf, p, img.Depth)

		if hwMips && r.caps.Has(caps.FrameBuffer) {
			r.dev.GenerateMipmap(target)
		}
		img.MipsWereGenerated = hwMips || generated
	}

	st.width, st.height = p.width, p.height
	st.levels = p.levels()
	st.samples = samples
	img.ClearUpdateNeeded()
	return nil
}

// textureSamples returns the number of samples to allocate for the
// image, clamped to the device's limit.
func (r *Renderer) textureSamples(img *gfx.Image, typ gfx.TextureType) (int, error) {
	if img.Multisamples <= 1 {
		return 1, nil
	}
	if err := r.caps.Require(caps.TextureMultisample, "multisample texture"); err != nil {
		return 0, err
	}
	if typ != gfx.Texture2D {
		return 0, fmt.Errorf("%s textures can't be multisampled", typ)
	}
	limit := r.caps.Limit(caps.MaxColorTextureSamples)
	if img.Format.IsDepth() {
		limit = r.caps.Limit(caps.MaxDepthTextureSamples)
	}
	if img.Multisamples > limit {
		r.lg.Infof("%s: clamping %d samples to device limit %d", img, img.Multisamples, limit)
		return max(1, limit), nil
	}
	return img.Multisamples, nil
}

// texturePyramid validates the image's size and returns the data to
// upload. Non-power-of-two images are resized up to the next power of
// two if the device requires it, and mip levels are generated on the CPU
// if they are needed but the device can't generate them. The returned
// bool reports whether mip levels were generated.
func (r *Renderer) texturePyramid(img *gfx.Image, typ gfx.TextureType, nf nativeFormat, samples int) (*pyramid, bool, error) {
	switch typ {
	case gfx.TextureCubeMap:
		if n := img.Slices(); n != 0 && n != 6 {
			return nil, false, fmt.Errorf("cube map has %d faces; 6 are required", n)
		}
		if img.Width != img.Height {
			return nil, false, fmt.Errorf("%dx%d cube map faces must be square", img.Width, img.Height)
		}
	case gfx.TextureArray:
		if err := r.caps.Require(caps.TextureArray, "texture array"); err != nil {
			return nil, false, err
		}
		if limit := r.caps.Limit(caps.MaxArrayTextureLayers); img.Slices() > limit {
			return nil, false, fmt.Errorf("%d layers; limit %d: %w", img.Slices(), limit, ErrTextureTooLarge)
		}
	}

	p := &pyramid{width: img.Width, height: img.Height}
	hasData := img.Slices() > 0 && len(img.Data[0]) > 0

	npot := !math.IsPowerOfTwo(img.Width) || !math.IsPowerOfTwo(img.Height)
	resizing := false
	if npot && !r.caps.Has(caps.NonPowerOfTwoTextures) {
		if !hasData || !r.cfg.AllowNPOTResize || byteChannels(img.Format) == 0 || samples > 1 {
			return nil, false, &caps.CapabilityError{Cap: caps.NonPowerOfTwoTextures, Op: img.String()}
		}
		p.width, p.height = math.NextPowerOfTwo(img.Width), math.NextPowerOfTwo(img.Height)
		resizing = true
	}

	limit := r.caps.Limit(caps.MaxTextureSize)
	switch typ {
	case gfx.TextureCubeMap:
		limit = r.caps.Limit(caps.MaxCubeMapSize)
	case gfx.Texture3D:
		limit = r.caps.Limit(caps.Max3DTextureSize)
	}
	if p.width > limit || p.height > limit {
		return nil, false, fmt.Errorf("%dx%d; limit %d: %w", p.width, p.height, limit, ErrTextureTooLarge)
	}

	if !hasData {
		return p, false, nil
	}

	n := byteChannels(img.Format)
	needMips := img.NeedGeneratedMips && !img.HasMipmaps()
	// Resizing discards any provided mip levels, which are then
	// regenerated from the resized image.
	cpuMips := (needMips && !r.caps.Has(caps.FrameBuffer) && r.cfg.AllowCPUMipmaps && n > 0) ||
		(resizing && img.HasMipmaps())

	base := make([][]byte, img.Slices())
	for s := range base {
		base[s] = img.Mip(s, 0)
		if resizing {
			base[s] = resizePixels(base[s], n, img.Width, img.Height, p.width, p.height)
			r.lg.Debugf("%s: resized slice %d to %dx%d", img, s, p.width, p.height)
		}
	}

	switch {
	case cpuMips:
		chains, err := r.mips.Get(img, base, n, p.width, p.height)
		if err != nil {
			return nil, false, err
		}
		p.data = chains
		return p, true, nil
	case resizing:
		p.data = make([][][]byte, len(base))
		for s, b := range base {
			p.data[s] = [][]byte{b}
		}
	default:
		levels := max(1, len(img.MipSizes))
		p.data = make([][][]byte, img.Slices())
		for s := range p.data {
			for l := range levels {
				p.data[s] = append(p.data[s], img.Mip(s, l))
			}
		}
	}
	return p, false, nil
}

// uploadPyramid issues the calls to upload all of the levels of p and
// returns the number of bytes uploaded.
func (r *Renderer) uploadPyramid(target uint32, typ gfx.TextureType, nf nativeFormat, p *pyramid, depth int) int {
	nbytes := 0
	texImage2D := func(target uint32, level int, w, h int32, data []byte) {
		if nf.compressed {
			r.dev.CompressedTexImage2D(target, int32(level), nf.internal, w, h, data)
		} else {
			r.dev.TexImage2D(target, int32(level), int32(nf.internal), w, h, nf.format, nf.xtype, data)
		}
		nbytes += len(data)
	}

	for level := range p.levels() {
		w, h := p.dims(level)
		switch typ {
		case gfx.Texture2D:
			texImage2D(target, level, w, h, p.level(0, level))

		case gfx.TextureCubeMap:
			for face := range 6 {
				texImage2D(glenum.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(face), level, w, h, p.level(face, level))
			}

		case gfx.Texture3D, gfx.TextureArray:
			d := int32(max(1, len(p.data), depth))
			var all []byte
			for s := range p.data {
				all = append(all, p.level(s, level)...)
			}
			nbytes += len(all)

			switch {
			case nf.compressed:
				r.dev.CompressedTexImage3D(target, int32(level), nf.internal, w, h, d, all)
			case typ == gfx.TextureArray && len(p.data) > 0:
				// Allocate the storage and then fill in each layer.
				r.dev.TexImage3D(target, int32(level), int32(nf.internal), w, h, d, nf.format, nf.xtype, nil)
				for s := range p.data {
					r.dev.TexSubImage3D(target, int32(level), 0, 0, int32(s), w, h, 1, nf.format, nf.xtype,
						p.level(s, level))
				}
			default:
				r.dev.TexImage3D(target, int32(level), int32(nf.internal), w, h, d, nf.format, nf.xtype, all)
			}

		default:
			panic(unhandled("texture type", typ))
		}
	}
	return nbytes
}

// DeleteImage deletes the native texture that holds img's data. It is a
// no-op if the image was never uploaded.
func (r *Renderer) DeleteImage(img *gfx.Image) {
	if !img.Allocated() {
		return
	}
	r.deleteNative(kindTexture, img.GLName())
	img.ResetID()
}
