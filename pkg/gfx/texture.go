// pkg/gfx/texture.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gfx

import "fmt"

type TextureType int

const (
	Texture2D TextureType = iota
	Texture3D
	TextureArray
	TextureCubeMap
)

func (t TextureType) String() string {
	return enumString(int(t), "TextureType", []string{"TwoDimensional", "ThreeDimensional",
		"TwoDimensionalArray", "CubeMap"})
}

type MinFilter int

const (
	MinNearestNoMipMaps MinFilter = iota
	MinBilinearNoMipMaps
	MinNearestNearestMipMap
	MinBilinearNearestMipMap
	MinNearestLinearMipMap
	MinTrilinear
)

func (f MinFilter) UsesMipMaps() bool {
	return f != MinNearestNoMipMaps && f != MinBilinearNoMipMaps
}

func (f MinFilter) String() string {
	return enumString(int(f), "MinFilter", []string{"NearestNoMipMaps", "BilinearNoMipMaps",
		"NearestNearestMipMap", "BilinearNearestMipMap", "NearestLinearMipMap", "Trilinear"})
}

type MagFilter int

const (
	MagNearest MagFilter = iota
	MagBilinear
)

func (f MagFilter) String() string {
	return enumString(int(f), "MagFilter", []string{"Nearest", "Bilinear"})
}

type WrapMode int

const (
	WrapRepeat WrapMode = iota
	WrapMirroredRepeat
	WrapEdgeClamp
	WrapBorderClamp
)

func (w WrapMode) String() string {
	return enumString(int(w), "WrapMode", []string{"Repeat", "MirroredRepeat", "EdgeClamp", "BorderClamp"})
}

type ShadowCompareMode int

const (
	ShadowCompareOff ShadowCompareMode = iota
	ShadowCompareLessOrEqual
	ShadowCompareGreaterOrEqual
)

// Texture is a sampling configuration for an Image. Several textures
// may share one Image; the renderer caches the sampler parameters that
// were last set on each native texture.
type Texture struct {
	Name          string
	Type          TextureType
	Image         *Image
	MinFilter     MinFilter
	MagFilter     MagFilter
	WrapS         WrapMode
	WrapT         WrapMode
	WrapR         WrapMode
	Anisotropy    int // 0 uses the renderer's default
	ShadowCompare ShadowCompareMode
}

func newTexture(t TextureType, img *Image) *Texture {
	return &Texture{
		Type:      t,
		Image:     img,
		MinFilter: MinBilinearNoMipMaps,
		MagFilter: MagBilinear,
		WrapS:     WrapEdgeClamp,
		WrapT:     WrapEdgeClamp,
		WrapR:     WrapEdgeClamp,
	}
}

func NewTexture2D(img *Image) *Texture { return newTexture(Texture2D, img) }

// NewTexture3D returns a volume texture; the image's slices are the
// depth slices.
func NewTexture3D(img *Image) *Texture {
	img.Depth = img.Slices()
	return newTexture(Texture3D, img)
}

func NewTextureArray(img *Image) *Texture { return newTexture(TextureArray, img) }

// NewTextureCubeMap returns a cube map texture; img must have six square
// slices in the order +X, -X, +Y, -Y, +Z, -Z.
func NewTextureCubeMap(img *Image) *Texture { return newTexture(TextureCubeMap, img) }

// SetWrap sets the wrap mode for all axes.
func (t *Texture) SetWrap(w WrapMode) {
	t.WrapS, t.WrapT, t.WrapR = w, w, w
}

// SetMinFilter sets the minification filter and notes whether the image
// will need a generated mip chain.
func (t *Texture) SetMinFilter(f MinFilter) {
	t.MinFilter = f
	if f.UsesMipMaps() && t.Image != nil && !t.Image.HasMipmaps() {
		t.Image.NeedGeneratedMips = true
	}
}

func (t *Texture) String() string {
	return fmt.Sprintf("Texture[%q %s min=%s mag=%s %v]", t.Name, t.Type, t.MinFilter, t.MagFilter, t.Image)
}
