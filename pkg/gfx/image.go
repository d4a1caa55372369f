// pkg/gfx/image.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gfx

import (
	"fmt"
	"slices"
)

// Format is a portable pixel format.
type Format int

const (
	FormatAlpha8 Format = iota
	FormatLuminance8
	FormatLuminance8Alpha8
	FormatLuminance16F
	FormatLuminance32F
	FormatRGB8
	FormatRGBA8
	FormatBGR8
	FormatBGRA8
	FormatRGB565
	FormatRGB5A1
	FormatRGB16F
	FormatRGB32F
	FormatRGBA16F
	FormatRGBA32F
	FormatRGB111110F
	FormatDepth
	FormatDepth16
	FormatDepth24
	FormatDepth32F
	FormatDepth24Stencil8
	FormatDXT1
	FormatDXT1A
	FormatDXT3
	FormatDXT5
	FormatETC1
	NumFormats
)

type formatInfo struct {
	name       string
	bpp        int
	compressed bool
	depth      bool
	stencil    bool
	float      bool
}

var formats = [...]formatInfo{
	FormatAlpha8:           {name: "Alpha8", bpp: 8},
	FormatLuminance8:       {name: "Luminance8", bpp: 8},
	FormatLuminance8Alpha8: {name: "Luminance8Alpha8", bpp: 16},
	FormatLuminance16F:     {name: "Luminance16F", bpp: 16, float: true},
	FormatLuminance32F:     {name: "Luminance32F", bpp: 32, float: true},
	FormatRGB8:             {name: "RGB8", bpp: 24},
	FormatRGBA8:            {name: "RGBA8", bpp: 32},
	FormatBGR8:             {name: "BGR8", bpp: 24},
	FormatBGRA8:            {name: "BGRA8", bpp: 32},
	FormatRGB565:           {name: "RGB565", bpp: 16},
	FormatRGB5A1:           {name: "RGB5A1", bpp: 16},
	FormatRGB16F:           {name: "RGB16F", bpp: 48, float: true},
	FormatRGB32F:           {name: "RGB32F", bpp: 96, float: true},
	FormatRGBA16F:          {name: "RGBA16F", bpp: 64, float: true},
	FormatRGBA32F:          {name: "RGBA32F", bpp: 128, float: true},
	FormatRGB111110F:       {name: "RGB111110F", bpp: 32, float: true},
	FormatDepth:            {name: "Depth", bpp: 24, depth: true},
	FormatDepth16:          {name: "Depth16", bpp: 16, depth: true},
	FormatDepth24:          {name: "Depth24", bpp: 24, depth: true},
	FormatDepth32F:         {name: "Depth32F", bpp: 32, depth: true, float: true},
	FormatDepth24Stencil8:  {name: "Depth24Stencil8", bpp: 32, depth: true, stencil: true},
	FormatDXT1:             {name: "DXT1", bpp: 4, compressed: true},
	FormatDXT1A:            {name: "DXT1A", bpp: 4, compressed: true},
	FormatDXT3:             {name: "DXT3", bpp: 8, compressed: true},
	FormatDXT5:             {name: "DXT5", bpp: 8, compressed: true},
	FormatETC1:             {name: "ETC1", bpp: 4, compressed: true},
}

func (f Format) valid() bool { return f >= 0 && f < NumFormats }

func (f Format) String() string {
	if !f.valid() {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formats[f].name
}

// BitsPerPixel returns the storage size of a pixel; for block-compressed
// formats it is the average over a block.
func (f Format) BitsPerPixel() int { return formats[f].bpp }
func (f Format) IsCompressed() bool { return formats[f].compressed }
func (f Format) IsDepth() bool      { return formats[f].depth }
func (f Format) IsStencil() bool    { return formats[f].stencil }
func (f Format) IsFloat() bool      { return formats[f].float }

// DataSize returns the number of bytes needed to store a w x h image in
// the format.
func (f Format) DataSize(w, h int) int {
	if f.IsCompressed() {
		// 4x4 blocks
		bw, bh := (w+3)/4, (h+3)/4
		return bw * bh * 16 * f.BitsPerPixel() / 8
	}
	return w * h * f.BitsPerPixel() / 8
}

type ColorSpace int

const (
	ColorSpaceLinear ColorSpace = iota
	ColorSpaceSRGB
)

// Image holds pixel data for one or more slices (the faces of a cube
// map, the layers of an array texture, or the depth slices of a 3D
// texture). Each slice holds all of its mip levels concatenated, with
// MipSizes giving the size in bytes of each level.
type Image struct {
	Handle

	Format       Format
	Width        int
	Height       int
	Depth        int // number of slices for 3D textures; 0 otherwise
	Data         [][]byte
	MipSizes     []int
	Multisamples int
	ColorSpace   ColorSpace

	// NeedGeneratedMips is set when the image is used with a
	// mipmapping minification filter but MipSizes doesn't provide them.
	NeedGeneratedMips bool
	// MipsWereGenerated records that the renderer has generated the mip
	// chain for the current data.
	MipsWereGenerated bool
}

// NewImage returns an image with the given format and size; data gives
// the pixel data for each slice and may be empty for render targets.
func NewImage(format Format, width, height int, data ...[]byte) *Image {
	if !format.valid() {
		panic(fmt.Sprintf("gfx: invalid image format %d", format))
	}
	return &Image{
		Format:       format,
		Width:        width,
		Height:       height,
		Data:         data,
		Multisamples: 1,
	}
}

// SetData replaces the image's data and marks it as needing an upload.
func (img *Image) SetData(data ...[]byte) {
	img.Data = data
	img.MipSizes = nil
	img.MipsWereGenerated = false
	img.SetUpdateNeeded()
}

// SetMipData replaces the image's data with slices that contain mip
// levels of the given sizes.
func (img *Image) SetMipData(sizes []int, data ...[]byte) {
	img.Data = data
	img.MipSizes = slices.Clone(sizes)
	img.MipsWereGenerated = false
	img.SetUpdateNeeded()
}

func (img *Image) HasMipmaps() bool { return len(img.MipSizes) > 1 }

func (img *Image) Slices() int { return len(img.Data) }

// Mip returns the data for the given mip level of the given slice.
func (img *Image) Mip(slice, level int) []byte {
	data := img.Data[slice]
	if len(img.MipSizes) == 0 {
		if level != 0 {
			panic(fmt.Sprintf("gfx: mip level %d requested from image without mipmaps", level))
		}
		return data
	}
	offset := 0
	for _, sz := range img.MipSizes[:level] {
		offset += sz
	}
	return data[offset : offset+img.MipSizes[level]]
}

// MipDimensions returns the size of the given mip level.
func (img *Image) MipDimensions(level int) (int, int) {
	return max(1, img.Width>>level), max(1, img.Height>>level)
}

func (img *Image) String() string {
	return fmt.Sprintf("Image[%s %dx%d slices=%d mips=%d %s]", img.Format, img.Width, img.Height,
		img.Slices(), max(1, len(img.MipSizes)), img.Handle)
}
