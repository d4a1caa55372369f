// pkg/renderer/mipmap.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"fmt"
	"image"
	"image/draw"
	"time"
	"weak"

	"github.com/mmp/glstate/pkg/gfx"
	"github.com/mmp/glstate/pkg/math"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/nfnt/resize"
	"golang.org/x/sync/errgroup"
)

// byteChannels returns the number of 8-bit channels in a pixel of the
// given format, or 0 if the format isn't made of 8-bit channels. Only
// such formats can be resized or have mip levels generated on the CPU.
func byteChannels(f gfx.Format) int {
	switch f {
	case gfx.FormatAlpha8, gfx.FormatLuminance8:
		return 1
	case gfx.FormatLuminance8Alpha8:
		return 2
	case gfx.FormatRGB8, gfx.FormatBGR8:
		return 3
	case gfx.FormatRGBA8, gfx.FormatBGRA8:
		return 4
	default:
		return 0
	}
}

// resizePixels resamples w x h pixels with n 8-bit channels to nw x nh.
// The channels are carried through an NRGBA image: single channel data
// in red, with the second channel of two channel data in alpha.
func resizePixels(data []byte, n, w, h, nw, nh int) []byte {
	if len(data) != n*w*h {
		panic(fmt.Sprintf("renderer: %d bytes provided for %dx%d image with %d channels", len(data), w, h, n))
	}

	src := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range w * h {
		p, s := src.Pix[4*i:4*i+4], data[n*i:n*i+n]
		switch n {
		case 1:
			p[0], p[1], p[2], p[3] = s[0], s[0], s[0], 255
		case 2:
			p[0], p[1], p[2], p[3] = s[0], s[0], s[0], s[1]
		case 3:
			p[0], p[1], p[2], p[3] = s[0], s[1], s[2], 255
		case 4:
			copy(p, s)
		}
	}

	resized := resize.Resize(uint(nw), uint(nh), src, resize.Bilinear)
	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.Draw(dst, dst.Bounds(), resized, resized.Bounds().Min, draw.Src)

	out := make([]byte, n*nw*nh)
	for i := range nw * nh {
		p, d := dst.Pix[4*i:4*i+4], out[n*i:n*i+n]
		switch n {
		case 1:
			d[0] = p[0]
		case 2:
			d[0], d[1] = p[0], p[3]
		case 3:
			copy(d, p[:3])
		case 4:
			copy(d, p)
		}
	}
	return out
}

// boxMips returns the full mip chain for the given level 0 pixels; each
// level is computed from the previous one with a 2x2 box filter.
func boxMips(level0 []byte, n, w, h int) [][]byte {
	mips := make([][]byte, 1, max(1, math.MipLevels(w, h)))
	mips[0] = level0
	for w > 1 || h > 1 {
		nw, nh := max(1, w/2), max(1, h/2)
		src := mips[len(mips)-1]
		dst := make([]byte, n*nw*nh)
		for y := range nh {
			y0, y1 := min(2*y, h-1), min(2*y+1, h-1)
			for x := range nw {
				x0, x1 := min(2*x, w-1), min(2*x+1, w-1)
				for c := range n {
					sum := int(src[n*(y0*w+x0)+c]) + int(src[n*(y0*w+x1)+c]) +
						int(src[n*(y1*w+x0)+c]) + int(src[n*(y1*w+x1)+c])
					dst[n*(y*nw+x)+c] = byte((sum + 2) / 4)
				}
			}
		}
		mips = append(mips, dst)
		w, h = nw, nh
	}
	return mips
}

type mipKey struct {
	img           weak.Pointer[gfx.Image]
	version       uint64
	width, height int
}

// mipCache holds CPU-generated mip chains so that they don't need to be
// recomputed when an image is uploaded again without having changed, as
// happens after the context is lost. Entries refer to their images
// weakly.
type mipCache struct {
	lru *expirable.LRU[mipKey, [][][]byte]
}

func newMipCache(size int, ttl time.Duration) *mipCache {
	return &mipCache{lru: expirable.NewLRU[mipKey, [][][]byte](max(1, size), nil, ttl)}
}

// Get returns the mip chain of each slice of the image. The slices' base
// levels must be w x h pixels with n channels; the chains are generated
// in parallel.
func (mc *mipCache) Get(img *gfx.Image, base [][]byte, n, w, h int) ([][][]byte, error) {
	key := mipKey{img: weak.Make(img), version: img.Version(), width: w, height: h}
	if m, ok := mc.lru.Get(key); ok {
		return m, nil
	}

	chains := make([][][]byte, len(base))
	var eg errgroup.Group
	for i, b := range base {
		eg.Go(func() error {
			if len(b) != n*w*h {
				return fmt.Errorf("slice %d: %d bytes provided for %dx%d image with %d channels", i, len(b), w, h, n)
			}
			chains[i] = boxMips(b, n, w, h)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	mc.lru.Add(key, chains)
	return chains, nil
}

func (mc *mipCache) Purge() { mc.lru.Purge() }
