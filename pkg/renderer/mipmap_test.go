// pkg/renderer/mipmap_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"testing"
	"time"

	"github.com/mmp/glstate/pkg/gfx"
)

func TestByteChannels(t *testing.T) {
	for _, test := range []struct {
		f gfx.Format
		n int
	}{
		{gfx.FormatAlpha8, 1},
		{gfx.FormatLuminance8Alpha8, 2},
		{gfx.FormatBGR8, 3},
		{gfx.FormatRGBA8, 4},
		{gfx.FormatRGBA16F, 0},
		{gfx.FormatDXT1, 0},
		{gfx.FormatDepth24, 0},
	} {
		if n := byteChannels(test.f); n != test.n {
			t.Errorf("%s: got %d channels; expected %d", test.f, n, test.n)
		}
	}
}

func TestBoxMips(t *testing.T) {
	mips := boxMips([]byte{0, 4, 8, 12}, 1, 2, 2)
	if len(mips) != 2 {
		t.Fatalf("got %d levels; expected 2", len(mips))
	}
	if len(mips[1]) != 1 || mips[1][0] != 6 {
		t.Errorf("got %v; expected the rounded average 6", mips[1])
	}

	// Non-square: 4x2 -> 2x1 -> 1x1.
	rgba := make([]byte, 4*4*2)
	for i := range rgba {
		rgba[i] = 200
	}
	mips = boxMips(rgba, 4, 4, 2)
	if len(mips) != 3 {
		t.Fatalf("got %d levels; expected 3", len(mips))
	}
	for i, expected := range []int{32, 8, 4} {
		if len(mips[i]) != expected {
			t.Errorf("level %d: got %d bytes; expected %d", i, len(mips[i]), expected)
		}
	}
	for _, v := range mips[2] {
		if v != 200 {
			t.Errorf("got %d; expected a constant image to stay constant", v)
		}
	}

	// Odd sizes clamp at the edge.
	mips = boxMips([]byte{10, 10, 10, 10, 10, 10, 10, 10, 250}, 1, 3, 3)
	if len(mips) != 2 || mips[1][0] != 10 {
		t.Errorf("got %v; expected the bottom-right texel to be ignored", mips)
	}
}

func TestResizePixels(t *testing.T) {
	for _, n := range []int{1, 3, 4} {
		src := make([]byte, n*4*4)
		for i := range src {
			src[i] = 100
		}
		dst := resizePixels(src, n, 4, 4, 8, 2)
		if len(dst) != n*8*2 {
			t.Errorf("%d channels: got %d bytes; expected %d", n, len(dst), n*8*2)
			continue
		}
		for _, v := range dst {
			if v < 99 || v > 101 {
				t.Errorf("%d channels: got %d; expected 100", n, v)
				break
			}
		}
	}

	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic for mismatched data length")
		}
	}()
	resizePixels(make([]byte, 10), 4, 4, 4, 2, 2)
}

func TestMipCache(t *testing.T) {
	mc := newMipCache(4, time.Minute)
	data := []byte{0, 4, 8, 12}
	img := gfx.NewImage(gfx.FormatLuminance8, 2, 2, data)

	a, err := mc.Get(img, img.Data, 1, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 1 || len(a[0]) != 2 {
		t.Fatalf("got %v; expected one chain of two levels", a)
	}
	b, err := mc.Get(img, img.Data, 1, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if &a[0][1][0] != &b[0][1][0] {
		t.Errorf("expected the cached chain to be returned")
	}

	// New data means a new version and a miss.
	img.SetData(data)
	c, err := mc.Get(img, img.Data, 1, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if &a[0][1][0] == &c[0][1][0] {
		t.Errorf("expected the chain to be regenerated after SetData")
	}

	mc.Purge()
	d, _ := mc.Get(img, img.Data, 1, 2, 2)
	if &c[0][1][0] == &d[0][1][0] {
		t.Errorf("expected the purged chain to be regenerated")
	}

	cube := gfx.NewImage(gfx.FormatRGBA8, 2, 2, make([]byte, 16), make([]byte, 15))
	if _, err := mc.Get(cube, cube.Data, 4, 2, 2); err == nil {
		t.Errorf("expected an error for a short slice")
	}
}
