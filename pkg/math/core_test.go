// pkg/math/core_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"
	"testing"
)

func TestPowerOfTwo(t *testing.T) {
	for _, test := range []struct {
		v, next int
		pow2    bool
	}{
		{0, 1, false},
		{1, 1, true},
		{2, 2, true},
		{3, 4, false},
		{100, 128, false},
		{128, 128, true},
		{129, 256, false},
		{1023, 1024, false},
	} {
		if got := NextPowerOfTwo(test.v); got != test.next {
			t.Errorf("NextPowerOfTwo(%d) = %d; expected %d", test.v, got, test.next)
		}
		if got := IsPowerOfTwo(test.v); got != test.pow2 {
			t.Errorf("IsPowerOfTwo(%d) = %v; expected %v", test.v, got, test.pow2)
		}
	}
}

func TestMipLevels(t *testing.T) {
	for _, test := range []struct{ w, h, levels int }{
		{1, 1, 1},
		{2, 2, 2},
		{256, 256, 9},
		{256, 16, 9},
		{100, 100, 7},
	} {
		if got := MipLevels(test.w, test.h); got != test.levels {
			t.Errorf("MipLevels(%d, %d) = %d; expected %d", test.w, test.h, got, test.levels)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Errorf("Clamp gave unexpected results")
	}
	if d := Degrees(gomath.Pi / 2); d < 89.999 || d > 90.001 {
		t.Errorf("got %f; expected 90", d)
	}
}
