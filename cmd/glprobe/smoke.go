// cmd/glprobe/smoke.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/mmp/glstate/pkg/gfx"
	"github.com/mmp/glstate/pkg/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	legacyVertex = `attribute vec3 inPosition;
attribute vec4 inColor;
varying vec4 color;
void main() {
    color = inColor;
    gl_Position = vec4(inPosition, 1.0);
}
`
	legacyFragment = `varying vec4 color;
uniform float intensity;
void main() {
    gl_FragColor = color * intensity;
}
`
	coreVertex = `in vec3 inPosition;
in vec4 inColor;
out vec4 color;
void main() {
    color = inColor;
    gl_Position = vec4(inPosition, 1.0);
}
`
	coreFragment = `in vec4 color;
uniform float intensity;
out vec4 outFragColor;
void main() {
    outFragColor = color * intensity;
}
`
)

// scene holds the resources drawn by the smoke frame.
type scene struct {
	shader *gfx.Shader
	mesh   *gfx.Mesh
	state  gfx.RenderState
}

func newScene(legacy bool) *scene {
	lang, vs, fs := "GLSL330", coreVertex, coreFragment
	if legacy {
		lang, vs, fs = "GLSL120", legacyVertex, legacyFragment
	}
	shader := gfx.NewShader("smoke",
		gfx.NewShaderSource(gfx.StageVertex, "smoke.vert", lang, vs),
		gfx.NewShaderSource(gfx.StageFragment, "smoke.frag", lang, fs))
	shader.SetUniform("intensity", gfx.VarFloat, float32(1))

	pos := gfx.NewVertexBuffer(gfx.BufferPosition, gfx.UsageStatic, 3, gfx.ComponentFloat)
	pos.SetFloats([]float32{-0.8, -0.8, 0, 0.8, -0.8, 0, 0, 0.8, 0})
	color := gfx.NewVertexBuffer(gfx.BufferColor, gfx.UsageStatic, 4, gfx.ComponentFloat)
	color.SetFloats([]float32{1, 0, 0, 1, 0, 1, 0, 1, 0, 0, 1, 1})
	idx := gfx.NewIndexBuffer(gfx.UsageStatic, gfx.ComponentUnsignedShort)
	idx.SetUint16s([]uint16{0, 1, 2})

	mesh := gfx.NewMesh(gfx.ModeTriangles)
	mesh.SetBuffer(pos)
	mesh.SetBuffer(color)
	mesh.SetBuffer(idx)

	state := gfx.NewRenderState()
	state.SetDepthTest(true)
	state.SetCullMode(gfx.CullOff)

	return &scene{shader: shader, mesh: mesh, state: state}
}

// drawFrame renders one frame of the scene into the default framebuffer
// and returns its pixels.
func drawFrame(r *renderer.Renderer, s *scene, width, height int) (*image.NRGBA, error) {
	r.SetViewPort(0, 0, width, height)
	r.SetBackgroundColor(mgl32.Vec4{0.1, 0.1, 0.1, 1})
	r.Clear(true, true, true)

	r.ApplyRenderState(&s.state)
	if err := r.SetShader(s.shader); err != nil {
		return nil, err
	}
	if err := r.RenderMesh(s.mesh, 0, 1, nil); err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if err := r.ReadFrameBuffer(nil, img.Pix); err != nil {
		return nil, err
	}
	flipRows(img)
	r.OnFrame()
	return img, nil
}

// flipRows converts from OpenGL's bottom-up row order.
func flipRows(img *image.NRGBA) {
	h := img.Rect.Dy()
	row := make([]byte, img.Stride)
	for y := range h / 2 {
		a := img.Pix[y*img.Stride : (y+1)*img.Stride]
		b := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, a)
		copy(a, b)
		copy(b, row)
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
