// pkg/renderer/stats.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"fmt"
	"log/slog"
)

// Statistics encapsulates assorted statistics from rendering. The
// renderer keeps one for the current frame, one for all frames so far, and
// a short history of recent frames.
type Statistics struct {
	ShadersCreated, ShadersDeleted           int
	TexturesCreated, TexturesDeleted         int
	BuffersCreated, BuffersDeleted           int
	FrameBuffersCreated, FrameBuffersDeleted int

	ShaderSwitches      int
	TextureSwitches     int
	FrameBufferSwitches int
	UniformSets         int

	DrawCalls int
	Triangles int
	Vertices  int

	TextureBytes int
	BufferBytes  int
}

func (s *Statistics) String() string {
	return fmt.Sprintf("%d draw calls: %d tris, %d verts; switches: %d shader, %d texture, %d framebuffer; "+
		"%d uniforms; uploaded %.2f MB textures, %.2f MB buffers; created %d/%d/%d/%d, deleted %d/%d/%d/%d "+
		"shaders/textures/buffers/framebuffers",
		s.DrawCalls, s.Triangles, s.Vertices, s.ShaderSwitches, s.TextureSwitches, s.FrameBufferSwitches,
		s.UniformSets, float32(s.TextureBytes)/(1024*1024), float32(s.BufferBytes)/(1024*1024),
		s.ShadersCreated, s.TexturesCreated, s.BuffersCreated, s.FrameBuffersCreated,
		s.ShadersDeleted, s.TexturesDeleted, s.BuffersDeleted, s.FrameBuffersDeleted)
}

func (s *Statistics) Merge(o Statistics) {
	s.ShadersCreated += o.ShadersCreated
	s.ShadersDeleted += o.ShadersDeleted
	s.TexturesCreated += o.TexturesCreated
	s.TexturesDeleted += o.TexturesDeleted
	s.BuffersCreated += o.BuffersCreated
	s.BuffersDeleted += o.BuffersDeleted
	s.FrameBuffersCreated += o.FrameBuffersCreated
	s.FrameBuffersDeleted += o.FrameBuffersDeleted
	s.ShaderSwitches += o.ShaderSwitches
	s.TextureSwitches += o.TextureSwitches
	s.FrameBufferSwitches += o.FrameBufferSwitches
	s.UniformSets += o.UniformSets
	s.DrawCalls += o.DrawCalls
	s.Triangles += o.Triangles
	s.Vertices += o.Vertices
	s.TextureBytes += o.TextureBytes
	s.BufferBytes += o.BufferBytes
}

func (s Statistics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("draw_calls", s.DrawCalls),
		slog.Int("tris", s.Triangles),
		slog.Int("vertices", s.Vertices),
		slog.Int("shader_switches", s.ShaderSwitches),
		slog.Int("texture_switches", s.TextureSwitches),
		slog.Int("framebuffer_switches", s.FrameBufferSwitches),
		slog.Int("uniform_sets", s.UniformSets),
		slog.Int("texture_bytes", s.TextureBytes),
		slog.Int("buffer_bytes", s.BufferBytes),
		slog.Group("created",
			slog.Int("shaders", s.ShadersCreated),
			slog.Int("textures", s.TexturesCreated),
			slog.Int("buffers", s.BuffersCreated),
			slog.Int("framebuffers", s.FrameBuffersCreated)),
		slog.Group("deleted",
			slog.Int("shaders", s.ShadersDeleted),
			slog.Int("textures", s.TexturesDeleted),
			slog.Int("buffers", s.BuffersDeleted),
			slog.Int("framebuffers", s.FrameBuffersDeleted)),
	)
}
