// pkg/trace/commandbuffer.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package trace

import (
	"fmt"
	gomath "math"
	"slices"
	"strings"

	"github.com/mmp/glstate/pkg/util"
)

// Op identifies a recorded device call. Each call is stored in the
// command buffer as its Op, the number of argument words that follow,
// the arguments themselves, and then a byte payload: its length in bytes
// followed by the bytes packed four to a word. Integer and boolean
// arguments are stored directly, floats as their bit patterns, and slices
// of numbers are flattened into the arguments. Pixel data, buffer
// contents and strings go in the payload.
type Op uint32

const (
	OpEnable Op = iota
	OpDisable
	OpDepthFunc
	OpDepthMask
	OpColorMask
	OpPolygonMode
	OpPolygonOffset
	OpCullFace
	OpBlendEquationSeparate
	OpBlendFunc
	OpBlendFuncSeparate
	OpStencilOpSeparate
	OpStencilFuncSeparate
	OpViewport
	OpScissor
	OpClearColor
	OpClear
	OpLineWidth
	OpPointSize
	OpGenTexture
	OpDeleteTexture
	OpActiveTexture
	OpBindTexture
	OpTexParameteri
	OpTexParameterf
	OpPixelStorei
	OpTexImage2D
	OpTexImage3D
	OpTexSubImage3D
	OpCompressedTexImage2D
	OpCompressedTexImage3D
	OpTexImage2DMultisample
	OpGenerateMipmap
	OpGenBuffer
	OpDeleteBuffer
	OpBindBuffer
	OpBufferData
	OpBufferSubData
	OpEnableVertexAttribArray
	OpDisableVertexAttribArray
	OpVertexAttribPointer
	OpVertexAttribDivisor
	OpDrawArrays
	OpDrawArraysInstanced
	OpDrawElements
	OpDrawElementsInstanced
	OpDrawRangeElements
	OpCreateShader
	OpShaderSource
	OpCompileShader
	OpDeleteShader
	OpCreateProgram
	OpAttachShader
	OpDetachShader
	OpBindFragDataLocation
	OpLinkProgram
	OpUseProgram
	OpDeleteProgram
	OpGetUniformLocation
	OpGetAttribLocation
	OpUniform1i
	OpUniform1f
	OpUniform1fv
	OpUniform2fv
	OpUniform3fv
	OpUniform4fv
	OpUniform1iv
	OpUniformMatrix3fv
	OpUniformMatrix4fv
	OpGenFramebuffer
	OpDeleteFramebuffer
	OpBindFramebuffer
	OpGenRenderbuffer
	OpDeleteRenderbuffer
	OpBindRenderbuffer
	OpRenderbufferStorage
	OpRenderbufferStorageMultisample
	OpFramebufferTexture2D
	OpFramebufferTextureLayer
	OpFramebufferRenderbuffer
	OpCheckFramebufferStatus
	OpDrawBuffer
	OpDrawBuffers
	OpReadBuffer
	OpBlitFramebuffer
	OpReadPixels
	OpGenVertexArray
	OpBindVertexArray
	OpDeleteVertexArray
	OpMatrixMode
	OpLoadMatrixf
	OpLightfv
	OpLightf
	OpLightModelfv
	OpMaterialfv
	OpMaterialf
	OpColorMaterial
	OpColor4f
	OpAlphaFunc
	OpTexEnvi
	OpShadeModel
	NumOps
)

var opNames = [...]string{
	OpEnable:                         "Enable",
	OpDisable:                        "Disable",
	OpDepthFunc:                      "DepthFunc",
	OpDepthMask:                      "DepthMask",
	OpColorMask:                      "ColorMask",
	OpPolygonMode:                    "PolygonMode",
	OpPolygonOffset:                  "PolygonOffset",
	OpCullFace:                       "CullFace",
	OpBlendEquationSeparate:          "BlendEquationSeparate",
	OpBlendFunc:                      "BlendFunc",
	OpBlendFuncSeparate:              "BlendFuncSeparate",
	OpStencilOpSeparate:              "StencilOpSeparate",
	OpStencilFuncSeparate:            "StencilFuncSeparate",
	OpViewport:                       "Viewport",
	OpScissor:                        "Scissor",
	OpClearColor:                     "ClearColor",
	OpClear:                          "Clear",
	OpLineWidth:                      "LineWidth",
	OpPointSize:                      "PointSize",
	OpGenTexture:                     "GenTexture",
	OpDeleteTexture:                  "DeleteTexture",
	OpActiveTexture:                  "ActiveTexture",
	OpBindTexture:                    "BindTexture",
	OpTexParameteri:                  "TexParameteri",
	OpTexParameterf:                  "TexParameterf",
	OpPixelStorei:                    "PixelStorei",
	OpTexImage2D:                     "TexImage2D",
	OpTexImage3D:                     "TexImage3D",
	OpTexSubImage3D:                  "TexSubImage3D",
	OpCompressedTexImage2D:           "CompressedTexImage2D",
	OpCompressedTexImage3D:           "CompressedTexImage3D",
	OpTexImage2DMultisample:          "TexImage2DMultisample",
	OpGenerateMipmap:                 "GenerateMipmap",
	OpGenBuffer:                      "GenBuffer",
	OpDeleteBuffer:                   "DeleteBuffer",
	OpBindBuffer:                     "BindBuffer",
	OpBufferData:                     "BufferData",
	OpBufferSubData:                  "BufferSubData",
	OpEnableVertexAttribArray:        "EnableVertexAttribArray",
	OpDisableVertexAttribArray:       "DisableVertexAttribArray",
	OpVertexAttribPointer:            "VertexAttribPointer",
	OpVertexAttribDivisor:            "VertexAttribDivisor",
	OpDrawArrays:                     "DrawArrays",
	OpDrawArraysInstanced:            "DrawArraysInstanced",
	OpDrawElements:                   "DrawElements",
	OpDrawElementsInstanced:          "DrawElementsInstanced",
	OpDrawRangeElements:              "DrawRangeElements",
	OpCreateShader:                   "CreateShader",
	OpShaderSource:                   "ShaderSource",
	OpCompileShader:                  "CompileShader",
	OpDeleteShader:                   "DeleteShader",
	OpCreateProgram:                  "CreateProgram",
	OpAttachShader:                   "AttachShader",
	OpDetachShader:                   "DetachShader",
	OpBindFragDataLocation:           "BindFragDataLocation",
	OpLinkProgram:                    "LinkProgram",
	OpUseProgram:                     "UseProgram",
	OpDeleteProgram:                  "DeleteProgram",
	OpGetUniformLocation:             "GetUniformLocation",
	OpGetAttribLocation:              "GetAttribLocation",
	OpUniform1i:                      "Uniform1i",
	OpUniform1f:                      "Uniform1f",
	OpUniform1fv:                     "Uniform1fv",
	OpUniform2fv:                     "Uniform2fv",
	OpUniform3fv:                     "Uniform3fv",
	OpUniform4fv:                     "Uniform4fv",
	OpUniform1iv:                     "Uniform1iv",
	OpUniformMatrix3fv:               "UniformMatrix3fv",
	OpUniformMatrix4fv:               "UniformMatrix4fv",
	OpGenFramebuffer:                 "GenFramebuffer",
	OpDeleteFramebuffer:              "DeleteFramebuffer",
	OpBindFramebuffer:                "BindFramebuffer",
	OpGenRenderbuffer:                "GenRenderbuffer",
	OpDeleteRenderbuffer:             "DeleteRenderbuffer",
	OpBindRenderbuffer:               "BindRenderbuffer",
	OpRenderbufferStorage:            "RenderbufferStorage",
	OpRenderbufferStorageMultisample: "RenderbufferStorageMultisample",
	OpFramebufferTexture2D:           "FramebufferTexture2D",
	OpFramebufferTextureLayer:        "FramebufferTextureLayer",
	OpFramebufferRenderbuffer:        "FramebufferRenderbuffer",
	OpCheckFramebufferStatus:         "CheckFramebufferStatus",
	OpDrawBuffer:                     "DrawBuffer",
	OpDrawBuffers:                    "DrawBuffers",
	OpReadBuffer:                     "ReadBuffer",
	OpBlitFramebuffer:                "BlitFramebuffer",
	OpReadPixels:                     "ReadPixels",
	OpGenVertexArray:                 "GenVertexArray",
	OpBindVertexArray:                "BindVertexArray",
	OpDeleteVertexArray:              "DeleteVertexArray",
	OpMatrixMode:                     "MatrixMode",
	OpLoadMatrixf:                    "LoadMatrixf",
	OpLightfv:                        "Lightfv",
	OpLightf:                         "Lightf",
	OpLightModelfv:                   "LightModelfv",
	OpMaterialfv:                     "Materialfv",
	OpMaterialf:                      "Materialf",
	OpColorMaterial:                  "ColorMaterial",
	OpColor4f:                        "Color4f",
	OpAlphaFunc:                      "AlphaFunc",
	OpTexEnvi:                        "TexEnvi",
	OpShadeModel:                     "ShadeModel",
}

func (op Op) String() string {
	if op < NumOps {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", uint32(op))
}

// ParseOp returns the Op with the given name, e.g. "DrawArrays".
func ParseOp(name string) (Op, error) {
	if i := slices.Index(opNames[:], name); i != -1 {
		return Op(i), nil
	}
	return 0, fmt.Errorf("%s: unknown op", name)
}

// CommandBuffer holds a sequence of encoded device calls.
type CommandBuffer struct {
	Buf []uint32
}

func (cb *CommandBuffer) Reset() {
	cb.Buf = cb.Buf[:0]
}

// growFor ensures that at least n more values can be added to the end of
// the buffer without going past its capacity.
func (cb *CommandBuffer) growFor(n int) {
	if len(cb.Buf)+n > cap(cb.Buf) {
		sz := 2 * cap(cb.Buf)
		if sz < 1024 {
			sz = 1024
		}
		if sz < len(cb.Buf)+n {
			sz = 2 * (len(cb.Buf) + n)
		}
		b := make([]uint32, len(cb.Buf), sz)
		copy(b, cb.Buf)
		cb.Buf = b
	}
}

// add appends a call to the buffer.
func (cb *CommandBuffer) add(op Op, payload []byte, args ...uint32) {
	cb.growFor(3 + len(args) + (len(payload)+3)/4)
	cb.Buf = append(cb.Buf, uint32(op), uint32(len(args)))
	cb.Buf = append(cb.Buf, args...)
	cb.Buf = append(cb.Buf, uint32(len(payload)))
	for i := 0; i < len(payload); i += 4 {
		var w uint32
		for j := 0; j < 4 && i+j < len(payload); j++ {
			w |= uint32(payload[i+j]) << (8 * j)
		}
		cb.Buf = append(cb.Buf, w)
	}
}

// Decode returns the calls stored from the given word offset onward; the
// offset must be at a call boundary, as returned by Recorder.Mark.
func (cb *CommandBuffer) Decode(start int) []Call {
	var calls []Call
	buf := cb.Buf
	for i := start; i < len(buf); {
		op, n := Op(buf[i]), int(buf[i+1])
		c := Call{Op: op, Args: buf[i+2 : i+2+n]}
		i += 2 + n

		nb := int(buf[i])
		i++
		if nb > 0 {
			c.Data = make([]byte, nb)
			for j := range c.Data {
				c.Data[j] = byte(buf[i+j/4] >> (8 * (j % 4)))
			}
		}
		i += (nb + 3) / 4

		calls = append(calls, c)
	}
	return calls
}

func fbits(f float32) uint32 { return gomath.Float32bits(f) }
func ibits(i int32) uint32   { return uint32(i) }

func bbits(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func floatArgs(prefix []uint32, f ...float32) []uint32 {
	for _, v := range f {
		prefix = append(prefix, fbits(v))
	}
	return prefix
}

// Call is a single decoded device call.
type Call struct {
	Op   Op
	Args []uint32
	Data []byte
}

func (c Call) Uint(i int) uint32   { return c.Args[i] }
func (c Call) Int(i int) int32     { return int32(c.Args[i]) }
func (c Call) Float(i int) float32 { return gomath.Float32frombits(c.Args[i]) }
func (c Call) Bool(i int) bool     { return c.Args[i] != 0 }
func (c Call) Str() string         { return string(c.Data) }

// Floats returns the arguments from index i onward interpreted as floats.
func (c Call) Floats(i int) []float32 {
	f := make([]float32, len(c.Args)-i)
	for j := range f {
		f[j] = c.Float(i + j)
	}
	return f
}

// Is reports whether the call is op and its leading arguments match args.
func (c Call) Is(op Op, args ...uint32) bool {
	if c.Op != op || len(args) > len(c.Args) {
		return false
	}
	for i, a := range args {
		if c.Args[i] != a {
			return false
		}
	}
	return true
}

func (c Call) String() string {
	var sb strings.Builder
	sb.WriteString(c.Op.String())
	sb.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		if a >= 0x100 && a < 0x10000 {
			fmt.Fprintf(&sb, "0x%04x", a)
		} else {
			fmt.Fprintf(&sb, "%d", a)
		}
	}
	if len(c.Data) > 0 {
		if len(c.Args) > 0 {
			sb.WriteString(", ")
		}
		if isText(c.Data) {
			fmt.Fprintf(&sb, "%q", truncate(string(c.Data), 32))
		} else {
			fmt.Fprintf(&sb, "<%d bytes>", len(c.Data))
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

func isText(b []byte) bool {
	for _, c := range b {
		if c != '\n' && c != '\t' && (c < 0x20 || c >= 0x7f) {
			return false
		}
	}
	return true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Filter returns the calls whose op is one of ops.
func Filter(calls []Call, ops ...Op) []Call {
	return util.FilterSlice(calls, func(c Call) bool { return slices.Contains(ops, c.Op) })
}
