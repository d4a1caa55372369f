// pkg/renderer/objects.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"weak"

	"github.com/mmp/glstate/pkg/gfx"
)

type objectKind int

const (
	kindTexture objectKind = iota
	kindBuffer
	kindShader
	kindShaderSource
	kindFrameBuffer
	kindRenderBuffer
)

func (k objectKind) String() string {
	switch k {
	case kindTexture:
		return "texture"
	case kindBuffer:
		return "buffer"
	case kindShader:
		return "program"
	case kindShaderSource:
		return "shader"
	case kindFrameBuffer:
		return "framebuffer"
	case kindRenderBuffer:
		return "renderbuffer"
	default:
		return fmt.Sprintf("objectKind(%d)", int(k))
	}
}

type objectKey struct {
	kind objectKind
	name uint32
}

func compareKeys(a, b objectKey) int {
	return cmp.Or(cmp.Compare(a.kind, b.kind), cmp.Compare(a.name, b.name))
}

// weakOwner returns a function that returns p for as long as it is
// reachable and nil afterward.
func weakOwner[T any, P interface {
	*T
	gfx.NativeObject
}](p P) func() gfx.NativeObject {
	wp := weak.Make((*T)(p))
	return func() gfx.NativeObject {
		if v := wp.Value(); v != nil {
			return P(v)
		}
		return nil
	}
}

// objectManager keeps track of the native objects the renderer has
// allocated and the resources that own them. Owners are referenced weakly,
// so that the native objects of resources that have been garbage
// collected can be found and deleted.
type objectManager struct {
	objects map[objectKey]func() gfx.NativeObject
}

func newObjectManager() *objectManager {
	return &objectManager{objects: make(map[objectKey]func() gfx.NativeObject)}
}

func (m *objectManager) track(kind objectKind, name uint32, owner gfx.NativeObject) {
	var ref func() gfx.NativeObject
	switch o := owner.(type) {
	case *gfx.Image:
		ref = weakOwner(o)
	case *gfx.VertexBuffer:
		ref = weakOwner(o)
	case *gfx.Shader:
		ref = weakOwner(o)
	case *gfx.ShaderSource:
		ref = weakOwner(o)
	case *gfx.FrameBuffer:
		ref = weakOwner(o)
	case *gfx.RenderBuffer:
		ref = weakOwner(o)
	default:
		panic(fmt.Sprintf("renderer: %T: unexpected native object owner", owner))
	}
	m.objects[objectKey{kind: kind, name: name}] = ref
}

func (m *objectManager) forget(kind objectKind, name uint32) {
	delete(m.objects, objectKey{kind: kind, name: name})
}

// keys returns the keys of the tracked objects in a stable order.
func (m *objectManager) keys() []objectKey {
	return slices.SortedFunc(maps.Keys(m.objects), compareKeys)
}

// unused returns the objects whose owners have been collected.
func (m *objectManager) unused() []objectKey {
	return slices.DeleteFunc(m.keys(), func(k objectKey) bool { return m.objects[k]() != nil })
}

func (m *objectManager) live() []gfx.NativeObject {
	var owners []gfx.NativeObject
	for _, k := range m.keys() {
		if o := m.objects[k](); o != nil {
			owners = append(owners, o)
		}
	}
	return owners
}

func (m *objectManager) Len() int { return len(m.objects) }

// deleteNative deletes a native object and removes every reference the
// renderer holds to it.
func (r *Renderer) deleteNative(kind objectKind, name uint32) {
	switch kind {
	case kindTexture:
		r.dev.DeleteTexture(name)
		r.ctx.textureDeleted(name)
		delete(r.textures, name)
		r.stats.TexturesDeleted++
	case kindBuffer:
		r.dev.DeleteBuffer(name)
		r.ctx.bufferDeleted(name)
		r.stats.BuffersDeleted++
	case kindShader:
		r.dev.DeleteProgram(name)
		r.ctx.programDeleted(name)
		delete(r.attached, name)
		r.stats.ShadersDeleted++
	case kindShaderSource:
		r.dev.DeleteShader(name)
		// Deleting an attached shader only flags it for deletion, but
		// the name may be reused once its programs are gone.
		for prog, names := range r.attached {
			r.attached[prog] = slices.DeleteFunc(names, func(n uint32) bool { return n == name })
		}
	case kindFrameBuffer:
		r.dev.DeleteFramebuffer(name)
		r.ctx.framebufferDeleted(name)
		r.stats.FrameBuffersDeleted++
	case kindRenderBuffer:
		r.dev.DeleteRenderbuffer(name)
		r.ctx.renderbufferDeleted(name)
	default:
		panic(fmt.Sprintf("renderer: %s: unhandled object kind", kind))
	}
	r.objects.forget(kind, name)
}

// deleteUnused deletes the native objects of resources that have been
// garbage collected and returns how many were deleted.
func (r *Renderer) deleteUnused() int {
	keys := r.objects.unused()
	for _, k := range keys {
		r.deleteNative(k.kind, k.name)
	}
	if len(keys) > 0 {
		r.lg.Debugf("deleted %d native objects of collected resources", len(keys))
	}
	return len(keys)
}

// resetOwner returns a resource to the unallocated state so that it is
// recreated the next time it's used.
func resetOwner(o gfx.NativeObject) {
	o.NativeHandle().ResetID()
	switch o := o.(type) {
	case *gfx.Shader:
		o.ResetLocations()
	case *gfx.VertexBuffer:
		o.UploadedSize = 0
	case *gfx.Image:
		o.MipsWereGenerated = false
	}
}

// ResetGLObjects marks every resource with a native object as
// unallocated, without deleting the native objects; it is used after the
// context has been lost and its objects are gone. Device state is
// invalidated as well.
func (r *Renderer) ResetGLObjects() {
	owners := r.objects.live()
	for _, o := range owners {
		resetOwner(o)
	}
	r.lg.Infof("reset %d resources", len(owners))

	r.objects = newObjectManager()
	clear(r.textures)
	clear(r.attached)
	r.shader = nil
	r.fb = nil
	r.defaultVAO = 0
	r.InvalidateState()
}

// deleteAll deletes every native object the renderer has allocated and
// resets the resources that own them.
func (r *Renderer) deleteAll() {
	for _, k := range r.objects.keys() {
		owner := r.objects.objects[k]()
		r.deleteNative(k.kind, k.name)
		if owner != nil {
			resetOwner(owner)
		}
	}
}
