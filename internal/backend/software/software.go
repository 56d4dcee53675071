// Package software implements the storage adapter in process memory.
// It backs tests and GPU-less hosts: surfaces are plain slices, shader
// compilation is a syntax-free stub, and limits are configurable so
// boundary conditions can be exercised with tiny values.
package software

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/texel-ml/texel/internal/device"
	"github.com/texel-ml/texel/internal/layout"
	"github.com/texel-ml/texel/internal/storage"
	"github.com/texel-ml/texel/internal/texture"
)

type surface struct {
	texels   layout.TexShape
	format   texture.Format
	channels []float32
}

// Adapter is an in-memory storage.Adapter.
type Adapter struct {
	limits device.Limits

	mu           sync.Mutex
	closed       bool
	textures     map[storage.TextureID]*surface
	buffers      map[storage.BufferID][]byte
	shaders      map[storage.ShaderID]string
	programs     map[storage.ProgramID][]storage.ShaderID
	framebuffers map[storage.FramebufferID]storage.TextureID
	bindings     map[int]storage.TextureID

	nextID uint64
}

var _ storage.Adapter = (*Adapter)(nil)

// New creates a software adapter with default limits.
func New() *Adapter {
	return NewWithLimits(device.DefaultLimits())
}

// NewWithLimits creates a software adapter reporting the given limits.
func NewWithLimits(limits device.Limits) *Adapter {
	return &Adapter{
		limits:       limits,
		textures:     make(map[storage.TextureID]*surface),
		buffers:      make(map[storage.BufferID][]byte),
		shaders:      make(map[storage.ShaderID]string),
		programs:     make(map[storage.ProgramID][]storage.ShaderID),
		framebuffers: make(map[storage.FramebufferID]storage.TextureID),
		bindings:     make(map[int]storage.TextureID),
	}
}

// Limits reports the configured capabilities.
func (a *Adapter) Limits() device.Limits { return a.limits }

func (a *Adapter) newID() uint64 {
	return atomic.AddUint64(&a.nextID, 1)
}

// CreateBuffer allocates a linear byte buffer.
func (a *Adapter) CreateBuffer(size int64) (storage.BufferID, error) {
	if size <= 0 {
		return 0, errors.Wrapf(storage.ErrCreateFailed, "buffer size %d", size)
	}
	if size > a.limits.MaxBufferBytes {
		return 0, errors.Wrapf(storage.ErrCreateFailed, "buffer size %d over limit %d", size, a.limits.MaxBufferBytes)
	}

	id := storage.BufferID(a.newID())
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return 0, errors.Wrap(storage.ErrCreateFailed, "adapter closed")
	}
	a.buffers[id] = make([]byte, size)
	return id, nil
}

// CreateTexture allocates an in-memory surface.
func (a *Adapter) CreateTexture(texels layout.TexShape, format texture.Format) (storage.TextureID, error) {
	if texels.Rows <= 0 || texels.Cols <= 0 {
		return 0, errors.Wrapf(storage.ErrCreateFailed, "texture %s", texels)
	}
	if texels.Rows > a.limits.MaxTextureDim || texels.Cols > a.limits.MaxTextureDim {
		return 0, errors.Wrapf(storage.ErrCreateFailed, "texture %s over max dimension %d",
			texels, a.limits.MaxTextureDim)
	}

	id := storage.TextureID(a.newID())
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return 0, errors.Wrap(storage.ErrCreateFailed, "adapter closed")
	}
	a.textures[id] = &surface{
		texels:   texels,
		format:   format,
		channels: make([]float32, texels.Area()*format.Channels()),
	}
	return id, nil
}

// CreateFramebuffer records a render target for the texture.
func (a *Adapter) CreateFramebuffer(target storage.TextureID) (storage.FramebufferID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.textures[target]; !ok {
		return 0, errors.Wrapf(storage.ErrValidationFailed, "framebuffer target %d does not exist", target)
	}
	id := storage.FramebufferID(a.newID())
	a.framebuffers[id] = target
	return id, nil
}

// BindTexture attaches a texture to a unit for subsequent programs.
func (a *Adapter) BindTexture(id storage.TextureID, unit int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.textures[id]; !ok {
		return errors.Wrapf(storage.ErrValidationFailed, "bind of unknown texture %d", id)
	}
	a.bindings[unit] = id
	return nil
}

// CompileShader accepts any non-empty source. Empty sources fail, giving
// tests a deterministic compile failure.
func (a *Adapter) CompileShader(source string) (storage.ShaderID, error) {
	if strings.TrimSpace(source) == "" {
		return 0, errors.Wrap(storage.ErrCompileFailed, "empty shader source")
	}
	id := storage.ShaderID(a.newID())
	a.mu.Lock()
	defer a.mu.Unlock()
	a.shaders[id] = source
	return id, nil
}

// LinkProgram links compiled shaders. Linking nothing, or an unknown
// shader, fails deterministically.
func (a *Adapter) LinkProgram(shaders ...storage.ShaderID) (storage.ProgramID, error) {
	if len(shaders) == 0 {
		return 0, errors.Wrap(storage.ErrLinkFailed, "no shaders to link")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, sid := range shaders {
		if _, ok := a.shaders[sid]; !ok {
			return 0, errors.Wrapf(storage.ErrLinkFailed, "unknown shader %d", sid)
		}
	}
	id := storage.ProgramID(a.newID())
	a.programs[id] = append([]storage.ShaderID(nil), shaders...)
	return id, nil
}

// WriteTexture stores channel data. Half formats round-trip each value
// through 16-bit precision, matching what real hardware would retain.
func (a *Adapter) WriteTexture(id storage.TextureID, channels []float32) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	surf, ok := a.textures[id]
	if !ok {
		return errors.Wrapf(storage.ErrValidationFailed, "write to unknown texture %d", id)
	}
	if len(channels) != len(surf.channels) {
		return errors.Wrapf(storage.ErrValidationFailed, "write of %d channels to %s surface with %d",
			len(channels), surf.texels, len(surf.channels))
	}

	if surf.format.Half() {
		copy(surf.channels, texture.DecodeHalf(texture.EncodeHalf(channels)))
	} else {
		copy(surf.channels, channels)
	}
	return nil
}

// ReadTexture returns a copy of the surface channels.
func (a *Adapter) ReadTexture(id storage.TextureID) ([]float32, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	surf, ok := a.textures[id]
	if !ok {
		return nil, errors.Wrapf(storage.ErrValidationFailed, "read of unknown texture %d", id)
	}
	out := make([]float32, len(surf.channels))
	copy(out, surf.channels)
	return out, nil
}

// DestroyBuffer releases a buffer.
func (a *Adapter) DestroyBuffer(id storage.BufferID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.buffers[id]; !ok {
		return errors.Wrapf(storage.ErrValidationFailed, "destroy of unknown buffer %d", id)
	}
	delete(a.buffers, id)
	return nil
}

// DestroyTexture releases a surface.
func (a *Adapter) DestroyTexture(id storage.TextureID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.textures[id]; !ok {
		return errors.Wrapf(storage.ErrValidationFailed, "destroy of unknown texture %d", id)
	}
	delete(a.textures, id)
	return nil
}

// DestroyShader releases a compiled shader.
func (a *Adapter) DestroyShader(id storage.ShaderID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.shaders[id]; !ok {
		return errors.Wrapf(storage.ErrValidationFailed, "destroy of unknown shader %d", id)
	}
	delete(a.shaders, id)
	return nil
}

// DestroyProgram releases a linked program.
func (a *Adapter) DestroyProgram(id storage.ProgramID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.programs[id]; !ok {
		return errors.Wrapf(storage.ErrValidationFailed, "destroy of unknown program %d", id)
	}
	delete(a.programs, id)
	return nil
}

// Flush is a no-op: nothing is batched in memory.
func (a *Adapter) Flush() error { return nil }

// Close drops every live resource.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	a.textures = make(map[storage.TextureID]*surface)
	a.buffers = make(map[storage.BufferID][]byte)
	a.shaders = make(map[storage.ShaderID]string)
	a.programs = make(map[storage.ProgramID][]storage.ShaderID)
	a.framebuffers = make(map[storage.FramebufferID]storage.TextureID)
	a.bindings = make(map[int]storage.TextureID)
	return nil
}

// LiveTextures reports how many surfaces currently exist. Test helper.
func (a *Adapter) LiveTextures() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.textures)
}
