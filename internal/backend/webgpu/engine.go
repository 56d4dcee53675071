// Package webgpu implements the storage adapter over WebGPU.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
//
// Surfaces live in linear storage buffers addressed as row-major texel
// grids; compute shaders, not render passes, do the device-side work, so
// a framebuffer here is just a named render-target alias.
package webgpu

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/gogpu/gputypes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/texel-ml/texel/internal/device"
	"github.com/texel-ml/texel/internal/layout"
	"github.com/texel-ml/texel/internal/storage"
	"github.com/texel-ml/texel/internal/texture"
)

// WebGPU baseline limits. go-webgpu does not surface adapter limit
// queries, so the engine reports the guaranteed minimums of the spec.
const (
	baselineMaxTextureDim  = 8192
	baselineMaxBufferBytes = 256 << 20 // 256 MiB
)

type surfaceBuffer struct {
	buffer   *wgpu.Buffer
	texels   layout.TexShape
	format   texture.Format
	byteSize uint64
}

// Engine is the WebGPU-backed storage adapter.
type Engine struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	dev      *wgpu.Device
	queue    *wgpu.Queue

	adapterInfo *wgpu.AdapterInfoGo
	limits      device.Limits

	mu           sync.RWMutex
	textures     map[storage.TextureID]*surfaceBuffer
	buffers      map[storage.BufferID]*wgpu.Buffer
	bufferSizes  map[storage.BufferID]uint64
	shaders      map[storage.ShaderID]*wgpu.ShaderModule
	programs     map[storage.ProgramID]*wgpu.ComputePipeline
	framebuffers map[storage.FramebufferID]storage.TextureID
	bindings     map[int]storage.TextureID
	nextID       uint64

	// Command batching: encoders are accumulated and submitted together
	// to reduce GPU sync overhead. Flush (and every readback) drains.
	pendingCommands []*wgpu.CommandBuffer
	pendingMu       sync.Mutex
}

var _ storage.Adapter = (*Engine)(nil)

// New creates a WebGPU engine.
// Returns an error if WebGPU is not available or initialization fails.
func New() (engine *Engine, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			engine = nil
			err = errors.Wrapf(storage.ErrCreateFailed, "webgpu: native library not available: %v", r)
		}
	}()

	instance, instanceErr := wgpu.CreateInstance(nil)
	if instanceErr != nil {
		return nil, errors.Wrapf(storage.ErrCreateFailed, "webgpu: failed to create instance: %v", instanceErr)
	}
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, errors.Wrapf(storage.ErrCreateFailed, "webgpu: failed to request adapter: %v", adapterErr)
	}

	adapterInfo, _ := adapter.GetInfo()

	dev, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, errors.Wrapf(storage.ErrCreateFailed, "webgpu: failed to request device: %v", deviceErr)
	}

	queue := dev.GetQueue()
	if queue == nil {
		dev.Release()
		adapter.Release()
		instance.Release()
		return nil, errors.Wrap(storage.ErrCreateFailed, "webgpu: failed to get queue")
	}

	e := &Engine{
		instance:    instance,
		adapter:     adapter,
		dev:         dev,
		queue:       queue,
		adapterInfo: adapterInfo,
		limits: device.Limits{
			MaxTextureDim:  baselineMaxTextureDim,
			MaxBufferBytes: baselineMaxBufferBytes,
		},
		textures:     make(map[storage.TextureID]*surfaceBuffer),
		buffers:      make(map[storage.BufferID]*wgpu.Buffer),
		bufferSizes:  make(map[storage.BufferID]uint64),
		shaders:      make(map[storage.ShaderID]*wgpu.ShaderModule),
		programs:     make(map[storage.ProgramID]*wgpu.ComputePipeline),
		framebuffers: make(map[storage.FramebufferID]storage.TextureID),
		bindings:     make(map[int]storage.TextureID),
	}

	klog.V(2).Infof("webgpu: engine on %s %s", adapterInfo.Device, adapterInfo.Vendor)
	return e, nil
}

// Name returns a human-readable adapter description.
func (e *Engine) Name() string {
	if e.adapterInfo != nil {
		return fmt.Sprintf("WebGPU (%s %s)", e.adapterInfo.Device, e.adapterInfo.Vendor)
	}
	return "WebGPU"
}

// Limits reports the device capabilities.
func (e *Engine) Limits() device.Limits { return e.limits }

func (e *Engine) newID() uint64 {
	e.nextID++
	return e.nextID
}

// createGPUBuffer creates a buffer and uploads initial data through the
// mapped-at-creation path. Sizes align to the 4-byte COPY_BUFFER_ALIGNMENT.
func (e *Engine) createGPUBuffer(data []byte, usage gputypes.BufferUsage) (*wgpu.Buffer, uint64) {
	size := uint64(len(data))
	if size < 4 {
		size = 4
	}
	alignedSize := (size + 3) &^ 3

	buffer := e.dev.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             alignedSize,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, alignedSize)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), alignedSize)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer, alignedSize
}

// readGPUBuffer reads data back through a staging buffer, since storage
// buffers cannot be mapped directly.
func (e *Engine) readGPUBuffer(src *wgpu.Buffer, size uint64) ([]byte, error) {
	e.flushPending()

	staging := e.dev.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
		Size:  size,
	})
	defer staging.Release()

	encoder := e.dev.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(src, 0, staging, 0, size)
	cmdBuffer := encoder.Finish(nil)
	e.queue.Submit(cmdBuffer)

	if err := staging.MapAsync(e.dev, wgpu.MapModeRead, 0, size); err != nil {
		return nil, errors.Wrapf(storage.ErrValidationFailed, "webgpu: failed to map staging buffer: %v", err)
	}

	mappedPtr := staging.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, size)
	copy(result, mappedSlice)
	staging.Unmap()

	return result, nil
}

func (e *Engine) flushPending() {
	e.pendingMu.Lock()
	defer e.pendingMu.Unlock()
	if len(e.pendingCommands) == 0 {
		return
	}
	e.queue.Submit(e.pendingCommands...)
	e.pendingCommands = e.pendingCommands[:0]
}

// CreateBuffer allocates a zeroed linear storage buffer.
func (e *Engine) CreateBuffer(size int64) (storage.BufferID, error) {
	if size <= 0 || size > e.limits.MaxBufferBytes {
		return 0, errors.Wrapf(storage.ErrCreateFailed, "webgpu: buffer size %d", size)
	}

	buffer, aligned := e.createGPUBuffer(make([]byte, size),
		gputypes.BufferUsageStorage|gputypes.BufferUsageCopySrc|gputypes.BufferUsageCopyDst)

	e.mu.Lock()
	defer e.mu.Unlock()
	id := storage.BufferID(e.newID())
	e.buffers[id] = buffer
	e.bufferSizes[id] = aligned
	return id, nil
}

// CreateTexture allocates a zeroed surface in a linear storage buffer.
func (e *Engine) CreateTexture(texels layout.TexShape, format texture.Format) (storage.TextureID, error) {
	if texels.Rows <= 0 || texels.Cols <= 0 {
		return 0, errors.Wrapf(storage.ErrCreateFailed, "webgpu: texture %s", texels)
	}
	if texels.Rows > e.limits.MaxTextureDim || texels.Cols > e.limits.MaxTextureDim {
		return 0, errors.Wrapf(storage.ErrCreateFailed, "webgpu: texture %s over max dimension %d",
			texels, e.limits.MaxTextureDim)
	}

	byteSize := texels.Area() * format.BytesPerTexel()
	buffer, aligned := e.createGPUBuffer(make([]byte, byteSize),
		gputypes.BufferUsageStorage|gputypes.BufferUsageCopySrc|gputypes.BufferUsageCopyDst)

	e.mu.Lock()
	defer e.mu.Unlock()
	id := storage.TextureID(e.newID())
	e.textures[id] = &surfaceBuffer{
		buffer:   buffer,
		texels:   texels,
		format:   format,
		byteSize: aligned,
	}
	return id, nil
}

// CreateFramebuffer records a render-target alias for the texture.
func (e *Engine) CreateFramebuffer(target storage.TextureID) (storage.FramebufferID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.textures[target]; !ok {
		return 0, errors.Wrapf(storage.ErrValidationFailed, "webgpu: framebuffer target %d does not exist", target)
	}
	id := storage.FramebufferID(e.newID())
	e.framebuffers[id] = target
	return id, nil
}

// BindTexture attaches a surface to a binding unit for subsequent
// dispatches.
func (e *Engine) BindTexture(id storage.TextureID, unit int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.textures[id]; !ok {
		return errors.Wrapf(storage.ErrValidationFailed, "webgpu: bind of unknown texture %d", id)
	}
	e.bindings[unit] = id
	return nil
}

// CompileShader compiles WGSL source into a shader module.
func (e *Engine) CompileShader(source string) (id storage.ShaderID, err error) {
	if source == "" {
		return 0, errors.Wrap(storage.ErrCompileFailed, "webgpu: empty shader source")
	}
	defer func() {
		if r := recover(); r != nil {
			id = 0
			err = errors.Wrapf(storage.ErrCompileFailed, "webgpu: %v", r)
		}
	}()

	module := e.dev.CreateShaderModuleWGSL(source)
	if module == nil {
		return 0, errors.Wrap(storage.ErrCompileFailed, "webgpu: shader module creation returned nil")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	id = storage.ShaderID(e.newID())
	e.shaders[id] = module
	return id, nil
}

// LinkProgram builds a compute pipeline from a compiled module. WebGPU
// compute programs take exactly one module with a "main" entry point.
func (e *Engine) LinkProgram(shaders ...storage.ShaderID) (id storage.ProgramID, err error) {
	if len(shaders) != 1 {
		return 0, errors.Wrapf(storage.ErrLinkFailed, "webgpu: compute program needs exactly 1 shader, got %d", len(shaders))
	}

	e.mu.RLock()
	module, ok := e.shaders[shaders[0]]
	e.mu.RUnlock()
	if !ok {
		return 0, errors.Wrapf(storage.ErrLinkFailed, "webgpu: unknown shader %d", shaders[0])
	}

	defer func() {
		if r := recover(); r != nil {
			id = 0
			err = errors.Wrapf(storage.ErrLinkFailed, "webgpu: %v", r)
		}
	}()

	// Auto layout (nil) matches the bindings declared in the module.
	pipeline := e.dev.CreateComputePipelineSimple(nil, module, "main")
	if pipeline == nil {
		return 0, errors.Wrap(storage.ErrLinkFailed, "webgpu: pipeline creation returned nil")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	id = storage.ProgramID(e.newID())
	e.programs[id] = pipeline
	return id, nil
}

// WriteTexture uploads channel data, converting to the surface's storage
// precision. The fresh buffer replaces the old one under the same id.
func (e *Engine) WriteTexture(id storage.TextureID, channels []float32) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	surf, ok := e.textures[id]
	if !ok {
		return errors.Wrapf(storage.ErrValidationFailed, "webgpu: write to unknown texture %d", id)
	}
	if want := surf.texels.Area() * surf.format.Channels(); len(channels) != want {
		return errors.Wrapf(storage.ErrValidationFailed, "webgpu: write of %d channels to %s surface, want %d",
			len(channels), surf.texels, want)
	}

	buffer, aligned := e.createGPUBuffer(encodeChannels(channels, surf.format),
		gputypes.BufferUsageStorage|gputypes.BufferUsageCopySrc|gputypes.BufferUsageCopyDst)
	surf.buffer.Release()
	surf.buffer = buffer
	surf.byteSize = aligned
	return nil
}

// ReadTexture downloads the surface and converts back to float32 channels.
func (e *Engine) ReadTexture(id storage.TextureID) ([]float32, error) {
	e.mu.RLock()
	surf, ok := e.textures[id]
	e.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(storage.ErrValidationFailed, "webgpu: read of unknown texture %d", id)
	}

	raw, err := e.readGPUBuffer(surf.buffer, surf.byteSize)
	if err != nil {
		return nil, err
	}
	return decodeChannels(raw, surf.texels.Area()*surf.format.Channels(), surf.format), nil
}

// DestroyBuffer releases a buffer.
func (e *Engine) DestroyBuffer(id storage.BufferID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	buffer, ok := e.buffers[id]
	if !ok {
		return errors.Wrapf(storage.ErrValidationFailed, "webgpu: destroy of unknown buffer %d", id)
	}
	buffer.Release()
	delete(e.buffers, id)
	delete(e.bufferSizes, id)
	return nil
}

// DestroyTexture releases a surface.
func (e *Engine) DestroyTexture(id storage.TextureID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	surf, ok := e.textures[id]
	if !ok {
		return errors.Wrapf(storage.ErrValidationFailed, "webgpu: destroy of unknown texture %d", id)
	}
	surf.buffer.Release()
	delete(e.textures, id)
	return nil
}

// DestroyShader releases a shader module.
func (e *Engine) DestroyShader(id storage.ShaderID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	module, ok := e.shaders[id]
	if !ok {
		return errors.Wrapf(storage.ErrValidationFailed, "webgpu: destroy of unknown shader %d", id)
	}
	module.Release()
	delete(e.shaders, id)
	return nil
}

// DestroyProgram releases a compute pipeline.
func (e *Engine) DestroyProgram(id storage.ProgramID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	pipeline, ok := e.programs[id]
	if !ok {
		return errors.Wrapf(storage.ErrValidationFailed, "webgpu: destroy of unknown program %d", id)
	}
	pipeline.Release()
	delete(e.programs, id)
	return nil
}

// Flush submits all batched command buffers to the GPU queue.
func (e *Engine) Flush() error {
	e.flushPending()
	return nil
}

// Close releases every live resource and the device itself.
func (e *Engine) Close() error {
	e.flushPending()

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, p := range e.programs {
		p.Release()
	}
	e.programs = nil
	for _, s := range e.shaders {
		s.Release()
	}
	e.shaders = nil
	for _, surf := range e.textures {
		surf.buffer.Release()
	}
	e.textures = nil
	for _, b := range e.buffers {
		b.Release()
	}
	e.buffers = nil

	if e.queue != nil {
		e.queue.Release()
		e.queue = nil
	}
	if e.dev != nil {
		e.dev.Release()
		e.dev = nil
	}
	if e.adapter != nil {
		e.adapter.Release()
		e.adapter = nil
	}
	if e.instance != nil {
		e.instance.Release()
		e.instance = nil
	}
	return nil
}

// IsAvailable checks if WebGPU is available on this system.
func IsAvailable() (available bool) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	instance, instanceErr := wgpu.CreateInstance(nil)
	if instanceErr != nil {
		return false
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()

	return true
}
