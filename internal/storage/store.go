package storage

import (
	"fmt"
	"sync/atomic"

	"k8s.io/klog/v2"

	"github.com/texel-ml/texel/internal/device"
	"github.com/texel-ml/texel/internal/layout"
	"github.com/texel-ml/texel/internal/parallel"
	"github.com/texel-ml/texel/internal/texture"
)

// Store keeps tensors on 2D texture surfaces. It plans the physical shape
// through the layout core, encodes through the host codecs, and moves data
// through the adapter. Free reshapes share the underlying surface.
type Store struct {
	adapter Adapter
	alloc   *Allocator
	cfg     device.Config
	par     parallel.Config

	// Half selects 16-bit channel storage. May be toggled between
	// uploads; surfaces remember the format they were created with.
	Half bool
}

// NewStore creates a store over the adapter with the given policy.
func NewStore(adapter Adapter, cfg device.Config) *Store {
	return &Store{
		adapter: adapter,
		alloc:   NewAllocator(adapter),
		cfg:     cfg,
		par:     parallel.DefaultConfig(),
	}
}

// surface is the shared device-side state behind one or more Texture
// handles. The upload-time shapes stay attached so downloads can invert
// the encoding even after free reshapes changed the visible shape.
type surface struct {
	id       TextureID
	texels   layout.TexShape // allocated texel grid
	frame    layout.TexShape // logical frame in scalars; == texels when unpacked
	logical  layout.Shape    // logical shape at upload
	adjusted layout.Shape    // even-adjusted shape; == logical when unpacked
	format   texture.Format
	packed   bool
	refs     int32
}

// Texture is a handle to a stored tensor: a logical shape viewing a shared
// surface. Handles are cheap; the surface is released when the last handle
// is.
type Texture struct {
	store *Store
	surf  *surface
	shape layout.Shape
}

// Shape returns the logical shape this handle views the surface as.
func (t *Texture) Shape() layout.Shape { return t.shape }

// Physical returns the logical frame of the surface in scalar units.
func (t *Texture) Physical() layout.TexShape { return t.surf.frame }

// TexelShape returns the allocated texel grid.
func (t *Texture) TexelShape() layout.TexShape { return t.surf.texels }

// Format returns the texel format of the surface.
func (t *Texture) Format() texture.Format { return t.surf.format }

// ID returns the adapter handle of the underlying surface.
func (t *Texture) ID() TextureID { return t.surf.id }

// Upload stores a tensor. The physical shape comes from the layout core
// under the store's packing policy; the data is encoded host-side and
// written through the adapter.
func (s *Store) Upload(data []float32, shape layout.Shape) (*Texture, error) {
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("storage: %d values for shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}

	frame := layout.TextureShapeOf(shape, s.cfg.Limits.MaxTextureDim, s.cfg.Packed)
	if limit := s.cfg.EffectiveTextureLimit(); frame.Rows > limit || frame.Cols > limit {
		// Only the squarish fallback can get here. The allocator will
		// reject it; the warning records why.
		klog.Warningf("storage: planned frame %s for shape %v exceeds effective limit %d",
			frame, shape, limit)
	}

	surf := &surface{
		frame:   frame,
		logical: shape.Clone(),
		packed:  s.cfg.Packed,
		format:  texture.FormatFor(s.cfg.Packed, s.Half),
		refs:    1,
	}

	var channels []float32
	if s.cfg.Packed {
		surf.adjusted = layout.AdjustForPacking(shape)
		surf.texels = texture.PackedTexelShape(frame)

		embedded, err := texture.Embed(data, shape, surf.adjusted)
		if err != nil {
			return nil, err
		}
		channels = texture.EncodePacked(embedded, frame.Rows, frame.Cols, s.par)
	} else {
		surf.adjusted = surf.logical
		surf.texels = frame
		channels = texture.EncodeUnpacked(data, frame)
	}

	id, err := s.alloc.Alloc(surf.texels, surf.format)
	if err != nil {
		return nil, err
	}
	surf.id = id

	if err := s.adapter.WriteTexture(id, channels); err != nil {
		_ = s.alloc.Free(id, surf.texels, surf.format)
		return nil, err
	}

	return &Texture{store: s, surf: surf, shape: shape.Clone()}, nil
}

// Download reads a tensor back, inverting the upload encoding exactly. The
// result is the flattened data of t.Shape().
func (s *Store) Download(t *Texture) ([]float32, error) {
	if err := s.adapter.Flush(); err != nil {
		return nil, err
	}
	channels, err := s.adapter.ReadTexture(t.surf.id)
	if err != nil {
		return nil, err
	}
	if s.cfg.Debug {
		want := t.surf.texels.Area() * t.surf.format.Channels()
		if len(channels) != want {
			return nil, fmt.Errorf("storage: read %d channels from %s surface, want %d",
				len(channels), t.surf.texels, want)
		}
	}

	if !t.surf.packed {
		return texture.DecodeUnpacked(channels, t.surf.logical.NumElements()), nil
	}

	frame := t.surf.frame
	embedded := texture.DecodePacked(channels, frame.Rows, frame.Cols, s.par)
	return texture.Extract(embedded[:t.surf.adjusted.NumElements()], t.surf.logical, t.surf.adjusted)
}

// Reshape returns a handle viewing the data as a new shape. When the packed
// layouts are compatible the surface is shared and no data moves; otherwise
// the tensor is downloaded, replanned, and re-uploaded.
//
// The original handle stays valid either way and must still be released.
func (s *Store) Reshape(t *Texture, shape layout.Shape) (*Texture, error) {
	if shape.NumElements() != t.shape.NumElements() {
		return nil, fmt.Errorf("storage: cannot reshape %v (%d elements) to %v (%d elements)",
			t.shape, t.shape.NumElements(), shape, shape.NumElements())
	}

	var free bool
	if t.surf.packed {
		free = layout.IsReshapeFree(t.surf.logical, shape)
	} else {
		// Unpacked surfaces hold plain row-major data; the view can
		// change freely as long as the planned surface is the same one.
		planned := layout.TextureShapeOf(shape, s.cfg.Limits.MaxTextureDim, false)
		free = planned.Equal(t.surf.frame)
	}

	if free {
		atomic.AddInt32(&t.surf.refs, 1)
		return &Texture{store: s, surf: t.surf, shape: shape.Clone()}, nil
	}

	klog.V(2).Infof("storage: reshape %v -> %v needs a data shuffle", t.shape, shape)
	data, err := s.Download(t)
	if err != nil {
		return nil, err
	}
	return s.Upload(data, shape)
}

// Release drops one handle. The surface returns to the pool when the last
// handle holding it is released.
func (s *Store) Release(t *Texture) error {
	if atomic.AddInt32(&t.surf.refs, -1) > 0 {
		return nil
	}
	return s.alloc.Free(t.surf.id, t.surf.texels, t.surf.format)
}

// Stats reports the store's memory accounting.
func (s *Store) Stats() MemoryStats {
	return s.alloc.Stats()
}

// Close drains the pool and closes the adapter. Live handles are invalid
// afterwards.
func (s *Store) Close() error {
	if err := s.alloc.Close(); err != nil {
		klog.Errorf("storage: draining texture pool: %v", err)
	}
	return s.adapter.Close()
}
