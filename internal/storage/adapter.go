// Package storage is the boundary between the pure layout core and a real
// graphics device: it validates planned surfaces against hardware limits,
// allocates and pools textures, and runs the upload/download codecs.
package storage

import (
	"github.com/texel-ml/texel/internal/device"
	"github.com/texel-ml/texel/internal/layout"
	"github.com/texel-ml/texel/internal/texture"
)

// Opaque handles for device resources. An adapter issues them and is the
// only party that can resolve them.
type (
	BufferID      uint64
	TextureID     uint64
	ShaderID      uint64
	ProgramID     uint64
	FramebufferID uint64
)

// Adapter is the capability set the storage layer requires from a graphics
// device. Every operation returns a value or an error from the package
// taxonomy; implementations must not panic across this boundary.
//
// Adapters are the only components that touch device state. The layout core
// never sees this interface.
type Adapter interface {
	// Limits reports the device capabilities, queried once at startup.
	Limits() device.Limits

	CreateBuffer(size int64) (BufferID, error)
	// CreateTexture allocates a texels.Rows x texels.Cols surface of the
	// given format. The dimensions are texel counts, not logical scalars.
	CreateTexture(texels layout.TexShape, format texture.Format) (TextureID, error)
	CreateFramebuffer(target TextureID) (FramebufferID, error)
	BindTexture(id TextureID, unit int) error

	CompileShader(source string) (ShaderID, error)
	LinkProgram(shaders ...ShaderID) (ProgramID, error)

	// WriteTexture uploads one float32 value per channel, row-major over
	// texels. Half-precision formats convert during upload.
	WriteTexture(id TextureID, channels []float32) error
	// ReadTexture downloads the full surface, one float32 per channel.
	ReadTexture(id TextureID) ([]float32, error)

	DestroyBuffer(id BufferID) error
	DestroyTexture(id TextureID) error
	DestroyShader(id ShaderID) error
	DestroyProgram(id ProgramID) error

	// Flush submits any batched device work.
	Flush() error
	// Close releases every live resource. The adapter is unusable after.
	Close() error
}
