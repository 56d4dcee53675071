// Package texture defines texel formats and the host-side codecs that
// translate between flattened tensor data and 2D texture surfaces.
package texture

import "fmt"

// Format identifies the texel format of a surface.
type Format int

const (
	// R32F stores one float32 scalar per texel.
	R32F Format = iota
	// R16F stores one half-precision scalar per texel.
	R16F
	// RGBA32F stores four float32 scalars per texel; used by the 2x2
	// packed encoding.
	RGBA32F
	// RGBA16F stores four half-precision scalars per texel.
	RGBA16F
)

// Channels returns the number of scalar channels per texel.
func (f Format) Channels() int {
	switch f {
	case RGBA32F, RGBA16F:
		return 4
	default:
		return 1
	}
}

// BytesPerChannel returns the storage size of a single channel.
func (f Format) BytesPerChannel() int {
	switch f {
	case R16F, RGBA16F:
		return 2
	default:
		return 4
	}
}

// BytesPerTexel returns the storage size of one texel.
func (f Format) BytesPerTexel() int {
	return f.Channels() * f.BytesPerChannel()
}

// Half reports whether the format stores half-precision channels.
func (f Format) Half() bool {
	return f == R16F || f == RGBA16F
}

func (f Format) String() string {
	switch f {
	case R32F:
		return "r32f"
	case R16F:
		return "r16f"
	case RGBA32F:
		return "rgba32f"
	case RGBA16F:
		return "rgba16f"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFor selects the texel format for an encoding policy. Packed
// surfaces need four channels per texel; half selects 16-bit storage.
func FormatFor(packed, half bool) Format {
	switch {
	case packed && half:
		return RGBA16F
	case packed:
		return RGBA32F
	case half:
		return R16F
	default:
		return R32F
	}
}
