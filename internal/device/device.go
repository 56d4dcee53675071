// Package device holds the capability and configuration values threaded
// explicitly through the engine. Nothing in this package is process-wide
// state: callers construct a Config once and pass it into every call.
package device

// Limits describes the hardware capabilities relevant to texture storage.
// They are queried once from an adapter (or chosen by the caller for tests)
// and passed by value from then on.
type Limits struct {
	// MaxTextureDim is the maximum extent of either texture dimension.
	MaxTextureDim int
	// MaxBufferBytes is the maximum size of a single linear buffer.
	MaxBufferBytes int64
}

// DefaultLimits returns conservative limits matching common desktop GPUs.
func DefaultLimits() Limits {
	return Limits{
		MaxTextureDim:  16384,
		MaxBufferBytes: 1 << 30, // 1 GiB
	}
}

// Config carries the per-call policy for planning and storing tensors.
type Config struct {
	// Packed selects the 2x2 packed encoding: four logical scalars per
	// texel, covering a 2x2 block of the trailing two logical axes.
	Packed bool
	// Debug enables extra validation and verbose logging in collaborators.
	Debug bool

	Limits Limits
}

// DefaultConfig returns an unpacked configuration with default limits.
func DefaultConfig() Config {
	return Config{Limits: DefaultLimits()}
}

// EffectiveTextureLimit returns the per-dimension cap in logical units.
// Packing stores a 2x2 block per texel, so each physical dimension covers
// twice as many logical positions.
func (c Config) EffectiveTextureLimit() int {
	if c.Packed {
		return 2 * c.Limits.MaxTextureDim
	}
	return c.Limits.MaxTextureDim
}
