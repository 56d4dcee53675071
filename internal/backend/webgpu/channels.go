package webgpu

import (
	"encoding/binary"
	"math"

	"github.com/texel-ml/texel/internal/texture"
)

// encodeChannels serializes float32 channel values into the byte layout of
// the surface format. Half formats store 16-bit payloads.
func encodeChannels(channels []float32, format texture.Format) []byte {
	if format.Half() {
		bits := texture.EncodeHalf(channels)
		out := make([]byte, len(bits)*2)
		for i, b := range bits {
			binary.LittleEndian.PutUint16(out[i*2:], b)
		}
		return out
	}

	out := make([]byte, len(channels)*4)
	for i, v := range channels {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

// decodeChannels inverts encodeChannels for n channel values. The raw
// buffer may carry alignment padding past the payload.
func decodeChannels(raw []byte, n int, format texture.Format) []float32 {
	if format.Half() {
		bits := make([]uint16, n)
		for i := range bits {
			bits[i] = binary.LittleEndian.Uint16(raw[i*2:])
		}
		return texture.DecodeHalf(bits)
	}

	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out
}
