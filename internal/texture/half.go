package texture

import "github.com/x448/float16"

// EncodeHalf converts float32 channel data to IEEE 754 half-precision bits
// for upload into R16F/RGBA16F surfaces. Values outside the half range
// saturate to +/-Inf per the float16 conversion rules.
func EncodeHalf(data []float32) []uint16 {
	out := make([]uint16, len(data))
	for i, v := range data {
		out[i] = float16.Fromfloat32(v).Bits()
	}
	return out
}

// DecodeHalf converts half-precision bits read back from a 16-bit surface
// into float32 channel data.
func DecodeHalf(bits []uint16) []float32 {
	out := make([]float32, len(bits))
	for i, b := range bits {
		out[i] = float16.Frombits(b).Float32()
	}
	return out
}
