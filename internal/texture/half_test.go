package texture

import (
	"math"
	"testing"
)

func TestHalfRoundTripExact(t *testing.T) {
	// Values exactly representable in half precision survive unchanged.
	exact := []float32{0, 1, -1, 0.5, 2, 1024, -0.25, 65504}
	bits := EncodeHalf(exact)
	back := DecodeHalf(bits)
	for i, v := range exact {
		if back[i] != v {
			t.Errorf("half round trip of %v gave %v", v, back[i])
		}
	}
}

func TestHalfPrecisionLoss(t *testing.T) {
	in := []float32{3.14159265}
	out := DecodeHalf(EncodeHalf(in))
	if diff := math.Abs(float64(out[0] - in[0])); diff > 1e-3 {
		t.Errorf("half conversion drifted too far: %v -> %v", in[0], out[0])
	}
}

func TestHalfOverflowSaturates(t *testing.T) {
	out := DecodeHalf(EncodeHalf([]float32{1e10}))
	if !math.IsInf(float64(out[0]), 1) {
		t.Errorf("overflow value decoded to %v, want +Inf", out[0])
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		f        Format
		channels int
		bytes    int
		half     bool
		str      string
	}{
		{R32F, 1, 4, false, "r32f"},
		{R16F, 1, 2, true, "r16f"},
		{RGBA32F, 4, 16, false, "rgba32f"},
		{RGBA16F, 4, 8, true, "rgba16f"},
	}
	for _, tt := range tests {
		if got := tt.f.Channels(); got != tt.channels {
			t.Errorf("%s.Channels() = %d, want %d", tt.f, got, tt.channels)
		}
		if got := tt.f.BytesPerTexel(); got != tt.bytes {
			t.Errorf("%s.BytesPerTexel() = %d, want %d", tt.f, got, tt.bytes)
		}
		if got := tt.f.Half(); got != tt.half {
			t.Errorf("%s.Half() = %v, want %v", tt.f, got, tt.half)
		}
		if got := tt.f.String(); got != tt.str {
			t.Errorf("Format.String() = %q, want %q", got, tt.str)
		}
	}
}

func TestFormatFor(t *testing.T) {
	if FormatFor(false, false) != R32F {
		t.Error("FormatFor(false, false) != R32F")
	}
	if FormatFor(true, false) != RGBA32F {
		t.Error("FormatFor(true, false) != RGBA32F")
	}
	if FormatFor(false, true) != R16F {
		t.Error("FormatFor(false, true) != R16F")
	}
	if FormatFor(true, true) != RGBA16F {
		t.Error("FormatFor(true, true) != RGBA16F")
	}
}
