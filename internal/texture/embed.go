package texture

import (
	"fmt"

	"github.com/texel-ml/texel/internal/layout"
)

// Embed copies row-major data of shape src into the larger shape dst,
// leaving positions outside src zero. Shapes must have the same rank and
// every dst dimension must be >= the corresponding src dimension. This is
// how packing padding enters the frame: the even-adjusted shape is dst and
// the true logical shape is src.
func Embed(data []float32, src, dst layout.Shape) ([]float32, error) {
	if err := checkEmbed(src, dst); err != nil {
		return nil, err
	}
	out := make([]float32, dst.NumElements())
	forEachRun(src, dst, func(srcOff, dstOff, run int) {
		copy(out[dstOff:dstOff+run], data[srcOff:srcOff+run])
	})
	return out, nil
}

// Extract inverts Embed: it pulls the src-shaped region back out of a
// dst-shaped buffer, discarding the padding.
func Extract(data []float32, src, dst layout.Shape) ([]float32, error) {
	if err := checkEmbed(src, dst); err != nil {
		return nil, err
	}
	out := make([]float32, src.NumElements())
	forEachRun(src, dst, func(srcOff, dstOff, run int) {
		copy(out[srcOff:srcOff+run], data[dstOff:dstOff+run])
	})
	return out, nil
}

func checkEmbed(src, dst layout.Shape) error {
	if len(src) != len(dst) {
		return fmt.Errorf("texture: embed rank mismatch: %v vs %v", src, dst)
	}
	for i := range src {
		if src[i] > dst[i] {
			return fmt.Errorf("texture: embed dimension %d shrinks: %d > %d", i, src[i], dst[i])
		}
	}
	return nil
}

// forEachRun visits every contiguous innermost run of src, yielding the
// row-major offsets of the run in both layouts.
func forEachRun(src, dst layout.Shape, f func(srcOff, dstOff, run int)) {
	if len(src) == 0 {
		f(0, 0, 1)
		return
	}
	run := src[len(src)-1]
	if run == 0 {
		return
	}
	outer := 1
	for _, dim := range src[:len(src)-1] {
		outer *= dim
	}
	dstStrides := dst.ComputeStrides()

	for i := 0; i < outer; i++ {
		rem := i
		dstOff := 0
		for d := len(src) - 2; d >= 0; d-- {
			idx := rem % src[d]
			rem /= src[d]
			dstOff += idx * dstStrides[d]
		}
		f(i*run, dstOff, run)
	}
}
