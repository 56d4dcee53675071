package texture

import (
	"github.com/texel-ml/texel/internal/layout"
	"github.com/texel-ml/texel/internal/parallel"
)

// PackedTexelShape returns the texel grid backing a 2x2-packed surface:
// each texel covers a 2x2 block of the logical frame, so both dimensions
// halve, rounding up when the frame extent is odd.
func PackedTexelShape(ts layout.TexShape) layout.TexShape {
	return layout.TexShape{
		Rows: (ts.Rows + 1) / 2,
		Cols: (ts.Cols + 1) / 2,
	}
}

// EncodePacked lays out a logical rows x cols matrix (row-major in data)
// into RGBA texels. Each texel holds the 2x2 block
//
//	(r, c) (r, c+1) (r+1, c) (r+1, c+1)
//
// in channel order r, g, b, a. Block halves past the matrix edge, and
// positions past len(data), are zero-filled. The returned slice has
// ceil(rows/2) * ceil(cols/2) * 4 channel values.
func EncodePacked(data []float32, rows, cols int, cfg parallel.Config) []float32 {
	texRows := (rows + 1) / 2
	texCols := (cols + 1) / 2
	out := make([]float32, texRows*texCols*4)

	parallel.Range(texRows, cfg, func(start, end int) {
		for tr := start; tr < end; tr++ {
			for tc := 0; tc < texCols; tc++ {
				base := (tr*texCols + tc) * 4
				for dr := 0; dr < 2; dr++ {
					for dc := 0; dc < 2; dc++ {
						r := 2*tr + dr
						c := 2*tc + dc
						if r >= rows || c >= cols {
							continue
						}
						if idx := r*cols + c; idx < len(data) {
							out[base+dr*2+dc] = data[idx]
						}
					}
				}
			}
		}
	})
	return out
}

// DecodePacked inverts EncodePacked, recovering the rows x cols logical
// matrix from a packed texel stream and dropping the block padding.
func DecodePacked(texels []float32, rows, cols int, cfg parallel.Config) []float32 {
	texRows := (rows + 1) / 2
	texCols := (cols + 1) / 2
	out := make([]float32, rows*cols)

	parallel.Range(texRows, cfg, func(start, end int) {
		for tr := start; tr < end; tr++ {
			for tc := 0; tc < texCols; tc++ {
				base := (tr*texCols + tc) * 4
				for dr := 0; dr < 2; dr++ {
					for dc := 0; dc < 2; dc++ {
						r := 2*tr + dr
						c := 2*tc + dc
						if r >= rows || c >= cols {
							continue
						}
						out[r*cols+c] = texels[base+dr*2+dc]
					}
				}
			}
		}
	})
	return out
}

// EncodeUnpacked copies data into a Rows*Cols surface buffer, zero-padding
// the tail when the surface is larger than the data.
func EncodeUnpacked(data []float32, ts layout.TexShape) []float32 {
	out := make([]float32, ts.Area())
	copy(out, data)
	return out
}

// DecodeUnpacked returns the first n values of a surface buffer, dropping
// the padding an oversized surface carries.
func DecodeUnpacked(surface []float32, n int) []float32 {
	out := make([]float32, n)
	copy(out, surface[:n])
	return out
}
