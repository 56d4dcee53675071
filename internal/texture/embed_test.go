package texture

import (
	"testing"

	"github.com/texel-ml/texel/internal/layout"
)

func TestEmbed(t *testing.T) {
	// 2x3 embedded into 2x4: each row gains one zero of padding.
	data := []float32{1, 2, 3, 4, 5, 6}
	out, err := Embed(data, layout.Shape{2, 3}, layout.Shape{2, 4})
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	want := []float32{1, 2, 3, 0, 4, 5, 6, 0}
	if len(out) != len(want) {
		t.Fatalf("length = %d, want %d", len(out), len(want))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestEmbedExtractRoundTrip(t *testing.T) {
	cases := []struct{ src, dst layout.Shape }{
		{layout.Shape{}, layout.Shape{}},
		{layout.Shape{5}, layout.Shape{6}},
		{layout.Shape{3, 3}, layout.Shape{4, 4}},
		{layout.Shape{2, 3, 5}, layout.Shape{2, 4, 6}},
		{layout.Shape{4, 4}, layout.Shape{4, 4}},
	}
	for _, tc := range cases {
		data := sequence(tc.src.NumElements())
		embedded, err := Embed(data, tc.src, tc.dst)
		if err != nil {
			t.Fatalf("Embed(%v, %v) failed: %v", tc.src, tc.dst, err)
		}
		if len(embedded) != tc.dst.NumElements() {
			t.Fatalf("embedded length = %d, want %d", len(embedded), tc.dst.NumElements())
		}
		back, err := Extract(embedded, tc.src, tc.dst)
		if err != nil {
			t.Fatalf("Extract(%v, %v) failed: %v", tc.src, tc.dst, err)
		}
		for i := range data {
			if back[i] != data[i] {
				t.Fatalf("%v->%v: round trip mismatch at %d", tc.src, tc.dst, i)
			}
		}
	}
}

func TestEmbedErrors(t *testing.T) {
	if _, err := Embed(nil, layout.Shape{2, 3}, layout.Shape{6}); err == nil {
		t.Error("rank mismatch should fail")
	}
	if _, err := Embed(nil, layout.Shape{4}, layout.Shape{3}); err == nil {
		t.Error("shrinking dimension should fail")
	}
}

func TestEmbedZeroSize(t *testing.T) {
	out, err := Embed(nil, layout.Shape{0, 3}, layout.Shape{0, 4})
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("length = %d, want 0", len(out))
	}
}
