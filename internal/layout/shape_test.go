package layout

import "testing"

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1}, // scalar
		{Shape{5}, 5},
		{Shape{2, 3}, 6},
		{Shape{2, 3, 4}, 24},
		{Shape{0, 3}, 0},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("Validate(2,3) returned error: %v", err)
	}
	if err := (Shape{}).Validate(); err != nil {
		t.Errorf("Validate(scalar) returned error: %v", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("Validate(2,0) should fail")
	}
	if err := (Shape{-1, 3}).Validate(); err == nil {
		t.Error("Validate(-1,3) should fail")
	}
}

func TestShapeEqualClone(t *testing.T) {
	s := Shape{2, 3, 4}
	c := s.Clone()
	if !s.Equal(c) {
		t.Errorf("clone %v not equal to original %v", c, s)
	}
	c[0] = 9
	if s[0] != 2 {
		t.Error("mutating clone changed original")
	}
	if s.Equal(Shape{2, 3}) {
		t.Error("shapes of different rank reported equal")
	}
}

func TestShapeComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Errorf("strides = %v, want %v", strides, want)
			break
		}
	}
	if got := (Shape{}).ComputeStrides(); len(got) != 0 {
		t.Errorf("scalar strides = %v, want empty", got)
	}
}

func TestTexShape(t *testing.T) {
	ts := TexShape{Rows: 3, Cols: 4}
	if ts.Area() != 12 {
		t.Errorf("Area() = %d, want 12", ts.Area())
	}
	if !ts.Equal(TexShape{3, 4}) || ts.Equal(TexShape{4, 3}) {
		t.Error("TexShape.Equal misbehaves")
	}
	if ts.String() != "3x4" {
		t.Errorf("String() = %q, want \"3x4\"", ts.String())
	}
}
