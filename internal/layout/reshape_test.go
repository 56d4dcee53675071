package layout

import "testing"

func TestIsReshapeFree(t *testing.T) {
	tests := []struct {
		name string
		a, b Shape
		want bool
	}{
		{"identical pairs", Shape{4, 4}, Shape{4, 4}, true},
		{"both leading even", Shape{4, 4}, Shape{2, 8}, true},
		{"odd leading dims", Shape{3, 3}, Shape{3, 4}, false},
		{"odd leading even trailing", Shape{3, 4}, Shape{6, 2}, false},
		{"even leading same trailing", Shape{4, 3}, Shape{2, 3}, true},
		{"even leading odd trailing differ", Shape{4, 3}, Shape{2, 5}, false},
		{"scalar left", Shape{}, Shape{5}, true},
		{"scalar right", Shape{2, 3}, Shape{}, true},
		{"zero dim left", Shape{0, 3}, Shape{3, 3}, true},
		{"zero dim right", Shape{4, 4}, Shape{2, 0}, true},
		{"vector vs row matrix", Shape{5}, Shape{1, 5}, true},
		{"vector vs column matrix", Shape{5}, Shape{5, 1}, true},
		{"vector vs matrix", Shape{6}, Shape{2, 3}, false},
		{"leading dims ignored", Shape{7, 4, 4}, Shape{9, 2, 8}, true},
		{"leading dims ignored odd", Shape{7, 3, 3}, Shape{9, 3, 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsReshapeFree(tt.a, tt.b); got != tt.want {
				t.Errorf("IsReshapeFree(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// IsReshapeFree(L, L) must hold for every shape.
func TestIsReshapeFreeReflexive(t *testing.T) {
	shapes := []Shape{{}, {1}, {5}, {3, 3}, {4, 4}, {0, 3}, {2, 3, 4}, {1, 1, 1}}
	for _, s := range shapes {
		if !IsReshapeFree(s, s) {
			t.Errorf("IsReshapeFree(%v, %v) = false, want true", s, s)
		}
	}
}

func TestIsReshapeFreeSymmetric(t *testing.T) {
	shapes := []Shape{{}, {1}, {5}, {1, 5}, {5, 1}, {3, 3}, {3, 4}, {4, 4},
		{2, 8}, {0, 3}, {2, 3, 4}, {6, 2}}
	for _, a := range shapes {
		for _, b := range shapes {
			if IsReshapeFree(a, b) != IsReshapeFree(b, a) {
				t.Errorf("IsReshapeFree not symmetric for %v, %v", a, b)
			}
		}
	}
}
