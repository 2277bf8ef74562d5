package raster

import "testing"

func TestNew(t *testing.T) {
	g := New[uint8](4, 3)
	if g.Width != 4 || g.Height != 3 {
		t.Errorf("dimensions: got %dx%d, want 4x3", g.Width, g.Height)
	}
	if len(g.Pix) != 12 {
		t.Errorf("len(Pix): got %d, want 12", len(g.Pix))
	}
	for i, v := range g.Pix {
		if v != 0 {
			t.Fatalf("Pix[%d]: got %d, want 0", i, v)
		}
	}
}

func TestNew_NegativeDimensions(t *testing.T) {
	g := New[int](-2, 5)
	if g.Width != 0 || len(g.Pix) != 0 {
		t.Errorf("negative width: got %dx%d with %d cells", g.Width, g.Height, len(g.Pix))
	}
}

func TestFromRows(t *testing.T) {
	g, err := FromRows([][]int{
		{1, 2, 3},
		{4, 5, 6},
	})
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	if g.Width != 3 || g.Height != 2 {
		t.Fatalf("dimensions: got %dx%d, want 3x2", g.Width, g.Height)
	}

	tests := []struct {
		x, y, want int
	}{
		{0, 0, 1},
		{2, 0, 3},
		{0, 1, 4},
		{2, 1, 6},
	}
	for _, tt := range tests {
		if got := g.At(tt.x, tt.y); got != tt.want {
			t.Errorf("At(%d,%d): got %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestFromRows_Ragged(t *testing.T) {
	_, err := FromRows([][]uint8{
		{1, 2, 3},
		{4, 5},
	})
	if err == nil {
		t.Error("FromRows should reject rows of differing length")
	}
}

func TestFromRows_Copies(t *testing.T) {
	rows := [][]uint8{{1, 2}, {3, 4}}
	g, err := FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	rows[0][0] = 99
	if g.At(0, 0) != 1 {
		t.Error("grid should not alias the input rows")
	}
}

func TestIn(t *testing.T) {
	g := New[uint8](5, 4)

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"origin", 0, 0, true},
		{"far corner", 4, 3, true},
		{"x negative", -1, 0, false},
		{"y negative", 0, -1, false},
		{"x too large", 5, 0, false},
		{"y too large", 0, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.In(tt.x, tt.y); got != tt.want {
				t.Errorf("In(%d,%d): got %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestClone(t *testing.T) {
	g := Filled[float64](3, 3, 1.5)
	c := g.Clone()
	c.Set(1, 1, 7)

	if g.At(1, 1) != 1.5 {
		t.Error("modifying a clone changed the original")
	}
	if c.At(1, 1) != 7 {
		t.Error("clone did not keep its own write")
	}
}

func TestRows(t *testing.T) {
	g := New[int](2, 2)
	g.Set(1, 0, 5)
	rows := g.Rows()
	if len(rows) != 2 || len(rows[0]) != 2 {
		t.Fatalf("Rows shape: got %d rows", len(rows))
	}
	if rows[0][1] != 5 {
		t.Errorf("rows[0][1]: got %d, want 5", rows[0][1])
	}
	rows[0][1] = 9
	if g.At(1, 0) != 5 {
		t.Error("Rows should return a copy")
	}
}

func TestCount(t *testing.T) {
	g, _ := FromRows([][]uint8{
		{0, 255, 0},
		{255, 255, 0},
	})
	if got := g.Count(func(v uint8) bool { return v != 0 }); got != 3 {
		t.Errorf("Count: got %d, want 3", got)
	}
}

func TestSameSize(t *testing.T) {
	a := New[uint8](6, 7)
	b := New[float64](6, 7)
	c := New[int](7, 6)

	if !SameSize(a, b) {
		t.Error("grids of equal size reported as different")
	}
	if SameSize(a, c) {
		t.Error("transposed grids reported as the same size")
	}
}

func TestMap(t *testing.T) {
	g, _ := FromRows([][]uint8{{1, 2}, {3, 4}})
	doubled := Map(g, func(v uint8) int { return int(v) * 2 })

	if doubled.At(1, 1) != 8 {
		t.Errorf("Map: got %d, want 8", doubled.At(1, 1))
	}
	if g.At(1, 1) != 4 {
		t.Error("Map modified its input")
	}
}
