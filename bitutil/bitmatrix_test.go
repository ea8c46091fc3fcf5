package bitutil

import (
	"errors"
	"math/rand"
	"testing"
)

var bitMatrixPoints = []int{1, 2, 2, 0, 3, 1}

func mustMatrix(t *testing.T, width, height int) *BitMatrix {
	t.Helper()
	bm, err := NewBitMatrixWithSize(width, height)
	if err != nil {
		t.Fatal(err)
	}
	return bm
}

func mustRegion(t *testing.T, bm *BitMatrix, left, top, width, height int) {
	t.Helper()
	if err := bm.SetRegion(left, top, width, height); err != nil {
		t.Fatal(err)
	}
}

func TestBitMatrixGetSet(t *testing.T) {
	bm, err := NewBitMatrix(33)
	if err != nil {
		t.Fatal(err)
	}
	if bm.Height() != 33 {
		t.Errorf("Height() = %d, want 33", bm.Height())
	}
	for y := 0; y < 33; y++ {
		for x := 0; x < 33; x++ {
			if y*x%3 == 0 {
				bm.Set(x, y)
			}
		}
	}
	for y := 0; y < 33; y++ {
		for x := 0; x < 33; x++ {
			if bm.Get(x, y) != (y*x%3 == 0) {
				t.Errorf("(%d,%d) = %v", x, y, bm.Get(x, y))
			}
		}
	}
}

func TestBitMatrixInvalidDimensions(t *testing.T) {
	for _, d := range [][2]int{{0, 1}, {1, 0}, {-1, 5}} {
		if _, err := NewBitMatrixWithSize(d[0], d[1]); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("NewBitMatrixWithSize(%d, %d) error = %v, want ErrInvalidArgument", d[0], d[1], err)
		}
	}
}

func TestBitMatrixFlip(t *testing.T) {
	bm := mustMatrix(t, 4, 4)
	bm.Flip(1, 2)
	if !bm.Get(1, 2) {
		t.Error("bit should be set after flip")
	}
	bm.Flip(1, 2)
	if bm.Get(1, 2) {
		t.Error("bit should be unset after double flip")
	}
}

func TestBitMatrixFlipAllKeepsPadding(t *testing.T) {
	bm := mustMatrix(t, 5, 2)
	bm.FlipAll()
	rect := bm.EnclosingRectangle()
	if rect == nil || rect[0] != 0 || rect[1] != 0 || rect[2] != 5 || rect[3] != 2 {
		t.Errorf("EnclosingRectangle after FlipAll = %v, want [0 0 5 2]", rect)
	}
}

func TestBitMatrixUnset(t *testing.T) {
	empty := mustMatrix(t, 3, 3)
	bm := empty.Clone()
	bm.Set(1, 1)
	if bm.Equals(empty) {
		t.Error("matrix with a set bit should differ from empty")
	}
	bm.Unset(1, 1)
	if !bm.Equals(empty) {
		t.Error("matrix should equal empty after unset")
	}
	bm.Unset(1, 1)
	if !bm.Equals(empty) {
		t.Error("unset of a clear bit should be a no-op")
	}
}

func TestBitMatrixSetRegion(t *testing.T) {
	bm := mustMatrix(t, 8, 8)
	mustRegion(t, bm, 2, 2, 4, 4)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			expected := x >= 2 && x < 6 && y >= 2 && y < 6
			if bm.Get(x, y) != expected {
				t.Errorf("(%d,%d) = %v, want %v", x, y, bm.Get(x, y), expected)
			}
		}
	}
}

func TestBitMatrixRectangularSetRegion(t *testing.T) {
	bm := mustMatrix(t, 320, 240)
	mustRegion(t, bm, 105, 22, 80, 12)
	for y := 0; y < 240; y++ {
		for x := 0; x < 320; x++ {
			want := y >= 22 && y < 34 && x >= 105 && x < 185
			if bm.Get(x, y) != want {
				t.Fatalf("(%d,%d) = %v, want %v", x, y, bm.Get(x, y), want)
			}
		}
	}
}

func TestBitMatrixSetRegionErrors(t *testing.T) {
	bm := mustMatrix(t, 5, 5)
	tests := [][4]int{
		{0, 0, 0, 1}, {0, 0, 1, 0}, {3, 0, 3, 1}, {0, 3, 1, 3}, {-1, 0, 1, 1},
	}
	for _, tt := range tests {
		if err := bm.SetRegion(tt[0], tt[1], tt[2], tt[3]); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("SetRegion%v error = %v, want ErrInvalidArgument", tt, err)
		}
	}
}

func TestBitMatrixRectangular(t *testing.T) {
	bm := mustMatrix(t, 75, 20)
	if bm.Width() != 75 || bm.Height() != 20 {
		t.Fatalf("size = %dx%d, want 75x20", bm.Width(), bm.Height())
	}
	bm.Set(10, 0)
	bm.Set(11, 1)
	bm.Set(50, 2)
	bm.Set(51, 3)
	bm.Flip(74, 4)
	bm.Flip(0, 5)
	for _, p := range [][2]int{{10, 0}, {11, 1}, {50, 2}, {51, 3}, {74, 4}, {0, 5}} {
		if !bm.Get(p[0], p[1]) {
			t.Errorf("(%d,%d) should be set", p[0], p[1])
		}
	}
	bm.Flip(50, 2)
	bm.Flip(51, 3)
	if bm.Get(50, 2) || bm.Get(51, 3) {
		t.Error("flipped bits should be clear")
	}
}

func TestBitMatrixRow(t *testing.T) {
	bm := mustMatrix(t, 102, 5)
	for x := 0; x < 102; x++ {
		if x&0x03 == 0 {
			bm.Set(x, 2)
		}
	}

	array := bm.Row(2, nil)
	if array.Size() != 102 {
		t.Errorf("allocated row size = %d, want 102", array.Size())
	}
	array2 := bm.Row(2, NewBitArray(60))
	if array2.Size() != 102 {
		t.Errorf("reallocated row size = %d, want 102", array2.Size())
	}
	reusable := NewBitArray(200)
	reusable.Set(150)
	array3 := bm.Row(2, reusable)
	if array3 != reusable || array3.Size() != 200 {
		t.Errorf("large row should be reused, size = %d", array3.Size())
	}
	if array3.Get(150) {
		t.Error("reused row should be cleared")
	}
	for x := 0; x < 102; x++ {
		on := x&0x03 == 0
		if array.Get(x) != on || array2.Get(x) != on || array3.Get(x) != on {
			t.Errorf("bit %d mismatch", x)
		}
	}
}

func TestBitMatrixSetRow(t *testing.T) {
	bm := mustMatrix(t, 40, 3)
	row := NewBitArray(40)
	row.Set(0)
	row.Set(39)
	bm.SetRow(1, row)
	if !bm.Get(0, 1) || !bm.Get(39, 1) || bm.Get(0, 0) || bm.Get(0, 2) {
		t.Errorf("SetRow produced:\n%v", bm)
	}
}

func TestBitMatrixXor(t *testing.T) {
	empty := mustMatrix(t, 3, 3)
	full := mustMatrix(t, 3, 3)
	mustRegion(t, full, 0, 0, 3, 3)
	center := mustMatrix(t, 3, 3)
	mustRegion(t, center, 1, 1, 1, 1)
	invertedCenter := full.Clone()
	invertedCenter.Unset(1, 1)

	tests := []struct {
		name           string
		data, flip, want *BitMatrix
	}{
		{"empty^empty", empty, empty, empty},
		{"empty^center", empty, center, center},
		{"empty^full", empty, full, full},
		{"center^empty", center, empty, center},
		{"center^center", center, center, empty},
		{"center^full", center, full, invertedCenter},
		{"inverted^empty", invertedCenter, empty, invertedCenter},
		{"inverted^center", invertedCenter, center, full},
		{"inverted^full", invertedCenter, full, center},
		{"full^empty", full, empty, full},
		{"full^center", full, center, invertedCenter},
		{"full^full", full, full, empty},
	}
	for _, tt := range tests {
		m := tt.data.Clone()
		if err := m.Xor(tt.flip); err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if !m.Equals(tt.want) {
			t.Errorf("%s: got\n%v\nwant\n%v", tt.name, m, tt.want)
		}
	}

	bad := mustMatrix(t, 4, 4)
	if err := empty.Clone().Xor(bad); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Xor with bad mask error = %v, want ErrInvalidArgument", err)
	}
	if err := bad.Clone().Xor(empty); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Xor on bad matrix error = %v, want ErrInvalidArgument", err)
	}
}

func TestBitMatrixRotate180Simple(t *testing.T) {
	bm := mustMatrix(t, 3, 3)
	bm.Set(0, 0)
	bm.Set(0, 1)
	bm.Set(1, 2)
	bm.Set(2, 1)
	bm.Rotate180()
	for _, p := range [][2]int{{2, 2}, {2, 1}, {1, 0}, {0, 1}} {
		if !bm.Get(p[0], p[1]) {
			t.Errorf("(%d,%d) should be set after rotation", p[0], p[1])
		}
	}
}

func TestBitMatrixRotate180(t *testing.T) {
	for _, d := range [][2]int{{7, 4}, {7, 5}, {8, 4}, {8, 5}, {33, 3}} {
		width, height := d[0], d[1]
		input := mustMatrix(t, width, height)
		expected := mustMatrix(t, width, height)
		for i := 0; i < len(bitMatrixPoints); i += 2 {
			input.Set(bitMatrixPoints[i], bitMatrixPoints[i+1])
			expected.Set(width-1-bitMatrixPoints[i], height-1-bitMatrixPoints[i+1])
		}
		input.Rotate180()
		if !input.Equals(expected) {
			t.Errorf("%dx%d: got\n%v\nwant\n%v", width, height, input, expected)
		}
	}
}

func TestBitMatrixRotate180Involution(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for iter := 0; iter < 50; iter++ {
		bm := randomMatrix(t, r, 1+r.Intn(70), 1+r.Intn(10))
		orig := bm.Clone()
		bm.Rotate180()
		bm.Rotate180()
		if !bm.Equals(orig) {
			t.Fatalf("rotate180 twice changed a %dx%d matrix", orig.Width(), orig.Height())
		}
	}
}

func TestBitMatrixRotate90(t *testing.T) {
	bm := mustMatrix(t, 4, 3)
	bm.Set(3, 0) // top-right
	bm.Rotate90()
	// After 90 CCW: (3,0) -> (0,0) for a 3x4 matrix
	if bm.Width() != 3 || bm.Height() != 4 {
		t.Errorf("dimensions after 90 rotation: %dx%d, want 3x4", bm.Width(), bm.Height())
	}
	if !bm.Get(0, 0) {
		t.Error("(0,0) should be set after 90 rotation")
	}
	if err := bm.Rotate(45); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Rotate(45) error = %v, want ErrInvalidArgument", err)
	}
}

func TestBitMatrixEnclosingRectangle(t *testing.T) {
	bm := mustMatrix(t, 5, 5)
	if rect := bm.EnclosingRectangle(); rect != nil {
		t.Errorf("empty matrix rect = %v, want nil", rect)
	}
	tests := []struct {
		region [4]int
		want   [4]int
	}{
		{[4]int{1, 1, 1, 1}, [4]int{1, 1, 1, 1}},
		{[4]int{1, 1, 3, 2}, [4]int{1, 1, 3, 2}},
		{[4]int{0, 0, 5, 5}, [4]int{0, 0, 5, 5}},
	}
	for _, tt := range tests {
		mustRegion(t, bm, tt.region[0], tt.region[1], tt.region[2], tt.region[3])
		rect := bm.EnclosingRectangle()
		if rect == nil || [4]int(rect) != tt.want {
			t.Errorf("after SetRegion%v rect = %v, want %v", tt.region, rect, tt.want)
		}
	}

	wide := mustMatrix(t, 100, 10)
	wide.Set(3, 2)
	wide.Set(70, 8)
	if rect := wide.EnclosingRectangle(); rect == nil || [4]int(rect) != [4]int{3, 2, 68, 7} {
		t.Errorf("rect = %v, want [3 2 68 7]", rect)
	}
}

func TestBitMatrixEnclosingRectangleSingleRegion(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for iter := 0; iter < 100; iter++ {
		w, h := 1+r.Intn(90), 1+r.Intn(20)
		bm := mustMatrix(t, w, h)
		l, tp := r.Intn(w), r.Intn(h)
		rw, rh := 1+r.Intn(w-l), 1+r.Intn(h-tp)
		mustRegion(t, bm, l, tp, rw, rh)
		rect := bm.EnclosingRectangle()
		if rect == nil || [4]int(rect) != [4]int{l, tp, rw, rh} {
			t.Fatalf("%dx%d: rect = %v, want [%d %d %d %d]", w, h, rect, l, tp, rw, rh)
		}
	}
}

func TestBitMatrixOnBit(t *testing.T) {
	bm := mustMatrix(t, 5, 5)
	if bm.TopLeftOnBit() != nil || bm.BottomRightOnBit() != nil {
		t.Error("empty matrix should have no on bits")
	}
	tests := []struct {
		region           [4]int
		topLeft, botRight [2]int
	}{
		{[4]int{1, 1, 1, 1}, [2]int{1, 1}, [2]int{1, 1}},
		{[4]int{1, 1, 3, 2}, [2]int{1, 1}, [2]int{3, 2}},
		{[4]int{0, 0, 5, 5}, [2]int{0, 0}, [2]int{4, 4}},
	}
	for _, tt := range tests {
		mustRegion(t, bm, tt.region[0], tt.region[1], tt.region[2], tt.region[3])
		if got := bm.TopLeftOnBit(); got == nil || [2]int(got) != tt.topLeft {
			t.Errorf("TopLeftOnBit = %v, want %v", got, tt.topLeft)
		}
		if got := bm.BottomRightOnBit(); got == nil || [2]int(got) != tt.botRight {
			t.Errorf("BottomRightOnBit = %v, want %v", got, tt.botRight)
		}
	}
}

func TestBitMatrixSingleBitScenario(t *testing.T) {
	bm := mustMatrix(t, 3, 3)
	bm.Set(1, 1)
	if got := bm.TopLeftOnBit(); got == nil || [2]int(got) != [2]int{1, 1} {
		t.Errorf("TopLeftOnBit = %v", got)
	}
	if got := bm.BottomRightOnBit(); got == nil || [2]int(got) != [2]int{1, 1} {
		t.Errorf("BottomRightOnBit = %v", got)
	}
	if got := bm.EnclosingRectangle(); got == nil || [4]int(got) != [4]int{1, 1, 1, 1} {
		t.Errorf("EnclosingRectangle = %v", got)
	}
}

func TestBitMatrixParse(t *testing.T) {
	empty := mustMatrix(t, 3, 3)
	full := mustMatrix(t, 3, 3)
	mustRegion(t, full, 0, 0, 3, 3)
	center := mustMatrix(t, 3, 3)
	mustRegion(t, center, 1, 1, 1, 1)
	empty24 := mustMatrix(t, 2, 4)

	tests := []struct {
		repr, set, unset string
		want             *BitMatrix
	}{
		{"   \n   \n   \n", "x", " ", empty},
		{"   \n   \r\r\n   \n\r", "x", " ", empty},
		{"   \n   \n   ", "x", " ", empty},
		{"xxx\nxxx\nxxx\n", "x", " ", full},
		{"   \n x \n   \n", "x", " ", center},
		{"      \n  x   \n      \n", "x ", "  ", center},
		{"  \n  \n  \n  \n", "x", " ", empty24},
		{"   \r\n x \r\n   \r\n", "x", " ", center},
	}
	for _, tt := range tests {
		got, err := ParseStringMatrix(tt.repr, tt.set, tt.unset)
		if err != nil {
			t.Errorf("ParseStringMatrix(%q): %v", tt.repr, err)
			continue
		}
		if !got.Equals(tt.want) {
			t.Errorf("ParseStringMatrix(%q) = \n%v\nwant\n%v", tt.repr, got, tt.want)
		}
	}

	bad := []string{"   \n xy\n   \n", "   \n  \n", ""}
	for _, repr := range bad {
		if _, err := ParseStringMatrix(repr, "x", " "); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ParseStringMatrix(%q) error = %v, want ErrInvalidArgument", repr, err)
		}
	}
}

func TestBitMatrixParseRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	tokens := [][2]string{
		{"X ", "  "}, {"x", "."}, {"1", "0"}, {"##", ".."},
		// One token is a prefix of the other.
		{"X", "XO"}, {"XO", "X"}, {"ab", "a"},
	}
	for iter := 0; iter < 70; iter++ {
		bm := randomMatrix(t, r, 1+r.Intn(40), 1+r.Intn(12))
		tok := tokens[iter%len(tokens)]
		got, err := ParseStringMatrix(bm.StringWithChars(tok[0], tok[1]), tok[0], tok[1])
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equals(bm) || got.Hash() != bm.Hash() {
			t.Fatalf("round trip with %q mismatch:\n%v\n%v", tok, bm, got)
		}
	}
}

func TestBitMatrixParseBoolMatrix(t *testing.T) {
	bm, err := ParseBoolMatrix([][]bool{{true, false}, {false, true}})
	if err != nil {
		t.Fatal(err)
	}
	if !bm.Get(0, 0) || bm.Get(1, 0) || !bm.Get(1, 1) {
		t.Errorf("ParseBoolMatrix produced:\n%v", bm)
	}
	if _, err := ParseBoolMatrix([][]bool{{true}, {true, false}}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ragged input error = %v, want ErrInvalidArgument", err)
	}
}

func TestBitMatrixClone(t *testing.T) {
	bm := mustMatrix(t, 8, 8)
	bm.Set(1, 1)
	clone := bm.Clone()
	clone.Set(2, 2)
	if bm.Get(2, 2) {
		t.Error("modifying clone should not affect original")
	}
}

func TestBitMatrixClear(t *testing.T) {
	bm := mustMatrix(t, 40, 4)
	mustRegion(t, bm, 0, 0, 40, 4)
	bm.Clear()
	if bm.TopLeftOnBit() != nil {
		t.Error("matrix should be empty after Clear")
	}
}

func TestBitMatrixEquals(t *testing.T) {
	a := mustMatrix(t, 4, 4)
	b := mustMatrix(t, 4, 4)
	a.Set(1, 2)
	b.Set(1, 2)
	if !a.Equals(b) || a.Hash() != b.Hash() {
		t.Error("equal matrices should be equal")
	}
	b.Set(3, 3)
	if a.Equals(b) {
		t.Error("different matrices should not be equal")
	}
	if a.Equals(mustMatrix(t, 4, 5)) {
		t.Error("matrices of different sizes should not be equal")
	}
}

func randomMatrix(t *testing.T, r *rand.Rand, width, height int) *BitMatrix {
	bm := mustMatrix(t, width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if r.Intn(3) == 0 {
				bm.Set(x, y)
			}
		}
	}
	return bm
}

func TestBitMatrixParsePrefixToken(t *testing.T) {
	got, err := ParseStringMatrix("XXO\nXOX\n", "X", "XO")
	if err != nil {
		t.Fatal(err)
	}
	want, err := ParseBoolMatrix([][]bool{{true, false}, {false, true}})
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equals(want) {
		t.Errorf("ParseStringMatrix = \n%v\nwant\n%v", got, want)
	}
}
