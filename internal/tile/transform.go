package tile

import "fmt"

// Transform identifies one of the eight orientations of a square grid.
// Bits 0-1 hold clockwise quarter turns and bit 2 a reflection across the
// horizontal axis. The reflection is applied before the turns.
type Transform uint8

const (
	Identity Transform = 0
	Mirrored Transform = 4

	// TransformCount is the order of the dihedral group of the square.
	TransformCount = 8
)

// NewTransform builds the orientation reached by an optional reflection
// followed by turns clockwise quarter turns.
func NewTransform(turns int, mirrored bool) Transform {
	t := Transform(((turns % 4) + 4) % 4)
	if mirrored {
		t |= Mirrored
	}
	return t
}

// Transforms returns every orientation in search order.
func Transforms() [TransformCount]Transform {
	var out [TransformCount]Transform
	for i := range out {
		out[i] = Transform(i)
	}
	return out
}

func (t Transform) Turns() int {
	return int(t & 3)
}

func (t Transform) Mirrored() bool {
	return t&Mirrored != 0
}

func (t Transform) Valid() bool {
	return t < TransformCount
}

// Rotate composes a clockwise quarter turn after t.
func (t Transform) Rotate() Transform {
	return t&Mirrored | (t+1)&3
}

// FlipHorizontal composes a reflection across the horizontal axis after t.
// Reflecting after k turns equals reflecting first and turning -k.
func (t Transform) FlipHorizontal() Transform {
	return (t&Mirrored ^ Mirrored) | Transform((4-t.Turns())&3)
}

// FlipVertical composes a reflection across the vertical axis after t. A
// vertical mirror is a horizontal mirror followed by a half turn.
func (t Transform) FlipVertical() Transform {
	return (t&Mirrored ^ Mirrored) | Transform((6-t.Turns())&3)
}

// Source maps a cell of the oriented view back to the untransformed grid.
func (t Transform) Source(row, col, side int) (int, int) {
	for i := 0; i < t.Turns(); i++ {
		row, col = side-1-col, row
	}
	if t.Mirrored() {
		row = side - 1 - row
	}
	return row, col
}

func (t Transform) String() string {
	if !t.Valid() {
		return fmt.Sprintf("transform(%d)", uint8(t))
	}
	name := fmt.Sprintf("r%d", t.Turns()*90)
	if t.Mirrored() {
		return "flip+" + name
	}
	return name
}
