package slimecheck

import "fmt"

// Window is a rectangle of chunks. Both corners are included.
type Window struct {
	X0, Z0, X1, Z1 int32
}

// Square returns the window [-radius, radius] on both axes.
func Square(radius int32) Window {
	return Window{-radius, -radius, radius, radius}
}

// Normalize swaps corners so that X0 <= X1 and Z0 <= Z1.
func (w Window) Normalize() Window {
	if w.X0 > w.X1 {
		w.X0, w.X1 = w.X1, w.X0
	}
	if w.Z0 > w.Z1 {
		w.Z0, w.Z1 = w.Z1, w.Z0
	}
	return w
}

// Bounds returns the width and height of a normalized window. They are
// int64 because a full int32 axis holds 1<<32 chunks.
func (w Window) Bounds() (width, height int64) {
	return int64(w.X1) - int64(w.X0) + 1, int64(w.Z1) - int64(w.Z0) + 1
}

func (w Window) Area() int64 {
	width, height := w.Bounds()
	return width * height
}

func (w Window) Contains(p ChunkPos) bool {
	return w.X0 <= p.X && p.X <= w.X1 && w.Z0 <= p.Z && p.Z <= w.Z1
}

func (w Window) String() string {
	return fmt.Sprintf("[%d..%d]x[%d..%d]", w.X0, w.X1, w.Z0, w.Z1)
}
