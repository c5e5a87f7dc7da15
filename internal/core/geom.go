// Package core provides fundamental types and utilities shared by the game
// engine and the terminal platform. It contains no external dependencies
// (especially no Bubble Tea) to keep game logic pure and testable.
package core

// Rect represents an integer axis-aligned box in screen cells.
// Used for drawing boxes and panels.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is a float axis-aligned bounding box used for collision detection.
// Entities move in sub-cell steps, so collision is tested before snapping
// to the cell grid.
type Box struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewBox creates a new box with the given position and dimensions.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// OverlapsX reports whether the horizontal spans of b and other overlap.
// Touching edges do not count as overlap.
func (b Box) OverlapsX(other Box) bool {
	return b.X < other.Right() && other.X < b.Right()
}

// WithinY reports whether b's vertical span lies inside [top, bottom].
func (b Box) WithinY(top, bottom float64) bool {
	return b.Y >= top && b.Bottom() <= bottom
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
