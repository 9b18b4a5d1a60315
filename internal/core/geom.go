// Package core provides fundamental types and utilities for the puzzle
// engine. It contains no external dependencies (especially no Bubble Tea)
// to keep rule logic pure and testable.
package core

import "fmt"

// Point is an integer board coordinate. The origin is the bottom-left
// corner of the board: x grows to the right, y grows upward.
// Points compare by value and are usable as map keys.
type Point struct {
	X, Y int
}

// Add returns the point shifted by the given vector.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.DX, Y: p.Y + v.DY}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Vector is a movement offset applied to a Point.
type Vector struct {
	DX, DY int
}

// Unit direction vectors.
var (
	Up    = Vector{DX: 0, DY: 1}
	Down  = Vector{DX: 0, DY: -1}
	Left  = Vector{DX: -1, DY: 0}
	Right = Vector{DX: 1, DY: 0}
)

// Scale returns the vector multiplied by n.
func (v Vector) Scale(n int) Vector {
	return Vector{DX: v.DX * n, DY: v.DY * n}
}

// IsZero reports whether the vector has no displacement.
func (v Vector) IsZero() bool {
	return v.DX == 0 && v.DY == 0
}

func (v Vector) String() string {
	return fmt.Sprintf("<%+d,%+d>", v.DX, v.DY)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
