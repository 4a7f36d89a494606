package main

import (
	"image"
	"math"
)

// PointF is a point in image-pixel space
type PointF struct {
	X, Y float64
}

// RectF is a float rectangle stored as origin plus size.
// Width and Height may be negative for a rectangle that has not been normalized.
type RectF struct {
	X, Y          float64
	Width, Height float64
}

// IsEmpty reports whether the rectangle covers no area
func (r RectF) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center returns the center point of the rectangle
func (r RectF) Center() PointF {
	return PointF{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Normalize flips the origin so that Width and Height become non-negative
func (r RectF) Normalize() RectF {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// Round rounds each component to the nearest integer, halves to even, and returns the
// result as an image.Rectangle
func (r RectF) Round() image.Rectangle {
	x, y := int(math.RoundToEven(r.X)), int(math.RoundToEven(r.Y))
	w, h := int(math.RoundToEven(r.Width)), int(math.RoundToEven(r.Height))
	return image.Rect(x, y, x+w, y+h)
}

// Truncate drops the fractional part of each component
func (r RectF) Truncate() image.Rectangle {
	x, y := int(r.X), int(r.Y)
	return image.Rect(x, y, x+int(r.Width), y+int(r.Height))
}

// RectFFromRectangle converts r without canonicalizing it, so a rectangle whose Max lies
// above or left of Min keeps its negative size.
func RectFFromRectangle(r image.Rectangle) RectF {
	return RectF{
		X:      float64(r.Min.X),
		Y:      float64(r.Min.Y),
		Width:  float64(r.Max.X - r.Min.X),
		Height: float64(r.Max.Y - r.Min.Y),
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
