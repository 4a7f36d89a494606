package main

import (
	"image"
	"testing"
)

func TestLetterbox(t *testing.T) {
	tests := []struct {
		name     string
		img      image.Point
		view     image.Point
		expected image.Rectangle
	}{
		{"Wide view", image.Pt(320, 240), image.Pt(800, 300), image.Rect(200, 0, 600, 300)},
		{"Tall view", image.Pt(320, 240), image.Pt(320, 600), image.Rect(0, 180, 320, 420)},
		{"Exact fit", image.Pt(4, 3), image.Pt(400, 300), image.Rect(0, 0, 400, 300)},
		{"Empty view", image.Pt(4, 3), image.Point{}, image.Rectangle{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := letterbox(tt.img, tt.view); got != tt.expected {
				t.Errorf("letterbox(%v, %v) = %v, want %v", tt.img, tt.view, got, tt.expected)
			}
		})
	}
}
