package main

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"sync/atomic"

	"github.com/disintegration/imaging"
)

// ErrThumbnailAborted is returned when a thumbnail is cancelled through its abort flag
var ErrThumbnailAborted = errors.New("thumbnail generation aborted")

// ThumbnailAbort is a polled cancellation flag for thumbnail generation
type ThumbnailAbort struct {
	flag atomic.Bool
}

// Abort requests that the running thumbnail stops at its next check
func (a *ThumbnailAbort) Abort() {
	a.flag.Store(true)
}

// Reset clears the flag before a new thumbnail is started
func (a *ThumbnailAbort) Reset() {
	a.flag.Store(false)
}

// Aborted reports whether Abort has been called since the last Reset
func (a *ThumbnailAbort) Aborted() bool {
	return a.flag.Load()
}

// Thumbnail resamples src to w x h and outlines frame on it in frameColor.
// A fully transparent frameColor leaves the thumbnail unmarked.
func Thumbnail(src image.Image, w, h int, frame image.Rectangle, frameColor color.Color, abort *ThumbnailAbort) (*image.NRGBA, error) {
	if src == nil || w <= 0 || h <= 0 {
		return nil, errors.New("thumbnail needs an image and a positive size")
	}
	if abort != nil && abort.Aborted() {
		return nil, ErrThumbnailAborted
	}

	thumb := imaging.Resize(src, w, h, imaging.Box)

	if abort != nil && abort.Aborted() {
		return nil, ErrThumbnailAborted
	}

	if !frame.Empty() {
		drawOutline(thumb, frame, frameColor)
	}
	return thumb, nil
}

// drawOutline draws a one pixel outline whose right and bottom edges lie on r.Max,
// matching a pen outline of an x, y, w, h rectangle.
func drawOutline(dst draw.Image, r image.Rectangle, c color.Color) {
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X+1, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y, r.Max.X+1, r.Max.Y+1),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y+1),
		image.Rect(r.Max.X, r.Min.Y, r.Max.X+1, r.Max.Y+1),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(dst.Bounds()), src, image.Point{}, draw.Over)
	}
}
