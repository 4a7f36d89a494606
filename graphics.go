package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	frameDashLength = 4.0
	frameGapLength  = 3.0
)

// Global font source for error image generation
var globalFontSource *text.GoTextFaceSource

// InitGraphics initializes the global font source for text rendering
func InitGraphics() error {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	globalFontSource = s
	return nil
}

// DrawText draws text with specified position and color
func DrawText(screen *ebiten.Image, textString string, font *text.GoTextFace, x, y float64, textColor color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, textString, font, op)
}

// DrawFilledRect draws filled rectangles with float64 coordinates
func DrawFilledRect(screen *ebiten.Image, x, y, w, h float64, bgColor color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)
}

// errDegenerateSource is returned when a source rectangle cannot be mapped onto a destination
var errDegenerateSource = errors.New("source rectangle has no area")

// DrawImageRegion draws the src part of img, given in image pixels, stretched over dst
// on screen. X and Y scale independently.
func DrawImageRegion(screen, img *ebiten.Image, src RectF, dst image.Rectangle) (err error) {
	if src.Width <= 0 || src.Height <= 0 || dst.Empty() {
		return errDegenerateSource
	}
	sx := float64(dst.Dx()) / src.Width
	sy := float64(dst.Dy()) / src.Height
	if !isFinite(sx) || !isFinite(sy) || !isFinite(src.X) || !isFinite(src.Y) {
		return fmt.Errorf("source rectangle %+v: %w", src, errDegenerateSource)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("drawing image region %+v: %v", src, r)
		}
	}()

	origin := img.Bounds().Min
	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	op.GeoM.Translate(float64(origin.X)-src.X, float64(origin.Y)-src.Y)
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(float64(dst.Min.X), float64(dst.Min.Y))
	screen.DrawImage(img, op)
	return nil
}

// DrawDashedFrame outlines r with a dashed one pixel line
func DrawDashedFrame(screen *ebiten.Image, r image.Rectangle, frameColor color.Color) {
	if r.Empty() {
		return
	}
	x0, y0 := float32(r.Min.X)+0.5, float32(r.Min.Y)+0.5
	x1, y1 := float32(r.Max.X)-0.5, float32(r.Max.Y)-0.5

	dashedLine(screen, x0, y0, x1, y0, frameColor)
	dashedLine(screen, x1, y0, x1, y1, frameColor)
	dashedLine(screen, x1, y1, x0, y1, frameColor)
	dashedLine(screen, x0, y1, x0, y0, frameColor)
}

// dashedLine draws an axis-aligned dashed line from (x0,y0) to (x1,y1)
func dashedLine(screen *ebiten.Image, x0, y0, x1, y1 float32, c color.Color) {
	dx, dy := x1-x0, y1-y0
	length := dx
	if length < 0 {
		length = -length
	}
	if dy != 0 {
		length = dy
		if length < 0 {
			length = -length
		}
	}
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length

	for pos := float32(0); pos < length; pos += frameDashLength + frameGapLength {
		end := pos + frameDashLength
		if end > length {
			end = length
		}
		vector.StrokeLine(screen, x0+ux*pos, y0+uy*pos, x0+ux*end, y0+uy*end, 1, c, false)
	}
}

// CreateErrorImage creates an error placeholder image with filename and error message
func CreateErrorImage(width, height int, filename, errorMsg string) *ebiten.Image {
	if width <= 0 || height <= 0 {
		width, height = 400, 300
	}

	errorImg := ebiten.NewImage(width, height)
	errorImg.Fill(color.RGBA{120, 30, 30, 255}) // Dark red background

	// White border
	white := color.RGBA{255, 255, 255, 255}
	DrawFilledRect(errorImg, 0, 0, float64(width), 3, white)
	DrawFilledRect(errorImg, 0, float64(height-3), float64(width), 3, white)
	DrawFilledRect(errorImg, 0, 0, 3, float64(height), white)
	DrawFilledRect(errorImg, float64(width-3), 0, 3, float64(height), white)

	// Without a font the border alone marks the failure
	if globalFontSource == nil {
		return errorImg
	}

	errorFont := &text.GoTextFace{
		Source: globalFontSource,
		Size:   20.0,
	}

	lines := []string{"ERROR"}
	if filename != "" {
		lines = append(lines, "File: "+filepath.Base(filename))
	}
	if errorMsg != "" {
		lines = append(lines, "Reason: "+errorMsg)
	}

	// Rough estimate: 10px per character
	maxChars := (width - 20) / 10
	for i, line := range lines {
		if len(line) > maxChars && maxChars > 3 {
			line = line[:maxChars-3] + "..."
		}
		DrawText(errorImg, line, errorFont, 10, float64(30*(i+1)), white)
	}

	return errorImg
}

// CreatePlaceholderImage creates the image shown while no image is bound
func CreatePlaceholderImage(width, height int, label string) *ebiten.Image {
	img := ebiten.NewImage(width, height)
	img.Fill(color.RGBA{40, 40, 48, 255})
	DrawDashedFrame(img, image.Rect(4, 4, width-4, height-4), color.RGBA{160, 160, 160, 255})

	if globalFontSource != nil {
		font := &text.GoTextFace{Source: globalFontSource, Size: 18.0}
		w, h := text.Measure(label, font, 0)
		DrawText(img, label, font, (float64(width)-w)/2, (float64(height)-h)/2, color.RGBA{200, 200, 200, 255})
	}
	return img
}
