package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Common colors used in rendering
var (
	colorWhite     = color.RGBA{255, 255, 255, 255}
	colorGray      = color.RGBA{180, 180, 180, 255}
	colorYellow    = color.RGBA{255, 255, 100, 255}
	colorCyan      = color.RGBA{100, 255, 255, 255}
	colorLightBlue = color.RGBA{200, 200, 255, 255}
	colorGreen     = color.RGBA{100, 255, 100, 255}
	colorOrange    = color.RGBA{255, 200, 100, 255}

	// selection fill, azure at half opacity (premultiplied)
	colorSelectionFill = color.RGBA{120, 128, 128, 128}

	// Background colors for semi-transparent overlays
	bgColorLight  = color.RGBA{0, 0, 0, 128}
	bgColorMedium = color.RGBA{0, 0, 0, 160}
	bgColorDark   = color.RGBA{0, 0, 0, 200}
)

const minHelpFontSize = 12.0

// Renderer handles all drawing operations
type Renderer struct {
	renderState    RenderState
	helpFontSource *text.GoTextFaceSource
	errorImage     *ebiten.Image
	placeholder    *ebiten.Image
}

// NewRenderer creates a new Renderer
func NewRenderer(renderState RenderState) *Renderer {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatal(err)
	}

	return &Renderer{
		renderState:    renderState,
		helpFontSource: s,
	}
}

// Draw renders the entire screen
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Clear()

	img := r.renderState.GetCurrentImage()
	if img == nil {
		r.drawPlaceholder(screen)
	} else {
		r.drawZoomArea(screen, img)
	}

	if r.renderState.IsSelectionAllowed() && r.renderState.GetDragState() == DragSelecting {
		r.drawSelection(screen, r.renderState.GetSelection())
	}

	if r.renderState.IsShowingInfo() {
		r.drawInfoDisplay(screen)
	}

	if r.renderState.IsShowingHelp() {
		r.drawHelpOverlay(screen)
	}

	if r.renderState.GetOverlayMessage() != "" && time.Since(r.renderState.GetOverlayMessageTime()) < overlayMessageDuration {
		r.drawOverlayMessage(screen)
	}
}

// drawZoomArea stretches the visible part of img over the whole screen.
// A failed draw is replaced by the error placeholder and otherwise ignored.
func (r *Renderer) drawZoomArea(screen, img *ebiten.Image) {
	err := DrawImageRegion(screen, img, r.renderState.GetZoomArea(), screen.Bounds())
	if err == nil {
		return
	}

	debugLog("Drawing zoom area failed, showing error image: %v", err)
	if r.errorImage == nil {
		r.errorImage = CreateErrorImage(400, 300, "", "cannot draw visible area")
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(2, 2)
	screen.DrawImage(r.errorImage, op)
}

// drawPlaceholder letterboxes the placeholder image into the screen
func (r *Renderer) drawPlaceholder(screen *ebiten.Image) {
	if r.placeholder == nil {
		r.placeholder = CreatePlaceholderImage(320, 240, "Loading...")
	}

	dst := letterbox(r.placeholder.Bounds().Size(), screen.Bounds().Size())
	src := RectF{Width: float64(r.placeholder.Bounds().Dx()), Height: float64(r.placeholder.Bounds().Dy())}
	if err := DrawImageRegion(screen, r.placeholder, src, dst); err != nil {
		debugLog("Drawing placeholder failed: %v", err)
	}
}

// letterbox fits an img sized rectangle into view keeping its aspect ratio, centered
func letterbox(img, view image.Point) image.Rectangle {
	if img.X <= 0 || img.Y <= 0 || view.X <= 0 || view.Y <= 0 {
		return image.Rectangle{}
	}
	w, h := float64(view.X), float64(view.Y)
	if w > h*float64(img.X)/float64(img.Y) {
		w = h * float64(img.X) / float64(img.Y)
	} else {
		h = w * float64(img.Y) / float64(img.X)
	}
	x := (float64(view.X) - w) / 2
	y := (float64(view.Y) - h) / 2
	return RectF{X: x, Y: y, Width: w, Height: h}.Round()
}

func (r *Renderer) drawSelection(screen *ebiten.Image, selection image.Rectangle) {
	if selection.Empty() {
		return
	}
	DrawFilledRect(screen, float64(selection.Min.X), float64(selection.Min.Y),
		float64(selection.Dx()), float64(selection.Dy()), colorSelectionFill)
	DrawDashedFrame(screen, selection, colorGray)
}

// buildInfoString describes the page, the zoom and the selection
func (r *Renderer) buildInfoString(screenWidth int) string {
	total := r.renderState.GetTotalPagesCount()
	parts := []string{fmt.Sprintf("%d / %d", r.renderState.GetCurrentIndex()+1, total)}
	if total == 0 {
		parts[0] = "0 / 0"
	}

	if r.renderState.GetCurrentImage() != nil {
		visible := r.renderState.GetVisiblePortion()
		parts = append(parts, fmt.Sprintf("view %d,%d %dx%d", visible.Min.X, visible.Min.Y, visible.Dx(), visible.Dy()))

		if zoom := r.zoomPercent(screenWidth); zoom > 0 {
			parts = append(parts, fmt.Sprintf("%.0f%%", zoom))
		}
	}

	if r.renderState.IsSelectionAllowed() {
		area := r.renderState.GetSelectedArea().Round()
		if r.renderState.GetDragState() == DragSelecting {
			parts = append(parts, fmt.Sprintf("sel %d,%d %dx%d", area.Min.X, area.Min.Y, area.Dx(), area.Dy()))
		} else {
			parts = append(parts, "select on")
		}
	}

	return strings.Join(parts, "  ")
}

// zoomPercent is the horizontal magnification, viewport pixels per image pixel
func (r *Renderer) zoomPercent(screenWidth int) float64 {
	area := r.renderState.GetZoomArea()
	if area.Width <= 0 {
		return 0
	}
	return 100 * float64(screenWidth) / area.Width
}

func (r *Renderer) drawInfoDisplay(screen *ebiten.Image) {
	infoFont := &text.GoTextFace{
		Source: r.helpFontSource,
		Size:   r.renderState.GetFontSize(),
	}

	infoText := r.buildInfoString(screen.Bounds().Dx())
	textWidth, textHeight := text.Measure(infoText, infoFont, 0)

	// Bottom right corner
	padding := 10.0
	textX := float64(screen.Bounds().Dx()) - textWidth - padding
	textY := float64(screen.Bounds().Dy()) - textHeight - padding

	bgPadding := 5.0
	DrawFilledRect(screen, textX-bgPadding, textY-bgPadding, textWidth+bgPadding*2, textHeight+bgPadding*2, bgColorLight)
	DrawText(screen, infoText, infoFont, textX, textY, colorWhite)
}

func (r *Renderer) drawOverlayMessage(screen *ebiten.Image) {
	messageFont := &text.GoTextFace{
		Source: r.helpFontSource,
		Size:   r.renderState.GetFontSize(),
	}

	message := r.renderState.GetOverlayMessage()
	textWidth, textHeight := text.Measure(message, messageFont, 0)

	padding := 20.0
	boxWidth := textWidth + padding*2
	boxHeight := textHeight + padding*2
	boxX := (float64(screen.Bounds().Dx()) - boxWidth) / 2
	boxY := (float64(screen.Bounds().Dy()) - boxHeight) / 2

	DrawFilledRect(screen, boxX, boxY, boxWidth, boxHeight, bgColorDark)
	DrawText(screen, message, messageFont, boxX+padding, boxY+padding, colorWhite)
}

// helpLine is one action row of the help overlay
type helpLine struct {
	action, keys, mouse, description string
}

func (r *Renderer) helpLines() []helpLine {
	keybindings := r.renderState.GetKeybindings()
	mousebindings := r.renderState.GetMousebindings()
	descriptions := GetActionDescriptions()

	actions := make([]string, 0, len(descriptions))
	for action := range descriptions {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	var lines []helpLine
	for _, action := range actions {
		keys, mouse := keybindings[action], mousebindings[action]
		if len(keys) == 0 && len(mouse) == 0 {
			continue
		}
		lines = append(lines, helpLine{
			action:      action,
			keys:        strings.Join(keys, ", "),
			mouse:       strings.Join(mouse, ", "),
			description: descriptions[action],
		})
	}

	// fixed pointer gestures handled by the interaction controller
	lines = append(lines,
		helpLine{action: "zoom", mouse: "Wheel", description: "Zoom at the pointer"},
		helpLine{action: "pan", mouse: "MiddleDrag", description: "Drag the image"},
		helpLine{action: "select", mouse: "LeftDrag, RightDrag", description: "Select an area (when enabled)"},
	)
	return lines
}

// helpLayout measures the help table at fontSize and returns its column offsets and total size
func (r *Renderer) helpLayout(lines []helpLine, fontSize float64) (cols [3]float64, width, height float64) {
	face := &text.GoTextFace{Source: r.helpFontSource, Size: fontSize}

	var actionW, inputW, descW float64
	for _, l := range lines {
		w, _ := text.Measure(l.action, face, 0)
		actionW = math.Max(actionW, w)
		w, _ = text.Measure(l.keys+" | "+l.mouse, face, 0)
		inputW = math.Max(inputW, w)
		w, _ = text.Measure(l.description, face, 0)
		descW = math.Max(descW, w)
	}

	spacing := fontSize
	cols = [3]float64{0, actionW + spacing, actionW + inputW + spacing*2}
	width = cols[2] + descW
	height = float64(len(lines)+3) * fontSize * 1.5
	return cols, width, height
}

func (r *Renderer) drawHelpOverlay(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	padding := 40.0
	lines := r.helpLines()

	// Shrink the font until the table fits
	fontSize := r.renderState.GetFontSize()
	cols, tableW, tableH := r.helpLayout(lines, fontSize)
	for (tableW > w-padding*3 || tableH > h-padding*3) && fontSize > minHelpFontSize {
		fontSize = math.Max(minHelpFontSize, fontSize-1)
		cols, tableW, tableH = r.helpLayout(lines, fontSize)
	}

	DrawFilledRect(screen, 0, 0, w, h, bgColorLight)
	DrawFilledRect(screen, padding, padding, w-padding*2, h-padding*2, bgColorMedium)

	face := &text.GoTextFace{Source: r.helpFontSource, Size: fontSize}
	lineHeight := fontSize * 1.5
	x := padding + 20
	y := padding + 20

	DrawText(screen, "HELP: (Keyboard | Mouse)", face, x, y, colorWhite)
	y += lineHeight * 1.5

	for _, l := range lines {
		DrawText(screen, l.action, face, x+cols[0], y, colorLightBlue)

		inputX := x + cols[1]
		if l.keys != "" {
			DrawText(screen, l.keys, face, inputX, y, colorYellow)
			kw, _ := text.Measure(l.keys+" | ", face, 0)
			inputX += kw
		}
		if l.mouse != "" {
			DrawText(screen, l.mouse, face, inputX, y, colorCyan)
		}

		DrawText(screen, l.description, face, x+cols[2], y, colorGray)
		y += lineHeight
	}

	status := r.renderState.GetConfigStatus()
	statusColor := colorGreen
	if status.Status == "Warning" || status.Status == "Error" {
		statusColor = colorOrange
	}
	DrawText(screen, fmt.Sprintf("Config Status: %s", status.Status), face, x, y+lineHeight*0.5, statusColor)
}
