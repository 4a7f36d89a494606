package main

import "image"

// Bitmap is anything with pixel bounds. Both *ebiten.Image and image.Image satisfy it.
type Bitmap interface {
	Bounds() image.Rectangle
}

// ViewportMapper owns the zoom area, the part of the bound image currently shown in the
// viewport, and converts between viewport pixels and image pixels.
//
// X and Y scale independently, so the image is stretched whenever the zoom area and the
// viewport have different aspect ratios. The zoom area is not clamped to the image bounds.
type ViewportMapper struct {
	zoomArea  RectF
	viewport  image.Point
	imageSize image.Point
	hasImage  bool
	visible   bool
	notifier  *Notifier
}

// NewViewportMapper creates a visible mapper with no image bound
func NewViewportMapper(notifier *Notifier) *ViewportMapper {
	return &ViewportMapper{
		visible:  true,
		notifier: notifier,
	}
}

// ready reports whether geometry operations may run
func (m *ViewportMapper) ready() bool {
	return m.hasImage && m.visible && m.viewport.X > 0 && m.viewport.Y > 0
}

func (m *ViewportMapper) toImage(p image.Point) PointF {
	return PointF{
		X: m.zoomArea.X + float64(p.X)*m.zoomArea.Width/float64(m.viewport.X),
		Y: m.zoomArea.Y + float64(p.Y)*m.zoomArea.Height/float64(m.viewport.Y),
	}
}

// PointToImage maps a viewport point into image space.
// ok is false when no image is bound, the viewport is empty or the view is hidden.
func (m *ViewportMapper) PointToImage(p image.Point) (PointF, bool) {
	if !m.ready() {
		return PointF{}, false
	}
	return m.toImage(p), true
}

// RectToImage maps a viewport rectangle into image space, normalizing negative sizes first
func (m *ViewportMapper) RectToImage(r RectF) (RectF, bool) {
	if !m.ready() {
		return RectF{}, false
	}
	r = r.Normalize()
	sx, sy := m.Scale()
	return RectF{
		X:      m.zoomArea.X + r.X*sx,
		Y:      m.zoomArea.Y + r.Y*sy,
		Width:  r.Width * sx,
		Height: r.Height * sy,
	}, true
}

// Scale returns the number of image pixels per viewport pixel along X and Y
func (m *ViewportMapper) Scale() (float64, float64) {
	if m.viewport.X <= 0 || m.viewport.Y <= 0 {
		return 0, 0
	}
	return m.zoomArea.Width / float64(m.viewport.X), m.zoomArea.Height / float64(m.viewport.Y)
}

// ShowAll makes the whole image visible
func (m *ViewportMapper) ShowAll() {
	if !m.ready() {
		return
	}
	m.zoomArea = m.fullExtent()
	m.notifier.visiblePortionChanged()
}

// ShowCenter moves the zoom area to the middle of the image without resizing it
func (m *ViewportMapper) ShowCenter() {
	if !m.ready() {
		return
	}
	m.zoomArea.X = (float64(m.imageSize.X) - m.zoomArea.Width) / 2
	m.zoomArea.Y = (float64(m.imageSize.Y) - m.zoomArea.Height) / 2
	m.notifier.visiblePortionChanged()
}

// ShowCenterAt moves the zoom area so that the image point under p becomes its center
func (m *ViewportMapper) ShowCenterAt(p image.Point) {
	if !m.ready() {
		return
	}
	target := m.toImage(p)
	m.zoomArea.X = target.X - m.zoomArea.Width/2
	m.zoomArea.Y = target.Y - m.zoomArea.Height/2
	m.notifier.visiblePortionChanged()
}

// PanTo centers the zoom area on the image point under p
func (m *ViewportMapper) PanTo(p image.Point) {
	m.ShowCenterAt(p)
}

// Pan shifts the zoom area by a viewport-space delta so that the content follows the pointer
func (m *ViewportMapper) Pan(delta image.Point) {
	if !m.ready() {
		return
	}
	moved := m.toImage(delta)
	origin := m.toImage(image.Point{})
	m.zoomArea.X -= moved.X - origin.X
	m.zoomArea.Y -= moved.Y - origin.Y
	m.notifier.visiblePortionChanged()
}

// Zoom divides the zoom area size by factor while keeping the image point under anchor
// fixed on screen. factor > 1 zooms in.
func (m *ViewportMapper) Zoom(factor float64, anchor image.Point) {
	if !m.ready() || factor <= 0 || !isFinite(factor) {
		return
	}
	before := m.toImage(anchor)

	m.zoomArea.Width /= factor
	m.zoomArea.Height /= factor

	after := m.toImage(anchor)
	m.zoomArea.X += before.X - after.X
	m.zoomArea.Y += before.Y - after.Y
	m.notifier.visiblePortionChanged()
}

// OnViewportResized records the new viewport size and grows or shrinks the zoom area by
// the same proportion, keeping the image pixels per viewport pixel constant.
func (m *ViewportMapper) OnViewportResized(oldSize, newSize image.Point) {
	m.viewport = newSize
	if oldSize.X <= 0 || oldSize.Y <= 0 || !m.hasImage {
		return
	}
	dw := float64(newSize.X - oldSize.X)
	dh := float64(newSize.Y - oldSize.Y)
	if dw == 0 && dh == 0 {
		return
	}
	m.zoomArea.Width += dw * m.zoomArea.Width / float64(oldSize.X)
	m.zoomArea.Height += dh * m.zoomArea.Height / float64(oldSize.Y)
	m.notifier.visiblePortionChanged()
}

// SetImage binds b. A nil bitmap unbinds and clears the zoom area. Binding while the zoom
// area is empty initializes it to the full image without notifying observers.
func (m *ViewportMapper) SetImage(b Bitmap) {
	if b == nil {
		m.hasImage = false
		m.imageSize = image.Point{}
		m.zoomArea = RectF{}
		return
	}
	m.hasImage = true
	m.imageSize = b.Bounds().Size()
	if m.zoomArea.IsEmpty() {
		m.zoomArea = m.fullExtent()
	}
}

// LoadCompleted binds b and resets the zoom area to the full image, discarding any zoom or pan
func (m *ViewportMapper) LoadCompleted(b Bitmap) {
	if b == nil {
		return
	}
	m.hasImage = true
	m.imageSize = b.Bounds().Size()
	m.zoomArea = m.fullExtent()
	m.notifier.visiblePortionChanged()
}

func (m *ViewportMapper) fullExtent() RectF {
	return RectF{Width: float64(m.imageSize.X), Height: float64(m.imageSize.Y)}
}

// SetVisible marks the view as shown or hidden. Hidden views ignore geometry operations.
func (m *ViewportMapper) SetVisible(visible bool) {
	m.visible = visible
}

// VisiblePortion returns the zoom area rounded to whole pixels
func (m *ViewportMapper) VisiblePortion() image.Rectangle {
	return m.zoomArea.Round()
}

// ZoomArea returns the exact zoom area
func (m *ViewportMapper) ZoomArea() RectF {
	return m.zoomArea
}

// Viewport returns the current viewport size
func (m *ViewportMapper) Viewport() image.Point {
	return m.viewport
}

// HasImage reports whether an image is bound
func (m *ViewportMapper) HasImage() bool {
	return m.hasImage
}

// ImageSize returns the size of the bound image
func (m *ViewportMapper) ImageSize() image.Point {
	return m.imageSize
}

// ThumbnailFrame scales the zoom area into a w x h thumbnail of the whole image
func (m *ViewportMapper) ThumbnailFrame(w, h int) image.Rectangle {
	if !m.hasImage || m.imageSize.X <= 0 || m.imageSize.Y <= 0 {
		return image.Rectangle{}
	}
	rx := float64(w) / float64(m.imageSize.X)
	ry := float64(h) / float64(m.imageSize.Y)
	return RectF{
		X:      rx * m.zoomArea.X,
		Y:      ry * m.zoomArea.Y,
		Width:  rx * m.zoomArea.Width,
		Height: ry * m.zoomArea.Height,
	}.Truncate()
}
