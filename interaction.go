package main

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Fixed wheel zoom steps, one per wheel notch regardless of its magnitude
const (
	wheelZoomIn  = 1.1
	wheelZoomOut = 0.9
)

// DragState is what the held mouse button is currently doing
type DragState int

const (
	DragIdle DragState = iota
	DragPanning
	DragSelecting
)

func (s DragState) String() string {
	switch s {
	case DragPanning:
		return "Panning"
	case DragSelecting:
		return "Selecting"
	default:
		return "Idle"
	}
}

// PointerButton identifies the mouse button attached to a pointer event
type PointerButton int

const (
	ButtonNone PointerButton = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

// PointerEventKind is the type of a pointer event
type PointerEventKind int

const (
	PointerEnter PointerEventKind = iota
	PointerLeave
	PointerWheel
	PointerDown
	PointerMove
	PointerUp
)

// PointerEvent is one pointer input in viewport coordinates.
// For PointerMove, Button is the button held during the move (ButtonNone if none).
type PointerEvent struct {
	Kind       PointerEventKind
	Button     PointerButton
	Location   image.Point
	WheelDelta float64
}

// CursorHost gives the controller access to the mouse cursor shape
type CursorHost interface {
	Cursor() ebiten.CursorShapeType
	SetCursor(shape ebiten.CursorShapeType)
}

// InteractionController turns pointer, resize and image lifecycle events into
// ViewportMapper operations and selection notifications.
type InteractionController struct {
	mapper   *ViewportMapper
	notifier *Notifier
	cursor   CursorHost

	// AllowSelection makes left and right drags select an area
	AllowSelection bool

	drag           DragState
	dragButton     PointerButton
	lastLocation   image.Point
	previousCursor ebiten.CursorShapeType
	// selection keeps the anchor in Min and the pointer in Max, so it may be non-canonical
	selection image.Rectangle
}

// NewInteractionController creates a controller driving mapper.
// cursor may be nil when the host has no cursor to change.
func NewInteractionController(mapper *ViewportMapper, notifier *Notifier, cursor CursorHost) *InteractionController {
	return &InteractionController{
		mapper:   mapper,
		notifier: notifier,
		cursor:   cursor,
	}
}

// HandlePointer processes a single pointer event
func (c *InteractionController) HandlePointer(ev PointerEvent) {
	switch ev.Kind {
	case PointerEnter:
		// nothing to track until a button goes down
	case PointerLeave:
		c.lastLocation = image.Point{}
	case PointerWheel:
		c.handleWheel(ev)
	case PointerDown:
		c.handleDown(ev)
	case PointerMove:
		c.handleMove(ev)
	case PointerUp:
		c.handleUp(ev)
	}
}

func (c *InteractionController) handleWheel(ev PointerEvent) {
	if !c.inViewport(ev.Location) {
		return
	}
	if ev.WheelDelta < 0 {
		c.mapper.Zoom(wheelZoomOut, ev.Location)
	}
	if ev.WheelDelta > 0 {
		c.mapper.Zoom(wheelZoomIn, ev.Location)
	}
}

func (c *InteractionController) handleDown(ev PointerEvent) {
	// a second button cannot take over a running drag
	if c.drag != DragIdle {
		return
	}

	switch ev.Button {
	case ButtonMiddle:
		c.beginDrag(DragPanning, ev.Button)
		if c.cursor != nil {
			c.cursor.SetCursor(ebiten.CursorShapeMove)
		}
	case ButtonLeft, ButtonRight:
		if c.AllowSelection {
			c.beginDrag(DragSelecting, ev.Button)
			c.selection = image.Rectangle{Min: ev.Location, Max: ev.Location}
			c.notifier.selectionOutlineChanged(c.selection)
		}
	}
}

func (c *InteractionController) beginDrag(state DragState, button PointerButton) {
	if c.cursor != nil {
		c.previousCursor = c.cursor.Cursor()
	}
	c.drag = state
	c.dragButton = button
}

func (c *InteractionController) handleMove(ev PointerEvent) {
	switch c.drag {
	case DragPanning:
		c.mapper.Pan(ev.Location.Sub(c.lastLocation))
	case DragSelecting:
		if c.inViewport(ev.Location) {
			c.selection.Max = ev.Location
			c.notifier.selectionOutlineChanged(c.selection.Canon())
		}
	}
	c.lastLocation = ev.Location
}

func (c *InteractionController) handleUp(ev PointerEvent) {
	// releases of buttons that did not start the drag are ignored
	if c.drag == DragIdle || ev.Button != c.dragButton {
		return
	}

	if c.cursor != nil {
		c.cursor.SetCursor(c.previousCursor)
	}

	if c.drag == DragSelecting {
		c.notifier.selectionOutlineChanged(image.Rectangle{})
	}
	if c.AllowSelection {
		c.notifier.selectedAreaChanged(c.SelectedArea())
	}

	c.selection = image.Rectangle{}
	c.drag = DragIdle
	c.dragButton = ButtonNone
}

// Resize tells the controller the viewport now has the given size
func (c *InteractionController) Resize(size image.Point) {
	c.mapper.OnViewportResized(c.mapper.Viewport(), size)
}

// BindImage assigns a new image to the view
func (c *InteractionController) BindImage(b Bitmap) {
	c.mapper.SetImage(b)
}

// LoadCompleted is called when an asynchronous load of b has finished
func (c *InteractionController) LoadCompleted(b Bitmap) {
	c.mapper.LoadCompleted(b)
}

// SelectedArea returns the current selection in image space. It is valid mid-drag.
func (c *InteractionController) SelectedArea() RectF {
	area, _ := c.mapper.RectToImage(RectFFromRectangle(c.selection))
	return area
}

// Selection returns the in-progress selection in viewport space, canonicalized for drawing
func (c *InteractionController) Selection() image.Rectangle {
	return c.selection.Canon()
}

// DragState returns what the current drag, if any, is doing
func (c *InteractionController) DragState() DragState {
	return c.drag
}

func (c *InteractionController) inViewport(p image.Point) bool {
	vp := c.mapper.Viewport()
	return p.In(image.Rectangle{Max: vp})
}
