package main

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// Overlay message display duration
	overlayMessageDuration = 2 * time.Second
)

// RenderState provides read-only access to viewer state for the renderer
type RenderState interface {
	// Bound image and its geometry
	GetCurrentImage() *ebiten.Image
	IsLoading() bool
	GetZoomArea() RectF
	GetVisiblePortion() image.Rectangle

	// Selection
	IsSelectionAllowed() bool
	GetSelection() image.Rectangle
	GetSelectedArea() RectF
	GetDragState() DragState

	// UI state
	IsShowingHelp() bool
	IsShowingInfo() bool
	GetOverlayMessage() string
	GetOverlayMessageTime() time.Time

	// Display data
	GetCurrentIndex() int
	GetTotalPagesCount() int
	GetFontSize() float64
	GetConfigStatus() ConfigLoadResult
	GetKeybindings() map[string][]string
	GetMousebindings() map[string][]string
}

// RenderStateSnapshot captures the state that can change without any input event
type RenderStateSnapshot struct {
	// Overlay message state (auto-expires after 2 seconds)
	OverlayMessage string
	OverlayActive  bool

	// Window dimensions for resize detection
	WindowWidth  int
	WindowHeight int

	Loading bool
}

// NewRenderStateSnapshot creates a lightweight snapshot of non-input state
func NewRenderStateSnapshot(state RenderState, windowWidth, windowHeight int) *RenderStateSnapshot {
	message := state.GetOverlayMessage()
	return &RenderStateSnapshot{
		OverlayMessage: message,
		OverlayActive:  message != "" && time.Since(state.GetOverlayMessageTime()) < overlayMessageDuration,
		WindowWidth:    windowWidth,
		WindowHeight:   windowHeight,
		Loading:        state.IsLoading(),
	}
}

// Equals checks if two snapshots would render the same
func (s *RenderStateSnapshot) Equals(other *RenderStateSnapshot) bool {
	if other == nil {
		return false
	}

	overlayEqual := s.OverlayActive == other.OverlayActive
	if s.OverlayActive {
		overlayEqual = overlayEqual && s.OverlayMessage == other.OverlayMessage
	}

	return overlayEqual &&
		s.WindowWidth == other.WindowWidth &&
		s.WindowHeight == other.WindowHeight &&
		s.Loading == other.Loading
}

// InputActions provides action methods for the input handlers
type InputActions interface {
	// Application control
	Exit()

	// Display toggles
	ToggleHelp()
	ToggleInfo()
	ToggleFullscreen()
	ToggleSelection()

	// Navigation
	NavigateNext()
	NavigatePrevious()

	// Zoom and pan, anchored at the viewport center
	ZoomIn()
	ZoomOut()
	ShowAll()
	ShowCenter()
	PanUp()
	PanDown()
	PanLeft()
	PanRight()

	// Export
	SaveThumbnail()

	// Messages
	ShowOverlayMessage(message string)

	GetTotalPagesCount() int
}

// InputState provides read-only access to input-related state
type InputState interface {
	GetDragState() DragState
}
