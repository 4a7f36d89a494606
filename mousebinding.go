package main

import (
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MouseSettings contains mouse-specific configuration
type MouseSettings struct {
	DoubleClickTime int  `json:"double_click_time"` // milliseconds
	EnableMouse     bool `json:"enable_mouse"`
	WheelInverted   bool `json:"wheel_inverted"`
	EnableWheelZoom bool `json:"enable_wheel_zoom"`
	EnableDragPan   bool `json:"enable_drag_pan"` // middle button drag pans
}

// GetDefaultMouseSettings returns the default mouse settings
func GetDefaultMouseSettings() MouseSettings {
	return MouseSettings{
		DoubleClickTime: 300,
		EnableMouse:     true,
		WheelInverted:   false,
		EnableWheelZoom: true,
		EnableDragPan:   true,
	}
}

// DoubleClickTracker tracks double-click state
type DoubleClickTracker struct {
	lastClickTime   time.Time
	lastClickButton ebiten.MouseButton
	clickCount      int
}

// MouseCombination represents a mouse action with optional modifiers
type MouseCombination struct {
	Button        ebiten.MouseButton
	IsWheel       bool
	WheelDeltaX   float64
	WheelDeltaY   float64
	IsDoubleClick bool
	Shift         bool
	Ctrl          bool
	Alt           bool
}

// MousebindingManager handles named mouse bindings such as "Ctrl+MiddleClick"
type MousebindingManager struct {
	mousebindings      map[string][]string
	mouseMapping       map[string]ebiten.MouseButton
	settings           MouseSettings
	doubleClickTracker DoubleClickTracker
}

// NewMousebindingManager creates a new MousebindingManager
func NewMousebindingManager(mousebindings map[string][]string, settings MouseSettings) *MousebindingManager {
	return &MousebindingManager{
		mousebindings: mousebindings,
		mouseMapping:  getMouseMapping(),
		settings:      settings,
		doubleClickTracker: DoubleClickTracker{
			lastClickTime: time.Now(),
		},
	}
}

// getMouseMapping returns a mapping from binding names to Ebiten mouse buttons
func getMouseMapping() map[string]ebiten.MouseButton {
	return map[string]ebiten.MouseButton{
		"LeftClick":   ebiten.MouseButtonLeft,
		"RightClick":  ebiten.MouseButtonRight,
		"MiddleClick": ebiten.MouseButtonMiddle,
		"Back":        ebiten.MouseButton3,
		"Forward":     ebiten.MouseButton4,
	}
}

// parseMouseString parses a mouse string like "Shift+LeftClick" or "WheelUp" into a MouseCombination
func (mm *MousebindingManager) parseMouseString(mouseStr string) (*MouseCombination, error) {
	mods, actionName, err := splitModifiers(mouseStr)
	if err != nil {
		return nil, err
	}

	combination := &MouseCombination{Shift: mods.Shift, Ctrl: mods.Ctrl, Alt: mods.Alt}

	switch {
	case strings.HasPrefix(actionName, "Wheel"):
		combination.IsWheel = true
		switch actionName {
		case "WheelUp":
			combination.WheelDeltaY = 1.0
		case "WheelDown":
			combination.WheelDeltaY = -1.0
		case "WheelLeft":
			combination.WheelDeltaX = -1.0
		case "WheelRight":
			combination.WheelDeltaX = 1.0
		default:
			return nil, fmt.Errorf("unknown wheel action: %s", actionName)
		}
	case strings.HasPrefix(actionName, "Double"):
		button, exists := mm.mouseMapping[strings.TrimPrefix(actionName, "Double")]
		if !exists {
			return nil, fmt.Errorf("unknown mouse action: %s", actionName)
		}
		combination.IsDoubleClick = true
		combination.Button = button
	default:
		button, exists := mm.mouseMapping[actionName]
		if !exists {
			return nil, fmt.Errorf("unknown mouse action: %s", actionName)
		}
		combination.Button = button
	}

	return combination, nil
}

// isMouseActionTriggered checks if a mouse combination is triggered this frame
func (mm *MousebindingManager) isMouseActionTriggered(combination *MouseCombination) bool {
	if !mm.settings.EnableMouse {
		return false
	}
	if !modifiersHeld(modifiers{Shift: combination.Shift, Ctrl: combination.Ctrl, Alt: combination.Alt}) {
		return false
	}

	if combination.IsWheel {
		wheelX, wheelY := ebiten.Wheel()
		if mm.settings.WheelInverted {
			wheelY = -wheelY
		}
		if combination.WheelDeltaX != 0 {
			return combination.WheelDeltaX*wheelX > 0
		}
		return combination.WheelDeltaY*wheelY > 0
	}

	if combination.IsDoubleClick {
		return mm.checkDoubleClick(combination.Button)
	}

	return inpututil.IsMouseButtonJustPressed(combination.Button)
}

// checkDoubleClick checks if a double-click occurred for the given button
func (mm *MousebindingManager) checkDoubleClick(button ebiten.MouseButton) bool {
	if !inpututil.IsMouseButtonJustPressed(button) {
		return false
	}

	now := time.Now()
	window := time.Duration(mm.settings.DoubleClickTime) * time.Millisecond
	tracker := &mm.doubleClickTracker

	if tracker.lastClickButton == button && now.Sub(tracker.lastClickTime) <= window {
		tracker.clickCount++
		if tracker.clickCount == 2 {
			tracker.clickCount = 0
			tracker.lastClickTime = now
			return true
		}
	} else {
		tracker.clickCount = 1
		tracker.lastClickButton = button
	}

	tracker.lastClickTime = now
	return false
}

// CheckAction checks if any mouse binding for the given action is triggered
func (mm *MousebindingManager) CheckAction(action string) bool {
	for _, mouseStr := range mm.mousebindings[action] {
		combination, err := mm.parseMouseString(mouseStr)
		if err == nil && mm.isMouseActionTriggered(combination) {
			return true
		}
	}
	return false
}

// ExecuteAction executes the given action if one of its mouse bindings fired
func (mm *MousebindingManager) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	if !mm.CheckAction(action) {
		return false
	}
	return globalActionExecutor.ExecuteAction(action, inputActions, inputState)
}

// GetMousebindings returns the current mouse bindings map (for display purposes)
func (mm *MousebindingManager) GetMousebindings() map[string][]string {
	return mm.mousebindings
}

// pointerSample is the raw mouse state polled in one frame
type pointerSample struct {
	Location image.Point
	Left     bool
	Right    bool
	Middle   bool
	Wheel    float64
	// Modified is set while Shift, Ctrl or Alt is held; the wheel and button presses then belong to bindings
	Modified bool
}

// PointerTracker turns polled mouse state into PointerEvents by comparing consecutive frames
type PointerTracker struct {
	settings MouseSettings
	prev     pointerSample
	inside   bool
	started  bool
	down     map[PointerButton]bool
}

// NewPointerTracker creates a tracker using the given settings
func NewPointerTracker(settings MouseSettings) *PointerTracker {
	return &PointerTracker{settings: settings, down: make(map[PointerButton]bool)}
}

// Poll reads the mouse from ebiten and returns this frame's events
func (t *PointerTracker) Poll(viewport image.Point) []PointerEvent {
	x, y := ebiten.CursorPosition()
	_, wheelY := ebiten.Wheel()
	sample := pointerSample{
		Location: image.Pt(x, y),
		Left:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Right:    ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		Middle:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle),
		Wheel:    wheelY,
		Modified: ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyAlt),
	}
	return t.Next(sample, viewport)
}

// Next diffs sample against the previous frame. Events come out in the order
// enter/leave, move, button transitions, wheel.
func (t *PointerTracker) Next(sample pointerSample, viewport image.Point) []PointerEvent {
	if !t.settings.EnableMouse {
		t.prev = sample
		return nil
	}

	var events []PointerEvent
	loc := sample.Location

	inside := loc.In(image.Rectangle{Max: viewport})
	if inside != t.inside {
		kind := PointerLeave
		if inside {
			kind = PointerEnter
		}
		events = append(events, PointerEvent{Kind: kind, Location: loc})
		t.inside = inside
	}

	if !t.started || loc != t.prev.Location {
		events = append(events, PointerEvent{Kind: PointerMove, Button: t.dragButton(), Location: loc})
	}

	transitions := []struct {
		button   PointerButton
		was, now bool
	}{
		{ButtonLeft, t.prev.Left, sample.Left},
		{ButtonRight, t.prev.Right, sample.Right},
		{ButtonMiddle, t.prev.Middle && t.settings.EnableDragPan, sample.Middle && t.settings.EnableDragPan},
	}
	for _, tr := range transitions {
		switch {
		case tr.now && !tr.was:
			// modified clicks belong to mouse bindings
			if sample.Modified {
				continue
			}
			t.down[tr.button] = true
			events = append(events, PointerEvent{Kind: PointerDown, Button: tr.button, Location: loc})
		case !tr.now && tr.was && t.down[tr.button]:
			t.down[tr.button] = false
			events = append(events, PointerEvent{Kind: PointerUp, Button: tr.button, Location: loc})
		}
	}

	if sample.Wheel != 0 && !sample.Modified && t.settings.EnableWheelZoom {
		delta := sample.Wheel
		if t.settings.WheelInverted {
			delta = -delta
		}
		events = append(events, PointerEvent{Kind: PointerWheel, Location: loc, WheelDelta: delta})
	}

	t.prev = sample
	t.started = true
	return events
}

// dragButton is the single button whose press was reported and not yet released,
// or ButtonNone when zero or several are down
func (t *PointerTracker) dragButton() PointerButton {
	held := ButtonNone
	for _, b := range []PointerButton{ButtonLeft, ButtonRight, ButtonMiddle} {
		if !t.down[b] {
			continue
		}
		if held != ButtonNone {
			return ButtonNone
		}
		held = b
	}
	return held
}
