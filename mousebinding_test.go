package main

import (
	"image"
	"reflect"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestParseMouseString(t *testing.T) {
	mm := NewMousebindingManager(nil, GetDefaultMouseSettings())

	tests := []struct {
		input    string
		expected *MouseCombination
	}{
		{"LeftClick", &MouseCombination{Button: ebiten.MouseButtonLeft}},
		{"Alt+RightClick", &MouseCombination{Button: ebiten.MouseButtonRight, Alt: true}},
		{"Ctrl+MiddleClick", &MouseCombination{Button: ebiten.MouseButtonMiddle, Ctrl: true}},
		{"DoubleMiddleClick", &MouseCombination{Button: ebiten.MouseButtonMiddle, IsDoubleClick: true}},
		{"Shift+WheelDown", &MouseCombination{IsWheel: true, WheelDeltaY: -1, Shift: true}},
		{"WheelRight", &MouseCombination{IsWheel: true, WheelDeltaX: 1}},
		{"Back", &MouseCombination{Button: ebiten.MouseButton3}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := mm.parseMouseString(tt.input)
			if err != nil {
				t.Fatalf("parseMouseString(%q): %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("parseMouseString(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}

	for _, bad := range []string{"", "Shift+", "Meta+LeftClick", "WheelSideways", "DoubleWheel", "TopClick"} {
		if _, err := mm.parseMouseString(bad); err == nil {
			t.Errorf("parseMouseString(%q) should fail", bad)
		}
	}
}

func TestParseKeyString(t *testing.T) {
	km := NewKeybindingManager(nil)

	got, err := km.parseKeyString("Shift+Ctrl+KeyT")
	if err != nil {
		t.Fatalf("parseKeyString: %v", err)
	}
	want := &KeyCombination{Key: ebiten.KeyT, Shift: true, Ctrl: true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseKeyString() = %+v, want %+v", got, want)
	}

	for _, bad := range []string{"", "KeyUnknown", "Hyper+KeyA", "Alt+"} {
		if _, err := km.parseKeyString(bad); err == nil {
			t.Errorf("parseKeyString(%q) should fail", bad)
		}
	}
}

func TestDefaultBindingsParse(t *testing.T) {
	if err := validateKeybindings(GetDefaultKeybindings()); err != nil {
		t.Errorf("default keybindings: %v", err)
	}
	if err := validateMousebindings(GetDefaultMousebindings()); err != nil {
		t.Errorf("default mouse bindings: %v", err)
	}

	descriptions := GetActionDescriptions()
	for _, action := range actionNames() {
		if descriptions[action] == "" {
			t.Errorf("action %q has no description", action)
		}
	}
}

// trackFrames feeds samples to a fresh tracker and returns the events of each frame
func trackFrames(settings MouseSettings, samples ...pointerSample) [][]PointerEvent {
	tracker := NewPointerTracker(settings)
	var frames [][]PointerEvent
	for _, s := range samples {
		frames = append(frames, tracker.Next(s, image.Pt(100, 100)))
	}
	return frames
}

func TestPointerTrackerDrag(t *testing.T) {
	at := image.Pt(10, 10)
	to := image.Pt(20, 30)

	frames := trackFrames(GetDefaultMouseSettings(),
		pointerSample{Location: at},
		pointerSample{Location: at, Left: true},
		pointerSample{Location: to, Left: true},
		pointerSample{Location: to},
		pointerSample{Location: to, Wheel: 1},
	)

	want := [][]PointerEvent{
		{{Kind: PointerEnter, Location: at}, {Kind: PointerMove, Location: at}},
		{{Kind: PointerDown, Button: ButtonLeft, Location: at}},
		{{Kind: PointerMove, Button: ButtonLeft, Location: to}},
		{{Kind: PointerUp, Button: ButtonLeft, Location: to}},
		{{Kind: PointerWheel, Location: to, WheelDelta: 1}},
	}
	if !reflect.DeepEqual(frames, want) {
		t.Errorf("events = %+v\nwant %+v", frames, want)
	}
}

func TestPointerTrackerMoveBeforePress(t *testing.T) {
	frames := trackFrames(GetDefaultMouseSettings(),
		pointerSample{Location: image.Pt(10, 10)},
		pointerSample{Location: image.Pt(40, 40), Middle: true},
	)

	want := []PointerEvent{
		{Kind: PointerMove, Location: image.Pt(40, 40)},
		{Kind: PointerDown, Button: ButtonMiddle, Location: image.Pt(40, 40)},
	}
	if !reflect.DeepEqual(frames[1], want) {
		t.Errorf("events = %+v, want %+v", frames[1], want)
	}
}

func TestPointerTrackerModifiedClick(t *testing.T) {
	at := image.Pt(10, 10)
	frames := trackFrames(GetDefaultMouseSettings(),
		pointerSample{Location: at},
		pointerSample{Location: at, Left: true, Modified: true},
		pointerSample{Location: image.Pt(15, 15), Left: true},
		pointerSample{Location: image.Pt(15, 15), Wheel: -1, Modified: true},
		pointerSample{Location: image.Pt(15, 15)},
	)

	if len(frames[1]) != 0 {
		t.Errorf("modified press produced %+v", frames[1])
	}
	// the suppressed button is not reported as dragging
	wantMove := []PointerEvent{{Kind: PointerMove, Location: image.Pt(15, 15)}}
	if !reflect.DeepEqual(frames[2], wantMove) {
		t.Errorf("move events = %+v, want %+v", frames[2], wantMove)
	}
	if len(frames[3]) != 0 {
		t.Errorf("modified wheel produced %+v", frames[3])
	}
	if len(frames[4]) != 0 {
		t.Errorf("release of a suppressed press produced %+v", frames[4])
	}
}

func TestPointerTrackerModifiedMiddleClick(t *testing.T) {
	at := image.Pt(10, 10)
	frames := trackFrames(GetDefaultMouseSettings(),
		pointerSample{Location: at},
		pointerSample{Location: at, Middle: true, Modified: true},
		pointerSample{Location: image.Pt(30, 30), Middle: true},
		pointerSample{Location: image.Pt(30, 30)},
	)

	if len(frames[1]) != 0 {
		t.Errorf("Ctrl+MiddleClick started a drag: %+v", frames[1])
	}
	wantMove := []PointerEvent{{Kind: PointerMove, Location: image.Pt(30, 30)}}
	if !reflect.DeepEqual(frames[2], wantMove) {
		t.Errorf("move events = %+v, want %+v", frames[2], wantMove)
	}
	if len(frames[3]) != 0 {
		t.Errorf("release of a suppressed middle press produced %+v", frames[3])
	}
}

func TestPointerTrackerSettings(t *testing.T) {
	t.Run("DragPanDisabled", func(t *testing.T) {
		settings := GetDefaultMouseSettings()
		settings.EnableDragPan = false
		at := image.Pt(5, 5)
		frames := trackFrames(settings, pointerSample{Location: at}, pointerSample{Location: at, Middle: true})
		if len(frames[1]) != 0 {
			t.Errorf("middle press produced %+v", frames[1])
		}
	})

	t.Run("WheelInverted", func(t *testing.T) {
		settings := GetDefaultMouseSettings()
		settings.WheelInverted = true
		at := image.Pt(5, 5)
		frames := trackFrames(settings, pointerSample{Location: at}, pointerSample{Location: at, Wheel: 2})
		want := []PointerEvent{{Kind: PointerWheel, Location: at, WheelDelta: -2}}
		if !reflect.DeepEqual(frames[1], want) {
			t.Errorf("events = %+v, want %+v", frames[1], want)
		}
	})

	t.Run("WheelZoomDisabled", func(t *testing.T) {
		settings := GetDefaultMouseSettings()
		settings.EnableWheelZoom = false
		at := image.Pt(5, 5)
		frames := trackFrames(settings, pointerSample{Location: at}, pointerSample{Location: at, Wheel: 1})
		if len(frames[1]) != 0 {
			t.Errorf("wheel produced %+v", frames[1])
		}
	})

	t.Run("MouseDisabled", func(t *testing.T) {
		settings := GetDefaultMouseSettings()
		settings.EnableMouse = false
		frames := trackFrames(settings, pointerSample{Location: image.Pt(5, 5), Left: true})
		if frames[0] != nil {
			t.Errorf("disabled mouse produced %+v", frames[0])
		}
	})
}

func TestPointerTrackerLeave(t *testing.T) {
	frames := trackFrames(GetDefaultMouseSettings(),
		pointerSample{Location: image.Pt(50, 50)},
		pointerSample{Location: image.Pt(150, 50)},
	)

	want := []PointerEvent{
		{Kind: PointerLeave, Location: image.Pt(150, 50)},
		{Kind: PointerMove, Location: image.Pt(150, 50)},
	}
	if !reflect.DeepEqual(frames[1], want) {
		t.Errorf("events = %+v, want %+v", frames[1], want)
	}
}
