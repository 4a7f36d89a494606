package main

import "testing"

// recordingActions records the InputActions calls it receives
type recordingActions struct {
	calls []string
}

func (r *recordingActions) record(name string)            { r.calls = append(r.calls, name) }
func (r *recordingActions) Exit()                         { r.record("Exit") }
func (r *recordingActions) ToggleHelp()                   { r.record("ToggleHelp") }
func (r *recordingActions) ToggleInfo()                   { r.record("ToggleInfo") }
func (r *recordingActions) ToggleFullscreen()             { r.record("ToggleFullscreen") }
func (r *recordingActions) ToggleSelection()              { r.record("ToggleSelection") }
func (r *recordingActions) NavigateNext()                 { r.record("NavigateNext") }
func (r *recordingActions) NavigatePrevious()             { r.record("NavigatePrevious") }
func (r *recordingActions) ZoomIn()                       { r.record("ZoomIn") }
func (r *recordingActions) ZoomOut()                      { r.record("ZoomOut") }
func (r *recordingActions) ShowAll()                      { r.record("ShowAll") }
func (r *recordingActions) ShowCenter()                   { r.record("ShowCenter") }
func (r *recordingActions) PanUp()                        { r.record("PanUp") }
func (r *recordingActions) PanDown()                      { r.record("PanDown") }
func (r *recordingActions) PanLeft()                      { r.record("PanLeft") }
func (r *recordingActions) PanRight()                     { r.record("PanRight") }
func (r *recordingActions) SaveThumbnail()                { r.record("SaveThumbnail") }
func (r *recordingActions) ShowOverlayMessage(msg string) { r.record("ShowOverlayMessage") }
func (r *recordingActions) GetTotalPagesCount() int       { return 3 }

type fixedDragState DragState

func (s fixedDragState) GetDragState() DragState { return DragState(s) }

func TestExecuteAction(t *testing.T) {
	tests := []struct {
		action string
		call   string
	}{
		{"exit", "Exit"},
		{"help", "ToggleHelp"},
		{"info", "ToggleInfo"},
		{"fullscreen", "ToggleFullscreen"},
		{"toggle_selection", "ToggleSelection"},
		{"save_thumbnail", "SaveThumbnail"},
		{"next", "NavigateNext"},
		{"previous", "NavigatePrevious"},
		{"zoom_in", "ZoomIn"},
		{"zoom_out", "ZoomOut"},
		{"show_all", "ShowAll"},
		{"show_center", "ShowCenter"},
		{"pan_up", "PanUp"},
		{"pan_down", "PanDown"},
		{"pan_left", "PanLeft"},
		{"pan_right", "PanRight"},
	}

	executor := NewActionExecutor()
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			actions := &recordingActions{}
			if !executor.ExecuteAction(tt.action, actions, fixedDragState(DragIdle)) {
				t.Fatalf("ExecuteAction(%q) not handled", tt.action)
			}
			if len(actions.calls) != 1 || actions.calls[0] != tt.call {
				t.Errorf("calls = %v, want [%s]", actions.calls, tt.call)
			}
		})
	}

	// every defined action is executable
	handled := make(map[string]bool)
	for _, tt := range tests {
		handled[tt.action] = true
	}
	for _, name := range actionNames() {
		if !handled[name] {
			t.Errorf("action %q is not covered", name)
		}
	}
}

func TestExecuteActionDuringDrag(t *testing.T) {
	executor := NewActionExecutor()

	for _, state := range []DragState{DragPanning, DragSelecting} {
		for _, action := range []string{"next", "previous", "toggle_selection"} {
			actions := &recordingActions{}
			if executor.ExecuteAction(action, actions, fixedDragState(state)) {
				t.Errorf("%s during %v should be skipped", action, state)
			}
			if len(actions.calls) != 0 {
				t.Errorf("%s during %v called %v", action, state, actions.calls)
			}
		}

		actions := &recordingActions{}
		if !executor.ExecuteAction("zoom_in", actions, fixedDragState(state)) {
			t.Errorf("zoom_in during %v should run", state)
		}
	}
}

func TestExecuteUnknownAction(t *testing.T) {
	actions := &recordingActions{}
	if NewActionExecutor().ExecuteAction("rotate", actions, nil) {
		t.Error("unknown action reported as handled")
	}
}
