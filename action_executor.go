package main

// ActionExecutor runs named actions for both the keyboard and the mouse bindings
type ActionExecutor struct{}

// NewActionExecutor creates a new ActionExecutor instance
func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// ExecuteAction executes the given action using the InputActions interface.
// Actions that would fight an active drag are skipped and reported as not handled.
func (ae *ActionExecutor) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	dragging := inputState != nil && inputState.GetDragState() != DragIdle

	switch action {
	case "exit":
		inputActions.Exit()
	case "help":
		inputActions.ToggleHelp()
	case "info":
		inputActions.ToggleInfo()
	case "fullscreen":
		inputActions.ToggleFullscreen()
	case "toggle_selection":
		if dragging {
			return false
		}
		inputActions.ToggleSelection()
	case "save_thumbnail":
		inputActions.SaveThumbnail()
	case "next":
		if dragging {
			return false
		}
		inputActions.NavigateNext()
	case "previous":
		if dragging {
			return false
		}
		inputActions.NavigatePrevious()

	// Zoom and pan actions
	case "zoom_in":
		inputActions.ZoomIn()
	case "zoom_out":
		inputActions.ZoomOut()
	case "show_all":
		inputActions.ShowAll()
	case "show_center":
		inputActions.ShowCenter()
	case "pan_up":
		inputActions.PanUp()
	case "pan_down":
		inputActions.PanDown()
	case "pan_left":
		inputActions.PanLeft()
	case "pan_right":
		inputActions.PanRight()

	default:
		return false
	}

	return true
}

// globalActionExecutor is shared by the keyboard and mouse binding managers
var globalActionExecutor = NewActionExecutor()
