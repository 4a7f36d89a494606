package main

// ActionDefinition defines an action with its default keybindings, mouse bindings, and description
type ActionDefinition struct {
	Name         string
	Keys         []string
	MouseActions []string
	Description  string
}

// actionDefinitions contains all action definitions with default bindings and descriptions.
// Plain wheel and plain button drags are reserved for zoom, pan and selection.
var actionDefinitions = []ActionDefinition{
	{"exit", []string{"Escape", "KeyQ"}, []string{}, "Quit application"},
	{"help", []string{"Shift+Slash"}, []string{"Alt+RightClick"}, "Show/hide help"},
	{"info", []string{"KeyI"}, []string{}, "Show/hide info display"},
	{"next", []string{"Space", "KeyN"}, []string{"Shift+WheelDown", "Forward"}, "Next image"},
	{"previous", []string{"Backspace", "KeyP"}, []string{"Shift+WheelUp", "Back"}, "Previous image"},
	{"fullscreen", []string{"Enter"}, []string{}, "Toggle fullscreen"},
	{"toggle_selection", []string{"KeyS"}, []string{"Alt+LeftClick"}, "Enable/disable area selection"},
	{"save_thumbnail", []string{"KeyT"}, []string{}, "Save a thumbnail marking the visible area"},

	// Zoom and pan actions
	{"zoom_in", []string{"Equal", "Shift+Equal"}, []string{}, "Zoom in at the center"},
	{"zoom_out", []string{"Minus"}, []string{}, "Zoom out at the center"},
	{"show_all", []string{"KeyF", "Key0"}, []string{"DoubleMiddleClick"}, "Show the whole image"},
	{"show_center", []string{"KeyC"}, []string{"Ctrl+MiddleClick"}, "Center the visible area on the image"},
	{"pan_up", []string{"ArrowUp"}, []string{}, "Pan up"},
	{"pan_down", []string{"ArrowDown"}, []string{}, "Pan down"},
	{"pan_left", []string{"ArrowLeft"}, []string{}, "Pan left"},
	{"pan_right", []string{"ArrowRight"}, []string{}, "Pan right"},
}

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keybindings[action.Name] = action.Keys
	}
	return keybindings
}

// GetDefaultMousebindings returns a map of action names to their default mouse bindings
func GetDefaultMousebindings() map[string][]string {
	mousebindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		mousebindings[action.Name] = action.MouseActions
	}
	return mousebindings
}

// actionNames returns action names in definition order
func actionNames() []string {
	names := make([]string, 0, len(actionDefinitions))
	for _, action := range actionDefinitions {
		names = append(names, action.Name)
	}
	return names
}
