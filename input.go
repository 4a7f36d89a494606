package main

// InputHandler dispatches keyboard and mouse bindings to actions
type InputHandler struct {
	inputActions        InputActions
	inputState          InputState
	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager
}

// NewInputHandler creates a new InputHandler
func NewInputHandler(inputActions InputActions, inputState InputState, keybindingManager *KeybindingManager, mousebindingManager *MousebindingManager) *InputHandler {
	return &InputHandler{
		inputActions:        inputActions,
		inputState:          inputState,
		keybindingManager:   keybindingManager,
		mousebindingManager: mousebindingManager,
	}
}

// HandleInput processes all bound actions for the current frame.
// Returns true if any action ran.
func (h *InputHandler) HandleInput() bool {
	inputProcessed := false

	for _, action := range actionNames() {
		if h.handleAction(action) {
			inputProcessed = true
		}
	}

	return inputProcessed
}

func (h *InputHandler) handleAction(action string) bool {
	if h.keybindingManager.ExecuteAction(action, h.inputActions, h.inputState) {
		return true
	}
	if h.mousebindingManager != nil {
		return h.mousebindingManager.ExecuteAction(action, h.inputActions, h.inputState)
	}
	return false
}
