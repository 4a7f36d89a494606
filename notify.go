package main

import "image"

// Notifier fans out view changes to registered observers.
// Callbacks run synchronously on the goroutine that caused the change.
type Notifier struct {
	visiblePortion   []func()
	selectedArea     []func(area RectF)
	selectionOutline []func(outline image.Rectangle)
}

// NewNotifier creates an empty Notifier
func NewNotifier() *Notifier {
	return &Notifier{}
}

// OnVisiblePortionChanged registers a callback fired after every zoom area mutation
func (n *Notifier) OnVisiblePortionChanged(fn func()) {
	n.visiblePortion = append(n.visiblePortion, fn)
}

// OnSelectedAreaChanged registers a callback receiving the finished selection in image space
func (n *Notifier) OnSelectedAreaChanged(fn func(area RectF)) {
	n.selectedArea = append(n.selectedArea, fn)
}

// OnSelectionOutlineChanged registers a callback receiving the in-progress selection
// outline in viewport space. An empty rectangle means the outline was removed.
func (n *Notifier) OnSelectionOutlineChanged(fn func(outline image.Rectangle)) {
	n.selectionOutline = append(n.selectionOutline, fn)
}

func (n *Notifier) visiblePortionChanged() {
	if n == nil {
		return
	}
	for _, fn := range n.visiblePortion {
		fn()
	}
}

func (n *Notifier) selectedAreaChanged(area RectF) {
	if n == nil {
		return
	}
	for _, fn := range n.selectedArea {
		fn(area)
	}
}

func (n *Notifier) selectionOutlineChanged(outline image.Rectangle) {
	if n == nil {
		return
	}
	for _, fn := range n.selectionOutline {
		fn(outline)
	}
}
