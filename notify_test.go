package main

import (
	"image"
	"testing"
)

func TestNotifierFansOut(t *testing.T) {
	n := NewNotifier()
	var visible, areas, outlines int
	for i := 0; i < 2; i++ {
		n.OnVisiblePortionChanged(func() { visible++ })
		n.OnSelectedAreaChanged(func(RectF) { areas++ })
		n.OnSelectionOutlineChanged(func(image.Rectangle) { outlines++ })
	}

	n.visiblePortionChanged()
	n.selectedAreaChanged(RectF{})
	n.selectionOutlineChanged(image.Rectangle{})

	if visible != 2 || areas != 2 || outlines != 2 {
		t.Errorf("callbacks ran %d/%d/%d times, want 2 each", visible, areas, outlines)
	}
}

func TestNilNotifier(t *testing.T) {
	var n *Notifier
	n.visiblePortionChanged()
	n.selectedAreaChanged(RectF{})
	n.selectionOutlineChanged(image.Rectangle{})
}
