package main

import (
	"errors"
	"fmt"
)

// DisplayMode controls how an image is fitted into the viewport
type DisplayMode string

const (
	DisplayModeNormal   DisplayMode = "normal"
	DisplayModeStretch  DisplayMode = "stretch"
	DisplayModeAutoSize DisplayMode = "autosize"
	DisplayModeCenter   DisplayMode = "center"
	DisplayModeZoom     DisplayMode = "zoom"
)

// ErrUnsupportedDisplayMode is returned for any mode other than DisplayModeNormal.
// The other modes fit the image themselves and would fight with manual zoom and pan.
var ErrUnsupportedDisplayMode = errors.New("display mode must be 'normal'")

// ValidateDisplayMode rejects every mode except DisplayModeNormal
func ValidateDisplayMode(mode DisplayMode) error {
	if mode != DisplayModeNormal {
		return fmt.Errorf("display mode %q: %w", mode, ErrUnsupportedDisplayMode)
	}
	return nil
}
