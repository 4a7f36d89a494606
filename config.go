package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Window size constants
const (
	defaultWidth  = 800
	defaultHeight = 600
	minWidth      = 400
	minHeight     = 300
)

// Sort method constants
const (
	SortNatural    = 0 // Natural sort order (e.g., file1, file2, file10)
	SortSimple     = 1 // Simple string sort (lexicographical)
	SortEntryOrder = 2 // Maintain original order (no sort)
)

const (
	defaultPanStep         = 50 // viewport pixels per arrow key press
	defaultThumbnailWidth  = 160
	defaultThumbnailHeight = 120
	defaultFrameColor      = "#ff0000"
)

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string // "OK", "Default", "Warning", "Error"
}

type Config struct {
	WindowWidth         int                 `json:"window_width"`
	WindowHeight        int                 `json:"window_height"`
	AllowSelection      bool                `json:"allow_selection"`
	DisplayMode         DisplayMode         `json:"display_mode"`
	HelpFontSize        float64             `json:"help_font_size"`
	SortMethod          int                 `json:"sort_method"`
	CacheSize           int                 `json:"cache_size"`
	PreloadEnabled      bool                `json:"preload_enabled"`
	PreloadCount        int                 `json:"preload_count"`
	PanStep             int                 `json:"pan_step"`
	ThumbnailWidth      int                 `json:"thumbnail_width"`
	ThumbnailHeight     int                 `json:"thumbnail_height"`
	ThumbnailFrameColor string              `json:"thumbnail_frame_color"`
	Keybindings         map[string][]string `json:"keybindings"`
	Mousebindings       map[string][]string `json:"mousebindings"`
	Mouse               MouseSettings       `json:"mouse"`
}

func defaultConfig() Config {
	return Config{
		WindowWidth:         defaultWidth,
		WindowHeight:        defaultHeight,
		AllowSelection:      true,
		DisplayMode:         DisplayModeNormal,
		HelpFontSize:        24.0,
		SortMethod:          SortNatural,
		CacheSize:           16,
		PreloadEnabled:      true,
		PreloadCount:        4,
		PanStep:             defaultPanStep,
		ThumbnailWidth:      defaultThumbnailWidth,
		ThumbnailHeight:     defaultThumbnailHeight,
		ThumbnailFrameColor: defaultFrameColor,
		Keybindings:         GetDefaultKeybindings(),
		Mousebindings:       GetDefaultMousebindings(),
		Mouse:               GetDefaultMouseSettings(),
	}
}

// validateKeybindings checks key names and detects keys bound to two actions
func validateKeybindings(keybindings map[string][]string) error {
	km := NewKeybindingManager(keybindings)
	keyToAction := make(map[string]string)

	for action, keys := range keybindings {
		for _, keyStr := range keys {
			if _, err := km.parseKeyString(keyStr); err != nil {
				return fmt.Errorf("invalid key '%s' for action '%s': %w", keyStr, action, err)
			}
			if existingAction, exists := keyToAction[keyStr]; exists {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existingAction, action)
			}
			keyToAction[keyStr] = action
		}
	}
	return nil
}

// validateMousebindings checks mouse binding names
func validateMousebindings(mousebindings map[string][]string) error {
	mm := NewMousebindingManager(mousebindings, GetDefaultMouseSettings())
	for action, bindings := range mousebindings {
		for _, mouseStr := range bindings {
			if _, err := mm.parseMouseString(mouseStr); err != nil {
				return fmt.Errorf("invalid mouse binding '%s' for action '%s': %w", mouseStr, action, err)
			}
		}
	}
	return nil
}

// parseFrameColor parses a hex color such as "#ff8800". "transparent" disables the frame.
func parseFrameColor(s string) (color.Color, error) {
	if strings.EqualFold(s, "transparent") {
		return color.Transparent, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid frame color %q: %w", s, err)
	}
	return c.Clamped(), nil
}

func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "zv.json"
	}
	return filepath.Join(homeDir, ".zv.json")
}

func loadConfig() ConfigLoadResult {
	return loadConfigFromPath(getConfigPath())
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := defaultConfig()

	result := ConfigLoadResult{
		Config:   config,
		HasError: false,
		Warnings: []string{},
		Status:   "OK",
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config file not found is not an error - use defaults
		result.Status = "Default"
		return result
	}

	if err := json.Unmarshal(data, &config); err != nil {
		log.Printf("Warning: Invalid config file %s, using defaults: %v", configPath, err)
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		return result
	}

	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		log.Printf("Warning: %s", msg)
		result.Status = "Warning"
		result.Warnings = append(result.Warnings, msg)
	}

	// Validate minimum size
	if config.WindowWidth < minWidth {
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		config.WindowHeight = defaultHeight
	}

	// Display mode is checked by the caller, which refuses to start on anything but
	// "normal"; only a missing value is defaulted here.
	if config.DisplayMode == "" {
		config.DisplayMode = DisplayModeNormal
	}

	// Validate help font size (minimum 12px for readability)
	if config.HelpFontSize <= 12.0 {
		config.HelpFontSize = 24.0
	}

	if config.SortMethod < SortNatural || config.SortMethod > SortEntryOrder {
		config.SortMethod = SortNatural
	}

	// Validate cache size (minimum 1, maximum 64)
	if config.CacheSize < 1 {
		config.CacheSize = 16
	} else if config.CacheSize > 64 {
		config.CacheSize = 64
	}

	// Validate preload count (minimum 1, maximum 16)
	if config.PreloadCount < 1 {
		config.PreloadCount = 4
	} else if config.PreloadCount > 16 {
		config.PreloadCount = 16
	}

	if config.PanStep < 1 {
		config.PanStep = defaultPanStep
	}

	if config.ThumbnailWidth < 1 || config.ThumbnailHeight < 1 {
		config.ThumbnailWidth = defaultThumbnailWidth
		config.ThumbnailHeight = defaultThumbnailHeight
	}

	if _, err := parseFrameColor(config.ThumbnailFrameColor); err != nil {
		warn("%v, using %s", err, defaultFrameColor)
		config.ThumbnailFrameColor = defaultFrameColor
	}

	// Fill in missing bindings with defaults, then validate
	config.Keybindings = mergeBindings(config.Keybindings, GetDefaultKeybindings())
	if err := validateKeybindings(config.Keybindings); err != nil {
		warn("Keybinding errors: %v", err)
		config.Keybindings = GetDefaultKeybindings()
	}

	config.Mousebindings = mergeBindings(config.Mousebindings, GetDefaultMousebindings())
	if err := validateMousebindings(config.Mousebindings); err != nil {
		warn("Mouse binding errors: %v", err)
		config.Mousebindings = GetDefaultMousebindings()
	}

	if config.Mouse.DoubleClickTime <= 0 {
		config.Mouse.DoubleClickTime = GetDefaultMouseSettings().DoubleClickTime
	}

	result.Config = config
	return result
}

// mergeBindings adds default bindings for actions missing from bindings
func mergeBindings(bindings, defaults map[string][]string) map[string][]string {
	if bindings == nil {
		return defaults
	}
	for action, defaultBindings := range defaults {
		if _, exists := bindings[action]; !exists {
			bindings[action] = defaultBindings
		}
	}
	return bindings
}

// getSortMethodName returns the human-readable name of a sort method
func getSortMethodName(sortMethod int) string {
	return GetSortStrategy(sortMethod).Name()
}

func saveConfig(config Config) {
	saveConfigToPath(config, getConfigPath())
}

func saveConfigToPath(config Config, configPath string) {
	// Don't save if size is too small
	if config.WindowWidth < minWidth || config.WindowHeight < minHeight {
		log.Printf("Warning: Not saving config with invalid window size: %dx%d",
			config.WindowWidth, config.WindowHeight)
		return
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		log.Printf("Error: Failed to marshal config: %v", err)
		return
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		log.Printf("Error: Failed to save config to %s: %v", configPath, err)
	}
}
