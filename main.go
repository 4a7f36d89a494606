package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/hajimehoshi/ebiten/v2"
)

// Keyboard zoom step, applied at the viewport center
const (
	keyZoomIn  = 1.25
	keyZoomOut = 0.8
)

var debugMode bool

// debugLog prints only when the -debug flag is set
func debugLog(format string, args ...any) {
	if debugMode {
		log.Printf("Debug: "+format, args...)
	}
}

type Game struct {
	imageManager *ImageManager
	idx          int
	current      *LoadedImage
	loading      bool

	notifier   *Notifier
	mapper     *ViewportMapper
	controller *InteractionController
	tracker    *PointerTracker

	inputHandler        *InputHandler
	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager
	renderer            *Renderer

	fullscreen bool
	savedWinW  int
	savedWinH  int
	config     Config
	configLoad ConfigLoadResult

	showHelp           bool
	showInfo           bool
	overlayMessage     string
	overlayMessageTime time.Time

	needsRedraw  bool
	lastSnapshot *RenderStateSnapshot
	screenSize   image.Point

	thumbAbort ThumbnailAbort
	thumbDone  chan string

	exiting bool
}

// NewGame wires the viewer around an image list and a loaded configuration
func NewGame(paths []ImagePath, configLoad ConfigLoadResult, forceSelection bool) *Game {
	config := configLoad.Config

	g := &Game{
		config:      config,
		configLoad:  configLoad,
		needsRedraw: true,
		thumbDone:   make(chan string, 1),
	}

	g.imageManager = NewImageManager(paths, config.CacheSize, config.PreloadCount, config.PreloadEnabled)

	g.notifier = NewNotifier()
	g.mapper = NewViewportMapper(g.notifier)
	g.controller = NewInteractionController(g.mapper, g.notifier, g)
	g.controller.AllowSelection = config.AllowSelection || forceSelection
	g.tracker = NewPointerTracker(config.Mouse)

	g.notifier.OnVisiblePortionChanged(func() {
		g.needsRedraw = true
	})
	g.notifier.OnSelectionOutlineChanged(func(image.Rectangle) {
		g.needsRedraw = true
	})
	g.notifier.OnSelectedAreaChanged(g.selectionFinished)

	g.keybindingManager = NewKeybindingManager(config.Keybindings)
	g.mousebindingManager = NewMousebindingManager(config.Mousebindings, config.Mouse)
	g.inputHandler = NewInputHandler(g, g, g.keybindingManager, g.mousebindingManager)
	g.renderer = NewRenderer(g)

	if len(configLoad.Warnings) > 0 {
		g.ShowOverlayMessage("Config: " + configLoad.Warnings[0])
	}

	g.showIndex(0)
	return g
}

// selectionFinished reports a completed selection drag
func (g *Game) selectionFinished(area RectF) {
	g.needsRedraw = true
	if area.IsEmpty() {
		return
	}
	r := area.Round()
	debugLog("Selected area %v", area)
	g.ShowOverlayMessage(fmt.Sprintf("Selected %d,%d %dx%d", r.Min.X, r.Min.Y, r.Dx(), r.Dy()))
}

// showIndex makes idx the current image. A cached image is bound immediately and keeps
// the current zoom area; otherwise the view is unbound until the loader delivers.
func (g *Game) showIndex(idx int) {
	g.idx = idx
	g.needsRedraw = true

	if img, ok := g.imageManager.Cached(idx); ok {
		g.current = img
		g.loading = false
		g.controller.BindImage(img.Texture)
		if g.config.PreloadEnabled {
			// the loader answers from the cache and then preloads the neighbors
			g.imageManager.RequestLoad(idx)
		}
	} else {
		g.current = nil
		g.loading = true
		g.controller.BindImage(nil)
		g.imageManager.RequestLoad(idx)
	}
	g.updateWindowTitle()
}

func (g *Game) updateWindowTitle() {
	imagePath, ok := g.imageManager.getPath(g.idx)
	if !ok {
		ebiten.SetWindowTitle("zv")
		return
	}
	ebiten.SetWindowTitle(fmt.Sprintf("zv - %s", filepath.Base(imagePath.Path)))
}

// receiveLoads applies finished loads for the current image
func (g *Game) receiveLoads() {
	for {
		select {
		case res := <-g.imageManager.Results():
			if !g.loading || res.Index != g.idx {
				continue
			}
			g.current = res.Image
			g.loading = false
			g.controller.LoadCompleted(res.Image.Texture)
			g.needsRedraw = true
		default:
			return
		}
	}
}

func (g *Game) receiveThumbnails() {
	select {
	case msg := <-g.thumbDone:
		g.ShowOverlayMessage(msg)
	default:
	}
}

func (g *Game) saveCurrentWindowSize() {
	if g.savedWinW > 0 && g.savedWinH > 0 {
		g.config.WindowWidth = g.savedWinW
		g.config.WindowHeight = g.savedWinH
	}
	saveConfig(g.config)
}

// shutdown stops background work and persists the window size
func (g *Game) shutdown() {
	g.thumbAbort.Abort()
	g.imageManager.Stop()
	g.saveCurrentWindowSize()
}

func (g *Game) Update() error {
	if g.exiting {
		return ebiten.Termination
	}

	if !g.fullscreen {
		if w, h := ebiten.WindowSize(); w > 0 && h > 0 {
			g.savedWinW, g.savedWinH = w, h
		}
	}

	g.mapper.SetVisible(!ebiten.IsWindowMinimized())
	g.receiveLoads()
	g.receiveThumbnails()

	for _, ev := range g.tracker.Poll(g.screenSize) {
		g.controller.HandlePointer(ev)
	}

	if g.inputHandler.HandleInput() {
		g.needsRedraw = true
	}

	if g.exiting {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	snapshot := NewRenderStateSnapshot(g, g.screenSize.X, g.screenSize.Y)
	if !g.needsRedraw && snapshot.Equals(g.lastSnapshot) {
		return
	}

	g.renderer.Draw(screen)
	g.needsRedraw = false
	g.lastSnapshot = snapshot
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := image.Pt(outsideWidth, outsideHeight)
	if size != g.screenSize {
		g.screenSize = size
		g.controller.Resize(size)
		g.needsRedraw = true
	}
	return outsideWidth, outsideHeight
}

// CursorHost implementation

func (g *Game) Cursor() ebiten.CursorShapeType {
	return ebiten.CursorShape()
}

func (g *Game) SetCursor(shape ebiten.CursorShapeType) {
	ebiten.SetCursorShape(shape)
}

// RenderState implementation

func (g *Game) GetCurrentImage() *ebiten.Image {
	if g.current == nil || !g.mapper.HasImage() {
		return nil
	}
	return g.current.Texture
}

func (g *Game) IsLoading() bool                    { return g.loading }
func (g *Game) GetZoomArea() RectF                 { return g.mapper.ZoomArea() }
func (g *Game) GetVisiblePortion() image.Rectangle { return g.mapper.VisiblePortion() }
func (g *Game) IsSelectionAllowed() bool           { return g.controller.AllowSelection }
func (g *Game) GetSelection() image.Rectangle      { return g.controller.Selection() }
func (g *Game) GetSelectedArea() RectF             { return g.controller.SelectedArea() }
func (g *Game) GetDragState() DragState            { return g.controller.DragState() }
func (g *Game) IsShowingHelp() bool                { return g.showHelp }
func (g *Game) IsShowingInfo() bool                { return g.showInfo }
func (g *Game) GetOverlayMessage() string          { return g.overlayMessage }
func (g *Game) GetOverlayMessageTime() time.Time   { return g.overlayMessageTime }
func (g *Game) GetCurrentIndex() int               { return g.idx }
func (g *Game) GetTotalPagesCount() int            { return g.imageManager.GetPathsCount() }
func (g *Game) GetFontSize() float64               { return g.config.HelpFontSize }
func (g *Game) GetConfigStatus() ConfigLoadResult  { return g.configLoad }

func (g *Game) GetKeybindings() map[string][]string {
	return g.keybindingManager.GetKeybindings()
}

func (g *Game) GetMousebindings() map[string][]string {
	return g.mousebindingManager.GetMousebindings()
}

// InputActions implementation

func (g *Game) Exit() {
	g.exiting = true
}

func (g *Game) ToggleHelp() {
	g.showHelp = !g.showHelp
}

func (g *Game) ToggleInfo() {
	g.showInfo = !g.showInfo
}

func (g *Game) ToggleFullscreen() {
	g.fullscreen = !g.fullscreen
	if g.fullscreen {
		g.savedWinW, g.savedWinH = ebiten.WindowSize()
		ebiten.SetFullscreen(true)
		return
	}
	ebiten.SetFullscreen(false)
	if g.savedWinW > 0 && g.savedWinH > 0 {
		ebiten.SetWindowSize(g.savedWinW, g.savedWinH)
	}
}

func (g *Game) ToggleSelection() {
	g.controller.AllowSelection = !g.controller.AllowSelection
	g.config.AllowSelection = g.controller.AllowSelection
	if g.controller.AllowSelection {
		g.ShowOverlayMessage("Selection: On")
	} else {
		g.ShowOverlayMessage("Selection: Off")
	}
}

func (g *Game) NavigateNext() {
	total := g.imageManager.GetPathsCount()
	if total <= 1 {
		return
	}
	g.showIndex((g.idx + 1) % total)
}

func (g *Game) NavigatePrevious() {
	total := g.imageManager.GetPathsCount()
	if total <= 1 {
		return
	}
	g.showIndex((g.idx - 1 + total) % total)
}

func (g *Game) viewportCenter() image.Point {
	return g.mapper.Viewport().Div(2)
}

func (g *Game) ZoomIn() {
	g.mapper.Zoom(keyZoomIn, g.viewportCenter())
}

func (g *Game) ZoomOut() {
	g.mapper.Zoom(keyZoomOut, g.viewportCenter())
}

func (g *Game) ShowAll() {
	g.mapper.ShowAll()
}

func (g *Game) ShowCenter() {
	g.mapper.ShowCenter()
}

// Pan actions move the view, so the content moves the opposite way

func (g *Game) PanUp() {
	g.mapper.Pan(image.Pt(0, g.config.PanStep))
}

func (g *Game) PanDown() {
	g.mapper.Pan(image.Pt(0, -g.config.PanStep))
}

func (g *Game) PanLeft() {
	g.mapper.Pan(image.Pt(g.config.PanStep, 0))
}

func (g *Game) PanRight() {
	g.mapper.Pan(image.Pt(-g.config.PanStep, 0))
}

// SaveThumbnail writes a thumbnail of the current image, framing the visible part,
// next to the working directory. The work runs in the background.
func (g *Game) SaveThumbnail() {
	if g.current == nil || g.current.Source == nil {
		g.ShowOverlayMessage("No image to thumbnail")
		return
	}

	frameColor, err := parseFrameColor(g.config.ThumbnailFrameColor)
	if err != nil {
		log.Printf("Warning: %v", err)
		frameColor, _ = parseFrameColor(defaultFrameColor)
	}

	w, h := g.config.ThumbnailWidth, g.config.ThumbnailHeight
	src := g.current.Source
	frame := g.mapper.ThumbnailFrame(w, h)
	outPath := thumbnailPath(g.current.Path)

	g.thumbAbort.Reset()
	go func() {
		thumb, err := Thumbnail(src, w, h, frame, frameColor, &g.thumbAbort)
		var msg string
		switch {
		case errors.Is(err, ErrThumbnailAborted):
			return
		case err != nil:
			log.Printf("Error: Failed to create thumbnail: %v", err)
			msg = "Thumbnail failed"
		default:
			if err := imaging.Save(thumb, outPath); err != nil {
				log.Printf("Error: Failed to save thumbnail %s: %v", outPath, err)
				msg = "Thumbnail failed"
			} else {
				msg = "Saved " + outPath
			}
		}
		select {
		case g.thumbDone <- msg:
		default:
		}
	}()
}

// thumbnailPath names the thumbnail after the image, dropping any archive prefix
func thumbnailPath(imagePath string) string {
	name := imagePath
	if i := strings.LastIndex(name, ":"); i >= 0 && i < len(name)-1 {
		name = name[i+1:]
	}
	name = filepath.Base(name)
	return strings.TrimSuffix(name, filepath.Ext(name)) + "_thumb.png"
}

func (g *Game) ShowOverlayMessage(message string) {
	g.overlayMessage = message
	g.overlayMessageTime = time.Now()
	g.needsRedraw = true
}

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	allowSelection := flag.Bool("select", false, "enable area selection regardless of the config")
	flag.Parse()
	debugMode = *debug

	if err := InitGraphics(); err != nil {
		log.Printf("Warning: Failed to initialize fonts: %v", err)
	}

	configLoad := loadConfig()
	config := configLoad.Config
	if err := ValidateDisplayMode(config.DisplayMode); err != nil {
		log.Fatalf("Error: %v", err)
	}

	paths, err := collectImages(flag.Args(), config.SortMethod)
	if err != nil {
		log.Fatal(err)
	}
	if len(paths) == 0 {
		log.Fatal("no image files specified")
	}
	debugLog("Collected %d images, sort: %s", len(paths), getSortMethodName(config.SortMethod))

	g := NewGame(paths, configLoad, *allowSelection)

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)

	err = ebiten.RunGame(g)
	g.shutdown()
	if err != nil {
		log.Fatal(err)
	}
}
