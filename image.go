package main

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/sevenzip"
	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nwaples/rardecode"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

type ImagePath struct {
	Path        string // Local file path or archive:entry format
	ArchivePath string // Empty for regular files, path to archive for entries
	EntryPath   string // Empty for regular files, path within archive for entries
}

// LoadedImage is a decoded image together with its GPU texture.
// Source is kept for CPU-side work such as thumbnails.
type LoadedImage struct {
	Path    string
	Source  image.Image
	Texture *ebiten.Image
	Err     error
}

// LoadResult reports the completion of an asynchronous load
type LoadResult struct {
	Index int
	Image *LoadedImage
}

func isArchiveExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".rar", ".7z":
		return true
	default:
		return false
	}
}

func isSupportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif":
		return true
	default:
		return false
	}
}

// ImageManager owns the image list, the decoded image cache and the background loader
type ImageManager struct {
	paths []ImagePath
	mu    sync.RWMutex
	cache *lru.Cache[string, *LoadedImage]

	requests chan int
	results  chan LoadResult
	ctx      context.Context
	cancel   context.CancelFunc

	preloadEnabled bool
	preloadCount   int
}

// NewImageManager creates a manager and starts its loader goroutine
func NewImageManager(paths []ImagePath, cacheSize, preloadCount int, preloadEnabled bool) *ImageManager {
	evict := func(_ string, img *LoadedImage) {
		if img != nil && img.Texture != nil {
			img.Texture.Deallocate()
		}
	}
	cache, err := lru.NewWithEvict[string, *LoadedImage](cacheSize, evict)
	if err != nil {
		log.Printf("Error: Failed to create LRU cache: %v", err)
		cache, _ = lru.NewWithEvict[string, *LoadedImage](16, evict)
	}

	// keep the current image and all preloaded neighbors in the cache together
	if preloadEnabled && 2*preloadCount+1 > cacheSize {
		preloadCount = max(0, (cacheSize-1)/2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &ImageManager{
		paths:          paths,
		cache:          cache,
		requests:       make(chan int, 16),
		results:        make(chan LoadResult, 16),
		ctx:            ctx,
		cancel:         cancel,
		preloadEnabled: preloadEnabled,
		preloadCount:   preloadCount,
	}
	go m.worker()
	return m
}

// GetPathsCount returns the number of images in the list
func (m *ImageManager) GetPathsCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.paths)
}

// getPath safely returns the ImagePath at index if available
func (m *ImageManager) getPath(idx int) (ImagePath, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if idx < 0 || idx >= len(m.paths) {
		return ImagePath{}, false
	}
	return m.paths[idx], true
}

// Cached returns the image at idx if it is already decoded
func (m *ImageManager) Cached(idx int) (*LoadedImage, bool) {
	imagePath, ok := m.getPath(idx)
	if !ok {
		return nil, false
	}
	img, ok := m.cache.Get(imagePath.Path)
	if ok {
		debugLog("Cache HIT: %s (cache: %d items)", imagePath.Path, m.cache.Len())
	}
	return img, ok
}

// RequestLoad asks the loader to decode idx. The result arrives on Results.
func (m *ImageManager) RequestLoad(idx int) {
	// drop stale requests so the newest navigation wins
drain:
	for {
		select {
		case <-m.requests:
		default:
			break drain
		}
	}

	select {
	case m.requests <- idx:
	default:
		debugLog("Load request channel full, skipping request for [%d]", idx+1)
	}
}

// Results delivers completed loads. Receive from it on the update goroutine only.
func (m *ImageManager) Results() <-chan LoadResult {
	return m.results
}

// Stop terminates the loader goroutine
func (m *ImageManager) Stop() {
	m.cancel()
}

func (m *ImageManager) worker() {
	for {
		select {
		case <-m.ctx.Done():
			return
		case idx := <-m.requests:
			img := m.load(idx)
			if img == nil {
				continue
			}
			select {
			case m.results <- LoadResult{Index: idx, Image: img}:
			case <-m.ctx.Done():
				return
			}
			if m.preloadEnabled {
				m.preloadAround(idx)
			}
		}
	}
}

// preloadAround decodes the images following and preceding idx into the cache
func (m *ImageManager) preloadAround(idx int) {
	for i := 1; i <= m.preloadCount; i++ {
		for _, next := range []int{idx + i, idx - i} {
			if m.ctx.Err() != nil {
				return
			}
			m.load(next)
		}
	}
}

// load returns the cached image or decodes it and caches the result.
// A failed decode is cached as an error placeholder.
func (m *ImageManager) load(idx int) *LoadedImage {
	imagePath, ok := m.getPath(idx)
	if !ok {
		return nil
	}
	if img, ok := m.cache.Get(imagePath.Path); ok {
		return img
	}

	img := &LoadedImage{Path: imagePath.Path}
	src, err := loadImage(imagePath)
	if err != nil {
		log.Printf("Error: Failed to load image [%d/%d] %s: %v", idx+1, m.GetPathsCount(), imagePath.Path, err)
		img.Err = err
		img.Texture = CreateErrorImage(400, 300, imagePath.Path, err.Error())
	} else {
		img.Source = src
		img.Texture = ebiten.NewImageFromImage(src)
	}

	m.cache.Add(imagePath.Path, img)
	debugLog("Loaded [%d] %s (cache: %d items)", idx+1, imagePath.Path, m.cache.Len())
	return img
}

// Image loading functions

func decodeImage(data []byte, path string) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func loadImage(imagePath ImagePath) (image.Image, error) {
	data, err := readImageBytes(imagePath)
	if err != nil {
		return nil, err
	}
	path := imagePath.Path
	if imagePath.EntryPath != "" {
		path = imagePath.EntryPath
	}
	return decodeImage(data, path)
}

// readImageBytes reads a plain file or an archive entry
func readImageBytes(imagePath ImagePath) ([]byte, error) {
	if imagePath.ArchivePath == "" {
		return os.ReadFile(imagePath.Path)
	}

	switch ext := strings.ToLower(filepath.Ext(imagePath.ArchivePath)); ext {
	case ".zip":
		return readZipEntry(imagePath.ArchivePath, imagePath.EntryPath)
	case ".rar":
		return readRarEntry(imagePath.ArchivePath, imagePath.EntryPath)
	case ".7z":
		return read7zEntry(imagePath.ArchivePath, imagePath.EntryPath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", ext)
	}
}

func readZipEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != entryPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func readRarEntry(archivePath, entryPath string) ([]byte, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.Name == entryPath {
			return io.ReadAll(r)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func read7zEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != entryPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

// File collection functions

func archiveEntry(archivePath, name string) ImagePath {
	return ImagePath{
		Path:        archivePath + ":" + name,
		ArchivePath: archivePath,
		EntryPath:   name,
	}
}

func listZipImages(archivePath string) ([]ImagePath, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var images []ImagePath
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			images = append(images, archiveEntry(archivePath, f.Name))
		}
	}
	return images, nil
}

func listRarImages(archivePath string) ([]ImagePath, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	var images []ImagePath
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !header.IsDir && isSupportedExt(header.Name) {
			images = append(images, archiveEntry(archivePath, header.Name))
		}
	}
	return images, nil
}

func list7zImages(archivePath string) ([]ImagePath, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var images []ImagePath
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			images = append(images, archiveEntry(archivePath, f.Name))
		}
	}
	return images, nil
}

// processArchive lists the images of an archive in the configured order
func processArchive(archivePath string, sortMethod int) ([]ImagePath, error) {
	var images []ImagePath
	var err error

	switch ext := strings.ToLower(filepath.Ext(archivePath)); ext {
	case ".zip":
		images, err = listZipImages(archivePath)
	case ".rar":
		images, err = listRarImages(archivePath)
	case ".7z":
		images, err = list7zImages(archivePath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("reading archive %s: %w", archivePath, err)
	}
	return GetSortStrategy(sortMethod).Sort(images), nil
}

// collectImages expands files, directories and archives into an ordered image list.
// Broken archives are skipped with a warning.
func collectImages(args []string, sortMethod int) ([]ImagePath, error) {
	var list []ImagePath

	addFile := func(path string, into *[]ImagePath) {
		switch {
		case isSupportedExt(path):
			*into = append(*into, ImagePath{Path: path})
		case isArchiveExt(path):
			archiveImages, err := processArchive(path, sortMethod)
			if err != nil {
				log.Printf("Warning: Skipping problematic archive %s: %v", path, err)
				return
			}
			*into = append(*into, archiveImages...)
		}
	}

	for _, p := range args {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(p, &list)
			continue
		}

		var dirImages []ImagePath
		err = filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				addFile(path, &dirImages)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		list = append(list, GetSortStrategy(sortMethod).Sort(dirImages)...)
	}

	return list, nil
}
