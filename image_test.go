package main

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestIsSupportedExt(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"test.png", true},
		{"test.jpg", true},
		{"test.jpeg", true},
		{"test.webp", true},
		{"test.bmp", true},
		{"test.gif", true},
		{"test.PNG", true},
		{"test.backup.jpg", true},
		{"/path/to/test.png", true},
		{"test.txt", false},
		{"test.zip", false},
		{"test", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isSupportedExt(tt.path); got != tt.expected {
			t.Errorf("isSupportedExt(%q) = %v, want %v", tt.path, got, tt.expected)
		}
	}
}

func TestIsArchiveExt(t *testing.T) {
	for path, expected := range map[string]bool{
		"book.zip": true,
		"book.RAR": true,
		"book.7z":  true,
		"book.tar": false,
		"book.png": false,
	} {
		if got := isArchiveExt(path); got != expected {
			t.Errorf("isArchiveExt(%q) = %v, want %v", path, got, expected)
		}
	}
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

func writeZip(t *testing.T, path string, entries map[string][]byte, order []string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, name := range order {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("adding %s: %v", name, err)
		}
		if _, err := w.Write(entries[name]); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
}

func TestCollectImages(t *testing.T) {
	tempDir := t.TempDir()

	for _, name := range []string{"page10.png", "page2.jpg", "notes.txt", "Cover.PNG", "backup.bak"} {
		if err := os.WriteFile(filepath.Join(tempDir, name), nil, 0644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	archive := filepath.Join(tempDir, "book.zip")
	pngData := encodePNG(t, 2, 2)
	writeZip(t, archive, map[string][]byte{
		"b/10.png":   pngData,
		"b/9.png":    pngData,
		"readme.txt": []byte("hi"),
	}, []string{"b/10.png", "readme.txt", "b/9.png"})

	t.Run("Directory", func(t *testing.T) {
		result, err := collectImages([]string{tempDir}, SortNatural)
		if err != nil {
			t.Fatalf("collectImages: %v", err)
		}
		expected := []string{
			filepath.Join(tempDir, "Cover.PNG"),
			archive + ":b/9.png",
			archive + ":b/10.png",
			filepath.Join(tempDir, "page2.jpg"),
			filepath.Join(tempDir, "page10.png"),
		}
		if got := pathsToStrings(result); !reflect.DeepEqual(got, expected) {
			t.Errorf("collectImages() = %v, want %v", got, expected)
		}
	})

	t.Run("ArchiveEntryOrder", func(t *testing.T) {
		result, err := collectImages([]string{archive}, SortEntryOrder)
		if err != nil {
			t.Fatalf("collectImages: %v", err)
		}
		expected := []ImagePath{
			{Path: archive + ":b/10.png", ArchivePath: archive, EntryPath: "b/10.png"},
			{Path: archive + ":b/9.png", ArchivePath: archive, EntryPath: "b/9.png"},
		}
		if !reflect.DeepEqual(result, expected) {
			t.Errorf("collectImages() = %+v, want %+v", result, expected)
		}
	})

	t.Run("SingleFile", func(t *testing.T) {
		single := filepath.Join(tempDir, "page2.jpg")
		result, err := collectImages([]string{single}, SortNatural)
		if err != nil {
			t.Fatalf("collectImages: %v", err)
		}
		if len(result) != 1 || result[0].Path != single {
			t.Errorf("collectImages(%s) = %v", single, result)
		}
	})

	t.Run("BrokenArchiveSkipped", func(t *testing.T) {
		broken := filepath.Join(t.TempDir(), "broken.zip")
		if err := os.WriteFile(broken, []byte("not a zip"), 0644); err != nil {
			t.Fatal(err)
		}
		result, err := collectImages([]string{broken}, SortNatural)
		if err != nil {
			t.Fatalf("collectImages: %v", err)
		}
		if len(result) != 0 {
			t.Errorf("expected no images, got %v", result)
		}
	})

	t.Run("MissingPath", func(t *testing.T) {
		if _, err := collectImages([]string{filepath.Join(tempDir, "missing")}, SortNatural); err == nil {
			t.Error("expected an error for a missing path")
		}
	})
}

func TestLoadImageFromZip(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "pages.zip")
	writeZip(t, archive, map[string][]byte{"p.png": encodePNG(t, 3, 2)}, []string{"p.png"})

	img, err := loadImage(archiveEntry(archive, "p.png"))
	if err != nil {
		t.Fatalf("loadImage: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(3, 2) {
		t.Errorf("decoded size = %v, want 3x2", got)
	}

	if _, err := readZipEntry(archive, "missing.png"); err == nil {
		t.Error("expected an error for a missing entry")
	}
}

func TestLoadImageDecodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadImage(ImagePath{Path: path}); err == nil {
		t.Error("expected a decode error")
	}
}
