package main

import (
	"slices"
	"strings"

	"github.com/maruel/natural"
)

// SortStrategy orders the image list shown by the viewer
type SortStrategy interface {
	// Sort returns a new sorted slice without modifying the original
	Sort(images []ImagePath) []ImagePath
	// Name returns the human-readable name of the strategy
	Name() string
	// ID returns the numeric identifier for config storage
	ID() int
}

// sortedCopy copies images and stably sorts the copy with cmp; a nil cmp keeps the order
func sortedCopy(images []ImagePath, cmp func(a, b ImagePath) int) []ImagePath {
	result := make([]ImagePath, len(images))
	copy(result, images)
	if cmp != nil {
		slices.SortStableFunc(result, cmp)
	}
	return result
}

// NaturalSortStrategy orders numbers inside names by value, so page2 comes before page10
type NaturalSortStrategy struct{}

func (s *NaturalSortStrategy) Sort(images []ImagePath) []ImagePath {
	return sortedCopy(images, func(a, b ImagePath) int {
		switch {
		case natural.Less(a.Path, b.Path):
			return -1
		case natural.Less(b.Path, a.Path):
			return 1
		default:
			return 0
		}
	})
}

func (s *NaturalSortStrategy) Name() string { return "Natural" }
func (s *NaturalSortStrategy) ID() int      { return SortNatural }

// SimpleSortStrategy implements lexicographical sorting
type SimpleSortStrategy struct{}

func (s *SimpleSortStrategy) Sort(images []ImagePath) []ImagePath {
	return sortedCopy(images, func(a, b ImagePath) int {
		return strings.Compare(a.Path, b.Path)
	})
}

func (s *SimpleSortStrategy) Name() string { return "Simple" }
func (s *SimpleSortStrategy) ID() int      { return SortSimple }

// EntryOrderSortStrategy preserves the order in which images were found
type EntryOrderSortStrategy struct{}

func (s *EntryOrderSortStrategy) Sort(images []ImagePath) []ImagePath {
	return sortedCopy(images, nil)
}

func (s *EntryOrderSortStrategy) Name() string { return "Entry Order" }
func (s *EntryOrderSortStrategy) ID() int      { return SortEntryOrder }

// GetSortStrategy returns the strategy for a sort method ID, defaulting to natural order
func GetSortStrategy(sortMethod int) SortStrategy {
	switch sortMethod {
	case SortSimple:
		return &SimpleSortStrategy{}
	case SortEntryOrder:
		return &EntryOrderSortStrategy{}
	default:
		return &NaturalSortStrategy{}
	}
}
