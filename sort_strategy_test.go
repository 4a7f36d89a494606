package main

import (
	"reflect"
	"testing"
)

func paths(names ...string) []ImagePath {
	result := make([]ImagePath, len(names))
	for i, name := range names {
		result[i] = ImagePath{Path: name}
	}
	return result
}

// unsorted listing shared by the strategy tests; the full-width digit sorts after ASCII
func sampleListing() []ImagePath {
	return paths("test/01.png", "test/04.zip", "test/08.png", "test/09.png", "test/2.png", "test/３.png")
}

func TestSortStrategies(t *testing.T) {
	tests := []struct {
		name     string
		strategy SortStrategy
		id       int
		expected []ImagePath
	}{
		{
			name:     "Natural",
			strategy: &NaturalSortStrategy{},
			id:       SortNatural,
			expected: paths("test/01.png", "test/2.png", "test/04.zip", "test/08.png", "test/09.png", "test/３.png"),
		},
		{
			name:     "Simple",
			strategy: &SimpleSortStrategy{},
			id:       SortSimple,
			expected: paths("test/01.png", "test/04.zip", "test/08.png", "test/09.png", "test/2.png", "test/３.png"),
		},
		{
			name:     "Entry Order",
			strategy: &EntryOrderSortStrategy{},
			id:       SortEntryOrder,
			expected: sampleListing(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.strategy.Name() != tt.name {
				t.Errorf("Name() = %q, want %q", tt.strategy.Name(), tt.name)
			}
			if tt.strategy.ID() != tt.id {
				t.Errorf("ID() = %d, want %d", tt.strategy.ID(), tt.id)
			}

			input := sampleListing()
			result := tt.strategy.Sort(input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Sort() = %v, want %v", pathsToStrings(result), pathsToStrings(tt.expected))
			}
			if !reflect.DeepEqual(input, sampleListing()) {
				t.Errorf("Sort() modified its input: %v", pathsToStrings(input))
			}

			if got := tt.strategy.Sort(nil); len(got) != 0 {
				t.Errorf("Sort(nil) = %v, want empty", got)
			}
		})
	}
}

func TestGetSortStrategy(t *testing.T) {
	tests := []struct {
		sortMethod int
		expectedID int
	}{
		{SortNatural, SortNatural},
		{SortSimple, SortSimple},
		{SortEntryOrder, SortEntryOrder},
		{999, SortNatural},
		{-1, SortNatural},
	}

	for _, tt := range tests {
		strategy := GetSortStrategy(tt.sortMethod)
		if strategy.ID() != tt.expectedID {
			t.Errorf("GetSortStrategy(%d).ID() = %d, want %d", tt.sortMethod, strategy.ID(), tt.expectedID)
		}
		if got := getSortMethodName(tt.sortMethod); got != strategy.Name() {
			t.Errorf("getSortMethodName(%d) = %q, want %q", tt.sortMethod, got, strategy.Name())
		}
	}
}

func TestNaturalSortIsStable(t *testing.T) {
	input := []ImagePath{
		{Path: "a/1.png", EntryPath: "first"},
		{Path: "a/1.png", EntryPath: "second"},
		{Path: "a/0.png"},
	}
	result := (&NaturalSortStrategy{}).Sort(input)
	if result[1].EntryPath != "first" || result[2].EntryPath != "second" {
		t.Errorf("equal paths reordered: %+v", result)
	}
}

func pathsToStrings(paths []ImagePath) []string {
	var out []string
	for _, path := range paths {
		out = append(out, path.Path)
	}
	return out
}
