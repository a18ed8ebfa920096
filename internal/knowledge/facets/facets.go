// Package facets derives the filter choices offered for a catalog.
package facets

import (
	"slices"

	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/models"
	"github.com/williandearaujo/Gestao-OL-360-sub001/pkg/platform/strings"
)

// Facets lists the distinct providers and areas available for a type selection.
// Both lists are sorted, free of blanks and duplicates, and never nil.
type Facets struct {
	Providers []string `json:"providers"`
	Areas     []string `json:"areas"`
}

// Resolve returns the facets of the items matching selectedType.
// models.AnyType selects the whole catalog.
func Resolve(items []models.LearningItem, selectedType models.ItemType) Facets {
	providers := make([]string, 0, len(items))
	areas := make([]string, 0, len(items))
	for _, it := range items {
		if selectedType != models.AnyType && it.Type != selectedType {
			continue
		}
		providers = append(providers, it.Provider)
		areas = append(areas, it.Area)
	}
	return Facets{
		Providers: strings.SortedDistinct(providers),
		Areas:     strings.SortedDistinct(areas),
	}
}

// HasProvider reports whether p is one of the offered providers.
func (f Facets) HasProvider(p string) bool {
	_, found := slices.BinarySearch(f.Providers, p)
	return found
}

// HasArea reports whether a is one of the offered areas.
func (f Facets) HasArea(a string) bool {
	_, found := slices.BinarySearch(f.Areas, a)
	return found
}

// Clone returns facets whose lists do not alias f.
func (f Facets) Clone() Facets {
	return Facets{Providers: slices.Clone(f.Providers), Areas: slices.Clone(f.Areas)}
}
