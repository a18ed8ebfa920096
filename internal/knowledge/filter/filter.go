// Package filter narrows the catalog by free text and facet selections.
package filter

import (
	"strings"

	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/facets"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/models"
	pstrings "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/platform/strings"
)

// Criteria combines every constraint with AND. A zero field constrains nothing.
type Criteria struct {
	Query    string          `json:"query,omitempty"`
	Type     models.ItemType `json:"type,omitempty"`
	Provider string          `json:"provider,omitempty"`
	Area     string          `json:"area,omitempty"`
}

// Cleared reports which facet selections Reconcile dropped.
type Cleared struct {
	Provider bool `json:"provider"`
	Area     bool `json:"area"`
}

// Any reports whether anything was cleared.
func (c Cleared) Any() bool {
	return c.Provider || c.Area
}

// Apply returns the items satisfying every constraint in input order.
// The input is never mutated and the result is never nil.
func Apply(items []models.LearningItem, c Criteria) []models.LearningItem {
	query := strings.TrimSpace(c.Query)
	provider := strings.TrimSpace(c.Provider)
	area := strings.TrimSpace(c.Area)

	out := make([]models.LearningItem, 0, len(items))
	for _, it := range items {
		if c.Type != models.AnyType && it.Type != c.Type {
			continue
		}
		if provider != "" && strings.TrimSpace(it.Provider) != provider {
			continue
		}
		if area != "" && strings.TrimSpace(it.Area) != area {
			continue
		}
		if query != "" && !matchesQuery(it, query) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchesQuery(it models.LearningItem, query string) bool {
	return pstrings.ContainsFold(it.Name, query) || pstrings.ContainsFold(it.Code, query)
}

// Reconcile clears a provider or area selection that is no longer offered
// by f. Other fields are kept as-is.
func Reconcile(c Criteria, f facets.Facets) (Criteria, Cleared) {
	var cleared Cleared
	if p := strings.TrimSpace(c.Provider); p != "" && !f.HasProvider(p) {
		c.Provider = ""
		cleared.Provider = true
	}
	if a := strings.TrimSpace(c.Area); a != "" && !f.HasArea(a) {
		c.Area = ""
		cleared.Area = true
	}
	return c, cleared
}

// WithType switches the type selection, re-resolves the facets for the new
// type and reconciles the provider and area selections against them.
func (c Criteria) WithType(t models.ItemType, items []models.LearningItem) (Criteria, facets.Facets, Cleared) {
	c.Type = t
	f := facets.Resolve(items, t)
	next, cleared := Reconcile(c, f)
	return next, f, cleared
}
