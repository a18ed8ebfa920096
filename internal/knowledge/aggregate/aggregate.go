// Package aggregate folds classified links and the catalog into dashboard counts.
package aggregate

import (
	"cmp"
	"maps"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/join"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/models"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/status"
	id "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain"
)

// DefaultTopDesired is how many items the desired ranking keeps.
const DefaultTopDesired = 5

// TeamCoverage summarizes one team's links.
type TeamCoverage struct {
	Team     string `json:"team"`
	People   int    `json:"people"`
	Links    int    `json:"links"`
	Obtained int    `json:"obtained"`
	Coverage int    `json:"coverage"`
}

// ItemRank is a catalog item with the number of people desiring it.
type ItemRank struct {
	Item    models.LearningItem `json:"item"`
	Desired int                 `json:"desired"`
}

// Summary is the dashboard view of one snapshot at one instant.
type Summary struct {
	ComputedAt time.Time `json:"computed_at"`

	TotalPeople int `json:"total_people"`
	TotalItems  int `json:"total_items"`

	ByType        map[models.ItemType]int    `json:"by_type"`
	ByDegreeLevel map[models.DegreeLevel]int `json:"by_degree_level"`
	ByProvider    map[string]int             `json:"by_provider"`
	ByArea        map[string]int             `json:"by_area"`

	Statuses StatusCounts               `json:"statuses"`
	ByItem   map[id.ItemID]StatusCounts `json:"by_item"`
	// PeopleByDegreeLevel counts distinct people linked to a DEGREE item of
	// each level under any binding.
	PeopleByDegreeLevel map[models.DegreeLevel]int `json:"people_by_degree_level"`

	ValidLinks    int `json:"valid_links"`
	DanglingLinks int `json:"dangling_links"`
	InvalidLinks  int `json:"invalid_links"`

	Teams              []TeamCoverage        `json:"teams"`
	TopDesired         []ItemRank            `json:"top_desired"`
	PeopleWithoutLinks []models.Person       `json:"people_without_links"`
	ItemsWithoutLinks  []models.LearningItem `json:"items_without_links"`
	CoverageRate       int                   `json:"coverage_rate"`
}

// Clone returns a copy whose maps and slices do not alias s.
func (s Summary) Clone() Summary {
	c := s
	c.ByType = maps.Clone(s.ByType)
	c.ByDegreeLevel = maps.Clone(s.ByDegreeLevel)
	c.ByProvider = maps.Clone(s.ByProvider)
	c.ByArea = maps.Clone(s.ByArea)
	c.ByItem = maps.Clone(s.ByItem)
	c.PeopleByDegreeLevel = maps.Clone(s.PeopleByDegreeLevel)
	c.Teams = slices.Clone(s.Teams)
	c.PeopleWithoutLinks = slices.Clone(s.PeopleWithoutLinks)
	c.ItemsWithoutLinks = cloneItems(s.ItemsWithoutLinks)
	if s.TopDesired != nil {
		c.TopDesired = make([]ItemRank, len(s.TopDesired))
		for i, r := range s.TopDesired {
			c.TopDesired[i] = ItemRank{Item: r.Item.Clone(), Desired: r.Desired}
		}
	}
	return c
}

func cloneItems(items []models.LearningItem) []models.LearningItem {
	if items == nil {
		return nil
	}
	out := make([]models.LearningItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

type options struct {
	topDesired int
}

// Option configures Summarize.
type Option func(*options)

// WithTopDesired sets how many items the desired ranking keeps.
// Non-positive values keep the default.
func WithTopDesired(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.topDesired = n
		}
	}
}

// Summarize computes every dashboard count for the indexed snapshot.
// Dangling and invalid links are reported but never counted elsewhere.
func Summarize(ix *join.Index, c status.Classifier, now time.Time, opts ...Option) Summary {
	o := options{topDesired: DefaultTopDesired}
	for _, opt := range opts {
		opt(&o)
	}

	people := ix.People()
	items := ix.Items()

	sum := Summary{
		ComputedAt:          now,
		TotalPeople:         len(people),
		TotalItems:          len(items),
		ByType:              make(map[models.ItemType]int),
		ByDegreeLevel:       make(map[models.DegreeLevel]int),
		ByProvider:          make(map[string]int),
		ByArea:              make(map[string]int),
		ByItem:              make(map[id.ItemID]StatusCounts),
		PeopleByDegreeLevel: make(map[models.DegreeLevel]int),
		ValidLinks:          ix.ValidCount(),
		DanglingLinks:       ix.DanglingCount(),
		InvalidLinks:        ix.InvalidCount(),
	}
	for _, t := range models.AllItemTypes() {
		sum.ByType[t] = 0
	}
	for _, l := range models.AllDegreeLevels() {
		sum.ByDegreeLevel[l] = 0
		sum.PeopleByDegreeLevel[l] = 0
	}

	countCatalog(&sum, items)

	degreePeople := make(map[models.DegreeLevel]map[id.PersonID]struct{})
	linkedPeople := make(map[id.PersonID]struct{})
	linkedItems := make(map[id.ItemID]struct{})
	teams := make(map[string]*TeamCoverage)
	for _, p := range people {
		team := teamFor(teams, p)
		team.People++
	}

	ix.Each(func(r join.Row) {
		tag := c.Classify(r.Link, r.Item, now)
		sum.Statuses.Add(tag)

		perItem := sum.ByItem[r.Item.ID]
		perItem.Add(tag)
		sum.ByItem[r.Item.ID] = perItem

		linkedPeople[r.Person.ID] = struct{}{}
		linkedItems[r.Item.ID] = struct{}{}

		team := teamFor(teams, r.Person)
		team.Links++
		if tag.IsObtained() {
			team.Obtained++
		}

		if level := r.Item.EffectiveDegreeLevel(); level != models.NoDegreeLevel {
			if degreePeople[level] == nil {
				degreePeople[level] = make(map[id.PersonID]struct{})
			}
			degreePeople[level][r.Person.ID] = struct{}{}
		}
	})

	for level, people := range degreePeople {
		sum.PeopleByDegreeLevel[level] = len(people)
	}

	sum.Teams = teamList(teams)
	sum.TopDesired = topDesired(items, sum.ByItem, o.topDesired)
	sum.CoverageRate = percent(sum.Statuses.Obtained(), sum.Statuses.Total())

	sum.PeopleWithoutLinks = []models.Person{}
	for _, p := range people {
		if _, ok := linkedPeople[p.ID]; !ok {
			sum.PeopleWithoutLinks = append(sum.PeopleWithoutLinks, p)
		}
	}
	slices.SortFunc(sum.PeopleWithoutLinks, func(a, b models.Person) int { return a.ID.Compare(b.ID) })

	sum.ItemsWithoutLinks = []models.LearningItem{}
	for _, it := range items {
		if _, ok := linkedItems[it.ID]; !ok {
			sum.ItemsWithoutLinks = append(sum.ItemsWithoutLinks, it)
		}
	}
	slices.SortFunc(sum.ItemsWithoutLinks, func(a, b models.LearningItem) int { return a.ID.Compare(b.ID) })

	return sum
}

// ForItem returns the status counts of the links to one item. Unknown items
// yield zero counts.
func ForItem(ix *join.Index, itemID id.ItemID, c status.Classifier, now time.Time) StatusCounts {
	var counts StatusCounts
	ix.Each(func(r join.Row) {
		if r.Item.ID == itemID {
			counts.Add(c.Classify(r.Link, r.Item, now))
		}
	})
	return counts
}

// countCatalog fills the per-type, per-level, per-provider and per-area
// catalog counts. Blank providers and areas are not counted.
func countCatalog(sum *Summary, items []models.LearningItem) {
	for _, it := range items {
		if it.Type.IsValid() {
			sum.ByType[it.Type]++
		}
		if level := it.EffectiveDegreeLevel(); level != models.NoDegreeLevel {
			sum.ByDegreeLevel[level]++
		}
		if p := strings.TrimSpace(it.Provider); p != "" {
			sum.ByProvider[p]++
		}
		if a := strings.TrimSpace(it.Area); a != "" {
			sum.ByArea[a]++
		}
	}
}

func teamFor(teams map[string]*TeamCoverage, p models.Person) *TeamCoverage {
	name := p.TeamOrDefault()
	t, ok := teams[name]
	if !ok {
		t = &TeamCoverage{Team: name}
		teams[name] = t
	}
	return t
}

func teamList(teams map[string]*TeamCoverage) []TeamCoverage {
	out := make([]TeamCoverage, 0, len(teams))
	for _, t := range teams {
		t.Coverage = percent(t.Obtained, t.Links)
		out = append(out, *t)
	}
	slices.SortFunc(out, func(a, b TeamCoverage) int { return cmp.Compare(a.Team, b.Team) })
	return out
}

// topDesired ranks items with at least one DESIRED link, most desired first,
// ties broken by item ID.
func topDesired(items []models.LearningItem, byItem map[id.ItemID]StatusCounts, limit int) []ItemRank {
	ranks := make([]ItemRank, 0)
	for _, it := range items {
		if n := byItem[it.ID].Desired; n > 0 {
			ranks = append(ranks, ItemRank{Item: it, Desired: n})
		}
	}
	slices.SortFunc(ranks, func(a, b ItemRank) int {
		if c := cmp.Compare(b.Desired, a.Desired); c != 0 {
			return c
		}
		return a.Item.ID.Compare(b.Item.ID)
	})
	if len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}

// percent is part/whole rounded half away from zero, or 0 when whole is 0.
func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(whole)))
}
