package service

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/aggregate"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/drilldown"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/facets"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/filter"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/memo"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/models"
	id "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain"
	dErrors "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain-errors"
	"github.com/williandearaujo/Gestao-OL-360-sub001/pkg/requestcontext"
)

// Summary computes the dashboard counts at the current instant.
func (e *Engine) Summary(ctx context.Context) (sum aggregate.Summary, err error) {
	ctx, now, finish := e.begin(ctx, "summary")
	defer func() { finish(err) }()

	v, err := e.load(ctx)
	if err != nil {
		return aggregate.Summary{}, err
	}
	tagVersion(ctx, v)

	key := memo.Key{Version: v.version, Operation: "summary", Params: strconv.Itoa(e.topDesired), Instant: now.UnixNano()}
	sum, err = memo.Do(e.cache, key, func() (aggregate.Summary, error) {
		s := aggregate.Summarize(v.index, e.classifier, now, aggregate.WithTopDesired(e.topDesired))
		for _, tag := range models.AllStatuses() {
			e.metrics.SetLinkStatus(tag.String(), s.Statuses.Get(tag))
		}
		e.metrics.SetDanglingLinks(s.DanglingLinks)
		return s, nil
	})
	if err != nil {
		return aggregate.Summary{}, err
	}
	return sum.Clone(), nil
}

// ItemStatus returns the status counts of one catalog item.
func (e *Engine) ItemStatus(ctx context.Context, itemID id.ItemID) (counts aggregate.StatusCounts, err error) {
	ctx, now, finish := e.begin(ctx, "item_status")
	defer func() { finish(err) }()

	v, err := e.load(ctx)
	if err != nil {
		return aggregate.StatusCounts{}, err
	}
	if _, ok := v.index.Item(itemID); !ok {
		return aggregate.StatusCounts{}, dErrors.New(dErrors.CodeNotFound, "item not found")
	}
	return aggregate.ForItem(v.index, itemID, e.classifier, now), nil
}

// Facets returns the providers and areas offered for a type selection.
func (e *Engine) Facets(ctx context.Context, selected models.ItemType) (f facets.Facets, err error) {
	ctx, _, finish := e.begin(ctx, "facets")
	defer func() { finish(err) }()

	if selected != models.AnyType && !selected.IsValid() {
		return facets.Facets{}, dErrors.New(dErrors.CodeInvalidInput, "invalid item type: "+selected.String())
	}
	v, err := e.load(ctx)
	if err != nil {
		return facets.Facets{}, err
	}
	f, err = memo.Do(e.cache, memo.Key{Version: v.version, Operation: "facets", Params: selected.String()}, func() (facets.Facets, error) {
		return facets.Resolve(v.index.Items(), selected), nil
	})
	if err != nil {
		return facets.Facets{}, err
	}
	return f.Clone(), nil
}

// CatalogView is the filtered catalog with the facets offered for its type.
// Criteria is the reconciled selection actually applied.
type CatalogView struct {
	Items    []models.LearningItem `json:"items"`
	Facets   facets.Facets         `json:"facets"`
	Criteria filter.Criteria       `json:"criteria"`
	Cleared  filter.Cleared        `json:"cleared"`
}

// Catalog filters the catalog. Provider and area selections not offered for
// the selected type are cleared before filtering and reported in Cleared.
func (e *Engine) Catalog(ctx context.Context, c filter.Criteria) (cv CatalogView, err error) {
	ctx, _, finish := e.begin(ctx, "catalog")
	defer func() { finish(err) }()

	if c.Type != models.AnyType && !c.Type.IsValid() {
		return CatalogView{}, dErrors.New(dErrors.CodeInvalidInput, "invalid item type: "+c.Type.String())
	}
	v, err := e.load(ctx)
	if err != nil {
		return CatalogView{}, err
	}
	items := v.index.Items()
	criteria, f, cleared := c.WithType(c.Type, items)
	visible := filter.Apply(items, criteria)
	for i := range visible {
		visible[i] = visible[i].Clone()
	}
	return CatalogView{
		Items:    visible,
		Facets:   f,
		Criteria: criteria,
		Cleared:  cleared,
	}, nil
}

// DrillDown lists the rows matching criterion ordered by link ID.
func (e *Engine) DrillDown(ctx context.Context, criterion drilldown.Criterion) (rows []drilldown.Row, err error) {
	ctx, now, finish := e.begin(ctx, "drilldown")
	defer func() { finish(err) }()

	if err := validateCriterion(criterion); err != nil {
		return nil, err
	}
	v, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	key := memo.Key{
		Version:   v.version,
		Operation: "drilldown",
		Params: fmt.Sprintf("%s/%s/%s/%s/%s", criterion.Kind,
			criterion.ItemID, criterion.PersonID, criterion.Status, criterion.DegreeLevel),
		Instant: now.UnixNano(),
	}
	rows, err = memo.Do(e.cache, key, func() ([]drilldown.Row, error) {
		return drilldown.Resolve(criterion, v.index, e.classifier, now), nil
	})
	if err != nil {
		return nil, err
	}
	return drilldown.CloneRows(rows), nil
}

func validateCriterion(c drilldown.Criterion) error {
	switch c.Kind {
	case drilldown.KindItemStatus, drilldown.KindStatus, drilldown.KindPersonStatus:
		if !c.Status.IsValid() {
			return dErrors.New(dErrors.CodeInvalidInput, "drill-down requires a valid status")
		}
	case drilldown.KindDegreeLevel:
		if !c.DegreeLevel.IsValid() {
			return dErrors.New(dErrors.CodeInvalidInput, "drill-down requires a valid degree level")
		}
	default:
		return dErrors.New(dErrors.CodeInvalidInput, "unknown drill-down kind: "+string(c.Kind))
	}
	return nil
}

// Expiring lists the links expiring within the configured window, soonest first.
func (e *Engine) Expiring(ctx context.Context) (rows []drilldown.Row, err error) {
	ctx, now, finish := e.begin(ctx, "expiring")
	defer func() { finish(err) }()

	v, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	rows, err = memo.Do(e.cache, memo.Key{Version: v.version, Operation: "expiring", Instant: now.UnixNano()}, func() ([]drilldown.Row, error) {
		return drilldown.Expiring(v.index, e.classifier, now), nil
	})
	if err != nil {
		return nil, err
	}
	return drilldown.CloneRows(rows), nil
}

// AlertKind names a dashboard alert.
type AlertKind string

const (
	AlertExpiring     AlertKind = "expiring"
	AlertNoLinks      AlertKind = "no_links"
	AlertOrphanedItem AlertKind = "orphaned_item"
)

// Alert is a dashboard notice with the number of affected records.
type Alert struct {
	Kind     AlertKind `json:"kind"`
	Priority string    `json:"priority"`
	Count    int       `json:"count"`
}

// Dashboard bundles the summary, the expiring list and the alerts derived
// from them.
type Dashboard struct {
	Summary  aggregate.Summary `json:"summary"`
	Expiring []drilldown.Row   `json:"expiring"`
	Alerts   []Alert           `json:"alerts"`
}

// Dashboard computes the summary and the expiring list concurrently. Both
// use the same instant.
func (e *Engine) Dashboard(ctx context.Context) (d Dashboard, err error) {
	ctx, now, finish := e.begin(ctx, "dashboard")
	defer func() { finish(err) }()

	ctx = requestcontext.WithTime(ctx, now)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sum, err := e.Summary(gctx)
		d.Summary = sum
		return err
	})
	g.Go(func() error {
		rows, err := e.Expiring(gctx)
		d.Expiring = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	d.Alerts = alertsFor(d)
	return d, nil
}

func alertsFor(d Dashboard) []Alert {
	alerts := make([]Alert, 0, 3)
	if n := len(d.Expiring); n > 0 {
		alerts = append(alerts, Alert{Kind: AlertExpiring, Priority: "high", Count: n})
	}
	if n := len(d.Summary.PeopleWithoutLinks); n > 0 {
		alerts = append(alerts, Alert{Kind: AlertNoLinks, Priority: "medium", Count: n})
	}
	if n := len(d.Summary.ItemsWithoutLinks); n > 0 {
		alerts = append(alerts, Alert{Kind: AlertOrphanedItem, Priority: "low", Count: n})
	}
	return alerts
}
