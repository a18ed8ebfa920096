package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/drilldown"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/filter"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/models"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/snapshot"
	id "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain"
)

var errUsage = errors.New("usage")

// usageError marks err as a problem with the command line rather than the data.
func usageError(err error) error {
	return fmt.Errorf("%w: %w", errUsage, err)
}

// parseFlags parses args into fs, reporting any failure as a usage error.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}
	if fs.NArg() > 0 {
		return usageError(fmt.Errorf("unexpected argument %q", fs.Arg(0)))
	}
	return nil
}

func (a *app) dispatch(ctx context.Context, command string, args []string) (any, error) {
	switch command {
	case "summary", "dashboard", "expiring":
		if err := parseFlags(newFlagSet(command), args); err != nil {
			return nil, err
		}
	}

	switch command {
	case "summary":
		return a.engine.Summary(ctx)
	case "dashboard":
		return a.engine.Dashboard(ctx)
	case "expiring":
		return a.engine.Expiring(ctx)
	case "catalog":
		return a.catalog(ctx, args)
	case "facets":
		return a.facets(ctx, args)
	case "drilldown":
		return a.drilldown(ctx, args)
	case "item":
		return a.item(ctx, args)
	case "normalize":
		return nil, a.normalize(ctx, args)
	}
	return nil, usageError(fmt.Errorf("unknown command %q", command))
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (a *app) catalog(ctx context.Context, args []string) (any, error) {
	fs := newFlagSet("catalog")
	query := fs.String("q", "", "case-insensitive text matched against name and code")
	itemType := fs.String("type", "", "CERTIFICATION, COURSE, DEGREE or ANY")
	provider := fs.String("provider", "", "exact provider")
	area := fs.String("area", "", "exact area")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	t, err := models.ParseItemTypeFacet(*itemType)
	if err != nil {
		return nil, usageError(err)
	}
	return a.engine.Catalog(ctx, filter.Criteria{Query: *query, Type: t, Provider: *provider, Area: *area})
}

func (a *app) facets(ctx context.Context, args []string) (any, error) {
	fs := newFlagSet("facets")
	itemType := fs.String("type", "", "CERTIFICATION, COURSE, DEGREE or ANY")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	t, err := models.ParseItemTypeFacet(*itemType)
	if err != nil {
		return nil, usageError(err)
	}
	return a.engine.Facets(ctx, t)
}

func (a *app) drilldown(ctx context.Context, args []string) (any, error) {
	fs := newFlagSet("drilldown")
	kind := fs.String("kind", string(drilldown.KindStatus), "item_status, status, degree_level or person_status")
	itemID := fs.String("item", "", "item ID for item_status")
	personID := fs.String("person", "", "person ID for person_status")
	tag := fs.String("status", "", "status tag, e.g. OBTAINED_EXPIRING_SOON")
	level := fs.String("level", "", "degree level for degree_level")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	var criterion drilldown.Criterion
	switch drilldown.Kind(*kind) {
	case drilldown.KindDegreeLevel:
		l, err := models.ParseDegreeLevel(*level)
		if err != nil {
			return nil, usageError(err)
		}
		criterion = drilldown.ByDegreeLevel(l)
	case drilldown.KindStatus:
		s, err := models.ParseStatusTag(*tag)
		if err != nil {
			return nil, usageError(err)
		}
		criterion = drilldown.ByStatus(s)
	case drilldown.KindItemStatus:
		s, err := models.ParseStatusTag(*tag)
		if err != nil {
			return nil, usageError(err)
		}
		it, err := id.ParseItemID(*itemID)
		if err != nil {
			return nil, usageError(err)
		}
		criterion = drilldown.ByItemStatus(it, s)
	case drilldown.KindPersonStatus:
		s, err := models.ParseStatusTag(*tag)
		if err != nil {
			return nil, usageError(err)
		}
		p, err := id.ParsePersonID(*personID)
		if err != nil {
			return nil, usageError(err)
		}
		criterion = drilldown.ByPersonStatus(p, s)
	default:
		return nil, usageError(fmt.Errorf("unknown drill-down kind %q", *kind))
	}
	return a.engine.DrillDown(ctx, criterion)
}

func (a *app) item(ctx context.Context, args []string) (any, error) {
	fs := newFlagSet("item")
	itemID := fs.String("item", "", "item ID")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	it, err := id.ParseItemID(*itemID)
	if err != nil {
		return nil, usageError(err)
	}
	return a.engine.ItemStatus(ctx, it)
}

func (a *app) normalize(ctx context.Context, args []string) error {
	fs := newFlagSet("normalize")
	out := fs.String("out", "", "destination file (.yaml, .yml or .json)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *out == "" {
		return usageError(errors.New("normalize requires -out"))
	}

	snap, err := a.store.Snapshot(ctx)
	if err != nil {
		return err
	}
	if err := snapshot.WriteFile(*out, snap); err != nil {
		return err
	}
	a.log.InfoContext(ctx, "snapshot written", "path", *out, "version", snap.Version)
	return nil
}
