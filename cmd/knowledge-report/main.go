// Command knowledge-report loads a people/catalog/links snapshot and prints
// dashboard counts, catalog views and drill-downs as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	kmetrics "github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/metrics"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/service"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/snapshot"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/platform/config"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/platform/logger"
	platformmetrics "github.com/williandearaujo/Gestao-OL-360-sub001/internal/platform/metrics"
	"github.com/williandearaujo/Gestao-OL-360-sub001/pkg/requestcontext"
)

const usage = `usage: knowledge-report [flags] <command> [command flags]

commands:
  summary     dashboard counts
  dashboard   summary, expiring list and alerts
  catalog     filtered catalog with facets (-q, -type, -provider, -area)
  facets      providers and areas for a type (-type)
  drilldown   rows behind a count (-kind, -item, -person, -status, -level)
  expiring    links expiring within the window
  item        status counts of one item (-item)
  normalize   rewrite the snapshot in canonical form (-out)
`

// main wires high-level dependencies and keeps the process lifecycle small.
// Query logic lives in internal/knowledge.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type globalFlags struct {
	configPath   string
	snapshotPath string
	now          string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("knowledge-report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }

	var g globalFlags
	fs.StringVar(&g.configPath, "config", "", "YAML config file (overlays KNOWLEDGE_* environment)")
	fs.StringVar(&g.snapshotPath, "snapshot", "", "snapshot file (.yaml, .yml or .json)")
	fs.StringVar(&g.now, "now", "", "evaluate at this RFC 3339 instant instead of the current time")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(g.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	if g.snapshotPath != "" {
		cfg.SnapshotPath = g.snapshotPath
	}

	log, err := logger.New(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return 1
	}

	if g.now != "" {
		t, err := time.Parse(time.RFC3339Nano, g.now)
		if err != nil {
			log.Error("invalid -now", "value", g.now, "error", err)
			return 2
		}
		ctx = requestcontext.WithTime(ctx, t)
	}

	app, err := newApp(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", "error", err)
		return 1
	}

	result, err := app.dispatch(ctx, fs.Arg(0), fs.Args()[1:])
	if err != nil {
		if errors.Is(err, errUsage) {
			if !errors.Is(err, flag.ErrHelp) {
				log.Error("invalid command line", "command", fs.Arg(0), "error", err)
			}
			fmt.Fprint(stderr, usage)
			return 2
		}
		log.Error("command failed", "command", fs.Arg(0), "error", err)
		return 1
	}

	if result != nil {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Error("encode result", "error", err)
			return 1
		}
	}

	if cfg.MetricsFile != "" {
		if err := platformmetrics.WriteTextfile(cfg.MetricsFile, app.registry); err != nil {
			log.Warn("metrics not written", "error", err)
		}
	}
	return 0
}

// app holds the wired engine for one invocation.
type app struct {
	log      *slog.Logger
	store    *snapshot.InMemory
	engine   *service.Engine
	registry *prometheus.Registry
}

func newApp(ctx context.Context, cfg config.Engine, log *slog.Logger) (*app, error) {
	if cfg.SnapshotPath == "" {
		return nil, errors.New("no snapshot: pass -snapshot or set KNOWLEDGE_SNAPSHOT_PATH")
	}

	reg := platformmetrics.NewRegistry()
	m := kmetrics.New(reg)

	snap, warnings, err := snapshot.LoadFile(cfg.SnapshotPath)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		log.WarnContext(ctx, "snapshot field dropped",
			"record", w.Record,
			"field", w.Field,
			"value", w.Value,
			"reason", w.Reason,
		)
	}
	m.AddSnapshotWarnings(len(warnings))

	store := snapshot.NewInMemory()
	if err := store.Replace(ctx, snap); err != nil {
		return nil, err
	}

	engine, err := service.New(store,
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithExpiringWindow(cfg.ExpiringWindow),
		service.WithTopDesired(cfg.TopDesired),
		service.WithWriter(store),
	)
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "snapshot loaded",
		"path", cfg.SnapshotPath,
		"people", len(snap.People),
		"items", len(snap.Items),
		"links", len(snap.Links),
	)
	return &app{log: log, store: store, engine: engine, registry: reg}, nil
}
