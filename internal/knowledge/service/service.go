// Package service is the in-process facade over the knowledge engine.
//
// It fetches a snapshot from its Source, builds the join index once per
// snapshot version and memoizes results keyed by version, operation and
// parameters. The pure packages underneath stay free of I/O.
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/aggregate"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/join"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/memo"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/metrics"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/models"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/snapshot"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/status"
	"github.com/williandearaujo/Gestao-OL-360-sub001/pkg/clock"
	id "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain"
	dErrors "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain-errors"
	"github.com/williandearaujo/Gestao-OL-360-sub001/pkg/platform/sentinel"
)

// Source hands the engine a consistent snapshot of the three collections.
type Source interface {
	Snapshot(ctx context.Context) (snapshot.Snapshot, error)
}

// Writer persists link edits made through the engine.
type Writer interface {
	SaveLink(ctx context.Context, l models.Link) error
	DeleteLink(ctx context.Context, linkID id.LinkID) error
}

// Engine answers dashboard, catalog and drill-down queries over a Source.
type Engine struct {
	source     Source
	writer     Writer
	classifier status.Classifier
	topDesired int
	clock      clock.Clock
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
	cache      *memo.Cache
}

type Option func(e *Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = t
	}
}

// WithExpiringWindow sets how far ahead an expiration counts as soon.
func WithExpiringWindow(d time.Duration) Option {
	return func(e *Engine) {
		e.classifier = status.Classifier{Window: d}
	}
}

// WithTopDesired sets how many items the desired ranking keeps.
func WithTopDesired(n int) Option {
	return func(e *Engine) {
		e.topDesired = n
	}
}

// WithWriter enables RecordLink and RemoveLink.
func WithWriter(w Writer) Option {
	return func(e *Engine) {
		e.writer = w
	}
}

// New constructs an Engine reading from source.
func New(source Source, opts ...Option) (*Engine, error) {
	if source == nil {
		return nil, errors.New("snapshot source is required")
	}
	e := &Engine{
		source:     source,
		classifier: status.Default(),
		topDesired: aggregate.DefaultTopDesired,
		clock:      clock.System{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer("knowledge")
	}
	e.cache = memo.New(memo.WithMetrics(e.metrics))
	return e, nil
}

// Invalidate drops memoized results older than version. Collaborators that
// mutate the collections outside a versioned Source call it after writing.
func (e *Engine) Invalidate(version uint64) {
	e.cache.Invalidate(version)
}

// view is one snapshot with its join index, shared by every query on the
// same version.
type view struct {
	version uint64
	index   *join.Index
}

func (e *Engine) load(ctx context.Context) (*view, error) {
	snap, err := e.source.Snapshot(ctx)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "snapshot not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load snapshot")
	}

	return memo.Do(e.cache, memo.Key{Version: snap.Version, Operation: "index"}, func() (*view, error) {
		ix := join.New(snap.People, snap.Items, snap.Links)
		if ix.DanglingCount() > 0 || ix.InvalidCount() > 0 {
			e.logger.DebugContext(ctx, "links excluded from snapshot",
				"snapshot_version", snap.Version,
				"dangling_links", ix.DanglingCount(),
				"invalid_links", ix.InvalidCount(),
			)
		}
		return &view{version: snap.Version, index: ix}, nil
	})
}

// begin starts a span and resolves "now" for one operation. The returned
// finish func records the outcome.
func (e *Engine) begin(ctx context.Context, operation string) (context.Context, time.Time, func(error)) {
	ctx, span := e.tracer.Start(ctx, "knowledge."+operation)
	now := clock.NowFrom(ctx, e.clock)
	start := time.Now()
	span.SetAttributes(attribute.String("knowledge.now", now.Format(time.RFC3339Nano)))

	return ctx, now, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		e.metrics.ObserveOperation(operation, time.Since(start))
		span.End()
	}
}

func tagVersion(ctx context.Context, v *view) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int64("knowledge.snapshot_version", int64(v.version)))
}
