package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vanshika/herograph/backend/internal/analytics"
	"github.com/vanshika/herograph/backend/internal/dataset"
	"github.com/vanshika/herograph/backend/internal/domain"
	"github.com/vanshika/herograph/backend/internal/graph"
)

const overlayKey = "overlay"

// AnalyticsService lazily computes the analytics overlay and keeps the first
// non-empty result for the lifetime of the process. An empty result is handed
// out but not kept, so the next call reads the source again.
type AnalyticsService struct {
	source   dataset.RelationSource
	decorate Decorator
	pagerank analytics.PageRankOptions
	logger   *slog.Logger
	observer Observer

	group singleflight.Group

	mu       sync.Mutex
	overlay  domain.Overlay
	computed bool
}

// AnalyticsOption customises an AnalyticsService.
type AnalyticsOption func(*AnalyticsService)

// WithDecorator sets the display attribute generator.
func WithDecorator(d Decorator) AnalyticsOption {
	return func(s *AnalyticsService) { s.decorate = d }
}

// WithPageRankOptions overrides the PageRank parameters.
func WithPageRankOptions(opts analytics.PageRankOptions) AnalyticsOption {
	return func(s *AnalyticsService) { s.pagerank = opts }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) AnalyticsOption {
	return func(s *AnalyticsService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver sets the lifecycle observer.
func WithObserver(o Observer) AnalyticsOption {
	return func(s *AnalyticsService) {
		if o != nil {
			s.observer = o
		}
	}
}

// NewAnalyticsService builds a service that reads relation records from source
// whenever it has no usable overlay.
func NewAnalyticsService(source dataset.RelationSource, opts ...AnalyticsOption) *AnalyticsService {
	s := &AnalyticsService{
		source:   source,
		pagerank: analytics.DefaultPageRankOptions(),
		logger:   slog.Default(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Overlay returns the stored overlay, computing it first when none has been
// kept yet. Concurrent callers that arrive while a computation is running wait
// for it and receive the same result.
func (s *AnalyticsService) Overlay(ctx context.Context) (domain.Overlay, error) {
	if overlay, ok := s.cached(); ok {
		s.observer.OverlayServed(true)
		return overlay, nil
	}

	res, err, _ := s.group.Do(overlayKey, func() (any, error) {
		if overlay, ok := s.cached(); ok {
			return overlay, nil
		}
		// The computation is shared, so one caller's cancellation must not
		// fail the others.
		overlay, err := s.compute(context.WithoutCancel(ctx))
		if err != nil {
			return domain.Overlay{}, err
		}
		s.store(overlay)
		return overlay, nil
	})
	if err != nil {
		return domain.Overlay{}, err
	}
	s.observer.OverlayServed(false)
	return res.(domain.Overlay), nil
}

// Ready reports whether a non-empty overlay is held.
func (s *AnalyticsService) Ready() bool {
	_, ok := s.cached()
	return ok
}

func (s *AnalyticsService) cached() (domain.Overlay, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.computed || s.overlay.Empty() {
		return domain.Overlay{}, false
	}
	return s.overlay, true
}

func (s *AnalyticsService) store(overlay domain.Overlay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlay = overlay
	s.computed = true
}

func (s *AnalyticsService) compute(ctx context.Context) (domain.Overlay, error) {
	started := time.Now()

	records, err := s.source.LoadRelations(ctx)
	if err != nil {
		// A missing or unreadable source yields an empty overlay that is
		// retried on the next call.
		s.logger.Warn("relation source unavailable, serving empty overlay", "error", err)
		empty := emptyOverlay()
		s.observer.OverlayComputed(time.Since(started), 0, 0, err)
		return empty, nil
	}

	agg := graph.Aggregate(records)
	store := graph.BuildWeighted(agg)
	overlay := BuildOverlay(store, s.decorate, s.pagerank)

	elapsed := time.Since(started)
	if overlay.Empty() {
		s.observer.OverlayComputed(elapsed, 0, 0, domain.ErrEmptyGraph)
		s.logger.Warn("analytics overlay is empty",
			"error", domain.ErrEmptyGraph,
			"records", len(records),
			"skipped", agg.Skipped,
		)
		return overlay, nil
	}
	s.observer.OverlayComputed(elapsed, len(overlay.Nodes), len(overlay.Links), nil)

	s.logger.Info("analytics overlay computed",
		"nodes", len(overlay.Nodes),
		"links", len(overlay.Links),
		"records", len(records),
		"skipped", agg.Skipped,
		"elapsed", elapsed,
	)
	return overlay, nil
}

func emptyOverlay() domain.Overlay {
	return domain.Overlay{
		Nodes:  []domain.OverlayNode{},
		Links:  []domain.WeightedEdge{},
		Movies: []domain.Movie{},
	}
}
