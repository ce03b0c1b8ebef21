package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/vanshika/herograph/backend/internal/config"
	"github.com/vanshika/herograph/backend/internal/dataset"
	"github.com/vanshika/herograph/backend/internal/domain"
	"github.com/vanshika/herograph/backend/internal/generator"
	"github.com/vanshika/herograph/backend/internal/graph"
	"github.com/vanshika/herograph/backend/internal/graphdb"
	"github.com/vanshika/herograph/backend/internal/logging"
	"github.com/vanshika/herograph/backend/internal/metrics"
	"github.com/vanshika/herograph/backend/internal/repository"
	"github.com/vanshika/herograph/backend/internal/server"
	"github.com/vanshika/herograph/backend/internal/service"
)

var _ service.Observer = (*metrics.Collector)(nil)

type recordSource interface {
	dataset.RelationSource
	dataset.CharacterSource
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	var (
		source      recordSource = dataset.CSVSource{RelationsPath: cfg.Data.RelationsPath, CharactersPath: cfg.Data.CharactersPath}
		graphClient graphdb.Client
	)
	if cfg.Data.Source == config.SourceNeo4j {
		graphClient, err = buildGraphClient(ctx, cfg)
		if err != nil {
			logger.Error("failed to create graph client", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := graphClient.Close(context.Background()); err != nil {
				logger.Warn("closing graph client failed", "error", err)
			}
		}()
		source = repository.New(graphClient)
	}
	logger.Info("loading records", "source", cfg.Data.Source)

	relations, characters, err := loadRecords(ctx, logger, source)
	if err != nil {
		logger.Info("startup interrupted", "error", err)
		return
	}

	agg := graph.Aggregate(relations)
	labeled := graph.BuildLabeled(agg)
	logger.Info("labeled graph built",
		"nodes", labeled.NodeCount(),
		"edges", labeled.EdgeCount(),
		"records", len(agg.Records),
		"skipped", agg.Skipped,
		"characters", len(characters),
	)

	collector := metrics.NewCollector("herograph")

	analyticsService := service.NewAnalyticsService(source,
		service.WithDecorator(generator.NewDisplayDecorator(cfg.Data.DisplaySeed)),
		service.WithLogger(logger.With("component", "analytics")),
		service.WithObserver(collector),
	)
	characterService := service.NewCharacterService(labeled, dataset.NewIndex(characters, agg.Records))
	characterService.SetObserver(collector)

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:         server.GraphHealthService{Client: graphClient, Nodes: labeled.NodeCount},
		API:            server.NewAPIHandlers(logger, analyticsService, characterService),
		Metrics:        collector,
		MetricsEnabled: cfg.HTTP.MetricsEnabled,
		AllowedOrigins: cfg.HTTP.AllowedOrigins(),
	})

	srv := server.New(logger, cfg.HTTP, router)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped unexpectedly", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// loadRecords reads both record kinds concurrently. A failing source is
// logged and treated as empty so the server still starts; only cancellation
// of ctx aborts the load, and it stops the sibling read as well.
func loadRecords(ctx context.Context, logger *slog.Logger, source recordSource) ([]domain.RelationRecord, []domain.CharacterRecord, error) {
	var (
		relations  []domain.RelationRecord
		characters []domain.CharacterRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := source.LoadRelations(gctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return fmt.Errorf("load relations: %w", ctxErr)
			}
			logger.Warn("relation records unavailable, starting with an empty graph", "error", err)
			return nil
		}
		relations = recs
		return nil
	})
	g.Go(func() error {
		recs, err := source.LoadCharacters(gctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return fmt.Errorf("load characters: %w", ctxErr)
			}
			logger.Warn("character records unavailable, lookups limited to graph nodes", "error", err)
			return nil
		}
		characters = recs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return relations, characters, nil
}

func buildGraphClient(ctx context.Context, cfg config.Config) (graphdb.Client, error) {
	if cfg.Graph.URI == "" {
		return nil, graphdb.ErrMissingURI
	}

	opts := graphdb.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	}
	return graphdb.NewNeo4jClient(ctx, opts)
}
