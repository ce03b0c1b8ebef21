package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanshika/herograph/backend/internal/config"
	"github.com/vanshika/herograph/backend/internal/dataset"
	"github.com/vanshika/herograph/backend/internal/graphdb"
	"github.com/vanshika/herograph/backend/internal/logging"
	"github.com/vanshika/herograph/backend/internal/repository"
	"github.com/vanshika/herograph/backend/internal/service"
)

var errNoRelations = errors.New("relation dataset is empty")

type options struct {
	relationsPath  string
	charactersPath string
	workers        int
	batchSize      int
	reset          bool
}

func main() {
	var opts options

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load relation and character CSV files into Neo4j",
		Long: `ingest reads the subject,object,relation CSV (and optionally the
headerless id,name,status,species character CSV) and writes them to the
graph database configured by GRAPH_URI, so the server can run with
DATA_SOURCE=neo4j.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	defaults := config.Default().Data
	cmd.Flags().StringVar(&opts.relationsPath, "relations", defaults.RelationsPath, "path to the relation CSV")
	cmd.Flags().StringVar(&opts.charactersPath, "characters", defaults.CharactersPath, "path to the character CSV (skipped when missing)")
	cmd.Flags().IntVar(&opts.workers, "workers", 4, "number of concurrent write workers")
	cmd.Flags().IntVar(&opts.batchSize, "batch-size", service.DefaultBatchSize, "relation rows per write query")
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "delete stored relations before ingesting")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(cfg.Logging).With("component", "ingest")

	src := dataset.CSVSource{RelationsPath: opts.relationsPath, CharactersPath: opts.charactersPath}
	relations, err := src.LoadRelations(ctx)
	if err != nil {
		logger.Error("failed to load relations", "error", err, "path", opts.relationsPath)
		return err
	}
	if len(relations) == 0 {
		logger.Error("relations dataset empty", "path", opts.relationsPath)
		return errNoRelations
	}

	characters, err := src.LoadCharacters(ctx)
	if err != nil {
		logger.Warn("character records skipped", "error", err, "path", opts.charactersPath)
		characters = nil
	}

	graphClient, err := buildGraphClient(ctx, logger, cfg)
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		return err
	}
	defer func() {
		if err := graphClient.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()

	repo := repository.New(graphClient)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("schema setup failed", "error", err)
		return err
	}
	if opts.reset {
		deleted, err := repo.Reset(ctx)
		if err != nil {
			logger.Error("reset failed", "error", err)
			return err
		}
		logger.Info("stored relations deleted", "count", deleted)
	}

	start := time.Now()
	if len(characters) > 0 {
		logger.Info("ingesting characters", "count", len(characters))
		if err := repo.UpsertCharacters(ctx, characters); err != nil {
			logger.Error("character ingestion failed", "error", err)
			return err
		}
	}

	ingestor := service.NewBulkIngestor(repo, opts.workers, opts.batchSize)
	logger.Info("ingesting relations", "count", len(relations), "workers", opts.workers, "batch_size", opts.batchSize)
	written, err := ingestor.IngestRelations(ctx, relations)
	if err != nil {
		logger.Error("relation ingestion failed", "error", err, "written", written)
		return err
	}

	total, err := repo.CountRelations(ctx)
	if err != nil {
		logger.Warn("could not count stored relations", "error", err)
	}
	logger.Info("ingestion complete",
		"duration", time.Since(start).String(),
		"relations", written,
		"characters", len(characters),
		"stored_relations", total,
	)
	return nil
}

func buildGraphClient(ctx context.Context, logger *slog.Logger, cfg config.Config) (graphdb.Client, error) {
	if cfg.Graph.URI == "" {
		return nil, fmt.Errorf("GRAPH_URI is required for ingestion")
	}
	opts := graphdb.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	}
	client, err := graphdb.NewNeo4jClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to graph", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)
	return client, nil
}
