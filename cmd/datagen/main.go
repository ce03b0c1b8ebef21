package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanshika/herograph/backend/internal/dataset"
	"github.com/vanshika/herograph/backend/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		outputDir   string
		writeStdout bool
	)

	cmd := &cobra.Command{
		Use:          "datagen",
		Short:        "Generate a synthetic character relation dataset",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.FactionAffinity = clampProbability(cfg.FactionAffinity)

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			ds, err := generator.New(cfg).Generate(ctx)
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}

			if writeStdout {
				return dataset.WriteRelations(cmd.OutOrStdout(), ds.Relations)
			}

			if err := generator.WriteDataset(ds, outputDir); err != nil {
				return fmt.Errorf("write dataset: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d characters and %d relations into %s\n", len(ds.Characters), len(ds.Relations), outputDir)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.NumCharacters, "characters", cfg.NumCharacters, "number of characters to generate")
	flags.IntVar(&cfg.NumRelations, "relations", cfg.NumRelations, "number of relation rows to generate")
	flags.IntVar(&cfg.Factions, "factions", cfg.Factions, "number of loosely connected groups")
	flags.Float64Var(&cfg.FactionAffinity, "faction-affinity", cfg.FactionAffinity, "probability a relation stays inside the subject's group")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for deterministic generation")
	flags.StringVar(&outputDir, "output-dir", "data", "directory to write "+generator.RelationsFile+" and "+generator.CharactersFile)
	flags.BoolVar(&writeStdout, "stdout", false, "write the relation CSV to stdout instead of files")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
