// Command ingest is the CBB data unification CLI.
//
// Usage:
//
//	cbb-ingest build
//	cbb-ingest build --out web/public/data/teams.json --season 2025-26
//	cbb-ingest build --dry-run
//	cbb-ingest resolve "UConn" "Saint Mary's"
//	cbb-ingest mapping validate
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/cbb-data/internal/config"
	"github.com/albapepper/cbb-data/internal/identity"
	"github.com/albapepper/cbb-data/internal/logging"
	"github.com/albapepper/cbb-data/internal/pipeline"
)

var logger *logging.Logger

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	var logLevel, logFormat string
	root := &cobra.Command{
		Use:           "cbb-ingest",
		Short:         "CBB data unification CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.New(logging.ParseLevel(logLevel), logFormat)
			logging.SetDefault(logger)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", envOr("LOG_FORMAT", "console"), "Log format (json, console)")

	root.AddCommand(buildCmd())
	root.AddCommand(resolveCmd())
	root.AddCommand(mappingCmd())

	err := root.Execute()
	if logger != nil {
		if err != nil {
			logger.Error("Command failed", "error", err)
		}
		_ = logger.Sync()
	} else if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	if err != nil {
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// --------------------------------------------------------------------------
// build command
// --------------------------------------------------------------------------

func buildCmd() *cobra.Command {
	var (
		mappingPath, torvikPath, kenpomPath, cbbaPath string
		logoDir, outPath, season                      string
		dryRun                                        bool
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Merge the source exports into the team snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithConfig(func(ctx context.Context, cfg *config.Config) error {
				override(cmd, "mapping", &cfg.MappingPath, mappingPath)
				override(cmd, "torvik", &cfg.TorvikPath, torvikPath)
				override(cmd, "kenpom", &cfg.KenPomPath, kenpomPath)
				override(cmd, "cbba", &cfg.CBBAPath, cbbaPath)
				override(cmd, "logos", &cfg.LogoDir, logoDir)
				override(cmd, "out", &cfg.OutputPath, outPath)
				override(cmd, "season", &cfg.Season, season)
				if err := cfg.Validate(); err != nil {
					return err
				}

				logger.Info("Building snapshot", "season", cfg.Season, "out", cfg.OutputPath, "dry_run", dryRun)
				res, err := pipeline.Run(ctx, pipeline.Inputs{
					MappingPath: cfg.MappingPath,
					TorvikPath:  cfg.TorvikPath,
					KenPomPath:  cfg.KenPomPath,
					CBBAPath:    cfg.CBBAPath,
					LogoDir:     cfg.LogoDir,
					OutputPath:  cfg.OutputPath,
					Season:      cfg.Season,
					DryRun:      dryRun,
				}, logger)
				if err != nil {
					return err
				}
				logger.Info("Build finished",
					"teams", res.TeamCount,
					"duration", res.Duration.Round(time.Millisecond),
					"summary", res.Merge.Summary())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&mappingPath, "mapping", "", "Team name mapping JSON (default $CBB_MAPPING_PATH)")
	cmd.Flags().StringVar(&torvikPath, "torvik", "", "Torvik export CSV (default $CBB_TORVIK_PATH)")
	cmd.Flags().StringVar(&kenpomPath, "kenpom", "", "KenPom export CSV (default $CBB_KENPOM_PATH)")
	cmd.Flags().StringVar(&cbbaPath, "cbba", "", "CBB Analytics export CSV (default $CBB_CBBA_PATH)")
	cmd.Flags().StringVar(&logoDir, "logos", "", "Logo directory (default $CBB_LOGO_DIR)")
	cmd.Flags().StringVar(&outPath, "out", "", "Snapshot output path (default $CBB_OUTPUT_PATH)")
	cmd.Flags().StringVar(&season, "season", "", "Season label (default $CBB_SEASON or "+config.CurrentSeason+")")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run everything except the final write")
	return cmd
}

// override applies a flag value only when the flag was given.
func override(cmd *cobra.Command, name string, dst *string, val string) {
	if cmd.Flags().Changed(name) {
		*dst = val
	}
}

// --------------------------------------------------------------------------
// resolve command
// --------------------------------------------------------------------------

func resolveCmd() *cobra.Command {
	var mappingPath string
	cmd := &cobra.Command{
		Use:   "resolve NAME...",
		Short: "Show which team slug each raw name resolves to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithConfig(func(ctx context.Context, cfg *config.Config) error {
				override(cmd, "mapping", &cfg.MappingPath, mappingPath)
				m, err := identity.LoadMapping(cfg.MappingPath)
				if err != nil {
					return err
				}
				r := identity.NewResolver(m)
				out := cmd.OutOrStdout()
				for _, name := range args {
					res := r.Resolve(name)
					fmt.Fprintf(out, "%-30q -> %-30s %-8s %s\n", name, res.Slug, res.Method, res.DisplayName())
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&mappingPath, "mapping", "", "Team name mapping JSON (default $CBB_MAPPING_PATH)")
	return cmd
}

// --------------------------------------------------------------------------
// mapping command
// --------------------------------------------------------------------------

func mappingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mapping",
		Short: "Inspect the team name mapping",
	}
	cmd.AddCommand(mappingValidateCmd())
	return cmd
}

func mappingValidateCmd() *cobra.Command {
	var mappingPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check slugs are unique and aliases unambiguous",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithConfig(func(ctx context.Context, cfg *config.Config) error {
				override(cmd, "mapping", &cfg.MappingPath, mappingPath)
				m, err := identity.LoadMapping(cfg.MappingPath)
				if err != nil {
					return err
				}
				logger.Info("Mapping is valid", "path", cfg.MappingPath, "entries", m.Len())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&mappingPath, "mapping", "", "Team name mapping JSON (default $CBB_MAPPING_PATH)")
	return cmd
}

// --------------------------------------------------------------------------
// helpers
// --------------------------------------------------------------------------

func runWithConfig(fn func(ctx context.Context, cfg *config.Config) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return fn(ctx, cfg)
}
