// Command nba is the NBA Analytics command-line client. It runs the same
// services as the API in-process.
//
// Usage:
//
//	nba player "stephen curry"
//	nba player jokic --season 2024-25
//	nba predict "luka doncic"
//	nba lookups recent --limit 20
//	nba lookups prune --days 30
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/nba-analytics/internal/app"
	"github.com/albapepper/nba-analytics/internal/config"
	"github.com/albapepper/nba-analytics/internal/predict"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "nba",
		Short:        "NBA Analytics CLI",
		SilenceUsage: true,
	}

	root.AddCommand(playerCmd())
	root.AddCommand(predictCmd())
	root.AddCommand(lookupsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// player command
// --------------------------------------------------------------------------

func playerCmd() *cobra.Command {
	var season string
	cmd := &cobra.Command{
		Use:   "player <name>",
		Short: "Print a player's most recent games as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, a *app.App) error {
				log, err := a.Games.RecentGames(ctx, strings.Join(args, " "), season)
				if err != nil {
					return err
				}
				return printJSON(log)
			})
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "Season token, e.g. 2025-26 (default NBA_SEASON)")
	return cmd
}

// --------------------------------------------------------------------------
// predict command
// --------------------------------------------------------------------------

func predictCmd() *cobra.Command {
	var season string
	cmd := &cobra.Command{
		Use:   "predict <name>",
		Short: "Fetch recent games and project the next one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, a *app.App) error {
				log, err := a.Games.RecentGames(ctx, strings.Join(args, " "), season)
				if err != nil {
					return err
				}
				stats := make([]json.RawMessage, 0, len(log.Games))
				for _, g := range log.Games {
					raw, err := json.Marshal(g)
					if err != nil {
						return fmt.Errorf("encode game: %w", err)
					}
					stats = append(stats, raw)
				}
				res, err := a.Predictor.Predict(ctx, predict.Request{
					PlayerName: log.Player.FullName,
					Stats:      stats,
				})
				if err != nil {
					return err
				}
				return printJSON(res)
			})
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "Season token, e.g. 2025-26 (default NBA_SEASON)")
	return cmd
}

// --------------------------------------------------------------------------
// lookups command
// --------------------------------------------------------------------------

func lookupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookups",
		Short: "Inspect or prune recorded player lookups (requires DATABASE_URL)",
	}
	cmd.AddCommand(lookupsRecentCmd())
	cmd.AddCommand(lookupsPruneCmd())
	return cmd
}

func lookupsRecentCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List the most recent lookups",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStorage(func(ctx context.Context, cfg *config.Config, a *app.App) error {
				rows, err := a.Lookups.Recent(ctx, limit)
				if err != nil {
					return err
				}
				return printJSON(rows)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of lookups to list")
	return cmd
}

func lookupsPruneCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete lookups older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStorage(func(ctx context.Context, cfg *config.Config, a *app.App) error {
				if days <= 0 {
					days = cfg.LookupRetentionDays
				}
				n, err := a.Lookups.Prune(ctx, time.Duration(days)*24*time.Hour)
				if err != nil {
					return err
				}
				fmt.Printf("pruned %d lookups older than %d days\n", n, days)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "Retention in days (default LOOKUP_RETENTION_DAYS)")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// run handles config loading, service wiring, and context cancellation.
func run(fn func(ctx context.Context, cfg *config.Config, a *app.App) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, cfg, a)
}

// runStorage is run for commands that only need the lookup store. No oracle
// key is required.
func runStorage(fn func(ctx context.Context, cfg *config.Config, a *app.App) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.LoadWithoutOracle()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	a, err := app.NewStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, cfg, a)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
