// Command statsctl runs statistics maintenance tasks against the database.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/eee-uofk/coursehub/internal/app/models/dto"
	"github.com/eee-uofk/coursehub/internal/bootstrap"
	"github.com/eee-uofk/coursehub/internal/db"
	"github.com/eee-uofk/coursehub/internal/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout).RunContext(ctx, os.Args); err != nil {
		logger.Error().Err(err).Msg("statsctl failed")
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:  "statsctl",
		Usage: "maintain subject statistics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "configs/config.yaml",
				EnvVars: []string{"COURSEHUB_CONFIG"},
				Usage:   "path to the YAML configuration file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "sync",
				Usage: "recompute every subject's counters once and print the report",
				Action: func(c *cli.Context) error {
					return withDependencies(c, func(deps *bootstrap.Dependencies) error {
						report, err := deps.StatisticsService.Sync(c.Context)
						if err != nil {
							return err
						}
						return writeSyncReport(out, report)
					})
				},
			},
			{
				Name:  "health",
				Usage: "print per-table row counts and check the resources columns",
				Action: func(c *cli.Context) error {
					return withDependencies(c, func(deps *bootstrap.Dependencies) error {
						resp := deps.HealthService.Check(c.Context)
						if err := writeHealth(out, resp); err != nil {
							return err
						}
						if resp.Status != "ok" {
							return cli.Exit("database health check failed", 2)
						}
						return nil
					})
				},
			},
		},
	}
}

func withDependencies(c *cli.Context, fn func(*bootstrap.Dependencies) error) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"))
	if err != nil {
		return err
	}

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	deps, err := bootstrap.BuildDependencies(c.Context, cfg, database, lgr)
	if err != nil {
		return err
	}
	defer deps.Close()

	return fn(deps)
}

func writeSyncReport(out io.Writer, report *dto.SyncReport) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(dto.SyncStatisticsResponse{
		Success:    len(report.Failed) == 0,
		Count:      report.Count,
		Processed:  report.Processed,
		Failed:     report.Failed,
		DurationMs: report.Duration.Milliseconds(),
		Timestamp:  report.StartedAt,
	})
}

func writeHealth(out io.Writer, resp dto.HealthResponse) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tROWS\tERROR")
	for _, t := range resp.Tables {
		fmt.Fprintf(w, "%s\t%d\t%s\n", t.Table, t.Rows, t.Error)
	}
	fmt.Fprintf(w, "status\t\t%s\n", resp.Status)
	return w.Flush()
}
