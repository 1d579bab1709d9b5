// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/dataprep"
	"github.com/poiesic/dataprep/core"
	"github.com/poiesic/dataprep/ingestion"
	"github.com/poiesic/dataprep/split"
	"github.com/urfave/cli/v2"
)

const envPrefix = "DATAPREP_"

func main() {
	if err := run(newApp(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// run loads .env from the working directory and then runs app. Flags read
// their EnvVars while arguments are parsed, so the file must be loaded first.
func run(app *cli.App, args []string) error {
	if err := loadDotEnv(".env"); err != nil {
		return err
	}
	return app.Run(args)
}

func newApp() *cli.App {
	globalFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Aliases: []string{"l"},
			Usage:   "Set logging level (debug, info, warn, error)",
			Value:   "info",
			EnvVars: []string{envPrefix + "LOG_LEVEL"},
		},
	}

	return &cli.App{
		Name:   "dataprep",
		Usage:  "Ingest a CSV dataset and split it into train and test sets",
		Flags:  append(globalFlags, ingestFlags()...),
		Before: setupLogger,
		Action: runCommand,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Ingest the source and write the train/test split (default)",
				Action: runCommand,
				Flags:  ingestFlags(),
			},
			{
				Name:   "history",
				Usage:  "List recorded ingestion runs, newest first",
				Action: historyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB run log directory",
						Required: true,
						EnvVars:  []string{envPrefix + "DB"},
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of runs to list (0 lists all)",
						Value: 20,
					},
				},
			},
		},
	}
}

// ingestFlags returns fresh flag values for the ingestion settings. They are
// accepted both before and after the run command.
func ingestFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "source",
			Aliases: []string{"s"},
			Usage:   "Path to the source CSV file",
			Value:   ingestion.DefaultSourcePath,
			EnvVars: []string{envPrefix + "SOURCE"},
		},
		&cli.StringFlag{
			Name:    "artifacts-dir",
			Aliases: []string{"o"},
			Usage:   "Directory receiving data.csv, train.csv and test.csv",
			Value:   ingestion.ArtifactsDirName,
			EnvVars: []string{envPrefix + "ARTIFACTS_DIR"},
		},
		&cli.Float64Flag{
			Name:    "test-size",
			Usage:   "Fraction of rows assigned to the test set",
			Value:   split.DefaultTestFraction,
			EnvVars: []string{envPrefix + "TEST_SIZE"},
		},
		&cli.Uint64Flag{
			Name:    "seed",
			Usage:   "Seed for the train/test shuffle",
			Value:   split.DefaultSeed,
			EnvVars: []string{envPrefix + "SEED"},
		},
		&cli.BoolFlag{
			Name:    "no-shuffle",
			Usage:   "Split rows in file order instead of shuffling",
			EnvVars: []string{envPrefix + "NO_SHUFFLE"},
		},
		&cli.IntFlag{
			Name:    "workers",
			Usage:   "Number of output files written concurrently",
			Value:   2,
			EnvVars: []string{envPrefix + "WORKERS"},
		},
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB run log directory (optional)",
			EnvVars: []string{envPrefix + "DB"},
		},
	}
}

// flagContext returns the nearest context in which name was set, on the
// command line or from the environment. When it was set nowhere, c is
// returned and the flag's default applies.
func flagContext(c *cli.Context, name string) *cli.Context {
	for _, ctx := range c.Lineage() {
		if ctx.IsSet(name) {
			return ctx
		}
	}
	return c
}

// loadDotEnv populates unset environment variables from path.
// A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

// configFromFlags builds the ingestion config from the ingestion flags.
func configFromFlags(c *cli.Context) *ingestion.Config {
	return ingestion.NewConfig(
		ingestion.WithSourcePath(flagContext(c, "source").String("source")),
		ingestion.WithArtifactsDir(flagContext(c, "artifacts-dir").String("artifacts-dir")),
		ingestion.WithTestFraction(flagContext(c, "test-size").Float64("test-size")),
		ingestion.WithSeed(flagContext(c, "seed").Uint64("seed")),
		ingestion.WithShuffle(!flagContext(c, "no-shuffle").Bool("no-shuffle")),
	)
}

func runCommand(c *cli.Context) error {
	ctx := context.Background()

	in, closeFn, err := newIngestor(c)
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := in.Run(ctx)
	if err != nil {
		return err
	}

	out := c.App.Writer
	fmt.Fprintf(out, "Train File Path: %s\n", result.TrainPath)
	fmt.Fprintf(out, "Test File Path: %s\n", result.TestPath)
	return nil
}

// newIngestor builds an Ingestor from the global flags. When --db is set the
// Ingestor records runs in that workspace, which the returned func closes.
func newIngestor(c *cli.Context) (*ingestion.Ingestor, func(), error) {
	cfg := configFromFlags(c)
	opts := []ingestion.Option{
		ingestion.WithWriteConcurrency(flagContext(c, "workers").Int("workers")),
		ingestion.WithReporter(c.App.Writer),
	}

	dbPath := flagContext(c, "db").String("db")
	if dbPath == "" {
		in, err := ingestion.NewIngestor(cfg, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return in, func() {}, nil
	}

	ws, err := dataprep.OpenWorkspace(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open run log: %w", err)
	}

	in, err := ws.NewIngestor(cfg, opts...)
	if err != nil {
		ws.Close()
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return in, func() { ws.Close() }, nil
}

func historyCommand(c *cli.Context) error {
	ctx := context.Background()

	ws, err := dataprep.OpenWorkspace(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open run log: %w", err)
	}
	defer ws.Close()

	runs, err := ws.RunRepository().ListRuns(ctx, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	return printRuns(c.App.Writer, runs)
}

func printRuns(w io.Writer, runs []*core.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFINISHED\tSOURCE\tROWS\tTRAIN\tTEST\tSEED\tDIGEST")
	for _, run := range runs {
		digest := run.SourceDigest
		if len(digest) > 12 {
			digest = digest[:12]
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			run.Id,
			run.FinishedAt.Local().Format(time.DateTime),
			run.Source,
			run.Rows,
			run.TrainRows,
			run.TestRows,
			run.Seed,
			digest,
		)
	}
	return tw.Flush()
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
