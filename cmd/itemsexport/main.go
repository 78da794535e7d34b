package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"itemsexport/internal/core/version"
	"itemsexport/internal/modkit"
	"itemsexport/internal/platform/config"
	perr "itemsexport/internal/platform/errors"
	"itemsexport/internal/platform/logger"
	"itemsexport/internal/platform/store/pg"

	convertmod "itemsexport/internal/services/convert/module"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type flags struct {
	envFile               string
	source, fixed, output string
	pgURL, pgTable        string
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "itemsexport",
		Short: "Convert a newline-delimited JSON items export into data.csv",
		Long: `Reads the source export (one JSON object per line, or a JSON array),
writes the repaired array to the intermediate file, normalizes every record
and writes the CSV. With --pg-url the rows are also copied into Postgres.`,
		Version:       version.Info().String(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadEnvFile(f.envFile, cmd.Flags().Changed("env-file"))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := applyFlags(cmd, convertmod.FromConfig(config.New()), f)
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&f.envFile, "env-file", ".env", "dotenv file with ITEMS_* and LOG_* settings; real env wins")
	cmd.Flags().StringVar(&f.source, "source", "", "source export (env ITEMS_SOURCE, default items.json)")
	cmd.Flags().StringVar(&f.fixed, "fixed", "", "intermediate array file (env ITEMS_FIXED, default fixed_data.json)")
	cmd.Flags().StringVar(&f.output, "output", "", "CSV output (env ITEMS_OUTPUT, default data.csv)")
	cmd.Flags().StringVar(&f.pgURL, "pg-url", "", "Postgres URL to load rows into (env ITEMS_PG_DBURL)")
	cmd.Flags().StringVar(&f.pgTable, "pg-table", "", "Postgres table (env ITEMS_PG_TABLE, default items)")
	return cmd
}

// loadEnvFile loads path into the environment without overriding variables
// that are already set. A missing default file is fine, a missing explicit one is not
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return perr.Wrapf(err, perr.ErrorCodeIO, "env file %s", path)
	}
	if err := godotenv.Load(path); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "load env file %s", path)
	}
	return nil
}

// applyFlags lets explicitly set flags win over env
func applyFlags(cmd *cobra.Command, opts convertmod.Options, f flags) convertmod.Options {
	set := cmd.Flags().Changed
	if set("source") {
		opts.Source = f.source
	}
	if set("fixed") {
		opts.Fixed = f.fixed
	}
	if set("output") {
		opts.Output = f.output
	}
	if set("pg-url") {
		opts.DBURL = f.pgURL
	}
	if set("pg-table") {
		opts.Table = f.pgTable
	}
	return opts
}

func run(ctx context.Context, opts convertmod.Options) error {
	l := logger.Get()
	ctx = logger.WithRun(ctx, uuid.NewString())
	log := logger.C(ctx)

	deps := modkit.Deps{Cfg: config.New(), Log: *l}
	if opts.PGEnabled() {
		db, err := openPG(ctx, opts)
		if err != nil {
			return err
		}
		defer db.Close()
		deps.PG = db
	}

	m := convertmod.NewWithOptions(deps, opts)
	log.Info().
		Str("source", opts.Source).
		Str("fixed", opts.Fixed).
		Str("output", opts.Output).
		Bool("pg", deps.HasPG()).
		Str("version", version.Info().Version).
		Msg("export starting")

	sum, err := m.Runner().Run(ctx)
	if err != nil {
		return err
	}
	log.Info().
		Int("lines", sum.Lines).
		Int("bytes", sum.Bytes).
		Bool("wrapped", sum.Wrapped).
		Int("records", sum.Records).
		Str("output", sum.Output).
		Int64("loaded", sum.Loaded).
		Dur("elapsed", sum.Duration).
		Msg("export finished")
	return nil
}

func openPG(ctx context.Context, opts convertmod.Options) (*pg.PG, error) {
	var tracer pg.QueryTracer
	if opts.LogSQL {
		tracer = pg.Tracer(*logger.Named("pg"))
	}
	db, err := pg.Open(ctx, pg.Config{
		URL:      opts.DBURL,
		MaxConns: int32(opts.MaxConns),
		SlowMs:   opts.SlowMs,
	}, tracer, nil)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "pg open")
	}

	pctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()
	if err := db.Ping(pctx); err != nil {
		db.Close()
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "pg ping")
	}
	return db, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		evt := logger.Get().Error().Err(err).Str("code", perr.CodeOf(err).String())
		if e, ok := perr.As(err); ok && e.Field() != "" {
			evt = evt.Str("field", e.Field())
		}
		evt.Msg("export failed")
		os.Exit(1)
	}
	stop()
}
