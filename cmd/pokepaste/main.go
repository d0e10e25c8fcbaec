package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Vodeneev/pokepaste/internal/parser/pokepaste"
	"github.com/Vodeneev/pokepaste/internal/pkg/bootstrap"
	"github.com/Vodeneev/pokepaste/internal/pkg/config"
	"github.com/Vodeneev/pokepaste/internal/pkg/export"
	"github.com/Vodeneev/pokepaste/internal/pkg/logging"
	"github.com/Vodeneev/pokepaste/internal/pkg/models"
	"github.com/Vodeneev/pokepaste/internal/pkg/parserutil"
	"github.com/Vodeneev/pokepaste/internal/pkg/storage"
)

const (
	defaultConfigPath = "configs/pokepaste.yaml"

	outputJSON    = "json"
	outputSummary = "summary"
)

// errUsage means usage was already printed
var errUsage = errors.New("usage")

type options struct {
	configPath string
	file       string
	text       string
	output     string
	store      bool
}

// batchEntry is one element of the json output for several URLs
type batchEntry struct {
	URL    string        `json:"url"`
	Result models.Result `json:"result"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(execute(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and returns the process exit code
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "error: %s\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "pokepaste [url...]",
		Short: "Parse Pokemon Showdown team exports",
		Long: `Parse Pokemon Showdown team exports into structured JSON.

Pastes can be given as pokepast.es URLs or paste ids, as a file with --file,
or inline with --text.`,
		Example: `  pokepaste https://pokepast.es/5c46f9ec443664cb
  pokepaste --file team.txt --output summary
  pokepaste --text "Pikachu @ Light Ball"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", defaultConfigPath, "path to the yaml config")
	flags.StringVarP(&opts.file, "file", "f", "", "read the paste from a file")
	flags.StringVarP(&opts.text, "text", "t", "", "parse the given paste text")
	flags.StringVarP(&opts.output, "output", "o", outputJSON, "output format: json or summary")
	flags.BoolVar(&opts.store, "store", false, "store parsed teams in Postgres")

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	if len(args) == 0 && opts.file == "" && opts.text == "" {
		_ = cmd.Usage()
		return errUsage
	}
	if opts.output != outputJSON && opts.output != outputSummary {
		return fmt.Errorf("unknown output %q, want json or summary", opts.output)
	}

	cfg, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	// stdout carries the report, so logs go to stderr and stay quiet by default
	if os.Getenv("LOG_LEVEL") == "" {
		cfg.Logging.Level = "warn"
	}
	if _, err := logging.SetupLoggerTo(&cfg.Logging, "pokepaste", cmd.ErrOrStderr()); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	ctx := cmd.Context()

	var store storage.TeamStorage
	if opts.store {
		if store, err = bootstrap.Storage(ctx, cfg); err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		if store == nil {
			return fmt.Errorf("--store needs postgres.dsn or POSTGRES_DSN")
		}
		defer store.Close()
	}

	var items []parserutil.BatchItem
	switch {
	case opts.text != "":
		items = []parserutil.BatchItem{{Result: pokepaste.ParseText(opts.text, nil)}}
	case opts.file != "":
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return fmt.Errorf("failed to read paste file: %w", err)
		}
		items = []parserutil.BatchItem{{Locator: opts.file, Result: pokepaste.ParseText(string(data), nil)}}
	default:
		fetcher, closeCache := bootstrap.Fetcher(ctx, cfg)
		defer closeCache()

		runOpts := parserutil.DefaultRunOptions()
		runOpts.Concurrency = cfg.Batch.Concurrency
		runOpts.OnError = func(string, models.Result) {}
		items = parserutil.RunBatch(ctx, args, func(ctx context.Context, locator string) models.Result {
			return pokepaste.ParseURL(ctx, fetcher, locator)
		}, runOpts)
	}

	if store != nil {
		storeTeams(ctx, store, items, cmd.ErrOrStderr())
	}

	return report(cmd.OutOrStdout(), cmd.ErrOrStderr(), items, opts.output)
}

func storeTeams(ctx context.Context, store storage.TeamStorage, items []parserutil.BatchItem, stderr io.Writer) {
	for _, it := range items {
		if !it.Result.Success {
			continue
		}
		id, err := store.StoreTeam(ctx, it.Result.Data)
		if err != nil {
			slog.Error("Failed to store team", "locator", it.Locator, "error", err)
			continue
		}
		fmt.Fprintf(stderr, "stored: %s\n", id)
	}
}

// report prints successes to stdout and returns an error if any item failed
func report(stdout, stderr io.Writer, items []parserutil.BatchItem, output string) error {
	if len(items) == 1 {
		res := items[0].Result
		if !res.Success {
			return res.Err()
		}
		return writeTeam(stdout, res.Data, output)
	}

	failed := parserutil.Failed(items)
	if output == outputJSON {
		entries := make([]batchEntry, len(items))
		for i, it := range items {
			entries[i] = batchEntry{URL: it.Locator, Result: it.Result}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		fmt.Fprintln(stdout, string(data))
	} else {
		for i, it := range items {
			if !it.Result.Success {
				fmt.Fprintf(stderr, "error: %s: %s\n", it.Locator, it.Result.Error)
				continue
			}
			if i > 0 {
				fmt.Fprintln(stdout)
			}
			fmt.Fprintf(stdout, "# %s\n", it.Locator)
			fmt.Fprint(stdout, export.Summary(it.Result.Data))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d pastes failed", failed, len(items))
	}
	return nil
}

func writeTeam(w io.Writer, team *models.Team, output string) error {
	if output == outputSummary {
		_, err := fmt.Fprint(w, export.Summary(team))
		return err
	}
	data, err := export.JSONReport(team)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
