package parserutil

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Vodeneev/pokepaste/internal/pkg/models"
)

const defaultConcurrency = 4

// ParseFunc parses a single locator
type ParseFunc func(ctx context.Context, locator string) models.Result

// RunOptions configures RunBatch
type RunOptions struct {
	// Concurrency caps parallel parses; <= 0 uses the default of 4
	Concurrency int
	// LogStart logs when each locator starts
	LogStart bool
	// OnError is called for every failed result. If nil, failures are logged.
	OnError func(locator string, res models.Result)
}

// DefaultRunOptions returns the options used by the CLI and the bot
func DefaultRunOptions() RunOptions {
	return RunOptions{Concurrency: defaultConcurrency}
}

// BatchItem pairs a locator with its result
type BatchItem struct {
	Locator string
	Result  models.Result
}

// RunBatch parses all locators in parallel and returns results in input order.
// Locators not yet started when ctx is cancelled fail with ctx.Err().
func RunBatch(ctx context.Context, locators []string, fn ParseFunc, opts RunOptions) []BatchItem {
	items := make([]BatchItem, len(locators))
	if len(locators) == 0 {
		return items
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	onError := opts.OnError
	if onError == nil {
		onError = func(locator string, res models.Result) {
			slog.Error("Paste parse failed", "locator", locator, "error", res.Error)
		}
	}

	g := new(errgroup.Group)
	g.SetLimit(limit)

	for i, loc := range locators {
		items[i].Locator = loc
		g.Go(func() error {
			var res models.Result
			if err := ctx.Err(); err != nil {
				res = models.Fail(err)
			} else {
				if opts.LogStart {
					slog.Info("Parsing paste", "locator", loc)
				}
				res = fn(ctx, loc)
			}
			if !res.Success {
				onError(loc, res)
			}
			items[i].Result = res
			return nil
		})
	}
	_ = g.Wait()
	return items
}

// Failed counts the failed items of a batch
func Failed(items []BatchItem) int {
	n := 0
	for _, it := range items {
		if !it.Result.Success {
			n++
		}
	}
	return n
}
