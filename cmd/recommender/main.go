package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"ArticleRecommender/internal/app"
	"ArticleRecommender/internal/config"
	"ArticleRecommender/internal/logging"
	"ArticleRecommender/internal/ports"
)

const usage = `usage: recommender <command> [flags]

commands:
  recommend -reader ID [-reader ID ...] [-demo]   print recommendations as JSON
  click -reader ID -article ID [-demo]            record a click
  news [-q TEXT] [-category NAME] [-demo]         search articles as JSON
  bootstrap                                       create the database schema`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := logging.New(cfg.Logging)

	if err := run(ctx, cfg, logger, os.Args[1:], os.Stdout); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// readerList collects repeated -reader flags.
type readerList []int64

func (r *readerList) String() string {
	parts := make([]string, len(*r))
	for i, id := range *r {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func (r *readerList) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return fmt.Errorf("reader id %q: %w", part, err)
		}
		*r = append(*r, id)
	}
	return nil
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	switch args[0] {
	case "recommend":
		var readers readerList
		fs := flag.NewFlagSet("recommend", flag.ContinueOnError)
		fs.Var(&readers, "reader", "reader id (repeatable or comma separated)")
		demo := fs.Bool("demo", false, "use the in-memory sample dataset")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return withApplication(ctx, cfg, logger, *demo, func(a *app.Application) error {
			recs, err := a.Recommend(ctx, readers)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(recs)
		})

	case "click":
		fs := flag.NewFlagSet("click", flag.ContinueOnError)
		reader := fs.Int64("reader", 0, "reader id")
		article := fs.Int64("article", 0, "article id")
		demo := fs.Bool("demo", false, "use the in-memory sample dataset")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return withApplication(ctx, cfg, logger, *demo, func(a *app.Application) error {
			if err := a.RecordClick(ctx, *reader, *article); err != nil {
				return err
			}
			_, err := fmt.Fprintln(out, "interaction recorded")
			return err
		})

	case "news":
		fs := flag.NewFlagSet("news", flag.ContinueOnError)
		text := fs.String("q", "", "match title or description")
		category := fs.String("category", "", "restrict to one category")
		limit := fs.Int("limit", 0, "maximum results (at most 50)")
		demo := fs.Bool("demo", false, "use the in-memory sample dataset")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return withApplication(ctx, cfg, logger, *demo, func(a *app.Application) error {
			articles, err := a.SearchNews(ctx, ports.ArticleQuery{Text: *text, Category: *category, Limit: *limit})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(articles)
		})

	case "bootstrap":
		cfg.Database.Bootstrap = true
		stores, err := app.OpenPostgres(ctx, cfg, logger)
		if err != nil {
			return err
		}
		return stores.Close()

	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func withApplication(ctx context.Context, cfg config.Config, logger *slog.Logger, demo bool, fn func(*app.Application) error) error {
	var stores app.Stores
	if demo {
		stores = app.DemoStores(1)
	} else {
		var err error
		stores, err = app.OpenPostgres(ctx, cfg, logger)
		if err != nil {
			return err
		}
	}

	application, err := app.New(cfg, stores, logger)
	if err != nil {
		if stores.Close != nil {
			_ = stores.Close()
		}
		return err
	}

	runErr := fn(application)
	return errors.Join(runErr, application.Close())
}
