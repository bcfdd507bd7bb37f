// Command digest fetches the article list once and prints one filtered view
// as a table or as JSON.
//
//	digest -topic Tech -order score -spice 80
//	digest -q climat -output json
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fluxactu/internal/config"
	"fluxactu/internal/infra/newsapi"
	"fluxactu/internal/observability/logging"
	"fluxactu/internal/usecase/reader"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "digest:", err)
		os.Exit(1)
	}
}

type options struct {
	query  string
	topic  string
	spice  string
	order  string
	output string
	url    string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("digest", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.query, "q", "", "search text matched against title and summaries")
	fs.StringVar(&opts.topic, "topic", reader.AllTopics, "topic to show")
	fs.StringVar(&opts.spice, "spice", "", "summary tone from 0 to 100 (default 60)")
	fs.StringVar(&opts.order, "order", string(reader.OrderByDate), "date or score")
	fs.StringVar(&opts.output, "output", "table", "table or json")
	fs.StringVar(&opts.url, "url", "", "article endpoint, overrides NEWS_API_URL")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.output != "table" && opts.output != "json" {
		return options{}, fmt.Errorf("unknown output %q, want table or json", opts.output)
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	order, err := reader.ParseOrder(opts.order)
	if err != nil {
		return err
	}
	spice, err := reader.ParseSpice(opts.spice)
	if err != nil {
		return err
	}

	logger := logging.New(stderr, logging.OptionsFromEnv())
	cfg, err := config.Load(logger, nil)
	if err != nil {
		return err
	}
	if opts.url != "" {
		cfg.NewsAPI.URL = opts.url
		if err := cfg.NewsAPI.Validate(); err != nil {
			return err
		}
	}

	session := reader.NewSession(
		newsapi.NewClient(cfg.NewsAPI, newsapi.WithLogger(logger)),
		reader.WithLogger(logger),
	)
	if err := session.Load(ctx); err != nil {
		return fmt.Errorf("%s: %w", reader.LoadErrorMessage, err)
	}

	page := session.View(reader.Criteria{Topic: opts.topic, Query: opts.query, Order: order}, spice)
	logger.Debug("digest view built",
		slog.Int("articles", len(page.Articles)),
		slog.String("topic", page.Criteria.Topic))

	if opts.output == "json" {
		return renderJSON(stdout, page)
	}
	return renderTable(stdout, page)
}
