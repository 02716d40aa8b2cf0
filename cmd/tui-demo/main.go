// Package main runs the dashboard against generated market data, no backend needed.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Veraticus/tradepost/internal/tui"
)

func main() {
	seed := flag.Uint64("seed", 1, "seed for the generated price history")
	points := flag.Int("points", 96, "observations per pattern")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	market := newDemoMarket(*seed, *points, time.Now())
	err := tui.Run(ctx,
		tui.WithFetcher(market),
		tui.WithExporter(func(context.Context) (string, error) {
			return "", fmt.Errorf("export is not available in the demo")
		}),
		tui.WithSize(120, 40),
	)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
