package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/KitchenMishap/huffcodes/config"
	"github.com/KitchenMishap/huffcodes/jobs"
	"github.com/KitchenMishap/huffcodes/logger"
	"github.com/KitchenMishap/huffcodes/server"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	var bServeFlag = flag.Bool("Serve", false, "Serve the HTTP API instead of reading files")
	var bVerifyFlag = flag.Bool("Verify", false, "Check every table is prefix-free and complete")
	var bStatsFlag = flag.Bool("Stats", false, "Print compression statistics to stderr")
	var nWorkersFlag = flag.Int("Workers", cfg.Workers, "Files analyzed in parallel")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] file...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if !*bServeFlag && flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	var err error
	if *bServeFlag {
		err = serve(ctx, cfg, logger.New())
	} else {
		err = codes(ctx, flag.Args(), *nWorkersFlag, *bVerifyFlag, *bStatsFlag, os.Stdout, os.Stderr)
	}
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func codes(ctx context.Context, paths []string, workers int, check bool, stats bool, stdout, stderr io.Writer) error {
	paths = uniquePaths(paths)

	log := logger.Discard()
	if stats {
		log = logger.NewWriter(stderr)
	}
	results, err := jobs.GatherCodes(ctx, paths, workers, check, log)
	if err != nil {
		return err
	}

	if len(results) == 1 {
		err = jobs.WriteJSON(stdout, results[0].Codes)
	} else {
		err = jobs.WriteJSONByPath(stdout, results)
	}
	if err != nil {
		return err
	}
	if stats {
		jobs.Report(stderr, results)
	}
	return nil
}

// uniquePaths drops repeated paths, keeping the first occurrence.
// The JSON output is keyed by path, so a repeat would only be overwritten.
func uniquePaths(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func serve(ctx context.Context, cfg config.Config, logg logger.Logger) error {
	repo := server.NewTableRepoInMemory()
	if cfg.DSN != "" {
		pool, err := server.Open(ctx, cfg.DSN)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := server.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		repo = server.NewTableRepoPostgres(pool)
		logg.Infof("storing tables in PostgreSQL")
	}

	svc := server.NewTableService(repo, logg)
	r := gin.Default()
	server.Register(r, server.Dependencies{
		TableHandler: server.NewTableHandler(svc),
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: r}
	errChan := make(chan error, 1)
	go func() {
		logg.Infof("starting server at %s", cfg.Addr)
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logg.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
