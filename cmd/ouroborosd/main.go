// Command ouroborosd serves mock HTTP responses straight from an annotated
// OpenAPI 3.1 document.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/whitesnakegang/ouroboros"
	internallog "github.com/whitesnakegang/ouroboros/internal/log"
)

func main() {
	specPath := flag.String("spec", "openapi.yaml", "path to the OpenAPI 3.1 spec file")
	addr := flag.String("addr", ":8080", "address to listen on")
	flag.Parse()

	if len(flag.Args()) > 0 && flag.Args()[0] == "version" {
		fmt.Printf("ouroborosd %s\n", ouroboros.Version())
		fmt.Printf("commit: %s\n", ouroboros.Commit())
		fmt.Printf("built: %s\n", ouroboros.BuildTime())
		fmt.Printf("go: %s\n", ouroboros.GoVersion())
		return
	}

	logger := internallog.NewSlogAdapter(slog.Default())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	core, err := ouroboros.Open(ctx, *specPath, ouroboros.WithLogger(logger))
	if err != nil {
		logger.Error("ouroborosd: failed to open spec", "path", *specPath, "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/", core.MockHandler(http.NotFoundHandler()))

	srv := &http.Server{
		Addr:         *addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("ouroborosd: listening", "addr", *addr, "spec", *specPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("ouroborosd: graceful shutdown failed", "error", err)
		}
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("ouroborosd: server error", "error", err)
			os.Exit(1)
		}
	}
}
