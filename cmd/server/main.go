package main

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dishfinder/client"
	"dishfinder/config"
	"dishfinder/database"
	"dishfinder/directory"
	"dishfinder/handlers"
	"dishfinder/logging"
	"dishfinder/worker"
)

// main loads the directory once, then serves the search API until SIGINT or
// SIGTERM.
func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		panic(err)
	}

	log, err := logging.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closeSrc, err := openSource(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open directory source", zap.Error(err))
	}
	defer closeSrc()

	idx := directory.New()
	if err := worker.LoadDirectory(ctx, src, idx, cfg.FetchTimeout, log); err != nil {
		log.Warn("Directory unavailable, serving empty results", zap.Error(err))
	}

	mux := handlers.Routes(idx, src, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), log)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "X-Request-ID"},
		ExposedHeaders:   []string{handlers.RequestIDHeader},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.WithRequestLog(c.Handler(mux), log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server starting", zap.String("port", cfg.Port), zap.String("source", cfg.DirectorySource))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("Server failed", zap.Error(err))
	}
	log.Info("Server stopped")
}

func openSource(ctx context.Context, cfg config.Config, log *zap.Logger) (worker.Source, func(), error) {
	if cfg.DirectorySource == config.SourcePostgres {
		db, err := database.Connect(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, nil, err
		}
		return database.NewSource(db, log), func() { db.Close() }, nil
	}
	httpClient := &http.Client{Timeout: cfg.FetchTimeout}
	return client.New(cfg.UpstreamURL, httpClient, log), func() {}, nil
}
