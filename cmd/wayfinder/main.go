// Command wayfinder serves weather-aware campus routes over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/katalvlaran/wayfinder/graph"
	"github.com/katalvlaran/wayfinder/internal/config"
	"github.com/katalvlaran/wayfinder/internal/gateway"
	"github.com/katalvlaran/wayfinder/internal/logging"
	"github.com/katalvlaran/wayfinder/internal/observability"
	"github.com/katalvlaran/wayfinder/pathfind"
	"github.com/katalvlaran/wayfinder/router"
	"github.com/katalvlaran/wayfinder/weather"
)

func main() {
	envFile := flag.String("env", ".env", "dotenv file to load before reading the environment")
	graphFile := flag.String("graph", "", "campus graph file (.json, .yaml); overrides GRAPH_FILE")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *envFile, *graphFile); err != nil {
		fmt.Fprintln(os.Stderr, "wayfinder:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, envFile, graphFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if graphFile != "" {
		cfg.GraphFile = graphFile
	}

	log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: "wayfinder",
		Exporter:    cfg.Tracing.Exporter,
		Endpoint:    cfg.Tracing.Endpoint,
	}, log)
	if err != nil {
		return err
	}
	defer observability.Shutdown(context.Background(), shutdownTracing, log)

	srv, err := newServer(ctx, cfg, log)
	if err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", logging.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// newServer loads the graph and assembles the HTTP server around it.
func newServer(ctx context.Context, cfg *config.Config, log logging.Logger) (*http.Server, error) {
	g, b, err := graph.LoadFile(cfg.GraphFile)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "graph loaded",
		logging.String("file", cfg.GraphFile),
		logging.Int("nodes", g.Len()),
		logging.Int("edges", g.EdgeCount()),
		logging.Int("rooms", b.Len()),
		logging.Int("components", len(g.Components())),
	)
	for _, d := range g.Dangling() {
		log.Warn(ctx, "dangling edge", logging.String("from", d.From), logging.String("to", d.To))
	}
	for _, d := range g.DanglingEntrances() {
		log.Warn(ctx, "dangling room entrance", logging.String("room", d.Room), logging.String("node", d.Node))
	}

	metrics, err := observability.NewRouteCollector(nil)
	if err != nil {
		return nil, err
	}
	metrics.SetGraphSize(g.Len(), g.EdgeCount())

	r := router.New(g, b,
		router.WithLogger(log),
		router.WithMetrics(metrics),
		router.WithSpatialIndex(graph.NewSpatialIndex(g), cfg.NearestK),
		router.WithOutdoor(pathfind.OutdoorBuildings(cfg.OutdoorBuildings...)),
	)

	gw := gateway.Config{
		Fallbacks:   metrics,
		Metrics:     metrics.Handler(),
		Logger:      log,
		CORSOrigins: cfg.CORSOrigins,
	}
	if cfg.Weather.APIKey != "" {
		gw.Weather = weather.NewFetcher(&weather.OpenWeatherMap{
			APIKey:    cfg.Weather.APIKey,
			Latitude:  cfg.Weather.Latitude,
			Longitude: cfg.Weather.Longitude,
		}, weather.FetchOptions{
			AttemptTimeout: cfg.Weather.Timeout,
			MaxTries:       uint(cfg.Weather.MaxTries),
		})
	} else {
		log.Warn(ctx, "OPENWEATHER_API_KEY unset; weather requests fall back to balanced")
	}

	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           gateway.New(r, gw),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}, nil
}
