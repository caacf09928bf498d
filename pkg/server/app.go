package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"CoinPulse/internal/service/whalealert"
	"CoinPulse/pkg/cache"
	pkgch "CoinPulse/pkg/clickhouse"
	"CoinPulse/pkg/config"
	xhttp "CoinPulse/pkg/http"
	pkgkafka "CoinPulse/pkg/kafka"
	xlogger "CoinPulse/pkg/logger"
)

// App encapsulates the application lifecycle: the HTTP server, the optional
// whale stream pipeline, and the infrastructure clients that need a clean
// shutdown.
type App struct {
	cfg       *config.Config
	logger    *xlogger.Logger
	handler   xhttp.Handler
	store     cache.Service
	stream    *whalealert.Stream
	collector *xlogger.FailureCollector
	chClient  *pkgch.Client
	producer  *pkgkafka.Producer

	httpServer *xhttp.Server
}

// New creates the application with all dependencies.
func New(
	cfg *config.Config,
	logger *xlogger.Logger,
	handler xhttp.Handler,
	store cache.Service,
	stream *whalealert.Stream,
	collector *xlogger.FailureCollector,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
) *App {
	return &App{
		cfg:       cfg,
		logger:    logger,
		handler:   handler,
		store:     store,
		stream:    stream,
		collector: collector,
		chClient:  chClient,
		producer:  producer,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(a.logger),
	)

	if a.stream != nil && a.stream.Enabled() {
		go a.stream.Run(ctx)
		a.logger.Info("whale stream started")
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", xlogger.Error(err))
		return err
	}
	a.logger.Info("server started", xlogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", xlogger.Error(err))
	}

	if a.collector != nil {
		a.collector.Close()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("cache close error", xlogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", xlogger.Error(err))
		}
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("kafka producer close error", xlogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
