package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/goodnatureofminers/ledgersync-backend/internal/app"
	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/service/syncer"
	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/service/verifier"
	"github.com/goodnatureofminers/ledgersync-backend/internal/metrics"
	"github.com/goodnatureofminers/ledgersync-backend/internal/transport"
)

type config struct {
	Addr           string        `long:"addr" env:"API_GATEWAY_ADDR" description:"gRPC listen address" default:":8000"`
	RestAddr       string        `long:"rest-addr" env:"API_GATEWAY_REST_ADDR" description:"HTTP listen address" default:":8001"`
	RoutePrefix    string        `long:"route-prefix" env:"API_GATEWAY_ROUTE_PREFIX" description:"HTTP route prefix" default:"/api/blockchain"`
	CacheTTL       time.Duration `long:"cache-ttl" env:"API_GATEWAY_CACHE_TTL" description:"lifetime of cached verification results" default:"5m"`
	EditWindow     time.Duration `long:"edit-window" env:"API_GATEWAY_EDIT_WINDOW" description:"payload edits are refused for records older than this, 0 disables"`
	HealthInterval time.Duration `long:"health-interval" env:"API_GATEWAY_HEALTH_INTERVAL" description:"ledger health check interval" default:"15s"`
	VerifyWorkers  int           `long:"verify-workers" env:"API_GATEWAY_VERIFY_WORKERS" description:"verify-multiple worker count" default:"8"`

	SyncWorkers         int           `long:"sync-workers" env:"API_GATEWAY_SYNC_WORKERS" description:"records synced concurrently per job" default:"4"`
	MaxSubmitAttempts   int           `long:"max-submit-attempts" env:"API_GATEWAY_MAX_SUBMIT_ATTEMPTS" description:"ledger submit attempts per record" default:"3"`
	ConfirmationTimeout time.Duration `long:"confirmation-timeout" env:"API_GATEWAY_CONFIRMATION_TIMEOUT" description:"per-record confirmation deadline" default:"2h"`

	app.StoreOptions
	app.LedgerOptions
	app.CacheOptions
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("api gateway failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	store, verificationCache, closeStore, err := app.OpenCachedStore(ctx, cfg.StoreOptions, cfg.CacheOptions, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	ledger, closeLedger, err := cfg.OpenLedger(logger)
	if err != nil {
		return fmt.Errorf("init ledger: %w", err)
	}
	defer closeLedger()

	verifierSvc, err := verifier.NewService(store, ledger, metrics.NewVerifier(), cfg.VerifyWorkers, logger)
	if err != nil {
		return err
	}
	coordinator, err := syncer.NewCoordinator(store, ledger, metrics.NewSyncCoordinator(), syncer.Config{
		WorkerCount:         cfg.SyncWorkers,
		MaxSubmitAttempts:   cfg.MaxSubmitAttempts,
		ConfirmationTimeout: cfg.ConfirmationTimeout,
		ConfirmationDepth:   cfg.ConfirmationDepth,
	}, logger)
	if err != nil {
		return err
	}

	handler, err := transport.NewHandler(verifierSvc, coordinator, ledger, store, verificationCache, transport.Config{
		Prefix:     cfg.RoutePrefix,
		CacheTTL:   cfg.CacheTTL,
		EditWindow: cfg.EditWindow,
	}, logger)
	if err != nil {
		return err
	}

	healthServer := health.NewServer()
	reporter, err := transport.NewHealthReporter(healthServer, ledger, cfg.HealthInterval, logger)
	if err != nil {
		return err
	}
	go reporter.Run(ctx)

	chain := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(chain...)),
	)
	grpcPrometheus.EnableHandlingTimeHistogram()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	grpcPrometheus.Register(grpcServer)

	socket, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}
	go func() {
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Error("gRPC server stopped", zap.Error(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down gRPC server")
		grpcServer.GracefulStop()
	}()

	gw := gwruntime.NewServeMux()
	if err := handler.Register(gw); err != nil {
		return fmt.Errorf("register routes: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/", gw)
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              cfg.RestAddr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// blocking syncs wait for ledger confirmations
		WriteTimeout:   cfg.ConfirmationTimeout + time.Minute,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", cfg.RestAddr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
