package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"

	hospitalv1 "medpulse/api/hospital/v1"
	"medpulse/internal/auth"
	"medpulse/internal/config"
	gweb "medpulse/internal/grpcweb"
	"medpulse/internal/handler"
	"medpulse/internal/ledger"
	"medpulse/internal/metrics"
	"medpulse/internal/middleware"
	"medpulse/internal/router"
	"medpulse/internal/store"
	"medpulse/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		logging.Default().Error("config", "error", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// storage
	backend, closeStore, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()
	snap, err := backend.Load(ctx)
	if err != nil {
		return err
	}

	policy, err := ledger.ParseCapacityPolicy(cfg.CapacityPolicy)
	if err != nil {
		return err
	}
	l := ledger.New(snap, backend,
		ledger.WithCapacityPolicy(policy),
		ledger.WithLogger(logger),
		ledger.WithMetrics(metrics.NewLedgerMetrics(prometheus.DefaultRegisterer)),
	)
	if drift := l.Audit(); len(drift) > 0 {
		logger.Warn("loaded snapshot has inconsistent session counters", "sessions", len(drift))
	}
	logger.Info("ledger ready", "backend", cfg.StoreBackend, "capacity_policy", l.Policy().String(),
		"doctors", len(snap.Doctors), "patients", len(snap.Patients), "appointments", len(snap.Appointments))

	authn := auth.NewAuthenticator(l, cfg.JWTSecret)
	h := handler.New(l, authn, logger)

	// grpc server
	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rl.Close()
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.RateLimit(rl),
			middleware.Auth(authn),
			middleware.Latency(cfg.SimulatedLatency),
		),
	)
	hospitalv1.RegisterHospitalServiceServer(srv, h)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return err
	}
	errc := make(chan error, 2)
	go func() {
		logger.Info("grpc listening", "port", cfg.GRPCPort)
		errc <- srv.Serve(lis)
	}()

	// grpc-web bridge -> forwards browser requests to grpc on localhost
	bridge, err := gweb.New("localhost:"+cfg.GRPCPort, logger)
	if err != nil {
		return err
	}
	defer bridge.Close()

	httpSrv := &http.Server{
		Addr: ":" + cfg.WebPort,
		Handler: router.New(&router.Config{
			Logger:         logger,
			GRPCWeb:        bridge.Handler(),
			MetricsHandler: promhttp.Handler(),
			Health:         func() int { return len(l.Audit()) },
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("http listening", "port", cfg.WebPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errc:
		logger.Error("listener failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}
	srv.GracefulStop()
	return nil
}
