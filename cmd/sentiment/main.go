package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/atinyakov/go-sentiment-service/internal/app/handler"
	"github.com/atinyakov/go-sentiment-service/internal/app/response"
	"github.com/atinyakov/go-sentiment-service/internal/app/server"
	grpcserver "github.com/atinyakov/go-sentiment-service/internal/app/server/grpc"
	"github.com/atinyakov/go-sentiment-service/internal/app/service"
	"github.com/atinyakov/go-sentiment-service/internal/classifier"
	"github.com/atinyakov/go-sentiment-service/internal/config"
	"github.com/atinyakov/go-sentiment-service/internal/logger"
	"github.com/atinyakov/go-sentiment-service/internal/metrics"
	"github.com/atinyakov/go-sentiment-service/internal/worker"

	_ "net/http/pprof"
)

var buildVersion string
var buildDate string
var buildCommit string

const shutdownTimeout = 10 * time.Second

func main() {
	fmt.Printf("Build version: %s\n", orNA(buildVersion))
	fmt.Printf("Build date: %s\n", orNA(buildDate))
	fmt.Printf("Build commit: %s\n", orNA(buildCommit))

	options, err := config.Parse()
	if err != nil {
		panic(err)
	}

	log := logger.New()
	if err := log.Init(options.LogLevel, zap.String("service", response.ServiceName)); err != nil {
		panic(err)
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, options, log.Log); err != nil {
		log.Log.Error("server stopped with error", zap.Error(err))
		panic(err)
	}
}

func run(ctx context.Context, options *config.Options, zapLogger *zap.Logger) error {
	zapLogger.Info("loading classifier",
		zap.String("backend", options.Classifier),
		zap.String("model", options.ModelName))

	c, model, err := classifier.New(classifier.Options{
		Backend:      options.Classifier,
		ModelName:    options.ModelName,
		DefaultModel: config.DefaultModelName,
		ModelPath:    options.ModelPath,
		Endpoint:     options.ClassifierURL,
		Token:        options.ClassifierToken,
		Timeout:      options.ClassifierTimeout,
	})
	if err != nil {
		return fmt.Errorf("load classifier: %w", err)
	}
	defer func() {
		if err := classifier.Close(c); err != nil {
			zapLogger.Warn("closing classifier", zap.Error(err))
		}
	}()
	zapLogger.Info("classifier loaded", zap.String("model", model))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	sentiment := service.NewSentiment(c, model, zapLogger, m)

	var health handler.HealthReporter
	if probe, ok := c.(classifier.HealthChecker); ok {
		monitor := worker.NewHealthMonitor(zapLogger, probe, worker.DefaultHealthInterval)
		go monitor.Run(ctx)
		health = monitor
	}

	r := server.Init(sentiment, server.Deps{
		Logger:   zapLogger,
		Backend:  options.Classifier,
		Health:   health,
		Metrics:  m,
		Gatherer: reg,
	})

	if options.EnablePprof {
		go func() {
			zapLogger.Info("Starting pprof server", zap.String("addr", "localhost:6060"))
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				zapLogger.Error("pprof server error", zap.Error(err))
			}
		}()
	}

	errc := make(chan error, 2)

	var grpcSrv *grpcserver.Server
	if options.GRPCAddress != "" {
		grpcSrv = grpcserver.New(options.GRPCAddress, zapLogger, sentiment)
		go func() {
			errc <- grpcSrv.Start()
		}()
	}

	srv := newHTTPServer(options, r)

	go func() {
		if srv.TLSConfig != nil {
			zapLogger.Info("Server is running with TLS", zap.Strings("hosts", options.TLSHosts))
			errc <- srv.ListenAndServeTLS("", "")
			return
		}

		zapLogger.Info("Server is running", zap.String("address", options.Address))
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		zapLogger.Info("shutting down")
	case err = <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if grpcSrv != nil {
		grpcSrv.GracefulStop()
	}
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		zapLogger.Error("HTTP shutdown", zap.Error(shutdownErr))
	}

	return err
}

// newHTTPServer builds the HTTP server. With HTTPS enabled it listens on
// :443 with certificates from Let's Encrypt for the configured hosts.
func newHTTPServer(options *config.Options, h http.Handler) *http.Server {
	srv := &http.Server{
		Addr:              options.Address,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if options.EnableHTTPS {
		manager := &autocert.Manager{
			Cache:      autocert.DirCache("cache-dir"),
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist(options.TLSHosts...),
		}
		srv.Addr = ":443"
		srv.TLSConfig = manager.TLSConfig()
	}

	return srv
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
