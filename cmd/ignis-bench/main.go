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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ignis/internal/app"
	"ignis/internal/metrics"
)

func main() {
	cfg := app.NewConfig()
	sweepFile := flag.String("sweep", "", "YAML sweep definition (default: every preset, serial and parallel)")
	duration := flag.Duration("duration", 0, "override the per-scenario duration")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	hold := flag.Bool("hold", false, "keep serving metrics after the sweep until interrupted")
	if err := cfg.Parse(flag.CommandLine, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log, err := cfg.Logger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	sweep := app.DefaultSweep()
	if *sweepFile != "" {
		if sweep, err = app.LoadSweep(*sweepFile); err != nil {
			log.Fatal("load sweep", zap.Error(err))
		}
	}
	if *duration > 0 {
		sweep.Duration = *duration
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promSink, err := metrics.NewPrometheusSink(reg)
	if err != nil {
		log.Fatal("register metrics", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var srv *http.Server
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv = &http.Server{Addr: *metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server", zap.Error(err))
			}
		}()
		log.Info("serving metrics", zap.String("addr", *metricsAddr))
	}

	log.Info("sweep starting",
		zap.Int("scenarios", len(sweep.Scenarios)),
		zap.Duration("duration", sweep.Duration),
		zap.Int("warmup", sweep.Warmup),
	)
	results, err := app.RunSweep(ctx, *cfg, sweep, app.BenchOptions{
		Log:    log,
		Memory: metrics.NewProcessMemory(),
		Sinks:  []metrics.Sink{metrics.NewLogSink(log), promSink},
	})
	if rerr := app.WriteReport(os.Stdout, results); rerr != nil {
		log.Error("write report", zap.Error(rerr))
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("sweep aborted", zap.Error(err))
	}

	if srv != nil {
		if *hold && ctx.Err() == nil {
			log.Info("sweep finished; serving metrics until interrupted")
			<-ctx.Done()
		}
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		os.Exit(1)
	}
}
