package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"pacerd/internal/compositor"
	"pacerd/internal/config"
	"pacerd/internal/httpapi"
	"pacerd/internal/scheduler"
	"pacerd/internal/vsync"
	"pacerd/pkg/types"
)

// runDaemon wires the simulated compositor, the scheduler and the debug HTTP
// surface, then paces a frame producer until interrupted.
func runDaemon(cfg config.Config) error {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	interval := time.Second / 60
	if cfg.VsyncHz > 0 {
		interval = time.Second / time.Duration(cfg.VsyncHz)
	}
	producerInterval := interval
	if cfg.ProducerFPS > 0 {
		producerInterval = time.Second / time.Duration(cfg.ProducerFPS)
	}

	cache := vsync.NewCache(interval)
	sim := compositor.NewSim(compositor.Config{
		Interval: interval,
		Capacity: cfg.MaxFramesInFlight,
		Logger:   &log,
	})

	fatal := make(chan error, 1)
	sched := scheduler.New(sim, cache, scheduler.Config{
		MaxFramesInFlight: cfg.MaxFramesInFlight,
		MinFrameBuildTime: time.Duration(cfg.MinFrameBuildTimeUS) * time.Microsecond,
		Logger:            &log,
		OnFramePresented: func(info types.FramePresentedInfo) {
			log.Debug().
				Time("actual", info.ActualPresentationTime).
				Int("handled", info.NumPresentsHandled).
				Msg("frame presented")
		},
		OnError: func(err error) {
			select {
			case fatal <- err:
			default:
			}
		},
	})
	sim.Start()
	defer sim.Stop()
	defer sched.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go produceFrames(ctx, sched, producerInterval)

	httpapi.SetLogger(log)
	srv := &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(sched)}
	go func() {
		log.Info().
			Str("addr", cfg.Addr).
			Int("vsync_hz", cfg.VsyncHz).
			Int("max_in_flight", cfg.MaxFramesInFlight).
			Msg("pacerd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			select {
			case fatal <- err:
			default:
			}
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	var runErr error
	select {
	case <-stop:
		log.Info().Msg("shutting down")
	case runErr = <-fatal:
		log.Error().Err(runErr).Msg("fatal error, shutting down")
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown error")
	}
	return runErr
}

// produceFrames is the rendering client: it requests one present per tick
// and defers its next cycle while the scheduler reports no capacity.
func produceFrames(ctx context.Context, sched *scheduler.Scheduler, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if !sched.CapacityAvailable() {
			select {
			case <-ctx.Done():
				return
			case <-sched.CapacityWait():
			}
		}
		sched.RequestPresent(nil)
	}
}
