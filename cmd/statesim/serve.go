package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/san-kum/statesim/internal/experiment"
	"github.com/san-kum/statesim/internal/sim"
	"github.com/san-kum/statesim/internal/stream"
	"github.com/spf13/cobra"
)

// serve steps the model in real time, one tick per dt, and streams its
// events to every client of /ws until interrupted or out of ticks.
func serve(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := newLogger()

	b := stream.NewBroadcaster(frameEvery, logger)
	defer b.Close()

	exp, err := experiment.New(cfg, logger)
	if err != nil {
		return err
	}
	if err := exp.Setup(b, nil); err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", b)
	srv := &http.Server{Addr: addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()
	fmt.Printf("streaming %s on ws://%s/ws\n", cfg.Species, addr)

	ticker := time.NewTicker(time.Duration(cfg.Dt * float64(time.Second)))
	defer ticker.Stop()

	runErr := exp.GetSimulator().RunWithCallback(ctx, sim.Config{Ticks: cfg.Ticks, Dt: cfg.Dt}, func(s sim.Snapshot) bool {
		exp.OnStep(s)
		b.OnStep(s)
		select {
		case <-ticker.C:
			return true
		case <-ctx.Done():
			return false
		case err := <-errc:
			if err != nil {
				logger.Errorf("listen: %v", err)
			}
			return false
		}
	})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("shutdown: %v", err)
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}
