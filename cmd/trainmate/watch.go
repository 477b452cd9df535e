package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"example.com/trainmate/internal/app"
	"example.com/trainmate/internal/domain"
	"example.com/trainmate/internal/resourcesync"
	httptransport "example.com/trainmate/internal/transport/http"
)

// runWatch keeps a workout list loaded, reprints it on every refresh (local or
// relayed over Kafka) and serves /metrics until interrupted.
func runWatch(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("watch")
	trainee, start, end := workoutFilterFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}

	filter, err := resolveFilter(a, *trainee, *start, *end)
	if err != nil {
		return err
	}
	list := a.Workouts(filter)
	defer list.Dispose()

	var ready atomic.Bool
	var printMu sync.Mutex
	list.Observe(func(s resourcesync.State[domain.Workout]) {
		if s.Phase != resourcesync.PhaseReady {
			return
		}
		ready.Store(true)
		printMu.Lock()
		defer printMu.Unlock()
		fmt.Fprintf(out, "--- %s ---\n", time.Now().Format(time.TimeOnly))
		printWorkouts(out, s.Items)
	})

	server := httptransport.NewOpsServer(a.Config.Metrics.Address, ready.Load)
	go func() {
		a.Logger.WithField("address", a.Config.Metrics.Address).Info("metrics listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.WithError(err).Error("metrics server error")
		}
	}()

	var wg sync.WaitGroup
	if a.BridgeEnabled() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.RunRelay(ctx); err != nil {
				a.Logger.WithError(err).Error("refresh relay stopped")
			}
		}()
	}

	// a failed first load is already reported; keep watching for refreshes
	_ = list.Load(ctx)

	<-ctx.Done()
	a.Logger.Info("watch shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.Logger.WithError(err).Warn("metrics shutdown error")
	}
	wg.Wait()
	return nil
}
