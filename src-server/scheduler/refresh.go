package scheduler

import (
	"context"
	"log/slog"
	"time"

	"lifecal/src-server/sync"
	"lifecal/src-server/utils"
)

// Refresh periodically refetches the master list and re-derives occurrences.
// The expansion horizon is computed from the wall clock on every pass, so
// derived instances keep appearing as real time moves forward even when no
// master event changes.
func Refresh(as *utils.AppState, ctrl *sync.Controller) {
	gracefulShutdownCh := as.CreateGracefulShutdownChan()
	ticker := time.NewTicker(as.Config.GetRefreshInterval())
	defer ticker.Stop()
	for {
		select {
		case <-*gracefulShutdownCh:
			slog.Debug("refresh scheduler stopped")
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute*5)
			ctrl.Refresh(ctx)
			cancel()
		}
	}
}
