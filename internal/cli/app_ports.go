package cli

import (
	"fmt"

	"github.com/alexanderramin/horizon/internal/app"
)

func (a *App) timelineUseCase() app.TimelineUseCase {
	return a.Timeline
}

func (a *App) importUseCase() app.ImportSnapshotUseCase {
	return a.Import
}

func (a *App) syncUseCase() (app.SyncUseCase, error) {
	if a.Sync == nil {
		return nil, fmt.Errorf("no remote backend configured (set HORIZON_REMOTE_URL or remote.base_url)")
	}
	return a.Sync, nil
}
