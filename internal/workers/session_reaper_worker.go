package workers

import (
	"context"
	"time"

	"github.com/alimgiray/ghdash/internal/repositories"
	"github.com/alimgiray/ghdash/internal/session"
	"github.com/alimgiray/ghdash/pkg/logger"
)

const TaskSessionReaper = "session_reaper"

// SessionReaperWorker drops idle sessions together with their stored fetch states
type SessionReaperWorker struct {
	*BaseWorker
	store       *session.Store
	fetchStates *repositories.FetchStateRepository
	interval    time.Duration
}

// NewSessionReaperWorker creates a reaper that runs every interval
func NewSessionReaperWorker(workerID string, store *session.Store, fetchStates *repositories.FetchStateRepository, interval time.Duration) *SessionReaperWorker {
	return &SessionReaperWorker{
		BaseWorker:  NewBaseWorker(workerID, TaskSessionReaper),
		store:       store,
		fetchStates: fetchStates,
		interval:    interval,
	}
}

// Start begins the reaper loop
func (w *SessionReaperWorker) Start(ctx context.Context) error {
	w.setRunning(true)
	defer w.setRunning(false)
	logger.Infof("Session reaper %s started, interval %s", w.WorkerID, w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Infof("Session reaper %s stopping due to context cancellation", w.WorkerID)
			return ctx.Err()
		case <-w.StopChan:
			logger.Infof("Session reaper %s stopping", w.WorkerID)
			return nil
		case <-ticker.C:
			w.Reap()
		}
	}
}

// Reap removes every expired session and returns how many were removed
func (w *SessionReaperWorker) Reap() int {
	expired := w.store.RemoveExpired()

	for _, id := range expired {
		removed, err := w.fetchStates.DeleteBySession(id)
		if err != nil {
			logger.WithError(err).WithField("session_id", id).Error("Failed to delete fetch states of expired session")
			continue
		}
		logger.WithField("session_id", id).Debugf("Removed expired session and %d fetch states", removed)
	}

	if len(expired) > 0 {
		logger.Infof("Session reaper %s removed %d expired sessions, %d remaining", w.WorkerID, len(expired), w.store.Len())
	}
	return len(expired)
}
