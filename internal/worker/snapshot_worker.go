package worker

import (
	"github.com/spec-kit/checkin-service/internal/service"
)

// StartSnapshotWorker registers snapshot recording handlers.
func StartSnapshotWorker(recorder *service.SnapshotRecorder) {
	if recorder == nil {
		return
	}
	recorder.RegisterHandlers()
}
