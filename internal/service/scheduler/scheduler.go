package scheduler

import (
	"context"

	"github.com/gotomicro/ego/core/elog"

	dispatchsvc "github.com/quotingfast/outreach/internal/service/dispatch"
)

const defaultBatchSize = 100

// DispatchDueJob replays deferred pending messages whose scheduled time
// has arrived. Deferral ("decide when eligible") and replay ("make sure it
// happens") are deliberately separate: the orchestrator only writes the
// pending row, this job re-invokes dispatch on due rows every tick.
type DispatchDueJob struct {
	svc       dispatchsvc.Service
	batchSize int
	logger    *elog.Component
}

func NewDispatchDueJob(svc dispatchsvc.Service, batchSize int) *DispatchDueJob {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &DispatchDueJob{
		svc:       svc,
		batchSize: batchSize,
		logger:    elog.DefaultLogger,
	}
}

func (j *DispatchDueJob) Do(ctx context.Context) error {
	sent, err := j.svc.DispatchDue(ctx, j.batchSize)
	if err != nil {
		j.logger.Error("deferred dispatch sweep failed",
			elog.Int("sent", sent),
			elog.FieldErr(err))
		return err
	}
	if sent > 0 {
		j.logger.Info("deferred dispatch sweep completed",
			elog.Int("sent", sent))
	}
	return nil
}
