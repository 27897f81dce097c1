package ioc

import (
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/task/ecron"

	dispatchsvc "github.com/quotingfast/outreach/internal/service/dispatch"
	"github.com/quotingfast/outreach/internal/service/scheduler"
)

func Crons(dispatch dispatchsvc.Service) []ecron.Ecron {
	job := scheduler.NewDispatchDueJob(dispatch, econf.GetInt("scheduler.batchSize"))
	c := ecron.Load("cron.dispatchDue").Build(ecron.WithJob(job.Do))
	return []ecron.Ecron{c}
}
