package main

import (
	"github.com/gotomicro/ego"
	"github.com/gotomicro/ego/core/elog"

	"github.com/quotingfast/outreach/internal/ioc"
)

func main() {
	app := ego.New()
	core := ioc.InitApp()
	if err := app.Cron(core.Crons...).Run(); err != nil {
		elog.Panic("startup", elog.FieldErr(err))
	}
}
