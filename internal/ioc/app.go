package ioc

import (
	"github.com/gotomicro/ego/core/econf"

	"github.com/quotingfast/outreach/internal/repository"
	redicache "github.com/quotingfast/outreach/internal/repository/cache/redis"
	"github.com/quotingfast/outreach/internal/repository/dao"
	compliancesvc "github.com/quotingfast/outreach/internal/service/compliance"
	dispatchsvc "github.com/quotingfast/outreach/internal/service/dispatch"
	emergencysvc "github.com/quotingfast/outreach/internal/service/emergency"
	inboundsvc "github.com/quotingfast/outreach/internal/service/inbound"
	leadsvc "github.com/quotingfast/outreach/internal/service/lead"
	notificationsvc "github.com/quotingfast/outreach/internal/service/notification"
	suppressionsvc "github.com/quotingfast/outreach/internal/service/suppression"
	templatesvc "github.com/quotingfast/outreach/internal/service/template"
	"github.com/gotomicro/ego/task/ecron"
)

// App is the composition root's view of the core: the surfaces consumed by
// the (out-of-scope) web and CLI layers plus background tasks.
type App struct {
	Leads       leadsvc.Service
	Dispatch    dispatchsvc.Service
	Inbound     inboundsvc.Service
	Emergency   emergencysvc.Service
	Suppression suppressionsvc.Service
	Crons       []ecron.Ecron
}

func InitApp() *App {
	db := InitDB()
	rdb := InitRedisClient()
	broadcaster := InitBroadcaster()
	gatewayClient := InitGatewayClient()

	leadRepo := repository.NewLeadRepository(dao.NewLeadDAO(db))
	msgRepo := repository.NewSMSMessageRepository(dao.NewSMSMessageDAO(db))
	suppressionRepo := repository.NewSuppressionRepository(
		dao.NewSuppressionDAO(db),
		redicache.NewSuppressionCache(rdb),
	)
	emergencyRepo := repository.NewEmergencyStopRepository(dao.NewEmergencyStopDAO(db))
	alertRepo := repository.NewAlertRepository(dao.NewAlertDAO(db))

	complianceSvc, err := compliancesvc.NewService()
	if err != nil {
		panic(err)
	}

	alerts := notificationsvc.NewService(alertRepo, broadcaster, gatewayClient,
		econf.GetString("notification.adminPhone"))
	leadSvc := leadsvc.NewService(leadRepo, broadcaster)
	suppressionSvc := suppressionsvc.NewService(suppressionRepo)
	emergencySvc := emergencysvc.NewService(emergencyRepo, broadcaster, alerts)
	templateSvc := templatesvc.NewService(econf.GetString("template.baseURL"))

	dispatchSvc := dispatchsvc.NewService(
		leadRepo,
		msgRepo,
		suppressionSvc,
		emergencySvc,
		complianceSvc,
		templateSvc,
		gatewayClient,
		broadcaster,
		alerts,
		InitPermanentFailureCodes(),
	)
	inboundSvc := inboundsvc.NewService(
		msgRepo,
		suppressionSvc,
		dispatchSvc,
		gatewayClient,
		broadcaster,
		alerts,
	)

	return &App{
		Leads:       leadSvc,
		Dispatch:    dispatchSvc,
		Inbound:     inboundSvc,
		Emergency:   emergencySvc,
		Suppression: suppressionSvc,
		Crons:       Crons(dispatchSvc),
	}
}
