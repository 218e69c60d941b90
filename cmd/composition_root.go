package cmd

import (
	"log/slog"
	"net/http"

	api "multicleaner/internal/adapters/in/http"
	"multicleaner/internal/adapters/out/metrics"
	"multicleaner/internal/adapters/out/notify"
	"multicleaner/internal/adapters/out/postgres"
	"multicleaner/internal/adapters/out/postgres/notificationrepo"
	"multicleaner/internal/adapters/out/postgres/userrepo"
	"multicleaner/internal/adapters/out/pricing"
	"multicleaner/internal/core/application/usecases/commands"
	"multicleaner/internal/core/application/usecases/queries"
	"multicleaner/internal/core/domain/model/notice"
	"multicleaner/internal/core/domain/model/policy"
	"multicleaner/internal/core/ports"
	"multicleaner/internal/jobs"
	"multicleaner/internal/pkg/clock"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	settings   policy.Settings
	clock      clock.Clock
	pricing    *pricing.RateCard
	metrics    ports.MetricsCollector
	inbox      *notificationrepo.GormNotificationStore
	sockets    *notify.SocketHub
	gateway    *notify.Gateway
	engine     *commands.Engine
	logger     *slog.Logger
}

// NewCompositionRoot wires the engine over gormDB. Metrics go to reg, or nowhere when reg is nil.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, reg prometheus.Registerer, logger *slog.Logger) (*CompositionRoot, error) {
	card, err := pricing.NewRateCard(cfg.PlatformFeePercent)
	if err != nil {
		return nil, err
	}

	var collector ports.MetricsCollector = metrics.NewNop()
	if reg != nil {
		collector = metrics.NewPrometheus(reg, cfg.MetricsNamespace)
	}

	c := &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		settings:   cfg.Settings(),
		clock:      clock.Real(),
		pricing:    card,
		metrics:    collector,
		inbox:      notificationrepo.NewGormNotificationStore(gormDB),
		sockets:    notify.NewSocketHub(logger),
		logger:     logger,
	}

	contacts := userrepo.NewGormUserDirectory(gormDB)
	senders := map[notice.Channel]notify.Sender{
		notice.InApp:  notify.NewInAppChannel(c.inbox, c.clock),
		notice.Socket: c.sockets,
	}
	if cfg.SMTP.Host != "" {
		senders[notice.Email] = notify.NewEmailChannel(notify.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			FromName: cfg.SMTP.FromName,
			From:     cfg.SMTP.From,
		}, contacts)
	}
	if cfg.PushEndpoint != "" {
		senders[notice.Push] = notify.NewPushChannel(cfg.PushEndpoint, &http.Client{Timeout: cfg.PushTimeout}, contacts)
	}
	if c.gateway, err = notify.NewGateway(senders, logger); err != nil {
		return nil, err
	}

	c.engine, err = commands.NewEngine(
		commands.FuncUoWFactory(func() commands.UoW { return c.uowFactory.Create() }),
		c.clock,
		c.settings,
		c.pricing,
		c.gateway,
		c.metrics,
		logger,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CompositionRoot) Clock() clock.Clock {
	return c.clock
}

func (c *CompositionRoot) Inbox() *notificationrepo.GormNotificationStore {
	return c.inbox
}

func (c *CompositionRoot) Sockets() *notify.SocketHub {
	return c.sockets
}

func (c *CompositionRoot) CreateCreateHomeCommandHandler() commands.CreateHomeCommandHandler {
	return commands.NewCreateHomeCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateUpdatePreferredCleanersCommandHandler() commands.UpdatePreferredCleanersCommandHandler {
	return commands.NewUpdatePreferredCleanersCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateCreateAppointmentCommandHandler() commands.CreateAppointmentCommandHandler {
	return commands.NewCreateAppointmentCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateUpsertContactCommandHandler() commands.UpsertContactCommandHandler {
	return commands.NewUpsertContactCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateCreateJobCommandHandler() commands.CreateJobCommandHandler {
	return commands.NewCreateJobCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateFillSlotCommandHandler() commands.FillSlotCommandHandler {
	return commands.NewFillSlotCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateReleaseSlotCommandHandler() commands.ReleaseSlotCommandHandler {
	return commands.NewReleaseSlotCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateRequestToJoinCommandHandler() commands.RequestToJoinCommandHandler {
	return commands.NewRequestToJoinCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateApproveRequestCommandHandler() commands.ApproveRequestCommandHandler {
	return commands.NewApproveRequestCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateDeclineRequestCommandHandler() commands.DeclineRequestCommandHandler {
	return commands.NewDeclineRequestCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateStartJobCommandHandler() commands.StartJobCommandHandler {
	return commands.NewStartJobCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateCompleteRoomCommandHandler() commands.CompleteRoomCommandHandler {
	return commands.NewCompleteRoomCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateMarkCleanerCompleteCommandHandler() commands.MarkCleanerCompleteCommandHandler {
	return commands.NewMarkCleanerCompleteCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateCancelJobCommandHandler() commands.CancelJobCommandHandler {
	return commands.NewCancelJobCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateHomeownerResponseCommandHandler() commands.HomeownerResponseCommandHandler {
	return commands.NewHomeownerResponseCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateCreateOfferCommandHandler() commands.CreateOfferCommandHandler {
	return commands.NewCreateOfferCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateAcceptOfferCommandHandler() commands.AcceptOfferCommandHandler {
	return commands.NewAcceptOfferCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateDeclineOfferCommandHandler() commands.DeclineOfferCommandHandler {
	return commands.NewDeclineOfferCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateHandleCleanerDropoutCommandHandler() commands.HandleCleanerDropoutCommandHandler {
	return commands.NewHandleCleanerDropoutCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateOfferSoloCompletionCommandHandler() commands.OfferSoloCompletionCommandHandler {
	return commands.NewOfferSoloCompletionCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateAcceptSoloCompletionCommandHandler() commands.AcceptSoloCompletionCommandHandler {
	return commands.NewAcceptSoloCompletionCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateDeclineSoloCompletionCommandHandler() commands.DeclineSoloCompletionCommandHandler {
	return commands.NewDeclineSoloCompletionCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateOfferExtraWorkCommandHandler() commands.OfferExtraWorkCommandHandler {
	return commands.NewOfferExtraWorkCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateAcceptExtraWorkCommandHandler() commands.AcceptExtraWorkCommandHandler {
	return commands.NewAcceptExtraWorkCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateDeclineExtraWorkCommandHandler() commands.DeclineExtraWorkCommandHandler {
	return commands.NewDeclineExtraWorkCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateCheckHomeQueryHandler() queries.CheckHomeQueryHandler {
	return queries.NewCheckHomeQueryHandler(c.gormDB, c.settings)
}

func (c *CompositionRoot) CreateGetJobStatusQueryHandler() queries.GetJobStatusQueryHandler {
	return queries.NewGetJobStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetJobCleanersQueryHandler() queries.GetJobCleanersQueryHandler {
	return queries.NewGetJobCleanersQueryHandler(c.gormDB, c.pricing)
}

func (c *CompositionRoot) CreateGetCleanerAssignmentsQueryHandler() queries.GetCleanerAssignmentsQueryHandler {
	return queries.NewGetCleanerAssignmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCleanerOffersQueryHandler() queries.ListCleanerOffersQueryHandler {
	return queries.NewListCleanerOffersQueryHandler(c.gormDB, c.clock)
}

// Handlers is every use case the HTTP API dispatches to.
func (c *CompositionRoot) Handlers() api.Handlers {
	return api.Handlers{
		CreateHome:              c.CreateCreateHomeCommandHandler(),
		UpdatePreferredCleaners: c.CreateUpdatePreferredCleanersCommandHandler(),
		CreateAppointment:       c.CreateCreateAppointmentCommandHandler(),
		UpsertContact:           c.CreateUpsertContactCommandHandler(),

		CreateJob:         c.CreateCreateJobCommandHandler(),
		FillSlot:          c.CreateFillSlotCommandHandler(),
		ReleaseSlot:       c.CreateReleaseSlotCommandHandler(),
		RequestToJoin:     c.CreateRequestToJoinCommandHandler(),
		ApproveRequest:    c.CreateApproveRequestCommandHandler(),
		DeclineRequest:    c.CreateDeclineRequestCommandHandler(),
		StartJob:          c.CreateStartJobCommandHandler(),
		CompleteRoom:      c.CreateCompleteRoomCommandHandler(),
		MarkCleanerDone:   c.CreateMarkCleanerCompleteCommandHandler(),
		CancelJob:         c.CreateCancelJobCommandHandler(),
		HomeownerResponse: c.CreateHomeownerResponseCommandHandler(),
		CreateOffer:       c.CreateCreateOfferCommandHandler(),
		AcceptOffer:       c.CreateAcceptOfferCommandHandler(),
		DeclineOffer:      c.CreateDeclineOfferCommandHandler(),
		HandleDropout:     c.CreateHandleCleanerDropoutCommandHandler(),
		OfferSolo:         c.CreateOfferSoloCompletionCommandHandler(),
		AcceptSolo:        c.CreateAcceptSoloCompletionCommandHandler(),
		DeclineSolo:       c.CreateDeclineSoloCompletionCommandHandler(),
		OfferExtraWork:    c.CreateOfferExtraWorkCommandHandler(),
		AcceptExtraWork:   c.CreateAcceptExtraWorkCommandHandler(),
		DeclineExtraWork:  c.CreateDeclineExtraWorkCommandHandler(),

		CheckHome:         c.CreateCheckHomeQueryHandler(),
		GetJobStatus:      c.CreateGetJobStatusQueryHandler(),
		GetJobCleaners:    c.CreateGetJobCleanersQueryHandler(),
		GetAssignments:    c.CreateGetCleanerAssignmentsQueryHandler(),
		ListCleanerOffers: c.CreateListCleanerOffersQueryHandler(),
	}
}

// Sweepers is every periodic entry point for the scheduler.
func (c *CompositionRoot) Sweepers() jobs.Sweepers {
	return jobs.Sweepers{
		ExpiredOffers:              commands.NewProcessExpiredOffersCommandHandler(c.engine),
		WithdrawFilledJobOffers:    commands.NewWithdrawOffersForFilledJobsCommandHandler(c.engine),
		AutoApproveExpiredRequests: commands.NewAutoApproveExpiredRequestsCommandHandler(c.engine),
		EdgeCaseDecisions:          commands.NewProcessEdgeCaseDecisionsCommandHandler(c.engine),
		ExpiredEdgeCaseDecisions:   commands.NewProcessExpiredEdgeCaseDecisionsCommandHandler(c.engine),
		ExpiredExtraWorkOffers:     commands.NewHandleExpiredExtraWorkOffersCommandHandler(c.engine),
		SoloCompletionOffers:       commands.NewProcessSoloCompletionOffersCommandHandler(c.engine),
		UrgentFillNotifications:    commands.NewProcessUrgentFillNotificationsCommandHandler(c.engine),
		FinalWarnings:              commands.NewProcessFinalWarningsCommandHandler(c.engine),
	}
}
