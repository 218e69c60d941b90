// Package http exposes the orchestration engine over a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"multicleaner/internal/adapters/out/postgres/notificationrepo"
	"multicleaner/internal/core/application/usecases/commands"
	"multicleaner/internal/core/application/usecases/queries"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/clock"
	"multicleaner/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
)

// Handlers is every use case the API dispatches to.
type Handlers struct {
	CreateHome              commands.CreateHomeCommandHandler
	UpdatePreferredCleaners commands.UpdatePreferredCleanersCommandHandler
	CreateAppointment       commands.CreateAppointmentCommandHandler
	UpsertContact           commands.UpsertContactCommandHandler

	CreateJob         commands.CreateJobCommandHandler
	FillSlot          commands.FillSlotCommandHandler
	ReleaseSlot       commands.ReleaseSlotCommandHandler
	RequestToJoin     commands.RequestToJoinCommandHandler
	ApproveRequest    commands.ApproveRequestCommandHandler
	DeclineRequest    commands.DeclineRequestCommandHandler
	StartJob          commands.StartJobCommandHandler
	CompleteRoom      commands.CompleteRoomCommandHandler
	MarkCleanerDone   commands.MarkCleanerCompleteCommandHandler
	CancelJob         commands.CancelJobCommandHandler
	HomeownerResponse commands.HomeownerResponseCommandHandler
	CreateOffer       commands.CreateOfferCommandHandler
	AcceptOffer       commands.AcceptOfferCommandHandler
	DeclineOffer      commands.DeclineOfferCommandHandler
	HandleDropout     commands.HandleCleanerDropoutCommandHandler
	OfferSolo         commands.OfferSoloCompletionCommandHandler
	AcceptSolo        commands.AcceptSoloCompletionCommandHandler
	DeclineSolo       commands.DeclineSoloCompletionCommandHandler
	OfferExtraWork    commands.OfferExtraWorkCommandHandler
	AcceptExtraWork   commands.AcceptExtraWorkCommandHandler
	DeclineExtraWork  commands.DeclineExtraWorkCommandHandler

	CheckHome         queries.CheckHomeQueryHandler
	GetJobStatus      queries.GetJobStatusQueryHandler
	GetJobCleaners    queries.GetJobCleanersQueryHandler
	GetAssignments    queries.GetCleanerAssignmentsQueryHandler
	ListCleanerOffers queries.ListCleanerOffersQueryHandler
}

// Inbox is the read side of in-app notifications.
type Inbox interface {
	ListByRecipient(ctx context.Context, recipientID kernel.UUID, unreadOnly bool, limit int) ([]notificationrepo.Record, error)
	MarkRead(ctx context.Context, id, recipientID kernel.UUID, now time.Time) error
}

// Sockets upgrades a request into a live notification stream for userID.
type Sockets interface {
	Serve(w http.ResponseWriter, r *http.Request, userID kernel.UUID) error
}

type Server struct {
	handlers Handlers
	inbox    Inbox
	sockets  Sockets
	metrics  http.Handler
	clock    clock.Clock
	logger   *slog.Logger
	doc      *openapi3.T
}

// NewServer wires the API. metrics may be nil, in which case /metrics is not served.
func NewServer(
	handlers Handlers,
	inbox Inbox,
	sockets Sockets,
	metrics http.Handler,
	clk clock.Clock,
	logger *slog.Logger,
	doc *openapi3.T,
) (*Server, error) {
	if inbox == nil {
		return nil, errs.NewValueIsRequiredError("inbox")
	}
	if sockets == nil {
		return nil, errs.NewValueIsRequiredError("sockets")
	}
	if clk == nil {
		return nil, errs.NewValueIsRequiredError("clock")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	if doc == nil {
		return nil, errs.NewValueIsRequiredError("openapi document")
	}
	if err := registerSwagger(doc); err != nil {
		return nil, err
	}

	return &Server{
		handlers: handlers,
		inbox:    inbox,
		sockets:  sockets,
		metrics:  metrics,
		clock:    clk,
		logger:   logger.With("component", "http"),
		doc:      doc,
	}, nil
}
