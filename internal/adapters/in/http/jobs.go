package http

import (
	"context"
	"net/http"
	"time"

	"multicleaner/internal/core/application/usecases/commands"
	"multicleaner/internal/core/application/usecases/queries"
	"multicleaner/internal/core/domain/model/job"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/offer"
	"multicleaner/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateJob handles POST /api/v1/jobs.
func (s *Server) CreateJob(c echo.Context) error {
	if _, err := actor(c); err != nil {
		return err
	}
	var body NewJob
	if err := bind(c, &body); err != nil {
		return err
	}
	appointmentID, err := requiredID(body.AppointmentID, "appointmentId")
	if err != nil {
		return err
	}
	primary, err := optionalID(body.PrimaryCleanerID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateJobCommand(appointmentID, body.CleanerCount, primary, false)
	if err != nil {
		return err
	}
	if err = s.handlers.CreateJob.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: cmd.JobID()})
}

// GetJobStatus handles GET /api/v1/jobs/{jobId}/status.
func (s *Server) GetJobStatus(c echo.Context) error {
	jobID, err := pathID(c, "jobId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetJobStatusQuery(jobID)
	if err != nil {
		return err
	}

	result, err := s.handlers.GetJobStatus.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	cleaners := make([]JobStatusCleaner, len(result.Cleaners))
	for i, cl := range result.Cleaners {
		cleaners[i] = JobStatusCleaner{
			CleanerID:      cl.CleanerID,
			Status:         string(cl.Status),
			AssignedRooms:  cl.AssignedRooms,
			CompletedRooms: cl.CompletedRooms,
		}
	}
	return c.JSON(http.StatusOK, JobStatus{
		JobID:                     result.JobID,
		AppointmentID:             result.AppointmentID,
		AppointmentDate:           result.AppointmentDate,
		Status:                    result.Status.String(),
		TotalCleanersRequired:     result.TotalCleanersRequired,
		CleanersConfirmed:         result.CleanersConfirmed,
		EdgeCaseDecisionRequired:  result.EdgeCaseDecisionRequired,
		HomeownerDecision:         string(result.HomeownerDecision),
		EdgeCaseDecisionExpiresAt: result.EdgeCaseDecisionExpiresAt,
		TotalRooms:                result.TotalRooms,
		CompletedRooms:            result.CompletedRooms,
		ProgressPercent:           result.ProgressPercent,
		Cleaners:                  cleaners,
	})
}

// GetJobCleaners handles GET /api/v1/jobs/{jobId}/cleaners.
func (s *Server) GetJobCleaners(c echo.Context) error {
	jobID, err := pathID(c, "jobId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetJobCleanersQuery(jobID)
	if err != nil {
		return err
	}

	result, err := s.handlers.GetJobCleaners.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]JobCleaner, len(result))
	for i, cl := range result {
		response[i] = JobCleaner{
			CleanerID:      cl.CleanerID,
			Name:           cl.Name,
			Status:         string(cl.Status),
			AssignedAt:     cl.AssignedAt,
			RoomCount:      cl.RoomCount,
			CompletedRooms: cl.CompletedRooms,
			Minutes:        cl.Minutes,
			EarningsCents:  cl.EarningsCents,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetAssignments handles GET /api/v1/jobs/{jobId}/assignments for the calling cleaner.
func (s *Server) GetAssignments(c echo.Context) error {
	jobID, cleanerID, err := jobAndActor(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetCleanerAssignmentsQuery(jobID, cleanerID)
	if err != nil {
		return err
	}

	result, err := s.handlers.GetAssignments.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	rooms := make([]ChecklistRoom, len(result.Rooms))
	for i, r := range result.Rooms {
		rooms[i] = ChecklistRoom{
			RoomID:           r.RoomID,
			Type:             string(r.Type),
			Number:           r.Number,
			Label:            r.Label,
			EstimatedMinutes: r.EstimatedMinutes,
			Status:           r.Status.String(),
			CompletedAt:      r.CompletedAt,
		}
	}
	return c.JSON(http.StatusOK, Checklist{
		JobID:           result.JobID,
		CleanerID:       result.CleanerID,
		Status:          string(result.Status),
		AppointmentDate: result.AppointmentDate,
		TotalMinutes:    result.TotalMinutes,
		EarningsCents:   result.EarningsCents,
		Rooms:           rooms,
	})
}

// FillSlot handles POST /api/v1/jobs/{jobId}/slots. An empty room list lets the engine pick.
func (s *Server) FillSlot(c echo.Context) error {
	jobID, cleanerID, err := jobAndActor(c)
	if err != nil {
		return err
	}
	var body RoomSelection
	if err = bind(c, &body); err != nil {
		return err
	}
	roomIDs, err := ids(body.RoomIDs)
	if err != nil {
		return err
	}

	cmd, err := commands.NewFillSlotCommand(jobID, cleanerID, roomIDs)
	if err != nil {
		return err
	}
	if err = s.handlers.FillSlot.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ReleaseSlot handles POST /api/v1/jobs/{jobId}/release.
func (s *Server) ReleaseSlot(c echo.Context) error {
	jobID, cleanerID, err := jobAndActor(c)
	if err != nil {
		return err
	}
	var body Reason
	if err = bind(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewReleaseSlotCommand(jobID, cleanerID, body.Reason)
	if err != nil {
		return err
	}
	if err = s.handlers.ReleaseSlot.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RequestToJoin handles POST /api/v1/jobs/{jobId}/join.
func (s *Server) RequestToJoin(c echo.Context) error {
	jobID, cleanerID, err := jobAndActor(c)
	if err != nil {
		return err
	}
	var body RoomSelection
	if err = bind(c, &body); err != nil {
		return err
	}
	roomIDs, err := ids(body.RoomIDs)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRequestToJoinCommand(jobID, cleanerID, roomIDs)
	if err != nil {
		return err
	}
	result, err := s.handlers.RequestToJoin.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if result.Outcome == commands.JoinPending {
		status = http.StatusAccepted
	}
	return c.JSON(status, JoinResult{Outcome: string(result.Outcome), RequestID: result.RequestID})
}

// StartJob handles POST /api/v1/jobs/{jobId}/start.
func (s *Server) StartJob(c echo.Context) error {
	return s.jobCleanerAction(c, func(ctx context.Context, jobID, cleanerID kernel.UUID) error {
		cmd, err := commands.NewStartJobCommand(jobID, cleanerID)
		if err != nil {
			return err
		}
		return s.handlers.StartJob.Handle(ctx, cmd)
	})
}

// CompleteRoom handles POST /api/v1/jobs/{jobId}/rooms/{roomId}/complete.
func (s *Server) CompleteRoom(c echo.Context) error {
	jobID, cleanerID, err := jobAndActor(c)
	if err != nil {
		return err
	}
	roomID, err := pathID(c, "roomId")
	if err != nil {
		return err
	}
	var body RoomCompletion
	if err = bind(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewCompleteRoomCommand(jobID, roomID, cleanerID, body.HasRequiredPhotos)
	if err != nil {
		return err
	}
	result, err := s.handlers.CompleteRoom.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, RoomCompletionResult{
		CleanerCompleted: result.CleanerCompleted,
		JobCompleted:     result.JobCompleted,
	})
}

// FinishJob handles POST /api/v1/jobs/{jobId}/finish.
func (s *Server) FinishJob(c echo.Context) error {
	return s.jobCleanerAction(c, func(ctx context.Context, jobID, cleanerID kernel.UUID) error {
		cmd, err := commands.NewMarkCleanerCompleteCommand(jobID, cleanerID)
		if err != nil {
			return err
		}
		return s.handlers.MarkCleanerDone.Handle(ctx, cmd)
	})
}

// Dropout handles POST /api/v1/jobs/{jobId}/dropout.
func (s *Server) Dropout(c echo.Context) error {
	jobID, cleanerID, err := jobAndActor(c)
	if err != nil {
		return err
	}
	var body Reason
	if err = bind(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewHandleCleanerDropoutCommand(jobID, cleanerID, body.Reason)
	if err != nil {
		return err
	}
	outcome, err := s.handlers.HandleDropout.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, DropoutOutcome{
		RemainingCleaners:       outcome.RemainingCleaners,
		Shortfall:               outcome.Shortfall,
		CanProceedSolo:          outcome.CanProceedSolo,
		CanProceedWithRebalance: outcome.CanProceedWithRebalance,
		RequiresReschedule:      outcome.RequiresReschedule,
	})
}

// OfferSolo handles POST /api/v1/jobs/{jobId}/solo-offer.
func (s *Server) OfferSolo(c echo.Context) error {
	return s.jobCleanerAction(c, func(ctx context.Context, jobID, _ kernel.UUID) error {
		cmd, err := commands.NewOfferSoloCompletionCommand(jobID)
		if err != nil {
			return err
		}
		return s.handlers.OfferSolo.Handle(ctx, cmd)
	})
}

// AcceptSolo handles POST /api/v1/jobs/{jobId}/solo/accept.
func (s *Server) AcceptSolo(c echo.Context) error {
	return s.jobCleanerAction(c, func(ctx context.Context, jobID, cleanerID kernel.UUID) error {
		cmd, err := commands.NewAcceptSoloCompletionCommand(jobID, cleanerID)
		if err != nil {
			return err
		}
		return s.handlers.AcceptSolo.Handle(ctx, cmd)
	})
}

// DeclineSolo handles POST /api/v1/jobs/{jobId}/solo/decline.
func (s *Server) DeclineSolo(c echo.Context) error {
	return s.jobCleanerAction(c, func(ctx context.Context, jobID, cleanerID kernel.UUID) error {
		cmd, err := commands.NewDeclineSoloCompletionCommand(jobID, cleanerID)
		if err != nil {
			return err
		}
		return s.handlers.DeclineSolo.Handle(ctx, cmd)
	})
}

// OfferExtraWork handles POST /api/v1/jobs/{jobId}/extra-work-offer.
func (s *Server) OfferExtraWork(c echo.Context) error {
	return s.jobCleanerAction(c, func(ctx context.Context, jobID, _ kernel.UUID) error {
		cmd, err := commands.NewOfferExtraWorkCommand(jobID)
		if err != nil {
			return err
		}
		return s.handlers.OfferExtraWork.Handle(ctx, cmd)
	})
}

// AcceptExtraWork handles POST /api/v1/jobs/{jobId}/extra-work/accept.
func (s *Server) AcceptExtraWork(c echo.Context) error {
	return s.jobCleanerAction(c, func(ctx context.Context, jobID, cleanerID kernel.UUID) error {
		cmd, err := commands.NewAcceptExtraWorkCommand(jobID, cleanerID)
		if err != nil {
			return err
		}
		return s.handlers.AcceptExtraWork.Handle(ctx, cmd)
	})
}

// DeclineExtraWork handles POST /api/v1/jobs/{jobId}/extra-work/decline.
func (s *Server) DeclineExtraWork(c echo.Context) error {
	return s.jobCleanerAction(c, func(ctx context.Context, jobID, cleanerID kernel.UUID) error {
		cmd, err := commands.NewDeclineExtraWorkCommand(jobID, cleanerID)
		if err != nil {
			return err
		}
		return s.handlers.DeclineExtraWork.Handle(ctx, cmd)
	})
}

// CreateOffer handles POST /api/v1/jobs/{jobId}/offers.
func (s *Server) CreateOffer(c echo.Context) error {
	jobID, _, err := jobAndActor(c)
	if err != nil {
		return err
	}
	var body NewOffer
	if err = bind(c, &body); err != nil {
		return err
	}
	cleanerID, err := requiredID(body.CleanerID, "cleanerId")
	if err != nil {
		return err
	}
	roomIDs, err := ids(body.RoomIDs)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOfferCommand(jobID, cleanerID, offer.Type(body.Type), body.EarningsOffered, roomIDs)
	if err != nil {
		return err
	}
	if err = s.handlers.CreateOffer.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: cmd.OfferID()})
}

// HomeownerResponse handles POST /api/v1/jobs/{jobId}/homeowner-response.
func (s *Server) HomeownerResponse(c echo.Context) error {
	jobID, homeownerID, err := jobAndActor(c)
	if err != nil {
		return err
	}
	var body HomeownerResponse
	if err = bind(c, &body); err != nil {
		return err
	}
	var date *time.Time
	if body.Date != nil {
		d := body.Date.UTC()
		date = &d
	}

	cmd, err := commands.NewHomeownerResponseCommand(jobID, homeownerID, commands.Response(body.Response), date, body.Reason)
	if err != nil {
		return err
	}
	result, err := s.handlers.HomeownerResponse.Handle(c.Request().Context(), cmd)
	if err != nil {
		if msg, ok := errs.ConflictMessage(err); ok && result.Decision != job.DecisionNone {
			return c.JSON(http.StatusConflict, Error{
				Code:     http.StatusConflict,
				Message:  msg,
				Decision: string(result.Decision),
			})
		}
		return err
	}
	return c.JSON(http.StatusOK, Decision{Decision: string(result.Decision)})
}

// CancelJob handles POST /api/v1/jobs/{jobId}/cancel.
func (s *Server) CancelJob(c echo.Context) error {
	jobID, homeownerID, err := jobAndActor(c)
	if err != nil {
		return err
	}
	var body Reason
	if err = bind(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewCancelJobCommand(jobID, homeownerID, body.Reason)
	if err != nil {
		return err
	}
	if err = s.handlers.CancelJob.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func jobAndActor(c echo.Context) (kernel.UUID, kernel.UUID, error) {
	user, err := actor(c)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	jobID, err := pathID(c, "jobId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return jobID, user, nil
}

// jobCleanerAction runs a body-less command for the calling user on a job.
func (s *Server) jobCleanerAction(c echo.Context, run func(ctx context.Context, jobID, userID kernel.UUID) error) error {
	jobID, user, err := jobAndActor(c)
	if err != nil {
		return err
	}
	if err = run(c.Request().Context(), jobID, user); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
