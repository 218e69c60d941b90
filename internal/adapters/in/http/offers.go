package http

import (
	"context"
	"net/http"

	"multicleaner/internal/core/application/usecases/commands"
	"multicleaner/internal/core/application/usecases/queries"
	"multicleaner/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ListOffers handles GET /api/v1/offers for the calling cleaner.
func (s *Server) ListOffers(c echo.Context) error {
	cleanerID, err := actor(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListCleanerOffersQuery(cleanerID)
	if err != nil {
		return err
	}

	offers, err := s.handlers.ListCleanerOffers.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]Offer, len(offers))
	for i, o := range offers {
		response[i] = Offer{
			ID:              o.OfferID,
			JobID:           o.JobID,
			Type:            string(o.Type),
			EarningsOffered: o.EarningsOffered,
			RoomIDs:         o.RoomIDs,
			ExpiresAt:       o.ExpiresAt,
			AppointmentDate: o.AppointmentDate,
			CleanersNeeded:  o.CleanersNeeded,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// AcceptOffer handles POST /api/v1/offers/{offerId}/accept.
func (s *Server) AcceptOffer(c echo.Context) error {
	return s.pathAction(c, "offerId", func(ctx context.Context, offerID, cleanerID kernel.UUID) error {
		cmd, err := commands.NewAcceptOfferCommand(offerID, cleanerID)
		if err != nil {
			return err
		}
		return s.handlers.AcceptOffer.Handle(ctx, cmd)
	})
}

// DeclineOffer handles POST /api/v1/offers/{offerId}/decline.
func (s *Server) DeclineOffer(c echo.Context) error {
	var body Reason
	if err := bind(c, &body); err != nil {
		return err
	}
	return s.pathAction(c, "offerId", func(ctx context.Context, offerID, cleanerID kernel.UUID) error {
		cmd, err := commands.NewDeclineOfferCommand(offerID, cleanerID, body.Reason)
		if err != nil {
			return err
		}
		return s.handlers.DeclineOffer.Handle(ctx, cmd)
	})
}

// ApproveRequest handles POST /api/v1/join-requests/{requestId}/approve.
func (s *Server) ApproveRequest(c echo.Context) error {
	return s.pathAction(c, "requestId", func(ctx context.Context, requestID, homeownerID kernel.UUID) error {
		cmd, err := commands.NewApproveRequestCommand(requestID, homeownerID)
		if err != nil {
			return err
		}
		return s.handlers.ApproveRequest.Handle(ctx, cmd)
	})
}

// DeclineRequest handles POST /api/v1/join-requests/{requestId}/decline.
func (s *Server) DeclineRequest(c echo.Context) error {
	var body Reason
	if err := bind(c, &body); err != nil {
		return err
	}
	return s.pathAction(c, "requestId", func(ctx context.Context, requestID, homeownerID kernel.UUID) error {
		cmd, err := commands.NewDeclineRequestCommand(requestID, homeownerID, body.Reason)
		if err != nil {
			return err
		}
		return s.handlers.DeclineRequest.Handle(ctx, cmd)
	})
}

// pathAction runs a command for the calling user against the resource named by param.
func (s *Server) pathAction(
	c echo.Context,
	param string,
	run func(ctx context.Context, id, userID kernel.UUID) error,
) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, param)
	if err != nil {
		return err
	}
	if err = run(c.Request().Context(), id, user); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
