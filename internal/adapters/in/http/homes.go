package http

import (
	"net/http"

	"multicleaner/internal/core/application/usecases/commands"
	"multicleaner/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// CreateHome handles POST /api/v1/homes. The actor becomes the owner.
func (s *Server) CreateHome(c echo.Context) error {
	owner, err := actor(c)
	if err != nil {
		return err
	}
	var body NewHome
	if err = bind(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewCreateHomeCommand(owner, body.Beds, body.Baths, body.Sqft)
	if err != nil {
		return err
	}
	if err = s.handlers.CreateHome.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: cmd.HomeID()})
}

// CheckHome handles GET /api/v1/homes/{homeId}/check.
func (s *Server) CheckHome(c echo.Context) error {
	homeID, err := pathID(c, "homeId")
	if err != nil {
		return err
	}
	query, err := queries.NewCheckHomeQuery(homeID)
	if err != nil {
		return err
	}

	result, err := s.handlers.CheckHome.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	rooms := make([]Room, len(result.Rooms))
	for i, u := range result.Rooms {
		rooms[i] = Room{
			Type:             string(u.Type),
			Number:           u.Number,
			Label:            u.Label,
			EstimatedMinutes: u.EstimatedMinutes,
		}
	}
	return c.JSON(http.StatusOK, HomeCheck{
		HomeID:                 result.HomeID,
		IsLargeHome:            result.IsLargeHome,
		IsEdgeLargeHome:        result.IsEdgeLargeHome,
		IsSoloAllowed:          result.IsSoloAllowed,
		IsMultiCleanerRequired: result.IsMultiCleanerRequired,
		TotalMinutes:           result.TotalMinutes,
		RecommendedCleaners:    result.RecommendedCleaners,
		Rooms:                  rooms,
	})
}

// UpdatePreferredCleaners handles PUT /api/v1/homes/{homeId}/preferred-cleaners.
func (s *Server) UpdatePreferredCleaners(c echo.Context) error {
	owner, err := actor(c)
	if err != nil {
		return err
	}
	homeID, err := pathID(c, "homeId")
	if err != nil {
		return err
	}
	var body PreferredCleaners
	if err = bind(c, &body); err != nil {
		return err
	}
	preferred, err := ids(body.CleanerIDs)
	if err != nil {
		return err
	}
	primary, err := optionalID(body.PrimaryCleanerID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdatePreferredCleanersCommand(homeID, owner, preferred, primary)
	if err != nil {
		return err
	}
	if err = s.handlers.UpdatePreferredCleaners.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateAppointment handles POST /api/v1/appointments.
func (s *Server) CreateAppointment(c echo.Context) error {
	homeowner, err := actor(c)
	if err != nil {
		return err
	}
	var body NewAppointment
	if err = bind(c, &body); err != nil {
		return err
	}
	homeID, err := requiredID(body.HomeID, "homeId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateAppointmentCommand(homeID, homeowner, body.Date.UTC(), body.PriceCents)
	if err != nil {
		return err
	}
	if err = s.handlers.CreateAppointment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: cmd.AppointmentID()})
}

// UpsertContact handles PUT /api/v1/contacts/me.
func (s *Server) UpsertContact(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	var body Contact
	if err = bind(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewUpsertContactCommand(user, body.Name, body.Email, body.PushToken)
	if err != nil {
		return err
	}
	if err = s.handlers.UpsertContact.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
