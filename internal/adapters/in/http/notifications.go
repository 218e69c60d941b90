package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const defaultNotificationLimit = 50

// ListNotifications handles GET /api/v1/notifications?unread=true&limit=20.
func (s *Server) ListNotifications(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", defaultNotificationLimit)
	if err != nil {
		return err
	}
	unreadOnly := c.QueryParam("unread") == "true"

	records, err := s.inbox.ListByRecipient(c.Request().Context(), user, unreadOnly, limit)
	if err != nil {
		return err
	}

	response := make([]Notification, len(records))
	for i, r := range records {
		response[i] = Notification{
			ID:             r.ID,
			Kind:           r.Kind,
			Title:          r.Title,
			Body:           r.Body,
			Data:           r.Data,
			ActionRequired: r.ActionRequired,
			ExpiresAt:      r.ExpiresAt,
			ReadAt:         r.ReadAt,
			CreatedAt:      r.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// MarkNotificationRead handles POST /api/v1/notifications/{notificationId}/read.
func (s *Server) MarkNotificationRead(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "notificationId")
	if err != nil {
		return err
	}
	if err = s.inbox.MarkRead(c.Request().Context(), id, user, s.clock.Now()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Socket handles GET /ws. Browsers cannot set headers on a websocket
// handshake, so the user id may also come from the user query parameter.
func (s *Server) Socket(c echo.Context) error {
	if c.Request().Header.Get(ActorHeader) == "" && c.QueryParam("user") != "" {
		c.Request().Header.Set(ActorHeader, c.QueryParam("user"))
	}
	user, err := actor(c)
	if err != nil {
		return err
	}
	if err = s.sockets.Serve(c.Response(), c.Request(), user); err != nil {
		s.logger.WarnContext(c.Request().Context(), "socket closed", "user_id", user.String(), "error", err)
	}
	return nil
}
