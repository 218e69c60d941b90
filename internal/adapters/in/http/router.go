package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewEcho builds the echo instance with every route registered.
func (s *Server) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = s.ErrorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.InfoContext(c.Request().Context(), "request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	}))

	s.Register(e)
	return e
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", openapiDocument)
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(swaggerInstance)))
	if s.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(s.metrics))
	}
	e.GET("/ws", s.Socket)

	api := e.Group("/api/v1")

	api.POST("/homes", s.CreateHome)
	api.GET("/homes/:homeId/check", s.CheckHome)
	api.PUT("/homes/:homeId/preferred-cleaners", s.UpdatePreferredCleaners)
	api.POST("/appointments", s.CreateAppointment)
	api.PUT("/contacts/me", s.UpsertContact)

	api.POST("/jobs", s.CreateJob)
	api.GET("/jobs/:jobId/status", s.GetJobStatus)
	api.GET("/jobs/:jobId/cleaners", s.GetJobCleaners)
	api.GET("/jobs/:jobId/assignments", s.GetAssignments)
	api.POST("/jobs/:jobId/slots", s.FillSlot)
	api.POST("/jobs/:jobId/release", s.ReleaseSlot)
	api.POST("/jobs/:jobId/join", s.RequestToJoin)
	api.POST("/jobs/:jobId/start", s.StartJob)
	api.POST("/jobs/:jobId/rooms/:roomId/complete", s.CompleteRoom)
	api.POST("/jobs/:jobId/finish", s.FinishJob)
	api.POST("/jobs/:jobId/dropout", s.Dropout)
	api.POST("/jobs/:jobId/solo-offer", s.OfferSolo)
	api.POST("/jobs/:jobId/solo/accept", s.AcceptSolo)
	api.POST("/jobs/:jobId/solo/decline", s.DeclineSolo)
	api.POST("/jobs/:jobId/extra-work-offer", s.OfferExtraWork)
	api.POST("/jobs/:jobId/extra-work/accept", s.AcceptExtraWork)
	api.POST("/jobs/:jobId/extra-work/decline", s.DeclineExtraWork)
	api.POST("/jobs/:jobId/offers", s.CreateOffer)
	api.POST("/jobs/:jobId/homeowner-response", s.HomeownerResponse)
	api.POST("/jobs/:jobId/cancel", s.CancelJob)

	api.GET("/offers", s.ListOffers)
	api.POST("/offers/:offerId/accept", s.AcceptOffer)
	api.POST("/offers/:offerId/decline", s.DeclineOffer)

	api.POST("/join-requests/:requestId/approve", s.ApproveRequest)
	api.POST("/join-requests/:requestId/decline", s.DeclineRequest)

	api.GET("/notifications", s.ListNotifications)
	api.POST("/notifications/:notificationId/read", s.MarkNotificationRead)
}
