package http

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// multipart framing allowance on top of the document itself
const uploadOverhead = 1 << 20

type Routes struct {
	Health       *Handler
	Sessions     *SessionHandler
	Verification *VerificationHandler
	// Idempotency guards document uploads; nil disables it.
	Idempotency echo.MiddlewareFunc
}

func Register(e *echo.Echo, r Routes) {
	e.GET("/health", r.Health.Health)
	e.GET("/metrics", r.Health.Metrics)

	e.POST("/login", r.Sessions.Login)
	e.POST("/verify", r.Verification.Verify)

	s := e.Group("/sessions/:session_id")
	s.GET("", r.Sessions.GetSession)
	s.POST("/submission", r.Sessions.Submit)
	s.DELETE("", r.Sessions.Close)

	upload := []echo.MiddlewareFunc{
		middleware.BodyLimit(strconv.FormatInt(r.Sessions.maxUpload+uploadOverhead, 10)),
	}
	if r.Idempotency != nil {
		upload = append(upload, r.Idempotency)
	}
	s.POST("/documents", r.Sessions.UploadDocument, upload...)
}
