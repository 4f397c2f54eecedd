package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	httpHandlers "github.com/teamboard/core/internal/adapters/http"
	"github.com/teamboard/core/internal/infrastructure/app"
	"github.com/teamboard/core/internal/infrastructure/config"
	"github.com/teamboard/core/internal/infrastructure/database"
	"github.com/teamboard/core/internal/infrastructure/logger"
)

// Server represents the HTTP server
type Server struct {
	echo     *echo.Echo
	config   *config.Config
	logger   *logger.Logger
	services *app.Services
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns the request validator used by the server
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, svc *app.Services, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	e.Validator = NewValidator()

	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = customErrorHandler(appLogger)

	server := &Server{
		echo:     e,
		config:   cfg,
		logger:   appLogger,
		services: svc,
	}

	server.setupMiddleware()

	// Metrics wrap every route, so they are registered before the routes
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	server.setupRoutes()

	return server, nil
}

// Handler exposes the configured echo instance
func (s *Server) Handler() http.Handler {
	return s.echo
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())

	s.echo.Use(middleware.RequestID())

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			reqLogger := s.logger.WithRequestID(values.RequestID)
			latency := float64(values.Latency.Nanoseconds()) / 1000000
			if values.Error != nil {
				reqLogger.WithError(values.Error).Errorw("HTTP request failed",
					"method", values.Method,
					"uri", values.URI,
					"status", values.Status,
					"latency_ms", latency,
				)
				return nil
			}
			reqLogger.LogHTTPRequest(values.Method, values.URI, values.UserAgent, values.RemoteIP, values.Status, latency)
			return nil
		},
	}))

	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, httpHandlers.HeaderClientID},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	if s.config.Security.RateLimitRequests > 0 {
		s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(
				middleware.RateLimiterMemoryStoreConfig{
					Rate:      rate.Limit(float64(s.config.Security.RateLimitRequests) / s.config.Security.RateLimitWindow.Seconds()),
					Burst:     s.config.Security.RateLimitRequests,
					ExpiresIn: s.config.Security.RateLimitWindow,
				},
			),
			IdentifierExtractor: func(ctx echo.Context) (string, error) {
				return ctx.RealIP(), nil
			},
			ErrorHandler: func(context echo.Context, err error) error {
				return context.JSON(http.StatusForbidden, httpHandlers.ErrorResponse{Error: "rate limit exceeded"})
			},
			DenyHandler: func(context echo.Context, identifier string, err error) error {
				return context.JSON(http.StatusTooManyRequests, httpHandlers.ErrorResponse{Error: "rate limit exceeded"})
			},
		}))
	}

	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}))

	s.echo.Use(clientIDMiddleware())

	if s.config.Server.RequestTimeout > 0 {
		s.echo.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Timeout: s.config.Server.RequestTimeout,
		}))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	svc := s.services

	memberHandler := httpHandlers.NewMemberHandler(svc.Members, svc.Session, s.logger)
	taskHandler := httpHandlers.NewTaskHandler(svc.Tasks, svc.Session, s.logger)
	kpiHandler := httpHandlers.NewKPIHandler(svc.KPIs, svc.Reels, s.logger)
	meetingHandler := httpHandlers.NewMeetingHandler(svc.Meetings, svc.Session, s.logger)
	ideaHandler := httpHandlers.NewIdeaHandler(svc.Ideas, svc.Session, s.logger)
	overviewHandler := httpHandlers.NewOverviewHandler(svc.Dashboard, svc.Calendar, svc.Reports, s.logger)

	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readinessCheck)
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded files
	s.echo.Static(s.config.Storage.PublicBaseURL, svc.Files.Root())

	upload := middleware.BodyLimit(fmt.Sprintf("%dM", s.config.Storage.MaxUploadMB))
	confirm := requireConfirmation()

	v1 := s.echo.Group("/api/v1")

	members := v1.Group("/members")
	members.GET("", memberHandler.ListMembers)
	members.POST("", memberHandler.CreateMember)
	members.DELETE("/:id", memberHandler.DeleteMember, confirm)

	session := v1.Group("/session")
	session.GET("/member", memberHandler.GetCurrentMember)
	session.PUT("/member", memberHandler.SetCurrentMember)

	tasks := v1.Group("/tasks")
	tasks.GET("", taskHandler.ListTasks)
	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("/deadlines", taskHandler.GetDeadlines)
	tasks.GET("/overdue", taskHandler.GetOverdue)
	tasks.GET("/:id", taskHandler.GetTask)
	tasks.PUT("/:id", taskHandler.UpdateTask)
	tasks.PATCH("/:id", taskHandler.UpdateTask)
	tasks.PATCH("/:id/status", taskHandler.UpdateTaskStatus)
	tasks.DELETE("/:id", taskHandler.DeleteTask, confirm)
	tasks.POST("/:id/files", taskHandler.AttachFile, upload)
	tasks.GET("/:id/comments", taskHandler.ListComments)
	tasks.POST("/:id/comments", taskHandler.AddComment)
	tasks.GET("/:id/activity", taskHandler.ListActivity)

	kpis := v1.Group("/kpis")
	kpis.GET("", kpiHandler.ListKPIs)
	kpis.POST("", kpiHandler.CreateKPI)
	kpis.GET("/summary", kpiHandler.GetKPISummary)
	kpis.GET("/:id", kpiHandler.GetKPI)
	kpis.PUT("/:id", kpiHandler.UpdateKPI)
	kpis.DELETE("/:id", kpiHandler.DeleteKPI, confirm)

	reels := v1.Group("/reels")
	reels.GET("", kpiHandler.ListReels)
	reels.POST("", kpiHandler.CreateReel)
	reels.GET("/summary", kpiHandler.GetReelSummary)
	reels.GET("/:id", kpiHandler.GetReel)
	reels.PUT("/:id", kpiHandler.UpdateReel)
	reels.DELETE("/:id", kpiHandler.DeleteReel, confirm)

	meetings := v1.Group("/meetings")
	minutes := meetings.Group("/minutes")
	minutes.GET("", meetingHandler.ListMinutes)
	minutes.POST("", meetingHandler.CreateMinutes)
	minutes.GET("/:id", meetingHandler.GetMinutes)
	minutes.PUT("/:id", meetingHandler.UpdateMinutes)
	minutes.DELETE("/:id", meetingHandler.DeleteMinutes, confirm)

	agendas := meetings.Group("/agendas")
	agendas.GET("", meetingHandler.ListAgendas)
	agendas.POST("", meetingHandler.CreateAgenda)
	agendas.GET("/current", meetingHandler.GetCurrentAgenda)
	agendas.GET("/:id", meetingHandler.GetAgenda)
	agendas.PUT("/:id", meetingHandler.UpdateAgenda)
	agendas.DELETE("/:id", meetingHandler.DeleteAgenda, confirm)

	ideas := v1.Group("/ideas")
	ideas.GET("", ideaHandler.ListIdeas)
	ideas.POST("", ideaHandler.CreateIdea)
	ideas.GET("/:id", ideaHandler.GetIdea)
	ideas.PUT("/:id", ideaHandler.UpdateIdea)
	ideas.DELETE("/:id", ideaHandler.DeleteIdea, confirm)
	ideas.POST("/:id/image", ideaHandler.UploadImage, upload)
	ideas.GET("/:id/comments", ideaHandler.ListComments)
	ideas.POST("/:id/comments", ideaHandler.AddComment)
	ideas.DELETE("/:id/comments/:commentId", ideaHandler.DeleteComment, confirm)

	v1.GET("/dashboard", overviewHandler.GetDashboard)
	v1.GET("/calendar", overviewHandler.GetCalendar)
	v1.GET("/calendar/:date", overviewHandler.GetCalendarDay)
	v1.GET("/reports", overviewHandler.GetReport)
	v1.GET("/reports/text", overviewHandler.GetReportText)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				}
			}

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(time.Since(start).Seconds())

			return err
		}
	})

	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET(s.config.Metrics.Path, echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.config.App.Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := database.HealthCheck(c.Request().Context(), s.services.Store); err != nil {
		s.logger.WithError(err).Warnw("Readiness check failed")
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "database_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)

	srv := &http.Server{
		Addr:         address,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}
	return s.echo.StartServer(srv)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  httpHandlers.ErrorResponse
			he   *echo.HTTPError
			verr validator.ValidationErrors
		)

		switch {
		case errors.As(err, &he):
			code = he.Code
			msg.Error = fmt.Sprint(he.Message)
			if he.Internal != nil && errors.As(he.Internal, &verr) {
				msg.Details = verr.Error()
			}
		case errors.As(err, &verr):
			code = http.StatusBadRequest
			msg = httpHandlers.ErrorResponse{Error: "validation failed", Details: verr.Error()}
		default:
			code = httpHandlers.StatusFor(err)
			msg.Error = http.StatusText(code)
			if code < http.StatusInternalServerError {
				msg.Error = err.Error()
			}
		}

		if code >= http.StatusInternalServerError {
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		if !c.Response().Committed {
			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}
