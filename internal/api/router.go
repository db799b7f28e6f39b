package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/hirelane/ats/docs"
	"github.com/hirelane/ats/internal/api/handler"
	"github.com/hirelane/ats/internal/api/metrics"
	"github.com/hirelane/ats/internal/api/middleware"
	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
	"github.com/hirelane/ats/internal/infrastructure/http/handlers"
	"github.com/hirelane/ats/pkg/logger"
)

// Deps is everything the router needs. Mongo and Redis are optional and
// only feed the readiness probe.
type Deps struct {
	Log            zerolog.Logger
	JWTSecret      string
	AllowedOrigins []string

	Store handlers.VersionSource
	Mongo *mongo.Database
	Redis *redis.Client

	Auth          ports.AuthService
	Users         ports.UserService
	Clients       ports.ClientService
	Positions     ports.PositionService
	Candidates    ports.CandidateService
	Invoices      ports.InvoiceService
	Chat          ports.ChatService
	ChatHub       *handler.ChatHub
	Reports       ports.ReportService
	Notifications ports.NotificationService
}

// NewRouter builds and returns the Echo instance with all routes registered.
//
// @title                       Applicant Tracking API
// @version                     1.0
// @description                 Positions, candidates, invoices and chat for staff and client dashboards.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(metrics.Middleware())
	e.Use(middleware.AccessLog(d.Log))
	if len(d.AllowedOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: d.AllowedOrigins,
			AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, middleware.RequestIDHeader},
		}))
	}

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth)
	directoryHandler := handler.NewDirectoryHandler(d.Users, d.Clients)
	positionHandler := handler.NewPositionHandler(d.Positions)
	candidateHandler := handler.NewCandidateHandler(d.Candidates)
	invoiceHandler := handler.NewInvoiceHandler(d.Invoices)
	chatHandler := handler.NewChatHandler(d.Chat, d.ChatHub, d.AllowedOrigins, logger.Component(d.Log, "chat"))
	reportHandler := handler.NewReportHandler(d.Reports, d.Notifications)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)

	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Store, d.Mongo, d.Redis)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusTemporaryRedirect, "/swagger/index.html")
	})

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(d.JWTSecret, d.Auth))
	superOnly := middleware.RBAC(domain.RoleSuperAdmin)

	v1.GET("/me", authHandler.Me)

	v1.GET("/users", directoryHandler.ListUsers, superOnly)
	v1.POST("/users", directoryHandler.CreateUser, superOnly)
	v1.PUT("/users/:id/active", directoryHandler.SetUserActive, superOnly)

	v1.GET("/clients", directoryHandler.ListClients)
	v1.POST("/clients", directoryHandler.OnboardClient, superOnly)
	v1.PUT("/clients/:id/active", directoryHandler.SetClientActive, superOnly)

	v1.GET("/positions", positionHandler.List)
	v1.POST("/positions", positionHandler.Create)
	v1.PUT("/positions/:id", positionHandler.Update)
	v1.PUT("/positions/:id/status", positionHandler.SetStatus)
	v1.POST("/positions/:id/toggle", positionHandler.Toggle)
	v1.DELETE("/positions/:id", positionHandler.Delete)

	v1.GET("/candidates", candidateHandler.List)
	v1.POST("/candidates", candidateHandler.Upload)
	v1.PUT("/candidates/:id/status", candidateHandler.SetStatus)
	v1.PUT("/candidates/:id/notes", candidateHandler.Annotate)
	v1.POST("/candidates/:id/rejection-notice", candidateHandler.ResendRejection)

	v1.GET("/invoices", invoiceHandler.List)
	v1.POST("/invoices", invoiceHandler.Generate, superOnly)
	v1.PUT("/invoices/:id/status", invoiceHandler.SetStatus, superOnly)

	v1.GET("/chat/inbox", chatHandler.Inbox)
	v1.GET("/chat/stream", chatHandler.Stream)
	v1.GET("/chat/:peer_id", chatHandler.Conversation)
	v1.POST("/chat/:peer_id", chatHandler.Send)

	v1.GET("/reports/summary", reportHandler.Summary)
	v1.GET("/notifications", reportHandler.Notifications, superOnly)

	return e
}
