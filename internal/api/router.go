package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/newsgpt/newsgpt-api/docs"
	"github.com/newsgpt/newsgpt-api/internal/api/cookies"
	"github.com/newsgpt/newsgpt-api/internal/api/handler"
	"github.com/newsgpt/newsgpt-api/internal/api/middleware"
	"github.com/newsgpt/newsgpt-api/internal/core/ports"
	"github.com/newsgpt/newsgpt-api/pkg/logger"
)

// Dependencies is everything the HTTP layer needs from the composition root.
type Dependencies struct {
	Log          zerolog.Logger
	ExposeErrors bool
	CORSOrigins  []string
	Cookies      cookies.Policy

	Tokens ports.TokenService
	Users  middleware.UserLookup

	Auth      ports.AuthService
	Articles  ports.ArticleService
	Summaries ports.SummaryService
	Admin     ports.AdminService

	// AuthLimiter throttles signup and login. Nil disables throttling.
	AuthLimiter *middleware.RateLimiter
	Health      []handler.DependencyCheck

	// Registry receives the HTTP metrics; nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.ExposeErrors)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestScopedLogger(d.Log))
	// Metrics wrap the logger so they observe the status written by the
	// error handler.
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "newsgpt",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
	}))

	session := middleware.Session(middleware.SessionConfig{
		Tokens:  d.Tokens,
		Users:   d.Users,
		Cookies: d.Cookies,
		Log:     d.Log,
	})
	requireAdmin := middleware.RequireAdmin(d.Users)

	var limited []echo.MiddlewareFunc
	if d.AuthLimiter != nil {
		limited = append(limited, d.AuthLimiter.Middleware())
	}

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Cookies)
	auth := e.Group("/auth")
	auth.POST("/signup", authHandler.Signup, limited...)
	auth.POST("/login", authHandler.Login, limited...)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, middleware.AccessOnly(d.Tokens))
	auth.PUT("/me", authHandler.UpdateMe, session)

	// --- Article routes ---
	articleHandler := handler.NewArticleHandler(d.Articles)
	article := e.Group("/article")
	article.POST("", articleHandler.Create, session)
	article.GET("", articleHandler.ListMine, session)
	article.GET("/user/:userId", articleHandler.ListByUser, session)
	article.GET("/:id", articleHandler.Get)
	article.PUT("/:id", articleHandler.Update, session)
	article.DELETE("/:id", articleHandler.Delete, session)

	// --- Summary routes ---
	summaryHandler := handler.NewSummaryHandler(d.Summaries)
	summary := e.Group("/summary", session)
	summary.POST("", summaryHandler.Create)
	summary.GET("/user/:userId", summaryHandler.ListByUser)
	summary.GET("/:id", summaryHandler.Get)
	summary.DELETE("/:id", summaryHandler.Delete)

	// --- Admin routes ---
	adminHandler := handler.NewAdminHandler(d.Admin)
	admin := e.Group("/admin", session)
	admin.POST("/make-admin/:userId", adminHandler.Promote)
	admin.GET("/stats", adminHandler.Stats, requireAdmin)
	admin.GET("/articles", adminHandler.ListArticles, requireAdmin)
	admin.GET("/summaries", adminHandler.ListSummaries, requireAdmin)
	admin.DELETE("/article/:id", adminHandler.DeleteArticle, requireAdmin)
	admin.DELETE("/summary/:id", adminHandler.DeleteSummary, requireAdmin)

	// --- Health checks, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Health...)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health" || c.Request().URL.Path == "/metrics"
		},
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				ev = log.Error().Err(v.Error)
			case v.Error != nil:
				ev = log.Warn().Err(v.Error)
			}
			ev.Str(logger.RequestIDField, v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

// requestScopedLogger stores a request-id tagged logger in the request
// context. It must run after RequestID has set the response header.
func requestScopedLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithRequest(log, rid).WithContext(req.Context())))
			return next(c)
		}
	}
}
