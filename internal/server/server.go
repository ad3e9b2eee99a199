package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"fitboks/internal/auth"
	"fitboks/internal/booking"
	"fitboks/internal/box"
	"fitboks/internal/center"
	"fitboks/internal/config"
	"fitboks/internal/email"
	"fitboks/internal/payment"
	"fitboks/internal/report"
	"fitboks/internal/user"
	"fitboks/internal/workout"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	userRepo := user.NewRepository(db)
	boxRepo := box.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	centerRepo := center.NewRepository(db)
	reportRepo := report.NewRepository(db)

	userHandler := user.NewHandler(user.NewService(userRepo, cfg.JWTSecret, emailService))
	boxHandler := box.NewHandler(box.NewService(boxRepo, bookingRepo))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, userRepo, emailService))
	centerHandler := center.NewHandler(centerRepo)
	reportHandler := report.NewHandler(reportRepo)
	paymentHandler := payment.NewHandler(payment.NewService(cfg.StripeSecretKey))
	workoutHandler := workout.NewHandler(workout.NewRepository(db), cfg.WorkoutSeedFile)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.PUT("/profile", userHandler.UpdateProfile)
		protected.PUT("/profile/password", userHandler.ChangePassword)
		protected.GET("/centers", centerHandler.List)
		protected.GET("/centers/:centerID", centerHandler.Get)
		protected.GET("/centers/:centerID/boxes", boxHandler.List)
		protected.GET("/centers/:centerID/availability", boxHandler.Availability)
		protected.POST("/bookings", bookingHandler.Create)
		protected.GET("/bookings", bookingHandler.ListMine)
		protected.DELETE("/bookings/:bookingID", bookingHandler.Cancel)
		protected.POST("/payments/intent", paymentHandler.CreateIntent)
		protected.GET("/workouts", workoutHandler.List)
	}

	adminMiddleware := auth.RequireRole("admin")
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("/stats", reportHandler.Stats)
		admin.GET("/users", userHandler.ListMembers)
		admin.PUT("/users/membership", userHandler.UpdateMembership)
		admin.DELETE("/users/:userID", userHandler.DeleteUser)
		admin.GET("/bookings/:bookingID", bookingHandler.Detail)
		admin.GET("/centers/:centerID/boxes/:boxID/week", boxHandler.Week)
		admin.PUT("/boxes/status", boxHandler.UpdateStatus)
		admin.POST("/boxes", boxHandler.Create)
		admin.POST("/centers", centerHandler.Create)
		admin.POST("/workouts/load", workoutHandler.Load)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the gin engine for handler-level tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
