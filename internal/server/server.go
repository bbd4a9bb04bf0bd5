package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/raihansarker4343/exchange/internal/auth"
	"github.com/raihansarker4343/exchange/internal/config"
	"github.com/raihansarker4343/exchange/internal/registry"
	"github.com/raihansarker4343/exchange/internal/transaction"
	"github.com/raihansarker4343/exchange/internal/user"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, cache *registry.Cache) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	userHandler := user.NewHandler(db, cfg.JWTSecret)
	registryHandler := registry.NewHandler(db, cache)
	trxHandler := transaction.NewHandler(db)

	authGroup := router.Group("/api/auth")
	authGroup.Use(RateLimitMiddleware(5, 10))
	{
		authGroup.POST("/register", userHandler.Register)
		authGroup.POST("/login", userHandler.Login)
	}

	configGroup := router.Group("/api/config")
	{
		configGroup.GET("/rates", registryHandler.ListRates)
		configGroup.GET("/methods", registryHandler.ListMethods)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)

	protected := router.Group("/api/transactions")
	protected.Use(authMiddleware)
	{
		protected.POST("/submit", trxHandler.Submit)
		protected.GET("/my", trxHandler.ListMine)
	}

	adminMiddleware := auth.RequireRole(auth.RoleAdmin)

	adminConfig := router.Group("/api/config")
	adminConfig.Use(authMiddleware, adminMiddleware)
	{
		adminConfig.PUT("/rates", registryHandler.UpdateRates)
		adminConfig.POST("/rates", registryHandler.CreateRate)
		adminConfig.PUT("/methods", registryHandler.UpdateMethods)
	}

	admin := router.Group("/api/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("/transactions", trxHandler.ListAll)
		admin.PUT("/transactions/:id/status", trxHandler.UpdateStatus)
		admin.GET("/users", userHandler.ListUsers)
		admin.PUT("/users/:id/toggle", userHandler.ToggleActive)
		admin.GET("/stats", trxHandler.GetStats)
	}

	registerSystemRoutes(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
