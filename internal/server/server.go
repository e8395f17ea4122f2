package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"authserver/internal/config"
	"authserver/internal/handler"
	"authserver/internal/middleware"
	"authserver/internal/repository"
	"authserver/internal/service"
	"authserver/internal/token"
	"authserver/internal/weather_client"
)

type Server struct {
	router *gin.Engine
	log    *zap.Logger
	port   string
}

func NewServer(cfg *config.Config, registry repository.UserRegistry, weatherClient *weather_client.Client, log *zap.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router: router,
		log:    log,
		port:   cfg.Server.Port,
	}

	s.setupRoutes(cfg, registry, weatherClient)
	return s
}

func (s *Server) setupRoutes(cfg *config.Config, registry repository.UserRegistry, weatherClient *weather_client.Client) {
	issuer := token.NewIssuer(cfg.Auth.Secret)
	authService := service.NewAuthService(registry, issuer, s.log)
	authHandler := handler.NewAuthHandler(authService, s.log)
	usersHandler := handler.NewUsersHandler(authService, s.log)
	weatherHandler := handler.NewWeatherHandler(weatherClient, s.log)

	s.router.Use(middleware.RequestID())

	// Health checks
	s.router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	s.router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	// Public authentication routes
	s.router.POST("/login", authHandler.Login)
	s.router.POST("/register", authHandler.Register)

	// Token-guarded routes
	authorized := s.router.Group("/")
	authorized.Use(middleware.Auth(issuer, s.log))
	{
		authorized.GET("/users", middleware.RequirePermissions("admin"), usersHandler.List)
		authorized.DELETE("/users/:username", middleware.RequirePermissions("admin"), usersHandler.Delete)
		authorized.GET("/weather/:city", weatherHandler.City)
	}
}

// Handler exposes the route tree for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run() error {
	s.log.Info("Server starting", zap.String("port", s.port))
	return s.router.Run(s.port)
}
