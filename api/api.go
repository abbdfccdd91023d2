package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/alignlab/simcor/pkg/storage"
)

// Server is the API server for managing and querying the simcor system
type Server struct {
	config Config
	storer storage.Driver
	logger *zap.Logger
	app    *fiber.App
}

// NewServer creates a new API server.
// The storer is injected to allow sharing with other components
// (e.g., CLI commands writing reports to the same backend).
func NewServer(config Config, storer storage.Driver, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config: config,
		storer: storer,
		logger: logger,
		app:    app,
	}

	app.Get("/ping", s.handlePing)
	app.Post("/v1/compare", s.handleCompare)
	app.Get("/v1/reports", s.handleListReports)
	app.Get("/v1/reports/:id", s.handleGetReport)

	return s
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
