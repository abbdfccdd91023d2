package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/alignlab/simcor/pkg/storage"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleListReports returns all persisted comparison reports, newest first.
func (s *Server) handleListReports(c *fiber.Ctx) error {
	reports, err := s.storer.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to list reports"})
	}

	return c.JSON(map[string]any{
		"count":   len(reports),
		"reports": reports,
	})
}

// handleGetReport returns a single report by its ID.
func (s *Server) handleGetReport(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "id parameter required"})
	}

	rep, err := s.storer.Get(c.Context(), id)
	if err != nil {
		var notFound storage.NotFoundError
		if errors.As(err, &notFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "report not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to get report"})
	}

	return c.JSON(rep)
}
