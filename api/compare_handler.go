package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	apicompare "github.com/alignlab/simcor/api/compare"
	"github.com/alignlab/simcor/pkg/labmatrix"
)

// handleCompare handles POST /v1/compare requests.
// The body is an apicompare.Input: two named, labeled square matrices
// and an optional absolute flag. The resulting report is persisted and
// returned.
func (s *Server) handleCompare(c *fiber.Ctx) error {
	input := &apicompare.Input{}
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid request body",
		})
	}

	if len(input.A.Labels) == 0 || len(input.B.Labels) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "both matrices require labels and rows",
		})
	}

	output, err := apicompare.Compare(
		c.Context(),
		input,
		s.storer,
		s.config.Publisher,
		s.logger,
	)
	if err != nil {
		if isInputError(err) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
				Error: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}

	return c.JSON(output)
}

// isInputError reports whether err stems from the request's matrices
// rather than from the server.
func isInputError(err error) bool {
	for _, target := range []error{
		labmatrix.ErrNotSquare,
		labmatrix.ErrDuplicateLabel,
		labmatrix.ErrEmptyIntersection,
		labmatrix.ErrLengthMismatch,
		labmatrix.ErrTooFewValues,
		labmatrix.ErrZeroVariance,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
