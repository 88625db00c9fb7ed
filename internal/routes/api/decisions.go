package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/cubello/internal/repository"
)

// errorStatus maps repository errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotConfigured):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, repository.ErrDecisionNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// GetStats returns the number of decisions per algorithm.
func GetStats(c *fiber.Ctx) error {
	repo := repository.NewDecisionRepository(c)
	stats, err := repo.GetStats(c.Context())
	if err != nil {
		return c.Status(errorStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

// GetDecision returns a logged decision.
func GetDecision(c *fiber.Ctx) error {
	repo := repository.NewDecisionRepository(c)
	record, err := repo.GetDecision(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(errorStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(record)
}
