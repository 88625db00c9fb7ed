package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/cubello/internal/middleware"
	"github.com/lk16/cubello/internal/models"
	"github.com/lk16/cubello/internal/repository"
	"github.com/lk16/cubello/internal/services"
)

// AIMove computes a move for the requested board and player.
func AIMove(c *fiber.Ctx) error {
	var req models.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	board, player, err := req.Validate()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	services := c.Locals("services").(*services.Services) //nolint: errcheck
	decision := services.Engine.DecideMove(board, player)

	c.Locals(middleware.AlgorithmLocal, decision.Algorithm)

	record := repository.NewDecisionRecord(board, player, decision)

	repo := repository.NewDecisionRepository(c)
	if err = repo.SaveDecision(c.Context(), record); err != nil {
		slog.Error("Failed to save decision", "id", record.ID, "error", err)
	}

	return c.Status(fiber.StatusOK).JSON(record.Response())
}
