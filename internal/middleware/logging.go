package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// AlgorithmLocal is the fiber local in which move handlers store the algorithm they used.
const AlgorithmLocal = "algorithm"

// Logging middleware that logs route, status code, response time and the search algorithm used.
func Logging() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} | ${path} | ${algorithm}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
		CustomTags: map[string]logger.LogFunc{
			"latency": func(output logger.Buffer, _ *fiber.Ctx, data *logger.Data, _ string) (int, error) {
				latency := float64(data.Stop.Sub(data.Start).Nanoseconds()) / float64(time.Millisecond)
				return fmt.Fprintf(output, "%8.1fms", latency)
			},
			AlgorithmLocal: func(output logger.Buffer, c *fiber.Ctx, _ *logger.Data, _ string) (int, error) {
				algorithm, ok := c.Locals(AlgorithmLocal).(string)
				if !ok {
					algorithm = "-"
				}
				return output.WriteString(algorithm)
			},
		},
	})
}
