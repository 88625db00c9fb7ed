package version

import (
	"os/exec"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/cubello/internal/models"
)

var loadVersion = sync.OnceValue(func() models.VersionResponse {
	// Binaries built from a git checkout carry the commit in their build info.
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				return models.VersionResponse{Commit: setting.Value}
			}
		}
	}

	output, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		return models.VersionResponse{Commit: "unknown"}
	}
	return models.VersionResponse{Commit: strings.TrimSpace(string(output))}
})

func SetupRoutes(app *fiber.App) {
	versionGroup := app.Group("/version")
	versionGroup.Get("/", versionHandler)
}

func versionHandler(c *fiber.Ctx) error {
	return c.JSON(loadVersion())
}
