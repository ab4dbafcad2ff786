package schedule

import (
	"rinksync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the schedule feature.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logg *zap.Logger) *Handler {
	if logg == nil {
		logg = zap.NewNop()
	}
	return &Handler{service: service, logger: logg}
}

// RegisterRoutes registers the schedule routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/schedule")
	group.Get("/status", h.HandleStatus)
	group.Get("/runs", h.HandleRuns)
	group.Post("/sync", h.HandleSync)
}

// HandleStatus returns the summary of the most recent run in this
// process, or an idle placeholder when none has happened yet.
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	last := h.service.Last()
	if last == nil {
		return c.JSON(fiber.Map{"status": "idle"})
	}
	return c.JSON(last)
}

// HandleRuns returns persisted run history, most recent first. Without
// a database the list is empty, never an error.
func (h *Handler) HandleRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	limit := c.QueryInt("limit", 50)
	records, err := h.service.Runs(c.Context(), limit)
	if err != nil {
		l.Error("run history query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"runs": records})
}

// HandleSync triggers a reconciliation run. Concurrent requests and an
// overlapping cron tick coalesce into one run.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	summary, err := h.service.Run(c.Context(), "manual")
	if err != nil {
		l.Error("manual run failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(summary)
	}
	return c.JSON(summary)
}
