package export

import (
	"hookmap/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for exports and backups.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the export routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/export")
	group.Get("/csv", h.HandleCSV)
	group.Get("/backups", h.HandleListBackups)
	group.Post("/backup", h.HandleBackup)
	group.Post("/restore", h.HandleRestore)
}

// HandleCSV streams the catalog as a semicolon-separated sheet.
// @Summary Export Catalog CSV
// @Tags export
// @Produce text/csv
// @Success 200 {string} string "CSV body"
// @Router /export/csv [get]
func (h *Handler) HandleCSV(c *fiber.Ctx) error {
	data, err := h.service.CSV()
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("CSV export failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="catalog.csv"`)
	return c.Send(data)
}

// HandleBackup uploads a dated JSON snapshot to object storage.
// @Summary Create Backup
// @Tags export
// @Produce json
// @Success 200 {object} map[string]string
// @Router /export/backup [post]
func (h *Handler) HandleBackup(c *fiber.Ctx) error {
	objName, err := h.service.Backup(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Backup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"object": objName})
}

// HandleListBackups lists the stored backup objects.
// @Summary List Backups
// @Tags export
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /export/backups [get]
func (h *Handler) HandleListBackups(c *fiber.Ctx) error {
	names, err := h.service.ListBackups(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("List backups failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"backups": names})
}

// HandleRestore replaces the catalog with a stored backup.
// @Summary Restore Backup
// @Description Replaces the whole catalog with the named backup object. Destructive.
// @Tags export
// @Accept json
// @Produce json
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /export/restore [post]
func (h *Handler) HandleRestore(c *fiber.Ctx) error {
	var req struct {
		Object string `json:"object"`
	}
	if err := c.BodyParser(&req); err != nil || req.Object == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "object name required"})
	}
	if err := h.service.Restore(c.Context(), req.Object); err != nil {
		logger.WithRayID(h.service.logger, c).Error("Restore failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
