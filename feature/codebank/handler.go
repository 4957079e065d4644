package codebank

import (
	"errors"

	"hookmap/core/logger"
	"hookmap/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the code bank.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the code-bank routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/bank")
	group.Get("/conflicts", h.HandleConflicts)
	group.Get("/:model", h.HandleBank)
	group.Post("/:model/codes", h.HandlePaste)
	group.Delete("/:model/codes/:code", h.HandleRemove)
	group.Delete("/:model", h.HandleClear)
}

// HandleBank returns a model's banked codes and the assignable remainder.
// @Summary Get Model Bank
// @Tags bank
// @Produce json
// @Param model path string true "Model code"
// @Success 200 {object} ModelBank
// @Router /bank/{model} [get]
func (h *Handler) HandleBank(c *fiber.Ctx) error {
	return c.JSON(h.service.Bank(c.Params("model")))
}

type pasteRequest struct {
	Codes string `json:"codes"`
}

// HandlePaste ingests a bulk paste of product codes for a model.
// @Summary Paste Product Codes
// @Description Splits the paste on whitespace, commas and semicolons, banks the valid new codes and reports skipped and conflicting ones.
// @Tags bank
// @Accept json
// @Produce json
// @Param model path string true "Model code"
// @Param body body pasteRequest true "Raw paste"
// @Success 200 {object} PasteResult
// @Failure 400 {object} map[string]string
// @Router /bank/{model}/codes [post]
func (h *Handler) HandlePaste(c *fiber.Ctx) error {
	var req pasteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	result, err := h.service.AddCodes(c.Context(), c.Params("model"), req.Codes)
	if err != nil {
		if errors.Is(err, catalog.ErrEmptyModelCode) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		logger.WithRayID(h.service.logger, c).Error("Paste failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// HandleRemove removes one banked code from a model.
// @Summary Remove Banked Code
// @Tags bank
// @Param model path string true "Model code"
// @Param code path string true "Product code"
// @Success 204
// @Router /bank/{model}/codes/{code} [delete]
func (h *Handler) HandleRemove(c *fiber.Ctx) error {
	if err := h.service.RemoveCode(c.Context(), c.Params("model"), c.Params("code")); err != nil {
		logger.WithRayID(h.service.logger, c).Error("Remove code failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleClear removes every banked code of a model.
// @Summary Clear Model Bank
// @Tags bank
// @Param model path string true "Model code"
// @Success 204
// @Router /bank/{model} [delete]
func (h *Handler) HandleClear(c *fiber.Ctx) error {
	if err := h.service.ClearModel(c.Context(), c.Params("model")); err != nil {
		logger.WithRayID(h.service.logger, c).Error("Clear bank failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleConflicts lists codes banked under more than one model.
// @Summary List Bank Conflicts
// @Tags bank
// @Produce json
// @Success 200 {array} engine.BankConflict
// @Router /bank/conflicts [get]
func (h *Handler) HandleConflicts(c *fiber.Ctx) error {
	return c.JSON(h.service.Conflicts())
}
