package offers

import (
	"bytes"
	"io"

	"hookmap/core/engine"
	"hookmap/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for marketplace listings.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the offers routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/offers")
	group.Get("/:account", h.HandleMatches)
	group.Post("/:account/import", h.HandleImport)
	group.Delete("/:account", h.HandleClear)
}

// HandleImport ingests a marketplace CSV export for one account. The file
// comes either as a multipart "file" part or as the raw request body.
// @Summary Import Listings
// @Description Upserts listings from a CSV export keyed on (account, external id). Listings absent from the file are retained.
// @Tags offers
// @Accept mpfd
// @Produce json
// @Param account path string true "Marketplace account"
// @Param file formData file false "CSV export"
// @Success 200 {object} ImportStats
// @Failure 400 {object} map[string]string
// @Router /offers/{account}/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	account := engine.Account(c.Params("account"))

	var reader io.Reader
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot open uploaded file"})
		}
		defer f.Close()
		reader = f
	} else {
		reader = bytes.NewReader(c.Body())
	}

	stats, err := h.service.Import(c.Context(), account, reader)
	if err != nil {
		if !engine.ValidAccount(account) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		logger.WithRayID(h.service.logger, c).Error("Import failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stats)
}

// HandleMatches returns the account's listings matched against the catalog.
// @Summary Get Matched Listings
// @Description Returns listings with their match status (unmapped, duplicate, mapped), filterable by status and free-text search, sortable by any column.
// @Tags offers
// @Produce json
// @Param account path string true "Marketplace account"
// @Param status query string false "Filter by match status"
// @Param search query string false "Case-insensitive substring search"
// @Param sort query string false "Sort key (title, price, qty, external_id, external_model, external_wiring)"
// @Param desc query bool false "Sort descending"
// @Success 200 {array} engine.MatchedListing
// @Router /offers/{account} [get]
func (h *Handler) HandleMatches(c *fiber.Ctx) error {
	account := engine.Account(c.Params("account"))
	q := MatchQuery{
		Status: engine.MatchStatus(c.Query("status")),
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
		Desc:   c.QueryBool("desc"),
	}
	items, err := h.service.Matches(c.Context(), account, q)
	if err != nil {
		if !engine.ValidAccount(account) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		logger.WithRayID(h.service.logger, c).Error("Match query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(items)
}

// HandleClear removes every stored listing of one account.
// @Summary Clear Account Listings
// @Tags offers
// @Param account path string true "Marketplace account"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /offers/{account} [delete]
func (h *Handler) HandleClear(c *fiber.Ctx) error {
	account := engine.Account(c.Params("account"))
	if err := h.service.ClearAccount(c.Context(), account); err != nil {
		if !engine.ValidAccount(account) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		logger.WithRayID(h.service.logger, c).Error("Clear listings failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
