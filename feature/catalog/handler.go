package catalog

import (
	"errors"

	"hookmap/core/engine"
	"hookmap/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/snapshot", h.HandleSnapshot)
	group.Get("/report", h.HandleReport)
	group.Get("/models/:code/available", h.HandleAvailable)
	group.Post("/models", h.HandleAddModel)
	group.Patch("/models/:id", h.HandleUpdateModel)
	group.Delete("/models/:id", h.HandleDeleteModel)
	group.Post("/models/:id/vehicles", h.HandleAddVehicle)
	group.Patch("/vehicles/:id", h.HandleRenameVehicle)
	group.Delete("/vehicles/:id", h.HandleDeleteVehicle)
	group.Post("/vehicles/:id/duplicate", h.HandleDuplicateVehicle)
	group.Patch("/variants/:id", h.HandleUpdateVariant)
	group.Post("/variants/:id/assign-next", h.HandleAssignNext)
	group.Post("/variants/:id/duplicates", h.HandleAddDuplicate)
	group.Delete("/duplicates/:id", h.HandleDeleteDuplicate)
}

// HandleSnapshot returns the full catalog snapshot.
// @Summary Get Catalog Snapshot
// @Description Returns the full model/vehicle/variant tree with bank entries and duplicate-listing records.
// @Tags catalog
// @Produce json
// @Success 200 {object} engine.Snapshot
// @Router /catalog/snapshot [get]
func (h *Handler) HandleSnapshot(c *fiber.Ctx) error {
	return c.JSON(h.store.Snapshot())
}

// HandleReport returns the validation report for the current snapshot.
// @Summary Get Validation Report
// @Description Returns duplicate codes, bank conflicts, wrong-model assignments, missing-code gaps and aggregate stats.
// @Tags catalog
// @Produce json
// @Success 200 {object} engine.Report
// @Router /catalog/report [get]
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	return c.JSON(h.store.Engine().Validate())
}

// HandleAvailable returns the assignable code pool for a model.
// @Summary Get Available Codes
// @Tags catalog
// @Produce json
// @Param code path string true "Model code (canonical or short form)"
// @Success 200 {object} map[string]interface{}
// @Router /catalog/models/{code}/available [get]
func (h *Handler) HandleAvailable(c *fiber.Ctx) error {
	available := h.store.Engine().AvailableFor(c.Params("code"))
	return c.JSON(fiber.Map{"available": available, "count": len(available)})
}

type addModelRequest struct {
	Code  string `json:"code"`
	Notes string `json:"notes"`
}

// HandleAddModel creates a model.
// @Summary Add Model
// @Tags catalog
// @Accept json
// @Produce json
// @Param body body addModelRequest true "Model"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string "Validation rejected"
// @Router /catalog/models [post]
func (h *Handler) HandleAddModel(c *fiber.Ctx) error {
	var req addModelRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	row, err := h.store.AddModel(c.Context(), req.Code, req.Notes)
	if err != nil {
		if errors.Is(err, ErrEmptyModelCode) || errors.Is(err, ErrModelExists) {
			return badRequest(c, err.Error())
		}
		return h.internal(c, "Add model failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": row.ID, "code": row.Code})
}

// HandleUpdateModel updates a model's notes.
func (h *Handler) HandleUpdateModel(c *fiber.Ctx) error {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.store.UpdateModelNotes(c.Context(), c.Params("id"), req.Notes); err != nil {
		if errors.Is(err, ErrModelNotFound) {
			return notFound(c, err.Error())
		}
		return h.internal(c, "Update model failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDeleteModel removes a model with its vehicles and variants.
func (h *Handler) HandleDeleteModel(c *fiber.Ctx) error {
	if err := h.store.DeleteModel(c.Context(), c.Params("id")); err != nil {
		return h.internal(c, "Delete model failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAddVehicle creates a vehicle with its five wiring variants.
func (h *Handler) HandleAddVehicle(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	row, err := h.store.AddVehicle(c.Context(), c.Params("id"), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyName):
			return badRequest(c, err.Error())
		case errors.Is(err, ErrModelNotFound):
			return notFound(c, err.Error())
		}
		return h.internal(c, "Add vehicle failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": row.ID, "name": row.Name})
}

// HandleRenameVehicle updates a vehicle's display name.
func (h *Handler) HandleRenameVehicle(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.store.RenameVehicle(c.Context(), c.Params("id"), req.Name); err != nil {
		switch {
		case errors.Is(err, ErrEmptyName):
			return badRequest(c, err.Error())
		case errors.Is(err, ErrVehicleNotFound):
			return notFound(c, err.Error())
		}
		return h.internal(c, "Rename vehicle failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDeleteVehicle removes a vehicle and its variants.
func (h *Handler) HandleDeleteVehicle(c *fiber.Ctx) error {
	if err := h.store.DeleteVehicle(c.Context(), c.Params("id")); err != nil {
		return h.internal(c, "Delete vehicle failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDuplicateVehicle copies a vehicle under the same model.
func (h *Handler) HandleDuplicateVehicle(c *fiber.Ctx) error {
	row, err := h.store.DuplicateVehicle(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrVehicleNotFound) {
			return notFound(c, err.Error())
		}
		return h.internal(c, "Duplicate vehicle failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": row.ID, "name": row.Name})
}

type updateVariantRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
	// Active is honored when Field is "active".
	Active *bool `json:"active,omitempty"`
}

// HandleUpdateVariant applies a debounced field-level edit to a variant.
// @Summary Update Variant Field
// @Description Applies an optimistic, debounced field edit (code, price, duplicate_ref, listings:<account>, active).
// @Tags catalog
// @Accept json
// @Param id path string true "Variant ID"
// @Param body body updateVariantRequest true "Edit"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /catalog/variants/{id} [patch]
func (h *Handler) HandleUpdateVariant(c *fiber.Ctx) error {
	var req updateVariantRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	var err error
	if req.Field == "active" && req.Active != nil {
		err = h.store.SetVariantActive(c.Params("id"), *req.Active)
	} else {
		err = h.store.UpdateVariantField(c.Params("id"), req.Field, req.Value)
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownField):
			return badRequest(c, err.Error())
		case errors.Is(err, ErrVariantNotFound):
			return notFound(c, err.Error())
		}
		return h.internal(c, "Update variant failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAssignNext assigns the first available bank code to a variant.
// @Summary Assign Next Code
// @Description Sets the variant's code to the first available bank code for the model. Returns assigned=false when the pool is empty.
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "Variant ID"
// @Success 200 {object} map[string]interface{}
// @Router /catalog/variants/{id}/assign-next [post]
func (h *Handler) HandleAssignNext(c *fiber.Ctx) error {
	var req struct {
		Model string `json:"model"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	assigned, err := h.store.AssignNextCode(c.Params("id"), req.Model)
	if err != nil {
		if errors.Is(err, ErrVariantNotFound) {
			return notFound(c, err.Error())
		}
		return h.internal(c, "Assign next failed", err)
	}
	return c.JSON(fiber.Map{"assigned": assigned})
}

// HandleAddDuplicate creates a duplicate-listing record for a variant.
func (h *Handler) HandleAddDuplicate(c *fiber.Ctx) error {
	var req struct {
		Account    string `json:"account"`
		ExternalID string `json:"external_id"`
		Code       string `json:"code"`
		Notes      string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	row, err := h.store.AddDuplicateListing(c.Context(), c.Params("id"),
		engine.Account(req.Account), req.ExternalID, req.Code, req.Notes)
	if err != nil {
		if errors.Is(err, ErrVariantNotFound) {
			return notFound(c, err.Error())
		}
		return badRequest(c, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": row.ID})
}

// HandleDeleteDuplicate removes a duplicate-listing record.
func (h *Handler) HandleDeleteDuplicate(c *fiber.Ctx) error {
	if err := h.store.DeleteDuplicateListing(c.Context(), c.Params("id")); err != nil {
		return h.internal(c, "Delete duplicate failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) internal(c *fiber.Ctx, msg string, err error) error {
	logger.WithRayID(h.logger, c).Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msg})
}
