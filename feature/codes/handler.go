package codes

import (
	"errors"

	"codesync/core/logger"
	"codesync/core/reconcile"
	"codesync/core/snapshot"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for code operations.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the code routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/codes")
	group.Get("/export", h.HandleExport)
	group.Post("/export", h.HandleExportSave)
	group.Post("/import", h.HandleImport)
	group.Get("/snapshots", h.HandleListSnapshots)

	app.Post("/names/derive", h.HandleDeriveNames)
}

// HandleExport returns the catalog's codes as a snapshot document.
// @Summary Export Codes
// @Description Lists every element type with a non-empty code.
// @Tags codes
// @Produce json
// @Param parameter query string false "Code parameter name"
// @Success 200 {array} snapshot.TypeRecord "Snapshot"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /codes/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	records, err := h.service.Records(c.Context(), c.Query("parameter"))
	if err != nil {
		l.Error("Export failed", zap.Error(err))
		return errorResponse(c, err)
	}
	return c.JSON(records)
}

// HandleExportSave writes the catalog's codes to the snapshot store.
// @Summary Save Export
// @Tags codes
// @Produce json
// @Param name query string false "Snapshot name"
// @Success 200 {object} map[string]interface{} "Saved snapshot"
// @Router /codes/export [post]
func (h *Handler) HandleExportSave(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	name := c.Query("name")
	if name != "" {
		if err := snapshot.CheckName(name); err != nil {
			return errorResponse(c, err)
		}
	}

	name, count, err := h.service.Export(c.Context(), name, c.Query("parameter"))
	if err != nil {
		l.Error("Export failed", zap.Error(err))
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"snapshot": name,
		"records":  count,
	})
}

// HandleListSnapshots lists the stored snapshot names.
// @Summary List Snapshots
// @Tags codes
// @Produce json
// @Success 200 {object} map[string]interface{} "Snapshot names"
// @Router /codes/snapshots [get]
func (h *Handler) HandleListSnapshots(c *fiber.Ctx) error {
	names, err := h.service.Snapshots(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Listing snapshots failed", zap.Error(err))
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"snapshots": names,
		"count":     len(names),
	})
}

// HandleImport applies a snapshot to the catalog. The snapshot comes from the
// store when ?snapshot is set, otherwise from the request body.
// @Summary Import Codes
// @Tags codes
// @Accept json
// @Produce json
// @Param snapshot query string false "Stored snapshot name"
// @Param dry_run query bool false "Roll back instead of committing"
// @Success 200 {object} map[string]interface{} "Summary"
// @Failure 400 {object} map[string]string "Invalid snapshot"
// @Failure 404 {object} map[string]string "Snapshot not found"
// @Router /codes/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	opts := reconcile.Options{
		Parameter: c.Query("parameter"),
		DryRun:    c.QueryBool("dry_run", false),
		Logger:    l,
	}

	var (
		summary *reconcile.Summary
		err     error
	)
	if name := c.Query("snapshot"); name != "" {
		if err := snapshot.CheckName(name); err != nil {
			return errorResponse(c, err)
		}
		summary, err = h.service.Import(c.Context(), name, opts)
	} else {
		records, decodeErr := snapshot.Decode(snapshot.FormatJSON, c.Body())
		if decodeErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": decodeErr.Error()})
		}
		summary, err = h.service.ImportRecords(c.Context(), records, opts)
	}
	if err != nil {
		l.Error("Import failed", zap.Error(err))
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  StatusSucceeded,
		"summary": summary,
	})
}

// HandleDeriveNames composes full names on every instance.
// @Summary Derive Names
// @Tags names
// @Produce json
// @Param target query string false "Target instance parameter"
// @Param dry_run query bool false "Roll back instead of committing"
// @Success 200 {object} map[string]interface{} "Summary"
// @Router /names/derive [post]
func (h *Handler) HandleDeriveNames(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	summary, err := h.service.DeriveNames(c.Context(), NameOptions{
		Target: c.Query("target"),
		DryRun: c.QueryBool("dry_run", false),
		Logger: l,
	})
	if err != nil {
		l.Error("Name derivation failed", zap.Error(err))
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  StatusSucceeded,
		"summary": summary,
	})
}

func errorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, reconcile.ErrInvalidSnapshot), errors.Is(err, snapshot.ErrInvalidName):
		status = fiber.StatusBadRequest
	case errors.Is(err, snapshot.ErrNotFound):
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{
		"status": StatusOf(err),
		"error":  err.Error(),
	})
}
