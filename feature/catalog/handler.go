package catalog

import (
	"context"
	"errors"

	"kg-sync/core/kg"
	"kg-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Post("/sync", h.HandleSync)
	group.Post("/validate", h.HandleValidate)
	group.Get("/ids/product/:code", h.HandleProductID)
	group.Get("/reports", h.HandleListReports)
	group.Post("/entities", h.HandleCreateEntities)
	group.Put("/entities", h.HandleUpsertEntities)
	group.Patch("/entities", h.HandlePatchEntity)
	group.Delete("/entities", h.HandleDeleteEntity)
	group.Post("/entities/upgrade", h.HandleUpgradeEntity)
}

// ValidateRequest is the body of POST /catalog/validate.
type ValidateRequest struct {
	Documents []map[string]any `json:"documents"`
	Strict    bool             `json:"strict"`
}

// HandleSync pushes product records to the knowledge graph.
// @Summary Sync Products
// @Description Builds, validates and upserts product records. With incremental set, only changed fields of existing products are patched.
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body SyncRequest true "Records and run options"
// @Success 200 {object} SyncResult "Run result"
// @Failure 400 {object} map[string]string "Invalid body"
// @Failure 502 {object} map[string]string "Graph API failure"
// @Router /catalog/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req SyncRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	res, err := h.service.Sync(c.UserContext(), req)
	if err != nil {
		l.Error("Sync failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(res)
}

// HandleValidate validates JSON-LD documents.
// @Summary Validate Documents
// @Description Runs the structural validator over JSON-LD documents and returns per-entity results and a text report.
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body ValidateRequest true "Documents to validate"
// @Success 200 {object} ValidateResult "Validation result"
// @Failure 400 {object} map[string]string "Invalid body"
// @Router /catalog/validate [post]
func (h *Handler) HandleValidate(c *fiber.Ctx) error {
	var req ValidateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	return c.JSON(h.service.Validate(req.Documents, req.Strict))
}

// HandleProductID returns the identifier of a product.
// @Summary Product Identifier
// @Description Mints the Digital Link identifier for a GTIN, optionally qualified by serial and lot.
// @Tags catalog
// @Produce json
// @Param code path string true "GTIN-8, 12, 13 or 14"
// @Param serial query string false "Serial number"
// @Param lot query string false "Lot number"
// @Success 200 {object} map[string]string "Identifier"
// @Failure 400 {object} map[string]string "Invalid trade code"
// @Router /catalog/ids/product/{code} [get]
func (h *Handler) HandleProductID(c *fiber.Ctx) error {
	id, err := h.service.ProductID(c.Params("code"), c.Query("serial"), c.Query("lot"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"id": id})
}

// HandleDeleteEntity removes an entity.
// @Summary Delete Entity
// @Description Deletes an entity from the knowledge graph.
// @Tags catalog
// @Param id query string true "Entity IRI"
// @Success 204 "Deleted"
// @Failure 400 {object} map[string]string "Invalid IRI"
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 502 {object} map[string]string "Graph API failure"
// @Router /catalog/entities [delete]
func (h *Handler) HandleDeleteEntity(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id := c.Query("id")
	if err := h.service.DeleteEntity(c.UserContext(), id); err != nil {
		l.Warn("Delete failed", zap.String("id", id), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListReports lists stored run reports.
// @Summary List Run Reports
// @Description Lists the run reports stored in object storage, newest first.
// @Tags catalog
// @Produce json
// @Success 200 {array} ReportInfo "Reports"
// @Failure 503 {object} map[string]string "No report store configured"
// @Router /catalog/reports [get]
func (h *Handler) HandleListReports(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	reports, err := h.service.Reports(c.UserContext())
	if err != nil {
		l.Warn("Failed to list reports", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(reports)
}

// HandleCreateEntities creates entities.
// @Summary Create Entities
// @Description Creates JSON-LD entities. Documents without @context get the schema.org context.
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body EntitiesRequest true "Documents to create"
// @Success 201 {object} WriteResult "Created identifiers"
// @Failure 400 {object} map[string]string "Invalid document"
// @Failure 502 {object} map[string]string "Graph API failure"
// @Router /catalog/entities [post]
func (h *Handler) HandleCreateEntities(c *fiber.Ctx) error {
	return h.handleWrite(c, h.service.CreateEntities, fiber.StatusCreated)
}

// HandleUpsertEntities creates or replaces entities by @id.
// @Summary Upsert Entities
// @Description Creates or replaces JSON-LD entities. Every document needs an absolute @id.
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body EntitiesRequest true "Documents to upsert"
// @Success 200 {object} WriteResult "Written identifiers"
// @Failure 400 {object} map[string]string "Invalid document"
// @Failure 502 {object} map[string]string "Graph API failure"
// @Router /catalog/entities [put]
func (h *Handler) HandleUpsertEntities(c *fiber.Ctx) error {
	return h.handleWrite(c, h.service.UpsertEntities, fiber.StatusOK)
}

func (h *Handler) handleWrite(c *fiber.Ctx, write func(context.Context, []map[string]any) (*WriteResult, error), status int) error {
	l := logger.WithRayID(h.service.logger, c)

	var req EntitiesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	res, err := write(c.UserContext(), req.Documents)
	if err != nil {
		l.Warn("Entity write failed", zap.Error(err))
		body := fiber.Map{"error": err.Error()}
		if res != nil {
			body["written"] = res.Written
		}
		return c.Status(statusFor(err)).JSON(body)
	}
	return c.Status(status).JSON(res)
}

// HandlePatchEntity patches the properties of one entity.
// @Summary Patch Entity
// @Description Replaces each property of the JSON-LD body on the entity named by its @id. Null properties are removed.
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body object true "JSON-LD document with @id"
// @Success 200 {object} PatchResult "Applied operations"
// @Failure 400 {object} map[string]string "Invalid document"
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 502 {object} map[string]string "Graph API failure"
// @Router /catalog/entities [patch]
func (h *Handler) HandlePatchEntity(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var doc map[string]any
	if err := c.BodyParser(&doc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	res, err := h.service.PatchEntity(c.UserContext(), doc)
	if err != nil {
		l.Warn("Patch failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(res)
}

// HandleUpgradeEntity changes the type of an entity.
// @Summary Upgrade Entity
// @Description Fetches an entity, sets a new type and extra properties, keeps its name, description, url and image, and writes it back.
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body UpgradeRequest true "Entity, new type and properties"
// @Success 200 {object} map[string]interface{} "Written document"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 502 {object} map[string]string "Graph API failure"
// @Router /catalog/entities/upgrade [post]
func (h *Handler) HandleUpgradeEntity(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req UpgradeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	doc, err := h.service.UpgradeEntity(c.UserContext(), req)
	if err != nil {
		l.Warn("Upgrade failed", zap.String("id", req.IRI), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(doc)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidID), errors.Is(err, ErrInvalidDocument):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNoReportStore):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, kg.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, kg.ErrRemoteUnavailable), errors.Is(err, kg.ErrRemoteRejected):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
