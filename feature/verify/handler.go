package verify

import (
	"kg-sync/core/logger"
	"kg-sync/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for entity verification.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the verify routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/verify", h.HandleVerify)
}

// HandleVerify checks that an entity is persisted.
// @Summary Verify Entity
// @Description Checks the IRI pattern, dereferences the .html and .json views and optionally looks the entity up in the GraphQL index.
// @Tags verify
// @Produce json
// @Param iri query string true "Entity IRI"
// @Param graphql query boolean false "Also check the GraphQL index" default(true)
// @Success 200 {object} Report "Entity persisted"
// @Failure 400 {object} map[string]string "Missing IRI"
// @Failure 404 {object} Report "Entity not persisted"
// @Router /verify [get]
func (h *Handler) HandleVerify(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	iri := c.Query("iri")
	if iri == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "iri query parameter is required"})
	}
	withGraph := true
	if raw := c.Query("graphql"); raw != "" {
		withGraph = utils.ToBool(raw)
	}

	report := h.service.Verify(c.UserContext(), iri, withGraph)
	if !report.Dereferenceable {
		l.Info("Verification failed", zap.String("iri", iri))
		return c.Status(fiber.StatusNotFound).JSON(report)
	}
	return c.JSON(report)
}
