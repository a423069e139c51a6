package verify

import (
	"net/http"

	"kg-sync/core/kg"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the verify feature. A nil client disables the GraphQL
// check.
func NewFeature(client kg.Client, httpClient *http.Client, logger *zap.Logger) *Feature {
	svc := NewService(client, httpClient, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "verify"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the service for the CLI.
func (f *Feature) Service() *Service {
	return f.service
}
