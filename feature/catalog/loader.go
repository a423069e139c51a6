package catalog

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the catalog feature.
func NewFeature(svc *Service) *Feature {
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "catalog"
}

// IsEnabled reports whether a dataset is configured. Without one no
// identifier can be minted.
func (f *Feature) IsEnabled() bool {
	return f.service.baseURI != ""
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
