package offers

import (
	"hookmap/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Offers feature.
func NewFeature(db *gorm.DB, store *catalog.Store, logger *zap.Logger) *Feature {
	svc := NewService(db, store, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Service returns the underlying service, used by the CLI commands.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "offers"
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
