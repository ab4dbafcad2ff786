package schedule

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	cfg     Config
	service *Service
	handler *Handler
}

// NewFeature creates the schedule feature around an assembled service.
func NewFeature(cfg Config, service *Service, logg *zap.Logger) *Feature {
	return &Feature{
		cfg:     cfg,
		service: service,
		handler: NewHandler(service, logg),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "schedule"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.cfg.Enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the run orchestrator for the daemon's cron loop.
func (f *Feature) Service() *Service {
	return f.service
}
