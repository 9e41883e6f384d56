package services

import (
	"github.com/daybook/daybook/internal/events"
	"github.com/daybook/daybook/internal/repositories/documents"
	"github.com/daybook/daybook/internal/services/autosave"
	plannerService "github.com/daybook/daybook/internal/services/planner"
)

// Provider holds all service instances
type Provider struct {
	PlannerService plannerService.Service
	Autosave       *autosave.Saver
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Bus                *events.Bus
	DocumentRepository documents.Repository

	// DisableAutosave leaves the persistence listener unwired; mutations
	// then live only in memory until explicitly saved
	DisableAutosave bool
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	bus := cfg.Bus
	if bus == nil {
		bus = events.NewBus()
	}

	// Use in-memory repository if none provided
	docRepo := cfg.DocumentRepository
	if docRepo == nil {
		docRepo = documents.NewInMemoryRepository()
	}

	planner := plannerService.NewService(&plannerService.ServiceConfig{
		Repository: docRepo,
		Bus:        bus,
	})

	p := &Provider{
		PlannerService: planner,
	}

	if !cfg.DisableAutosave {
		p.Autosave = autosave.New(&autosave.Config{
			Repository: docRepo,
			Bus:        bus,
			Source:     planner,
		})
	}

	return p
}
