package interfaces

import (
	"context"

	"github.com/sumeetk/foliox/internal/models"
)

// PortfolioService runs the aggregation pipeline over fresh backend data.
type PortfolioService interface {
	// Refresh pulls a fresh holdings snapshot, aggregates it and rebuilds the
	// growth series. A holdings fetch failure is fatal to the cycle.
	Refresh(ctx context.Context) (*models.DashboardSnapshot, error)

	// Snapshot returns the latest committed snapshot, or nil before first refresh
	Snapshot() *models.DashboardSnapshot

	// Holdings returns the raw holdings list without derived metrics
	Holdings(ctx context.Context) ([]models.Holding, error)
}

// AssistantService answers free-text questions, enriching portfolio questions
// with the current aggregation snapshot.
type AssistantService interface {
	Ask(ctx context.Context, question string) (string, error)
}
