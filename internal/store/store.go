package store

import (
	"context"

	"github.com/aeo-snapshot/aeo-cli/internal/model"
)

// AnalysisFilter specifies criteria for listing stored analyses.
type AnalysisFilter struct {
	Brand string `json:"brand,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

// Store defines the persistence interface for finished analyses.
// Analyses are write-once: there is no update path.
type Store interface {
	SaveAnalysis(ctx context.Context, analysis *model.Analysis) error
	GetAnalysis(ctx context.Context, id string) (*model.Analysis, error)
	ListAnalyses(ctx context.Context, filter AnalysisFilter) ([]model.Analysis, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

const defaultListLimit = 20
