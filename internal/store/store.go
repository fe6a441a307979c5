// Package store persists assessment snapshots so determinations can be
// re-rendered later from exactly the data that produced them.
package store

import (
	"context"
	"time"

	"github.com/sells-group/compliance-cli/internal/model"
)

// Record is one persisted assessment. Category, tier, and score are
// denormalized from the snapshot for filtering.
type Record struct {
	ID        string                  `json:"id"`
	Category  model.ClientCategory    `json:"category"`
	Tier      model.RiskTier          `json:"tier"`
	Score     int                     `json:"score"`
	Snapshot  *model.AssessmentResult `json:"snapshot"`
	CreatedAt time.Time               `json:"createdAt"`
}

// Filter specifies criteria for listing assessments.
type Filter struct {
	Category model.ClientCategory `json:"category,omitempty"`
	Tier     model.RiskTier       `json:"tier,omitempty"`
	Limit    int                  `json:"limit,omitempty"`
	Offset   int                  `json:"offset,omitempty"`
}

// Store defines the persistence interface for assessments.
type Store interface {
	SaveAssessment(ctx context.Context, snapshot *model.AssessmentResult) (*Record, error)
	GetAssessment(ctx context.Context, id string) (*Record, error)
	ListAssessments(ctx context.Context, filter Filter) ([]Record, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
