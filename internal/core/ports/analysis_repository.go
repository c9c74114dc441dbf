package ports

import (
	"context"

	"github.com/cinemind/studio-api/internal/core/domain"
)

// AnalysisRepository defines persistence operations for script analyses.
type AnalysisRepository interface {
	Create(ctx context.Context, record *domain.AnalysisRecord) (*domain.AnalysisRecord, error)
	FindByID(ctx context.Context, id int64) (*domain.AnalysisRecord, error)
	// ListByUser returns the account's records, newest first.
	ListByUser(ctx context.Context, userID int64) ([]domain.AnalysisRecord, error)
	Count(ctx context.Context) (int64, error)
}
