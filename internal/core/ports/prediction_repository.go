package ports

import (
	"context"

	"github.com/mindtrack/stress-api/internal/core/domain"
)

// PredictionRepository stores scored questionnaire results per user.
type PredictionRepository interface {
	Save(ctx context.Context, p *domain.Prediction) error
	FindByUser(ctx context.Context, userID string, limit int64) ([]domain.Prediction, error)
}
