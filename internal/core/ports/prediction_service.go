package ports

import (
	"context"
	"encoding/json"

	"github.com/mindtrack/stress-api/internal/core/domain"
)

// Predictor is the outbound client for the external ML prediction service.
// The returned body is the upstream response verbatim.
type Predictor interface {
	Predict(ctx context.Context, in domain.QuestionnaireInput) (json.RawMessage, error)
}

// PredictionService proxies questionnaire submissions to the predictor.
// userID may be empty; when set, the result is additionally saved to the
// caller's history.
type PredictionService interface {
	Predict(ctx context.Context, in domain.QuestionnaireInput, userID string) (json.RawMessage, error)
	History(ctx context.Context, userID string) ([]domain.Prediction, error)
}
