package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/mindtrack/stress-api/internal/core/domain"
	"github.com/mindtrack/stress-api/internal/core/ports"
)

const historyLimit = 50

// ResultCache abstracts the prediction result cache (Redis).
type ResultCache interface {
	// Get returns the cached upstream body for in, or nil on a miss.
	Get(ctx context.Context, in domain.QuestionnaireInput) (json.RawMessage, error)
	Set(ctx context.Context, in domain.QuestionnaireInput, body json.RawMessage) error
}

type predictionService struct {
	predictor ports.Predictor
	cache     ResultCache
	history   ports.PredictionRepository
	log       zerolog.Logger
}

// NewPredictionService returns a PredictionService. cache and history are
// optional; a nil cache disables result caching and a nil history disables
// per-user persistence.
func NewPredictionService(
	predictor ports.Predictor,
	cache ResultCache,
	history ports.PredictionRepository,
	log zerolog.Logger,
) ports.PredictionService {
	return &predictionService{
		predictor: predictor,
		cache:     cache,
		history:   history,
		log:       log,
	}
}

// Predict relays the questionnaire to the upstream service and returns its
// body verbatim. The cache and the history write never alter the relayed
// body and never fail the request.
func (s *predictionService) Predict(ctx context.Context, in domain.QuestionnaireInput, userID string) (json.RawMessage, error) {
	if s.cache != nil {
		body, err := s.cache.Get(ctx, in)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Msg("prediction cache lookup failed, calling upstream")
		case body != nil:
			s.record(ctx, in, body, userID)
			return body, nil
		}
	}

	body, err := s.predictor.Predict(ctx, in)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, in, body); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache prediction result")
		}
	}

	s.record(ctx, in, body, userID)
	return body, nil
}

// History returns the caller's stored predictions, newest first.
func (s *predictionService) History(ctx context.Context, userID string) ([]domain.Prediction, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.FindByUser(ctx, userID, historyLimit)
}

// record persists the scored result for authenticated callers. The upstream
// body is parsed tolerantly; anything unexpected is logged and dropped.
func (s *predictionService) record(ctx context.Context, in domain.QuestionnaireInput, body json.RawMessage, userID string) {
	if userID == "" || s.history == nil {
		return
	}

	var scored struct {
		StressLevel float64 `json:"stress_level"`
		Category    string  `json:"stress_category"`
	}
	if err := json.Unmarshal(body, &scored); err != nil {
		s.log.Warn().Err(err).Msg("upstream body not parseable, skipping history write")
		return
	}

	p := &domain.Prediction{
		UserID:      userID,
		Inputs:      in,
		StressLevel: scored.StressLevel,
		Category:    scored.Category,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.history.Save(ctx, p); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to save prediction history")
	}
}
