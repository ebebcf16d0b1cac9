package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/mindtrack/stress-api/internal/core/domain"
)

type stubPredictionService struct {
	predictFn func(ctx context.Context, in domain.QuestionnaireInput, userID string) (json.RawMessage, error)
	historyFn func(ctx context.Context, userID string) ([]domain.Prediction, error)
}

func (s *stubPredictionService) Predict(ctx context.Context, in domain.QuestionnaireInput, userID string) (json.RawMessage, error) {
	return s.predictFn(ctx, in, userID)
}

func (s *stubPredictionService) History(ctx context.Context, userID string) ([]domain.Prediction, error) {
	return s.historyFn(ctx, userID)
}

const validPredictBody = `{
	"Your_Academic_Stage": "Undergraduate",
	"Peer_pressure": 4,
	"Academic_pressure_from_your_home": 3,
	"Study_Environment": "Library",
	"Coping_Strategy": "Exercise",
	"Bad_Habits": "No",
	"Academic_Competition": 5
}`

func TestPredictHandler_PassThrough(t *testing.T) {
	upstream := `{"stress_level":7.2,"stress_category":"High","recommendations":[{"advice":"rest"}]}`
	stub := &stubPredictionService{
		predictFn: func(ctx context.Context, in domain.QuestionnaireInput, userID string) (json.RawMessage, error) {
			if in.AcademicStage != "Undergraduate" || in.PeerPressure != 4 {
				t.Fatalf("payload not forwarded verbatim: %+v", in)
			}
			if userID != "" {
				t.Fatalf("expected anonymous caller, got %q", userID)
			}
			return json.RawMessage(upstream), nil
		},
	}
	handler := NewPredictHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/predict", validPredictBody)
	if err := handler.Predict(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != upstream {
		t.Fatalf("body reshaped: %s", rec.Body.String())
	}
}

func TestPredictHandler_ForwardsCallerIdentity(t *testing.T) {
	stub := &stubPredictionService{
		predictFn: func(ctx context.Context, in domain.QuestionnaireInput, userID string) (json.RawMessage, error) {
			if userID != "u1" {
				t.Fatalf("expected user id, got %q", userID)
			}
			return json.RawMessage(`{}`), nil
		},
	}
	handler := NewPredictHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/predict", validPredictBody)
	c.Set("user_id", "u1")
	if err := handler.Predict(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestPredictHandler_ValidatesOnce(t *testing.T) {
	stub := &stubPredictionService{
		predictFn: func(ctx context.Context, in domain.QuestionnaireInput, userID string) (json.RawMessage, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	handler := NewPredictHandler(stub)

	cases := []string{
		`{"Your_Academic_Stage":"Undergraduate"}`, // missing fields
		strings.Replace(validPredictBody, `"Peer_pressure": 4`, `"Peer_pressure": 9`, 1),  // out of range
		strings.Replace(validPredictBody, `"Peer_pressure": 4`, `"Peer_pressure": 0`, 1),  // out of range
	}
	for _, body := range cases {
		c, rec := newTestContext(t, http.MethodPost, "/api/predict", body)
		_ = handler.Predict(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", body, rec.Code)
		}
	}
}

func TestPredictHandler_UpstreamErrors(t *testing.T) {
	for _, sentinel := range []error{domain.ErrUpstream, domain.ErrUpstreamUnreachable} {
		stub := &stubPredictionService{
			predictFn: func(ctx context.Context, in domain.QuestionnaireInput, userID string) (json.RawMessage, error) {
				return nil, sentinel
			},
		}
		handler := NewPredictHandler(stub)

		c, _ := newTestContext(t, http.MethodPost, "/api/predict", validPredictBody)
		err := handler.Predict(c)
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected %v to propagate, got %v", sentinel, err)
		}
	}
}

func TestPredictHandler_History(t *testing.T) {
	stub := &stubPredictionService{
		historyFn: func(ctx context.Context, userID string) ([]domain.Prediction, error) {
			return []domain.Prediction{
				{ID: "p1", UserID: userID, StressLevel: 7.2, Category: "High", CreatedAt: time.Now().UTC()},
			}, nil
		},
	}
	handler := NewPredictHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/predictions", "")
	c.Set("user_id", "u1")

	if err := handler.History(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp historyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || len(resp.Predictions) != 1 || resp.Predictions[0].Category != "High" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestPredictHandler_History_RequiresIdentity(t *testing.T) {
	handler := NewPredictHandler(&stubPredictionService{})

	c, _ := newTestContext(t, http.MethodGet, "/api/predictions", "")
	if err := handler.History(c); err == nil {
		t.Fatalf("expected error without identity")
	}
}
