package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mindtrack/stress-api/internal/api/metrics"
	"github.com/mindtrack/stress-api/internal/core/domain"
	"github.com/mindtrack/stress-api/internal/core/ports"
)

// PredictHandler proxies questionnaire submissions to the ML service.
type PredictHandler struct {
	service ports.PredictionService
}

func NewPredictHandler(service ports.PredictionService) *PredictHandler {
	return &PredictHandler{service: service}
}

// Predict forwards the seven questionnaire fields upstream and relays the
// response verbatim.
//
// @Summary      Get a stress prediction
// @Tags         predict
// @Accept       json
// @Produce      json
// @Param        body  body      predictRequest  true  "Questionnaire answers"
// @Success      200   {object}  map[string]any  "Upstream response, pass-through"
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/predict [post]
func (h *PredictHandler) Predict(c echo.Context) error {
	var req predictRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
	}

	// Set only when OptionalAuth resolved a bearer token; empty is fine.
	userID, _ := c.Get("user_id").(string)

	body, err := h.service.Predict(c.Request().Context(), toQuestionnaireInput(req), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUpstreamUnreachable):
			metrics.PredictionsTotal.WithLabelValues("unreachable").Inc()
		case errors.Is(err, domain.ErrUpstream):
			metrics.PredictionsTotal.WithLabelValues("upstream_error").Inc()
		default:
			metrics.PredictionsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.PredictionsTotal.WithLabelValues("ok").Inc()
	return c.JSONBlob(http.StatusOK, body)
}

// History returns the caller's stored predictions, newest first.
//
// @Summary      List my past predictions
// @Tags         predict
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  historyResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/predictions [get]
func (h *PredictHandler) History(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	predictions, err := h.service.History(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	items := make([]predictionItem, len(predictions))
	for i, p := range predictions {
		items[i] = predictionItem{
			ID:          p.ID,
			Inputs:      p.Inputs,
			StressLevel: p.StressLevel,
			Category:    p.Category,
			CreatedAt:   p.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, historyResponse{Success: true, Predictions: items})
}
