package handler

import (
	"time"

	"github.com/mindtrack/stress-api/internal/core/domain"
)

// predictRequest mirrors the upstream prediction contract field-for-field.
// The three pressure ratings are 1–5 per the questionnaire.
type predictRequest struct {
	AcademicStage       string   `json:"Your_Academic_Stage"              validate:"required"`
	PeerPressure        *float64 `json:"Peer_pressure"                    validate:"required,gte=1,lte=5"`
	HomePressure        *float64 `json:"Academic_pressure_from_your_home" validate:"required,gte=1,lte=5"`
	StudyEnvironment    string   `json:"Study_Environment"                validate:"required"`
	CopingStrategy      string   `json:"Coping_Strategy"                  validate:"required"`
	BadHabits           string   `json:"Bad_Habits"                       validate:"required"`
	AcademicCompetition *float64 `json:"Academic_Competition"             validate:"required,gte=1,lte=5"`
}

func toQuestionnaireInput(r predictRequest) domain.QuestionnaireInput {
	return domain.QuestionnaireInput{
		AcademicStage:       r.AcademicStage,
		PeerPressure:        *r.PeerPressure,
		HomePressure:        *r.HomePressure,
		StudyEnvironment:    r.StudyEnvironment,
		CopingStrategy:      r.CopingStrategy,
		BadHabits:           r.BadHabits,
		AcademicCompetition: *r.AcademicCompetition,
	}
}

type predictionItem struct {
	ID          string                    `json:"id"`
	Inputs      domain.QuestionnaireInput `json:"inputs"`
	StressLevel float64                   `json:"stress_level"`
	Category    string                    `json:"stress_category"`
	CreatedAt   time.Time                 `json:"created_at"`
}

type historyResponse struct {
	Success     bool             `json:"success"`
	Predictions []predictionItem `json:"predictions"`
}
