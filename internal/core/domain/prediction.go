package domain

import "time"

// QuestionnaireInput is the fixed seven-field payload forwarded to the
// prediction service. Field names follow the upstream contract exactly.
type QuestionnaireInput struct {
	AcademicStage       string  `json:"Your_Academic_Stage"`
	PeerPressure        float64 `json:"Peer_pressure"`
	HomePressure        float64 `json:"Academic_pressure_from_your_home"`
	StudyEnvironment    string  `json:"Study_Environment"`
	CopingStrategy      string  `json:"Coping_Strategy"`
	BadHabits           string  `json:"Bad_Habits"`
	AcademicCompetition float64 `json:"Academic_Competition"`
}

// Prediction is a stored questionnaire result. Persisted only when the
// caller presented a valid bearer token with the predict request; the proxy
// itself never depends on it.
type Prediction struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	Inputs      QuestionnaireInput `json:"inputs"`
	StressLevel float64            `json:"stress_level"`
	Category    string             `json:"stress_category"`
	CreatedAt   time.Time          `json:"created_at"`
}
