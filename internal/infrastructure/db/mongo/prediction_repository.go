package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mindtrack/stress-api/internal/core/domain"
)

const predictionsCollection = "predictions"

type PredictionRepository struct {
	coll *mongo.Collection
}

func NewPredictionRepository(db *mongo.Database) *PredictionRepository {
	return &PredictionRepository{coll: db.Collection(predictionsCollection)}
}

type mongoPrediction struct {
	ID          primitive.ObjectID        `bson:"_id,omitempty"`
	UserID      string                    `bson:"user_id"`
	Inputs      domain.QuestionnaireInput `bson:"inputs"`
	StressLevel float64                   `bson:"stress_level"`
	Category    string                    `bson:"stress_category"`
	CreatedAt   int64                     `bson:"created_at"`
}

func (r *PredictionRepository) Save(ctx context.Context, p *domain.Prediction) error {
	doc := mongoPrediction{
		UserID:      p.UserID,
		Inputs:      p.Inputs,
		StressLevel: p.StressLevel,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert prediction: %w", err)
	}
	return nil
}

// FindByUser returns up to limit predictions for userID, newest first.
func (r *PredictionRepository) FindByUser(ctx context.Context, userID string, limit int64) ([]domain.Prediction, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find predictions: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Prediction
	for cur.Next(ctx) {
		var mp mongoPrediction
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode prediction: %w", err)
		}
		out = append(out, domain.Prediction{
			ID:          mp.ID.Hex(),
			UserID:      mp.UserID,
			Inputs:      mp.Inputs,
			StressLevel: mp.StressLevel,
			Category:    mp.Category,
			CreatedAt:   unixToTime(mp.CreatedAt),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate predictions: %w", err)
	}
	return out, nil
}
