package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"alcyxob/gotrain/internal/domain"
	"alcyxob/gotrain/internal/repository"
	"alcyxob/gotrain/internal/secret"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sessionCollectionName = "session_state"

// State keys. One document per key, payload stored as JSON bytes so the
// goals migration path sees exactly what was written.
const (
	keyGoals       = "goals"
	keyUnits       = "units"
	keyCredentials = "credentials"
	keyActivities  = "activities"
	keyPlanText    = "plan_text"
	keyTranscript  = "transcript"
)

// stateDoc is the shape of one session_state document.
type stateDoc struct {
	ID        string           `bson:"_id"`
	Data      primitive.Binary `bson:"data"`
	UpdatedAt time.Time        `bson:"updatedAt"`
}

// mongoSessionRepository implements repository.SessionRepository.
type mongoSessionRepository struct {
	collection *mongo.Collection
	box        *secret.Box
}

// NewMongoSessionRepository creates a session repository backed by MongoDB.
// The secret box seals the credential payload before storage.
func NewMongoSessionRepository(db *mongo.Database, box *secret.Box) repository.SessionRepository {
	return &mongoSessionRepository{
		collection: db.Collection(sessionCollectionName),
		box:        box,
	}
}

// --- Raw key/value helpers ---

func (r *mongoSessionRepository) put(ctx context.Context, key string, data []byte) error {
	filter := bson.M{"_id": key}
	update := bson.M{"$set": stateDoc{
		ID:        key,
		Data:      primitive.Binary{Data: data},
		UpdatedAt: time.Now().UTC(),
	}}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return repository.ErrSaveFailed
	}
	return nil
}

func (r *mongoSessionRepository) get(ctx context.Context, key string) ([]byte, error) {
	var doc stateDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.Data.Data, nil
}

func (r *mongoSessionRepository) delete(ctx context.Context, keys ...string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": keys}})
	if err != nil {
		return repository.ErrClearFailed
	}
	return nil
}

// --- Goals ---

func (r *mongoSessionRepository) GetGoals(ctx context.Context) (*domain.UserGoals, error) {
	data, err := r.get(ctx, keyGoals)
	if err != nil {
		return nil, err
	}
	// DecodeGoals handles the legacy singular-activity migration.
	return domain.DecodeGoals(data)
}

func (r *mongoSessionRepository) SaveGoals(ctx context.Context, goals domain.UserGoals) error {
	data, err := json.Marshal(goals)
	if err != nil {
		return err
	}
	return r.put(ctx, keyGoals, data)
}

// --- Units ---

func (r *mongoSessionRepository) GetUnits(ctx context.Context) (*domain.Units, error) {
	data, err := r.get(ctx, keyUnits)
	if err != nil {
		return nil, err
	}
	var units domain.Units
	if err := json.Unmarshal(data, &units); err != nil {
		return nil, err
	}
	return &units, nil
}

func (r *mongoSessionRepository) SaveUnits(ctx context.Context, units domain.Units) error {
	data, err := json.Marshal(units)
	if err != nil {
		return err
	}
	return r.put(ctx, keyUnits, data)
}

// --- Credentials ---

func (r *mongoSessionRepository) GetCredentials(ctx context.Context) (*domain.Credentials, error) {
	sealed, err := r.get(ctx, keyCredentials)
	if err != nil {
		return nil, err
	}
	data, err := r.box.Open(sealed)
	if err != nil {
		return nil, err
	}
	var creds domain.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func (r *mongoSessionRepository) SaveCredentials(ctx context.Context, creds domain.Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	sealed, err := r.box.Seal(data)
	if err != nil {
		return err
	}
	return r.put(ctx, keyCredentials, sealed)
}

func (r *mongoSessionRepository) DeleteCredentials(ctx context.Context) error {
	return r.delete(ctx, keyCredentials)
}

// --- Activities ---

func (r *mongoSessionRepository) GetActivities(ctx context.Context) ([]domain.ActivityRecord, error) {
	data, err := r.get(ctx, keyActivities)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []domain.ActivityRecord{}, nil
		}
		return nil, err
	}
	var activities []domain.ActivityRecord
	if err := json.Unmarshal(data, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *mongoSessionRepository) SaveActivities(ctx context.Context, activities []domain.ActivityRecord) error {
	data, err := json.Marshal(activities)
	if err != nil {
		return err
	}
	return r.put(ctx, keyActivities, data)
}

// --- Plan text ---

func (r *mongoSessionRepository) GetPlanText(ctx context.Context) (string, error) {
	data, err := r.get(ctx, keyPlanText)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *mongoSessionRepository) SavePlanText(ctx context.Context, raw string) error {
	return r.put(ctx, keyPlanText, []byte(raw))
}

func (r *mongoSessionRepository) DeletePlanText(ctx context.Context) error {
	return r.delete(ctx, keyPlanText)
}

// --- Transcript ---

func (r *mongoSessionRepository) GetTranscript(ctx context.Context) ([]domain.ChatMessage, error) {
	data, err := r.get(ctx, keyTranscript)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []domain.ChatMessage{}, nil
		}
		return nil, err
	}
	var transcript []domain.ChatMessage
	if err := json.Unmarshal(data, &transcript); err != nil {
		return nil, err
	}
	return transcript, nil
}

// AppendMessage is read-modify-write. The app serves a single session, so
// there is no concurrent appender to race with.
func (r *mongoSessionRepository) AppendMessage(ctx context.Context, msg domain.ChatMessage) error {
	transcript, err := r.GetTranscript(ctx)
	if err != nil {
		return err
	}
	transcript = append(transcript, msg)

	data, err := json.Marshal(transcript)
	if err != nil {
		return err
	}
	return r.put(ctx, keyTranscript, data)
}

// --- Clearing ---

func (r *mongoSessionRepository) ClearSession(ctx context.Context) error {
	return r.delete(ctx, keyCredentials, keyActivities, keyPlanText, keyTranscript)
}

func (r *mongoSessionRepository) ClearAll(ctx context.Context) error {
	return r.delete(ctx, keyCredentials, keyActivities, keyPlanText, keyTranscript, keyGoals, keyUnits)
}
