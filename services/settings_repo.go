package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"vibecode/db"
	"vibecode/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoSettingsRepository stores settings under the aiSettings field of the
// user document, matching the documented state layout
type mongoSettingsRepository struct{}

// NewMongoSettingsRepository returns the MongoDB-backed settings repository
func NewMongoSettingsRepository() SettingsRepository {
	return &mongoSettingsRepository{}
}

func (r *mongoSettingsRepository) users() *mongo.Collection {
	return db.GetCollection("users")
}

func (r *mongoSettingsRepository) Load(ctx context.Context, userID string) (*models.AIUserSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var doc struct {
		AISettings *models.AIUserSettings `bson:"aiSettings"`
	}
	err := r.users().FindOne(ctx, bson.M{"email": userID},
		options.FindOne().SetProjection(bson.M{"aiSettings": 1})).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.AISettings, nil
}

func (r *mongoSettingsRepository) Create(ctx context.Context, userID string, settings models.AIUserSettings) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"aiSettings": settings}}
	_, err := r.users().UpdateOne(ctx, bson.M{"email": userID}, update, options.Update().SetUpsert(true))
	return err
}

func (r *mongoSettingsRepository) SetFields(ctx context.Context, userID string, fields map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	set := bson.M{}
	for field, value := range fields {
		set["aiSettings."+field] = value
	}
	_, err := r.users().UpdateOne(ctx, bson.M{"email": userID}, bson.M{"$set": set}, options.Update().SetUpsert(true))
	return err
}

func (r *mongoSettingsRepository) UnsetField(ctx context.Context, userID string, field string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	update := bson.M{"$unset": bson.M{"aiSettings." + field: ""}}
	_, err := r.users().UpdateOne(ctx, bson.M{"email": userID}, update)
	return err
}

// memorySettingsRepository keeps settings in a mutex-guarded map. It backs
// tests and local runs without a database.
type memorySettingsRepository struct {
	mu   sync.Mutex
	data map[string]*models.AIUserSettings
}

// NewMemorySettingsRepository returns an in-memory settings repository
func NewMemorySettingsRepository() SettingsRepository {
	return &memorySettingsRepository{data: map[string]*models.AIUserSettings{}}
}

func (r *memorySettingsRepository) Load(_ context.Context, userID string) (*models.AIUserSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.data[userID]
	if !ok {
		return nil, nil
	}
	copied := *stored
	copied.APIKeys = make(map[string]string, len(stored.APIKeys))
	for k, v := range stored.APIKeys {
		copied.APIKeys[k] = v
	}
	return &copied, nil
}

func (r *memorySettingsRepository) Create(_ context.Context, userID string, settings models.AIUserSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if settings.APIKeys == nil {
		settings.APIKeys = map[string]string{}
	}
	r.data[userID] = &settings
	return nil
}

func (r *memorySettingsRepository) SetFields(_ context.Context, userID string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings := r.ensure(userID)
	for field, value := range fields {
		switch {
		case field == "preferredProvider":
			settings.PreferredProvider, _ = value.(string)
		case field == "maxTokens":
			settings.MaxTokens, _ = value.(int)
		case field == "temperature":
			settings.Temperature, _ = value.(float64)
		case strings.HasPrefix(field, "apiKeys."):
			key, _ := value.(string)
			settings.APIKeys[strings.TrimPrefix(field, "apiKeys.")] = key
		}
	}
	return nil
}

func (r *memorySettingsRepository) UnsetField(_ context.Context, userID string, field string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings := r.ensure(userID)
	if strings.HasPrefix(field, "apiKeys.") {
		delete(settings.APIKeys, strings.TrimPrefix(field, "apiKeys."))
	}
	return nil
}

func (r *memorySettingsRepository) ensure(userID string) *models.AIUserSettings {
	settings, ok := r.data[userID]
	if !ok {
		settings = &models.AIUserSettings{APIKeys: map[string]string{}}
		r.data[userID] = settings
	}
	return settings
}
