package services

import (
	"context"
	"errors"
	"log"

	"vibecode/models"
)

// MaskedKeyValue replaces every configured API key in sanitized settings
// responses.
const MaskedKeyValue = "***masked***"

// SettingsRepository is the abstract per-user settings store. Field paths are
// relative to the user's aiSettings document. SetFields and UnsetField are
// atomic at the storage layer, so concurrent key writes for the same user
// cannot drop each other.
type SettingsRepository interface {
	// Load returns the stored settings, or nil when no record exists
	Load(ctx context.Context, userID string) (*models.AIUserSettings, error)
	Create(ctx context.Context, userID string, settings models.AIUserSettings) error
	SetFields(ctx context.Context, userID string, fields map[string]any) error
	UnsetField(ctx context.Context, userID string, field string) error
}

var settingsRepo SettingsRepository

// InitSettingsService wires the repository backing per-user AI settings
func InitSettingsService(repo SettingsRepository) {
	settingsRepo = repo
}

// DefaultAISettings materializes the documented defaults. Every read path goes
// through the same merge so defaulting stays consistent.
func DefaultAISettings() models.AIUserSettings {
	return models.AIUserSettings{
		PreferredProvider: ProviderGemini,
		APIKeys:           map[string]string{},
		MaxTokens:         2000,
		Temperature:       0.7,
	}
}

// GetUserAISettings returns the user's settings merged over defaults, creating
// the record with defaults on first access. Repeated calls for a brand-new
// user return identical defaults.
func GetUserAISettings(ctx context.Context, userID string) (models.AIUserSettings, error) {
	defaults := DefaultAISettings()

	stored, err := settingsRepo.Load(ctx, userID)
	if err != nil {
		log.Printf("Error loading AI settings for %s: %v", userID, err)
		return defaults, nil
	}

	if stored == nil {
		if err := settingsRepo.Create(ctx, userID, defaults); err != nil {
			log.Printf("Error creating default AI settings for %s: %v", userID, err)
		}
		return defaults, nil
	}

	merged := defaults
	if stored.PreferredProvider != "" {
		merged.PreferredProvider = stored.PreferredProvider
	}
	if stored.MaxTokens != 0 {
		merged.MaxTokens = stored.MaxTokens
	}
	if stored.Temperature != 0 {
		merged.Temperature = stored.Temperature
	}
	if stored.APIKeys != nil {
		merged.APIKeys = stored.APIKeys
	}
	return merged, nil
}

// AISettingsUpdate carries the preference fields of a settings update; nil
// fields are left unchanged (last-write-wins per field).
type AISettingsUpdate struct {
	PreferredProvider *string  `json:"preferredProvider"`
	MaxTokens         *int     `json:"maxTokens"`
	Temperature       *float64 `json:"temperature"`
}

var ErrInvalidProvider = errors.New("invalid provider")

// UpdateUserAISettings persists preference fields without touching the key map
func UpdateUserAISettings(ctx context.Context, userID string, update AISettingsUpdate) error {
	// Ensure the record exists so partial updates land on materialized defaults
	if _, err := GetUserAISettings(ctx, userID); err != nil {
		return err
	}

	fields := map[string]any{}
	if update.PreferredProvider != nil {
		if !IsSupportedProvider(*update.PreferredProvider) {
			return ErrInvalidProvider
		}
		fields["preferredProvider"] = *update.PreferredProvider
	}
	if update.MaxTokens != nil {
		fields["maxTokens"] = *update.MaxTokens
	}
	if update.Temperature != nil {
		fields["temperature"] = *update.Temperature
	}
	if len(fields) == 0 {
		return nil
	}
	return settingsRepo.SetFields(ctx, userID, fields)
}

// SetUserAPIKey stores one provider's key with an atomic field-level write
func SetUserAPIKey(ctx context.Context, userID, provider, apiKey string) error {
	if _, err := GetUserAISettings(ctx, userID); err != nil {
		return err
	}
	return settingsRepo.SetFields(ctx, userID, map[string]any{"apiKeys." + provider: apiKey})
}

// RemoveUserAPIKey deletes one provider's key
func RemoveUserAPIKey(ctx context.Context, userID, provider string) error {
	return settingsRepo.UnsetField(ctx, userID, "apiKeys."+provider)
}

// GetUserAPIKey returns the stored key for (user, provider). It never fails;
// lookup problems degrade to absent.
func GetUserAPIKey(ctx context.Context, userID, provider string) (string, bool) {
	settings, err := GetUserAISettings(ctx, userID)
	if err != nil {
		return "", false
	}
	key, ok := settings.APIKeys[provider]
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// SanitizeAISettings replaces every configured key with the mask token so raw
// key material never leaves the server
func SanitizeAISettings(settings models.AIUserSettings) models.AIUserSettings {
	masked := make(map[string]string, len(settings.APIKeys))
	for provider := range settings.APIKeys {
		masked[provider] = MaskedKeyValue
	}
	settings.APIKeys = masked
	return settings
}
