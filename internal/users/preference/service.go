// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package preference

import (
	"context"
	"fmt"
	"log/slog"
)

// # Service Layer

// Service reads and writes reader preferences.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

/*
Get returns the user's stored preferences.

Returns:
  - *Preferences: nil when nothing is stored or the caller is anonymous
  - error: Storage failures only
*/
func (service *Service) Get(context context.Context, userID string) (*Preferences, error) {
	if userID == "" {
		return nil, nil
	}
	return service.repository.Find(context, userID)
}

/*
Set merges patch into the user's stored preferences.

Description: An empty userID is a no-op returning (nil, nil). An empty patch
returns the current row without writing. Range clamping is the caller's
concern; the store persists what it is given.

Returns:
  - *Preferences: The row after the merge
  - error: Storage failures
*/
func (service *Service) Set(context context.Context, userID string, patch Preferences) (*Preferences, error) {
	if userID == "" {
		return nil, nil
	}

	if patch.IsEmpty() {
		return service.repository.Find(context, userID)
	}

	preferences, err := service.repository.Upsert(context, userID, patch)
	if err != nil {
		return nil, fmt.Errorf("preference_service_set_failed: %w", err)
	}

	service.logger.Debug("reader_preferences_saved", slog.String("user_id", userID))

	return preferences, nil
}
