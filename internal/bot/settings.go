package bot

import (
	"context"
	"encoding/json"
	"sync"
)

const settingsDataKey = "user_settings"

type dataRepository interface {
	Save(ctx context.Context, id string, data []byte) error
	Load(ctx context.Context, id string) ([]byte, error)
}

// userSettings is the source and revision a user picked with /use.
type userSettings struct {
	Source   string `json:"source"`
	Revision string `json:"revision"`
}

type settingsStore struct {
	mu       sync.RWMutex
	defaults userSettings
	byUser   map[int64]userSettings
}

func newSettingsStore(defaults userSettings) *settingsStore {
	return &settingsStore{defaults: defaults, byUser: make(map[int64]userSettings)}
}

func (s *settingsStore) Get(userID int64) userSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if settings, ok := s.byUser[userID]; ok {
		return settings
	}
	return s.defaults
}

func (s *settingsStore) Set(userID int64, settings userSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[userID] = settings
}

func (s *settingsStore) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
}

func (s *settingsStore) save(ctx context.Context, repo dataRepository) error {
	s.mu.RLock()
	data, err := json.Marshal(s.byUser)
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	return repo.Save(ctx, settingsDataKey, data)
}

func (s *settingsStore) load(ctx context.Context, repo dataRepository) error {
	data, err := repo.Load(ctx, settingsDataKey)
	if err != nil || data == nil {
		return err
	}

	loaded := make(map[int64]userSettings)
	if err = json.Unmarshal(data, &loaded); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser = loaded
	return nil
}
