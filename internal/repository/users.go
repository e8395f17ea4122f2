package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"go.uber.org/zap"

	"authserver/internal/models"
)

// UserRegistry is the in-memory mapping of username to credential record,
// mirrored to a single JSON file. Put and Delete touch memory only; callers
// make a mutation durable with Persist and are responsible for reverting the
// mutation when Persist fails (Load restores the last durable state).
type UserRegistry interface {
	Load() error
	Persist() error
	Get(username string) (models.UserRecord, bool)
	Put(username string, record models.UserRecord)
	Delete(username string)
	List() []models.UserInfo
}

type fileRegistry struct {
	mu    sync.RWMutex
	users map[string]models.UserRecord
	path  string
	log   *zap.Logger
}

func NewFileRegistry(path string, log *zap.Logger) UserRegistry {
	return &fileRegistry{
		users: make(map[string]models.UserRecord),
		path:  path,
		log:   log,
	}
}

// Load replaces the in-memory mapping with the contents of the backing
// file. On a missing or corrupt file the mapping is left empty and the
// error is returned; the caller decides whether that is fatal (at startup
// it is not).
func (r *fileRegistry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = make(map[string]models.UserRecord)

	data, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("failed to read users file: %w", err)
	}
	var users map[string]models.UserRecord
	if err := json.Unmarshal(data, &users); err != nil {
		return fmt.Errorf("failed to parse users file: %w", err)
	}
	if users != nil {
		r.users = users
	}
	return nil
}

// Persist serializes the whole mapping and replaces the backing file
// atomically. When it fails the previous file contents are untouched.
func (r *fileRegistry) Persist() error {
	r.mu.RLock()
	data, err := json.Marshal(r.users)
	r.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to serialize users: %w", err)
	}

	if err := writeFileAtomic(r.path, data, 0o600); err != nil {
		r.log.Error("Failed to write users file", zap.String("path", r.path), zap.Error(err))
		return fmt.Errorf("failed to write users file: %w", err)
	}
	return nil
}

func (r *fileRegistry) Get(username string) (models.UserRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.users[username]
	return record, ok
}

func (r *fileRegistry) Put(username string, record models.UserRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[username] = record
}

func (r *fileRegistry) Delete(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, username)
}

// List returns a read-only snapshot sorted by username.
func (r *fileRegistry) List() []models.UserInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.UserInfo, 0, len(r.users))
	for username, record := range r.users {
		users = append(users, models.UserInfo{Username: username, IsAdmin: record.IsAdmin})
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users
}
