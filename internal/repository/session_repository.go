package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/meetly/sync-client/internal/models"
)

// The two persisted session keys. They live and die together: Clear removes
// both in one statement.
const (
	keyAccessToken = "access_token"
	keyUserProfile = "user_profile"
)

// SessionRepository is the local stand-in for the browser's session
// storage: the bearer token and the cached profile of the authenticated
// user.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) put(key, value string) error {
	query := `
		INSERT INTO session_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("store session key %s: %w", key, err)
	}
	return nil
}

func (r *SessionRepository) get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM session_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session key %s: %w", key, err)
	}
	return value, nil
}

func (r *SessionRepository) SaveToken(token string) error {
	return r.put(keyAccessToken, token)
}

// Token returns the stored bearer token, or "" when no session is active.
func (r *SessionRepository) Token() (string, error) {
	return r.get(keyAccessToken)
}

func (r *SessionRepository) SaveProfile(user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user profile: %w", err)
	}
	return r.put(keyUserProfile, string(data))
}

// Profile returns the cached authenticated-user profile, or nil when none
// is stored.
func (r *SessionRepository) Profile() (*models.User, error) {
	raw, err := r.get(keyUserProfile)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decode cached user profile: %w", err)
	}
	return &user, nil
}

func (r *SessionRepository) Clear() error {
	query := `DELETE FROM session_state WHERE key IN (?, ?)`
	if _, err := r.db.Exec(query, keyAccessToken, keyUserProfile); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
