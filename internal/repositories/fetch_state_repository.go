package repositories

import (
	"database/sql"
	"errors"
	"time"

	"github.com/alimgiray/ghdash/internal/models"
)

// FetchStateRepository stores the per-session state of lazy fetches.
// Claims are single statements, so two triggers for the same key can never both win.
type FetchStateRepository struct {
	db *sql.DB
}

func NewFetchStateRepository(db *sql.DB) *FetchStateRepository {
	return &FetchStateRepository{
		db: db,
	}
}

// Claim marks a fetch as pending if it was never attempted.
// It returns true when the caller should perform the fetch.
func (r *FetchStateRepository) Claim(sessionID string, kind models.FetchKind, key string) (bool, error) {
	query := `
		INSERT INTO fetch_states (session_id, kind, fetch_key, state, expanded, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, ?, ?)
		ON CONFLICT (session_id, kind, fetch_key) DO NOTHING
	`

	now := time.Now()
	result, err := r.db.Exec(query, sessionID, string(kind), key, string(models.FetchStatePending), now, now)
	if err != nil {
		return false, err
	}
	return claimed(result)
}

// ClaimRetryable is Claim that also reclaims a fetch whose previous attempt failed
func (r *FetchStateRepository) ClaimRetryable(sessionID string, kind models.FetchKind, key string) (bool, error) {
	query := `
		INSERT INTO fetch_states (session_id, kind, fetch_key, state, expanded, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, ?, ?)
		ON CONFLICT (session_id, kind, fetch_key) DO UPDATE
		SET state = excluded.state, error_message = NULL, updated_at = excluded.updated_at
		WHERE fetch_states.state = ?
	`

	now := time.Now()
	result, err := r.db.Exec(query, sessionID, string(kind), key, string(models.FetchStatePending), now, now, string(models.FetchStateFailed))
	if err != nil {
		return false, err
	}
	return claimed(result)
}

// MarkDone stores the payload of a completed fetch
func (r *FetchStateRepository) MarkDone(sessionID string, kind models.FetchKind, key string, payload []byte, expanded bool) error {
	query := `
		UPDATE fetch_states
		SET state = ?, payload = ?, expanded = ?, error_message = NULL, updated_at = ?
		WHERE session_id = ? AND kind = ? AND fetch_key = ?
	`

	_, err := r.db.Exec(query, string(models.FetchStateDone), string(payload), expanded, time.Now(), sessionID, string(kind), key)
	return err
}

// MarkFailed records why a fetch failed
func (r *FetchStateRepository) MarkFailed(sessionID string, kind models.FetchKind, key, message string) error {
	query := `
		UPDATE fetch_states
		SET state = ?, error_message = ?, expanded = 0, updated_at = ?
		WHERE session_id = ? AND kind = ? AND fetch_key = ?
	`

	_, err := r.db.Exec(query, string(models.FetchStateFailed), message, time.Now(), sessionID, string(kind), key)
	return err
}

// SetExpanded toggles the expanded flag of a completed fetch.
// It returns false when there is no completed fetch for the key.
func (r *FetchStateRepository) SetExpanded(sessionID string, kind models.FetchKind, key string, expanded bool) (bool, error) {
	query := `
		UPDATE fetch_states
		SET expanded = ?, updated_at = ?
		WHERE session_id = ? AND kind = ? AND fetch_key = ? AND state = ?
	`

	result, err := r.db.Exec(query, expanded, time.Now(), sessionID, string(kind), key, string(models.FetchStateDone))
	if err != nil {
		return false, err
	}
	return claimed(result)
}

// Get retrieves the state of one fetch, or nil if it was never attempted
func (r *FetchStateRepository) Get(sessionID string, kind models.FetchKind, key string) (*models.FetchRecord, error) {
	query := `
		SELECT session_id, kind, fetch_key, state, expanded, payload, error_message
		FROM fetch_states
		WHERE session_id = ? AND kind = ? AND fetch_key = ?
	`

	var record models.FetchRecord
	var kindValue, stateValue string
	var payload, errorMessage sql.NullString
	err := r.db.QueryRow(query, sessionID, string(kind), key).Scan(
		&record.SessionID,
		&kindValue,
		&record.Key,
		&stateValue,
		&record.Expanded,
		&payload,
		&errorMessage,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	record.Kind = models.FetchKind(kindValue)
	record.State = models.FetchState(stateValue)
	if payload.Valid {
		record.Payload = []byte(payload.String)
	}
	record.Error = errorMessage.String
	return &record, nil
}

// Delete forgets one fetch so the next trigger starts from scratch
func (r *FetchStateRepository) Delete(sessionID string, kind models.FetchKind, key string) error {
	query := `DELETE FROM fetch_states WHERE session_id = ? AND kind = ? AND fetch_key = ?`
	_, err := r.db.Exec(query, sessionID, string(kind), key)
	return err
}

// DeleteBySession removes every fetch of a session and returns how many were removed
func (r *FetchStateRepository) DeleteBySession(sessionID string) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM fetch_states WHERE session_id = ?`, sessionID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func claimed(result sql.Result) (bool, error) {
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}
