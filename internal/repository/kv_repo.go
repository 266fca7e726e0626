package repository

import (
	"database/sql"
	"fmt"

	"littlestars/internal/database"
	"littlestars/internal/models"
)

// KVRepository stores namespaced string values in the kv_entries table
type KVRepository struct {
	db database.DBTX
}

// NewKVRepository creates a repository over a database or a transaction
func NewKVRepository(db database.DBTX) *KVRepository {
	return &KVRepository{db: db}
}

// Get returns the value stored under key. The second result is false when
// nothing is stored.
func (r *KVRepository) Get(namespace, key string) (string, bool, error) {
	var value string
	query := `SELECT entry_value FROM kv_entries WHERE namespace = ? AND entry_key = ?`
	err := r.db.QueryRow(query, namespace, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get entry %s/%s: %w", namespace, key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value under key
func (r *KVRepository) Set(namespace, key, value string) error {
	if _, err := r.db.Exec(r.db.GetDialect().UpsertEntryQuery(), namespace, key, value); err != nil {
		return fmt.Errorf("failed to set entry %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *KVRepository) Delete(namespace, key string) error {
	query := `DELETE FROM kv_entries WHERE namespace = ? AND entry_key = ?`
	if _, err := r.db.Exec(query, namespace, key); err != nil {
		return fmt.Errorf("failed to delete entry %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Keys lists the keys stored in a namespace
func (r *KVRepository) Keys(namespace string) ([]string, error) {
	query := `SELECT entry_key FROM kv_entries WHERE namespace = ? ORDER BY entry_key`
	rows, err := r.db.Query(query, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// ListAll returns every entry in every namespace
func (r *KVRepository) ListAll() ([]models.KVEntry, error) {
	query := `
		SELECT namespace, entry_key, entry_value, updated_at
		FROM kv_entries
		ORDER BY namespace, entry_key
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []models.KVEntry
	for rows.Next() {
		var e models.KVEntry
		if err := rows.Scan(&e.Namespace, &e.Key, &e.Value, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear deletes every entry
func (r *KVRepository) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM kv_entries`); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	return nil
}
