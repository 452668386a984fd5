package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// LogRepository persists the append-only activity log. Writers tolerate
// failure; readers exist only for the admin CLI.
type LogRepository struct {
	db *DB
}

func NewLogRepository(db *DB) *LogRepository {
	return &LogRepository{db: db}
}

func (r *LogRepository) Insert(ctx context.Context, userID string, familyID *string, details map[string]any) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode log details: %w", err)
	}

	query := `INSERT INTO logs (user_id, family_id, details) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, userID, familyID, payload); err != nil {
		return fmt.Errorf("failed to insert log: %w", err)
	}
	return nil
}

// DeleteBefore trims log rows older than the cutoff and reports how many
// were removed.
func (r *LogRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune logs: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}
