package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"superfamily/internal/models"
)

type InviteRepository struct {
	db *DB
}

func NewInviteRepository(db *DB) *InviteRepository {
	return &InviteRepository{db: db}
}

func (r *InviteRepository) Create(ctx context.Context, code, familyID string, expiresAt time.Time) (*models.FamilyInvite, error) {
	query := `
		INSERT INTO family_invites (code, family_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING code, family_id, expires_at, created_at
	`

	var invite models.FamilyInvite
	err := r.db.QueryRowContext(ctx, query, code, familyID, expiresAt).Scan(
		&invite.Code, &invite.FamilyID, &invite.ExpiresAt, &invite.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}

	return &invite, nil
}

// GetValid returns the invite only when it has not expired yet.
func (r *InviteRepository) GetValid(ctx context.Context, code string) (*models.FamilyInvite, error) {
	query := `
		SELECT code, family_id, expires_at, created_at
		FROM family_invites
		WHERE code = $1 AND expires_at > NOW()
	`

	var invite models.FamilyInvite
	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&invite.Code, &invite.FamilyID, &invite.ExpiresAt, &invite.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrInviteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}

	return &invite, nil
}

// DeleteExpired purges invites past their expiry and reports how many were
// removed.
func (r *InviteRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM family_invites WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge invites: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}
