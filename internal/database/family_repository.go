package database

import (
	"context"
	"database/sql"
	"fmt"

	"superfamily/internal/models"
)

type FamilyRepository struct {
	db *DB
}

func NewFamilyRepository(db *DB) *FamilyRepository {
	return &FamilyRepository{db: db}
}

const familyColumns = `id, name, slug, created_at, updated_at`

func scanFamily(row interface{ Scan(...any) error }) (*models.Family, error) {
	var f models.Family
	err := row.Scan(&f.ID, &f.Name, &f.Slug, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FamilyRepository) Create(ctx context.Context, params models.CreateFamilyParams) (*models.Family, error) {
	query := `
		INSERT INTO families (name, slug)
		VALUES ($1, $2)
		RETURNING ` + familyColumns

	family, err := scanFamily(r.db.QueryRowContext(ctx, query, params.Name, params.Slug))
	if isUniqueViolation(err) {
		return nil, ErrDuplicateSlug
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create family: %w", err)
	}

	return family, nil
}

func (r *FamilyRepository) GetByID(ctx context.Context, id string) (*models.Family, error) {
	query := `SELECT ` + familyColumns + ` FROM families WHERE id = $1`

	family, err := scanFamily(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrFamilyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}

	return family, nil
}

func (r *FamilyRepository) List(ctx context.Context) ([]*models.Family, error) {
	query := `SELECT ` + familyColumns + ` FROM families ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list families: %w", err)
	}
	defer rows.Close()

	var families []*models.Family
	for rows.Next() {
		family, err := scanFamily(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan family: %w", err)
		}
		families = append(families, family)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating families: %w", err)
	}

	return families, nil
}

func (r *FamilyRepository) Update(ctx context.Context, id string, params models.UpdateFamilyParams) (*models.Family, error) {
	query := `
		UPDATE families
		SET name = COALESCE($2, name),
		    slug = COALESCE($3, slug),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + familyColumns

	family, err := scanFamily(r.db.QueryRowContext(ctx, query, id, params.Name, params.Slug))
	if isUniqueViolation(err) {
		return nil, ErrDuplicateSlug
	}
	if err == sql.ErrNoRows {
		return nil, ErrFamilyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update family: %w", err)
	}

	return family, nil
}

func (r *FamilyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM families WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete family: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrFamilyNotFound
	}
	return nil
}
