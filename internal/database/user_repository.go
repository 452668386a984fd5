package database

import (
	"context"
	"database/sql"
	"fmt"

	"superfamily/internal/models"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, phone, password, role, family_id, is_login, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash,
		&user.Role, &user.FamilyID, &user.IsLogin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	query := `
		INSERT INTO users (name, email, phone, password, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(
		ctx, query,
		params.Name, params.Email, params.Phone, params.PasswordHash, params.Role,
	))
	if isUniqueViolation(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetWithFamily returns the user together with the joined family, when any.
func (r *UserRepository) GetWithFamily(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT u.id, u.name, u.email, u.phone, u.password, u.role, u.family_id,
		       u.is_login, u.created_at, u.updated_at,
		       f.id, f.name, f.slug, f.created_at, f.updated_at
		FROM users u
		LEFT JOIN families f ON f.id = u.family_id
		WHERE u.id = $1
	`

	var user models.User
	var famID, famName, famSlug sql.NullString
	var famCreated, famUpdated sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash,
		&user.Role, &user.FamilyID, &user.IsLogin, &user.CreatedAt, &user.UpdatedAt,
		&famID, &famName, &famSlug, &famCreated, &famUpdated,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if famID.Valid {
		user.Family = &models.Family{
			ID:        famID.String,
			Name:      famName.String,
			Slug:      famSlug.String,
			CreatedAt: famCreated.Time,
			UpdatedAt: famUpdated.Time,
		}
	}

	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, params models.UpdateUserParams) (*models.User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($2, name),
		    phone = COALESCE($3, phone),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id, params.Name, params.Phone))
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetLoginState(ctx context.Context, id string, isLogin bool) error {
	query := `UPDATE users SET is_login = $2, updated_at = NOW() WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, isLogin); err != nil {
		return fmt.Errorf("failed to update login state: %w", err)
	}
	return nil
}

// SetFamily joins the user to a family and returns the user with the family
// row attached.
func (r *UserRepository) SetFamily(ctx context.Context, id, familyID string) (*models.User, error) {
	query := `UPDATE users SET family_id = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to join family: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, ErrUserNotFound
	}

	return r.GetWithFamily(ctx, id)
}
