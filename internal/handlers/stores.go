package handlers

import (
	"context"
	"time"

	"superfamily/internal/models"
)

// Store interfaces keep handlers decoupled from the SQL layer. The concrete
// repositories in internal/database satisfy them; tests substitute mocks.

type UserStore interface {
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetWithFamily(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, params models.UpdateUserParams) (*models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetLoginState(ctx context.Context, id string, isLogin bool) error
	SetFamily(ctx context.Context, id, familyID string) (*models.User, error)
}

type FamilyStore interface {
	Create(ctx context.Context, params models.CreateFamilyParams) (*models.Family, error)
	GetByID(ctx context.Context, id string) (*models.Family, error)
	List(ctx context.Context) ([]*models.Family, error)
	Update(ctx context.Context, id string, params models.UpdateFamilyParams) (*models.Family, error)
	Delete(ctx context.Context, id string) error
}

type CategoryStore interface {
	Create(ctx context.Context, params models.CreateCategoryParams) (*models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	Update(ctx context.Context, id string, params models.UpdateCategoryParams) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}

type TransactionStore interface {
	Create(ctx context.Context, params models.CreateTransactionParams) (*models.Transaction, error)
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	List(ctx context.Context, filter models.TransactionFilter, limit, offset int) ([]*models.Transaction, int, error)
	Update(ctx context.Context, id string, params models.UpdateTransactionParams) (*models.Transaction, error)
	Delete(ctx context.Context, id string) error
	StatRows(ctx context.Context, familyID string, from, to *time.Time) ([]models.StatRow, error)
}

type InviteStore interface {
	Create(ctx context.Context, code, familyID string, expiresAt time.Time) (*models.FamilyInvite, error)
	GetValid(ctx context.Context, code string) (*models.FamilyInvite, error)
}
