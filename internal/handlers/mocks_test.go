package handlers

import (
	"context"

	"superfamily/internal/models"
)

// MockUserStore implements UserStore for testing
type MockUserStore struct {
	CreateFunc         func(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByIDFunc        func(ctx context.Context, id string) (*models.User, error)
	GetByEmailFunc     func(ctx context.Context, email string) (*models.User, error)
	GetWithFamilyFunc  func(ctx context.Context, id string) (*models.User, error)
	UpdateFunc         func(ctx context.Context, id string, params models.UpdateUserParams) (*models.User, error)
	UpdatePasswordFunc func(ctx context.Context, id, passwordHash string) error
	SetLoginStateFunc  func(ctx context.Context, id string, isLogin bool) error
	SetFamilyFunc      func(ctx context.Context, id, familyID string) (*models.User, error)
}

func (m *MockUserStore) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserStore) GetWithFamily(ctx context.Context, id string) (*models.User, error) {
	if m.GetWithFamilyFunc != nil {
		return m.GetWithFamilyFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserStore) Update(ctx context.Context, id string, params models.UpdateUserParams) (*models.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockUserStore) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

func (m *MockUserStore) SetLoginState(ctx context.Context, id string, isLogin bool) error {
	if m.SetLoginStateFunc != nil {
		return m.SetLoginStateFunc(ctx, id, isLogin)
	}
	return nil
}

func (m *MockUserStore) SetFamily(ctx context.Context, id, familyID string) (*models.User, error) {
	if m.SetFamilyFunc != nil {
		return m.SetFamilyFunc(ctx, id, familyID)
	}
	return nil, nil
}

// MockCategoryStore implements CategoryStore for testing
type MockCategoryStore struct {
	CreateFunc  func(ctx context.Context, params models.CreateCategoryParams) (*models.Category, error)
	GetByIDFunc func(ctx context.Context, id string) (*models.Category, error)
	ListFunc    func(ctx context.Context) ([]*models.Category, error)
	UpdateFunc  func(ctx context.Context, id string, params models.UpdateCategoryParams) (*models.Category, error)
	DeleteFunc  func(ctx context.Context, id string) error
}

func (m *MockCategoryStore) Create(ctx context.Context, params models.CreateCategoryParams) (*models.Category, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockCategoryStore) GetByID(ctx context.Context, id string) (*models.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCategoryStore) List(ctx context.Context) ([]*models.Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockCategoryStore) Update(ctx context.Context, id string, params models.UpdateCategoryParams) (*models.Category, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockCategoryStore) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
