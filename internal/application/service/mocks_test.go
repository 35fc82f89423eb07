package service

import (
	"context"

	"github.com/campusworks/claimflow/internal/domain/claim"
)

// mockClaimRepo implements port.ClaimRepository with overridable behaviour
// per test case
type mockClaimRepo struct {
	createFunc        func(ctx context.Context, c *claim.Claim) error
	getByIDFunc       func(ctx context.Context, id string) (*claim.Claim, error)
	getAllFunc        func(ctx context.Context) ([]*claim.Claim, error)
	getByLecturerFunc func(ctx context.Context, lecturerID string) ([]*claim.Claim, error)
	getByStatusFunc   func(ctx context.Context, status claim.Status) ([]*claim.Claim, error)
	updateFunc        func(ctx context.Context, c *claim.Claim) error
	updateBatchFunc   func(ctx context.Context, claims []*claim.Claim) error
	deleteFunc        func(ctx context.Context, id string) (bool, error)
}

func (m *mockClaimRepo) Create(ctx context.Context, c *claim.Claim) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, c)
	}
	return nil
}

func (m *mockClaimRepo) GetByID(ctx context.Context, id string) (*claim.Claim, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockClaimRepo) GetAll(ctx context.Context) ([]*claim.Claim, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx)
	}
	return []*claim.Claim{}, nil
}

func (m *mockClaimRepo) GetByLecturer(ctx context.Context, lecturerID string) ([]*claim.Claim, error) {
	if m.getByLecturerFunc != nil {
		return m.getByLecturerFunc(ctx, lecturerID)
	}
	return []*claim.Claim{}, nil
}

func (m *mockClaimRepo) GetByStatus(ctx context.Context, status claim.Status) ([]*claim.Claim, error) {
	if m.getByStatusFunc != nil {
		return m.getByStatusFunc(ctx, status)
	}
	return []*claim.Claim{}, nil
}

func (m *mockClaimRepo) Update(ctx context.Context, c *claim.Claim) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, c)
	}
	return nil
}

func (m *mockClaimRepo) UpdateBatch(ctx context.Context, claims []*claim.Claim) error {
	if m.updateBatchFunc != nil {
		return m.updateBatchFunc(ctx, claims)
	}
	return nil
}

func (m *mockClaimRepo) Delete(ctx context.Context, id string) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return false, nil
}

// mockProfileRepo implements port.ProfileRepository
type mockProfileRepo struct {
	getFunc  func(ctx context.Context, lecturerID string) (*claim.LecturerProfile, error)
	saveFunc func(ctx context.Context, p *claim.LecturerProfile) error
	listFunc func(ctx context.Context) ([]*claim.LecturerProfile, error)
}

func (m *mockProfileRepo) Get(ctx context.Context, lecturerID string) (*claim.LecturerProfile, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, lecturerID)
	}
	return nil, nil
}

func (m *mockProfileRepo) Save(ctx context.Context, p *claim.LecturerProfile) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, p)
	}
	return nil
}

func (m *mockProfileRepo) List(ctx context.Context) ([]*claim.LecturerProfile, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []*claim.LecturerProfile{}, nil
}

// mockTxManager runs the callback inline; tests override withTxFunc to
// observe or fail the transaction
type mockTxManager struct {
	withTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.withTxFunc != nil {
		return m.withTxFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockLogger struct{}

func (mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (mockLogger) Error(msg string, keysAndValues ...interface{}) {}
