package port

import (
	"context"

	"github.com/campusworks/claimflow/internal/domain/claim"
)

// ClaimRepository defines persistence operations for Claim.
// The store exclusively owns durable claim state; services borrow records
// for the duration of one operation and hand them back for persistence.
type ClaimRepository interface {
	// Create persists a new claim
	Create(ctx context.Context, c *claim.Claim) error

	// GetByID retrieves a claim by id; (nil, nil) when no such claim exists
	GetByID(ctx context.Context, id string) (*claim.Claim, error)

	// GetAll retrieves every claim, profile-enriched, newest first
	GetAll(ctx context.Context) ([]*claim.Claim, error)

	// GetByLecturer retrieves the claims owned by a lecturer
	GetByLecturer(ctx context.Context, lecturerID string) ([]*claim.Claim, error)

	// GetByStatus retrieves claims whose stored status matches after
	// trimming and case folding, in submission order
	GetByStatus(ctx context.Context, status claim.Status) ([]*claim.Claim, error)

	// Update persists the mutable fields (status, updated_at) of one claim
	Update(ctx context.Context, c *claim.Claim) error

	// UpdateBatch persists the mutable fields of many claims as one batch;
	// callers wanting all-or-nothing run it inside a transaction
	UpdateBatch(ctx context.Context, claims []*claim.Claim) error

	// Delete removes a claim; returns false when no row matched
	Delete(ctx context.Context, id string) (bool, error)
}

// ProfileRepository defines persistence operations for LecturerProfile
type ProfileRepository interface {
	// Get retrieves a profile by lecturer id; (nil, nil) when absent
	Get(ctx context.Context, lecturerID string) (*claim.LecturerProfile, error)

	// Save creates the profile or updates the existing one in place
	Save(ctx context.Context, p *claim.LecturerProfile) error

	// List retrieves all profiles
	List(ctx context.Context) ([]*claim.LecturerProfile, error)
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
