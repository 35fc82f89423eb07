package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campusworks/claimflow/internal/application/port"
	"github.com/campusworks/claimflow/internal/domain/claim"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ClaimService manages claim records and the single-claim status override
type ClaimService interface {
	// Create persists a new claim. New claims always start as Pending.
	Create(ctx context.Context, c *claim.Claim) (*claim.Claim, error)

	// GetByID returns the claim with the given id, or nil when the id is
	// blank or unknown
	GetByID(ctx context.Context, id string) (*claim.Claim, error)

	// GetAll returns every claim
	GetAll(ctx context.Context) ([]*claim.Claim, error)

	// GetByLecturer returns the claims owned by one lecturer; a blank id
	// yields an empty slice
	GetByLecturer(ctx context.Context, lecturerID string) ([]*claim.Claim, error)

	// SetStatus is the trusted manual override: it moves a claim directly
	// to the given status without revalidation. Returns false for blank
	// inputs, unparseable statuses, or unknown claims; storage failures
	// surface as errors.
	SetStatus(ctx context.Context, claimID, newStatus string) (bool, error)

	// Delete removes a claim; false when no such claim exists
	Delete(ctx context.Context, claimID string) (bool, error)

	// SaveProfile creates or updates a lecturer profile
	SaveProfile(ctx context.Context, p *claim.LecturerProfile) (*claim.LecturerProfile, error)

	// GetProfile returns the profile for a lecturer, or nil when absent
	GetProfile(ctx context.Context, lecturerID string) (*claim.LecturerProfile, error)

	// ListProfiles returns every lecturer profile, including lecturers with
	// no claims on record
	ListProfiles(ctx context.Context) ([]*claim.LecturerProfile, error)

	// FilterForViewer applies read-side visibility: lecturers see only
	// their own claims, every other role sees the input unfiltered
	FilterForViewer(claims []*claim.Claim, viewerRole claim.Role, viewerID string) []*claim.Claim
}

type claimServiceImpl struct {
	claimRepo   port.ClaimRepository
	profileRepo port.ProfileRepository
	logger      Logger
}

// NewClaimService creates a new ClaimService
func NewClaimService(claimRepo port.ClaimRepository, profileRepo port.ProfileRepository, logger Logger) ClaimService {
	return &claimServiceImpl{
		claimRepo:   claimRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Create persists a new claim owned by one lecturer
func (s *claimServiceImpl) Create(ctx context.Context, c *claim.Claim) (*claim.Claim, error) {
	if c == nil {
		return nil, fmt.Errorf("claim is nil")
	}
	if strings.TrimSpace(c.LecturerID) == "" {
		return nil, fmt.Errorf("lecturer id must be set before creating a claim")
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.DateSubmitted.IsZero() {
		c.DateSubmitted = time.Now()
	}

	// New claims always start as Pending regardless of caller input
	c.Status = claim.StatusPending
	c.UpdatedAt = nil

	if err := s.claimRepo.Create(ctx, c); err != nil {
		s.logger.Error("Failed to create claim", "error", err, "lecturer_id", c.LecturerID)
		return nil, err
	}

	s.logger.Info("Claim created", "id", c.ID, "lecturer_id", c.LecturerID)
	return c, nil
}

// GetByID retrieves a claim by id
func (s *claimServiceImpl) GetByID(ctx context.Context, id string) (*claim.Claim, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}

	c, err := s.claimRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get claim", "error", err, "id", id)
		return nil, err
	}
	return c, nil
}

// GetAll retrieves every claim
func (s *claimServiceImpl) GetAll(ctx context.Context) ([]*claim.Claim, error) {
	claims, err := s.claimRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list claims", "error", err)
		return nil, err
	}
	return claims, nil
}

// GetByLecturer retrieves the claims owned by one lecturer
func (s *claimServiceImpl) GetByLecturer(ctx context.Context, lecturerID string) ([]*claim.Claim, error) {
	if strings.TrimSpace(lecturerID) == "" {
		return []*claim.Claim{}, nil
	}

	claims, err := s.claimRepo.GetByLecturer(ctx, lecturerID)
	if err != nil {
		s.logger.Error("Failed to list claims by lecturer", "error", err, "lecturer_id", lecturerID)
		return nil, err
	}
	return claims, nil
}

// SetStatus moves a claim directly to the given status. The manual path
// intentionally leaves UpdatedAt alone; only the verifier/approver paths
// stamp it.
func (s *claimServiceImpl) SetStatus(ctx context.Context, claimID, newStatus string) (bool, error) {
	if strings.TrimSpace(claimID) == "" || strings.TrimSpace(newStatus) == "" {
		return false, nil
	}

	status, err := claim.ParseStatus(newStatus)
	if err != nil {
		s.logger.Error("Rejected status update", "id", claimID, "status", newStatus, "error", err)
		return false, nil
	}

	c, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		s.logger.Error("Failed to get claim for status update", "error", err, "id", claimID)
		return false, err
	}
	if c == nil {
		return false, nil
	}

	c.Status = status

	if err := s.claimRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to update claim status", "error", err, "id", claimID)
		return false, err
	}

	s.logger.Info("Claim status updated", "id", claimID, "status", status.String())
	return true, nil
}

// Delete removes a claim
func (s *claimServiceImpl) Delete(ctx context.Context, claimID string) (bool, error) {
	if strings.TrimSpace(claimID) == "" {
		return false, nil
	}

	deleted, err := s.claimRepo.Delete(ctx, claimID)
	if err != nil {
		s.logger.Error("Failed to delete claim", "error", err, "id", claimID)
		return false, err
	}

	if deleted {
		s.logger.Info("Claim deleted", "id", claimID)
	}
	return deleted, nil
}

// SaveProfile creates or updates a lecturer profile
func (s *claimServiceImpl) SaveProfile(ctx context.Context, p *claim.LecturerProfile) (*claim.LecturerProfile, error) {
	if p == nil || strings.TrimSpace(p.ID) == "" {
		return nil, fmt.Errorf("profile id must be set before saving")
	}

	if err := s.profileRepo.Save(ctx, p); err != nil {
		s.logger.Error("Failed to save profile", "error", err, "id", p.ID)
		return nil, err
	}

	s.logger.Info("Profile saved", "id", p.ID)
	return p, nil
}

// GetProfile retrieves a lecturer profile
func (s *claimServiceImpl) GetProfile(ctx context.Context, lecturerID string) (*claim.LecturerProfile, error) {
	if strings.TrimSpace(lecturerID) == "" {
		return nil, nil
	}

	p, err := s.profileRepo.Get(ctx, lecturerID)
	if err != nil {
		s.logger.Error("Failed to get profile", "error", err, "id", lecturerID)
		return nil, err
	}
	return p, nil
}

// ListProfiles retrieves every lecturer profile
func (s *claimServiceImpl) ListProfiles(ctx context.Context) ([]*claim.LecturerProfile, error) {
	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list profiles", "error", err)
		return nil, err
	}
	return profiles, nil
}

// FilterForViewer never mutates and never touches the store
func (s *claimServiceImpl) FilterForViewer(claims []*claim.Claim, viewerRole claim.Role, viewerID string) []*claim.Claim {
	if viewerRole != claim.RoleLecturer {
		return claims
	}

	owned := make([]*claim.Claim, 0, len(claims))
	for _, c := range claims {
		if c != nil && c.LecturerID == viewerID {
			owned = append(owned, c)
		}
	}
	return owned
}
