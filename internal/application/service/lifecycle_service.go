package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/campusworks/claimflow/internal/application/port"
	"github.com/campusworks/claimflow/internal/domain/claim"
	"github.com/campusworks/claimflow/internal/domain/lifecycle"
	"github.com/campusworks/claimflow/internal/domain/policy"
)

// BatchResult reports the outcome of one batch lifecycle operation.
// Every claim in the snapshot appears in exactly one of the two id lists,
// in snapshot iteration order.
type BatchResult struct {
	Total       int      `json:"total"`
	AcceptedIDs []string `json:"accepted_ids"`
	RejectedIDs []string `json:"rejected_ids"`
}

// LifecycleService drives claims through the verification/approval
// lifecycle: batch auto-transitions gated by the validation policy, plus
// the single-claim approver paths that stamp UpdatedAt.
//
// Batch operations read a snapshot and later write a batch without a lock
// spanning the whole operation. Two concurrent batch calls can select
// overlapping claims; the last write wins and the loser's result may
// describe transitions the store no longer reflects. This matches the
// store's read-snapshot-then-write contract and is a documented limitation,
// not a guarantee.
type LifecycleService interface {
	// AutoVerify validates every Pending claim under the given role and
	// moves it to Verified (valid) or Rejected (invalid)
	AutoVerify(ctx context.Context, role claim.Role) (*BatchResult, error)

	// AutoApprove validates every Verified claim under the given role and
	// moves it to Approved (valid) or Rejected (invalid)
	AutoApprove(ctx context.Context, role claim.Role) (*BatchResult, error)

	// RejectPending moves every Pending claim to Rejected without
	// validation; returns how many claims were rejected
	RejectPending(ctx context.Context) (int, error)

	// Approve moves a single claim to Approved and stamps UpdatedAt;
	// false when the claim does not exist
	Approve(ctx context.Context, claimID, processedBy string) (bool, error)

	// Reject moves a single claim to Rejected and stamps UpdatedAt;
	// false when the claim does not exist
	Reject(ctx context.Context, claimID, processedBy string) (bool, error)

	// BatchApprove approves the listed claims one by one, partitioning ids
	// into approved and failed
	BatchApprove(ctx context.Context, claimIDs []string, processedBy string) (*BatchResult, error)
}

type lifecycleServiceImpl struct {
	claimRepo port.ClaimRepository
	txManager port.TransactionManager
	logger    Logger
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(claimRepo port.ClaimRepository, txManager port.TransactionManager, logger Logger) LifecycleService {
	return &lifecycleServiceImpl{
		claimRepo: claimRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// AutoVerify processes the Pending snapshot
func (s *lifecycleServiceImpl) AutoVerify(ctx context.Context, role claim.Role) (*BatchResult, error) {
	return s.autoProcess(ctx, claim.StatusPending, lifecycle.TriggerVerify, role)
}

// AutoApprove processes the Verified snapshot
func (s *lifecycleServiceImpl) AutoApprove(ctx context.Context, role claim.Role) (*BatchResult, error) {
	return s.autoProcess(ctx, claim.StatusVerified, lifecycle.TriggerApprove, role)
}

// autoProcess is the shared batch skeleton: snapshot the source status,
// partition by policy, persist the whole snapshot as one transactional
// batch write. Claims outside the source status are untouched.
func (s *lifecycleServiceImpl) autoProcess(ctx context.Context, source claim.Status, onValid lifecycle.Trigger, role claim.Role) (*BatchResult, error) {
	snapshot, err := s.claimRepo.GetByStatus(ctx, source)
	if err != nil {
		s.logger.Error("Failed to snapshot claims", "error", err, "status", source.String())
		return nil, err
	}

	result := &BatchResult{
		Total:       len(snapshot),
		AcceptedIDs: []string{},
		RejectedIDs: []string{},
	}

	// Empty snapshot is a no-op, not an error
	if len(snapshot) == 0 {
		return result, nil
	}

	for _, c := range snapshot {
		m := lifecycle.ForClaim(c.Status)

		trigger := lifecycle.TriggerReject
		if policy.IsValid(c, role) {
			trigger = onValid
		}

		if err := m.Fire(ctx, trigger); err != nil {
			return nil, fmt.Errorf("advance claim %s: %w", c.ID, err)
		}

		c.Status = m.Status()
		now := time.Now()
		c.UpdatedAt = &now

		if trigger == onValid {
			result.AcceptedIDs = append(result.AcceptedIDs, c.ID)
		} else {
			result.RejectedIDs = append(result.RejectedIDs, c.ID)
		}
	}

	// One batch write; a failed commit leaves nothing durable and nothing
	// to report as committed
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.claimRepo.UpdateBatch(txCtx, snapshot)
	})
	if err != nil {
		s.logger.Error("Failed to persist batch transition", "error", err, "status", source.String())
		return nil, err
	}

	s.logger.Info("Batch transition completed",
		"source", source.String(),
		"role", role.String(),
		"total", result.Total,
		"accepted", len(result.AcceptedIDs),
		"rejected", len(result.RejectedIDs))

	return result, nil
}

// RejectPending bulk-rejects every Pending claim without validation
func (s *lifecycleServiceImpl) RejectPending(ctx context.Context) (int, error) {
	snapshot, err := s.claimRepo.GetByStatus(ctx, claim.StatusPending)
	if err != nil {
		s.logger.Error("Failed to snapshot pending claims", "error", err)
		return 0, err
	}

	if len(snapshot) == 0 {
		return 0, nil
	}

	for _, c := range snapshot {
		c.Status = claim.StatusRejected
		now := time.Now()
		c.UpdatedAt = &now
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.claimRepo.UpdateBatch(txCtx, snapshot)
	})
	if err != nil {
		s.logger.Error("Failed to persist bulk rejection", "error", err)
		return 0, err
	}

	s.logger.Info("Pending claims rejected", "count", len(snapshot))
	return len(snapshot), nil
}

// Approve moves a single claim to Approved
func (s *lifecycleServiceImpl) Approve(ctx context.Context, claimID, processedBy string) (bool, error) {
	return s.setProcessed(ctx, claimID, processedBy, claim.StatusApproved)
}

// Reject moves a single claim to Rejected
func (s *lifecycleServiceImpl) Reject(ctx context.Context, claimID, processedBy string) (bool, error) {
	return s.setProcessed(ctx, claimID, processedBy, claim.StatusRejected)
}

// setProcessed is the approver-side single-claim path; unlike the manual
// SetStatus override it stamps UpdatedAt, which reports later read as the
// approval date.
func (s *lifecycleServiceImpl) setProcessed(ctx context.Context, claimID, processedBy string, target claim.Status) (bool, error) {
	if strings.TrimSpace(claimID) == "" {
		return false, nil
	}

	c, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		s.logger.Error("Failed to get claim", "error", err, "id", claimID)
		return false, err
	}
	if c == nil {
		return false, nil
	}

	c.Status = target
	now := time.Now()
	c.UpdatedAt = &now

	if err := s.claimRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to update claim", "error", err, "id", claimID)
		return false, err
	}

	s.logger.Info("Claim processed", "id", claimID, "status", target.String(), "processed_by", processedBy)
	return true, nil
}

// BatchApprove approves the listed claims one by one
func (s *lifecycleServiceImpl) BatchApprove(ctx context.Context, claimIDs []string, processedBy string) (*BatchResult, error) {
	result := &BatchResult{
		Total:       len(claimIDs),
		AcceptedIDs: []string{},
		RejectedIDs: []string{},
	}

	for _, id := range claimIDs {
		ok, err := s.Approve(ctx, id, processedBy)
		if err != nil {
			return nil, err
		}
		if ok {
			result.AcceptedIDs = append(result.AcceptedIDs, id)
		} else {
			result.RejectedIDs = append(result.RejectedIDs, id)
		}
	}

	return result, nil
}
