package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/campusworks/claimflow/internal/domain/claim"
)

func TestForClaim_PendingTransitions(t *testing.T) {
	m := ForClaim(claim.StatusPending)

	if !m.CanFire(TriggerVerify) {
		t.Error("Pending should permit VERIFY")
	}
	if !m.CanFire(TriggerReject) {
		t.Error("Pending should permit REJECT")
	}
	if m.CanFire(TriggerApprove) {
		t.Error("Pending should not permit APPROVE")
	}

	if err := m.Fire(context.Background(), TriggerVerify); err != nil {
		t.Fatalf("Fire(VERIFY) error = %v", err)
	}
	if m.Status() != claim.StatusVerified {
		t.Errorf("Status() = %v, want Verified", m.Status())
	}
}

func TestForClaim_VerifiedTransitions(t *testing.T) {
	m := ForClaim(claim.StatusVerified)

	if err := m.Fire(context.Background(), TriggerApprove); err != nil {
		t.Fatalf("Fire(APPROVE) error = %v", err)
	}
	if m.Status() != claim.StatusApproved {
		t.Errorf("Status() = %v, want Approved", m.Status())
	}
}

func TestForClaim_RejectFromEitherSource(t *testing.T) {
	for _, source := range []claim.Status{claim.StatusPending, claim.StatusVerified} {
		m := ForClaim(source)
		if err := m.Fire(context.Background(), TriggerReject); err != nil {
			t.Fatalf("Fire(REJECT) from %s error = %v", source, err)
		}
		if m.Status() != claim.StatusRejected {
			t.Errorf("Status() = %v, want Rejected", m.Status())
		}
	}
}

func TestForClaim_TerminalStatuses(t *testing.T) {
	for _, terminal := range []claim.Status{claim.StatusApproved, claim.StatusRejected} {
		m := ForClaim(terminal)

		if got := m.PermittedTriggers(); len(got) != 0 {
			t.Errorf("PermittedTriggers() from %s = %v, want none", terminal, got)
		}

		err := m.Fire(context.Background(), TriggerVerify)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Fire from %s error = %v, want ErrInvalidTransition", terminal, err)
		}
	}
}

func TestForClaim_InvalidTrigger(t *testing.T) {
	m := ForClaim(claim.StatusPending)

	err := m.Fire(context.Background(), TriggerApprove)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Fire(APPROVE) from Pending error = %v, want ErrInvalidTransition", err)
	}
	if m.Status() != claim.StatusPending {
		t.Error("failed Fire must not change the status")
	}
}

func TestBuilder_PermitIfGuard(t *testing.T) {
	allow := false

	b := NewBuilder()
	b.Configure(claim.StatusPending).
		PermitIf(TriggerVerify, claim.StatusVerified, func(ctx context.Context) bool {
			return allow
		})

	m := b.Build(claim.StatusPending)

	err := m.Fire(context.Background(), TriggerVerify)
	if !errors.Is(err, ErrGuardFailed) {
		t.Fatalf("Fire with failing guard error = %v, want ErrGuardFailed", err)
	}
	if m.Status() != claim.StatusPending {
		t.Error("guard failure must not change the status")
	}

	allow = true
	if err := m.Fire(context.Background(), TriggerVerify); err != nil {
		t.Fatalf("Fire with passing guard error = %v", err)
	}
	if m.Status() != claim.StatusVerified {
		t.Errorf("Status() = %v, want Verified", m.Status())
	}
}

func TestBuilder_BuildIsolatesConfiguration(t *testing.T) {
	b := NewBuilder()
	b.Configure(claim.StatusPending).Permit(TriggerVerify, claim.StatusVerified)

	m := b.Build(claim.StatusPending)

	// Mutating the builder afterwards must not leak into built machines
	b.Configure(claim.StatusPending).Permit(TriggerApprove, claim.StatusApproved)

	if m.CanFire(TriggerApprove) {
		t.Error("machine picked up configuration added after Build")
	}
}

func TestBuilder_InvalidStatusPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Configure with an invalid status should panic")
		}
	}()

	NewBuilder().Configure(claim.Status("Archived"))
}
