package lifecycle

import "github.com/campusworks/claimflow/internal/domain/claim"

// ForClaim builds the auto-processing lifecycle machine positioned at the
// given status:
//
//	Pending  --VERIFY-->  Verified   Pending  --REJECT--> Rejected
//	Verified --APPROVE--> Approved   Verified --REJECT--> Rejected
//
// Approved and Rejected have no outgoing transitions under auto-processing.
// Manual status overrides by verifier/approver roles bypass this graph.
func ForClaim(status claim.Status) Machine {
	b := NewBuilder()

	b.Configure(claim.StatusPending).
		Permit(TriggerVerify, claim.StatusVerified).
		Permit(TriggerReject, claim.StatusRejected)

	b.Configure(claim.StatusVerified).
		Permit(TriggerApprove, claim.StatusApproved).
		Permit(TriggerReject, claim.StatusRejected)

	return b.Build(status)
}
