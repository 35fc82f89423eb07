package claim

import (
	"fmt"
	"strings"
)

// Status represents a claim's position in the reimbursement lifecycle
type Status string

const (
	StatusPending  Status = "Pending"
	StatusVerified Status = "Verified"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

var validStatuses = map[Status]bool{
	StatusPending:  true,
	StatusVerified: true,
	StatusApproved: true,
	StatusRejected: true,
}

// Statuses terminal under auto-processing; manual overrides may still move
// claims out of them.
var terminalStatuses = map[Status]bool{
	StatusApproved: true,
	StatusRejected: true,
}

// ParseStatus normalizes a raw status string to its canonical form.
// Input is trimmed and matched case-insensitively; unrecognized values are
// rejected here rather than deep in business logic.
func ParseStatus(raw string) (Status, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("status is empty")
	}

	for s := range validStatuses {
		if strings.EqualFold(trimmed, string(s)) {
			return s, nil
		}
	}

	return "", fmt.Errorf("unrecognized status: %q", raw)
}

// IsTerminal returns true if auto-processing never moves a claim out of this status
func (s Status) IsTerminal() bool {
	return terminalStatuses[s]
}

// IsValid returns true if the status is one of the four lifecycle statuses
func (s Status) IsValid() bool {
	return validStatuses[s]
}

// Equals compares statuses with the same trimmed, case-insensitive rules
// the store uses for filtering
func (s Status) Equals(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), string(s))
}

// String returns the canonical string representation of the status
func (s Status) String() string {
	return string(s)
}
