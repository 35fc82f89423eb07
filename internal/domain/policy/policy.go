// Package policy holds the numeric validation rules that gate lifecycle
// advancement. Everything here is pure computation over claim snapshots:
// no store access, no clock, no side effects.
package policy

import "github.com/campusworks/claimflow/internal/domain/claim"

// MaxHourlyRate is the global hourly-rate ceiling, independent of role.
const MaxHourlyRate = 1000

// IsValid reports whether a claim's numeric fields satisfy the rules for
// the given actor role:
//
//   - HoursWorked must be strictly positive and at most the role's ceiling
//     (Lecturer 24, Coordinator 40, Manager 50, unrecognized role treated
//     as Coordinator).
//   - HourlyRate must be strictly positive and at most MaxHourlyRate.
//
// Out-of-range data yields false, never an error. A nil claim is invalid.
func IsValid(c *claim.Claim, role claim.Role) bool {
	if c == nil {
		return false
	}

	if c.HoursWorked <= 0 || c.HoursWorked > role.MaxHours() {
		return false
	}

	if c.HourlyRate <= 0 || c.HourlyRate > MaxHourlyRate {
		return false
	}

	return true
}
