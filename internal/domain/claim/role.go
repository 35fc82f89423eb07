package claim

import "strings"

// Role represents the actor role driving a lifecycle operation.
// Roles are supplied by the surrounding identity provider; the engine
// receives them as plain input and never queries the provider itself.
type Role string

const (
	RoleLecturer    Role = "Lecturer"
	RoleCoordinator Role = "Coordinator"
	RoleManager     Role = "Manager"

	// RoleUnknown is the named fallback for blank or unrecognized role
	// strings. It validates against the Coordinator hour ceiling; this is a
	// deliberate policy choice inherited from the claims office, not an
	// error path.
	RoleUnknown Role = "Unknown"
)

// Per-role maximum for hours worked on a single claim.
const (
	maxHoursLecturer    = 24
	maxHoursCoordinator = 40
	maxHoursManager     = 50
)

// ParseRole maps a raw role string to a Role. Unrecognized input yields
// RoleUnknown rather than an error.
func ParseRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "lecturer":
		return RoleLecturer
	case "coordinator":
		return RoleCoordinator
	case "manager":
		return RoleManager
	default:
		return RoleUnknown
	}
}

// MaxHours returns the hours-worked ceiling the validation policy applies
// for this role. RoleUnknown uses the Coordinator ceiling.
func (r Role) MaxHours() float64 {
	switch r {
	case RoleLecturer:
		return maxHoursLecturer
	case RoleCoordinator:
		return maxHoursCoordinator
	case RoleManager:
		return maxHoursManager
	default:
		return maxHoursCoordinator
	}
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}
