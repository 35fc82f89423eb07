package policy

import (
	"testing"

	"github.com/campusworks/claimflow/internal/domain/claim"
)

func newClaim(hours, rate float64) *claim.Claim {
	return &claim.Claim{
		ID:          "c-1",
		LecturerID:  "lect-1",
		HoursWorked: hours,
		HourlyRate:  rate,
	}
}

func TestIsValid_NilClaim(t *testing.T) {
	if IsValid(nil, claim.RoleLecturer) {
		t.Error("nil claim should be invalid")
	}
}

func TestIsValid_HoursBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		role  claim.Role
		want  bool
	}{
		{"lecturer at ceiling", 24.0, claim.RoleLecturer, true},
		{"lecturer above ceiling", 24.01, claim.RoleLecturer, false},
		{"coordinator at ceiling", 40.0, claim.RoleCoordinator, true},
		{"coordinator above ceiling", 40.01, claim.RoleCoordinator, false},
		{"manager at ceiling", 50.0, claim.RoleManager, true},
		{"manager above ceiling", 50.01, claim.RoleManager, false},
		{"zero hours", 0, claim.RoleManager, false},
		{"negative hours", -1, claim.RoleLecturer, false},
		{"unknown role uses coordinator ceiling", 40.0, claim.RoleUnknown, true},
		{"unknown role above coordinator ceiling", 40.01, claim.RoleUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(newClaim(tt.hours, 100), tt.role); got != tt.want {
				t.Errorf("IsValid(hours=%v, role=%s) = %v, want %v", tt.hours, tt.role, got, tt.want)
			}
		})
	}
}

func TestIsValid_RateBoundaries(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		want bool
	}{
		{"rate at ceiling", 1000, true},
		{"rate above ceiling", 1000.01, false},
		{"zero rate", 0, false},
		{"negative rate", -5, false},
		{"normal rate", 450.50, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(newClaim(10, tt.rate), claim.RoleCoordinator); got != tt.want {
				t.Errorf("IsValid(rate=%v) = %v, want %v", tt.rate, got, tt.want)
			}
		})
	}
}

func TestIsValid_Pure(t *testing.T) {
	c := newClaim(10, 50)

	// Same inputs, same answer, every time
	for i := 0; i < 100; i++ {
		if !IsValid(c, claim.RoleLecturer) {
			t.Fatalf("IsValid became false on iteration %d", i)
		}
	}

	// The policy never mutates its input
	if c.HoursWorked != 10 || c.HourlyRate != 50 {
		t.Error("IsValid mutated the claim")
	}
}
