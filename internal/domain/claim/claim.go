package claim

import "time"

// Claim represents a contract lecturer's request for payment for hours
// worked on a module. Identity and economic fields are immutable after
// creation; only Status and UpdatedAt mutate post-creation.
type Claim struct {
	ID         string  `json:"id"`
	LecturerID string  `json:"lecturer_id"`
	ProfileID  *string `json:"profile_id,omitempty"`

	Title      string `json:"title"`
	Notes      string `json:"notes,omitempty"`
	ModuleName string `json:"module_name"`
	ModuleCode string `json:"module_code"`
	FilePath   string `json:"file_path,omitempty"`

	HoursWorked float64 `json:"hours_worked"`
	HourlyRate  float64 `json:"hourly_rate"`

	Status Status `json:"status"`

	DateSubmitted time.Time  `json:"date_submitted"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`

	// Profile is populated on reads that join the lecturer profile; it is
	// never written back through the claim.
	Profile *LecturerProfile `json:"profile,omitempty"`
}

// Amount is the claim's payable total, derived on every read as
// HoursWorked * HourlyRate. It is never persisted as an independent field,
// so it cannot drift from the two source values.
func (c *Claim) Amount() float64 {
	return c.HoursWorked * c.HourlyRate
}

// LecturerProfile is a descriptive record keyed by the lecturer's identity,
// used only to enrich claim output. Create-or-update semantics only.
type LecturerProfile struct {
	ID                string `json:"id"`
	FullName          string `json:"full_name"`
	EmployeeID        string `json:"employee_id"`
	Email             string `json:"email"`
	QualificationName string `json:"qualification_name,omitempty"`
	QualificationCode string `json:"qualification_code,omitempty"`
	Faculty           string `json:"faculty,omitempty"`
	YearLevel         string `json:"year_level,omitempty"`
}
