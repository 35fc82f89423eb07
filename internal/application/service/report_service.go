package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/campusworks/claimflow/internal/application/port"
	"github.com/campusworks/claimflow/internal/domain/claim"
)

// StatusSummary aggregates claim counts and the derived total amount
type StatusSummary struct {
	TotalClaims int     `json:"total_claims"`
	Pending     int     `json:"pending"`
	Verified    int     `json:"verified"`
	Approved    int     `json:"approved"`
	Rejected    int     `json:"rejected"`
	TotalAmount float64 `json:"total_amount"`
}

// LecturerSummary aggregates claims per lecturer
type LecturerSummary struct {
	LecturerID     string  `json:"lecturer_id"`
	LecturerName   string  `json:"lecturer_name"`
	TotalClaims    int     `json:"total_claims"`
	ApprovedClaims int     `json:"approved_claims"`
	TotalAmount    float64 `json:"total_amount"`
}

// MonthlyReportRow is one approved claim in a monthly report
type MonthlyReportRow struct {
	ClaimID      string    `json:"claim_id"`
	LecturerID   string    `json:"lecturer_id"`
	LecturerName string    `json:"lecturer_name"`
	EmployeeID   string    `json:"employee_id"`
	Faculty      string    `json:"faculty"`
	ModuleName   string    `json:"module_name"`
	ModuleCode   string    `json:"module_code"`
	HoursWorked  float64   `json:"hours_worked"`
	HourlyRate   float64   `json:"hourly_rate"`
	Amount       float64   `json:"amount"`
	ApprovalDate time.Time `json:"approval_date"`
}

// MonthlyReport lists the approved claims for one calendar month
type MonthlyReport struct {
	Month       int                `json:"month"`
	Year        int                `json:"year"`
	Rows        []MonthlyReportRow `json:"rows"`
	Total       float64            `json:"total"`
	GeneratedOn time.Time          `json:"generated_on"`
}

// ReportService computes read-only projections over the claim store.
// Amounts are always derived per read from hours and rate; nothing here
// mutates claims.
type ReportService interface {
	Summary(ctx context.Context) (*StatusSummary, error)
	LecturerSummary(ctx context.Context) ([]*LecturerSummary, error)
	MonthlyReport(ctx context.Context, month, year int) (*MonthlyReport, error)

	// ExportMonthlyReport writes the monthly report as an xlsx workbook
	ExportMonthlyReport(ctx context.Context, month, year int, outputPath string) error
}

type reportServiceImpl struct {
	claimRepo port.ClaimRepository
	logger    Logger
}

// NewReportService creates a new ReportService
func NewReportService(claimRepo port.ClaimRepository, logger Logger) ReportService {
	return &reportServiceImpl{
		claimRepo: claimRepo,
		logger:    logger,
	}
}

// Summary aggregates claim counts by status plus the derived total amount
func (s *reportServiceImpl) Summary(ctx context.Context) (*StatusSummary, error) {
	claims, err := s.claimRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Failed to load claims for summary", "error", err)
		return nil, err
	}

	summary := &StatusSummary{TotalClaims: len(claims)}
	for _, c := range claims {
		switch c.Status {
		case claim.StatusPending:
			summary.Pending++
		case claim.StatusVerified:
			summary.Verified++
		case claim.StatusApproved:
			summary.Approved++
		case claim.StatusRejected:
			summary.Rejected++
		}
		summary.TotalAmount += c.Amount()
	}

	return summary, nil
}

// LecturerSummary groups claims by owning lecturer
func (s *reportServiceImpl) LecturerSummary(ctx context.Context) ([]*LecturerSummary, error) {
	claims, err := s.claimRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Failed to load claims for lecturer summary", "error", err)
		return nil, err
	}

	byLecturer := make(map[string]*LecturerSummary)
	var order []string

	for _, c := range claims {
		entry, ok := byLecturer[c.LecturerID]
		if !ok {
			entry = &LecturerSummary{
				LecturerID:   c.LecturerID,
				LecturerName: "Unknown",
			}
			byLecturer[c.LecturerID] = entry
			order = append(order, c.LecturerID)
		}

		if c.Profile != nil && c.Profile.FullName != "" {
			entry.LecturerName = c.Profile.FullName
		}

		entry.TotalClaims++
		if c.Status == claim.StatusApproved {
			entry.ApprovedClaims++
		}
		entry.TotalAmount += c.Amount()
	}

	summaries := make([]*LecturerSummary, 0, len(order))
	for _, id := range order {
		summaries = append(summaries, byLecturer[id])
	}
	return summaries, nil
}

// MonthlyReport lists approved claims submitted in the given month
func (s *reportServiceImpl) MonthlyReport(ctx context.Context, month, year int) (*MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month: %d", month)
	}

	approved, err := s.claimRepo.GetByStatus(ctx, claim.StatusApproved)
	if err != nil {
		s.logger.Error("Failed to load approved claims", "error", err)
		return nil, err
	}

	report := &MonthlyReport{
		Month:       month,
		Year:        year,
		Rows:        []MonthlyReportRow{},
		GeneratedOn: time.Now(),
	}

	for _, c := range approved {
		if int(c.DateSubmitted.Month()) != month || c.DateSubmitted.Year() != year {
			continue
		}

		row := MonthlyReportRow{
			ClaimID:      c.ID,
			LecturerID:   c.LecturerID,
			LecturerName: "Unknown",
			ModuleName:   c.ModuleName,
			ModuleCode:   c.ModuleCode,
			HoursWorked:  c.HoursWorked,
			HourlyRate:   c.HourlyRate,
			Amount:       c.Amount(),
			// Claims approved manually through SetStatus never get an
			// UpdatedAt stamp; fall back to the submission date
			ApprovalDate: c.DateSubmitted,
		}
		if c.UpdatedAt != nil {
			row.ApprovalDate = *c.UpdatedAt
		}
		if c.Profile != nil {
			row.LecturerName = c.Profile.FullName
			row.EmployeeID = c.Profile.EmployeeID
			row.Faculty = c.Profile.Faculty
		}

		report.Rows = append(report.Rows, row)
		report.Total += row.Amount
	}

	return report, nil
}

// ExportMonthlyReport writes the monthly report to an xlsx workbook
func (s *reportServiceImpl) ExportMonthlyReport(ctx context.Context, month, year int, outputPath string) error {
	report, err := s.MonthlyReport(ctx, month, year)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	headers := []string{"Claim ID", "Lecturer", "Employee ID", "Faculty",
		"Module", "Module Code", "Hours", "Rate", "Amount", "Approval Date"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, row := range report.Rows {
		values := []interface{}{
			row.ClaimID, row.LecturerName, row.EmployeeID, row.Faculty,
			row.ModuleName, row.ModuleCode, row.HoursWorked, row.HourlyRate,
			row.Amount, row.ApprovalDate.Format("2006-01-02"),
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	totalRow := len(report.Rows) + 2
	if err := f.SetCellValue(sheet, fmt.Sprintf("H%d", totalRow), "Total"); err != nil {
		return fmt.Errorf("failed to write total label: %w", err)
	}
	if err := f.SetCellValue(sheet, fmt.Sprintf("I%d", totalRow), report.Total); err != nil {
		return fmt.Errorf("failed to write total: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		s.logger.Error("Failed to save report workbook", "error", err, "path", outputPath)
		return fmt.Errorf("failed to save report: %w", err)
	}

	s.logger.Info("Monthly report exported",
		"month", month, "year", year, "rows", len(report.Rows), "path", outputPath)
	return nil
}
