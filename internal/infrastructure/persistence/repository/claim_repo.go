package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/campusworks/claimflow/internal/application/port"
	"github.com/campusworks/claimflow/internal/domain/claim"
	"github.com/campusworks/claimflow/internal/infrastructure/persistence/sqlite"
)

// selectClaim joins the lecturer profile so reads come back enriched
const selectClaim = `
	SELECT c.id, c.lecturer_id, c.profile_id, c.title, c.notes,
		c.module_name, c.module_code, c.file_path,
		c.hours_worked, c.hourly_rate, c.status,
		c.date_submitted, c.updated_at,
		p.full_name, p.employee_id, p.email,
		p.qualification_name, p.qualification_code, p.faculty, p.year_level
	FROM claims c
	LEFT JOIN lecturer_profiles p ON p.id = c.profile_id
`

// ClaimRepository implements port.ClaimRepository over sqlite
type ClaimRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewClaimRepository creates a new claim repository
func NewClaimRepository(db *sql.DB, logger *zap.Logger) port.ClaimRepository {
	return &ClaimRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new claim
func (r *ClaimRepository) Create(ctx context.Context, c *claim.Claim) error {
	query := `
		INSERT INTO claims (
			id, lecturer_id, profile_id, title, notes,
			module_name, module_code, file_path,
			hours_worked, hourly_rate, status, date_submitted
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.executor(ctx).ExecContext(ctx, query,
		c.ID,
		c.LecturerID,
		c.ProfileID,
		c.Title,
		c.Notes,
		c.ModuleName,
		c.ModuleCode,
		c.FilePath,
		c.HoursWorked,
		c.HourlyRate,
		c.Status.String(),
		c.DateSubmitted,
	)
	if err != nil {
		r.logger.Error("Failed to create claim", zap.String("id", c.ID), zap.Error(err))
		return fmt.Errorf("failed to create claim: %w", err)
	}

	return nil
}

// GetByID retrieves a claim by id; (nil, nil) when absent
func (r *ClaimRepository) GetByID(ctx context.Context, id string) (*claim.Claim, error) {
	row := r.executor(ctx).QueryRowContext(ctx, selectClaim+" WHERE c.id = ?", id)

	c, err := scanClaim(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get claim", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}

	return c, nil
}

// GetAll retrieves every claim, newest first
func (r *ClaimRepository) GetAll(ctx context.Context) ([]*claim.Claim, error) {
	return r.query(ctx, selectClaim+" ORDER BY c.date_submitted DESC")
}

// GetByLecturer retrieves the claims owned by one lecturer
func (r *ClaimRepository) GetByLecturer(ctx context.Context, lecturerID string) ([]*claim.Claim, error) {
	return r.query(ctx,
		selectClaim+" WHERE c.lecturer_id = ? ORDER BY c.date_submitted DESC",
		lecturerID)
}

// GetByStatus retrieves claims whose stored status matches after trimming
// and case folding, in submission order. This is the snapshot read for the
// batch lifecycle operations.
func (r *ClaimRepository) GetByStatus(ctx context.Context, status claim.Status) ([]*claim.Claim, error) {
	return r.query(ctx,
		selectClaim+" WHERE LOWER(TRIM(c.status)) = LOWER(?) ORDER BY c.date_submitted ASC",
		status.String())
}

// Update persists the mutable fields of one claim
func (r *ClaimRepository) Update(ctx context.Context, c *claim.Claim) error {
	query := `UPDATE claims SET status = ?, updated_at = ? WHERE id = ?`

	_, err := r.executor(ctx).ExecContext(ctx, query, c.Status.String(), c.UpdatedAt, c.ID)
	if err != nil {
		r.logger.Error("Failed to update claim", zap.String("id", c.ID), zap.Error(err))
		return fmt.Errorf("failed to update claim: %w", err)
	}

	return nil
}

// UpdateBatch persists the mutable fields of many claims. Run inside
// WithTransaction for all-or-nothing semantics.
func (r *ClaimRepository) UpdateBatch(ctx context.Context, claims []*claim.Claim) error {
	for _, c := range claims {
		if err := r.Update(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a claim
func (r *ClaimRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.executor(ctx).ExecContext(ctx, "DELETE FROM claims WHERE id = ?", id)
	if err != nil {
		r.logger.Error("Failed to delete claim", zap.String("id", id), zap.Error(err))
		return false, fmt.Errorf("failed to delete claim: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

func (r *ClaimRepository) query(ctx context.Context, query string, args ...interface{}) ([]*claim.Claim, error) {
	rows, err := r.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query claims", zap.Error(err))
		return nil, fmt.Errorf("failed to query claims: %w", err)
	}
	defer rows.Close()

	claims := []*claim.Claim{}
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		claims = append(claims, c)
	}

	return claims, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanClaim(s scanner) (*claim.Claim, error) {
	var (
		c          claim.Claim
		status     string
		profileID  sql.NullString
		updatedAt  sql.NullTime
		fullName   sql.NullString
		employeeID sql.NullString
		email      sql.NullString
		qualName   sql.NullString
		qualCode   sql.NullString
		faculty    sql.NullString
		yearLevel  sql.NullString
	)

	err := s.Scan(
		&c.ID, &c.LecturerID, &profileID, &c.Title, &c.Notes,
		&c.ModuleName, &c.ModuleCode, &c.FilePath,
		&c.HoursWorked, &c.HourlyRate, &status,
		&c.DateSubmitted, &updatedAt,
		&fullName, &employeeID, &email,
		&qualName, &qualCode, &faculty, &yearLevel,
	)
	if err != nil {
		return nil, err
	}

	// Stored statuses are canonical, but tolerate legacy rows the way the
	// rest of the system compares them
	parsed, perr := claim.ParseStatus(status)
	if perr != nil {
		return nil, fmt.Errorf("claim %s has invalid status %q", c.ID, status)
	}
	c.Status = parsed

	if profileID.Valid {
		c.ProfileID = &profileID.String
	}
	if updatedAt.Valid {
		c.UpdatedAt = &updatedAt.Time
	}
	if fullName.Valid {
		c.Profile = &claim.LecturerProfile{
			ID:                profileID.String,
			FullName:          fullName.String,
			EmployeeID:        employeeID.String,
			Email:             email.String,
			QualificationName: qualName.String,
			QualificationCode: qualCode.String,
			Faculty:           faculty.String,
			YearLevel:         yearLevel.String,
		}
	}

	return &c, nil
}

// executor returns the ambient transaction when present, the pool otherwise
func (r *ClaimRepository) executor(ctx context.Context) executor {
	if tx := sqlite.ExtractTx(ctx); tx != nil {
		return tx
	}
	return r.db
}

// executor interface covers both *sql.DB and *sql.Tx
type executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Verify interface compliance
var _ port.ClaimRepository = (*ClaimRepository)(nil)
