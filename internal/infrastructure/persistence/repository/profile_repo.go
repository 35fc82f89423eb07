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

// ProfileRepository implements port.ProfileRepository over sqlite
type ProfileRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sql.DB, logger *zap.Logger) port.ProfileRepository {
	return &ProfileRepository{
		db:     db,
		logger: logger,
	}
}

// Get retrieves a profile by lecturer id; (nil, nil) when absent
func (r *ProfileRepository) Get(ctx context.Context, lecturerID string) (*claim.LecturerProfile, error) {
	query := `
		SELECT id, full_name, employee_id, email,
			qualification_name, qualification_code, faculty, year_level
		FROM lecturer_profiles
		WHERE id = ?
	`

	var p claim.LecturerProfile
	err := r.executor(ctx).QueryRowContext(ctx, query, lecturerID).Scan(
		&p.ID, &p.FullName, &p.EmployeeID, &p.Email,
		&p.QualificationName, &p.QualificationCode, &p.Faculty, &p.YearLevel,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get profile", zap.String("id", lecturerID), zap.Error(err))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &p, nil
}

// Save creates the profile or updates the existing one in place
func (r *ProfileRepository) Save(ctx context.Context, p *claim.LecturerProfile) error {
	query := `
		INSERT INTO lecturer_profiles (
			id, full_name, employee_id, email,
			qualification_name, qualification_code, faculty, year_level
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			full_name = excluded.full_name,
			employee_id = excluded.employee_id,
			email = excluded.email,
			qualification_name = excluded.qualification_name,
			qualification_code = excluded.qualification_code,
			faculty = excluded.faculty,
			year_level = excluded.year_level
	`

	_, err := r.executor(ctx).ExecContext(ctx, query,
		p.ID, p.FullName, p.EmployeeID, p.Email,
		p.QualificationName, p.QualificationCode, p.Faculty, p.YearLevel,
	)
	if err != nil {
		r.logger.Error("Failed to save profile", zap.String("id", p.ID), zap.Error(err))
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

// List retrieves all profiles
func (r *ProfileRepository) List(ctx context.Context) ([]*claim.LecturerProfile, error) {
	query := `
		SELECT id, full_name, employee_id, email,
			qualification_name, qualification_code, faculty, year_level
		FROM lecturer_profiles
		ORDER BY full_name
	`

	rows, err := r.executor(ctx).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list profiles", zap.Error(err))
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []*claim.LecturerProfile{}
	for rows.Next() {
		var p claim.LecturerProfile
		err := rows.Scan(
			&p.ID, &p.FullName, &p.EmployeeID, &p.Email,
			&p.QualificationName, &p.QualificationCode, &p.Faculty, &p.YearLevel,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, &p)
	}

	return profiles, rows.Err()
}

func (r *ProfileRepository) executor(ctx context.Context) executor {
	if tx := sqlite.ExtractTx(ctx); tx != nil {
		return tx
	}
	return r.db
}

// Verify interface compliance
var _ port.ProfileRepository = (*ProfileRepository)(nil)
