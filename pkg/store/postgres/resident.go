package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yurifrl/residentledger/pkg/models"
)

type residentRepository struct {
	q querier
}

const residentColumns = `id, enrollment_no, name, phone, address, zone, unit, course, enrollment_start, enrollment_end,
	remark, total_due, security_deposit, residency, old_resident, vacated, imported, created_at, updated_at`

func (r *residentRepository) GetResident(ctx context.Context, id string) (*models.Resident, error) {
	query := `SELECT ` + residentColumns + ` FROM residents WHERE id = $1`
	return scanResident(r.q.QueryRowContext(ctx, query, id))
}

func (r *residentRepository) FindResidentByPhone(ctx context.Context, phone string) (*models.Resident, error) {
	query := `SELECT ` + residentColumns + ` FROM residents WHERE phone = $1 AND phone <> '' ORDER BY created_at, id LIMIT 1`
	return scanResident(r.q.QueryRowContext(ctx, query, strings.TrimSpace(phone)))
}

func (r *residentRepository) FindResidentByNameAndPhone(ctx context.Context, name, phone string) (*models.Resident, error) {
	query := `SELECT ` + residentColumns + ` FROM residents WHERE lower(trim(name)) = $1 AND phone = $2 ORDER BY created_at, id LIMIT 1`
	return scanResident(r.q.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(name)), strings.TrimSpace(phone)))
}

func (r *residentRepository) ListResidents(ctx context.Context) ([]*models.Resident, error) {
	query := `SELECT ` + residentColumns + ` FROM residents ORDER BY created_at, id`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Resident
	for rows.Next() {
		res, err := scanResident(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *residentRepository) UpsertResident(ctx context.Context, res *models.Resident) (string, error) {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	now := time.Now()
	query := `INSERT INTO residents (` + residentColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $18)
	          ON CONFLICT (id) DO UPDATE SET
	            enrollment_no = EXCLUDED.enrollment_no, name = EXCLUDED.name, phone = EXCLUDED.phone,
	            address = EXCLUDED.address, zone = EXCLUDED.zone, unit = EXCLUDED.unit, course = EXCLUDED.course,
	            enrollment_start = EXCLUDED.enrollment_start, enrollment_end = EXCLUDED.enrollment_end,
	            remark = EXCLUDED.remark, total_due = EXCLUDED.total_due, security_deposit = EXCLUDED.security_deposit,
	            residency = EXCLUDED.residency, old_resident = EXCLUDED.old_resident, vacated = EXCLUDED.vacated,
	            imported = EXCLUDED.imported, updated_at = EXCLUDED.updated_at
	          RETURNING id`

	var end sql.NullTime
	if res.EnrollmentEnd != nil {
		end = sql.NullTime{Time: *res.EnrollmentEnd, Valid: true}
	}

	var id string
	err := r.q.QueryRowContext(ctx, query,
		res.ID, res.EnrollmentNo, res.Name, res.Phone, res.Address, res.Zone, res.Unit, res.Course,
		res.EnrollmentStart, end, res.Remark, res.TotalDue, res.SecurityDeposit, string(res.Residency),
		res.OldResident, res.Vacated, res.Imported, now,
	).Scan(&id)
	return id, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResident(s scanner) (*models.Resident, error) {
	var (
		res       models.Resident
		end       sql.NullTime
		residency string
	)
	err := s.Scan(&res.ID, &res.EnrollmentNo, &res.Name, &res.Phone, &res.Address, &res.Zone, &res.Unit,
		&res.Course, &res.EnrollmentStart, &end, &res.Remark, &res.TotalDue, &res.SecurityDeposit, &residency,
		&res.OldResident, &res.Vacated, &res.Imported, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	if end.Valid {
		res.EnrollmentEnd = &end.Time
	}
	res.Residency = models.Residency(residency)
	return &res, nil
}
