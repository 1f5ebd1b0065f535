package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/psbook/internal/apperrors"
	"github.com/SscSPs/psbook/internal/core/domain"
	portsrepo "github.com/SscSPs/psbook/internal/core/ports/repositories"
	"github.com/SscSPs/psbook/internal/models"
	"github.com/SscSPs/psbook/internal/utils/mapping"
)

type PgxAssignmentRepository struct {
	BaseRepository
}

func newPgxAssignmentRepository(db DBTX) portsrepo.AssignmentRepositoryFacade {
	return &PgxAssignmentRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.AssignmentRepositoryFacade = (*PgxAssignmentRepository)(nil)

const assignmentColumns = `assignment_id, employee_id, route_id, assignment_date::text, status, note,
	completed_at, cancelled_at, created_at, created_by, last_updated_at, last_updated_by`

func scanAssignment(row rowScanner) (domain.RouteAssignment, error) {
	var m models.RouteAssignment
	err := row.Scan(
		&m.AssignmentID,
		&m.EmployeeID,
		&m.RouteID,
		&m.Date,
		&m.Status,
		&m.Note,
		&m.CompletedAt,
		&m.CancelledAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.RouteAssignment{}, err
	}
	return mapping.ToDomainRouteAssignment(m), nil
}

func (r *PgxAssignmentRepository) SaveAssignment(ctx context.Context, assignment domain.RouteAssignment) error {
	m := mapping.ToModelRouteAssignment(assignment)
	query := `
		INSERT INTO route_assignments (assignment_id, employee_id, route_id, assignment_date, status, note,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.DB.Exec(ctx, query,
		m.AssignmentID,
		m.EmployeeID,
		m.RouteID,
		m.Date,
		m.Status,
		m.Note,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapWriteError(err, "insert route assignment for employee "+m.EmployeeID+" on "+m.Date)
	}
	return nil
}

func (r *PgxAssignmentRepository) FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.RouteAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM route_assignments WHERE assignment_id = $1;`
	a, err := scanAssignment(r.DB.QueryRow(ctx, query, assignmentID))
	if err != nil {
		return nil, wrapReadError(err, "route assignment "+assignmentID)
	}
	return &a, nil
}

func (r *PgxAssignmentRepository) FindAssignmentByIDForUpdate(ctx context.Context, assignmentID string) (*domain.RouteAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM route_assignments WHERE assignment_id = $1 FOR UPDATE;`
	a, err := scanAssignment(r.DB.QueryRow(ctx, query, assignmentID))
	if err != nil {
		return nil, wrapReadError(err, "route assignment "+assignmentID)
	}
	return &a, nil
}

func (r *PgxAssignmentRepository) FindActiveAssignment(ctx context.Context, employeeID, date string) (*domain.RouteAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM route_assignments
		WHERE employee_id = $1 AND assignment_date = $2::date AND status = 'active';`
	a, err := scanAssignment(r.DB.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		return nil, wrapReadError(err, "active assignment for employee "+employeeID+" on "+date)
	}
	return &a, nil
}

func (r *PgxAssignmentRepository) FindAssignmentForEmployeeOnDate(ctx context.Context, employeeID, date string) (*domain.RouteAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM route_assignments
		WHERE employee_id = $1 AND assignment_date = $2::date
		ORDER BY (status = 'active') DESC, created_at DESC LIMIT 1;`
	a, err := scanAssignment(r.DB.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		return nil, wrapReadError(err, "assignment for employee "+employeeID+" on "+date)
	}
	return &a, nil
}

func (r *PgxAssignmentRepository) ListAssignments(ctx context.Context, filter portsrepo.AssignmentFilter) ([]domain.RouteAssignment, error) {
	qb := &queryBuilder{}
	if filter.EmployeeID != "" {
		qb.add("employee_id = $%d", filter.EmployeeID)
	}
	if filter.RouteID != "" {
		qb.add("route_id = $%d", filter.RouteID)
	}
	if filter.Date != "" {
		qb.add("assignment_date = $%d::date", filter.Date)
	}
	if filter.Status != "" {
		qb.add("status = $%d", string(filter.Status))
	}
	query := `SELECT ` + assignmentColumns + ` FROM route_assignments` + qb.where() +
		` ORDER BY assignment_date DESC, created_at DESC` + qb.page(filter.Limit, filter.Offset)

	rows, err := r.DB.Query(ctx, query, qb.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query route assignments: %w", err)
	}
	defer rows.Close()

	assignments := []domain.RouteAssignment{}
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan route assignment row: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating route assignment rows: %w", err)
	}
	return assignments, nil
}

// UpdateAssignmentStatus only moves an assignment out of active; terminal rows are left untouched.
func (r *PgxAssignmentRepository) UpdateAssignmentStatus(ctx context.Context, assignment domain.RouteAssignment) error {
	m := mapping.ToModelRouteAssignment(assignment)
	query := `
		UPDATE route_assignments
		SET status = $2, completed_at = $3, cancelled_at = $4, note = $5, last_updated_at = $6, last_updated_by = $7
		WHERE assignment_id = $1 AND status = 'active';
	`
	tag, err := r.DB.Exec(ctx, query,
		m.AssignmentID,
		m.Status,
		m.CompletedAt,
		m.CancelledAt,
		m.Note,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapWriteError(err, "update route assignment "+m.AssignmentID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: route assignment %s is not active", apperrors.ErrInvalidState, m.AssignmentID)
	}
	return nil
}
