package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/psbook/internal/apperrors"
	"github.com/SscSPs/psbook/internal/core/domain"
	portsrepo "github.com/SscSPs/psbook/internal/core/ports/repositories"
	"github.com/SscSPs/psbook/internal/models"
	"github.com/SscSPs/psbook/internal/utils/mapping"
)

type PgxEmployeeRepository struct {
	BaseRepository
}

func newPgxEmployeeRepository(db DBTX) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

const employeeColumns = `employee_id, name, email, phone, role, status, external_id,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanEmployee(row rowScanner) (domain.Employee, error) {
	var m models.Employee
	err := row.Scan(
		&m.EmployeeID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.Role,
		&m.Status,
		&m.ExternalID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		return domain.Employee{}, err
	}
	return mapping.ToDomainEmployee(m), nil
}

func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)
	query := `
		INSERT INTO employees (employee_id, name, email, phone, role, status, external_id,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.DB.Exec(ctx, query,
		m.EmployeeID,
		m.Name,
		m.Email,
		m.Phone,
		m.Role,
		m.Status,
		m.ExternalID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapWriteError(err, "insert employee "+m.Email)
	}
	return nil
}

func (r *PgxEmployeeRepository) findOne(ctx context.Context, where, what string, arg any) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE ` + where + ` AND deleted_at IS NULL;`
	e, err := scanEmployee(r.DB.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, wrapReadError(err, what)
	}
	return &e, nil
}

func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	return r.findOne(ctx, "employee_id = $1", "employee "+employeeID, employeeID)
}

func (r *PgxEmployeeRepository) FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.findOne(ctx, "lower(email) = $1", "employee with email "+email, email)
}

func (r *PgxEmployeeRepository) FindEmployeeByExternalID(ctx context.Context, externalID string) (*domain.Employee, error) {
	return r.findOne(ctx, "external_id = $1", "employee with external id "+externalID, externalID)
}

func (r *PgxEmployeeRepository) ListEmployees(ctx context.Context, filter portsrepo.EmployeeFilter) ([]domain.Employee, error) {
	qb := &queryBuilder{}
	if !filter.IncludeDeleted {
		qb.addRaw("deleted_at IS NULL")
	}
	if filter.Role != "" {
		qb.add("role = $%d", string(filter.Role))
	}
	if filter.Status != "" {
		qb.add("status = $%d", string(filter.Status))
	}
	query := `SELECT ` + employeeColumns + ` FROM employees` + qb.where() +
		` ORDER BY name ASC, employee_id ASC` + qb.page(filter.Limit, filter.Offset)

	rows, err := r.DB.Query(ctx, query, qb.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", err)
	}
	return employees, nil
}

func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)
	query := `
		UPDATE employees
		SET name = $2, phone = $3, role = $4, status = $5, last_updated_at = $6, last_updated_by = $7
		WHERE employee_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.DB.Exec(ctx, query,
		m.EmployeeID,
		m.Name,
		m.Phone,
		m.Role,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapWriteError(err, "update employee "+m.EmployeeID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: employee %s", apperrors.ErrNotFound, m.EmployeeID)
	}
	return nil
}

func (r *PgxEmployeeRepository) SetExternalID(ctx context.Context, employeeID, externalID string, at time.Time) (bool, error) {
	query := `
		UPDATE employees
		SET external_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE employee_id = $1 AND external_id IS NULL AND deleted_at IS NULL;
	`
	tag, err := r.DB.Exec(ctx, query, employeeID, externalID, at, domain.SystemActor)
	if err != nil {
		return false, wrapWriteError(err, "link employee "+employeeID)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PgxEmployeeRepository) MarkEmployeeDeleted(ctx context.Context, employeeID string, deletedAt time.Time, deletedBy string) error {
	query := `
		UPDATE employees SET deleted_at = $2, status = 'inactive', last_updated_at = $2, last_updated_by = $3
		WHERE employee_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.DB.Exec(ctx, query, employeeID, deletedAt, deletedBy)
	if err != nil {
		return wrapWriteError(err, "delete employee "+employeeID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: employee %s", apperrors.ErrNotFound, employeeID)
	}
	return nil
}
