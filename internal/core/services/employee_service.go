package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/psbook/internal/apperrors"
	"github.com/SscSPs/psbook/internal/core/domain"
	portsrepo "github.com/SscSPs/psbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/dto"
	"github.com/SscSPs/psbook/internal/utils"
)

// EmployeeService manages staff records and links them to auth provider identities.
type EmployeeService struct {
	BaseService
	employeeRepo portsrepo.EmployeeRepositoryFacade
	invitations  portssvc.InvitationSender
	phoneRegion  string
}

// NewEmployeeService creates a new EmployeeService. invitations may be nil, in which case
// InviteEmployee still creates the employee and reports ErrConfigMissing.
func NewEmployeeService(employeeRepo portsrepo.EmployeeRepositoryFacade, invitations portssvc.InvitationSender, phoneRegion string) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		invitations:  invitations,
		phoneRegion:  phoneRegion,
	}
}

var _ portssvc.EmployeeSvcFacade = (*EmployeeService)(nil)

func (s *EmployeeService) normalizePhone(raw *string) (*string, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	phone, err := utils.NormalizePhone(*raw, s.phoneRegion)
	if err != nil {
		return nil, validationError("phone %q is not a valid number", *raw)
	}
	return &phone, nil
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, actorID string) (*domain.Employee, error) {
	name := strings.TrimSpace(req.Name)
	email := domain.NormalizeEmail(req.Email)
	if name == "" || email == "" {
		return nil, validationError("name and email are required")
	}
	if req.Role != domain.RoleFieldStaff && req.Role != domain.RoleAdmin {
		return nil, validationError("role %q cannot be assigned on creation", req.Role)
	}
	phone, err := s.normalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}

	if _, err := s.employeeRepo.FindEmployeeByEmail(ctx, email); err == nil {
		s.GetLogger(ctx).Warn("Employee email already registered", slog.String("email", email))
		return nil, apperrors.ErrDuplicate
	} else if !isNotFound(err) {
		return nil, wrapRepoError(err, "find employee by email")
	}

	now := time.Now().UTC()
	employee := domain.Employee{
		EmployeeID:  uuid.NewString(),
		Name:        name,
		Email:       email,
		Phone:       phone,
		Role:        req.Role,
		Status:      domain.EmployeeActive,
		AuditFields: domain.NewAuditFields(actorID, now),
	}
	if err := s.employeeRepo.SaveEmployee(ctx, employee); err != nil {
		s.LogError(ctx, err, "Failed to save employee", slog.String("email", email))
		return nil, wrapRepoError(err, "save employee")
	}

	s.LogInfo(ctx, "Employee created", slog.String("employee_id", employee.EmployeeID), slog.String("role", string(employee.Role)))
	return &employee, nil
}

// InviteEmployee creates the employee first. An invitation failure does not undo the
// creation: the employee is returned together with the error.
func (s *EmployeeService) InviteEmployee(ctx context.Context, req dto.CreateEmployeeRequest, actorID string) (*domain.Employee, error) {
	employee, err := s.CreateEmployee(ctx, req, actorID)
	if err != nil {
		return nil, err
	}

	if s.invitations == nil {
		s.GetLogger(ctx).Warn("Invitation sender not configured", slog.String("employee_id", employee.EmployeeID))
		return employee, fmt.Errorf("%w: invitation API is not configured", apperrors.ErrConfigMissing)
	}

	metadata := map[string]string{
		"employee_id": employee.EmployeeID,
		"role":        string(employee.Role),
	}
	if err := s.invitations.SendInvitation(ctx, employee.Email, metadata); err != nil {
		s.LogError(ctx, err, "Failed to send invitation", slog.String("employee_id", employee.EmployeeID))
		return employee, fmt.Errorf("send invitation: %w", err)
	}

	s.LogInfo(ctx, "Invitation sent", slog.String("employee_id", employee.EmployeeID))
	return employee, nil
}

func (s *EmployeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, wrapRepoError(err, "find employee")
	}
	return employee, nil
}

func (s *EmployeeService) GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, wrapRepoError(err, "find employee by email")
	}
	return employee, nil
}

func (s *EmployeeService) GetEmployeeByExternalID(ctx context.Context, externalID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByExternalID(ctx, externalID)
	if err != nil {
		return nil, wrapRepoError(err, "find employee by external id")
	}
	return employee, nil
}

func (s *EmployeeService) ListEmployees(ctx context.Context, params dto.ListEmployeesParams) ([]domain.Employee, error) {
	employees, err := s.employeeRepo.ListEmployees(ctx, portsrepo.EmployeeFilter{
		Role:   domain.EmployeeRole(params.Role),
		Status: domain.EmployeeStatus(params.Status),
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list employees")
		return nil, wrapRepoError(err, "list employees")
	}
	if employees == nil {
		employees = []domain.Employee{}
	}
	return employees, nil
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, actorID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, wrapRepoError(err, "find employee")
	}

	if employee.IsProtected() {
		if req.Role != nil && *req.Role != employee.Role {
			return nil, invalidStateError("super admin role cannot be changed")
		}
		if req.Status != nil && *req.Status != domain.EmployeeActive {
			return nil, invalidStateError("super admin cannot be deactivated")
		}
	}

	changed := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, validationError("name cannot be blank")
		}
		if name != employee.Name {
			employee.Name = name
			changed = true
		}
	}
	if req.Phone != nil {
		phone, err := s.normalizePhone(req.Phone)
		if err != nil {
			return nil, err
		}
		if !sameOptional(employee.Phone, phone) {
			employee.Phone = phone
			changed = true
		}
	}
	if req.Role != nil && *req.Role != employee.Role {
		if !req.Role.Valid() {
			return nil, validationError("unknown role %q", *req.Role)
		}
		employee.Role = *req.Role
		changed = true
	}
	if req.Status != nil && *req.Status != employee.Status {
		if !req.Status.Valid() {
			return nil, validationError("unknown status %q", *req.Status)
		}
		employee.Status = *req.Status
		changed = true
	}

	if !changed {
		return employee, nil
	}

	employee.LastUpdatedAt = time.Now().UTC()
	employee.LastUpdatedBy = actorID
	if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
		s.LogError(ctx, err, "Failed to update employee", slog.String("employee_id", employeeID))
		return nil, wrapRepoError(err, "update employee")
	}
	return employee, nil
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, employeeID string, actorID string) error {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return wrapRepoError(err, "find employee")
	}
	if employee.IsProtected() {
		return invalidStateError("super admin cannot be deleted")
	}
	if err := s.employeeRepo.MarkEmployeeDeleted(ctx, employeeID, time.Now().UTC(), actorID); err != nil {
		return wrapRepoError(err, "delete employee")
	}
	s.LogInfo(ctx, "Employee deleted", slog.String("employee_id", employeeID))
	return nil
}

// LinkExternalIdentity attaches externalID to the unlinked employee whose email matches.
// Unknown emails and already linked employees are reported as skipped, not as errors.
func (s *EmployeeService) LinkExternalIdentity(ctx context.Context, email, externalID string) (domain.LinkOutcome, error) {
	email = domain.NormalizeEmail(email)
	externalID = strings.TrimSpace(externalID)
	if email == "" || externalID == "" {
		return "", validationError("email and external id are required")
	}
	logger := s.GetLogger(ctx).With(slog.String("email", email), slog.String("external_id", externalID))

	employee, err := s.employeeRepo.FindEmployeeByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			logger.Info("No employee placeholder for identity, skipping link")
			return domain.LinkSkippedNotFound, nil
		}
		return "", wrapRepoError(err, "find employee by email")
	}
	if employee.IsLinked() {
		logger.Info("Employee already linked, skipping", slog.String("employee_id", employee.EmployeeID))
		return domain.LinkSkippedAlreadyLinked, nil
	}

	linked, err := s.employeeRepo.SetExternalID(ctx, employee.EmployeeID, externalID, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to link identity", slog.String("error", err.Error()))
		return "", wrapRepoError(err, "link identity")
	}
	if !linked {
		// Another delivery linked it between the read and the write.
		logger.Info("Employee linked concurrently, skipping", slog.String("employee_id", employee.EmployeeID))
		return domain.LinkSkippedAlreadyLinked, nil
	}

	logger.Info("Identity linked", slog.String("employee_id", employee.EmployeeID))
	return domain.LinkLinked, nil
}
