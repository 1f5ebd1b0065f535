package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/psbook/internal/apperrors"
	"github.com/SscSPs/psbook/internal/core/domain"
	portsrepo "github.com/SscSPs/psbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/dto"
)

type assignmentService struct {
	BaseService
	repos portsrepo.Repositories
	uow   portsrepo.UnitOfWork
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(repos portsrepo.Repositories, uow portsrepo.UnitOfWork) portssvc.AssignmentSvcFacade {
	return &assignmentService{repos: repos, uow: uow}
}

var _ portssvc.AssignmentSvcFacade = (*assignmentService)(nil)

func (s *assignmentService) AssignRoute(ctx context.Context, req dto.CreateAssignmentRequest, actorID string) (*domain.RouteAssignment, error) {
	if _, err := domain.ParseDate(req.Date); err != nil {
		return nil, validationError("%v", err)
	}
	if _, err := s.repos.Employees.FindEmployeeByID(ctx, req.EmployeeID); err != nil {
		if isNotFound(err) {
			return nil, notFoundError("employee %s", req.EmployeeID)
		}
		return nil, wrapRepoError(err, "find employee")
	}
	if _, err := s.repos.Routes.FindRouteByID(ctx, req.RouteID); err != nil {
		if isNotFound(err) {
			return nil, notFoundError("route %s", req.RouteID)
		}
		return nil, wrapRepoError(err, "find route")
	}

	// The partial unique index on active (employee, date) backs this check.
	if existing, err := s.repos.Assignments.FindActiveAssignment(ctx, req.EmployeeID, req.Date); err == nil {
		s.GetLogger(ctx).Warn("Employee already has an active assignment",
			slog.String("employee_id", req.EmployeeID),
			slog.String("date", req.Date),
			slog.String("assignment_id", existing.AssignmentID))
		return nil, apperrors.ErrDuplicate
	} else if !isNotFound(err) {
		return nil, wrapRepoError(err, "find active assignment")
	}

	now := time.Now().UTC()
	assignment := domain.RouteAssignment{
		AssignmentID: uuid.NewString(),
		EmployeeID:   req.EmployeeID,
		RouteID:      req.RouteID,
		Date:         req.Date,
		Status:       domain.AssignmentActive,
		Note:         strings.TrimSpace(req.Note),
		AuditFields:  domain.NewAuditFields(actorID, now),
	}
	if err := s.repos.Assignments.SaveAssignment(ctx, assignment); err != nil {
		s.LogError(ctx, err, "Failed to save assignment", slog.String("employee_id", req.EmployeeID))
		return nil, wrapRepoError(err, "save assignment")
	}

	s.LogInfo(ctx, "Route assigned",
		slog.String("assignment_id", assignment.AssignmentID),
		slog.String("employee_id", assignment.EmployeeID),
		slog.String("route_id", assignment.RouteID),
		slog.String("date", assignment.Date))
	return &assignment, nil
}

// transition moves an active assignment to a terminal status.
func (s *assignmentService) transition(ctx context.Context, assignmentID string, to domain.AssignmentStatus, note *string, actorID string) (*domain.RouteAssignment, error) {
	var assignment *domain.RouteAssignment
	err := s.uow.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		assignment, err = repos.Assignments.FindAssignmentByIDForUpdate(ctx, assignmentID)
		if err != nil {
			return err
		}
		if assignment.Status != domain.AssignmentActive {
			return invalidStateError("assignment %s is %s", assignmentID, assignment.Status)
		}

		now := time.Now().UTC()
		assignment.Status = to
		switch to {
		case domain.AssignmentCompleted:
			assignment.CompletedAt = &now
		case domain.AssignmentCancelled:
			assignment.CancelledAt = &now
		}
		if note != nil {
			assignment.Note = strings.TrimSpace(*note)
		}
		assignment.LastUpdatedAt = now
		assignment.LastUpdatedBy = actorID
		return repos.Assignments.UpdateAssignmentStatus(ctx, *assignment)
	})
	if err != nil {
		return nil, wrapRepoError(err, "update assignment")
	}

	s.LogInfo(ctx, "Assignment updated",
		slog.String("assignment_id", assignmentID),
		slog.String("status", string(to)))
	return assignment, nil
}

func (s *assignmentService) CompleteAssignment(ctx context.Context, assignmentID string, req dto.UpdateAssignmentRequest, actorID string) (*domain.RouteAssignment, error) {
	return s.transition(ctx, assignmentID, domain.AssignmentCompleted, req.Note, actorID)
}

func (s *assignmentService) CancelAssignment(ctx context.Context, assignmentID string, req dto.UpdateAssignmentRequest, actorID string) (*domain.RouteAssignment, error) {
	return s.transition(ctx, assignmentID, domain.AssignmentCancelled, req.Note, actorID)
}

func (s *assignmentService) GetAssignmentByID(ctx context.Context, assignmentID string) (*domain.RouteAssignment, error) {
	assignment, err := s.repos.Assignments.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, wrapRepoError(err, "find assignment")
	}
	return assignment, nil
}

func (s *assignmentService) GetAssignmentForEmployeeOnDate(ctx context.Context, employeeID, date string) (*domain.RouteAssignment, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return nil, validationError("%v", err)
	}
	assignment, err := s.repos.Assignments.FindAssignmentForEmployeeOnDate(ctx, employeeID, date)
	if err != nil {
		return nil, wrapRepoError(err, "find assignment for date")
	}
	return assignment, nil
}

func (s *assignmentService) ListAssignments(ctx context.Context, params dto.ListAssignmentsParams) ([]domain.RouteAssignment, error) {
	assignments, err := s.repos.Assignments.ListAssignments(ctx, portsrepo.AssignmentFilter{
		EmployeeID: params.EmployeeID,
		RouteID:    params.RouteID,
		Date:       params.Date,
		Status:     domain.AssignmentStatus(params.Status),
		Limit:      params.Limit,
		Offset:     params.Offset,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list assignments")
		return nil, wrapRepoError(err, "list assignments")
	}
	if assignments == nil {
		assignments = []domain.RouteAssignment{}
	}
	return assignments, nil
}
