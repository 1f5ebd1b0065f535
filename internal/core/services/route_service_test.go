package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/psbook/internal/apperrors"
	"github.com/SscSPs/psbook/internal/core/domain"
	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/core/services"
	"github.com/SscSPs/psbook/internal/dto"
)

type RouteServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	store       *memStore
	routes      portssvc.RouteSvcFacade
	assignments portssvc.AssignmentSvcFacade
}

func (suite *RouteServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = newMemStore()
	repos := suite.store.repos()
	suite.routes = services.NewRouteService(repos.Routes, repos.Shops)
	suite.assignments = services.NewAssignmentService(repos, suite.store)
}

func (suite *RouteServiceTestSuite) createRoute(name, code string) *domain.Route {
	route, err := suite.routes.CreateRoute(suite.ctx, dto.CreateRouteRequest{Name: name, Code: code}, "admin-1")
	suite.Require().NoError(err)
	return route
}

func (suite *RouteServiceTestSuite) TestCreateRoute_CaseInsensitiveUniqueness() {
	route := suite.createRoute("North Loop", "N1")
	suite.Equal("north loop", *route.NameLower)
	suite.Equal("n1", *route.CodeLower)
	suite.True(route.IsActive)

	_, err := suite.routes.CreateRoute(suite.ctx, dto.CreateRouteRequest{Name: "  north LOOP ", Code: "N2"}, "admin-1")
	suite.True(errors.Is(err, apperrors.ErrDuplicate))

	_, err = suite.routes.CreateRoute(suite.ctx, dto.CreateRouteRequest{Name: "South", Code: "n1"}, "admin-1")
	suite.True(errors.Is(err, apperrors.ErrDuplicate))

	_, err = suite.routes.CreateRoute(suite.ctx, dto.CreateRouteRequest{Name: " ", Code: "X"}, "admin-1")
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *RouteServiceTestSuite) TestCreateRoute_LegacyRowsStillCollide() {
	suite.store.addRoute(domain.Route{RouteID: "legacy-1", Name: "Market Street ", Code: "MS", IsActive: true})

	_, err := suite.routes.CreateRoute(suite.ctx, dto.CreateRouteRequest{Name: "market street", Code: "M2"}, "admin-1")
	suite.True(errors.Is(err, apperrors.ErrDuplicate))

	_, err = suite.routes.CreateRoute(suite.ctx, dto.CreateRouteRequest{Name: "Harbour", Code: "ms"}, "admin-1")
	suite.True(errors.Is(err, apperrors.ErrDuplicate))
}

func (suite *RouteServiceTestSuite) TestUpdateRoute_ExcludesItself() {
	route := suite.createRoute("East", "E1")
	other := suite.createRoute("West", "W1")

	name := "EAST"
	updated, err := suite.routes.UpdateRoute(suite.ctx, route.RouteID, dto.UpdateRouteRequest{Name: &name}, "admin-1")
	suite.Require().NoError(err)
	suite.Equal("EAST", updated.Name)

	_, err = suite.routes.UpdateRoute(suite.ctx, other.RouteID, dto.UpdateRouteRequest{Name: &name}, "admin-1")
	suite.True(errors.Is(err, apperrors.ErrDuplicate))
}

func (suite *RouteServiceTestSuite) TestBackfill_FillsLegacyRowsAndSkipsFailures() {
	suite.store.addRoute(domain.Route{RouteID: "r1", Name: " Alpha ", Code: "A"})
	suite.store.addRoute(domain.Route{RouteID: "r2", Name: "Beta", Code: "B"})
	suite.store.addRoute(domain.Route{RouteID: "r3", Name: "Gamma", Code: "G"})
	suite.store.failFor["r2"] = errors.New("row locked")

	resp, err := suite.routes.BackfillNormalizedNames(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(3, resp.Scanned)
	suite.Equal(2, resp.Updated)

	r1, err := suite.store.FindRouteByID(suite.ctx, "r1")
	suite.Require().NoError(err)
	suite.Equal("alpha", *r1.NameLower)
	suite.Equal("a", *r1.CodeLower)

	r2, err := suite.store.FindRouteByID(suite.ctx, "r2")
	suite.Require().NoError(err)
	suite.True(r2.NeedsBackfill())

	delete(suite.store.failFor, "r2")
	resp, err = suite.routes.BackfillNormalizedNames(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(1, resp.Updated)
}

func (suite *RouteServiceTestSuite) TestAssignAndUnassignShop() {
	route := suite.createRoute("East", "E1")
	suite.store.addShop("shop-1", "0")

	shop, err := suite.routes.AssignShop(suite.ctx, route.RouteID, "shop-1", "admin-1")
	suite.Require().NoError(err)
	suite.Equal(route.RouteID, *shop.RouteID)

	shops, err := suite.routes.ListRouteShops(suite.ctx, route.RouteID)
	suite.Require().NoError(err)
	suite.Len(shops, 1)

	_, err = suite.routes.UnassignShop(suite.ctx, "other-route", "shop-1", "admin-1")
	suite.True(errors.Is(err, apperrors.ErrInvalidState))

	shop, err = suite.routes.UnassignShop(suite.ctx, route.RouteID, "shop-1", "admin-1")
	suite.Require().NoError(err)
	suite.Nil(shop.RouteID)

	_, err = suite.routes.AssignShop(suite.ctx, "missing", "shop-1", "admin-1")
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *RouteServiceTestSuite) TestAssignments_OneActivePerDay() {
	route := suite.createRoute("East", "E1")
	suite.store.addEmployee(domain.Employee{EmployeeID: "emp-1", Role: domain.RoleFieldStaff, Status: domain.EmployeeActive})
	req := dto.CreateAssignmentRequest{EmployeeID: "emp-1", RouteID: route.RouteID, Date: "2024-06-01"}

	first, err := suite.assignments.AssignRoute(suite.ctx, req, "admin-1")
	suite.Require().NoError(err)
	suite.Equal(domain.AssignmentActive, first.Status)

	_, err = suite.assignments.AssignRoute(suite.ctx, req, "admin-1")
	suite.True(errors.Is(err, apperrors.ErrDuplicate))

	cancelled, err := suite.assignments.CancelAssignment(suite.ctx, first.AssignmentID, dto.UpdateAssignmentRequest{}, "admin-1")
	suite.Require().NoError(err)
	suite.Equal(domain.AssignmentCancelled, cancelled.Status)
	suite.NotNil(cancelled.CancelledAt)

	_, err = suite.assignments.CompleteAssignment(suite.ctx, first.AssignmentID, dto.UpdateAssignmentRequest{}, "emp-1")
	suite.True(errors.Is(err, apperrors.ErrInvalidState))

	second, err := suite.assignments.AssignRoute(suite.ctx, req, "admin-1")
	suite.Require().NoError(err)

	note := "all shops visited"
	done, err := suite.assignments.CompleteAssignment(suite.ctx, second.AssignmentID, dto.UpdateAssignmentRequest{Note: &note}, "emp-1")
	suite.Require().NoError(err)
	suite.Equal(domain.AssignmentCompleted, done.Status)
	suite.Equal(note, done.Note)

	onDate, err := suite.assignments.GetAssignmentForEmployeeOnDate(suite.ctx, "emp-1", "2024-06-01")
	suite.Require().NoError(err)
	suite.Equal(second.AssignmentID, onDate.AssignmentID)
}

func (suite *RouteServiceTestSuite) TestAssignments_Rejections() {
	route := suite.createRoute("East", "E1")

	_, err := suite.assignments.AssignRoute(suite.ctx, dto.CreateAssignmentRequest{EmployeeID: "ghost", RouteID: route.RouteID, Date: "2024-06-01"}, "admin-1")
	suite.True(errors.Is(err, apperrors.ErrNotFound))

	_, err = suite.assignments.AssignRoute(suite.ctx, dto.CreateAssignmentRequest{EmployeeID: "ghost", RouteID: route.RouteID, Date: "06/01/2024"}, "admin-1")
	suite.True(errors.Is(err, apperrors.ErrValidation))

	suite.store.addEmployee(domain.Employee{EmployeeID: "emp-1"})
	_, err = suite.assignments.AssignRoute(suite.ctx, dto.CreateAssignmentRequest{EmployeeID: "emp-1", RouteID: "missing", Date: "2024-06-01"}, "admin-1")
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func TestRouteService(t *testing.T) {
	suite.Run(t, new(RouteServiceTestSuite))
}
