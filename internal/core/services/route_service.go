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

const backfillBatchSize = 200

type routeService struct {
	BaseService
	routeRepo portsrepo.RouteRepositoryFacade
	shopRepo  portsrepo.ShopRepositoryFacade
}

// NewRouteService creates a new RouteService.
func NewRouteService(routeRepo portsrepo.RouteRepositoryFacade, shopRepo portsrepo.ShopRepositoryFacade) portssvc.RouteSvcFacade {
	return &routeService{routeRepo: routeRepo, shopRepo: shopRepo}
}

var _ portssvc.RouteSvcFacade = (*routeService)(nil)

// ensureUnique checks the indexed shadow column first, then rows created before it existed.
func (s *routeService) ensureUnique(ctx context.Context, field, value, excludeID string,
	indexed, legacy func(context.Context, string, string) (*domain.Route, error)) error {
	for _, find := range []func(context.Context, string, string) (*domain.Route, error){indexed, legacy} {
		existing, err := find(ctx, value, excludeID)
		if err == nil {
			s.GetLogger(ctx).Warn("Route "+field+" already in use",
				slog.String(field, value),
				slog.String("existing_route_id", existing.RouteID))
			return apperrors.ErrDuplicate
		}
		if !isNotFound(err) {
			return wrapRepoError(err, "check route "+field)
		}
	}
	return nil
}

func (s *routeService) ensureUniqueNameAndCode(ctx context.Context, nameLower, codeLower, excludeID string) error {
	if err := s.ensureUnique(ctx, "name", nameLower, excludeID, s.routeRepo.FindRouteByNameLower, s.routeRepo.FindLegacyRouteByName); err != nil {
		return err
	}
	return s.ensureUnique(ctx, "code", codeLower, excludeID, s.routeRepo.FindRouteByCodeLower, s.routeRepo.FindLegacyRouteByCode)
}

func (s *routeService) CreateRoute(ctx context.Context, req dto.CreateRouteRequest, actorID string) (*domain.Route, error) {
	name := strings.TrimSpace(req.Name)
	code := strings.TrimSpace(req.Code)
	if name == "" || code == "" {
		return nil, validationError("name and code are required")
	}
	nameLower := domain.NormalizeName(name)
	codeLower := domain.NormalizeName(code)

	if err := s.ensureUniqueNameAndCode(ctx, nameLower, codeLower, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	route := domain.Route{
		RouteID:     uuid.NewString(),
		Name:        name,
		Code:        code,
		NameLower:   &nameLower,
		CodeLower:   &codeLower,
		Description: strings.TrimSpace(req.Description),
		IsActive:    true,
		AuditFields: domain.NewAuditFields(actorID, now),
	}
	if err := s.routeRepo.SaveRoute(ctx, route); err != nil {
		s.LogError(ctx, err, "Failed to save route", slog.String("name", name))
		return nil, wrapRepoError(err, "save route")
	}

	s.LogInfo(ctx, "Route created", slog.String("route_id", route.RouteID), slog.String("code", code))
	return &route, nil
}

func (s *routeService) GetRouteByID(ctx context.Context, routeID string) (*domain.Route, error) {
	route, err := s.routeRepo.FindRouteByID(ctx, routeID)
	if err != nil {
		return nil, wrapRepoError(err, "find route")
	}
	return route, nil
}

func (s *routeService) ListRoutes(ctx context.Context, includeInactive bool) ([]domain.Route, error) {
	routes, err := s.routeRepo.ListRoutes(ctx, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list routes")
		return nil, wrapRepoError(err, "list routes")
	}
	if routes == nil {
		routes = []domain.Route{}
	}
	return routes, nil
}

func (s *routeService) UpdateRoute(ctx context.Context, routeID string, req dto.UpdateRouteRequest, actorID string) (*domain.Route, error) {
	route, err := s.routeRepo.FindRouteByID(ctx, routeID)
	if err != nil {
		return nil, wrapRepoError(err, "find route")
	}

	name, code := route.Name, route.Code
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
	}
	if req.Code != nil {
		code = strings.TrimSpace(*req.Code)
	}
	if name == "" || code == "" {
		return nil, validationError("name and code cannot be blank")
	}

	nameLower := domain.NormalizeName(name)
	codeLower := domain.NormalizeName(code)
	if err := s.ensureUniqueNameAndCode(ctx, nameLower, codeLower, routeID); err != nil {
		return nil, err
	}

	route.Name = name
	route.Code = code
	route.NameLower = &nameLower
	route.CodeLower = &codeLower
	if req.Description != nil {
		route.Description = strings.TrimSpace(*req.Description)
	}
	if req.IsActive != nil {
		route.IsActive = *req.IsActive
	}
	route.LastUpdatedAt = time.Now().UTC()
	route.LastUpdatedBy = actorID

	if err := s.routeRepo.UpdateRoute(ctx, *route); err != nil {
		s.LogError(ctx, err, "Failed to update route", slog.String("route_id", routeID))
		return nil, wrapRepoError(err, "update route")
	}
	return route, nil
}

func (s *routeService) DeleteRoute(ctx context.Context, routeID string, actorID string) error {
	if err := s.routeRepo.MarkRouteDeleted(ctx, routeID, time.Now().UTC(), actorID); err != nil {
		return wrapRepoError(err, "delete route")
	}
	s.LogInfo(ctx, "Route deleted", slog.String("route_id", routeID))
	return nil
}

func (s *routeService) setShopRoute(ctx context.Context, shopID string, routeID *string, actorID string) (*domain.Shop, error) {
	shop, err := s.shopRepo.FindShopByID(ctx, shopID)
	if err != nil {
		return nil, wrapRepoError(err, "find shop")
	}
	if shop.IsDeleted() {
		return nil, notFoundError("shop %s is deleted", shopID)
	}

	now := time.Now().UTC()
	if err := s.shopRepo.SetShopRoute(ctx, shopID, routeID, actorID, now); err != nil {
		return nil, wrapRepoError(err, "set shop route")
	}
	shop.RouteID = routeID
	shop.LastUpdatedAt = now
	shop.LastUpdatedBy = actorID
	return shop, nil
}

func (s *routeService) AssignShop(ctx context.Context, routeID, shopID string, actorID string) (*domain.Shop, error) {
	if _, err := s.routeRepo.FindRouteByID(ctx, routeID); err != nil {
		return nil, wrapRepoError(err, "find route")
	}
	shop, err := s.setShopRoute(ctx, shopID, strPtr(routeID), actorID)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Shop assigned to route", slog.String("shop_id", shopID), slog.String("route_id", routeID))
	return shop, nil
}

func (s *routeService) UnassignShop(ctx context.Context, routeID, shopID string, actorID string) (*domain.Shop, error) {
	shop, err := s.shopRepo.FindShopByID(ctx, shopID)
	if err != nil {
		return nil, wrapRepoError(err, "find shop")
	}
	if shop.RouteID == nil || *shop.RouteID != routeID {
		return nil, invalidStateError("shop %s is not on route %s", shopID, routeID)
	}
	return s.setShopRoute(ctx, shopID, nil, actorID)
}

func (s *routeService) ListRouteShops(ctx context.Context, routeID string) ([]domain.Shop, error) {
	if _, err := s.routeRepo.FindRouteByID(ctx, routeID); err != nil {
		return nil, wrapRepoError(err, "find route")
	}
	shops, err := s.shopRepo.ListShops(ctx, portsrepo.ShopFilter{RouteID: routeID, Limit: 500})
	if err != nil {
		return nil, wrapRepoError(err, "list route shops")
	}
	if shops == nil {
		shops = []domain.Shop{}
	}
	return shops, nil
}

// BackfillNormalizedNames processes legacy rows in batches until none remain. A row that
// fails is logged and skipped so one bad record cannot stall the run.
func (s *routeService) BackfillNormalizedNames(ctx context.Context) (*dto.BackfillResponse, error) {
	resp := &dto.BackfillResponse{}
	failed := make(map[string]struct{})

	for {
		if err := ctx.Err(); err != nil {
			return resp, err
		}
		batch, err := s.routeRepo.ListRoutesNeedingBackfill(ctx, backfillBatchSize)
		if err != nil {
			s.LogError(ctx, err, "Failed to list routes needing backfill")
			return resp, wrapRepoError(err, "list routes needing backfill")
		}

		progressed := false
		for i := range batch {
			route := &batch[i]
			if _, skip := failed[route.RouteID]; skip {
				continue
			}
			resp.Scanned++
			if err := s.routeRepo.SetNormalizedNames(ctx, route.RouteID, domain.NormalizeName(route.Name), domain.NormalizeName(route.Code)); err != nil {
				s.LogError(ctx, err, "Failed to backfill route", slog.String("route_id", route.RouteID))
				failed[route.RouteID] = struct{}{}
				continue
			}
			resp.Updated++
			progressed = true
		}

		if len(batch) < backfillBatchSize || !progressed {
			break
		}
	}

	s.LogInfo(ctx, "Route name backfill finished",
		slog.Int("scanned", resp.Scanned),
		slog.Int("updated", resp.Updated),
		slog.Int("failed", len(failed)))
	return resp, nil
}
