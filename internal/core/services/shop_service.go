package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/psbook/internal/core/domain"
	portsrepo "github.com/SscSPs/psbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/dto"
	"github.com/SscSPs/psbook/internal/utils"
)

// ShopService handles shop master data. Balance changes go through the ledger, never here.
type ShopService struct {
	BaseService
	shopRepo    portsrepo.ShopRepositoryFacade
	routeRepo   portsrepo.RouteReader
	phoneRegion string
}

// NewShopService creates a new ShopService.
func NewShopService(shopRepo portsrepo.ShopRepositoryFacade, routeRepo portsrepo.RouteReader, phoneRegion string) *ShopService {
	return &ShopService{
		shopRepo:    shopRepo,
		routeRepo:   routeRepo,
		phoneRegion: phoneRegion,
	}
}

var _ portssvc.ShopSvcFacade = (*ShopService)(nil)

// normalizePhone keeps unparseable numbers as typed; shops often give landlines with odd formatting.
func (s *ShopService) normalizePhone(ctx context.Context, raw string) string {
	normalized, err := utils.NormalizePhone(raw, s.phoneRegion)
	if err != nil {
		s.LogDebug(ctx, "Keeping shop phone as entered", slog.String("phone", raw))
		return strings.TrimSpace(raw)
	}
	return normalized
}

func (s *ShopService) ensureRoute(ctx context.Context, routeID *string) error {
	if routeID == nil || *routeID == "" {
		return nil
	}
	if _, err := s.routeRepo.FindRouteByID(ctx, *routeID); err != nil {
		if isNotFound(err) {
			return validationError("route %s does not exist", *routeID)
		}
		return wrapRepoError(err, "find route")
	}
	return nil
}

func (s *ShopService) CreateShop(ctx context.Context, req dto.CreateShopRequest, actorID string) (*domain.Shop, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationError("name is required")
	}
	if err := s.ensureRoute(ctx, req.RouteID); err != nil {
		return nil, err
	}

	opening := decimal.Zero
	if req.OpeningBalance != nil {
		if req.OpeningBalance.IsNegative() {
			return nil, validationError("openingBalance cannot be negative")
		}
		opening = *req.OpeningBalance
	}

	var routeID *string
	if req.RouteID != nil && *req.RouteID != "" {
		routeID = req.RouteID
	}

	now := time.Now().UTC()
	shop := domain.Shop{
		ShopID:         uuid.NewString(),
		Name:           name,
		Address:        strings.TrimSpace(req.Address),
		Phone:          s.normalizePhone(ctx, req.Phone),
		Zone:           strings.TrimSpace(req.Zone),
		CurrentBalance: opening,
		RouteID:        routeID,
		AuditFields:    domain.NewAuditFields(actorID, now),
	}

	if err := s.shopRepo.SaveShop(ctx, shop); err != nil {
		s.LogError(ctx, err, "Failed to save shop", slog.String("name", name))
		return nil, wrapRepoError(err, "save shop")
	}

	s.LogInfo(ctx, "Shop created", slog.String("shop_id", shop.ShopID))
	return &shop, nil
}

func (s *ShopService) GetShopByID(ctx context.Context, shopID string) (*domain.Shop, error) {
	shop, err := s.shopRepo.FindShopByID(ctx, shopID)
	if err != nil {
		if !isNotFound(err) {
			s.LogError(ctx, err, "Failed to get shop", slog.String("shop_id", shopID))
		}
		return nil, wrapRepoError(err, "find shop")
	}
	return shop, nil
}

func (s *ShopService) ListShops(ctx context.Context, params dto.ListShopsParams) ([]domain.Shop, error) {
	shops, err := s.shopRepo.ListShops(ctx, portsrepo.ShopFilter{
		RouteID:        params.RouteID,
		Zone:           params.Zone,
		Search:         strings.TrimSpace(params.Search),
		IncludeDeleted: params.IncludeDeleted,
		Limit:          params.Limit,
		Offset:         params.Offset,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list shops")
		return nil, wrapRepoError(err, "list shops")
	}
	if shops == nil {
		shops = []domain.Shop{}
	}
	return shops, nil
}

func (s *ShopService) UpdateShop(ctx context.Context, shopID string, req dto.UpdateShopRequest, actorID string) (*domain.Shop, error) {
	shop, err := s.shopRepo.FindShopByID(ctx, shopID)
	if err != nil {
		return nil, wrapRepoError(err, "find shop")
	}
	if shop.IsDeleted() {
		return nil, notFoundError("shop %s is deleted", shopID)
	}

	changed := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, validationError("name cannot be blank")
		}
		if name != shop.Name {
			shop.Name = name
			changed = true
		}
	}
	if req.Address != nil && strings.TrimSpace(*req.Address) != shop.Address {
		shop.Address = strings.TrimSpace(*req.Address)
		changed = true
	}
	if req.Phone != nil {
		phone := s.normalizePhone(ctx, *req.Phone)
		if phone != shop.Phone {
			shop.Phone = phone
			changed = true
		}
	}
	if req.Zone != nil && strings.TrimSpace(*req.Zone) != shop.Zone {
		shop.Zone = strings.TrimSpace(*req.Zone)
		changed = true
	}
	if req.RouteID != nil {
		if err := s.ensureRoute(ctx, req.RouteID); err != nil {
			return nil, err
		}
		var routeID *string
		if *req.RouteID != "" {
			routeID = req.RouteID
		}
		if !sameOptional(shop.RouteID, routeID) {
			shop.RouteID = routeID
			changed = true
		}
	}

	if !changed {
		return shop, nil
	}

	shop.LastUpdatedAt = time.Now().UTC()
	shop.LastUpdatedBy = actorID
	if err := s.shopRepo.UpdateShop(ctx, *shop); err != nil {
		s.LogError(ctx, err, "Failed to update shop", slog.String("shop_id", shopID))
		return nil, wrapRepoError(err, "update shop")
	}
	return shop, nil
}

func (s *ShopService) DeleteShop(ctx context.Context, shopID string, actorID string) error {
	if err := s.shopRepo.MarkShopDeleted(ctx, shopID, time.Now().UTC(), actorID); err != nil {
		if !isNotFound(err) {
			s.LogError(ctx, err, "Failed to delete shop", slog.String("shop_id", shopID))
		}
		return wrapRepoError(err, "delete shop")
	}
	s.LogInfo(ctx, "Shop deleted", slog.String("shop_id", shopID))
	return nil
}

func sameOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
