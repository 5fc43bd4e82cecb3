package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/billing"
	"github.com/kostman/backend/internal/domain/shared"
	"github.com/kostman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// RateCardCache caches resolved rate cards. A nil card with a nil error
// means a miss.
type RateCardCache interface {
	Get(ctx context.Context, key string) (*billing.RateCard, error)
	Set(ctx context.Context, key string, card billing.RateCard, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

const (
	rateCardCacheTTL       = 10 * time.Minute
	rateCardCacheGlobalKey = "ratecard:global"
)

// SettingsService manages rate settings and resolves the effective rate card
// for bill generation. Property-scoped settings override the global row.
type SettingsService struct {
	settingsRepo billing.RateSettingsRepository
	cache        RateCardCache
}

// NewSettingsService creates a new SettingsService. The cache is optional.
func NewSettingsService(settingsRepo billing.RateSettingsRepository, cache RateCardCache) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		cache:        cache,
	}
}

// UpdateSettingsRequest is the input for updating rate settings
type UpdateSettingsRequest struct {
	PropertyID *uuid.UUID      `json:"property_id"`
	CostPerKwh decimal.Decimal `json:"cost_per_kwh" binding:"required"`
	WaterFee   decimal.Decimal `json:"water_fee" binding:"required"`
	TrashFee   decimal.Decimal `json:"trash_fee" binding:"required"`
}

// RateSettingsResponse represents rate settings in API responses
type RateSettingsResponse struct {
	ID         uuid.UUID       `json:"id"`
	PropertyID *uuid.UUID      `json:"property_id,omitempty"`
	CostPerKwh decimal.Decimal `json:"cost_per_kwh"`
	WaterFee   decimal.Decimal `json:"water_fee"`
	TrashFee   decimal.Decimal `json:"trash_fee"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func toRateSettingsResponse(rs *billing.RateSettings) *RateSettingsResponse {
	return &RateSettingsResponse{
		ID:         rs.ID,
		PropertyID: rs.PropertyID,
		CostPerKwh: rs.CostPerKwh.Amount(),
		WaterFee:   rs.WaterFee.Amount(),
		TrashFee:   rs.TrashFee.Amount(),
		UpdatedAt:  rs.UpdatedAt,
	}
}

// UpdateSettings creates or updates the rate settings row for the given
// scope and invalidates the cached rate card
func (s *SettingsService) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*RateSettingsResponse, error) {
	costPerKwh := valueobject.NewMoneyIDR(req.CostPerKwh)
	waterFee := valueobject.NewMoneyIDR(req.WaterFee)
	trashFee := valueobject.NewMoneyIDR(req.TrashFee)

	existing, err := s.findScoped(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if err := existing.Update(costPerKwh, waterFee, trashFee); err != nil {
			return nil, err
		}
		if err := s.settingsRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
		s.invalidate(ctx, req.PropertyID)
		return toRateSettingsResponse(existing), nil
	}

	settings, err := billing.NewRateSettings(req.PropertyID, costPerKwh, waterFee, trashFee)
	if err != nil {
		return nil, err
	}
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	s.invalidate(ctx, req.PropertyID)
	return toRateSettingsResponse(settings), nil
}

// GetSettings gets the rate settings for the given scope, without falling
// back to the global row
func (s *SettingsService) GetSettings(ctx context.Context, propertyID *uuid.UUID) (*RateSettingsResponse, error) {
	settings, err := s.findScoped(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Rate settings not configured")
	}
	return toRateSettingsResponse(settings), nil
}

// ResolveRateCard resolves the effective rate card for a property: the
// property's own settings when present, the global fallback otherwise
func (s *SettingsService) ResolveRateCard(ctx context.Context, propertyID uuid.UUID) (billing.RateCard, error) {
	key := rateCardCacheKey(&propertyID)
	if s.cache != nil {
		if card, err := s.cache.Get(ctx, key); err == nil && card != nil {
			return *card, nil
		}
	}

	settings, err := s.settingsRepo.FindByProperty(ctx, propertyID)
	if err != nil {
		return billing.RateCard{}, err
	}
	if settings == nil {
		settings, err = s.settingsRepo.FindGlobal(ctx)
		if err != nil {
			return billing.RateCard{}, err
		}
	}
	if settings == nil {
		return billing.RateCard{}, shared.NewDomainError("NOT_FOUND", "Rate settings not configured")
	}

	card := settings.RateCard()
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, card, rateCardCacheTTL)
	}
	return card, nil
}

func (s *SettingsService) findScoped(ctx context.Context, propertyID *uuid.UUID) (*billing.RateSettings, error) {
	if propertyID == nil {
		return s.settingsRepo.FindGlobal(ctx)
	}
	return s.settingsRepo.FindByProperty(ctx, *propertyID)
}

// invalidate drops the cached card for the scope. A global change can affect
// every property, so it drops nothing scoped and relies on the TTL instead.
func (s *SettingsService) invalidate(ctx context.Context, propertyID *uuid.UUID) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, rateCardCacheKey(propertyID))
}

func rateCardCacheKey(propertyID *uuid.UUID) string {
	if propertyID == nil {
		return rateCardCacheGlobalKey
	}
	return "ratecard:" + propertyID.String()
}
