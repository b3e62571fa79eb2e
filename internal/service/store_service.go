package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/srikumaragency/b-admin-prod-03/internal/dto"
	"github.com/srikumaragency/b-admin-prod-03/internal/infra"
	"github.com/srikumaragency/b-admin-prod-03/internal/model"
	"github.com/srikumaragency/b-admin-prod-03/internal/pricing"
	"github.com/srikumaragency/b-admin-prod-03/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type StoreService interface {
	Get(ctx context.Context) (*dto.StoreSettingsResponse, error)
	Update(ctx context.Context, req dto.StoreSettingsRequest) (*dto.StoreSettingsResponse, error)
	GetPackaging(ctx context.Context) (*pricing.PackagingSettings, error)
	UpdatePackaging(ctx context.Context, req dto.PackagingSettingsRequest) (*pricing.PackagingSettings, error)
	PackagingCost(ctx context.Context, orderValue decimal.Decimal) (*dto.PackagingCostResponse, error)
	// Settings is the raw row, used when pricing an order.
	Settings(ctx context.Context) (*model.StoreSettings, error)
}

type storeService struct {
	repo  repository.StoreRepository
	cache *infra.Cache
}

func NewStoreService(repo repository.StoreRepository, cache *infra.Cache) StoreService {
	return &storeService{repo: repo, cache: cache}
}

const storeCacheKey = "store:settings"

var nonDigits = regexp.MustCompile(`\D`)

func (s *storeService) Settings(ctx context.Context) (*model.StoreSettings, error) {
	var cached model.StoreSettings
	err := s.cache.Get(ctx, storeCacheKey, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, infra.ErrCacheMiss) {
		log.Warn().Err(err).Msg("store settings cache read failed")
	}

	st, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, storeCacheKey, st); err != nil {
		log.Warn().Err(err).Msg("store settings cache write failed")
	}
	return st, nil
}

func (s *storeService) Get(ctx context.Context) (*dto.StoreSettingsResponse, error) {
	st, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	resp := storeToResponse(st)
	return &resp, nil
}

func (s *storeService) Update(ctx context.Context, req dto.StoreSettingsRequest) (*dto.StoreSettingsResponse, error) {
	if !req.MinimumOrderValue.IsPositive() {
		return nil, newError(ErrInvalid, "Minimum order value must be greater than 0")
	}
	phone := req.ContactPhone
	if phone != "" {
		phone = nonDigits.ReplaceAllString(phone, "")
		if len(phone) != 10 {
			return nil, newError(ErrInvalid, "Contact phone must be a 10 digit number")
		}
	}

	st, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	st.MinimumOrderValue = req.MinimumOrderValue
	st.ContactEmail = req.ContactEmail
	st.ContactPhone = phone
	st.UpiID = req.UpiID
	st.PromotionalOffer = req.PromotionalOffer
	if err := s.save(ctx, st); err != nil {
		return nil, err
	}
	resp := storeToResponse(st)
	return &resp, nil
}

func (s *storeService) GetPackaging(ctx context.Context) (*pricing.PackagingSettings, error) {
	st, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	p := st.Packaging()
	return &p, nil
}

func (s *storeService) UpdatePackaging(ctx context.Context, req dto.PackagingSettingsRequest) (*pricing.PackagingSettings, error) {
	tiers, err := pricing.ValidateTiers(req.Tiers)
	if err != nil {
		return nil, pricingErrorAs(err, ErrInvalid)
	}
	st, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	st.PackagingActive = req.IsActive
	st.PackagingTiers = tiers
	if err := s.save(ctx, st); err != nil {
		return nil, err
	}
	p := st.Packaging()
	return &p, nil
}

func (s *storeService) PackagingCost(ctx context.Context, orderValue decimal.Decimal) (*dto.PackagingCostResponse, error) {
	if orderValue.IsNegative() {
		return nil, newError(ErrInvalid, "Order value must be a non-negative number")
	}
	st, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.PackagingCostResponse{
		OrderValue:      orderValue,
		PackagingCost:   pricing.PackagingCost(orderValue, st.Packaging()),
		PackagingActive: st.PackagingActive,
	}, nil
}

func (s *storeService) save(ctx context.Context, st *model.StoreSettings) error {
	if st.PackagingTiers == nil {
		st.PackagingTiers = []pricing.Tier{}
	}
	if err := s.repo.Save(ctx, st); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, storeCacheKey); err != nil {
		log.Warn().Err(err).Msg("store settings cache invalidation failed")
	}
	return nil
}

func storeToResponse(st *model.StoreSettings) dto.StoreSettingsResponse {
	return dto.StoreSettingsResponse{
		MinimumOrderValue: st.MinimumOrderValue,
		ContactEmail:      st.ContactEmail,
		ContactPhone:      st.ContactPhone,
		UpiID:             st.UpiID,
		PromotionalOffer:  st.PromotionalOffer,
		Packaging:         st.Packaging(),
	}
}
