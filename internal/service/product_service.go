package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/srikumaragency/b-admin-prod-03/internal/dto"
	"github.com/srikumaragency/b-admin-prod-03/internal/infra"
	"github.com/srikumaragency/b-admin-prod-03/internal/model"
	"github.com/srikumaragency/b-admin-prod-03/internal/pricing"
	"github.com/srikumaragency/b-admin-prod-03/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ProductService defines the business logic contract for products.
type ProductService interface {
	Create(ctx context.Context, req dto.ProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	// GetByCode serves the public lookup and is cached in Redis.
	GetByCode(ctx context.Context, code string) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.ProductRequest) (*dto.ProductResponse, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	ToggleFeatured(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	ToggleBestSeller(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	ToggleActive(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	CheckCode(ctx context.Context, code string, excludeID *uuid.UUID) (*dto.CodeAvailabilityResponse, error)
	PreviewPricing(req dto.PricingPreviewRequest) (*pricing.Result, error)
}

type productService struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	cache      *infra.Cache
	now        func() time.Time
}

func NewProductService(repo repository.ProductRepository, categories repository.CategoryRepository, cache *infra.Cache) ProductService {
	return &productService{repo: repo, categories: categories, cache: cache, now: time.Now}
}

var productCodePattern = regexp.MustCompile(`^[A-Z0-9]+$`)

var errFeaturedAndBestSeller = newError(ErrInvalid,
	"A product cannot be both a bestseller and featured product at the same time.")

// NormalizeProductCode trims and upper-cases a code and checks its alphabet.
func NormalizeProductCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !productCodePattern.MatchString(code) {
		return "", newError(ErrInvalid, "product code may only contain letters and digits")
	}
	return code, nil
}

func productCacheKey(code string) string { return "product:code:" + code }

func (s *productService) Create(ctx context.Context, req dto.ProductRequest) (*dto.ProductResponse, error) {
	p := &model.Product{IsActive: true}
	if err := s.apply(ctx, p, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, conflict(err, "product code already exists")
	}
	s.invalidate(ctx, p.ProductCode)
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) GetByCode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	key := productCacheKey(code)

	var cached dto.ProductResponse
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, infra.ErrCacheMiss) {
		log.Warn().Err(err).Str("key", key).Msg("product cache read failed")
	}

	p, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, notFound(err, "product")
	}
	resp := productToResponse(p)
	if err := s.cache.Set(ctx, key, resp); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("product cache write failed")
	}
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, len(list))
	for i := range list {
		data[i] = productToResponse(&list[i])
	}
	return &dto.ProductListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.ProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	if p.IsDeleted {
		return nil, newError(ErrInvalid, "restore the product before editing it")
	}
	oldCode := p.ProductCode
	if err := s.apply(ctx, p, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, conflict(err, "product code already exists")
	}
	s.invalidate(ctx, oldCode, p.ProductCode)
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "product")
	}
	if p.IsDeleted {
		return newError(ErrInvalid, "product is already deleted")
	}
	if err := s.repo.SoftDelete(ctx, id, s.now()); err != nil {
		return err
	}
	s.invalidate(ctx, p.ProductCode)
	return nil
}

func (s *productService) Restore(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	if !p.IsDeleted {
		return nil, newError(ErrInvalid, "product is not deleted")
	}
	if err := s.repo.Restore(ctx, id); err != nil {
		return nil, err
	}
	p.IsDeleted = false
	p.IsActive = true
	p.DeletedAt = nil
	s.invalidate(ctx, p.ProductCode)
	resp := productToResponse(p)
	return &resp, nil
}

// ToggleFeatured flips the featured flag; turning it on clears bestseller.
func (s *productService) ToggleFeatured(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	return s.toggle(ctx, id, func(p *model.Product) {
		p.IsFeatured = !p.IsFeatured
		if p.IsFeatured {
			p.IsBestSeller = false
		}
	})
}

// ToggleBestSeller flips the bestseller flag; turning it on clears featured.
func (s *productService) ToggleBestSeller(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	return s.toggle(ctx, id, func(p *model.Product) {
		p.IsBestSeller = !p.IsBestSeller
		if p.IsBestSeller {
			p.IsFeatured = false
		}
	})
}

func (s *productService) ToggleActive(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	return s.toggle(ctx, id, func(p *model.Product) { p.IsActive = !p.IsActive })
}

func (s *productService) toggle(ctx context.Context, id uuid.UUID, flip func(*model.Product)) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	if p.IsDeleted {
		return nil, newError(ErrInvalid, "restore the product before changing it")
	}
	flip(p)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, p.ProductCode)
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) CheckCode(ctx context.Context, code string, excludeID *uuid.UUID) (*dto.CodeAvailabilityResponse, error) {
	code, err := NormalizeProductCode(code)
	if err != nil {
		return nil, err
	}
	taken, err := s.repo.CodeTaken(ctx, code, excludeID)
	if err != nil {
		return nil, err
	}
	return &dto.CodeAvailabilityResponse{ProductCode: code, Available: !taken}, nil
}

func (s *productService) PreviewPricing(req dto.PricingPreviewRequest) (*pricing.Result, error) {
	res, err := pricing.ComputeWithDefaults(req.BasePrice, req.ProfitMarginPercentage, req.DiscountPercentage)
	if err != nil {
		return nil, pricingError(err)
	}
	return &res, nil
}

// apply validates req and copies it onto p, recomputing every derived price.
func (s *productService) apply(ctx context.Context, p *model.Product, req dto.ProductRequest) error {
	if req.IsFeatured && req.IsBestSeller {
		return errFeaturedAndBestSeller
	}
	code, err := NormalizeProductCode(req.ProductCode)
	if err != nil {
		return err
	}
	var exclude *uuid.UUID
	if p.ID != uuid.Nil {
		exclude = &p.ID
	}
	taken, err := s.repo.CodeTaken(ctx, code, exclude)
	if err != nil {
		return err
	}
	if taken {
		return newError(ErrConflict, "product code %s already exists", code)
	}

	categoryID, subcategoryID, err := s.checkCategory(ctx, req.CategoryID, req.SubcategoryID)
	if err != nil {
		return err
	}

	priced, err := pricing.ComputeWithDefaults(req.BasePrice, req.ProfitMarginPercentage, req.DiscountPercentage)
	if err != nil {
		return pricingError(err)
	}

	p.ProductCode = code
	p.Name = strings.TrimSpace(req.Name)
	p.Description = req.Description
	p.CategoryID = categoryID
	p.SubcategoryID = subcategoryID
	p.BrandName = req.BrandName
	p.YoutubeLink = req.YoutubeLink
	p.CaseQuantity = req.CaseQuantity
	p.ReceivedCase = req.ReceivedCase
	if req.TotalAvailableQuantity != nil {
		p.TotalAvailableQuantity = *req.TotalAvailableQuantity
	} else {
		p.TotalAvailableQuantity = pricing.TotalAvailableQuantity(req.ReceivedCase, req.CaseQuantity)
	}
	p.MaxQuantityPerCustomer = req.MaxQuantityPerCustomer
	p.BasePrice = priced.BasePrice
	p.ProfitMarginPercentage = priced.ProfitMarginPercentage
	p.DiscountPercentage = priced.DiscountPercentage
	p.ProfitMarginPrice = priced.ProfitMarginPrice
	p.CalculatedOriginalPrice = priced.CalculatedOriginalPrice
	p.OfferPrice = priced.OfferPrice
	p.IsActive = boolOr(req.IsActive, p.IsActive)
	p.IsFeatured = req.IsFeatured
	p.IsBestSeller = req.IsBestSeller
	return nil
}

func (s *productService) checkCategory(ctx context.Context, categoryStr, subcategoryStr string) (uuid.UUID, uuid.UUID, error) {
	categoryID, err := uuid.Parse(categoryStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, newError(ErrInvalid, "invalid category id")
	}
	subcategoryID, err := uuid.Parse(subcategoryStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, newError(ErrInvalid, "invalid subcategory id")
	}
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return uuid.Nil, uuid.Nil, notFound(err, "category")
	}
	sub, err := s.categories.FindSubcategory(ctx, subcategoryID)
	if err != nil {
		return uuid.Nil, uuid.Nil, notFound(err, "subcategory")
	}
	if sub.CategoryID != categoryID {
		return uuid.Nil, uuid.Nil, newError(ErrInvalid, "subcategory does not belong to the selected category")
	}
	return categoryID, subcategoryID, nil
}

// invalidate drops cached lookups; a cache outage only costs freshness
// until the TTL.
func (s *productService) invalidate(ctx context.Context, codes ...string) {
	keys := make([]string, 0, len(codes))
	for _, c := range codes {
		if c != "" {
			keys = append(keys, productCacheKey(c))
		}
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("product cache invalidation failed")
	}
}

func pricingError(err error) error {
	return pricingErrorAs(err, ErrUnprocessable)
}

// pricingErrorAs strips the package prefix and capitalises the message so it
// can be shown to clients as-is.
func pricingErrorAs(err error, kind error) error {
	if !errors.Is(err, pricing.ErrInvalidInput) {
		return err
	}
	msg := strings.TrimPrefix(err.Error(), pricing.ErrInvalidInput.Error()+": ")
	if msg != "" {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}
	return newError(kind, "%s", msg)
}

func productToResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:                      p.ID.String(),
		ProductCode:             p.ProductCode,
		Name:                    p.Name,
		Description:             p.Description,
		CategoryID:              p.CategoryID.String(),
		SubcategoryID:           p.SubcategoryID.String(),
		BrandName:               p.BrandName,
		YoutubeLink:             p.YoutubeLink,
		CaseQuantity:            p.CaseQuantity,
		ReceivedCase:            p.ReceivedCase,
		TotalAvailableQuantity:  p.TotalAvailableQuantity,
		MaxQuantityPerCustomer:  p.MaxQuantityPerCustomer,
		BasePrice:               p.BasePrice,
		ProfitMarginPercentage:  p.ProfitMarginPercentage,
		DiscountPercentage:      p.DiscountPercentage,
		ProfitMarginPrice:       p.ProfitMarginPrice,
		CalculatedOriginalPrice: p.CalculatedOriginalPrice,
		OfferPrice:              p.OfferPrice,
		IsActive:                p.IsActive,
		IsFeatured:              p.IsFeatured,
		IsBestSeller:            p.IsBestSeller,
		IsDeleted:               p.IsDeleted,
		DeletedAt:               p.DeletedAt,
		CreatedAt:               p.CreatedAt,
		UpdatedAt:               p.UpdatedAt,
	}
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
