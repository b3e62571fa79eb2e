package service

import (
	"context"

	"github.com/srikumaragency/b-admin-prod-03/internal/dto"
	"github.com/srikumaragency/b-admin-prod-03/internal/model"
	"github.com/srikumaragency/b-admin-prod-03/internal/repository"

	"github.com/google/uuid"
)

type CategoryService interface {
	Create(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.CategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	CreateSubcategory(ctx context.Context, categoryID uuid.UUID, req dto.SubcategoryRequest) (*dto.SubcategoryResponse, error)
	ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]dto.SubcategoryResponse, error)
	UpdateSubcategory(ctx context.Context, id uuid.UUID, req dto.SubcategoryRequest) (*dto.SubcategoryResponse, error)
	DeleteSubcategory(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo     repository.CategoryRepository
	products repository.ProductRepository
}

func NewCategoryService(repo repository.CategoryRepository, products repository.ProductRepository) CategoryService {
	return &categoryService{repo: repo, products: products}
}

func (s *categoryService) Create(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c := &model.Category{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    boolOr(req.IsActive, true),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, conflict(err, "a category with this name already exists")
	}
	resp := categoryToResponse(c)
	return &resp, nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, len(list))
	for i := range list {
		out[i] = categoryToResponse(&list[i])
	}
	return out, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "category")
	}
	c.Name = req.Name
	c.Description = req.Description
	c.IsActive = boolOr(req.IsActive, c.IsActive)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, conflict(err, "a category with this name already exists")
	}
	resp := categoryToResponse(c)
	return &resp, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return newError(ErrConflict, "cannot delete category: %d products still reference it", n)
	}
	return notFound(s.repo.Delete(ctx, id), "category")
}

// ── Subcategories ────────────────────────────────────────────────────────────

func (s *categoryService) CreateSubcategory(ctx context.Context, categoryID uuid.UUID, req dto.SubcategoryRequest) (*dto.SubcategoryResponse, error) {
	if _, err := s.repo.FindByID(ctx, categoryID); err != nil {
		return nil, notFound(err, "category")
	}
	sub := &model.Subcategory{
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    boolOr(req.IsActive, true),
	}
	if err := s.repo.CreateSubcategory(ctx, sub); err != nil {
		return nil, conflict(err, "this category already has a subcategory with that name")
	}
	resp := subcategoryToResponse(sub)
	return &resp, nil
}

func (s *categoryService) ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]dto.SubcategoryResponse, error) {
	if _, err := s.repo.FindByID(ctx, categoryID); err != nil {
		return nil, notFound(err, "category")
	}
	list, err := s.repo.ListSubcategories(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubcategoryResponse, len(list))
	for i := range list {
		out[i] = subcategoryToResponse(&list[i])
	}
	return out, nil
}

func (s *categoryService) UpdateSubcategory(ctx context.Context, id uuid.UUID, req dto.SubcategoryRequest) (*dto.SubcategoryResponse, error) {
	sub, err := s.repo.FindSubcategory(ctx, id)
	if err != nil {
		return nil, notFound(err, "subcategory")
	}
	sub.Name = req.Name
	sub.Description = req.Description
	sub.IsActive = boolOr(req.IsActive, sub.IsActive)
	if err := s.repo.UpdateSubcategory(ctx, sub); err != nil {
		return nil, conflict(err, "this category already has a subcategory with that name")
	}
	resp := subcategoryToResponse(sub)
	return &resp, nil
}

func (s *categoryService) DeleteSubcategory(ctx context.Context, id uuid.UUID) error {
	n, err := s.products.CountBySubcategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return newError(ErrConflict, "cannot delete subcategory: %d products still reference it", n)
	}
	return notFound(s.repo.DeleteSubcategory(ctx, id), "subcategory")
}

func categoryToResponse(c *model.Category) dto.CategoryResponse {
	subs := make([]dto.SubcategoryResponse, len(c.Subcategories))
	for i := range c.Subcategories {
		subs[i] = subcategoryToResponse(&c.Subcategories[i])
	}
	return dto.CategoryResponse{
		ID:            c.ID.String(),
		Name:          c.Name,
		Description:   c.Description,
		IsActive:      c.IsActive,
		Subcategories: subs,
	}
}

func subcategoryToResponse(s *model.Subcategory) dto.SubcategoryResponse {
	return dto.SubcategoryResponse{
		ID:          s.ID.String(),
		CategoryID:  s.CategoryID.String(),
		Name:        s.Name,
		Description: s.Description,
		IsActive:    s.IsActive,
	}
}

func boolOr(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
