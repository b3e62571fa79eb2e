package repository

import (
	"context"

	"github.com/srikumaragency/b-admin-prod-03/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRepository covers categories and their subcategories.
type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateSubcategory(ctx context.Context, s *model.Subcategory) error
	ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]model.Subcategory, error)
	FindSubcategory(ctx context.Context, id uuid.UUID) (*model.Subcategory, error)
	UpdateSubcategory(ctx context.Context, s *model.Subcategory) error
	// DeleteSubcategory removes one subcategory.
	DeleteSubcategory(ctx context.Context, id uuid.UUID) error
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepo{db: db} }

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepo) List(ctx context.Context) ([]model.Category, error) {
	var list []model.Category
	err := r.db.WithContext(ctx).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB { return db.Order("name asc") }).
		Order("name asc").
		Find(&list).Error
	return list, err
}

func (r *categoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Preload("Subcategories").First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) Update(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Omit("Subcategories").Save(c).Error
}

// Delete removes the category and its subcategories in one transaction.
func (r *categoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&model.Subcategory{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Category{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *categoryRepo) CreateSubcategory(ctx context.Context, s *model.Subcategory) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *categoryRepo) ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]model.Subcategory, error) {
	var list []model.Subcategory
	err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Order("name asc").Find(&list).Error
	return list, err
}

func (r *categoryRepo) FindSubcategory(ctx context.Context, id uuid.UUID) (*model.Subcategory, error) {
	var s model.Subcategory
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *categoryRepo) UpdateSubcategory(ctx context.Context, s *model.Subcategory) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *categoryRepo) DeleteSubcategory(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Subcategory{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
