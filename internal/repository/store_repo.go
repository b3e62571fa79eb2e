package repository

import (
	"context"
	"errors"

	"github.com/srikumaragency/b-admin-prod-03/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StoreRepository interface {
	// Get returns the settings row, creating it with defaults on first use.
	Get(ctx context.Context) (*model.StoreSettings, error)
	Save(ctx context.Context, s *model.StoreSettings) error
}

type storeRepo struct{ db *gorm.DB }

func NewStoreRepository(db *gorm.DB) StoreRepository { return &storeRepo{db: db} }

func (r *storeRepo) Get(ctx context.Context) (*model.StoreSettings, error) {
	var s model.StoreSettings
	err := r.db.WithContext(ctx).First(&s, "id = ?", model.StoreSettingsID).Error
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	s = model.DefaultStoreSettings()
	// Two first reads may race; the loser's insert is a no-op.
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&s).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).First(&s, "id = ?", model.StoreSettingsID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *storeRepo) Save(ctx context.Context, s *model.StoreSettings) error {
	s.ID = model.StoreSettingsID
	return r.db.WithContext(ctx).Save(s).Error
}
