package repository

import (
	"context"

	"github.com/asset-tracking-api/internal/domain"
	"gorm.io/gorm"
)

// AssetRepository определяет интерфейс для работы с активами
type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) error
	GetByTag(ctx context.Context, tag string) (*domain.Asset, error)
	Update(ctx context.Context, asset *domain.Asset) error
}

type assetRepository struct {
	db *gorm.DB
}

// NewAssetRepository создаёт новый экземпляр репозитория
func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *assetRepository) GetByTag(ctx context.Context, tag string) (*domain.Asset, error) {
	var asset domain.Asset
	err := r.db.WithContext(ctx).First(&asset, "tag = ?", tag).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	return &asset, nil
}

// Update сохраняет актив целиком, включая сброшенные в NULL поля назначения
func (r *assetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}
