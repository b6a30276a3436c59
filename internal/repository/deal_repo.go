package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/incial/incial-workhub-sub000/internal/model"
	apperrors "github.com/incial/incial-workhub-sub000/pkg/errors"
)

// DealRepository 商机数据访问接口
type DealRepository interface {
	Create(ctx context.Context, deal *model.Deal) error
	GetByID(ctx context.Context, id int64) (*model.Deal, error)
	Update(ctx context.Context, deal *model.Deal) error
	Delete(ctx context.Context, id int64, operator string) error
	ListAll(ctx context.Context) ([]model.Deal, error)
}

// dealRepo DealRepository 的 GORM 实现
type dealRepo struct {
	db *gorm.DB
}

// NewDealRepo 创建 DealRepository 实例
func NewDealRepo(db *gorm.DB) DealRepository {
	return &dealRepo{db: db}
}

func (r *dealRepo) Create(ctx context.Context, deal *model.Deal) error {
	return r.db.WithContext(ctx).Create(deal).Error
}

func (r *dealRepo) GetByID(ctx context.Context, id int64) (*model.Deal, error) {
	var deal model.Deal
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Where("id = ?", id).
		First(&deal).Error
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

// Update 带乐观锁的整行更新：版本不匹配说明记录已被并发修改
func (r *dealRepo) Update(ctx context.Context, deal *model.Deal) error {
	currentVersion := deal.Version
	deal.Version++
	result := r.db.WithContext(ctx).
		Model(deal).
		Where("version = ?", currentVersion).
		Select("*").
		Omit("id", "created_at", "created_by").
		Updates(deal)
	if result.Error != nil {
		deal.Version = currentVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		deal.Version = currentVersion
		return apperrors.ErrOptimisticLock
	}
	return nil
}

func (r *dealRepo) Delete(ctx context.Context, id int64, operator string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Deal{}).Where("id = ?", id).
			Update("deleted_by", operator).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Deal{}).Error
	})
}

func (r *dealRepo) ListAll(ctx context.Context) ([]model.Deal, error) {
	var deals []model.Deal
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&deals).Error
	if err != nil {
		return nil, err
	}
	return deals, nil
}
