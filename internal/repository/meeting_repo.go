package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/incial/incial-workhub-sub000/internal/model"
	apperrors "github.com/incial/incial-workhub-sub000/pkg/errors"
)

// MeetingRepository 会议数据访问接口
type MeetingRepository interface {
	Create(ctx context.Context, meeting *model.Meeting) error
	GetByID(ctx context.Context, id int64) (*model.Meeting, error)
	Update(ctx context.Context, meeting *model.Meeting) error
	Delete(ctx context.Context, id int64, operator string) error
	ListAll(ctx context.Context) ([]model.Meeting, error)
}

// meetingRepo MeetingRepository 的 GORM 实现
type meetingRepo struct {
	db *gorm.DB
}

// NewMeetingRepo 创建 MeetingRepository 实例
func NewMeetingRepo(db *gorm.DB) MeetingRepository {
	return &meetingRepo{db: db}
}

func (r *meetingRepo) Create(ctx context.Context, meeting *model.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

func (r *meetingRepo) GetByID(ctx context.Context, id int64) (*model.Meeting, error) {
	var meeting model.Meeting
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&meeting).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// Update 带乐观锁的整行更新：版本不匹配说明记录已被并发修改
func (r *meetingRepo) Update(ctx context.Context, meeting *model.Meeting) error {
	currentVersion := meeting.Version
	meeting.Version++
	result := r.db.WithContext(ctx).
		Model(meeting).
		Where("version = ?", currentVersion).
		Select("*").
		Omit("id", "created_at", "created_by").
		Updates(meeting)
	if result.Error != nil {
		meeting.Version = currentVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		meeting.Version = currentVersion
		return apperrors.ErrOptimisticLock
	}
	return nil
}

func (r *meetingRepo) Delete(ctx context.Context, id int64, operator string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Meeting{}).Where("id = ?", id).
			Update("deleted_by", operator).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Meeting{}).Error
	})
}

func (r *meetingRepo) ListAll(ctx context.Context) ([]model.Meeting, error) {
	var meetings []model.Meeting
	err := r.db.WithContext(ctx).
		Order("date_time ASC").
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}
