package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/incial/incial-workhub-sub000/internal/model"
	apperrors "github.com/incial/incial-workhub-sub000/pkg/errors"
)

// TaskRepository 任务数据访问接口
// 筛选/排序在 Service 层内存中进行（数据量以组织活跃任务数为界），
// 仓储只负责整表快照与单条 CRUD
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id int64) (*model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id int64, operator string) error
	ListAll(ctx context.Context) ([]model.Task, error)
}

// taskRepo TaskRepository 的 GORM 实现
type taskRepo struct {
	db *gorm.DB
}

// NewTaskRepo 创建 TaskRepository 实例
func NewTaskRepo(db *gorm.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepo) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Update 带乐观锁的整行更新：版本不匹配说明记录已被并发修改
func (r *taskRepo) Update(ctx context.Context, task *model.Task) error {
	currentVersion := task.Version
	task.Version++
	result := r.db.WithContext(ctx).
		Model(task).
		Where("version = ?", currentVersion).
		Select("*").
		Omit("id", "created_at", "created_by").
		Updates(task)
	if result.Error != nil {
		task.Version = currentVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		task.Version = currentVersion
		return apperrors.ErrOptimisticLock
	}
	return nil
}

func (r *taskRepo) Delete(ctx context.Context, id int64, operator string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Task{}).Where("id = ?", id).
			Update("deleted_by", operator).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Task{}).Error
	})
}

func (r *taskRepo) ListAll(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
