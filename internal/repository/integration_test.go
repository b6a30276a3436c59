//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/incial/incial-workhub-sub000/internal/model"
	"github.com/incial/incial-workhub-sub000/internal/repository"
	pkgerrors "github.com/incial/incial-workhub-sub000/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "未设置 TEST_DATABASE_DSN，跳过数据库集成测试")
		os.Exit(0)
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.User{},
		&model.Deal{},
		&model.Task{},
		&model.Meeting{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// setupTestUser 创建操作人并返回清理函数
func setupTestUser(t *testing.T) (*model.User, func()) {
	t.Helper()
	ctx := context.Background()

	user := &model.User{
		Name:         "集成测试用户",
		Email:        fmt.Sprintf("it%d@example.com", time.Now().UnixNano()),
		PasswordHash: "$2a$10$placeholder",
		Role:         model.RoleMember,
	}
	if err := testDB.WithContext(ctx).Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	cleanup := func() {
		testDB.Unscoped().Where("user_id = ?", user.UserID).Delete(&model.User{})
	}
	return user, cleanup
}

// ═══════════════════════════════════════════════════════════
// Test: Task CRUD + 软删除
// ═══════════════════════════════════════════════════════════

func TestTaskRepo_CRUD(t *testing.T) {
	user, cleanup := setupTestUser(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	task := &model.Task{
		Title:    "集成测试任务",
		Status:   model.TaskStatusNotStarted,
		Priority: model.TaskPriorityHigh,
		DueDate:  model.DateOnly("2026-09-15"),
	}
	if err := repo.Task.Create(ctx, task); err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	defer testDB.Unscoped().Where("id = ?", task.ID).Delete(&model.Task{})

	got, err := repo.Task.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if got.Title != "集成测试任务" || got.DueDate != "2026-09-15" {
		t.Errorf("读取结果错误: %+v", got)
	}
	if got.Version != 1 {
		t.Errorf("新记录版本应为 1，实际=%d", got.Version)
	}

	got.Status = model.TaskStatusInProgress
	if err := repo.Task.Update(ctx, got); err != nil {
		t.Fatalf("Update 失败: %v", err)
	}
	if got.Version != 2 {
		t.Errorf("更新后版本应为 2，实际=%d", got.Version)
	}

	if err := repo.Task.Delete(ctx, task.ID, user.UserID); err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}
	if _, err := repo.Task.GetByID(ctx, task.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("软删除后应查不到记录，实际: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: 乐观锁冲突
// ═══════════════════════════════════════════════════════════

func TestTaskRepo_OptimisticLockConflict(t *testing.T) {
	_, cleanup := setupTestUser(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	task := &model.Task{
		Title:  "并发修改目标",
		Status: model.TaskStatusNotStarted,
	}
	if err := repo.Task.Create(ctx, task); err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	defer testDB.Unscoped().Where("id = ?", task.ID).Delete(&model.Task{})

	// 两个请求各自读到同一版本
	first, err := repo.Task.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	second, err := repo.Task.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}

	first.Status = model.TaskStatusInProgress
	if err := repo.Task.Update(ctx, first); err != nil {
		t.Fatalf("第一次更新应成功: %v", err)
	}

	// 第二个请求携带过期版本号
	second.Status = model.TaskStatusDropped
	if err := repo.Task.Update(ctx, second); !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Errorf("期望 ErrOptimisticLock，实际: %v", err)
	}
	if second.Version != 1 {
		t.Errorf("冲突后版本号应回退到 1，实际=%d", second.Version)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Deal 数组列往返
// ═══════════════════════════════════════════════════════════

func TestDealRepo_StringArrayRoundTrip(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	deal := &model.Deal{
		CompanyName: "数组往返测试公司",
		Status:      "lead",
		LeadSources: model.StringArray{`朋友介绍，线下`, `渠道"A"`},
	}
	if err := repo.Deal.Create(ctx, deal); err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	defer testDB.Unscoped().Where("id = ?", deal.ID).Delete(&model.Deal{})

	got, err := repo.Deal.GetByID(ctx, deal.ID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if len(got.LeadSources) != 2 {
		t.Fatalf("期望 2 个线索来源，实际=%v", got.LeadSources)
	}
	// 含逗号与引号的元素应原样往返
	if got.LeadSources[0] != `朋友介绍，线下` || got.LeadSources[1] != `渠道"A"` {
		t.Errorf("数组往返结果错误: %v", got.LeadSources)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Meeting 按时间排序
// ═══════════════════════════════════════════════════════════

func TestMeetingRepo_ListAllOrdersByDateTime(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	later := &model.Meeting{
		Title:    "排序测试-晚",
		DateTime: time.Date(2099, 12, 2, 10, 0, 0, 0, time.Local),
		Status:   model.MeetingStatusScheduled,
	}
	earlier := &model.Meeting{
		Title:    "排序测试-早",
		DateTime: time.Date(2099, 12, 1, 10, 0, 0, 0, time.Local),
		Status:   model.MeetingStatusScheduled,
	}
	for _, m := range []*model.Meeting{later, earlier} {
		if err := repo.Meeting.Create(ctx, m); err != nil {
			t.Fatalf("Create 失败: %v", err)
		}
	}
	defer testDB.Unscoped().Where("id IN ?", []int64{later.ID, earlier.ID}).Delete(&model.Meeting{})

	all, err := repo.Meeting.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll 失败: %v", err)
	}

	earlierIdx, laterIdx := -1, -1
	for i, m := range all {
		switch m.ID {
		case earlier.ID:
			earlierIdx = i
		case later.ID:
			laterIdx = i
		}
	}
	if earlierIdx == -1 || laterIdx == -1 {
		t.Fatal("未找到刚创建的会议")
	}
	if earlierIdx > laterIdx {
		t.Error("ListAll 应按 date_time 升序返回")
	}
}

// ═══════════════════════════════════════════════════════════
// Test: User 按邮箱查询
// ═══════════════════════════════════════════════════════════

func TestUserRepo_GetByEmail(t *testing.T) {
	user, cleanup := setupTestUser(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	got, err := repo.User.GetByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("GetByEmail 失败: %v", err)
	}
	if got.UserID != user.UserID {
		t.Errorf("期望 UserID=%s，实际=%s", user.UserID, got.UserID)
	}

	if _, err := repo.User.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("不存在的邮箱应返回 ErrRecordNotFound，实际: %v", err)
	}
}
