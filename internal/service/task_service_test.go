package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/incial/incial-workhub-sub000/internal/dto"
	"github.com/incial/incial-workhub-sub000/internal/model"
	"github.com/incial/incial-workhub-sub000/internal/repository"
)

func setupTestTaskService() (TaskService, *mockTaskRepo) {
	taskRepo := newMockTaskRepo()
	repo := &repository.Repository{
		User:    newMockUserRepo(),
		Task:    taskRepo,
		Meeting: newMockMeetingRepo(),
		Deal:    newMockDealRepo(),
	}
	return NewTaskService(repo, zap.NewNop()), taskRepo
}

func TestTaskCreate_Defaults(t *testing.T) {
	svc, _ := setupTestTaskService()

	result, err := svc.Create(context.Background(), &dto.CreateTaskRequest{
		Title:   "写周报",
		DueDate: "2026-09-01",
	}, "op-1")

	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Status != model.TaskStatusNotStarted {
		t.Errorf("状态默认应为 Not Started，实际=%s", result.Status)
	}
	if !result.IsVisibleOnMainBoard {
		t.Error("主看板可见性默认应为 true")
	}
}

func TestTaskCreate_InvalidDueDate(t *testing.T) {
	svc, _ := setupTestTaskService()

	_, err := svc.Create(context.Background(), &dto.CreateTaskRequest{
		Title:   "写周报",
		DueDate: "09/01/2026",
	}, "op-1")

	if !errors.Is(err, ErrTaskInvalidDueDate) {
		t.Errorf("期望 ErrTaskInvalidDueDate，实际: %v", err)
	}
}

func TestTaskCreate_InvalidStatus(t *testing.T) {
	svc, _ := setupTestTaskService()

	_, err := svc.Create(context.Background(), &dto.CreateTaskRequest{
		Title:   "写周报",
		DueDate: "2026-09-01",
		Status:  "飞行中",
	}, "op-1")

	if !errors.Is(err, ErrTaskInvalidStatus) {
		t.Errorf("期望 ErrTaskInvalidStatus，实际: %v", err)
	}
}

func TestTaskUpdate_PartialFields(t *testing.T) {
	svc, taskRepo := setupTestTaskService()
	taskRepo.tasks[1] = &model.Task{
		ID: 1, Title: "原标题", Status: model.TaskStatusNotStarted,
		Priority: model.TaskPriorityLow, DueDate: "2026-09-01",
	}
	taskRepo.nextID = 2

	newStatus := model.TaskStatusInProgress
	result, err := svc.Update(context.Background(), 1, &dto.UpdateTaskRequest{
		Status: &newStatus,
	}, "op-1")

	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Status != model.TaskStatusInProgress {
		t.Errorf("状态应已更新，实际=%s", result.Status)
	}
	// 未提供的字段保持不变
	if result.Title != "原标题" || result.Priority != model.TaskPriorityLow {
		t.Errorf("未更新字段不应改变: %+v", result)
	}
}

func TestTaskUpdate_NotFound(t *testing.T) {
	svc, _ := setupTestTaskService()

	title := "x"
	_, err := svc.Update(context.Background(), 99, &dto.UpdateTaskRequest{Title: &title}, "op-1")

	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("期望 ErrTaskNotFound，实际: %v", err)
	}
}

func TestTaskList_FilterAndSort(t *testing.T) {
	svc, taskRepo := setupTestTaskService()
	seed := []*model.Task{
		{ID: 1, Title: "b", Status: model.TaskStatusInProgress, Priority: model.TaskPriorityLow},
		{ID: 2, Title: "a", Status: model.TaskStatusInProgress, Priority: model.TaskPriorityHigh},
		{ID: 3, Title: "c", Status: model.TaskStatusCompleted, Priority: model.TaskPriorityHigh},
	}
	for _, task := range seed {
		taskRepo.tasks[task.ID] = task
	}
	taskRepo.nextID = 4

	result, err := svc.List(context.Background(), &dto.TaskListRequest{
		Status: model.TaskStatusInProgress,
		SortBy: "title",
	})

	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("期望 2 条，实际=%d", len(result))
	}
	if result[0].ID != 2 || result[1].ID != 1 {
		t.Errorf("按标题升序错误: %d/%d", result[0].ID, result[1].ID)
	}
}

func TestTaskList_NoFilterKeepsRepoOrder(t *testing.T) {
	svc, taskRepo := setupTestTaskService()
	for i := int64(1); i <= 3; i++ {
		taskRepo.tasks[i] = &model.Task{ID: i, Title: "t", Status: model.TaskStatusNotStarted}
	}
	taskRepo.nextID = 4

	result, err := svc.List(context.Background(), &dto.TaskListRequest{})

	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	for i, r := range result {
		if r.ID != int64(i+1) {
			t.Fatalf("无筛选无排序时应保持仓储顺序，位置 %d 实际 ID=%d", i, r.ID)
		}
	}
}

func TestTaskQueue_ExcludesClosedAndDropped(t *testing.T) {
	svc, taskRepo := setupTestTaskService()
	seed := []*model.Task{
		{ID: 1, Status: model.TaskStatusCompleted},
		{ID: 2, Status: model.TaskStatusDropped},
		{ID: 3, Status: model.TaskStatusPosted},
		{ID: 4, Status: model.TaskStatusInProgress, Priority: model.TaskPriorityLow, DueDate: "2026-09-10"},
		{ID: 5, Status: model.TaskStatusNotStarted, Priority: model.TaskPriorityHigh, DueDate: "2026-09-20"},
	}
	for _, task := range seed {
		taskRepo.tasks[task.ID] = task
	}
	taskRepo.nextID = 6

	result, err := svc.Queue(context.Background())

	if err != nil {
		t.Fatalf("Queue 应成功: %v", err)
	}
	// Completed/Dropped/Posted 不进入队列；余下按权重降序
	if len(result) != 2 {
		t.Fatalf("期望 2 条，实际=%d", len(result))
	}
	if result[0].ID != 5 || result[1].ID != 4 {
		t.Errorf("队列顺序错误: %d/%d", result[0].ID, result[1].ID)
	}
}

func TestTaskDelete(t *testing.T) {
	svc, taskRepo := setupTestTaskService()
	taskRepo.tasks[1] = &model.Task{ID: 1, Title: "x", Status: model.TaskStatusNotStarted}
	taskRepo.nextID = 2

	if err := svc.Delete(context.Background(), 1, "op-1"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if err := svc.Delete(context.Background(), 1, "op-1"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("重复删除期望 ErrTaskNotFound，实际: %v", err)
	}
}
