package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/incial/incial-workhub-sub000/internal/dto"
	"github.com/incial/incial-workhub-sub000/internal/model"
	"github.com/incial/incial-workhub-sub000/internal/repository"
)

func setupTestDealService() (DealService, *mockDealRepo) {
	dealRepo := newMockDealRepo()
	repo := &repository.Repository{
		User:    newMockUserRepo(),
		Task:    newMockTaskRepo(),
		Meeting: newMockMeetingRepo(),
		Deal:    dealRepo,
	}
	return NewDealService(repo, zap.NewNop()), dealRepo
}

func TestDealCreate_NormalizesWorkTypes(t *testing.T) {
	svc, _ := setupTestDealService()

	// 兼容字符串与 {"name": ...} 两种历史形态，空标签剔除
	result, err := svc.Create(context.Background(), &dto.CreateDealRequest{
		CompanyName: "测试公司",
		WorkTypes: []interface{}{
			"设计",
			map[string]interface{}{"name": "开发"},
			"",
			42, // 无法识别的类型按空标签处理
		},
	}, "op-1")

	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if len(result.WorkTypes) != 2 {
		t.Fatalf("期望 2 个工种，实际=%v", result.WorkTypes)
	}
	if result.WorkTypes[0] != "设计" || result.WorkTypes[1] != "开发" {
		t.Errorf("工种归一错误: %v", result.WorkTypes)
	}
	if result.Status != model.DealStatusLead {
		t.Errorf("状态默认应为 lead，实际=%s", result.Status)
	}
}

func TestDealCreate_InvalidStatus(t *testing.T) {
	svc, _ := setupTestDealService()

	_, err := svc.Create(context.Background(), &dto.CreateDealRequest{
		CompanyName: "测试公司",
		Status:      "won",
	}, "op-1")

	if !errors.Is(err, ErrDealInvalidStatus) {
		t.Errorf("期望 ErrDealInvalidStatus，实际: %v", err)
	}
}

func TestDealCreate_InvalidFollowUpDate(t *testing.T) {
	svc, _ := setupTestDealService()

	_, err := svc.Create(context.Background(), &dto.CreateDealRequest{
		CompanyName:  "测试公司",
		NextFollowUp: "next week",
	}, "op-1")

	if !errors.Is(err, ErrDealInvalidDate) {
		t.Errorf("期望 ErrDealInvalidDate，实际: %v", err)
	}
}

func TestDealUpdate_PartialFields(t *testing.T) {
	svc, dealRepo := setupTestDealService()
	dealRepo.deals[1] = &model.Deal{
		ID: 1, CompanyName: "甲公司", Status: model.DealStatusLead,
		DealValue: decimal.NewFromInt(1000),
	}
	dealRepo.nextID = 2

	newStatus := model.DealStatusOnboarded
	result, err := svc.Update(context.Background(), 1, &dto.UpdateDealRequest{
		Status: &newStatus,
	}, "op-1")

	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Status != model.DealStatusOnboarded {
		t.Errorf("状态应已更新，实际=%s", result.Status)
	}
	if result.CompanyName != "甲公司" || !result.DealValue.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("未更新字段不应改变: %+v", result)
	}
}

func TestDealList_FilterBySourceSortByValue(t *testing.T) {
	svc, dealRepo := setupTestDealService()
	seed := []*model.Deal{
		{ID: 1, CompanyName: "甲", LeadSources: model.StringArray{"抖音"}, DealValue: decimal.NewFromInt(100)},
		{ID: 2, CompanyName: "乙", LeadSources: model.StringArray{"抖音"}, DealValue: decimal.NewFromInt(500)},
		{ID: 3, CompanyName: "丙", LeadSources: model.StringArray{"官网"}, DealValue: decimal.NewFromInt(300)},
	}
	for _, d := range seed {
		dealRepo.deals[d.ID] = d
	}
	dealRepo.nextID = 4

	result, err := svc.List(context.Background(), &dto.DealListRequest{
		Source: "抖音",
		SortBy: "deal_value",
		Order:  SortDesc,
	})

	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("期望 2 条，实际=%d", len(result))
	}
	if result[0].ID != 2 || result[1].ID != 1 {
		t.Errorf("按金额降序错误: %d/%d", result[0].ID, result[1].ID)
	}
}

func TestDealDelete_NotFound(t *testing.T) {
	svc, _ := setupTestDealService()

	if err := svc.Delete(context.Background(), 99, "op-1"); !errors.Is(err, ErrDealNotFound) {
		t.Errorf("期望 ErrDealNotFound，实际: %v", err)
	}
}
