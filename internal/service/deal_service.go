package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/incial/incial-workhub-sub000/internal/dto"
	"github.com/incial/incial-workhub-sub000/internal/model"
	"github.com/incial/incial-workhub-sub000/internal/repository"
)

// ── 商机模块业务错误 ──

var (
	ErrDealNotFound      = errors.New("商机不存在")
	ErrDealInvalidStatus = errors.New("商机状态无效")
	ErrDealInvalidDate   = errors.New("日期格式无效，应为 YYYY-MM-DD")
)

// validDealStatuses 合法商机状态集合
var validDealStatuses = map[string]bool{
	model.DealStatusLead:       true,
	model.DealStatusOnProgress: true,
	model.DealStatusQuoteSent:  true,
	model.DealStatusOnboarded:  true,
	model.DealStatusCompleted:  true,
	model.DealStatusDrop:       true,
}

// DealService 商机模块业务接口
type DealService interface {
	Create(ctx context.Context, req *dto.CreateDealRequest, operator string) (*dto.DealResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.DealResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateDealRequest, operator string) (*dto.DealResponse, error)
	Delete(ctx context.Context, id int64, operator string) error
	List(ctx context.Context, req *dto.DealListRequest) ([]dto.DealResponse, error)
}

type dealService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDealService 创建 DealService 实例
func NewDealService(repo *repository.Repository, logger *zap.Logger) DealService {
	return &dealService{repo: repo, logger: logger}
}

// toWorkTypeList 将请求中的原始工种数组归一为 WorkTypeList
// 元素经 model.Label 统一取值，空标签剔除
func toWorkTypeList(raw []interface{}) model.WorkTypeList {
	list := make(model.WorkTypeList, 0, len(raw))
	for _, v := range raw {
		if label := model.Label(v); label != "" {
			list = append(list, model.WorkTag{Name: label})
		}
	}
	return list
}

// parseOptionalDate 校验可选的 YYYY-MM-DD 日期串（空串合法）
func parseOptionalDate(s string) (model.DateOnly, error) {
	d := model.DateOnly(s)
	if s == "" {
		return d, nil
	}
	if _, err := d.Parse(); err != nil {
		return "", ErrDealInvalidDate
	}
	return d, nil
}

func (s *dealService) Create(ctx context.Context, req *dto.CreateDealRequest, operator string) (*dto.DealResponse, error) {
	status := req.Status
	if status == "" {
		status = model.DealStatusLead
	}
	if !validDealStatuses[status] {
		return nil, ErrDealInvalidStatus
	}
	lastContact, err := parseOptionalDate(req.LastContact)
	if err != nil {
		return nil, err
	}
	nextFollowUp, err := parseOptionalDate(req.NextFollowUp)
	if err != nil {
		return nil, err
	}

	deal := model.Deal{
		CompanyName:  req.CompanyName,
		Contact:      req.Contact,
		Status:       status,
		DealValue:    req.DealValue,
		AssigneeID:   req.AssigneeID,
		AssigneeName: req.AssigneeName,
		LeadSources:  model.StringArray(req.LeadSources),
		WorkTypes:    toWorkTypeList(req.WorkTypes),
		Tags:         model.StringArray(req.Tags),
		LastContact:  lastContact,
		NextFollowUp: nextFollowUp,
	}
	deal.CreatedBy = &operator

	if err := s.repo.Deal.Create(ctx, &deal); err != nil {
		s.logger.Error("创建商机失败", zap.Error(err))
		return nil, err
	}

	resp := toDealResponse(deal)
	return &resp, nil
}

func (s *dealService) GetByID(ctx context.Context, id int64) (*dto.DealResponse, error) {
	deal, err := s.repo.Deal.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDealNotFound
		}
		s.logger.Error("查询商机失败", zap.Error(err))
		return nil, err
	}
	resp := toDealResponse(*deal)
	return &resp, nil
}

func (s *dealService) Update(ctx context.Context, id int64, req *dto.UpdateDealRequest, operator string) (*dto.DealResponse, error) {
	deal, err := s.repo.Deal.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, err
	}

	// 应用更新
	if req.CompanyName != nil {
		deal.CompanyName = *req.CompanyName
	}
	if req.Contact != nil {
		deal.Contact = *req.Contact
	}
	if req.Status != nil {
		if !validDealStatuses[*req.Status] {
			return nil, ErrDealInvalidStatus
		}
		deal.Status = *req.Status
	}
	if req.DealValue != nil {
		deal.DealValue = *req.DealValue
	}
	if req.AssigneeID != nil {
		deal.AssigneeID = req.AssigneeID
	}
	if req.AssigneeName != nil {
		deal.AssigneeName = *req.AssigneeName
	}
	if req.LeadSources != nil {
		deal.LeadSources = model.StringArray(*req.LeadSources)
	}
	if req.WorkTypes != nil {
		deal.WorkTypes = toWorkTypeList(*req.WorkTypes)
	}
	if req.Tags != nil {
		deal.Tags = model.StringArray(*req.Tags)
	}
	if req.LastContact != nil {
		d, err := parseOptionalDate(*req.LastContact)
		if err != nil {
			return nil, err
		}
		deal.LastContact = d
	}
	if req.NextFollowUp != nil {
		d, err := parseOptionalDate(*req.NextFollowUp)
		if err != nil {
			return nil, err
		}
		deal.NextFollowUp = d
	}
	deal.UpdatedBy = &operator

	if err := s.repo.Deal.Update(ctx, deal); err != nil {
		s.logger.Error("更新商机失败", zap.Error(err))
		return nil, err
	}

	resp := toDealResponse(*deal)
	return &resp, nil
}

func (s *dealService) Delete(ctx context.Context, id int64, operator string) error {
	if _, err := s.repo.Deal.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDealNotFound
		}
		return err
	}
	if err := s.repo.Deal.Delete(ctx, id, operator); err != nil {
		s.logger.Error("删除商机失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *dealService) List(ctx context.Context, req *dto.DealListRequest) ([]dto.DealResponse, error) {
	deals, err := s.repo.Deal.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询商机列表失败", zap.Error(err))
		return nil, err
	}

	filtered := ApplyFilters(deals, DealPredicates(DealFilter{
		Search:   req.Search,
		Status:   req.Status,
		Assignee: req.Assignee,
		Source:   req.Source,
		WorkType: req.WorkType,
	})...)

	if req.SortBy != "" {
		less := DealLess(req.SortBy)
		if req.Order == SortDesc {
			less = Descending(less)
		}
		filtered = ApplySort(filtered, less)
	}

	return toDealResponses(filtered), nil
}

// ── 响应转换器 ──

func toDealResponses(deals []model.Deal) []dto.DealResponse {
	result := make([]dto.DealResponse, 0, len(deals))
	for _, d := range deals {
		result = append(result, toDealResponse(d))
	}
	return result
}

func toDealResponse(d model.Deal) dto.DealResponse {
	return dto.DealResponse{
		ID:           d.ID,
		CompanyName:  d.CompanyName,
		Contact:      d.Contact,
		Status:       d.Status,
		DealValue:    d.DealValue,
		AssigneeID:   d.AssigneeID,
		AssigneeName: d.AssigneeName,
		LeadSources:  []string(d.LeadSources),
		WorkTypes:    d.WorkTypes.Labels(),
		Tags:         []string(d.Tags),
		LastContact:  string(d.LastContact),
		NextFollowUp: string(d.NextFollowUp),
	}
}
