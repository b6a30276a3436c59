package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/incial/incial-workhub-sub000/config"
	"github.com/incial/incial-workhub-sub000/internal/dto"
	"github.com/incial/incial-workhub-sub000/internal/model"
	"github.com/incial/incial-workhub-sub000/internal/repository"
)

// ── 会议模块业务错误 ──

var (
	ErrMeetingNotFound      = errors.New("会议不存在")
	ErrMeetingInvalidStatus = errors.New("会议状态无效")
	ErrMeetingMissingTime   = errors.New("会议时间不能为空")
)

// validMeetingStatuses 合法会议状态集合
var validMeetingStatuses = map[string]bool{
	model.MeetingStatusScheduled: true,
	model.MeetingStatusCompleted: true,
	model.MeetingStatusCancelled: true,
	model.MeetingStatusPostponed: true,
}

// MeetingService 会议模块业务接口
type MeetingService interface {
	Create(ctx context.Context, req *dto.CreateMeetingRequest, operator string) (*dto.MeetingResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.MeetingResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateMeetingRequest, operator string) (*dto.MeetingResponse, error)
	Delete(ctx context.Context, id int64, operator string) error
	List(ctx context.Context, req *dto.MeetingListRequest) ([]dto.MeetingResponse, error)
	// ICSFeed 导出全部会议为 iCalendar (RFC 5545) 订阅源
	ICSFeed(ctx context.Context) (string, error)
}

type meetingService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMeetingService 创建 MeetingService 实例
func NewMeetingService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) MeetingService {
	return &meetingService{cfg: cfg, repo: repo, logger: logger}
}

func (s *meetingService) Create(ctx context.Context, req *dto.CreateMeetingRequest, operator string) (*dto.MeetingResponse, error) {
	if req.DateTime.IsZero() {
		return nil, ErrMeetingMissingTime
	}
	status := req.Status
	if status == "" {
		status = model.MeetingStatusScheduled
	}
	if !validMeetingStatuses[status] {
		return nil, ErrMeetingInvalidStatus
	}

	meeting := model.Meeting{
		Title:     req.Title,
		DateTime:  req.DateTime,
		Status:    status,
		Link:      req.Link,
		Notes:     req.Notes,
		CompanyID: req.CompanyID,
	}
	meeting.CreatedBy = &operator

	if err := s.repo.Meeting.Create(ctx, &meeting); err != nil {
		s.logger.Error("创建会议失败", zap.Error(err))
		return nil, err
	}

	resp := toMeetingResponse(meeting)
	return &resp, nil
}

func (s *meetingService) GetByID(ctx context.Context, id int64) (*dto.MeetingResponse, error) {
	meeting, err := s.repo.Meeting.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		s.logger.Error("查询会议失败", zap.Error(err))
		return nil, err
	}
	resp := toMeetingResponse(*meeting)
	return &resp, nil
}

func (s *meetingService) Update(ctx context.Context, id int64, req *dto.UpdateMeetingRequest, operator string) (*dto.MeetingResponse, error) {
	meeting, err := s.repo.Meeting.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, err
	}

	// 应用更新
	if req.Title != nil {
		meeting.Title = *req.Title
	}
	if req.DateTime != nil {
		if req.DateTime.IsZero() {
			return nil, ErrMeetingMissingTime
		}
		meeting.DateTime = *req.DateTime
	}
	if req.Status != nil {
		if !validMeetingStatuses[*req.Status] {
			return nil, ErrMeetingInvalidStatus
		}
		meeting.Status = *req.Status
	}
	if req.Link != nil {
		meeting.Link = *req.Link
	}
	if req.Notes != nil {
		meeting.Notes = *req.Notes
	}
	if req.CompanyID != nil {
		meeting.CompanyID = req.CompanyID
	}
	meeting.UpdatedBy = &operator

	if err := s.repo.Meeting.Update(ctx, meeting); err != nil {
		s.logger.Error("更新会议失败", zap.Error(err))
		return nil, err
	}

	resp := toMeetingResponse(*meeting)
	return &resp, nil
}

func (s *meetingService) Delete(ctx context.Context, id int64, operator string) error {
	if _, err := s.repo.Meeting.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMeetingNotFound
		}
		return err
	}
	if err := s.repo.Meeting.Delete(ctx, id, operator); err != nil {
		s.logger.Error("删除会议失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *meetingService) List(ctx context.Context, req *dto.MeetingListRequest) ([]dto.MeetingResponse, error) {
	meetings, err := s.repo.Meeting.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询会议列表失败", zap.Error(err))
		return nil, err
	}

	var preds []Predicate[model.Meeting]
	if req.Search != "" {
		preds = append(preds, func(m model.Meeting) bool {
			return MatchesSearch(req.Search, m.Title, m.Notes)
		})
	}
	if req.Status != "" {
		preds = append(preds, func(m model.Meeting) bool { return m.Status == req.Status })
	}
	if req.From != "" {
		preds = append(preds, func(m model.Meeting) bool {
			return !m.DateTime.IsZero() && DateKeyOf(m.DateTime) >= req.From
		})
	}
	filtered := ApplyFilters(meetings, preds...)

	return toMeetingResponses(filtered), nil
}

func (s *meetingService) ICSFeed(ctx context.Context) (string, error) {
	meetings, err := s.repo.Meeting.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询会议列表失败", zap.Error(err))
		return "", err
	}
	return BuildMeetingCalendar(meetings), nil
}

// ── 响应转换器 ──

func toMeetingResponses(meetings []model.Meeting) []dto.MeetingResponse {
	result := make([]dto.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		result = append(result, toMeetingResponse(m))
	}
	return result
}

func toMeetingResponse(m model.Meeting) dto.MeetingResponse {
	return dto.MeetingResponse{
		ID:        m.ID,
		Title:     m.Title,
		DateTime:  m.DateTime,
		Status:    m.Status,
		Link:      m.Link,
		Notes:     m.Notes,
		CompanyID: m.CompanyID,
		UpdatedAt: m.UpdatedAt,
	}
}
