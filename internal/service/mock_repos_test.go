package service

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/incial/incial-workhub-sub000/internal/model"
)

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks  map[int64]*model.Task
	nextID int64
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[int64]*model.Task), nextID: 1}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	if task.ID == 0 {
		task.ID = m.nextID
		m.nextID++
	}
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id int64) (*model.Task, error) {
	if t, ok := m.tasks[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) Update(_ context.Context, task *model.Task) error {
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id int64, _ string) error {
	delete(m.tasks, id)
	return nil
}

func (m *mockTaskRepo) ListAll(_ context.Context) ([]model.Task, error) {
	// 与真实仓储一致：按 ID 升序返回
	ids := make([]int64, 0, len(m.tasks))
	for id := range m.tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]model.Task, 0, len(ids))
	for _, id := range ids {
		result = append(result, *m.tasks[id])
	}
	return result, nil
}

// ── Mock MeetingRepository ──

type mockMeetingRepo struct {
	meetings map[int64]*model.Meeting
	nextID   int64
}

func newMockMeetingRepo() *mockMeetingRepo {
	return &mockMeetingRepo{meetings: make(map[int64]*model.Meeting), nextID: 1}
}

func (m *mockMeetingRepo) Create(_ context.Context, meeting *model.Meeting) error {
	if meeting.ID == 0 {
		meeting.ID = m.nextID
		m.nextID++
	}
	m.meetings[meeting.ID] = meeting
	return nil
}

func (m *mockMeetingRepo) GetByID(_ context.Context, id int64) (*model.Meeting, error) {
	if mt, ok := m.meetings[id]; ok {
		return mt, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMeetingRepo) Update(_ context.Context, meeting *model.Meeting) error {
	m.meetings[meeting.ID] = meeting
	return nil
}

func (m *mockMeetingRepo) Delete(_ context.Context, id int64, _ string) error {
	delete(m.meetings, id)
	return nil
}

func (m *mockMeetingRepo) ListAll(_ context.Context) ([]model.Meeting, error) {
	result := make([]model.Meeting, 0, len(m.meetings))
	for _, mt := range m.meetings {
		result = append(result, *mt)
	}
	// 与真实仓储一致：按开始时间升序返回
	sort.Slice(result, func(i, j int) bool {
		return result[i].DateTime.Before(result[j].DateTime)
	})
	return result, nil
}

// ── Mock DealRepository ──

type mockDealRepo struct {
	deals  map[int64]*model.Deal
	nextID int64
}

func newMockDealRepo() *mockDealRepo {
	return &mockDealRepo{deals: make(map[int64]*model.Deal), nextID: 1}
}

func (m *mockDealRepo) Create(_ context.Context, deal *model.Deal) error {
	if deal.ID == 0 {
		deal.ID = m.nextID
		m.nextID++
	}
	m.deals[deal.ID] = deal
	return nil
}

func (m *mockDealRepo) GetByID(_ context.Context, id int64) (*model.Deal, error) {
	if d, ok := m.deals[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDealRepo) Update(_ context.Context, deal *model.Deal) error {
	m.deals[deal.ID] = deal
	return nil
}

func (m *mockDealRepo) Delete(_ context.Context, id int64, _ string) error {
	delete(m.deals, id)
	return nil
}

func (m *mockDealRepo) ListAll(_ context.Context) ([]model.Deal, error) {
	ids := make([]int64, 0, len(m.deals))
	for id := range m.deals {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]model.Deal, 0, len(ids))
	for _, id := range ids {
		result = append(result, *m.deals[id])
	}
	return result, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	all, _ := m.ListAll(nil)
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockUserRepo) ListAll(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	// 与真实仓储一致：按姓名升序返回
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
