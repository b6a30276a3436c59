package service

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/incial/incial-workhub-sub000/internal/model"
)

// 会议默认时长：数据模型只记录开始时间，订阅源按一小时展示
const defaultMeetingDuration = time.Hour

// BuildMeetingCalendar 将会议列表序列化为 iCalendar 文本
// 已取消的会议标记为 CANCELLED 而非剔除，让订阅端自行决定展示方式
func BuildMeetingCalendar(meetings []model.Meeting) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Workhub//Meeting Feed//CN")
	cal.SetXWRCalName("Workhub 会议")

	for i := range meetings {
		m := &meetings[i]
		if m.DateTime.IsZero() {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("meeting-%d@workhub", m.ID))
		event.SetDtStampTime(time.Now())
		event.SetStartAt(m.DateTime)
		event.SetEndAt(m.DateTime.Add(defaultMeetingDuration))
		event.SetSummary(m.Title)
		if m.Notes != "" {
			event.SetDescription(m.Notes)
		}
		if m.Link != "" {
			event.SetURL(m.Link)
		}

		switch m.Status {
		case model.MeetingStatusCancelled:
			event.SetStatus(ics.ObjectStatusCancelled)
		case model.MeetingStatusPostponed:
			event.SetStatus(ics.ObjectStatusTentative)
		default:
			event.SetStatus(ics.ObjectStatusConfirmed)
		}
	}

	return cal.Serialize()
}
