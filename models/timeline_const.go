package models

// Тип события в ленте задания. Первая группа используется как ключ шаблона
// уведомления, вторая пишется только в ленту.
type TimelineEventType string

const (
	TimelineEventApprovalRequest TimelineEventType = "job_approval_request"
	TimelineEventApproved        TimelineEventType = "job_approved"
	TimelineEventRejected        TimelineEventType = "job_rejected"
	TimelineEventAssigned        TimelineEventType = "job_assigned"

	TimelineEventReturned          TimelineEventType = "job_returned"
	TimelineEventStarted           TimelineEventType = "job_started"
	TimelineEventCloseRequested    TimelineEventType = "job_close_requested"
	TimelineEventClosed            TimelineEventType = "job_closed"
	TimelineEventRevisionRequested TimelineEventType = "job_revision_requested"
	TimelineEventComment           TimelineEventType = "job_comment"
	TimelineEventRejectionRequest  TimelineEventType = "job_rejection_requested"
	TimelineEventRejectionDenied   TimelineEventType = "job_rejection_denied"
)

// IsNotifiable сообщает, рассылается ли по событию уведомление
func (t TimelineEventType) IsNotifiable() bool {
	switch t {
	case TimelineEventApprovalRequest, TimelineEventApproved, TimelineEventRejected, TimelineEventAssigned:
		return true
	}
	return false
}
