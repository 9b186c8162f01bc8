package models

import "time"

type AssignmentStatus string // Статус назначенного похода

const (
	UpcomingAssignment  AssignmentStatus = "upcoming"
	OngoingAssignment   AssignmentStatus = "ongoing"
	CompletedAssignment AssignmentStatus = "completed"
	CancelledAssignment AssignmentStatus = "cancelled"
)

// Assignment представляет подтверждённый поход, созданный при принятии предложения.
// Создаётся только координатором принятия; дальнейшие переходы статуса
// ядром не выполняются.
type Assignment struct {
	ID          int64            `json:"id"`
	RequestID   int64            `json:"requestId"`
	RequesterID int64            `json:"requesterId"`
	AssigneeID  int64            `json:"assigneeId"`
	StartDate   time.Time        `json:"startDate"`
	EndDate     time.Time        `json:"endDate"`
	Remarks     string           `json:"remarks"`
	Status      AssignmentStatus `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	Request     *RequestSummary  `json:"request,omitempty"`
	Counterpart *UserSummary     `json:"counterpart,omitempty"`
}
