package models

// AssignmentCreatedEvent уходит в брокер после успешного принятия предложения.
// Его потребляет внешний сервис уведомлений.
type AssignmentCreatedEvent struct {
	EventID      string `json:"event_id"`
	AssignmentID int64  `json:"assignment_id"`
	RequestID    int64  `json:"request_id"`
	RequesterID  int64  `json:"requester_id"`
	AssigneeID   int64  `json:"assignee_id"`
	Amount       string `json:"amount"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Timestamp    int64  `json:"timestamp"`
}
