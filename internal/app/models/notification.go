package models

import "time"

type NotificationState string

const (
	NotificationStatePending        NotificationState = "pending"
	NotificationStateInFlight       NotificationState = "in_flight"
	NotificationStateDelivered      NotificationState = "delivered"
	NotificationStateFailedTerminal NotificationState = "failed_terminal"
)

type NotificationTask struct {
	ID           string            `json:"id"`
	PatientID    string            `json:"patient_id"`
	PatientName  string            `json:"patient_name"`
	PatientEmail string            `json:"patient_email"`
	State        NotificationState `json:"state"`
	FailedCount  int               `json:"failed_count"`
	EnqueuedAt   time.Time         `json:"enqueued_at"`
}

// QueuedNotification is a task as handed out by a queue, tagged for ack or requeue.
type QueuedNotification struct {
	DeliveryTag uint64
	Task        NotificationTask
}
