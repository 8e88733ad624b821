package models

import "time"

// Notification kinds. This is a closed set; every write path goes
// through realtime.Notifier which tags rows with one of these.
const (
	NotificationLike          = "like"
	NotificationComment       = "comment"
	NotificationDirectMessage = "direct_message"
	NotificationSharedPost    = "shared_post"
	NotificationReportFiled   = "report_filed"
	NotificationReadReceipt   = "read_receipt"
)

// Notification represents a user notification (PostgreSQL)
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"notification_type" gorm:"size:30;index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
