package models

import "time"

// Report represents a user-filed report against a post or a chat message.
// MessageID is the MongoDB ObjectID of the reported message as a hex string.
type Report struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ReporterID uint      `json:"reporter_id" gorm:"index"`
	PostID     *uint     `json:"post_id,omitempty"`
	MessageID  *string   `json:"message_id,omitempty" gorm:"size:24"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

// CreateReportRequest defines the request body for filing a report
type CreateReportRequest struct {
	PostID    *uint   `json:"post_id,omitempty"`
	MessageID *string `json:"message_id,omitempty"`
	Reason    string  `json:"reason" validate:"required,min=3,max=500"`
}
