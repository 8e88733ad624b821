package realtime

// Event names pushed over the websocket channels.
const (
	EventNewNotification  = "new_notification"
	EventNotificationRead = "notification_read"
	EventNewMessage       = "new_message"
	EventSharedPost       = "shared_post"
)

// NotificationEvent is the envelope for new_notification pushes.
type NotificationEvent struct {
	Event            string `json:"event"`
	NotificationType string `json:"notification_type"`
	Message          string `json:"message"`
	ActorID          uint   `json:"actor_id"`
	NotifID          uint   `json:"notif_id"`
	Timestamp        string `json:"timestamp"`
}

// ReadReceiptEvent tells a user's other open tabs that a notification
// was marked read.
type ReadReceiptEvent struct {
	Event     string `json:"event"`
	NotifID   uint   `json:"notif_id"`
	Timestamp string `json:"timestamp"`
}

// MessageEvent is the envelope for new_message and shared_post pushes on
// the chat channel. PostID is set only for shared posts.
type MessageEvent struct {
	Event     string `json:"event"`
	SenderID  uint   `json:"sender_id"`
	Content   string `json:"content"`
	PostID    uint   `json:"post_id,omitempty"`
	CreatedAt string `json:"created_at"`
}