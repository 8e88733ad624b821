package realtime

import (
	"time"

	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/models"
	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/repositories"
)

// Notifier decides whether a domain action warrants a notification,
// persists the durable row, and pushes the live event. Every feature
// (likes, comments, messages, shares, reports) goes through Notify so
// the self-notification rule lives in exactly one place.
type Notifier struct {
	notifications repositories.NotificationRepository
	fanout        *Fanout
}

// NewNotifier creates a Notifier persisting through notificationRepo and
// pushing through fanout.
func NewNotifier(notificationRepo repositories.NotificationRepository, fanout *Fanout) *Notifier {
	return &Notifier{notifications: notificationRepo, fanout: fanout}
}

// Notify records and pushes a notification for recipientID about an
// action actorID performed. Self-triggered actions are suppressed: no
// row, no push, nil notification.
//
// A persistence failure is returned to the caller since durability is
// part of the contract. A push failure is not; the row is committed
// before fanout is attempted, so a disconnected recipient still finds
// the notification by polling.
func (n *Notifier) Notify(recipientID, actorID uint, kind, message string) (*models.Notification, error) {
	if recipientID == actorID {
		return nil, nil
	}

	notif := &models.Notification{
		Type:        kind,
		ActorID:     actorID,
		RecipientID: recipientID,
		Message:     message,
		IsRead:      false,
	}
	if err := n.notifications.CreateNotification(notif); err != nil {
		return nil, err
	}

	n.fanout.Deliver(recipientID, ChannelNotifications, NotificationEvent{
		Event:            EventNewNotification,
		NotificationType: kind,
		Message:          message,
		ActorID:          actorID,
		NotifID:          notif.ID,
		Timestamp:        notif.CreatedAt.UTC().Format(time.RFC3339),
	})
	return notif, nil
}

// NotifyRead pushes a notification_read event to all of the user's open
// tabs after the row's read flag was flipped. Fanout only, no new row.
func (n *Notifier) NotifyRead(userID, notifID uint) Delivery {
	return n.fanout.Deliver(userID, ChannelNotifications, ReadReceiptEvent{
		Event:     EventNotificationRead,
		NotifID:   notifID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// NotifyStaff fans Notify across a role-derived recipient set, e.g. all
// moderators and admins when a report is filed. Self-suppression still
// applies, so a moderator filing a report never notifies themselves.
func (n *Notifier) NotifyStaff(staffIDs []uint, actorID uint, kind, message string) error {
	for _, id := range staffIDs {
		if _, err := n.Notify(id, actorID, kind, message); err != nil {
			return err
		}
	}
	return nil
}

// Deliver exposes raw fanout for chat payloads that are not
// notifications (new_message, shared_post on the chat channel).
func (n *Notifier) Deliver(userID uint, channel Channel, payload any) Delivery {
	return n.fanout.Deliver(userID, channel, payload)
}
