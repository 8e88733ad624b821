package realtime

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/models"
)

// fakeNotificationRepo is an in-memory stand-in for the Postgres
// repository so Notifier behavior can be tested without a database.
type fakeNotificationRepo struct {
	rows       []models.Notification
	nextID     uint
	createErr  error
	markedRead []uint
}

func (f *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	n.ID = f.nextID
	n.CreatedAt = time.Now()
	f.rows = append(f.rows, *n)
	return nil
}

func (f *fakeNotificationRepo) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var out []models.Notification
	for _, row := range f.rows {
		if row.RecipientID == recipientID {
			out = append(out, row)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	for _, row := range f.rows {
		if row.RecipientID == recipientID && !row.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkAsRead(recipientID, notificationID uint) error {
	for i, row := range f.rows {
		if row.ID == notificationID && row.RecipientID == recipientID {
			f.rows[i].IsRead = true
			f.markedRead = append(f.markedRead, notificationID)
			return nil
		}
	}
	return errors.New("record not found")
}

func (f *fakeNotificationRepo) MarkAllAsRead(recipientID uint) error {
	for i, row := range f.rows {
		if row.RecipientID == recipientID {
			f.rows[i].IsRead = true
		}
	}
	return nil
}

func newTestNotifier() (*Notifier, *fakeNotificationRepo, *Registry) {
	repo := &fakeNotificationRepo{}
	registry := NewRegistry()
	return NewNotifier(repo, NewFanout(registry)), repo, registry
}

func TestNotifier_SelfNotificationSuppressed(t *testing.T) {
	kinds := []string{
		models.NotificationLike,
		models.NotificationComment,
		models.NotificationDirectMessage,
		models.NotificationSharedPost,
		models.NotificationReportFiled,
	}
	for _, kind := range kinds {
		notifier, repo, registry := newTestNotifier()
		conn := NewConn(1)
		registry.Register(1, ChannelNotifications, conn)

		notif, err := notifier.Notify(1, 1, kind, "self action")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", kind, err)
		}
		if notif != nil {
			t.Fatalf("%s: got notification %+v, want nil for self action", kind, notif)
		}
		if len(repo.rows) != 0 {
			t.Fatalf("%s: %d rows persisted for self action", kind, len(repo.rows))
		}
		select {
		case data := <-conn.Outbox():
			t.Fatalf("%s: unexpected push %s", kind, data)
		default:
		}
	}
}

func TestNotifier_PersistsRowAndPushesEvent(t *testing.T) {
	notifier, repo, registry := newTestNotifier()
	conn := NewConn(1)
	registry.Register(2, ChannelNotifications, conn)

	notif, err := notifier.Notify(2, 1, models.NotificationLike, "Alice liked your post")
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if notif == nil || notif.ID == 0 {
		t.Fatalf("notification = %+v, want persisted row with ID", notif)
	}
	if notif.IsRead {
		t.Fatal("new notification should start unread")
	}
	if len(repo.rows) != 1 {
		t.Fatalf("%d rows persisted, want exactly 1", len(repo.rows))
	}
	row := repo.rows[0]
	if row.RecipientID != 2 || row.ActorID != 1 || row.Type != models.NotificationLike {
		t.Fatalf("row = %+v", row)
	}

	var event NotificationEvent
	if err := json.Unmarshal(receivePayload(t, conn), &event); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if event.Event != EventNewNotification {
		t.Fatalf("event = %q, want %q", event.Event, EventNewNotification)
	}
	if event.NotifID != notif.ID || event.ActorID != 1 || event.NotificationType != models.NotificationLike {
		t.Fatalf("event = %+v", event)
	}
	if _, err := time.Parse(time.RFC3339, event.Timestamp); err != nil {
		t.Fatalf("timestamp %q not RFC3339: %v", event.Timestamp, err)
	}
}

func TestNotifier_PersistenceFailureSurfacesAndSkipsPush(t *testing.T) {
	notifier, repo, registry := newTestNotifier()
	repo.createErr = errors.New("connection refused")
	conn := NewConn(1)
	registry.Register(2, ChannelNotifications, conn)

	notif, err := notifier.Notify(2, 1, models.NotificationComment, "commented")
	if err == nil {
		t.Fatal("expected persistence error")
	}
	if notif != nil {
		t.Fatalf("notification = %+v, want nil on failure", notif)
	}
	select {
	case data := <-conn.Outbox():
		t.Fatalf("unexpected push after failed persist: %s", data)
	default:
	}
}

func TestNotifier_OfflineRecipientStillGetsRow(t *testing.T) {
	notifier, repo, _ := newTestNotifier()

	if _, err := notifier.Notify(5, 1, models.NotificationDirectMessage, "hello"); err != nil {
		t.Fatalf("notify: %v", err)
	}

	rows, total, err := repo.GetByRecipientID(5, 1, 10)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].IsRead {
		t.Fatalf("rows = %+v (total %d), want one unread row", rows, total)
	}
}

func TestNotifier_ReadReceiptReachesAllTabs(t *testing.T) {
	notifier, repo, registry := newTestNotifier()
	first, second := NewConn(1), NewConn(1)
	registry.Register(3, ChannelNotifications, first)
	registry.Register(3, ChannelNotifications, second)

	d := notifier.NotifyRead(3, 17)
	if d.Outcome != DeliverySent || d.Sent != 2 {
		t.Fatalf("delivery = %+v, want 2 sent", d)
	}
	if len(repo.rows) != 0 {
		t.Fatal("read receipt must not create a notification row")
	}

	for _, conn := range []*Conn{first, second} {
		var event ReadReceiptEvent
		if err := json.Unmarshal(receivePayload(t, conn), &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if event.Event != EventNotificationRead || event.NotifID != 17 {
			t.Fatalf("event = %+v", event)
		}
	}
}

func TestNotifier_StaffBroadcastSkipsReportingModerator(t *testing.T) {
	notifier, repo, _ := newTestNotifier()

	// user 20 is a moderator filing the report; 21 and 22 are peers.
	err := notifier.NotifyStaff([]uint{20, 21, 22}, 20, models.NotificationReportFiled, "New report filed")
	if err != nil {
		t.Fatalf("notify staff: %v", err)
	}
	if len(repo.rows) != 2 {
		t.Fatalf("%d rows persisted, want 2 (actor suppressed)", len(repo.rows))
	}
	for _, row := range repo.rows {
		if row.RecipientID == 20 {
			t.Fatal("reporting moderator received their own report notification")
		}
	}
}
