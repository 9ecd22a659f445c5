package models

// NotificationType classifies a notification entry.
type NotificationType string

// Notification kinds. System notifications carry no actor.
const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationFollow  NotificationType = "follow"
	NotificationMention NotificationType = "mention"
	NotificationSystem  NotificationType = "system"
)

// Notification groups are pre-assigned buckets, not derived from the
// timestamp at query time.
const (
	GroupNew     = "New"
	GroupEarlier = "Earlier"
)

// Notification is a read-only activity entry. The store filters these;
// it never authors them.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	User      *User            `json:"user,omitempty"`
	Content   string           `json:"content"`
	Time      string           `json:"time"`
	Timestamp int64            `json:"timestamp"`
	Read      bool             `json:"read"`
	Group     string           `json:"group"`
}
