package store

import (
	"time"

	"github.com/nexio-app/nexio-api/internal/models"
)

// Built-in demo dataset. Substituted whenever the remote store is
// unreachable so the surface stays exercisable offline. Constructors
// return fresh copies so callers can mutate freely.

// DemoUser returns the built-in demo profile used for guest login and as
// the fallback profile template.
func DemoUser() models.User {
	return models.User{
		ID:       "me",
		Username: "zayn_creates",
		Avatar:   "https://picsum.photos/200/200",
		Badges:   []models.Badge{models.BadgeVerified, models.BadgePro},
		Bio:      "Digital Artist 🎨 | Future Gazing 🔮",
		Stats: &models.UserStats{
			Followers: "12.5k",
			Following: "482",
			Likes:     "1.2m",
		},
	}
}

// DemoPosts returns the fixed two-post demo feed.
func DemoPosts() []models.Post {
	return []models.Post{
		{
			ID: "1",
			User: models.User{
				ID:       "u1",
				Username: "kaira_26",
				Avatar:   "https://picsum.photos/100/100",
				Badges:   []models.Badge{models.BadgeVerified},
			},
			Type:      models.PostImage,
			Content:   "https://picsum.photos/600/800",
			Caption:   "Cyberpunk nights in Tokyo 🌃 #future #neon",
			Likes:     1240,
			Comments:  45,
			Tags:      []string{"Cyberpunk", "Travel"},
			Timestamp: "2h ago",
			LikedByMe: false,
			SavedByMe: true,
		},
		{
			ID: "2",
			User: models.User{
				ID:       "u2",
				Username: "d_art",
				Avatar:   "https://picsum.photos/101/101",
				Badges:   []models.Badge{models.BadgeTier1},
			},
			Type:      models.PostVideo,
			Content:   "https://picsum.photos/600/601",
			Caption:   "NexiO Studio speedart process. 🎨",
			Likes:     856,
			Comments:  22,
			Tags:      []string{"AI Art", "Studio", "Process"},
			Timestamp: "4h ago",
			LikedByMe: true,
			SavedByMe: false,
		},
	}
}

// SeedChats returns the external seed chat list, ordered descending by
// last activity.
func SeedChats() []models.ChatSession {
	now := time.Now()
	return []models.ChatSession{
		{
			ID: "c1",
			User: models.User{
				ID:       "u1",
				Username: "kaira_26",
				Avatar:   "https://picsum.photos/100/100",
				Badges:   []models.Badge{models.BadgeVerified},
			},
			LastMessage: "That edit was insane 🔥",
			Unread:      3,
			Timestamp:   "2m",
			LastActive:  now.Add(-2 * time.Minute).UnixMilli(),
			IsOnline:    true,
			IsEncrypted: true,
		},
		{
			ID: "c2",
			User: models.User{
				ID:       "u2",
				Username: "d_art",
				Avatar:   "https://picsum.photos/101/101",
				Badges:   []models.Badge{models.BadgeTier1},
			},
			LastMessage: "Dropping the process video tomorrow",
			Unread:      0,
			Timestamp:   "1h",
			LastActive:  now.Add(-time.Hour).UnixMilli(),
			IsOnline:    false,
		},
		{
			ID: "c3",
			User: models.User{
				ID:       "u3",
				Username: "neon_rider",
				Avatar:   "https://picsum.photos/102/102",
				Badges:   []models.Badge{models.BadgePro},
			},
			LastMessage: "Let's collab on the neon set",
			Unread:      1,
			Timestamp:   "3h",
			LastActive:  now.Add(-3 * time.Hour).UnixMilli(),
			IsOnline:    true,
			IsEncrypted: true,
		},
	}
}

// SeedMessages returns the seed history for the seed chats.
func SeedMessages() map[string][]models.Message {
	now := time.Now()
	return map[string][]models.Message{
		"c1": {
			{
				ID:            "m1",
				SenderID:      "u1",
				Type:          models.MessageText,
				Content:       "Yo, saw your Tokyo set",
				Timestamp:     now.Add(-10 * time.Minute).Format("3:04 PM"),
				FullTimestamp: now.Add(-10 * time.Minute).UnixMilli(),
			},
			{
				ID:            "m2",
				SenderID:      "u1",
				Type:          models.MessageText,
				Content:       "That edit was insane 🔥",
				Timestamp:     now.Add(-2 * time.Minute).Format("3:04 PM"),
				FullTimestamp: now.Add(-2 * time.Minute).UnixMilli(),
			},
		},
		"c2": {
			{
				ID:            "m3",
				SenderID:      "me",
				Type:          models.MessageText,
				Content:       "Can't wait for the process video",
				Timestamp:     now.Add(-time.Hour).Format("3:04 PM"),
				FullTimestamp: now.Add(-time.Hour).UnixMilli(),
				IsMe:          true,
				Read:          true,
			},
		},
	}
}

// SeedNotifications returns the external seed notification list. The
// store filters these; it never authors new ones.
func SeedNotifications() []models.Notification {
	now := time.Now()
	kaira := models.User{
		ID:       "u1",
		Username: "kaira_26",
		Avatar:   "https://picsum.photos/100/100",
		Badges:   []models.Badge{models.BadgeVerified},
	}
	dart := models.User{
		ID:       "u2",
		Username: "d_art",
		Avatar:   "https://picsum.photos/101/101",
		Badges:   []models.Badge{models.BadgeTier1},
	}
	rider := models.User{
		ID:       "u3",
		Username: "neon_rider",
		Avatar:   "https://picsum.photos/102/102",
		Badges:   []models.Badge{models.BadgePro},
	}

	return []models.Notification{
		{
			ID:        "n1",
			Type:      models.NotificationLike,
			User:      &kaira,
			Content:   "liked your post",
			Time:      "2m ago",
			Timestamp: now.Add(-2 * time.Minute).UnixMilli(),
			Group:     models.GroupNew,
		},
		{
			ID:        "n2",
			Type:      models.NotificationComment,
			User:      &dart,
			Content:   "commented: \"This is fire 🔥\"",
			Time:      "26m ago",
			Timestamp: now.Add(-26 * time.Minute).UnixMilli(),
			Group:     models.GroupNew,
		},
		{
			ID:        "n3",
			Type:      models.NotificationFollow,
			User:      &rider,
			Content:   "started following you",
			Time:      "5h ago",
			Timestamp: now.Add(-5 * time.Hour).UnixMilli(),
			Read:      true,
			Group:     models.GroupEarlier,
		},
		{
			ID:        "n4",
			Type:      models.NotificationMention,
			User:      &kaira,
			Content:   "mentioned you in a comment",
			Time:      "1d ago",
			Timestamp: now.Add(-24 * time.Hour).UnixMilli(),
			Read:      true,
			Group:     models.GroupEarlier,
		},
		{
			ID:        "n5",
			Type:      models.NotificationSystem,
			Content:   "Your creator application was approved 🎉",
			Time:      "2d ago",
			Timestamp: now.Add(-48 * time.Hour).UnixMilli(),
			Read:      true,
			Group:     models.GroupEarlier,
		},
	}
}
