package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ProfileRow is the remote `profiles` table layout. Stats are stored as
// display strings, matching what the client renders.
type ProfileRow struct {
	ID        string         `gorm:"primaryKey;size:64" json:"id"`
	Username  string         `gorm:"size:64;not null" json:"username"`
	Avatar    string         `gorm:"size:512" json:"avatar"`
	Bio       string         `gorm:"type:text" json:"bio"`
	Badges    datatypes.JSON `gorm:"type:json" json:"badges"`
	Followers string         `gorm:"size:32" json:"followers"`
	Following string         `gorm:"size:32" json:"following"`
	LikeCount string         `gorm:"size:32" json:"like_count"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName pins the remote table name.
func (ProfileRow) TableName() string { return "profiles" }

// ToUser converts the row into the client-side profile snapshot.
func (p ProfileRow) ToUser() User {
	var badges []Badge
	if len(p.Badges) > 0 {
		_ = json.Unmarshal(p.Badges, &badges)
	}

	user := User{
		ID:       p.ID,
		Username: p.Username,
		Avatar:   p.Avatar,
		Badges:   badges,
		Bio:      p.Bio,
	}
	if p.Followers != "" || p.Following != "" || p.LikeCount != "" {
		user.Stats = &UserStats{
			Followers: p.Followers,
			Following: p.Following,
			Likes:     p.LikeCount,
		}
	}
	return user
}

// BadgesJSON marshals badge kinds for row storage.
func BadgesJSON(badges []Badge) datatypes.JSON {
	if len(badges) == 0 {
		return datatypes.JSON([]byte("[]"))
	}
	payload, err := json.Marshal(badges)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(payload)
}

// PostRow is the remote `posts` table layout, joined with its owning
// profile on fetch.
type PostRow struct {
	ID        string         `gorm:"primaryKey;size:64" json:"id"`
	UserID    string         `gorm:"size:64;index" json:"user_id"`
	Type      string         `gorm:"size:16;default:image" json:"type"`
	Content   string         `gorm:"type:text" json:"content"`
	Caption   string         `gorm:"type:text" json:"caption"`
	Likes     int            `gorm:"not null;default:0" json:"likes"`
	Comments  int            `gorm:"not null;default:0" json:"comments"`
	Tags      datatypes.JSON `gorm:"type:json" json:"tags"`
	CreatedAt time.Time      `json:"created_at"`
	User      *ProfileRow    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName pins the remote table name.
func (PostRow) TableName() string { return "posts" }

// TagList decodes the stored tag sequence, empty when absent.
func (p PostRow) TagList() []string {
	var tags []string
	if len(p.Tags) > 0 {
		_ = json.Unmarshal(p.Tags, &tags)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags
}

// TagsJSON marshals an ordered tag sequence for row storage.
func TagsJSON(tags []string) datatypes.JSON {
	if len(tags) == 0 {
		return datatypes.JSON([]byte("[]"))
	}
	payload, err := json.Marshal(tags)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(payload)
}

// Credential is the remote auth table backing sign-up and sign-in.
type Credential struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName pins the remote table name.
func (Credential) TableName() string { return "credentials" }
