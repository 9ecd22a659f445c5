package models

// Badge identifies a profile badge kind rendered next to a username.
type Badge string

// Badge kinds supported by the client.
const (
	BadgeVerified Badge = "verified"
	BadgePro      Badge = "pro"
	BadgeTier1    Badge = "tier1"
	BadgeTier2    Badge = "tier2"
	BadgeTier3    Badge = "tier3"
	BadgeNew      Badge = "new"
)

// UserStats carries pre-formatted display counts for a profile.
type UserStats struct {
	Followers string `json:"followers"`
	Following string `json:"following"`
	Likes     string `json:"likes"`
}

// User is a profile as the client sees it. One instance represents the
// current user; every other User is an immutable snapshot embedded in a
// Post, ChatSession or Notification.
type User struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	Avatar   string     `json:"avatar"`
	Badges   []Badge    `json:"badges"`
	Bio      string     `json:"bio,omitempty"`
	Stats    *UserStats `json:"stats,omitempty"`
}
