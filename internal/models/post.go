package models

// PostType discriminates how a post's content field is interpreted.
type PostType string

// Post content kinds. Image and video carry a media URL in Content,
// text and micro carry free text.
const (
	PostImage PostType = "image"
	PostVideo PostType = "video"
	PostText  PostType = "text"
	PostMicro PostType = "micro"
)

// Post is a feed entry with a denormalized snapshot of its owner.
// Likes never goes negative. LikedByMe and SavedByMe are local to the
// viewing session and never come from the remote store.
type Post struct {
	ID        string   `json:"id"`
	User      User     `json:"user"`
	Type      PostType `json:"type"`
	Content   string   `json:"content"`
	Caption   string   `json:"caption"`
	Likes     int      `json:"likes"`
	Comments  int      `json:"comments"`
	Tags      []string `json:"tags"`
	Timestamp string   `json:"timestamp"`
	LikedByMe bool     `json:"liked_by_me"`
	SavedByMe bool     `json:"saved_by_me"`
}

// PostDraft is the finished output of the studio pipeline, handed to the
// store's add-post action. Missing fields are defaulted there.
type PostDraft struct {
	Type    PostType `json:"type"`
	Content string   `json:"content"`
	Caption string   `json:"caption"`
	Tags    []string `json:"tags"`
}
