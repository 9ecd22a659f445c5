package remote

import (
	"context"

	"github.com/nexio-app/nexio-api/internal/models"
)

// Session is an authenticated remote session.
type Session struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// Client is the surface of the remote data/auth backend consumed by the
// store. Insert and update calls are fire-and-forget from the store's
// perspective: their errors are logged, never surfaced.
type Client interface {
	// GetSession returns the current authenticated session, or nil when
	// none exists.
	GetSession(ctx context.Context) (*Session, error)
	// GetProfile looks up one profile row. A missing row yields (nil, nil)
	// so callers can substitute a fallback profile.
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	// ListPosts returns posts ordered by creation descending, each joined
	// with its owning profile.
	ListPosts(ctx context.Context) ([]models.PostRow, error)

	InsertProfile(ctx context.Context, row models.ProfileRow) error
	InsertPost(ctx context.Context, row models.PostRow) error
	UpdatePostLikes(ctx context.Context, postID string, likes int) error

	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
}
