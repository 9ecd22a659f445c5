package remote

import (
	"context"
	"fmt"

	"github.com/nexio-app/nexio-api/internal/models"
)

// unavailableClient is the remote client used when no backend is
// configured or reachable. Reads report no data, writes fail, which
// drives the store into demo mode.
type unavailableClient struct {
	reason string
}

// NewUnavailableClient returns a client whose every call degrades, so
// the store falls back to the demo dataset.
func NewUnavailableClient(reason string) Client {
	if reason == "" {
		reason = "remote store not configured"
	}
	return &unavailableClient{reason: reason}
}

func (u *unavailableClient) GetSession(context.Context) (*Session, error) {
	return nil, nil
}

func (u *unavailableClient) GetProfile(context.Context, string) (*models.User, error) {
	return nil, fmt.Errorf("%s", u.reason)
}

func (u *unavailableClient) ListPosts(context.Context) ([]models.PostRow, error) {
	return nil, fmt.Errorf("%s", u.reason)
}

func (u *unavailableClient) InsertProfile(context.Context, models.ProfileRow) error {
	return fmt.Errorf("%s", u.reason)
}

func (u *unavailableClient) InsertPost(context.Context, models.PostRow) error {
	return fmt.Errorf("%s", u.reason)
}

func (u *unavailableClient) UpdatePostLikes(context.Context, string, int) error {
	return fmt.Errorf("%s", u.reason)
}

func (u *unavailableClient) SignUp(context.Context, string, string) (*Session, error) {
	return nil, fmt.Errorf("%s", u.reason)
}

func (u *unavailableClient) SignInWithPassword(context.Context, string, string) (*Session, error) {
	return nil, fmt.Errorf("%s", u.reason)
}

func (u *unavailableClient) SignOut(context.Context) error {
	return nil
}
