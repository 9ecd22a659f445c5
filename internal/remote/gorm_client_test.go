package remote

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nexio-app/nexio-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func newTestClient(t *testing.T, db *gorm.DB, cache *redis.Client) Client {
	t.Helper()
	client, err := NewGormClient(db, cache, GormClientConfig{
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
	}, zerolog.Nop())
	require.NoError(t, err)
	return client
}

func TestNewGormClientRequiresSecret(t *testing.T) {
	_, err := NewGormClient(setupTestDB(t), nil, GormClientConfig{}, zerolog.Nop())
	require.Error(t, err)
}

func TestSignUpThenSignIn(t *testing.T) {
	db := setupTestDB(t)
	client := newTestClient(t, db, nil)
	ctx := context.Background()

	session, err := client.SignUp(ctx, "  River@Example.COM ", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, session.UserID)
	require.NotEmpty(t, session.Token)

	// Email lookup is case and whitespace insensitive.
	again, err := client.SignInWithPassword(ctx, "river@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, session.UserID, again.UserID)

	var credential models.Credential
	require.NoError(t, db.First(&credential, "email = ?", "river@example.com").Error)
	require.NotEqual(t, "secret123", credential.PasswordHash)
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	client := newTestClient(t, setupTestDB(t), nil)
	ctx := context.Background()

	_, err := client.SignUp(ctx, "river@example.com", "secret123")
	require.NoError(t, err)

	_, err = client.SignUp(ctx, "RIVER@example.com", "other456")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	client := newTestClient(t, setupTestDB(t), nil)
	ctx := context.Background()

	_, err := client.SignInWithPassword(ctx, "nobody@example.com", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = client.SignUp(ctx, "river@example.com", "secret123")
	require.NoError(t, err)

	_, err = client.SignInWithPassword(ctx, "river@example.com", "wrongpass")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSessionLifecycle(t *testing.T) {
	client := newTestClient(t, setupTestDB(t), nil)
	ctx := context.Background()

	session, err := client.GetSession(ctx)
	require.NoError(t, err)
	require.Nil(t, session)

	created, err := client.SignUp(ctx, "river@example.com", "secret123")
	require.NoError(t, err)

	session, err = client.GetSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, session)
	require.Equal(t, created.UserID, session.UserID)

	require.NoError(t, client.SignOut(ctx))

	session, err = client.GetSession(ctx)
	require.NoError(t, err)
	require.Nil(t, session)
}

func TestSessionResumesFromCache(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer cache.Close()

	db := setupTestDB(t)
	ctx := context.Background()

	first := newTestClient(t, db, cache)
	created, err := first.SignUp(ctx, "river@example.com", "secret123")
	require.NoError(t, err)

	// A fresh client with the same cache resumes the session, the way a
	// restarted process would.
	second := newTestClient(t, db, cache)
	session, err := second.GetSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, session)
	require.Equal(t, created.UserID, session.UserID)

	require.NoError(t, second.SignOut(ctx))
	require.False(t, server.Exists("nexio:session:current"))
}

func TestGetSessionRejectsForgedToken(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer cache.Close()

	require.NoError(t, server.Set("nexio:session:current", "not-a-jwt"))

	client := newTestClient(t, setupTestDB(t), cache)
	session, err := client.GetSession(context.Background())
	require.NoError(t, err)
	require.Nil(t, session)

	// The rejected token is evicted.
	require.False(t, server.Exists("nexio:session:current"))
}

func TestProfileRoundTrip(t *testing.T) {
	client := newTestClient(t, setupTestDB(t), nil)
	ctx := context.Background()

	missing, err := client.GetProfile(ctx, "nobody")
	require.NoError(t, err)
	require.Nil(t, missing)

	row := models.ProfileRow{
		ID:        "u1",
		Username:  "river",
		Avatar:    "https://cdn.example.com/a.png",
		Bio:       "hi",
		Badges:    models.BadgesJSON([]models.Badge{models.BadgeVerified}),
		Followers: "10",
	}
	require.NoError(t, client.InsertProfile(ctx, row))

	user, err := client.GetProfile(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, "river", user.Username)
	require.Equal(t, []models.Badge{models.BadgeVerified}, user.Badges)
	require.NotNil(t, user.Stats)
	require.Equal(t, "10", user.Stats.Followers)
}

func TestInsertProfileRequiresID(t *testing.T) {
	client := newTestClient(t, setupTestDB(t), nil)
	require.Error(t, client.InsertProfile(context.Background(), models.ProfileRow{Username: "x"}))
}

func TestListPostsOrdersNewestFirstWithOwner(t *testing.T) {
	db := setupTestDB(t)
	client := newTestClient(t, db, nil)
	ctx := context.Background()

	require.NoError(t, client.InsertProfile(ctx, models.ProfileRow{ID: "u1", Username: "river"}))

	old := models.PostRow{ID: "old", UserID: "u1", Caption: "old", CreatedAt: time.Now().Add(-time.Hour)}
	fresh := models.PostRow{ID: "fresh", UserID: "u1", Caption: "fresh", CreatedAt: time.Now()}
	require.NoError(t, client.InsertPost(ctx, old))
	require.NoError(t, client.InsertPost(ctx, fresh))

	rows, err := client.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "fresh", rows[0].ID)
	require.NotNil(t, rows[0].User)
	require.Equal(t, "river", rows[0].User.Username)
}

func TestInsertPostFillsDefaults(t *testing.T) {
	db := setupTestDB(t)
	client := newTestClient(t, db, nil)
	ctx := context.Background()

	require.NoError(t, client.InsertPost(ctx, models.PostRow{UserID: "u1", Caption: "typed later"}))

	rows, err := client.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotEmpty(t, rows[0].ID)
	require.Equal(t, "image", rows[0].Type)
}

func TestUpdatePostLikesClampsAtZero(t *testing.T) {
	db := setupTestDB(t)
	client := newTestClient(t, db, nil)
	ctx := context.Background()

	require.NoError(t, client.InsertPost(ctx, models.PostRow{ID: "p1", UserID: "u1", Likes: 3}))
	require.NoError(t, client.UpdatePostLikes(ctx, "p1", -5))

	rows, err := client.ListPosts(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, rows[0].Likes)
}
