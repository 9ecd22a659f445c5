package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/nexio-app/nexio-api/internal/handler"
	"github.com/nexio-app/nexio-api/internal/remote"
	"github.com/nexio-app/nexio-api/internal/store"
	"github.com/nexio-app/nexio-api/internal/utils"
	"github.com/nexio-app/nexio-api/pkg/ai"
)

// demoApp wires a fiber application against a store running on the demo
// dataset, the way the service boots without any backend configured.
func demoApp(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()

	s := store.New(remote.NewUnavailableClient(""), nil, "nexio", zerolog.Nop())
	s.Init(context.Background())

	validate := validator.New(validator.WithRequiredStructEnabled())
	app := fiber.New()

	handler.NewStateHandler(s, zerolog.Nop()).Register(app.Group("/api/v1/state"))
	handler.NewAuthHandler(s, validate, zerolog.Nop()).Register(app.Group("/api/v1/auth"))
	handler.NewFeedHandler(s, validate, zerolog.Nop()).Register(app.Group("/api/v1/posts"))
	handler.NewChatHandler(s, validate, zerolog.Nop()).Register(app.Group("/api/v1/chats"))
	handler.NewNotificationHandler(s, zerolog.Nop()).Register(app.Group("/api/v1/notifications"))
	handler.NewStudioHandler(ai.NewStaticGenerator(), nil, validate, zerolog.Nop()).Register(app.Group("/api/v1/studio"))

	return app, s
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, utils.APIResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var envelope utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func TestStateSnapshotEndpoint(t *testing.T) {
	app, _ := demoApp(t)

	resp, envelope := doJSON(t, app, http.MethodGet, "/api/v1/state/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, envelope.Success)

	snapshot, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "demo", snapshot["mode"])
	require.Nil(t, snapshot["current_user"])
	require.Len(t, snapshot["posts"], 2)
	require.Len(t, snapshot["chats"], 3)
	require.Len(t, snapshot["notifications"], 5)
}

func TestLoginGuest(t *testing.T) {
	app, s := demoApp(t)

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, envelope.Success)

	user, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "me", user["id"])
	require.NotNil(t, s.CurrentUser())
}

func TestLoginRejectsShortPassword(t *testing.T) {
	app, _ := demoApp(t)

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"email":    "river@example.com",
		"password": "abc",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.False(t, envelope.Success)
}

func TestLoginFailureReturnsUnauthorized(t *testing.T) {
	app, _ := demoApp(t)

	// No backend is configured, so credentialed sign-in cannot succeed.
	resp, envelope := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"email":    "river@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.False(t, envelope.Success)
	require.NotEmpty(t, envelope.Message)
}

func TestLogoutEndpoint(t *testing.T) {
	app, s := demoApp(t)
	require.True(t, s.Login(context.Background(), "", "", false))

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Nil(t, s.CurrentUser())
}

func TestCreatePostSanitizesCaption(t *testing.T) {
	app, s := demoApp(t)

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/v1/posts/", map[string]interface{}{
		"type":    "image",
		"content": "https://cdn.example.com/x.jpg",
		"caption": "sunset <script>alert(1)</script>vibes",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, envelope.Success)

	posts := s.Posts()
	require.Len(t, posts, 3)
	require.Equal(t, "sunset vibes", posts[0].Caption)
}

func TestCreatePostRejectsUnknownType(t *testing.T) {
	app, _ := demoApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/posts/", map[string]interface{}{
		"type":    "hologram",
		"content": "x",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestToggleLikeEndpoint(t *testing.T) {
	app, s := demoApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/posts/1/like", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	posts := s.Posts()
	require.Equal(t, 1241, posts[0].Likes)
	require.True(t, posts[0].LikedByMe)
}

func TestToggleSaveEndpoint(t *testing.T) {
	app, s := demoApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/posts/2/save", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, s.Posts()[1].SavedByMe)
}

func TestChatEndpoints(t *testing.T) {
	app, s := demoApp(t)

	resp, envelope := doJSON(t, app, http.MethodGet, "/api/v1/chats/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, envelope.Data, 3)

	resp, envelope = doJSON(t, app, http.MethodPost, "/api/v1/chats/c2/messages", map[string]interface{}{
		"content": "on my way",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	message, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "on my way", message["content"])
	require.Equal(t, true, message["is_me"])

	resp, envelope = doJSON(t, app, http.MethodGet, "/api/v1/chats/c2/messages", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, envelope.Data, 2)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/chats/c1/read", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, chat := range s.Chats() {
		if chat.ID == "c1" {
			require.Zero(t, chat.Unread)
		}
	}
}

func TestSendMessageRequiresContent(t *testing.T) {
	app, _ := demoApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/chats/c1/messages", map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNotificationFilterEndpoint(t *testing.T) {
	app, _ := demoApp(t)

	resp, envelope := doJSON(t, app, http.MethodGet, "/api/v1/notifications/?filter=Follows", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, envelope.Data, 1)

	resp, envelope = doJSON(t, app, http.MethodGet, "/api/v1/notifications/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, envelope.Data, 5)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/notifications/?filter=Bogus", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateCaptionEndpoint(t *testing.T) {
	app, _ := demoApp(t)

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/v1/studio/captions", map[string]interface{}{
		"mood":    "Cyber",
		"context": "A cool creation in NexiO studio",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, ai.CaptionFallback, data["caption"])
}

func TestGenerateCaptionRequiresMood(t *testing.T) {
	app, _ := demoApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/studio/captions", map[string]interface{}{
		"context": "something",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadFrameUnavailableWithoutBackend(t *testing.T) {
	app, _ := demoApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/studio/uploads", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
