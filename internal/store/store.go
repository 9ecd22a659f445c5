package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/nexio-app/nexio-api/internal/models"
	"github.com/nexio-app/nexio-api/internal/observability"
	"github.com/nexio-app/nexio-api/internal/remote"
)

// Mode tells whether the store serves live remote data or the built-in
// demo dataset. It is set once per fetch attempt, never flipped by
// exception-driven branching.
type Mode string

// Store dataset modes.
const (
	ModeLive Mode = "live"
	ModeDemo Mode = "demo"
)

// Filter kinds accepted by FilterNotifications.
const (
	FilterAll      = "All"
	FilterMentions = "Mentions"
	FilterFollows  = "Follows"
	FilterSystem   = "System"
)

// Snapshot is a consistent copy of the full state surface, safe for the
// presentation layer to render without holding any lock.
type Snapshot struct {
	CurrentUser   *models.User                `json:"current_user"`
	Posts         []models.Post               `json:"posts"`
	Chats         []models.ChatSession        `json:"chats"`
	Messages      map[string][]models.Message `json:"messages"`
	Notifications []models.Notification       `json:"notifications"`
	Loading       bool                        `json:"loading"`
	Error         string                      `json:"error,omitempty"`
	Mode          Mode                        `json:"mode"`
}

// Store owns the canonical in-memory collections of the session's domain
// entities and mediates every read and write against the remote store.
// Mutations are optimistic: local state is authoritative for display and
// remote sync failures never roll it back. All mutation happens behind
// one mutex, mirroring the single control thread of the original client;
// async syncs re-enter through the same mutex.
type Store struct {
	remote       remote.Client
	events       *nats.Conn
	eventSubject string
	logger       zerolog.Logger
	sanitizer    *bluemonday.Policy
	now          func() time.Time

	mu            sync.Mutex
	syncs         sync.WaitGroup
	currentUser   *models.User
	posts         []models.Post
	chats         []models.ChatSession
	messages      map[string][]models.Message
	notifications []models.Notification
	loading       bool
	errMsg        string
	mode          Mode
}

// New constructs a store seeded with the external chat and notification
// datasets. The NATS connection is optional; when nil, domain events are
// not published.
func New(client remote.Client, events *nats.Conn, eventSubject string, logger zerolog.Logger) *Store {
	return &Store{
		remote:        client,
		events:        events,
		eventSubject:  strings.TrimSuffix(eventSubject, "."),
		logger:        logger.With().Str("component", "store").Logger(),
		sanitizer:     bluemonday.StrictPolicy(),
		now:           time.Now,
		chats:         SeedChats(),
		messages:      SeedMessages(),
		notifications: SeedNotifications(),
		loading:       true,
		mode:          ModeLive,
	}
}

// Init runs the once-per-session initialization protocol: resume an
// existing session, fetch its profile (with fallback), fetch posts, then
// clear the loading flag. Failures degrade to fallback data; nothing
// here halts the store.
func (s *Store) Init(ctx context.Context) {
	s.setLoading(true)

	session, err := s.remote.GetSession(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("session lookup failed")
	}
	if session != nil && session.UserID != "" {
		s.fetchProfile(ctx, session.UserID)
	}

	s.fetchPosts(ctx)
	s.setLoading(false)
}

// Login authenticates against the remote store. Empty credentials mean
// guest login: the demo user is assigned and the call succeeds
// immediately. With signUp set the credentials are registered and a new
// profile is created first. Either way the post collection is refreshed.
// Failures are captured as a human-readable error string and reported
// via the return value only.
func (s *Store) Login(ctx context.Context, email, password string, signUp bool) bool {
	s.setLoading(true)
	s.setError("")
	defer s.setLoading(false)

	if email == "" || password == "" {
		user := DemoUser()
		s.mu.Lock()
		s.currentUser = &user
		s.mu.Unlock()
		return true
	}

	var session *remote.Session
	var err error
	if signUp {
		session, err = s.remote.SignUp(ctx, email, password)
		if err == nil {
			username := strings.SplitN(email, "@", 2)[0]
			profile := models.ProfileRow{
				ID:       session.UserID,
				Username: username,
				Avatar:   fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=d946ef&color=fff", url.QueryEscape(username)),
				Badges:   models.BadgesJSON([]models.Badge{models.BadgeNew}),
			}
			if insertErr := s.remote.InsertProfile(ctx, profile); insertErr != nil {
				s.logger.Warn().Err(insertErr).Msg("failed to create profile after sign up")
			}
		}
	} else {
		session, err = s.remote.SignInWithPassword(ctx, email, password)
	}

	if err != nil {
		s.setError(err.Error())
		s.logger.Warn().Err(err).Bool("sign_up", signUp).Msg("authentication failed")
		return false
	}

	s.fetchProfile(ctx, session.UserID)
	s.fetchPosts(ctx)
	return true
}

// Logout ends the remote session and clears the current user. In demo
// mode the demo feed is restored, otherwise the feed is cleared.
func (s *Store) Logout(ctx context.Context) {
	if err := s.remote.SignOut(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("remote sign out failed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentUser = nil
	if s.mode == ModeDemo {
		s.posts = DemoPosts()
	} else {
		s.posts = []models.Post{}
	}
}

// AddPost prepends an optimistic post with a locally generated temporary
// id, then submits it to the remote store in the background when live and
// authenticated. A successful submission triggers a full refetch so the
// temporary record is replaced wholesale by the authoritative row. A
// failed submission leaves the optimistic post in place.
func (s *Store) AddPost(ctx context.Context, draft models.PostDraft) models.Post {
	postType := draft.Type
	if postType == "" {
		postType = models.PostImage
	}
	tags := draft.Tags
	if tags == nil {
		tags = []string{}
	}

	s.mu.Lock()
	owner := DemoUser()
	if s.currentUser != nil {
		owner = *s.currentUser
	}
	post := models.Post{
		ID:        uuid.NewString(),
		User:      owner,
		Type:      postType,
		Content:   draft.Content,
		Caption:   draft.Caption,
		Tags:      tags,
		Timestamp: "Just now",
	}
	s.posts = append([]models.Post{post}, s.posts...)
	live := s.mode == ModeLive && s.currentUser != nil
	s.mu.Unlock()

	observability.PostsCreated().WithLabelValues(string(postType)).Inc()

	if live {
		row := models.PostRow{
			UserID:  owner.ID,
			Type:    string(postType),
			Content: draft.Content,
			Caption: draft.Caption,
			Tags:    models.TagsJSON(tags),
		}
		s.syncs.Add(1)
		go func() {
			defer s.syncs.Done()
			// Remote calls are not cancellable once issued.
			bg := context.Background()
			if err := s.remote.InsertPost(bg, row); err != nil {
				s.logger.Error().Err(err).Msg("failed to sync post to remote store")
				return
			}
			s.publishEvent("posts.created", postEvent{UserID: owner.ID, Type: string(postType), Caption: draft.Caption})
			s.fetchPosts(bg)
		}()
	}

	return post
}

// ToggleLike flips the viewer's like on the matching post and adjusts the
// count, floored at zero. When live, the new count is persisted in the
// background; a failed write is logged and the local state kept.
func (s *Store) ToggleLike(ctx context.Context, postID string) {
	s.mu.Lock()
	newLikes := -1
	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		liked := !s.posts[i].LikedByMe
		if liked {
			newLikes = s.posts[i].Likes + 1
		} else {
			newLikes = s.posts[i].Likes - 1
			if newLikes < 0 {
				newLikes = 0
			}
		}
		s.posts[i].Likes = newLikes
		s.posts[i].LikedByMe = liked
		break
	}
	live := s.mode == ModeLive && s.currentUser != nil
	s.mu.Unlock()

	if newLikes < 0 {
		return
	}
	observability.LikesToggled().Inc()

	if live {
		s.syncs.Add(1)
		go func() {
			defer s.syncs.Done()
			if err := s.remote.UpdatePostLikes(context.Background(), postID, newLikes); err != nil {
				s.logger.Error().Err(err).Str("post_id", postID).Msg("failed to update likes")
				return
			}
			s.publishEvent("posts.liked", likeEvent{PostID: postID, Likes: newLikes})
		}()
	}
}

// ToggleSave flips the viewer's save flag on the matching post. Purely
// local, never synchronized.
func (s *Store) ToggleSave(postID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == postID {
			s.posts[i].SavedByMe = !s.posts[i].SavedByMe
			return
		}
	}
}

// SendMessage appends a locally authored message to the chat's history,
// updates the session preview and activity instant, and resorts the chat
// list descending by last activity. Messages are never persisted
// remotely.
func (s *Store) SendMessage(chatID, content string, msgType models.MessageType) models.Message {
	if msgType == "" {
		msgType = models.MessageText
	}
	if msgType == models.MessageText {
		content = strings.TrimSpace(s.sanitizer.Sanitize(content))
	}

	now := s.now()
	message := models.Message{
		ID:            uuid.NewString(),
		SenderID:      "me",
		Type:          msgType,
		Content:       content,
		Timestamp:     now.Format("3:04 PM"),
		FullTimestamp: now.UnixMilli(),
		IsMe:          true,
		Read:          true,
	}

	preview := content
	switch msgType {
	case models.MessageVoice:
		preview = "Sent a voice note"
	case models.MessageImage:
		preview = "Sent an image"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[chatID] = append(s.messages[chatID], message)
	for i := range s.chats {
		if s.chats[i].ID == chatID {
			s.chats[i].LastMessage = preview
			s.chats[i].Timestamp = "Just now"
			s.chats[i].LastActive = message.FullTimestamp
			break
		}
	}
	sort.SliceStable(s.chats, func(i, j int) bool {
		return s.chats[i].LastActive > s.chats[j].LastActive
	})

	observability.MessagesSent().WithLabelValues(string(msgType)).Inc()
	return message
}

// MarkChatRead zeroes the unread count of the matching chat. Unknown chat
// ids are a no-op.
func (s *Store) MarkChatRead(chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.chats {
		if s.chats[i].ID == chatID {
			s.chats[i].Unread = 0
			return
		}
	}
}

// FilterNotifications returns the subset matching the given kind,
// preserving the original relative order. Unknown kinds behave like All.
func (s *Store) FilterNotifications(kind string) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keep func(models.Notification) bool
	switch kind {
	case FilterMentions:
		keep = func(n models.Notification) bool {
			return n.Type == models.NotificationMention ||
				n.Type == models.NotificationComment ||
				n.Type == models.NotificationLike
		}
	case FilterFollows:
		keep = func(n models.Notification) bool { return n.Type == models.NotificationFollow }
	case FilterSystem:
		keep = func(n models.Notification) bool { return n.Type == models.NotificationSystem }
	default:
		keep = func(models.Notification) bool { return true }
	}

	filtered := make([]models.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if keep(n) {
			filtered = append(filtered, n)
		}
	}
	return filtered
}

// Snapshot returns a render-safe copy of the entire state surface.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := make(map[string][]models.Message, len(s.messages))
	for id, list := range s.messages {
		messages[id] = append([]models.Message(nil), list...)
	}

	var user *models.User
	if s.currentUser != nil {
		copied := *s.currentUser
		user = &copied
	}

	return Snapshot{
		CurrentUser:   user,
		Posts:         append([]models.Post(nil), s.posts...),
		Chats:         append([]models.ChatSession(nil), s.chats...),
		Messages:      messages,
		Notifications: append([]models.Notification(nil), s.notifications...),
		Loading:       s.loading,
		Error:         s.errMsg,
		Mode:          s.mode,
	}
}

// CurrentUser returns a copy of the signed-in profile, or nil.
func (s *Store) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentUser == nil {
		return nil
	}
	copied := *s.currentUser
	return &copied
}

// Posts returns a copy of the feed in display order.
func (s *Store) Posts() []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Post(nil), s.posts...)
}

// Chats returns a copy of the chat list in display order.
func (s *Store) Chats() []models.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatSession(nil), s.chats...)
}

// Messages returns a copy of one chat's history.
func (s *Store) Messages(chatID string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Message(nil), s.messages[chatID]...)
}

// Loading reports whether an action is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the captured auth error message, empty when none.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// CurrentMode reports whether the store serves live or demo data.
func (s *Store) CurrentMode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Flush waits for in-flight background syncs. Used on shutdown and in
// tests.
func (s *Store) Flush() {
	s.syncs.Wait()
}

func (s *Store) fetchProfile(ctx context.Context, userID string) {
	user, err := s.remote.GetProfile(ctx, userID)
	if user == nil {
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("profile fetch failed, using fallback profile")
		}
		// The UI is never blocked on profile absence.
		fallback := DemoUser()
		fallback.ID = userID
		user = &fallback
	}

	s.mu.Lock()
	s.currentUser = user
	s.mu.Unlock()
}

func (s *Store) fetchPosts(ctx context.Context) {
	rows, err := s.remote.ListPosts(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("post fetch failed, switching to demo dataset")
		s.mu.Lock()
		s.posts = DemoPosts()
		s.mode = ModeDemo
		s.mu.Unlock()
		observability.DemoModeActive().Set(1)
		return
	}

	posts := make([]models.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, s.mapRow(row))
	}

	s.mu.Lock()
	s.posts = posts
	s.mode = ModeLive
	s.mu.Unlock()
	observability.DemoModeActive().Set(0)
}

func (s *Store) mapRow(row models.PostRow) models.Post {
	owner := DemoUser()
	if row.User != nil {
		owner = row.User.ToUser()
	}

	postType := models.PostType(row.Type)
	if postType == "" {
		postType = models.PostImage
	}

	// The remote schema carries no per-viewer like/save state, so both
	// flags start false on every fetch.
	return models.Post{
		ID:        row.ID,
		User:      owner,
		Type:      postType,
		Content:   row.Content,
		Caption:   row.Caption,
		Likes:     row.Likes,
		Comments:  row.Comments,
		Tags:      row.TagList(),
		Timestamp: row.CreatedAt.Format("3:04 PM"),
	}
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

func (s *Store) setError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = message
}

type postEvent struct {
	UserID  string `json:"user_id"`
	Type    string `json:"type"`
	Caption string `json:"caption"`
}

type likeEvent struct {
	PostID string `json:"post_id"`
	Likes  int    `json:"likes"`
}

func (s *Store) publishEvent(suffix string, payload interface{}) {
	if s.events == nil || s.eventSubject == "" {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to marshal domain event")
		return
	}

	if err := s.events.Publish(s.eventSubject+"."+suffix, data); err != nil {
		s.logger.Warn().Err(err).Str("event", suffix).Msg("failed to publish domain event")
	}
}
