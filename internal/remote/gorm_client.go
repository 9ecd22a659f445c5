package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nexio-app/nexio-api/internal/models"
)

const sessionCacheKey = "nexio:session:current"

var (
	// ErrInvalidCredentials indicates sign-in was rejected.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken indicates sign-up hit an existing account.
	ErrEmailTaken = errors.New("an account with this email already exists")
)

// GormClientConfig configures the GORM-backed remote client.
type GormClientConfig struct {
	JWTSecret  string
	SessionTTL time.Duration
}

// gormClient implements Client against a relational backend. The current
// session is held in memory and mirrored into Redis when a cache client
// is supplied, so a restarted process can resume it.
type gormClient struct {
	db     *gorm.DB
	cache  *redis.Client
	cfg    GormClientConfig
	logger zerolog.Logger
	tracer trace.Tracer

	mu      sync.Mutex
	session *Session
}

// NewGormClient constructs the relational remote client. The cache client
// may be nil.
func NewGormClient(db *gorm.DB, cache *redis.Client, cfg GormClientConfig, logger zerolog.Logger) (Client, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("remote client jwt secret must be provided")
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}

	return &gormClient{
		db:     db,
		cache:  cache,
		cfg:    cfg,
		logger: logger.With().Str("component", "remote_client").Logger(),
		tracer: otel.Tracer("github.com/nexio-app/nexio-api/internal/remote"),
	}, nil
}

// Migrate creates the remote tables when they do not exist yet.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.ProfileRow{}, &models.PostRow{}, &models.Credential{})
}

func (c *gormClient) GetSession(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	session := c.session
	c.mu.Unlock()

	if session == nil && c.cache != nil {
		token, err := c.cache.Get(ctx, sessionCacheKey).Result()
		if err == nil && token != "" {
			session = &Session{Token: token}
		}
	}

	if session == nil {
		return nil, nil
	}

	userID, err := c.verifyToken(session.Token)
	if err != nil {
		c.logger.Debug().Err(err).Msg("stored session token rejected")
		c.clearSession(ctx)
		return nil, nil
	}

	session.UserID = userID
	c.mu.Lock()
	c.session = session
	c.mu.Unlock()

	return session, nil
}

func (c *gormClient) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	ctx, span := c.tracer.Start(ctx, "remote.get_profile", trace.WithAttributes(
		attribute.String("profile.id", userID),
	))
	defer span.End()

	var row models.ProfileRow
	if err := c.db.WithContext(ctx).First(&row, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	user := row.ToUser()
	return &user, nil
}

func (c *gormClient) ListPosts(ctx context.Context) ([]models.PostRow, error) {
	ctx, span := c.tracer.Start(ctx, "remote.list_posts")
	defer span.End()

	var rows []models.PostRow
	if err := c.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return rows, nil
}

func (c *gormClient) InsertProfile(ctx context.Context, row models.ProfileRow) error {
	if row.ID == "" {
		return fmt.Errorf("profile id must not be empty")
	}
	if err := c.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (c *gormClient) InsertPost(ctx context.Context, row models.PostRow) error {
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.Type == "" {
		row.Type = string(models.PostImage)
	}
	if err := c.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (c *gormClient) UpdatePostLikes(ctx context.Context, postID string, likes int) error {
	if likes < 0 {
		likes = 0
	}
	if err := c.db.WithContext(ctx).
		Model(&models.PostRow{}).
		Where("id = ?", postID).
		Update("likes", likes).Error; err != nil {
		return fmt.Errorf("update post likes: %w", err)
	}
	return nil
}

func (c *gormClient) SignUp(ctx context.Context, email, password string) (*Session, error) {
	ctx, span := c.tracer.Start(ctx, "remote.sign_up")
	defer span.End()

	email = normalizeEmail(email)

	var existing models.Credential
	err := c.db.WithContext(ctx).First(&existing, "email = ?", email).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		span.RecordError(err)
		return nil, fmt.Errorf("sign up: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	credential := models.Credential{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := c.db.WithContext(ctx).Create(&credential).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("sign up: %w", err)
	}

	return c.openSession(ctx, credential.ID)
}

func (c *gormClient) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	ctx, span := c.tracer.Start(ctx, "remote.sign_in")
	defer span.End()

	var credential models.Credential
	err := c.db.WithContext(ctx).First(&credential, "email = ?", normalizeEmail(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		span.RecordError(err)
		return nil, fmt.Errorf("sign in: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return c.openSession(ctx, credential.ID)
}

func (c *gormClient) SignOut(ctx context.Context) error {
	c.clearSession(ctx)
	return nil
}

func (c *gormClient) openSession(ctx context.Context, userID string) (*Session, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.cfg.SessionTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	session := &Session{UserID: userID, Token: token}

	c.mu.Lock()
	c.session = session
	c.mu.Unlock()

	if c.cache != nil {
		if err := c.cache.Set(ctx, sessionCacheKey, token, c.cfg.SessionTTL).Err(); err != nil {
			c.logger.Warn().Err(err).Msg("failed to cache session token")
		}
	}

	return session, nil
}

func (c *gormClient) verifyToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(c.cfg.JWTSecret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("session token carries no subject")
	}

	return claims.Subject, nil
}

func (c *gormClient) clearSession(ctx context.Context) {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()

	if c.cache != nil {
		if err := c.cache.Del(ctx, sessionCacheKey).Err(); err != nil {
			c.logger.Warn().Err(err).Msg("failed to clear cached session token")
		}
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
