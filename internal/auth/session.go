package auth

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	sessionTTL       = 24 * time.Hour
)

// Store manages sessions in Redis. A session maps an opaque random ID to
// the authenticated user's ID; the user row itself is rehydrated per
// request by the middleware.
type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	secret []byte
}

// NewStore returns a new session store. secret signs the cookie value.
func NewStore(rdb *redis.Client, ttl time.Duration, secret string) *Store {
	if ttl <= 0 {
		ttl = sessionTTL
	}
	return &Store{rdb: rdb, ttl: ttl, secret: []byte(secret)}
}

// TTL returns the session lifetime, for cookie max-age.
func (s *Store) TTL() time.Duration { return s.ttl }

// Create stores a new session for userID and returns its ID.
func (s *Store) Create(ctx context.Context, userID int64) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	key := sessionKeyPrefix + id
	if err := s.rdb.Set(ctx, key, strconv.FormatInt(userID, 10), s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// GetUserID resolves a session ID to the user ID it was created for.
// ok is false when the session is gone or expired; a non-nil error means
// the store itself is unavailable, which is a different failure.
func (s *Store) GetUserID(ctx context.Context, id string) (int64, bool, error) {
	v, err := s.rdb.Get(ctx, sessionKeyPrefix+id).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	userID, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return userID, true, nil
}

// Delete removes a session by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}

// Sign returns the cookie value for a session ID: "<id>.<hmac-sha256>".
func (s *Store) Sign(id string) string {
	return id + "." + s.mac(id)
}

// Verify splits and checks a cookie value. ok is false on any tampering.
func (s *Store) Verify(cookie string) (id string, ok bool) {
	i := strings.LastIndexByte(cookie, '.')
	if i <= 0 {
		return "", false
	}
	id, sig := cookie[:i], cookie[i+1:]
	if !hmac.Equal([]byte(sig), []byte(s.mac(id))) {
		return "", false
	}
	return id, true
}

func (s *Store) mac(id string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(id))
	return hex.EncodeToString(h.Sum(nil))
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
