package repository

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	tokenKeyPrefix = "snapurl:token:"
	themeKeyPrefix = "snapurl:theme:"
)

// ErrNoToken means no token is persisted for the session.
var ErrNoToken = errors.New("no persisted token")

// ClientStateStore is the gateway's stand-in for the browser's persistent
// client state: the bearer token per session and the theme per user.
type ClientStateStore interface {
	SaveToken(ctx context.Context, sid, token string) error
	LoadToken(ctx context.Context, sid string) (string, error)
	DeleteToken(ctx context.Context, sid string) error
	SaveTheme(ctx context.Context, userID, theme string) error
	LoadTheme(ctx context.Context, userID string) (string, error)
}

type redisClientState struct {
	rdb      *redis.Client
	tokenTTL time.Duration
	sealKey  []byte // optional; when set, tokens are encrypted at rest
}

// NewRedisClientStateStore persists client state in Redis. When sealKey is a
// 32-byte key, bearer tokens are sealed with ChaCha20-Poly1305 before they
// touch Redis.
func NewRedisClientStateStore(rdb *redis.Client, tokenTTL time.Duration, sealKey []byte) (ClientStateStore, error) {
	if len(sealKey) != 0 && len(sealKey) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("seal key must be %d bytes, got %d", chacha20poly1305.KeySize, len(sealKey))
	}
	return &redisClientState{rdb: rdb, tokenTTL: tokenTTL, sealKey: sealKey}, nil
}

func (s *redisClientState) SaveToken(ctx context.Context, sid, token string) error {
	value, err := s.seal(token)
	if err != nil {
		return fmt.Errorf("redisClientState.SaveToken: %w", err)
	}
	if err := s.rdb.Set(ctx, tokenKeyPrefix+sid, value, s.tokenTTL).Err(); err != nil {
		return fmt.Errorf("redisClientState.SaveToken: %w", err)
	}
	return nil
}

func (s *redisClientState) LoadToken(ctx context.Context, sid string) (string, error) {
	value, err := s.rdb.Get(ctx, tokenKeyPrefix+sid).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("redisClientState.LoadToken: %w", err)
	}
	token, err := s.open(value)
	if err != nil {
		// An unreadable token is as good as no token.
		return "", ErrNoToken
	}
	return token, nil
}

func (s *redisClientState) DeleteToken(ctx context.Context, sid string) error {
	if err := s.rdb.Del(ctx, tokenKeyPrefix+sid).Err(); err != nil {
		return fmt.Errorf("redisClientState.DeleteToken: %w", err)
	}
	return nil
}

func (s *redisClientState) SaveTheme(ctx context.Context, userID, theme string) error {
	if err := s.rdb.Set(ctx, themeKeyPrefix+userID, theme, 0).Err(); err != nil {
		return fmt.Errorf("redisClientState.SaveTheme: %w", err)
	}
	return nil
}

func (s *redisClientState) LoadTheme(ctx context.Context, userID string) (string, error) {
	theme, err := s.rdb.Get(ctx, themeKeyPrefix+userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redisClientState.LoadTheme: %w", err)
	}
	return theme, nil
}

func (s *redisClientState) seal(token string) (string, error) {
	if len(s.sealKey) == 0 {
		return token, nil
	}
	aead, err := chacha20poly1305.New(s.sealKey)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := aead.Seal(nonce, nonce, []byte(token), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (s *redisClientState) open(value string) (string, error) {
	if len(s.sealKey) == 0 {
		return value, nil
	}
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", err
	}
	aead, err := chacha20poly1305.New(s.sealKey)
	if err != nil {
		return "", err
	}
	if len(raw) < aead.NonceSize() {
		return "", errors.New("sealed token too short")
	}
	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	token, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(token), nil
}
