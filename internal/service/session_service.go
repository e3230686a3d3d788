package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pharmacy_inventory/internal/models"
	"pharmacy_inventory/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultSessionTTL = 24 * time.Hour

// SessionService issues signed cookie tokens that reference server-side
// session rows. The token carries only the session id (jti).
type SessionService struct {
	repo   repository.SessionRepo
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionService(repo repository.SessionRepo, secret []byte, ttl time.Duration, now func() time.Time) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if now == nil {
		now = time.Now
	}
	return &SessionService{repo: repo, secret: secret, ttl: ttl, now: now}
}

// New returns an anonymous session that is not yet stored. Its row is
// created by the first Save that has something to keep.
func (s *SessionService) New() *models.Session {
	now := s.now().UTC().Truncate(time.Second)
	return &models.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
}

// Token signs the cookie token for a stored session.
func (s *SessionService) Token(sess *models.Session) (string, error) {
	if sess == nil || !sess.Stored() {
		return "", ErrSessionNotFound
	}
	return s.issueToken(sess)
}

// Load resolves a cookie token to its live session. Tampered or expired
// tokens give ErrInvalidToken; a purged or expired row gives ErrSessionNotFound.
func (s *SessionService) Load(ctx context.Context, token string) (*models.Session, error) {
	id, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.Expired(s.now()) {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Save persists the session if anything changed since it was loaded,
// inserting the row on the first save of a new session.
func (s *SessionService) Save(ctx context.Context, sess *models.Session) error {
	if sess == nil || !sess.Dirty() {
		return nil
	}
	if !sess.Stored() {
		return s.repo.Create(ctx, sess)
	}
	return s.repo.Save(ctx, sess)
}

func (s *SessionService) Login(ctx context.Context, sess *models.Session, u *models.User) error {
	if u == nil {
		return ErrUnauthenticated
	}
	sess.Bind(u.ID, u.Username)
	return s.Save(ctx, sess)
}

// Logout detaches the user. Logging out an anonymous session is a no-op.
func (s *SessionService) Logout(ctx context.Context, sess *models.Session) error {
	sess.Clear()
	return s.Save(ctx, sess)
}

// Purge drops every expired session row.
func (s *SessionService) Purge(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now().UTC())
}

func (s *SessionService) issueToken(sess *models.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sess.ID,
		IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (s *SessionService) parseToken(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid || claims.ID == "" {
		return "", ErrInvalidToken
	}
	return claims.ID, nil
}
