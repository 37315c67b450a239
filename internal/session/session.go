package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Cookie carrying the admin session token.
const CookieName = "admin-session"

const (
	SessionTTL = 24 * time.Hour
	CSRFTTL    = time.Hour

	scopeSession = "session"
	scopeCSRF    = "csrf"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// Manager mints and verifies the portal's HMAC-signed tokens. Tokens are
// stateless: expiry and the signature are the only revocation story, so the
// signing key must stay server-side.
type Manager struct {
	now       func() time.Time
	secret    []byte
	adminUser string
}

func NewManager(secret string, adminUser string) *Manager {
	return &Manager{
		secret:    []byte(secret),
		adminUser: adminUser,
		now:       time.Now,
	}
}

// IssueSession returns a signed session token for the configured admin
// identity, valid for 24 hours.
func (m *Manager) IssueSession() (string, error) {
	return m.sign(scopeSession, m.adminUser, SessionTTL)
}

// ValidateSession reports whether token is a well formed, unexpired session
// token for the configured admin identity. Malformed or tampered tokens are
// invalid, never an error.
func (m *Manager) ValidateSession(token string) bool {
	claims, err := m.parse(token)
	if err != nil {
		return false
	}
	return claims.Scope == scopeSession && claims.Subject == m.adminUser
}

// IssueCSRF returns a short lived anti-forgery token. CSRF tokens share the
// signing key but carry a distinct scope so one can never stand in for a
// session.
func (m *Manager) IssueCSRF() (string, error) {
	return m.sign(scopeCSRF, "", CSRFTTL)
}

func (m *Manager) ValidateCSRF(token string) bool {
	claims, err := m.parse(token)
	if err != nil {
		return false
	}
	return claims.Scope == scopeCSRF
}

func (m *Manager) sign(scope, subject string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&Claims{},
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
