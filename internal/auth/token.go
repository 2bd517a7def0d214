package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the fixed validity window of issued tokens. Tokens
// cannot be revoked before expiry; rotating the secret invalidates all
// outstanding tokens.
const DefaultTokenTTL = 24 * time.Hour

// ErrInvalidToken is returned when a token fails verification for any
// reason: bad signature, malformed payload, or elapsed expiry.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the decoded subject of a verified token.
type Identity struct {
	UserID int
	Role   string
}

// Claims binds a role to the standard registered claims. The subject
// holds the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited bearer tokens.
// It is stateless: validity is decided purely by signature and expiry.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService constructs a token service around the process-wide
// signing secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    DefaultTokenTTL,
	}
}

// NewTokenServiceWithTTL is like NewTokenService with an explicit
// validity window. Used by expiry tests.
func NewTokenServiceWithTTL(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue produces a signed token embedding the user id and role.
func (s *TokenService) Issue(userID int, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and decodes the identity. Any
// failure surfaces as ErrInvalidToken rather than a raw parser error.
func (s *TokenService) Verify(tokenString string) (Identity, error) {
	claims := Claims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	userID, err := strconv.Atoi(strings.TrimSpace(claims.Subject))
	if err != nil || userID < 1 {
		return Identity{}, ErrInvalidToken
	}
	if strings.TrimSpace(claims.Role) == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: userID, Role: claims.Role}, nil
}
