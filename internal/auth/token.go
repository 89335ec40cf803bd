package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin  = "admin"
	SessionTTL = 24 * time.Hour
)

var (
	ErrInvalidToken  = errors.New("invalid session token")
	ErrMissingSecret = errors.New("session signing secret not set")
)

// Session is the verified content of a session token.
type Session struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type sessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 signed session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewTokenManager fails when secret is empty. A zero ttl means SessionTTL,
// a nil now means time.Now.
func NewTokenManager(secret string, ttl time.Duration, now func() time.Time) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = SessionTTL
	}
	if now == nil {
		now = time.Now
	}

	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuedAt(),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(now),
		),
	}, nil
}

func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue signs a token for username valid for the manager ttl.
func (tm *TokenManager) Issue(username string) (string, error) {
	if username == "" {
		return "", errors.New("issue token: empty username")
	}

	now := tm.now()
	claims := sessionClaims{
		Username: username,
		Role:     RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify checks signature, expiry and claim shape. Every failure is ErrInvalidToken.
func (tm *TokenManager) Verify(tokenStr string) (*Session, error) {
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}

	claims := jwt.MapClaims{}
	token, err := tm.parser.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	// timestamps must be JSON numbers; numeric strings are rejected
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	iat, iatOK := claims["iat"].(float64)
	exp, expOK := claims["exp"].(float64)
	if username == "" || role != RoleAdmin || !iatOK || !expOK {
		return nil, fmt.Errorf("%w: unexpected claims", ErrInvalidToken)
	}

	return &Session{
		Username:  username,
		Role:      role,
		IssuedAt:  unixTime(iat),
		ExpiresAt: unixTime(exp),
	}, nil
}

func unixTime(seconds float64) time.Time {
	whole := int64(seconds)
	return time.Unix(whole, int64((seconds-float64(whole))*float64(time.Second)))
}
