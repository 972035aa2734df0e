package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

// SessionLifetime is how long a login cookie stays valid before the citizen
// has to authenticate again. The cookie MaxAge and the token expiry use the
// same value so neither outlives the other.
const SessionLifetime = 12 * time.Hour

const issuer = "govjobs"

// TokenService signs and verifies the session tokens that carry a Principal
// between requests.
//
// The token is stateless: everything later calls need (user id, NID, display
// name, role) is inside the signed payload, so authenticating once really
// does establish the principal for the whole session — no per-request user
// lookup. The HMAC secret must be identical for signing and verifying.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret. The secret
// should be at least 32 bytes of random data in production, e.g.
// JWT_SECRET=$(openssl rand -hex 32).
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload. Subject holds the user id; the remaining
// principal fields ride alongside as private claims.
type claims struct {
	NID  string `json:"nid"`
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Generate creates and signs a session token for the given principal.
//
// Each token gets a unique xid in the "jti" claim so individual sessions are
// distinguishable in logs even for the same account.
func (s *TokenService) Generate(p Principal) (string, error) {
	now := time.Now()

	c := claims{
		NID:  p.NID,
		Name: p.Name,
		Role: p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(p.UserID, 10),
			ID:        xid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionLifetime)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a session token and reconstructs the
// Principal it carries.
//
// The checks are delegated to the jwt library: signature, expiry, issuer,
// and — via WithValidMethods — that the algorithm really is HS256, which
// blocks algorithm-confusion attacks.
func (s *TokenService) Validate(tokenStr string) (Principal, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, fmt.Errorf("auth: token expired")
		}
		return Principal{}, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return Principal{}, fmt.Errorf("auth: invalid token claims")
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return Principal{}, fmt.Errorf("auth: token has no usable subject")
	}

	return Principal{
		UserID: userID,
		NID:    c.NID,
		Name:   c.Name,
		Role:   c.Role,
	}, nil
}
