package auth

import (
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the only error token verification reports. Expired,
// malformed, and wrong-secret tokens are deliberately indistinguishable.
var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenPair is what login and register hand back to the client.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// JWT issues and verifies signed session tokens. Access and refresh tokens
// are signed with different secrets; neither is persisted server-side, so a
// token stays valid until natural expiry.
type JWT struct {
	secret         []byte
	refreshSecret  []byte
	expiresIn      time.Duration
	refreshExpires time.Duration
}

func NewJWT(secret, refreshSecret, expiresIn, refreshExpiresIn string) *JWT {
	return &JWT{
		secret:         []byte(secret),
		refreshSecret:  []byte(refreshSecret),
		expiresIn:      time.Duration(ParseExpiry(expiresIn)) * time.Second,
		refreshExpires: time.Duration(ParseExpiry(refreshExpiresIn)) * time.Second,
	}
}

// Issue signs an access and a refresh token for the given identity.
func (j *JWT) Issue(userID, email, role string) (*TokenPair, error) {
	now := time.Now()

	token, err := j.sign(userID, email, role, now, j.expiresIn, j.secret)
	if err != nil {
		return nil, err
	}

	refreshToken, err := j.sign(userID, email, role, now, j.refreshExpires, j.refreshSecret)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		Token:        token,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(j.expiresIn.Seconds()),
		TokenType:    "Bearer",
	}, nil
}

func (j *JWT) sign(userID, email, role string, now time.Time, ttl time.Duration, secret []byte) (string, error) {
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify validates an access token.
func (j *JWT) Verify(token string) (*Claims, error) {
	return verify(token, j.secret)
}

// VerifyRefresh validates a refresh token.
func (j *JWT) VerifyRefresh(token string) (*Claims, error) {
	return verify(token, j.refreshSecret)
}

func verify(token string, secret []byte) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

var expiryPattern = regexp.MustCompile(`^(\d+)([smhd])$`)

var expiryUnits = map[string]int64{
	"s": 1,
	"m": 60,
	"h": 3600,
	"d": 86400,
}

// ParseExpiry converts a duration string like "15m" or "7d" into seconds.
// Unparseable input defaults to 900 (15 minutes).
func ParseExpiry(s string) int64 {
	m := expiryPattern.FindStringSubmatch(s)
	if m == nil {
		return 900
	}
	value, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 900
	}
	return value * expiryUnits[m[2]]
}
