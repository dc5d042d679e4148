package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
)

var ErrInvalidToken = errors.New("invalid auth token")

const tokenIssuer = "farmbazaar"

// Claims is the JWT payload issued to authenticated accounts.
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTStrategy issues and verifies HS256 signed JWTs.
type JWTStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTStrategy{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssueToken generates a signed token carrying the account id and role.
func (s *JWTStrategy) IssueToken(userID int64, role model.Role) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken validates signature and expiry and returns the bearer identity.
func (s *JWTStrategy) ParseToken(token string) (Identity, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}

	role := model.Role(claims.Role)
	if claims.UserID <= 0 || !role.Valid() {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: claims.UserID, Role: role}, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}
