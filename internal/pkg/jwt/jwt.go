package jwt

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"

	TokenTypeAccess = "access"
)

var ErrInvalidClaims = errors.New("invalid token claims")

// Claims is the identity carried by an access token.
type Claims struct {
	UserID string
	Name   string
	Avatar string
	Role   string
}

func (c Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

type Service interface {
	GenerateAccessToken(claims Claims) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	now                   func() time.Time
}

func NewJWTService(secretKey string, accessTokenExpiration time.Duration) *JWTService {
	return &JWTService{
		accessTokenExpiration: accessTokenExpiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                   time.Now,
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(claims Claims) (token string, expiresAt int64, err error) {
	if claims.UserID == "" {
		return "", 0, ErrInvalidClaims
	}
	if claims.Role != RoleAdmin && claims.Role != RoleEmployee {
		return "", 0, ErrInvalidClaims
	}
	expiresAt = j.now().Add(j.accessTokenExpiration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": claims.UserID,
		"name":    claims.Name,
		"avatar":  claims.Avatar,
		"role":    claims.Role,
		"type":    TokenTypeAccess,
		"exp":     expiresAt,
	})
	return tokenString, expiresAt, err
}

// ClaimsFromMap reads an access token's private claims. The token type must
// be "access".
func ClaimsFromMap(m map[string]interface{}) (Claims, error) {
	tokenType, ok := m["type"].(string)
	if !ok || tokenType != TokenTypeAccess {
		return Claims{}, ErrInvalidClaims
	}
	userID, ok := m["user_id"].(string)
	if !ok || userID == "" {
		return Claims{}, ErrInvalidClaims
	}
	role, _ := m["role"].(string)
	if role != RoleAdmin && role != RoleEmployee {
		return Claims{}, ErrInvalidClaims
	}
	name, _ := m["name"].(string)
	avatar, _ := m["avatar"].(string)

	return Claims{UserID: userID, Name: name, Avatar: avatar, Role: role}, nil
}
