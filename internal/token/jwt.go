package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/eospatial/geoforestry/internal/model"
)

// Claims represents admin session JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID  `json:"user_id"`
	Role   model.Role `json:"role"`
}

// JWT implements SessionManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
}

// NewJWT creates a new JWT session manager with the provided secret key.
func NewJWT(secretKey string) model.SessionManager {
	return &JWT{secretKey: secretKey}
}

const sessionTTL = 12 * time.Hour

// GenerateAccessToken creates a signed admin session token.
func (j *JWT) GenerateAccessToken(userID uuid.UUID, role model.Role) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
		UserID: userID,
		Role:   role,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// ParseAccessToken validates a session token and extracts the admin identity.
func (j *JWT) ParseAccessToken(tokenString string) (uuid.UUID, model.Role, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("failed to parse access token: %w", err)
	}
	if !token.Valid {
		return uuid.Nil, "", fmt.Errorf("access token is invalid")
	}
	if claims.Role != model.RoleAdmin && claims.Role != model.RoleSuperAdmin {
		return uuid.Nil, "", fmt.Errorf("unknown role: %s", claims.Role)
	}
	return claims.UserID, claims.Role, nil
}
