// internal/utils/jwt.go
package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/deliciae/discovery-core/internal/models"
)

// JWTClaims are issued by the marketplace auth service. EstablishmentID is
// set for restaurant and staff roles.
type JWTClaims struct {
	UserID          string `json:"user_id"`
	Role            string `json:"role"`
	EstablishmentID string `json:"establishment_id,omitempty"`
	jwt.RegisteredClaims
}

var (
	jwtSecret = []byte("your-secret-key-change-in-production")
	jwtIssuer = "deliciae"
)

func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

func SetJWTIssuer(issuer string) {
	jwtIssuer = issuer
}

func GenerateJWT(userID uuid.UUID, role string, establishmentID *uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID: userID.String(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    jwtIssuer,
			Subject:   userID.String(),
		},
	}
	if establishmentID != nil {
		claims.EstablishmentID = establishmentID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ValidateJWT(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if !claims.VerifyIssuer(jwtIssuer, true) {
		return nil, fmt.Errorf("unexpected issuer %q", claims.Issuer)
	}
	return claims, nil
}

// Principal converts validated claims into the caller's identity.
func (c *JWTClaims) Principal() (models.Principal, error) {
	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return models.Principal{}, fmt.Errorf("invalid user id claim: %w", err)
	}
	role, err := models.ParseRole(c.Role, c.EstablishmentID)
	if err != nil {
		return models.Principal{}, err
	}
	return models.Principal{UserID: userID, Role: role}, nil
}
