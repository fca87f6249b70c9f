package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"karigar/config"
	"karigar/models"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	return []byte(config.AppConfig.JWTSecret)
}

// GenerateToken creates a signed JWT for the given account and role.
// The token expires after the specified duration.
func GenerateToken(subject string, role models.UserRole, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": string(role),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractSessionFromToken returns the account ID and role carried by a valid token.
func ExtractSessionFromToken(tokenString string) (models.SessionUser, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return models.SessionUser{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.SessionUser{}, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return models.SessionUser{}, errors.New("token does not contain a valid 'sub' claim")
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return models.SessionUser{}, errors.New("token does not contain a valid 'role' claim")
	}
	role := models.UserRole(roleStr)
	if !role.Valid() {
		return models.SessionUser{}, errors.New("token carries an unknown role")
	}

	return models.SessionUser{ID: sub, Role: role}, nil
}
