package utils

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"boutique-service/config"
)

// ParseToken extracts the subject user id and role from a signed token.
func ParseToken(tokenString string) (string, string, error) {
	cfg := config.LoadConfig()
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid claims")
	}

	userID, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return "", "", errors.New("missing subject")
	}

	return userID, role, nil
}
