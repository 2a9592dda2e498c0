package services

import (
	"errors"
	"log/slog"
	"time"

	"voltage_lab/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// JWTService выпускает и проверяет access-токены HS256
type JWTService struct {
	secretKey      []byte
	accessTokenExp time.Duration
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func NewJWTService(secret string) *JWTService {
	if secret == "" {
		secret = "voltage-lab-dev-secret-change-in-production"
		slog.Warn("JWT_SECRET не задан, используется секрет по умолчанию")
	}

	return &JWTService{
		secretKey:      []byte(secret),
		accessTokenExp: 12 * time.Hour,
	}
}

func (s *JWTService) GenerateAccessToken(user *models.User) (string, error) {
	claims := &Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.accessTokenExp)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "voltage-lab",
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
