package services

import (
	"errors"
	"fmt"
	"time"

	"voltage_lab/internal/models"
	"voltage_lab/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidCredentials неверная пара email/пароль
var ErrInvalidCredentials = errors.New("неверный email или пароль")

// AuthService регистрация и вход пользователей
type AuthService struct {
	db  *gorm.DB
	jwt *JWTService
}

// AuthResponse результат успешной регистрации или входа
type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
}

func NewAuthService(db *gorm.DB, jwtService *JWTService) *AuthService {
	return &AuthService{db: db, jwt: jwtService}
}

// Register создает пользователя и сразу выпускает access-токен
func (s *AuthService) Register(email, name, password string) (*AuthResponse, error) {
	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("пользователь %s уже зарегистрирован", email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("ошибка проверки пользователя: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("не удалось захэшировать пароль: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("не удалось создать пользователя: %w", err)
	}

	return s.issueTokens(user)
}

// Login проверяет пароль и выпускает access-токен
func (s *AuthService) Login(email, password string) (*AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(&user)
}

func (s *AuthService) issueTokens(user *models.User) (*AuthResponse, error) {
	token, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("не удалось выпустить токен: %w", err)
	}
	return &AuthResponse{
		User:        user,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int((12 * time.Hour).Seconds()),
	}, nil
}
