package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"voltage_lab/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthHandlers эндпоинты регистрации и входа
type AuthHandlers struct {
	auth *services.AuthService
}

func NewAuthHandlers(authService *services.AuthService) *AuthHandlers {
	return &AuthHandlers{auth: authService}
}

// RegisterRequest запрос на регистрацию
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Name     string `json:"name" example:"Оператор"`
	Password string `json:"password" binding:"required,min=8" example:"secret-password"`
}

// LoginRequest запрос на вход
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:"secret-password"`
}

// Register регистрирует пользователя
// @Summary Регистрация пользователя
// @Description Создает учётную запись и сразу выдаёт access-токен
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Данные регистрации"
// @Success 201 {object} SuccessResponse "Пользователь зарегистрирован"
// @Failure 400 {object} ErrorResponse "Неверные данные или email занят"
// @Router /auth/register [post]
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("Невалидный запрос регистрации", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Неверный формат данных",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.auth.Register(req.Email, req.Name, req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Пользователь зарегистрирован",
		Data:    resp,
	})
}

// Login вход пользователя
// @Summary Вход пользователя
// @Description Проверяет пароль и выдаёт access-токен
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Данные входа"
// @Success 200 {object} SuccessResponse "Вход выполнен"
// @Failure 401 {object} ErrorResponse "Неверный email или пароль"
// @Router /auth/login [post]
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Неверный формат данных",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error: "Неверный email или пароль",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Ошибка входа",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Вход выполнен",
		Data:    resp,
	})
}
