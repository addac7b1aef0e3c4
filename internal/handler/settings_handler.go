package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stevomusembi/retroscore/internal/middleware"
	"github.com/stevomusembi/retroscore/internal/service"
)

// SettingsHandler обрабатывает запросы к настройкам пользователя
type SettingsHandler struct {
	userService *service.UserService
}

// NewSettingsHandler создает новый обработчик настроек
func NewSettingsHandler(userService *service.UserService) *SettingsHandler {
	return &SettingsHandler{
		userService: userService,
	}
}

// GetSettings возвращает настройки текущего пользователя
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	settings, err := h.userService.GetSettings(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings обновляет настройки целиком
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	var input service.UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error(), "error_type": "validation_error"})
		return
	}

	settings, err := h.userService.UpdateSettings(userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// DifficultyRequest представляет частичное обновление сложности
type DifficultyRequest struct {
	GameDifficulty string `json:"game_difficulty" binding:"required"`
}

// UpdateDifficulty меняет только сложность игры
func (h *SettingsHandler) UpdateDifficulty(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	var req DifficultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error(), "error_type": "validation_error"})
		return
	}

	if err := h.userService.UpdateDifficulty(userID, req.GameDifficulty); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Difficulty updated"})
}

// NotificationsRequest представляет частичное обновление уведомлений
type NotificationsRequest struct {
	NotificationsEnabled *bool `json:"notifications_enabled" binding:"required"`
}

// UpdateNotifications меняет только флаг уведомлений
func (h *SettingsHandler) UpdateNotifications(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	var req NotificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error(), "error_type": "validation_error"})
		return
	}

	if err := h.userService.UpdateNotifications(userID, *req.NotificationsEnabled); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notifications updated"})
}
