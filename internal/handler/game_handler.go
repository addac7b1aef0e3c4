package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stevomusembi/retroscore/internal/handler/dto"
	"github.com/stevomusembi/retroscore/internal/middleware"
	"github.com/stevomusembi/retroscore/internal/service"
)

// GameHandler обрабатывает игровые запросы: выбор матча, прогнозы, история
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler создает новый игровой обработчик
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{
		gameService: gameService,
	}
}

// uintQuery парсит опциональный числовой query-параметр
func uintQuery(c *gin.Context, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, err
	}
	id := uint(value)
	return &id, nil
}

// GetRandomMatch возвращает случайный матч с учетом фильтров и режима выбора.
// Аутентификация опциональна: для анонимных пользователей режимы, зависящие
// от истории, недоступны, а история игр к матчу не прикрепляется.
func (h *GameHandler) GetRandomMatch(c *gin.Context) {
	teamID, err := uintQuery(c, "team_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team_id parameter", "error_type": "validation_error"})
		return
	}
	seasonID, err := uintQuery(c, "season_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid season_id parameter", "error_type": "validation_error"})
		return
	}
	mode := c.Query("mode")

	var userID *uint
	if id, ok := middleware.UserID(c); ok {
		userID = &id
	}

	match, err := h.gameService.GetRandomMatch(userID, teamID, seasonID, mode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// SubmitGuess принимает прогноз пользователя и возвращает результат оценки
func (h *GameHandler) SubmitGuess(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	var req dto.GuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error(), "error_type": "validation_error"})
		return
	}

	result, err := h.gameService.SubmitGuess(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPlayHistory возвращает историю игр пользователя
func (h *GameHandler) GetPlayHistory(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	history, err := h.gameService.GetPlayHistory(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history, "total": len(history)})
}

// GetGameResult возвращает результат ранее сыгранной попытки
func (h *GameHandler) GetGameResult(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	gameID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID", "error_type": "validation_error"})
		return
	}

	result, err := h.gameService.GetGameResult(userID, uint(gameID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
