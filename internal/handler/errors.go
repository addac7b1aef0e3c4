package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stevomusembi/retroscore/internal/domain/repository"
	apperrors "github.com/stevomusembi/retroscore/internal/pkg/errors"
	"github.com/stevomusembi/retroscore/internal/service"
)

// respondError переводит ошибку сервисного слоя в HTTP-ответ.
// Все обработчики используют единую схему {"error": ..., "error_type": ...}.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrAlreadyPlayed):
		c.JSON(http.StatusConflict, gin.H{"error": "Match already played", "error_type": "already_played"})
	case errors.Is(err, service.ErrNoMatchesFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No matches available for the requested filters", "error_type": "no_matches_found"})
	case errors.Is(err, service.ErrInvalidGuess):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_guess"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation_error"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed or invalid credentials", "error_type": "unauthorized"})
	case errors.Is(err, apperrors.ErrExpiredToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired", "error_type": "token_expired"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied", "error_type": "forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Requested resource not found", "error_type": "not_found"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "error_type": "conflict"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "error_type": "internal_server_error"})
	}
}
