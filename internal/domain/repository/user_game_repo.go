package repository

import (
	"github.com/stevomusembi/retroscore/internal/domain/entity"
)

// UserGameRepository определяет методы для работы с сыгранными попытками
type UserGameRepository interface {
	// Create сохраняет новую попытку. При нарушении уникальности
	// (user_id, match_id) возвращает ErrAlreadyPlayed.
	Create(game *entity.UserGame) error
	// GetByUserAndMatch возвращает попытку пользователя на матче
	// или apperrors.ErrNotFound
	GetByUserAndMatch(userID, matchID uint) (*entity.UserGame, error)
	GetByIDAndUser(id, userID uint) (*entity.UserGame, error)
	// FindAllByUser возвращает историю игр пользователя, новые первыми
	FindAllByUser(userID uint) ([]entity.UserGame, error)
}
