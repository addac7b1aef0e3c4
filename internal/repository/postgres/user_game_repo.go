package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/stevomusembi/retroscore/internal/domain/entity"
	"github.com/stevomusembi/retroscore/internal/domain/repository"
	apperrors "github.com/stevomusembi/retroscore/internal/pkg/errors"
)

// UserGameRepo реализует repository.UserGameRepository
type UserGameRepo struct {
	db *gorm.DB
}

// NewUserGameRepo создает новый репозиторий сыгранных попыток
func NewUserGameRepo(db *gorm.DB) *UserGameRepo {
	return &UserGameRepo{db: db}
}

// Create сохраняет новую попытку.
// Уникальный индекс idx_user_match сериализует конкурентные сабмиты одной
// пары (user, match): ровно один insert проходит, остальные получают
// repository.ErrAlreadyPlayed через код 23505.
func (r *UserGameRepo) Create(game *entity.UserGame) error {
	if err := r.db.Create(game).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user #%d, match #%d", repository.ErrAlreadyPlayed, game.UserID, game.MatchID)
		}
		return err
	}
	return nil
}

// GetByUserAndMatch возвращает попытку пользователя на матче
func (r *UserGameRepo) GetByUserAndMatch(userID, matchID uint) (*entity.UserGame, error) {
	var game entity.UserGame
	err := r.db.Where("user_id = ? AND match_id = ?", userID, matchID).First(&game).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &game, nil
}

// GetByIDAndUser возвращает попытку по ID с проверкой владельца
func (r *UserGameRepo) GetByIDAndUser(id, userID uint) (*entity.UserGame, error) {
	var game entity.UserGame
	err := r.db.Preload("Match").Preload("Match.Season").
		Preload("Match.HomeTeam").Preload("Match.AwayTeam").
		Where("id = ? AND user_id = ?", id, userID).
		First(&game).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &game, nil
}

// FindAllByUser возвращает историю игр пользователя, новые первыми
func (r *UserGameRepo) FindAllByUser(userID uint) ([]entity.UserGame, error) {
	var games []entity.UserGame
	err := r.db.Preload("Match").Preload("Match.Season").
		Preload("Match.HomeTeam").Preload("Match.AwayTeam").
		Where("user_id = ?", userID).
		Order("played_at DESC").
		Find(&games).Error
	return games, err
}

// isUniqueViolation проверяет Postgres unique violation (23505) для pgconn и lib/pq драйверов
func isUniqueViolation(err error) bool {
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}
