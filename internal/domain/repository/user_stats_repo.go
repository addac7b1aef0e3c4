package repository

import (
	"time"

	"github.com/stevomusembi/retroscore/internal/domain/entity"
)

// LeaderboardRow — строка лидерборда, собранная хранилищем из user_stats
// и users. Очки считаются в запросе из счетчиков и нигде не хранятся.
type LeaderboardRow struct {
	UserID             uint      `json:"user_id"`
	Username           string    `json:"username"`
	GamesPlayed        int       `json:"games_played"`
	ExactScoreCount    int       `json:"exact_score_count"`
	CorrectResultCount int       `json:"correct_result_count"`
	TotalPoints        int       `json:"total_points"`
	CreatedAt          time.Time `json:"created_at"`
}

// UserStatsRepository определяет методы для работы с агрегатом статистики
type UserStatsRepository interface {
	// GetByUser возвращает статистику пользователя. Если пользователь еще
	// не играл, возвращается нулевой агрегат без записи в БД.
	GetByUser(userID uint) (*entity.UserStats, error)
	Save(stats *entity.UserStats) error
	// RecordOutcome атомарно применяет итог одной попытки к счетчикам.
	// Инкремент выполняется на стороне БД: конкурентные сабмиты одного
	// пользователя на разных матчах не теряют обновлений.
	RecordOutcome(userID uint, isCorrectScore, isCorrectResult bool) error
	// CountWithMorePoints возвращает число пользователей со строго
	// большими очками; ранг = это число + 1
	CountWithMorePoints(points int) (int64, error)
	// PageByPointsDescCreatedAtAsc возвращает страницу лидерборда:
	// очки по убыванию, при равенстве раньше созданный аккаунт выше.
	PageByPointsDescCreatedAtAsc(limit, offset int) ([]LeaderboardRow, int64, error)
}
