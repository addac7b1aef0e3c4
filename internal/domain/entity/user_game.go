package entity

import (
	"fmt"
	"time"
)

// UserGame представляет одну сыгранную попытку пользователя на матче.
// Пара (user_id, match_id) уникальна на уровне БД: это единственная
// надежная защита от повторной игры, проверка в сервисе лишь ускоряет
// типовой случай.
type UserGame struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	UserID  uint `gorm:"not null;index;uniqueIndex:idx_user_match" json:"user_id"`
	MatchID uint `gorm:"not null;index;uniqueIndex:idx_user_match" json:"match_id"`

	Match Match `gorm:"foreignKey:MatchID" json:"-"`

	// nil в режиме "только исход"
	PredictedHomeScore *int `json:"predicted_home_score,omitempty"`
	PredictedAwayScore *int `json:"predicted_away_score,omitempty"`

	IsCorrectScore  bool `gorm:"not null;default:false" json:"is_correct_score"`
	IsCorrectResult bool `gorm:"not null;default:false" json:"is_correct_result"`

	PlayedAt  time.Time `gorm:"not null" json:"played_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (UserGame) TableName() string {
	return "user_games"
}

// Outcome возвращает итог попытки. Приоритет: точный счет, затем верный
// исход, иначе промах. TIMEUP сюда не попадает, такие раунды не сохраняются.
func (g *UserGame) Outcome() GameResult {
	if g.IsCorrectScore {
		return GameResultExactScore
	}
	if g.IsCorrectResult {
		return GameResultCorrectResult
	}
	return GameResultIncorrect
}

// PredictedScoreString возвращает прогноз вида "2-1" или пустую строку
// для попытки в режиме "только исход"
func (g *UserGame) PredictedScoreString() string {
	if g.PredictedHomeScore == nil || g.PredictedAwayScore == nil {
		return ""
	}
	return fmt.Sprintf("%d-%d", *g.PredictedHomeScore, *g.PredictedAwayScore)
}
