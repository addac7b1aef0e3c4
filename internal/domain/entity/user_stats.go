package entity

import "time"

// UserStats — агрегат игровых счетчиков пользователя. Очки и процент
// побед не хранятся, а выводятся из счетчиков, чтобы исключить
// расхождение между хранимым и отображаемым.
type UserStats struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex" json:"user_id"`

	GamesPlayed        int `gorm:"not null;default:0" json:"games_played"`
	ExactScoreCount    int `gorm:"not null;default:0" json:"exact_score_count"`
	CorrectResultCount int `gorm:"not null;default:0" json:"correct_result_count"`
	IncorrectCount     int `gorm:"not null;default:0" json:"incorrect_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (UserStats) TableName() string {
	return "user_stats"
}

// ApplyOutcome применяет итог одной попытки к счетчикам. Инкременты
// взаимоисключающие: точный счет, иначе верный исход, иначе промах.
func (s *UserStats) ApplyOutcome(isCorrectScore, isCorrectResult bool) {
	s.GamesPlayed++
	switch {
	case isCorrectScore:
		s.ExactScoreCount++
	case isCorrectResult:
		s.CorrectResultCount++
	default:
		s.IncorrectCount++
	}
}

// TotalPoints возвращает суммарные очки: точный счет 3, верный исход 1
func (s *UserStats) TotalPoints() int {
	return s.ExactScoreCount*3 + s.CorrectResultCount
}

// WinPercentage возвращает долю точных прогнозов в процентах.
// 0.0 если пользователь еще не играл.
func (s *UserStats) WinPercentage() float64 {
	if s.GamesPlayed == 0 {
		return 0.0
	}
	return float64(s.ExactScoreCount) / float64(s.GamesPlayed) * 100.0
}
