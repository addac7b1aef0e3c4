package entity

import (
	"fmt"
	"time"
)

// Match представляет исторический матч. Запись неизменяема после импорта:
// движок игры только читает ее, все изменения идут через импорт данных.
type Match struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	SeasonID   uint `gorm:"not null;index" json:"season_id"`
	HomeTeamID uint `gorm:"not null;index" json:"home_team_id"`
	AwayTeamID uint `gorm:"not null;index" json:"away_team_id"`

	Season   Season       `gorm:"foreignKey:SeasonID" json:"season"`
	HomeTeam FootballClub `gorm:"foreignKey:HomeTeamID" json:"home_team"`
	AwayTeam FootballClub `gorm:"foreignKey:AwayTeamID" json:"away_team"`

	MatchDate *time.Time `gorm:"type:date" json:"match_date,omitempty"`
	HomeScore int        `gorm:"not null" json:"home_score"`
	AwayScore int        `gorm:"not null" json:"away_score"`

	// Дополнительная статистика: переносится при импорте, в подсчете очков
	// не участвует.
	HalftimeHomeScore *int `json:"halftime_home_score,omitempty"`
	HalftimeAwayScore *int `json:"halftime_away_score,omitempty"`
	HomeCorners       *int `json:"home_corners,omitempty"`
	AwayCorners       *int `json:"away_corners,omitempty"`
	HomeYellowCards   *int `json:"home_yellow_cards,omitempty"`
	AwayYellowCards   *int `json:"away_yellow_cards,omitempty"`
	HomeRedCards      *int `json:"home_red_cards,omitempty"`
	AwayRedCards      *int `json:"away_red_cards,omitempty"`
	GameWeek          *int `json:"game_week,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Match) TableName() string {
	return "matches"
}

// Title возвращает заголовок матча вида "Arsenal vs Chelsea"
func (m *Match) Title() string {
	return fmt.Sprintf("%s vs %s", m.HomeTeam.Name, m.AwayTeam.Name)
}

// ScoreString возвращает счет вида "2-1"
func (m *Match) ScoreString() string {
	return fmt.Sprintf("%d-%d", m.HomeScore, m.AwayScore)
}

// Result классифицирует истинный исход матча
func (m *Match) Result() MatchResult {
	return MatchResultFromScores(m.HomeScore, m.AwayScore)
}
