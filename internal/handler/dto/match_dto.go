package dto

import (
	"time"

	"github.com/stevomusembi/retroscore/internal/domain/entity"
)

// ClubResponse представляет клуб в формате для ответа клиенту
type ClubResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	LogoURL     string `json:"logo_url,omitempty"`
	StadiumName string `json:"stadium_name,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// PlayHistoryResponse — аннотация прошлой попытки на выданном матче.
// Заполняется только для аутентифицированного пользователя и никогда
// не сохраняется.
type PlayHistoryResponse struct {
	PreviouslyPlayed bool       `json:"previously_played"`
	PreviousGuess    string     `json:"previous_guess,omitempty"`
	WasCorrectScore  bool       `json:"was_correct_score"`
	WasCorrectResult bool       `json:"was_correct_result"`
	PlayedAt         *time.Time `json:"played_at,omitempty"`
}

// MatchResponse представляет матч в формате для ответа клиенту.
// Истинный счет входит в ответ: клиент скрывает его до сабмита.
type MatchResponse struct {
	MatchID     uint                 `json:"match_id"`
	MatchTitle  string               `json:"match_title"`
	SeasonName  string               `json:"season_name"`
	HomeTeam    ClubResponse         `json:"home_team"`
	AwayTeam    ClubResponse         `json:"away_team"`
	StadiumName string               `json:"stadium_name,omitempty"`
	HomeScore   int                  `json:"home_score"`
	AwayScore   int                  `json:"away_score"`
	MatchDate   *time.Time           `json:"match_date,omitempty"`
	HomeCorners *int                 `json:"home_corners,omitempty"`
	AwayCorners *int                 `json:"away_corners,omitempty"`
	HomeYellow  *int                 `json:"home_yellow_cards,omitempty"`
	AwayYellow  *int                 `json:"away_yellow_cards,omitempty"`
	HomeRed     *int                 `json:"home_red_cards,omitempty"`
	AwayRed     *int                 `json:"away_red_cards,omitempty"`
	PlayHistory *PlayHistoryResponse `json:"play_history,omitempty"`
}

// NewClubResponse создает DTO для клуба
func NewClubResponse(club *entity.FootballClub) ClubResponse {
	return ClubResponse{
		ID:          club.ID,
		Name:        club.Name,
		LogoURL:     club.LogoURL,
		StadiumName: club.StadiumName,
		IsActive:    club.IsActive,
	}
}

// NewMatchResponse создает DTO для матча
func NewMatchResponse(match *entity.Match) *MatchResponse {
	return &MatchResponse{
		MatchID:     match.ID,
		MatchTitle:  match.Title(),
		SeasonName:  match.Season.Name,
		HomeTeam:    NewClubResponse(&match.HomeTeam),
		AwayTeam:    NewClubResponse(&match.AwayTeam),
		StadiumName: match.HomeTeam.StadiumName,
		HomeScore:   match.HomeScore,
		AwayScore:   match.AwayScore,
		MatchDate:   match.MatchDate,
		HomeCorners: match.HomeCorners,
		AwayCorners: match.AwayCorners,
		HomeYellow:  match.HomeYellowCards,
		AwayYellow:  match.AwayYellowCards,
		HomeRed:     match.HomeRedCards,
		AwayRed:     match.AwayRedCards,
	}
}

// SeasonResponse представляет сезон в формате для ответа клиенту
type SeasonResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	StartYear   int    `json:"start_year"`
	EndYear     int    `json:"end_year"`
	IsCompleted bool   `json:"is_completed"`
}

// NewSeasonResponse создает DTO для сезона
func NewSeasonResponse(season *entity.Season) SeasonResponse {
	return SeasonResponse{
		ID:          season.ID,
		Name:        season.Name,
		StartYear:   season.StartYear,
		EndYear:     season.EndYear,
		IsCompleted: season.IsCompleted,
	}
}
