package dto

// LeaderboardEntry — строка публичного лидерборда
type LeaderboardEntry struct {
	Rank          int64   `json:"rank"`
	UserID        uint    `json:"user_id"`
	Username      string  `json:"username"`
	TotalPoints   int     `json:"total_points"`
	GamesPlayed   int     `json:"games_played"`
	WinPercentage float64 `json:"win_percentage"`
}

// LeaderboardResponse — пагинированный лидерборд
type LeaderboardResponse struct {
	Entries    []LeaderboardEntry `json:"entries"`
	TotalUsers int64              `json:"total_users"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
}

// UserStatsWithRank — статистика пользователя с текущим рангом
type UserStatsWithRank struct {
	UserID             uint    `json:"user_id"`
	Username           string  `json:"username"`
	TotalPoints        int     `json:"total_points"`
	GamesPlayed        int     `json:"games_played"`
	ExactScoreCount    int     `json:"exact_score_count"`
	CorrectResultCount int     `json:"correct_result_count"`
	IncorrectCount     int     `json:"incorrect_count"`
	WinPercentage      float64 `json:"win_percentage"`
	CurrentRank        int64   `json:"current_rank"`
}
