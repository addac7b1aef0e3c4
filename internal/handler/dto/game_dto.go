package dto

import (
	"time"

	"github.com/stevomusembi/retroscore/internal/domain/entity"
)

// GuessRequest представляет сабмит прогноза
type GuessRequest struct {
	MatchID            uint   `json:"match_id" binding:"required"`
	PredictedHomeScore *int   `json:"predicted_home_score" binding:"omitempty,min=0"`
	PredictedAwayScore *int   `json:"predicted_away_score" binding:"omitempty,min=0"`
	TimeIsUp           bool   `json:"time_is_up"`
	IsEasyMode         bool   `json:"is_easy_mode"`
	MatchResult        string `json:"match_result,omitempty"` // HOME_WIN / AWAY_WIN / DRAW, только для easy-режима
}

// GuessResponse представляет результат оценки прогноза
type GuessResponse struct {
	UserGameID         uint               `json:"user_game_id,omitempty"`
	MatchID            uint               `json:"match_id"`
	MatchTitle         string             `json:"match_title"`
	PredictedHomeScore *int               `json:"predicted_home_score,omitempty"`
	PredictedAwayScore *int               `json:"predicted_away_score,omitempty"`
	ActualHomeScore    int                `json:"actual_home_score"`
	ActualAwayScore    int                `json:"actual_away_score"`
	IsCorrectScore     bool               `json:"is_correct_score"`
	IsCorrectResult    bool               `json:"is_correct_result"`
	GameResult         entity.GameResult  `json:"game_result"`
	ResultMessage      string             `json:"result_message"`
	Points             int                `json:"points"`
	ActualMatchResult  entity.MatchResult `json:"actual_match_result"`
	PlayedAt           time.Time          `json:"played_at"`
}

// PlayHistoryItem — одна запись в истории игр пользователя
type PlayHistoryItem struct {
	UserGameID     uint              `json:"user_game_id"`
	MatchID        uint              `json:"match_id"`
	MatchTitle     string            `json:"match_title"`
	SeasonName     string            `json:"season_name"`
	PredictedScore string            `json:"predicted_score,omitempty"`
	ActualScore    string            `json:"actual_score"`
	GameResult     entity.GameResult `json:"game_result"`
	Points         int               `json:"points"`
	PlayedAt       time.Time         `json:"played_at"`
}

// NewPlayHistoryItem создает запись истории из сыгранной попытки
func NewPlayHistoryItem(game *entity.UserGame) PlayHistoryItem {
	outcome := game.Outcome()
	return PlayHistoryItem{
		UserGameID:     game.ID,
		MatchID:        game.MatchID,
		MatchTitle:     game.Match.Title(),
		SeasonName:     game.Match.Season.Name,
		PredictedScore: game.PredictedScoreString(),
		ActualScore:    game.Match.ScoreString(),
		GameResult:     outcome,
		Points:         outcome.Points(),
		PlayedAt:       game.PlayedAt,
	}
}
