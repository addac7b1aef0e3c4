package dto

import (
	"time"

	"github.com/stevomusembi/retroscore/internal/domain/entity"
)

// UserResponse представляет пользователя в формате для ответа клиенту
type UserResponse struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// NewUserResponse создает DTO для пользователя
func NewUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
	}
}

// AuthResponse — ответ на register/login/refresh
type AuthResponse struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
}

// SettingsResponse представляет настройки пользователя
type SettingsResponse struct {
	NotificationsEnabled bool   `json:"notifications_enabled"`
	MatchReminders       bool   `json:"match_reminders"`
	ScoreUpdates         bool   `json:"score_updates"`
	PreferredLeague      string `json:"preferred_league"`
	ShowHints            bool   `json:"show_hints"`
	GameDifficulty       string `json:"game_difficulty"`
	TimeLimit            int    `json:"time_limit"`
}

// NewSettingsResponse создает DTO настроек из пользователя
func NewSettingsResponse(user *entity.User) *SettingsResponse {
	return &SettingsResponse{
		NotificationsEnabled: user.NotificationsEnabled,
		MatchReminders:       user.MatchReminders,
		ScoreUpdates:         user.ScoreUpdates,
		PreferredLeague:      user.PreferredLeague,
		ShowHints:            user.ShowHints,
		GameDifficulty:       string(user.GameDifficulty),
		TimeLimit:            user.TimeLimit,
	}
}
