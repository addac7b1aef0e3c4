package service

import (
	"fmt"
	"strings"

	"github.com/stevomusembi/retroscore/internal/domain/entity"
	"github.com/stevomusembi/retroscore/internal/domain/repository"
	"github.com/stevomusembi/retroscore/internal/handler/dto"
	apperrors "github.com/stevomusembi/retroscore/internal/pkg/errors"
)

// UserService предоставляет методы для работы с настройками пользователя.
// Чистое хранение полей: игровой логики здесь нет.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetSettings возвращает настройки пользователя
func (s *UserService) GetSettings(userID uint) (*dto.SettingsResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return dto.NewSettingsResponse(user), nil
}

// UpdateSettingsInput — полный набор настроек для обновления
type UpdateSettingsInput struct {
	NotificationsEnabled bool   `json:"notifications_enabled"`
	MatchReminders       bool   `json:"match_reminders"`
	ScoreUpdates         bool   `json:"score_updates"`
	PreferredLeague      string `json:"preferred_league"`
	ShowHints            bool   `json:"show_hints"`
	GameDifficulty       string `json:"game_difficulty"`
	TimeLimit            int    `json:"time_limit"`
}

// UpdateSettings обновляет настройки целиком
func (s *UserService) UpdateSettings(userID uint, input UpdateSettingsInput) (*dto.SettingsResponse, error) {
	if !entity.IsValidGameDifficulty(input.GameDifficulty) {
		return nil, fmt.Errorf("%w: invalid game difficulty %q", apperrors.ErrValidation, input.GameDifficulty)
	}
	if !entity.IsValidTimerDuration(input.TimeLimit) {
		return nil, fmt.Errorf("%w: invalid time limit %d", apperrors.ErrValidation, input.TimeLimit)
	}

	updates := map[string]interface{}{
		"notifications_enabled": input.NotificationsEnabled,
		"match_reminders":       input.MatchReminders,
		"score_updates":         input.ScoreUpdates,
		"preferred_league":      strings.TrimSpace(input.PreferredLeague),
		"show_hints":            input.ShowHints,
		"game_difficulty":       strings.ToUpper(strings.TrimSpace(input.GameDifficulty)),
		"time_limit":            input.TimeLimit,
	}
	if err := s.userRepo.UpdateSettings(userID, updates); err != nil {
		return nil, err
	}

	return s.GetSettings(userID)
}

// UpdateDifficulty меняет только сложность игры
func (s *UserService) UpdateDifficulty(userID uint, difficulty string) error {
	if !entity.IsValidGameDifficulty(difficulty) {
		return fmt.Errorf("%w: invalid game difficulty %q", apperrors.ErrValidation, difficulty)
	}
	return s.userRepo.UpdateSettings(userID, map[string]interface{}{
		"game_difficulty": strings.ToUpper(strings.TrimSpace(difficulty)),
	})
}

// UpdateNotifications меняет только флаг уведомлений
func (s *UserService) UpdateNotifications(userID uint, enabled bool) error {
	return s.userRepo.UpdateSettings(userID, map[string]interface{}{
		"notifications_enabled": enabled,
	})
}
