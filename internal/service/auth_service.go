package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stevomusembi/retroscore/internal/domain/entity"
	"github.com/stevomusembi/retroscore/internal/domain/repository"
	"github.com/stevomusembi/retroscore/internal/handler/dto"
	apperrors "github.com/stevomusembi/retroscore/internal/pkg/errors"
	"github.com/stevomusembi/retroscore/pkg/auth"
)

// AuthService предоставляет методы регистрации и входа
type AuthService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	statsRepo        repository.UserStatsRepository
	jwtService       *auth.JWTService
	emailService     EmailService

	refreshTokenLifetime time.Duration
}

// NewAuthService создает новый сервис аутентификации и возвращает ошибку при проблемах
func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	statsRepo repository.UserStatsRepository,
	jwtService *auth.JWTService,
	emailService EmailService,
	refreshTokenLifetimeHrs int,
) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if refreshTokenRepo == nil {
		return nil, fmt.Errorf("RefreshTokenRepository is required for AuthService")
	}
	if statsRepo == nil {
		return nil, fmt.Errorf("UserStatsRepository is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for AuthService")
	}
	if emailService == nil {
		emailService = &NoopEmailService{}
	}
	if refreshTokenLifetimeHrs <= 0 {
		refreshTokenLifetimeHrs = 30 * 24
	}
	return &AuthService{
		userRepo:             userRepo,
		refreshTokenRepo:     refreshTokenRepo,
		statsRepo:            statsRepo,
		jwtService:           jwtService,
		emailService:         emailService,
		refreshTokenLifetime: time.Duration(refreshTokenLifetimeHrs) * time.Hour,
	}, nil
}

// Register регистрирует нового пользователя
func (s *AuthService) Register(username, email, password string) (*dto.AuthResponse, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)

	if username == "" || email == "" || len(password) < 8 {
		return nil, fmt.Errorf("%w: username, email and a password of at least 8 characters are required", apperrors.ErrValidation)
	}

	// Проверяем уникальность email и username
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, fmt.Errorf("%w: user with this email already exists", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}

	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil, fmt.Errorf("%w: user with this username already exists", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}

	user := &entity.User{
		Username:       username,
		Email:          email,
		Password:       password, // хешируется в BeforeSave
		Role:           "user",
		GameDifficulty: entity.DifficultyMedium,
		TimeLimit:      entity.DefaultTimerDuration,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.seedStats(user.ID)

	// Приветственное письмо не блокирует регистрацию
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.emailService.SendWelcome(ctx, user.Email, user.Username); err != nil {
			log.Printf("[AuthService] Не удалось отправить welcome-письмо для %s: %v", user.Email, err)
		}
	}()

	return s.issueTokens(user)
}

// Login аутентифицирует пользователя по email и паролю
func (s *AuthService) Login(email, password string) (*dto.AuthResponse, error) {
	email = normalizeEmail(email)

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		log.Printf("[AuthService] Не удалось обновить last_login для user=%d: %v", user.ID, err)
	}

	return s.issueTokens(user)
}

// LoginWithGoogle выполняет вход по проверенному Google-профилю.
// Проверку ID-токена делает внешний слой; сюда приходит уже
// подтвержденная пара (googleID, email).
func (s *AuthService) LoginWithGoogle(googleID, email, name string) (*dto.AuthResponse, error) {
	if googleID == "" || email == "" {
		return nil, fmt.Errorf("%w: googleID and email are required", apperrors.ErrValidation)
	}
	email = normalizeEmail(email)

	user, err := s.userRepo.GetByGoogleID(googleID)
	if errors.Is(err, apperrors.ErrNotFound) {
		// Привязываем к существующему аккаунту по email или создаем новый
		user, err = s.userRepo.GetByEmail(email)
		if errors.Is(err, apperrors.ErrNotFound) {
			user = &entity.User{
				Username:       googleUsername(name, email),
				Email:          email,
				GoogleID:       &googleID,
				Role:           "user",
				GameDifficulty: entity.DifficultyMedium,
				TimeLimit:      entity.DefaultTimerDuration,
			}
			if err := s.userRepo.Create(user); err != nil {
				return nil, fmt.Errorf("failed to provision google user: %w", err)
			}
			s.seedStats(user.ID)
		} else if err != nil {
			return nil, err
		} else {
			user.GoogleID = &googleID
			if err := s.userRepo.Update(user); err != nil {
				return nil, fmt.Errorf("failed to link google account: %w", err)
			}
		}
	} else if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		log.Printf("[AuthService] Не удалось обновить last_login для user=%d: %v", user.ID, err)
	}

	return s.issueTokens(user)
}

// Refresh обменивает refresh-токен на новую пару токенов
func (s *AuthService) Refresh(refreshToken string) (*dto.AuthResponse, error) {
	stored, err := s.refreshTokenRepo.GetByToken(refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	if stored.IsExpired() {
		// Истекший токен сразу убираем
		if err := s.refreshTokenRepo.DeleteByToken(refreshToken); err != nil {
			log.Printf("[AuthService] Не удалось удалить истекший refresh-токен: %v", err)
		}
		return nil, apperrors.ErrExpiredToken
	}

	user, err := s.userRepo.GetByID(stored.UserID)
	if err != nil {
		return nil, err
	}

	// Ротация: старый токен одноразовый
	if err := s.refreshTokenRepo.DeleteByToken(refreshToken); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return s.issueTokens(user)
}

// Logout отзывает refresh-токен
func (s *AuthService) Logout(refreshToken string) error {
	return s.refreshTokenRepo.DeleteByToken(refreshToken)
}

// LogoutAll отзывает все refresh-токены пользователя: выход со всех устройств
func (s *AuthService) LogoutAll(userID uint) error {
	return s.refreshTokenRepo.DeleteByUser(userID)
}

// PurgeExpiredTokens удаляет истекшие refresh-токены. Вызывается
// фоновой уборкой: Refresh и так отклоняет истекший токен, но мертвые
// строки не должны копиться бесконечно.
func (s *AuthService) PurgeExpiredTokens() (int64, error) {
	purged, err := s.refreshTokenRepo.DeleteExpired()
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired refresh tokens: %w", err)
	}
	if purged > 0 {
		log.Printf("[AuthService] Удалено истекших refresh-токенов: %d", purged)
	}
	return purged, nil
}

// seedStats создает нулевую строку статистики нового пользователя,
// чтобы он сразу был виден в лидерборде. Отказ не фатален: выборка
// лидерборда не зависит от наличия строки, а сама строка появится
// при первой игре.
func (s *AuthService) seedStats(userID uint) {
	if err := s.statsRepo.Save(&entity.UserStats{UserID: userID}); err != nil {
		log.Printf("[AuthService] Не удалось создать строку статистики для user=%d: %v", userID, err)
	}
}

// issueTokens выпускает пару access+refresh для пользователя
func (s *AuthService) issueTokens(user *entity.User) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken := &entity.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.refreshTokenLifetime),
	}
	if err := s.refreshTokenRepo.Create(refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.AuthResponse{
		User:         dto.NewUserResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// googleUsername выводит имя пользователя из Google-профиля,
// добавляя суффикс для уникальности
func googleUsername(name, email string) string {
	base := strings.TrimSpace(name)
	if base == "" {
		base = strings.SplitN(email, "@", 2)[0]
	}
	base = strings.ReplaceAll(strings.ToLower(base), " ", "_")
	return fmt.Sprintf("%s_%s", base, uuid.NewString()[:8])
}
