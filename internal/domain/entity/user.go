package entity

import (
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Допустимые длительности таймера раунда в секундах
var allowedTimerDurations = []int{10, 15, 20, 25, 30, 45}

// DefaultTimerDuration — длительность таймера по умолчанию
const DefaultTimerDuration = 30

// GameDifficulty — настройка сложности игры
type GameDifficulty string

const (
	DifficultyEasy   GameDifficulty = "EASY"
	DifficultyMedium GameDifficulty = "MEDIUM"
	DifficultyHard   GameDifficulty = "HARD"
)

// IsValidGameDifficulty проверяет значение сложности
func IsValidGameDifficulty(d string) bool {
	switch GameDifficulty(strings.ToUpper(strings.TrimSpace(d))) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// IsValidTimerDuration проверяет, что длительность таймера из допустимого набора
func IsValidTimerDuration(seconds int) bool {
	for _, d := range allowedTimerDurations {
		if d == seconds {
			return true
		}
	}
	return false
}

// User представляет пользователя в системе.
// Игровые счетчики здесь намеренно отсутствуют: они живут в UserStats
// и меняются только через единый путь записи в GameService.
type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Username string  `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email    string  `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password string  `gorm:"size:100;not null;default:''" json:"-"`
	GoogleID *string `gorm:"size:100;uniqueIndex" json:"-"`
	Role     string  `gorm:"size:20;not null;default:'user'" json:"-"` // "user" или "admin"

	// Настройки игры (чистое хранение полей, без логики)
	NotificationsEnabled bool           `gorm:"not null;default:true" json:"notifications_enabled"`
	MatchReminders       bool           `gorm:"not null;default:true" json:"match_reminders"`
	ScoreUpdates         bool           `gorm:"not null;default:true" json:"score_updates"`
	PreferredLeague      string         `gorm:"size:50;not null;default:'ALL'" json:"preferred_league"`
	ShowHints            bool           `gorm:"not null;default:true" json:"show_hints"`
	GameDifficulty       GameDifficulty `gorm:"size:10;not null;default:'MEDIUM'" json:"game_difficulty"`
	TimeLimit            int            `gorm:"not null;default:30" json:"time_limit"`

	LastLoginAt *time.Time `gorm:"type:timestamp" json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// BeforeSave хеширует пароль перед сохранением, только если он не является bcrypt-хешем
func (u *User) BeforeSave(tx *gorm.DB) error {
	if len(u.Password) > 0 && !strings.HasPrefix(u.Password, "$2a$") &&
		!strings.HasPrefix(u.Password, "$2b$") && !strings.HasPrefix(u.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[User.BeforeSave] Ошибка при хешировании пароля для email=%s: %v", u.Email, err)
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword проверяет, соответствует ли переданный пароль хешу
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsAdmin возвращает true для административной роли
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
