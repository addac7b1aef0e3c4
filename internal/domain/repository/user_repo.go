package repository

import (
	"github.com/stevomusembi/retroscore/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	GetByGoogleID(googleID string) (*entity.User, error)
	Update(user *entity.User) error
	// UpdateSettings обновляет только перечисленные поля настроек,
	// не затрагивая учетные данные
	UpdateSettings(userID uint, updates map[string]interface{}) error
	UpdateLastLogin(userID uint) error
}
