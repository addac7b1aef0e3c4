package repository

import (
	"github.com/stevomusembi/retroscore/internal/domain/entity"
)

// ClubRepository определяет методы для работы с футбольными клубами
type ClubRepository interface {
	List() ([]entity.FootballClub, error)
	GetByID(id uint) (*entity.FootballClub, error)
	// GetOrCreateByName используется импортом данных
	GetOrCreateByName(name string) (*entity.FootballClub, error)
}

// SeasonRepository определяет методы для работы с сезонами
type SeasonRepository interface {
	List() ([]entity.Season, error)
	GetByID(id uint) (*entity.Season, error)
	GetOrCreateByName(name string) (*entity.Season, error)
}
