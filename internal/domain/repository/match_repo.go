package repository

import (
	"github.com/stevomusembi/retroscore/internal/domain/entity"
)

// MatchRepository определяет методы для работы с историческими матчами.
// Все методы выборки возвращают полные записи, включая истинный счет.
type MatchRepository interface {
	FindAll() ([]entity.Match, error)
	// FindByTeam возвращает матчи, где клуб играл дома или в гостях
	FindByTeam(teamID uint) ([]entity.Match, error)
	FindBySeason(seasonID uint) ([]entity.Match, error)
	FindByTeamAndSeason(teamID, seasonID uint) ([]entity.Match, error)
	GetByID(id uint) (*entity.Match, error)
	Create(match *entity.Match) error
	CreateBatch(matches []entity.Match) error
}
