package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/stevomusembi/retroscore/internal/domain/entity"
	apperrors "github.com/stevomusembi/retroscore/internal/pkg/errors"
)

// MatchRepo реализует repository.MatchRepository
type MatchRepo struct {
	db *gorm.DB
}

// NewMatchRepo создает новый репозиторий матчей
func NewMatchRepo(db *gorm.DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// withRelations подгружает сезон и оба клуба одной выборкой
func (r *MatchRepo) withRelations() *gorm.DB {
	return r.db.Preload("Season").Preload("HomeTeam").Preload("AwayTeam")
}

// FindAll возвращает все матчи
func (r *MatchRepo) FindAll() ([]entity.Match, error) {
	var matches []entity.Match
	err := r.withRelations().Find(&matches).Error
	return matches, err
}

// FindByTeam возвращает матчи, где клуб играл дома или в гостях
func (r *MatchRepo) FindByTeam(teamID uint) ([]entity.Match, error) {
	var matches []entity.Match
	err := r.withRelations().
		Where("home_team_id = ? OR away_team_id = ?", teamID, teamID).
		Find(&matches).Error
	return matches, err
}

// FindBySeason возвращает матчи сезона
func (r *MatchRepo) FindBySeason(seasonID uint) ([]entity.Match, error) {
	var matches []entity.Match
	err := r.withRelations().
		Where("season_id = ?", seasonID).
		Find(&matches).Error
	return matches, err
}

// FindByTeamAndSeason возвращает матчи клуба в рамках сезона
func (r *MatchRepo) FindByTeamAndSeason(teamID, seasonID uint) ([]entity.Match, error) {
	var matches []entity.Match
	err := r.withRelations().
		Where("season_id = ? AND (home_team_id = ? OR away_team_id = ?)", seasonID, teamID, teamID).
		Find(&matches).Error
	return matches, err
}

// GetByID возвращает матч по ID
func (r *MatchRepo) GetByID(id uint) (*entity.Match, error) {
	var match entity.Match
	err := r.withRelations().First(&match, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &match, nil
}

// Create сохраняет новый матч
func (r *MatchRepo) Create(match *entity.Match) error {
	return r.db.Create(match).Error
}

// CreateBatch сохраняет пакет матчей в одной транзакции
func (r *MatchRepo) CreateBatch(matches []entity.Match) error {
	if len(matches) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&matches).Error
	})
}
