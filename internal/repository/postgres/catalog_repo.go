package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/stevomusembi/retroscore/internal/domain/entity"
	apperrors "github.com/stevomusembi/retroscore/internal/pkg/errors"
)

// ClubRepo реализует repository.ClubRepository
type ClubRepo struct {
	db *gorm.DB
}

// NewClubRepo создает новый репозиторий клубов
func NewClubRepo(db *gorm.DB) *ClubRepo {
	return &ClubRepo{db: db}
}

// List возвращает все клубы по алфавиту
func (r *ClubRepo) List() ([]entity.FootballClub, error) {
	var clubs []entity.FootballClub
	err := r.db.Order("name").Find(&clubs).Error
	return clubs, err
}

// GetByID возвращает клуб по ID
func (r *ClubRepo) GetByID(id uint) (*entity.FootballClub, error) {
	var club entity.FootballClub
	err := r.db.First(&club, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &club, nil
}

// GetOrCreateByName возвращает клуб по имени, создавая его при отсутствии.
// Используется импортом данных.
func (r *ClubRepo) GetOrCreateByName(name string) (*entity.FootballClub, error) {
	name = strings.TrimSpace(name)
	var club entity.FootballClub
	err := r.db.Where("name = ?", name).
		FirstOrCreate(&club, entity.FootballClub{Name: name, IsActive: true}).Error
	if err != nil {
		return nil, err
	}
	return &club, nil
}

// SeasonRepo реализует repository.SeasonRepository
type SeasonRepo struct {
	db *gorm.DB
}

// NewSeasonRepo создает новый репозиторий сезонов
func NewSeasonRepo(db *gorm.DB) *SeasonRepo {
	return &SeasonRepo{db: db}
}

// List возвращает все сезоны, новые первыми
func (r *SeasonRepo) List() ([]entity.Season, error) {
	var seasons []entity.Season
	err := r.db.Order("start_year DESC").Find(&seasons).Error
	return seasons, err
}

// GetByID возвращает сезон по ID
func (r *SeasonRepo) GetByID(id uint) (*entity.Season, error) {
	var season entity.Season
	err := r.db.First(&season, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &season, nil
}

// GetOrCreateByName возвращает сезон по имени, создавая его при отсутствии.
// Имя вида "2015/2016" задает начальный и конечный год.
func (r *SeasonRepo) GetOrCreateByName(name string) (*entity.Season, error) {
	name = strings.TrimSpace(name)
	startYear, endYear := parseSeasonYears(name)

	var season entity.Season
	err := r.db.Where("name = ?", name).
		FirstOrCreate(&season, entity.Season{
			Name:      name,
			StartYear: startYear,
			EndYear:   endYear,
		}).Error
	if err != nil {
		return nil, err
	}
	return &season, nil
}

// parseSeasonYears разбирает годы из имени сезона "2015/2016".
// Нераспознанное имя дает нулевые годы, это не ошибка.
func parseSeasonYears(name string) (int, int) {
	parts := strings.Split(name, "/")
	if len(parts) != 2 {
		return 0, 0
	}
	start := atoiOrZero(parts[0])
	end := atoiOrZero(parts[1])
	return start, end
}

func atoiOrZero(s string) int {
	n := 0
	for _, c := range strings.TrimSpace(s) {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
