package postgres

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stevomusembi/retroscore/internal/domain/entity"
	"github.com/stevomusembi/retroscore/internal/domain/repository"
)

// Очки выводятся из счетчиков прямо в запросе; в таблице их нет.
const pointsExpr = "user_stats.exact_score_count * 3 + user_stats.correct_result_count"

// UserStatsRepo реализует repository.UserStatsRepository
type UserStatsRepo struct {
	db *gorm.DB
}

// NewUserStatsRepo создает новый репозиторий статистики
func NewUserStatsRepo(db *gorm.DB) *UserStatsRepo {
	return &UserStatsRepo{db: db}
}

// GetByUser возвращает агрегат пользователя. Для еще не игравшего
// пользователя возвращается нулевой агрегат без записи в БД: строка
// появится при первом сохранении.
func (r *UserStatsRepo) GetByUser(userID uint) (*entity.UserStats, error) {
	var stats entity.UserStats
	err := r.db.Where("user_id = ?", userID).First(&stats).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entity.UserStats{UserID: userID}, nil
		}
		return nil, err
	}
	return &stats, nil
}

// Save сохраняет агрегат (insert при первом касании, update дальше)
func (r *UserStatsRepo) Save(stats *entity.UserStats) error {
	return r.db.Save(stats).Error
}

// RecordOutcome применяет итог попытки атомарным инкрементом в БД.
// Upsert по user_id: read-modify-write здесь недопустим, конкурентные
// сабмиты одного пользователя на разных матчах теряли бы счетчики.
func (r *UserStatsRepo) RecordOutcome(userID uint, isCorrectScore, isCorrectResult bool) error {
	delta := entity.UserStats{UserID: userID}
	delta.ApplyOutcome(isCorrectScore, isCorrectResult)

	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"games_played":         gorm.Expr("user_stats.games_played + 1"),
			"exact_score_count":    gorm.Expr("user_stats.exact_score_count + EXCLUDED.exact_score_count"),
			"correct_result_count": gorm.Expr("user_stats.correct_result_count + EXCLUDED.correct_result_count"),
			"incorrect_count":      gorm.Expr("user_stats.incorrect_count + EXCLUDED.incorrect_count"),
			"updated_at":           gorm.Expr("now()"),
		}),
	}).Create(&delta).Error
}

// CountWithMorePoints возвращает число пользователей со строго большими очками
func (r *UserStatsRepo) CountWithMorePoints(points int) (int64, error) {
	var count int64
	err := r.db.Model(&entity.UserStats{}).
		Where(pointsExpr+" > ?", points).
		Count(&count).Error
	return count, err
}

// Еще не игравшие пользователи присутствуют в лидерборде с нулями,
// поэтому счетчики берутся через COALESCE поверх LEFT JOIN.
const coalescedPointsExpr = "COALESCE(user_stats.exact_score_count, 0) * 3 + COALESCE(user_stats.correct_result_count, 0)"

// PageByPointsDescCreatedAtAsc возвращает страницу лидерборда и общее
// число зарегистрированных пользователей. Ведем выборку от users:
// аккаунт без единой игры тоже строка лидерборда, а не пробел в нем.
// Порядок тотальный: очки по убыванию, при равенстве раньше созданный
// аккаунт выше.
func (r *UserStatsRepo) PageByPointsDescCreatedAtAsc(limit, offset int) ([]repository.LeaderboardRow, int64, error) {
	var rows []repository.LeaderboardRow
	var total int64

	if err := r.db.Model(&entity.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Model(&entity.User{}).
		Select("users.id AS user_id, users.username, "+
			"COALESCE(user_stats.games_played, 0) AS games_played, "+
			"COALESCE(user_stats.exact_score_count, 0) AS exact_score_count, "+
			"COALESCE(user_stats.correct_result_count, 0) AS correct_result_count, "+
			coalescedPointsExpr+" AS total_points, users.created_at").
		Joins("LEFT JOIN user_stats ON user_stats.user_id = users.id").
		Order(coalescedPointsExpr + " DESC, users.created_at ASC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}
