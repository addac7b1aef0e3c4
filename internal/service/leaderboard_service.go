package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/stevomusembi/retroscore/internal/domain/repository"
	"github.com/stevomusembi/retroscore/internal/handler/dto"
	apperrors "github.com/stevomusembi/retroscore/internal/pkg/errors"
)

const leaderboardVersionKey = "leaderboard:version"

// LeaderboardService считает ранги по текущим очкам. Ранг нигде не
// хранится: он всегда выводится из счетчиков на момент чтения.
type LeaderboardService struct {
	statsRepo repository.UserStatsRepository
	userRepo  repository.UserRepository
	cacheRepo repository.CacheRepository // может быть nil, кеш опционален
	cacheTTL  time.Duration
}

// NewLeaderboardService создает новый сервис лидерборда
func NewLeaderboardService(
	statsRepo repository.UserStatsRepository,
	userRepo repository.UserRepository,
	cacheRepo repository.CacheRepository,
	cacheTTLSec int,
) *LeaderboardService {
	if cacheTTLSec <= 0 {
		cacheTTLSec = 30
	}
	return &LeaderboardService{
		statsRepo: statsRepo,
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  time.Duration(cacheTTLSec) * time.Second,
	}
}

// GetLeaderboard возвращает страницу лидерборда. Страницы кешируются
// на короткий TTL; снимок не линеаризуем с конкурентными записями
// статистики, это осознанный компромисс.
func (s *LeaderboardService) GetLeaderboard(page, pageSize int) (*dto.LeaderboardResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	} else if pageSize > 100 {
		pageSize = 100
	}

	cacheKey := s.pageCacheKey(page, pageSize)
	if s.cacheRepo != nil && cacheKey != "" {
		var cached dto.LeaderboardResponse
		if err := s.cacheRepo.GetJSON(cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	offset := (page - 1) * pageSize
	rows, total, err := s.statsRepo.PageByPointsDescCreatedAtAsc(pageSize, offset)
	if err != nil {
		log.Printf("[LeaderboardService] Ошибка при получении страницы лидерборда: %v", err)
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, len(rows))
	for i, row := range rows {
		rank, err := s.rankForPoints(row.TotalPoints)
		if err != nil {
			return nil, err
		}
		winPct := 0.0
		if row.GamesPlayed > 0 {
			winPct = float64(row.ExactScoreCount) / float64(row.GamesPlayed) * 100.0
		}
		entries[i] = dto.LeaderboardEntry{
			Rank:          rank,
			UserID:        row.UserID,
			Username:      row.Username,
			TotalPoints:   row.TotalPoints,
			GamesPlayed:   row.GamesPlayed,
			WinPercentage: winPct,
		}
	}

	response := &dto.LeaderboardResponse{
		Entries:    entries,
		TotalUsers: total,
		Page:       page,
		PageSize:   pageSize,
	}

	if s.cacheRepo != nil && cacheKey != "" {
		if err := s.cacheRepo.SetJSON(cacheKey, response, s.cacheTTL); err != nil {
			log.Printf("[LeaderboardService] Не удалось закешировать страницу лидерборда: %v", err)
		}
	}

	return response, nil
}

// GetUserStatsWithRank возвращает статистику пользователя с рангом,
// пересчитанным на момент запроса
func (s *LeaderboardService) GetUserStatsWithRank(userID uint) (*dto.UserStatsWithRank, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.statsRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	rank, err := s.rankForPoints(stats.TotalPoints())
	if err != nil {
		return nil, err
	}

	return &dto.UserStatsWithRank{
		UserID:             user.ID,
		Username:           user.Username,
		TotalPoints:        stats.TotalPoints(),
		GamesPlayed:        stats.GamesPlayed,
		ExactScoreCount:    stats.ExactScoreCount,
		CorrectResultCount: stats.CorrectResultCount,
		IncorrectCount:     stats.IncorrectCount,
		WinPercentage:      stats.WinPercentage(),
		CurrentRank:        rank,
	}, nil
}

// rankForPoints: ранг = число пользователей со строго большими очками + 1.
// Пользователи с равными очками делят номер ранга.
func (s *LeaderboardService) rankForPoints(points int) (int64, error) {
	ahead, err := s.statsRepo.CountWithMorePoints(points)
	if err != nil {
		return 0, err
	}
	return ahead + 1, nil
}

// InvalidateCache сдвигает версию кеша после записи статистики.
// Все лучшие усилия: отказ кеша не должен ломать игру.
func (s *LeaderboardService) InvalidateCache() {
	if s.cacheRepo == nil {
		return
	}
	if _, err := s.cacheRepo.Increment(leaderboardVersionKey); err != nil {
		log.Printf("[LeaderboardService] Не удалось инвалидировать кеш лидерборда: %v", err)
	}
}

// pageCacheKey включает текущую версию кеша, чтобы страница устаревала
// при записи статистики. Пустая строка отключает кеш для этого запроса.
func (s *LeaderboardService) pageCacheKey(page, pageSize int) string {
	version, err := s.cacheVersion()
	if err != nil {
		return ""
	}
	return fmt.Sprintf("leaderboard:v%d:page:%d:%d", version, page, pageSize)
}

func (s *LeaderboardService) cacheVersion() (int64, error) {
	if s.cacheRepo == nil {
		return 0, errors.New("cache disabled")
	}
	val, err := s.cacheRepo.Get(leaderboardVersionKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	var version int64
	if _, err := fmt.Sscanf(val, "%d", &version); err != nil {
		return 0, err
	}
	return version, nil
}
