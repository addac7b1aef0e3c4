package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stevomusembi/retroscore/internal/domain/entity"
	"github.com/stevomusembi/retroscore/internal/domain/repository"
	"github.com/stevomusembi/retroscore/internal/handler/dto"
	apperrors "github.com/stevomusembi/retroscore/internal/pkg/errors"
)

// ============================================================================
// Моки репозиториев для GameService
// ============================================================================

func intPtr(v int) *int    { return &v }
func uintPtr(v uint) *uint { return &v }

// MockMatchRepository реализует repository.MatchRepository
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) FindAll() ([]entity.Match, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Match), args.Error(1)
}

func (m *MockMatchRepository) FindByTeam(teamID uint) ([]entity.Match, error) {
	args := m.Called(teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Match), args.Error(1)
}

func (m *MockMatchRepository) FindBySeason(seasonID uint) ([]entity.Match, error) {
	args := m.Called(seasonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Match), args.Error(1)
}

func (m *MockMatchRepository) FindByTeamAndSeason(teamID, seasonID uint) ([]entity.Match, error) {
	args := m.Called(teamID, seasonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Match), args.Error(1)
}

func (m *MockMatchRepository) GetByID(id uint) (*entity.Match, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Match), args.Error(1)
}

func (m *MockMatchRepository) Create(match *entity.Match) error {
	args := m.Called(match)
	return args.Error(0)
}

func (m *MockMatchRepository) CreateBatch(matches []entity.Match) error {
	args := m.Called(matches)
	return args.Error(0)
}

// MockUserGameRepository реализует repository.UserGameRepository
type MockUserGameRepository struct {
	mock.Mock
}

func (m *MockUserGameRepository) Create(game *entity.UserGame) error {
	args := m.Called(game)
	return args.Error(0)
}

func (m *MockUserGameRepository) GetByUserAndMatch(userID, matchID uint) (*entity.UserGame, error) {
	args := m.Called(userID, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserGame), args.Error(1)
}

func (m *MockUserGameRepository) GetByIDAndUser(id, userID uint) (*entity.UserGame, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserGame), args.Error(1)
}

func (m *MockUserGameRepository) FindAllByUser(userID uint) ([]entity.UserGame, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UserGame), args.Error(1)
}

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByGoogleID(googleID string) (*entity.User, error) {
	args := m.Called(googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateSettings(userID uint, updates map[string]interface{}) error {
	args := m.Called(userID, updates)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockUserStatsRepository реализует repository.UserStatsRepository
type MockUserStatsRepository struct {
	mock.Mock
}

func (m *MockUserStatsRepository) GetByUser(userID uint) (*entity.UserStats, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserStats), args.Error(1)
}

func (m *MockUserStatsRepository) Save(stats *entity.UserStats) error {
	args := m.Called(stats)
	return args.Error(0)
}

func (m *MockUserStatsRepository) RecordOutcome(userID uint, isCorrectScore, isCorrectResult bool) error {
	args := m.Called(userID, isCorrectScore, isCorrectResult)
	return args.Error(0)
}

func (m *MockUserStatsRepository) CountWithMorePoints(points int) (int64, error) {
	args := m.Called(points)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserStatsRepository) PageByPointsDescCreatedAtAsc(limit, offset int) ([]repository.LeaderboardRow, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]repository.LeaderboardRow), args.Get(1).(int64), args.Error(2)
}

// ============================================================================
// Хелперы
// ============================================================================

type gameServiceMocks struct {
	matchRepo    *MockMatchRepository
	userGameRepo *MockUserGameRepository
	userRepo     *MockUserRepository
	statsRepo    *MockUserStatsRepository
}

func newTestGameService() (*GameService, *gameServiceMocks) {
	mocks := &gameServiceMocks{
		matchRepo:    new(MockMatchRepository),
		userGameRepo: new(MockUserGameRepository),
		userRepo:     new(MockUserRepository),
		statsRepo:    new(MockUserStatsRepository),
	}
	svc := NewGameService(mocks.matchRepo, mocks.userGameRepo, mocks.userRepo, mocks.statsRepo, nil, 5)
	return svc, mocks
}

// testMatch создает матч с известным счетом и преднагруженными клубами
func testMatch(id uint, homeScore, awayScore int) *entity.Match {
	return &entity.Match{
		ID:         id,
		SeasonID:   1,
		HomeTeamID: 10,
		AwayTeamID: 20,
		Season:     entity.Season{ID: 1, Name: "2015/2016"},
		HomeTeam:   entity.FootballClub{ID: 10, Name: "Arsenal"},
		AwayTeam:   entity.FootballClub{ID: 20, Name: "Chelsea"},
		HomeScore:  homeScore,
		AwayScore:  awayScore,
	}
}

func testMatches(n int) []entity.Match {
	matches := make([]entity.Match, n)
	for i := range matches {
		m := testMatch(uint(i+1), 2, 1)
		matches[i] = *m
	}
	return matches
}

// ============================================================================
// SubmitGuess: оценка прогноза
// ============================================================================

func TestSubmitGuess_ExactScore(t *testing.T) {
	svc, mocks := newTestGameService()

	user := &entity.User{ID: 7, Username: "player"}
	match := testMatch(42, 2, 1)

	mocks.userRepo.On("GetByID", uint(7)).Return(user, nil)
	mocks.matchRepo.On("GetByID", uint(42)).Return(match, nil)
	mocks.userGameRepo.On("GetByUserAndMatch", uint(7), uint(42)).Return(nil, apperrors.ErrNotFound)
	mocks.userGameRepo.On("Create", mock.AnythingOfType("*entity.UserGame")).Return(nil)
	mocks.statsRepo.On("RecordOutcome", uint(7), true, true).Return(nil)

	resp, err := svc.SubmitGuess(7, &dto.GuessRequest{
		MatchID:            42,
		PredictedHomeScore: intPtr(2),
		PredictedAwayScore: intPtr(1),
	})

	require.NoError(t, err)
	assert.True(t, resp.IsCorrectScore)
	assert.True(t, resp.IsCorrectResult, "точный счет влечет верный исход")
	assert.Equal(t, entity.GameResultExactScore, resp.GameResult)
	assert.Equal(t, 3, resp.Points)
	assert.Equal(t, "Perfect! Exact score!", resp.ResultMessage)
	assert.Equal(t, entity.MatchResultHomeWin, resp.ActualMatchResult)
	mocks.statsRepo.AssertExpectations(t)
}

func TestSubmitGuess_CorrectResultOnly(t *testing.T) {
	svc, mocks := newTestGameService()

	user := &entity.User{ID: 7}
	match := testMatch(42, 2, 1)

	mocks.userRepo.On("GetByID", uint(7)).Return(user, nil)
	mocks.matchRepo.On("GetByID", uint(42)).Return(match, nil)
	mocks.userGameRepo.On("GetByUserAndMatch", uint(7), uint(42)).Return(nil, apperrors.ErrNotFound)
	mocks.userGameRepo.On("Create", mock.AnythingOfType("*entity.UserGame")).Return(nil)
	mocks.statsRepo.On("RecordOutcome", uint(7), false, true).Return(nil)

	// 3-0 — не тот счет, но тоже победа хозяев
	resp, err := svc.SubmitGuess(7, &dto.GuessRequest{
		MatchID:            42,
		PredictedHomeScore: intPtr(3),
		PredictedAwayScore: intPtr(0),
	})

	require.NoError(t, err)
	assert.False(t, resp.IsCorrectScore)
	assert.True(t, resp.IsCorrectResult)
	assert.Equal(t, entity.GameResultCorrectResult, resp.GameResult)
	assert.Equal(t, 1, resp.Points)
	assert.Equal(t, "Good! Correct result", resp.ResultMessage)
}

func TestSubmitGuess_Incorrect(t *testing.T) {
	svc, mocks := newTestGameService()

	user := &entity.User{ID: 7}
	match := testMatch(42, 2, 1)

	mocks.userRepo.On("GetByID", uint(7)).Return(user, nil)
	mocks.matchRepo.On("GetByID", uint(42)).Return(match, nil)
	mocks.userGameRepo.On("GetByUserAndMatch", uint(7), uint(42)).Return(nil, apperrors.ErrNotFound)
	mocks.userGameRepo.On("Create", mock.AnythingOfType("*entity.UserGame")).Return(nil)
	mocks.statsRepo.On("RecordOutcome", uint(7), false, false).Return(nil)

	// 0-2 — поражение хозяев, исход не угадан
	resp, err := svc.SubmitGuess(7, &dto.GuessRequest{
		MatchID:            42,
		PredictedHomeScore: intPtr(0),
		PredictedAwayScore: intPtr(2),
	})

	require.NoError(t, err)
	assert.False(t, resp.IsCorrectScore)
	assert.False(t, resp.IsCorrectResult)
	assert.Equal(t, entity.GameResultIncorrect, resp.GameResult)
	assert.Equal(t, 0, resp.Points)
	assert.Equal(t, "Wrong guess, try again!", resp.ResultMessage)
}

func TestSubmitGuess_TimeUp_NothingPersisted(t *testing.T) {
	svc, mocks := newTestGameService()

	user := &entity.User{ID: 7}
	match := testMatch(42, 1, 1)

	mocks.userRepo.On("GetByID", uint(7)).Return(user, nil)
	mocks.matchRepo.On("GetByID", uint(42)).Return(match, nil)

	resp, err := svc.SubmitGuess(7, &dto.GuessRequest{
		MatchID:  42,
		TimeIsUp: true,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.GameResultTimeUp, resp.GameResult)
	assert.Equal(t, 0, resp.Points)
	assert.Equal(t, "Time's up! No points awarded", resp.ResultMessage)
	assert.Zero(t, resp.UserGameID, "таймаут не создает записи попытки")

	// Ни попытка, ни статистика не записываются: матч можно сыграть снова
	mocks.userGameRepo.AssertNotCalled(t, "Create", mock.Anything)
	mocks.statsRepo.AssertNotCalled(t, "RecordOutcome", mock.Anything, mock.Anything, mock.Anything)
	mocks.userGameRepo.AssertNotCalled(t, "GetByUserAndMatch", mock.Anything, mock.Anything)
}

func TestSubmitGuess_AlreadyPlayed_PreCheck(t *testing.T) {
	svc, mocks := newTestGameService()

	user := &entity.User{ID: 7}
	match := testMatch(42, 2, 1)

	mocks.userRepo.On("GetByID", uint(7)).Return(user, nil)
	mocks.matchRepo.On("GetByID", uint(42)).Return(match, nil)
	mocks.userGameRepo.On("GetByUserAndMatch", uint(7), uint(42)).
		Return(&entity.UserGame{ID: 1, UserID: 7, MatchID: 42}, nil)

	_, err := svc.SubmitGuess(7, &dto.GuessRequest{
		MatchID:            42,
		PredictedHomeScore: intPtr(2),
		PredictedAwayScore: intPtr(1),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrAlreadyPlayed)
	mocks.userGameRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSubmitGuess_AlreadyPlayed_InsertRace(t *testing.T) {
	// Два конкурентных сабмита: предварительная проверка проходит,
	// но уникальный индекс отклоняет insert
	svc, mocks := newTestGameService()

	user := &entity.User{ID: 7}
	match := testMatch(42, 2, 1)

	mocks.userRepo.On("GetByID", uint(7)).Return(user, nil)
	mocks.matchRepo.On("GetByID", uint(42)).Return(match, nil)
	mocks.userGameRepo.On("GetByUserAndMatch", uint(7), uint(42)).Return(nil, apperrors.ErrNotFound)
	mocks.userGameRepo.On("Create", mock.AnythingOfType("*entity.UserGame")).Return(repository.ErrAlreadyPlayed)

	_, err := svc.SubmitGuess(7, &dto.GuessRequest{
		MatchID:            42,
		PredictedHomeScore: intPtr(2),
		PredictedAwayScore: intPtr(1),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrAlreadyPlayed)
	mocks.statsRepo.AssertNotCalled(t, "RecordOutcome", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitGuess_EasyMode(t *testing.T) {
	svc, mocks := newTestGameService()

	user := &entity.User{ID: 7}
	match := testMatch(42, 1, 1)

	mocks.userRepo.On("GetByID", uint(7)).Return(user, nil)
	mocks.matchRepo.On("GetByID", uint(42)).Return(match, nil)
	mocks.userGameRepo.On("GetByUserAndMatch", uint(7), uint(42)).Return(nil, apperrors.ErrNotFound)
	mocks.userGameRepo.On("Create", mock.AnythingOfType("*entity.UserGame")).Return(nil)
	// В easy-режиме точный счет невозможен
	mocks.statsRepo.On("RecordOutcome", uint(7), false, true).Return(nil)

	resp, err := svc.SubmitGuess(7, &dto.GuessRequest{
		MatchID:     42,
		IsEasyMode:  true,
		MatchResult: "DRAW",
	})

	require.NoError(t, err)
	assert.False(t, resp.IsCorrectScore)
	assert.True(t, resp.IsCorrectResult)
	assert.Equal(t, entity.GameResultCorrectResult, resp.GameResult)
	assert.Nil(t, resp.PredictedHomeScore, "easy-режим не записывает прогнозный счет")
}

func TestSubmitGuess_EasyMode_InvalidResult(t *testing.T) {
	svc, mocks := newTestGameService()

	mocks.userRepo.On("GetByID", uint(7)).Return(&entity.User{ID: 7}, nil)
	mocks.matchRepo.On("GetByID", uint(42)).Return(testMatch(42, 1, 1), nil)
	mocks.userGameRepo.On("GetByUserAndMatch", uint(7), uint(42)).Return(nil, apperrors.ErrNotFound)

	_, err := svc.SubmitGuess(7, &dto.GuessRequest{
		MatchID:     42,
		IsEasyMode:  true,
		MatchResult: "WIN",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidGuess)
	mocks.userGameRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSubmitGuess_MissingScores(t *testing.T) {
	svc, mocks := newTestGameService()

	mocks.userRepo.On("GetByID", uint(7)).Return(&entity.User{ID: 7}, nil)
	mocks.matchRepo.On("GetByID", uint(42)).Return(testMatch(42, 1, 1), nil)
	mocks.userGameRepo.On("GetByUserAndMatch", uint(7), uint(42)).Return(nil, apperrors.ErrNotFound)

	_, err := svc.SubmitGuess(7, &dto.GuessRequest{MatchID: 42})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidGuess)
}

func TestSubmitGuess_UnknownUserOrMatch(t *testing.T) {
	svc, mocks := newTestGameService()

	mocks.userRepo.On("GetByID", uint(99)).Return(nil, apperrors.ErrNotFound)

	_, err := svc.SubmitGuess(99, &dto.GuessRequest{MatchID: 42})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	mocks.userRepo.On("GetByID", uint(7)).Return(&entity.User{ID: 7}, nil)
	mocks.matchRepo.On("GetByID", uint(404)).Return(nil, apperrors.ErrNotFound)

	_, err = svc.SubmitGuess(7, &dto.GuessRequest{MatchID: 404})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// ============================================================================
// GetRandomMatch: режимы выбора
// ============================================================================

func TestGetRandomMatch_Anonymous(t *testing.T) {
	svc, mocks := newTestGameService()
	svc.randIntn = func(n int) int { return 0 }

	mocks.matchRepo.On("FindAll").Return(testMatches(3), nil)

	resp, err := svc.GetRandomMatch(nil, nil, nil, "")

	require.NoError(t, err)
	assert.Equal(t, uint(1), resp.MatchID)
	assert.Nil(t, resp.PlayHistory, "анонимный запрос без истории игр")
	mocks.userGameRepo.AssertNotCalled(t, "FindAllByUser", mock.Anything)
}

func TestGetRandomMatch_EmptyPool(t *testing.T) {
	svc, mocks := newTestGameService()

	mocks.matchRepo.On("FindBySeason", uint(3)).Return([]entity.Match{}, nil)

	_, err := svc.GetRandomMatch(nil, nil, uintPtr(3), "")

	assert.ErrorIs(t, err, ErrNoMatchesFound)
}

func TestGetRandomMatch_FilterDispatch(t *testing.T) {
	svc, mocks := newTestGameService()
	svc.randIntn = func(n int) int { return 0 }

	mocks.matchRepo.On("FindByTeamAndSeason", uint(10), uint(3)).Return(testMatches(1), nil)

	_, err := svc.GetRandomMatch(nil, uintPtr(10), uintPtr(3), "")

	require.NoError(t, err)
	mocks.matchRepo.AssertCalled(t, "FindByTeamAndSeason", uint(10), uint(3))
	mocks.matchRepo.AssertNotCalled(t, "FindAll")
}

func TestGetRandomMatch_UnplayedMode(t *testing.T) {
	svc, mocks := newTestGameService()
	svc.randIntn = func(n int) int { return 0 }

	matches := testMatches(3)
	played := []entity.UserGame{
		{ID: 1, UserID: 7, MatchID: 1, PlayedAt: time.Now()},
		{ID: 2, UserID: 7, MatchID: 2, PlayedAt: time.Now()},
	}

	mocks.matchRepo.On("FindAll").Return(matches, nil)
	mocks.userGameRepo.On("FindAllByUser", uint(7)).Return(played, nil)
	mocks.userGameRepo.On("GetByUserAndMatch", uint(7), uint(3)).Return(nil, apperrors.ErrNotFound)

	resp, err := svc.GetRandomMatch(uintPtr(7), nil, nil, ModeUnplayed)

	require.NoError(t, err)
	assert.Equal(t, uint(3), resp.MatchID, "остается единственный несыгранный матч")
}

func TestGetRandomMatch_IncorrectMode(t *testing.T) {
	svc, mocks := newTestGameService()
	svc.randIntn = func(n int) int { return 0 }

	matches := testMatches(3)
	played := []entity.UserGame{
		{ID: 1, UserID: 7, MatchID: 1, IsCorrectScore: true, PlayedAt: time.Now()},
		{ID: 2, UserID: 7, MatchID: 2, IsCorrectScore: false, PlayedAt: time.Now()},
	}

	mocks.matchRepo.On("FindAll").Return(matches, nil)
	mocks.userGameRepo.On("FindAllByUser", uint(7)).Return(played, nil)
	mocks.userGameRepo.On("GetByUserAndMatch", uint(7), uint(2)).
		Return(&played[1], nil)

	resp, err := svc.GetRandomMatch(uintPtr(7), nil, nil, ModeIncorrect)

	require.NoError(t, err)
	assert.Equal(t, uint(2), resp.MatchID, "в пуле только сыгранные с неугаданным счетом")
	require.NotNil(t, resp.PlayHistory)
	assert.True(t, resp.PlayHistory.PreviouslyPlayed)
	assert.False(t, resp.PlayHistory.WasCorrectScore)
}

func TestGetRandomMatch_DiscoveryPrefersUnplayed(t *testing.T) {
	// Несыгранных достаточно (>= 5) — пул состоит только из них
	svc, mocks := newTestGameService()
	svc.randIntn = func(n int) int { return 0 }

	matches := testMatches(10)
	played := []entity.UserGame{
		{ID: 1, UserID: 7, MatchID: 1, PlayedAt: time.Now()},
		{ID: 2, UserID: 7, MatchID: 2, PlayedAt: time.Now()},
	}

	mocks.matchRepo.On("FindAll").Return(matches, nil)
	mocks.userGameRepo.On("FindAllByUser", uint(7)).Return(played, nil)
	mocks.userGameRepo.On("GetByUserAndMatch", uint(7), uint(3)).Return(nil, apperrors.ErrNotFound)

	resp, err := svc.GetRandomMatch(uintPtr(7), nil, nil, ModeDiscovery)

	require.NoError(t, err)
	assert.Equal(t, uint(3), resp.MatchID, "первый несыгранный матч при randIntn=0")
}

func TestGetRandomMatch_DiscoveryFallsBackToFullPool(t *testing.T) {
	// Несыгранных меньше порога — возвращается полный пул с повторами
	svc, mocks := newTestGameService()
	svc.randIntn = func(n int) int { return 0 }

	matches := testMatches(6)
	played := make([]entity.UserGame, 4)
	for i := range played {
		played[i] = entity.UserGame{ID: uint(i + 1), UserID: 7, MatchID: uint(i + 1), PlayedAt: time.Now()}
	}

	mocks.matchRepo.On("FindAll").Return(matches, nil)
	mocks.userGameRepo.On("FindAllByUser", uint(7)).Return(played, nil)
	mocks.userGameRepo.On("GetByUserAndMatch", uint(7), uint(1)).
		Return(&played[0], nil)

	resp, err := svc.GetRandomMatch(uintPtr(7), nil, nil, ModeDiscovery)

	require.NoError(t, err)
	// Только 2 несыгранных (< 5), пул не сужается: randIntn=0 дает матч #1
	assert.Equal(t, uint(1), resp.MatchID)
	require.NotNil(t, resp.PlayHistory)
	assert.True(t, resp.PlayHistory.PreviouslyPlayed)
}

// ============================================================================
// История и результаты
// ============================================================================

func TestGetPlayHistory(t *testing.T) {
	svc, mocks := newTestGameService()

	match := testMatch(42, 2, 1)
	games := []entity.UserGame{
		{
			ID:                 5,
			UserID:             7,
			MatchID:            42,
			Match:              *match,
			PredictedHomeScore: intPtr(2),
			PredictedAwayScore: intPtr(1),
			IsCorrectScore:     true,
			IsCorrectResult:    true,
			PlayedAt:           time.Now(),
		},
	}

	mocks.userGameRepo.On("FindAllByUser", uint(7)).Return(games, nil)

	items, err := svc.GetPlayHistory(7)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uint(5), items[0].UserGameID)
	assert.Equal(t, "Arsenal vs Chelsea", items[0].MatchTitle)
	assert.Equal(t, "2-1", items[0].PredictedScore)
	assert.Equal(t, "2-1", items[0].ActualScore)
	assert.Equal(t, entity.GameResultExactScore, items[0].GameResult)
	assert.Equal(t, 3, items[0].Points)
}

func TestGetGameResult_ScopedToUser(t *testing.T) {
	svc, mocks := newTestGameService()

	mocks.userGameRepo.On("GetByIDAndUser", uint(5), uint(8)).Return(nil, apperrors.ErrNotFound)

	_, err := svc.GetGameResult(8, 5)

	// Чужая попытка неотличима от несуществующей
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEvaluateGuess(t *testing.T) {
	tests := []struct {
		name              string
		predictedHome     int
		predictedAway     int
		actualHome        int
		actualAway        int
		wantCorrectScore  bool
		wantCorrectResult bool
	}{
		{"точный счет", 2, 1, 2, 1, true, true},
		{"верный исход, другой счет", 3, 0, 2, 1, false, true},
		{"неверный исход", 0, 2, 2, 1, false, false},
		{"точная ничья", 1, 1, 1, 1, true, true},
		{"ничья с другим счетом", 0, 0, 2, 2, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := &entity.UserGame{
				PredictedHomeScore: intPtr(tt.predictedHome),
				PredictedAwayScore: intPtr(tt.predictedAway),
			}
			match := testMatch(1, tt.actualHome, tt.actualAway)

			evaluateGuess(game, match)

			assert.Equal(t, tt.wantCorrectScore, game.IsCorrectScore)
			assert.Equal(t, tt.wantCorrectResult, game.IsCorrectResult)
		})
	}
}
