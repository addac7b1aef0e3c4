package service

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/stevomusembi/retroscore/internal/domain/entity"
	"github.com/stevomusembi/retroscore/internal/domain/repository"
	"github.com/stevomusembi/retroscore/internal/handler/dto"
	apperrors "github.com/stevomusembi/retroscore/internal/pkg/errors"
)

// Режимы выбора матча
const (
	ModeDiscovery = "discovery"
	ModeUnplayed  = "unplayed"
	ModeIncorrect = "incorrect"
)

// DefaultDiscoveryMinUnplayed — нижняя граница пула несыгранных матчей
// в режиме discovery; меньший пул означает, что пользователь почти
// исчерпал базу и получает полный набор, включая повторы.
const DefaultDiscoveryMinUnplayed = 5

// GameService реализует движок игры: выбор матча, оценку прогноза и
// единственный путь записи статистики.
type GameService struct {
	matchRepo    repository.MatchRepository
	userGameRepo repository.UserGameRepository
	userRepo     repository.UserRepository
	statsRepo    repository.UserStatsRepository
	leaderboard  *LeaderboardService

	discoveryMinUnplayed int

	// randIntn подменяется в тестах для детерминированного выбора
	randIntn func(n int) int
}

// NewGameService создает новый игровой сервис
func NewGameService(
	matchRepo repository.MatchRepository,
	userGameRepo repository.UserGameRepository,
	userRepo repository.UserRepository,
	statsRepo repository.UserStatsRepository,
	leaderboard *LeaderboardService,
	discoveryMinUnplayed int,
) *GameService {
	if discoveryMinUnplayed <= 0 {
		discoveryMinUnplayed = DefaultDiscoveryMinUnplayed
	}
	return &GameService{
		matchRepo:            matchRepo,
		userGameRepo:         userGameRepo,
		userRepo:             userRepo,
		statsRepo:            statsRepo,
		leaderboard:          leaderboard,
		discoveryMinUnplayed: discoveryMinUnplayed,
		randIntn:             rand.Intn,
	}
}

// GetRandomMatch выбирает случайный матч для пользователя.
// userID, teamID и seasonID опциональны; mode управляет сужением пула
// по истории игр и применяется только при известном пользователе.
func (s *GameService) GetRandomMatch(userID, teamID, seasonID *uint, mode string) (*dto.MatchResponse, error) {
	if mode == "" {
		mode = ModeDiscovery
	}

	matches, err := s.filteredMatches(userID, teamID, seasonID, mode)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ErrNoMatchesFound
	}

	match := matches[s.randIntn(len(matches))]
	resp := dto.NewMatchResponse(&match)

	if userID != nil {
		s.attachPlayHistory(resp, *userID, match.ID)
	}

	return resp, nil
}

// filteredMatches собирает пул кандидатов: сначала фильтры по клубу и
// сезону, затем сужение по истории игр пользователя.
func (s *GameService) filteredMatches(userID, teamID, seasonID *uint, mode string) ([]entity.Match, error) {
	var matches []entity.Match
	var err error

	switch {
	case teamID != nil && seasonID != nil:
		matches, err = s.matchRepo.FindByTeamAndSeason(*teamID, *seasonID)
	case teamID != nil:
		matches, err = s.matchRepo.FindByTeam(*teamID)
	case seasonID != nil:
		matches, err = s.matchRepo.FindBySeason(*seasonID)
	default:
		matches, err = s.matchRepo.FindAll()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate matches: %w", err)
	}

	if userID == nil {
		return matches, nil
	}

	played, err := s.playedIndex(*userID)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeUnplayed:
		matches = filterMatches(matches, func(m *entity.Match) bool {
			_, ok := played[m.ID]
			return !ok
		})
	case ModeIncorrect:
		// Сыграно, но счет не угадан
		matches = filterMatches(matches, func(m *entity.Match) bool {
			game, ok := played[m.ID]
			return ok && !game.IsCorrectScore
		})
	case ModeDiscovery:
		unplayed := filterMatches(matches, func(m *entity.Match) bool {
			_, ok := played[m.ID]
			return !ok
		})
		// Несыгранных достаточно — выдаем только их; иначе полный пул,
		// чтобы почти исчерпавший базу пользователь не остался без игры
		if len(unplayed) >= s.discoveryMinUnplayed {
			matches = unplayed
		}
	default:
		// Неизвестный режим не сужает пул
	}

	return matches, nil
}

// playedIndex загружает историю игр пользователя одним запросом
// и индексирует ее по матчу
func (s *GameService) playedIndex(userID uint) (map[uint]*entity.UserGame, error) {
	games, err := s.userGameRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load play history for user #%d: %w", userID, err)
	}
	index := make(map[uint]*entity.UserGame, len(games))
	for i := range games {
		index[games[i].MatchID] = &games[i]
	}
	return index, nil
}

func filterMatches(matches []entity.Match, keep func(*entity.Match) bool) []entity.Match {
	filtered := matches[:0:0]
	for i := range matches {
		if keep(&matches[i]) {
			filtered = append(filtered, matches[i])
		}
	}
	return filtered
}

// attachPlayHistory аннотирует выданный матч прошлой попыткой
// пользователя. Ошибки здесь не фатальны: аннотация — побочный канал.
func (s *GameService) attachPlayHistory(resp *dto.MatchResponse, userID, matchID uint) {
	game, err := s.userGameRepo.GetByUserAndMatch(userID, matchID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[GameService] Не удалось загрузить историю игры user=%d match=%d: %v", userID, matchID, err)
		}
		return
	}

	playedAt := game.PlayedAt
	resp.PlayHistory = &dto.PlayHistoryResponse{
		PreviouslyPlayed: true,
		PreviousGuess:    game.PredictedScoreString(),
		WasCorrectScore:  game.IsCorrectScore,
		WasCorrectResult: game.IsCorrectResult,
		PlayedAt:         &playedAt,
	}
}

// SubmitGuess оценивает прогноз пользователя на матч.
// Порядок шагов фиксирован: существование, таймаут, защита от повтора,
// оценка, запись попытки, обновление статистики.
func (s *GameService) SubmitGuess(userID uint, guess *dto.GuessRequest) (*dto.GuessResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user #%d", apperrors.ErrNotFound, userID)
		}
		return nil, err
	}

	match, err := s.matchRepo.GetByID(guess.MatchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: match #%d", apperrors.ErrNotFound, guess.MatchID)
		}
		return nil, err
	}

	// Таймаут не считается сыгранной попыткой и не пишется в БД:
	// матч можно получить и сыграть снова
	if guess.TimeIsUp {
		return &dto.GuessResponse{
			MatchID:           match.ID,
			MatchTitle:        match.Title(),
			ActualHomeScore:   match.HomeScore,
			ActualAwayScore:   match.AwayScore,
			GameResult:        entity.GameResultTimeUp,
			ResultMessage:     entity.GameResultTimeUp.Message(),
			Points:            entity.GameResultTimeUp.Points(),
			ActualMatchResult: match.Result(),
			PlayedAt:          time.Now(),
		}, nil
	}

	// Быстрая проверка повтора до оценки. Гонку двух конкурентных
	// сабмитов разрешает уникальный индекс при insert ниже.
	if _, err := s.userGameRepo.GetByUserAndMatch(userID, match.ID); err == nil {
		return nil, fmt.Errorf("%w: user #%d, match #%d", repository.ErrAlreadyPlayed, userID, match.ID)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	game := &entity.UserGame{
		UserID:   userID,
		MatchID:  match.ID,
		PlayedAt: time.Now(),
	}

	if guess.IsEasyMode {
		// Режим "только исход": счет не записывается, точный счет
		// в этом режиме невозможен
		submitted, ok := entity.ParseMatchResult(guess.MatchResult)
		if !ok {
			return nil, fmt.Errorf("%w: match_result is required in easy mode", ErrInvalidGuess)
		}
		game.IsCorrectScore = false
		game.IsCorrectResult = submitted == match.Result()
	} else {
		if guess.PredictedHomeScore == nil || guess.PredictedAwayScore == nil {
			return nil, fmt.Errorf("%w: predicted scores are required", ErrInvalidGuess)
		}
		game.PredictedHomeScore = guess.PredictedHomeScore
		game.PredictedAwayScore = guess.PredictedAwayScore
		evaluateGuess(game, match)
	}

	if err := s.userGameRepo.Create(game); err != nil {
		return nil, err
	}

	// Запись попытки прошла, обновляем агрегат. Отказ здесь оставляет
	// известное расхождение между user_games и user_stats; его чинит
	// повторный прогон агрегации, а не откат попытки.
	if err := s.applyOutcome(user.ID, game); err != nil {
		log.Printf("[GameService] CRITICAL: попытка #%d записана, но статистика user=%d не обновлена: %v", game.ID, user.ID, err)
		return nil, err
	}

	if s.leaderboard != nil {
		s.leaderboard.InvalidateCache()
	}

	return buildGuessResponse(game, match), nil
}

// evaluateGuess вычисляет флаги корректности из прогноза и истинного
// счета. Чистая функция от пары счетов, флаги не могут разойтись с ней.
func evaluateGuess(game *entity.UserGame, match *entity.Match) {
	predictedHome := *game.PredictedHomeScore
	predictedAway := *game.PredictedAwayScore

	game.IsCorrectScore = predictedHome == match.HomeScore && predictedAway == match.AwayScore
	game.IsCorrectResult = game.IsCorrectScore ||
		entity.MatchResultFromScores(predictedHome, predictedAway) == match.Result()
}

// applyOutcome — единственный путь записи игровых счетчиков.
// Инкремент атомарный на стороне БД: read-modify-write терял бы
// обновления при конкурентных сабмитах одного пользователя.
func (s *GameService) applyOutcome(userID uint, game *entity.UserGame) error {
	return s.statsRepo.RecordOutcome(userID, game.IsCorrectScore, game.IsCorrectResult)
}

// GetGameResult возвращает результат прошлой сыгранной попытки
func (s *GameService) GetGameResult(userID, userGameID uint) (*dto.GuessResponse, error) {
	game, err := s.userGameRepo.GetByIDAndUser(userGameID, userID)
	if err != nil {
		return nil, err
	}
	return buildGuessResponse(game, &game.Match), nil
}

// GetPlayHistory возвращает историю игр пользователя, новые первыми
func (s *GameService) GetPlayHistory(userID uint) ([]dto.PlayHistoryItem, error) {
	games, err := s.userGameRepo.FindAllByUser(userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PlayHistoryItem, len(games))
	for i := range games {
		items[i] = dto.NewPlayHistoryItem(&games[i])
	}
	return items, nil
}

func buildGuessResponse(game *entity.UserGame, match *entity.Match) *dto.GuessResponse {
	outcome := game.Outcome()
	return &dto.GuessResponse{
		UserGameID:         game.ID,
		MatchID:            match.ID,
		MatchTitle:         match.Title(),
		PredictedHomeScore: game.PredictedHomeScore,
		PredictedAwayScore: game.PredictedAwayScore,
		ActualHomeScore:    match.HomeScore,
		ActualAwayScore:    match.AwayScore,
		IsCorrectScore:     game.IsCorrectScore,
		IsCorrectResult:    game.IsCorrectResult,
		GameResult:         outcome,
		ResultMessage:      outcome.Message(),
		Points:             outcome.Points(),
		ActualMatchResult:  match.Result(),
		PlayedAt:           game.PlayedAt,
	}
}
