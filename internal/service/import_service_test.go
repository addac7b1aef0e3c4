package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stevomusembi/retroscore/internal/domain/entity"
	apperrors "github.com/stevomusembi/retroscore/internal/pkg/errors"
)

// MockClubRepository реализует repository.ClubRepository
type MockClubRepository struct {
	mock.Mock
}

func (m *MockClubRepository) List() ([]entity.FootballClub, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.FootballClub), args.Error(1)
}

func (m *MockClubRepository) GetByID(id uint) (*entity.FootballClub, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FootballClub), args.Error(1)
}

func (m *MockClubRepository) GetOrCreateByName(name string) (*entity.FootballClub, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FootballClub), args.Error(1)
}

// MockSeasonRepository реализует repository.SeasonRepository
type MockSeasonRepository struct {
	mock.Mock
}

func (m *MockSeasonRepository) List() ([]entity.Season, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Season), args.Error(1)
}

func (m *MockSeasonRepository) GetByID(id uint) (*entity.Season, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Season), args.Error(1)
}

func (m *MockSeasonRepository) GetOrCreateByName(name string) (*entity.Season, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Season), args.Error(1)
}

// Заголовок и строки в раскладке выгрузки football-data.co.uk
const importHeader = "Div,Date,Time,HomeTeam,AwayTeam,FTHG,FTAG,FTR,HTHG,HTAG,Referee,HS,AS,HST,AST,HF,AF,HO,HC,AC,HY,AY,HR,AR"

func newTestImportService() (*ImportService, *MockMatchRepository, *MockClubRepository, *MockSeasonRepository) {
	matchRepo := new(MockMatchRepository)
	clubRepo := new(MockClubRepository)
	seasonRepo := new(MockSeasonRepository)
	return NewImportService(matchRepo, clubRepo, seasonRepo, nil), matchRepo, clubRepo, seasonRepo
}

func TestImportCSV_HappyPath(t *testing.T) {
	svc, matchRepo, clubRepo, seasonRepo := newTestImportService()

	csvData := importHeader + "\n" +
		"E0,08/08/2015,15:00,Arsenal,Chelsea,2,1,H,1,0,M Dean,10,8,5,3,12,10,4,6,5,2,1,0,0\n" +
		"E0,09/08/2015,17:30,Everton,Watford,2,2,D,0,1,K Friend,9,7,4,2,11,9,3,4,7,1,2,0,1\n"

	seasonRepo.On("GetOrCreateByName", "2015/2016").Return(&entity.Season{ID: 3, Name: "2015/2016"}, nil)
	clubRepo.On("GetOrCreateByName", "Arsenal").Return(&entity.FootballClub{ID: 10, Name: "Arsenal"}, nil)
	clubRepo.On("GetOrCreateByName", "Chelsea").Return(&entity.FootballClub{ID: 20, Name: "Chelsea"}, nil)
	clubRepo.On("GetOrCreateByName", "Everton").Return(&entity.FootballClub{ID: 30, Name: "Everton"}, nil)
	clubRepo.On("GetOrCreateByName", "Watford").Return(&entity.FootballClub{ID: 40, Name: "Watford"}, nil)

	matchRepo.On("CreateBatch", mock.MatchedBy(func(matches []entity.Match) bool {
		if len(matches) != 2 {
			return false
		}
		first := matches[0]
		return first.SeasonID == 3 &&
			first.HomeTeamID == 10 && first.AwayTeamID == 20 &&
			first.HomeScore == 2 && first.AwayScore == 1 &&
			first.HalftimeHomeScore != nil && *first.HalftimeHomeScore == 1 &&
			first.HomeCorners != nil && *first.HomeCorners == 6 &&
			first.HomeYellowCards != nil && *first.HomeYellowCards == 2 &&
			first.MatchDate != nil && first.MatchDate.Day() == 8
	})).Return(nil)

	summary, err := svc.ImportCSV(strings.NewReader(csvData), "2015/2016")

	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalRows)
	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, "2015/2016", summary.SeasonName)
}

func TestImportCSV_SkipsBrokenRows(t *testing.T) {
	svc, matchRepo, clubRepo, seasonRepo := newTestImportService()

	// Вторая строка без счета, третья слишком короткая
	csvData := importHeader + "\n" +
		"E0,08/08/2015,15:00,Arsenal,Chelsea,2,1,H\n" +
		"E0,09/08/2015,17:30,Everton,Watford,,,D\n" +
		"E0,bad\n"

	seasonRepo.On("GetOrCreateByName", "2015/2016").Return(&entity.Season{ID: 3, Name: "2015/2016"}, nil)
	clubRepo.On("GetOrCreateByName", "Arsenal").Return(&entity.FootballClub{ID: 10}, nil)
	clubRepo.On("GetOrCreateByName", "Chelsea").Return(&entity.FootballClub{ID: 20}, nil)
	matchRepo.On("CreateBatch", mock.MatchedBy(func(matches []entity.Match) bool {
		return len(matches) == 1
	})).Return(nil)

	summary, err := svc.ImportCSV(strings.NewReader(csvData), "2015/2016")

	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalRows)
	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 2, summary.Skipped)
}

func TestImportCSV_RejectsConcurrentImport(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	clubRepo := new(MockClubRepository)
	seasonRepo := new(MockSeasonRepository)
	cacheRepo := new(MockCacheRepository)
	svc := NewImportService(matchRepo, clubRepo, seasonRepo, cacheRepo)

	// Лок уже удерживается другим импортом
	cacheRepo.On("SetNX", "import:lock", 1, 10*time.Minute).Return(false, nil)

	csvData := importHeader + "\n" +
		"E0,08/08/2015,15:00,Arsenal,Chelsea,2,1,H\n"

	_, err := svc.ImportCSV(strings.NewReader(csvData), "2015/2016")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	seasonRepo.AssertNotCalled(t, "GetOrCreateByName", mock.Anything)
	matchRepo.AssertNotCalled(t, "CreateBatch", mock.Anything)
}

func TestImportCSV_ReleasesLock(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	clubRepo := new(MockClubRepository)
	seasonRepo := new(MockSeasonRepository)
	cacheRepo := new(MockCacheRepository)
	svc := NewImportService(matchRepo, clubRepo, seasonRepo, cacheRepo)

	cacheRepo.On("SetNX", "import:lock", 1, 10*time.Minute).Return(true, nil)
	cacheRepo.On("Delete", "import:lock").Return(nil)

	seasonRepo.On("GetOrCreateByName", "2015/2016").Return(&entity.Season{ID: 3, Name: "2015/2016"}, nil)
	clubRepo.On("GetOrCreateByName", "Arsenal").Return(&entity.FootballClub{ID: 10}, nil)
	clubRepo.On("GetOrCreateByName", "Chelsea").Return(&entity.FootballClub{ID: 20}, nil)
	matchRepo.On("CreateBatch", mock.Anything).Return(nil)

	csvData := importHeader + "\n" +
		"E0,08/08/2015,15:00,Arsenal,Chelsea,2,1,H\n"

	_, err := svc.ImportCSV(strings.NewReader(csvData), "2015/2016")

	require.NoError(t, err)
	cacheRepo.AssertCalled(t, "Delete", "import:lock")
}

func TestImportCSV_RequiresSeasonName(t *testing.T) {
	svc, _, _, _ := newTestImportService()

	_, err := svc.ImportCSV(strings.NewReader(importHeader+"\n"), "   ")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestImportCSV_RequiresDataRows(t *testing.T) {
	svc, _, _, _ := newTestImportService()

	_, err := svc.ImportCSV(strings.NewReader(importHeader+"\n"), "2015/2016")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMatchFromRow_OptionalStats(t *testing.T) {
	svc, _, clubRepo, _ := newTestImportService()

	clubRepo.On("GetOrCreateByName", "Arsenal").Return(&entity.FootballClub{ID: 10}, nil)
	clubRepo.On("GetOrCreateByName", "Chelsea").Return(&entity.FootballClub{ID: 20}, nil)

	// Короткая строка: только обязательные колонки
	row := []string{"E0", "08/08/2015", "15:00", "Arsenal", "Chelsea", "2", "1", "H"}
	match, err := svc.matchFromRow(row, &entity.Season{ID: 3})

	require.NoError(t, err)
	assert.Equal(t, 2, match.HomeScore)
	assert.Nil(t, match.HalftimeHomeScore)
	assert.Nil(t, match.HomeCorners)
	assert.Nil(t, match.HomeRedCards)
	require.NotNil(t, match.MatchDate)
	assert.Equal(t, 2015, match.MatchDate.Year())
}

func TestMatchFromRow_BadDate(t *testing.T) {
	svc, _, clubRepo, _ := newTestImportService()

	clubRepo.On("GetOrCreateByName", "Arsenal").Return(&entity.FootballClub{ID: 10}, nil)
	clubRepo.On("GetOrCreateByName", "Chelsea").Return(&entity.FootballClub{ID: 20}, nil)

	row := []string{"E0", "2015-08-08", "15:00", "Arsenal", "Chelsea", "2", "1", "H"}
	_, err := svc.matchFromRow(row, &entity.Season{ID: 3})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad match date")
}
