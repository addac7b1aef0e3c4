package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/stevomusembi/retroscore/internal/domain/entity"
	"github.com/stevomusembi/retroscore/internal/domain/repository"
	apperrors "github.com/stevomusembi/retroscore/internal/pkg/errors"
)

// Раскладка колонок football-data.co.uk: Date=1, HomeTeam=3, AwayTeam=4,
// FTHG=5, FTAG=6, HTHG=8, HTAG=9, HC=18, AC=19, HY=20, AY=21, HR=22, AR=23.
const (
	colDate     = 1
	colHomeTeam = 3
	colAwayTeam = 4
	colHomeGoal = 5
	colAwayGoal = 6
	colHTHome   = 8
	colHTAway   = 9
	colHomeCorn = 18
	colAwayCorn = 19
	colHomeYel  = 20
	colAwayYel  = 21
	colHomeRed  = 22
	colAwayRed  = 23

	minRowLen = 7
)

var importDateLayout = "02/01/2006"

// Лок импорта в Redis: два администратора не должны заливать
// выгрузки одновременно
const (
	importLockKey = "import:lock"
	importLockTTL = 10 * time.Minute
)

// ImportSummary — итог одного импорта сезона
type ImportSummary struct {
	SeasonName string `json:"season_name"`
	TotalRows  int    `json:"total_rows"`
	Imported   int    `json:"imported"`
	Skipped    int    `json:"skipped"`
}

// ImportService загружает исторические матчи из файлов выгрузки.
// Поддерживаются CSV и XLSX.
type ImportService struct {
	matchRepo  repository.MatchRepository
	clubRepo   repository.ClubRepository
	seasonRepo repository.SeasonRepository
	cacheRepo  repository.CacheRepository // может быть nil, лок опционален
}

// NewImportService создает новый сервис импорта данных
func NewImportService(
	matchRepo repository.MatchRepository,
	clubRepo repository.ClubRepository,
	seasonRepo repository.SeasonRepository,
	cacheRepo repository.CacheRepository,
) *ImportService {
	return &ImportService{
		matchRepo:  matchRepo,
		clubRepo:   clubRepo,
		seasonRepo: seasonRepo,
		cacheRepo:  cacheRepo,
	}
}

// ImportCSV импортирует сезон из CSV-файла
func (s *ImportService) ImportCSV(r io.Reader, seasonName string) (*ImportSummary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // строки выгрузок бывают рваными

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse csv: %v", apperrors.ErrValidation, err)
	}
	return s.importRows(rows, seasonName)
}

// ImportXLSX импортирует сезон из первого листа XLSX-файла
func (s *ImportService) ImportXLSX(r io.Reader, seasonName string) (*ImportSummary, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open xlsx: %v", apperrors.ErrValidation, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: xlsx has no sheets", apperrors.ErrValidation)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read xlsx rows: %v", apperrors.ErrValidation, err)
	}
	return s.importRows(rows, seasonName)
}

// importRows создает сезон и матчи из табличных строк.
// Первая строка считается заголовком. Битые строки пропускаются
// с подсчетом, а не валят весь импорт.
func (s *ImportService) importRows(rows [][]string, seasonName string) (*ImportSummary, error) {
	seasonName = strings.TrimSpace(seasonName)
	if seasonName == "" {
		return nil, fmt.Errorf("%w: season name is required", apperrors.ErrValidation)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: file has no data rows", apperrors.ErrValidation)
	}

	release, err := s.acquireLock()
	if err != nil {
		return nil, err
	}
	defer release()

	season, err := s.seasonRepo.GetOrCreateByName(seasonName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve season %q: %w", seasonName, err)
	}

	summary := &ImportSummary{SeasonName: seasonName, TotalRows: len(rows) - 1}
	matches := make([]entity.Match, 0, len(rows)-1)

	for i, row := range rows[1:] {
		match, err := s.matchFromRow(row, season)
		if err != nil {
			summary.Skipped++
			log.Printf("[ImportService] Строка %d пропущена: %v", i+2, err)
			continue
		}
		matches = append(matches, *match)
	}

	if err := s.matchRepo.CreateBatch(matches); err != nil {
		return nil, fmt.Errorf("failed to save imported matches: %w", err)
	}
	summary.Imported = len(matches)

	log.Printf("[ImportService] Импорт сезона %s завершен: imported=%d skipped=%d",
		seasonName, summary.Imported, summary.Skipped)
	return summary, nil
}

// acquireLock берет лок импорта через SetNX. Недоступность Redis не
// блокирует импорт, а конкурентный импорт отклоняется с конфликтом.
func (s *ImportService) acquireLock() (func(), error) {
	if s.cacheRepo == nil {
		return func() {}, nil
	}

	acquired, err := s.cacheRepo.SetNX(importLockKey, 1, importLockTTL)
	if err != nil {
		log.Printf("[ImportService] Лок импорта недоступен, продолжаем без него: %v", err)
		return func() {}, nil
	}
	if !acquired {
		return nil, fmt.Errorf("%w: another import is already in progress", apperrors.ErrConflict)
	}

	return func() {
		if err := s.cacheRepo.Delete(importLockKey); err != nil {
			log.Printf("[ImportService] Не удалось снять лок импорта: %v", err)
		}
	}, nil
}

func (s *ImportService) matchFromRow(row []string, season *entity.Season) (*entity.Match, error) {
	if len(row) < minRowLen {
		return nil, fmt.Errorf("row too short (%d columns)", len(row))
	}
	if cell(row, colHomeTeam) == "" || cell(row, colAwayTeam) == "" {
		return nil, fmt.Errorf("missing team names")
	}

	homeScore, err := requireInt(cell(row, colHomeGoal))
	if err != nil {
		return nil, fmt.Errorf("bad home score: %w", err)
	}
	awayScore, err := requireInt(cell(row, colAwayGoal))
	if err != nil {
		return nil, fmt.Errorf("bad away score: %w", err)
	}

	homeTeam, err := s.clubRepo.GetOrCreateByName(cell(row, colHomeTeam))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home team: %w", err)
	}
	awayTeam, err := s.clubRepo.GetOrCreateByName(cell(row, colAwayTeam))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve away team: %w", err)
	}

	match := &entity.Match{
		SeasonID:   season.ID,
		HomeTeamID: homeTeam.ID,
		AwayTeamID: awayTeam.ID,
		HomeScore:  homeScore,
		AwayScore:  awayScore,

		HalftimeHomeScore: optionalInt(cell(row, colHTHome)),
		HalftimeAwayScore: optionalInt(cell(row, colHTAway)),
		HomeCorners:       optionalInt(cell(row, colHomeCorn)),
		AwayCorners:       optionalInt(cell(row, colAwayCorn)),
		HomeYellowCards:   optionalInt(cell(row, colHomeYel)),
		AwayYellowCards:   optionalInt(cell(row, colAwayYel)),
		HomeRedCards:      optionalInt(cell(row, colHomeRed)),
		AwayRedCards:      optionalInt(cell(row, colAwayRed)),
	}

	if dateStr := cell(row, colDate); dateStr != "" {
		date, err := time.Parse(importDateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("bad match date %q", dateStr)
		}
		match.MatchDate = &date
	}

	return match, nil
}

// cell безопасно достает колонку, обрезая пробелы
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func requireInt(value string) (int, error) {
	if value == "" {
		return 0, fmt.Errorf("empty value")
	}
	return strconv.Atoi(value)
}

// optionalInt возвращает nil для пустых и нечисловых значений:
// дополнительная статистика не обязана присутствовать в выгрузке
func optionalInt(value string) *int {
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}
