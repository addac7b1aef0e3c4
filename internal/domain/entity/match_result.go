package entity

import "strings"

// MatchResult — классификация исхода матча
type MatchResult string

const (
	MatchResultHomeWin MatchResult = "HOME_WIN"
	MatchResultAwayWin MatchResult = "AWAY_WIN"
	MatchResultDraw    MatchResult = "DRAW"
)

// MatchResultFromScores классифицирует исход по счету матча
func MatchResultFromScores(homeScore, awayScore int) MatchResult {
	switch {
	case homeScore > awayScore:
		return MatchResultHomeWin
	case homeScore < awayScore:
		return MatchResultAwayWin
	default:
		return MatchResultDraw
	}
}

// ParseMatchResult разбирает строковое представление исхода (регистронезависимо).
// Возвращает false, если значение не распознано.
func ParseMatchResult(value string) (MatchResult, bool) {
	switch MatchResult(strings.ToUpper(strings.TrimSpace(value))) {
	case MatchResultHomeWin:
		return MatchResultHomeWin, true
	case MatchResultAwayWin:
		return MatchResultAwayWin, true
	case MatchResultDraw:
		return MatchResultDraw, true
	default:
		return "", false
	}
}
