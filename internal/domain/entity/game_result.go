package entity

// GameResult — итог одной сыгранной попытки
type GameResult string

const (
	GameResultExactScore    GameResult = "EXACT_SCORE"
	GameResultCorrectResult GameResult = "CORRECT_RESULT"
	GameResultIncorrect     GameResult = "INCORRECT"
	GameResultTimeUp        GameResult = "TIMEUP"
)

// Таблица начисления очков фиксирована: точный счет 3, верный исход 1,
// остальное 0. Очки нигде не хранятся, только выводятся из итога.
var gameResultPoints = map[GameResult]int{
	GameResultExactScore:    3,
	GameResultCorrectResult: 1,
	GameResultIncorrect:     0,
	GameResultTimeUp:        0,
}

var gameResultMessages = map[GameResult]string{
	GameResultExactScore:    "Perfect! Exact score!",
	GameResultCorrectResult: "Good! Correct result",
	GameResultIncorrect:     "Wrong guess, try again!",
	GameResultTimeUp:        "Time's up! No points awarded",
}

// Points возвращает количество очков за итог
func (g GameResult) Points() int {
	return gameResultPoints[g]
}

// Message возвращает фиксированное сообщение для клиента
func (g GameResult) Message() string {
	return gameResultMessages[g]
}
