package service

import "errors"

// Игровые ошибки уровня сервисов
var (
	// ErrNoMatchesFound — после фильтрации пул кандидатов пуст.
	// Это не "плохой запрос": данных для переданных фильтров просто нет.
	ErrNoMatchesFound = errors.New("no matches found for the given filters")

	// ErrInvalidGuess — прогноз без обязательных полей счета вне
	// easy-режима и таймаута.
	ErrInvalidGuess = errors.New("invalid guess submission")
)
