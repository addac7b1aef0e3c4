package repository

import "errors"

var (
	// ErrAlreadyPlayed означает, что пара (user, match) уже сыграна.
	// Возвращается хранилищем попыток при нарушении уникального индекса,
	// это авторитетная защита от повторной игры при гонке запросов.
	ErrAlreadyPlayed = errors.New("user has already played this match")
)
