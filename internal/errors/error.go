package errors

import "errors"

var (
	ErrUserNotFound     = errors.New("user with provided username was not found")
	ErrWrongPassword    = errors.New("wrong password")
	ErrSessionNotFound  = errors.New("session was not found")
	ErrCreateGameFailed = errors.New("create game failed")
	ErrJoinGameFailed   = errors.New("join game failed")
	ErrGameNotFound     = errors.New("game not found")
	ErrGameNotActive    = errors.New("game is not active")
	ErrIllegalMove      = errors.New("move violates the board rules")
	ErrNotYourTurn      = errors.New("it is the other player's turn")
	ErrUserExists       = errors.New("user already exists")
	ErrInternal         = errors.New("internal error")
)
