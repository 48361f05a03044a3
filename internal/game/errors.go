package game

import "errors"

// Rejection reasons. A rejected action leaves the match untouched; the
// transport layer forwards the reason to the offending client and moves on.
var (
	ErrNotInLobby      = errors.New("room is not in the lobby")
	ErrRoomFull        = errors.New("room is full")
	ErrNotPlaying      = errors.New("no game in progress")
	ErrOutOfTurn       = errors.New("not your turn")
	ErrCardNotInHand   = errors.New("card is not in your hand")
	ErrCardNotPlayable = errors.New("card cannot be played now")
	ErrAwaitingColor   = errors.New("waiting for a color pick")
	ErrNoWildOnTop     = errors.New("top card is not an unresolved wild")
	ErrNeedPlayers     = errors.New("need at least two players")
	ErrNotAllReady     = errors.New("not all players are ready")
	ErrUnknownPlayer   = errors.New("player is not seated in this room")
	ErrStaleVersion    = errors.New("match version has moved on")
	ErrNotBotTurn      = errors.New("current player is not a bot")
)
