package domain

import "errors"

var (
	// ErrSubjectNotFound is returned when the catalog has no subject with the requested ID.
	ErrSubjectNotFound = errors.New("subject not found")
	// ErrNoQuestions indicates the difficulty filter left nothing to play.
	ErrNoQuestions = errors.New("no questions available")
	// ErrUnknownMode indicates a mode other than solo or social.
	ErrUnknownMode = errors.New("unknown game mode")
	// ErrNotPlaying is returned when an in-game action arrives while idle or finished.
	ErrNotPlaying = errors.New("no question in play")
	// ErrAnswerRevealed is returned when the current question was already answered or timed out.
	ErrAnswerRevealed = errors.New("answer already revealed")
	// ErrAnswerNotRevealed is returned when advancing before the current question is resolved.
	ErrAnswerNotRevealed = errors.New("answer not revealed yet")
	// ErrModeMismatch is returned when an action does not belong to the session's mode.
	ErrModeMismatch = errors.New("action not available in this game mode")
	// ErrNoActiveGame is returned when there is no subject to replay.
	ErrNoActiveGame = errors.New("no game has been started")
	// ErrGameNotFinished is returned when results are requested mid-game.
	ErrGameNotFinished = errors.New("game not finished")
	// ErrInvalidSettings wraps settings validation failures.
	ErrInvalidSettings = errors.New("invalid settings")
	// ErrInvalidCatalog wraps question bank validation failures.
	ErrInvalidCatalog = errors.New("invalid catalog")
)
