package grading

import "errors"

// Contract errors. These indicate a caller bug (bad enum value, wrong form
// size) and are returned, unlike document failures which only lower the score.
var (
	ErrUnknownLevel = errors.New("unknown achievement level")
	ErrSemesterSize = errors.New("semester must list exactly 8 competencies")
)
