package errors

import "errors"

var (
	ErrConfiguration   = errors.New("invalid configuration")
	ErrIllegalMove     = errors.New("illegal move")
	ErrNoLegalMoves    = errors.New("no legal moves")
	ErrSearchCancelled = errors.New("search cancelled")
	ErrInternal        = errors.New("internal error")
)
