package labmodel

import "github.com/pkg/errors"

var (
	ErrUnknownKind   = errors.New("labdb: unknown kind")
	ErrUnknownColumn = errors.New("labdb: unknown column")
	ErrWrongKind     = errors.New("labdb: patch does not match record kind")
)
