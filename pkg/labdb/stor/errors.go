package stor

import (
	"github.com/materials-commons/labdb/pkg/labdb/labmodel"
	"github.com/pkg/errors"
)

var (
	ErrNotFound        = errors.New("labdb: no record found")
	ErrMultipleMatches = errors.New("labdb: more than one record matched")

	ErrUnknownKind   = labmodel.ErrUnknownKind
	ErrUnknownColumn = labmodel.ErrUnknownColumn
	ErrWrongKind     = labmodel.ErrWrongKind
)
