package labmodel

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
)

// Kind identifies one of the six record kinds. The tag doubles as the table name.
type Kind string

const (
	KindGateware    Kind = "gateware"
	KindDeviceDB    Kind = "devicedb"
	KindProject     Kind = "project"
	KindPipeline    Kind = "pipeline"
	KindSequence    Kind = "sequence"
	KindMeasurement Kind = "measurement"
)

type ColumnType int

const (
	ColumnInt ColumnType = iota
	ColumnString
	ColumnTime
	ColumnJSON
	ColumnStringList
)

type kindInfo struct {
	parent    Kind
	columns   map[string]ColumnType
	newRecord func() Record
	newPatch  func() Patch
}

var mixinColumns = map[string]ColumnType{
	"id":      ColumnInt,
	"name":    ColumnString,
	"time":    ColumnTime,
	"version": ColumnInt,
}

// allKinds is ordered root first, each kind directly followed by its child.
var allKinds = []Kind{KindGateware, KindDeviceDB, KindProject, KindPipeline, KindSequence, KindMeasurement}

var kinds = map[Kind]kindInfo{
	KindGateware: {
		columns: map[string]ColumnType{
			"path":            ColumnString,
			"filename":        ColumnString,
			"eem_connections": ColumnStringList,
		},
		newRecord: func() Record { return &Gateware{} },
		newPatch:  func() Patch { return &GatewarePatch{} },
	},
	KindDeviceDB: {
		parent: KindGateware,
		columns: map[string]ColumnType{
			"path":        ColumnString,
			"filename":    ColumnString,
			"gateware_id": ColumnInt,
		},
		newRecord: func() Record { return &DeviceDB{} },
		newPatch:  func() Patch { return &DeviceDBPatch{} },
	},
	KindProject: {
		parent: KindDeviceDB,
		columns: map[string]ColumnType{
			"description": ColumnString,
			"devicedb_id": ColumnInt,
		},
		newRecord: func() Record { return &Project{} },
		newPatch:  func() Patch { return &ProjectPatch{} },
	},
	KindPipeline: {
		parent: KindProject,
		columns: map[string]ColumnType{
			"description": ColumnString,
			"ordering":    ColumnJSON,
			"project_id":  ColumnInt,
		},
		newRecord: func() Record { return &Pipeline{} },
		newPatch:  func() Patch { return &PipelinePatch{} },
	},
	KindSequence: {
		parent: KindPipeline,
		columns: map[string]ColumnType{
			"path":        ColumnString,
			"filename":    ColumnString,
			"description": ColumnString,
			"params":      ColumnJSON,
			"pipeline_id": ColumnInt,
		},
		newRecord: func() Record { return &Sequence{} },
		newPatch:  func() Patch { return &SequencePatch{} },
	},
	KindMeasurement: {
		parent: KindSequence,
		columns: map[string]ColumnType{
			"path_csv":      ColumnString,
			"filename_csv":  ColumnString,
			"path_jpg":      ColumnString,
			"filename_jpg":  ColumnString,
			"path_hdf5":     ColumnString,
			"filename_hdf5": ColumnString,
			"sequence_id":   ColumnInt,
		},
		newRecord: func() Record { return &Measurement{} },
		newPatch:  func() Patch { return &MeasurementPatch{} },
	},
}

// ParseKind resolves a kind tag such as "project".
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", errors.Wrapf(ErrUnknownKind, "%q", s)
	}

	return k, nil
}

// AllKinds returns the kinds from the root down.
func AllKinds() []Kind {
	return append([]Kind(nil), allKinds...)
}

func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

func (k Kind) String() string {
	return string(k)
}

func (k Kind) Table() string {
	return string(k)
}

// Parent returns the parent kind. ok is false for gateware.
func (k Kind) Parent() (parent Kind, ok bool) {
	parent = kinds[k].parent
	return parent, parent != ""
}

// ParentColumn returns the column holding the parent id, "" for gateware.
func (k Kind) ParentColumn() string {
	parent, ok := k.Parent()
	if !ok {
		return ""
	}

	return string(parent) + "_id"
}

func (k Kind) Children() []Kind {
	var children []Kind
	for _, kind := range allKinds {
		if kinds[kind].parent == k {
			children = append(children, kind)
		}
	}

	return children
}

// Columns returns every column of the kind, the mixin columns included.
func (k Kind) Columns() map[string]ColumnType {
	columns := make(map[string]ColumnType, len(mixinColumns)+len(kinds[k].columns))
	for name, t := range mixinColumns {
		columns[name] = t
	}

	for name, t := range kinds[k].columns {
		columns[name] = t
	}

	return columns
}

func (k Kind) HasColumn(column string) bool {
	if _, ok := mixinColumns[column]; ok {
		return true
	}

	_, ok := kinds[k].columns[column]
	return ok
}

// New allocates an empty record of the kind, nil for an invalid kind.
func (k Kind) New() Record {
	info, ok := kinds[k]
	if !ok {
		return nil
	}

	return info.newRecord()
}

// NewPatch allocates an empty patch of the kind, nil for an invalid kind.
func (k Kind) NewPatch() Patch {
	info, ok := kinds[k]
	if !ok {
		return nil
	}

	return info.newPatch()
}

// ParseColumnValue converts the textual form of a column value, as given on a
// command line or in a query string, into a value usable as a search filter.
func (k Kind) ParseColumnValue(column, raw string) (interface{}, error) {
	t, ok := k.Columns()[column]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownColumn, "%s.%s", k, column)
	}

	switch t {
	case ColumnInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "column %s.%s expects an integer", k, column)
		}
		return v, nil

	case ColumnTime:
		v, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, errors.Wrapf(err, "column %s.%s expects an RFC 3339 time", k, column)
		}
		return v, nil

	case ColumnJSON:
		if !json.Valid([]byte(raw)) {
			return nil, errors.Errorf("column %s.%s expects a JSON document", k, column)
		}
		return datatypes.JSON(raw), nil

	case ColumnStringList:
		var v datatypes.JSONSlice[string]
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, errors.Wrapf(err, "column %s.%s expects a JSON list of strings", k, column)
		}
		return v, nil

	default:
		return raw, nil
	}
}
