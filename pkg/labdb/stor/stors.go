package stor

import (
	"github.com/materials-commons/labdb/pkg/labdb/labmodel"
)

// Filters maps column names to the values they must equal. A nil value, or a
// value whose SQL form is NULL, matches NULL columns.
type Filters map[string]interface{}

// ObjectStor is the kind polymorphic access layer over the catalog.
type ObjectStor interface {
	// Search returns the rows of kind matching every filter, ordered by id.
	// No match is an empty result, not an error.
	Search(kind labmodel.Kind, filters Filters) ([]labmodel.Record, error)

	// GetByID returns the single row of kind with id. It fails with
	// ErrNotFound or ErrMultipleMatches.
	GetByID(kind labmodel.Kind, id int) (labmodel.Record, error)

	// Add stores a new row. A missing parent or, unless allowDuplicates is
	// set, an identical existing row is reported through AddResult.Condition
	// and not as an error.
	Add(record labmodel.Record, allowDuplicates bool) (AddResult, error)

	// Update applies patch to the row, bumps its version by one and, when
	// bumpTime is set, refreshes its time.
	Update(kind labmodel.Kind, id int, patch labmodel.Patch, bumpTime bool) (labmodel.Record, error)

	// Delete removes the row and everything beneath it.
	Delete(kind labmodel.Kind, id int) error

	ProjectSequenceCounts() ([]ProjectSequenceCount, error)
	SequenceMeasurementCounts(projectID int) ([]SequenceMeasurementCount, error)
}

// NoID is the id reported by Add when nothing was stored.
const NoID = 0

type Condition int

const (
	Added Condition = iota
	DanglingReference
	DuplicateDetected
)

func (c Condition) String() string {
	switch c {
	case Added:
		return "added"
	case DanglingReference:
		return "dangling reference"
	case DuplicateDetected:
		return "duplicate detected"
	default:
		return "unknown"
	}
}

// AddResult is the outcome of ObjectStor.Add. ID is NoID unless Condition
// is Added.
type AddResult struct {
	ID        int       `json:"id"`
	Condition Condition `json:"-"`
}

func (r AddResult) Added() bool {
	return r.Condition == Added
}

// ProjectSequenceCount is one row of the project summary. Projects without
// sequences have a SequenceCount of 0.
type ProjectSequenceCount struct {
	ProjectID     int    `gorm:"column:project_id"`
	ProjectName   string `gorm:"column:project_name"`
	Description   string `gorm:"column:description"`
	DeviceDBName  string `gorm:"column:devicedb_name"`
	GatewareName  string `gorm:"column:gateware_name"`
	SequenceCount int64  `gorm:"column:sequence_count"`
}

// SequenceMeasurementCount is one sequence of a project with the number of
// measurements taken with it.
type SequenceMeasurementCount struct {
	SequenceID       int    `gorm:"column:sequence_id"`
	SequenceName     string `gorm:"column:sequence_name"`
	MeasurementCount int64  `gorm:"column:measurement_count"`
}
