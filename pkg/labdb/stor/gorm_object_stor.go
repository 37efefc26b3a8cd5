package stor

import (
	"database/sql/driver"
	"fmt"
	"sort"
	"time"

	"github.com/apex/log"
	"github.com/materials-commons/labdb/pkg/labdb/labmodel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type GormObjectStor struct {
	db *gorm.DB
}

// NewGormObjectStor returns a store issuing its queries on db, which is
// normally a transaction handed out by WithTx.
func NewGormObjectStor(db *gorm.DB) *GormObjectStor {
	return &GormObjectStor{db: db}
}

type finder func(query *gorm.DB) ([]labmodel.Record, error)

var finders = map[labmodel.Kind]finder{
	labmodel.KindGateware:    findAll[labmodel.Gateware, *labmodel.Gateware],
	labmodel.KindDeviceDB:    findAll[labmodel.DeviceDB, *labmodel.DeviceDB],
	labmodel.KindProject:     findAll[labmodel.Project, *labmodel.Project],
	labmodel.KindPipeline:    findAll[labmodel.Pipeline, *labmodel.Pipeline],
	labmodel.KindSequence:    findAll[labmodel.Sequence, *labmodel.Sequence],
	labmodel.KindMeasurement: findAll[labmodel.Measurement, *labmodel.Measurement],
}

func findAll[T any, PT interface {
	*T
	labmodel.Record
}](query *gorm.DB) ([]labmodel.Record, error) {
	var rows []T
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]labmodel.Record, len(rows))
	for i := range rows {
		records[i] = PT(&rows[i])
	}

	return records, nil
}

func (s *GormObjectStor) Search(kind labmodel.Kind, filters Filters) ([]labmodel.Record, error) {
	find, ok := finders[kind]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownKind, "%q", kind)
	}

	query, err := applyFilters(s.db, kind, filters)
	if err != nil {
		return nil, err
	}

	records, err := find(query.Order("id"))
	if err != nil {
		return nil, errors.Wrapf(err, "searching %s", kind)
	}

	return records, nil
}

func applyFilters(query *gorm.DB, kind labmodel.Kind, filters Filters) (*gorm.DB, error) {
	columns := make([]string, 0, len(filters))
	for column := range filters {
		if !kind.HasColumn(column) {
			return nil, errors.Wrapf(ErrUnknownColumn, "%s.%s", kind, column)
		}
		columns = append(columns, column)
	}

	// Sorted so the same filters always produce the same SQL.
	sort.Strings(columns)

	for _, column := range columns {
		value := filters[column]
		if isNull(value) {
			query = query.Where(fmt.Sprintf("%s IS NULL", column))
		} else {
			query = query.Where(fmt.Sprintf("%s = ?", column), value)
		}
	}

	return query, nil
}

func isNull(value interface{}) bool {
	if value == nil {
		return true
	}

	valuer, ok := value.(driver.Valuer)
	if !ok {
		return false
	}

	v, err := valuer.Value()
	return err == nil && v == nil
}

func (s *GormObjectStor) GetByID(kind labmodel.Kind, id int) (labmodel.Record, error) {
	records, err := s.Search(kind, Filters{"id": id})
	if err != nil {
		return nil, err
	}

	switch len(records) {
	case 0:
		return nil, errors.Wrapf(ErrNotFound, "%s %d", kind, id)
	case 1:
		return records[0], nil
	default:
		return nil, errors.Wrapf(ErrMultipleMatches, "%d rows of %s with id %d", len(records), kind, id)
	}
}

func (s *GormObjectStor) Add(record labmodel.Record, allowDuplicates bool) (AddResult, error) {
	kind := record.Kind()

	if parentID := record.ParentID(); parentID != 0 {
		parentKind, _ := kind.Parent()
		parents, err := s.Search(parentKind, Filters{"id": parentID})
		if err != nil {
			return AddResult{}, err
		}

		if len(parents) == 0 {
			log.WithFields(log.Fields{"kind": kind, "parent_kind": parentKind, "parent_id": parentID}).
				Warnf("%s linked to undefined %s with id %d", kind, parentKind, parentID)
			return AddResult{ID: NoID, Condition: DanglingReference}, nil
		}
	}

	if !allowDuplicates {
		probe := Filters(record.Attributes())
		probe["version"] = 1
		duplicates, err := s.Search(kind, probe)
		if err != nil {
			return AddResult{}, err
		}

		if len(duplicates) > 0 {
			log.WithFields(log.Fields{"kind": kind, "existing_id": duplicates[0].Base().ID}).
				Warnf("duplicate %s detected; object not added", kind)
			return AddResult{ID: NoID, Condition: DuplicateDetected}, nil
		}
	}

	base := record.Base()
	base.ID = 0
	base.Version = 1
	base.Time = time.Now().UTC()

	if err := s.db.Create(record).Error; err != nil {
		return AddResult{}, errors.Wrapf(err, "adding %s", kind)
	}

	// Read the row back rather than trusting the in-memory id.
	added, err := s.GetByID(kind, base.ID)
	if err != nil {
		return AddResult{}, errors.Wrapf(err, "reading back added %s", kind)
	}

	return AddResult{ID: added.Base().ID, Condition: Added}, nil
}

// Update does not check a changed parent id against the parent table, nor
// look for duplicates, unlike Add.
func (s *GormObjectStor) Update(kind labmodel.Kind, id int, patch labmodel.Patch, bumpTime bool) (labmodel.Record, error) {
	record, err := s.GetByID(kind, id)
	if err != nil {
		return nil, err
	}

	if patch != nil {
		if patch.Kind() != kind {
			return nil, errors.Wrapf(ErrWrongKind, "%s patch for %s", patch.Kind(), kind)
		}

		if err := patch.Apply(record); err != nil {
			return nil, err
		}
	}

	base := record.Base()
	base.Version++
	if bumpTime {
		base.Time = time.Now().UTC()
	}

	if err := s.db.Save(record).Error; err != nil {
		return nil, errors.Wrapf(err, "updating %s %d", kind, id)
	}

	return record, nil
}

func (s *GormObjectStor) Delete(kind labmodel.Kind, id int) error {
	record, err := s.GetByID(kind, id)
	if err != nil {
		return err
	}

	if err := s.deleteDescendants(kind, []int{id}); err != nil {
		return err
	}

	if err := s.db.Delete(record).Error; err != nil {
		return errors.Wrapf(err, "deleting %s %d", kind, id)
	}

	return nil
}

// deleteDescendants removes, bottom up, every row below the given rows of kind.
func (s *GormObjectStor) deleteDescendants(kind labmodel.Kind, ids []int) error {
	for _, child := range kind.Children() {
		var childIDs []int
		err := s.db.Model(child.New()).
			Where(fmt.Sprintf("%s IN ?", child.ParentColumn()), ids).
			Pluck("id", &childIDs).Error
		if err != nil {
			return errors.Wrapf(err, "finding %s children of %s", child, kind)
		}

		if len(childIDs) == 0 {
			continue
		}

		if err := s.deleteDescendants(child, childIDs); err != nil {
			return err
		}

		if err := s.db.Where("id IN ?", childIDs).Delete(child.New()).Error; err != nil {
			return errors.Wrapf(err, "deleting %s children of %s", child, kind)
		}
	}

	return nil
}

// Find is Search returning concrete types, eg Find[labmodel.Project](s, nil).
func Find[T any, PT interface {
	*T
	labmodel.Record
}](s ObjectStor, filters Filters) ([]PT, error) {
	var zero T
	kind := PT(&zero).Kind()

	records, err := s.Search(kind, filters)
	if err != nil {
		return nil, err
	}

	results := make([]PT, 0, len(records))
	for _, record := range records {
		typed, ok := record.(PT)
		if !ok {
			return nil, errors.Wrapf(ErrWrongKind, "search for %s returned %s", kind, record.Kind())
		}
		results = append(results, typed)
	}

	return results, nil
}
