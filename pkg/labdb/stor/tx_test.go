package stor

import (
	"testing"

	"github.com/materials-commons/labdb/pkg/labdb/labmodel"
	"github.com/materials-commons/labdb/pkg/tutil"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestWithObjectStorCommits(t *testing.T) {
	db := tutil.NewTestDB(t)

	var id int
	err := WithObjectStor(db, func(s ObjectStor) error {
		result, err := s.Add(&labmodel.Gateware{Mixin: labmodel.Mixin{Name: "g"}}, false)
		id = result.ID
		return err
	})
	require.NoError(t, err)

	record, err := NewGormObjectStor(db).GetByID(labmodel.KindGateware, id)
	require.NoError(t, err)
	require.Equal(t, "g", record.Base().Name)
}

func TestWithObjectStorRollsBackOnError(t *testing.T) {
	db := tutil.NewTestDB(t)
	errFailed := errors.New("failed")

	err := WithObjectStor(db, func(s ObjectStor) error {
		if _, err := s.Add(&labmodel.Gateware{Mixin: labmodel.Mixin{Name: "g"}}, false); err != nil {
			return err
		}
		return errFailed
	})
	require.True(t, errors.Is(err, errFailed))
	require.EqualValues(t, 0, countRows(t, db, labmodel.KindGateware))
}

func TestWithObjectStorRollsBackOnPanic(t *testing.T) {
	db := tutil.NewTestDB(t)

	require.Panics(t, func() {
		_ = WithObjectStor(db, func(s ObjectStor) error {
			if _, err := s.Add(&labmodel.Gateware{Mixin: labmodel.Mixin{Name: "g"}}, false); err != nil {
				return err
			}
			panic("boom")
		})
	})

	require.EqualValues(t, 0, countRows(t, db, labmodel.KindGateware))

	// The connection must be usable again after the rollback.
	err := WithObjectStor(db, func(s ObjectStor) error {
		_, err := s.Add(&labmodel.Gateware{Mixin: labmodel.Mixin{Name: "h"}}, false)
		return err
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, countRows(t, db, labmodel.KindGateware))
}

func TestDeleteInsideFailedScopeKeepsRows(t *testing.T) {
	db := tutil.NewTestDB(t)
	c := addChain(t, NewGormObjectStor(db), "tx")

	err := WithObjectStor(db, func(s ObjectStor) error {
		if err := s.Delete(labmodel.KindGateware, c.gatewareID); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	for _, kind := range labmodel.AllKinds() {
		require.EqualValuesf(t, 1, countRows(t, db, kind), "kind %s", kind)
	}
}
