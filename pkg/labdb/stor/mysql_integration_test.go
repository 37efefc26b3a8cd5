package stor

import (
	"testing"

	"github.com/materials-commons/labdb/pkg/config"
	"github.com/materials-commons/labdb/pkg/labdb"
	"github.com/materials-commons/labdb/pkg/labdb/labmodel"
	"github.com/materials-commons/labdb/pkg/tutil"
	"github.com/stretchr/testify/require"
)

// Runs against the mysql server named by the DB_* variables. The tables are
// dropped and recreated.
func TestMysqlObjectStor(t *testing.T) {
	if !tutil.IsIntegrationTest() {
		t.Skip("set LABDB_TEST=integration to run against mysql")
	}

	opts := labdb.OptionsFromConfig(config.NewDotenvConfig(""))
	opts.Driver = labdb.DriverMysql

	db, err := labdb.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = labdb.Close(db) })
	require.NoError(t, labdb.ClearDatabase(db))

	err = WithObjectStor(db, func(s ObjectStor) error {
		c := addChain(t, s, "mysql")

		result, err := s.Add(&labmodel.Project{Mixin: labmodel.Mixin{Name: "mysql-project"},
			Description: "ion trap", DeviceDBID: c.deviceDBID}, false)
		require.NoError(t, err)
		require.Equal(t, DuplicateDetected, result.Condition)

		counts, err := s.ProjectSequenceCounts()
		require.NoError(t, err)
		require.Len(t, counts, 1)
		require.EqualValues(t, 1, counts[0].SequenceCount)

		return s.Delete(labmodel.KindGateware, c.gatewareID)
	})
	require.NoError(t, err)

	for _, kind := range labmodel.AllKinds() {
		require.EqualValues(t, 0, countRows(t, db, kind))
	}
}
