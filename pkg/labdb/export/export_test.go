package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/materials-commons/labdb/pkg/labdb/labmodel"
	"github.com/materials-commons/labdb/pkg/labdb/stor"
	"github.com/materials-commons/labdb/pkg/tutil"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newTestStor(t *testing.T) stor.ObjectStor {
	return stor.NewGormObjectStor(tutil.NewTestDB(t))
}

func add(t *testing.T, s stor.ObjectStor, record labmodel.Record) int {
	t.Helper()
	result, err := s.Add(record, true)
	require.NoError(t, err)
	require.Truef(t, result.Added(), "adding %s: %s", record.Kind(), result.Condition)
	return result.ID
}

// populate builds one gateware chain ending in two measurements, and returns
// the project id.
func populate(t *testing.T, s stor.ObjectStor) int {
	gatewareID := add(t, s, &labmodel.Gateware{
		Mixin:          labmodel.Mixin{Name: "kasli"},
		EEMConnections: datatypes.JSONSlice[string]{"ttl0"},
	})
	deviceDBID := add(t, s, &labmodel.DeviceDB{Mixin: labmodel.Mixin{Name: "ddb"}, GatewareID: gatewareID})
	projectID := add(t, s, &labmodel.Project{Mixin: labmodel.Mixin{Name: "trap"}, Description: "ion trap", DeviceDBID: deviceDBID})
	pipelineID := add(t, s, &labmodel.Pipeline{Mixin: labmodel.Mixin{Name: "cal"}, ProjectID: projectID})
	sequenceID := add(t, s, &labmodel.Sequence{Mixin: labmodel.Mixin{Name: "rabi"}, PipelineID: pipelineID})
	add(t, s, &labmodel.Measurement{Mixin: labmodel.Mixin{Name: "m1"}, FilenameCSV: "m1.csv", SequenceID: sequenceID})
	add(t, s, &labmodel.Measurement{Mixin: labmodel.Mixin{Name: "m2"}, FilenameCSV: "m2.csv", SequenceID: sequenceID})
	return projectID
}

func TestExportTree(t *testing.T) {
	s := newTestStor(t)
	populate(t, s)

	tree, err := ExportTree(s)
	require.NoError(t, err)
	require.Len(t, tree.Gateware, 1)

	g := tree.Gateware[0]
	require.Equal(t, "kasli", g.Name)
	require.NotNil(t, g.DeviceDB)
	require.Equal(t, "ddb", g.DeviceDB.Name)
	require.Len(t, g.DeviceDB.Projects, 1)
	require.Len(t, g.DeviceDB.Projects[0].Pipelines, 1)
	require.Len(t, g.DeviceDB.Projects[0].Pipelines[0].Sequences, 1)

	measurements := g.DeviceDB.Projects[0].Pipelines[0].Sequences[0].Measurements
	require.Len(t, measurements, 2)
	require.Equal(t, "m1", measurements[0].Name)
	require.Equal(t, "m2", measurements[1].Name)
}

func TestExportTreeJSONLayout(t *testing.T) {
	s := newTestStor(t)
	populate(t, s)

	tree, err := ExportTree(s)
	require.NoError(t, err)

	b, err := json.Marshal(tree)
	require.NoError(t, err)

	var doc struct {
		Gateware []struct {
			Name           string   `json:"name"`
			Version        int      `json:"version"`
			EEMConnections []string `json:"eem_connections"`
			DeviceDB       struct {
				GatewareID int `json:"gateware_id"`
				Projects   []struct {
					Description string `json:"description"`
					Pipelines   []struct {
						Sequences []struct {
							Measurements []map[string]interface{} `json:"measurements"`
						} `json:"sequences"`
					} `json:"pipelines"`
				} `json:"projects"`
			} `json:"devicedb"`
		} `json:"gateware"`
	}
	require.NoError(t, json.Unmarshal(b, &doc))

	g := doc.Gateware[0]
	require.Equal(t, "kasli", g.Name)
	require.Equal(t, 1, g.Version)
	require.Equal(t, []string{"ttl0"}, g.EEMConnections)
	require.Equal(t, 1, g.DeviceDB.GatewareID)
	require.Equal(t, "ion trap", g.DeviceDB.Projects[0].Description)

	measurements := g.DeviceDB.Projects[0].Pipelines[0].Sequences[0].Measurements
	require.Len(t, measurements, 2)
	require.Equal(t, "m1.csv", measurements[0]["filename_csv"])
	require.IsType(t, "", measurements[0]["time"])
}

func TestExportTreeEmpty(t *testing.T) {
	tree, err := ExportTree(newTestStor(t))
	require.NoError(t, err)
	require.NotNil(t, tree.Gateware)
	require.Empty(t, tree.Gateware)

	b, err := json.Marshal(tree)
	require.NoError(t, err)
	require.JSONEq(t, `{"gateware":[]}`, string(b))
}

func TestExportTreeDeviceDBCardinality(t *testing.T) {
	s := newTestStor(t)

	bare := add(t, s, &labmodel.Gateware{Mixin: labmodel.Mixin{Name: "bare"}})
	doubled := add(t, s, &labmodel.Gateware{Mixin: labmodel.Mixin{Name: "doubled"}})
	add(t, s, &labmodel.DeviceDB{Mixin: labmodel.Mixin{Name: "first"}, GatewareID: doubled})
	add(t, s, &labmodel.DeviceDB{Mixin: labmodel.Mixin{Name: "second"}, GatewareID: doubled})

	tree, err := ExportTree(s)
	require.NoError(t, err)
	require.Len(t, tree.Gateware, 2)

	require.Equal(t, bare, tree.Gateware[0].ID)
	require.Nil(t, tree.Gateware[0].DeviceDB)

	require.Equal(t, "first", tree.Gateware[1].DeviceDB.Name)
	require.NotNil(t, tree.Gateware[1].DeviceDB.Projects)
	require.Empty(t, tree.Gateware[1].DeviceDB.Projects)
}

func TestExportOne(t *testing.T) {
	s := newTestStor(t)
	projectID := populate(t, s)

	record, err := ExportOne(s, labmodel.KindProject, projectID)
	require.NoError(t, err)
	require.Equal(t, "trap", record.Base().Name)

	b, err := json.Marshal(record)
	require.NoError(t, err)
	require.NotContains(t, string(b), "pipelines")

	_, err = ExportOne(s, labmodel.KindProject, projectID+100)
	require.True(t, errors.Is(err, stor.ErrNotFound))
}

func TestSummaryReport(t *testing.T) {
	s := newTestStor(t)
	projectID := populate(t, s)
	empty := add(t, s, &labmodel.Project{Mixin: labmodel.Mixin{Name: "idle"}})

	summaries, err := SummaryReport(s)
	require.NoError(t, err)
	require.Equal(t, []ProjectSummary{
		{ProjectID: projectID, Project: "trap", DeviceDB: "ddb", Gateware: "kasli", Sequences: 1},
		{ProjectID: empty, Project: "idle", Sequences: 0},
	}, summaries)
}

func TestDetailedReport(t *testing.T) {
	s := newTestStor(t)
	projectID := populate(t, s)

	pipelines, err := stor.Find[labmodel.Pipeline](s, stor.Filters{"project_id": projectID})
	require.NoError(t, err)
	add(t, s, &labmodel.Sequence{Mixin: labmodel.Mixin{Name: "ramsey"}, PipelineID: pipelines[0].ID})

	details, err := DetailedReport(s)
	require.NoError(t, err)
	require.Len(t, details, 1)

	d := details[0]
	require.Equal(t, "trap", d.Project)
	require.Equal(t, "ion trap", d.Description)
	require.Len(t, d.Sequences, 2)
	require.Equal(t, "rabi", d.Sequences[0].Sequence)
	require.EqualValues(t, 2, d.Sequences[0].Measurements)
	require.Equal(t, "ramsey", d.Sequences[1].Sequence)
	require.EqualValues(t, 0, d.Sequences[1].Measurements)
}

func TestPrintReport(t *testing.T) {
	s := newTestStor(t)
	populate(t, s)

	var summary bytes.Buffer
	require.NoError(t, PrintReport(s, &summary, false))
	out := strings.ToUpper(summary.String())
	require.Contains(t, out, "DEVICE DATABASE")
	require.Contains(t, out, "SEQUENCES")
	require.Contains(t, summary.String(), "trap")

	var detailed bytes.Buffer
	require.NoError(t, PrintReport(s, &detailed, true))
	require.Contains(t, detailed.String(), "Project:     trap")
	require.Contains(t, strings.ToUpper(detailed.String()), "MEASUREMENTS")
	require.Contains(t, detailed.String(), "rabi")
}

func TestWriteTree(t *testing.T) {
	s := newTestStor(t)
	populate(t, s)

	dir := filepath.Join(t.TempDir(), "out")
	path, err := WriteTree(s, dir, "")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, DefaultTreeFilename), path)

	// A second export replaces the first.
	_, err = WriteTree(s, dir, "")
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var tree Tree
	require.NoError(t, json.Unmarshal(b, &tree))
	require.Len(t, tree.Gateware, 1)
	require.Len(t, tree.Gateware[0].DeviceDB.Projects[0].Pipelines[0].Sequences[0].Measurements, 2)
}

func TestWriteOne(t *testing.T) {
	s := newTestStor(t)
	projectID := populate(t, s)
	dir := t.TempDir()

	path, err := WriteOne(s, labmodel.KindProject, projectID, dir, "")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, fmt.Sprintf("project-%d-trap.json", projectID)), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var p labmodel.Project
	require.NoError(t, json.Unmarshal(b, &p))
	require.Equal(t, projectID, p.ID)
	require.Equal(t, "ion trap", p.Description)

	path, err = WriteOne(s, labmodel.KindProject, projectID, dir, "p.json")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "p.json"), path)
}

func TestOneFilename(t *testing.T) {
	m := &labmodel.Measurement{Mixin: labmodel.Mixin{ID: 12, Name: "Rabi Scan 2"}}
	require.Equal(t, "measurement-12-rabi-scan-2.json", OneFilename(m))

	m.Name = ""
	require.Equal(t, "measurement-12.json", OneFilename(m))
}
