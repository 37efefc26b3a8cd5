package export

import (
	"github.com/apex/log"
	"github.com/materials-commons/labdb/pkg/labdb/labmodel"
	"github.com/materials-commons/labdb/pkg/labdb/stor"
	"github.com/pkg/errors"
)

// Tree is the whole catalog nested from the gateware down. Each node carries
// every column of its row plus its children under the child kind's key.
type Tree struct {
	Gateware []*GatewareNode `json:"gateware"`
}

type GatewareNode struct {
	*labmodel.Gateware

	// DeviceDB is nil when no device database was built for the gateware.
	DeviceDB *DeviceDBNode `json:"devicedb"`
}

type DeviceDBNode struct {
	*labmodel.DeviceDB
	Projects []*ProjectNode `json:"projects"`
}

type ProjectNode struct {
	*labmodel.Project
	Pipelines []*PipelineNode `json:"pipelines"`
}

type PipelineNode struct {
	*labmodel.Pipeline
	Sequences []*SequenceNode `json:"sequences"`
}

type SequenceNode struct {
	*labmodel.Sequence
	Measurements []*labmodel.Measurement `json:"measurements"`
}

// ExportTree walks the catalog from every gateware down to the measurements.
// An empty catalog is logged and gives a tree with no gateware.
func ExportTree(s stor.ObjectStor) (*Tree, error) {
	gateware, err := stor.Find[labmodel.Gateware](s, nil)
	if err != nil {
		return nil, errors.Wrap(err, "exporting gateware")
	}

	tree := &Tree{Gateware: make([]*GatewareNode, 0, len(gateware))}
	if len(gateware) == 0 {
		log.Warn("database is empty")
		return tree, nil
	}

	for _, g := range gateware {
		node, err := exportGateware(s, g)
		if err != nil {
			return nil, err
		}
		tree.Gateware = append(tree.Gateware, node)
	}

	return tree, nil
}

func exportGateware(s stor.ObjectStor, g *labmodel.Gateware) (*GatewareNode, error) {
	node := &GatewareNode{Gateware: g}

	deviceDBs, err := stor.Find[labmodel.DeviceDB](s, stor.Filters{"gateware_id": g.ID})
	if err != nil {
		return nil, errors.Wrapf(err, "exporting devicedb of gateware %d", g.ID)
	}

	switch {
	case len(deviceDBs) == 0:
		return node, nil
	case len(deviceDBs) > 1:
		log.WithFields(log.Fields{"gateware_id": g.ID, "count": len(deviceDBs), "used": deviceDBs[0].ID}).
			Warnf("gateware %d has more than one devicedb, exporting the first", g.ID)
	}

	node.DeviceDB, err = exportDeviceDB(s, deviceDBs[0])
	if err != nil {
		return nil, err
	}

	return node, nil
}

func exportDeviceDB(s stor.ObjectStor, d *labmodel.DeviceDB) (*DeviceDBNode, error) {
	projects, err := stor.Find[labmodel.Project](s, stor.Filters{"devicedb_id": d.ID})
	if err != nil {
		return nil, errors.Wrapf(err, "exporting projects of devicedb %d", d.ID)
	}

	node := &DeviceDBNode{DeviceDB: d, Projects: make([]*ProjectNode, 0, len(projects))}
	for _, p := range projects {
		projectNode, err := exportProject(s, p)
		if err != nil {
			return nil, err
		}
		node.Projects = append(node.Projects, projectNode)
	}

	return node, nil
}

func exportProject(s stor.ObjectStor, p *labmodel.Project) (*ProjectNode, error) {
	pipelines, err := stor.Find[labmodel.Pipeline](s, stor.Filters{"project_id": p.ID})
	if err != nil {
		return nil, errors.Wrapf(err, "exporting pipelines of project %d", p.ID)
	}

	node := &ProjectNode{Project: p, Pipelines: make([]*PipelineNode, 0, len(pipelines))}
	for _, pl := range pipelines {
		pipelineNode, err := exportPipeline(s, pl)
		if err != nil {
			return nil, err
		}
		node.Pipelines = append(node.Pipelines, pipelineNode)
	}

	return node, nil
}

func exportPipeline(s stor.ObjectStor, pl *labmodel.Pipeline) (*PipelineNode, error) {
	sequences, err := stor.Find[labmodel.Sequence](s, stor.Filters{"pipeline_id": pl.ID})
	if err != nil {
		return nil, errors.Wrapf(err, "exporting sequences of pipeline %d", pl.ID)
	}

	node := &PipelineNode{Pipeline: pl, Sequences: make([]*SequenceNode, 0, len(sequences))}
	for _, seq := range sequences {
		measurements, err := stor.Find[labmodel.Measurement](s, stor.Filters{"sequence_id": seq.ID})
		if err != nil {
			return nil, errors.Wrapf(err, "exporting measurements of sequence %d", seq.ID)
		}
		node.Sequences = append(node.Sequences, &SequenceNode{Sequence: seq, Measurements: measurements})
	}

	return node, nil
}

// ExportOne returns the row itself, without anything beneath it.
func ExportOne(s stor.ObjectStor, kind labmodel.Kind, id int) (labmodel.Record, error) {
	return s.GetByID(kind, id)
}
