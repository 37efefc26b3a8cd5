package labmodel

import (
	"gorm.io/datatypes"
)

// Patch is a set of attribute overwrites for one kind. Only the non nil fields
// of a patch are applied. The mixin id, time and version are never patched.
// Parent ids may be changed and are not checked against the parent table.
type Patch interface {
	Kind() Kind
	Apply(r Record) error
}

type GatewarePatch struct {
	Name           *string   `json:"name,omitempty"`
	Path           *string   `json:"path,omitempty"`
	Filename       *string   `json:"filename,omitempty"`
	EEMConnections *[]string `json:"eem_connections,omitempty"`
}

func (*GatewarePatch) Kind() Kind {
	return KindGateware
}

func (p *GatewarePatch) Apply(r Record) error {
	g, ok := r.(*Gateware)
	if !ok {
		return ErrWrongKind
	}

	set(&g.Name, p.Name)
	set(&g.Path, p.Path)
	set(&g.Filename, p.Filename)
	if p.EEMConnections != nil {
		g.EEMConnections = datatypes.JSONSlice[string](*p.EEMConnections)
	}

	return nil
}

type DeviceDBPatch struct {
	Name       *string `json:"name,omitempty"`
	Path       *string `json:"path,omitempty"`
	Filename   *string `json:"filename,omitempty"`
	GatewareID *int    `json:"gateware_id,omitempty"`
}

func (*DeviceDBPatch) Kind() Kind {
	return KindDeviceDB
}

func (p *DeviceDBPatch) Apply(r Record) error {
	d, ok := r.(*DeviceDB)
	if !ok {
		return ErrWrongKind
	}

	set(&d.Name, p.Name)
	set(&d.Path, p.Path)
	set(&d.Filename, p.Filename)
	set(&d.GatewareID, p.GatewareID)

	return nil
}

type ProjectPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	DeviceDBID  *int    `json:"devicedb_id,omitempty"`
}

func (*ProjectPatch) Kind() Kind {
	return KindProject
}

func (p *ProjectPatch) Apply(r Record) error {
	proj, ok := r.(*Project)
	if !ok {
		return ErrWrongKind
	}

	set(&proj.Name, p.Name)
	set(&proj.Description, p.Description)
	set(&proj.DeviceDBID, p.DeviceDBID)

	return nil
}

type PipelinePatch struct {
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Ordering    *datatypes.JSON `json:"ordering,omitempty"`
	ProjectID   *int            `json:"project_id,omitempty"`
}

func (*PipelinePatch) Kind() Kind {
	return KindPipeline
}

func (p *PipelinePatch) Apply(r Record) error {
	pipeline, ok := r.(*Pipeline)
	if !ok {
		return ErrWrongKind
	}

	set(&pipeline.Name, p.Name)
	set(&pipeline.Description, p.Description)
	set(&pipeline.Ordering, p.Ordering)
	set(&pipeline.ProjectID, p.ProjectID)

	return nil
}

type SequencePatch struct {
	Name        *string         `json:"name,omitempty"`
	Path        *string         `json:"path,omitempty"`
	Filename    *string         `json:"filename,omitempty"`
	Description *string         `json:"description,omitempty"`
	Params      *datatypes.JSON `json:"params,omitempty"`
	PipelineID  *int            `json:"pipeline_id,omitempty"`
}

func (*SequencePatch) Kind() Kind {
	return KindSequence
}

func (p *SequencePatch) Apply(r Record) error {
	s, ok := r.(*Sequence)
	if !ok {
		return ErrWrongKind
	}

	set(&s.Name, p.Name)
	set(&s.Path, p.Path)
	set(&s.Filename, p.Filename)
	set(&s.Description, p.Description)
	set(&s.Params, p.Params)
	set(&s.PipelineID, p.PipelineID)

	return nil
}

type MeasurementPatch struct {
	Name         *string `json:"name,omitempty"`
	PathCSV      *string `json:"path_csv,omitempty"`
	FilenameCSV  *string `json:"filename_csv,omitempty"`
	PathJPG      *string `json:"path_jpg,omitempty"`
	FilenameJPG  *string `json:"filename_jpg,omitempty"`
	PathHDF5     *string `json:"path_hdf5,omitempty"`
	FilenameHDF5 *string `json:"filename_hdf5,omitempty"`
	SequenceID   *int    `json:"sequence_id,omitempty"`
}

func (*MeasurementPatch) Kind() Kind {
	return KindMeasurement
}

func (p *MeasurementPatch) Apply(r Record) error {
	m, ok := r.(*Measurement)
	if !ok {
		return ErrWrongKind
	}

	set(&m.Name, p.Name)
	set(&m.PathCSV, p.PathCSV)
	set(&m.FilenameCSV, p.FilenameCSV)
	set(&m.PathJPG, p.PathJPG)
	set(&m.FilenameJPG, p.FilenameJPG)
	set(&m.PathHDF5, p.PathHDF5)
	set(&m.FilenameHDF5, p.FilenameHDF5)
	set(&m.SequenceID, p.SequenceID)

	return nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
