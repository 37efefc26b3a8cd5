package labmodel

import (
	"gorm.io/datatypes"
)

// Sequence is an experimental sequence file. Params holds the sequence
// parameters as a JSON document.
type Sequence struct {
	Mixin
	Path        string         `json:"path"`
	Filename    string         `json:"filename"`
	Description string         `json:"description"`
	Params      datatypes.JSON `json:"params"`
	PipelineID  int            `json:"pipeline_id" gorm:"index"`
}

func (Sequence) TableName() string {
	return "sequence"
}

func (*Sequence) Kind() Kind {
	return KindSequence
}

func (s *Sequence) ParentID() int {
	return s.PipelineID
}

func (s *Sequence) Attributes() map[string]interface{} {
	return map[string]interface{}{
		"name":        s.Name,
		"path":        s.Path,
		"filename":    s.Filename,
		"description": s.Description,
		"params":      s.Params,
		"pipeline_id": s.PipelineID,
	}
}
