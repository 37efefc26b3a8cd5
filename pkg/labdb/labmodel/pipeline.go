package labmodel

import (
	"gorm.io/datatypes"
)

// Pipeline groups sequences of a project. Ordering holds the parallel/series
// ordering of those sequences as a JSON document.
type Pipeline struct {
	Mixin
	Description string         `json:"description"`
	Ordering    datatypes.JSON `json:"ordering"`
	ProjectID   int            `json:"project_id" gorm:"index"`
}

func (Pipeline) TableName() string {
	return "pipeline"
}

func (*Pipeline) Kind() Kind {
	return KindPipeline
}

func (p *Pipeline) ParentID() int {
	return p.ProjectID
}

func (p *Pipeline) Attributes() map[string]interface{} {
	return map[string]interface{}{
		"name":        p.Name,
		"description": p.Description,
		"ordering":    p.Ordering,
		"project_id":  p.ProjectID,
	}
}
