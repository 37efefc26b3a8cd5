package labmodel

type Project struct {
	Mixin
	Description string `json:"description"`
	DeviceDBID  int    `json:"devicedb_id" gorm:"column:devicedb_id;index"`
}

func (Project) TableName() string {
	return "project"
}

func (*Project) Kind() Kind {
	return KindProject
}

func (p *Project) ParentID() int {
	return p.DeviceDBID
}

func (p *Project) Attributes() map[string]interface{} {
	return map[string]interface{}{
		"name":        p.Name,
		"description": p.Description,
		"devicedb_id": p.DeviceDBID,
	}
}
