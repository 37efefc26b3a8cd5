package labmodel

import (
	"gorm.io/datatypes"
)

// Gateware is the root of the hierarchy. EEMConnections lists the EEM cable
// connections the gateware was built for.
type Gateware struct {
	Mixin
	Path           string                      `json:"path"`
	Filename       string                      `json:"filename"`
	EEMConnections datatypes.JSONSlice[string] `json:"eem_connections" gorm:"column:eem_connections"`
}

func (Gateware) TableName() string {
	return "gateware"
}

func (*Gateware) Kind() Kind {
	return KindGateware
}

func (*Gateware) ParentID() int {
	return 0
}

func (g *Gateware) Attributes() map[string]interface{} {
	return map[string]interface{}{
		"name":            g.Name,
		"path":            g.Path,
		"filename":        g.Filename,
		"eem_connections": g.EEMConnections,
	}
}
