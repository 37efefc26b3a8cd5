package labmodel

// DeviceDB is the device database built for a single Gateware.
type DeviceDB struct {
	Mixin
	Path       string `json:"path"`
	Filename   string `json:"filename"`
	GatewareID int    `json:"gateware_id" gorm:"index"`
}

func (DeviceDB) TableName() string {
	return "devicedb"
}

func (*DeviceDB) Kind() Kind {
	return KindDeviceDB
}

func (d *DeviceDB) ParentID() int {
	return d.GatewareID
}

func (d *DeviceDB) Attributes() map[string]interface{} {
	return map[string]interface{}{
		"name":        d.Name,
		"path":        d.Path,
		"filename":    d.Filename,
		"gateware_id": d.GatewareID,
	}
}
