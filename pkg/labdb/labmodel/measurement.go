package labmodel

// Measurement points at up to three artifact files produced by a run of a
// sequence: a CSV table, a JPG image and an HDF5 file.
type Measurement struct {
	Mixin
	PathCSV      string `json:"path_csv" gorm:"column:path_csv"`
	FilenameCSV  string `json:"filename_csv" gorm:"column:filename_csv"`
	PathJPG      string `json:"path_jpg" gorm:"column:path_jpg"`
	FilenameJPG  string `json:"filename_jpg" gorm:"column:filename_jpg"`
	PathHDF5     string `json:"path_hdf5" gorm:"column:path_hdf5"`
	FilenameHDF5 string `json:"filename_hdf5" gorm:"column:filename_hdf5"`
	SequenceID   int    `json:"sequence_id" gorm:"index"`
}

func (Measurement) TableName() string {
	return "measurement"
}

func (*Measurement) Kind() Kind {
	return KindMeasurement
}

func (m *Measurement) ParentID() int {
	return m.SequenceID
}

func (m *Measurement) Attributes() map[string]interface{} {
	return map[string]interface{}{
		"name":          m.Name,
		"path_csv":      m.PathCSV,
		"filename_csv":  m.FilenameCSV,
		"path_jpg":      m.PathJPG,
		"filename_jpg":  m.FilenameJPG,
		"path_hdf5":     m.PathHDF5,
		"filename_hdf5": m.FilenameHDF5,
		"sequence_id":   m.SequenceID,
	}
}
