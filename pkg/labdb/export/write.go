package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/gosimple/slug"
	"github.com/materials-commons/labdb/pkg/labdb/labmodel"
	"github.com/materials-commons/labdb/pkg/labdb/stor"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// DefaultTreeFilename is the file WriteTree writes when no name is given.
const DefaultTreeFilename = "labdb.json"

// WriteJSON encodes data as indented JSON and writes it to dir/filename,
// replacing any existing file. Returns the path written.
func WriteJSON(data interface{}, dir, filename string) (string, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encoding export")
	}

	dir, err = homedir.Expand(dir)
	if err != nil {
		return "", errors.Wrapf(err, "expanding %s", dir)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "creating %s", dir)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, append(b, '\n'), 0644); err != nil {
		return "", errors.Wrapf(err, "writing %s", path)
	}

	return path, nil
}

// WriteTree exports the whole catalog to dir/filename.
func WriteTree(s stor.ObjectStor, dir, filename string) (string, error) {
	if filename == "" {
		filename = DefaultTreeFilename
	}

	tree, err := ExportTree(s)
	if err != nil {
		return "", err
	}

	path, err := WriteJSON(tree, dir, filename)
	if err != nil {
		return "", err
	}

	log.WithFields(log.Fields{"path": path, "gateware": len(tree.Gateware)}).Info("exported catalog")
	return path, nil
}

// WriteOne exports one row to dir/filename, or to dir/OneFilename(record)
// when filename is empty.
func WriteOne(s stor.ObjectStor, kind labmodel.Kind, id int, dir, filename string) (string, error) {
	record, err := ExportOne(s, kind, id)
	if err != nil {
		return "", err
	}

	if filename == "" {
		filename = OneFilename(record)
	}

	return WriteJSON(record, dir, filename)
}

// OneFilename gives <kind>-<id>-<slug of name>.json, or <kind>-<id>.json for
// an unnamed row.
func OneFilename(record labmodel.Record) string {
	base := record.Base()
	if s := slug.Make(base.Name); s != "" {
		return fmt.Sprintf("%s-%d-%s.json", record.Kind(), base.ID, s)
	}

	return fmt.Sprintf("%s-%d.json", record.Kind(), base.ID)
}
