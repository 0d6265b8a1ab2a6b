package store

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Persistence loads and saves the opaque blob produced by ExportAll.
type Persistence interface {
	Load() ([]byte, error)
	Save([]byte) error
}

var _ Persistence = &FilePersistence{}

// FilePersistence keeps the blob in a single file.
type FilePersistence struct {
	path string
}

func NewFilePersistence(path string) *FilePersistence {
	return &FilePersistence{path: path}
}

// Load returns the file content, or an empty blob if the file does not exist.
func (f *FilePersistence) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", f.path)
	}
	return data, nil
}

// Save writes data to a temporary file next to the target and renames it
// into place.
func (f *FilePersistence) Save(data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "writing %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return errors.Wrapf(err, "renaming to %s", f.path)
	}
	return nil
}
