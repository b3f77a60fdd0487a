package tags

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dpetit12345/classical-fixes/internal/record"
)

// Files is a record.Accessor over music files. Record IDs are file paths.
type Files struct{}

var _ record.Accessor = Files{}

func (Files) Load(path string) (record.Record, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return record.Record{}, fmt.Errorf("%s: %w", path, record.ErrNotFound)
	}
	return ReadRecord(path)
}

func (Files) Save(r record.Record) error {
	return WriteRecord(r.ID, r)
}
