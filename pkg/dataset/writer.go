package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
)

// WriteFile commits records to a Parquet file at path. Columns are
// zstd-compressed and carry min/max/null-count statistics for predicate
// pushdown. The file appears atomically: data goes to a temporary sibling
// first and is renamed into place only after a successful flush and sync,
// so a failed write leaves nothing at path.
func WriteFile(path string, records []Record) (err error) {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := parquet.NewGenericWriter[Record](tmp, parquet.Compression(&parquet.Zstd))
	if _, err = w.Write(records); err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}

	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
