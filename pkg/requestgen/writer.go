package requestgen

import (
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/thorn-jmh/errorst"
)

// Writer stores rendered files. A destination is either replaced as a
// whole or left as it was.
type Writer struct {
	Fs afero.Fs
}

func NewWriter(fs afero.Fs) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Writer{Fs: fs}
}

// Write creates the parent directories of path and replaces path with data.
func (w *Writer) Write(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := w.Fs.MkdirAll(dir, 0o755); err != nil {
		return errorst.Wrap(ErrWriteFailure, "create directory %s: %v", dir, err)
	}

	tmp, err := afero.TempFile(w.Fs, dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errorst.Wrap(ErrWriteFailure, "create temp file in %s: %v", dir, err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = w.Fs.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errorst.Wrap(ErrWriteFailure, "write %s: %v", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return errorst.Wrap(ErrWriteFailure, "close %s: %v", tmpName, err)
	}
	if err = w.Fs.Chmod(tmpName, 0o644); err != nil {
		return errorst.Wrap(ErrWriteFailure, "chmod %s: %v", tmpName, err)
	}
	if err = w.Fs.Rename(tmpName, path); err != nil {
		return errorst.Wrap(ErrWriteFailure, "replace %s: %v", path, err)
	}
	return nil
}
