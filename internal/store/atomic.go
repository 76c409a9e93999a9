package store

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
)

// writeFileAtomic writes data to a temp file next to path and renames it
// into place. perm 0 keeps the existing file mode, or 0644 for new files.
func writeFileAtomic(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		if st, err := fs.Stat(path); err == nil {
			perm = st.Mode().Perm()
		} else {
			perm = 0o644
		}
	}

	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpPath := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = fs.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	_ = fs.Chmod(tmpPath, perm)

	if err := replaceFile(fs, tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	committed = true
	return nil
}

// removeBeforeRename is set where renaming over an existing file fails.
var removeBeforeRename = runtime.GOOS == "windows"

// replaceFile moves tmpPath over path. The existing file is only removed
// first when the platform cannot rename over it.
func replaceFile(fs afero.Fs, tmpPath, path string) error {
	err := fs.Rename(tmpPath, path)
	if err == nil || !removeBeforeRename {
		return err
	}
	if _, statErr := fs.Stat(path); statErr != nil {
		return err
	}
	if removeErr := fs.Remove(path); removeErr != nil {
		return err
	}
	return fs.Rename(tmpPath, path)
}
