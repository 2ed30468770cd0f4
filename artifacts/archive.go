package artifacts

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ZipDirectory compresses every file under dir into a single ZIP at
// zipPath, with entry names relative to dir. An empty or missing directory
// is an error: it means no receipts were produced.
func ZipDirectory(dir, zipPath string) error {
	if err := os.MkdirAll(filepath.Dir(zipPath), 0755); err != nil {
		return fmt.Errorf("artifacts: create archive dir: %w", err)
	}

	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("artifacts: create archive %q: %w", zipPath, err)
	}

	zw := zip.NewWriter(out)
	entries := 0

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		if _, err := io.Copy(w, f); err != nil {
			return err
		}
		entries++
		return nil
	})
	if walkErr != nil {
		_ = zw.Close()
		_ = out.Close()
		_ = os.Remove(zipPath)
		return fmt.Errorf("artifacts: archive %q: %w", dir, walkErr)
	}

	if err := zw.Close(); err != nil {
		_ = out.Close()
		_ = os.Remove(zipPath)
		return fmt.Errorf("artifacts: finalize archive: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(zipPath)
		return fmt.Errorf("artifacts: close archive: %w", err)
	}

	if entries == 0 {
		_ = os.Remove(zipPath)
		return fmt.Errorf("artifacts: nothing to archive in %q", dir)
	}
	return nil
}

// Cleanup removes the given directories. Missing directories are treated
// as success; any other deletion failure propagates.
func Cleanup(dirs ...string) error {
	for _, d := range dirs {
		if err := os.RemoveAll(d); err != nil {
			return fmt.Errorf("artifacts: remove %q: %w", d, err)
		}
	}
	return nil
}
