package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"ckpecfg/internal/parser"
	"ckpecfg/pkg/ini"
)

// ExpectedFileName is the configuration file this tool edits.
const ExpectedFileName = "CreationKitPlatformExtended.ini"

// FileNameError reports a path whose base name is not the expected
// configuration file.
type FileNameError struct {
	Expected string
	Got      string
}

// Error implements the error interface.
func (e *FileNameError) Error() string {
	return fmt.Sprintf("expected a file named %s, got %s", e.Expected, e.Got)
}

// VerifyFileName checks that path points at the expected configuration
// file. The interactive editor enforces this; scripted commands accept
// any file.
func VerifyFileName(path string) error {
	if base := filepath.Base(path); base != ExpectedFileName {
		return &FileNameError{Expected: ExpectedFileName, Got: base}
	}
	return nil
}

// ReadDocument reads and parses the file at path.
func ReadDocument(path string) (*ini.Document, ini.RawDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, raw := parser.Parse(string(data))
	return doc, raw, nil
}

// WriteDocument replaces the file at path with the raw document. The
// content goes to a temporary file in the same directory first and is
// renamed over the original, so no exit path leaves the file
// half-written.
func WriteDocument(ctx context.Context, path string, raw ini.RawDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	// Clean up the temporary file on any failed exit
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.WriteString(raw.Text()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tmpPath, fileMode(path)); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	success = true
	return nil
}

// Backup copies the file at path to path+".bak" and returns the backup
// path.
func Backup(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	bak := path + ".bak"
	if err := os.WriteFile(bak, data, fileMode(path)); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", bak, err)
	}
	return bak, nil
}

// fileMode returns the current mode of path, or a plain default when
// the file cannot be inspected.
func fileMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode()
	}
	return 0o644
}
