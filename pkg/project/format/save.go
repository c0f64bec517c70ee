package format

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/retroware/bincase/pkg/project"
)

// Save writes the project to path atomically.
func Save(p *project.Project, path string) error {
	return SaveWithLogger(p, path, hclog.NewNullLogger())
}

// SaveWithLogger writes the project to path with a custom logger.
//
// The full content goes to a temporary sibling file first; the destination
// is replaced only by the final rename. Any failure before the rename
// removes the temp file and leaves the destination's prior state (file or
// absence) untouched.
func SaveWithLogger(p *project.Project, path string, logger hclog.Logger) error {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	// A doomed overwrite must fail before the temp file exists.
	if info, err := os.Stat(path); err == nil && info.Mode().Perm()&0o200 == 0 {
		return fmt.Errorf("%w: %s", ErrReadOnlyDestination, path)
	}

	rec := buildRecord(p)
	data, err := wrapRecord(rec)
	if err != nil {
		return err
	}

	tmpPath, err := writeTemp(path, data)
	if err != nil {
		return err
	}
	logger.Debug("wrote temp project file", "path", tmpPath, "size", len(data))

	if err := commit(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}

	logger.Info("saved project", "path", path,
		"content_version", rec.ContentVersion, "size", len(data))
	return nil
}

// writeTemp writes the full content to a sibling temp file and closes it.
// The handle must be closed before the rename in commit.
func writeTemp(destPath string, data []byte) (string, error) {
	tmpPath := fmt.Sprintf("%s.tmp%d", destPath, os.Getpid())

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	return tmpPath, nil
}

// commit replaces destPath with the fully-written temp file. The rename is
// the sole point after which the new content is considered committed.
func commit(tmpPath, destPath string) error {
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing old project file: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("renaming temp file into place: %w", err)
	}
	return nil
}
