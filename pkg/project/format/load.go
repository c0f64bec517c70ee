package format

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/retroware/bincase/pkg/project"
)

// Load reads the project file at path into p.
//
// On success p is replaced wholesale and the returned report lists every
// recoverable issue found along the way. On a fatal error (unreadable file,
// magic mismatch, unparsable body, non-positive data length) p is left
// untouched and the report carries only the failure.
func Load(path string, p *project.Project) (*Report, error) {
	return LoadWithLogger(path, p, hclog.NewNullLogger())
}

// LoadWithLogger reads the project file at path into p with a custom logger.
func LoadWithLogger(path string, p *project.Project, logger hclog.Logger) (*Report, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	rep := &Report{}

	raw, err := os.ReadFile(path)
	if err != nil {
		rep.Add(SevError, "file", path, err.Error())
		return rep, fmt.Errorf("reading project file: %w", err)
	}

	rec, err := unwrapFile(raw)
	if err != nil {
		rep.Add(SevError, "file", path, err.Error())
		return rep, err
	}
	logger.Debug("parsed project body", "path", path,
		"content_version", rec.ContentVersion, "data_length", rec.DataLength)

	applyMigrations(rec, rep, logger)

	built, err := buildProject(rec, rep, logger)
	if err != nil {
		rep.Add(SevError, "dataLength", fmt.Sprintf("%d", rec.DataLength), err.Error())
		return rep, err
	}

	*p = *built
	logger.Info("loaded project", "path", path,
		"content_version", built.ContentVersion,
		"labels", len(built.UserLabels), "formats", len(built.Formats),
		"issues", len(rep.Entries))
	return rep, nil
}
