package pkg

import (
	"github.com/hashicorp/go-hclog"

	"github.com/retroware/bincase/pkg/project"
	"github.com/retroware/bincase/pkg/project/format"
)

// SaveProject writes the project to path atomically.
func SaveProject(p *project.Project, path string) error {
	return format.Save(p, path)
}

// LoadProject reads the project file at path into p. On success p is
// replaced wholesale; on a fatal error p is untouched and only the report
// is meaningful.
func LoadProject(path string, p *project.Project) (*format.Report, error) {
	return format.Load(path, p)
}

// LoadProjectWithLogger is LoadProject with a custom logger.
func LoadProjectWithLogger(path string, p *project.Project, logger hclog.Logger) (*format.Report, error) {
	return format.LoadWithLogger(path, p, logger)
}

// VerifyData checks the backing blob against the project's stored identity.
func VerifyData(p *project.Project, data []byte) bool {
	return p.MatchesData(data)
}
