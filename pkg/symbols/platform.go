// Package symbols loads platform symbol files, the external source of
// pre-defined hardware and OS symbols a project links against.
package symbols

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/retroware/bincase/pkg/project"
)

// PlatformFile is the parsed shape of a *.sym.yaml platform symbol file.
type PlatformFile struct {
	Platform string      `koanf:"platform"`
	Symbols  []SymbolDef `koanf:"symbols"`
}

// SymbolDef is one symbol definition in a platform file.
type SymbolDef struct {
	Label    string `koanf:"label"`
	Value    int64  `koanf:"value"`
	Constant bool   `koanf:"constant"`
	Comment  string `koanf:"comment"`

	// Direction is "r", "w" or "rw"; empty means "rw".
	Direction string `koanf:"direction"`

	// Width in bytes; 0 means unspecified.
	Width int `koanf:"width"`

	MultiMask *MaskDef `koanf:"multiMask"`
}

// MaskDef matches a symbol against multiple hardware addresses.
type MaskDef struct {
	CompareMask  int64 `koanf:"compareMask"`
	CompareValue int64 `koanf:"compareValue"`
	AddressMask  int64 `koanf:"addressMask"`
}

// LoadPlatformFile reads a platform symbol file into DefSymbols with
// Source=Platform. Entries with bad labels or directions are skipped with a
// log warning; they never fail the whole file.
func LoadPlatformFile(path string, logger hclog.Logger) (string, []*project.DefSymbol, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return "", nil, fmt.Errorf("reading platform symbol file: %w", err)
	}

	var pf PlatformFile
	if err := k.Unmarshal("", &pf); err != nil {
		return "", nil, fmt.Errorf("parsing platform symbol file: %w", err)
	}

	var out []*project.DefSymbol
	seen := make(map[string]bool)
	for _, def := range pf.Symbols {
		if !project.ValidLabel(def.Label) {
			logger.Warn("skipping platform symbol with invalid label",
				"file", path, "label", def.Label)
			continue
		}
		if seen[def.Label] {
			logger.Warn("skipping duplicate platform symbol", "file", path, "label", def.Label)
			continue
		}
		dir, ok := parseDirection(def.Direction)
		if !ok {
			logger.Warn("skipping platform symbol with bad direction",
				"file", path, "label", def.Label, "direction", def.Direction)
			continue
		}

		typ := project.TypeAddress
		if def.Constant {
			typ = project.TypeConstant
		}
		ds := project.NewDefSymbol(def.Label, def.Value, project.SourcePlatform, typ)
		ds.Comment = def.Comment
		ds.Direction = dir
		if def.Width > 0 {
			ds.HasWidth = true
			ds.Format = &project.FormatDescriptor{
				Length:  def.Width,
				Format:  project.FmtNumericLE,
				SubType: project.SubHex,
			}
		}
		if def.MultiMask != nil {
			ds.Mask = &project.MultiAddrMask{
				CompareMask:  def.MultiMask.CompareMask,
				CompareValue: def.MultiMask.CompareValue,
				AddressMask:  def.MultiMask.AddressMask,
			}
		}

		seen[def.Label] = true
		out = append(out, ds)
	}

	logger.Debug("loaded platform symbols", "file", path,
		"platform", pf.Platform, "count", len(out))
	return pf.Platform, out, nil
}

func parseDirection(s string) (project.Direction, bool) {
	switch s {
	case "", "rw":
		return project.DirReadWrite, true
	case "r":
		return project.DirRead, true
	case "w":
		return project.DirWrite, true
	default:
		return project.DirNone, false
	}
}
