package format

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/retroware/bincase/pkg/project"
)

const (
	// contentVersionMax is the newest schema revision this build writes.
	contentVersionMax = 5

	// versionAnalysisFlags is where the per-project analysis booleans
	// first appeared; older files get their legacy defaults.
	versionAnalysisFlags = 2

	// versionStringFormats is where string operand formats switched from
	// the single legacy name scheme to format+subtype pairs.
	versionStringFormats = 2
)

// migrationRule is a version-gated field default. Rules run once, after the
// structural parse and before entity construction, so decode paths never
// carry inline version checks.
type migrationRule struct {
	introducedAt int
	name         string
	apply        func(rec *projRec)
}

var migrationRules = []migrationRule{
	{
		introducedAt: versionAnalysisFlags,
		name:         "analyzeUncategorizedData",
		apply: func(rec *projRec) {
			v := true
			rec.Properties.AnalyzeUncategorizedData = &v
		},
	},
	{
		introducedAt: versionAnalysisFlags,
		name:         "seekNearbyTargets",
		apply: func(rec *projRec) {
			v := true
			rec.Properties.SeekNearbyTargets = &v
		},
	},
}

// legacyStringFormats reinterprets the version <=1 single-name string
// encodings as format+subtype pairs.
var legacyStringFormats = map[string]descRec{
	"String":         {Format: "StringGeneric", SubType: "ASCII"},
	"StringReverse":  {Format: "StringReverse", SubType: "ASCII"},
	"StringNullTerm": {Format: "StringNullTerm", SubType: "ASCII"},
	"StringLen8":     {Format: "StringL8", SubType: "ASCII"},
	"StringLen16":    {Format: "StringL16", SubType: "ASCII"},
	"StringDci":      {Format: "StringDci", SubType: "ASCII"},
}

// applyMigrations runs the version-gated rules against a freshly parsed
// surrogate tree.
func applyMigrations(rec *projRec, rep *Report, logger hclog.Logger) {
	if rec.ContentVersion > contentVersionMax {
		rep.Add(SevNotice, "contentVersion", fmt.Sprintf("%d", rec.ContentVersion),
			fmt.Sprintf("file is newer than this build supports (max %d); unknown fields will be lost on re-save", contentVersionMax))
		logger.Warn("project file is from a newer version",
			"file_version", rec.ContentVersion, "max_version", contentVersionMax)
	}

	for _, rule := range migrationRules {
		if rec.ContentVersion < rule.introducedAt {
			// Field predates this file; force the documented default
			// regardless of what the file says.
			rule.apply(rec)
			logger.Debug("applied version-gated default", "field", rule.name,
				"file_version", rec.ContentVersion, "introduced_at", rule.introducedAt)
		}
	}

	// At or above the introduction point the literal value is honored,
	// including an explicit false; only a truly absent field defaults.
	if rec.Properties.AnalyzeUncategorizedData == nil {
		v := true
		rec.Properties.AnalyzeUncategorizedData = &v
	}
	if rec.Properties.SeekNearbyTargets == nil {
		v := true
		rec.Properties.SeekNearbyTargets = &v
	}

	if rec.ContentVersion < versionStringFormats {
		migrateLegacyStrings(rec, rep, logger)
	}
}

// migrateLegacyStrings rewrites legacy string format names in the operand
// format collection. Unknown legacy names fall back to a dense-byte
// interpretation rather than failing the entry.
func migrateLegacyStrings(rec *projRec, rep *Report, logger hclog.Logger) {
	for key, dr := range rec.Formats {
		if _, known := formatValues[dr.Format]; known {
			continue
		}
		if repl, ok := legacyStringFormats[dr.Format]; ok {
			dr.Format = repl.Format
			dr.SubType = repl.SubType
			rec.Formats[key] = dr
			logger.Debug("migrated legacy string format", "key", key, "format", dr.Format)
			continue
		}
		rep.Add(SevWarning, "formats", key,
			fmt.Sprintf("unknown legacy format %q, treating as dense bytes", dr.Format))
		dr.Format = formatNames[project.FmtDense]
		dr.SubType = subTypeNames[project.SubNone]
		rec.Formats[key] = dr
	}
}
