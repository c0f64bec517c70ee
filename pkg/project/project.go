// Package project holds the long-lived working model of a binary under
// analysis: the raw data identity plus every human-authored annotation
// collection (labels, comments, operand formats, variable scopes,
// visualizations). Persistence lives in the format subpackage.
package project

import (
	"encoding/json"
	"hash/crc32"
)

// HeaderCommentOffset is the pseudo-offset reserved for header-level long
// comments and notes. It is the only legal negative collection key.
const HeaderCommentOffset = -1

// ProjectProperties carries project-wide settings that persist with the file.
type ProjectProperties struct {
	PlatformName string

	// Analysis flags. Both were introduced at content version 2; older
	// files are defaulted by the migration pass, not here.
	AnalyzeUncategorizedData bool
	SeekNearbyTargets        bool

	// ProjectSyms holds project-level symbol definitions keyed by label.
	ProjectSyms map[string]*DefSymbol
}

// Project is the root of the working model. It is identified by the backing
// blob's length and CRC-32, both captured at save time and checked at load
// time. A successful load replaces the receiver wholesale.
type Project struct {
	DataLength int64
	DataCRC32  uint32

	// ContentVersion is the schema revision the project was loaded from.
	// Saves always emit the engine's current version.
	ContentVersion int

	Properties ProjectProperties

	AddressMap   AddressMap
	Comments     map[int64]string
	LongComments map[int64]*MultiLineComment
	Notes        map[int64]*MultiLineComment
	UserLabels   map[int64]*Symbol
	Formats      map[int64]*FormatDescriptor
	LvTables     map[int64]*LocalVariableTable

	// VisualizationSets own the visualizations claimed for an offset.
	// Visualizations that no set claimed survive a load but render nowhere.
	VisualizationSets       map[int64]*VisualizationSet
	UnclaimedVisualizations []*Visualization

	// Opaque payloads keyed by offset. The engine validates the key and
	// carries the value verbatim.
	Relocs        map[int64]json.RawMessage
	BankOverrides map[int64]json.RawMessage
}

// NewProject creates an empty project bound to a blob identity.
func NewProject(dataLength int64, dataCRC uint32) *Project {
	return &Project{
		DataLength: dataLength,
		DataCRC32:  dataCRC,
		Properties: ProjectProperties{
			AnalyzeUncategorizedData: true,
			SeekNearbyTargets:        true,
			ProjectSyms:              make(map[string]*DefSymbol),
		},
		Comments:          make(map[int64]string),
		LongComments:      make(map[int64]*MultiLineComment),
		Notes:             make(map[int64]*MultiLineComment),
		UserLabels:        make(map[int64]*Symbol),
		Formats:           make(map[int64]*FormatDescriptor),
		LvTables:          make(map[int64]*LocalVariableTable),
		VisualizationSets: make(map[int64]*VisualizationSet),
		Relocs:            make(map[int64]json.RawMessage),
		BankOverrides:     make(map[int64]json.RawMessage),
	}
}

// NewProjectForData creates an empty project identified by the given blob.
func NewProjectForData(data []byte) *Project {
	return NewProject(int64(len(data)), DataCRC32(data))
}

// DataCRC32 computes the identity checksum persisted with the project.
func DataCRC32(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// MatchesData reports whether the blob matches the stored identity.
func (p *Project) MatchesData(data []byte) bool {
	return p.DataLength == int64(len(data)) && p.DataCRC32 == DataCRC32(data)
}
