package format

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/retroware/bincase/pkg/project"
)

// The *Rec types are flat, schema-stable surrogates for the entity model.
// They exist only inside a single save or load call. Offset-keyed maps use
// decimal text keys; variant fields use the symbolic names from names.go.
//
// Field order here is the field order in the file. Do not reorder.

type projRec struct {
	ContentVersion int    `json:"_contentVersion"`
	DataLength     int64  `json:"dataLength"`
	DataCRC32      uint32 `json:"dataCrc32"`

	Properties propsRec `json:"properties"`

	AddressMap     []addrRec                  `json:"addressMap"`
	Comments       map[string]string          `json:"comments"`
	LongComments   map[string]mlcRec          `json:"longComments"`
	Notes          map[string]mlcRec          `json:"notes"`
	UserLabels     map[string]symRec          `json:"userLabels"`
	Formats        map[string]descRec         `json:"formats"`
	LvTables       map[string]lvTableRec      `json:"lvTables"`
	Visualizations []visRec                   `json:"visualizations"`
	VisAnimations  []visAnimRec               `json:"visAnimations"`
	VisSets        map[string]visSetRec       `json:"visSets"`
	Relocs         map[string]json.RawMessage `json:"relocs"`
	BankOverrides  map[string]json.RawMessage `json:"bankOverrides"`
}

type propsRec struct {
	PlatformName string `json:"platformName"`

	// Pointers so the migration pass can tell "absent" from "false".
	AnalyzeUncategorizedData *bool `json:"analyzeUncategorizedData,omitempty"`
	SeekNearbyTargets        *bool `json:"seekNearbyTargets,omitempty"`

	ProjectSyms map[string]defSymRec `json:"projectSyms"`
}

type addrRec struct {
	Offset     int64  `json:"offset"`
	Addr       int64  `json:"addr"`
	Length     int64  `json:"length"`
	PreLabel   string `json:"preLabel,omitempty"`
	IsRelative bool   `json:"isRelative,omitempty"`
}

type symRec struct {
	Label       string `json:"label"`
	Value       int64  `json:"value"`
	Source      string `json:"source"`
	Type        string `json:"type"`
	Anno        string `json:"labelAnno,omitempty"`
	LocalOffset *int64 `json:"localOffset,omitempty"`
}

type defSymRec struct {
	symRec
	Comment   string   `json:"comment,omitempty"`
	HasWidth  bool     `json:"hasWidth,omitempty"`
	Direction string   `json:"direction"`
	MultiMask *maskRec `json:"multiMask,omitempty"`
	Format    *descRec `json:"format,omitempty"`
}

type maskRec struct {
	CompareMask  int64 `json:"compareMask"`
	CompareValue int64 `json:"compareValue"`
	AddressMask  int64 `json:"addressMask"`
}

type descRec struct {
	Length    int         `json:"length"`
	Format    string      `json:"format"`
	SubType   string      `json:"subType"`
	SymbolRef *weakRefRec `json:"symbolRef,omitempty"`
}

type weakRefRec struct {
	Label string `json:"label"`
	Part  string `json:"part"`
}

type mlcRec struct {
	Text            string `json:"text"`
	BoxMode         bool   `json:"boxMode,omitempty"`
	MaxWidth        int    `json:"maxWidth,omitempty"`
	BackgroundColor int    `json:"backgroundColor,omitempty"`
}

type lvTableRec struct {
	ClearPrevious bool        `json:"clearPrevious,omitempty"`
	Variables     []defSymRec `json:"variables"`
}

type visRec struct {
	Tag         string         `json:"tag"`
	VisGenIdent string         `json:"visGenIdent"`
	Parms       map[string]any `json:"parms"`
}

type visAnimRec struct {
	visRec
	Tags []string `json:"tags"`
}

type visSetRec struct {
	Tags []string `json:"tags"`
}

// encOffsetKey converts an offset to its text map key.
func encOffsetKey(off int64) string {
	return strconv.FormatInt(off, 10)
}

// buildRecord converts a project to its surrogate tree. Conversion in this
// direction is total: any project the entity model can hold serializes.
func buildRecord(p *project.Project) *projRec {
	rec := &projRec{
		ContentVersion: contentVersionMax,
		DataLength:     p.DataLength,
		DataCRC32:      p.DataCRC32,
		Properties:     propsToRec(&p.Properties),
		Comments:       map[string]string{},
		LongComments:   map[string]mlcRec{},
		Notes:          map[string]mlcRec{},
		UserLabels:     map[string]symRec{},
		Formats:        map[string]descRec{},
		LvTables:       map[string]lvTableRec{},
		VisSets:        map[string]visSetRec{},
		Relocs:         map[string]json.RawMessage{},
		BankOverrides:  map[string]json.RawMessage{},
		AddressMap:     []addrRec{},
		Visualizations: []visRec{},
		VisAnimations:  []visAnimRec{},
	}

	for _, e := range p.AddressMap.Entries() {
		rec.AddressMap = append(rec.AddressMap, addrRec{
			Offset:     e.Offset,
			Addr:       e.Addr,
			Length:     e.Length,
			PreLabel:   e.PreLabel,
			IsRelative: e.IsRelative,
		})
	}

	for off, text := range p.Comments {
		rec.Comments[encOffsetKey(off)] = text
	}
	for off, mlc := range p.LongComments {
		rec.LongComments[encOffsetKey(off)] = mlcToRec(mlc)
	}
	for off, mlc := range p.Notes {
		rec.Notes[encOffsetKey(off)] = mlcToRec(mlc)
	}
	for off, sym := range p.UserLabels {
		rec.UserLabels[encOffsetKey(off)] = symToRec(sym)
	}
	for off, fd := range p.Formats {
		rec.Formats[encOffsetKey(off)] = descToRec(fd)
	}
	for off, lvt := range p.LvTables {
		rec.LvTables[encOffsetKey(off)] = lvTableToRec(lvt)
	}

	// Visualizations are emitted in a deterministic order: sets sorted by
	// offset, items in claim order, then any unclaimed stragglers.
	setOffsets := make([]int64, 0, len(p.VisualizationSets))
	for off := range p.VisualizationSets {
		setOffsets = append(setOffsets, off)
	}
	sort.Slice(setOffsets, func(i, j int) bool { return setOffsets[i] < setOffsets[j] })

	for _, off := range setOffsets {
		vs := p.VisualizationSets[off]
		sr := visSetRec{Tags: []string{}}
		for _, v := range vs.Items {
			sr.Tags = append(sr.Tags, v.Tag)
			appendVisRec(rec, v)
		}
		rec.VisSets[encOffsetKey(off)] = sr
	}
	for _, v := range p.UnclaimedVisualizations {
		appendVisRec(rec, v)
	}

	for off, raw := range p.Relocs {
		rec.Relocs[encOffsetKey(off)] = compactRaw(raw)
	}
	for off, raw := range p.BankOverrides {
		rec.BankOverrides[encOffsetKey(off)] = compactRaw(raw)
	}

	return rec
}

func appendVisRec(rec *projRec, v *project.Visualization) {
	vr := visRec{
		Tag:         v.Tag,
		VisGenIdent: v.VisGenIdent,
		Parms:       project.NormalizeParms(v.Parms),
	}
	if v.IsAnimation() {
		tags := make([]string, len(v.AnimTags))
		copy(tags, v.AnimTags)
		rec.VisAnimations = append(rec.VisAnimations, visAnimRec{visRec: vr, Tags: tags})
	} else {
		rec.Visualizations = append(rec.Visualizations, vr)
	}
}

func propsToRec(pp *project.ProjectProperties) propsRec {
	analyze := pp.AnalyzeUncategorizedData
	seek := pp.SeekNearbyTargets
	rec := propsRec{
		PlatformName:             pp.PlatformName,
		AnalyzeUncategorizedData: &analyze,
		SeekNearbyTargets:        &seek,
		ProjectSyms:              map[string]defSymRec{},
	}
	for label, ds := range pp.ProjectSyms {
		rec.ProjectSyms[label] = defSymToRec(ds)
	}
	return rec
}

func symToRec(s *project.Symbol) symRec {
	rec := symRec{
		Label:  s.Label,
		Value:  s.Value,
		Source: sourceNames[s.Source],
		Type:   typeNames[s.Type],
	}
	if s.Anno != project.AnnoNone {
		rec.Anno = annoNames[s.Anno]
	}
	if s.Type == project.TypeNonUniqueLocalAddr {
		off := s.LocalOffset
		rec.LocalOffset = &off
	}
	return rec
}

func defSymToRec(ds *project.DefSymbol) defSymRec {
	rec := defSymRec{
		symRec:    symToRec(&ds.Symbol),
		Comment:   ds.Comment,
		HasWidth:  ds.HasWidth,
		Direction: directionNames[ds.Direction],
	}
	if ds.Mask != nil {
		rec.MultiMask = &maskRec{
			CompareMask:  ds.Mask.CompareMask,
			CompareValue: ds.Mask.CompareValue,
			AddressMask:  ds.Mask.AddressMask,
		}
	}
	if ds.Format != nil {
		dr := descToRec(ds.Format)
		rec.Format = &dr
	}
	return rec
}

func descToRec(fd *project.FormatDescriptor) descRec {
	rec := descRec{
		Length:  fd.Length,
		Format:  formatNames[fd.Format],
		SubType: subTypeNames[fd.SubType],
	}
	if fd.SymbolRef != nil {
		rec.SymbolRef = &weakRefRec{
			Label: fd.SymbolRef.Label,
			Part:  partNames[fd.SymbolRef.Part],
		}
	}
	return rec
}

func mlcToRec(mlc *project.MultiLineComment) mlcRec {
	return mlcRec{
		Text:            mlc.Text,
		BoxMode:         mlc.BoxMode,
		MaxWidth:        mlc.MaxWidth,
		BackgroundColor: mlc.BackgroundColor,
	}
}

func lvTableToRec(lvt *project.LocalVariableTable) lvTableRec {
	rec := lvTableRec{
		ClearPrevious: lvt.ClearPrevious,
		Variables:     []defSymRec{},
	}
	for _, v := range lvt.Variables {
		rec.Variables = append(rec.Variables, defSymToRec(v))
	}
	return rec
}
