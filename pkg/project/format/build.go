package format

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/retroware/bincase/pkg/project"
)

// This file converts a migrated surrogate tree into entities. Every check
// here is per-unit: a violation drops exactly the implicated entry, appends
// one report entry, and the load carries on.

// decOffsetKey parses a text map key back to an offset and range-checks it.
// The header sentinel is accepted only where allowHeader is set.
func decOffsetKey(field, key string, dataLen int64, allowHeader bool, rep *Report) (int64, bool) {
	off, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		rep.Add(SevWarning, field, key, "unparsable offset key")
		return 0, false
	}
	if off == project.HeaderCommentOffset && allowHeader {
		return off, true
	}
	if off < 0 || off >= dataLen {
		rep.Add(SevWarning, field, key, fmt.Sprintf("offset out of range [0,%d)", dataLen))
		return 0, false
	}
	return off, true
}

// forEachOffsetKey validates and sorts a collection's keys, then visits the
// surviving entries in ascending offset order. Bad keys are reported and
// skipped inside decOffsetKey.
func forEachOffsetKey[V any](field string, m map[string]V, dataLen int64,
	allowHeader bool, rep *Report, visit func(off int64, key string, v V)) {

	type keyed struct {
		off int64
		key string
	}
	valid := make([]keyed, 0, len(m))
	for key := range m {
		if off, ok := decOffsetKey(field, key, dataLen, allowHeader, rep); ok {
			valid = append(valid, keyed{off: off, key: key})
		}
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i].off < valid[j].off })
	for _, k := range valid {
		visit(k.off, k.key, m[k.key])
	}
}

// buildProject validates the surrogate tree and constructs the entity model.
// The only fatal condition past this point is a non-positive declared data
// length; everything else degrades to per-unit report entries.
func buildProject(rec *projRec, rep *Report, logger hclog.Logger) (*project.Project, error) {
	if rec.DataLength <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadDataLength, rec.DataLength)
	}

	p := project.NewProject(rec.DataLength, rec.DataCRC32)
	p.ContentVersion = rec.ContentVersion
	dataLen := rec.DataLength

	buildProperties(rec, p, rep)
	buildAddressMap(rec, p, rep)

	forEachOffsetKey("comments", rec.Comments, dataLen, false, rep,
		func(off int64, key, text string) {
			p.Comments[off] = text
		})
	forEachOffsetKey("longComments", rec.LongComments, dataLen, true, rep,
		func(off int64, key string, mr mlcRec) {
			p.LongComments[off] = mlcFromRec(mr)
		})
	forEachOffsetKey("notes", rec.Notes, dataLen, true, rep,
		func(off int64, key string, mr mlcRec) {
			p.Notes[off] = mlcFromRec(mr)
		})

	buildUserLabels(rec, p, rep)

	forEachOffsetKey("formats", rec.Formats, dataLen, false, rep,
		func(off int64, key string, dr descRec) {
			if fd, ok := buildDescriptor("formats", key, dr, dataLen, off, rep); ok {
				p.Formats[off] = fd
			}
		})

	buildLvTables(rec, p, rep)
	buildVisualizations(rec, p, rep, logger)

	forEachOffsetKey("relocs", rec.Relocs, dataLen, false, rep,
		func(off int64, key string, raw json.RawMessage) {
			p.Relocs[off] = compactRaw(raw)
		})
	forEachOffsetKey("bankOverrides", rec.BankOverrides, dataLen, false, rep,
		func(off int64, key string, raw json.RawMessage) {
			p.BankOverrides[off] = compactRaw(raw)
		})

	return p, nil
}

func buildProperties(rec *projRec, p *project.Project, rep *Report) {
	pr := &rec.Properties
	p.Properties.PlatformName = pr.PlatformName
	if pr.AnalyzeUncategorizedData != nil {
		p.Properties.AnalyzeUncategorizedData = *pr.AnalyzeUncategorizedData
	}
	if pr.SeekNearbyTargets != nil {
		p.Properties.SeekNearbyTargets = *pr.SeekNearbyTargets
	}

	labels := make([]string, 0, len(pr.ProjectSyms))
	for label := range pr.ProjectSyms {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		ds, ok := buildDefSymbol("projectSyms", label, pr.ProjectSyms[label], rep)
		if !ok {
			continue
		}
		if ds.Label != label {
			rep.Add(SevWarning, "projectSyms", label, "map key does not match symbol label")
			continue
		}
		p.Properties.ProjectSyms[label] = ds
	}
}

func buildAddressMap(rec *projRec, p *project.Project, rep *Report) {
	for _, ar := range rec.AddressMap {
		key := strconv.FormatInt(ar.Offset, 10)
		if ar.Offset < 0 || ar.Offset >= rec.DataLength {
			rep.Add(SevWarning, "addressMap", key,
				fmt.Sprintf("offset out of range [0,%d)", rec.DataLength))
			continue
		}
		if ar.Length != project.LenFloating && ar.Length < 1 {
			rep.Add(SevWarning, "addressMap", key, "invalid region length")
			continue
		}
		if ar.PreLabel != "" && !project.ValidLabel(ar.PreLabel) {
			rep.Add(SevWarning, "addressMap", key,
				fmt.Sprintf("invalid pre-label %q", ar.PreLabel))
			continue
		}
		err := p.AddressMap.Add(project.AddressMapEntry{
			Offset:     ar.Offset,
			Addr:       ar.Addr,
			Length:     ar.Length,
			PreLabel:   ar.PreLabel,
			IsRelative: ar.IsRelative,
		})
		if err != nil {
			rep.Add(SevWarning, "addressMap", key, err.Error())
		}
	}
}

func buildUserLabels(rec *projRec, p *project.Project, rep *Report) {
	// First occurrence in offset order wins; later reuses of the same
	// label text are dropped. Comparison is case-sensitive.
	seen := make(map[string]bool)
	forEachOffsetKey("userLabels", rec.UserLabels, rec.DataLength, false, rep,
		func(off int64, key string, sr symRec) {
			sym, ok := buildSymbol("userLabels", key, sr, rep)
			if !ok {
				return
			}
			if sym.Source != project.SourceUser {
				rep.Add(SevWarning, "userLabels", key,
					fmt.Sprintf("unexpected symbol source %q", sr.Source))
				return
			}
			if seen[sym.Label] {
				rep.Add(SevWarning, "userLabels", key,
					fmt.Sprintf("duplicate label %q", sym.Label))
				return
			}
			seen[sym.Label] = true
			if sym.Type == project.TypeNonUniqueLocalAddr {
				sym.LocalOffset = off
			}
			p.UserLabels[off] = sym
		})
}

func buildSymbol(field, key string, sr symRec, rep *Report) (*project.Symbol, bool) {
	if !project.ValidLabel(sr.Label) {
		rep.Add(SevWarning, field, key, fmt.Sprintf("invalid label %q", sr.Label))
		return nil, false
	}
	source, ok := sourceValues[sr.Source]
	if !ok {
		rep.Add(SevWarning, field, key, fmt.Sprintf("unknown symbol source %q", sr.Source))
		return nil, false
	}
	typ, ok := typeValues[sr.Type]
	if !ok {
		rep.Add(SevWarning, field, key, fmt.Sprintf("unknown symbol type %q", sr.Type))
		return nil, false
	}
	anno := project.AnnoNone
	if sr.Anno != "" {
		anno, ok = annoValues[sr.Anno]
		if !ok {
			rep.Add(SevWarning, field, key, fmt.Sprintf("unknown label annotation %q", sr.Anno))
			return nil, false
		}
	}

	sym := project.NewSymbol(sr.Label, sr.Value, source, typ)
	sym.Anno = anno
	if typ == project.TypeNonUniqueLocalAddr && sr.LocalOffset != nil {
		sym.LocalOffset = *sr.LocalOffset
	}
	return sym, true
}

func buildDefSymbol(field, key string, dr defSymRec, rep *Report) (*project.DefSymbol, bool) {
	sym, ok := buildSymbol(field, key, dr.symRec, rep)
	if !ok {
		return nil, false
	}
	dir, ok := directionValues[dr.Direction]
	if !ok {
		rep.Add(SevWarning, field, key, fmt.Sprintf("unknown direction %q", dr.Direction))
		return nil, false
	}

	ds := &project.DefSymbol{
		Symbol:    *sym,
		Comment:   dr.Comment,
		HasWidth:  dr.HasWidth,
		Direction: dir,
	}
	if dr.MultiMask != nil {
		ds.Mask = &project.MultiAddrMask{
			CompareMask:  dr.MultiMask.CompareMask,
			CompareValue: dr.MultiMask.CompareValue,
			AddressMask:  dr.MultiMask.AddressMask,
		}
	}
	if dr.Format != nil {
		// Not anchored at a file offset, so no bounds check here.
		fd, ok := buildDescriptor(field, key, *dr.Format, 0, -1, rep)
		if !ok {
			return nil, false
		}
		ds.Format = fd
	}
	return ds, true
}

// buildDescriptor validates a format descriptor. When off >= 0 the
// descriptor is anchored in the file and must fit inside it.
func buildDescriptor(field, key string, dr descRec, dataLen, off int64, rep *Report) (*project.FormatDescriptor, bool) {
	if dr.Length < 1 {
		rep.Add(SevWarning, field, key, "descriptor length must be at least 1")
		return nil, false
	}
	format, ok := formatValues[dr.Format]
	if !ok {
		rep.Add(SevWarning, field, key, fmt.Sprintf("unknown format %q", dr.Format))
		return nil, false
	}
	subType, ok := subTypeValues[dr.SubType]
	if !ok {
		rep.Add(SevWarning, field, key, fmt.Sprintf("unknown sub-type %q", dr.SubType))
		return nil, false
	}
	if off >= 0 && off+int64(dr.Length) > dataLen {
		rep.Add(SevWarning, field, key,
			fmt.Sprintf("descriptor extends past end of file (%d+%d > %d)", off, dr.Length, dataLen))
		return nil, false
	}

	fd := &project.FormatDescriptor{
		Length:  dr.Length,
		Format:  format,
		SubType: subType,
	}
	if dr.SymbolRef != nil {
		if !project.ValidLabel(dr.SymbolRef.Label) {
			rep.Add(SevWarning, field, key,
				fmt.Sprintf("invalid symbol reference label %q", dr.SymbolRef.Label))
			return nil, false
		}
		part, ok := partValues[dr.SymbolRef.Part]
		if !ok {
			rep.Add(SevWarning, field, key,
				fmt.Sprintf("unknown symbol reference part %q", dr.SymbolRef.Part))
			return nil, false
		}
		fd.SymbolRef = &project.WeakSymbolRef{Label: dr.SymbolRef.Label, Part: part}
	}
	return fd, true
}

func buildLvTables(rec *projRec, p *project.Project, rep *Report) {
	forEachOffsetKey("lvTables", rec.LvTables, rec.DataLength, false, rep,
		func(off int64, key string, tr lvTableRec) {
			table := &project.LocalVariableTable{ClearPrevious: tr.ClearPrevious}
			seen := make(map[string]bool)
			for _, vr := range tr.Variables {
				ds, ok := buildDefSymbol("lvTables", key, vr, rep)
				if !ok {
					continue
				}
				if ds.Source != project.SourceVariable {
					rep.Add(SevWarning, "lvTables", key,
						fmt.Sprintf("variable %q has unexpected source %q", ds.Label, vr.Source))
					continue
				}
				if seen[ds.Label] {
					rep.Add(SevWarning, "lvTables", key,
						fmt.Sprintf("duplicate variable %q", ds.Label))
					continue
				}
				seen[ds.Label] = true
				table.Variables = append(table.Variables, ds)
			}
			p.LvTables[off] = table
		})
}

func buildVisualizations(rec *projRec, p *project.Project, rep *Report, logger hclog.Logger) {
	// Tag-keyed arena: everything is decoded by name first, then sets
	// claim from the pool in a dedicated pass, which sidesteps forward
	// references and makes double-claiming structurally impossible.
	byTag := make(map[string]*project.Visualization)
	var order []*project.Visualization

	addVis := func(field string, vr visRec, animTags []string) {
		tag := strings.TrimSpace(vr.Tag)
		if !project.ValidLabel(tag) {
			rep.Add(SevWarning, field, vr.Tag, "invalid visualization tag")
			return
		}
		if _, dup := byTag[tag]; dup {
			rep.Add(SevWarning, field, tag, "duplicate visualization tag")
			return
		}
		v := project.NewVisualization(tag, vr.VisGenIdent, vr.Parms)
		v.AnimTags = animTags
		byTag[tag] = v
		order = append(order, v)
	}

	for _, vr := range rec.Visualizations {
		addVis("visualizations", vr, nil)
	}
	for _, ar := range rec.VisAnimations {
		// Frame tags must name non-animation visualizations; dangling or
		// self-referential tags are dropped one at a time.
		frames := make([]string, 0, len(ar.Tags))
		for _, tag := range ar.Tags {
			target, ok := byTag[tag]
			if !ok || target.IsAnimation() {
				rep.Add(SevWarning, "visAnimations", ar.Tag,
					fmt.Sprintf("unknown frame tag %q", tag))
				continue
			}
			frames = append(frames, tag)
		}
		if len(frames) == 0 {
			rep.Add(SevWarning, "visAnimations", ar.Tag, "animation has no valid frames")
			continue
		}
		addVis("visAnimations", ar.visRec, frames)
	}

	claimed := make(map[string]bool)
	forEachOffsetKey("visSets", rec.VisSets, rec.DataLength, false, rep,
		func(off int64, key string, sr visSetRec) {
			set := &project.VisualizationSet{Offset: off}
			for _, tag := range sr.Tags {
				v, ok := byTag[tag]
				if !ok || claimed[tag] {
					rep.Add(SevWarning, "visSets", key,
						fmt.Sprintf("unknown or already-claimed tag %q", tag))
					continue
				}
				claimed[tag] = true
				set.Items = append(set.Items, v)
			}
			if len(set.Items) == 0 {
				rep.Add(SevWarning, "visSets", key, "set has no valid members")
				return
			}
			p.VisualizationSets[off] = set
		})

	// Never-claimed visualizations are an inconsistency the file format
	// tolerates; they survive the load but are only traced, not reported.
	for _, v := range order {
		if !claimed[v.Tag] {
			logger.Debug("visualization not claimed by any set", "tag", v.Tag)
			p.UnclaimedVisualizations = append(p.UnclaimedVisualizations, v)
		}
	}
}

func mlcFromRec(mr mlcRec) *project.MultiLineComment {
	mlc := project.NewMultiLineComment(mr.Text)
	mlc.BoxMode = mr.BoxMode
	mlc.MaxWidth = mr.MaxWidth
	mlc.BackgroundColor = mr.BackgroundColor
	return mlc
}
