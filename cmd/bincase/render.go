package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/retroware/bincase/pkg/project"
	"github.com/retroware/bincase/pkg/project/format"
)

func renderInfo(w io.Writer, path string, p *project.Project) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"file", path},
		{"content version", p.ContentVersion},
		{"data length", p.DataLength},
		{"data crc32", fmt.Sprintf("0x%08x", p.DataCRC32)},
		{"platform", p.Properties.PlatformName},
		{"address map entries", p.AddressMap.Len()},
		{"user labels", len(p.UserLabels)},
		{"project symbols", len(p.Properties.ProjectSyms)},
		{"comments", len(p.Comments)},
		{"long comments", len(p.LongComments)},
		{"notes", len(p.Notes)},
		{"operand formats", len(p.Formats)},
		{"lv tables", len(p.LvTables)},
		{"visualization sets", len(p.VisualizationSets)},
		{"unclaimed visualizations", len(p.UnclaimedVisualizations)},
		{"relocs", len(p.Relocs)},
		{"bank overrides", len(p.BankOverrides)},
	})
	t.Render()
}

func renderSymbols(w io.Writer, platform string, syms []*project.DefSymbol) {
	fmt.Fprintf(w, "platform: %s\n", platform)
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Label", "Value", "Type", "Dir", "Comment"})
	for _, s := range syms {
		typ := "addr"
		if s.Type == project.TypeConstant {
			typ = "const"
		}
		dir := ""
		if s.Direction&project.DirRead != 0 {
			dir += "r"
		}
		if s.Direction&project.DirWrite != 0 {
			dir += "w"
		}
		t.AppendRow(table.Row{s.Label, fmt.Sprintf("0x%04x", s.Value), typ, dir, s.Comment})
	}
	t.Render()
}

func renderReport(w io.Writer, rep *format.Report) {
	if rep == nil || len(rep.Entries) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Severity", "Field", "Key", "Detail"})
	for _, e := range rep.Entries {
		t.AppendRow(table.Row{e.Severity.String(), e.Field, e.Key, e.Detail})
	}
	t.Render()
	fmt.Fprintf(w, "%d notice(s), %d warning(s), %d error(s)\n",
		rep.Count(format.SevNotice), rep.Count(format.SevWarning), rep.Count(format.SevError))
}
