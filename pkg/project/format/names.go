package format

import "github.com/retroware/bincase/pkg/project"

// Variant fields persist as fixed symbolic names, never ordinals, so that
// renumbering an enum in a later revision cannot corrupt old files. Each
// registry pairs a forward map with a lazily-built inverse.

var sourceNames = map[project.SymbolSource]string{
	project.SourceUser:     "User",
	project.SourceProject:  "Project",
	project.SourcePlatform: "Platform",
	project.SourcePreLabel: "AddrPreLabel",
	project.SourceAuto:     "Auto",
	project.SourceVariable: "Variable",
}

var typeNames = map[project.SymbolType]string{
	project.TypeAddress:            "Address",
	project.TypeConstant:           "Constant",
	project.TypeNonUniqueLocalAddr: "NonUniqueLocalAddr",
}

var annoNames = map[project.LabelAnno]string{
	project.AnnoNone:      "None",
	project.AnnoUncertain: "Uncertain",
	project.AnnoGenerated: "Generated",
}

var formatNames = map[project.Format]string{
	project.FmtDefault:        "Default",
	project.FmtDense:          "Dense",
	project.FmtFill:           "Fill",
	project.FmtUninit:         "Uninit",
	project.FmtJunk:           "Junk",
	project.FmtNumericLE:      "NumericLE",
	project.FmtNumericBE:      "NumericBE",
	project.FmtStringGeneric:  "StringGeneric",
	project.FmtStringReverse:  "StringReverse",
	project.FmtStringNullTerm: "StringNullTerm",
	project.FmtStringL8:       "StringL8",
	project.FmtStringL16:      "StringL16",
	project.FmtStringDci:      "StringDci",
}

var subTypeNames = map[project.SubType]string{
	project.SubNone:          "None",
	project.SubHex:           "Hex",
	project.SubDecimal:       "Decimal",
	project.SubSignedDecimal: "SignedDecimal",
	project.SubBinary:        "Binary",
	project.SubASCII:         "ASCII",
	project.SubHighASCII:     "HighASCII",
	project.SubC64Petscii:    "C64Petscii",
	project.SubC64Screen:     "C64Screen",
	project.SubAddress:       "Address",
	project.SubSymbol:        "Symbol",
}

var partNames = map[project.RefPart]string{
	project.PartLow:  "Low",
	project.PartHigh: "High",
	project.PartBank: "Bank",
}

var directionNames = map[project.Direction]string{
	project.DirNone:      "None",
	project.DirRead:      "Read",
	project.DirWrite:     "Write",
	project.DirReadWrite: "ReadWrite",
}

func invert[K comparable](fwd map[K]string) map[string]K {
	inv := make(map[string]K, len(fwd))
	for k, v := range fwd {
		inv[v] = k
	}
	return inv
}

var (
	sourceValues    = invert(sourceNames)
	typeValues      = invert(typeNames)
	annoValues      = invert(annoNames)
	formatValues    = invert(formatNames)
	subTypeValues   = invert(subTypeNames)
	partValues      = invert(partNames)
	directionValues = invert(directionNames)
)
