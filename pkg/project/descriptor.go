package project

// Format is the top-level classification of a format descriptor.
type Format int

const (
	FmtDefault Format = iota
	FmtDense
	FmtFill
	FmtUninit
	FmtJunk
	FmtNumericLE
	FmtNumericBE
	FmtStringGeneric
	FmtStringReverse
	FmtStringNullTerm
	FmtStringL8
	FmtStringL16
	FmtStringDci
)

// SubType refines a Format, e.g. the radix of a numeric or the character
// encoding of a string.
type SubType int

const (
	SubNone SubType = iota
	SubHex
	SubDecimal
	SubSignedDecimal
	SubBinary
	SubASCII
	SubHighASCII
	SubC64Petscii
	SubC64Screen
	SubAddress
	SubSymbol
)

// RefPart selects which part of a referenced symbol's value is used.
type RefPart int

const (
	PartLow RefPart = iota
	PartHigh
	PartBank
)

// WeakSymbolRef references a symbol by label. It is resolved by name at
// display time, never held as a direct link, so it can be persisted before
// the target symbol exists.
type WeakSymbolRef struct {
	Label string
	Part  RefPart
}

// FormatDescriptor describes how a run of bytes is formatted.
type FormatDescriptor struct {
	// Length is the descriptor's extent in bytes, always >= 1. A
	// descriptor anchored at offset o covers [o, o+Length).
	Length    int
	Format    Format
	SubType   SubType
	SymbolRef *WeakSymbolRef
}

// IsString reports whether the format is one of the string variants.
func (fd *FormatDescriptor) IsString() bool {
	switch fd.Format {
	case FmtStringGeneric, FmtStringReverse, FmtStringNullTerm,
		FmtStringL8, FmtStringL16, FmtStringDci:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether the format is a little- or big-endian numeric.
func (fd *FormatDescriptor) IsNumeric() bool {
	return fd.Format == FmtNumericLE || fd.Format == FmtNumericBE
}
