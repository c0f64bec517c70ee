package project

// SymbolSource identifies where a symbol definition came from.
type SymbolSource int

const (
	SourceUnknown SymbolSource = iota
	SourceUser                 // hand-entered label
	SourceProject              // project symbol table
	SourcePlatform             // platform symbol file
	SourcePreLabel             // generated from an address map pre-label
	SourceAuto                 // analyzer-generated
	SourceVariable             // local variable table entry
)

// SymbolType classifies how a symbol's value is interpreted.
type SymbolType int

const (
	TypeUnknown SymbolType = iota
	TypeAddress
	TypeConstant
	// TypeNonUniqueLocalAddr marks a local label whose text may repeat at
	// other offsets; such symbols carry their defining offset.
	TypeNonUniqueLocalAddr
)

// LabelAnno is an optional annotation on a symbol's label.
type LabelAnno int

const (
	AnnoNone LabelAnno = iota
	AnnoUncertain
	AnnoGenerated
)

// NoLocalOffset is the LocalOffset value for symbols that are not
// non-unique local addresses.
const NoLocalOffset = -1

// Symbol associates a label with a numeric value.
type Symbol struct {
	Label  string
	Value  int64
	Source SymbolSource
	Type   SymbolType
	Anno   LabelAnno

	// LocalOffset disambiguates non-unique local labels reused at
	// different locations. NoLocalOffset for all other symbol types.
	LocalOffset int64
}

// NewSymbol creates a symbol with no local offset.
func NewSymbol(label string, value int64, source SymbolSource, typ SymbolType) *Symbol {
	return &Symbol{
		Label:       label,
		Value:       value,
		Source:      source,
		Type:        typ,
		LocalOffset: NoLocalOffset,
	}
}

// Direction is a pair of read/write access flags on a DefSymbol.
type Direction int

const (
	DirNone  Direction = 0
	DirRead  Direction = 1 << 0
	DirWrite Direction = 1 << 1
	DirReadWrite = DirRead | DirWrite
)

// MultiAddrMask matches a DefSymbol against multiple hardware addresses:
// an address matches when addr&CompareMask == CompareValue, and the
// canonical address is addr&AddressMask.
type MultiAddrMask struct {
	CompareMask  int64
	CompareValue int64
	AddressMask  int64
}

// DefSymbol extends Symbol with presentation and access metadata, used for
// project and platform symbols and for local variable definitions.
type DefSymbol struct {
	Symbol

	Format    *FormatDescriptor
	Comment   string
	HasWidth  bool
	Direction Direction
	Mask      *MultiAddrMask
}

// NewDefSymbol creates a DefSymbol with read/write access and no descriptor.
func NewDefSymbol(label string, value int64, source SymbolSource, typ SymbolType) *DefSymbol {
	return &DefSymbol{
		Symbol:    *NewSymbol(label, value, source, typ),
		Direction: DirReadWrite,
	}
}
