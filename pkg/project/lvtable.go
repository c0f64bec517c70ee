package project

// LocalVariableTable scopes a set of variable definitions to the code that
// follows its starting offset.
type LocalVariableTable struct {
	// ClearPrevious discards all variables from earlier tables instead of
	// merging with them.
	ClearPrevious bool

	// Variables in definition order. Each has Source == SourceVariable.
	Variables []*DefSymbol
}

// Lookup returns the variable with the given label, or nil.
func (t *LocalVariableTable) Lookup(label string) *DefSymbol {
	for _, v := range t.Variables {
		if v.Label == label {
			return v
		}
	}
	return nil
}
