package project

// Visualization is a generator-produced rendering of a byte range, e.g. a
// bitmap decoded from sprite data. Visualizations are referenced by tag,
// never by direct pointer.
type Visualization struct {
	// Tag uniquely identifies the visualization across the project. Tags
	// follow the label grammar and are stored trimmed.
	Tag string

	// VisGenIdent names the generator that produces the rendering.
	VisGenIdent string

	// Parms are the generator parameters. Numeric values are normalized
	// to float64 so a round trip through the file is lossless.
	Parms map[string]any

	// AnimTags is non-nil for bitmap animations and lists, in frame
	// order, the tags of the non-animation visualizations to cycle
	// through.
	AnimTags []string
}

// NewVisualization creates a plain (non-animation) visualization with
// normalized parameters.
func NewVisualization(tag, genIdent string, parms map[string]any) *Visualization {
	return &Visualization{
		Tag:         tag,
		VisGenIdent: genIdent,
		Parms:       NormalizeParms(parms),
	}
}

// IsAnimation reports whether the visualization is a bitmap animation.
func (v *Visualization) IsAnimation() bool {
	return v.AnimTags != nil
}

// NormalizeParms converts every numeric parameter value to float64, the
// single representation the persisted form uses. Non-numeric values pass
// through unchanged; a nil map becomes an empty one.
func NormalizeParms(parms map[string]any) map[string]any {
	out := make(map[string]any, len(parms))
	for k, v := range parms {
		switch n := v.(type) {
		case int:
			out[k] = float64(n)
		case int32:
			out[k] = float64(n)
		case int64:
			out[k] = float64(n)
		case uint:
			out[k] = float64(n)
		case uint32:
			out[k] = float64(n)
		case uint64:
			out[k] = float64(n)
		case float32:
			out[k] = float64(n)
		default:
			out[k] = v
		}
	}
	return out
}

// VisualizationSet holds the visualizations claimed for one offset. Every
// visualization belongs to at most one set.
type VisualizationSet struct {
	Offset int64
	Items  []*Visualization
}
