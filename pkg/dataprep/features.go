package dataprep

// SplitFeatures separates a canonical table into its feature columns and the
// raw target labels. The id column is dropped if present.
//
// Missing target values become NoDisorder. A numeric target is formatted with
// FormatNumber so that it can be label-encoded like any other class.
func SplitFeatures(t *Table) (features *Table, labels []string, ok bool) {
	target, found := t.Col(TargetColumn)
	if !found {
		return nil, nil, false
	}

	labels = make([]string, target.Len())
	for i := range labels {
		switch {
		case target.IsMissing(i):
			labels[i] = NoDisorder
		case target.Kind == Numeric:
			labels[i] = FormatNumber(target.Floats[i])
		default:
			labels[i] = target.Strings[i]
		}
	}
	return t.Drop(TargetColumn, IDColumn), labels, true
}
