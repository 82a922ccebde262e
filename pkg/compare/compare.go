// Package compare enumerates the condition comparisons of a differential
// analysis.
package compare

// Comparison is one unordered pair of distinct condition labels.
type Comparison struct {
	A string
	B string
}

// Tag returns the label attached to every result row of the comparison.
func (c Comparison) Tag() string {
	return c.A + "_vs_" + c.B
}

// Pairs returns every unordered pair of distinct conditions exactly once.
// The input order drives the output order: conditions[i] is paired with
// every later condition, so the enumeration is reproducible between runs.
// Duplicate labels count once.
func Pairs(conditions []string) []Comparison {
	uniq := make([]string, 0, len(conditions))
	seen := make(map[string]struct{}, len(conditions))

	for _, cond := range conditions {
		if _, ok := seen[cond]; ok {
			continue
		}

		seen[cond] = struct{}{}
		uniq = append(uniq, cond)
	}

	var out []Comparison

	for i := 0; i < len(uniq); i++ {
		for j := i + 1; j < len(uniq); j++ {
			out = append(out, Comparison{A: uniq[i], B: uniq[j]})
		}
	}

	return out
}
