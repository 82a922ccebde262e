package quant

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Matrix is a gene by sample table of expression values. Rows follow the
// gene order of the count table they were derived from.
type Matrix struct {
	Genes   []string
	Samples []string
	// Values is indexed by gene, then by sample.
	Values [][]float64
}

// FilterZeroRows returns a copy of the matrix without the genes whose value
// is zero in every sample.
func (m *Matrix) FilterZeroRows() *Matrix {
	out := &Matrix{Samples: m.Samples}

	for gi, row := range m.Values {
		keep := false

		for _, v := range row {
			if v != 0 {
				keep = true

				break
			}
		}

		if keep {
			out.Genes = append(out.Genes, m.Genes[gi])
			out.Values = append(out.Values, row)
		}
	}

	return out
}

// WriteTable writes the matrix as a tab-delimited table with the gene id in
// the first column.
func (m *Matrix) WriteTable(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "unable to create expression table")
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	if _, err := w.WriteString("Geneid\t" + strings.Join(m.Samples, "\t") + "\n"); err != nil {
		return errors.Wrap(err, "unable to write expression table header")
	}

	for gi, row := range m.Values {
		cells := make([]string, 0, len(row)+1)
		cells = append(cells, m.Genes[gi])

		for _, v := range row {
			cells = append(cells, strconv.FormatFloat(v, 'g', -1, 64))
		}

		if _, err := w.WriteString(strings.Join(cells, "\t") + "\n"); err != nil {
			return errors.Wrap(err, "unable to write expression table row")
		}
	}

	return errors.Wrap(w.Flush(), "unable to flush expression table")
}
