package pipeline

import (
	"bufio"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	baseMeanColumn   = "baseMean"
	foldChangeColumn = "log2FoldChange"
	comparisonColumn = "comparison"
)

// resultTable is a differential table exactly as the tool wrote it. Cells
// stay text so every tool column survives untouched.
type resultTable struct {
	header []string
	rows   [][]string
}

func readResultTable(path string) (*resultTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open results")
	}
	defer f.Close()

	t := &resultTable{}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0

	for sc.Scan() {
		line++

		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := strings.Split(text, "\t")

		if t.header == nil {
			t.header = fields

			continue
		}

		if len(fields) != len(t.header) {
			return nil, errors.Errorf("%s:%d: row has %d columns, header has %d", path, line, len(fields), len(t.header))
		}

		t.rows = append(t.rows, fields)
	}

	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "unable to read results")
	}

	if t.header == nil {
		return nil, errors.Errorf("%s: no header found", path)
	}

	return t, nil
}

func (t *resultTable) column(name string) (int, bool) {
	for i, h := range t.header {
		if h == name {
			return i, true
		}
	}

	return 0, false
}

// withComparison returns a copy tagged with the comparison label in a
// trailing column.
func (t *resultTable) withComparison(tag string) *resultTable {
	out := &resultTable{
		header: append(append([]string{}, t.header...), comparisonColumn),
		rows:   make([][]string, 0, len(t.rows)),
	}

	for _, row := range t.rows {
		out.rows = append(out.rows, append(append([]string{}, row...), tag))
	}

	return out
}

// filterFoldChange keeps rows whose absolute log2 fold change reaches
// log2(threshold). Rows without a parsable value are dropped. Tables
// without the column pass through unchanged.
func (t *resultTable) filterFoldChange(threshold float64) *resultTable {
	col, ok := t.column(foldChangeColumn)
	if !ok {
		return t
	}

	cutoff := math.Log2(threshold)
	out := &resultTable{header: t.header}

	for _, row := range t.rows {
		v, err := strconv.ParseFloat(row[col], 64)
		if err != nil || math.IsNaN(v) {
			continue
		}

		if math.Abs(v) >= cutoff {
			out.rows = append(out.rows, row)
		}
	}

	return out
}

// dropZeroBaseMean removes rows whose baseMean is exactly zero, keeping
// rows whose value does not parse. The second return is false when the
// table has no baseMean column at all.
func (t *resultTable) dropZeroBaseMean() (*resultTable, bool) {
	col, ok := t.column(baseMeanColumn)
	if !ok {
		return nil, false
	}

	out := &resultTable{header: t.header}

	for _, row := range t.rows {
		v, err := strconv.ParseFloat(row[col], 64)
		if err == nil && v == 0 {
			continue
		}

		out.rows = append(out.rows, row)
	}

	return out, true
}

// append merges another table below this one. Headers must match exactly.
func (t *resultTable) append(other *resultTable) error {
	if len(t.header) != len(other.header) {
		return errors.Errorf("results headers differ between comparisons: %d columns vs %d", len(t.header), len(other.header))
	}

	for i, h := range t.header {
		if other.header[i] != h {
			return errors.Errorf("results headers differ between comparisons: %q vs %q", h, other.header[i])
		}
	}

	t.rows = append(t.rows, other.rows...)

	return nil
}

func (t *resultTable) write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "unable to create results file")
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	if _, err := w.WriteString(strings.Join(t.header, "\t") + "\n"); err != nil {
		return errors.Wrap(err, "unable to write header")
	}

	for _, row := range t.rows {
		if _, err := w.WriteString(strings.Join(row, "\t") + "\n"); err != nil {
			return errors.Wrap(err, "unable to write row")
		}
	}

	return errors.Wrap(w.Flush(), "unable to flush results file")
}
