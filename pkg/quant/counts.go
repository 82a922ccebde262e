package quant

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// headerMarker locates the header line of the count table. Everything
// before it is tool metadata and is skipped.
const headerMarker = "Geneid"

// metaColumns is the number of trailing annotation columns the counting
// tool appends after the sample columns (chromosome, start, end, strand).
const metaColumns = 4

// CountMatrix is the raw per-gene, per-sample count table produced by the
// counting tool.
type CountMatrix struct {
	Genes   []string
	Samples []string
	// Counts is indexed by gene, then by sample.
	Counts [][]int
	// Meta holds the trailing annotation columns of each gene row.
	// Quantification ignores them.
	Meta [][]string
	// MetaNames holds the header cells of the trailing columns.
	MetaNames []string
}

// SampleIndex returns the column position of the named sample.
func (c *CountMatrix) SampleIndex(name string) (int, bool) {
	for i, s := range c.Samples {
		if s == name {
			return i, true
		}
	}

	return 0, false
}

// ReadCounts parses the count table written by the counting tool. The
// header line is located by the Geneid marker, every line before it is
// skipped. Sample columns sit between the gene id and the trailing
// annotation columns.
func ReadCounts(path string) (*CountMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open count table")
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var (
		out    *CountMatrix
		lineNo int
	)

	for sc.Scan() {
		lineNo++
		line := sc.Text()

		if out == nil {
			if !strings.HasPrefix(line, headerMarker) {
				continue
			}

			header := strings.Split(line, "\t")
			if len(header) < metaColumns+2 {
				return nil, &ParseError{File: path, Line: lineNo, Reason: "count table has no sample columns"}
			}

			out = &CountMatrix{
				Samples:   header[1 : len(header)-metaColumns],
				MetaNames: header[len(header)-metaColumns:],
			}

			continue
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != len(out.Samples)+metaColumns+1 {
			return nil, &ParseError{File: path, Line: lineNo, Reason: "row has a different column count than the header"}
		}

		row := make([]int, len(out.Samples))

		for i, cell := range fields[1 : len(fields)-metaColumns] {
			v, err := strconv.Atoi(strings.TrimSpace(cell))
			if err != nil {
				return nil, &ParseError{File: path, Line: lineNo, Reason: "count value is not an integer: " + cell}
			}

			row[i] = v
		}

		out.Genes = append(out.Genes, fields[0])
		out.Counts = append(out.Counts, row)
		out.Meta = append(out.Meta, fields[len(fields)-metaColumns:])
	}

	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "unable to read count table")
	}

	if out == nil {
		return nil, &ParseError{File: path, Line: lineNo, Reason: "header marker " + headerMarker + " not found"}
	}

	return out, nil
}
