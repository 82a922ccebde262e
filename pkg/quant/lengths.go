package quant

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// GeneLengths maps a gene id to its summed feature length in bases.
type GeneLengths map[string]int

// ReadGeneLengths builds gene lengths from a GTF annotation by summing the
// span of every feature of the given type per gene id. Comment lines, lines
// with fewer than nine fields and lines with unparsable coordinates are
// skipped.
func ReadGeneLengths(path, feature string) (GeneLengths, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open annotation file")
	}
	defer f.Close()

	lengths := GeneLengths{}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(strings.TrimSpace(line), "\t")
		if len(fields) < 9 {
			continue
		}

		if fields[2] != feature {
			continue
		}

		id := geneID(fields[8])
		if id == "" {
			continue
		}

		start, err := strconv.Atoi(fields[3])
		if err != nil {
			continue
		}

		end, err := strconv.Atoi(fields[4])
		if err != nil {
			continue
		}

		if end < start {
			continue
		}

		lengths[id] += end - start + 1
	}

	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "unable to read annotation file")
	}

	return lengths, nil
}

// geneID extracts the gene_id attribute from the ninth GTF column. Both the
// quoted form `gene_id "X";` and the bare form `gene_id X;` occur in the
// wild and both are handled.
func geneID(attrs string) string {
	const key = "gene_id"

	if i := strings.Index(attrs, key+` "`); i >= 0 {
		rest := attrs[i+len(key)+2:]
		if j := strings.Index(rest, `";`); j >= 0 {
			return rest[:j]
		}

		return rest
	}

	if i := strings.Index(attrs, key+" "); i >= 0 {
		rest := attrs[i+len(key)+1:]
		if j := strings.Index(rest, ";"); j >= 0 {
			return rest[:j]
		}

		return rest
	}

	return ""
}
