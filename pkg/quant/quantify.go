package quant

import (
	"gonum.org/v1/gonum/floats"
)

// Result bundles the outcome of one quantification.
type Result struct {
	TPM  *Matrix
	FPKM *Matrix
	// Dropped counts the genes present in the count table but absent from
	// the annotation lengths, removed by the inner join.
	Dropped int
}

// Quantify converts raw counts and gene lengths into TPM and FPKM matrices.
// Only genes present in both inputs are retained; when no gene matches the
// annotation it fails with ErrNoMatchingGenes. The FPKM denominator is the
// total raw count of the sample over the full table, computed before the
// join. A sample whose total is zero fails with a NormalizationError
// instead of producing non-finite values.
func Quantify(counts *CountMatrix, lengths GeneLengths) (*Result, error) {
	nSamples := len(counts.Samples)

	// Raw depth per sample over the full, pre-join table.
	rawTotals := make([]float64, nSamples)

	for _, row := range counts.Counts {
		for si, v := range row {
			rawTotals[si] += float64(v)
		}
	}

	var (
		genes []string
		rpk   [][]float64
	)

	for gi, gene := range counts.Genes {
		length, ok := lengths[gene]
		if !ok || length <= 0 {
			continue
		}

		kb := float64(length) / 1000

		row := make([]float64, nSamples)
		for si, v := range counts.Counts[gi] {
			row[si] = float64(v) / kb
		}

		genes = append(genes, gene)
		rpk = append(rpk, row)
	}

	if len(genes) == 0 {
		return nil, ErrNoMatchingGenes
	}

	rpkTotals := make([]float64, nSamples)

	for si := 0; si < nSamples; si++ {
		col := make([]float64, len(rpk))
		for gi := range rpk {
			col[gi] = rpk[gi][si]
		}

		rpkTotals[si] = floats.Sum(col)

		if rawTotals[si] == 0 {
			return nil, &NormalizationError{Sample: counts.Samples[si], Quantity: "raw count"}
		}

		if rpkTotals[si] == 0 {
			return nil, &NormalizationError{Sample: counts.Samples[si], Quantity: "RPK"}
		}
	}

	tpm := &Matrix{Genes: genes, Samples: counts.Samples, Values: make([][]float64, len(genes))}
	fpkm := &Matrix{Genes: genes, Samples: counts.Samples, Values: make([][]float64, len(genes))}

	for gi := range rpk {
		tpmRow := make([]float64, nSamples)
		fpkmRow := make([]float64, nSamples)

		for si, v := range rpk[gi] {
			tpmRow[si] = v / (rpkTotals[si] / 1e6)
			fpkmRow[si] = v / (rawTotals[si] / 1e6)
		}

		tpm.Values[gi] = tpmRow
		fpkm.Values[gi] = fpkmRow
	}

	return &Result{
		TPM:     tpm,
		FPKM:    fpkm,
		Dropped: len(counts.Genes) - len(genes),
	}, nil
}
